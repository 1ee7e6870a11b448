package entity

import "strings"

// Language selects how phonetic hints are derived from source text.
type Language string

const (
	LanguageUnspecified Language = ""
	LanguageChinese     Language = "zh"
	LanguageJapanese    Language = "ja"
	LanguageNone        Language = "none"
)

// ParseLanguage converts an arbitrary string into a supported Language value.
func ParseLanguage(code string) Language {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "zh", "zh-cn", "cmn":
		return LanguageChinese
	case "ja", "jp":
		return LanguageJapanese
	case "none", "off":
		return LanguageNone
	default:
		return LanguageUnspecified
	}
}

// NormalizeText trims surrounding whitespace from user-entered phrase text.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}
