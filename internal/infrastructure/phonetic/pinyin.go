package phonetic

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// Pinyin renders Han characters as tone-marked pinyin syllables separated
// by spaces. Runs of other characters are kept as written.
type Pinyin struct {
	args pinyin.Args
}

// NewPinyin returns a Mandarin generator using tone marks ("nǐ hǎo").
func NewPinyin() *Pinyin {
	args := pinyin.NewArgs()
	args.Style = pinyin.Tone
	return &Pinyin{args: args}
}

func (p *Pinyin) Generate(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var (
		tokens []string
		run    strings.Builder
	)
	flush := func() {
		if run.Len() > 0 {
			tokens = append(tokens, run.String())
			run.Reset()
		}
	}
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			flush()
			if syllables := pinyin.SinglePinyin(r, p.args); len(syllables) > 0 && syllables[0] != "" {
				tokens = append(tokens, syllables[0])
			} else {
				tokens = append(tokens, string(r))
			}
		case unicode.IsSpace(r):
			flush()
		default:
			run.WriteRune(r)
		}
	}
	flush()
	return strings.Join(tokens, " ")
}
