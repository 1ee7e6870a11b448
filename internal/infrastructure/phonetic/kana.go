package phonetic

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Kana renders Japanese text as katakana readings, one token per word.
type Kana struct {
	t *tokenizer.Tokenizer
}

// NewKana loads the IPA dictionary tokenizer.
func NewKana() (*Kana, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Kana{t: t}, nil
}

func (k *Kana) Generate(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	var parts []string
	for _, token := range k.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
			continue
		}
		// 7: reading
		features := token.Features()
		if len(features) > 7 && features[7] != "*" {
			parts = append(parts, features[7])
			continue
		}
		parts = append(parts, token.Surface)
	}
	return strings.Join(parts, " ")
}
