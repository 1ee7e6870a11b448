// Package phonetic derives pronunciation hints from source-language text.
package phonetic

import (
	"fmt"

	"github.com/eslsoft/phraser/internal/entity"
	"github.com/eslsoft/phraser/internal/infrastructure/config"
	"github.com/sirupsen/logrus"
)

// Generator turns source text into a phonetic hint. An empty result means
// no hint could be derived.
type Generator interface {
	Generate(text string) string
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(text string) string

func (f GeneratorFunc) Generate(text string) string { return f(text) }

// None never produces a hint.
var None Generator = GeneratorFunc(func(string) string { return "" })

// New returns the generator configured for cfg.Phonetic.Language, wrapped
// with Safe.
func New(cfg *config.Config, logger logrus.FieldLogger) (Generator, error) {
	var (
		g   Generator
		err error
	)
	switch entity.ParseLanguage(cfg.Phonetic.Language) {
	case entity.LanguageChinese:
		g = NewPinyin()
	case entity.LanguageJapanese:
		g, err = NewKana()
	case entity.LanguageNone:
		g = None
	default:
		return nil, fmt.Errorf("unsupported phonetic language %q", cfg.Phonetic.Language)
	}
	if err != nil {
		return nil, err
	}
	return Safe(g, logger), nil
}

// Safe wraps g so a panic during derivation yields an empty hint.
func Safe(g Generator, logger logrus.FieldLogger) Generator {
	return GeneratorFunc(func(text string) (hint string) {
		defer func() {
			if r := recover(); r != nil {
				if logger != nil {
					logger.WithField("text", text).Warnf("phonetic hint derivation failed: %v", r)
				}
				hint = ""
			}
		}()
		return g.Generate(text)
	})
}
