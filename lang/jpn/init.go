package jpn

import (
	"unicode"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
)

func tolerance(windowLen int) float64 {
	switch {
	case windowLen <= 1:
		return 0.0
	case windowLen == 2:
		return 0.2
	case windowLen == 3:
		return 0.3
	default:
		return 0.34
	}
}

func init() {
	phonofix.MustRegister(phonofix.LanguageCapability{
		Lang:       "jpn",
		NewBackend: func() phonofix.PhoneticBackend { return newBackend() },
		NewTokenizer: func() phonofix.Tokenizer { return newTokenizer() },
		NewFuzzyGenerator: func(backend phonofix.PhoneticBackend, _ phonofix.Tokenizer, cfg phonofix.PhoneticConfig) phonofix.FuzzyGenerator {
			return newFuzzyGenerator(backend, cfg)
		},
		Tolerance:    tolerance,
		WindowMin:    1,
		WindowMax:    8,
		ScriptRanges: []*unicode.RangeTable{unicode.Han, unicode.Hiragana, unicode.Katakana},
	})
}
