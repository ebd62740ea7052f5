package eng

import (
	"unicode"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
)

func tolerance(windowLen int) float64 {
	switch {
	case windowLen <= 1:
		return 0.15
	case windowLen == 2:
		return 0.25
	default:
		return 0.35
	}
}

func init() {
	phonofix.MustRegister(phonofix.LanguageCapability{
		Lang:       "eng",
		NewBackend: func() phonofix.PhoneticBackend { return newBackend() },
		NewTokenizer: func() phonofix.Tokenizer { return newTokenizer() },
		NewFuzzyGenerator: func(backend phonofix.PhoneticBackend, _ phonofix.Tokenizer, cfg phonofix.PhoneticConfig) phonofix.FuzzyGenerator {
			return newFuzzyGenerator(backend, cfg)
		},
		Tolerance:    tolerance,
		WindowMin:    1,
		WindowMax:    4,
		ScriptRanges: []*unicode.RangeTable{unicode.Latin},
	})
}
