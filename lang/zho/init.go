package zho

import (
	"unicode"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
)

// tolerance bounds, by window token length, the maximum normalised phonetic
// edit distance the matcher accepts, per spec.md §4.5 step 3c. Short
// windows (one or two characters) need a tight tolerance or nearly anything
// matches; longer windows can tolerate proportionally more drift.
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
		Lang:              "zho",
		NewBackend:        func() phonofix.PhoneticBackend { return newBackend() },
		NewTokenizer:      func() phonofix.Tokenizer { return newTokenizer() },
		NewFuzzyGenerator: func(_ phonofix.PhoneticBackend, _ phonofix.Tokenizer, cfg phonofix.PhoneticConfig) phonofix.FuzzyGenerator { return newFuzzyGenerator(cfg) },
		Tolerance:         tolerance,
		WindowMin:         1,
		WindowMax:         8,
		ScriptRanges:      []*unicode.RangeTable{unicode.Han},
	})
}
