package phonofix

import (
	"fmt"
	"sync"
	"unicode"

	iso "github.com/barbashov/iso639-3"
)

// LanguageCapability is what a lang/<code> subpackage registers from its
// init(), mirroring the teacher's common.Register / common.SetDefault
// convention (common/register.go, common/providers.go) but keyed on the
// three concrete pieces an Engine needs instead of a generic Provider chain.
type LanguageCapability struct {
	// Lang is the ISO 639-3 code, e.g. "zho", "eng", "jpn".
	Lang string

	NewBackend        func() PhoneticBackend
	NewTokenizer      func() Tokenizer
	NewFuzzyGenerator func(backend PhoneticBackend, tokenizer Tokenizer, cfg PhoneticConfig) FuzzyGenerator

	// Tolerance returns the maximum normalised phonetic edit distance
	// accepted for a window of the given token length (spec.md §4.5 step 3c).
	Tolerance func(windowLen int) float64

	// WindowMin/WindowMax bound the sliding window lengths the Corrector
	// tries, per language (spec.md §4.5 step 3).
	WindowMin, WindowMax int

	// ScriptRanges are the Unicode ranges the LanguageRouter uses to decide
	// that a segment belongs to this language (spec.md §4.6), adapted from
	// the teacher's static.go rawLang2Ranges table.
	ScriptRanges []*unicode.RangeTable
}

var registryMu sync.RWMutex
var registry = make(map[string]LanguageCapability)

// Register adds a language's capability set to the process-wide registry.
// Subsequent calls with the same Lang overwrite the previous entry, matching
// the teacher's re-registration tolerance in common/register.go.
func Register(cap LanguageCapability) error {
	lang, ok := validLang(cap.Lang)
	if !ok {
		return newError(InvalidInput, "%q is not a valid ISO 639 language code", cap.Lang)
	}
	if cap.NewBackend == nil || cap.NewTokenizer == nil || cap.NewFuzzyGenerator == nil {
		return newError(InvalidInput, "capability for %q missing a required factory", lang)
	}
	cap.Lang = lang

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[lang] = cap
	return nil
}

// Capability returns the registered capability for a language.
func Capability(languageCode string) (LanguageCapability, bool) {
	lang, ok := validLang(languageCode)
	if !ok {
		return LanguageCapability{}, false
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	cap, ok := registry[lang]
	return cap, ok
}

// RegisteredLanguages returns the capability of every language currently registered, used
// by the LanguageRouter to know which Unicode ranges it can route to.
func RegisteredLanguages() []LanguageCapability {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]LanguageCapability, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	return out
}

// validLang normalises any accepted ISO 639 form (639-1/2/3) to its 639-3
// code, exactly as the teacher's common.IsValidISO639 did.
func validLang(code string) (string, bool) {
	obj := iso.FromAnyCode(code)
	if obj == nil {
		return "", false
	}
	return obj.Part3, true
}

// MustRegister is Register, panicking on error. lang/<code> subpackages
// call this from their init(), where a malformed capability is a programmer
// error that should fail loudly at process start rather than surface as a
// runtime InvalidInput later.
func MustRegister(cap LanguageCapability) {
	if err := Register(cap); err != nil {
		panic(fmt.Sprintf("phonofix: failed to register capability for %q: %v", cap.Lang, err))
	}
}
