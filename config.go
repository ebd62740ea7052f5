package phonofix

// FailPolicy controls what happens when Backend initialisation or index
// construction fails.
type FailPolicy string

const (
	// FailRaise propagates build-time errors to the caller of CreateCorrector.
	FailRaise FailPolicy = "raise"
	// FailDegrade swaps in a pass-through Corrector instead of failing, and
	// emits a degraded Event on every call.
	FailDegrade FailPolicy = "degrade"
)

// Mode controls how much diagnostic detail the Engine emits.
type Mode string

const (
	// ModeProduction emits only final corrections and errors.
	ModeProduction Mode = "production"
	// ModeEvaluation additionally emits a warning Event per rejected
	// high-similarity candidate, and routes a pretty-printed diagnostic
	// dump through internal/diag.
	ModeEvaluation Mode = "evaluation"
)

// PhoneticConfig carries a language's immutable rule tables plus any
// caller-supplied overrides, per spec.md §9. It is loaded once at Engine
// construction and never mutated afterwards, so it is safe to share across
// concurrently-running Correctors built from the same Engine.
type PhoneticConfig struct {
	// ExtraFuzzyInitialPairs adds to a language's initial confusion groups
	// (read by lang/zho for Mandarin initials; lang/eng and lang/jpn ignore it).
	ExtraFuzzyInitialPairs [][2]string
	// ExtraFuzzyFinalPairs adds to a language's final/rhyme confusion pairs.
	ExtraFuzzyFinalPairs [][2]string
	// ExtraPhonemePairs adds to the English IPA phoneme confusion table.
	ExtraPhonemePairs [][2]string
	// ExtraHardcodedVariants adds literal canonical -> surface variant
	// mappings alongside a language's built-in hardcoded rules.
	ExtraHardcodedVariants map[string][]string
	// MaxVariantsDefault overrides defaultMaxVariants when positive, for every
	// term whose TermSpec leaves MaxVariants unset.
	MaxVariantsDefault int
	// ToleranceOverride maps a window length to the tolerance used for it,
	// replacing the language's own value for that length (see the tolerance
	// functions in lang/*/init.go); lengths it does not list keep the
	// language's value.
	ToleranceOverride map[int]float64
}

// EngineOptions configures an Engine at construction time.
type EngineOptions struct {
	Config PhoneticConfig
}

// CorrectorOptions configures a single CreateCorrector call. CrossLingualMap
// is accepted here (spec.md §6) but is not read by CreateCorrector or by the
// Corrector it builds; cross-lingual substitution is applied only by a
// LanguageRouter, from the map passed to NewLanguageRouter.
type CorrectorOptions struct {
	ProtectedTerms   []string
	CrossLingualMap  map[string]string
	FailPolicy       FailPolicy
	Mode             Mode
	MaxVariantsCap   int // ResourceLimit bound on any single term's MaxVariants; 0 = no bound
	MaxProtectedTerm int // ResourceLimit bound on len(ProtectedTerms); 0 = no bound
}

func (o CorrectorOptions) failPolicy() FailPolicy {
	if o.FailPolicy == "" {
		return FailRaise
	}
	return o.FailPolicy
}

func (o CorrectorOptions) mode() Mode {
	if o.Mode == "" {
		return ModeProduction
	}
	return o.Mode
}
