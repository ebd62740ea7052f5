package phonofix

// PhoneticKey is an opaque string in the phonetic domain: Pinyin syllables
// separated by spaces, IPA symbols, or Hepburn Romaji. The matcher only ever
// compares PhoneticKeys by equality or edit distance; it never interprets
// their contents.
type PhoneticKey string

// VariantSource identifies which generation step of the FuzzyGenerator
// template method produced a Variant.
type VariantSource string

const (
	SourcePhoneticFuzzy VariantSource = "PhoneticFuzzy"
	SourceHardcoded     VariantSource = "Hardcoded"
	SourcePhraseRule    VariantSource = "PhraseRule"
	SourceRomanisation  VariantSource = "Romanisation"
)

// TermSpec is the full-form per-canonical configuration accepted by
// CreateCorrector. Unspecified fields default to the zero value described in
// spec.md §6: empty slices, weight 0.0, MaxVariants 30.
type TermSpec struct {
	Aliases     []string
	Keywords    []string
	ExcludeWhen []string
	Weight      float64
	MaxVariants int
}

// NormalizedTermConfig is a TermSpec after input normalisation: aliases
// deduplicated and never containing the canonical itself, MaxVariants
// defaulted and bounds-checked.
type NormalizedTermConfig struct {
	Canonical   string
	Aliases     []string
	Keywords    []string
	ExcludeWhen []string
	Weight      float64
	MaxVariants int
}

// Variant is a phonetically related surface string generated for a
// canonical term by a FuzzyGenerator.
type Variant struct {
	Text        string
	PhoneticKey PhoneticKey
	Score       float64
	Source      VariantSource
}

// SearchTarget is one element of the union {canonical} ∪ aliases ∪ variants,
// deduplicated by PhoneticKey, that a Corrector searches against.
type SearchTarget struct {
	Surface     string
	PhoneticKey PhoneticKey
	Canonical   string
	Weight      float64
	Keywords    []string
	ExcludeWhen []string
}

// Match is a tentative replacement found at a text position during a single
// Correct call. It never outlives that call.
type Match struct {
	Start        int
	End          int
	Canonical    string
	Score        float64
	AliasSurface string
}

// ProtectionInterval is a closed surface range, expressed as byte offsets
// into the original text, that must not be rewritten.
type ProtectionInterval struct {
	Start  int
	End    int
	Reason string
}

const (
	defaultMaxVariants = 30
)

// normalizeTermSpec turns a canonical + TermSpec into a NormalizedTermConfig,
// applying the defaults from spec.md §6 and the invariant that canonical is
// never an element of its own aliases.
func normalizeTermSpec(canonical string, spec TermSpec) (NormalizedTermConfig, error) {
	if canonical == "" {
		return NormalizedTermConfig{}, newError(InvalidInput, "empty canonical")
	}
	if spec.Weight < 0 || spec.Weight > 1 {
		return NormalizedTermConfig{}, newError(InvalidInput, "weight %v for %q out of range [0,1]", spec.Weight, canonical)
	}
	maxVariants := spec.MaxVariants
	if maxVariants <= 0 {
		maxVariants = defaultMaxVariants
	}

	seen := make(map[string]struct{}, len(spec.Aliases))
	aliases := make([]string, 0, len(spec.Aliases))
	for _, a := range spec.Aliases {
		if a == "" {
			return NormalizedTermConfig{}, newError(InvalidInput, "empty alias for %q", canonical)
		}
		if a == canonical {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		aliases = append(aliases, a)
	}

	return NormalizedTermConfig{
		Canonical:   canonical,
		Aliases:     aliases,
		Keywords:    append([]string(nil), spec.Keywords...),
		ExcludeWhen: append([]string(nil), spec.ExcludeWhen...),
		Weight:      spec.Weight,
		MaxVariants: maxVariants,
	}, nil
}
