package phonofix

import (
	"context"
)

// Engine is the long-lived, per-language entry point. It owns its own
// PhoneticBackend (NewEngine builds a fresh one from the registered
// capability, so Engines never share a backend), the Tokenizer, and the
// FuzzyGenerator for one language, and stamps out short-lived Correctors from them. Construction is
// cheap; WarmUp (or the first CreateCorrector call) pays the backend's
// one-time initialisation cost.
type Engine struct {
	lang      string
	backend   PhoneticBackend
	tokenizer Tokenizer
	fuzzy     FuzzyGenerator
	cap       LanguageCapability
	config    PhoneticConfig
}

// NewEngine builds an Engine for languageCode from whatever lang/<code>
// subpackage registered a LanguageCapability via its init(). languageCode
// accepts any ISO 639-1/2/3 form; it is normalised to 639-3 internally.
func NewEngine(languageCode string, opts EngineOptions) (*Engine, error) {
	cap, ok := Capability(languageCode)
	if !ok {
		return nil, newError(InvalidInput, "no phonofix capability registered for language %q", languageCode)
	}
	backend := cap.NewBackend()
	tokenizer := cap.NewTokenizer()
	fuzzy := cap.NewFuzzyGenerator(backend, tokenizer, opts.Config)

	return &Engine{
		lang:      cap.Lang,
		backend:   backend,
		tokenizer: tokenizer,
		fuzzy:     fuzzy,
		cap:       cap,
		config:    opts.Config,
	}, nil
}

// Lang returns the engine's ISO 639-3 language code.
func (e *Engine) Lang() string { return e.lang }

// WarmUp forces the backend's one-time initialisation outside of the
// request path, so that the first real Correct call is not the one paying
// for it. It is a no-op if the backend is already initialized.
func (e *Engine) WarmUp(ctx context.Context) error {
	if e.backend.IsInitialized() {
		return nil
	}
	return e.backend.Init(ctx)
}

// CacheStats exposes the backend's memoisation counters.
func (e *Engine) CacheStats() CacheStats { return e.backend.CacheStats() }

// Close releases the backend's resources. An Engine must not be used after
// Close; Correctors it already produced remain usable only if their backend
// does not require the released resource (in practice: don't call this
// while Correctors are still live).
func (e *Engine) Close() error { return e.backend.Close() }

// normalizeTermDict converts the term_dict value CreateCorrector accepts into
// NormalizedTermConfigs. Accepted shapes: []string (canonicals only),
// canonical -> []string (aliases-only shorthand), canonical -> TermSpec (full
// form), or map[string]any whose values are either of the last two, which
// allows mixing both forms in one call. A positive maxVariantsDefault is used
// for every term that leaves MaxVariants unset.
func normalizeTermDict(raw any, maxVariantsDefault int) (map[string]NormalizedTermConfig, error) {
	out := make(map[string]NormalizedTermConfig)
	normalize := func(canonical string, spec TermSpec) (NormalizedTermConfig, error) {
		if spec.MaxVariants <= 0 && maxVariantsDefault > 0 {
			spec.MaxVariants = maxVariantsDefault
		}
		return normalizeTermSpec(canonical, spec)
	}

	switch dict := raw.(type) {
	case []string:
		for _, canonical := range dict {
			n, err := normalize(canonical, TermSpec{})
			if err != nil {
				return nil, err
			}
			out[canonical] = n
		}
	case map[string][]string:
		for canonical, aliases := range dict {
			n, err := normalize(canonical, TermSpec{Aliases: aliases})
			if err != nil {
				return nil, err
			}
			out[canonical] = n
		}
	case map[string]TermSpec:
		for canonical, spec := range dict {
			n, err := normalize(canonical, spec)
			if err != nil {
				return nil, err
			}
			out[canonical] = n
		}
	case map[string]any:
		for canonical, v := range dict {
			var spec TermSpec
			switch val := v.(type) {
			case []string:
				spec = TermSpec{Aliases: val}
			case TermSpec:
				spec = val
			default:
				return nil, newError(InvalidInput, "term_dict entry for %q has unsupported type %T", canonical, v)
			}
			n, err := normalize(canonical, spec)
			if err != nil {
				return nil, err
			}
			out[canonical] = n
		}
	default:
		return nil, newError(InvalidInput, "term_dict has unsupported type %T (want []string, map[string][]string, map[string]TermSpec, or map[string]any)", raw)
	}

	return out, nil
}

// CreateCorrector builds a Corrector for termDict, a canonical -> aliases (or
// canonical -> TermSpec) dictionary. Per spec.md §4.4, fuzzy variant
// generation is mandatory and automatic: every canonical's FuzzyGenerator
// output is merged with its user-supplied aliases, deduplicated by phonetic
// key, before the Corrector's indices are built.
func (e *Engine) CreateCorrector(ctx context.Context, termDict any, opts CorrectorOptions) (*Corrector, error) {
	normalized, err := normalizeTermDict(termDict, e.config.MaxVariantsDefault)
	if err != nil {
		return nil, err
	}
	if opts.MaxProtectedTerm > 0 && len(opts.ProtectedTerms) > opts.MaxProtectedTerm {
		return nil, newError(ResourceLimit, "protected term count %d exceeds configured bound %d", len(opts.ProtectedTerms), opts.MaxProtectedTerm)
	}
	if opts.MaxVariantsCap > 0 {
		for canonical, term := range normalized {
			if term.MaxVariants > opts.MaxVariantsCap {
				return nil, newError(ResourceLimit, "max variants %d for %q exceeds configured bound %d", term.MaxVariants, canonical, opts.MaxVariantsCap)
			}
		}
	}

	if err := e.backend.Init(ctx); err != nil {
		if opts.failPolicy() == FailDegrade {
			logger.Warn().Str("lang", e.lang).Err(err).Msg("phonofix: backend unavailable, building pass-through corrector")
			return newPassthroughCorrector(e.lang), nil
		}
		return nil, wrapError(BackendUnavailable, err, "%s backend initialisation failed", e.lang)
	}

	byCanonical := make(map[string][]SearchTarget, len(normalized))
	for canonical, term := range normalized {
		targets, err := e.buildTargets(ctx, term, opts)
		if err != nil {
			if opts.failPolicy() == FailDegrade {
				logger.Warn().Str("lang", e.lang).Str("canonical", canonical).Err(err).Msg("phonofix: variant generation failed, term kept literal-only")
				targets = literalTargets(term)
			} else {
				return nil, err
			}
		}
		byCanonical[canonical] = targets
	}

	cap := e.cap
	if len(e.config.ToleranceOverride) > 0 {
		base, table := cap.Tolerance, e.config.ToleranceOverride
		cap.Tolerance = func(windowLen int) float64 {
			if tol, ok := table[windowLen]; ok {
				return tol
			}
			return base(windowLen)
		}
	}

	return newCorrector(e.lang, e.backend, e.tokenizer, cap, byCanonical, opts)
}

// buildTargets expands one canonical into its full SearchTarget set: the
// canonical itself, its user-supplied aliases, and its generated fuzzy
// variants, deduplicated by PhoneticKey per spec.md §4.4's invariant that no
// two SearchTargets of the same canonical share a phonetic key. Aliases and
// the canonical itself win ties over a generated variant landing on the same
// key, since they are the caller's explicit intent.
func (e *Engine) buildTargets(ctx context.Context, term NormalizedTermConfig, opts CorrectorOptions) ([]SearchTarget, error) {
	seen := make(map[PhoneticKey]struct{})
	var targets []SearchTarget

	add := func(surface string) error {
		key, err := e.backend.ToPhonetic(ctx, surface)
		if err != nil {
			return wrapError(FuzzyError, err, "phonetic conversion failed for %q", surface)
		}
		if _, dup := seen[key]; dup {
			return nil
		}
		seen[key] = struct{}{}
		targets = append(targets, SearchTarget{
			Surface:     surface,
			PhoneticKey: key,
			Canonical:   term.Canonical,
			Weight:      term.Weight,
			Keywords:    term.Keywords,
			ExcludeWhen: term.ExcludeWhen,
		})
		return nil
	}

	if err := add(term.Canonical); err != nil {
		return nil, err
	}
	for _, alias := range term.Aliases {
		if err := add(alias); err != nil {
			return nil, err
		}
	}

	variants, err := e.fuzzy.GenerateVariants(ctx, term.Canonical, term.MaxVariants)
	if err != nil {
		return targets, wrapError(FuzzyError, err, "generating variants for %q", term.Canonical)
	}
	for _, v := range variants {
		if _, dup := seen[v.PhoneticKey]; dup {
			continue
		}
		seen[v.PhoneticKey] = struct{}{}
		targets = append(targets, SearchTarget{
			Surface:     v.Text,
			PhoneticKey: v.PhoneticKey,
			Canonical:   term.Canonical,
			Weight:      term.Weight,
			Keywords:    term.Keywords,
			ExcludeWhen: term.ExcludeWhen,
		})
	}

	return targets, nil
}

// literalTargets builds the canonical+aliases-only SearchTarget set without
// phonetic keys, used when FailDegrade swallows a variant-generation error:
// the term is still searchable by exact surface match, just not fuzzily.
func literalTargets(term NormalizedTermConfig) []SearchTarget {
	targets := []SearchTarget{{Surface: term.Canonical, Canonical: term.Canonical, Weight: term.Weight, Keywords: term.Keywords, ExcludeWhen: term.ExcludeWhen}}
	for _, a := range term.Aliases {
		targets = append(targets, SearchTarget{Surface: a, Canonical: term.Canonical, Weight: term.Weight, Keywords: term.Keywords, ExcludeWhen: term.ExcludeWhen})
	}
	return targets
}
