package phonofix

import (
	"context"
	"sort"

	"github.com/tassa-yoniso-manasi-karoto/phonofix/internal/ahocorasick"
	"github.com/tassa-yoniso-manasi-karoto/phonofix/internal/diag"
)

// Corrector holds the indices built for one term dictionary and performs the
// actual Correct rewriting. It is short-lived relative to its owning Engine:
// callers typically build one per request batch or per document, and it
// holds no mutable state between Correct calls beyond the read-only indices
// assembled at construction.
type Corrector struct {
	lang        string
	passthrough bool

	backend   PhoneticBackend
	tokenizer Tokenizer

	windowMin, windowMax int
	tolerance            func(int) float64

	phonetic     map[PhoneticKey][]SearchTarget
	surfaceExact map[string][]SearchTarget

	protectedAC *ahocorasick.Automaton

	contextAC   *ahocorasick.Automaton
	contextMeta []contextWord

	mode      Mode
	observers []Observer
}

type contextWord struct {
	Canonical string
	Keyword   bool // true: keyword (inclusion bonus); false: exclude_when
	Word      string
}

// newPassthroughCorrector builds a Corrector that returns text unchanged and
// emits a degraded Event on every call, used when CreateCorrector's
// FailPolicy is FailDegrade and backend initialisation failed.
func newPassthroughCorrector(lang string) *Corrector {
	return &Corrector{lang: lang, passthrough: true}
}

// newCorrector assembles a Corrector's indices from the per-canonical
// SearchTarget sets an Engine already expanded via its FuzzyGenerator.
func newCorrector(lang string, backend PhoneticBackend, tokenizer Tokenizer, cap LanguageCapability, byCanonical map[string][]SearchTarget, opts CorrectorOptions) (*Corrector, error) {
	c := &Corrector{
		lang:         lang,
		backend:      backend,
		tokenizer:    tokenizer,
		windowMin:    cap.WindowMin,
		windowMax:    cap.WindowMax,
		tolerance:    cap.Tolerance,
		phonetic:     make(map[PhoneticKey][]SearchTarget),
		surfaceExact: make(map[string][]SearchTarget),
		mode:         opts.mode(),
	}
	if c.windowMin < 1 {
		c.windowMin = 1
	}
	if c.windowMax < c.windowMin {
		c.windowMax = c.windowMin
	}

	var contextWords []contextWord
	for _, targets := range byCanonical {
		for _, t := range targets {
			c.surfaceExact[t.Surface] = append(c.surfaceExact[t.Surface], t)
			if t.PhoneticKey != "" {
				c.phonetic[t.PhoneticKey] = append(c.phonetic[t.PhoneticKey], t)
			}
		}
		if len(targets) > 0 {
			for _, kw := range targets[0].Keywords {
				contextWords = append(contextWords, contextWord{Canonical: targets[0].Canonical, Keyword: true, Word: kw})
			}
			for _, ex := range targets[0].ExcludeWhen {
				contextWords = append(contextWords, contextWord{Canonical: targets[0].Canonical, Keyword: false, Word: ex})
			}
		}
	}

	if len(contextWords) > 0 {
		b := ahocorasick.NewBuilder()
		for _, cw := range contextWords {
			b.AddPattern(cw.Word)
		}
		ac, err := b.Build()
		if err != nil {
			return nil, wrapError(ResourceLimit, err, "building context index")
		}
		c.contextAC = ac
		c.contextMeta = contextWords
	}

	if len(opts.ProtectedTerms) > 0 {
		b := ahocorasick.NewBuilder()
		for _, p := range opts.ProtectedTerms {
			b.AddPattern(p)
		}
		ac, err := b.Build()
		if err != nil {
			return nil, wrapError(ResourceLimit, err, "building protected-term index")
		}
		c.protectedAC = ac
	}

	return c, nil
}

// Observe registers obs to receive every Event this Corrector emits. Safe
// to call before the first Correct; not safe to call concurrently with a
// running Correct.
func (c *Corrector) Observe(obs Observer) {
	c.observers = append(c.observers, obs)
}

func (c *Corrector) emit(ev Event) {
	for _, o := range c.observers {
		o(ev)
	}
}

// Correct rewrites every phonetically-matched alias in text to its canonical
// form, per spec.md §4.5. fullContext supplies surrounding text for
// keyword/exclude_when proximity scoring; pass "" to use text itself.
func (c *Corrector) Correct(ctx context.Context, text string, fullContext string) (string, error) {
	traceID := newTraceID()

	if c.passthrough {
		c.emit(Event{Kind: EventDegraded, TraceID: traceID, Message: "corrector running in degraded pass-through mode"})
		return text, nil
	}
	if text == "" {
		return "", nil
	}
	if fullContext == "" {
		fullContext = text
	}

	tokens := c.tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return text, nil
	}
	contextTokens := tokens
	if fullContext != text {
		contextTokens = c.tokenizer.Tokenize(fullContext)
	}

	protection := c.protectionIntervals(text)

	var matches []Match
	var diagCandidates []diag.Candidate

	scan := windows(text, tokens, c.windowMin, c.windowMax)
	scan(func(start, end, tokenLen int, surface string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if overlapsProtection(start, end, protection) {
			return true
		}
		result, err := c.bestCandidate(ctx, text, surface, fullContext, contextTokens, start, tokenLen)
		if err != nil {
			c.emit(Event{Kind: EventFuzzyError, TraceID: traceID, Message: err.Error()})
			return true
		}
		if c.mode == ModeEvaluation {
			diagCandidates = append(diagCandidates, result.candidates...)
		}
		if result.best != nil {
			result.best.Start = start
			result.best.End = end
			matches = append(matches, *result.best)
		}
		return true
	})

	accepted := resolveConflicts(matches)

	if c.mode == ModeEvaluation && len(diagCandidates) > 0 {
		logger.Debug().Str("trace_id", traceID).Msg(diag.Dump(traceID, diagCandidates))
		for _, cand := range diagCandidates {
			if cand.Reason == "" || cand.Accepted {
				continue
			}
			c.emit(Event{Kind: EventWarning, TraceID: traceID, Canonical: cand.Canonical, Score: cand.Score, Message: cand.Reason})
		}
	}

	out := rewrite(text, accepted)

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Start < accepted[j].Start })
	for _, m := range accepted {
		c.emit(Event{Kind: EventCorrection, TraceID: traceID, Start: m.Start, End: m.End, AliasSurface: m.AliasSurface, Canonical: m.Canonical, Score: m.Score})
	}

	return out, nil
}

// protectionIntervals runs the protected-term automaton over text and merges
// overlapping hits into disjoint intervals, per spec.md §4.5 step 2.
func (c *Corrector) protectionIntervals(text string) []ProtectionInterval {
	if c.protectedAC == nil {
		return nil
	}
	ms := c.protectedAC.FindAll(text)
	if len(ms) == 0 {
		return nil
	}
	sort.Slice(ms, func(i, j int) bool { return ms[i].Start < ms[j].Start })

	var out []ProtectionInterval
	cur := ProtectionInterval{Start: ms[0].Start, End: ms[0].End, Reason: "protected_term"}
	for _, m := range ms[1:] {
		if m.Start <= cur.End {
			if m.End > cur.End {
				cur.End = m.End
			}
			continue
		}
		out = append(out, cur)
		cur = ProtectionInterval{Start: m.Start, End: m.End, Reason: "protected_term"}
	}
	out = append(out, cur)
	return out
}
