package phonofix

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/tassa-yoniso-manasi-karoto/phonofix/internal/diag"
)

// proximityWindow bounds how many tokens away a keyword or exclude_when word
// may sit from a candidate's window and still count as "nearby", per
// spec.md §4.5 step 4's context-distance scoring.
const proximityWindow = 10

// contextBonusCoefficient and contextBonusDecay parametrise spec.md §4.5e's
// context_bonus formula: 0.8 * (1 - min(distance,W)/W * 0.6). A keyword
// immediately adjacent to the window (distance 0) earns the full 0.8;
// one sitting at the edge of proximityWindow still earns 0.32, never 0.
const contextBonusCoefficient = 0.8
const contextBonusDecay = 0.6

// windowResult is the outcome of scoring one sliding window: the best
// accepted candidate (nil if none cleared tolerance/exclusion) plus every
// candidate considered, for evaluation-mode diagnostics.
type windowResult struct {
	best       *Match
	candidates []diag.Candidate
}

// bestCandidate scores every SearchTarget reachable from surface — by exact
// match or by phonetic proximity — and returns the one with the lowest
// final_score, after exclusion filtering. text/fullContext/contextTokens
// carry enough information to compute the context-proximity bonus even when
// fullContext differs from text (spec.md §4.5 step 1's "optional surrounding
// context" parameter).
func (c *Corrector) bestCandidate(ctx context.Context, text, surface, fullContext string, contextTokens []Token, start, tokenLen int) (windowResult, error) {
	var res windowResult

	seen := make(map[string]bool)
	consider := func(target SearchTarget, errorRatio float64) {
		if seen[target.Canonical+"\x00"+target.Surface] {
			return
		}
		seen[target.Canonical+"\x00"+target.Surface] = true

		contextPos := locateWindowInContext(text, fullContext, start)
		excludeDist, excluded := c.nearestContextDistance(target.Canonical, false, fullContext, contextTokens, contextPos)
		if excluded && excludeDist <= proximityWindow {
			res.candidates = append(res.candidates, diag.Candidate{Window: surface, Canonical: target.Canonical, Score: errorRatio, Reason: "exclusion"})
			return
		}

		bonus := 0.0
		kwDist, kwFound := c.nearestContextDistance(target.Canonical, true, fullContext, contextTokens, contextPos)
		if len(target.Keywords) > 0 {
			// spec.md §4.5d: a keyword-gated term with no keyword nearby is
			// rejected outright, not merely denied the proximity bonus.
			if !kwFound || kwDist > proximityWindow {
				res.candidates = append(res.candidates, diag.Candidate{Window: surface, Canonical: target.Canonical, Score: errorRatio, Reason: "keyword_required"})
				return
			}
			bonus = contextBonusCoefficient * (1 - float64(kwDist)/float64(proximityWindow)*contextBonusDecay)
		}

		score := errorRatio - target.Weight - bonus
		cand := diag.Candidate{Window: surface, Canonical: target.Canonical, Score: score}

		if res.best == nil || score < res.best.Score {
			res.best = &Match{Canonical: target.Canonical, Score: score, AliasSurface: surface}
			cand.Accepted = true
		} else {
			cand.Reason = "tolerance"
		}
		res.candidates = append(res.candidates, cand)
	}

	for _, target := range c.surfaceExact[surface] {
		consider(target, 0)
	}

	tol := c.tolerance(tokenLen)
	windowKey, err := c.backend.ToPhonetic(ctx, surface)
	if err != nil {
		return res, wrapError(FuzzyError, err, "phonetic conversion failed for window %q", surface)
	}
	if windowKey != "" {
		for key, targets := range c.phonetic {
			if key == "" {
				continue
			}
			dist := levenshtein.ComputeDistance(string(windowKey), string(key))
			maxLen := utf8.RuneCountInString(string(windowKey))
			if n := utf8.RuneCountInString(string(key)); n > maxLen {
				maxLen = n
			}
			if maxLen == 0 {
				continue
			}
			errorRatio := float64(dist) / float64(maxLen)
			if errorRatio > tol {
				continue
			}
			for _, target := range targets {
				consider(target, errorRatio)
			}
		}
	}

	return res, nil
}

// locateWindowInContext maps a window's byte offset in text to its
// corresponding offset in fullContext, when fullContext is a superstring of
// text (the common case, including fullContext == text). Returns -1 when
// text cannot be located inside fullContext, in which case proximity scoring
// degrades to "keyword present anywhere in fullContext".
func locateWindowInContext(text, fullContext string, start int) int {
	if fullContext == text {
		return start
	}
	if idx := strings.Index(fullContext, text); idx >= 0 {
		return idx + start
	}
	return -1
}

// nearestContextDistance returns the token-distance to the nearest
// keyword (wantKeyword true) or exclude_when (false) word registered for
// canonical, found via the Corrector's shared contextAC automaton. ok is
// false when canonical has no such word, or none occurs in fullContext.
func (c *Corrector) nearestContextDistance(canonical string, wantKeyword bool, fullContext string, contextTokens []Token, contextPos int) (int, bool) {
	if c.contextAC == nil {
		return 0, false
	}
	best := -1
	for _, m := range c.contextAC.FindAll(fullContext) {
		meta := c.contextMeta[m.ID]
		if meta.Canonical != canonical || meta.Keyword != wantKeyword {
			continue
		}
		dist := 0
		if contextPos >= 0 {
			dist = tokensBetween(contextTokens, contextPos, m.Start)
		}
		if best == -1 || dist < best {
			best = dist
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// tokensBetween counts how many token boundaries separate byte offsets a and
// b in tokens, a coarse but adequate proxy for "word distance" in proximity
// scoring.
func tokensBetween(tokens []Token, a, b int) int {
	ia, ib := tokenIndexAt(tokens, a), tokenIndexAt(tokens, b)
	d := ia - ib
	if d < 0 {
		d = -d
	}
	return d
}

func tokenIndexAt(tokens []Token, pos int) int {
	for i, t := range tokens {
		if pos >= t.Start && pos < t.End {
			return i
		}
	}
	if len(tokens) == 0 {
		return 0
	}
	if pos < tokens[0].Start {
		return 0
	}
	return len(tokens) - 1
}
