package phonofix

import (
	"context"
	"sort"
	"unicode/utf8"
)

// FuzzyGenerator expands a canonical term into a set of phonetically
// plausible spellings. Implementations follow the template method described
// in spec.md §4.3: transform to a phonetic key, apply the language's rule
// table to that key, back-project each result to a surface string, fold in
// hardcoded surface rules, score, dedupe, drop the identity variant, then
// sort and truncate.
//
// GenerateVariants is the only method the Engine calls; everything else is
// implementation detail of a concrete language package (lang/zho, lang/eng,
// lang/jpn each provide one).
type FuzzyGenerator interface {
	GenerateVariants(ctx context.Context, term string, maxVariants int) ([]Variant, error)
}

// FinalizeVariants performs the template method's shared tail (steps 5-8 of
// spec.md §4.3): dedupe by phonetic key keeping the highest score, drop the
// variant whose surface equals term once foldEqual considers them identical,
// sort by (-score, len(text), text), and truncate to maxVariants. Every
// language's FuzzyGenerator calls this after assembling its raw candidate
// list so that truncation is deterministic the same way in all three
// languages.
func FinalizeVariants(term string, raw []Variant, maxVariants int, foldEqual func(a, b string) bool) []Variant {
	if foldEqual == nil {
		foldEqual = func(a, b string) bool { return a == b }
	}

	best := make(map[PhoneticKey]Variant, len(raw))
	order := make([]PhoneticKey, 0, len(raw))
	for _, v := range raw {
		if foldEqual(v.Text, term) {
			continue
		}
		cur, ok := best[v.PhoneticKey]
		if !ok {
			order = append(order, v.PhoneticKey)
			best[v.PhoneticKey] = v
			continue
		}
		if v.Score > cur.Score {
			best[v.PhoneticKey] = v
		}
	}

	out := make([]Variant, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Text) != len(b.Text) {
			return len(a.Text) < len(b.Text)
		}
		return a.Text < b.Text
	})

	if maxVariants > 0 && len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

// NormalizedLevenshtein returns 1 - (edit distance / max length), i.e. a
// similarity score in [0,1] where 1 means identical. Both spec.md §4.3 step
// 5 (variant scoring) and the English filtering formula in §4.3 are phrased
// in terms of this quantity.
func NormalizedLevenshtein(dist func(a, b string) int, a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	// dist counts rune edits (agnivade/levenshtein operates rune-wise), so
	// the denominator must be a rune count too: a byte length would inflate
	// maxLen (and understate the ratio) for any multibyte phonetic alphabet,
	// e.g. English IPA symbols like θ, ʃ, iː.
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	d := dist(a, b)
	score := 1 - float64(d)/float64(maxLen)
	if score < 0 {
		score = 0
	}
	return score
}
