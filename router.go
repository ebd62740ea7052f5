package phonofix

import (
	"context"
	"sort"
	"strings"
	"unicode"
)

// segment is a contiguous run of text the Router attributed to one
// registered language, by Unicode script.
type segment struct {
	lang       string
	start, end int
}

// LanguageRouter segments mixed-script text by Unicode range and dispatches
// each segment to the Corrector registered for that script, per spec.md
// §4.6. It is adapted from the teacher's common/static.go
// GetUnicodeRangesFromLang table, narrowed to the languages an Engine has
// actually registered rather than the teacher's full ~200-language table.
type LanguageRouter struct {
	correctors   map[string]*Corrector
	ranges       map[string][]*unicode.RangeTable
	crossLingual map[string]string
	defaultLang  string
}

// NewLanguageRouter builds a Router over correctors, keyed by the ISO 639-3
// code each Corrector was built for. crossLingual substitutes literal
// substrings (e.g. a romanised brand name) before segmentation, so a name
// that would otherwise straddle a script boundary is not split mid-token;
// per spec.md §6 this is the router-level use of CrossLingualMap.
func NewLanguageRouter(correctors map[string]*Corrector, crossLingual map[string]string) *LanguageRouter {
	ranges := make(map[string][]*unicode.RangeTable, len(correctors))
	for _, cap := range RegisteredLanguages() {
		if _, ok := correctors[cap.Lang]; ok {
			ranges[cap.Lang] = cap.ScriptRanges
		}
	}
	return &LanguageRouter{correctors: correctors, ranges: ranges, crossLingual: crossLingual}
}

// DefaultLang sets the language a rune that matches no registered script
// range falls back to (e.g. digits, symbols, unrecognised scripts attached
// to the segment they're adjacent to). If never called, the alphabetically
// first language code among the router's correctors with registered script
// ranges is used.
func (r *LanguageRouter) DefaultLang(lang string) *LanguageRouter {
	r.defaultLang = lang
	return r
}

// Correct applies the cross-lingual pre-pass, segments text by script, and
// runs each segment through its language's Corrector, reassembling the
// result in original order. Segments shorter than a Corrector's own
// windowMin are still passed through Correct, which is always safe: a
// too-short window simply yields no candidates.
func (r *LanguageRouter) Correct(ctx context.Context, text string, fullContext string) (string, error) {
	if fullContext == "" {
		fullContext = text
	}
	text = applyCrossLingual(text, r.crossLingual)

	segments := r.segment(text)
	if len(segments) == 0 {
		return text, nil
	}

	out := make([]byte, 0, len(text))
	for _, seg := range segments {
		piece := text[seg.start:seg.end]
		corrector, ok := r.correctors[seg.lang]
		if !ok {
			out = append(out, piece...)
			continue
		}
		corrected, err := corrector.Correct(ctx, piece, fullContext)
		if err != nil {
			return "", err
		}
		out = append(out, corrected...)
	}
	return string(out), nil
}

// segment walks text rune by rune, assigning each rune to the first
// registered language whose ScriptRanges contains it, and merges consecutive
// runes of the same language into one segment. Runes matching no registered
// range attach to the running segment (so punctuation and whitespace don't
// fragment a language run) or start a defaultLang segment if nothing is
// running yet.
func (r *LanguageRouter) segment(text string) []segment {
	langs := make([]string, 0, len(r.ranges))
	for lang := range r.ranges {
		langs = append(langs, lang)
	}
	sort.Strings(langs) // deterministic precedence when scripts overlap

	var segments []segment
	runes := []rune(text)
	byteOffsets := make([]int, len(runes)+1)
	offset := 0
	for i, rn := range runes {
		byteOffsets[i] = offset
		offset += len(string(rn))
	}
	byteOffsets[len(runes)] = offset

	cur := ""
	curStart := 0
	for i, rn := range runes {
		lang := r.langFor(rn, langs)
		if lang == "" {
			lang = cur
			if lang == "" {
				lang = r.defaultLang
			}
			if lang == "" && len(langs) > 0 {
				lang = langs[0]
			}
		}
		if lang != cur {
			if cur != "" {
				segments = append(segments, segment{lang: cur, start: byteOffsets[curStart], end: byteOffsets[i]})
			}
			cur = lang
			curStart = i
		}
	}
	if cur != "" {
		segments = append(segments, segment{lang: cur, start: byteOffsets[curStart], end: byteOffsets[len(runes)]})
	}
	return segments
}

func (r *LanguageRouter) langFor(rn rune, langs []string) string {
	for _, lang := range langs {
		for _, rt := range r.ranges[lang] {
			if unicode.Is(rt, rn) {
				return lang
			}
		}
	}
	return ""
}

// applyCrossLingual replaces every occurrence of each key in m with its
// value, one strings.ReplaceAll pass per key, longest keys first so that a
// shorter key never shadows a longer one that contains it.
func applyCrossLingual(text string, m map[string]string) string {
	if len(m) == 0 {
		return text
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	out := text
	for _, k := range keys {
		if k == "" {
			continue
		}
		out = strings.ReplaceAll(out, k, m[k])
	}
	return out
}
