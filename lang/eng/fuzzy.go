package eng

import (
	"context"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
)

// voicingPairs, similarPairs and vowelLengthPairs are IPA phoneme confusion
// classes: within a pair, either member may stand in for the other. They
// model the mishearing patterns a correction engine needs to cover, not a
// phonological theory.
var voicingPairs = [][2]string{
	{"p", "b"}, {"t", "d"}, {"k", "g"}, {"f", "v"}, {"s", "z"}, {"θ", "ð"}, {"ʃ", "ʒ"},
}

var similarPairs = [][2]string{
	{"θ", "f"}, {"θ", "s"}, {"l", "r"}, {"v", "w"}, {"ð", "z"},
}

var vowelLengthPairs = [][2]string{
	{"iː", "ɪ"}, {"uː", "ʊ"}, {"ɔː", "ɒ"}, {"ɑː", "ʌ"}, {"ɜː", "ə"},
}

// reductions are whole-token substitutions modelling casual/connected
// speech reduction, applied the same way a pair substitution is.
var reductions = [][2]string{
	{"ɪŋ", "ɪn"}, {"ər", "ə"},
}

// ipaToGrapheme back-projects one phoneme token to the spelling most likely
// to produce it, used to realize an altered phoneme sequence as literal
// text. Unmapped phonemes make a combo unrealizable (see GenerateVariants).
var ipaToGrapheme = map[string]string{
	"p": "p", "b": "b", "t": "t", "d": "d", "k": "k", "g": "g", "m": "m", "n": "n",
	"ŋ": "ng", "f": "f", "v": "v", "s": "s", "z": "z", "θ": "th", "ð": "th",
	"ʃ": "sh", "ʒ": "si", "tʃ": "ch", "dʒ": "j", "l": "l", "r": "r", "w": "w",
	"j": "y", "h": "h",
	"iː": "ee", "ɪ": "i", "eɪ": "ay", "ɛ": "e", "æ": "a", "ɑː": "ah", "ɒ": "o",
	"ɔː": "aw", "oʊ": "o", "ʊ": "oo", "uː": "oo", "ʌ": "u", "ɜː": "er", "ə": "a",
	"aɪ": "i", "aʊ": "ow", "ɔɪ": "oy", "ɪn": "in",
}

// acronymSpacing spells out a short all-caps acronym letter by letter,
// lowercased and space-joined (e.g. "API" -> "a p i"), the reading a
// transcription engine commonly produces for an acronym it doesn't
// recognise as a single word.
func acronymSpacing(word string) (string, bool) {
	if len(word) < 2 {
		return "", false
	}
	letters := make([]string, 0, len(word))
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return "", false
		}
		letters = append(letters, strings.ToLower(string(r)))
	}
	return strings.Join(letters, " "), true
}

// digitLetterConfusions is a curated table of acronyms/short words against a
// digit-bearing look- or sound-alike spelling, the way lang/zho's
// specialSyllableMap and lang/jpn's kanjiHomophones curate a handful of
// named confusions no general rule derives.
var digitLetterConfusions = map[string]string{
	"EKG": "1kg",
	"B2B": "b to b",
	"K9":  "k nine",
}

// syllableRespellings is a curated table of compound-word phonetic
// respellings where "apply the syllable-split hardcoded rule" (spec.md
// §4.3) does not reduce to inserting one space, because the respelling
// changes a sound rather than just adding a word boundary (e.g.
// "TensorFlow" misheard as three short words, the middle one losing its
// "r" and the last one's vowel lengthening). syllableSplit below is the
// fallback for compound words not named here.
var syllableRespellings = map[string]string{
	"tensorflow": "ten so floor",
}

type fuzzyGenerator struct {
	backend phonofix.PhoneticBackend
	cfg     phonofix.PhoneticConfig
}

func newFuzzyGenerator(backend phonofix.PhoneticBackend, cfg phonofix.PhoneticConfig) *fuzzyGenerator {
	return &fuzzyGenerator{backend: backend, cfg: cfg}
}

func allPairs(cfg phonofix.PhoneticConfig) [][2]string {
	pairs := append([][2]string(nil), voicingPairs...)
	pairs = append(pairs, similarPairs...)
	pairs = append(pairs, vowelLengthPairs...)
	pairs = append(pairs, reductions...)
	pairs = append(pairs, cfg.ExtraPhonemePairs...)
	return pairs
}

func alternatesForPhoneme(phoneme string, pairs [][2]string) []string {
	out := []string{phoneme}
	for _, p := range pairs {
		switch phoneme {
		case p[0]:
			out = append(out, p[1])
		case p[1]:
			out = append(out, p[0])
		}
	}
	return out
}

// realize back-projects a phoneme token sequence to literal text via
// ipaToGrapheme, concatenated with no separators (English orthography has
// no token boundary markers). Returns ok=false if any token is unmapped.
func realize(tokens []string) (string, bool) {
	var b strings.Builder
	for _, t := range tokens {
		g, ok := ipaToGrapheme[t]
		if !ok {
			return "", false
		}
		b.WriteString(g)
	}
	return b.String(), true
}

// GenerateVariants implements phonofix.FuzzyGenerator for English: it
// transcribes term via the shared PhoneticBackend, substitutes phonemes
// position by position per allPairs, filters by edit-distance ratio, and
// back-projects survivors to literal spellings via ipaToGrapheme.
// matchr.JaroWinkler similarity between term and a variant's spelling is
// blended into every phonetic variant's score (weight 0.2 against 0.8 for
// phonetic similarity), favouring spellings closer to term letter-for-letter.
func (g *fuzzyGenerator) GenerateVariants(ctx context.Context, term string, maxVariants int) ([]phonofix.Variant, error) {
	lower := strings.ToLower(term)
	baseKey, err := g.backend.ToPhonetic(ctx, lower)
	if err != nil {
		return nil, err
	}
	baseTokens := strings.Fields(string(baseKey))
	if len(baseTokens) == 0 {
		return nil, nil
	}

	pairs := allPairs(g.cfg)
	altLists := make([][]string, len(baseTokens))
	for i, p := range baseTokens {
		altLists[i] = alternatesForPhoneme(p, pairs)
	}

	threshold := int(math.Floor(0.35 * float64(len(baseTokens))))
	if threshold < 2 {
		threshold = 2
	}

	limit := 300
	var raw []phonofix.Variant

	var walk func(i int, combo []string) bool
	walk = func(i int, combo []string) bool {
		if len(raw) >= limit {
			return false
		}
		if i == len(baseTokens) {
			dist := 0
			for j, t := range combo {
				if t != baseTokens[j] {
					dist++
				}
			}
			if dist == 0 || dist > threshold {
				return true
			}
			text, ok := realize(combo)
			if !ok || text == lower {
				return true
			}
			comboKey := strings.Join(combo, " ")
			score := phonofix.NormalizedLevenshtein(levenshtein.ComputeDistance, string(baseKey), comboKey)
			score = score*0.8 + matchr.JaroWinkler(lower, text)*0.2
			raw = append(raw, phonofix.Variant{Text: text, PhoneticKey: phonofix.PhoneticKey(comboKey), Score: score, Source: phonofix.SourcePhoneticFuzzy})
			return true
		}
		for _, alt := range altLists[i] {
			if !walk(i+1, append(combo, alt)) {
				return false
			}
		}
		return true
	}
	walk(0, make([]string, 0, len(baseTokens)))

	// apply_hardcoded_rules (spec.md §4.3): acronym spacing, digit/letter
	// confusion, and syllable-split/respelling are curated surface rules,
	// not derived from phoneme substitution above.
	if spaced, ok := acronymSpacing(term); ok {
		if key, err := g.backend.ToPhonetic(ctx, spaced); err == nil {
			raw = append(raw, phonofix.Variant{Text: spaced, PhoneticKey: key, Score: 0.85, Source: phonofix.SourceHardcoded})
		}
	}
	if alt, ok := digitLetterConfusions[term]; ok {
		if key, err := g.backend.ToPhonetic(ctx, alt); err == nil {
			raw = append(raw, phonofix.Variant{Text: alt, PhoneticKey: key, Score: 0.9, Source: phonofix.SourceHardcoded})
		}
	}
	if syl, ok := syllableRespellings[lower]; ok {
		if key, err := g.backend.ToPhonetic(ctx, syl); err == nil {
			raw = append(raw, phonofix.Variant{Text: syl, PhoneticKey: key, Score: 0.8, Source: phonofix.SourcePhraseRule})
		}
	} else if syl, ok := syllableSplit(lower); ok {
		if key, err := g.backend.ToPhonetic(ctx, syl); err == nil {
			raw = append(raw, phonofix.Variant{Text: syl, PhoneticKey: key, Score: 0.8, Source: phonofix.SourcePhraseRule})
		}
	}

	for canonical, aliases := range g.cfg.ExtraHardcodedVariants {
		if canonical != term {
			continue
		}
		for _, a := range aliases {
			key, err := g.backend.ToPhonetic(ctx, a)
			if err != nil {
				continue
			}
			raw = append(raw, phonofix.Variant{Text: a, PhoneticKey: key, Score: 0.9, Source: phonofix.SourceHardcoded})
		}
	}

	return phonofix.FinalizeVariants(term, raw, maxVariants, func(a, b string) bool {
		return strings.EqualFold(a, b)
	}), nil
}

// syllableSplit inserts a single space near the midpoint of a sufficiently
// long single word, modelling the "syllable split" misreading of a compound
// or unfamiliar name (e.g. "Sealink" heard as "Sea Link"). Approximate: it
// only ever tries one split point, favouring a vowel-consonant boundary
// near the middle.
func syllableSplit(word string) (string, bool) {
	if strings.ContainsAny(word, " \t") || len(word) < 6 {
		return "", false
	}
	mid := len(word) / 2
	for offset := 0; offset < 3; offset++ {
		for _, i := range []int{mid + offset, mid - offset} {
			if i <= 0 || i >= len(word) {
				continue
			}
			if isVowel(word[i-1]) && !isVowel(word[i]) {
				return word[:i] + " " + word[i:], true
			}
		}
	}
	return "", false
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}
