package jpn

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
)

// dakutenPairs links a plain kana to its voiced (dakuten) counterpart;
// handakutenPairs links は-row kana to their semi-voiced (handakuten) form.
// Both directions are tried. Katakana equivalents are derived by offsetting
// into the parallel Katakana block (U+30A1-U+30F6 mirrors U+3041-U+3096).
var dakutenPairs = [][2]rune{
	{'か', 'が'}, {'き', 'ぎ'}, {'く', 'ぐ'}, {'け', 'げ'}, {'こ', 'ご'},
	{'さ', 'ざ'}, {'し', 'じ'}, {'す', 'ず'}, {'せ', 'ぜ'}, {'そ', 'ぞ'},
	{'た', 'だ'}, {'ち', 'ぢ'}, {'つ', 'づ'}, {'て', 'で'}, {'と', 'ど'},
	{'は', 'ば'}, {'ひ', 'び'}, {'ふ', 'ぶ'}, {'へ', 'べ'}, {'ほ', 'ぼ'},
}

var handakutenPairs = [][2]rune{
	{'は', 'ぱ'}, {'ひ', 'ぴ'}, {'ふ', 'ぷ'}, {'へ', 'ぺ'}, {'ほ', 'ぽ'},
}

// specialKanaPairs are historically/phonetically merged kana distinguished
// only by orthography, frequently confused in input: じ/ぢ, ず/づ, を/お.
var specialKanaPairs = [][2]rune{
	{'じ', 'ぢ'}, {'ず', 'づ'}, {'を', 'お'},
}

// kanjiHomophones are whole-word kanji spellings sharing a reading,
// predominantly Japanese family-name orthographic variants, a case no
// per-character rule table can derive: a bundled table is the only option
// (spec.md §9 Open Question), traded off here for breadth over exhaustive
// name coverage.
var kanjiHomophones = map[string][]string{
	"渡辺": {"渡部", "渡邊", "渡邉"},
	"渡部": {"渡辺"},
	"斉藤": {"斎藤", "齋藤", "齊藤"},
	"斎藤": {"斉藤", "齋藤"},
	"高橋": {"髙橋"},
	"山崎": {"山﨑"},
	"浜田": {"濱田"},
	"桜井": {"櫻井"},
	"広瀬": {"廣瀬"},
	"沢田": {"澤田"},
	"伊藤": {"伊東"},
	"伊東": {"伊藤"},
	"宮崎": {"宮﨑"},
	"国分": {"國分"},
	"広田": {"廣田"},
	"辺見": {"邊見"},
}

func toKatakana(r rune) (rune, bool) {
	if r >= 'ぁ' && r <= 'ゖ' {
		return r + ('ァ' - 'ぁ'), true
	}
	return 0, false
}

func toHiragana(r rune) (rune, bool) {
	if r >= 'ァ' && r <= 'ヶ' {
		return r - ('ァ' - 'ぁ'), true
	}
	return 0, false
}

// kanaAlternates returns every single-character substitution reachable from
// r by dakuten, handakuten, or special-pair confusion, trying both the
// hiragana and (if r is katakana) its katakana-mapped equivalents.
func kanaAlternates(r rune) []rune {
	base := r
	isKatakana := false
	if h, ok := toHiragana(r); ok {
		base = h
		isKatakana = true
	}

	var alts []rune
	tryPairs := func(pairs [][2]rune) {
		for _, p := range pairs {
			var alt rune
			switch base {
			case p[0]:
				alt = p[1]
			case p[1]:
				alt = p[0]
			default:
				continue
			}
			if isKatakana {
				if k, ok := toKatakana(alt); ok {
					alts = append(alts, k)
					continue
				}
			}
			alts = append(alts, alt)
		}
	}
	tryPairs(dakutenPairs)
	tryPairs(handakutenPairs)
	tryPairs(specialKanaPairs)
	return alts
}

type fuzzyGenerator struct {
	backend phonofix.PhoneticBackend
	cfg     phonofix.PhoneticConfig
}

func newFuzzyGenerator(backend phonofix.PhoneticBackend, cfg phonofix.PhoneticConfig) *fuzzyGenerator {
	return &fuzzyGenerator{backend: backend, cfg: cfg}
}

func maxCombos(wordLen int) int {
	n := 50 * wordLen
	if n > 300 {
		n = 300
	}
	return n
}

// GenerateVariants implements phonofix.FuzzyGenerator for Japanese: kana
// runs are expanded by dakuten/handakuten/special-pair substitution,
// whole-term kanji spellings are expanded via kanjiHomophones, and every
// resulting surface string's phonetic key is computed through the shared
// ichiran-backed PhoneticBackend so scoring stays consistent with the
// matcher's own notion of phonetic distance.
func (g *fuzzyGenerator) GenerateVariants(ctx context.Context, term string, maxVariants int) ([]phonofix.Variant, error) {
	baseKey, err := g.backend.ToPhonetic(ctx, term)
	if err != nil {
		return nil, err
	}

	runes := []rune(term)
	altLists := make([][]rune, len(runes))
	for i, r := range runes {
		altLists[i] = append([]rune{r}, kanaAlternates(r)...)
	}

	limit := maxCombos(len(runes))
	var raw []phonofix.Variant

	var walk func(i int, surface []rune) error
	walk = func(i int, surface []rune) error {
		if len(raw) >= limit {
			return nil
		}
		if i == len(runes) {
			text := string(surface)
			if text == term {
				return nil
			}
			key, err := g.backend.ToPhonetic(ctx, text)
			if err != nil {
				return nil // transient conversion failure: skip this combo, not fatal to the whole call
			}
			score := phonofix.NormalizedLevenshtein(levenshtein.ComputeDistance, string(baseKey), string(key))
			raw = append(raw, phonofix.Variant{Text: text, PhoneticKey: key, Score: score, Source: phonofix.SourcePhoneticFuzzy})
			return nil
		}
		for _, alt := range altLists[i] {
			if len(raw) >= limit {
				return nil
			}
			next := append(append([]rune(nil), surface...), alt)
			if err := walk(i+1, next); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0, nil); err != nil {
		return nil, err
	}

	for _, alt := range kanjiHomophones[term] {
		key, err := g.backend.ToPhonetic(ctx, alt)
		if err != nil {
			continue
		}
		raw = append(raw, phonofix.Variant{Text: alt, PhoneticKey: key, Score: 0.85, Source: phonofix.SourceHardcoded})
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

	return phonofix.FinalizeVariants(term, raw, maxVariants, nil), nil
}
