package zho

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/mozillazg/go-pinyin"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
)

// initialGroups are sets of Mandarin initials commonly confused by mishearing
// or by regional accent (spec.md §4.3): within a group, any member may stand
// in for any other.
var initialGroups = [][]string{
	{"z", "zh"},
	{"c", "ch"},
	{"s", "sh"},
	{"n", "l"},
	{"r", "l"},
	{"f", "h"},
}

// finalPairs are final/rhyme confusions, each direction tried independently.
var finalPairs = [][2]string{
	{"in", "ing"},
	{"en", "eng"},
	{"an", "ang"},
	{"ian", "iang"},
	{"uan", "uang"},
	{"uan", "an"},
	{"ong", "eng"},
	{"uo", "o"},
	{"ue", "ie"},
}

// specialSyllableMap holds whole-syllable confusions that don't decompose
// cleanly into an initial/final swap.
var specialSyllableMap = map[string][]string{
	"fa":  {"hua"},
	"hua": {"fa"},
	"xue": {"xie"},
	"xie": {"xue"},
	"ran": {"lan", "yan"},
}

// reverseSyllable maps a bare Pinyin syllable to one common hanzi that reads
// that way, used to realize a phonetically-altered syllable sequence back
// into a literal surface string. It is necessarily a small, curated subset
// of Mandarin's syllable inventory (go-pinyin has no reverse lookup of its
// own); a combo whose altered syllable isn't listed here cannot be
// realized as a variant and is skipped (see the walk in GenerateVariants).
var reverseSyllable = map[string]string{
	"zhong": "中", "zong": "总", "guo": "国", "huo": "或",
	"bei": "北", "bai": "百", "jing": "京", "jin": "金",
	"shi": "市", "si": "四", "si2": "思", "shang": "上", "sang": "桑",
	"nan": "南", "lan": "蓝", "ran": "然", "yan": "烟",
	"dong": "东", "deng": "等", "he": "河", "fa": "发", "hua": "华",
	"xue": "学", "xie": "谢",
	"zhang": "张", "zang": "藏", "chang": "长", "cang": "仓",
	"wang": "王", "huang": "黄", "hui": "会",
	"li": "力", "ni": "你", "zhi": "之", "chi": "吃", "shi2": "十",
	"chen": "陈", "cheng": "程", "sheng": "生", "seng": "僧",
	"min": "民", "ming": "明", "xin": "新", "xing": "行",
	"wen": "文", "weng": "翁", "feng": "风", "hen": "很",
	"lao": "老", "tian": "天", "tiang": "天",
	"qing": "青", "qin": "秦",
	"yin": "银", "ying": "英",
	"kai": "开", "gai": "改",
	"mao": "毛", "mo": "莫",
	"hong": "红", "heng": "恒",
}

type fuzzyGenerator struct {
	cfg  phonofix.PhoneticConfig
	args pinyin.Args
}

func newFuzzyGenerator(cfg phonofix.PhoneticConfig) *fuzzyGenerator {
	args := pinyin.NewArgs()
	args.Style = pinyin.Normal
	args.Heteronym = false
	return &fuzzyGenerator{cfg: cfg, args: args}
}

// syllableOf returns rune r's bare Pinyin syllable, or "" if r isn't Han.
func (g *fuzzyGenerator) syllableOf(r rune) string {
	result := pinyin.Pinyin(string(r), g.args)
	if len(result) == 0 || len(result[0]) == 0 {
		return ""
	}
	return result[0][0]
}

func splitSyllable(syl string) (initial, final string) {
	for _, in := range []string{"zh", "ch", "sh", "b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h", "j", "q", "x", "r", "z", "c", "s", "y", "w"} {
		if strings.HasPrefix(syl, in) {
			return in, syl[len(in):]
		}
	}
	return "", syl
}

// alternatesFor returns every alternate syllable reachable from syl by a
// single initial swap, final swap, or special-syllable substitution. syl
// itself is always included first.
func (g *fuzzyGenerator) alternatesFor(syl string) []string {
	out := []string{syl}
	seen := map[string]bool{syl: true}
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	initial, final := splitSyllable(syl)

	groups := append([][]string(nil), initialGroups...)
	for _, extra := range g.cfg.ExtraFuzzyInitialPairs {
		groups = append(groups, []string{extra[0], extra[1]})
	}
	for _, grp := range groups {
		member := false
		for _, m := range grp {
			if m == initial {
				member = true
				break
			}
		}
		if !member {
			continue
		}
		for _, m := range grp {
			if m != initial {
				add(m + final)
			}
		}
	}

	pairs := append([][2]string(nil), finalPairs...)
	for _, extra := range g.cfg.ExtraFuzzyFinalPairs {
		pairs = append(pairs, [2]string{extra[0], extra[1]})
	}
	for _, p := range pairs {
		if final == p[0] {
			add(initial + p[1])
		}
		if final == p[1] {
			add(initial + p[0])
		}
	}

	for _, alt := range specialSyllableMap[syl] {
		add(alt)
	}

	return out
}

func maxCombos(wordLen int) int {
	n := 100 * wordLen
	if n > 300 {
		n = 300
	}
	return n
}

// GenerateVariants implements phonofix.FuzzyGenerator for Mandarin: it
// swaps initials/finals character by character, realizes each resulting
// syllable sequence back into hanzi via reverseSyllable, and finalizes
// through phonofix.FinalizeVariants.
func (g *fuzzyGenerator) GenerateVariants(ctx context.Context, term string, maxVariants int) ([]phonofix.Variant, error) {
	runes := []rune(term)
	baseSyllables := make([]string, len(runes))
	altLists := make([][]string, len(runes))
	for i, r := range runes {
		syl := g.syllableOf(r)
		baseSyllables[i] = syl
		if syl == "" {
			altLists[i] = []string{""}
			continue
		}
		altLists[i] = g.alternatesFor(syl)
	}

	limit := maxCombos(len(runes))
	var raw []phonofix.Variant

	var walk func(i int, syllables []string, surface []rune)
	walk = func(i int, syllables []string, surface []rune) {
		if len(raw) >= limit {
			return
		}
		if i == len(runes) {
			combo := append([]string(nil), syllables...)
			text := string(surface)
			if text == term {
				return
			}
			baseKey := strings.Join(baseSyllables, " ")
			comboKey := strings.Join(combo, " ")
			score := phonofix.NormalizedLevenshtein(levenshtein.ComputeDistance, baseKey, comboKey)
			raw = append(raw, phonofix.Variant{
				Text:        text,
				PhoneticKey: phonofix.PhoneticKey(comboKey),
				Score:       score,
				Source:      phonofix.SourcePhoneticFuzzy,
			})
			return
		}
		if baseSyllables[i] == "" {
			walk(i+1, append(syllables, ""), append(surface, runes[i]))
			return
		}
		for _, alt := range altLists[i] {
			if len(raw) >= limit {
				return
			}
			var rr rune
			if alt == baseSyllables[i] {
				rr = runes[i]
			} else {
				hz, ok := reverseSyllable[alt]
				if !ok {
					continue
				}
				rr = []rune(hz)[0]
			}
			walk(i+1, append(syllables, alt), append(surface, rr))
		}
	}
	walk(0, nil, nil)

	for canonical, aliases := range g.cfg.ExtraHardcodedVariants {
		if canonical != term {
			continue
		}
		for _, a := range aliases {
			var syllables []string
			for _, s := range pinyin.Pinyin(a, g.args) {
				if len(s) > 0 {
					syllables = append(syllables, s[0])
				}
			}
			raw = append(raw, phonofix.Variant{Text: a, PhoneticKey: phonofix.PhoneticKey(strings.Join(syllables, " ")), Score: 0.9, Source: phonofix.SourceHardcoded})
		}
	}

	return phonofix.FinalizeVariants(term, raw, maxVariants, nil), nil
}
