package eng

import "strings"

// digraphRules are tried longest-match-first against the remaining input, a
// minimal deterministic English grapheme-to-phoneme pass for words absent
// from dictionary. It is intentionally simple: a handful of common digraphs
// plus a single-letter fallback table, good enough to place an
// out-of-dictionary word in roughly the right phoneme neighbourhood for
// fuzzy matching, not a full G2P model.
var digraphRules = []struct {
	graphemes string
	phoneme   string
}{
	{"tion", "ʃ ə n"},
	{"sion", "ʒ ə n"},
	{"ough", "ʌ f"},
	{"augh", "ɔː"},
	{"eigh", "eɪ"},
	{"ch", "tʃ"},
	{"sh", "ʃ"},
	{"th", "θ"},
	{"ph", "f"},
	{"wh", "w"},
	{"ck", "k"},
	{"ng", "ŋ"},
	{"qu", "k w"},
	{"ee", "iː"},
	{"ea", "iː"},
	{"oo", "uː"},
	{"ou", "aʊ"},
	{"ow", "aʊ"},
	{"ai", "eɪ"},
	{"ay", "eɪ"},
	{"oy", "ɔɪ"},
	{"oi", "ɔɪ"},
	{"ie", "aɪ"},
}

var letterPhoneme = map[byte]string{
	'a': "æ", 'b': "b", 'c': "k", 'd': "d", 'e': "ɛ", 'f': "f", 'g': "g",
	'h': "h", 'i': "ɪ", 'j': "dʒ", 'k': "k", 'l': "l", 'm': "m", 'n': "n",
	'o': "ɒ", 'p': "p", 'q': "k", 'r': "r", 's': "s", 't': "t", 'u': "ʌ",
	'v': "v", 'w': "w", 'x': "k s", 'y': "j", 'z': "z",
}

// grapheme2Phoneme transcribes word by greedily matching digraphRules
// against the remaining suffix, falling back to one phoneme per letter.
func grapheme2Phoneme(word string) string {
	var out []string
	i := 0
	for i < len(word) {
		matched := false
		for _, rule := range digraphRules {
			if strings.HasPrefix(word[i:], rule.graphemes) {
				out = append(out, rule.phoneme)
				i += len(rule.graphemes)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if p, ok := letterPhoneme[word[i]]; ok {
			out = append(out, p)
		}
		i++
	}
	return strings.Join(out, " ")
}
