package eng

// dictionary maps a lower-cased English word to its IPA transcription as a
// space-separated sequence of phoneme tokens, so that per-phoneme confusion
// rules in fuzzy.go can operate positionally the same way lang/zho operates
// on Pinyin syllables and lang/jpn on kana runes. It is necessarily a small,
// curated subset (no bundled CMU-style pronouncing dictionary ships with
// this module); grapheme2Phoneme provides a deterministic fallback for
// words not listed here.
var dictionary = map[string]string{
	"phone":    "f oʊ n",
	"fone":     "f oʊ n",
	"night":    "n aɪ t",
	"knight":   "n aɪ t",
	"their":    "ð ɛ r",
	"there":    "ð ɛ r",
	"they're":  "ð ɛ r",
	"caught":   "k ɔː t",
	"cot":      "k ɒ t",
	"bat":      "b æ t",
	"bad":      "b æ d",
	"pat":      "p æ t",
	"pad":      "p æ d",
	"think":    "θ ɪ ŋ k",
	"sink":     "s ɪ ŋ k",
	"fink":     "f ɪ ŋ k",
	"light":    "l aɪ t",
	"right":    "r aɪ t",
	"write":    "r aɪ t",
	"ship":     "ʃ ɪ p",
	"sip":      "s ɪ p",
	"vision":   "v ɪ ʒ ə n",
	"physical": "f ɪ z ɪ k ə l",
	"nathan":   "n eɪ θ ə n",
	"nathon":   "n eɪ θ ə n",
	"seattle":  "s iː æ t ə l",
	"ceattle":  "s iː æ t ə l",
	"kevin":    "k ɛ v ɪ n",
	"kevan":    "k ɛ v ə n",
	"sarah":    "s ɛ r ə",
	"sara":     "s ɛ r ə",
}
