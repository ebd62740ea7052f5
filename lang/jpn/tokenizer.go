package jpn

import (
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
)

// isJapanese reports whether r belongs to one of the three scripts Japanese
// text is composed of: Han (kanji), Hiragana, or Katakana.
func isJapanese(r rune) bool {
	return unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r)
}

// tokenizer walks text by grapheme cluster (github.com/rivo/uniseg), so a
// character followed by a combining mark (e.g. a combining dakuten) stays a
// single matchable unit, then groups clusters the same way lang/zho does:
// one Token per Japanese-script cluster, runs of everything else collapsed.
// The long-vowel mark ー is in none of the Han, Hiragana or Katakana tables,
// so it is not Japanese-script here and joins the run of other runes.
type tokenizer struct{}

func newTokenizer() *tokenizer { return &tokenizer{} }

func (t *tokenizer) Tokenize(text string) []phonofix.Token {
	var tokens []phonofix.Token
	gr := uniseg.NewGraphemes(text)

	var pendingStart = -1
	var pendingEnd int

	flushPending := func() {
		if pendingStart >= 0 {
			tokens = append(tokens, phonofix.Token{Text: text[pendingStart:pendingEnd], Start: pendingStart, End: pendingEnd})
			pendingStart = -1
		}
	}

	for gr.Next() {
		start, end := gr.Positions()
		cluster := gr.Runes()
		if len(cluster) > 0 && isJapanese(cluster[0]) {
			flushPending()
			tokens = append(tokens, phonofix.Token{Text: text[start:end], Start: start, End: end})
			continue
		}
		if pendingStart < 0 {
			pendingStart = start
		}
		pendingEnd = end
	}
	flushPending()

	return tokens
}
