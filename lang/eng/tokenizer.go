package eng

import (
	"unicode"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
)

// tokenizer splits text into words at whitespace and punctuation boundaries,
// matching the word-granularity contract of phonofix.Tokenizer for
// space-delimited scripts: runs of letters/digits form one Token each,
// everything else (spaces, punctuation) is dropped from the matchable
// stream but keeps byte offsets exact.
type tokenizer struct{}

func newTokenizer() *tokenizer { return &tokenizer{} }

func (t *tokenizer) Tokenize(text string) []phonofix.Token {
	var tokens []phonofix.Token
	runes := []rune(text)
	i := 0
	offset := 0
	for i < len(runes) {
		r := runes[i]
		if !isWordRune(r) {
			offset += len(string(r))
			i++
			continue
		}
		start := offset
		for i < len(runes) && isWordRune(runes[i]) {
			offset += len(string(runes[i]))
			i++
		}
		tokens = append(tokens, phonofix.Token{Text: text[start:offset], Start: start, End: offset})
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
}
