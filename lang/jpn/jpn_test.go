package jpn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKanaAlternatesDakuten(t *testing.T) {
	alts := kanaAlternates('か')
	assert.Contains(t, alts, 'が')
}

func TestKanaAlternatesKatakana(t *testing.T) {
	alts := kanaAlternates('カ')
	assert.Contains(t, alts, 'ガ')
}

func TestKanaAlternatesSpecialPair(t *testing.T) {
	alts := kanaAlternates('じ')
	assert.Contains(t, alts, 'ぢ')
}

func TestTokenizerGroupsJapaneseScriptRuns(t *testing.T) {
	tok := newTokenizer()
	tokens := tok.Tokenize("東京タワー123")
	assert.NotEmpty(t, tokens)
	assert.Equal(t, "東", tokens[0].Text)
}

func TestKanjiHomophonesHasSymmetricEntries(t *testing.T) {
	assert.Contains(t, kanjiHomophones["渡辺"], "渡部")
	assert.Contains(t, kanjiHomophones["渡部"], "渡辺")
}
