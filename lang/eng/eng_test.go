package eng

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
)

func TestBackendUsesDictionaryOverFallback(t *testing.T) {
	b := newBackend()
	require.NoError(t, b.Init(context.Background()))
	key, err := b.ToPhonetic(context.Background(), "phone")
	require.NoError(t, err)
	assert.Equal(t, phonofix.PhoneticKey("f oʊ n"), key)
}

func TestGrapheme2PhonemeFallbackIsDeterministic(t *testing.T) {
	a := grapheme2Phoneme("blargo")
	b := grapheme2Phoneme("blargo")
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestTokenizerSplitsOnPunctuation(t *testing.T) {
	tok := newTokenizer()
	tokens := tok.Tokenize("hello, world!")
	require.Len(t, tokens, 2)
	assert.Equal(t, "hello", tokens[0].Text)
	assert.Equal(t, "world", tokens[1].Text)
}

func TestGenerateVariantsPhonemeSimilar(t *testing.T) {
	b := newBackend()
	require.NoError(t, b.Init(context.Background()))
	g := newFuzzyGenerator(b, phonofix.PhoneticConfig{})

	variants, err := g.GenerateVariants(context.Background(), "think", 30)
	require.NoError(t, err)
	require.NotEmpty(t, variants)
	var keys []phonofix.PhoneticKey
	for _, v := range variants {
		keys = append(keys, v.PhoneticKey)
	}
	assert.Contains(t, keys, phonofix.PhoneticKey("s ɪ ŋ k"))
}

func TestSyllableSplit(t *testing.T) {
	_, ok := syllableSplit("short")
	assert.False(t, ok)
	text, ok := syllableSplit("sealink")
	if ok {
		assert.Contains(t, text, " ")
	}
}

func TestAcronymSpacing(t *testing.T) {
	text, ok := acronymSpacing("API")
	require.True(t, ok)
	assert.Equal(t, "a p i", text)

	_, ok = acronymSpacing("Python")
	assert.False(t, ok, "a mixed-case word is not an acronym")
}

func TestGenerateVariantsAppliesHardcodedRules(t *testing.T) {
	b := newBackend()
	require.NoError(t, b.Init(context.Background()))
	g := newFuzzyGenerator(b, phonofix.PhoneticConfig{})

	variants, err := g.GenerateVariants(context.Background(), "EKG", 30)
	require.NoError(t, err)
	var texts []string
	for _, v := range variants {
		texts = append(texts, v.Text)
	}
	assert.Contains(t, texts, "1kg", "digit/letter confusion rule")
	assert.Contains(t, texts, "e k g", "acronym-spacing rule")

	variants, err = g.GenerateVariants(context.Background(), "TensorFlow", 30)
	require.NoError(t, err)
	texts = nil
	for _, v := range variants {
		texts = append(texts, v.Text)
	}
	assert.Contains(t, texts, "ten so floor", "curated syllable respelling")
}
