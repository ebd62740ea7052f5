package zho

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
)

func TestBackendToPhoneticIsDeterministic(t *testing.T) {
	b := newBackend()
	require.NoError(t, b.Init(context.Background()))

	k1, err := b.ToPhonetic(context.Background(), "北京")
	require.NoError(t, err)
	k2, err := b.ToPhonetic(context.Background(), "北京")
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.NotEmpty(t, k1)
}

func TestTokenizerSplitsHanAndCollapsesOther(t *testing.T) {
	tokens := tokenizeByRune("北京123")
	require.Len(t, tokens, 3)
	assert.Equal(t, "北", tokens[0].Text)
	assert.Equal(t, "京", tokens[1].Text)
	assert.Equal(t, "123", tokens[2].Text)
}

func TestSplitSyllable(t *testing.T) {
	initial, final := splitSyllable("zhong")
	assert.Equal(t, "zh", initial)
	assert.Equal(t, "ong", final)

	initial, final = splitSyllable("an")
	assert.Equal(t, "", initial)
	assert.Equal(t, "an", final)
}

func TestGenerateVariantsNeverReturnsTermItself(t *testing.T) {
	g := newFuzzyGenerator(phonofix.PhoneticConfig{})
	variants, err := g.GenerateVariants(context.Background(), "张三", 30)
	require.NoError(t, err)
	for _, v := range variants {
		assert.NotEqual(t, "张三", v.Text)
	}
}

func TestAlternatesForIncludesInitialGroupMembers(t *testing.T) {
	g := newFuzzyGenerator(phonofix.PhoneticConfig{})
	alts := g.alternatesFor("zhong")
	assert.Contains(t, alts, "zong")
}
