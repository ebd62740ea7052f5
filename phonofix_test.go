package phonofix

import (
	"context"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a deterministic PhoneticBackend for end-to-end tests: its
// phonetic domain is just the lowercased surface text, so exact-surface
// aliases (the only kind these tests register) always land on a phonetic
// key too, without needing a real language engine.
type fakeBackend struct{ initialized bool }

func (b *fakeBackend) ToPhonetic(_ context.Context, text string) (PhoneticKey, error) {
	return PhoneticKey(toLowerASCIIOrSelf(text)), nil
}
func (b *fakeBackend) IsInitialized() bool  { return b.initialized }
func (b *fakeBackend) Init(_ context.Context) error { b.initialized = true; return nil }
func (b *fakeBackend) CacheStats() CacheStats       { return CacheStats{} }
func (b *fakeBackend) Close() error                 { return nil }

// toLowerASCIIOrSelf lowercases ASCII letters and leaves every other rune
// (Han, kana, digits, punctuation) untouched, since this fake backend's only
// job is to give every distinct surface a stable, comparable key.
func toLowerASCIIOrSelf(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'A' && r <= 'Z' {
			out[i] = r + ('a' - 'A')
		}
	}
	return string(out)
}

// fakeRuneTokenizer emits one Token per rune, which reconstructs any
// contiguous substring exactly regardless of script, letting these tests
// exercise Chinese- and Japanese-shaped scenarios without gojieba/ichiran.
type fakeRuneTokenizer struct{}

func (fakeRuneTokenizer) Tokenize(text string) []Token {
	var tokens []Token
	offset := 0
	for _, r := range text {
		w := len(string(r))
		tokens = append(tokens, Token{Text: string(r), Start: offset, End: offset + w})
		offset += w
	}
	return tokens
}

// fakeWordTokenizer splits on ASCII whitespace, preserving offsets, for
// English-shaped test scenarios.
type fakeWordTokenizer struct{}

func (fakeWordTokenizer) Tokenize(text string) []Token {
	var tokens []Token
	start := -1
	for i, r := range text {
		if r == ' ' {
			if start >= 0 {
				tokens = append(tokens, Token{Text: text[start:i], Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{Text: text[start:], Start: start, End: len(text)})
	}
	return tokens
}

// fakeFuzzy generates no variants: these tests register every alias a
// scenario needs explicitly, so they exercise Corrector matching and
// conflict resolution rather than any language's variant-generation rules
// (those are covered by lang/zho, lang/jpn, lang/eng's own tests).
type fakeFuzzy struct{}

func (fakeFuzzy) GenerateVariants(_ context.Context, _ string, _ int) ([]Variant, error) {
	return nil, nil
}

// testCapability registers a synthetic LanguageCapability under code, using
// tok as its Tokenizer and zero tolerance, so only exact or
// deliberately-aliased surfaces ever match: these tests exercise Corrector
// matching, conflict resolution, context scoring, and protection, not a
// language's fuzzy-tolerance tuning (that is covered by
// TestToleranceRejectsLowSimilarityCandidate and by each lang/<code>
// package's own tests).
func testCapability(t *testing.T, code string, tok Tokenizer, windowMax int, scripts []*unicode.RangeTable) {
	t.Helper()
	err := Register(LanguageCapability{
		Lang:              code,
		NewBackend:        func() PhoneticBackend { return &fakeBackend{} },
		NewTokenizer:      func() Tokenizer { return tok },
		NewFuzzyGenerator: func(PhoneticBackend, Tokenizer, PhoneticConfig) FuzzyGenerator { return fakeFuzzy{} },
		Tolerance:         func(int) float64 { return 0 },
		WindowMin:         1,
		WindowMax:         windowMax,
		ScriptRanges:      scripts,
	})
	require.NoError(t, err)
}

func buildCorrector(t *testing.T, lang string, termDict any, opts CorrectorOptions) *Corrector {
	t.Helper()
	engine, err := NewEngine(lang, EngineOptions{})
	require.NoError(t, err)
	c, err := engine.CreateCorrector(context.Background(), termDict, opts)
	require.NoError(t, err)
	return c
}

// --- universal invariants (spec.md §8) ---

func TestIdempotenceOnCanonical(t *testing.T) {
	testCapability(t, "eng", fakeWordTokenizer{}, 4, []*unicode.RangeTable{unicode.Latin})
	c := buildCorrector(t, "eng", map[string][]string{"Python": {"Pyton"}}, CorrectorOptions{})

	out, err := c.Correct(context.Background(), "Python", "")
	require.NoError(t, err)
	assert.Equal(t, "Python", out)
}

func TestDoubleCorrectIsStable(t *testing.T) {
	testCapability(t, "eng", fakeWordTokenizer{}, 4, []*unicode.RangeTable{unicode.Latin})
	c := buildCorrector(t, "eng", map[string][]string{
		"TensorFlow": {"ten so floor"},
		"Python":     {"Pyton"},
	}, CorrectorOptions{})

	input := "I use Pyton to write ten so floor code"
	out1, err := c.Correct(context.Background(), input, "")
	require.NoError(t, err)
	assert.Equal(t, "I use Python to write TensorFlow code", out1)

	out2, err := c.Correct(context.Background(), out1, "")
	require.NoError(t, err)
	assert.Equal(t, out1, out2, "correct(correct(x)) must equal correct(x)")
}

func TestSpanDisjointAndOffsetsMonotone(t *testing.T) {
	testCapability(t, "cmn", fakeRuneTokenizer{}, 4, []*unicode.RangeTable{unicode.Han})
	c := buildCorrector(t, "cmn", map[string][]string{
		"台北車站": {"北車"},
		"牛奶":   {"流奶"},
		"然後":   {"蘭後"},
	}, CorrectorOptions{})

	var events []Event
	c.Observe(func(ev Event) { events = append(events, ev) })

	out, err := c.Correct(context.Background(), "我在北車買了流奶,蘭後回家", "")
	require.NoError(t, err)
	assert.Equal(t, "我在台北車站買了牛奶,然後回家", out)

	require.NotEmpty(t, events)
	prevStart := -1
	prevEnd := -1
	for _, ev := range events {
		if ev.Kind != EventCorrection {
			continue
		}
		assert.Greater(t, ev.Start, prevStart, "event starts must be strictly increasing")
		assert.GreaterOrEqual(t, ev.Start, prevEnd, "accepted spans must not overlap")
		prevStart, prevEnd = ev.Start, ev.End
	}
}

func TestProtectedTermsAbsoluteProtection(t *testing.T) {
	testCapability(t, "cmn", fakeRuneTokenizer{}, 4, []*unicode.RangeTable{unicode.Han})
	c := buildCorrector(t, "cmn", map[string][]string{"台北車站": {"北側"}}, CorrectorOptions{
		ProtectedTerms: []string{"北側"},
	})

	var events []Event
	c.Observe(func(ev Event) { events = append(events, ev) })

	out, err := c.Correct(context.Background(), "我在北側等你", "")
	require.NoError(t, err)
	assert.Equal(t, "我在北側等你", out, "a protected term must never be rewritten even when it is also a registered alias")
	for _, ev := range events {
		assert.NotEqual(t, EventCorrection, ev.Kind)
	}
}

func TestDeterminismAcrossRuns(t *testing.T) {
	testCapability(t, "eng", fakeWordTokenizer{}, 4, []*unicode.RangeTable{unicode.Latin})
	dict := map[string][]string{"TensorFlow": {"ten so floor"}, "Python": {"Pyton"}}
	input := "I use Pyton to write ten so floor code"

	c1 := buildCorrector(t, "eng", dict, CorrectorOptions{})
	out1, err := c1.Correct(context.Background(), input, "")
	require.NoError(t, err)

	c2 := buildCorrector(t, "eng", dict, CorrectorOptions{})
	out2, err := c2.Correct(context.Background(), input, "")
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
}

// --- boundary behaviours (spec.md §8) ---

func TestEmptyTextReturnsEmptyNoEvents(t *testing.T) {
	testCapability(t, "eng", fakeWordTokenizer{}, 4, []*unicode.RangeTable{unicode.Latin})
	c := buildCorrector(t, "eng", map[string][]string{"Python": {"Pyton"}}, CorrectorOptions{})

	var events []Event
	c.Observe(func(ev Event) { events = append(events, ev) })

	out, err := c.Correct(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "", out)
	assert.Empty(t, events)
}

func TestSingleAliasRewrittenToCanonical(t *testing.T) {
	testCapability(t, "eng", fakeWordTokenizer{}, 4, []*unicode.RangeTable{unicode.Latin})
	c := buildCorrector(t, "eng", map[string][]string{"Python": {"Pyton"}}, CorrectorOptions{})

	out, err := c.Correct(context.Background(), "Pyton", "")
	require.NoError(t, err)
	assert.Equal(t, "Python", out)
}

func TestEmptyKeywordsMeansNoRequirement(t *testing.T) {
	testCapability(t, "eng", fakeWordTokenizer{}, 4, []*unicode.RangeTable{unicode.Latin})
	c := buildCorrector(t, "eng", map[string]TermSpec{
		"Python": {Aliases: []string{"Pyton"}},
	}, CorrectorOptions{})

	out, err := c.Correct(context.Background(), "I like Pyton", "")
	require.NoError(t, err)
	assert.Equal(t, "I like Python", out)
}

func TestChineseKeywordDisambiguation(t *testing.T) {
	testCapability(t, "cmn", fakeRuneTokenizer{}, 6, []*unicode.RangeTable{unicode.Han})
	dict := map[string]TermSpec{
		"永和豆漿":   {Aliases: []string{"永豆", "勇豆"}, Keywords: []string{"吃", "喝", "買", "宵夜"}, Weight: 0.3},
		"勇者鬥惡龍": {Aliases: []string{"勇鬥", "永鬥"}, Keywords: []string{"玩", "遊戲", "攻略"}, Weight: 0.2},
	}
	c := buildCorrector(t, "cmn", dict, CorrectorOptions{})

	out, err := c.Correct(context.Background(), "我去買永豆當宵夜,然後玩勇鬥遊戲", "")
	require.NoError(t, err)
	assert.Equal(t, "我去買永和豆漿當宵夜,然後玩勇者鬥惡龍遊戲", out)
}

func TestExcludeWhenDominatesKeywords(t *testing.T) {
	testCapability(t, "cmn", fakeRuneTokenizer{}, 6, []*unicode.RangeTable{unicode.Han})
	dict := map[string]TermSpec{
		"EKG": {Aliases: []string{"1kg"}, Keywords: []string{"設備", "醫療"}, ExcludeWhen: []string{"重", "公斤"}},
	}

	c1 := buildCorrector(t, "cmn", dict, CorrectorOptions{})
	out, err := c1.Correct(context.Background(), "這個設備有 1kg重", "")
	require.NoError(t, err)
	assert.Equal(t, "這個設備有 1kg重", out, "exclude_when must win even with a keyword present")

	c2 := buildCorrector(t, "cmn", dict, CorrectorOptions{})
	out, err = c2.Correct(context.Background(), "這個 1kg設備", "")
	require.NoError(t, err)
	assert.Equal(t, "這個 EKG設備", out)

	c3 := buildCorrector(t, "cmn", dict, CorrectorOptions{})
	out, err = c3.Correct(context.Background(), "買了 1kg的東西", "")
	require.NoError(t, err)
	assert.Equal(t, "買了 1kg的東西", out, "no keyword nearby must reject a keyword-gated term")
}

func TestToleranceRejectsLowSimilarityCandidate(t *testing.T) {
	err := Register(LanguageCapability{
		Lang:              "eng",
		NewBackend:        func() PhoneticBackend { return &fakeBackend{} },
		NewTokenizer:      func() Tokenizer { return fakeWordTokenizer{} },
		NewFuzzyGenerator: func(PhoneticBackend, Tokenizer, PhoneticConfig) FuzzyGenerator { return fakeFuzzy{} },
		Tolerance:         func(int) float64 { return 0.1 }, // reject anything more than 10% different
		WindowMin:         1,
		WindowMax:         1,
		ScriptRanges:      []*unicode.RangeTable{unicode.Latin},
	})
	require.NoError(t, err)
	c := buildCorrector(t, "eng", map[string][]string{"cat": nil}, CorrectorOptions{})

	out, err := c.Correct(context.Background(), "bat sat on the mat", "")
	require.NoError(t, err)
	assert.Equal(t, "bat sat on the mat", out, "a near-miss outside tolerance must not be rewritten")
}

// --- LanguageRouter ---

func TestLanguageRouterDispatchesByScript(t *testing.T) {
	testCapability(t, "eng", fakeWordTokenizer{}, 2, []*unicode.RangeTable{unicode.Latin})
	testCapability(t, "cmn", fakeRuneTokenizer{}, 4, []*unicode.RangeTable{unicode.Han})

	engCorrector := buildCorrector(t, "eng", map[string][]string{"Python": {"Pyton"}}, CorrectorOptions{})
	cmnCorrector := buildCorrector(t, "cmn", map[string][]string{"台北車站": {"北車"}}, CorrectorOptions{})

	router := NewLanguageRouter(map[string]*Corrector{"eng": engCorrector, "cmn": cmnCorrector}, nil).DefaultLang("eng")

	out, err := router.Correct(context.Background(), "I use Pyton 北車", "")
	require.NoError(t, err)
	assert.Equal(t, "I use Python 台北車站", out)
}
