// Package jpn implements the Japanese PhoneticBackend, Tokenizer, and
// FuzzyGenerator, registered from this package's init(). Phonetic
// conversion wraps github.com/tassa-yoniso-manasi-karoto/go-ichiran, the
// same docker-wrapped morphological analyzer the teacher's
// lang/jpn/ichiran.go used, taking its Hepburn Romaji reading as the
// phonetic key instead of building a token pipeline around it.
package jpn

import (
	"context"
	"strings"

	ichiran "github.com/tassa-yoniso-manasi-karoto/go-ichiran"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
	"github.com/tassa-yoniso-manasi-karoto/phonofix/internal/lru"
)

const cacheCapacity = 4096

type backend struct {
	cache       *lru.Cache
	initialized bool
}

func newBackend() *backend {
	return &backend{cache: lru.New(cacheCapacity)}
}

func (b *backend) Init(ctx context.Context) error {
	if b.initialized {
		return nil
	}
	if err := ichiran.InitWithContext(ctx); err != nil {
		return phonofix.NewBackendUnavailable("jpn", err.Error(), "ichiran requires a running docker daemon; see github.com/tassa-yoniso-manasi-karoto/go-ichiran")
	}
	b.initialized = true
	return nil
}

func (b *backend) IsInitialized() bool { return b.initialized }

func (b *backend) Close() error {
	if !b.initialized {
		return nil
	}
	return ichiran.Close()
}

func (b *backend) CacheStats() phonofix.CacheStats {
	return phonofix.CacheStats{Hits: b.cache.Hits(), Misses: b.cache.Misses(), Size: b.cache.Len()}
}

func (b *backend) ToPhonetic(ctx context.Context, text string) (phonofix.PhoneticKey, error) {
	if v, ok := b.cache.Get(text); ok {
		return phonofix.PhoneticKey(v), nil
	}
	tokens, err := ichiran.AnalyzeWithContext(ctx, text)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(*tokens))
	for _, t := range *tokens {
		if t.Romaji != "" {
			parts = append(parts, strings.ToLower(t.Romaji))
		}
	}
	key := normalizeRomaji(strings.Join(parts, " "))
	b.cache.Put(text, key)
	return phonofix.PhoneticKey(key), nil
}

// normalizeRomaji folds long-vowel marks and common transliteration
// variance (ou/oo -> o, geminate doubling kept) so that two Hepburn
// renderings of the same underlying mora compare equal.
func normalizeRomaji(s string) string {
	replacer := strings.NewReplacer(
		"ā", "a", "ī", "i", "ū", "u", "ē", "e", "ō", "o",
		"ou", "o", "oo", "o", "uu", "u",
	)
	return replacer.Replace(s)
}
