// Package zho implements the Mandarin PhoneticBackend, Tokenizer, and
// FuzzyGenerator, registered with the phonofix core from this package's
// init(). The phonetic conversion wraps github.com/mozillazg/go-pinyin
// directly (the teacher's lang/zho/go-pinyin.go already depended on it for
// the same purpose); word segmentation optionally uses
// github.com/yanyiwu/gojieba (teacher's lang/zho/gojieba.go).
package zho

import (
	"context"
	"strings"

	"github.com/mozillazg/go-pinyin"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
	"github.com/tassa-yoniso-manasi-karoto/phonofix/internal/lru"
)

// backend converts Han text to a tone-less, space-separated Pinyin key.
// Fuzzy matching in Mandarin is tone-insensitive by design (spec.md §4.3):
// a mis-heard tone is not the kind of error this engine corrects, mis-heard
// initials/finals are.
type backend struct {
	cache       *lru.Cache
	args        pinyin.Args
	initialized bool
}

const cacheCapacity = 4096

func newBackend() *backend {
	args := pinyin.NewArgs()
	args.Style = pinyin.Normal
	args.Heteronym = false
	return &backend{cache: lru.New(cacheCapacity), args: args}
}

func (b *backend) Init(ctx context.Context) error {
	b.initialized = true
	return nil
}

func (b *backend) IsInitialized() bool { return b.initialized }

func (b *backend) Close() error { return nil }

func (b *backend) CacheStats() phonofix.CacheStats {
	return phonofix.CacheStats{Hits: b.cache.Hits(), Misses: b.cache.Misses(), Size: b.cache.Len()}
}

func (b *backend) ToPhonetic(ctx context.Context, text string) (phonofix.PhoneticKey, error) {
	if v, ok := b.cache.Get(text); ok {
		return phonofix.PhoneticKey(v), nil
	}
	syllables := pinyin.Pinyin(text, b.args)
	parts := make([]string, 0, len(syllables))
	for _, s := range syllables {
		if len(s) > 0 {
			parts = append(parts, s[0])
		}
	}
	key := strings.Join(parts, " ")
	b.cache.Put(text, key)
	return phonofix.PhoneticKey(key), nil
}
