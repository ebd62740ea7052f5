// Package eng implements the English PhoneticBackend, Tokenizer, and
// FuzzyGenerator. The teacher has no English/IPA provider, so this package
// is new; its grapheme-to-phoneme design (a curated dictionary plus a
// deterministic rule-based fallback, with an optional external-engine
// escape hatch) follows the dictionary+G2P split documented in the
// temporal-IPA/tipa example's pkg/phono and pkg/g2p packages, expressed
// here in the teacher's style: a PhoneticBackend with its own LRU
// memoisation, matching lang/zho and lang/jpn.
package eng

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
	"github.com/tassa-yoniso-manasi-karoto/phonofix/internal/lru"
)

const cacheCapacity = 4096

// espeakPathEnv names the environment variable pointing at an espeak-ng
// binary, per spec.md §6's "external engine via env var + install hint"
// contract. When unset, ToPhonetic relies solely on dictionary + fallback
// rules.
const espeakPathEnv = "PHONOFIX_ESPEAK_PATH"

type backend struct {
	cache       *lru.Cache
	espeakPath  string
	initialized bool
}

func newBackend() *backend {
	return &backend{cache: lru.New(cacheCapacity), espeakPath: os.Getenv(espeakPathEnv)}
}

func (b *backend) Init(ctx context.Context) error {
	if b.initialized {
		return nil
	}
	if b.espeakPath != "" {
		if _, err := exec.LookPath(b.espeakPath); err != nil {
			return phonofix.NewBackendUnavailable("eng", "configured espeak-ng binary not found: "+err.Error(),
				"install espeak-ng or unset "+espeakPathEnv+" to fall back to the built-in dictionary/rules")
		}
	}
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

	words := strings.Fields(strings.ToLower(text))
	parts := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:\"'()")
		if w == "" {
			continue
		}
		parts = append(parts, b.phonemesFor(ctx, w))
	}
	key := strings.Join(parts, " ")
	b.cache.Put(text, key)
	return phonofix.PhoneticKey(key), nil
}

// phonemesFor resolves one lower-cased word to a space-separated phoneme
// string, preferring the curated dictionary, then an external espeak-ng
// invocation if configured, then the deterministic fallback rules.
func (b *backend) phonemesFor(ctx context.Context, word string) string {
	if p, ok := dictionary[word]; ok {
		return p
	}
	if b.espeakPath != "" {
		if p, err := b.espeakIPA(ctx, word); err == nil && p != "" {
			return p
		}
	}
	return grapheme2Phoneme(word)
}

func (b *backend) espeakIPA(ctx context.Context, word string) (string, error) {
	cmd := exec.CommandContext(ctx, b.espeakPath, "-q", "--ipa", word)
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	fields := strings.Fields(string(out))
	return strings.Join(fields, " "), nil
}
