package zho

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"unicode"

	"github.com/yanyiwu/gojieba"

	"github.com/tassa-yoniso-manasi-karoto/phonofix"
)

// dictFiles are the gojieba dictionary files this tokenizer downloads on
// first use, the same set the teacher's lang/zho/gojieba.go fetched.
var dictFiles = []string{"jieba.dict.utf8", "hmm_model.utf8", "user.dict.utf8", "idf.utf8", "stop_words.utf8"}

const dictBaseURL = "https://raw.githubusercontent.com/yanyiwu/gojieba/v1.4.6/deps/cppjieba/dict/"

// tokenizer emits one Token per gojieba word when the segmenter is
// available, falling back to one Token per Han code point otherwise (no
// network, download failure, or not yet initialized). Either way, runs of
// non-Han runes collapse into a single opaque token so the sliding window
// never splits inside one.
type tokenizer struct {
	jieba *gojieba.Jieba
}

func newTokenizer() *tokenizer { return &tokenizer{} }

// ensureJieba lazily downloads gojieba's dictionary files to the user cache
// directory and constructs the segmenter. Failure is not fatal: Tokenize
// falls back to character granularity.
func (t *tokenizer) ensureJieba(ctx context.Context) error {
	if t.jieba != nil {
		return nil
	}
	dir, err := dictDir()
	if err != nil {
		return err
	}
	paths := make([]string, len(dictFiles))
	for i, name := range dictFiles {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			if err := download(ctx, dictBaseURL+name, p); err != nil {
				return err
			}
		}
		paths[i] = p
	}
	t.jieba = gojieba.NewJieba(paths...)
	return nil
}

func dictDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "phonofix", "gojieba")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("zho: downloading %s: status %d", url, resp.StatusCode)
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, resp.Body)
	return err
}

func (t *tokenizer) Tokenize(text string) []phonofix.Token {
	if err := t.ensureJieba(context.Background()); err == nil {
		return t.tokenizeWithJieba(text)
	}
	return tokenizeByRune(text)
}

func (t *tokenizer) tokenizeWithJieba(text string) []phonofix.Token {
	words := t.jieba.Cut(text, true)
	var tokens []phonofix.Token
	offset := 0
	for _, w := range words {
		start := offset
		offset += len(w)
		if w == "" {
			continue
		}
		if containsHan(w) {
			tokens = append(tokens, phonofix.Token{Text: w, Start: start, End: offset})
			continue
		}
		if len(tokens) > 0 && !containsHanToken(tokens[len(tokens)-1]) {
			last := tokens[len(tokens)-1]
			tokens[len(tokens)-1] = phonofix.Token{Text: text[last.Start:offset], Start: last.Start, End: offset}
			continue
		}
		tokens = append(tokens, phonofix.Token{Text: w, Start: start, End: offset})
	}
	return tokens
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

func containsHanToken(t phonofix.Token) bool { return containsHan(t.Text) }

// tokenizeByRune is the character-granularity fallback: one Token per Han
// code point, non-Han runs collapsed.
func tokenizeByRune(text string) []phonofix.Token {
	var tokens []phonofix.Token
	runes := []rune(text)
	offset := 0
	i := 0
	for i < len(runes) {
		r := runes[i]
		w := len(string(r))
		if unicode.Is(unicode.Han, r) {
			tokens = append(tokens, phonofix.Token{Text: string(r), Start: offset, End: offset + w})
			offset += w
			i++
			continue
		}
		start := offset
		for i < len(runes) && !unicode.Is(unicode.Han, runes[i]) {
			offset += len(string(runes[i]))
			i++
		}
		tokens = append(tokens, phonofix.Token{Text: text[start:offset], Start: start, End: offset})
	}
	return tokens
}
