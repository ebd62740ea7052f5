// Package phonofix corrects misspelled proper nouns by matching candidates in
// a phonetic domain (Mandarin Pinyin, English IPA, Japanese Hepburn Romaji)
// rather than a surface-orthographic one.
//
// Three layers compose an application, bottom-up:
//
//   - [PhoneticBackend]: a per-language backend wrapping an external or
//     embedded grapheme-to-phonetic engine, memoized by an LRU cache. Each
//     Engine builds its own instance. Registered per language by the
//     lang/zho, lang/eng and lang/jpn subpackages.
//   - [Engine]: long-lived per language. Owns a Backend, a Tokenizer, a
//     FuzzyGenerator and a [PhoneticConfig]. Builds lightweight [Corrector]s.
//   - [Corrector]: short-lived, built from a caller-supplied term dictionary.
//     [Corrector.Correct] rewrites misspelled spans to their canonical form.
//
// A [LanguageRouter] segments mixed-language input by Unicode script and
// dispatches each segment to the Corrector for that language; composing
// Correctors across a Router's segments is left to the caller.
//
// A lang/<code> subpackage only registers its [LanguageCapability] as a side
// effect of being imported, since registration happens in its init(). A
// caller that wants Mandarin, Japanese, or English support must blank-import
// the corresponding package:
//
//	import (
//		_ "github.com/tassa-yoniso-manasi-karoto/phonofix/lang/eng"
//		_ "github.com/tassa-yoniso-manasi-karoto/phonofix/lang/jpn"
//		_ "github.com/tassa-yoniso-manasi-karoto/phonofix/lang/zho"
//	)
package phonofix
