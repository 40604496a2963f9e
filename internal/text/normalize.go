// Package text turns raw phrases and query input into the canonical tokens
// and trigrams the index operates on. Everything here is deterministic and
// stateless.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldFixups covers letters whose diacritic is not a combining mark, so NFKD
// decomposition leaves them untouched (the stroke of ł is part of the glyph).
var foldFixups = map[rune]string{
	'ł': "l",
	'Ł': "L",
	'đ': "d",
	'Đ': "D",
	'ø': "o",
	'Ø': "O",
	'ß': "ss",
	'æ': "ae",
	'Æ': "AE",
}

var markStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Fold lowercases s and strips diacritics: compatibility decomposition,
// combining mark removal, the fixup table above, then full case folding.
func Fold(s string) string {
	stripped, _, err := transform.String(markStripper, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if repl, ok := foldFixups[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// Tokenize folds s and splits it into maximal runs of letters and digits,
// in source order. Punctuation, separators and symbols never survive.
func Tokenize(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
