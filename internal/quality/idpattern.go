package quality

import (
	"strings"
	"unicode"
)

// IsIdentifierName reports whether a column name designates an
// identifier column. The name is split into words on separators and
// camel-case boundaries; it qualifies when any word is "id" in any
// casing. Substring hits inside a word do not count, so "width" and
// "rapid" stay out while "user_id", "userId" and "id_column" match.
func IsIdentifierName(name string) bool {
	for _, word := range splitWords(name) {
		if strings.EqualFold(word, "id") {
			return true
		}
	}
	return false
}

// splitWords breaks an identifier into words. Anything that is not a
// letter or digit separates words; within a run, a lower-to-upper
// transition starts a new word and an uppercase run followed by a
// capitalized word keeps the run as its own word ("APIId" gives
// "API", "Id").
func splitWords(name string) []string {
	var words []string
	for _, field := range strings.FieldsFunc(name, isSeparator) {
		words = append(words, splitCamel(field)...)
	}
	return words
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func splitCamel(s string) []string {
	runes := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := unicode.IsUpper(cur) && (unicode.IsLower(prev) || unicode.IsDigit(prev))
		if !boundary && unicode.IsUpper(prev) && unicode.IsUpper(cur) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			boundary = true
		}
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}
