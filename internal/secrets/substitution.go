package secrets

import (
	"strings"
	"unicode"
)

// ApplyCipher substitutes every lowercase letter of text through mapping.
//
// Characters that are not letters pass through unchanged. Letters outside
// the mapping's domain, uppercase included, are dropped from the output, so
// excerpts must be lowercase if their full text is to survive.
func ApplyCipher(text string, mapping LetterMapping) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !unicode.IsLetter(r) {
			b.WriteRune(r)
			continue
		}
		if to, ok := mapping[r]; ok {
			b.WriteRune(to)
		}
	}
	return b.String()
}

// ReverseCipher recovers lowercase plaintext from text enciphered with mapping.
func ReverseCipher(text string, mapping LetterMapping) string {
	return ApplyCipher(text, mapping.Inverse())
}
