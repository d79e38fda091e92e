package secrets

import (
	"strings"

	cerrors "github.com/PolarWolf314/cipherlab/internal/errors"
)

// Alphabet is the ordered domain of every LetterMapping.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// LetterMapping is a bijection over the 26 lowercase letters.
type LetterMapping map[rune]rune

// PermuteAlphabet shuffles Alphabet with a generator seeded from seed and
// maps each letter, in order, to its shuffled counterpart. The same seed
// always yields the same mapping.
func PermuteAlphabet(seed []byte) LetterMapping {
	shuffled := []rune(Alphabet)
	g := newGenerator(seed)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := g.randBelow(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	mapping := make(LetterMapping, len(shuffled))
	for i, letter := range Alphabet {
		mapping[letter] = shuffled[i]
	}
	return mapping
}

// Pick draws one element of candidates with a generator seeded from seed.
// Returns ErrEmptyCandidates when there is nothing to choose from.
func Pick[T any](seed []byte, candidates []T) (T, error) {
	var zero T
	if len(candidates) == 0 {
		return zero, cerrors.ErrEmptyCandidates
	}
	g := newGenerator(seed)
	return candidates[g.randBelow(len(candidates))], nil
}

// Inverse returns the mapping that undoes m.
func (m LetterMapping) Inverse() LetterMapping {
	inv := make(LetterMapping, len(m))
	for from, to := range m {
		inv[to] = from
	}
	return inv
}

// IsPermutation reports whether m maps the alphabet onto itself one to one.
func (m LetterMapping) IsPermutation() bool {
	if len(m) != len(Alphabet) {
		return false
	}
	seen := make(map[rune]bool, len(Alphabet))
	for _, letter := range Alphabet {
		to, ok := m[letter]
		if !ok || to < 'a' || to > 'z' || seen[to] {
			return false
		}
		seen[to] = true
	}
	return true
}

// String renders the images of a..z in alphabet order.
func (m LetterMapping) String() string {
	var b strings.Builder
	b.Grow(len(Alphabet))
	for _, letter := range Alphabet {
		if to, ok := m[letter]; ok {
			b.WriteRune(to)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
