package corpus

import (
	"slices"

	"github.com/PolarWolf314/cipherlab/internal/secrets"
)

// Corpus is an immutable pair of ordered candidate lists.
type Corpus struct {
	excerpts  []string
	passwords []string
}

// New builds a Corpus from copies of the given lists.
func New(excerpts, passwords []string) *Corpus {
	return &Corpus{
		excerpts:  slices.Clone(excerpts),
		passwords: slices.Clone(passwords),
	}
}

// Excerpts returns a copy of the excerpt candidates in load order.
func (c *Corpus) Excerpts() []string {
	return slices.Clone(c.excerpts)
}

// Passwords returns a copy of the password candidates in load order.
func (c *Corpus) Passwords() []string {
	return slices.Clone(c.passwords)
}

// PickExcerpt returns the excerpt selected by seed without copying the list.
func (c *Corpus) PickExcerpt(seed []byte) (string, error) {
	return secrets.Pick(seed, c.excerpts)
}

// PickPassword returns the password selected by seed without copying the list.
func (c *Corpus) PickPassword(seed []byte) (string, error) {
	return secrets.Pick(seed, c.passwords)
}

// Stats summarises corpus sizes for diagnostics.
type Stats struct {
	Excerpts  int `json:"excerpts"`
	Passwords int `json:"passwords"`
}

// Stats returns the number of candidates in each list.
func (c *Corpus) Stats() Stats {
	return Stats{Excerpts: len(c.excerpts), Passwords: len(c.passwords)}
}
