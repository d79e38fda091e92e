package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	cerrors "github.com/PolarWolf314/cipherlab/internal/errors"
	"gopkg.in/yaml.v3"
)

// Record is one entry of the excerpt file. Only Excerpt is used for
// selection; the other fields are carried for tooling.
type Record struct {
	Excerpt *string `json:"excerpt" yaml:"excerpt"`
	Title   string  `json:"title,omitempty" yaml:"title,omitempty"`
	Author  string  `json:"author,omitempty" yaml:"author,omitempty"`
}

// LoadExcerpts reads the excerpt records at path and returns their excerpt
// fields in file order. Paths ending in .yaml or .yml are parsed as YAML.
func LoadExcerpts(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading excerpts %s: %v", cerrors.ErrCorpusUnavailable, path, err)
	}

	records, err := parseRecords(path, data)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing excerpts %s: %v", cerrors.ErrCorpusUnavailable, path, err)
	}

	excerpts := make([]string, 0, len(records))
	for _, r := range records {
		if r.Excerpt == nil {
			continue
		}
		excerpts = append(excerpts, *r.Excerpt)
	}
	return excerpts, nil
}

func parseRecords(path string, data []byte) ([]Record, error) {
	var records []Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// LoadPasswords reads one password per line from path. Line boundaries are
// the same set Python's str.splitlines uses: \n, \r, \r\n, \v, \f,
// \x1c, \x1d, \x1e, U+0085, U+2028 and U+2029. A trailing boundary does not
// add an empty candidate; blank lines in the middle are kept.
func LoadPasswords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading passwords %s: %v", cerrors.ErrCorpusUnavailable, path, err)
	}
	return splitLines(string(data)), nil
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func splitLines(text string) []string {
	var lines []string
	start := 0
	for i, r := range text {
		if i < start || !isLineBoundary(r) {
			continue
		}
		lines = append(lines, text[start:i])
		start = i + utf8.RuneLen(r)
		if r == '\r' && strings.HasPrefix(text[start:], "\n") {
			start++
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// Loader loads a corpus from disk once and serves the cached copy afterwards.
type Loader struct {
	ExcerptsPath  string
	PasswordsPath string

	mu     sync.Mutex
	corpus *Corpus
}

// NewLoader returns a Loader for the given files.
func NewLoader(excerptsPath, passwordsPath string) *Loader {
	return &Loader{ExcerptsPath: excerptsPath, PasswordsPath: passwordsPath}
}

// Load returns the cached corpus, reading both files on first use. Errors
// wrap ErrCorpusUnavailable and leave the cache empty so the next call retries.
func (l *Loader) Load() (*Corpus, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.corpus != nil {
		return l.corpus, nil
	}

	excerpts, err := LoadExcerpts(l.ExcerptsPath)
	if err != nil {
		return nil, err
	}
	passwords, err := LoadPasswords(l.PasswordsPath)
	if err != nil {
		return nil, err
	}

	l.corpus = &Corpus{excerpts: excerpts, passwords: passwords}
	return l.corpus, nil
}

// Static is a Source that always returns the same corpus.
type Static struct {
	Corpus *Corpus
}

// Load returns the wrapped corpus.
func (s Static) Load() (*Corpus, error) {
	return s.Corpus, nil
}

// Source is anything that can supply a corpus.
type Source interface {
	Load() (*Corpus, error)
}
