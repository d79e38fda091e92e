package secrets

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	cerrors "github.com/PolarWolf314/cipherlab/internal/errors"
)

// Expected values below were produced by CPython's random module:
// random.seed(key); random.shuffle(letters) / random.choice(candidates).

func TestPermuteAlphabetKnownAnswer(t *testing.T) {
	tests := []struct {
		identity string
		want     string
	}{
		{"123456789", "apxvyruektjzcdwgfqmonlsibh"},
		{"1", "lkughnaofzxjpwvqcbitsdrmey"},
		{"42", "lkrxqanuzhsocembiydwfpvgjt"},
		{"20250001", "oznwrsidcjahlmpegqvfyubxtk"},
	}

	for _, tt := range tests {
		t.Run(tt.identity, func(t *testing.T) {
			got := PermuteAlphabet(DeriveKey(tt.identity)).String()
			if got != tt.want {
				t.Errorf("PermuteAlphabet(%s) = %s, want %s", tt.identity, got, tt.want)
			}
		})
	}
}

func TestPermuteAlphabetSplitSeed(t *testing.T) {
	keys, err := DeriveKeySet("123456789", KeyModeSplit)
	if err != nil {
		t.Fatalf("DeriveKeySet failed: %v", err)
	}
	if got := PermuteAlphabet(keys.Seed).String(); got != "vlsbfxmazpqihedtnwrockyjgu" {
		t.Errorf("split-mode mapping = %s", got)
	}
}

func TestPermuteAlphabetIsBijection(t *testing.T) {
	for i := 0; i < 500; i++ {
		identity := fmt.Sprintf("%d", 1000+i*7919)
		mapping := PermuteAlphabet(DeriveKey(identity))
		if !mapping.IsPermutation() {
			t.Fatalf("mapping for %s is not a permutation: %s", identity, mapping)
		}
	}
}

func TestPermuteAlphabetIsDeterministic(t *testing.T) {
	seed := DeriveKey("31415926")
	first := PermuteAlphabet(seed).String()

	// Interleave unrelated draws to make sure no state leaks between calls.
	for i := 0; i < 5; i++ {
		if _, err := Pick(DeriveKey("27182818"), []int{1, 2, 3, 4, 5}); err != nil {
			t.Fatalf("Pick failed: %v", err)
		}
		if got := PermuteAlphabet(seed).String(); got != first {
			t.Fatalf("PermuteAlphabet changed between calls: %s vs %s", got, first)
		}
	}
}

func TestPermuteAlphabetConcurrent(t *testing.T) {
	seed := DeriveKey("123456789")
	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = PermuteAlphabet(seed).String()
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != "apxvyruektjzcdwgfqmonlsibh" {
			t.Errorf("goroutine %d got %s", i, got)
		}
	}
}

func TestPickKnownAnswer(t *testing.T) {
	passwords := []string{"password", "letmein", "dragon", "sunshine", "qwerty"}
	tests := []struct {
		identity string
		want     string
	}{
		{"123456789", "letmein"},
		{"1", "letmein"},
		{"42", "qwerty"},
		{"20250001", "dragon"},
	}

	for _, tt := range tests {
		t.Run(tt.identity, func(t *testing.T) {
			got, err := Pick(DeriveKey(tt.identity), passwords)
			if err != nil {
				t.Fatalf("Pick failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Pick(%s) = %q, want %q", tt.identity, got, tt.want)
			}
		})
	}
}

func TestPickIntegers(t *testing.T) {
	tests := []struct {
		identity string
		n        int
		want     int
	}{
		{"1", 10, 2},
		{"1", 3, 0},
		{"42", 10, 9},
		{"42", 3, 2},
		{"20250001", 10, 5},
		{"20250001", 3, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.identity, tt.n), func(t *testing.T) {
			candidates := make([]int, tt.n)
			for i := range candidates {
				candidates[i] = i
			}
			got, err := Pick(DeriveKey(tt.identity), candidates)
			if err != nil {
				t.Fatalf("Pick failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestPickScenario(t *testing.T) {
	got, err := Pick(DeriveKey("123456789"), []string{"hello world", "abc"})
	if err != nil {
		t.Fatalf("Pick failed: %v", err)
	}
	if got != "hello world" {
		t.Errorf("Expected %q, got %q", "hello world", got)
	}
}

func TestPickSingleCandidate(t *testing.T) {
	got, err := Pick(DeriveKey("7"), []string{"only"})
	if err != nil {
		t.Fatalf("Pick failed: %v", err)
	}
	if got != "only" {
		t.Errorf("Expected %q, got %q", "only", got)
	}
}

func TestPickEmptyCandidates(t *testing.T) {
	_, err := Pick(DeriveKey("123456789"), []string{})
	if !errors.Is(err, cerrors.ErrEmptyCandidates) {
		t.Errorf("Expected ErrEmptyCandidates, got %v", err)
	}

	_, err = Pick[string](DeriveKey("123456789"), nil)
	if !errors.Is(err, cerrors.ErrEmptyCandidates) {
		t.Errorf("Expected ErrEmptyCandidates for nil slice, got %v", err)
	}
}

func TestPickStaysInRange(t *testing.T) {
	for n := 1; n <= 64; n++ {
		candidates := make([]int, n)
		for i := range candidates {
			candidates[i] = i
		}
		for id := 0; id < 20; id++ {
			got, err := Pick(DeriveKey(fmt.Sprint(id)), candidates)
			if err != nil {
				t.Fatalf("Pick failed: %v", err)
			}
			if got < 0 || got >= n {
				t.Fatalf("Pick over %d candidates returned %d", n, got)
			}
		}
	}
}

func TestLetterMappingInverse(t *testing.T) {
	mapping := PermuteAlphabet(DeriveKey("123456789"))
	inverse := mapping.Inverse()
	for _, letter := range Alphabet {
		if inverse[mapping[letter]] != letter {
			t.Errorf("inverse does not undo mapping for %c", letter)
		}
	}
}

func TestLetterMappingIsPermutationRejectsBrokenMappings(t *testing.T) {
	identity := make(LetterMapping)
	for _, letter := range Alphabet {
		identity[letter] = letter
	}
	if !identity.IsPermutation() {
		t.Fatal("identity mapping should be a permutation")
	}

	identity['b'] = 'a'
	if identity.IsPermutation() {
		t.Error("mapping with a duplicate image should not be a permutation")
	}

	short := LetterMapping{'a': 'b', 'b': 'a'}
	if short.IsPermutation() {
		t.Error("partial mapping should not be a permutation")
	}
}
