package secrets

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	cerrors "github.com/PolarWolf314/cipherlab/internal/errors"
)

func TestValidateIdentity(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		wantErr  bool
	}{
		{"digits", "123456789", false},
		{"single digit", "0", false},
		{"leading zeros", "000123", false},
		{"empty", "", true},
		{"letters", "abc", true},
		{"mixed", "123abc", true},
		{"negative", "-123", true},
		{"whitespace", " 123", true},
		{"unicode digits", "١٢٣", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentity(tt.identity)
			if tt.wantErr {
				if !errors.Is(err, cerrors.ErrInvalidIdentity) {
					t.Errorf("ValidateIdentity(%q) error = %v, want ErrInvalidIdentity", tt.identity, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateIdentity(%q) unexpected error: %v", tt.identity, err)
			}
		})
	}
}

func TestDeriveKeyKnownAnswer(t *testing.T) {
	tests := []struct {
		identity string
		want     string
	}{
		{"123456789", "15e2b0d3c33891ebb0f1ef609ec41942"},
		{"1", "6b86b273ff34fce19d6b804eff5a3f57"},
		{"42", "73475cb40a568e8da8a045ced110137e"},
		{"20250001", "1b970de3e6d4d99f082f61340500d8d0"},
	}

	for _, tt := range tests {
		t.Run(tt.identity, func(t *testing.T) {
			got := hex.EncodeToString(DeriveKey(tt.identity))
			if got != tt.want {
				t.Errorf("DeriveKey(%q) = %s, want %s", tt.identity, got, tt.want)
			}
		})
	}
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	first := DeriveKey("987654321")
	for i := 0; i < 10; i++ {
		if got := DeriveKey("987654321"); !bytes.Equal(got, first) {
			t.Fatalf("DeriveKey returned %x on call %d, expected %x", got, i, first)
		}
	}
	if len(first) != KeySize {
		t.Errorf("Expected key length %d, got %d", KeySize, len(first))
	}
}

func TestDeriveKeyReturnsFreshSlice(t *testing.T) {
	a := DeriveKey("5")
	a[0] ^= 0xff
	if b := DeriveKey("5"); bytes.Equal(a, b) {
		t.Error("mutating a derived key should not affect later derivations")
	}
}

func TestDeriveKeySetShared(t *testing.T) {
	keys, err := DeriveKeySet("123456789", KeyModeShared)
	if err != nil {
		t.Fatalf("DeriveKeySet failed: %v", err)
	}
	want := DeriveKey("123456789")
	if !bytes.Equal(keys.Seed, want) || !bytes.Equal(keys.Encryption, want) {
		t.Errorf("shared mode should reuse the derived key, got seed=%x enc=%x", keys.Seed, keys.Encryption)
	}
}

func TestDeriveKeySetSplit(t *testing.T) {
	keys, err := DeriveKeySet("123456789", KeyModeSplit)
	if err != nil {
		t.Fatalf("DeriveKeySet failed: %v", err)
	}

	if got := hex.EncodeToString(keys.Seed); got != "f2782608daa929f1a147de0ee8a5108f" {
		t.Errorf("split seed = %s", got)
	}
	if got := hex.EncodeToString(keys.Encryption); got != "783de0857f3b4ce2fb30f997a87ef086" {
		t.Errorf("split encryption key = %s", got)
	}
	if bytes.Equal(keys.Seed, keys.Encryption) {
		t.Error("split mode must produce distinct keys")
	}

	again, err := DeriveKeySet("123456789", KeyModeSplit)
	if err != nil {
		t.Fatalf("DeriveKeySet failed: %v", err)
	}
	if !bytes.Equal(again.Seed, keys.Seed) || !bytes.Equal(again.Encryption, keys.Encryption) {
		t.Error("split mode must be reproducible")
	}
}

func TestParseKeyMode(t *testing.T) {
	for _, raw := range []string{"", "shared"} {
		mode, err := ParseKeyMode(raw)
		if err != nil || mode != KeyModeShared {
			t.Errorf("ParseKeyMode(%q) = %q, %v", raw, mode, err)
		}
	}

	if mode, err := ParseKeyMode("split"); err != nil || mode != KeyModeSplit {
		t.Errorf("ParseKeyMode(split) = %q, %v", mode, err)
	}

	if _, err := ParseKeyMode("hkdf"); !errors.Is(err, cerrors.ErrInvalidKeyMode) {
		t.Errorf("Expected ErrInvalidKeyMode, got %v", err)
	}
	if _, err := DeriveKeySet("1", KeyMode("bogus")); !errors.Is(err, cerrors.ErrInvalidKeyMode) {
		t.Errorf("Expected ErrInvalidKeyMode from DeriveKeySet, got %v", err)
	}
}
