package utils

import "github.com/PolarWolf314/cipherlab/internal/secrets"

// FormatMapping renders mapping as the plain alphabet above its images:
//
//	abcdefghijklmnopqrstuvwxyz
//	apxvyruektjzcdwgfqmonlsibh
func FormatMapping(mapping secrets.LetterMapping) string {
	return secrets.Alphabet + "\n" + mapping.String()
}
