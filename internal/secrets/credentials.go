package secrets

import (
	"crypto/sha256"
	"encoding/hex"
)

// DefaultUsername is the account name written into every credential bundle.
const DefaultUsername = "davidjmalan"

// HashPassword returns the lowercase hex SHA-256 of password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// FormatCredential builds the "<username>:<hex sha256(password)>" bundle plaintext.
func FormatCredential(username, password string) string {
	if username == "" {
		username = DefaultUsername
	}
	return username + ":" + HashPassword(password)
}
