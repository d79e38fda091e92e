package secrets

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	cerrors "github.com/PolarWolf314/cipherlab/internal/errors"
)

// EncryptBundle encrypts plaintext with AES-128-CBC under key and a fresh
// random IV. The result is IV || ciphertext, a multiple of the block size.
func EncryptBundle(key []byte, plaintext string) ([]byte, error) {
	return encryptBundle(rand.Reader, key, plaintext)
}

func encryptBundle(random io.Reader, key []byte, plaintext string) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", cerrors.ErrInvalidKeyLength, len(key), KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(padded))
	iv := out[:aes.BlockSize]
	if _, err := io.ReadFull(random, iv); err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)
	return out, nil
}

// DecryptBundle reverses EncryptBundle: it splits off the IV, decrypts with
// key and strips the PKCS#7 padding.
func DecryptBundle(key, blob []byte) (string, error) {
	if len(key) != KeySize {
		return "", fmt.Errorf("%w: got %d, want %d", cerrors.ErrInvalidKeyLength, len(key), KeySize)
	}
	if len(blob) < 2*aes.BlockSize || len(blob)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: %d bytes", cerrors.ErrInvalidCiphertext, len(blob))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	iv := blob[:aes.BlockSize]
	padded := make([]byte, len(blob)-aes.BlockSize)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, blob[aes.BlockSize:])

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, cerrors.ErrInvalidPadding
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, cerrors.ErrInvalidPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, cerrors.ErrInvalidPadding
		}
	}
	return data[:len(data)-n], nil
}
