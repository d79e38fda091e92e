// Package secrets derives every per-identity artifact cipherlab hands out.
//
// All artifacts come from one numeric identity:
//
//  1. DeriveKey hashes the identity with SHA-256 and keeps 16 bytes
//  2. PermuteAlphabet and Pick seed a fresh Mersenne Twister from that key
//  3. ApplyCipher runs an excerpt through the resulting letter mapping
//  4. EncryptBundle seals the credential string with AES-128-CBC
//
// # Selection
//
// The generator reproduces CPython's random module bit for bit, so the
// excerpt, password and mapping for an identity match what random.seed(key)
// followed by random.choice or random.shuffle would produce. Every call
// builds its own generator from the seed; nothing is shared between calls
// and the functions are safe for concurrent use.
//
// # Keys
//
// By default the derived key is both the selection seed and the AES key
// (KeyModeShared). KeyModeSplit expands it with HKDF-SHA256 into two
// independent keys, at the cost of producing different artifacts.
//
// # Bundles
//
// A bundle is IV || AES-128-CBC(key, IV, PKCS#7(plaintext)). The IV comes
// from crypto/rand, so sealing the same credential twice gives different
// bytes.
package secrets
