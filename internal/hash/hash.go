// Package hash wraps the three hash functions the core treats as opaque byte-to-byte
// primitives: SHA-512, SHA-256, and Keccak-256.
package hash

import (
	"crypto/sha256"
	"crypto/sha512"

	"golang.org/x/crypto/sha3"
)

// SHA512 returns the SHA-512 digest of data.
func SHA512(data ...[]byte) [64]byte {
	h := sha512.New()
	for _, d := range data {
		h.Write(d)
	}

	var out [64]byte
	copy(out[:], h.Sum(nil))
	return out
}

// SHA256 returns the SHA-256 digest of data.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// Keccak256 returns the Keccak-256 digest of data, using the original (pre-NIST-finalization)
// padding Ethereum relies on rather than the standardized SHA3-256.
func Keccak256(data ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
