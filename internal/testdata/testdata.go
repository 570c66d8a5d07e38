// Package testdata provides a deterministic random bit generator for testing.
package testdata

import (
	"crypto/sha3"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/gtank/ristretto255"
)

// DRBG is a deterministic random bit generator based on SHAKE128.
type DRBG struct {
	h *sha3.SHAKE
}

// New returns a new DRBG instance initialized with the given customization string.
func New(customization string) *DRBG {
	h := sha3.NewSHAKE128()
	_, _ = h.Write([]byte(customization))
	return &DRBG{h}
}

// KeyPair returns a deterministic Ristretto255 key pair from the DRBG.
func (d *DRBG) KeyPair() (*ristretto255.Scalar, *ristretto255.Element) {
	x, _ := ristretto255.NewScalar().SetUniformBytes(d.Data(64))
	y := ristretto255.NewIdentityElement().ScalarBaseMult(x)
	return x, y
}

// Secp256k1KeyPair returns a deterministic secp256k1 key pair from the DRBG, retrying on the
// negligible chance the drawn bytes don't represent a valid scalar.
func (d *DRBG) Secp256k1KeyPair() (*secp256k1.PrivateKey, *secp256k1.PublicKey) {
	for {
		var scalar secp256k1.ModNScalar
		overflow := scalar.SetByteSlice(d.Data(32))
		if overflow || scalar.IsZero() {
			continue
		}

		priv := secp256k1.NewPrivateKey(&scalar)
		return priv, priv.PubKey()
	}
}

// Data returns n bytes of deterministic data from the DRBG.
func (d *DRBG) Data(n int) []byte {
	b := make([]byte, n)
	_, _ = d.h.Read(b)
	return b
}
