// Package pedersen implements Pedersen value commitments over Ristretto255: C = aG + bH, where
// a is a 64-bit amount, b is a blinding scalar, G is the group's standard generator, and H is an
// auxiliary generator with no known discrete-log relation to G.
//
// Commitments are perfectly hiding (for uniform b) and computationally binding under the
// discrete-log assumption between G and H. They are homomorphic: Add(commit(a1,b1),
// commit(a2,b2)) == commit(a1+a2, b1+b2), which is what lets the transaction predicate in
// package predicate check that inputs balance outputs without ever seeing an amount.
package pedersen

import (
	"crypto/rand"
	"sync"

	"github.com/codahale/privpay/internal/config"
	"github.com/codahale/privpay/internal/hash"
	"github.com/gtank/ristretto255"
)

// Size is the length, in bytes, of an encoded commitment.
const Size = 32

// Commitment is a single Ristretto255 point committing to an amount and a blinding factor.
type Commitment struct {
	point *ristretto255.Element
}

var hGenerator = sync.OnceValue(func() *ristretto255.Element {
	g := ristretto255.NewGeneratorElement()

	digest := hash.SHA512([]byte(config.TagPedersenHGenerator), g.Bytes())

	h, err := ristretto255.NewIdentityElement().SetUniformBytes(digest[:])
	if err != nil {
		panic(err) // unreachable: digest is always 64 bytes
	}

	return h
})

// HGenerator returns the module-wide auxiliary generator H, deriving it on first use and
// caching it for the lifetime of the process.
func HGenerator() *ristretto255.Element {
	return hGenerator()
}

// Commit returns a commitment to amount under the given blinding scalar. It never fails.
func Commit(amount uint64, blinding *ristretto255.Scalar) *Commitment {
	aG := ristretto255.NewIdentityElement().ScalarBaseMult(scalarFromUint64(amount))
	bH := ristretto255.NewIdentityElement().ScalarMult(blinding, HGenerator())

	return &Commitment{point: ristretto255.NewIdentityElement().Add(aG, bH)}
}

// Verify reports whether c opens to amount and blinding, in constant time with respect to the
// point comparison.
func (c *Commitment) Verify(amount uint64, blinding *ristretto255.Scalar) bool {
	expected := Commit(amount, blinding)
	return c.point.Equal(expected.point) == 1
}

// Add returns the homomorphic sum of c and other: a commitment to the sum of their amounts and
// the sum of their blindings.
func (c *Commitment) Add(other *Commitment) *Commitment {
	return &Commitment{point: ristretto255.NewIdentityElement().Add(c.point, other.point)}
}

// Sub returns the homomorphic difference of c and other.
func (c *Commitment) Sub(other *Commitment) *Commitment {
	return &Commitment{point: ristretto255.NewIdentityElement().Subtract(c.point, other.point)}
}

// Bytes returns the canonical 32-byte compressed encoding of the commitment.
func (c *Commitment) Bytes() []byte {
	return c.point.Bytes()
}

// Equal reports whether c and other commit to the same point.
func (c *Commitment) Equal(other *Commitment) bool {
	return c.point.Equal(other.point) == 1
}

// FromBytes decodes a 32-byte canonical Ristretto255 encoding as a commitment. It fails if the
// encoding is not canonical.
func FromBytes(b []byte) (*Commitment, bool) {
	p, err := ristretto255.NewIdentityElement().SetCanonicalBytes(b)
	if err != nil {
		return nil, false
	}

	return &Commitment{point: p}, true
}

// GenerateBlinding draws a blinding scalar from the OS CSPRNG, uniform over the group order
// modulo negligible bias.
func GenerateBlinding() (*ristretto255.Scalar, error) {
	var buf [64]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, err
	}

	s, err := ristretto255.NewScalar().SetUniformBytes(buf[:])
	if err != nil {
		panic(err) // unreachable: buf is always 64 bytes
	}

	return s, nil
}

func scalarFromUint64(amount uint64) *ristretto255.Scalar {
	var buf [32]byte
	for i := range 8 {
		buf[i] = byte(amount >> (8 * i))
	}

	s, err := ristretto255.NewScalar().SetCanonicalBytes(buf[:])
	if err != nil {
		panic(err) // unreachable: a little-endian uint64 is always < the group order
	}

	return s
}
