// Package ringsig implements an LSAG (Linkable Spontaneous Anonymous Group) ring signature over
// Ristretto255. A signature proves that the holder of one of n declared public keys signed a
// message, without revealing which, while exposing a key image that is identical across every
// signature made with the same secret key — the mechanism an outer ledger uses to detect a
// double spend without ever learning which ring member spent.
package ringsig

import (
	"crypto/rand"

	"github.com/codahale/privpay/internal/config"
	"github.com/codahale/privpay/internal/hash"
	"github.com/gtank/ristretto255"
)

// Signature is an LSAG ring signature: a key image and two length-n scalar vectors.
type Signature struct {
	KeyImage *ristretto255.Element
	C        []*ristretto255.Scalar
	R        []*ristretto255.Scalar
}

// RingSize returns the number of ring members sig was produced over.
func (sig *Signature) RingSize() int {
	return len(sig.C)
}

// KeyImageBytes returns the signature's key image in its 32-byte canonical encoding.
func (sig *Signature) KeyImageBytes() [32]byte {
	var out [32]byte
	copy(out[:], sig.KeyImage.Bytes())
	return out
}

// C32 returns the challenge vector as 32-byte canonical scalar encodings.
func (sig *Signature) C32() [][32]byte {
	return scalars32(sig.C)
}

// R32 returns the response vector as 32-byte canonical scalar encodings.
func (sig *Signature) R32() [][32]byte {
	return scalars32(sig.R)
}

func scalars32(scalars []*ristretto255.Scalar) [][32]byte {
	out := make([][32]byte, len(scalars))
	for i, s := range scalars {
		copy(out[i][:], s.Bytes())
	}
	return out
}

// KeyImage computes I = x * Hp(P), the deterministic, secret-holder-only-computable value that
// links every signature made with secret x regardless of message, ring, or ring position.
func KeyImage(secret *ristretto255.Scalar, public *ristretto255.Element) *ristretto255.Element {
	return ristretto255.NewIdentityElement().ScalarMult(secret, hashToPoint(public))
}

// Sign produces an LSAG ring signature of message under the secret key at secretIndex in ring,
// a ring of n >= 1 Ristretto255 points. Sign panics if secretIndex is out of bounds or ring is
// empty: these are precondition violations, not runtime failures a caller should recover from.
func Sign(message []byte, secret *ristretto255.Scalar, secretIndex int, ring []*ristretto255.Element) (*Signature, error) {
	n := len(ring)
	if n == 0 {
		panic("ringsig: ring must have at least one member")
	}
	if secretIndex < 0 || secretIndex >= n {
		panic("ringsig: secret index out of bounds")
	}

	keyImage := KeyImage(secret, ring[secretIndex])

	c := make([]*ristretto255.Scalar, n)
	r := make([]*ristretto255.Scalar, n)

	alpha, err := randomScalar()
	if err != nil {
		return nil, err
	}

	start := (secretIndex + 1) % n

	l := ristretto255.NewIdentityElement().ScalarBaseMult(alpha)
	rr := ristretto255.NewIdentityElement().ScalarMult(alpha, hashToPoint(ring[secretIndex]))
	c[start] = challenge(message, l, rr)

	for step := range n - 1 {
		i := (start + step) % n
		next := (i + 1) % n

		r[i], err = randomScalar()
		if err != nil {
			return nil, err
		}

		l := ristretto255.NewIdentityElement().Add(
			ristretto255.NewIdentityElement().ScalarBaseMult(r[i]),
			ristretto255.NewIdentityElement().ScalarMult(c[i], ring[i]),
		)
		rr := ristretto255.NewIdentityElement().Add(
			ristretto255.NewIdentityElement().ScalarMult(r[i], hashToPoint(ring[i])),
			ristretto255.NewIdentityElement().ScalarMult(c[i], keyImage),
		)

		c[next] = challenge(message, l, rr)
	}

	r[secretIndex] = ristretto255.NewScalar().Subtract(
		alpha, ristretto255.NewScalar().Multiply(c[secretIndex], secret),
	)

	return &Signature{KeyImage: keyImage, C: c, R: r}, nil
}

// Verify reports whether sig is a valid ring signature of message under ring. It returns false
// for any malformed input (wrong-length c/r, empty ring) rather than failing.
func Verify(message []byte, sig *Signature, ring []*ristretto255.Element) bool {
	n := len(ring)
	if n == 0 || len(sig.C) != n || len(sig.R) != n {
		return false
	}

	for i := range n {
		next := (i + 1) % n

		l := ristretto255.NewIdentityElement().Add(
			ristretto255.NewIdentityElement().ScalarBaseMult(sig.R[i]),
			ristretto255.NewIdentityElement().ScalarMult(sig.C[i], ring[i]),
		)
		rr := ristretto255.NewIdentityElement().Add(
			ristretto255.NewIdentityElement().ScalarMult(sig.R[i], hashToPoint(ring[i])),
			ristretto255.NewIdentityElement().ScalarMult(sig.C[i], sig.KeyImage),
		)

		if challenge(message, l, rr).Equal(sig.C[next]) != 1 {
			return false
		}
	}

	return true
}

func hashToPoint(p *ristretto255.Element) *ristretto255.Element {
	digest := hash.SHA512([]byte(config.TagHashToPoint), p.Bytes())

	point, err := ristretto255.NewIdentityElement().SetUniformBytes(digest[:])
	if err != nil {
		panic(err) // unreachable: digest is always 64 bytes
	}

	return point
}

func challenge(message []byte, l, r *ristretto255.Element) *ristretto255.Scalar {
	digest := hash.SHA512([]byte(config.TagRingSig), message, l.Bytes(), r.Bytes())

	s, err := ristretto255.NewScalar().SetUniformBytes(digest[:])
	if err != nil {
		panic(err) // unreachable: digest is always 64 bytes
	}

	return s
}

func randomScalar() (*ristretto255.Scalar, error) {
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
