package ringsig

import (
	"encoding/binary"
	"fmt"

	"github.com/codahale/privpay/perr"
	"github.com/gtank/ristretto255"
)

// Encode returns the canonical length-prefixed binary encoding of sig: a 32-byte key image,
// followed by a 4-byte little-endian ring size, followed by the n 32-byte c scalars, followed
// by the n 32-byte r scalars.
func (sig *Signature) Encode() []byte {
	n := len(sig.C)

	out := make([]byte, 0, 32+4+n*32*2)
	out = append(out, sig.KeyImage.Bytes()...)
	out = binary.LittleEndian.AppendUint32(out, uint32(n))

	for _, c := range sig.C {
		out = append(out, c.Bytes()...)
	}
	for _, r := range sig.R {
		out = append(out, r.Bytes()...)
	}

	return out
}

// Decode parses the canonical encoding produced by Encode. decode(encode(sig)) always equals
// sig for a well-formed signature.
func Decode(data []byte) (*Signature, error) {
	if len(data) < 32+4 {
		return nil, fmt.Errorf("%w: ring signature too short", perr.ErrDeserialization)
	}

	keyImage, err := ristretto255.NewIdentityElement().SetCanonicalBytes(data[:32])
	if err != nil {
		return nil, fmt.Errorf("%w: key image: %v", perr.ErrDeserialization, err)
	}

	n := int(binary.LittleEndian.Uint32(data[32:36]))
	rest := data[36:]

	if len(rest) != n*32*2 {
		return nil, fmt.Errorf("%w: ring signature length mismatch for n=%d", perr.ErrDeserialization, n)
	}

	c := make([]*ristretto255.Scalar, n)
	for i := range n {
		s, err := ristretto255.NewScalar().SetCanonicalBytes(rest[i*32 : (i+1)*32])
		if err != nil {
			return nil, fmt.Errorf("%w: c[%d]: %v", perr.ErrDeserialization, i, err)
		}
		c[i] = s
	}

	rOffset := n * 32
	r := make([]*ristretto255.Scalar, n)
	for i := range n {
		s, err := ristretto255.NewScalar().SetCanonicalBytes(rest[rOffset+i*32 : rOffset+(i+1)*32])
		if err != nil {
			return nil, fmt.Errorf("%w: r[%d]: %v", perr.ErrDeserialization, i, err)
		}
		r[i] = s
	}

	return &Signature{KeyImage: keyImage, C: c, R: r}, nil
}
