package ringsig_test

import (
	"testing"

	"github.com/codahale/privpay/internal/testdata"
	"github.com/codahale/privpay/ringsig"
	"github.com/gtank/ristretto255"
)

func makeRing(t *testing.T, drbg *testdata.DRBG, n int) ([]*ristretto255.Scalar, []*ristretto255.Element) {
	t.Helper()

	secrets := make([]*ristretto255.Scalar, n)
	ring := make([]*ristretto255.Element, n)

	for i := range n {
		x, p := drbg.KeyPair()
		secrets[i] = x
		ring[i] = p
	}

	return secrets, ring
}

func TestSignVerifyRoundTrip(t *testing.T) {
	for _, n := range []int{1, 3, 8, 16, 32} {
		drbg := testdata.New("ringsig round trip")
		secrets, ring := makeRing(t, drbg, n)
		secretIndex := n / 2

		sig, err := ringsig.Sign([]byte("test transaction"), secrets[secretIndex], secretIndex, ring)
		if err != nil {
			t.Fatalf("n=%d: Sign: %v", n, err)
		}

		if !ringsig.Verify([]byte("test transaction"), sig, ring) {
			t.Errorf("n=%d: Verify() = false, want true", n)
		}
	}
}

func TestKeyImageStability(t *testing.T) {
	drbg := testdata.New("ringsig key image")
	secrets, ring := makeRing(t, drbg, 5)

	sig1, err := ringsig.Sign([]byte("msg1"), secrets[2], 2, ring)
	if err != nil {
		t.Fatal(err)
	}

	sig2, err := ringsig.Sign([]byte("msg2"), secrets[2], 2, ring)
	if err != nil {
		t.Fatal(err)
	}

	if sig1.KeyImage.Equal(sig2.KeyImage) != 1 {
		t.Error("same secret produced different key images across messages")
	}

	sig3, err := ringsig.Sign([]byte("msg1"), secrets[0], 0, ring)
	if err != nil {
		t.Fatal(err)
	}

	if sig1.KeyImage.Equal(sig3.KeyImage) == 1 {
		t.Error("distinct secrets produced the same key image")
	}
}

func replacementScalar(t *testing.T) *ristretto255.Scalar {
	t.Helper()

	b := make([]byte, 32)
	b[0] = 0x07

	s, err := ristretto255.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestTamperDetection(t *testing.T) {
	drbg := testdata.New("ringsig tamper")
	secrets, ring := makeRing(t, drbg, 5)

	sig, err := ringsig.Sign([]byte("msg"), secrets[2], 2, ring)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("tampered c", func(t *testing.T) {
		tampered := &ringsig.Signature{
			KeyImage: sig.KeyImage,
			C:        append([]*ristretto255.Scalar{}, sig.C...),
			R:        append([]*ristretto255.Scalar{}, sig.R...),
		}
		tampered.C[0] = replacementScalar(t)

		if ringsig.Verify([]byte("msg"), tampered, ring) {
			t.Error("Verify() accepted a signature with a tampered challenge scalar")
		}
	})

	t.Run("tampered r", func(t *testing.T) {
		tampered := &ringsig.Signature{
			KeyImage: sig.KeyImage,
			C:        append([]*ristretto255.Scalar{}, sig.C...),
			R:        append([]*ristretto255.Scalar{}, sig.R...),
		}
		tampered.R[0] = replacementScalar(t)

		if ringsig.Verify([]byte("msg"), tampered, ring) {
			t.Error("Verify() accepted a signature with a tampered response scalar")
		}
	})
}

func TestWrongRingRejection(t *testing.T) {
	drbg := testdata.New("ringsig wrong ring")
	secrets, ring := makeRing(t, drbg, 5)

	sig, err := ringsig.Sign([]byte("msg"), secrets[2], 2, ring)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("different size", func(t *testing.T) {
		_, wrongRing := makeRing(t, drbg, 3)
		if ringsig.Verify([]byte("msg"), sig, wrongRing) {
			t.Error("Verify() accepted a ring of the wrong size")
		}
	})

	t.Run("different content, same size", func(t *testing.T) {
		_, wrongRing := makeRing(t, drbg, 5)
		if ringsig.Verify([]byte("msg"), sig, wrongRing) {
			t.Error("Verify() accepted a different ring of the same size")
		}
	})
}

func TestVerifyRejectsMalformedInputs(t *testing.T) {
	drbg := testdata.New("ringsig malformed")
	secrets, ring := makeRing(t, drbg, 5)

	sig, err := ringsig.Sign([]byte("msg"), secrets[2], 2, ring)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("short c", func(t *testing.T) {
		bad := &ringsig.Signature{KeyImage: sig.KeyImage, C: sig.C[:4], R: sig.R}
		if ringsig.Verify([]byte("msg"), bad, ring) {
			t.Error("Verify() accepted a short c vector")
		}
	})

	t.Run("empty ring", func(t *testing.T) {
		if ringsig.Verify([]byte("msg"), sig, nil) {
			t.Error("Verify() accepted an empty ring")
		}
	})
}

func TestSerializationRoundTrip(t *testing.T) {
	drbg := testdata.New("ringsig serialization")
	secrets, ring := makeRing(t, drbg, 8)

	sig, err := ringsig.Sign([]byte("test transaction"), secrets[3], 3, ring)
	if err != nil {
		t.Fatal(err)
	}

	encoded := sig.Encode()

	decoded, err := ringsig.Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}

	if !ringsig.Verify([]byte("test transaction"), decoded, ring) {
		t.Error("decoded signature does not verify")
	}

	if decoded.KeyImage.Equal(sig.KeyImage) != 1 {
		t.Error("decoded key image differs from the original")
	}
}

func TestAnonymitySetSizeOne(t *testing.T) {
	drbg := testdata.New("ringsig size one")
	secrets, ring := makeRing(t, drbg, 1)

	sig, err := ringsig.Sign([]byte("msg"), secrets[0], 0, ring)
	if err != nil {
		t.Fatal(err)
	}

	if !ringsig.Verify([]byte("msg"), sig, ring) {
		t.Error("Verify() = false for a ring of size one")
	}
}

func TestDoubleSpendLinkable(t *testing.T) {
	drbg := testdata.New("ringsig double spend")
	secrets, ring1 := makeRing(t, drbg, 5)
	_, ring2 := makeRing(t, drbg, 5)
	ring2[1] = ring1[0] // the same signer participates in a different ring composition

	sig1, err := ringsig.Sign([]byte("tx one"), secrets[0], 0, ring1)
	if err != nil {
		t.Fatal(err)
	}

	sig2, err := ringsig.Sign([]byte("tx two"), secrets[0], 1, ring2)
	if err != nil {
		t.Fatal(err)
	}

	if sig1.KeyImage.Equal(sig2.KeyImage) != 1 {
		t.Error("two signatures from the same secret produced different key images")
	}
}
