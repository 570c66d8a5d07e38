package pedersen_test

import (
	"testing"

	"github.com/codahale/privpay/pedersen"
	"github.com/gtank/ristretto255"
)

func TestCommitVerifyRoundTrip(t *testing.T) {
	b, err := pedersen.GenerateBlinding()
	if err != nil {
		t.Fatal(err)
	}

	c := pedersen.Commit(100, b)

	if !c.Verify(100, b) {
		t.Error("Verify() = false, want true for the committed values")
	}

	if c.Verify(99, b) {
		t.Error("Verify() = true, want false for a different amount")
	}

	bOther, err := pedersen.GenerateBlinding()
	if err != nil {
		t.Fatal(err)
	}

	if c.Verify(100, bOther) {
		t.Error("Verify() = true, want false for a different blinding")
	}
}

func TestHomomorphism(t *testing.T) {
	b1, _ := pedersen.GenerateBlinding()
	b2, _ := pedersen.GenerateBlinding()

	c1 := pedersen.Commit(50, b1)
	c2 := pedersen.Commit(30, b2)

	sum := c1.Add(c2)

	expected := pedersen.Commit(80, ristretto255.NewScalar().Add(b1, b2))

	if !sum.Equal(expected) {
		t.Error("Add(commit(a1,b1), commit(a2,b2)) != commit(a1+a2, b1+b2)")
	}

	back := sum.Sub(c2)
	if !back.Equal(c1) {
		t.Error("Sub did not undo Add")
	}
}

func TestHGeneratorIndependence(t *testing.T) {
	g := ristretto255.NewGeneratorElement()
	h1 := pedersen.HGenerator()
	h2 := pedersen.HGenerator()

	if g.Equal(h1) == 1 {
		t.Error("H == G")
	}

	if h1.Equal(h2) != 1 {
		t.Error("two derivations of H produced different points")
	}
}

func TestSerializationRoundTrip(t *testing.T) {
	b, _ := pedersen.GenerateBlinding()
	c := pedersen.Commit(42, b)

	encoded := c.Bytes()
	if len(encoded) != pedersen.Size {
		t.Errorf("len(Bytes()) = %d, want %d", len(encoded), pedersen.Size)
	}

	decoded, ok := pedersen.FromBytes(encoded)
	if !ok {
		t.Fatal("FromBytes failed on a canonical encoding")
	}

	if !decoded.Equal(c) {
		t.Error("decoded commitment does not equal the original")
	}
}

func TestFromBytesRejectsNonCanonical(t *testing.T) {
	nonCanonical := make([]byte, 32)
	for i := range nonCanonical {
		nonCanonical[i] = 0xff
	}

	if _, ok := pedersen.FromBytes(nonCanonical); ok {
		t.Error("FromBytes accepted a non-canonical encoding")
	}
}

func TestGenerateBlindingIsRandom(t *testing.T) {
	b1, _ := pedersen.GenerateBlinding()
	b2, _ := pedersen.GenerateBlinding()

	if b1.Equal(b2) == 1 {
		t.Error("two calls to GenerateBlinding produced the same scalar")
	}
}
