package wire_test

import (
	"bytes"
	"testing"

	"github.com/codahale/privpay/wire"
)

func sampleTransaction() *wire.PrivateTransaction {
	return &wire.PrivateTransaction{
		InputCommitments:  []wire.CommitmentData{{1}, {2}},
		OutputCommitments: []wire.CommitmentData{{3}},
		KeyImage:          [32]byte{9},
		Ring:              [][32]byte{{4}, {5}, {6}},
		StealthAddresses: []wire.StealthAddressData{
			{EphemeralPubkey: bytes.Repeat([]byte{0xAB}, 33), StealthAddress: [20]byte{0x42}},
		},
		InputAmounts:    []uint64{100},
		InputBlindings:  [][32]byte{{7}},
		OutputAmounts:   []uint64{60, 40},
		OutputBlindings: [][32]byte{{8}, {10}},
		RingSignature: wire.RingSignatureData{
			C: [][32]byte{{11}, {12}, {13}},
			R: [][32]byte{{14}, {15}, {16}},
		},
		SecretIndex: 1,
	}
}

func TestPrivateTransactionRoundTrip(t *testing.T) {
	tx := sampleTransaction()
	decoded, err := wire.DecodePrivateTransaction(tx.Encode())
	if err != nil {
		t.Fatal(err)
	}

	if decoded.KeyImage != tx.KeyImage {
		t.Error("key image mismatch after round trip")
	}
	if decoded.SecretIndex != tx.SecretIndex {
		t.Errorf("secret index = %d, want %d", decoded.SecretIndex, tx.SecretIndex)
	}
	if len(decoded.Ring) != len(tx.Ring) {
		t.Fatalf("ring length = %d, want %d", len(decoded.Ring), len(tx.Ring))
	}
	for i := range tx.Ring {
		if decoded.Ring[i] != tx.Ring[i] {
			t.Errorf("ring[%d] mismatch", i)
		}
	}
	if len(decoded.StealthAddresses) != 1 || !bytes.Equal(decoded.StealthAddresses[0].EphemeralPubkey, tx.StealthAddresses[0].EphemeralPubkey) {
		t.Error("stealth address round trip failed")
	}
	if decoded.OutputAmounts[0] != 60 || decoded.OutputAmounts[1] != 40 {
		t.Error("output amounts mismatch")
	}
}

func TestPublicInputsRoundTrip(t *testing.T) {
	pub := &wire.PublicInputs{
		InputCommitments:  []wire.CommitmentData{{1}, {2}},
		OutputCommitments: []wire.CommitmentData{{3}},
		KeyImage:          [32]byte{9},
		Ring:              [][32]byte{{4}, {5}, {6}},
	}

	decoded, err := wire.DecodePublicInputs(pub.Encode())
	if err != nil {
		t.Fatal(err)
	}

	if decoded.KeyImage != pub.KeyImage {
		t.Error("key image mismatch")
	}
	if len(decoded.InputCommitments) != len(pub.InputCommitments) {
		t.Error("input commitments length mismatch")
	}
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	tx := sampleTransaction()
	encoded := tx.Encode()

	for _, cut := range []int{0, 1, 4, len(encoded) - 1} {
		if _, err := wire.DecodePrivateTransaction(encoded[:cut]); err == nil {
			t.Errorf("decode of truncated input (len=%d) succeeded, want error", cut)
		}
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	tx := sampleTransaction()
	encoded := append(tx.Encode(), 0xFF)

	if _, err := wire.DecodePrivateTransaction(encoded); err == nil {
		t.Error("decode of input with trailing bytes succeeded, want error")
	}
}
