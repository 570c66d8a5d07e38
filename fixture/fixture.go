// Package fixture encodes the CLI-facing JSON artifact a privpay-fixture run emits: a proof
// plus the public inputs it attests to, with every binary field hex-encoded with a 0x prefix,
// mirroring the fixture consumed by an on-chain verifier contract's test suite.
package fixture

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/codahale/privpay/perr"
	"github.com/codahale/privpay/wire"
)

// PrivatePaymentProof is the JSON shape written for an on-chain verifier's test fixtures: a
// proving-system artifact (vkey/proof/publicValues, opaque to this module) alongside the
// public inputs and amounts needed to exercise the verifier contract.
type PrivatePaymentProof struct {
	InputAmount       uint64   `json:"inputAmount"`
	OutputAmounts     []uint64 `json:"outputAmounts"`
	RingSize          int      `json:"ringSize"`
	VKey              string   `json:"vkey"`
	PublicValues      string   `json:"publicValues"`
	Proof             string   `json:"proof"`
	KeyImage          string   `json:"keyImage"`
	InputCommitments  []string `json:"inputCommitments"`
	OutputCommitments []string `json:"outputCommitments"`
}

// New builds the fixture for a transaction/public-inputs pair and an opaque proof artifact.
// tx supplies the amounts the fixture records for readability (they are not part of the public
// inputs); pub supplies the commitments, ring size, and key image a verifier actually checks.
// vkey, publicValues, and proof are passed through as-is from the external proving environment.
func New(tx *wire.PrivateTransaction, pub *wire.PublicInputs, vkey, publicValues, proof []byte) *PrivatePaymentProof {
	inputCommitments := make([]string, len(pub.InputCommitments))
	for i, c := range pub.InputCommitments {
		inputCommitments[i] = hexPrefixed(c.Bytes())
	}

	outputCommitments := make([]string, len(pub.OutputCommitments))
	for i, c := range pub.OutputCommitments {
		outputCommitments[i] = hexPrefixed(c.Bytes())
	}

	var inputAmount uint64
	if len(tx.InputAmounts) > 0 {
		inputAmount = tx.InputAmounts[0]
	}

	return &PrivatePaymentProof{
		InputAmount:       inputAmount,
		OutputAmounts:     tx.OutputAmounts,
		RingSize:          len(pub.Ring),
		VKey:              hexPrefixed(vkey),
		PublicValues:      hexPrefixed(publicValues),
		Proof:             hexPrefixed(proof),
		KeyImage:          hexPrefixed(pub.KeyImage[:]),
		InputCommitments:  inputCommitments,
		OutputCommitments: outputCommitments,
	}
}

// MarshalIndent renders the fixture as pretty-printed JSON, matching the on-disk format a
// verifier contract's test suite expects.
func (p *PrivatePaymentProof) MarshalIndent() ([]byte, error) {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", perr.ErrSerialization, err)
	}
	return b, nil
}

// Decode parses a fixture JSON document.
func Decode(data []byte) (*PrivatePaymentProof, error) {
	var p PrivatePaymentProof
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", perr.ErrDeserialization, err)
	}
	return &p, nil
}

func hexPrefixed(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
