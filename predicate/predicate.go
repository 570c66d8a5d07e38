// Package predicate implements the transaction-validity check a proving environment runs:
// decode the witness, verify the ring signature, check that commitments balance and are
// consistent with the claimed amounts, and emit the public inputs a proof attests to. Evaluate
// is the single call a proving environment's entry point makes — it reads the witness, asserts
// every check, and returns exactly what the verifier is allowed to see.
package predicate

import (
	"errors"
	"fmt"

	"github.com/codahale/privpay/internal/config"
	"github.com/codahale/privpay/pedersen"
	"github.com/codahale/privpay/perr"
	"github.com/codahale/privpay/ringsig"
	"github.com/codahale/privpay/wire"
	"github.com/gtank/ristretto255"
)

var (
	// ErrDecode is returned when a point or scalar in the witness fails to parse.
	ErrDecode = errors.New("predicate: witness decoding failed")

	// ErrBalance is returned when the sum of input amounts does not equal the sum of output
	// amounts.
	ErrBalance = errors.New("predicate: input and output amounts do not balance")

	// ErrCommitmentMismatch is returned when a claimed amount and blinding do not open the
	// corresponding published commitment.
	ErrCommitmentMismatch = errors.New("predicate: commitment does not open to claimed amount and blinding")

	// ErrRingSignatureInvalid is returned when the transaction's ring signature fails
	// verification against its ring and key image.
	ErrRingSignatureInvalid = errors.New("predicate: ring signature verification failed")

	// ErrSecretIndexOutOfRange is returned when the witness's secret_index is not a valid
	// index into the ring.
	ErrSecretIndexOutOfRange = errors.New("predicate: secret_index out of range")
)

// Evaluate asserts that tx is a valid private payment and, on success, returns the public
// inputs a verifier is allowed to see. Every failure aborts with a distinguishable error; a
// proving environment treats any error here as fatal to the proof, since a partial proof would
// be unsound.
//
// SecretIndex is only checked to be a valid index into the ring; it is not bound to the ring
// signature.
func Evaluate(tx *wire.PrivateTransaction) (*wire.PublicInputs, error) {
	ring, err := decodeRing(tx.Ring)
	if err != nil {
		return nil, err
	}

	keyImage, err := decodePoint(tx.KeyImage)
	if err != nil {
		return nil, fmt.Errorf("%w: key image: %w", ErrDecode, err)
	}

	inputCommitments, err := decodeCommitments(tx.InputCommitments)
	if err != nil {
		return nil, fmt.Errorf("%w: input commitments: %w", ErrDecode, err)
	}

	outputCommitments, err := decodeCommitments(tx.OutputCommitments)
	if err != nil {
		return nil, fmt.Errorf("%w: output commitments: %w", ErrDecode, err)
	}

	c, err := decodeScalars(tx.RingSignature.C)
	if err != nil {
		return nil, fmt.Errorf("%w: signature challenges: %w", ErrDecode, err)
	}

	r, err := decodeScalars(tx.RingSignature.R)
	if err != nil {
		return nil, fmt.Errorf("%w: signature responses: %w", ErrDecode, err)
	}

	inputBlindings, err := decodeScalars(tx.InputBlindings)
	if err != nil {
		return nil, fmt.Errorf("%w: input blindings: %w", ErrDecode, err)
	}

	outputBlindings, err := decodeScalars(tx.OutputBlindings)
	if err != nil {
		return nil, fmt.Errorf("%w: output blindings: %w", ErrDecode, err)
	}

	sig := &ringsig.Signature{KeyImage: keyImage, C: c, R: r}
	if !ringsig.Verify([]byte(config.MessagePrivatePaymentTx), sig, ring) {
		return nil, ErrRingSignatureInvalid
	}

	// Amounts are summed as plain uint64 values, which wrap on overflow. There is no range proof
	// here, so nothing bounds the committed amounts.
	var inputSum, outputSum uint64
	for _, a := range tx.InputAmounts {
		inputSum += a
	}
	for _, a := range tx.OutputAmounts {
		outputSum += a
	}
	if inputSum != outputSum {
		return nil, fmt.Errorf("%w: inputs sum to %d, outputs sum to %d", ErrBalance, inputSum, outputSum)
	}

	if len(tx.InputAmounts) != len(inputCommitments) || len(tx.InputAmounts) != len(inputBlindings) {
		return nil, fmt.Errorf("%w: input amount/blinding/commitment count mismatch", ErrDecode)
	}
	for i := range inputCommitments {
		if !pedersen.Commit(tx.InputAmounts[i], inputBlindings[i]).Equal(inputCommitments[i]) {
			return nil, fmt.Errorf("%w: input %d", ErrCommitmentMismatch, i)
		}
	}

	if len(tx.OutputAmounts) != len(outputCommitments) || len(tx.OutputAmounts) != len(outputBlindings) {
		return nil, fmt.Errorf("%w: output amount/blinding/commitment count mismatch", ErrDecode)
	}
	for i := range outputCommitments {
		if !pedersen.Commit(tx.OutputAmounts[i], outputBlindings[i]).Equal(outputCommitments[i]) {
			return nil, fmt.Errorf("%w: output %d", ErrCommitmentMismatch, i)
		}
	}

	if tx.SecretIndex < 0 || tx.SecretIndex >= len(ring) {
		return nil, fmt.Errorf("%w: secret_index %d, ring size %d", ErrSecretIndexOutOfRange, tx.SecretIndex, len(ring))
	}

	return &wire.PublicInputs{
		InputCommitments:  tx.InputCommitments,
		OutputCommitments: tx.OutputCommitments,
		KeyImage:          tx.KeyImage,
		Ring:              tx.Ring,
	}, nil
}

func decodePoint(b [32]byte) (*ristretto255.Element, error) {
	p, err := ristretto255.NewIdentityElement().SetCanonicalBytes(b[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", perr.ErrInvalidRistrettoPoint, err)
	}
	return p, nil
}

func decodeRing(ring [][32]byte) ([]*ristretto255.Element, error) {
	out := make([]*ristretto255.Element, len(ring))
	for i, b := range ring {
		p, err := decodePoint(b)
		if err != nil {
			return nil, fmt.Errorf("%w: ring[%d]: %w", ErrDecode, i, err)
		}
		out[i] = p
	}
	return out, nil
}

func decodeCommitments(cs []wire.CommitmentData) ([]*pedersen.Commitment, error) {
	out := make([]*pedersen.Commitment, len(cs))
	for i, c := range cs {
		commitment, ok := pedersen.FromBytes(c.Bytes())
		if !ok {
			return nil, fmt.Errorf("%w: commitment[%d]", perr.ErrInvalidRistrettoPoint, i)
		}
		out[i] = commitment
	}
	return out, nil
}

func decodeScalars(ss [][32]byte) ([]*ristretto255.Scalar, error) {
	out := make([]*ristretto255.Scalar, len(ss))
	for i, b := range ss {
		s, err := ristretto255.NewScalar().SetCanonicalBytes(b[:])
		if err != nil {
			return nil, fmt.Errorf("%w: scalar[%d]: %w", perr.ErrInvalidScalar, i, err)
		}
		out[i] = s
	}
	return out, nil
}
