// Package txbuilder assembles a wire.PrivateTransaction for a wallet. It accumulates inputs
// and outputs with their amounts and blindings, exposes read-only accessors, and offers a
// balance pre-check — it performs no cryptography of its own; commitments, the ring signature,
// and stealth addresses are computed by the caller and handed in.
package txbuilder

import (
	"fmt"
	"log/slog"

	"github.com/codahale/privpay/ethkey"
	"github.com/codahale/privpay/internal/telemetry"
	"github.com/codahale/privpay/perr"
	"github.com/codahale/privpay/ringsig"
	"github.com/codahale/privpay/wire"
)

// Input is a spend the transaction consumes: its published commitment plus the secret amount
// and blinding it opens to.
type Input struct {
	Commitment wire.CommitmentData
	KeyImage   [32]byte
	Amount     uint64
	Blinding   [32]byte
}

// Output is a payment the transaction creates: its published commitment and stealth target
// plus the secret amount and blinding it opens to.
type Output struct {
	Commitment      wire.CommitmentData
	StealthAddress  ethkey.Address
	EphemeralPubkey []byte
	Amount          uint64
	Blinding        [32]byte
}

// Builder accumulates a transaction's inputs and outputs. It is not safe for concurrent use by
// multiple goroutines; callers needing that wrap an instance themselves.
type Builder struct {
	inputs  []Input
	outputs []Output
	logger  *slog.Logger
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{logger: telemetry.Component("txbuilder")}
}

// AddInput appends an input with its commitment, key image, amount, and blinding. It returns
// the receiver so calls can be chained.
func (b *Builder) AddInput(commitment wire.CommitmentData, keyImage [32]byte, amount uint64, blinding [32]byte) *Builder {
	b.inputs = append(b.inputs, Input{Commitment: commitment, KeyImage: keyImage, Amount: amount, Blinding: blinding})
	b.logger.Debug("added input", "amount", amount, "input_count", len(b.inputs))
	return b
}

// AddOutput appends an output with its commitment, stealth target, amount, and blinding. It
// returns the receiver so calls can be chained.
func (b *Builder) AddOutput(commitment wire.CommitmentData, stealthAddress ethkey.Address, ephemeralPubkey []byte, amount uint64, blinding [32]byte) *Builder {
	b.outputs = append(b.outputs, Output{
		Commitment:      commitment,
		StealthAddress:  stealthAddress,
		EphemeralPubkey: ephemeralPubkey,
		Amount:          amount,
		Blinding:        blinding,
	})
	b.logger.Debug("added output", "amount", amount, "output_count", len(b.outputs))
	return b
}

// Inputs returns the accumulated inputs.
func (b *Builder) Inputs() []Input {
	return b.inputs
}

// Outputs returns the accumulated outputs.
func (b *Builder) Outputs() []Output {
	return b.outputs
}

// InputAmounts returns the amount of each accumulated input, in order.
func (b *Builder) InputAmounts() []uint64 {
	amounts := make([]uint64, len(b.inputs))
	for i, in := range b.inputs {
		amounts[i] = in.Amount
	}
	return amounts
}

// OutputAmounts returns the amount of each accumulated output, in order.
func (b *Builder) OutputAmounts() []uint64 {
	amounts := make([]uint64, len(b.outputs))
	for i, out := range b.outputs {
		amounts[i] = out.Amount
	}
	return amounts
}

// VerifyBalance reports whether the sum of input amounts equals the sum of output amounts.
func (b *Builder) VerifyBalance() bool {
	var in, out uint64
	for _, i := range b.inputs {
		in += i.Amount
	}
	for _, o := range b.outputs {
		out += o.Amount
	}

	balanced := in == out
	b.logger.Info("checked balance", "input_sum", in, "output_sum", out, "balanced", balanced)
	return balanced
}

// Build assembles the accumulated inputs and outputs into a wire.PrivateTransaction, pairing
// them with a ring, key image, ring signature, and secret index computed by the caller. It
// fails if the ring signature's vectors don't match the ring size, or if the transaction does
// not balance.
func (b *Builder) Build(ring [][32]byte, keyImage [32]byte, sig *ringsig.Signature, secretIndex int) (*wire.PrivateTransaction, error) {
	if !b.VerifyBalance() {
		return nil, fmt.Errorf("%w: input sum does not equal output sum", perr.ErrInvalidInput)
	}

	if sig.RingSize() != len(ring) {
		return nil, fmt.Errorf("%w: ring signature size %d does not match ring size %d", perr.ErrInvalidInput, sig.RingSize(), len(ring))
	}

	inputCommitments := make([]wire.CommitmentData, len(b.inputs))
	inputAmounts := make([]uint64, len(b.inputs))
	inputBlindings := make([][32]byte, len(b.inputs))
	for i, in := range b.inputs {
		inputCommitments[i] = in.Commitment
		inputAmounts[i] = in.Amount
		inputBlindings[i] = in.Blinding
	}

	outputCommitments := make([]wire.CommitmentData, len(b.outputs))
	outputAmounts := make([]uint64, len(b.outputs))
	outputBlindings := make([][32]byte, len(b.outputs))
	stealthAddresses := make([]wire.StealthAddressData, len(b.outputs))
	for i, out := range b.outputs {
		outputCommitments[i] = out.Commitment
		outputAmounts[i] = out.Amount
		outputBlindings[i] = out.Blinding
		stealthAddresses[i] = wire.StealthAddressData{
			EphemeralPubkey: out.EphemeralPubkey,
			StealthAddress:  out.StealthAddress,
		}
	}

	b.logger.Info("built transaction", "ring_size", len(ring), "input_count", len(b.inputs), "output_count", len(b.outputs))

	return &wire.PrivateTransaction{
		InputCommitments:  inputCommitments,
		OutputCommitments: outputCommitments,
		KeyImage:          keyImage,
		Ring:              ring,
		StealthAddresses:  stealthAddresses,
		InputAmounts:      inputAmounts,
		InputBlindings:    inputBlindings,
		OutputAmounts:     outputAmounts,
		OutputBlindings:   outputBlindings,
		RingSignature:     wire.RingSignatureData{C: sig.C32(), R: sig.R32()},
		SecretIndex:       secretIndex,
	}, nil
}
