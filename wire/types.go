// Package wire defines the serializable records a wallet assembles and a proving environment
// consumes: commitments, ring signatures, stealth targets, and the PrivateTransaction/
// PublicInputs pair that cross the proof boundary. Types here carry no cryptography of their
// own — they are the byte-exact shapes pedersen, ringsig, and ethkey values are encoded into.
package wire

// CommitmentData is the 32-byte compressed-point wire form of a Pedersen commitment.
type CommitmentData [32]byte

// Bytes returns the commitment's 32-byte compressed-point encoding.
func (c CommitmentData) Bytes() []byte {
	return c[:]
}

// RingSignatureData is the wire form of an LSAG ring signature's challenge and response
// vectors. The key image travels separately on PrivateTransaction/PublicInputs, matching the
// layout the proving environment's witness uses.
type RingSignatureData struct {
	C [][32]byte
	R [][32]byte
}

// RingSize returns the number of ring members the signature was produced over.
func (s RingSignatureData) RingSize() int {
	return len(s.C)
}

// StealthAddressData is a per-output stealth payment target: the sender's ephemeral secp256k1
// public key (33-byte compressed form) and the derived Ethereum-style address only the
// recipient can recognize.
type StealthAddressData struct {
	EphemeralPubkey []byte
	StealthAddress  [20]byte
}

// PrivateTransaction is the record a prover consumes. InputAmounts, InputBlindings,
// OutputAmounts, OutputBlindings, and SecretIndex are secret witnesses never exposed to a
// verifier; predicate.Evaluate reads them and emits only a PublicInputs.
type PrivateTransaction struct {
	InputCommitments  []CommitmentData
	OutputCommitments []CommitmentData
	KeyImage          [32]byte
	Ring              [][32]byte
	StealthAddresses  []StealthAddressData

	InputAmounts    []uint64
	InputBlindings  [][32]byte
	OutputAmounts   []uint64
	OutputBlindings [][32]byte
	RingSignature   RingSignatureData
	SecretIndex     int
}

// PublicInputs is what a verifier sees after a successful proof: commitments, the ring, and
// the key image, with no amounts, blindings, or secret index present.
type PublicInputs struct {
	InputCommitments  []CommitmentData
	OutputCommitments []CommitmentData
	KeyImage          [32]byte
	Ring              [][32]byte
}
