// Package perr defines the error taxonomy shared across the privacy-payment core. Primitive
// operations (signature verification, commitment verification) return bool; callers at the
// transaction layer lift a false result to one of these sentinels.
package perr

import "errors"

var (
	// ErrEcdhFailed is returned when a secp256k1 scalar multiplication yields the point at
	// infinity instead of a shared secret.
	ErrEcdhFailed = errors.New("privpay: ecdh computation failed")

	// ErrInvalidPublicKey is returned when a byte string does not decode as a secp256k1
	// public key.
	ErrInvalidPublicKey = errors.New("privpay: invalid secp256k1 public key")

	// ErrInvalidSecretKey is returned when a byte string does not decode as a secp256k1
	// secret key.
	ErrInvalidSecretKey = errors.New("privpay: invalid secp256k1 secret key")

	// ErrPointAdditionFailed is returned when a secp256k1 point addition yields the identity
	// element.
	ErrPointAdditionFailed = errors.New("privpay: point addition failed")

	// ErrInvalidScalar is returned when a 32-byte string is not a valid secp256k1 scalar
	// (zero, or at least the group order).
	ErrInvalidScalar = errors.New("privpay: invalid scalar value")

	// ErrInvalidRistrettoPoint is returned when a 32-byte string is not a canonical
	// Ristretto255 encoding.
	ErrInvalidRistrettoPoint = errors.New("privpay: invalid ristretto255 point encoding")

	// ErrCommitmentVerificationFailed is returned when a Pedersen commitment does not open to
	// the claimed amount and blinding.
	ErrCommitmentVerificationFailed = errors.New("privpay: commitment verification failed")

	// ErrRingSignatureInvalid is returned when an LSAG ring signature fails verification.
	ErrRingSignatureInvalid = errors.New("privpay: ring signature verification failed")

	// ErrKeyImageUsed is reserved for the outer ledger's spent-set check; this core never
	// raises it itself.
	ErrKeyImageUsed = errors.New("privpay: key image already used")

	// ErrSerialization is returned when a value cannot be encoded to its wire form.
	ErrSerialization = errors.New("privpay: serialization failed")

	// ErrDeserialization is returned when a wire form cannot be decoded.
	ErrDeserialization = errors.New("privpay: deserialization failed")

	// ErrInvalidInput is returned for malformed caller-supplied input, such as addresses of
	// the wrong length or non-hex strings.
	ErrInvalidInput = errors.New("privpay: invalid input")
)
