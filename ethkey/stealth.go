package ethkey

import (
	"fmt"

	"github.com/codahale/privpay/internal/config"
	"github.com/codahale/privpay/internal/hash"
	"github.com/codahale/privpay/perr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// StealthAddress is a one-time payment target: an ephemeral public key the sender generated,
// paired with the derived Ethereum-style address only the recipient can recognize as their own.
type StealthAddress struct {
	EphemeralPubkey *secp256k1.PublicKey
	Address         Address
}

// GenerateStealth derives a fresh, unlinkable payment target for a recipient identified by a
// view public key and a spend public key. It returns the stealth address to publish and the
// ephemeral secret key the sender retains for auditing.
func GenerateStealth(viewPub, spendPub *secp256k1.PublicKey) (*StealthAddress, *secp256k1.PrivateKey, error) {
	ephemeral, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", perr.ErrInvalidSecretKey, err)
	}

	shared, err := ecdh(viewPub, ephemeral)
	if err != nil {
		return nil, nil, err
	}

	hScalar, err := scalarFromSharedSecret(shared)
	if err != nil {
		return nil, nil, err
	}

	stealthPub, err := addPoint(pointFromScalar(hScalar), spendPub)
	if err != nil {
		return nil, nil, err
	}

	return &StealthAddress{
		EphemeralPubkey: ephemeral.PubKey(),
		Address:         AddressOf(stealthPub),
	}, ephemeral, nil
}

// ScanStealth checks whether a stealth address was generated for the holder of viewSecret and
// spendPub. On a match it returns the scalar h used to derive the stealth key, from which the
// recipient computes their one-time spending key as h + spendSecret. It returns ok == false,
// with no error, when the address simply isn't the recipient's.
func ScanStealth(addr *StealthAddress, viewSecret *secp256k1.PrivateKey, spendPub *secp256k1.PublicKey) (h *secp256k1.ModNScalar, ok bool, err error) {
	shared, err := ecdh(addr.EphemeralPubkey, viewSecret)
	if err != nil {
		return nil, false, err
	}

	hScalar, err := scalarFromSharedSecret(shared)
	if err != nil {
		return nil, false, err
	}

	expectedPub, err := addPoint(pointFromScalar(hScalar), spendPub)
	if err != nil {
		return nil, false, err
	}

	if AddressOf(expectedPub) != addr.Address {
		return nil, false, nil
	}

	return hScalar, true, nil
}

// ecdh computes scalar*point, the Diffie-Hellman shared point. It is symmetric:
// ecdh(V, e) == ecdh(E, v) when V = vG and E = eG.
func ecdh(point *secp256k1.PublicKey, scalar *secp256k1.PrivateKey) (*secp256k1.PublicKey, error) {
	var pointJac, resultJac secp256k1.JacobianPoint
	point.AsJacobian(&pointJac)

	secp256k1.ScalarMultNonConst(&scalar.Key, &pointJac, &resultJac)
	if resultJac.Z.IsZero() {
		return nil, perr.ErrEcdhFailed
	}

	resultJac.ToAffine()
	return secp256k1.NewPublicKey(&resultJac.X, &resultJac.Y), nil
}

// scalarFromSharedSecret derives the per-payment scalar h := Keccak256("STEALTH_PAYMENT_V1" ||
// compressed(Q)), rejecting the negligible-probability case where the digest is not a valid
// secp256k1 scalar rather than silently reducing it.
func scalarFromSharedSecret(shared *secp256k1.PublicKey) (*secp256k1.ModNScalar, error) {
	digest := hash.Keccak256([]byte(config.TagStealthPayment), shared.SerializeCompressed())

	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(digest[:])
	if overflow || scalar.IsZero() {
		return nil, perr.ErrInvalidScalar
	}

	return &scalar, nil
}

func pointFromScalar(scalar *secp256k1.ModNScalar) *secp256k1.PublicKey {
	var jac secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(scalar, &jac)
	jac.ToAffine()
	return secp256k1.NewPublicKey(&jac.X, &jac.Y)
}

func addPoint(a, b *secp256k1.PublicKey) (*secp256k1.PublicKey, error) {
	var aJac, bJac, sumJac secp256k1.JacobianPoint
	a.AsJacobian(&aJac)
	b.AsJacobian(&bJac)

	secp256k1.AddNonConst(&aJac, &bJac, &sumJac)
	if sumJac.Z.IsZero() {
		return nil, perr.ErrPointAdditionFailed
	}

	sumJac.ToAffine()
	return secp256k1.NewPublicKey(&sumJac.X, &sumJac.Y), nil
}
