// Package bridge maps keys and addresses from the secp256k1/Ethereum account model onto
// Ristretto255 group elements, so a recipient's account identity can participate as a ring
// member in an LSAG signature without exposing any discrete-log relation to the Pedersen or
// ring-signature generators.
//
// All three mappings share one shape: RistrettoPoint::from_uniform_bytes(SHA-512(domain_tag ||
// input)). Distinct domain tags keep the three mappings from colliding with each other or with
// the generators derived by package pedersen and package ringsig.
package bridge

import (
	"github.com/codahale/privpay/internal/config"
	"github.com/codahale/privpay/internal/hash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/gtank/ristretto255"
)

// SecpPubkeyToRistretto maps a compressed secp256k1 public key to a Ristretto255 point with no
// known discrete-log relation to the curve's generators.
func SecpPubkeyToRistretto(pubkey *secp256k1.PublicKey) *ristretto255.Element {
	return hashToPoint(config.TagSecpPubkeyToRistretto, pubkey.SerializeCompressed())
}

// EthAddressToRistretto maps a 20-byte Ethereum-style address to a Ristretto255 point.
func EthAddressToRistretto(address [20]byte) *ristretto255.Element {
	return hashToPoint(config.TagEthAddressToRistretto, address[:])
}

// BytesToRistretto maps an arbitrary byte string to a Ristretto255 point.
func BytesToRistretto(data []byte) *ristretto255.Element {
	return hashToPoint(config.TagBytesToRistretto, data)
}

func hashToPoint(tag string, input []byte) *ristretto255.Element {
	digest := hash.SHA512([]byte(tag), input)

	p, err := ristretto255.NewIdentityElement().SetUniformBytes(digest[:])
	if err != nil {
		// SetUniformBytes only fails if given fewer than 64 bytes; a SHA-512 digest is
		// always exactly 64 bytes, so this is unreachable.
		panic(err)
	}

	return p
}
