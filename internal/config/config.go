// Package config holds the byte-exact domain tags this module's hash-to-point and
// hash-to-scalar constructions mix into their inputs. Every package that derives a point or
// scalar from a hash references these constants rather than restating the literal, so there is
// exactly one place a wire-breaking change would have to happen.
package config

// Domain tags for the cross-curve bridge (see package bridge).
const (
	TagSecpPubkeyToRistretto = "SECP256K1_TO_RISTRETTO_V1"
	TagEthAddressToRistretto = "ETH_ADDRESS_TO_RISTRETTO_V1"
	TagBytesToRistretto      = "HASH_TO_RISTRETTO_V1"
)

// TagPedersenHGenerator is the domain tag used to derive the auxiliary Pedersen generator H.
//
// The source this module is derived from carried two drafts of this tag: the standalone library
// used "PEDERSEN_H_GENERATOR_V1" while the proving-environment predicate and an EVM fixture
// generator used "Pedersen_H_GENERATOR_V2", which silently produces an incompatible H and
// therefore incompatible commitments. This module picks V1 as canonical and uses it everywhere
// a generator is derived or a commitment is verified.
const TagPedersenHGenerator = "PEDERSEN_H_GENERATOR_V1"

// Domain tags for the LSAG ring signature (see package ringsig).
const (
	TagHashToPoint = "HASH_TO_POINT_V1"
	TagRingSig     = "RING_SIG_V1"
)

// TagStealthPayment is the domain tag mixed into the Keccak-256 hash of a stealth ECDH shared
// point (see package ethkey).
const TagStealthPayment = "STEALTH_PAYMENT_V1"

// MessagePrivatePaymentTx is the fixed message the ring signature over a PrivateTransaction
// signs (see package predicate).
const MessagePrivatePaymentTx = "PRIVATE_PAYMENT_TX"
