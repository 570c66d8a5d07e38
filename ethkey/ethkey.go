// Package ethkey implements secp256k1 account keys, Ethereum-style address derivation, and
// ECDH-based stealth addressing, so a recipient can be paid at a fresh, unlinkable address for
// every payment while still controlling funds from one long-term identity.
package ethkey

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/codahale/privpay/internal/hash"
	"github.com/codahale/privpay/perr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/tyler-smith/go-bip32"
)

// Address is the low-order 20 bytes of Keccak256 of an uncompressed secp256k1 public key.
type Address [20]byte

// KeyPair is a secp256k1 secret/public key pair with its derived Ethereum address cached.
type KeyPair struct {
	Secret  *secp256k1.PrivateKey
	Public  *secp256k1.PublicKey
	Address Address
}

// Random generates a new key pair from the OS CSPRNG.
func Random() (*KeyPair, error) {
	secret, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", perr.ErrInvalidSecretKey, err)
	}

	return FromSecret(secret), nil
}

// FromSecret builds a key pair around an existing secret key.
func FromSecret(secret *secp256k1.PrivateKey) *KeyPair {
	public := secret.PubKey()

	return &KeyPair{
		Secret:  secret,
		Public:  public,
		Address: AddressOf(public),
	}
}

// DeriveFromSeed derives a secp256k1 key pair from a BIP-39 seed at BIP-44 path
// m/44'/60'/0'/0/{index}, the standard Ethereum derivation path.
func DeriveFromSeed(seed []byte, index uint32) (*KeyPair, error) {
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: master key: %v", perr.ErrInvalidInput, err)
	}

	child := master
	for _, step := range []uint32{
		bip32.FirstHardenedChild + 44,
		bip32.FirstHardenedChild + 60,
		bip32.FirstHardenedChild + 0,
		0,
		index,
	} {
		child, err = child.NewChildKey(step)
		if err != nil {
			return nil, fmt.Errorf("%w: derive child: %v", perr.ErrInvalidInput, err)
		}
	}

	secret := secp256k1.PrivKeyFromBytes(child.Key)
	return FromSecret(secret), nil
}

// AddressOf derives the Ethereum-style address of a secp256k1 public key.
func AddressOf(public *secp256k1.PublicKey) Address {
	uncompressed := public.SerializeUncompressed()

	digest := hash.Keccak256(uncompressed[1:])

	var addr Address
	copy(addr[:], digest[12:])
	return addr
}

// String returns the lowercase 0x-prefixed hex form of the address.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Checksum returns the EIP-55 mixed-case checksum encoding of the address.
func (a Address) Checksum() string {
	lower := hex.EncodeToString(a[:])
	digest := hash.Keccak256([]byte(lower))

	var out strings.Builder
	out.WriteString("0x")

	for i, ch := range lower {
		if ch >= '0' && ch <= '9' {
			out.WriteRune(ch)
			continue
		}

		nibble := digest[i/2] >> 4
		if i%2 == 1 {
			nibble = digest[i/2] & 0x0f
		}

		if nibble >= 8 {
			out.WriteRune(ch - ('a' - 'A'))
		} else {
			out.WriteRune(ch)
		}
	}

	return out.String()
}

// ParseAddress parses a 40-hex-character address, with or without a 0x prefix. It rejects
// inputs of the wrong length or containing non-hex characters.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(s, "0x")

	if len(s) != 40 {
		return Address{}, fmt.Errorf("%w: expected 40 hex chars, got %d", perr.ErrInvalidInput, len(s))
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", perr.ErrInvalidInput, err)
	}

	var addr Address
	copy(addr[:], raw)
	return addr, nil
}
