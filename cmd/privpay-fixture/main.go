// Command privpay-fixture assembles a sample private payment transaction, evaluates it through
// the transaction-validity predicate (standing in for a proving environment's host), and emits
// the 0x-hex JSON fixture a verifier contract's test suite consumes.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/codahale/privpay/ethkey"
	"github.com/codahale/privpay/fixture"
	"github.com/codahale/privpay/internal/config"
	"github.com/codahale/privpay/internal/telemetry"
	"github.com/codahale/privpay/pedersen"
	"github.com/codahale/privpay/predicate"
	"github.com/codahale/privpay/ringsig"
	"github.com/codahale/privpay/txbuilder"
	"github.com/codahale/privpay/wire"
	"github.com/gtank/ristretto255"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"
)

func main() {
	var (
		amount      uint64
		ringSize    int
		proofSystem string
		outputPath  string
		seedPhrase  string
	)

	root := &cobra.Command{
		Use:   "privpay-fixture",
		Short: "Assemble a private payment transaction and emit a verifier fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			if proofSystem != "plonk" && proofSystem != "groth16" {
				return fmt.Errorf("--system must be plonk or groth16, got %q", proofSystem)
			}
			if ringSize < 1 {
				return fmt.Errorf("--ring-size must be at least 1, got %d", ringSize)
			}

			return run(amount, ringSize, proofSystem, outputPath, seedPhrase)
		},
	}

	root.Flags().Uint64Var(&amount, "amount", 100, "total input amount to split across two outputs")
	root.Flags().IntVar(&ringSize, "ring-size", 5, "number of members in the signing ring, the signer included")
	root.Flags().StringVar(&proofSystem, "system", "groth16", "proof system label (plonk or groth16); logged when writing to --output, not stored in the fixture")
	root.Flags().StringVarP(&outputPath, "output", "o", "", "output file for the fixture JSON (defaults to stdout)")
	root.Flags().StringVar(&seedPhrase, "seed-phrase", "", "BIP-39 mnemonic to derive recipient keys from deterministically (random keys if omitted)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(amount uint64, ringSize int, proofSystem, outputPath, seedPhrase string) error {
	logger := telemetry.Component("privpay-fixture")

	secretIndex := ringSize / 2
	secrets := make([]*ristretto255.Scalar, ringSize)
	ring := make([]*ristretto255.Element, ringSize)

	for i := range ringSize {
		x, err := pedersen.GenerateBlinding()
		if err != nil {
			return fmt.Errorf("generate ring member: %w", err)
		}
		secrets[i] = x
		ring[i] = ristretto255.NewIdentityElement().ScalarBaseMult(x)
	}

	sig, err := ringsig.Sign([]byte(config.MessagePrivatePaymentTx), secrets[secretIndex], secretIndex, ring)
	if err != nil {
		return fmt.Errorf("sign ring: %w", err)
	}

	outputAmounts := []uint64{(amount * 6) / 10, (amount * 4) / 10}
	if outputAmounts[0]+outputAmounts[1] != amount {
		outputAmounts[1] = amount - outputAmounts[0]
	}

	recipient1, recipient2, err := deriveRecipients(seedPhrase)
	if err != nil {
		return fmt.Errorf("generate recipient: %w", err)
	}

	stealth1, ephemeral1, err := ethkey.GenerateStealth(recipient1.Public, recipient1.Public)
	if err != nil {
		return fmt.Errorf("generate stealth output: %w", err)
	}
	stealth2, ephemeral2, err := ethkey.GenerateStealth(recipient2.Public, recipient2.Public)
	if err != nil {
		return fmt.Errorf("generate stealth output: %w", err)
	}

	inputBlinding, err := pedersen.GenerateBlinding()
	if err != nil {
		return fmt.Errorf("generate blinding: %w", err)
	}
	inputCommitment := pedersen.Commit(amount, inputBlinding)

	output1Blinding, err := pedersen.GenerateBlinding()
	if err != nil {
		return fmt.Errorf("generate blinding: %w", err)
	}
	output2Blinding, err := pedersen.GenerateBlinding()
	if err != nil {
		return fmt.Errorf("generate blinding: %w", err)
	}

	var ring32 [][32]byte
	for _, p := range ring {
		var b [32]byte
		copy(b[:], p.Bytes())
		ring32 = append(ring32, b)
	}

	var inputCommitment32, output1Commitment32, output2Commitment32 wire.CommitmentData
	copy(inputCommitment32[:], inputCommitment.Bytes())
	output1Commitment := pedersen.Commit(outputAmounts[0], output1Blinding)
	output2Commitment := pedersen.Commit(outputAmounts[1], output2Blinding)
	copy(output1Commitment32[:], output1Commitment.Bytes())
	copy(output2Commitment32[:], output2Commitment.Bytes())

	builder := txbuilder.New().
		AddInput(inputCommitment32, sig.KeyImageBytes(), amount, scalar32(inputBlinding)).
		AddOutput(output1Commitment32, stealth1.Address, ephemeral1.PubKey().SerializeCompressed(), outputAmounts[0], scalar32(output1Blinding)).
		AddOutput(output2Commitment32, stealth2.Address, ephemeral2.PubKey().SerializeCompressed(), outputAmounts[1], scalar32(output2Blinding))

	tx, err := builder.Build(ring32, sig.KeyImageBytes(), sig, secretIndex)
	if err != nil {
		return fmt.Errorf("build transaction: %w", err)
	}

	pub, err := predicate.Evaluate(tx)
	if err != nil {
		return fmt.Errorf("evaluate predicate: %w", err)
	}

	logger.Info("predicate accepted transaction", "ring_size", ringSize, "key_image", hex.EncodeToString(pub.KeyImage[:]))

	vkey := make([]byte, 32)
	publicValues := pub.Encode()
	proof := make([]byte, 64)
	if _, err := rand.Read(vkey); err != nil {
		return fmt.Errorf("generate placeholder vkey: %w", err)
	}
	if _, err := rand.Read(proof); err != nil {
		return fmt.Errorf("generate placeholder proof: %w", err)
	}

	f := fixture.New(tx, pub, vkey, publicValues, proof)
	encoded, err := f.MarshalIndent()
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}

	if outputPath == "" {
		fmt.Println(string(encoded))
		return nil
	}

	logger.Info("writing fixture", "path", outputPath, "system", proofSystem)
	return os.WriteFile(outputPath, encoded, 0o644)
}

// deriveRecipients produces the two recipients' key pairs. Given a BIP-39 mnemonic it derives
// both deterministically at successive indices; otherwise it generates fresh random keys.
func deriveRecipients(seedPhrase string) (*ethkey.KeyPair, *ethkey.KeyPair, error) {
	if seedPhrase == "" {
		recipient1, err := ethkey.Random()
		if err != nil {
			return nil, nil, err
		}
		recipient2, err := ethkey.Random()
		if err != nil {
			return nil, nil, err
		}
		return recipient1, recipient2, nil
	}

	if !bip39.IsMnemonicValid(seedPhrase) {
		return nil, nil, fmt.Errorf("invalid BIP-39 mnemonic")
	}
	seed := bip39.NewSeed(seedPhrase, "")

	recipient1, err := ethkey.DeriveFromSeed(seed, 0)
	if err != nil {
		return nil, nil, err
	}
	recipient2, err := ethkey.DeriveFromSeed(seed, 1)
	if err != nil {
		return nil, nil, err
	}
	return recipient1, recipient2, nil
}

func scalar32(s *ristretto255.Scalar) [32]byte {
	var out [32]byte
	copy(out[:], s.Bytes())
	return out
}
