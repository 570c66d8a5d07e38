// Package walletstate defines the record shapes a wallet built on this core would persist:
// owned outputs and the secret view/spend material that lets it scan for and spend them.
// Storage itself is an external collaborator — this package only fixes the data shape.
package walletstate

import "github.com/codahale/privpay/ethkey"

// OwnedOutput is a payment output a wallet believes it controls: the commitment published on
// the transaction, the amount and blinding it opens to, the stealth address it was sent to,
// and whether it has already been spent.
type OwnedOutput struct {
	Commitment     [32]byte
	Amount         uint64
	Blinding       [32]byte
	StealthAddress ethkey.Address
	Spent          bool
}

// MarkSpent records that the output has been consumed by a later transaction.
func (o *OwnedOutput) MarkSpent() {
	o.Spent = true
}

// IsUnspent reports whether the output is still available to spend.
func (o *OwnedOutput) IsUnspent() bool {
	return !o.Spent
}

// WalletState is the minimal state a wallet needs to scan incoming stealth payments and spend
// the outputs it recognizes: its long-term view and spend secrets, and the outputs it has
// accumulated so far.
type WalletState struct {
	ViewSecret  [32]byte
	SpendSecret [32]byte
	Outputs     []OwnedOutput
}

// UnspentOutputs returns the subset of Outputs that have not been marked spent.
func (w *WalletState) UnspentOutputs() []OwnedOutput {
	var out []OwnedOutput
	for _, o := range w.Outputs {
		if o.IsUnspent() {
			out = append(out, o)
		}
	}
	return out
}

// Balance returns the sum of all unspent output amounts.
func (w *WalletState) Balance() uint64 {
	var total uint64
	for _, o := range w.Outputs {
		if o.IsUnspent() {
			total += o.Amount
		}
	}
	return total
}
