package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/codahale/privpay/perr"
)

// Encode writes a stable, length-prefixed binary encoding of tx in the field order declared on
// PrivateTransaction. Every length prefix is a little-endian uint32; every amount and the
// secret index are little-endian uint64. decode(encode(tx)) always reproduces tx exactly.
func (tx *PrivateTransaction) Encode() []byte {
	var w encoder

	w.fixed32Vec(tx.InputCommitments32())
	w.fixed32Vec(tx.OutputCommitments32())
	w.fixed32(tx.KeyImage)
	w.fixed32Vec(tx.Ring)
	w.stealthVec(tx.StealthAddresses)
	w.uint64Vec(tx.InputAmounts)
	w.fixed32Vec(tx.InputBlindings)
	w.uint64Vec(tx.OutputAmounts)
	w.fixed32Vec(tx.OutputBlindings)
	w.fixed32Vec(tx.RingSignature.C)
	w.fixed32Vec(tx.RingSignature.R)
	w.uint64(uint64(tx.SecretIndex))

	return w.buf
}

// DecodePrivateTransaction parses the encoding produced by Encode.
func DecodePrivateTransaction(data []byte) (*PrivateTransaction, error) {
	r := decoder{buf: data}

	inputCommitments := r.fixed32Vec()
	outputCommitments := r.fixed32Vec()
	keyImage := r.fixed32()
	ring := r.fixed32Vec()
	stealthAddresses := r.stealthVec()
	inputAmounts := r.uint64Vec()
	inputBlindings := r.fixed32Vec()
	outputAmounts := r.uint64Vec()
	outputBlindings := r.fixed32Vec()
	c := r.fixed32Vec()
	rv := r.fixed32Vec()
	secretIndex := r.uint64()

	if r.err != nil {
		return nil, r.err
	}
	if len(r.buf) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after PrivateTransaction", perr.ErrDeserialization, len(r.buf))
	}

	return &PrivateTransaction{
		InputCommitments:  toCommitments(inputCommitments),
		OutputCommitments: toCommitments(outputCommitments),
		KeyImage:          keyImage,
		Ring:              ring,
		StealthAddresses:  stealthAddresses,
		InputAmounts:      inputAmounts,
		InputBlindings:    inputBlindings,
		OutputAmounts:     outputAmounts,
		OutputBlindings:   outputBlindings,
		RingSignature:     RingSignatureData{C: c, R: rv},
		SecretIndex:       int(secretIndex),
	}, nil
}

// Encode writes a stable, length-prefixed binary encoding of pub in its declared field order.
func (pub *PublicInputs) Encode() []byte {
	var w encoder

	w.fixed32Vec(toArrays(pub.InputCommitments))
	w.fixed32Vec(toArrays(pub.OutputCommitments))
	w.fixed32(pub.KeyImage)
	w.fixed32Vec(pub.Ring)

	return w.buf
}

// DecodePublicInputs parses the encoding produced by Encode.
func DecodePublicInputs(data []byte) (*PublicInputs, error) {
	r := decoder{buf: data}

	inputCommitments := r.fixed32Vec()
	outputCommitments := r.fixed32Vec()
	keyImage := r.fixed32()
	ring := r.fixed32Vec()

	if r.err != nil {
		return nil, r.err
	}
	if len(r.buf) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after PublicInputs", perr.ErrDeserialization, len(r.buf))
	}

	return &PublicInputs{
		InputCommitments:  toCommitments(inputCommitments),
		OutputCommitments: toCommitments(outputCommitments),
		KeyImage:          keyImage,
		Ring:              ring,
	}, nil
}

// InputCommitments32 returns the input commitments as raw 32-byte arrays.
func (tx *PrivateTransaction) InputCommitments32() [][32]byte {
	return toArrays(tx.InputCommitments)
}

// OutputCommitments32 returns the output commitments as raw 32-byte arrays.
func (tx *PrivateTransaction) OutputCommitments32() [][32]byte {
	return toArrays(tx.OutputCommitments)
}

func toArrays(c []CommitmentData) [][32]byte {
	out := make([][32]byte, len(c))
	for i, v := range c {
		out[i] = [32]byte(v)
	}
	return out
}

func toCommitments(a [][32]byte) []CommitmentData {
	out := make([]CommitmentData, len(a))
	for i, v := range a {
		out[i] = CommitmentData(v)
	}
	return out
}

type encoder struct {
	buf []byte
}

func (w *encoder) uint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *encoder) uint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *encoder) fixed32(v [32]byte) {
	w.buf = append(w.buf, v[:]...)
}

func (w *encoder) fixed32Vec(vs [][32]byte) {
	w.uint32(uint32(len(vs)))
	for _, v := range vs {
		w.fixed32(v)
	}
}

func (w *encoder) uint64Vec(vs []uint64) {
	w.uint32(uint32(len(vs)))
	for _, v := range vs {
		w.uint64(v)
	}
}

func (w *encoder) bytes(b []byte) {
	w.uint32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

func (w *encoder) stealthVec(vs []StealthAddressData) {
	w.uint32(uint32(len(vs)))
	for _, v := range vs {
		w.bytes(v.EphemeralPubkey)
		w.fixed32(to32(v.StealthAddress))
	}
}

func to32(addr [20]byte) [32]byte {
	var out [32]byte
	copy(out[:], addr[:])
	return out
}

type decoder struct {
	buf []byte
	err error
}

func (r *decoder) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: "+format, append([]any{perr.ErrDeserialization}, args...)...)
	}
}

func (r *decoder) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf) < n {
		r.fail("unexpected end of input, need %d bytes, have %d", n, len(r.buf))
		return nil
	}
	out := r.buf[:n]
	r.buf = r.buf[n:]
	return out
}

func (r *decoder) uint32() uint32 {
	b := r.take(4)
	if r.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *decoder) uint64() uint64 {
	b := r.take(8)
	if r.err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *decoder) fixed32() [32]byte {
	var out [32]byte
	b := r.take(32)
	if r.err != nil {
		return out
	}
	copy(out[:], b)
	return out
}

func (r *decoder) fixed32Vec() [][32]byte {
	n := r.uint32()
	if r.err != nil {
		return nil
	}
	out := make([][32]byte, n)
	for i := range out {
		out[i] = r.fixed32()
		if r.err != nil {
			return nil
		}
	}
	return out
}

func (r *decoder) uint64Vec() []uint64 {
	n := r.uint32()
	if r.err != nil {
		return nil
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = r.uint64()
		if r.err != nil {
			return nil
		}
	}
	return out
}

func (r *decoder) bytes() []byte {
	n := r.uint32()
	if r.err != nil {
		return nil
	}
	b := r.take(int(n))
	if r.err != nil {
		return nil
	}
	return append([]byte(nil), b...)
}

func (r *decoder) stealthVec() []StealthAddressData {
	n := r.uint32()
	if r.err != nil {
		return nil
	}
	out := make([]StealthAddressData, n)
	for i := range out {
		pub := r.bytes()
		addr32 := r.fixed32()
		if r.err != nil {
			return nil
		}
		var addr [20]byte
		copy(addr[:], addr32[:20])
		out[i] = StealthAddressData{EphemeralPubkey: pub, StealthAddress: addr}
	}
	return out
}
