package fixture_test

import (
	"strings"
	"testing"

	"github.com/codahale/privpay/fixture"
	"github.com/codahale/privpay/wire"
	"github.com/stretchr/testify/require"
)

func TestNewAndMarshalRoundTrip(t *testing.T) {
	tx := &wire.PrivateTransaction{
		InputAmounts:  []uint64{100},
		OutputAmounts: []uint64{60, 40},
	}
	pub := &wire.PublicInputs{
		InputCommitments:  []wire.CommitmentData{{1}},
		OutputCommitments: []wire.CommitmentData{{2}, {3}},
		KeyImage:          [32]byte{9},
		Ring:              [][32]byte{{4}, {5}, {6}},
	}

	f := fixture.New(tx, pub, []byte{0xAA}, []byte{0xBB, 0xCC}, []byte{0xDD})

	require.Equal(t, uint64(100), f.InputAmount)
	require.Equal(t, 3, f.RingSize)
	require.True(t, strings.HasPrefix(f.KeyImage, "0x"))
	require.Len(t, f.InputCommitments, 1)
	require.Len(t, f.OutputCommitments, 2)

	encoded, err := f.MarshalIndent()
	require.NoError(t, err)

	decoded, err := fixture.Decode(encoded)
	require.NoError(t, err)

	require.Equal(t, f.KeyImage, decoded.KeyImage)
	require.Equal(t, f.RingSize, decoded.RingSize)
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	_, err := fixture.Decode([]byte("not json"))
	require.Error(t, err)
}
