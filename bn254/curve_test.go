package bn254

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/go-ringsig/internal/grouptest"
)

func TestCurve(t *testing.T) {
	grouptest.Run(t, NewCurve())
}

func TestGenerator(t *testing.T) {
	x, y := NewCurve().Generator().Coordinates()
	require.Equal(t, 0, x.Cmp(big.NewInt(1)))
	require.Equal(t, 0, y.Cmp(big.NewInt(2)))

	// y = 2 is even
	require.Equal(t, byte(0x02), NewCurve().Generator().Encode(true)[0])
}

func TestDecodePoint_Uncompressed_Identity(t *testing.T) {
	b := make([]byte, 65)
	b[0] = 0x04
	_, err := NewCurve().DecodePoint(b)
	require.ErrorIs(t, err, errInvalidEncoding)
}
