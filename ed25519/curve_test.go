package ed25519

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/go-ringsig/internal/grouptest"
)

func TestCurve(t *testing.T) {
	grouptest.Run(t, NewCurve())
}

func TestGenerator_Encode(t *testing.T) {
	g := NewCurve().Generator()
	require.Equal(t,
		"5866666666666666666666666666666666666666666666666666666666666666",
		hex.EncodeToString(g.Encode(true)),
	)

	x, y := g.Coordinates()
	require.Equal(t, "15112221349535400772501151409588531511454012693041857206046113283949847762202", x.String())
	require.Equal(t, "46316835694926478169428394003475163141307993866256225615783033603165251855960", y.String())
}

func TestDecodePoint_SmallOrder(t *testing.T) {
	// (0, -1) has order 2.
	b, err := hex.DecodeString("ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")
	require.NoError(t, err)

	_, err = NewCurve().DecodePoint(b)
	require.ErrorIs(t, err, errNotInSubgroup)

	p := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))
	_, err = NewCurve().NewPoint(big.NewInt(0), new(big.Int).Sub(p, big.NewInt(1)))
	require.ErrorIs(t, err, errNotInSubgroup)
}
