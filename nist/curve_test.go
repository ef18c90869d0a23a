package nist

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/go-ringsig/internal/grouptest"
)

func TestP256(t *testing.T) {
	grouptest.Run(t, NewP256())
}

func TestP384(t *testing.T) {
	grouptest.Run(t, NewP384())
}

func TestGenerator_Encode(t *testing.T) {
	require.Equal(t,
		"036b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296",
		hex.EncodeToString(NewP256().Generator().Encode(true)),
	)
	require.Len(t, NewP384().Generator().Encode(true), 49)
	require.Len(t, NewP384().Generator().Encode(false), 97)
}

func TestCurves_Distinct(t *testing.T) {
	p256, p384 := NewP256(), NewP384()
	require.Equal(t, "secp256r1", p256.Name())
	require.Equal(t, "secp384r1", p384.Name())
	require.False(t, p256.Generator().Equals(p384.Generator()))
	require.Panics(t, func() {
		p256.Generator().Add(p384.Generator())
	})
}

func TestP256_Double(t *testing.T) {
	p := NewP256().ScalarBaseMul(big.NewInt(2))
	x, y := p.Coordinates()
	require.Equal(t, "7cf27b188d034f7e8a52380304b51ac3c08969e277f21b35a60b48fc47669978", hex.EncodeToString(x.Bytes()))
	require.Equal(t, "07775510db8ed040293d9ac69f7430dbba7dade63ce982299e04b79d227873d1",
		hex.EncodeToString(y.FillBytes(make([]byte, 32))))
}

func TestIdentity(t *testing.T) {
	for _, c := range []Group{NewP256(), NewP384()} {
		identity := c.ScalarBaseMul(c.Order())
		require.True(t, identity.IsIdentity())
		require.Equal(t, []byte{0}, identity.Encode(true))
		require.Equal(t, []byte{0}, identity.Encode(false))

		x, y := identity.Coordinates()
		require.Zero(t, x.Sign())
		require.Zero(t, y.Sign())

		fromCoords, err := c.NewPoint(x, y)
		require.NoError(t, err)
		require.True(t, fromCoords.IsIdentity())
	}
}

func TestCurve_Equal(t *testing.T) {
	require.True(t, NewP256().Equal(NewP256()))
	require.True(t, NewP384().Equal(NewP384()))
	require.False(t, NewP256().Equal(NewP384()))
}
