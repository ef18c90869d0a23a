// Package grouptest checks that a types.Group implementation behaves like a
// prime-order group with consistent encodings.
package grouptest

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/go-ringsig/types"
)

// Run exercises the arithmetic and encodings of g.
func Run(t *testing.T, g types.Group) {
	t.Run("arithmetic", func(t *testing.T) {
		testArithmetic(t, g)
	})
	t.Run("encoding", func(t *testing.T) {
		testEncoding(t, g)
	})
	t.Run("new point", func(t *testing.T) {
		testNewPoint(t, g)
	})
}

func testArithmetic(t *testing.T, g types.Group) {
	n := g.Order()
	gen := g.Generator()

	require.True(t, g.Equal(g))

	require.True(t, g.ScalarBaseMul(big.NewInt(0)).IsIdentity())
	require.True(t, g.ScalarBaseMul(n).IsIdentity())
	require.False(t, gen.IsIdentity())
	require.True(t, g.ScalarBaseMul(big.NewInt(1)).Equals(gen))
	require.True(t, g.ScalarBaseMul(new(big.Int).Add(n, big.NewInt(1))).Equals(gen))

	a := big.NewInt(123456789)
	b := new(big.Int).Sub(n, big.NewInt(987654321))
	sum := new(big.Int).Add(a, b)
	prod := new(big.Int).Mul(a, b)

	aG := g.ScalarBaseMul(a)
	bG := g.ScalarBaseMul(b)
	require.True(t, aG.Add(bG).Equals(g.ScalarBaseMul(sum)))
	require.True(t, bG.Add(aG).Equals(g.ScalarBaseMul(sum)))
	require.True(t, aG.ScalarMul(b).Equals(g.ScalarBaseMul(prod)))
	require.True(t, gen.ScalarMul(a).Equals(aG))

	require.True(t, aG.Add(aG).Equals(aG.ScalarMul(big.NewInt(2))))

	identity := g.ScalarBaseMul(big.NewInt(0))
	require.True(t, aG.Add(identity).Equals(aG))
	require.True(t, identity.Add(aG).Equals(aG))

	negA := aG.ScalarMul(new(big.Int).Sub(n, big.NewInt(1)))
	require.True(t, aG.Add(negA).IsIdentity())
	require.True(t, aG.ScalarMul(n).IsIdentity())
	require.False(t, aG.Equals(bG))
}

func testEncoding(t *testing.T, g types.Group) {
	for _, k := range []int64{1, 2, 3, 1000, 1 << 40} {
		p := g.ScalarBaseMul(big.NewInt(k))

		for _, compressed := range []bool{true, false} {
			enc := p.Encode(compressed)
			decoded, err := g.DecodePoint(enc)
			require.NoError(t, err)
			require.True(t, p.Equals(decoded), "k=%d compressed=%v", k, compressed)
			require.Equal(t, enc, decoded.Encode(compressed))
		}
	}

	identity := g.ScalarBaseMul(big.NewInt(0))
	decoded, err := g.DecodePoint(identity.Encode(true))
	require.NoError(t, err)
	require.True(t, decoded.IsIdentity())

	for _, bad := range [][]byte{nil, {0x07}, {0x02, 0x01}} {
		_, err = g.DecodePoint(bad)
		require.Error(t, err)
	}
}

func testNewPoint(t *testing.T, g types.Group) {
	p := g.ScalarBaseMul(big.NewInt(77))
	x, y := p.Coordinates()

	q, err := g.NewPoint(x, y)
	require.NoError(t, err)
	require.True(t, p.Equals(q))

	_, err = g.NewPoint(x, new(big.Int).Add(y, big.NewInt(1)))
	require.Error(t, err)
}
