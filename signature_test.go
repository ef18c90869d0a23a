package ringsig

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/athanorlabs/go-ringsig/types"
)

const generatorSigHex = "302d04210279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
	"300302010a3003020114"

func newGeneratorSignature(t *testing.T) *Signature {
	t.Helper()
	g := Secp256k1SHA256.Group().Generator()
	sig, err := NewSignature(Secp256k1SHA256, g, []*big.Int{big.NewInt(10)}, []*big.Int{big.NewInt(20)})
	require.NoError(t, err)
	return sig
}

func TestSignature_Accessors(t *testing.T) {
	sig := newGeneratorSignature(t)
	g := Secp256k1SHA256.Group().Generator()

	require.True(t, sig.KeyImage().Equals(g))
	require.Equal(t, []*big.Int{big.NewInt(10)}, sig.C())
	require.Equal(t, []*big.Int{big.NewInt(20)}, sig.R())
	require.Equal(t, 1, sig.Size())
	require.Same(t, Secp256k1SHA256, sig.Engine())

	gx, gy := g.Coordinates()
	require.Equal(t, []*big.Int{gx, gy, big.NewInt(10), big.NewInt(20)}, sig.Components())

	// callers cannot reach the signature's scalars
	sig.C()[0].SetInt64(11)
	sig.R()[0].SetInt64(21)
	require.Equal(t, []*big.Int{big.NewInt(10)}, sig.C())
	require.Equal(t, []*big.Int{big.NewInt(20)}, sig.R())
}

func TestSignature_Serialize(t *testing.T) {
	sig := newGeneratorSignature(t)
	require.Equal(t, generatorSigHex, sig.Hex())

	decoded, err := DeserializeSignatureHex(Secp256k1SHA256, generatorSigHex)
	require.NoError(t, err)
	require.Equal(t, sig.Components(), decoded.Components())
	require.Equal(t, sig.Serialize(), decoded.Serialize())
}

func TestSignature_SerializeUncompressed(t *testing.T) {
	sk := newKey(t, Secp256k1SHA256, 1)
	sig, ring, err := sk.Sign([]byte("a"), coinbaseKeys(t))
	require.NoError(t, err)

	uncompressed := sig.SerializeUncompressed()
	require.Greater(t, len(uncompressed), len(sig.Serialize()))

	decoded, err := DeserializeSignature(Secp256k1SHA256, uncompressed)
	require.NoError(t, err)
	require.Equal(t, sig.Serialize(), decoded.Serialize())

	ok, err := decoded.Verify([]byte("a"), ring)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSignature_Serialize_Presets(t *testing.T) {
	for _, e := range Presets() {
		t.Run(e.String(), func(t *testing.T) {
			sk := newKey(t, e, 11)
			sig, ring, err := sk.Sign([]byte("round trip"), []*PublicKey{newKey(t, e, 12).PublicKey()})
			require.NoError(t, err)

			decoded, err := DeserializeSignature(e, sig.Serialize())
			require.NoError(t, err)
			require.True(t, sig.Linked(decoded))

			ok, err := decoded.Verify([]byte("round trip"), ring)
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}

// buildSignature encodes a signature-shaped structure without validating it.
func buildSignature(image []byte, c, r []*big.Int, extra func(*cryptobyte.Builder)) []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1OctetString(image)
		addIntegers(b, c)
		addIntegers(b, r)
		if extra != nil {
			extra(b)
		}
	})
	return b.BytesOrPanic()
}

func TestDeserializeSignature_Malformed(t *testing.T) {
	e := Secp256k1SHA256
	g := e.Group().Generator().Encode(true)
	ten := []*big.Int{big.NewInt(10)}
	valid := buildSignature(g, ten, ten, nil)

	nonMinimal := []byte{0x30, 0x2e, 0x04, 0x21}
	nonMinimal = append(nonMinimal, g...)
	nonMinimal = append(nonMinimal, 0x30, 0x04, 0x02, 0x02, 0x00, 0x0a, 0x30, 0x03, 0x02, 0x01, 0x0a)

	badPrefix := append([]byte{0x05}, g[1:]...)

	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1OctetString(g)
		addIntegers(b, ten)
	})
	missingR := b.BytesOrPanic()

	testCases := map[string][]byte{
		"empty":            {},
		"not a sequence":   append([]byte{0x31}, valid[1:]...),
		"trailing data":    append(append([]byte(nil), valid...), 0x00),
		"truncated":        valid[:len(valid)-1],
		"missing r":        missingR,
		"length mismatch":  buildSignature(g, ten, []*big.Int{big.NewInt(1), big.NewInt(2)}, nil),
		"no members":       buildSignature(g, nil, nil, nil),
		"negative scalar":  buildSignature(g, []*big.Int{big.NewInt(-1)}, ten, nil),
		"scalar too large": buildSignature(g, ten, []*big.Int{e.Order()}, nil),
		"non-minimal int":  nonMinimal,
		"bad key image":    buildSignature(badPrefix, ten, ten, nil),
		"identity image":   buildSignature([]byte{0x00}, ten, ten, nil),
		"extra field": buildSignature(g, ten, ten, func(b *cryptobyte.Builder) {
			b.AddASN1Int64(1)
		}),
	}

	for name, in := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := DeserializeSignature(e, in)
			require.ErrorIs(t, err, ErrMalformedSignature)
		})
	}

	_, err := DeserializeSignature(e, valid)
	require.NoError(t, err)

	_, err = DeserializeSignatureHex(e, "not hex")
	require.ErrorIs(t, err, ErrMalformedSignature)
}

func TestNewSignature_Invalid(t *testing.T) {
	e := Secp256k1SHA256
	g := e.Group().Generator()
	one := []*big.Int{big.NewInt(1)}

	_, err := NewSignature(e, nil, one, one)
	require.ErrorIs(t, err, ErrMalformedSignature)

	_, err = NewSignature(e, e.Group().ScalarBaseMul(big.NewInt(0)), one, one)
	require.ErrorIs(t, err, ErrMalformedSignature)

	_, err = NewSignature(e, Secp256r1SHA256.Group().Generator(), one, one)
	require.ErrorIs(t, err, ErrMalformedSignature)

	_, err = NewSignature(e, g, nil, nil)
	require.ErrorIs(t, err, ErrMalformedSignature)

	_, err = NewSignature(e, g, one, []*big.Int{big.NewInt(1), big.NewInt(2)})
	require.ErrorIs(t, err, ErrMalformedSignature)

	_, err = NewSignature(e, g, []*big.Int{nil}, one)
	require.ErrorIs(t, err, ErrMalformedSignature)

	_, err = NewSignature(e, g, one, []*big.Int{e.Order()})
	require.ErrorIs(t, err, ErrMalformedSignature)
}

// zeroCoordinates is a point that does not admit to being the identity but
// has the identity's coordinates.
type zeroCoordinates struct {
	types.Point
}

func (zeroCoordinates) IsIdentity() bool {
	return false
}

func (zeroCoordinates) Coordinates() (*big.Int, *big.Int) {
	return new(big.Int), new(big.Int)
}

func TestNewSignature_IdentityAfterValidation(t *testing.T) {
	one := []*big.Int{big.NewInt(1)}
	for _, e := range []*Engine{Secp256k1SHA256, Secp256r1SHA256, BN254SHA256} {
		_, err := NewSignature(e, zeroCoordinates{}, one, one)
		require.ErrorIs(t, err, ErrMalformedSignature, e.String())
	}
}

func TestSignature_Verify_Errors(t *testing.T) {
	sk := newKey(t, Secp256k1SHA256, 1)
	sig, ring, err := sk.Sign([]byte("a"), coinbaseKeys(t))
	require.NoError(t, err)

	_, err = sig.Verify([]byte("a"), ring[:3])
	require.ErrorIs(t, err, ErrRingSizeMismatch)

	_, err = sig.Verify([]byte("a"), append(ring, ring[0]))
	require.ErrorIs(t, err, ErrRingSizeMismatch)

	mixed := append([]*PublicKey(nil), ring...)
	mixed[1] = newKey(t, Secp256k1Blake2b256, 2).PublicKey()
	_, err = sig.Verify([]byte("a"), mixed)
	require.ErrorIs(t, err, ErrHashEngineMismatch)

	withNil := append([]*PublicKey(nil), ring...)
	withNil[2] = nil
	_, err = sig.Verify([]byte("a"), withNil)
	require.Error(t, err)
}

func TestSignature_Verify_Tampered(t *testing.T) {
	sk := newKey(t, Secp256k1SHA256, 1)
	msg := []byte("a")
	sig, ring, err := sk.Sign(msg, coinbaseKeys(t))
	require.NoError(t, err)

	one := big.NewInt(1)
	n := Secp256k1SHA256.Order()

	bump := func(v *big.Int) *big.Int {
		return new(big.Int).Mod(new(big.Int).Add(v, one), n)
	}

	for i := 0; i < sig.Size(); i++ {
		c, r := sig.C(), sig.R()
		c[i] = bump(c[i])
		tampered, err := NewSignature(Secp256k1SHA256, sig.KeyImage(), c, r)
		require.NoError(t, err)

		ok, err := tampered.Verify(msg, ring)
		require.NoError(t, err)
		require.False(t, ok, "c[%d]", i)

		c, r = sig.C(), sig.R()
		r[i] = bump(r[i])
		tampered, err = NewSignature(Secp256k1SHA256, sig.KeyImage(), c, r)
		require.NoError(t, err)

		ok, err = tampered.Verify(msg, ring)
		require.NoError(t, err)
		require.False(t, ok, "r[%d]", i)
	}

	// another signer's key image cannot stand in for the real one
	otherImage, err := newKey(t, Secp256k1SHA256, 2).KeyImage()
	require.NoError(t, err)
	forged, err := NewSignature(Secp256k1SHA256, otherImage, sig.C(), sig.R())
	require.NoError(t, err)

	ok, err := forged.Verify(msg, ring)
	require.NoError(t, err)
	require.False(t, ok)
}
