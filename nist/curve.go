// Package nist provides the NIST prime curves secp256r1 (P-256) and
// secp384r1 (P-384) as ring signature groups.
package nist

import (
	"errors"
	"math/big"

	"filippo.io/nistec"

	"github.com/athanorlabs/go-ringsig/types"
)

type Group = types.Group
type Point = types.Point

var _ Group = &CurveImpl[*nistec.P256Point]{}
var _ Point = &PointImpl[*nistec.P256Point]{}

var (
	errNotOnCurve      = errors.New("point is not on the curve")
	errInvalidEncoding = errors.New("invalid point encoding")
)

// nistPoint is the method set shared by the nistec point types.
type nistPoint[T any] interface {
	Bytes() []byte
	BytesCompressed() []byte
	SetBytes([]byte) (T, error)
	SetGenerator() T
	Add(T, T) T
	ScalarMult(T, []byte) (T, error)
	ScalarBaseMult([]byte) (T, error)
}

// CurveImpl adapts a nistec point type to types.Group.
type CurveImpl[P nistPoint[P]] struct {
	name     string
	newPoint func() P
	order    *big.Int
	fieldLen int
}

// NewP256 returns secp256r1.
func NewP256() Group {
	return &CurveImpl[*nistec.P256Point]{
		name:     "secp256r1",
		newPoint: nistec.NewP256Point,
		order:    mustHex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"),
		fieldLen: 32,
	}
}

// NewP384 returns secp384r1.
func NewP384() Group {
	return &CurveImpl[*nistec.P384Point]{
		name:     "secp384r1",
		newPoint: nistec.NewP384Point,
		order: mustHex("ffffffffffffffffffffffffffffffffffffffffffffffff" +
			"c7634d81f4372ddf581a0db248b0a77aecec196accc52973"),
		fieldLen: 48,
	}
}

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid constant " + s)
	}
	return v
}

func (c *CurveImpl[P]) Name() string {
	return c.name
}

func (c *CurveImpl[P]) Equal(other Group) bool {
	o, ok := other.(*CurveImpl[P])
	return ok && o.name == c.name
}

func (c *CurveImpl[P]) Order() *big.Int {
	return new(big.Int).Set(c.order)
}

func (c *CurveImpl[P]) FieldByteLen() int {
	return c.fieldLen
}

func (c *CurveImpl[P]) Generator() Point {
	return c.wrap(c.newPoint().SetGenerator())
}

func (c *CurveImpl[P]) ScalarBaseMul(k *big.Int) Point {
	p, err := c.newPoint().ScalarBaseMult(c.scalarBytes(k))
	if err != nil {
		// scalarBytes always returns a reduced scalar of the right length
		panic(err)
	}
	return c.wrap(p)
}

func (c *CurveImpl[P]) NewPoint(x, y *big.Int) (Point, error) {
	if x.Sign() == 0 && y.Sign() == 0 {
		return c.wrap(c.newPoint()), nil
	}
	if x.Sign() < 0 || y.Sign() < 0 || x.BitLen() > 8*c.fieldLen || y.BitLen() > 8*c.fieldLen {
		return nil, errNotOnCurve
	}

	b := make([]byte, 1+2*c.fieldLen)
	b[0] = 0x04
	x.FillBytes(b[1 : 1+c.fieldLen])
	y.FillBytes(b[1+c.fieldLen:])

	p, err := c.newPoint().SetBytes(b)
	if err != nil {
		return nil, errNotOnCurve
	}
	return c.wrap(p), nil
}

func (c *CurveImpl[P]) DecodePoint(b []byte) (Point, error) {
	switch {
	case len(b) == 1 && b[0] == 0:
	case len(b) == 1+c.fieldLen && (b[0] == 0x02 || b[0] == 0x03):
	case len(b) == 1+2*c.fieldLen && b[0] == 0x04:
	default:
		return nil, errInvalidEncoding
	}

	p, err := c.newPoint().SetBytes(b)
	if err != nil {
		return nil, errNotOnCurve
	}
	return c.wrap(p), nil
}

func (c *CurveImpl[P]) wrap(p P) *PointImpl[P] {
	return &PointImpl[P]{curve: c, inner: p}
}

// scalarBytes reduces k into [0, n) and returns it big-endian.
func (c *CurveImpl[P]) scalarBytes(k *big.Int) []byte {
	b := make([]byte, (c.order.BitLen()+7)/8)
	return new(big.Int).Mod(k, c.order).FillBytes(b)
}

// PointImpl wraps a nistec point. Points are never modified after creation.
type PointImpl[P nistPoint[P]] struct {
	curve *CurveImpl[P]
	inner P
}

func (p *PointImpl[P]) Add(other Point) Point {
	o := p.mustPoint(other)
	return p.curve.wrap(p.curve.newPoint().Add(p.inner, o.inner))
}

func (p *PointImpl[P]) ScalarMul(k *big.Int) Point {
	res, err := p.curve.newPoint().ScalarMult(p.inner, p.curve.scalarBytes(k))
	if err != nil {
		panic(err)
	}
	return p.curve.wrap(res)
}

// Coordinates returns (0, 0) for the identity.
func (p *PointImpl[P]) Coordinates() (*big.Int, *big.Int) {
	b := p.inner.Bytes()
	if len(b) == 1 {
		return new(big.Int), new(big.Int)
	}

	size := p.curve.fieldLen
	return new(big.Int).SetBytes(b[1 : 1+size]), new(big.Int).SetBytes(b[1+size:])
}

// Encode returns the SEC1 encoding, or the single byte 0x00 for the identity.
func (p *PointImpl[P]) Encode(compressed bool) []byte {
	if compressed {
		return p.inner.BytesCompressed()
	}
	return p.inner.Bytes()
}

func (p *PointImpl[P]) IsIdentity() bool {
	return len(p.inner.Bytes()) == 1
}

func (p *PointImpl[P]) Equals(other Point) bool {
	o, ok := other.(*PointImpl[P])
	if !ok || o.curve.name != p.curve.name {
		return false
	}
	return string(p.inner.Bytes()) == string(o.inner.Bytes())
}

func (p *PointImpl[P]) mustPoint(other Point) *PointImpl[P] {
	o, ok := other.(*PointImpl[P])
	if !ok || o.curve.name != p.curve.name {
		panic("invalid point; not a " + p.curve.name + " point")
	}
	return o
}
