// Package bn254 provides the G1 group of the BN254 pairing curve
// (y^2 = x^3 + 3), backed by gnark-crypto. Points use SEC1 encodings.
package bn254

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/athanorlabs/go-ringsig/types"
)

type Group = types.Group
type Point = types.Point

var _ Group = &CurveImpl{}
var _ Point = &PointImpl{}

var (
	errNotOnCurve      = errors.New("point is not on bn254 G1")
	errInvalidEncoding = errors.New("invalid point encoding")
)

// CurveImpl is the BN254 G1 group.
type CurveImpl struct{}

func NewCurve() Group {
	return &CurveImpl{}
}

func (*CurveImpl) Name() string {
	return "bn254"
}

func (*CurveImpl) Equal(other Group) bool {
	_, ok := other.(*CurveImpl)
	return ok
}

func (*CurveImpl) Order() *big.Int {
	return fr.Modulus()
}

func (*CurveImpl) FieldByteLen() int {
	return fp.Bytes
}

func (*CurveImpl) Generator() Point {
	_, _, g1, _ := bn254.Generators()
	return &PointImpl{inner: g1}
}

func (*CurveImpl) ScalarBaseMul(k *big.Int) Point {
	p := &PointImpl{}
	p.inner.ScalarMultiplicationBase(reduce(k))
	return p
}

func (*CurveImpl) NewPoint(x, y *big.Int) (Point, error) {
	if x.Sign() < 0 || y.Sign() < 0 || x.Cmp(fp.Modulus()) >= 0 || y.Cmp(fp.Modulus()) >= 0 {
		return nil, errNotOnCurve
	}

	p := &PointImpl{}
	p.inner.X.SetBigInt(x)
	p.inner.Y.SetBigInt(y)
	if p.inner.IsInfinity() {
		return p, nil
	}
	if !p.inner.IsOnCurve() {
		return nil, errNotOnCurve
	}
	return p, nil
}

func (c *CurveImpl) DecodePoint(b []byte) (Point, error) {
	switch {
	case len(b) == 1 && b[0] == 0:
		return &PointImpl{}, nil
	case len(b) == 1+fp.Bytes && (b[0] == 0x02 || b[0] == 0x03):
		x := new(big.Int).SetBytes(b[1:])
		if x.Cmp(fp.Modulus()) >= 0 {
			return nil, errNotOnCurve
		}

		// y^2 = x^3 + 3
		var fx, rhs, three, y fp.Element
		fx.SetBigInt(x)
		three.SetUint64(3)
		rhs.Square(&fx).Mul(&rhs, &fx).Add(&rhs, &three)
		if y.Sqrt(&rhs) == nil {
			return nil, errNotOnCurve
		}
		if y.BigInt(new(big.Int)).Bit(0) != uint(b[0]&1) {
			y.Neg(&y)
		}

		p := &PointImpl{}
		p.inner.X = fx
		p.inner.Y = y
		return p, nil
	case len(b) == 1+2*fp.Bytes && b[0] == 0x04:
		x := new(big.Int).SetBytes(b[1 : 1+fp.Bytes])
		y := new(big.Int).SetBytes(b[1+fp.Bytes:])
		if x.Sign() == 0 && y.Sign() == 0 {
			return nil, errInvalidEncoding
		}
		return c.NewPoint(x, y)
	default:
		return nil, errInvalidEncoding
	}
}

// PointImpl is an affine G1 point; (0, 0) is the identity.
type PointImpl struct {
	inner bn254.G1Affine
}

func (p *PointImpl) Add(other Point) Point {
	o, ok := other.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *bn254.PointImpl")
	}

	res := &PointImpl{}
	res.inner.Add(&p.inner, &o.inner)
	return res
}

func (p *PointImpl) ScalarMul(k *big.Int) Point {
	res := &PointImpl{}
	res.inner.ScalarMultiplication(&p.inner, reduce(k))
	return res
}

func (p *PointImpl) Coordinates() (*big.Int, *big.Int) {
	return p.inner.X.BigInt(new(big.Int)), p.inner.Y.BigInt(new(big.Int))
}

func (p *PointImpl) Encode(compressed bool) []byte {
	if p.IsIdentity() {
		return []byte{0}
	}

	x, y := p.Coordinates()
	if compressed {
		out := make([]byte, 1+fp.Bytes)
		out[0] = 0x02 | byte(y.Bit(0))
		x.FillBytes(out[1:])
		return out
	}

	out := make([]byte, 1+2*fp.Bytes)
	out[0] = 0x04
	x.FillBytes(out[1 : 1+fp.Bytes])
	y.FillBytes(out[1+fp.Bytes:])
	return out
}

func (p *PointImpl) IsIdentity() bool {
	return p.inner.IsInfinity()
}

func (p *PointImpl) Equals(other Point) bool {
	o, ok := other.(*PointImpl)
	if !ok {
		return false
	}
	return p.inner.Equal(&o.inner)
}

func reduce(k *big.Int) *big.Int {
	return new(big.Int).Mod(k, fr.Modulus())
}
