// Package weierstrass implements arbitrary short Weierstrass curves
// y^2 = x^3 + ax + b over a prime field using affine math/big arithmetic.
//
// It is intended for custom and small test groups; it is neither fast nor
// constant-time. Use the dedicated backends for production curves.
package weierstrass

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/athanorlabs/go-ringsig/types"
)

type Group = types.Group
type Point = types.Point

var _ Group = &CurveImpl{}
var _ Point = &PointImpl{}

var (
	errNotOnCurve      = errors.New("point is not on the curve")
	errInvalidEncoding = errors.New("invalid point encoding")
)

// Params defines a curve and the cyclic subgroup generated by (Gx, Gy),
// whose order is N.
type Params struct {
	Name   string
	P      *big.Int
	A, B   *big.Int
	Gx, Gy *big.Int
	N      *big.Int
}

// CurveImpl is a group over a short Weierstrass curve.
type CurveImpl struct {
	params Params
	g      *PointImpl
}

// NewCurve validates params and returns the group they describe.
func NewCurve(params Params) (*CurveImpl, error) {
	if params.P == nil || params.A == nil || params.B == nil ||
		params.Gx == nil || params.Gy == nil || params.N == nil {
		return nil, errors.New("incomplete curve parameters")
	}
	if params.N.Sign() <= 0 || params.P.Cmp(big.NewInt(3)) < 0 {
		return nil, errors.New("invalid curve parameters")
	}

	c := &CurveImpl{params: Params{
		Name: params.Name,
		P:    new(big.Int).Set(params.P),
		A:    new(big.Int).Set(params.A),
		B:    new(big.Int).Set(params.B),
		Gx:   new(big.Int).Set(params.Gx),
		Gy:   new(big.Int).Set(params.Gy),
		N:    new(big.Int).Set(params.N),
	}}
	if !c.isOnCurve(params.Gx, params.Gy) {
		return nil, fmt.Errorf("generator of %s: %w", params.Name, errNotOnCurve)
	}
	c.g = c.point(c.params.Gx, c.params.Gy)
	return c, nil
}

func (c *CurveImpl) Name() string {
	return c.params.Name
}

// Equal compares every curve parameter, not just the name.
func (c *CurveImpl) Equal(other Group) bool {
	o, ok := other.(*CurveImpl)
	if !ok {
		return false
	}
	if c == o {
		return true
	}

	a, b := c.params, o.params
	return a.Name == b.Name &&
		a.P.Cmp(b.P) == 0 &&
		a.A.Cmp(b.A) == 0 &&
		a.B.Cmp(b.B) == 0 &&
		a.Gx.Cmp(b.Gx) == 0 &&
		a.Gy.Cmp(b.Gy) == 0 &&
		a.N.Cmp(b.N) == 0
}

func (c *CurveImpl) Order() *big.Int {
	return new(big.Int).Set(c.params.N)
}

func (c *CurveImpl) FieldByteLen() int {
	return (c.params.P.BitLen() + 7) / 8
}

func (c *CurveImpl) Generator() Point {
	return c.g
}

func (c *CurveImpl) ScalarBaseMul(k *big.Int) Point {
	return c.g.ScalarMul(k)
}

func (c *CurveImpl) NewPoint(x, y *big.Int) (Point, error) {
	if x.Sign() == 0 && y.Sign() == 0 {
		return c.identity(), nil
	}
	if !c.isOnCurve(x, y) {
		return nil, errNotOnCurve
	}
	return c.point(x, y), nil
}

func (c *CurveImpl) DecodePoint(b []byte) (Point, error) {
	size := c.FieldByteLen()

	switch {
	case len(b) == 1 && b[0] == 0:
		return c.identity(), nil
	case len(b) == 1+size && (b[0] == 0x02 || b[0] == 0x03):
		x := new(big.Int).SetBytes(b[1:])
		y, err := c.decompress(x, b[0] == 0x03)
		if err != nil {
			return nil, err
		}
		return c.point(x, y), nil
	case len(b) == 1+2*size && b[0] == 0x04:
		x := new(big.Int).SetBytes(b[1 : 1+size])
		y := new(big.Int).SetBytes(b[1+size:])
		return c.NewPoint(x, y)
	default:
		return nil, errInvalidEncoding
	}
}

func (c *CurveImpl) rhs(x *big.Int) *big.Int {
	p := c.params.P
	r := new(big.Int).Exp(x, big.NewInt(3), p)
	ax := new(big.Int).Mul(c.params.A, x)
	r.Add(r, ax)
	r.Add(r, c.params.B)
	return r.Mod(r, p)
}

func (c *CurveImpl) isOnCurve(x, y *big.Int) bool {
	p := c.params.P
	if x.Sign() < 0 || x.Cmp(p) >= 0 || y.Sign() < 0 || y.Cmp(p) >= 0 {
		return false
	}
	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, p)
	return y2.Cmp(c.rhs(x)) == 0
}

func (c *CurveImpl) decompress(x *big.Int, odd bool) (*big.Int, error) {
	p := c.params.P
	if x.Cmp(p) >= 0 {
		return nil, errNotOnCurve
	}

	y := new(big.Int).ModSqrt(c.rhs(x), p)
	if y == nil {
		return nil, errNotOnCurve
	}
	if (y.Bit(0) == 1) != odd {
		if y.Sign() == 0 {
			return nil, errInvalidEncoding
		}
		y.Sub(p, y)
	}
	return y, nil
}

func (c *CurveImpl) point(x, y *big.Int) *PointImpl {
	return &PointImpl{curve: c, x: new(big.Int).Set(x), y: new(big.Int).Set(y)}
}

func (c *CurveImpl) identity() *PointImpl {
	return &PointImpl{curve: c, inf: true}
}

func (c *CurveImpl) add(a, b *PointImpl) *PointImpl {
	if a.inf {
		return b
	}
	if b.inf {
		return a
	}

	p := c.params.P
	if a.x.Cmp(b.x) == 0 {
		sum := new(big.Int).Add(a.y, b.y)
		if sum.Mod(sum, p).Sign() == 0 {
			return c.identity()
		}
		return c.double(a)
	}

	num := new(big.Int).Sub(b.y, a.y)
	den := new(big.Int).Sub(b.x, a.x)
	return c.chord(a, b.x, num, den)
}

func (c *CurveImpl) double(a *PointImpl) *PointImpl {
	if a.inf || a.y.Sign() == 0 {
		return c.identity()
	}

	num := new(big.Int).Mul(a.x, a.x)
	num.Mul(num, big.NewInt(3))
	num.Add(num, c.params.A)
	den := new(big.Int).Lsh(a.y, 1)
	return c.chord(a, a.x, num, den)
}

// chord completes an addition of a and a point with x-coordinate bx, given
// the slope num/den.
func (c *CurveImpl) chord(a *PointImpl, bx, num, den *big.Int) *PointImpl {
	p := c.params.P
	den.Mod(den, p)
	inv := new(big.Int).ModInverse(den, p)
	lambda := num.Mul(num, inv)
	lambda.Mod(lambda, p)

	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, a.x)
	x3.Sub(x3, bx)
	x3.Mod(x3, p)

	y3 := new(big.Int).Sub(a.x, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, a.y)
	y3.Mod(y3, p)

	return &PointImpl{curve: c, x: x3, y: y3}
}

// PointImpl is an affine point or the identity.
type PointImpl struct {
	curve *CurveImpl
	x, y  *big.Int
	inf   bool
}

func (p *PointImpl) Add(other Point) Point {
	return p.curve.add(p, p.mustPoint(other))
}

func (p *PointImpl) ScalarMul(k *big.Int) Point {
	e := new(big.Int).Mod(k, p.curve.params.N)
	res := p.curve.identity()
	for i := e.BitLen() - 1; i >= 0; i-- {
		res = p.curve.double(res)
		if e.Bit(i) == 1 {
			res = p.curve.add(res, p)
		}
	}
	return res
}

func (p *PointImpl) Coordinates() (*big.Int, *big.Int) {
	if p.inf {
		return new(big.Int), new(big.Int)
	}
	return new(big.Int).Set(p.x), new(big.Int).Set(p.y)
}

func (p *PointImpl) Encode(compressed bool) []byte {
	if p.inf {
		return []byte{0}
	}

	size := p.curve.FieldByteLen()
	if compressed {
		out := make([]byte, 1+size)
		out[0] = 0x02 | byte(p.y.Bit(0))
		p.x.FillBytes(out[1:])
		return out
	}

	out := make([]byte, 1+2*size)
	out[0] = 0x04
	p.x.FillBytes(out[1 : 1+size])
	p.y.FillBytes(out[1+size:])
	return out
}

func (p *PointImpl) IsIdentity() bool {
	return p.inf
}

func (p *PointImpl) Equals(other Point) bool {
	o, ok := other.(*PointImpl)
	if !ok || !p.curve.Equal(o.curve) {
		return false
	}
	if p.inf || o.inf {
		return p.inf == o.inf
	}
	return p.x.Cmp(o.x) == 0 && p.y.Cmp(o.y) == 0
}

func (p *PointImpl) mustPoint(other Point) *PointImpl {
	o, ok := other.(*PointImpl)
	if !ok || !p.curve.Equal(o.curve) {
		panic("invalid point; not a " + p.curve.params.Name + " point")
	}
	return o
}
