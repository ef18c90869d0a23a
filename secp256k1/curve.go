package secp256k1

import (
	"errors"
	"math/big"

	"github.com/athanorlabs/go-ringsig/types"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

type Group = types.Group
type Point = types.Point

var _ Group = &CurveImpl{}
var _ Point = &PointImpl{}

var errNotOnCurve = errors.New("point is not on secp256k1")

// CurveImpl is the secp256k1 group.
type CurveImpl struct{}

func NewCurve() Group {
	return &CurveImpl{}
}

func (*CurveImpl) Name() string {
	return "secp256k1"
}

func (*CurveImpl) Equal(other Group) bool {
	_, ok := other.(*CurveImpl)
	return ok
}

func (*CurveImpl) Order() *big.Int {
	return new(big.Int).Set(secp256k1.S256().Params().N)
}

func (*CurveImpl) FieldByteLen() int {
	return 32
}

func (c *CurveImpl) Generator() Point {
	return c.ScalarBaseMul(big.NewInt(1))
}

func (*CurveImpl) ScalarBaseMul(k *big.Int) Point {
	s := toModNScalar(k)
	p := &PointImpl{}
	secp256k1.ScalarBaseMultNonConst(&s, &p.inner)
	p.normalize()
	return p
}

func (*CurveImpl) NewPoint(x, y *big.Int) (Point, error) {
	if x.Sign() == 0 && y.Sign() == 0 {
		return &PointImpl{}, nil
	}

	fx, ok := toFieldVal(x)
	if !ok {
		return nil, errNotOnCurve
	}
	fy, ok := toFieldVal(y)
	if !ok {
		return nil, errNotOnCurve
	}

	pub := secp256k1.NewPublicKey(&fx, &fy)
	if !pub.IsOnCurve() {
		return nil, errNotOnCurve
	}

	p := &PointImpl{}
	pub.AsJacobian(&p.inner)
	return p, nil
}

func (*CurveImpl) DecodePoint(b []byte) (Point, error) {
	if len(b) == 1 && b[0] == 0 {
		return &PointImpl{}, nil
	}

	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, err
	}

	// ParsePubKey also accepts the hybrid format, which is not one we produce.
	if b[0] != 0x02 && b[0] != 0x03 && b[0] != 0x04 {
		return nil, errors.New("unsupported point format")
	}

	p := &PointImpl{}
	pub.AsJacobian(&p.inner)
	return p, nil
}

// PointImpl holds either the identity (all zero) or an affine point (Z == 1).
type PointImpl struct {
	inner secp256k1.JacobianPoint
}

// normalize converts to affine form. decred reports the point at infinity
// either as Z == 0 or as X == Y == 0, and both become the zero value.
func (p *PointImpl) normalize() {
	if p.inner.Z.Normalize().IsZero() {
		p.inner = secp256k1.JacobianPoint{}
		return
	}
	p.inner.ToAffine()
	if p.inner.X.IsZero() && p.inner.Y.IsZero() {
		p.inner = secp256k1.JacobianPoint{}
	}
}

func (p *PointImpl) Add(other Point) Point {
	o := mustPoint(other)
	res := &PointImpl{}
	secp256k1.AddNonConst(&p.inner, &o.inner, &res.inner)
	res.normalize()
	return res
}

func (p *PointImpl) ScalarMul(k *big.Int) Point {
	if p.IsIdentity() {
		return &PointImpl{}
	}

	s := toModNScalar(k)
	res := &PointImpl{}
	secp256k1.ScalarMultNonConst(&s, &p.inner, &res.inner)
	res.normalize()
	return res
}

func (p *PointImpl) Coordinates() (*big.Int, *big.Int) {
	if p.IsIdentity() {
		return new(big.Int), new(big.Int)
	}
	x := p.inner.X.Bytes()
	y := p.inner.Y.Bytes()
	return new(big.Int).SetBytes(x[:]), new(big.Int).SetBytes(y[:])
}

func (p *PointImpl) Encode(compressed bool) []byte {
	if p.IsIdentity() {
		return []byte{0}
	}

	pub := secp256k1.NewPublicKey(&p.inner.X, &p.inner.Y)
	if compressed {
		return pub.SerializeCompressed()
	}
	return pub.SerializeUncompressed()
}

func (p *PointImpl) IsIdentity() bool {
	return p.inner.Z.IsZero() || (p.inner.X.IsZero() && p.inner.Y.IsZero())
}

func (p *PointImpl) Equals(other Point) bool {
	o, ok := other.(*PointImpl)
	if !ok {
		return false
	}
	if p.IsIdentity() || o.IsIdentity() {
		return p.IsIdentity() == o.IsIdentity()
	}
	return p.inner.X.Equals(&o.inner.X) && p.inner.Y.Equals(&o.inner.Y)
}

func mustPoint(p Point) *PointImpl {
	pp, ok := p.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *secp256k1.PointImpl")
	}
	return pp
}

func toModNScalar(k *big.Int) secp256k1.ModNScalar {
	reduced := new(big.Int).Mod(k, secp256k1.S256().Params().N)
	var b [32]byte
	reduced.FillBytes(b[:])

	var s secp256k1.ModNScalar
	s.SetBytes(&b)
	return s
}

func toFieldVal(v *big.Int) (secp256k1.FieldVal, bool) {
	var f secp256k1.FieldVal
	if v.Sign() < 0 || v.Cmp(secp256k1.S256().Params().P) >= 0 {
		return f, false
	}

	var b [32]byte
	v.FillBytes(b[:])
	f.SetBytes(&b)
	return f, true
}
