package ed25519

import (
	"errors"
	"math/big"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"

	"github.com/athanorlabs/go-ringsig/types"
)

type Group = types.Group
type Point = types.Point

var _ Group = &CurveImpl{}
var _ Point = &PointImpl{}

var (
	errNotOnCurve      = errors.New("point is not on edwards25519")
	errNotInSubgroup   = errors.New("point is not in the prime-order subgroup")
	errInvalidEncoding = errors.New("invalid point encoding")
)

var (
	// order is l = 2^252 + 27742317777372353535851937790883648493.
	order, _   = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	fieldPrime = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))
)

// CurveImpl is the prime-order subgroup of edwards25519.
//
// Compressed points use the RFC 8032 32-byte encoding. Uncompressed points
// are 0x04 || x || y with big-endian affine coordinates.
type CurveImpl struct{}

func NewCurve() Group {
	return &CurveImpl{}
}

func (*CurveImpl) Name() string {
	return "edwards25519"
}

func (*CurveImpl) Equal(other Group) bool {
	_, ok := other.(*CurveImpl)
	return ok
}

func (*CurveImpl) Order() *big.Int {
	return new(big.Int).Set(order)
}

func (*CurveImpl) FieldByteLen() int {
	return 32
}

func (*CurveImpl) Generator() Point {
	return &PointImpl{
		inner: edwards25519.NewGeneratorPoint(),
	}
}

func (*CurveImpl) ScalarBaseMul(k *big.Int) Point {
	return &PointImpl{
		inner: new(edwards25519.Point).ScalarBaseMult(toScalar(k)),
	}
}

func (*CurveImpl) NewPoint(x, y *big.Int) (Point, error) {
	fx, err := toElement(x)
	if err != nil {
		return nil, err
	}
	fy, err := toElement(y)
	if err != nil {
		return nil, err
	}

	t := new(field.Element).Multiply(fx, fy)
	p, err := new(edwards25519.Point).SetExtendedCoordinates(fx, fy, new(field.Element).One(), t)
	if err != nil {
		return nil, errNotOnCurve
	}

	return checkSubgroup(p)
}

func (c *CurveImpl) DecodePoint(b []byte) (Point, error) {
	switch {
	case len(b) == 32:
		p, err := new(edwards25519.Point).SetBytes(b)
		if err != nil {
			return nil, errNotOnCurve
		}
		return checkSubgroup(p)
	case len(b) == 65 && b[0] == 0x04:
		x := new(big.Int).SetBytes(b[1:33])
		y := new(big.Int).SetBytes(b[33:])
		return c.NewPoint(x, y)
	default:
		return nil, errInvalidEncoding
	}
}

// checkSubgroup rejects points with a small-order component, which would let
// the same key produce distinct key images.
func checkSubgroup(p *edwards25519.Point) (Point, error) {
	lMinusOne := new(big.Int).Sub(order, big.NewInt(1))
	q := new(edwards25519.Point).ScalarMult(toScalar(lMinusOne), p)
	q.Add(q, p)
	if q.Equal(edwards25519.NewIdentityPoint()) != 1 {
		return nil, errNotInSubgroup
	}

	return &PointImpl{
		inner: p,
	}, nil
}

type PointImpl struct {
	inner *edwards25519.Point
}

func (p *PointImpl) Add(other Point) Point {
	pp, ok := other.(*PointImpl)
	if !ok {
		panic("invalid point; type is not *ed25519.PointImpl")
	}

	return &PointImpl{
		inner: new(edwards25519.Point).Add(p.inner, pp.inner),
	}
}

func (p *PointImpl) ScalarMul(k *big.Int) Point {
	return &PointImpl{
		inner: new(edwards25519.Point).ScalarMult(toScalar(k), p.inner),
	}
}

func (p *PointImpl) Coordinates() (*big.Int, *big.Int) {
	X, Y, Z, _ := p.inner.ExtendedCoordinates()
	zInv := new(field.Element).Invert(Z)
	x := new(field.Element).Multiply(X, zInv)
	y := new(field.Element).Multiply(Y, zInv)
	return fromElement(x), fromElement(y)
}

func (p *PointImpl) Encode(compressed bool) []byte {
	if compressed {
		return p.inner.Bytes()
	}

	x, y := p.Coordinates()
	out := make([]byte, 65)
	out[0] = 0x04
	x.FillBytes(out[1:33])
	y.FillBytes(out[33:])
	return out
}

func (p *PointImpl) IsIdentity() bool {
	return p.inner.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (p *PointImpl) Equals(other Point) bool {
	pp, ok := other.(*PointImpl)
	if !ok {
		return false
	}

	return p.inner.Equal(pp.inner) == 1
}

// toScalar reduces k modulo l and converts it to a canonical scalar.
func toScalar(k *big.Int) *edwards25519.Scalar {
	var b [32]byte
	new(big.Int).Mod(k, order).FillBytes(b[:])
	reverse(b[:])

	s, err := edwards25519.NewScalar().SetCanonicalBytes(b[:])
	if err != nil {
		panic(err)
	}
	return s
}

func toElement(v *big.Int) (*field.Element, error) {
	if v.Sign() < 0 || v.Cmp(fieldPrime) >= 0 {
		return nil, errNotOnCurve
	}

	var b [32]byte
	v.FillBytes(b[:])
	reverse(b[:])
	return new(field.Element).SetBytes(b[:])
}

func fromElement(e *field.Element) *big.Int {
	b := e.Bytes()
	reverse(b)
	return new(big.Int).SetBytes(b)
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
