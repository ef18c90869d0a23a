package types

import "math/big"

// Group is a prime-order elliptic curve group a ring signature is computed in.
type Group interface {
	Name() string
	// Equal reports whether other is the same group: the same curve, generator
	// and order. Points of equal groups can be mixed freely.
	Equal(other Group) bool
	Order() *big.Int
	// FieldByteLen is the byte length of a base field element.
	FieldByteLen() int
	Generator() Point
	ScalarBaseMul(*big.Int) Point
	// NewPoint returns the affine point (x, y), or an error if it is not on the curve.
	NewPoint(x, y *big.Int) (Point, error)
	// DecodePoint parses the output of Point.Encode in either form.
	DecodePoint([]byte) (Point, error)
}

// Point is an element of a Group. Points are immutable; every operation
// returns a new value.
type Point interface {
	Add(Point) Point
	ScalarMul(*big.Int) Point
	// Coordinates returns the affine coordinates. Weierstrass backends return
	// (0, 0) for the identity.
	Coordinates() (x, y *big.Int)
	Encode(compressed bool) []byte
	IsIdentity() bool
	Equals(other Point) bool
}
