package ringsig

import (
	"fmt"
	"math/big"

	"github.com/athanorlabs/go-ringsig/types"
)

// Signature is a linkable ring signature. c[i] and r[i] belong to the i-th
// public key of the ring returned by Sign; the ring order is not recoverable
// from the signature itself.
type Signature struct {
	keyImage types.Point
	c, r     []*big.Int
	engine   *Engine
}

// NewSignature assembles a signature from its parts. keyImage must be a
// point of the engine's group other than the identity, c and r must have the
// same non-zero length, and every scalar must lie in [0, n).
func NewSignature(engine *Engine, keyImage types.Point, c, r []*big.Int) (*Signature, error) {
	if keyImage == nil || keyImage.IsIdentity() {
		return nil, fmt.Errorf("%w: missing key image", ErrMalformedSignature)
	}

	x, y := keyImage.Coordinates()
	image, err := engine.group.NewPoint(x, y)
	if err != nil {
		return nil, fmt.Errorf("%w: key image: %v", ErrMalformedSignature, err)
	}
	if image.IsIdentity() {
		return nil, fmt.Errorf("%w: key image is the identity", ErrMalformedSignature)
	}

	if len(c) == 0 || len(c) != len(r) {
		return nil, fmt.Errorf("%w: %d challenges and %d responses",
			ErrMalformedSignature, len(c), len(r))
	}

	cs, err := copyScalars(engine, c)
	if err != nil {
		return nil, fmt.Errorf("%w: c: %v", ErrMalformedSignature, err)
	}
	rs, err := copyScalars(engine, r)
	if err != nil {
		return nil, fmt.Errorf("%w: r: %v", ErrMalformedSignature, err)
	}

	return &Signature{
		keyImage: image,
		c:        cs,
		r:        rs,
		engine:   engine,
	}, nil
}

func copyScalars(engine *Engine, in []*big.Int) ([]*big.Int, error) {
	out := make([]*big.Int, len(in))
	for i, v := range in {
		if v == nil || v.Sign() < 0 || v.Cmp(engine.order) >= 0 {
			return nil, fmt.Errorf("scalar %d is not in [0, n)", i)
		}
		out[i] = new(big.Int).Set(v)
	}
	return out, nil
}

// KeyImage returns the point shared by every signature of the same private key.
func (s *Signature) KeyImage() types.Point {
	return s.keyImage
}

// C returns a copy of the challenge scalars.
func (s *Signature) C() []*big.Int {
	return cloneScalars(s.c)
}

// R returns a copy of the response scalars.
func (s *Signature) R() []*big.Int {
	return cloneScalars(s.r)
}

func (s *Signature) Engine() *Engine {
	return s.engine
}

// Size returns the number of ring members the signature covers.
func (s *Signature) Size() int {
	return len(s.c)
}

// Components returns the key image coordinates followed by c and r.
func (s *Signature) Components() []*big.Int {
	x, y := s.keyImage.Coordinates()
	out := make([]*big.Int, 0, 2+2*len(s.c))
	out = append(out, x, y)
	out = append(out, cloneScalars(s.c)...)
	return append(out, cloneScalars(s.r)...)
}

// Linked reports whether s and other were made with the same private key.
func (s *Signature) Linked(other *Signature) bool {
	if other == nil || !s.engine.Equal(other.engine) {
		return false
	}
	return s.keyImage.Equals(other.keyImage)
}

func cloneScalars(in []*big.Int) []*big.Int {
	out := make([]*big.Int, len(in))
	for i, v := range in {
		out[i] = new(big.Int).Set(v)
	}
	return out
}
