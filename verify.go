package ringsig

import (
	"fmt"
	"math/big"
)

// Verify reports whether s is a valid signature of message by one of the
// keys in ring. ring must be in the order Sign returned it.
//
// An error means the inputs could not be checked at all: the ring has the
// wrong length, or holds keys of another engine. A well-formed but invalid
// signature returns false and no error.
func (s *Signature) Verify(message []byte, ring []*PublicKey) (bool, error) {
	if len(ring) != len(s.c) {
		return false, fmt.Errorf("%d public keys for a signature over %d: %w",
			len(ring), len(s.c), ErrRingSizeMismatch)
	}

	for i, pk := range ring {
		if pk == nil {
			return false, fmt.Errorf("public key %d is nil", i)
		}
		if !pk.engine.Equal(s.engine) {
			return false, fmt.Errorf("public key %d uses %s, signature uses %s: %w",
				i, pk.engine, s.engine, ErrHashEngineMismatch)
		}
	}

	e := s.engine
	size := len(ring)
	d := e.HashToScalar(message)

	commitments := make([]Element, 1+2*size)
	commitments[0] = Int(d)

	cSum := new(big.Int)
	for i, pk := range ring {
		hp, err := e.HashToPoint(pk.point)
		if err != nil {
			return false, err
		}

		// L = G*r + P*c, R = H(P)*r + I*c
		l := e.group.ScalarBaseMul(s.r[i]).Add(pk.point.ScalarMul(s.c[i]))
		r := hp.ScalarMul(s.r[i]).Add(s.keyImage.ScalarMul(s.c[i]))

		commitments[1+i] = PointElement(l)
		commitments[1+size+i] = PointElement(r)
		cSum.Add(cSum, s.c[i])
	}

	challenge, err := e.HashSequence(commitments...)
	if err != nil {
		return false, err
	}

	return cSum.Mod(cSum, e.order).Cmp(challenge) == 0, nil
}
