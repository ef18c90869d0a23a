package ringsig

import (
	"fmt"
	"math/big"
)

// ringMember is one position of a ring while signing: either the signer,
// who knows the private scalar, or a decoy known only by its public key.
type ringMember interface {
	publicKey() *PublicKey
}

type signerMember struct {
	key *PrivateKey
}

func (m signerMember) publicKey() *PublicKey {
	return m.key.publicKey
}

type decoyMember struct {
	key *PublicKey
}

func (m decoyMember) publicKey() *PublicKey {
	return m.key
}

// Sign signs message with k, hiding k among the foreign keys. It returns the
// signature and the ring in the order the signature must be verified against.
// Signing is deterministic: the same key, message and foreign keys always
// produce the same signature and ring order.
func (k *PrivateKey) Sign(message []byte, foreign []*PublicKey) (*Signature, []*PublicKey, error) {
	for i, pk := range foreign {
		if pk == nil {
			return nil, nil, fmt.Errorf("foreign key %d is nil", i)
		}
		if !pk.engine.Equal(k.engine) {
			return nil, nil, fmt.Errorf("foreign key %d uses %s, signer uses %s: %w",
				i, pk.engine, k.engine, ErrHashEngineMismatch)
		}
	}

	e := k.engine
	d := e.HashToScalar(message)
	seed, err := e.HashSequence(Int(k.value), Int(d))
	if err != nil {
		return nil, nil, err
	}

	members := make([]ringMember, 0, len(foreign)+1)
	members = append(members, signerMember{key: k})
	for _, pk := range foreign {
		members = append(members, decoyMember{key: pk})
	}

	ring, err := Shuffle(e, members, seed)
	if err != nil {
		return nil, nil, err
	}

	image, err := k.KeyImage()
	if err != nil {
		return nil, nil, err
	}

	size := len(ring)
	q := make([]*big.Int, size)
	w := make([]*big.Int, size)

	// commitments holds d, then every L_i, then every R_i.
	commitments := make([]Element, 1+2*size)
	commitments[0] = Int(d)

	for i, m := range ring {
		q[i], err = e.HashSequence(Text("q"), Int(seed), Int64(int64(i)))
		if err != nil {
			return nil, nil, err
		}

		p := m.publicKey().point
		hp, err := e.HashToPoint(p)
		if err != nil {
			return nil, nil, err
		}

		l := e.group.ScalarBaseMul(q[i])
		r := hp.ScalarMul(q[i])

		switch m.(type) {
		case signerMember:
			w[i] = new(big.Int)
		case decoyMember:
			w[i], err = e.HashSequence(Text("w"), Int(seed), Int64(int64(i)))
			if err != nil {
				return nil, nil, err
			}
			l = l.Add(p.ScalarMul(w[i]))
			r = r.Add(image.ScalarMul(w[i]))
		}

		commitments[1+i] = PointElement(l)
		commitments[1+size+i] = PointElement(r)
	}

	challenge, err := e.HashSequence(commitments...)
	if err != nil {
		return nil, nil, err
	}

	wSum := new(big.Int)
	for _, wi := range w {
		wSum.Add(wSum, wi)
	}

	c := make([]*big.Int, size)
	r := make([]*big.Int, size)
	for i, m := range ring {
		switch m := m.(type) {
		case decoyMember:
			c[i] = w[i]
			r[i] = q[i]
		case signerMember:
			// c = challenge - sum(w), r = q - c*x, both mod n
			c[i] = new(big.Int).Sub(challenge, wSum)
			c[i].Mod(c[i], e.order)

			cx := new(big.Int).Mul(c[i], m.key.value)
			r[i] = new(big.Int).Sub(q[i], cx)
			r[i].Mod(r[i], e.order)
		}
	}

	publicKeys := make([]*PublicKey, size)
	for i, m := range ring {
		publicKeys[i] = m.publicKey()
	}

	return &Signature{
		keyImage: image,
		c:        c,
		r:        r,
		engine:   e,
	}, publicKeys, nil
}
