package ringsig

import (
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/athanorlabs/go-ringsig/types"
)

// Engine pairs a group with a digest and provides the hash functions the
// ring signature protocol is built on: hash-to-scalar, hash of a canonical
// element sequence, hash-to-point and a seeded permutation.
//
// The digest output must be exactly as long as the group order in bytes.
// Otherwise rejection sampling is skewed or never terminates, and the skew
// can reveal which ring position holds the real signer. NewEngine enforces
// this.
type Engine struct {
	group  types.Group
	digest Digest
	order  *big.Int
}

// NewEngine returns an engine hashing into group with digest.
func NewEngine(group types.Group, digest Digest) (*Engine, error) {
	if group == nil || digest.New == nil || digest.Size <= 0 {
		return nil, errors.New("incomplete hash engine parameters")
	}

	order := group.Order()
	if (order.BitLen()+7)/8 != digest.Size {
		return nil, fmt.Errorf("%s (%d-bit order) with %s (%d bytes): %w",
			group.Name(), order.BitLen(), digest.Name, digest.Size, ErrDigestSizeMismatch)
	}

	return &Engine{
		group:  group,
		digest: digest,
		order:  order,
	}, nil
}

func mustEngine(group types.Group, digest Digest) *Engine {
	e, err := NewEngine(group, digest)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine) Group() types.Group {
	return e.group
}

func (e *Engine) Digest() Digest {
	return e.digest
}

// Order returns a copy of the group order.
func (e *Engine) Order() *big.Int {
	return new(big.Int).Set(e.order)
}

// Equal reports whether both engines use the same group and digest. Groups
// and digests are compared by what they compute, not only by name.
func (e *Engine) Equal(other *Engine) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e == other {
		return true
	}
	return e.group.Equal(other.group) && e.digest.Equal(other.digest)
}

func (e *Engine) String() string {
	return e.group.Name() + "/" + e.digest.Name
}

// HashToScalar digests b repeatedly until the big-endian value of the output
// is below the group order, and returns that value.
func (e *Engine) HashToScalar(b []byte) *big.Int {
	v := new(big.Int)
	for {
		b = e.digest.Sum(b)
		if v.SetBytes(b).Cmp(e.order) < 0 {
			return v
		}
	}
}

type elementKind uint8

const (
	kindInvalid elementKind = iota
	kindText
	kindInt
	kindPoint
)

// Element is one entry of a hashed sequence: text, an integer or a point.
// The zero Element is invalid.
type Element struct {
	kind  elementKind
	text  string
	num   *big.Int
	point types.Point
}

// Text returns a text element, encoded as a DER UTF8String.
func Text(s string) Element {
	return Element{kind: kindText, text: s}
}

// Bytes returns a byte string element. It encodes exactly like Text.
func Bytes(b []byte) Element {
	return Text(string(b))
}

// Int returns an integer element, encoded as a DER INTEGER.
func Int(v *big.Int) Element {
	return Element{kind: kindInt, num: v}
}

func Int64(v int64) Element {
	return Int(big.NewInt(v))
}

// PointElement returns a point element, encoded as a DER OCTET STRING
// holding the compressed point.
func PointElement(p types.Point) Element {
	return Element{kind: kindPoint, point: p}
}

// EncodeSequence returns the DER SEQUENCE of elems that HashSequence digests.
func EncodeSequence(elems ...Element) ([]byte, error) {
	var err error
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		for i, el := range elems {
			switch {
			case el.kind == kindText:
				b.AddASN1(asn1.UTF8String, func(b *cryptobyte.Builder) {
					b.AddBytes([]byte(el.text))
				})
			case el.kind == kindInt && el.num != nil:
				b.AddASN1BigInt(el.num)
			case el.kind == kindPoint && el.point != nil:
				b.AddASN1OctetString(el.point.Encode(true))
			default:
				if err == nil {
					err = fmt.Errorf("element %d: %w", i, ErrUnsupportedHashInput)
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return b.Bytes()
}

// HashSequence hashes the canonical encoding of elems to a scalar.
func (e *Engine) HashSequence(elems ...Element) (*big.Int, error) {
	der, err := EncodeSequence(elems...)
	if err != nil {
		return nil, err
	}
	return e.HashToScalar(der), nil
}

// HashToPoint maps p to G * HashSequence(p.x, p.y). The result lies in the
// subgroup generated by G and is only suitable as a second base point whose
// discrete log relative to G is unknown.
func (e *Engine) HashToPoint(p types.Point) (types.Point, error) {
	x, y := p.Coordinates()
	s, err := e.HashSequence(Int(x), Int(y))
	if err != nil {
		return nil, err
	}
	return e.group.ScalarBaseMul(s), nil
}

// Permutation returns a Fisher-Yates permutation of [0, size) driven by
// seed. Indexes are drawn by hashing (seed, counter), with a single counter
// shared across all draws, and rejecting values that would bias the modulo.
func (e *Engine) Permutation(size int, seed *big.Int) ([]int, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative permutation size %d", size)
	}
	if big.NewInt(int64(size)).Cmp(e.order) > 0 {
		return nil, fmt.Errorf("%d elements exceed the group order: %w", size, ErrRingTooLarge)
	}

	perm := make([]int, size)
	for i := range perm {
		perm[i] = i
	}

	counter := new(big.Int)
	for i := size - 1; i >= 1; i-- {
		j, err := e.nextIndex(int64(i+1), seed, counter)
		if err != nil {
			return nil, err
		}
		perm[i], perm[j] = perm[j], perm[i]
	}

	return perm, nil
}

// nextIndex returns an unbiased value in [0, m) and advances counter past
// every attempt it consumed.
func (e *Engine) nextIndex(m int64, seed, counter *big.Int) (int, error) {
	one := big.NewInt(1)
	for {
		v, err := e.HashSequence(Int(seed), Int(counter))
		if err != nil {
			return 0, err
		}
		counter.Add(counter, one)

		if j, ok := e.reduceIndex(v, m); ok {
			return j, nil
		}
	}
}

// reduceIndex maps v in [0, n) to v mod m. Values at or above the largest
// multiple of m not exceeding n are rejected so every index is equally likely.
func (e *Engine) reduceIndex(v *big.Int, m int64) (int, bool) {
	bm := big.NewInt(m)
	limit := new(big.Int).Mod(e.order, bm)
	limit.Sub(e.order, limit)

	if v.Cmp(limit) >= 0 {
		return 0, false
	}
	return int(new(big.Int).Mod(v, bm).Int64()), true
}

// Shuffle returns a copy of items reordered by e.Permutation(len(items), seed).
func Shuffle[T any](e *Engine, items []T, seed *big.Int) ([]T, error) {
	perm, err := e.Permutation(len(items), seed)
	if err != nil {
		return nil, err
	}

	out := make([]T, len(items))
	for i, j := range perm {
		out[i] = items[j]
	}
	return out, nil
}
