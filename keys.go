package ringsig

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"sync/atomic"

	"github.com/athanorlabs/go-ringsig/types"
)

// PublicKey is a curve point bound to an engine.
type PublicKey struct {
	point  types.Point
	engine *Engine
}

// NewPublicKey checks that point lies on the engine's curve and is not the
// identity.
func NewPublicKey(engine *Engine, point types.Point) (*PublicKey, error) {
	if point == nil {
		return nil, ErrPointNotOnCurve
	}

	x, y := point.Coordinates()
	p, err := engine.group.NewPoint(x, y)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPointNotOnCurve, err)
	}
	if p.IsIdentity() {
		return nil, fmt.Errorf("%w: identity is not a public key", ErrPointNotOnCurve)
	}

	return &PublicKey{
		point:  p,
		engine: engine,
	}, nil
}

// DecodePublicKey parses a SEC1 compressed or uncompressed point.
func DecodePublicKey(engine *Engine, b []byte) (*PublicKey, error) {
	p, err := engine.group.DecodePoint(b)
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %v", ErrInvalidEncoding, err)
	}

	pk, err := NewPublicKey(engine, p)
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %w", ErrInvalidEncoding, err)
	}
	return pk, nil
}

func DecodePublicKeyHex(engine *Engine, s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %v", ErrInvalidEncoding, err)
	}
	return DecodePublicKey(engine, b)
}

func (k *PublicKey) Point() types.Point {
	return k.point
}

func (k *PublicKey) Engine() *Engine {
	return k.engine
}

// Encode returns the SEC1 encoding of the key. It does not include the engine.
func (k *PublicKey) Encode(compressed bool) []byte {
	return k.point.Encode(compressed)
}

func (k *PublicKey) Hex(compressed bool) string {
	return hex.EncodeToString(k.Encode(compressed))
}

func (k *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return k.point.Equals(other.point) && k.engine.Equal(other.engine)
}

func (k *PublicKey) String() string {
	return k.Hex(true)
}

// PrivateKey is a scalar in [1, n-1] bound to an engine.
type PrivateKey struct {
	value     *big.Int
	publicKey *PublicKey
	engine    *Engine

	// keyImage caches KeyImage. It is a pure function of value and engine,
	// so racing writers store equal points.
	keyImage atomic.Pointer[types.Point]
}

// NewPrivateKey returns the key with the given value.
func NewPrivateKey(engine *Engine, value *big.Int) (*PrivateKey, error) {
	if value == nil || value.Sign() < 1 || value.Cmp(engine.order) >= 0 {
		return nil, ErrValueOutOfRange
	}

	v := new(big.Int).Set(value)
	return &PrivateKey{
		value: v,
		publicKey: &PublicKey{
			point:  engine.group.ScalarBaseMul(v),
			engine: engine,
		},
		engine: engine,
	}, nil
}

// GeneratePrivateKey returns a uniformly random key read from r, or from
// crypto/rand if r is nil.
func GeneratePrivateKey(engine *Engine, r io.Reader) (*PrivateKey, error) {
	if r == nil {
		r = rand.Reader
	}

	limit := new(big.Int).Sub(engine.order, big.NewInt(1))
	v, err := rand.Int(r, limit)
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(engine, v.Add(v, big.NewInt(1)))
}

// DecodePrivateKey parses the fixed-width big-endian output of Bytes.
func DecodePrivateKey(engine *Engine, b []byte) (*PrivateKey, error) {
	if len(b) != privateKeyLen(engine) {
		return nil, fmt.Errorf("%w: private key must be %d bytes, got %d",
			ErrInvalidEncoding, privateKeyLen(engine), len(b))
	}
	return NewPrivateKey(engine, new(big.Int).SetBytes(b))
}

func DecodePrivateKeyHex(engine *Engine, s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: private key: %v", ErrInvalidEncoding, err)
	}
	return DecodePrivateKey(engine, b)
}

func privateKeyLen(engine *Engine) int {
	n := engine.group.FieldByteLen()
	if l := (engine.order.BitLen() + 7) / 8; l > n {
		return l
	}
	return n
}

// Value returns a copy of the private scalar.
func (k *PrivateKey) Value() *big.Int {
	return new(big.Int).Set(k.value)
}

func (k *PrivateKey) PublicKey() *PublicKey {
	return k.publicKey
}

func (k *PrivateKey) Engine() *Engine {
	return k.engine
}

// Bytes returns the value big-endian, zero-padded to the field byte length.
// It does not include the engine.
func (k *PrivateKey) Bytes() []byte {
	return k.value.FillBytes(make([]byte, privateKeyLen(k.engine)))
}

func (k *PrivateKey) Hex() string {
	return hex.EncodeToString(k.Bytes())
}

func (k *PrivateKey) Equal(other *PrivateKey) bool {
	if other == nil {
		return false
	}
	return k.value.Cmp(other.value) == 0 && k.engine.Equal(other.engine)
}

// KeyImage returns HashToPoint(P) * x. Every signature made with this key
// carries the same key image, whatever the message or ring.
//
// It fails with ErrIdentityKeyImage if P hashes to the identity, which only
// happens in tiny test groups. Such a key cannot sign.
func (k *PrivateKey) KeyImage() (types.Point, error) {
	if img := k.keyImage.Load(); img != nil {
		return *img, nil
	}

	hp, err := k.engine.HashToPoint(k.publicKey.point)
	if err != nil {
		return nil, err
	}

	img := hp.ScalarMul(k.value)
	if img.IsIdentity() {
		return nil, ErrIdentityKeyImage
	}
	k.keyImage.Store(&img)
	return img, nil
}
