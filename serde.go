package ringsig

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// Serialize encodes the signature as
//
//	SEQUENCE { OCTET STRING keyImage, SEQUENCE OF INTEGER c, SEQUENCE OF INTEGER r }
//
// with the key image compressed. The engine is not encoded.
func (s *Signature) Serialize() []byte {
	return s.serialize(true)
}

// SerializeUncompressed is Serialize with an uncompressed key image.
// DeserializeSignature accepts both forms.
func (s *Signature) SerializeUncompressed() []byte {
	return s.serialize(false)
}

func (s *Signature) serialize(compressed bool) []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1OctetString(s.keyImage.Encode(compressed))
		addIntegers(b, s.c)
		addIntegers(b, s.r)
	})
	return b.BytesOrPanic()
}

func addIntegers(b *cryptobyte.Builder, values []*big.Int) {
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		for _, v := range values {
			b.AddASN1BigInt(v)
		}
	})
}

func (s *Signature) Hex() string {
	return hex.EncodeToString(s.Serialize())
}

// DeserializeSignature decodes the output of Serialize or
// SerializeUncompressed for the given engine, which must match the engine the
// signature was made with.
func DeserializeSignature(engine *Engine, in []byte) (*Signature, error) {
	var (
		input = cryptobyte.String(in)
		body  cryptobyte.String
		image []byte
	)

	if !input.ReadASN1(&body, asn1.SEQUENCE) {
		return nil, fmt.Errorf("%w: expected a sequence", ErrMalformedSignature)
	}
	if !input.Empty() {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedSignature, len(input))
	}

	if !body.ReadASN1Bytes(&image, asn1.OCTET_STRING) {
		return nil, fmt.Errorf("%w: expected key image octet string", ErrMalformedSignature)
	}

	c, ok := readIntegers(&body)
	if !ok {
		return nil, fmt.Errorf("%w: expected a sequence of c integers", ErrMalformedSignature)
	}
	r, ok := readIntegers(&body)
	if !ok {
		return nil, fmt.Errorf("%w: expected a sequence of r integers", ErrMalformedSignature)
	}

	if !body.Empty() {
		return nil, fmt.Errorf("%w: unexpected fields after r", ErrMalformedSignature)
	}

	keyImage, err := engine.group.DecodePoint(image)
	if err != nil {
		return nil, fmt.Errorf("%w: key image: %v", ErrMalformedSignature, err)
	}

	return NewSignature(engine, keyImage, c, r)
}

func DeserializeSignatureHex(engine *Engine, s string) (*Signature, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	return DeserializeSignature(engine, b)
}

func readIntegers(s *cryptobyte.String) ([]*big.Int, bool) {
	var seq cryptobyte.String
	if !s.ReadASN1(&seq, asn1.SEQUENCE) {
		return nil, false
	}

	var out []*big.Int
	for !seq.Empty() {
		v := new(big.Int)
		if !seq.ReadASN1Integer(v) {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}
