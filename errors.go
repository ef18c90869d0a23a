package ringsig

import "errors"

var (
	ErrValueOutOfRange      = errors.New("private key value is not in [1, n-1]")
	ErrPointNotOnCurve      = errors.New("point is not on the group's curve")
	ErrInvalidEncoding      = errors.New("invalid encoding")
	ErrMalformedSignature   = errors.New("malformed signature")
	ErrHashEngineMismatch   = errors.New("keys use different hash engines")
	ErrUnsupportedHashInput = errors.New("unsupported hash input")
	ErrRingSizeMismatch     = errors.New("ring size does not match signature")
	ErrDigestSizeMismatch   = errors.New("digest size does not match the byte length of the group order")
	ErrUnknownPreset        = errors.New("unknown preset")
	ErrRingTooLarge         = errors.New("ring is larger than the group order")
	ErrIdentityKeyImage     = errors.New("key image is the identity")
)
