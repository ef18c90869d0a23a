package ringsig

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
	"golang.org/x/crypto/sha3"
)

// Digest names a hash function and how to construct it. Two digests with the
// same name are considered the same algorithm.
type Digest struct {
	Name string
	// Size is the output length in bytes.
	Size int
	New  func() hash.Hash
}

// Sum returns the digest of b.
func (d Digest) Sum(b []byte) []byte {
	h := d.New()
	h.Write(b)
	return h.Sum(nil)
}

// digestCheck is hashed by Equal to tell apart digests that share a name.
var digestCheck = []byte("ringsig digest check")

// Equal reports whether both digests have the same name and size and agree
// on a fixed input.
func (d Digest) Equal(other Digest) bool {
	if d.Name != other.Name || d.Size != other.Size {
		return false
	}
	if d.New == nil || other.New == nil {
		return d.New == nil && other.New == nil
	}
	return bytes.Equal(d.Sum(digestCheck), other.Sum(digestCheck))
}

var (
	SHA224 = Digest{Name: "SHA-224", Size: sha256.Size224, New: sha256.New224}
	SHA256 = Digest{Name: "SHA-256", Size: sha256.Size, New: sha256.New}
	SHA384 = Digest{Name: "SHA-384", Size: sha512.Size384, New: sha512.New384}
	SHA512 = Digest{Name: "SHA-512", Size: sha512.Size, New: sha512.New}

	SHA3_256 = Digest{Name: "SHA3-256", Size: 32, New: sha3.New256}
	SHA3_384 = Digest{Name: "SHA3-384", Size: 48, New: sha3.New384}

	Blake2b256 = Digest{Name: "BLAKE2b-256", Size: blake2b.Size256, New: newBlake2b(blake2b.New256)}
	Blake2b384 = Digest{Name: "BLAKE2b-384", Size: blake2b.Size384, New: newBlake2b(blake2b.New384)}

	RIPEMD160 = Digest{Name: "RIPEMD-160", Size: ripemd160.Size, New: ripemd160.New}
)

// newBlake2b adapts the unkeyed blake2b constructors, which cannot fail.
func newBlake2b(fn func([]byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := fn(nil)
		if err != nil {
			panic(err)
		}
		return h
	}
}
