// Package ringsig implements linkable ring signatures over a configurable
// elliptic curve group.
//
// A signature proves that one of the keys in a ring signed a message without
// revealing which. Every signature made with the same private key carries
// the same key image, so two signatures by one signer can be linked even
// though the signer stays hidden.
//
// Signing is deterministic and needs no randomness. All hashing is done by
// an Engine, which pairs a group with a digest; keys and signatures are bound
// to the engine they were made with.
package ringsig
