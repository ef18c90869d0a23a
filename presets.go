package ringsig

import (
	"fmt"
	"strings"

	"github.com/athanorlabs/go-ringsig/bn254"
	"github.com/athanorlabs/go-ringsig/ed25519"
	"github.com/athanorlabs/go-ringsig/nist"
	"github.com/athanorlabs/go-ringsig/secp256k1"
)

// Ready-made engines for common group and digest pairings.
var (
	Secp256k1SHA256 = mustEngine(secp256k1.NewCurve(), SHA256)
	Secp256r1SHA256 = mustEngine(nist.NewP256(), SHA256)
	Secp384r1SHA384 = mustEngine(nist.NewP384(), SHA384)

	Secp256k1SHA3_256   = mustEngine(secp256k1.NewCurve(), SHA3_256)
	Secp256k1Blake2b256 = mustEngine(secp256k1.NewCurve(), Blake2b256)
	Secp256r1SHA3_256   = mustEngine(nist.NewP256(), SHA3_256)
	Secp384r1Blake2b384 = mustEngine(nist.NewP384(), Blake2b384)
	Ed25519SHA256       = mustEngine(ed25519.NewCurve(), SHA256)
	BN254SHA256         = mustEngine(bn254.NewCurve(), SHA256)
)

// Presets returns every ready-made engine.
func Presets() []*Engine {
	return []*Engine{
		Secp256k1SHA256,
		Secp256r1SHA256,
		Secp384r1SHA384,
		Secp256k1SHA3_256,
		Secp256k1Blake2b256,
		Secp256r1SHA3_256,
		Secp384r1Blake2b384,
		Ed25519SHA256,
		BN254SHA256,
	}
}

// PresetByName returns the preset whose String() matches name, ignoring case.
func PresetByName(name string) (*Engine, error) {
	for _, e := range Presets() {
		if strings.EqualFold(e.String(), name) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownPreset)
}
