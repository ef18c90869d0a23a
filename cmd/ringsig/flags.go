package main

import (
	"github.com/spf13/pflag"

	ringsig "github.com/athanorlabs/go-ringsig"
)

const (
	PresetKey       = "preset"
	VerboseKey      = "verbose"
	PrivateKeyKey   = "private-key"
	MessageKey      = "message"
	ForeignKeyKey   = "foreign-key"
	RingKey         = "ring"
	SignatureKey    = "signature"
	UncompressedKey = "uncompressed"
)

func AddGlobalFlags(flags *pflag.FlagSet) {
	flags.String(PresetKey, ringsig.Secp256k1SHA256.String(), "Group and digest to use, see the presets command")
	flags.Bool(VerboseKey, false, "Log at debug level")
}

func AddKeyFlags(flags *pflag.FlagSet) {
	flags.String(PrivateKeyKey, "", "Hex encoded private key (required)")
	flags.Bool(UncompressedKey, false, "Print points in uncompressed form")
}

func AddSignFlags(flags *pflag.FlagSet) {
	flags.String(PrivateKeyKey, "", "Hex encoded private key to sign with (required)")
	flags.String(MessageKey, "", "Message to sign")
	flags.StringArray(ForeignKeyKey, nil, "Hex encoded public key to hide the signer among, may be repeated")
}

func AddVerifyFlags(flags *pflag.FlagSet) {
	flags.String(SignatureKey, "", "Hex encoded signature (required)")
	flags.String(MessageKey, "", "Message that was signed")
	flags.StringArray(RingKey, nil, "Hex encoded ring public key in the order printed by sign, may be repeated")
}

type GlobalConfig struct {
	Engine  *ringsig.Engine
	Verbose bool
}

func ParseGlobalFlags(flags *pflag.FlagSet) (*GlobalConfig, error) {
	name, err := flags.GetString(PresetKey)
	if err != nil {
		return nil, err
	}

	engine, err := ringsig.PresetByName(name)
	if err != nil {
		return nil, err
	}

	verbose, err := flags.GetBool(VerboseKey)
	if err != nil {
		return nil, err
	}

	return &GlobalConfig{
		Engine:  engine,
		Verbose: verbose,
	}, nil
}

type KeyConfig struct {
	PrivateKey   *ringsig.PrivateKey
	Uncompressed bool
}

func ParseKeyFlags(flags *pflag.FlagSet, engine *ringsig.Engine) (*KeyConfig, error) {
	sk, err := parsePrivateKey(flags, engine)
	if err != nil {
		return nil, err
	}

	uncompressed, err := flags.GetBool(UncompressedKey)
	if err != nil {
		return nil, err
	}

	return &KeyConfig{
		PrivateKey:   sk,
		Uncompressed: uncompressed,
	}, nil
}

type SignConfig struct {
	PrivateKey  *ringsig.PrivateKey
	Message     []byte
	ForeignKeys []*ringsig.PublicKey
}

func ParseSignFlags(flags *pflag.FlagSet, engine *ringsig.Engine) (*SignConfig, error) {
	sk, err := parsePrivateKey(flags, engine)
	if err != nil {
		return nil, err
	}

	msg, err := flags.GetString(MessageKey)
	if err != nil {
		return nil, err
	}

	foreign, err := parsePublicKeys(flags, ForeignKeyKey, engine)
	if err != nil {
		return nil, err
	}

	return &SignConfig{
		PrivateKey:  sk,
		Message:     []byte(msg),
		ForeignKeys: foreign,
	}, nil
}

type VerifyConfig struct {
	Signature *ringsig.Signature
	Message   []byte
	Ring      []*ringsig.PublicKey
}

func ParseVerifyFlags(flags *pflag.FlagSet, engine *ringsig.Engine) (*VerifyConfig, error) {
	sigStr, err := flags.GetString(SignatureKey)
	if err != nil {
		return nil, err
	}
	if sigStr == "" {
		return nil, errMissingFlag(SignatureKey)
	}

	sig, err := ringsig.DeserializeSignatureHex(engine, sigStr)
	if err != nil {
		return nil, err
	}

	msg, err := flags.GetString(MessageKey)
	if err != nil {
		return nil, err
	}

	ring, err := parsePublicKeys(flags, RingKey, engine)
	if err != nil {
		return nil, err
	}

	return &VerifyConfig{
		Signature: sig,
		Message:   []byte(msg),
		Ring:      ring,
	}, nil
}

func parsePrivateKey(flags *pflag.FlagSet, engine *ringsig.Engine) (*ringsig.PrivateKey, error) {
	skStr, err := flags.GetString(PrivateKeyKey)
	if err != nil {
		return nil, err
	}
	if skStr == "" {
		return nil, errMissingFlag(PrivateKeyKey)
	}
	return ringsig.DecodePrivateKeyHex(engine, skStr)
}

func parsePublicKeys(flags *pflag.FlagSet, key string, engine *ringsig.Engine) ([]*ringsig.PublicKey, error) {
	strs, err := flags.GetStringArray(key)
	if err != nil {
		return nil, err
	}

	keys := make([]*ringsig.PublicKey, len(strs))
	for i, s := range strs {
		keys[i], err = ringsig.DecodePublicKeyHex(engine, s)
		if err != nil {
			return nil, err
		}
	}
	return keys, nil
}
