package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ringsig "github.com/athanorlabs/go-ringsig"
)

var errInvalidSignature = errors.New("signature is invalid")

func errMissingFlag(key string) error {
	return fmt.Errorf("--%s is required", key)
}

// app carries the state shared by every subcommand once the global flags
// have been parsed.
type app struct {
	log    *zap.Logger
	engine *ringsig.Engine
}

func newRootCommand() *cobra.Command {
	a := &app{log: zap.NewNop()}

	c := &cobra.Command{
		Use:               "ringsig",
		Short:             "Creates and verifies linkable ring signatures",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}
	AddGlobalFlags(c.PersistentFlags())

	c.AddCommand(
		a.presetsCommand(),
		a.keygenCommand(),
		a.pubkeyCommand(),
		a.keyImageCommand(),
		a.signCommand(),
		a.verifyCommand(),
	)
	return c
}

func (a *app) setup(c *cobra.Command, _ []string) error {
	config, err := ParseGlobalFlags(c.Flags())
	if err != nil {
		return err
	}

	log, err := newLogger(config.Verbose)
	if err != nil {
		return err
	}

	a.log = log.With(zap.String("preset", config.Engine.String()))
	a.engine = config.Engine
	return nil
}

// newLogger logs everything at debug level when verbose and only errors
// otherwise. Command output goes to stdout; logs go to stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	return cfg.Build()
}

func (a *app) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Lists the available group and digest presets",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			for _, e := range ringsig.Presets() {
				fmt.Fprintln(c.OutOrStdout(), e)
			}
			return nil
		},
	}
}

func (a *app) keygenCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "keygen",
		Short: "Generates a private key and prints it with its public key",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			uncompressed, err := c.Flags().GetBool(UncompressedKey)
			if err != nil {
				return err
			}

			sk, err := ringsig.GeneratePrivateKey(a.engine, nil)
			if err != nil {
				return err
			}
			a.log.Debug("generated private key")

			out := c.OutOrStdout()
			fmt.Fprintln(out, sk.Hex())
			fmt.Fprintln(out, sk.PublicKey().Hex(!uncompressed))
			return nil
		},
	}
	c.Flags().Bool(UncompressedKey, false, "Print the public key in uncompressed form")
	return c
}

func (a *app) pubkeyCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "pubkey",
		Short: "Prints the public key of a private key",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config, err := ParseKeyFlags(c.Flags(), a.engine)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.OutOrStdout(), config.PrivateKey.PublicKey().Hex(!config.Uncompressed))
			return nil
		},
	}
	AddKeyFlags(c.Flags())
	return c
}

func (a *app) keyImageCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "keyimage",
		Short: "Prints the key image every signature of a private key carries",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config, err := ParseKeyFlags(c.Flags(), a.engine)
			if err != nil {
				return err
			}

			image, err := config.PrivateKey.KeyImage()
			if err != nil {
				return err
			}

			fmt.Fprintf(c.OutOrStdout(), "%x\n", image.Encode(!config.Uncompressed))
			return nil
		},
	}
	AddKeyFlags(c.Flags())
	return c
}

func (a *app) signCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "sign",
		Short: "Signs a message, printing the signature and then the ring in verification order",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config, err := ParseSignFlags(c.Flags(), a.engine)
			if err != nil {
				return err
			}

			sig, ring, err := config.PrivateKey.Sign(config.Message, config.ForeignKeys)
			if err != nil {
				a.log.Error("failed to sign", zap.Error(err))
				return err
			}
			a.log.Debug("signed message",
				zap.Int("ringSize", len(ring)),
				zap.Int("signatureBytes", len(sig.Serialize())),
			)

			out := c.OutOrStdout()
			fmt.Fprintln(out, sig.Hex())
			for _, pk := range ring {
				fmt.Fprintln(out, pk.Hex(true))
			}
			return nil
		},
	}
	AddSignFlags(c.Flags())
	return c
}

func (a *app) verifyCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "verify",
		Short: "Verifies a signature against a ring, exiting non-zero if it is invalid",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config, err := ParseVerifyFlags(c.Flags(), a.engine)
			if err != nil {
				return err
			}

			ok, err := config.Signature.Verify(config.Message, config.Ring)
			if err != nil {
				a.log.Error("failed to verify", zap.Error(err))
				return err
			}
			a.log.Debug("verified signature",
				zap.Int("ringSize", len(config.Ring)),
				zap.Bool("valid", ok),
			)

			if !ok {
				fmt.Fprintln(c.OutOrStdout(), "invalid")
				return errInvalidSignature
			}
			fmt.Fprintln(c.OutOrStdout(), "valid")
			return nil
		},
	}
	AddVerifyFlags(c.Flags())
	return c
}
