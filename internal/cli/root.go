// Package cli implements the rsapad command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/forcebit/rsapad-go/internal/config"
)

const (
	FlagConfig    = "config"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
	FlagEncoding  = "encoding"
)

type configKey struct{}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := New().Execute(); err != nil {
		os.Exit(1)
	}
}

// New builds the root command with every subcommand attached.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rsapad [sub-command]",
		Short: "Encode, verify and sign with RSA PKCS#1 v1.5 and PSS padding",
		Long: `rsapad exposes the EMSA-PKCS1-v1_5 and EMSA-PSS encodings of RFC 8017.

The encode, verify-block and mgf1 commands work on encoded blocks directly,
without any key. The sign and verify commands apply an RSA key on top.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: setup,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	RegisterGlobalFlags(cmd.PersistentFlags())

	cmd.AddCommand(newSchemesCmd())
	cmd.AddCommand(newEncodeCmd())
	cmd.AddCommand(newVerifyBlockCmd())
	cmd.AddCommand(newMGF1Cmd())
	cmd.AddCommand(newDigestCmd())
	cmd.AddCommand(newSignCmd())
	cmd.AddCommand(newVerifyCmd())
	return cmd
}

// RegisterGlobalFlags adds the flags shared by every command.
func RegisterGlobalFlags(flags *pflag.FlagSet) {
	flags.String(FlagConfig, "", "path to a YAML configuration file")
	flags.String(FlagLogLevel, "", "log level (trace, debug, info, warn, error), overrides the config file")
	flags.String(FlagLogFormat, "", "log format (console, json), overrides the config file")
	flags.String(FlagEncoding, "", "encoding of binary input and output (hex, base64), overrides the config file")
}

// setup loads the configuration, applies flag overrides and installs the
// logger in the command context.
func setup(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString(FlagConfig)
	if err != nil {
		return fmt.Errorf("getting config flag failed: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	overrides := []struct {
		flag  string
		field *string
	}{
		{FlagLogLevel, &cfg.Log.Level},
		{FlagLogFormat, &cfg.Log.Format},
		{FlagEncoding, &cfg.Encoding},
	}
	for _, o := range overrides {
		if !cmd.Flags().Changed(o.flag) {
			continue
		}
		if *o.field, err = cmd.Flags().GetString(o.flag); err != nil {
			return fmt.Errorf("getting %s flag failed: %w", o.flag, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("building logger failed: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, configKey{}, cfg)
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}

// configFrom returns the configuration installed by setup.
func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// loggerFrom returns the logger installed by setup.
func loggerFrom(cmd *cobra.Command) *zerolog.Logger {
	return zerolog.Ctx(cmd.Context())
}
