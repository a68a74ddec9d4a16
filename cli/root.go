// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/leotrs/smol/config"
	"github.com/leotrs/smol/store"
)

// RootOptions holds global flags and the state built from them before a
// subcommand runs.
type RootOptions struct {
	ConfigFile string
	Database   string
	LogLevel   string
	Format     string

	cfg *config.Config
	log zerolog.Logger
}

// NewRootCommand creates the smol command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "smol",
		Short: "Spectral fingerprints and switching certificates for small graphs",
		Long: `smol fingerprints the spectra of seven matrices for every graph it ingests
and records which graphs share them.

Pairs that are cospectral for the non-backtracking Laplacian are then
explained, where possible, by a certified local switch.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "configuration file (yaml|json|toml)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "SQLite database path (overrides store.path)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (overrides logging.level)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (text|json|yaml)")

	cmd.AddCommand(NewIngestCommand(opts))
	cmd.AddCommand(NewIndexCommand(opts))
	cmd.AddCommand(NewSwitchesCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewMatesCommand(opts))
	cmd.AddCommand(NewMechanismsCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

func (o *RootOptions) setup(cmd *cobra.Command) error {
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	cfg := config.New()
	if o.ConfigFile != "" {
		if err := cfg.LoadFile(o.ConfigFile); err != nil {
			return WrapExitError(ExitCommandError, "failed to load configuration", err)
		}
	}
	if o.Database != "" {
		cfg.Set(config.KeyStorePath, o.Database)
	}
	if o.LogLevel != "" {
		cfg.Set(config.KeyLogLevel, o.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	o.cfg = cfg
	o.log = cfg.Logger(cmd.ErrOrStderr())

	return nil
}

func (o *RootOptions) openStore() (*store.Store, error) {
	st, err := store.Open(o.cfg.StorePath(), store.WithLogger(o.log))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	return st, nil
}

// orders resolves --n: a positive value names one order, 0 every stored one.
func orders(cmd *cobra.Command, st *store.Store, n int) ([]int, error) {
	if n < 0 {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid --n %d", n))
	}
	if n > 0 {
		return []int{n}, nil
	}
	ns, err := st.Orders(cmd.Context())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to list orders", err)
	}

	return ns, nil
}
