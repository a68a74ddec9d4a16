// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/pipeline"
)

// MatesResult lists the graphs cospectral to one graph.
type MatesResult struct {
	Graph string   `json:"graph" yaml:"graph"`
	Kind  string   `json:"kind" yaml:"kind"`
	Mates []string `json:"mates" yaml:"mates"`
}

func kindFlag(s string) (matrix.Kind, error) {
	k, err := matrix.ParseKind(s)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "invalid --kind", err)
	}

	return k, nil
}

// NewMatesCommand creates the mates command.
func NewMatesCommand(rootOpts *RootOptions) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "mates <graph6>",
		Short: "List graphs cospectral to a graph",
		Long: `List the stored graphs sharing the given graph's spectrum for one matrix
kind: adj, kirchhoff, signless, lap, nb, nbl or dist.

Examples:
  smol mates 'I?qa` + "`" + `ngk_' --kind nbl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMates(rootOpts, cmd, args[0], kind)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", matrix.NBLTransition.String(), "matrix kind")

	return cmd
}

func runMates(opts *RootOptions, cmd *cobra.Command, id, kind string) error {
	k, err := kindFlag(kind)
	if err != nil {
		return err
	}
	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	mates, err := st.Mates(cmd.Context(), id, k)
	if err != nil {
		return WrapExitError(ExitCommandError, "query failed", err)
	}
	res := MatesResult{Graph: id, Kind: k.String(), Mates: mates}

	return render(cmd.OutOrStdout(), opts.Format, res, func(w io.Writer) error {
		for _, m := range res.Mates {
			fmt.Fprintln(w, m)
		}
		return nil
	})
}

// NewMechanismsCommand creates the mechanisms command.
func NewMechanismsCommand(rootOpts *RootOptions) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "mechanisms",
		Short: "List stored switching mechanisms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMechanisms(rootOpts, cmd, kind)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", matrix.NBLTransition.String(), "matrix kind")

	return cmd
}

func runMechanisms(opts *RootOptions, cmd *cobra.Command, kind string) error {
	k, err := kindFlag(kind)
	if err != nil {
		return err
	}
	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	mechs, err := st.Mechanisms(cmd.Context(), k)
	if err != nil {
		return WrapExitError(ExitCommandError, "query failed", err)
	}

	return render(cmd.OutOrStdout(), opts.Format, mechs, func(w io.Writer) error {
		for _, m := range mechs {
			fmt.Fprintf(w, "%s %s %s %s%s\n", m.First, m.Second, m.Payload.Type, m.Payload.Theorem, reversed(m))
		}
		return nil
	})
}

func reversed(m pipeline.StoredMechanism) string {
	if m.Payload.Reversed {
		return " (reversed)"
	}

	return ""
}

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd.OutOrStdout(), rootOpts.Format, rootOpts.cfg.Settings(), func(w io.Writer) error {
				out, err := rootOpts.cfg.YAML()
				if err != nil {
					return err
				}
				_, err = w.Write(out)
				return err
			})
		},
	})

	return cmd
}
