// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/pipeline"
)

// IndexResult is the index outcome for one order.
type IndexResult struct {
	N     int            `json:"n" yaml:"n"`
	Pairs map[string]int `json:"pairs" yaml:"pairs"`
}

// DetectResult is the switch detection outcome for one order.
type DetectResult struct {
	pipeline.DetectSummary `yaml:",inline"`

	N int `json:"n" yaml:"n"`
}

// VerifyResult is the verification outcome for one order.
type VerifyResult struct {
	pipeline.VerifySummary `yaml:",inline"`

	N int `json:"n" yaml:"n"`
}

// NewIndexCommand creates the index command.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Find cospectral pairs among stored graphs",
		Long: `Group the stored graphs of each order by fingerprint and store every
cospectral pair, per matrix kind. Run it after all graphs of an order are
ingested; rerunning it is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(rootOpts, cmd, n)
		},
	}
	cmd.Flags().IntVar(&n, "n", 0, "vertex count to index (0 = every stored order)")

	return cmd
}

func runIndex(opts *RootOptions, cmd *cobra.Command, n int) error {
	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	ns, err := orders(cmd, st, n)
	if err != nil {
		return err
	}
	r, err := opts.cfg.Runner(opts.log)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	results := make([]IndexResult, 0, len(ns))
	for _, order := range ns {
		pairs, err := r.IndexBatch(cmd.Context(), st, order)
		if err != nil {
			return WrapExitError(ExitCommandError, "index failed", err)
		}
		res := IndexResult{N: order, Pairs: map[string]int{}}
		for _, k := range matrix.Kinds() {
			res.Pairs[k.String()] = 0
		}
		for _, p := range pairs {
			res.Pairs[p.Kind.String()]++
		}
		results = append(results, res)
	}

	return render(cmd.OutOrStdout(), opts.Format, results, func(w io.Writer) error {
		for _, res := range results {
			fmt.Fprintf(w, "n=%d", res.N)
			for _, k := range matrix.Kinds() {
				fmt.Fprintf(w, " %s=%d", k, res.Pairs[k.String()])
			}
			fmt.Fprintln(w)
		}
		return nil
	})
}

// NewSwitchesCommand creates the switches command.
func NewSwitchesCommand(rootOpts *RootOptions) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "switches",
		Short: "Explain NBL-cospectral pairs by local switches",
		Long: `Search every stored non-backtracking Laplacian cospectral pair for a
2-edge switch or bipartite swap that maps one graph onto the other and whose
trace certificate confirms the pair. Confirmed mechanisms are stored; pairs
without one are marked mechanism-unknown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwitches(rootOpts, cmd, n)
		},
	}
	cmd.Flags().IntVar(&n, "n", 0, "vertex count to search (0 = every stored order)")

	return cmd
}

func runSwitches(opts *RootOptions, cmd *cobra.Command, n int) error {
	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	ns, err := orders(cmd, st, n)
	if err != nil {
		return err
	}
	r, err := opts.cfg.Runner(opts.log)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	det, err := opts.cfg.Detector(opts.log)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	results := make([]DetectResult, 0, len(ns))
	for _, order := range ns {
		sum, err := r.DetectBatch(cmd.Context(), st, det, order)
		if err != nil {
			return WrapExitError(ExitCommandError, "switch detection failed", err)
		}
		results = append(results, DetectResult{N: order, DetectSummary: sum})
	}

	return render(cmd.OutOrStdout(), opts.Format, results, func(w io.Writer) error {
		for _, res := range results {
			fmt.Fprintf(w, "n=%d pairs=%d explained=%d unknown=%d failed=%d\n",
				res.N, res.Pairs, res.Explained, res.Unknown, len(res.Failed))
			printFailures(w, res.Failed)
		}
		return nil
	})
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Re-check stored pairs and mechanisms",
		Long: `Recompute the fingerprints of every stored cospectral pair and replay
every stored mechanism against its pair. Exits with status 1 when anything
no longer holds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, cmd, n)
		},
	}
	cmd.Flags().IntVar(&n, "n", 0, "vertex count to verify (0 = every stored order)")

	return cmd
}

func runVerify(opts *RootOptions, cmd *cobra.Command, n int) error {
	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	ns, err := orders(cmd, st, n)
	if err != nil {
		return err
	}
	r, err := opts.cfg.Runner(opts.log)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	det, err := opts.cfg.Detector(opts.log)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	results := make([]VerifyResult, 0, len(ns))
	failed := 0
	for _, order := range ns {
		sum, err := r.VerifyBatch(cmd.Context(), st, det, order)
		if err != nil {
			return WrapExitError(ExitCommandError, "verification aborted", err)
		}
		failed += len(sum.Failed)
		results = append(results, VerifyResult{N: order, VerifySummary: sum})
	}

	err = render(cmd.OutOrStdout(), opts.Format, results, func(w io.Writer) error {
		for _, res := range results {
			fmt.Fprintf(w, "n=%d pairs=%d mechanisms=%d failed=%d\n",
				res.N, res.Pairs, res.Mechanisms, len(res.Failed))
			printFailures(w, res.Failed)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("verification failed: %d problem(s)", failed))
	}

	return nil
}
