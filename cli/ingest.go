// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leotrs/smol/graph6"
	"github.com/leotrs/smol/pipeline"
)

// NewIngestCommand creates the ingest command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest [file|-]",
		Short: "Compute and store records for graph6 lines",
		Long: `Read graph6 strings, one per line, and store each graph's spectra,
fingerprints, metadata and tags. Graphs already stored in full are skipped, so
an interrupted ingest can be rerun on the same input. Malformed lines are listed
as failures and do not stop the ingest.

Examples:
  geng -c 8 | smol ingest
  smol ingest --db graphs.db graphs8.g6`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(rootOpts, cmd, args)
		},
	}
}

func runIngest(opts *RootOptions, cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open input", err)
		}
		defer f.Close()
		in = f
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := opts.cfg.Runner(opts.log)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	sum, runErr := r.Run(cmd.Context(), graph6.NewScanner(in), st)
	if sum.RunID != "" {
		if err := st.PutRun(cmd.Context(), sum); err != nil {
			opts.log.Error().Err(err).Str("run_id", sum.RunID).Msg("run not recorded")
		}
	}
	if runErr != nil {
		return WrapExitError(ExitCommandError, "ingest failed", runErr)
	}

	return render(cmd.OutOrStdout(), opts.Format, sum, func(w io.Writer) error {
		fmt.Fprintf(w, "run %s: processed %d, skipped %d, failed %d\n",
			sum.RunID, sum.Processed, sum.Skipped, len(sum.Failed))
		printFailures(w, sum.Failed)
		return nil
	})
}

func printFailures(w io.Writer, failures []pipeline.Failure) {
	for _, f := range failures {
		if f.Kind != "" {
			fmt.Fprintf(w, "  %s [%s]: %s\n", f.ID, f.Kind, f.Reason)
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", f.ID, f.Reason)
	}
}
