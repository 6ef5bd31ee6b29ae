package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/ask-bayes/internal/batch"
	"github.com/blackwell-systems/ask-bayes/internal/output"
)

type batchOptions struct {
	watch       bool
	concurrency int
}

func newBatchCmd(o *options) *cobra.Command {
	bo := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Compute posteriors for every hypothesis in a YAML file",
		Long: `Compute the posterior of every hypothesis listed in a YAML file.

Each entry is computed independently; a failing entry is reported without
stopping the others. Entries without a prior use the stored prior, else 0.5.
Entries with update_prior: true save their posterior as the new prior.

File format:
  hypotheses:
    - name: rain
      prior: 0.3            # optional
      likelihood: 0.9
      likelihood_not: 0.2
      evidence: observed    # observed|o, not-observed|n
      update_prior: false   # optional

With --watch the file is re-run every time it changes, until Ctrl+C.`,
		Example: `  # Run once
  ask-bayes batch hypotheses.yaml

  # Re-run on every save, as JSON
  ask-bayes batch hypotheses.yaml --watch -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, o, bo, args[0])
		},
	}

	cmd.Flags().BoolVar(&bo.watch, "watch", false, "re-run when the file changes")
	cmd.Flags().IntVar(&bo.concurrency, "concurrency", batch.DefaultConcurrency, "maximum hypotheses computed at once")
	return cmd
}

func runBatch(cmd *cobra.Command, o *options, bo *batchOptions, path string) error {
	if bo.concurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1, got %d", bo.concurrency)
	}

	st, err := o.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runner := &batch.Runner{
		Priors:      st,
		Concurrency: bo.concurrency,
		Logger:      logger,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !bo.watch {
		return runBatchOnce(ctx, cmd.OutOrStdout(), o.output, runner, path)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	rerun := func() {
		if err := runBatchOnce(ctx, out, o.output, runner, path); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}
	rerun()
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (press Ctrl+C to stop)...\n", path)

	return batch.Watch(ctx, path, rerun, logger)
}

// runBatchOnce evaluates path and renders every row. It fails when any
// entry failed or an updated prior could not be saved.
func runBatchOnce(ctx context.Context, w io.Writer, format output.Format, runner *batch.Runner, path string) error {
	results, saved, saveErr := runner.RunFile(ctx, path)
	if results == nil && saveErr != nil {
		return saveErr
	}

	rows := make([]output.BatchRow, 0, len(results))
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
		rows = append(rows, output.BatchRow{
			Report: output.Report{
				Name:          res.Hypothesis.Name,
				Prior:         res.Hypothesis.Prior,
				Likelihood:    res.Hypothesis.Likelihood,
				LikelihoodNot: res.Hypothesis.LikelihoodNot,
				Evidence:      res.Hypothesis.Evidence,
				Posterior:     res.Posterior,
			},
			Err: res.Err,
		})
	}
	if err := output.RenderBatch(w, format, rows); err != nil {
		return err
	}

	for _, name := range saved {
		logger.Info("prior updated", zap.String("name", name))
	}
	if saveErr != nil {
		return fmt.Errorf("failed to update priors: %w", saveErr)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d hypotheses failed", failed, len(results))
	}
	return nil
}
