package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/ask-bayes/internal/bayes"
	"github.com/blackwell-systems/ask-bayes/internal/output"
	"github.com/blackwell-systems/ask-bayes/internal/store"
)

// defaultPrior is used when no prior is given and none is stored.
const defaultPrior = 0.5

func runCompute(cmd *cobra.Command, o *options) error {
	h := bayes.Hypothesis{
		Name:          o.name,
		Prior:         float64(o.prior),
		Likelihood:    float64(o.likelihood),
		LikelihoodNot: float64(o.likelihoodNot),
		Evidence:      o.evidence,
	}
	update := o.update == Update

	var st store.PriorStore
	if !cmd.Flags().Changed("prior") || update {
		var err error
		st, err = o.openStore()
		switch {
		case err != nil && update:
			return err
		case err != nil:
			logger.Warn("prior store unavailable, using default prior",
				zap.Float64("prior", defaultPrior), zap.Error(err))
			h.Prior = defaultPrior
		default:
			defer st.Close()
		}
	}

	if st != nil && !cmd.Flags().Changed("prior") {
		stored, found, err := lookupPrior(st, h.Name)
		if err != nil {
			return err
		}
		h.Prior = defaultPrior
		if found {
			h.Prior = stored
		}
		logger.Debug("resolved prior",
			zap.String("name", h.Name),
			zap.Float64("prior", h.Prior),
			zap.Bool("stored", found))
	}

	return computeAndReport(cmd, o, st, h, update)
}

// computeAndReport computes the posterior of h, prints the report and, when
// update is set, saves the posterior as the new prior.
func computeAndReport(cmd *cobra.Command, o *options, st store.PriorStore, h bayes.Hypothesis, update bool) error {
	posterior, err := h.Posterior()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report := output.Report{
		Name:          h.Name,
		Prior:         h.Prior,
		Likelihood:    h.Likelihood,
		LikelihoodNot: h.LikelihoodNot,
		Evidence:      h.Evidence,
		Posterior:     posterior,
	}
	if err := output.RenderReport(out, o.output, report); err != nil {
		return err
	}

	if !update {
		return nil
	}
	if err := st.SetPrior(h.Name, posterior); err != nil {
		return fmt.Errorf("failed to update prior: %w", err)
	}
	logger.Info("prior updated", zap.String("name", h.Name), zap.Float64("prior", posterior))

	// Keep stdout a single JSON document.
	msgOut := out
	if o.output == output.FormatJSON {
		msgOut = cmd.ErrOrStderr()
	}
	fmt.Fprintf(msgOut, "P(%s) has been updated to %s\n", h.Name, bayes.FormatProbability(posterior))
	return nil
}
