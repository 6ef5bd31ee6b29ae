package app

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/ask-bayes/internal/wizard"
)

// newPrompter is replaced in tests.
var newPrompter = func() wizard.Prompter {
	return wizard.NewHuhPrompter()
}

func runWizard(cmd *cobra.Command, o *options) error {
	st, openErr := o.openStore()
	if openErr != nil {
		logger.Warn("prior store unavailable, stored priors will not be offered", zap.Error(openErr))
	} else {
		defer st.Close()
	}

	defaults := wizard.Defaults{Name: o.name}
	if st != nil {
		defaults.Lookup = func(name string) (float64, bool) {
			value, found, err := lookupPrior(st, name)
			if err != nil {
				logger.Warn("ignoring stored prior", zap.String("name", name), zap.Error(err))
				return 0, false
			}
			return value, found
		}
	}

	answers, err := wizard.Run(newPrompter(), defaults)
	if err != nil {
		return err
	}
	if answers.UpdatePrior && st == nil {
		return openErr
	}
	return computeAndReport(cmd, o, st, answers.Hypothesis, answers.UpdatePrior)
}
