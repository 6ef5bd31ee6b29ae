package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/ask-bayes/internal/output"
)

func runGetPrior(cmd *cobra.Command, o *options) error {
	st, err := o.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	value, err := st.GetPrior(o.name)
	if err != nil {
		return err
	}
	return output.RenderPrior(cmd.OutOrStdout(), o.output, o.name, value)
}

func runSetPrior(cmd *cobra.Command, o *options) error {
	st, err := o.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	value := float64(o.prior)
	if err := st.SetPrior(o.name, value); err != nil {
		return err
	}
	logger.Info("prior set", zap.String("name", o.name), zap.Float64("prior", value))
	return output.RenderPrior(cmd.OutOrStdout(), o.output, o.name, value)
}

func runRemovePrior(cmd *cobra.Command, o *options) error {
	st, err := o.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.RemovePrior(o.name); err != nil {
		return err
	}
	logger.Info("prior removed", zap.String("name", o.name))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "P(%s) removed\n", o.name)
	return err
}
