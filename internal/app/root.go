package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/blackwell-systems/ask-bayes/internal/bayes"
	"github.com/blackwell-systems/ask-bayes/internal/config"
	"github.com/blackwell-systems/ask-bayes/internal/output"
	"github.com/blackwell-systems/ask-bayes/internal/store"
	"github.com/blackwell-systems/ask-bayes/internal/wizard"
)

var (
	_ pflag.Value = (*bayes.Probability)(nil)
	_ pflag.Value = (*bayes.Evidence)(nil)
	_ pflag.Value = (*UpdateHypothesis)(nil)
	_ pflag.Value = (*output.Format)(nil)
	_ pflag.Value = (*store.Backend)(nil)
)

// options holds every flag value for one command tree.
type options struct {
	name          string
	prior         bayes.Probability
	likelihood    bayes.Probability
	likelihoodNot bayes.Probability
	evidence      bayes.Evidence
	update        UpdateHypothesis

	getPrior    bool
	setPrior    bool
	removePrior bool
	wizard      bool

	// persistent
	output    output.Format
	dbPath    string
	backend   store.Backend
	configDir string
	verbose   bool

	// resolved in PersistentPreRunE
	dir string
	cfg *config.Config
}

func newOptions() *options {
	return &options{
		prior:         0.5,
		likelihood:    0.5,
		likelihoodNot: 0.5,
		evidence:      bayes.Observed,
		update:        NoUpdate,
	}
}

// RootCmd is the root command for ask-bayes
var RootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return buildRootCmd(newOptions())
}

// buildRootCmd binds a command tree to o.
func buildRootCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask-bayes",
		Short: "Compute the posterior probability of a hypothesis with Bayes' theorem",
		Long: `ask-bayes applies Bayes' theorem to a single named hypothesis.

Given a prior P(H), the likelihood of the evidence if the hypothesis is true
P(E|H), the likelihood of the evidence if it is false P(E|¬H), and whether the
evidence was observed, it prints the posterior P(H|E) or P(H|¬E).

Priors can be saved per hypothesis in ~/.ask-bayes and are used as the
default prior on later runs.

Modes (mutually exclusive):
  (default)        compute and report the posterior
  --get-prior      print the stored prior
  --set-prior      store --prior as the prior
  --remove-prior   delete the stored prior
  --wizard         ask for every input interactively`,
		Example: `  # Evidence observed
  ask-bayes -n rain -p 0.3 -l 0.9 --likelihood-not 0.2 -e observed

  # Evidence not observed, save the posterior as the new prior
  ask-bayes -n rain -l 0.9 --likelihood-not 0.2 -e not-observed -u update

  # Manage stored priors
  ask-bayes -n rain --set-prior -p 0.3
  ask-bayes -n rain --get-prior
  ask-bayes -n rain --remove-prior

  # Interactive
  ask-bayes --wizard`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			op, err := ResolveOperation(flagUse{
				Name:          flags.Changed("name"),
				BlankName:     wizard.ValidateName(o.name) != nil,
				Prior:         flags.Changed("prior"),
				Likelihood:    flags.Changed("likelihood"),
				LikelihoodNot: flags.Changed("likelihood-not"),
				Evidence:      flags.Changed("evidence"),
				UpdatePrior:   flags.Changed("update-prior"),
				GetPrior:      o.getPrior,
				SetPrior:      o.setPrior,
				RemovePrior:   o.removePrior,
				Wizard:        o.wizard,
			})
			if err != nil {
				return err
			}
			logger.Debug("resolved operation", zapOp(op))

			switch op {
			case OpGetPrior:
				return runGetPrior(cmd, o)
			case OpSetPrior:
				return runSetPrior(cmd, o)
			case OpRemovePrior:
				return runRemovePrior(cmd, o)
			case OpWizard:
				return runWizard(cmd, o)
			default:
				return runCompute(cmd, o)
			}
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.name, "name", "n", "", "name of the hypothesis")
	f.VarP(&o.prior, "prior", "p", "prior probability of the hypothesis P(H) (default: stored prior, else 0.5)")
	f.VarP(&o.likelihood, "likelihood", "l", "likelihood of the evidence if the hypothesis is true P(E|H)")
	f.Var(&o.likelihoodNot, "likelihood-not", "likelihood of the evidence if the hypothesis is false P(E|¬H)")
	f.VarP(&o.evidence, "evidence", "e", "whether the evidence was observed: observed|o, not-observed|n")
	f.VarP(&o.update, "update-prior", "u", "save the posterior as the new prior: update|u, no-update|n")
	f.BoolVarP(&o.getPrior, "get-prior", "g", false, "print the stored prior of the hypothesis")
	f.BoolVarP(&o.setPrior, "set-prior", "s", false, "store --prior as the prior of the hypothesis")
	f.BoolVarP(&o.removePrior, "remove-prior", "r", false, "delete the stored prior of the hypothesis")
	f.BoolVarP(&o.wizard, "wizard", "w", false, "enter the inputs interactively")

	pf := cmd.PersistentFlags()
	pf.VarP(&o.output, "output", "o", "output format: table|t, json|j, simple|s (default from config, else table)")
	pf.StringVar(&o.dbPath, "db", "", "prior store path (default: ~/.ask-bayes/hypotheses.db)")
	pf.Var(&o.backend, "backend", "prior store backend: sqlite, badger (default from config, else sqlite)")
	pf.StringVar(&o.configDir, "config-dir", "", "configuration directory (default: $ASK_BAYES_HOME or ~/.ask-bayes)")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	cmd.SuggestionsMinimumDistance = 2

	cmd.AddCommand(newBatchCmd(o))
	return cmd
}

// setup loads configuration, applies flag overrides and builds the logger.
func (o *options) setup(cmd *cobra.Command) error {
	dir := o.configDir
	if dir == "" {
		var err error
		if dir, err = config.Dir(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrStoreUnavailable, err)
		}
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	o.dir = dir
	o.cfg = cfg

	flags := cmd.Flags()
	if !flags.Changed("output") {
		if o.output, err = output.ParseFormat(cfg.Output); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if !flags.Changed("backend") {
		if o.backend, err = store.ParseBackend(cfg.Backend); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}

	l, err := newLogger(cfg.LogLevel, o.verbose)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
