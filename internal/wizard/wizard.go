// Package wizard collects the posterior inputs interactively.
//
// The flow is a fixed sequence of steps, each asking for one field with a
// validator and a default. Prompting is behind the Prompter interface so the
// flow can be driven by a script in tests and by huh forms in a terminal.
package wizard

import (
	"errors"
	"strings"

	"github.com/blackwell-systems/ask-bayes/internal/bayes"
)

// Prompter asks the user for single values.
type Prompter interface {
	Input(title, def string, validate func(string) error) (string, error)
	Select(title string, options []string, def string) (string, error)
	Confirm(title string, def bool) (bool, error)
}

// PriorLookup returns the stored prior for name, and whether one exists.
type PriorLookup func(name string) (float64, bool)

// DefaultProbability is offered when nothing better is known.
const DefaultProbability = 0.5

// Defaults seeds the prompts.
type Defaults struct {
	Name string
	// Lookup is consulted after the name is known. May be nil.
	Lookup PriorLookup
}

// Answers is the collected input tuple.
type Answers struct {
	Hypothesis  bayes.Hypothesis
	UpdatePrior bool
}

var evidenceOptions = []string{"observed", "not-observed"}

// ValidateName rejects empty and whitespace-only names.
func ValidateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name must not be empty")
	}
	return nil
}

// ValidateProbabilityText accepts text that parses to a value in [0, 1].
func ValidateProbabilityText(s string) error {
	_, err := bayes.ParseProbability(strings.TrimSpace(s))
	return err
}

func askProbability(p Prompter, title string, def float64) (float64, error) {
	text, err := p.Input(title, bayes.FormatProbability(def), ValidateProbabilityText)
	if err != nil {
		return 0, err
	}
	return bayes.ParseProbability(strings.TrimSpace(text))
}

// Run walks the user through every input and returns the answers.
func Run(p Prompter, d Defaults) (*Answers, error) {
	name, err := p.Input("Name of the hypothesis", d.Name, ValidateName)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	prior := DefaultProbability
	if d.Lookup != nil {
		if stored, ok := d.Lookup(name); ok {
			prior = stored
		}
	}

	h := bayes.Hypothesis{Name: name}
	if h.Prior, err = askProbability(p, "Prior probability P("+name+")", prior); err != nil {
		return nil, err
	}
	if h.Likelihood, err = askProbability(p, "Likelihood P(E|"+name+")", DefaultProbability); err != nil {
		return nil, err
	}
	if h.LikelihoodNot, err = askProbability(p, "Likelihood P(E|¬"+name+")", DefaultProbability); err != nil {
		return nil, err
	}

	choice, err := p.Select("Was the evidence observed?", evidenceOptions, evidenceOptions[0])
	if err != nil {
		return nil, err
	}
	if h.Evidence, err = bayes.ParseEvidence(choice); err != nil {
		return nil, err
	}

	update, err := p.Confirm("Save the posterior as the new prior for "+name+"?", false)
	if err != nil {
		return nil, err
	}

	return &Answers{Hypothesis: h, UpdatePrior: update}, nil
}
