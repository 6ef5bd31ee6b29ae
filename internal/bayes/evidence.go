package bayes

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Evidence records whether evidence supporting the hypothesis was observed.
type Evidence int

const (
	// Observed means the supporting evidence was witnessed.
	Observed Evidence = iota
	// NotObserved means the supporting evidence was not witnessed.
	NotObserved
)

// evidenceAliases maps every accepted spelling to its variant.
var evidenceAliases = map[string]Evidence{
	"o":            Observed,
	"observed":     Observed,
	"Observed":     Observed,
	"n":            NotObserved,
	"not-observed": NotObserved,
	"NotObserved":  NotObserved,
}

// ParseEvidence resolves one of the accepted evidence spellings.
func ParseEvidence(s string) (Evidence, error) {
	e, ok := evidenceAliases[s]
	if !ok {
		return Observed, fmt.Errorf("invalid evidence: %q (want observed or not-observed)", s)
	}
	return e, nil
}

func (e Evidence) String() string {
	if e == NotObserved {
		return "NotObserved"
	}
	return "Observed"
}

// Label is the lower-case form used in structured output.
func (e Evidence) Label() string {
	if e == NotObserved {
		return "not observed"
	}
	return "observed"
}

// Set implements pflag.Value.
func (e *Evidence) Set(s string) error {
	parsed, err := ParseEvidence(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Type implements pflag.Value.
func (e *Evidence) Type() string {
	return "evidence"
}

// UnmarshalYAML accepts the same spellings as the command line.
func (e *Evidence) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return e.Set(s)
}
