package app

import (
	"errors"
	"fmt"
	"strings"
)

// Operation is the single mode a command line resolves to.
type Operation int

const (
	OpCompute Operation = iota
	OpGetPrior
	OpSetPrior
	OpRemovePrior
	OpWizard
)

func (op Operation) String() string {
	switch op {
	case OpGetPrior:
		return "get-prior"
	case OpSetPrior:
		return "set-prior"
	case OpRemovePrior:
		return "remove-prior"
	case OpWizard:
		return "wizard"
	default:
		return "compute"
	}
}

// flagUse records which flags were given on the command line.
type flagUse struct {
	Name          bool
	BlankName     bool // --name is empty or whitespace
	Prior         bool
	Likelihood    bool
	LikelihoodNot bool
	Evidence      bool
	UpdatePrior   bool

	GetPrior    bool
	SetPrior    bool
	RemovePrior bool
	Wizard      bool
}

// conflicting returns the flags in names that were given, as "--flag".
func (f flagUse) conflicting(names ...string) []string {
	set := map[string]bool{
		"prior":          f.Prior,
		"likelihood":     f.Likelihood,
		"likelihood-not": f.LikelihoodNot,
		"evidence":       f.Evidence,
		"update-prior":   f.UpdatePrior,
	}
	var out []string
	for _, name := range names {
		if set[name] {
			out = append(out, "--"+name)
		}
	}
	return out
}

var computeFlags = []string{"prior", "likelihood", "likelihood-not", "evidence", "update-prior"}

// ResolveOperation turns the given flags into one Operation, enforcing the
// conflict and requirement rules between modes.
func ResolveOperation(f flagUse) (Operation, error) {
	var modes []string
	for _, m := range []struct {
		set  bool
		name string
	}{
		{f.GetPrior, "--get-prior"},
		{f.SetPrior, "--set-prior"},
		{f.RemovePrior, "--remove-prior"},
		{f.Wizard, "--wizard"},
	} {
		if m.set {
			modes = append(modes, m.name)
		}
	}
	if len(modes) > 1 {
		return OpCompute, fmt.Errorf("%s cannot be used together", strings.Join(modes, " and "))
	}

	op := OpCompute
	var conflicts []string
	switch {
	case f.GetPrior:
		op = OpGetPrior
		conflicts = f.conflicting(computeFlags...)
	case f.SetPrior:
		op = OpSetPrior
		conflicts = f.conflicting("likelihood", "likelihood-not", "evidence", "update-prior")
	case f.RemovePrior:
		op = OpRemovePrior
		conflicts = f.conflicting(computeFlags...)
	case f.Wizard:
		op = OpWizard
		conflicts = f.conflicting(computeFlags...)
	}
	if len(conflicts) > 0 {
		return op, fmt.Errorf("--%s cannot be used with %s", op, strings.Join(conflicts, ", "))
	}

	if op == OpSetPrior && !f.Prior {
		return op, errors.New("--set-prior requires --prior")
	}
	if op != OpWizard && !f.Name {
		return op, errors.New("--name is required unless --wizard is used")
	}
	if op != OpWizard && f.BlankName {
		return op, errors.New("--name must not be empty")
	}
	return op, nil
}
