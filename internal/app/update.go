package app

import "fmt"

// UpdateHypothesis says whether the posterior replaces the stored prior.
type UpdateHypothesis int

const (
	NoUpdate UpdateHypothesis = iota
	Update
)

var updateAliases = map[string]UpdateHypothesis{
	"u":         Update,
	"update":    Update,
	"Update":    Update,
	"n":         NoUpdate,
	"no-update": NoUpdate,
	"NoUpdate":  NoUpdate,
}

// ParseUpdateHypothesis resolves one of the accepted spellings.
func ParseUpdateHypothesis(s string) (UpdateHypothesis, error) {
	u, ok := updateAliases[s]
	if !ok {
		return NoUpdate, fmt.Errorf("invalid update hypothesis: %q (want update or no-update)", s)
	}
	return u, nil
}

func (u UpdateHypothesis) String() string {
	if u == Update {
		return "Update"
	}
	return "NoUpdate"
}

// Set implements pflag.Value.
func (u *UpdateHypothesis) Set(s string) error {
	parsed, err := ParseUpdateHypothesis(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Type implements pflag.Value.
func (u *UpdateHypothesis) Type() string {
	return "update"
}
