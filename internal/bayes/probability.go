// Package bayes computes the posterior probability of a single named
// hypothesis with Bayes' theorem.
//
// Everything here is pure: no I/O, no logging, no shared state. Range checks
// (ValidateProbability) and the degeneracy guard (ValidateLikelihoodsAndPrior)
// are independent so callers can run them where the input enters the
// program. CalculatePosterior only runs the degeneracy guard.
package bayes

import (
	"strconv"
)

// Probability is a float64 in [0, 1]. It implements pflag.Value so that
// command-line flags are range-checked as they are parsed.
type Probability float64

// ValidateProbability checks that v lies in [0, 1]. NaN is rejected.
func ValidateProbability(v float64) error {
	if !(v >= 0 && v <= 1) {
		return &InvalidProbabilityError{Value: v}
	}
	return nil
}

// ParseProbability parses s as a float and checks that it is a probability.
func ParseProbability(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &InvalidProbabilityError{Input: s, Err: err}
	}
	if err := ValidateProbability(v); err != nil {
		return 0, &InvalidProbabilityError{Input: s, Value: v}
	}
	return v, nil
}

// Negate returns the complement 1 - v, e.g. P(H) -> P(¬H).
func Negate(v float64) float64 {
	return 1 - v
}

// FormatProbability renders v in its shortest round-trip decimal form
// without an exponent.
func FormatProbability(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (p Probability) String() string {
	return FormatProbability(float64(p))
}

// Set implements pflag.Value.
func (p *Probability) Set(s string) error {
	v, err := ParseProbability(s)
	if err != nil {
		return err
	}
	*p = Probability(v)
	return nil
}

// Type implements pflag.Value.
func (p *Probability) Type() string {
	return "probability"
}
