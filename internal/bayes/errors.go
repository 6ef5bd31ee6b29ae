package bayes

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidProbability is matched by every *InvalidProbabilityError.
	ErrInvalidProbability = errors.New("invalid probability")

	// ErrZeroMarginalProbability is matched by every *ZeroMarginalProbabilityError.
	ErrZeroMarginalProbability = errors.New("zero marginal probability")
)

// InvalidProbabilityError reports a value outside [0, 1] or text that is
// not a number at all.
type InvalidProbabilityError struct {
	Input string  // raw text, empty when the value did not come from text
	Value float64 // parsed value, zero when parsing failed
	Err   error   // parse error, if any
}

func (e *InvalidProbabilityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid probability %q: not a valid number", e.Input)
	}
	return fmt.Sprintf("probability must be between 0 and 1, got %s", FormatProbability(e.Value))
}

func (e *InvalidProbabilityError) Unwrap() error { return e.Err }

func (e *InvalidProbabilityError) Is(target error) bool {
	return target == ErrInvalidProbability
}

// ZeroMarginalProbabilityError reports that Bayes' rule has no defined
// answer because the evidence direction the caller asked about is impossible
// under the stated model.
type ZeroMarginalProbabilityError struct {
	Name          string
	Prior         float64
	Likelihood    float64
	LikelihoodNot float64
	Evidence      Evidence
}

func (e *ZeroMarginalProbabilityError) Error() string {
	f := FormatProbability
	pE := MarginalLikelihood(e.Prior, e.Likelihood, e.LikelihoodNot)
	if e.Evidence == NotObserved {
		return fmt.Sprintf("the total probability of not observing evidence P(¬E) must be greater than 0 if evidence is not observed:\n"+
			"P(¬E) = P(¬E|%[1]s)[%[2]s] * P(%[1]s)[%[3]s] + P(¬%[1]s)[%[4]s] * P(¬E|¬%[1]s)[%[5]s] = %[6]s",
			e.Name, f(Negate(e.Likelihood)), f(e.Prior), f(Negate(e.Prior)), f(Negate(e.LikelihoodNot)), f(Negate(pE)))
	}
	return fmt.Sprintf("the total probability of observing evidence P(E) must be greater than 0 if evidence is observed:\n"+
		"P(E) = P(%[1]s)[%[2]s] * P(E|%[1]s)[%[3]s] + P(¬%[1]s)[%[4]s] * P(E|¬%[1]s)[%[5]s] = %[6]s",
		e.Name, f(e.Prior), f(e.Likelihood), f(Negate(e.Prior)), f(e.LikelihoodNot), f(pE))
}

func (e *ZeroMarginalProbabilityError) Is(target error) bool {
	return target == ErrZeroMarginalProbability
}
