package bayes

import (
	"errors"
	"math"
)

// MarginalLikelihood returns P(E) = P(E|H)·P(H) + P(E|¬H)·P(¬H), with the
// first product fused into the sum. Inputs are not validated.
func MarginalLikelihood(prior, likelihood, likelihoodNot float64) float64 {
	return math.FMA(likelihood, prior, likelihoodNot*Negate(prior))
}

// ValidateLikelihoodsAndPrior rejects inputs for which Bayes' rule is
// undefined: P(E) <= 0 when evidence is observed, P(¬E) <= 0 when it is not.
// A NaN denominator is rejected the same way.
func ValidateLikelihoodsAndPrior(prior, likelihood, likelihoodNot float64, evidence Evidence, name string) error {
	pE := MarginalLikelihood(prior, likelihood, likelihoodNot)

	denominator := pE
	if evidence == NotObserved {
		denominator = Negate(pE)
	}
	if !(denominator > 0) {
		return &ZeroMarginalProbabilityError{
			Name:          name,
			Prior:         prior,
			Likelihood:    likelihood,
			LikelihoodNot: likelihoodNot,
			Evidence:      evidence,
		}
	}
	return nil
}

// CalculatePosterior returns P(H|E) when evidence is observed and P(H|¬E)
// when it is not. The three probabilities are assumed to be range-checked
// already; see ValidateProbability.
func CalculatePosterior(prior, likelihood, likelihoodNot float64, evidence Evidence, name string) (float64, error) {
	if err := ValidateLikelihoodsAndPrior(prior, likelihood, likelihoodNot, evidence, name); err != nil {
		return 0, err
	}

	pE := MarginalLikelihood(prior, likelihood, likelihoodNot)
	if evidence == NotObserved {
		// P(H|¬E) = P(¬E|H) * P(H) / P(¬E)
		return Negate(likelihood) * prior / Negate(pE), nil
	}
	// P(H|E) = P(E|H) * P(H) / P(E)
	return likelihood * prior / pE, nil
}

// Hypothesis is the full input tuple for one posterior computation.
type Hypothesis struct {
	Name          string
	Prior         float64
	Likelihood    float64
	LikelihoodNot float64
	Evidence      Evidence
}

// Validate checks the name and range-checks all three probabilities.
func (h Hypothesis) Validate() error {
	if h.Name == "" {
		return errors.New("hypothesis name must not be empty")
	}
	for _, v := range []float64{h.Prior, h.Likelihood, h.LikelihoodNot} {
		if err := ValidateProbability(v); err != nil {
			return err
		}
	}
	return nil
}

// Posterior validates h and computes its posterior.
func (h Hypothesis) Posterior() (float64, error) {
	if err := h.Validate(); err != nil {
		return 0, err
	}
	return CalculatePosterior(h.Prior, h.Likelihood, h.LikelihoodNot, h.Evidence, h.Name)
}
