package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/ask-bayes/internal/bayes"
)

// scriptedPrompter replays canned answers. An empty input answer accepts
// the default; answers failing validation are recorded and the next one is
// tried, like a user re-typing after an error.
type scriptedPrompter struct {
	inputs   []string
	selects  []string
	confirms []bool

	titles   []string
	defaults []string
	rejected []string
}

func (s *scriptedPrompter) Input(title, def string, validate func(string) error) (string, error) {
	s.titles = append(s.titles, title)
	s.defaults = append(s.defaults, def)
	for len(s.inputs) > 0 {
		answer := s.inputs[0]
		s.inputs = s.inputs[1:]
		if answer == "" {
			answer = def
		}
		if err := validate(answer); err != nil {
			s.rejected = append(s.rejected, answer)
			continue
		}
		return answer, nil
	}
	return "", errors.New("script exhausted")
}

func (s *scriptedPrompter) Select(title string, options []string, def string) (string, error) {
	s.titles = append(s.titles, title)
	if len(s.selects) == 0 {
		return def, nil
	}
	answer := s.selects[0]
	s.selects = s.selects[1:]
	return answer, nil
}

func (s *scriptedPrompter) Confirm(title string, def bool) (bool, error) {
	s.titles = append(s.titles, title)
	if len(s.confirms) == 0 {
		return def, nil
	}
	answer := s.confirms[0]
	s.confirms = s.confirms[1:]
	return answer, nil
}

func TestRun_CollectsInputTuple(t *testing.T) {
	p := &scriptedPrompter{
		inputs:   []string{"rain", "0.75", "0.75", "0.5"},
		selects:  []string{"not-observed"},
		confirms: []bool{true},
	}

	answers, err := Run(p, Defaults{})
	require.NoError(t, err)

	assert.Equal(t, bayes.Hypothesis{
		Name:          "rain",
		Prior:         0.75,
		Likelihood:    0.75,
		LikelihoodNot: 0.5,
		Evidence:      bayes.NotObserved,
	}, answers.Hypothesis)
	assert.True(t, answers.UpdatePrior)

	posterior, err := answers.Hypothesis.Posterior()
	require.NoError(t, err)
	assert.Equal(t, 0.6, posterior)
}

func TestRun_DefaultsAndStoredPrior(t *testing.T) {
	p := &scriptedPrompter{inputs: []string{"", "", "", ""}}
	lookup := func(name string) (float64, bool) {
		if name == "rain" {
			return 0.2, true
		}
		return 0, false
	}

	answers, err := Run(p, Defaults{Name: "rain", Lookup: lookup})
	require.NoError(t, err)

	assert.Equal(t, "rain", answers.Hypothesis.Name)
	assert.Equal(t, 0.2, answers.Hypothesis.Prior)
	assert.Equal(t, 0.5, answers.Hypothesis.Likelihood)
	assert.Equal(t, 0.5, answers.Hypothesis.LikelihoodNot)
	assert.Equal(t, bayes.Observed, answers.Hypothesis.Evidence)
	assert.False(t, answers.UpdatePrior)
	assert.Equal(t, []string{"rain", "0.2", "0.5", "0.5"}, p.defaults)
}

func TestRun_RejectsInvalidAnswers(t *testing.T) {
	p := &scriptedPrompter{
		inputs: []string{"   ", "rain", "1.5", "abc", "0.3", "-1", "0.9", "0.2"},
	}

	answers, err := Run(p, Defaults{})
	require.NoError(t, err)

	assert.Equal(t, []string{"   ", "1.5", "abc", "-1"}, p.rejected)
	assert.Equal(t, 0.3, answers.Hypothesis.Prior)
	assert.Equal(t, 0.9, answers.Hypothesis.Likelihood)
	assert.Equal(t, 0.2, answers.Hypothesis.LikelihoodNot)
}

func TestRun_PropagatesPromptErrors(t *testing.T) {
	p := &scriptedPrompter{inputs: []string{"rain"}}
	_, err := Run(p, Defaults{})
	assert.EqualError(t, err, "script exhausted")
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateName("rain"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName(" \t"))

	assert.NoError(t, ValidateProbabilityText(" 0.4 "))
	assert.ErrorIs(t, ValidateProbabilityText("1.01"), bayes.ErrInvalidProbability)
}
