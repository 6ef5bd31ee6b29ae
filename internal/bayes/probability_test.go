package bayes

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseProbability(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"0.75", 0.75, false},
		{"0", 0, false},
		{"1", 1, false},
		{"1.1", 0, true},
		{"-0.1", 0, true},
		{"invalid", 0, true},
		{"NaN", 0, true},
		{"+Inf", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProbability(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidProbability), "error %v should match ErrInvalidProbability", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvalidProbabilityError_Messages(t *testing.T) {
	_, err := ParseProbability("1.1")
	assert.EqualError(t, err, "probability must be between 0 and 1, got 1.1")

	_, err = ParseProbability("invalid")
	assert.EqualError(t, err, `invalid probability "invalid": not a valid number`)

	var invalid *InvalidProbabilityError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "invalid", invalid.Input)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestValidateProbability(t *testing.T) {
	assert.NoError(t, ValidateProbability(0))
	assert.NoError(t, ValidateProbability(0.5))
	assert.NoError(t, ValidateProbability(1))
	assert.Error(t, ValidateProbability(1.0000001))
	assert.Error(t, ValidateProbability(-0.0000001))
	assert.Error(t, ValidateProbability(math.NaN()))
	assert.Error(t, ValidateProbability(math.Inf(1)))

	var invalid *InvalidProbabilityError
	require.True(t, errors.As(ValidateProbability(2), &invalid))
	assert.Equal(t, 2.0, invalid.Value)
}

func TestProbability_FlagValue(t *testing.T) {
	p := Probability(0.5)
	assert.Equal(t, "0.5", p.String())
	assert.Equal(t, "probability", p.Type())

	require.NoError(t, p.Set("0.25"))
	assert.Equal(t, Probability(0.25), p)

	assert.Error(t, p.Set("2"))
	assert.Equal(t, Probability(0.25), p, "failed Set must not change the value")
}

func TestFormatProbability(t *testing.T) {
	assert.Equal(t, "0.8181818181818182", FormatProbability(0.8181818181818182))
	assert.Equal(t, "0.00001", FormatProbability(0.00001))
	assert.Equal(t, "1", FormatProbability(1))
}

func TestParseEvidence(t *testing.T) {
	tests := []struct {
		input string
		want  Evidence
	}{
		{"observed", Observed},
		{"o", Observed},
		{"Observed", Observed},
		{"not-observed", NotObserved},
		{"n", NotObserved},
		{"NotObserved", NotObserved},
	}
	for _, tt := range tests {
		got, err := ParseEvidence(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseEvidence("invalid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"invalid"`)
}

func TestEvidence_StringAndLabel(t *testing.T) {
	assert.Equal(t, "Observed", Observed.String())
	assert.Equal(t, "NotObserved", NotObserved.String())
	assert.Equal(t, "observed", Observed.Label())
	assert.Equal(t, "not observed", NotObserved.Label())
}

func TestEvidence_UnmarshalYAML(t *testing.T) {
	var doc struct {
		Evidence Evidence `yaml:"evidence"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("evidence: not-observed\n"), &doc))
	assert.Equal(t, NotObserved, doc.Evidence)

	err := yaml.Unmarshal([]byte("evidence: maybe\n"), &doc)
	assert.Error(t, err)
}
