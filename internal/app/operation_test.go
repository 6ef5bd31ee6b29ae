package app

import (
	"testing"
)

func TestResolveOperation(t *testing.T) {
	tests := []struct {
		name    string
		flags   flagUse
		want    Operation
		wantErr string
	}{
		{
			name:  "compute with name only",
			flags: flagUse{Name: true},
			want:  OpCompute,
		},
		{
			name:  "compute with every value flag",
			flags: flagUse{Name: true, Prior: true, Likelihood: true, LikelihoodNot: true, Evidence: true, UpdatePrior: true},
			want:  OpCompute,
		},
		{
			name:    "compute without name",
			flags:   flagUse{Prior: true},
			wantErr: "--name is required unless --wizard is used",
		},
		{
			name:    "compute with blank name",
			flags:   flagUse{Name: true, BlankName: true},
			wantErr: "--name must not be empty",
		},
		{
			name:    "get prior with blank name",
			flags:   flagUse{Name: true, BlankName: true, GetPrior: true},
			wantErr: "--name must not be empty",
		},
		{
			name:    "set prior with blank name",
			flags:   flagUse{Name: true, BlankName: true, SetPrior: true, Prior: true},
			wantErr: "--name must not be empty",
		},
		{
			name:    "remove prior with blank name",
			flags:   flagUse{Name: true, BlankName: true, RemovePrior: true},
			wantErr: "--name must not be empty",
		},
		{
			name:  "wizard with blank name",
			flags: flagUse{Name: true, BlankName: true, Wizard: true},
			want:  OpWizard,
		},
		{
			name:  "get prior",
			flags: flagUse{Name: true, GetPrior: true},
			want:  OpGetPrior,
		},
		{
			name:    "get prior with prior",
			flags:   flagUse{Name: true, GetPrior: true, Prior: true},
			wantErr: "--get-prior cannot be used with --prior",
		},
		{
			name:    "get prior with likelihood and evidence",
			flags:   flagUse{Name: true, GetPrior: true, Likelihood: true, Evidence: true},
			wantErr: "--get-prior cannot be used with --likelihood, --evidence",
		},
		{
			name:  "set prior",
			flags: flagUse{Name: true, SetPrior: true, Prior: true},
			want:  OpSetPrior,
		},
		{
			name:    "set prior without prior",
			flags:   flagUse{Name: true, SetPrior: true},
			wantErr: "--set-prior requires --prior",
		},
		{
			name:    "set prior with update",
			flags:   flagUse{Name: true, SetPrior: true, Prior: true, UpdatePrior: true},
			wantErr: "--set-prior cannot be used with --update-prior",
		},
		{
			name:  "remove prior",
			flags: flagUse{Name: true, RemovePrior: true},
			want:  OpRemovePrior,
		},
		{
			name:    "remove prior with likelihood-not",
			flags:   flagUse{Name: true, RemovePrior: true, LikelihoodNot: true},
			wantErr: "--remove-prior cannot be used with --likelihood-not",
		},
		{
			name:  "wizard without name",
			flags: flagUse{Wizard: true},
			want:  OpWizard,
		},
		{
			name:  "wizard with name",
			flags: flagUse{Wizard: true, Name: true},
			want:  OpWizard,
		},
		{
			name:    "wizard with prior",
			flags:   flagUse{Wizard: true, Prior: true},
			wantErr: "--wizard cannot be used with --prior",
		},
		{
			name:    "two modes",
			flags:   flagUse{Name: true, GetPrior: true, RemovePrior: true},
			wantErr: "--get-prior and --remove-prior cannot be used together",
		},
		{
			name:    "three modes",
			flags:   flagUse{Name: true, GetPrior: true, SetPrior: true, Wizard: true},
			wantErr: "--get-prior and --set-prior and --wizard cannot be used together",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveOperation(tt.flags)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error %q, got operation %s", tt.wantErr, got)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("error = %q, want %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveOperation() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseUpdateHypothesis(t *testing.T) {
	tests := []struct {
		input   string
		want    UpdateHypothesis
		wantErr bool
	}{
		{"u", Update, false},
		{"update", Update, false},
		{"Update", Update, false},
		{"n", NoUpdate, false},
		{"no-update", NoUpdate, false},
		{"NoUpdate", NoUpdate, false},
		{"yes", NoUpdate, true},
		{"", NoUpdate, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUpdateHypothesis(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseUpdateHypothesis(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseUpdateHypothesis(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestOperationString(t *testing.T) {
	want := map[Operation]string{
		OpCompute:     "compute",
		OpGetPrior:    "get-prior",
		OpSetPrior:    "set-prior",
		OpRemovePrior: "remove-prior",
		OpWizard:      "wizard",
	}
	for op, s := range want {
		if op.String() != s {
			t.Errorf("Operation(%d).String() = %q, want %q", op, op.String(), s)
		}
	}
}
