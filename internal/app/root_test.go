package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/ask-bayes/internal/wizard"
)

// setupHome points the config directory at a fresh temp dir.
func setupHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ASK_BAYES_HOME", dir)
	t.Setenv("NO_COLOR", "1")
	return dir
}

// execute runs a fresh command tree with args.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	if RootCmd.Use != "ask-bayes" {
		t.Errorf("expected Use to be 'ask-bayes', got '%s'", RootCmd.Use)
	}
	if RootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if RootCmd.Long == "" {
		t.Error("expected Long description to be set")
	}
	if !RootCmd.SilenceUsage {
		t.Error("expected SilenceUsage to be true")
	}
	if !RootCmd.SilenceErrors {
		t.Error("expected SilenceErrors to be true")
	}
	if RootCmd.SuggestionsMinimumDistance != 2 {
		t.Errorf("SuggestionsMinimumDistance = %d, want 2", RootCmd.SuggestionsMinimumDistance)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	found := false
	for _, cmd := range RootCmd.Commands() {
		if cmd.Name() == "batch" {
			found = true
		}
	}
	if !found {
		t.Error("expected command 'batch' to be registered")
	}
}

func TestRootCommandFlags(t *testing.T) {
	local := map[string]string{
		"name":           "n",
		"prior":          "p",
		"likelihood":     "l",
		"likelihood-not": "",
		"evidence":       "e",
		"update-prior":   "u",
		"get-prior":      "g",
		"set-prior":      "s",
		"remove-prior":   "r",
		"wizard":         "w",
	}
	for name, short := range local {
		flag := RootCmd.Flags().Lookup(name)
		if flag == nil {
			t.Errorf("expected --%s flag to be registered", name)
			continue
		}
		if flag.Shorthand != short {
			t.Errorf("--%s shorthand = %q, want %q", name, flag.Shorthand, short)
		}
		if flag.Usage == "" {
			t.Errorf("expected --%s flag to have usage text", name)
		}
	}

	for _, name := range []string{"output", "db", "backend", "config-dir", "verbose"} {
		if RootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent --%s flag to be registered", name)
		}
	}
}

func TestStorePath(t *testing.T) {
	home := setupHome(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "default sqlite",
			args: []string{"-n", "rain", "-g"},
			want: filepath.Join(home, "hypotheses.db"),
		},
		{
			name: "default badger",
			args: []string{"-n", "rain", "-g", "--backend", "badger"},
			want: filepath.Join(home, "hypotheses.badger"),
		},
		{
			name: "custom path",
			args: []string{"-n", "rain", "-g", "--db", "/tmp/custom.db"},
			want: "/tmp/custom.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOptions()
			cmd := buildRootCmd(o)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags: %v", err)
			}
			if err := o.setup(cmd); err != nil {
				t.Fatalf("setup: %v", err)
			}
			if got := o.storePath(); got != tt.want {
				t.Errorf("storePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHelp(t *testing.T) {
	setupHome(t)
	out, _, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "--likelihood-not") {
		t.Errorf("expected help to list --likelihood-not, got:\n%s", out)
	}
}

func TestExecute_UnknownFlag(t *testing.T) {
	setupHome(t)
	_, _, err := execute(t, "--no-such-flag")
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

// fakePrompter answers the wizard from fixed values and records the
// defaults it was offered.
type fakePrompter struct {
	inputs   []string
	evidence string
	update   bool
	defaults []string
}

func (f *fakePrompter) Input(title, def string, validate func(string) error) (string, error) {
	f.defaults = append(f.defaults, def)
	if len(f.inputs) == 0 {
		return "", errors.New("no more input")
	}
	answer := f.inputs[0]
	f.inputs = f.inputs[1:]
	if answer == "" {
		answer = def
	}
	return answer, validate(answer)
}

func (f *fakePrompter) Select(title string, options []string, def string) (string, error) {
	return f.evidence, nil
}

func (f *fakePrompter) Confirm(title string, def bool) (bool, error) {
	return f.update, nil
}

func withPrompter(t *testing.T, p wizard.Prompter) {
	t.Helper()
	old := newPrompter
	newPrompter = func() wizard.Prompter { return p }
	t.Cleanup(func() { newPrompter = old })
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}
