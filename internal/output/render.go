// Package output renders posterior reports for the terminal.
//
// Three formats are supported:
//   - table: bordered tables built with lipgloss
//   - json: machine-readable objects (arrays for batches)
//   - simple: the fixed "P(H) = x" template, one term per line
//
// Color is only emitted when stdout is a TTY and NO_COLOR is unset.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/ask-bayes/internal/bayes"
)

// Report is everything needed to present one posterior.
type Report struct {
	Name          string
	Prior         float64
	Likelihood    float64
	LikelihoodNot float64
	Evidence      bayes.Evidence
	Posterior     float64
}

// BatchRow is one batch entry: a report, or the error that prevented it.
type BatchRow struct {
	Report
	Err error
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	posteriorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// styled applies s only when color is enabled.
func styled(s lipgloss.Style) lipgloss.Style {
	if IsColorEnabled() {
		return s
	}
	return lipgloss.NewStyle()
}

type jsonReport struct {
	Name                 string   `json:"name"`
	Prior                float64  `json:"prior"`
	Likelihood           float64  `json:"likelihood"`
	LikelihoodNull       float64  `json:"likelihood_null"`
	Evidence             string   `json:"evidence"`
	PosteriorProbability *float64 `json:"posterior_probability,omitempty"`
	Error                string   `json:"error,omitempty"`
}

func toJSON(r Report, err error) jsonReport {
	out := jsonReport{
		Name:           r.Name,
		Prior:          r.Prior,
		Likelihood:     r.Likelihood,
		LikelihoodNull: r.LikelihoodNot,
		Evidence:       r.Evidence.Label(),
	}
	if err != nil {
		out.Error = err.Error()
		return out
	}
	posterior := r.Posterior
	out.PosteriorProbability = &posterior
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// PosteriorLabel returns P(H|E) or P(H|¬E) for the hypothesis.
func PosteriorLabel(name string, evidence bayes.Evidence) string {
	if evidence == bayes.NotObserved {
		return fmt.Sprintf("P(%s|¬E)", name)
	}
	return fmt.Sprintf("P(%s|E)", name)
}

func simpleLines(r Report) []string {
	f := bayes.FormatProbability
	return []string{
		fmt.Sprintf("P(%s) = %s", r.Name, f(r.Prior)),
		fmt.Sprintf("P(E|%s) = %s", r.Name, f(r.Likelihood)),
		fmt.Sprintf("P(E|¬%s) = %s", r.Name, f(r.LikelihoodNot)),
		fmt.Sprintf("%s = %s", PosteriorLabel(r.Name, r.Evidence), f(r.Posterior)),
	}
}

// RenderReport writes a single posterior report in the given format.
func RenderReport(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, toJSON(r, nil))
	case FormatSimple:
		_, err := fmt.Fprintln(w, strings.Join(simpleLines(r), "\n"))
		return err
	}

	f := bayes.FormatProbability
	rows := [][]string{
		{fmt.Sprintf("P(%s)", r.Name), f(r.Prior)},
		{fmt.Sprintf("P(E|%s)", r.Name), f(r.Likelihood)},
		{fmt.Sprintf("P(E|¬%s)", r.Name), f(r.LikelihoodNot)},
		{"Evidence", r.Evidence.Label()},
		{PosteriorLabel(r.Name, r.Evidence), f(r.Posterior)},
	}
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Term", "Probability").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return styled(headerStyle).Padding(0, 1)
			case row == last:
				return styled(posteriorStyle).Padding(0, 1)
			}
			return base
		})

	_, err := fmt.Fprintln(w, t.String())
	return err
}

// RenderPrior writes a stored prior as `P(name) = X`, or as a JSON object.
func RenderPrior(w io.Writer, format Format, name string, value float64) error {
	if format == FormatJSON {
		return writeJSON(w, struct {
			Name  string  `json:"name"`
			Prior float64 `json:"prior"`
		}{name, value})
	}
	_, err := fmt.Fprintf(w, "P(%s) = %s\n", name, bayes.FormatProbability(value))
	return err
}

// RenderBatch writes every batch row, failed rows included.
func RenderBatch(w io.Writer, format Format, rows []BatchRow) error {
	switch format {
	case FormatJSON:
		out := make([]jsonReport, 0, len(rows))
		for _, row := range rows {
			out = append(out, toJSON(row.Report, row.Err))
		}
		return writeJSON(w, out)
	case FormatSimple:
		var sb strings.Builder
		for i, row := range rows {
			if i > 0 {
				sb.WriteString("\n")
			}
			if row.Err != nil {
				sb.WriteString(fmt.Sprintf("P(%s): error: %v\n", row.Name, row.Err))
				continue
			}
			sb.WriteString(strings.Join(simpleLines(row.Report), "\n"))
			sb.WriteString("\n")
		}
		_, err := io.WriteString(w, sb.String())
		return err
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No hypotheses found.")
		return err
	}

	f := bayes.FormatProbability
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Hypothesis", "P(H)", "P(E|H)", "P(E|¬H)", "Evidence", "Posterior")

	var failures []string
	for _, row := range rows {
		posterior := f(row.Posterior)
		if row.Err != nil {
			posterior = "error"
			failures = append(failures, fmt.Sprintf("%s: %v", row.Name, row.Err))
		}
		t.Row(row.Name, f(row.Prior), f(row.Likelihood), f(row.LikelihoodNot), row.Evidence.Label(), posterior)
	}
	t.StyleFunc(func(r, col int) lipgloss.Style {
		base := lipgloss.NewStyle().Padding(0, 1)
		switch {
		case r == table.HeaderRow:
			return styled(headerStyle).Padding(0, 1)
		case col == 5 && r >= 0 && r < len(rows) && rows[r].Err != nil:
			return styled(errorStyle).Padding(0, 1)
		}
		return base
	})

	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteString("\n")
	for _, failure := range failures {
		sb.WriteString(styled(errorStyle).Render(failure))
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
