package wizard

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// HuhPrompter prompts with huh forms. Without a terminal on stdin it falls
// back to huh's line-based accessible mode.
type HuhPrompter struct {
	accessible bool
	in         *lineReader
	out        io.Writer
}

// NewHuhPrompter returns a prompter for the current process.
func NewHuhPrompter() *HuhPrompter {
	return newHuhPrompter(os.Stdin, os.Stdout, !isatty.IsTerminal(os.Stdin.Fd()))
}

func newHuhPrompter(in io.Reader, out io.Writer, accessible bool) *HuhPrompter {
	return &HuhPrompter{
		accessible: accessible,
		in:         &lineReader{r: bufio.NewReader(in)},
		out:        out,
	}
}

// lineReader is shared by every form. A Read never returns bytes past the
// first newline, so a form consumes only its own answer.
type lineReader struct {
	r   *bufio.Reader
	n   int
	eof bool
}

func (l *lineReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := l.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				l.eof = true
			}
			if n > 0 {
				break
			}
			return 0, err
		}
		p[n] = b
		n++
		if b == '\n' {
			break
		}
	}
	l.n += n
	return n, nil
}

func (h *HuhPrompter) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).WithAccessible(h.accessible)
	if !h.accessible {
		// The TUI needs the terminal file itself for raw mode.
		return form.Run()
	}

	read := h.in.n
	if err := form.WithInput(h.in).WithOutput(h.out).Run(); err != nil {
		return err
	}
	// Accessible mode keeps the default on EOF; an answer that never came is
	// an error.
	if h.in.eof && h.in.n == read {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// Input asks for free text, prefilled with def.
func (h *HuhPrompter) Input(title, def string, validate func(string) error) (string, error) {
	value := def
	check := validate
	if h.accessible && def != "" {
		// An empty line takes the default.
		check = func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			return validate(s)
		}
	}
	field := huh.NewInput().
		Title(title).
		Value(&value).
		Validate(check)
	if err := h.run(field); err != nil {
		return "", err
	}
	return value, nil
}

// Select asks for one of options.
func (h *HuhPrompter) Select(title string, options []string, def string) (string, error) {
	value := def
	field := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&value)
	if err := h.run(field); err != nil {
		return "", err
	}
	return value, nil
}

// Confirm asks a yes/no question.
func (h *HuhPrompter) Confirm(title string, def bool) (bool, error) {
	value := def
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)
	if err := h.run(field); err != nil {
		return false, err
	}
	return value, nil
}
