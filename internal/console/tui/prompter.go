// Package tui implements console.Prompter with bubbletea programs, one per prompt.
package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-faster/errors"

	"github.com/xenking/ercm/internal/console"
)

var _ console.Prompter = (*Prompter)(nil)

// Prompter runs each question as a short-lived bubbletea program.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// New returns a Prompter that reads keys from in and renders to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

func (p *Prompter) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil, console.ErrAborted
		}
		return nil, errors.Wrap(err, "run prompt")
	}
	return final, nil
}

func (p *Prompter) Select(ctx context.Context, message string, choices []console.Choice) (string, error) {
	if len(choices) == 0 {
		return "", errors.Wrap(console.ErrAborted, "no choices")
	}
	final, err := p.run(ctx, newSelectModel(message, choices))
	if err != nil {
		return "", err
	}
	m := final.(selectModel)
	if !m.done {
		return "", console.ErrAborted
	}
	return m.chosen.value, nil
}

func (p *Prompter) MultiSelect(ctx context.Context, message string, choices []console.Choice) ([]string, error) {
	final, err := p.run(ctx, newMultiSelectModel(message, choices))
	if err != nil {
		return nil, err
	}
	m := final.(multiSelectModel)
	if !m.done {
		return nil, console.ErrAborted
	}
	return m.Values(), nil
}

func (p *Prompter) Input(ctx context.Context, message, initial string) (string, error) {
	return p.input(ctx, message, initial, false)
}

func (p *Prompter) Password(ctx context.Context, message string) (string, error) {
	return p.input(ctx, message, "", true)
}

func (p *Prompter) input(ctx context.Context, message, initial string, secret bool) (string, error) {
	final, err := p.run(ctx, newInputModel(message, initial, secret))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if !m.done {
		return "", console.ErrAborted
	}
	return m.Value(), nil
}

func (p *Prompter) Confirm(ctx context.Context, message string) (bool, error) {
	final, err := p.run(ctx, newConfirmModel(message))
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if !m.done {
		return false, console.ErrAborted
	}
	return m.yesSelected, nil
}
