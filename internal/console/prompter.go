// Package console defines the prompt/answer contract the screens are written
// against and the styled output they print with.
package console

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrAborted is returned by a Prompter when the operator cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Choice is one entry of a pick list.
type Choice struct {
	Title string
	Value string
}

// Prompter obtains answers from the operator. Every call blocks until the
// operator answers or ctx is done.
type Prompter interface {
	// Select returns the Value of one choice. The list can be filtered by typing.
	Select(ctx context.Context, message string, choices []Choice) (string, error)
	// MultiSelect returns the Values of all toggled choices, possibly none.
	MultiSelect(ctx context.Context, message string, choices []Choice) ([]string, error)
	// Input returns a line of text, pre-filled with initial.
	Input(ctx context.Context, message, initial string) (string, error)
	// Password returns a line of text without echoing it.
	Password(ctx context.Context, message string) (string, error)
	// Confirm returns a yes/no answer. The default is no.
	Confirm(ctx context.Context, message string) (bool, error)
}
