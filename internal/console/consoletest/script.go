// Package consoletest provides a scripted console.Prompter for tests.
package consoletest

import (
	"context"
	"fmt"
	"sync"

	"github.com/xenking/ercm/internal/console"
)

var _ console.Prompter = (*Script)(nil)

// Script answers prompts from a fixed queue.
//
// Select and Input answers are strings, MultiSelect answers are []string,
// Confirm answers are bools and an error entry is returned as is. A Select
// answer may name either a choice Value or its Title. Once the queue is
// drained every prompt returns console.ErrAborted.
type Script struct {
	mu      sync.Mutex
	answers []any
	asked   []string
}

// New returns a Script that plays answers in order.
func New(answers ...any) *Script {
	return &Script{answers: answers}
}

// Asked returns the messages of all prompts shown so far.
func (s *Script) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}

// Remaining returns the number of unplayed answers.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

func (s *Script) next(message string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, message)
	if len(s.answers) == 0 {
		return nil, console.ErrAborted
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if err, ok := a.(error); ok {
		return nil, err
	}
	return a, nil
}

func (s *Script) Select(_ context.Context, message string, choices []console.Choice) (string, error) {
	a, err := s.next(message)
	if err != nil {
		return "", err
	}
	want, ok := a.(string)
	if !ok {
		return "", fmt.Errorf("select %q: scripted answer %T is not a string", message, a)
	}
	for _, c := range choices {
		if c.Value == want {
			return c.Value, nil
		}
	}
	for _, c := range choices {
		if c.Title == want {
			return c.Value, nil
		}
	}
	return "", fmt.Errorf("select %q: no choice %q", message, want)
}

func (s *Script) MultiSelect(_ context.Context, message string, _ []console.Choice) ([]string, error) {
	a, err := s.next(message)
	if err != nil {
		return nil, err
	}
	values, ok := a.([]string)
	if !ok {
		return nil, fmt.Errorf("multiselect %q: scripted answer %T is not []string", message, a)
	}
	return values, nil
}

func (s *Script) Input(_ context.Context, message, _ string) (string, error) {
	a, err := s.next(message)
	if err != nil {
		return "", err
	}
	v, ok := a.(string)
	if !ok {
		return "", fmt.Errorf("input %q: scripted answer %T is not a string", message, a)
	}
	return v, nil
}

func (s *Script) Password(ctx context.Context, message string) (string, error) {
	return s.Input(ctx, message, "")
}

func (s *Script) Confirm(_ context.Context, message string) (bool, error) {
	a, err := s.next(message)
	if err != nil {
		return false, err
	}
	v, ok := a.(bool)
	if !ok {
		return false, fmt.Errorf("confirm %q: scripted answer %T is not a bool", message, a)
	}
	return v, nil
}
