package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// ErrInterrupted is returned by every prompt the user aborted, whether with
// ctrl+c inside a form or spinner, with SIGINT to the process, or by ending
// piped input.
var ErrInterrupted = errors.New("interrupted")

// interrupted converts the abort errors of huh, bubbletea and context into
// ErrInterrupted and passes everything else through.
func interrupted(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, huh.ErrUserAborted),
		errors.Is(err, huh.ErrTimeout),
		errors.Is(err, tea.ErrInterrupted),
		errors.Is(err, tea.ErrProgramKilled),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	return err
}

// IsInterrupted reports whether err means the user wants out.
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted) ||
		errors.Is(err, huh.ErrUserAborted) ||
		errors.Is(err, huh.ErrTimeout) ||
		errors.Is(err, context.Canceled)
}
