package wizard

import (
	"context"

	"github.com/priorlabs/tabpfn-cli/internal/password"
	"github.com/priorlabs/tabpfn-cli/internal/ui"
)

// UI is everything the wizard needs from a terminal. Prompts return
// ui.ErrInterrupted when the user aborts.
type UI interface {
	Input(ctx context.Context, title string, description string) (string, error)
	Password(ctx context.Context, title string) (string, error)
	Confirm(ctx context.Context, title string, description string, affirmative bool) (bool, error)
	Select(ctx context.Context, title string, options []ui.Option, selected string) (string, error)
	Status(ctx context.Context, title string, action func(ctx context.Context) error) error

	Heading(title string)
	Step(number int, total int, title string)
	Print(message string)
	Info(message string)
	Success(message string)
	Warn(message string)
	Fail(message string)

	Requirements(requirements []password.Requirement)
	RequirementStatus(results []password.Result)
}
