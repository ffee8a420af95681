package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/priorlabs/tabpfn-cli/internal/password"
)

// Terminal renders the onboarding prompts with huh and lipgloss. When stdin
// is not a terminal the prompts read plain lines instead, so answers can be
// piped in.
type Terminal struct {
	in         io.Reader
	out        io.Writer
	accessible bool

	// Shared by every line prompt so piped input is never read ahead and lost
	lines *bufio.Reader
}

func NewTerminal() *Terminal {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return NewAccessibleTerminal(os.Stdin, os.Stdout)
	}
	return &Terminal{
		in:  os.Stdin,
		out: os.Stdout,
	}
}

// NewAccessibleTerminal reads plain lines from in and writes to out.
func NewAccessibleTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:         in,
		out:        out,
		accessible: true,
		lines:      bufio.NewReader(in),
	}
}

func (t *Terminal) Out() io.Writer {
	return t.out
}

func (t *Terminal) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(t.accessible).
		WithInput(t.in).
		WithOutput(t.out).
		WithShowHelp(false)

	err := form.RunWithContext(ctx)
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}
	return interrupted(err)
}

func (t *Terminal) Input(ctx context.Context, title string, description string) (string, error) {
	if t.accessible {
		return t.lineInput(ctx, title, description)
	}

	var value string
	err := t.run(ctx, huh.NewInput().
		Title(title).
		Description(description).
		Value(&value))
	return value, err
}

func (t *Terminal) Password(ctx context.Context, title string) (string, error) {
	if t.accessible {
		// No tty to turn echo off on, the line is read as is
		return t.lineInput(ctx, title, "")
	}

	var value string
	err := t.run(ctx, huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value))
	return value, err
}

func (t *Terminal) Confirm(ctx context.Context, title string, description string, affirmative bool) (bool, error) {
	if t.accessible {
		return t.lineConfirm(ctx, title, description, affirmative)
	}

	value := affirmative
	err := t.run(ctx, huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&value))
	return value, err
}

// Select shows options and returns the Key of the chosen one. selected is
// preselected when it matches a key.
func (t *Terminal) Select(ctx context.Context, title string, options []Option, selected string) (string, error) {
	if t.accessible {
		return t.lineSelect(ctx, title, options, selected)
	}

	huhOptions := make([]huh.Option[string], 0, len(options))
	for _, option := range options {
		huhOptions = append(huhOptions, huh.NewOption(option.Label, option.Key))
	}

	value := selected
	err := t.run(ctx, huh.NewSelect[string]().
		Title(title).
		Options(huhOptions...).
		Value(&value))
	return value, err
}

func (t *Terminal) Heading(title string) {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, TitleStyle.Render(title))
}

func (t *Terminal) Step(number int, total int, title string) {
	fmt.Fprintln(t.out)
	fmt.Fprintf(t.out, "%s - %s\n", StepStyle.Render(fmt.Sprintf("Step %d/%d", number, total)), title)
}

func (t *Terminal) Print(message string) {
	fmt.Fprintln(t.out, message)
}

func (t *Terminal) Info(message string) {
	fmt.Fprintln(t.out, InfoStyle.Render(message))
}

func (t *Terminal) Success(message string) {
	fmt.Fprintln(t.out, SuccessStyle.Render("✓ "+message))
}

func (t *Terminal) Warn(message string) {
	fmt.Fprintln(t.out, WarningStyle.Render("⚠ "+message))
}

func (t *Terminal) Fail(message string) {
	fmt.Fprintln(t.out, ErrorStyle.Render("✗ "+message))
}

// Requirements lists what a password needs before the user has typed one.
func (t *Terminal) Requirements(requirements []password.Requirement) {
	fmt.Fprintln(t.out, "  Requirements:")
	for _, req := range requirements {
		fmt.Fprintf(t.out, "    %s %s\n", MutedStyle.Render("•"), req.Label)
	}
}

// RequirementStatus marks each requirement as met or still missing.
func (t *Terminal) RequirementStatus(results []password.Result) {
	fmt.Fprintln(t.out, "  Requirements:")
	for _, res := range results {
		if res.Met {
			fmt.Fprintf(t.out, "    %s %s\n", SuccessStyle.Render("✓"), res.Label)
		} else {
			fmt.Fprintf(t.out, "    %s %s\n", MutedStyle.Render("•"), MutedStyle.Render(res.Label))
		}
	}
}
