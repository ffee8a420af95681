package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// readLine reads one answer from the shared line reader. End of input counts
// as the user leaving, so scripted runs can never spin on empty answers.
func (t *Terminal) readLine(ctx context.Context) (string, error) {

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	type result struct {
		line string
		err  error
	}

	done := make(chan result, 1)
	go func() {
		line, err := t.lines.ReadString('\n')
		done <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	case r := <-done:
		line := strings.TrimRight(r.line, "\r\n")
		if r.err != nil {
			if errors.Is(r.err, io.EOF) && len(line) > 0 {
				return line, nil
			}
			return "", fmt.Errorf("%w: %w", ErrInterrupted, r.err)
		}
		return line, nil
	}
}

func (t *Terminal) prompt(title string, description string, hint string) {
	fmt.Fprintln(t.out, TitleStyle.Render(title))
	if len(description) > 0 {
		fmt.Fprintln(t.out, MutedStyle.Render(description))
	}
	if len(hint) > 0 {
		fmt.Fprintf(t.out, "%s ", hint)
	}
	fmt.Fprint(t.out, "> ")
}

func (t *Terminal) lineInput(ctx context.Context, title string, description string) (string, error) {
	t.prompt(title, description, "")
	return t.readLine(ctx)
}

func (t *Terminal) lineConfirm(ctx context.Context, title string, description string, affirmative bool) (bool, error) {

	hint := "[y/N]"
	if affirmative {
		hint = "[Y/n]"
	}

	for {
		t.prompt(title, description, hint)

		answer, err := t.readLine(ctx)
		if err != nil {
			return affirmative, err
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return affirmative, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		fmt.Fprintln(t.out, WarningStyle.Render("Please answer y or n."))
	}
}

// lineSelect accepts an option's key or its label. An empty answer picks
// selected when it is one of the keys.
func (t *Terminal) lineSelect(ctx context.Context, title string, options []Option, selected string) (string, error) {

	for {
		fmt.Fprintln(t.out, TitleStyle.Render(title))
		for _, option := range options {
			marker := " "
			if option.Key == selected {
				marker = "*"
			}
			fmt.Fprintf(t.out, " %s [%s] %s\n", marker, option.Key, option.Label)
		}
		fmt.Fprint(t.out, "> ")

		answer, err := t.readLine(ctx)
		if err != nil {
			return selected, err
		}
		answer = strings.TrimSpace(answer)

		for _, option := range options {
			if len(answer) == 0 && option.Key == selected {
				return option.Key, nil
			}
			if len(answer) > 0 && (strings.EqualFold(answer, option.Key) || strings.EqualFold(answer, option.Label)) {
				return option.Key, nil
			}
		}

		fmt.Fprintln(t.out, WarningStyle.Render("Please pick one of the listed options."))
	}
}
