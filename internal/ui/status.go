package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type actionDone struct {
	err error
}

// statusModel spins while a single blocking call runs.
type statusModel struct {
	title       string
	spinner     spinner.Model
	action      func() error
	err         error
	done        bool
	interrupted bool
}

func newStatusModel(title string, action func() error) statusModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return statusModel{
		title:   title,
		spinner: s,
		action:  action,
	}
}

func (m statusModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return actionDone{err: m.action()}
	})
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionDone:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

func (m statusModel) View() string {
	if m.done || m.interrupted {
		return ""
	}
	return fmt.Sprintf("%s %s...\n", m.spinner.View(), m.title)
}

// Status runs action while showing a spinner titled title. The action's
// context is cancelled if the user presses ctrl+c.
func (t *Terminal) Status(ctx context.Context, title string, action func(ctx context.Context) error) error {

	actionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if t.accessible {
		fmt.Fprintf(t.out, "%s...\n", title)
		return interrupted(action(actionCtx))
	}

	model := newStatusModel(title, func() error {
		return action(actionCtx)
	})

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	final, err := program.Run()
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}
	if err != nil {
		return interrupted(err)
	}

	result := final.(statusModel)
	if result.interrupted {
		return ErrInterrupted
	}

	return interrupted(result.err)
}
