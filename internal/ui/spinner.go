package ui

// spinner.go runs short blocking operations between TUI screens (health
// check, reference data, batch rating lookups) behind a bubbles spinner.

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrSpinnerCancelled is returned when the user aborts with ctrl+c
var ErrSpinnerCancelled = errors.New("cancelled")

type actionDoneMsg struct {
	err error
}

type blockingSpinnerModel struct {
	spinner spinner.Model
	title   string
	run     func() error
	cancel  context.CancelFunc
	done    bool
	err     error
}

// RunWithSpinner runs action while a spinner is shown and returns its error.
// ctrl+c cancels the context handed to action and returns ErrSpinnerCancelled
// without waiting for it.
//
//	var subjects []models.Subject
//	err := RunWithSpinner(ctx, "Loading subjects...", func(ctx context.Context) (err error) {
//	    subjects, err = client.Subjects(ctx)
//	    return err
//	})
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := blockingSpinnerModel{
		spinner: NewAppSpinner(),
		title:   title,
		run:     func() error { return action(ctx) },
		cancel:  cancel,
	}

	finalModel, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ErrSpinnerCancelled
		}
		return fmt.Errorf("spinner program error: %w", err)
	}
	return finalModel.(blockingSpinnerModel).err
}

func (m blockingSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return actionDoneMsg{err: m.run()}
	})
}

func (m blockingSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancel()
			m.done = true
			m.err = ErrSpinnerCancelled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m blockingSpinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), RenderNormal(m.title))
}
