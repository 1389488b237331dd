package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestBlockingSpinnerSettles(t *testing.T) {
	boom := errors.New("boom")
	m := blockingSpinnerModel{spinner: NewAppSpinner(), title: "Working", run: func() error { return boom }}

	next, cmd := m.Update(actionDoneMsg{err: boom})
	final := next.(blockingSpinnerModel)
	assert.ErrorIs(t, final.err, boom)
	assert.Empty(t, final.View())
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBlockingSpinnerCtrlCCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := blockingSpinnerModel{spinner: NewAppSpinner(), title: "Working", cancel: cancel}
	assert.Contains(t, m.View(), "Working")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.ErrorIs(t, next.(blockingSpinnerModel).err, ErrSpinnerCancelled)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
