package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPageStateStatusExpiry(t *testing.T) {
	var p PageState

	p.SetStatus("Exported", time.Minute)
	p.ExpireStatus(time.Now())
	assert.Equal(t, "Exported", p.StatusText())

	p.ExpireStatus(time.Now().Add(2 * time.Minute))
	assert.Empty(t, p.StatusText())

	p.SetFailure("Export failed", 0)
	p.ExpireStatus(time.Now().Add(24 * time.Hour))
	assert.Equal(t, "Export failed", p.StatusText(), "sticky status never expires")
	assert.True(t, p.status.failure)
}

func TestPageStateResize(t *testing.T) {
	p := NewPageState(DefaultLayout())
	assert.False(t, p.Resize(120, 36))
	assert.True(t, p.Resize(80, 24))
	assert.Equal(t, NewLayout(80, 24), p.Layout)
}
