package planprog

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/teatest"
)

func TestModel_QuitsWhenPipelineFinishes(t *testing.T) {
	resp := &contract.PlanResponse{Zip: "10001"}
	run := func() tea.Msg { return doneMsg{resp: resp} }

	d := teatest.New(t, newModel("10001", run, nil))
	d.DrainInit()

	require.True(t, d.Quitting)
	m := d.Model.(model)
	assert.True(t, m.done)
	assert.Same(t, resp, m.resp)
	assert.NoError(t, m.err)
	assert.Empty(t, d.View())
}

func TestModel_CarriesPipelineError(t *testing.T) {
	bad := errors.New("venue search failed")
	run := func() tea.Msg { return doneMsg{err: bad} }

	d := teatest.New(t, newModel("10001", run, nil))
	d.DrainInit()

	require.True(t, d.Quitting)
	m := d.Model.(model)
	assert.ErrorIs(t, m.err, bad)
	assert.Nil(t, m.resp)
}

func TestModel_ViewShowsLocation(t *testing.T) {
	d := teatest.New(t, newModel("94110", nil, nil))
	d.DrainInit()

	assert.Contains(t, d.View(), "Planning Saturday near 94110")
	assert.False(t, d.Quitting)
}

func TestModel_CtrlCCancelsThenWaits(t *testing.T) {
	cancelled := false
	cancel := context.CancelFunc(func() { cancelled = true })

	// A run command slower than the drain timeout stands in for a pipeline
	// still in flight.
	run := func() tea.Msg {
		time.Sleep(50 * time.Millisecond)
		return doneMsg{err: context.Canceled}
	}

	d := teatest.New(t, newModel("10001", run, cancel))
	d.DrainInit()

	d.PressCtrlC()
	require.True(t, cancelled)
	assert.False(t, d.Quitting)
	assert.Contains(t, d.View(), "Cancelling")

	// The pipeline reports back; the program exits with its error.
	d.Send(doneMsg{err: context.Canceled})
	require.True(t, d.Quitting)
	m := d.Model.(model)
	assert.ErrorIs(t, m.err, context.Canceled)
}

func TestModel_SecondCtrlCAbandonsTheWait(t *testing.T) {
	d := teatest.New(t, newModel("10001", nil, nil))
	d.DrainInit()

	d.PressCtrlC()
	require.False(t, d.Quitting)

	d.PressCtrlC()
	require.True(t, d.Quitting)
	m := d.Model.(model)
	assert.ErrorIs(t, m.err, context.Canceled)
}
