// Package planprog runs the planning pipeline behind a small terminal
// progress view: a spinner while the forecast, venue search, and delivery
// steps execute, then a clean exit so the caller can print the result.
package planprog

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Keto24/saturday-planner/internal/cli/formatter"
	"github.com/Keto24/saturday-planner/internal/contract"
	"github.com/Keto24/saturday-planner/internal/service"
)

// doneMsg carries the pipeline result back into the program.
type doneMsg struct {
	resp *contract.PlanResponse
	err  error
}

type model struct {
	spinner spinner.Model
	zip     string
	run     tea.Cmd
	cancel  context.CancelFunc

	cancelled bool
	done      bool
	resp      *contract.PlanResponse
	err       error
}

func newModel(zip string, run tea.Cmd, cancel context.CancelFunc) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(formatter.ColorPurple)
	return model{spinner: s, zip: zip, run: run, cancel: cancel}
}

func (m model) Init() tea.Cmd {
	if m.run == nil {
		return m.spinner.Tick
	}
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.resp = msg.resp
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			if m.cancelled {
				// Second press: stop waiting for the pipeline.
				m.done = true
				m.err = context.Canceled
				return m, tea.Quit
			}
			m.cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}
	line := fmt.Sprintf("Planning Saturday near %s...", m.zip)
	if m.cancelled {
		line = "Cancelling..."
	}
	return fmt.Sprintf("\n  %s %s\n", m.spinner.View(), formatter.Dim(line))
}

// Run executes the planning pipeline behind the progress view and returns
// its result. Ctrl+C cancels the pipeline's context and waits for it to
// wind down; a second press abandons the wait.
func Run(ctx context.Context, plans service.PlanService, req contract.PlanRequest) (*contract.PlanResponse, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	run := func() tea.Msg {
		resp, err := plans.Plan(runCtx, req)
		return doneMsg{resp: resp, err: err}
	}

	p := tea.NewProgram(newModel(req.Zip, run, cancel), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := final.(model)
	return m.resp, m.err
}
