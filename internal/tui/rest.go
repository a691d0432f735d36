package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/misterclayt0n/ironlog/internal/resttimer"
	"github.com/misterclayt0n/ironlog/internal/workout"
)

// RestOutcome tells the caller how the countdown view ended.
type RestOutcome int

const (
	RestDetached RestOutcome = iota // Quit while the timer keeps running.
	RestFinished
	RestSkipped
)

// RestModel is a full-screen rest countdown.
type RestModel struct {
	ctx     context.Context
	timer   *resttimer.Timer
	bar     progress.Model
	left    time.Duration
	outcome RestOutcome
	err     error
}

func NewRestModel(ctx context.Context, timer *resttimer.Timer) RestModel {
	return RestModel{
		ctx:   ctx,
		timer: timer,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		left:  timer.Remaining(),
	}
}

func (m RestModel) Outcome() RestOutcome { return m.outcome }

func (m RestModel) Err() error { return m.err }

func (m RestModel) Init() tea.Cmd {
	return tick()
}

func (m RestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = max(msg.Width-10, 10)
		return m, nil

	case tickMsg:
		if m.timer.Tick(m.ctx) || !m.timer.Active() {
			m.left = 0
			m.outcome = RestFinished
			return m, tea.Quit
		}
		m.left = m.timer.Remaining()
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "s":
			if err := m.timer.Skip(m.ctx); err != nil {
				m.err = err
			}
			m.outcome = RestSkipped
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m RestModel) View() string {
	total := time.Duration(m.timer.State().Duration) * time.Second
	var frac float64
	if total > 0 {
		frac = 1 - float64(m.left)/float64(total)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Rest"))
	b.WriteString("  ")
	b.WriteString(clockStyle.Render(workout.FormatDuration(m.left)))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(frac))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(warningStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("s skip • q leave running"))
	b.WriteString("\n")
	return b.String()
}
