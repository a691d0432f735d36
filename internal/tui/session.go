package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/resttimer"
	"github.com/misterclayt0n/ironlog/internal/session"
	"github.com/misterclayt0n/ironlog/internal/workout"
)

type setRef struct {
	exerciseID string
	setID      string
	completed  bool
}

// SessionModel is a live view of the active workout. Sets can be ticked off
// from here, which starts the rest countdown like the complete-set command.
type SessionModel struct {
	ctx    context.Context
	ctrl   *session.Controller
	timer  *resttimer.Timer
	now    func() time.Time
	w      *models.Workout
	rows   []setRef
	cursor int
}

func NewSessionModel(ctx context.Context, ctrl *session.Controller, timer *resttimer.Timer, now func() time.Time) SessionModel {
	if now == nil {
		now = time.Now
	}
	m := SessionModel{ctx: ctx, ctrl: ctrl, timer: timer, now: now}
	m.refresh()
	return m
}

func (m *SessionModel) refresh() {
	m.w = m.ctrl.Workout()
	m.rows = nil
	if m.w == nil {
		return
	}
	for _, ex := range m.w.Exercises {
		for _, s := range ex.Sets {
			m.rows = append(m.rows, setRef{exerciseID: ex.ID, setID: s.ID, completed: s.Completed})
		}
	}
	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
}

func (m SessionModel) Init() tea.Cmd {
	return tick()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		expired := m.timer.Tick(m.ctx)
		m.refresh()
		if m.w == nil {
			return m, tea.Quit
		}
		if expired {
			return m, tea.Batch(tea.Println("⏰ Rest over"), tick())
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case " ", "enter", "x":
			if m.cursor < len(m.rows) {
				r := m.rows[m.cursor]
				m.ctrl.SetCompleted(r.exerciseID, r.setID, !r.completed)
				m.refresh()
			}
		case "s":
			m.timer.Skip(m.ctx)
		}
	}
	return m, nil
}

func (m SessionModel) View() string {
	if m.w == nil {
		return dimStyle.Render("No active workout.") + "\n"
	}

	var b strings.Builder
	elapsed := workout.Duration(m.w, m.now())
	b.WriteString(titleStyle.Render("Workout"))
	b.WriteString("  ")
	b.WriteString(clockStyle.Render(workout.FormatDuration(elapsed)))
	fmt.Fprintf(&b, "  %s\n\n", dimStyle.Render(fmt.Sprintf("%d sets done • %.1f kg", workout.CompletedSets(m.w), workout.TotalVolume(m.w))))

	if len(m.w.Exercises) == 0 {
		b.WriteString(dimStyle.Render("No exercises yet. Add one with `ironlog add-exercise`."))
		b.WriteString("\n")
	}

	row := 0
	for _, ex := range m.w.Exercises {
		b.WriteString(ex.Name)
		b.WriteString("\n")
		for _, s := range ex.Sets {
			pointer := "  "
			if row == m.cursor {
				pointer = cursorStyle.Render("> ")
			}
			box := "[ ]"
			line := fmt.Sprintf("%s Set %d: %g reps @ %gkg", box, s.SetNumber, s.CurrentReps, s.CurrentWeight)
			if s.PreviousReps != nil && s.PreviousWeight != nil {
				line += dimStyle.Render(fmt.Sprintf("  (prev %g @ %gkg)", *s.PreviousReps, *s.PreviousWeight))
			}
			if s.Completed {
				line = doneStyle.Render(strings.Replace(line, box, "[x]", 1))
			}
			b.WriteString("  " + pointer + line + "\n")
			row++
		}
	}

	if m.timer.Active() {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Rest "))
		b.WriteString(clockStyle.Render(workout.FormatDuration(m.timer.Remaining())))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ move • space toggle set • s skip rest • q quit"))
	b.WriteString("\n")
	return b.String()
}
