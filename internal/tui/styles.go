package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/misterclayt0n/ironlog/internal/resttimer"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	clockStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// tickMsg drives both views once per second.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(resttimer.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
