// Package tui provides the Bubble Tea integration for the racer.
// It drives the frame loop, maps keys to game actions, paints the screen
// buffer with lipgloss and hosts the menu, scoreboard and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. It carries the time the
// tick fired, which the game model turns into a frame timestamp.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after one frame.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// since returns the time between start and a tick, never negative.
func since(start time.Time, tick TickMsg) time.Duration {
	d := time.Time(tick).Sub(start)
	if d < 0 {
		return 0
	}
	return d
}
