package racer

import (
	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
)

// Board is the logical playfield, measured in pixels.
type Board struct {
	Width       float64
	Height      float64
	Lanes       int
	RoadPadding float64
}

// NewBoard creates a board from its config section.
func NewBoard(cfg config.BoardConfig) Board {
	return Board{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Lanes:       core.Max(1, cfg.Lanes),
		RoadPadding: cfg.RoadPadding,
	}
}

// LaneWidth returns the width of one lane.
func (b Board) LaneWidth() float64 {
	return b.Width / float64(b.Lanes)
}

// LaneCenterX returns the horizontal center of a lane.
func (b Board) LaneCenterX(lane int) float64 {
	w := b.LaneWidth()
	return float64(lane)*w + w/2
}

// ClampLane keeps a lane index inside [0, Lanes).
func (b Board) ClampLane(lane int) int {
	return core.Clamp(lane, 0, b.Lanes-1)
}

// CenterLane is where the vehicle starts every run.
func (b Board) CenterLane() int {
	return b.Lanes / 2
}

// Rect returns the full board rectangle.
func (b Board) Rect() core.Rect {
	return core.NewRect(0, 0, b.Width, b.Height)
}
