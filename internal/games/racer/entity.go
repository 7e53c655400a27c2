package racer

import "github.com/vovakirdan/tui-racer/internal/core"

// Entity colors
const (
	VehicleColor  = core.ColorBrightGreen
	WindowColor   = core.ColorGreen
	WheelColor    = core.ColorBlack
	ObstacleColor = core.ColorBrightRed
	RoadColor     = core.ColorDarkGray
	BorderColor   = core.ColorBlack
	LaneLineColor = core.ColorGray
)

// Vehicle is the player-controlled car. Its rectangle is derived from the lane.
type Vehicle struct {
	Lane   int
	Width  float64
	Height float64
	Color  core.Color
}

// Obstacle is a block scrolling down one lane.
// Lane records where it spawned; movement only changes Y.
type Obstacle struct {
	X, Y          float64
	Width, Height float64
	Lane          int
	Color         core.Color
}

// Rect returns the collision rectangle for this obstacle.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.Width, o.Height)
}
