package racer

import "github.com/vovakirdan/tui-racer/internal/core"

// Canvas receives drawing commands in logical board pixels.
type Canvas interface {
	Clear()
	FillRect(r core.Rect, c core.Color)
	StrokeDashedLine(x0, y0, x1, y1, dash float64, c core.Color)
}

// laneDash is the on/off length of lane divider dashes.
const laneDash = 14

// Draw renders the simulation onto c. It only reads state.
func Draw(s *Sim, c Canvas) {
	c.Clear()
	drawRoad(s.Board(), c)
	for _, o := range s.Obstacles() {
		c.FillRect(o.Rect(), o.Color)
	}
	drawVehicle(s.VehicleRect(), s.Vehicle().Color, c)
}

// drawRoad paints the asphalt, the side borders and the dashed lane dividers.
func drawRoad(b Board, c Canvas) {
	c.FillRect(b.Rect(), RoadColor)

	c.FillRect(core.NewRect(0, 0, b.RoadPadding, b.Height), BorderColor)
	c.FillRect(core.NewRect(b.Width-b.RoadPadding, 0, b.RoadPadding, b.Height), BorderColor)

	for i := 1; i < b.Lanes; i++ {
		x := float64(i) * b.LaneWidth()
		c.StrokeDashedLine(x, 0, x, b.Height, laneDash, LaneLineColor)
	}
}

// drawVehicle paints the car body with two windows and four wheels.
func drawVehicle(r core.Rect, body core.Color, c Canvas) {
	c.FillRect(r, body)

	// Windows
	c.FillRect(core.NewRect(r.X+10, r.Y+12, r.W-20, 18), WindowColor)
	c.FillRect(core.NewRect(r.X+10, r.Bottom()-30, r.W-20, 18), WindowColor)

	// Wheels
	c.FillRect(core.NewRect(r.X-6, r.Y+14, 6, 18), WheelColor)
	c.FillRect(core.NewRect(r.Right(), r.Y+14, 6, 18), WheelColor)
	c.FillRect(core.NewRect(r.X-6, r.Bottom()-32, 6, 18), WheelColor)
	c.FillRect(core.NewRect(r.Right(), r.Bottom()-32, 6, 18), WheelColor)
}
