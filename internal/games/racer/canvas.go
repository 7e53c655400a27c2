package racer

import (
	"math"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// cellAspect is how many columns match one row visually; terminal cells are
// roughly twice as tall as they are wide.
const cellAspect = 2.0

// glyphs picks the rune used to fill an area of a given color.
var glyphs = map[core.Color]rune{
	RoadColor:     ' ',
	BorderColor:   '░',
	WindowColor:   '▒',
	LaneLineColor: '┆',
}

// ScreenCanvas maps board pixels onto a region of a character screen,
// keeping the board's aspect ratio and centering it horizontally.
type ScreenCanvas struct {
	dst    *core.Screen
	board  Board
	scaleX float64 // Columns per pixel
	scaleY float64 // Rows per pixel
	offX   float64
	offY   float64
}

// NewScreenCanvas fits board into dst below the first top rows.
func NewScreenCanvas(dst *core.Screen, board Board, top int) *ScreenCanvas {
	rows := float64(core.Max(1, dst.Height()-top))
	cols := float64(core.Max(1, dst.Width()))

	scaleY := rows / board.Height
	scaleX := scaleY * cellAspect
	if board.Width*scaleX > cols {
		scaleX = cols / board.Width
		scaleY = scaleX / cellAspect
	}

	return &ScreenCanvas{
		dst:    dst,
		board:  board,
		scaleX: scaleX,
		scaleY: scaleY,
		offX:   math.Floor((cols - board.Width*scaleX) / 2),
		offY:   float64(top),
	}
}

// Clear blanks the board area.
func (sc *ScreenCanvas) Clear() {
	x0, y0, x1, y1 := sc.cells(sc.board.Rect())
	sc.dst.FillRect(x0, y0, x1-x0, y1-y0, ' ', core.ColorDefault)
}

// FillRect fills the cells covered by r, clipped to the board.
func (sc *ScreenCanvas) FillRect(r core.Rect, c core.Color) {
	r, ok := clip(r, sc.board.Rect())
	if !ok {
		return
	}
	x0, y0, x1, y1 := sc.cells(r)
	sc.dst.FillRect(x0, y0, x1-x0, y1-y0, glyph(c), c)
}

// StrokeDashedLine draws an axis-aligned dashed line one cell thick, clipped
// to the board. Dashes are at least one cell long so they stay visible at
// small scales.
func (sc *ScreenCanvas) StrokeDashedLine(x0, y0, x1, y1, dash float64, c core.Color) {
	b := sc.board
	if x0 == x1 {
		if x0 < 0 || x0 >= b.Width {
			return
		}
		ya, yb := math.Max(0, math.Min(y0, y1)), math.Min(b.Height, math.Max(y0, y1))
		if yb <= ya {
			return
		}
		col, top, _, bottom := sc.cells(core.NewRect(x0, ya, 0, yb-ya))
		n := core.Max(1, int(math.Round(dash*sc.scaleY)))
		for i, y := 0, top; y < bottom; i, y = i+1, y+1 {
			if (i/n)%2 == 0 {
				sc.dst.SetCell(col, y, glyph(c), c)
			}
		}
		return
	}

	if y0 != y1 || y0 < 0 || y0 >= b.Height {
		return
	}
	xa, xb := math.Max(0, math.Min(x0, x1)), math.Min(b.Width, math.Max(x0, x1))
	if xb <= xa {
		return
	}
	left, row, right, _ := sc.cells(core.NewRect(xa, y0, xb-xa, 0))
	n := core.Max(1, int(math.Round(dash*sc.scaleX)))
	for i, x := 0, left; x < right; i, x = i+1, x+1 {
		if (i/n)%2 == 0 {
			sc.dst.SetCell(x, row, '╌', c)
		}
	}
}

// cells converts a pixel rectangle to a half-open cell range, never empty.
func (sc *ScreenCanvas) cells(r core.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X*sc.scaleX + sc.offX))
	y0 = int(math.Floor(r.Y*sc.scaleY + sc.offY))
	x1 = int(math.Floor(r.Right()*sc.scaleX + sc.offX))
	y1 = int(math.Floor(r.Bottom()*sc.scaleY + sc.offY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

// clip intersects r with bounds. ok is false when nothing of r is inside.
func clip(r, bounds core.Rect) (core.Rect, bool) {
	x0 := math.Max(r.X, bounds.X)
	y0 := math.Max(r.Y, bounds.Y)
	x1 := math.Min(r.Right(), bounds.Right())
	y1 := math.Min(r.Bottom(), bounds.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return core.Rect{}, false
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0), true
}

// glyph returns the fill rune for a color.
func glyph(c core.Color) rune {
	if g, ok := glyphs[c]; ok {
		return g
	}
	return '█'
}
