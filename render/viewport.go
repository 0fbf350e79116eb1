package render

import "math"

// Viewport maps world meters onto a rectangle of terminal cells
// World y grows upward, screen rows grow downward
type Viewport struct {
	X, Y          int // top-left cell
	Cols, Rows    int
	Width, Height float64 // world extent in meters

	// cells per meter along each axis
	ScaleX, ScaleY float64
	offX, offY     float64
}

// NewViewport fits a world of width x height meters into cols x rows cells,
// preserving proportions for cells aspect times taller than wide
func NewViewport(x, y, cols, rows int, width, height, aspect float64) Viewport {
	v := Viewport{X: x, Y: y, Cols: cols, Rows: rows, Width: width, Height: height}
	if cols <= 0 || rows <= 0 || width <= 0 || height <= 0 {
		return v
	}

	v.ScaleX = math.Min(float64(cols)/width, float64(rows)*aspect/height)
	v.ScaleY = v.ScaleX / aspect
	v.offX = (float64(cols) - width*v.ScaleX) / 2
	v.offY = (float64(rows) - height*v.ScaleY) / 2
	return v
}

// ToCell converts world meters to a screen cell
func (v Viewport) ToCell(wx, wy float64) (cx, cy int) {
	cx = v.X + int(math.Floor(v.offX+wx*v.ScaleX))
	cy = v.Y + int(math.Floor(v.offY+(v.Height-wy)*v.ScaleY))
	return cx, cy
}

// Contains reports whether the cell lies inside the viewport
func (v Viewport) Contains(cx, cy int) bool {
	return cx >= v.X && cx < v.X+v.Cols && cy >= v.Y && cy < v.Y+v.Rows
}
