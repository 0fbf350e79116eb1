package parameter

// HUD layout
const (
	// HUDLines is the number of text rows reserved at the top of the screen
	HUDLines = 4

	// DebugLines is the number of rows used by the debug overlay at the bottom
	DebugLines = 2

	// CellAspect is the height/width ratio of a terminal cell
	CellAspect = 2.0
)

// Glyphs
const (
	GlyphBall      = '●'
	GlyphSmallBall = '•'
	GlyphBoundary  = '·'
	GlyphWall      = '█'
)
