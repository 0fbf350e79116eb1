package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/bounce/config"
	"github.com/lixenwraith/bounce/engine"
	"github.com/lixenwraith/bounce/parameter"
	"github.com/lixenwraith/bounce/physics"
	"github.com/lixenwraith/bounce/vmath"
)

// TerminalRenderer draws the scene, HUD and debug overlay onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{screen: screen, width: w, height: h}
}

// Resize updates dimensions after a terminal resize event
func (r *TerminalRenderer) Resize(width, height int) {
	r.width, r.height = width, height
}

// Viewport returns the scene area for the current layout
func (r *TerminalRenderer) Viewport(scene engine.Scene, debug bool) Viewport {
	rows := r.height - parameter.HUDLines
	if debug {
		rows -= parameter.DebugLines
	}
	return NewViewport(0, parameter.HUDLines, r.width, max(rows, 0), scene.Width, scene.Height, parameter.CellAspect)
}

// RenderFrame renders the entire frame
func (r *TerminalRenderer) RenderFrame(scene engine.Scene, hud engine.HUD) {
	bg := style(RgbHUDText, RgbBackground)
	r.screen.SetStyle(bg)
	r.screen.Clear()

	vp := r.Viewport(scene, hud.Debug)
	for _, b := range scene.Boundary {
		switch b.Tag {
		case physics.TagCircle:
			r.drawCircle(vp, b)
		case physics.TagWall:
			r.drawWall(vp, b)
		}
	}
	for _, b := range scene.Balls {
		r.drawBall(vp, b, scene.FastestID, hud.FastestSpeed)
	}

	r.drawHUD(hud)
	if hud.Debug {
		r.drawDebug(hud)
	}

	r.screen.Show()
}

func (r *TerminalRenderer) plot(vp Viewport, wx, wy float64, ch rune, st tcell.Style) {
	cx, cy := vp.ToCell(wx, wy)
	if vp.Contains(cx, cy) {
		r.screen.SetContent(cx, cy, ch, nil, st)
	}
}

// drawCircle samples the circumference at roughly two points per cell
func (r *TerminalRenderer) drawCircle(vp Viewport, b physics.BodySnapshot) {
	st := style(RgbBoundary, RgbBackground)
	n := max(int(vmath.TwoPi*b.Radius*vp.ScaleX*2), 16)
	for i := 0; i < n; i++ {
		x, y := vmath.Polar(b.X, b.Y, vmath.TwoPi*float64(i)/float64(n), b.Radius)
		r.plot(vp, x, y, parameter.GlyphBoundary, st)
	}
}

// drawWall fills a rotated box
func (r *TerminalRenderer) drawWall(vp Viewport, b physics.BodySnapshot) {
	st := style(RgbWall, RgbBackground)
	nu := max(int(math.Ceil(4*b.HalfWidth*vp.ScaleX)), 1)
	nv := max(int(math.Ceil(4*b.HalfHeight*vp.ScaleY)), 1)
	for i := 0; i < nu; i++ {
		u := -b.HalfWidth + (float64(i)+0.5)*2*b.HalfWidth/float64(nu)
		for j := 0; j < nv; j++ {
			v := -b.HalfHeight + (float64(j)+0.5)*2*b.HalfHeight/float64(nv)
			dx, dy := vmath.RotateVector(u, v, b.Angle)
			r.plot(vp, b.X+dx, b.Y+dy, parameter.GlyphWall, st)
		}
	}
}

// drawBall draws a single glyph for small balls, a filled disc once the radius spans cells
func (r *TerminalRenderer) drawBall(vp Viewport, b physics.BodySnapshot, fastestID physics.BodyID, fastestSpeed float64) {
	fg := SpeedColor(b.Speed, fastestSpeed)
	if b.ID == fastestID {
		fg = RgbFastest
	}
	st := style(fg, RgbBackground)

	rc := b.Radius * vp.ScaleX
	switch {
	case rc < 0.5:
		r.plot(vp, b.X, b.Y, parameter.GlyphSmallBall, st)
	case rc < 1.5:
		r.plot(vp, b.X, b.Y, parameter.GlyphBall, st)
	default:
		step := 0.5 / vp.ScaleX
		for x := -b.Radius; x <= b.Radius; x += step {
			for y := -b.Radius; y <= b.Radius; y += step {
				if x*x+y*y <= b.Radius*b.Radius {
					r.plot(vp, b.X+x, b.Y+y, parameter.GlyphBall, st)
				}
			}
		}
	}
}

func (r *TerminalRenderer) text(x, y int, s string, st tcell.Style) int {
	for _, ch := range s {
		if x >= r.width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, st)
		x++
	}
	return x
}

func (r *TerminalRenderer) drawHUD(hud engine.HUD) {
	label := style(RgbHUDLabel, RgbBackground)
	value := style(RgbHUDText, RgbBackground)

	x := r.text(0, 0, "Fastest: ", label)
	x = r.text(x, 0, fmt.Sprintf("%.2f m/s", hud.FastestSpeed), style(RgbFastest, RgbBackground))
	if hud.Paused {
		r.text(x+2, 0, "PAUSED", style(RgbPaused, RgbBackground))
	}

	x = r.text(0, 1, "Balls: ", label)
	x = r.text(x, 1, fmt.Sprintf("%d", hud.Balls), value)
	if hud.MaxBalls > 0 {
		x = r.text(x, 1, fmt.Sprintf("/%d", hud.MaxBalls), label)
	}
	x = r.text(x, 1, "  Created: ", label)
	x = r.text(x, 1, fmt.Sprintf("%d", hud.Created), value)
	x = r.text(x, 1, "  Destroyed: ", label)
	r.text(x, 1, fmt.Sprintf("%d", hud.Destroyed), value)

	x = r.text(0, 2, "Spawning [l]: ", label)
	if hud.Spawning {
		x = r.text(x, 2, "on", style(RgbHUDOn, RgbBackground))
	} else {
		x = r.text(x, 2, "off", style(RgbHUDOff, RgbBackground))
	}
	if hud.Variant == config.VariantTunnel {
		x = r.text(x, 2, "  Tilt [a/d]: ", label)
		r.text(x, 2, fmt.Sprintf("%+.2f rad", hud.Tilt), value)
	}

	r.text(0, 3, "[p] pause  [g] debug  [m] mute  [r] reset  [q] quit", label)
}

func (r *TerminalRenderer) drawDebug(hud engine.HUD) {
	st := style(RgbDebugText, RgbDebugBg)
	y := r.height - parameter.DebugLines
	lines := [parameter.DebugLines]string{
		fmt.Sprintf("credits=%d removals=%d steps=%d total=%d acc=%v",
			hud.PendingCreates, hud.PendingRemovals, hud.StepsLastFrame, hud.TotalSteps, hud.Accumulated),
		fmt.Sprintf("contacts boundary=%d ball=%d other=%d  culled=%d suppressed=%d  t=%.1fs",
			hud.Contacts.Boundary, hud.Contacts.Ball, hud.Contacts.Other, hud.Culled, hud.Suppressed, hud.Elapsed.Seconds()),
	}
	for i, line := range lines {
		if y+i < 0 {
			continue
		}
		for x := 0; x < r.width; x++ {
			r.screen.SetContent(x, y+i, ' ', nil, st)
		}
		r.text(0, y+i, line, st)
	}
}
