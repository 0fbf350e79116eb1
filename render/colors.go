package render

// Palette
var (
	RgbBackground = RGB{26, 27, 38} // Tokyo Night background

	RgbBoundary = RGB{180, 180, 180}
	RgbWall     = RGB{120, 120, 140}

	RgbBallSlow = RGB{100, 150, 255} // Blue at rest
	RgbBallFast = RGB{255, 80, 80}   // Red at the fastest speed on screen
	RgbFastest  = RGB{50, 255, 50}   // Highlight for the fastest ball

	RgbHUDText   = RGB{255, 255, 255}
	RgbHUDLabel  = RGB{180, 180, 180}
	RgbHUDOn     = RGB{144, 238, 144}
	RgbHUDOff    = RGB{200, 50, 50}
	RgbPaused    = RGB{255, 165, 0}
	RgbDebugText = RGB{0, 200, 200}
	RgbDebugBg   = RGB{0, 0, 0}
)

// SpeedColor grades a ball from slow to fast relative to the fastest speed
func SpeedColor(speed, fastest float64) RGB {
	if fastest <= 0 {
		return RgbBallSlow
	}
	return RgbBallSlow.Blend(RgbBallFast, speed/fastest)
}
