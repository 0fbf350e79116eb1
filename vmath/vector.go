package vmath

import "math"

// Magnitude returns the Euclidean length of (x, y)
func Magnitude(x, y float64) float64 {
	return math.Hypot(x, y)
}

// RotateVector rotates (x, y) by angle radians counter-clockwise
func RotateVector(x, y, angle float64) (rx, ry float64) {
	sin, cos := math.Sincos(angle)
	return x*cos - y*sin, x*sin + y*cos
}

// Polar converts an angle and radius about (cx, cy) to cartesian coordinates
func Polar(cx, cy, angle, radius float64) (x, y float64) {
	sin, cos := math.Sincos(angle)
	return cx + cos*radius, cy + sin*radius
}
