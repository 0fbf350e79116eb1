package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/lixenwraith/bounce/vmath"
)

// BodyID is a world-unique, monotonically assigned body identifier
type BodyID uint64

// Body wraps an engine body with its tag and construction dimensions
// Owned by World; other components hold references only
type Body struct {
	ID  BodyID
	Tag Tag

	// Radius is set for balls
	Radius float64

	// HalfWidth and HalfHeight are set for wall slabs
	HalfWidth  float64
	HalfHeight float64

	b2 *box2d.B2Body
}

// Position returns the body origin in world meters
func (b *Body) Position() (x, y float64) {
	p := b.b2.GetPosition()
	return p.X, p.Y
}

// Velocity returns the linear velocity in m/s
func (b *Body) Velocity() (vx, vy float64) {
	v := b.b2.GetLinearVelocity()
	return v.X, v.Y
}

// SetVelocity overrides the linear velocity
func (b *Body) SetVelocity(vx, vy float64) {
	b.b2.SetLinearVelocity(box2d.MakeB2Vec2(vx, vy))
}

// Speed returns the magnitude of the linear velocity
func (b *Body) Speed() float64 {
	vx, vy := b.Velocity()
	return vmath.Magnitude(vx, vy)
}

// Angle returns the body rotation in radians
func (b *Body) Angle() float64 {
	return b.b2.GetAngle()
}

// IsBullet reports whether continuous collision is enabled
func (b *Body) IsBullet() bool {
	return b.b2.IsBullet()
}

// IsStatic reports whether the body is immovable
func (b *Body) IsStatic() bool {
	return b.b2.GetType() == box2d.B2BodyType.B2_staticBody
}

// BodySnapshot is a read-only copy of a body's render-relevant state
type BodySnapshot struct {
	ID         BodyID
	Tag        Tag
	X, Y       float64
	Angle      float64
	Radius     float64
	HalfWidth  float64
	HalfHeight float64
	Speed      float64
}

// Snapshot copies the current state
func (b *Body) Snapshot() BodySnapshot {
	x, y := b.Position()
	return BodySnapshot{
		ID:         b.ID,
		Tag:        b.Tag,
		X:          x,
		Y:          y,
		Angle:      b.Angle(),
		Radius:     b.Radius,
		HalfWidth:  b.HalfWidth,
		HalfHeight: b.HalfHeight,
		Speed:      b.Speed(),
	}
}

// BodyOf resolves the wrapper attached to a fixture's body
// Returns false for bodies not created through World
func BodyOf(f *box2d.B2Fixture) (*Body, bool) {
	if f == nil {
		return nil, false
	}
	b, ok := f.GetBody().GetUserData().(*Body)
	return b, ok
}
