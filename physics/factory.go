package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"

	"github.com/lixenwraith/bounce/vmath"
)

// Material is the fixture surface response
type Material struct {
	Density     float64
	Friction    float64
	Restitution float64
}

func (m Material) fixture(shape box2d.B2ShapeInterface) box2d.B2FixtureDef {
	fd := box2d.MakeB2FixtureDef()
	fd.Shape = shape
	fd.Density = m.Density
	fd.Friction = m.Friction
	fd.Restitution = m.Restitution
	return fd
}

// Region is a spawn area: a disc when Radius > 0, otherwise a box rotated by Angle about its centre
type Region struct {
	CX, CY     float64
	Radius     float64
	HalfWidth  float64
	HalfHeight float64
	Angle      float64
}

// Sample picks a point inside the region
// Disc sampling draws angle and distance uniformly, clustering toward the centre
func (r Region) Sample(rng *vmath.FastRand) (x, y float64) {
	if r.Radius > 0 {
		angle := rng.Float64() * vmath.TwoPi
		dist := rng.Float64() * r.Radius
		return vmath.Polar(r.CX, r.CY, angle, dist)
	}
	u := (rng.Float64()*2 - 1) * r.HalfWidth
	v := (rng.Float64()*2 - 1) * r.HalfHeight
	dx, dy := vmath.RotateVector(u, v, r.Angle)
	return r.CX + dx, r.CY + dy
}

// BallSpec parameterizes CreateBall
type BallSpec struct {
	Spawn       Region
	RadiusMin   float64
	RadiusRange float64
	Material    Material
}

// CreateBall adds a dynamic circular ball at a random point of the spawn region
// Balls run as bullets so high speeds do not tunnel through thin boundaries
func CreateBall(w *World, spec BallSpec, rng *vmath.FastRand) *Body {
	x, y := spec.Spawn.Sample(rng)
	radius := rng.Range(spec.RadiusMin, spec.RadiusRange)

	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position.Set(x, y)
	bd.Bullet = true

	shape := box2d.MakeB2CircleShape()
	shape.M_radius = radius

	return w.CreateBody(BodyDef{
		Tag:      TagBall,
		Def:      bd,
		Fixtures: []box2d.B2FixtureDef{spec.Material.fixture(&shape)},
		Radius:   radius,
	})
}

// CircleSpec parameterizes CreateCircleBoundary
type CircleSpec struct {
	CX, CY   float64
	Radius   float64
	Segments int
	Material Material
}

// CreateCircleBoundary adds a static closed chain approximating a circle
func CreateCircleBoundary(w *World, spec CircleSpec) *Body {
	if spec.Segments < 3 {
		panic(fmt.Sprintf("physics: circle boundary needs at least 3 segments, got %d", spec.Segments))
	}

	vertices := make([]box2d.B2Vec2, spec.Segments)
	for i := range vertices {
		angle := vmath.TwoPi * float64(i) / float64(spec.Segments)
		x, y := vmath.Polar(0, 0, angle, spec.Radius)
		vertices[i] = box2d.MakeB2Vec2(x, y)
	}

	chain := box2d.MakeB2ChainShape()
	chain.CreateLoop(vertices, len(vertices))

	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_staticBody
	bd.Position.Set(spec.CX, spec.CY)

	return w.CreateBody(BodyDef{
		Tag:      TagCircle,
		Def:      bd,
		Fixtures: []box2d.B2FixtureDef{spec.Material.fixture(&chain)},
		Radius:   spec.Radius,
	})
}

// TunnelSpec parameterizes CreateTunnel
type TunnelSpec struct {
	CX, CY    float64
	Length    float64
	Gap       float64
	Thickness float64
	Material  Material
}

// CreateTunnel adds two static slabs above and below the centre line
func CreateTunnel(w *World, spec TunnelSpec) (upper, lower *Body) {
	offset := spec.Gap/2 + spec.Thickness/2
	upper = createSlab(w, spec, spec.CY+offset)
	lower = createSlab(w, spec, spec.CY-offset)
	return upper, lower
}

func createSlab(w *World, spec TunnelSpec, y float64) *Body {
	hw, hh := spec.Length/2, spec.Thickness/2

	box := box2d.MakeB2PolygonShape()
	box.SetAsBox(hw, hh)

	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_staticBody
	bd.Position.Set(spec.CX, y)

	return w.CreateBody(BodyDef{
		Tag:        TagWall,
		Def:        bd,
		Fixtures:   []box2d.B2FixtureDef{spec.Material.fixture(&box)},
		HalfWidth:  hw,
		HalfHeight: hh,
	})
}

// Tilt rotates a static boundary about its own origin by delta radians
// The position is left untouched; limit > 0 clamps the resulting angle to [-limit, limit]
// Returns the new angle
func (w *World) Tilt(b *Body, delta, limit float64) float64 {
	if w.stepping {
		panic(fmt.Errorf("%w: tilt body %d", ErrWorldLocked, b.ID))
	}
	if !w.Has(b) {
		panic(fmt.Errorf("%w: tilt body %d", ErrUnknownBody, b.ID))
	}

	angle := b.Angle() + delta
	if limit > 0 {
		angle = vmath.Clamp(angle, -limit, limit)
	}
	b.b2.SetTransform(b.b2.GetPosition(), angle)
	return angle
}
