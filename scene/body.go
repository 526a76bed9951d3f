package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/paperboard/solarsystem/orbit"
)

// Body is anything placed in the scene once per frame.
type Body interface {
	Name() string

	// Update moves the body to time now. Bodies that animate hold still
	// while sw is paused.
	Update(now float64, sw *orbit.Switch)

	// Position is the body's world position after the latest Update.
	Position() mgl32.Vec3

	// Model is the object-to-world transform after the latest Update.
	Model() mgl32.Mat4
}

// ModelMatrix translates to pos, spins spin degrees around the vertical
// axis, then scales uniformly.
func ModelMatrix(pos mgl32.Vec3, spin, scale float32) mgl32.Mat4 {
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(spin))).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}

// Static never moves; the sun.
type Static struct {
	name        string
	translation mgl32.Vec3
	scale       float32
}

func NewStatic(name string, translation mgl32.Vec3, scale float32) *Static {
	return &Static{name: name, translation: translation, scale: scale}
}

func (b *Static) Name() string                  { return b.name }
func (b *Static) Update(float64, *orbit.Switch) {}
func (b *Static) Position() mgl32.Vec3          { return b.translation }
func (b *Static) Model() mgl32.Mat4             { return ModelMatrix(b.translation, 0, b.scale) }

// Orbiting spins and revolves around the world origin; the earth.
type Orbiting struct {
	name  string
	clock *orbit.Clock
	scale float32
	spin  float32
	pos   mgl32.Vec3
}

// NewOrbiting creates a body whose clock starts measuring at start.
func NewOrbiting(name string, p orbit.Params, scale float32, start float64) *Orbiting {
	c := orbit.NewClock(p, start)
	return &Orbiting{
		name:  name,
		clock: c,
		scale: scale,
		spin:  c.Spin(),
		pos:   c.Position(),
	}
}

func (b *Orbiting) Name() string { return b.name }

func (b *Orbiting) Update(now float64, sw *orbit.Switch) {
	b.spin, b.pos = b.clock.Tick(now, sw)
}

func (b *Orbiting) Position() mgl32.Vec3 { return b.pos }
func (b *Orbiting) Spin() float32        { return b.spin }
func (b *Orbiting) Clock() *orbit.Clock  { return b.clock }

func (b *Orbiting) Model() mgl32.Mat4 {
	return ModelMatrix(b.pos, b.spin, b.scale)
}

// Satellite orbits the current-frame position of its parent; the moon.
// The parent must be updated before the satellite in every frame.
type Satellite struct {
	Orbiting
	parent Body
}

func NewSatellite(name string, parent Body, p orbit.Params, scale float32, start float64) *Satellite {
	s := &Satellite{
		Orbiting: *NewOrbiting(name, p, scale, start),
		parent:   parent,
	}
	s.pos = parent.Position().Add(s.clock.Position())
	return s
}

// Parent returns the body this satellite orbits.
func (b *Satellite) Parent() Body { return b.parent }

func (b *Satellite) Update(now float64, sw *orbit.Switch) {
	var offset mgl32.Vec3
	b.spin, offset = b.clock.Tick(now, sw)
	b.pos = b.parent.Position().Add(offset)
}

// Scattered holds a placement drawn once at creation; the decorative
// planets.
type Scattered struct {
	name      string
	placement orbit.Placement
}

func NewScattered(name string, p orbit.Placement) *Scattered {
	return &Scattered{name: name, placement: p}
}

func (b *Scattered) Name() string                  { return b.name }
func (b *Scattered) Update(float64, *orbit.Switch) {}
func (b *Scattered) Position() mgl32.Vec3          { return b.placement.Translation }
func (b *Scattered) Placement() orbit.Placement    { return b.placement }

func (b *Scattered) Model() mgl32.Mat4 {
	return ModelMatrix(b.placement.Translation, 0, b.placement.Scale)
}
