// Package orbit advances the spin and revolution of celestial bodies
// over wall-clock time and places them on circular orbits.
package orbit

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Params seeds a Clock. Angles are degrees, speeds degrees per second.
type Params struct {
	RotationAngle float32 // initial self-spin angle
	RotationSpeed float32 // self-spin angular speed
	OrbitAngle    float32 // initial angle along the orbit
	OrbitSpeed    float32 // orbital angular speed
	OrbitRadius   float32 // distance to the orbit center
}

// Clock accumulates the spin and orbit angles of one body.
//
// Angles are never wrapped; they only ever feed periodic functions.
type Clock struct {
	p          Params
	lastUpdate float64
	halted     bool // clock saw a paused switch on its previous tick
}

// NewClock creates a clock whose first elapsed interval is measured from
// start.
func NewClock(p Params, start float64) *Clock {
	return &Clock{p: p, lastUpdate: start}
}

// Tick advances the clock to now unless sw is paused, and returns the
// self-spin angle and the position on the orbit circle.
//
// While paused the last update timestamp is left alone. On the first
// running tick after a pause it is reset to now, so the time spent
// paused is never replayed.
func (c *Clock) Tick(now float64, sw *Switch) (spin float32, pos mgl32.Vec3) {
	switch {
	case sw.Paused():
		c.halted = true
	case c.halted:
		c.halted = false
		c.lastUpdate = now
		fallthrough
	default:
		elapsed := now - c.lastUpdate
		if elapsed < 0 {
			elapsed = 0
		}
		c.lastUpdate = now
		c.Advance(float32(elapsed))
	}
	return c.p.RotationAngle, c.Position()
}

// Advance moves both angles forward by elapsed seconds.
func (c *Clock) Advance(elapsed float32) {
	c.p.OrbitAngle += elapsed * c.p.OrbitSpeed
	c.p.RotationAngle += elapsed * c.p.RotationSpeed
}

// Spin returns the current self-spin angle in degrees.
func (c *Clock) Spin() float32 { return c.p.RotationAngle }

// OrbitAngle returns the current orbit angle in degrees.
func (c *Clock) OrbitAngle() float32 { return c.p.OrbitAngle }

// Radius returns the orbit radius.
func (c *Clock) Radius() float32 { return c.p.OrbitRadius }

// Position returns the body's offset from its orbit center.
func (c *Clock) Position() mgl32.Vec3 {
	return Position(c.p.OrbitRadius, c.p.OrbitAngle)
}

// Position converts an orbit angle in degrees to a point on the circle of
// the given radius in the horizontal (XZ) plane.
func Position(radius, angle float32) mgl32.Vec3 {
	rad := mgl32.DegToRad(angle)
	return mgl32.Vec3{
		radius * math32.Cos(rad),
		0,
		radius * math32.Sin(rad),
	}
}
