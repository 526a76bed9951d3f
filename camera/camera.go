// Package camera implements a camera that orbits a fixed target on a
// sphere, steered by yaw and pitch keys.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/paperboard/solarsystem/input"
)

const (
	// MaxPitch keeps the view direction away from world-up, where the
	// right vector (front x worldUp) collapses to zero.
	MaxPitch = 89.0

	DefaultRotationSpeed = 50.0 // degrees per second
)

// Camera orbits Target at a fixed Radius. Position and the front/right/up
// basis are always derived from yaw, pitch and radius.
type Camera struct {
	yaw    float32 // degrees
	pitch  float32 // degrees, always in [-MaxPitch, MaxPitch]
	radius float32
	speed  float32 // degrees per second

	target  mgl32.Vec3
	worldUp mgl32.Vec3

	position mgl32.Vec3
	front    mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3
}

// Option configures a Camera.
type Option func(*Camera)

// WithRotationSpeed sets the angular speed in degrees per second.
func WithRotationSpeed(speed float32) Option {
	return func(c *Camera) { c.speed = speed }
}

// WithTarget sets the point the camera orbits and looks at.
func WithTarget(target mgl32.Vec3) Option {
	return func(c *Camera) { c.target = target }
}

// WithWorldUp sets the reference up direction. A zero vector is ignored
// and +Y is kept.
func WithWorldUp(up mgl32.Vec3) Option {
	return func(c *Camera) {
		if up.Len() == 0 {
			return
		}
		c.worldUp = up.Normalize()
	}
}

// New creates a camera at the given yaw and pitch (degrees) on a sphere of
// the given radius around the origin.
func New(yaw, pitch, radius float32, opts ...Option) *Camera {
	c := &Camera{
		yaw:     yaw,
		pitch:   mgl32.Clamp(pitch, -MaxPitch, MaxPitch),
		radius:  radius,
		speed:   DefaultRotationSpeed,
		worldUp: mgl32.Vec3{0, 1, 0},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.updateVectors()
	return c
}

// Advance applies elapsed seconds of key input and returns the new view
// matrix. Negative elapsed time is ignored.
func (c *Camera) Advance(elapsed float32, in input.State) mgl32.Mat4 {
	if elapsed < 0 {
		elapsed = 0
	}
	delta := c.speed * elapsed

	if in.YawRight {
		c.yaw -= delta
	}
	if in.YawLeft {
		c.yaw += delta
	}
	if in.PitchUp {
		c.pitch += delta
	}
	if in.PitchDown {
		c.pitch -= delta
	}

	// limit pitch so the camera never flips over the poles
	c.pitch = mgl32.Clamp(c.pitch, -MaxPitch, MaxPitch)

	c.updateVectors()
	return c.View()
}

// View returns a matrix looking from the camera position toward the target.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.target, c.up)
}

func (c *Camera) Yaw() float32           { return c.yaw }
func (c *Camera) Pitch() float32         { return c.pitch }
func (c *Camera) Radius() float32        { return c.radius }
func (c *Camera) Position() mgl32.Vec3   { return c.position }
func (c *Camera) Front() mgl32.Vec3      { return c.front }
func (c *Camera) Right() mgl32.Vec3      { return c.right }
func (c *Camera) Up() mgl32.Vec3         { return c.up }
func (c *Camera) RotationSpeed() float32 { return c.speed }

// spherical -> cartesian, then rebuild the basis
func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)

	c.position = c.target.Add(mgl32.Vec3{
		c.radius * math32.Cos(yaw) * math32.Cos(pitch),
		c.radius * math32.Sin(pitch),
		c.radius * math32.Sin(yaw) * math32.Cos(pitch),
	})

	c.front = c.target.Sub(c.position).Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
