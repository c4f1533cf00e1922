package render

import (
	"math"

	"github.com/taigrr/cubes/pkg/math3d"
)

// maxPitch keeps the view from flipping over the vertical.
const maxPitch = 89.0

// Camera is a perspective camera with position and orientation.
// The projection is fixed at construction; pose changes through the
// movement and rotation operators.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation in degrees
	Pitch float64 // Rotation around X axis (look up/down)
	Yaw   float64 // Rotation around Y axis (look left/right)

	// Projection parameters
	FOV    float64 // Vertical field of view in degrees
	Aspect float64 // Width / Height
	Near   float64 // Near clipping plane
	Far    float64 // Far clipping plane

	perspective math3d.Matrix

	// Cached view matrix (computed on demand)
	viewMatrix math3d.Matrix
	viewDirty  bool
}

// NewCamera creates a camera at the origin looking down -Z.
func NewCamera(fov, aspect, near, far float64) *Camera {
	return &Camera{
		FOV:         fov,
		Aspect:      aspect,
		Near:        near,
		Far:         far,
		perspective: math3d.Perspective(fov, aspect, near, far),
		viewDirty:   true,
	}
}

// Perspective returns the projection matrix. Callers must not modify it.
func (c *Camera) Perspective() math3d.Matrix {
	return c.perspective
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// Forward returns the forward direction vector.
func (c *Camera) Forward() math3d.Vec3 {
	// Forward is -Z in camera space, rotated by yaw and pitch
	sp, cp := math.Sincos(math3d.Radians(c.Pitch))
	sy, cy := math.Sincos(math3d.Radians(c.Yaw))
	return math3d.V3(-sy*cp, sp, -cy*cp)
}

// Right returns the right direction vector.
func (c *Camera) Right() math3d.Vec3 {
	sy, cy := math.Sincos(math3d.Radians(c.Yaw))
	return math3d.V3(cy, 0, -sy)
}

// ViewMatrix returns the world-to-camera matrix. Callers must not modify it.
func (c *Camera) ViewMatrix() math3d.Matrix {
	if c.viewDirty {
		// View = Rotation(inverse orientation) * Translation(-position)
		rot := math3d.RotateX(-c.Pitch).Mul(math3d.RotateY(-c.Yaw))
		c.viewMatrix = rot.Mul(math3d.Translate(c.Position.Negate()))
		c.viewDirty = false
	}
	return c.viewMatrix
}

// MoveForward moves the camera along its view direction (backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
	c.viewDirty = true
}

// MoveRight strafes the camera right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
	c.viewDirty = true
}

// MoveUp moves the camera along world up (or down if negative).
func (c *Camera) MoveUp(distance float64) {
	c.Position = c.Position.Add(math3d.Up().Scale(distance))
	c.viewDirty = true
}

// RotateX pitches the camera by deg degrees, clamped short of straight
// up or down.
func (c *Camera) RotateX(deg float64) {
	c.Pitch = max(-maxPitch, min(maxPitch, c.Pitch+deg))
	c.viewDirty = true
}

// RotateY yaws the camera by deg degrees. Positive turns left.
func (c *Camera) RotateY(deg float64) {
	c.Yaw = math.Mod(c.Yaw+deg, 360)
	c.viewDirty = true
}
