package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free-flying viewpoint in the Z-up world.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Fovy     float32 // degrees
}

// yUp converts from the Z-up right-handed world into the Y-up space clip
// coordinates expect.
var yUp = mgl32.Mat4{
	0, 0, 1, 0,
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
}

// NewCamera returns the initial viewpoint.
func NewCamera() *Camera {
	return &Camera{
		Position: mgl32.Vec3{0, 0, 96},
		Yaw:      0.4 * 2 * math.Pi,
		Pitch:    0.1 * 2 * math.Pi,
		Fovy:     60,
	}
}

func (c *Camera) rotation() mgl32.Quat {
	yaw := mgl32.QuatRotate(c.Yaw, mgl32.Vec3{0, 0, 1})
	pitch := mgl32.QuatRotate(c.Pitch, mgl32.Vec3{0, 1, 0})
	return pitch.Mul(yaw)
}

// Forward returns the horizontal movement direction the camera faces.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.rotation().Conjugate().Rotate(mgl32.Vec3{-1, 0, 0})
}

// Left returns the horizontal strafe direction.
func (c *Camera) Left() mgl32.Vec3 {
	return c.rotation().Conjugate().Rotate(mgl32.Vec3{0, -1, 0})
}

// ClampPitch keeps the pitch within straight-down..straight-up.
func (c *Camera) ClampPitch() {
	limit := float32(math.Pi / 2)
	if c.Pitch > limit {
		c.Pitch = limit
	}
	if c.Pitch < -limit {
		c.Pitch = -limit
	}
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return c.rotation().Mat4().Mul4(mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z()))
}

// ProjMatrix returns an infinite-far perspective projection. Chunks only
// exist out to the generation radius, so no far plane is needed.
func (c *Camera) ProjMatrix(aspect float32) mgl32.Mat4 {
	tanHalf := float32(math.Tan(float64(mgl32.DegToRad(c.Fovy) / 2)))
	near := float32(0.1)
	proj := mgl32.Mat4{
		1 / (aspect * tanHalf), 0, 0, 0,
		0, 1 / tanHalf, 0, 0,
		0, 0, -1, -1,
		0, 0, -2 * near, 0,
	}
	return proj.Mul4(yUp)
}

// Interpolate moves the camera a fraction of the way towards a target, used
// for the smoothed per-frame camera response.
func (c *Camera) Interpolate(target *Camera, t float32) {
	c.Position = c.Position.Add(target.Position.Sub(c.Position).Mul(t))
	c.Yaw += (target.Yaw - c.Yaw) * t
	c.Pitch += (target.Pitch - c.Pitch) * t
}
