package voxtrace

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

// PitchLimit keeps the camera away from looking straight up or down.
const PitchLimit = math32.Pi / 2 * 0.9

// Camera is a Y-up pinhole camera. Yaw 0 looks down -Z.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	// FOV is the vertical field of view in radians.
	FOV float32
}

func NewCamera(position mgl32.Vec3) *Camera {
	return &Camera{
		Position: position,
		Pitch:    math32.Pi / 8,
		FOV:      math32.Pi / 3,
	}
}

// Rotate turns the camera, clamping pitch to PitchLimit.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = clamp(c.Pitch+dPitch, -PitchLimit, PitchLimit)
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Yaw = math32.Atan2(d.X(), -d.Z())
	c.Pitch = clamp(math32.Asin(d.Y()), -PitchLimit, PitchLimit)
}

func (c *Camera) Forward() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	return mgl32.Vec3{
		cp * math32.Sin(c.Yaw),
		math32.Sin(c.Pitch),
		-cp * math32.Cos(c.Yaw),
	}
}

func (c *Camera) Right() mgl32.Vec3 {
	return mgl32.Vec3{math32.Cos(c.Yaw), 0, math32.Sin(c.Yaw)}
}

func (c *Camera) Up() mgl32.Vec3 {
	return c.Right().Cross(c.Forward())
}

// Direction returns the normalized primary ray direction through the center
// of pixel (x, y) of a w x h frame. Row 0 is the top of the frame.
func (c *Camera) Direction(x, y, w, h int) mgl32.Vec3 {
	tanHalf := math32.Tan(c.FOV / 2)
	aspect := float32(w) / float32(h)
	u := (2*(float32(x)+0.5)/float32(w) - 1) * aspect * tanHalf
	v := (1 - 2*(float32(y)+0.5)/float32(h)) * tanHalf

	return c.Forward().Add(c.Right().Mul(u)).Add(c.Up().Mul(v)).Normalize()
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
