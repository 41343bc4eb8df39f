package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereNearest(t *testing.T) {
	s := NewSphere(mgl32.Vec3{0, 0, 0}, 0.1, PackMaterial(1, NonMetal), 0xFF0000)
	r := NewRay(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}, TMax)

	s.IntersectNearest(&r)

	assert.InDelta(t, 0.9, r.T, 1e-5)
	assert.Equal(t, SphereID, r.ID)
	assert.True(t, r.Normal.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, 1e-4))
	assert.Equal(t, s.Payload, r.Hit)
}

func TestSphereFromInside(t *testing.T) {
	s := NewSphere(mgl32.Vec3{0, 0, 0}, 1, 0, 0)
	r := NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 2, 0}, TMax)

	root, ok := s.Root(&r)
	require.True(t, ok)
	assert.InDelta(t, 0.5, root, 1e-6, "far root in units of Dir")
}

func TestSphereMissAndBehind(t *testing.T) {
	s := NewSphere(mgl32.Vec3{0, 0, 0}, 0.5, 0, 0)

	miss := NewRay(mgl32.Vec3{-2, 1, 0}, mgl32.Vec3{1, 0, 0}, TMax)
	_, ok := s.Root(&miss)
	assert.False(t, ok)

	behind := NewRay(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{1, 0, 0}, TMax)
	_, ok = s.Root(&behind)
	assert.False(t, ok)
}

func TestSphereOcclusion(t *testing.T) {
	stone := NewSphere(mgl32.Vec3{0, 0, 0}, 0.5, PackMaterial(1, NonMetal), 0)
	glass := NewSphere(mgl32.Vec3{0, 0, 0}, 0.5, PackMaterial(2, Glass), 0x00FF00)

	r := NewRay(mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{1, 0, 0}, 10)
	var tint Tint
	assert.True(t, stone.Occludes(&r, &tint))

	assert.False(t, glass.Occludes(&r, &tint))
	assert.Equal(t, float32(0.5), tint.Distance)
	assert.Equal(t, glass.Payload, tint.Payload)

	// light closer than the sphere
	short := NewRay(mgl32.Vec3{-2, 0, 0}, mgl32.Vec3{1, 0, 0}, 1)
	assert.False(t, stone.Occludes(&short, &tint))
}

func TestTriangleNearest(t *testing.T) {
	tri := NewTriangle(
		mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1},
		PackMaterial(1, Water), 0x0000FF,
	)
	r := NewRay(mgl32.Vec3{0.25, 2, 0.25}, mgl32.Vec3{0, -2, 0}, TMax)

	tri.IntersectNearest(&r)

	assert.InDelta(t, 1.0, r.T, 1e-5, "distance measured in units of Dir")
	assert.Equal(t, TriangleID, r.ID)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, r.Normal, "normal faces the ray")
	assert.InDelta(t, 1.0/3.0, tri.Centroid.X(), 1e-6)
}

func TestTriangleParallelAndOutside(t *testing.T) {
	tri := NewTriangle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, 0, 0)

	parallel := NewRay(mgl32.Vec3{-1, 0, 0.1}, mgl32.Vec3{1, 0, 0}, TMax)
	_, ok := tri.Intersect(&parallel)
	assert.False(t, ok)

	outside := NewRay(mgl32.Vec3{2, 1, 2}, mgl32.Vec3{0, -1, 0}, TMax)
	_, ok = tri.Intersect(&outside)
	assert.False(t, ok)
}

func TestTriangleOcclusion(t *testing.T) {
	water := NewTriangle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, PackMaterial(1, Water), 0)
	glass := NewTriangle(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}, PackMaterial(2, Glass), 0x00FF00)
	r := NewRay(mgl32.Vec3{0.25, 1, 0.25}, mgl32.Vec3{0, -1, 0}, 5)

	var tint Tint
	assert.True(t, water.Occludes(&r, &tint), "water blocks shadow rays")
	assert.False(t, glass.Occludes(&r, &tint))
	assert.Equal(t, float32(1.5), tint.Distance)
	assert.Equal(t, glass.Payload, tint.Payload)

	// a second glass hit does not change the tint
	assert.False(t, glass.Occludes(&r, &tint))
	assert.Equal(t, float32(1.5), tint.Distance)
}
