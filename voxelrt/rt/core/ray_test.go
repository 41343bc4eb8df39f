package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRayDirectionSigns(t *testing.T) {
	r := NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, -2, 0}, TMax)

	assert.Equal(t, mgl32.Vec3{0, 1, 0}, r.DSign)
	assert.InDelta(t, 1.0, r.InvDir.X(), 1e-6)
	assert.InDelta(t, -0.5, r.InvDir.Y(), 1e-6)
	// zero components get a large finite reciprocal instead of +Inf
	assert.Greater(t, r.InvDir.Z(), float32(1e6))
	assert.True(t, r.Missed())
	assert.Equal(t, NoID, r.ID)
}

func TestNegativeZeroDirectionKeepsSign(t *testing.T) {
	negZero := mgl32.Vec3{1, 0, 0}.Mul(-1)[1]
	r := NewRay(mgl32.Vec3{}, mgl32.Vec3{1, negZero, 0}, TMax)

	assert.Equal(t, float32(1), r.DSign.Y())
	assert.Less(t, r.InvDir.Y(), float32(-1e6))
}

func TestSecondaryRayOffset(t *testing.T) {
	eps := EpsilonFromExponent(3)
	r := NewSecondaryRay(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 1, 0}, 10, 0xABCDEF, eps)

	assert.InDelta(t, 1.001, r.Origin.Y(), 1e-6)
	assert.Equal(t, uint32(0xABCDEF), r.Source)
	assert.Equal(t, eps, r.Epsilon)
	assert.Equal(t, float32(10), r.T)
}

func TestIntersectionPoint(t *testing.T) {
	r := NewRay(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 2}, 1.5)
	assert.Equal(t, mgl32.Vec3{1, 2, 6}, r.IntersectionPoint())
}

func TestVoxelNormal(t *testing.T) {
	tests := []struct {
		name   string
		origin mgl32.Vec3
		dir    mgl32.Vec3
		hitT   float32
		want   mgl32.Vec3
	}{
		{"entering +x face", mgl32.Vec3{0, 0.125, 0.625}, mgl32.Vec3{1, 0, 0}, 0.5, mgl32.Vec3{-1, 0, 0}},
		{"entering -x face", mgl32.Vec3{1, 0.125, 0.625}, mgl32.Vec3{-1, 0, 0}, 0.5, mgl32.Vec3{1, 0, 0}},
		{"entering top face", mgl32.Vec3{0.375, 1, 0.625}, mgl32.Vec3{0, -1, 0}, 0.5, mgl32.Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRay(tt.origin, tt.dir, TMax)
			r.T = tt.hitT
			assert.Equal(t, tt.want, r.VoxelNormal(4))
		})
	}
}

func TestAlbedo(t *testing.T) {
	payload := PackMaterial(3, Glass) | 0xFF8000
	c := Albedo(payload)

	assert.InDelta(t, 1.0, c.X(), 1e-6)
	assert.InDelta(t, 128.0/255.0, c.Y(), 1e-6)
	assert.InDelta(t, 0.0, c.Z(), 1e-6)
}

func TestMaterialPacking(t *testing.T) {
	list := NewMaterialList()
	require.Len(t, list.Materials, 1, "air is always index 0")

	stone := list.AddNonMetal(1.0)
	glass := list.AddGlass(1.3, 0.5)
	water := list.AddWater(1.4, 1.2)

	assert.Equal(t, uint32(1), MaterialIndex(stone))
	assert.Equal(t, NonMetal, MaterialTypeOf(stone))
	assert.Equal(t, uint32(2), MaterialIndex(glass|0x123456))
	assert.Equal(t, Glass, MaterialTypeOf(glass|0x123456))
	assert.Equal(t, Water, MaterialTypeOf(water))
	assert.Equal(t, float32(1.3), list.Lookup(glass).IOR)
	assert.Equal(t, Air, MaterialTypeOf(0x00FFFFFF))
}

func TestMaterialListOverflowPanics(t *testing.T) {
	list := NewMaterialList()
	for i := 1; i < MaxMaterials; i++ {
		list.AddMetal(0)
	}
	assert.Panics(t, func() { list.AddEmissive(2) })
}
