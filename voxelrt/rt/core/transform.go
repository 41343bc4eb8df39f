package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RotationOrder selects how the Euler angles are composed. Owned voxel cubes
// rotate Y then X then Z, everything else X then Y then Z.
type RotationOrder int

const (
	RotateXYZ RotationOrder = iota
	RotateYXZ
)

// Transform is a local to world affine transform rotating and scaling
// around Pivot before translating.
type Transform struct {
	Scale       mgl32.Vec3
	Rotation    mgl32.Vec3 // Euler angles in radians
	Translation mgl32.Vec3
	Pivot       mgl32.Vec3
	Order       RotationOrder

	matrix  mgl32.Mat4
	inverse mgl32.Mat4
}

func NewTransform(pivot mgl32.Vec3, order RotationOrder) *Transform {
	t := &Transform{
		Scale: mgl32.Vec3{1, 1, 1},
		Pivot: pivot,
		Order: order,
	}
	t.update()
	return t
}

func (t *Transform) Set(scale, rotation, translation mgl32.Vec3) {
	t.Scale = scale
	t.Rotation = rotation
	t.Translation = translation
	t.update()
}

// SetPivot moves the rotation pivot, keeping the other components.
func (t *Transform) SetPivot(pivot mgl32.Vec3) {
	t.Pivot = pivot
	t.update()
}

func (t *Transform) update() {
	// M = T(translation) * T(pivot) * R * S * T(-pivot)
	m := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	m = m.Mul4(mgl32.Translate3D(t.Pivot.X(), t.Pivot.Y(), t.Pivot.Z()))
	m = m.Mul4(t.rotation())
	m = m.Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
	m = m.Mul4(mgl32.Translate3D(-t.Pivot.X(), -t.Pivot.Y(), -t.Pivot.Z()))

	t.matrix = m
	t.inverse = m.Inv()
}

func (t *Transform) rotation() mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(t.Rotation.X())
	ry := mgl32.HomogRotate3DY(t.Rotation.Y())
	rz := mgl32.HomogRotate3DZ(t.Rotation.Z())
	if t.Order == RotateYXZ {
		return ry.Mul4(rx).Mul4(rz)
	}
	return rx.Mul4(ry).Mul4(rz)
}

func (t *Transform) ObjectToWorld() mgl32.Mat4 {
	return t.matrix
}

func (t *Transform) WorldToObject() mgl32.Mat4 {
	return t.inverse
}

// WorldBounds transforms the 8 corners of a local box and encloses them.
func (t *Transform) WorldBounds(local AABB) AABB {
	out := EmptyAABB()
	for i := 0; i < 8; i++ {
		out.Grow(TransformPoint(t.matrix, local.Corner(i)))
	}
	return out
}

// ToLocal returns a copy of ray in object space. T is preserved since the
// direction is not renormalized.
func (t *Transform) ToLocal(ray *Ray) Ray {
	local := *ray
	local.Origin = TransformPoint(t.inverse, ray.Origin)
	local.Dir = TransformVector(t.inverse, ray.Dir)
	local.UpdateDirection()
	return local
}

// CopyHit moves a closer hit of a local ray back into the world ray.
func (t *Transform) CopyHit(local *Ray, ray *Ray, ownerID int) {
	if local.T >= ray.T {
		return
	}
	t.ReplaceHit(local, ray, ownerID)
}

// ReplaceHit unconditionally copies the hit of local into ray. The normal is
// only transformed when the hit belongs to ownerID.
func (t *Transform) ReplaceHit(local *Ray, ray *Ray, ownerID int) {
	ray.T = local.T
	ray.Hit = local.Hit
	ray.ID = local.ID
	if ray.ID == ownerID {
		n := TransformVector(t.matrix, local.Normal)
		if n.Len() > 0 {
			n = n.Normalize()
		}
		ray.Normal = n
	}
}

func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1.0)).Vec3()
}

func TransformVector(m mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(v.Vec4(0.0)).Vec3()
}
