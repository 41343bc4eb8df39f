package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const boundsInf = 1e30

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyAABB returns an inverted box that grows to fit the first point added.
func EmptyAABB() AABB {
	return AABB{
		Min: mgl32.Vec3{boundsInf, boundsInf, boundsInf},
		Max: mgl32.Vec3{-boundsInf, -boundsInf, -boundsInf},
	}
}

func (b AABB) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

func (b *AABB) Grow(p mgl32.Vec3) {
	b.Min = MinVec(b.Min, p)
	b.Max = MaxVec(b.Max, p)
}

func (b *AABB) GrowAABB(o AABB) {
	if o.IsEmpty() {
		return
	}
	b.Min = MinVec(b.Min, o.Min)
	b.Max = MaxVec(b.Max, o.Max)
}

func (b AABB) Union(o AABB) AABB {
	b.GrowAABB(o)
	return b
}

// Area is half the surface area, the SAH cost unit. Empty boxes have no area.
func (b AABB) Area() float32 {
	if b.IsEmpty() {
		return 0
	}
	e := b.Max.Sub(b.Min)
	return e.X()*e.Y() + e.Y()*e.Z() + e.Z()*e.X()
}

func (b AABB) Centroid() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains is inclusive on both corners.
func (b AABB) Contains(p mgl32.Vec3) bool {
	return p.X() >= b.Min.X() && p.Y() >= b.Min.Y() && p.Z() >= b.Min.Z() &&
		p.X() <= b.Max.X() && p.Y() <= b.Max.Y() && p.Z() <= b.Max.Z()
}

// ContainsAABB reports whether o lies fully inside b.
func (b AABB) ContainsAABB(o AABB) bool {
	return b.Contains(o.Min) && b.Contains(o.Max)
}

// Corner returns one of the 8 corners, bit 0/1/2 selecting max on x/y/z.
func (b AABB) Corner(i int) mgl32.Vec3 {
	c := b.Min
	if i&1 != 0 {
		c[0] = b.Max[0]
	}
	if i&2 != 0 {
		c[1] = b.Max[1]
	}
	if i&4 != 0 {
		c[2] = b.Max[2]
	}
	return c
}

// IntersectAABB is the slab test used to order BVH children. It returns the
// entry distance (negative when the origin is inside) or TMax on a miss or
// when the box starts beyond ray.T.
func IntersectAABB(ray *Ray, bmin, bmax mgl32.Vec3) float32 {
	tx1 := (bmin.X() - ray.Origin.X()) * ray.InvDir.X()
	tx2 := (bmax.X() - ray.Origin.X()) * ray.InvDir.X()
	tmin, tmax := math32.Min(tx1, tx2), math32.Max(tx1, tx2)

	ty1 := (bmin.Y() - ray.Origin.Y()) * ray.InvDir.Y()
	ty2 := (bmax.Y() - ray.Origin.Y()) * ray.InvDir.Y()
	tmin, tmax = math32.Max(tmin, math32.Min(ty1, ty2)), math32.Min(tmax, math32.Max(ty1, ty2))

	tz1 := (bmin.Z() - ray.Origin.Z()) * ray.InvDir.Z()
	tz2 := (bmax.Z() - ray.Origin.Z()) * ray.InvDir.Z()
	tmin, tmax = math32.Max(tmin, math32.Min(tz1, tz2)), math32.Min(tmax, math32.Max(tz1, tz2))

	if tmax >= tmin && tmin < ray.T && tmax > 0 {
		return tmin
	}
	return TMax
}

func MinVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Min(a[0], b[0]), math32.Min(a[1], b[1]), math32.Min(a[2], b[2])}
}

func MaxVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Max(a[0], b[0]), math32.Max(a[1], b[1]), math32.Max(a[2], b[2])}
}
