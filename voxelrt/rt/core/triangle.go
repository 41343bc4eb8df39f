package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

const triangleEpsilon = 0.0001

type Triangle struct {
	A, B, C  mgl32.Vec3
	Centroid mgl32.Vec3
	Payload  uint32
}

func NewTriangle(a, b, c mgl32.Vec3, material, color uint32) Triangle {
	return Triangle{
		A:        a,
		B:        b,
		C:        c,
		Centroid: a.Add(b).Add(c).Mul(1.0 / 3.0),
		Payload:  material | color,
	}
}

func (tri *Triangle) Set(material, color uint32) {
	tri.Payload = material | color
}

func (tri *Triangle) Bounds() AABB {
	b := EmptyAABB()
	b.Grow(tri.A)
	b.Grow(tri.B)
	b.Grow(tri.C)
	return b
}

// Intersect is Möller–Trumbore. The returned distance is in units of
// ray.Dir so it can be compared with ray.T directly.
func (tri *Triangle) Intersect(ray *Ray) (float32, bool) {
	dirLen := ray.Dir.Len()
	if dirLen == 0 {
		return 0, false
	}
	dir := ray.Dir.Mul(1.0 / dirLen)

	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)
	h := dir.Cross(e2)
	a := e1.Dot(h)
	if a > -triangleEpsilon && a < triangleEpsilon {
		// parallel
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Sub(tri.A)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * e2.Dot(q)
	if t <= triangleEpsilon {
		return 0, false
	}
	return t / dirLen, true
}

// IntersectNearest records a hit with a normal facing against the ray.
func (tri *Triangle) IntersectNearest(ray *Ray) {
	t, ok := tri.Intersect(ray)
	if !ok || t >= ray.T {
		return
	}
	n := tri.C.Sub(tri.A).Cross(tri.B.Sub(tri.A)).Normalize()
	if ray.Dir.Dot(n) > 0 {
		n = n.Mul(-1)
	}
	ray.T = t
	ray.Normal = n
	ray.Hit = tri.Payload
	ray.ID = TriangleID
}

// Occludes reports whether the triangle blocks ray before ray.T. Glass adds
// a fixed 1.5 unit tint distance for the first glass hit and never blocks.
func (tri *Triangle) Occludes(ray *Ray, tint *Tint) bool {
	t, ok := tri.Intersect(ray)
	if !ok || t >= ray.T {
		return false
	}
	if MaterialTypeOf(tri.Payload) == Glass {
		if tint.Payload == 0 {
			tint.Distance += 1.5
			tint.Payload = tri.Payload
		}
		return false
	}
	return true
}
