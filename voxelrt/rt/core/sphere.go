package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Sphere struct {
	Center    mgl32.Vec3
	Radius    float32
	invRadius float32
	Payload   uint32
}

func NewSphere(center mgl32.Vec3, radius float32, material, color uint32) Sphere {
	return Sphere{
		Center:    center,
		Radius:    radius,
		invRadius: 1.0 / radius,
		Payload:   material | color,
	}
}

func (s *Sphere) Set(material, color uint32) {
	s.Payload = material | color
}

func (s *Sphere) Bounds() AABB {
	e := mgl32.Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: s.Center.Sub(e), Max: s.Center.Add(e)}
}

// Root returns the nearest positive intersection distance along ray, or
// false when the ray misses or both roots are behind the origin.
func (s *Sphere) Root(ray *Ray) (float32, bool) {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Dir.Dot(ray.Dir)
	halfB := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := halfB*halfB - a*c
	if disc < 0 || a == 0 {
		return 0, false
	}

	invA := 1.0 / a
	sq := math32.Sqrt(disc)
	root := (-halfB - sq) * invA
	if root <= 0 || root >= TMax {
		root = (-halfB + sq) * invA
		if root <= 0 || root >= TMax {
			return 0, false
		}
	}
	return root, true
}

// IntersectNearest records a hit on ray if the sphere is closer than ray.T.
func (s *Sphere) IntersectNearest(ray *Ray) {
	root, ok := s.Root(ray)
	if !ok || root >= ray.T {
		return
	}
	ray.T = root
	ray.Normal = ray.IntersectionPoint().Sub(s.Center).Mul(s.invRadius)
	ray.Hit = s.Payload
	ray.ID = SphereID
}

// Occludes reports whether the sphere blocks ray before ray.T. Glass does
// not block; the first glass sphere adds its radius to the tint.
func (s *Sphere) Occludes(ray *Ray, tint *Tint) bool {
	root, ok := s.Root(ray)
	if !ok || root >= ray.T {
		return false
	}
	if MaterialTypeOf(s.Payload) == Glass {
		if tint.Payload == 0 {
			tint.Distance += s.Radius
			tint.Payload = s.Payload
		}
		return false
	}
	return true
}
