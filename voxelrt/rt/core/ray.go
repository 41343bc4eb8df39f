package core

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TMax is the "no hit" distance. A ray hit something iff T < TMax after a query.
const TMax float32 = 20000.0

// Owner ids written to Ray.ID by the primitive kernels. Voxel cubes use ids >= 0.
const (
	SphereID   = -2
	TriangleID = -1
	NoID       = math.MinInt32
)

const (
	DefaultEpsilonExponent = 5

	// reciprocal guard for (near) axis aligned directions
	minDirComponent = 1e-7
)

// EpsilonFromExponent returns 10^-exp.
func EpsilonFromExponent(exp int) float32 {
	return 1.0 / math32.Pow(10, float32(exp))
}

// Tint accumulates the approximate Beer's law attenuation of a shadow ray
// passing through glass. Only the first glass payload is kept.
type Tint struct {
	Payload  uint32
	Distance float32
}

type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
	InvDir mgl32.Vec3
	// DSign is 1 on axes where Dir is negative and 0 elsewhere.
	DSign mgl32.Vec3

	T       float32
	Epsilon float32

	Source uint32
	Hit    uint32
	Normal mgl32.Vec3
	ID     int

	// Indicators and distances kept for shading clients.
	Glass              bool
	Water              bool
	DistanceUnderwater float32
}

// NewRay creates a ray of the given length. Use TMax for an unbounded ray.
func NewRay(origin, dir mgl32.Vec3, length float32) Ray {
	r := Ray{
		Origin:  origin,
		Dir:     dir,
		T:       length,
		Epsilon: EpsilonFromExponent(DefaultEpsilonExponent),
		Normal:  mgl32.Vec3{1, 1, 1},
		ID:      NoID,
	}
	r.UpdateDirection()
	return r
}

// NewSecondaryRay creates a ray leaving a surface with the given source
// payload. The origin is pushed eps along dir to avoid self intersection.
func NewSecondaryRay(origin, dir mgl32.Vec3, length float32, source uint32, eps float32) Ray {
	r := NewRay(origin.Add(dir.Mul(eps)), dir, length)
	r.Epsilon = eps
	r.Source = source
	return r
}

// UpdateDirection recomputes InvDir and DSign after Dir changed.
func (r *Ray) UpdateDirection() {
	for i := 0; i < 3; i++ {
		d := r.Dir[i]
		neg := math32.Signbit(d)
		if math32.Abs(d) < minDirComponent {
			if neg {
				d = -minDirComponent
			} else {
				d = minDirComponent
			}
		}
		r.InvDir[i] = 1.0 / d
		if neg {
			r.DSign[i] = 1
		} else {
			r.DSign[i] = 0
		}
	}
}

func (r *Ray) IntersectionPoint() mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(r.T))
}

// Missed reports whether no query has recorded a hit.
func (r *Ray) Missed() bool {
	return r.T >= TMax
}

// VoxelNormal reconstructs the face normal at the current hit from the
// fractional position inside a grid of worldSize voxels per unit.
func (r *Ray) VoxelNormal(worldSize float32) mgl32.Vec3 {
	p := r.IntersectionPoint().Mul(worldSize)
	var d mgl32.Vec3
	for i := 0; i < 3; i++ {
		f := p[i] - math32.Floor(p[i])
		d[i] = math32.Min(f, 1-f)
	}
	minD := math32.Min(math32.Min(d[0], d[1]), d[2])

	var n mgl32.Vec3
	for i := 0; i < 3; i++ {
		if d[i] == minD {
			n[i] = r.DSign[i]*2 - 1
		}
	}
	return n
}

// Albedo returns the color of the last hit payload.
func (r *Ray) Albedo() mgl32.Vec3 {
	return Albedo(r.Hit)
}
