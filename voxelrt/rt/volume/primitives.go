package volume

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FillBox sets every cell in the inclusive range [minB, maxB], clipped to
// the grid.
func FillBox(c *Cube, minB, maxB [3]int, material, color uint32) {
	lo, hi := c.clip(minB, maxB)
	for z := lo[2]; z <= hi[2]; z++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for x := lo[0]; x <= hi[0]; x++ {
				c.Set(x, y, z, material, color)
			}
		}
	}
}

// FillSphere sets cells whose centers lie within radius of center, both in
// grid units.
func FillSphere(c *Cube, center mgl32.Vec3, radius float32, material, color uint32) {
	r2 := radius * radius
	lo, hi := c.clip(
		[3]int{
			int(math32.Floor(center.X() - radius)),
			int(math32.Floor(center.Y() - radius)),
			int(math32.Floor(center.Z() - radius)),
		},
		[3]int{
			int(math32.Ceil(center.X() + radius)),
			int(math32.Ceil(center.Y() + radius)),
			int(math32.Ceil(center.Z() + radius)),
		},
	)

	for z := lo[2]; z <= hi[2]; z++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for x := lo[0]; x <= hi[0]; x++ {
				p := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, float32(z) + 0.5}
				if p.Sub(center).LenSqr() <= r2 {
					c.Set(x, y, z, material, color)
				}
			}
		}
	}
}

// FillCone sets cells inside a cone from the base circle center to tip,
// both in grid units.
func FillCone(c *Cube, base, tip mgl32.Vec3, radius float32, material, color uint32) {
	heightVec := tip.Sub(base)
	height := heightVec.Len()
	if height < 1e-5 {
		return
	}
	axis := heightVec.Mul(1 / height)

	extent := math32.Max(radius, height)
	center := base.Add(tip).Mul(0.5)
	lo, hi := c.clip(
		[3]int{
			int(math32.Floor(center.X() - extent)),
			int(math32.Floor(center.Y() - extent)),
			int(math32.Floor(center.Z() - extent)),
		},
		[3]int{
			int(math32.Ceil(center.X() + extent)),
			int(math32.Ceil(center.Y() + extent)),
			int(math32.Ceil(center.Z() + extent)),
		},
	)

	for z := lo[2]; z <= hi[2]; z++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for x := lo[0]; x <= hi[0]; x++ {
				v := mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.5, float32(z) + 0.5}.Sub(base)
				along := v.Dot(axis)
				if along < 0 || along > height {
					continue
				}
				r := radius * (1 - along/height)
				if v.LenSqr()-along*along <= r*r {
					c.Set(x, y, z, material, color)
				}
			}
		}
	}
}

func (c *Cube) clip(minB, maxB [3]int) ([3]int, [3]int) {
	var lo, hi [3]int
	for i := 0; i < 3; i++ {
		lo[i] = clamp(minB[i], 0, c.Size[i]-1)
		hi[i] = clamp(maxB[i], 0, c.Size[i]-1)
	}
	if minB[0] >= c.Size[0] || minB[1] >= c.Size[1] || minB[2] >= c.Size[2] ||
		maxB[0] < 0 || maxB[1] < 0 || maxB[2] < 0 {
		// fully outside, produce an empty range
		hi = [3]int{-1, -1, -1}
	}
	return lo, hi
}
