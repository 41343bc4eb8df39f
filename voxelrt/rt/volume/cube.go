package volume

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

// Glass cells add this many grid units to a shadow ray's tint distance.
const GlassTintPerCell = 1.0

type voxelMemory struct {
	index int
	value uint32
}

// Cube is a dense voxel grid occupying [0, Size/WorldSize] in local space.
// Cells are packed payloads, zero is air.
type Cube struct {
	ID     int
	Size   [3]int
	Bounds core.AABB

	WorldSize float32
	voxelSize float32

	pitch int
	slice int

	Voxels []uint32
	memory []voxelMemory
}

// NewCube allocates a zeroed grid. worldSize is the number of voxels per
// local unit.
func NewCube(size [3]int, worldSize float32) *Cube {
	if worldSize <= 0 {
		panic(fmt.Sprintf("cube world size must be positive, got %v", worldSize))
	}
	c := &Cube{WorldSize: worldSize, voxelSize: 1.0 / worldSize}
	c.Initialize(size)
	return c
}

// Initialize reallocates the grid, dropping all cells and the undo log.
func (c *Cube) Initialize(size [3]int) {
	if size[0] <= 0 || size[1] <= 0 || size[2] <= 0 {
		panic(fmt.Sprintf("cube size must be positive, got %v", size))
	}
	c.Size = size
	c.pitch = size[0]
	c.slice = size[0] * size[1]
	c.Voxels = make([]uint32, c.slice*size[2])
	c.memory = make([]voxelMemory, 0, size[0]+size[1]+size[2])

	c.Bounds = core.AABB{
		Max: mgl32.Vec3{float32(size[0]), float32(size[1]), float32(size[2])}.Mul(c.voxelSize),
	}
}

// VoxelSize is the local edge length of a single cell.
func (c *Cube) VoxelSize() float32 {
	return c.voxelSize
}

func (c *Cube) Index(x, y, z int) int {
	if x < 0 || y < 0 || z < 0 || x >= c.Size[0] || y >= c.Size[1] || z >= c.Size[2] {
		panic(fmt.Sprintf("voxel (%d,%d,%d) outside cube of size %v", x, y, z, c.Size))
	}
	return x + y*c.pitch + z*c.slice
}

func (c *Cube) Set(x, y, z int, material, color uint32) {
	c.Voxels[c.Index(x, y, z)] = material | color
}

func (c *Cube) Get(x, y, z int) uint32 {
	return c.Voxels[c.Index(x, y, z)]
}

// Count returns the number of non-air cells.
func (c *Cube) Count() int {
	n := 0
	for _, v := range c.Voxels {
		if v != 0 {
			n++
		}
	}
	return n
}

// Intersect returns the entry distance of a ray starting outside the grid,
// or core.TMax.
func (c *Cube) Intersect(ray *core.Ray) float32 {
	t := core.IntersectAABB(ray, c.Bounds.Min, c.Bounds.Max)
	if t <= 0 {
		return core.TMax
	}
	return t
}

func (c *Cube) Contains(p mgl32.Vec3) bool {
	return c.Bounds.Contains(p)
}

// Direction components below this are treated as parallel to the axis.
const parallelDir = 1e-7

type ddaState struct {
	cell   [3]int
	step   [3]int
	t      float32
	tDelta mgl32.Vec3
	tMax   mgl32.Vec3
}

// setupDDA finds the starting cell and per axis boundary distances.
func (c *Cube) setupDDA(ray *core.Ray, s *ddaState) bool {
	s.t = 0
	if !c.Contains(ray.Origin) {
		s.t = c.Intersect(ray)
		if s.t >= core.TMax {
			return false
		}
	}

	dirLen := ray.Dir.Len()
	if dirLen == 0 {
		return false
	}
	// nudge into the cell the ray entered
	pos := ray.Origin.Add(ray.Dir.Mul(s.t)).Add(ray.Dir.Mul(ray.Epsilon / dirLen)).Mul(c.WorldSize)

	for i := 0; i < 3; i++ {
		s.cell[i] = clamp(int(math32.Floor(pos[i])), 0, c.Size[i]-1)
		s.step[i] = 1 - 2*int(ray.DSign[i])
		if math32.Abs(ray.Dir[i]) < parallelDir {
			// never crosses a boundary on this axis
			s.tDelta[i] = math32.Inf(1)
			s.tMax[i] = math32.Inf(1)
			continue
		}
		s.tDelta[i] = c.voxelSize * float32(s.step[i]) * ray.InvDir[i]
		boundary := float32(s.cell[i]+1-int(ray.DSign[i])) * c.voxelSize
		s.tMax[i] = (boundary - ray.Origin[i]) * ray.InvDir[i]
	}
	return true
}

// advance steps into the neighbouring cell across the nearest boundary.
// It returns false once the walk leaves the grid.
func (c *Cube) advance(s *ddaState) bool {
	var axis int
	if s.tMax[0] < s.tMax[1] {
		if s.tMax[0] < s.tMax[2] {
			axis = 0
		} else {
			axis = 2
		}
	} else {
		if s.tMax[1] < s.tMax[2] {
			axis = 1
		} else {
			axis = 2
		}
	}

	s.t = s.tMax[axis]
	s.cell[axis] += s.step[axis]
	if s.cell[axis] < 0 || s.cell[axis] >= c.Size[axis] {
		return false
	}
	s.tMax[axis] += s.tDelta[axis]
	return true
}

func (c *Cube) cellIndex(s *ddaState) int {
	return s.cell[0] + s.cell[1]*c.pitch + s.cell[2]*c.slice
}

// FindNearest records the first non-air cell closer than ray.T.
func (c *Cube) FindNearest(ray *core.Ray) {
	var s ddaState
	if !c.setupDDA(ray, &s) {
		return
	}

	for s.t <= ray.T {
		if cell := c.Voxels[c.cellIndex(&s)]; cell != 0 {
			if s.t < ray.T {
				ray.T = s.t
				ray.Hit = cell
				ray.ID = c.ID
				ray.Normal = ray.VoxelNormal(c.WorldSize)
			}
			return
		}
		if !c.advance(&s) {
			return
		}
	}
}

// FindOcclusion reports whether a non-air, non-glass cell lies before
// ray.T. Glass cells tint instead of blocking.
func (c *Cube) FindOcclusion(ray *core.Ray, tint *core.Tint) bool {
	var s ddaState
	if !c.setupDDA(ray, &s) {
		return false
	}

	for s.t < ray.T {
		cell := c.Voxels[c.cellIndex(&s)]
		if core.MaterialTypeOf(cell) == core.Glass {
			tint.Distance += GlassTintPerCell
			if tint.Payload == 0 {
				tint.Payload = cell
			}
		} else if cell != 0 {
			return true
		}
		if !c.advance(&s) {
			return false
		}
	}
	return false
}

// FindMaterialExit walks from inside a volume of materialType and stops at
// the first cell of another type. Leaving the grid counts as exiting to air.
func (c *Cube) FindMaterialExit(ray *core.Ray, materialType core.MaterialType) {
	var s ddaState
	if !c.setupDDA(ray, &s) {
		ray.Hit = 0
		return
	}

	for {
		cell := c.Voxels[c.cellIndex(&s)]
		if core.MaterialTypeOf(cell) != materialType {
			ray.T = s.t
			ray.Hit = cell
			ray.Normal = ray.VoxelNormal(c.WorldSize)
			return
		}
		if !c.advance(&s) {
			break
		}
	}

	ray.T = s.t
	ray.Hit = 0
	ray.Normal = ray.VoxelNormal(c.WorldSize)
}

// EraseVoxels clears every non-air cell up to ray.T and remembers the old
// values for RestoreVoxelMemory.
func (c *Cube) EraseVoxels(ray *core.Ray) bool {
	var s ddaState
	if !c.setupDDA(ray, &s) {
		return false
	}

	erased := false
	for s.t <= ray.T {
		idx := c.cellIndex(&s)
		if cell := c.Voxels[idx]; cell != 0 {
			c.memory = append(c.memory, voxelMemory{index: idx, value: cell})
			c.Voxels[idx] = 0
			erased = true
		}
		if !c.advance(&s) {
			break
		}
	}
	return erased
}

// RestoreVoxelMemory replays the undo log in order and clears it.
func (c *Cube) RestoreVoxelMemory() {
	for _, m := range c.memory {
		c.Voxels[m.index] = m.value
	}
	c.memory = c.memory[:0]
}

// MemoryLen is the number of pending undo entries.
func (c *Cube) MemoryLen() int {
	return len(c.memory)
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
