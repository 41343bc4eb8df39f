package voxtrace

import (
	"fmt"
	"slices"

	"github.com/gekko3d/voxtrace/voxelrt/rt/bvh"
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
	"github.com/gekko3d/voxtrace/voxelrt/rt/volume"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ObjectID is the stable handle of an object added to a scene. The object's
// position in the scene list, which is also its BLAS id, can change when
// other objects are removed.
type ObjectID string

// Scene owns the objects of a world, their top level tree and the voxels
// erased by the last EraseVoxels calls.
//
// Queries only read the scene and may run concurrently with each other.
// Add, Remove, Build, Refit, EraseVoxels and RestoreVoxels must not overlap
// with anything else.
type Scene struct {
	Config    Config
	Materials *core.MaterialList
	Profiler  *Profiler

	logger   Logger
	epsilon  float32
	objects  []bvh.Object
	handles  []ObjectID
	tlas     *bvh.TLAS
	modified []*volume.Cube
	frame    int
}

func newScene(cfg Config, logger Logger, materials *core.MaterialList) *Scene {
	return &Scene{
		Config:    cfg,
		Materials: materials,
		Profiler:  NewProfiler(),
		logger:    logger,
		epsilon:   cfg.Epsilon(),
		tlas:      bvh.NewTLAS(nil),
	}
}

func (s *Scene) Logger() Logger {
	return s.logger
}

// Epsilon is the self intersection offset carried by rays made by NewRay.
func (s *Scene) Epsilon() float32 {
	return s.epsilon
}

func (s *Scene) Len() int {
	return len(s.objects)
}

// Objects returns the scene list. Index i holds the object with BLAS id i.
func (s *Scene) Objects() []bvh.Object {
	return s.objects
}

func (s *Scene) TLAS() *bvh.TLAS {
	return s.tlas
}

// Add appends obj, assigns it the next BLAS id and rebuilds the top level
// tree.
func (s *Scene) Add(obj bvh.Object) ObjectID {
	id := ObjectID(uuid.NewString())
	obj.Base().SetID(len(s.objects))
	s.objects = append(s.objects, obj)
	s.handles = append(s.handles, id)
	s.syncTLAS()

	s.logger.Infof("added object %s as #%d (%T)", id, len(s.objects)-1, obj)
	return id
}

// Remove drops the object behind id and renumbers the ones after it.
// Voxels erased from its cube are restored first.
func (s *Scene) Remove(id ObjectID) {
	i := s.indexOf(id)
	if i < 0 {
		panic(fmt.Sprintf("voxtrace: unknown object %s", id))
	}

	if c, ok := s.objects[i].(*bvh.CubeBVH); ok {
		if j := slices.Index(s.modified, c.Cube); j >= 0 {
			c.Cube.RestoreVoxelMemory()
			s.modified = slices.Delete(s.modified, j, j+1)
		}
	}

	s.objects = slices.Delete(s.objects, i, i+1)
	s.handles = slices.Delete(s.handles, i, i+1)
	for j := i; j < len(s.objects); j++ {
		s.objects[j].Base().SetID(j)
	}
	s.syncTLAS()

	s.logger.Infof("removed object %s, %d left", id, len(s.objects))
}

func (s *Scene) Lookup(id ObjectID) (bvh.Object, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.objects[i], true
}

func (s *Scene) indexOf(id ObjectID) int {
	return slices.Index(s.handles, id)
}

func (s *Scene) syncTLAS() {
	s.tlas.Objects = s.objects
	s.tlas.Build()
}

// Build fully rebuilds every BLAS and the TLAS.
func (s *Scene) Build() {
	s.Profiler.BeginScope("rebuild")
	for _, obj := range s.objects {
		obj.Base().Build()
	}
	s.tlas.Build()
	s.Profiler.EndScope("rebuild")

	s.frame = 0
	s.Profiler.SetCount("tlas nodes", s.tlas.NodesUsed())
	s.logger.Debugf("rebuilt %d objects, %d tlas nodes", len(s.objects), s.tlas.NodesUsed())
}

// Refit is called once per frame after objects moved. Every RebuildCycle
// calls the BLAS are rebuilt from scratch, otherwise only refitted. The TLAS
// is rebuilt in both cases.
func (s *Scene) Refit() {
	s.frame++
	if s.frame >= s.Config.RebuildCycle {
		s.Build()
		return
	}

	s.Profiler.BeginScope("refit")
	for _, obj := range s.objects {
		obj.Base().Refit()
	}
	s.tlas.Rebuild()
	s.Profiler.EndScope("refit")
}

func (s *Scene) Bounds() core.AABB {
	return s.tlas.Bounds()
}

// NewRay makes an unbounded primary ray using the scene epsilon.
func (s *Scene) NewRay(origin, dir mgl32.Vec3) core.Ray {
	r := core.NewRay(origin, dir, core.TMax)
	r.Epsilon = s.epsilon
	return r
}

// NewShadowRay makes a ray from a surface point towards a target at distance
// length, pushed off the surface by the scene epsilon.
func (s *Scene) NewShadowRay(origin, dir mgl32.Vec3, length float32, source uint32) core.Ray {
	return core.NewSecondaryRay(origin, dir, length-s.epsilon, source, s.epsilon)
}

// FindNearest records the closest hit on ray and reports whether there was
// one.
func (s *Scene) FindNearest(ray *core.Ray) bool {
	s.tlas.FindNearest(ray)
	return !ray.Missed()
}

// FindNearestToPlayer is FindNearest for a ray cast by the object with
// sourceID.
func (s *Scene) FindNearestToPlayer(ray *core.Ray, sourceID int) bool {
	s.tlas.FindNearestToPlayer(ray, sourceID)
	return !ray.Missed()
}

// FindMaterialExit is called on a ray that started inside a material of type
// t and hit the same object again. Spheres and triangles are closed shells
// with air outside; cubes are walked until the material ends.
func (s *Scene) FindMaterialExit(ray *core.Ray, t core.MaterialType) {
	switch ray.ID {
	case core.SphereID:
		ray.Normal = ray.Normal.Mul(-1)
		ray.Hit = 0
	case core.TriangleID:
		ray.Hit = 0
	default:
		if ray.ID < 0 || ray.ID >= len(s.objects) {
			return
		}
		s.objects[ray.ID].Base().FindMaterialExit(ray, t)
	}
}

// IsOccluded reports whether anything opaque lies on ray before ray.T.
func (s *Scene) IsOccluded(ray *core.Ray) bool {
	var tint core.Tint
	return s.IsOccludedTint(ray, &tint)
}

// IsOccludedTint is IsOccluded that also collects the glass on the way.
func (s *Scene) IsOccludedTint(ray *core.Ray, tint *core.Tint) bool {
	return s.tlas.FindOcclusion(ray, tint)
}

// EraseVoxels clears voxels along ray in every cube it reaches. The cubes
// keep an undo log until RestoreVoxels.
func (s *Scene) EraseVoxels(ray *core.Ray) int {
	changed := s.tlas.EraseVoxels(ray)
	for _, c := range changed {
		if !slices.Contains(s.modified, c) {
			s.modified = append(s.modified, c)
		}
	}
	return len(changed)
}

// RestoreVoxels undoes every erase since the last restore.
func (s *Scene) RestoreVoxels() {
	for _, c := range s.modified {
		c.RestoreVoxelMemory()
	}
	s.modified = s.modified[:0]
}

// Modified returns the cubes with pending erasures.
func (s *Scene) Modified() []*volume.Cube {
	return s.modified
}
