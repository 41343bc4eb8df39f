package voxtrace

import (
	"fmt"

	"github.com/gekko3d/voxtrace/voxelrt/rt/bvh"
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
)

type SceneBuilder struct {
	config    Config
	logger    Logger
	materials *core.MaterialList
	objects   []bvh.Object
}

func NewSceneBuilder() *SceneBuilder {
	return &SceneBuilder{
		config: DefaultConfig(),
		logger: NewNopLogger(),
	}
}

func (b *SceneBuilder) UseConfig(cfg Config) *SceneBuilder {
	b.config = cfg

	return b
}

func (b *SceneBuilder) UseLogger(logger Logger) *SceneBuilder {
	b.logger = logger

	return b
}

// UseEpsilon sets the ray offset to 10^-exponent.
func (b *SceneBuilder) UseEpsilon(exponent int) *SceneBuilder {
	b.config.EpsilonExponent = exponent

	return b
}

func (b *SceneBuilder) UseRebuildCycle(frames int) *SceneBuilder {
	b.config.RebuildCycle = frames

	return b
}

func (b *SceneBuilder) UseMaterials(materials *core.MaterialList) *SceneBuilder {
	b.materials = materials

	return b
}

func (b *SceneBuilder) UseObjects(objects ...bvh.Object) *SceneBuilder {
	b.objects = append(b.objects, objects...)

	return b
}

// Build validates the configuration, adds the objects in order and builds
// all acceleration structures.
func (b *SceneBuilder) Build() (*Scene, error) {
	if err := b.config.Validate(); err != nil {
		return nil, fmt.Errorf("voxtrace: invalid config: %w", err)
	}

	materials := b.materials
	if materials == nil {
		materials = core.NewMaterialList()
	}

	scene := newScene(b.config, b.logger, materials)
	for _, obj := range b.objects {
		scene.Add(obj)
	}
	scene.Build()

	return scene, nil
}
