package main

import (
	"github.com/gekko3d/voxtrace"
	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
)

func demoScene(cfg voxtrace.Config) (*voxtrace.Scene, error) {
	materials := core.NewMaterialList()
	return voxtrace.NewSceneBuilder().
		UseConfig(cfg).
		UseLogger(logger).
		UseMaterials(materials).
		UseObjects(voxtrace.DemoObjects(cfg.WorldSize, materials)...).
		Build()
}
