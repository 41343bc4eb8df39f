package voxtrace

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gekko3d/voxtrace/voxelrt/rt/core"
)

var (
	ErrInvalidEpsilon      = errors.New("epsilon exponent must be in [1, 9]")
	ErrInvalidWorldSize    = errors.New("world size must be positive")
	ErrInvalidRebuildCycle = errors.New("rebuild cycle must be at least 1")
	ErrInvalidRender       = errors.New("workers, tile size and stretch must be at least 1")
)

// Config holds the tunables of a scene and its preview renderer.
type Config struct {
	// EpsilonExponent sets the self intersection offset to 10^-EpsilonExponent.
	EpsilonExponent int
	// WorldSize is the number of voxels per world unit.
	WorldSize float32
	// RebuildCycle is the number of refits between two full BLAS rebuilds.
	RebuildCycle int

	Workers  int
	TileSize int
	Stretch  int
}

func DefaultConfig() Config {
	return Config{
		EpsilonExponent: core.DefaultEpsilonExponent,
		WorldSize:       64,
		RebuildCycle:    60,
		Workers:         runtime.NumCPU(),
		TileSize:        4,
		Stretch:         4,
	}
}

// Epsilon is the ray offset derived from EpsilonExponent.
func (c Config) Epsilon() float32 {
	return core.EpsilonFromExponent(c.EpsilonExponent)
}

func (c Config) Validate() error {
	if c.EpsilonExponent < 1 || c.EpsilonExponent > 9 {
		return fmt.Errorf("epsilon exponent %d: %w", c.EpsilonExponent, ErrInvalidEpsilon)
	}
	if !(c.WorldSize > 0) {
		return fmt.Errorf("world size %v: %w", c.WorldSize, ErrInvalidWorldSize)
	}
	if c.RebuildCycle < 1 {
		return fmt.Errorf("rebuild cycle %d: %w", c.RebuildCycle, ErrInvalidRebuildCycle)
	}
	if c.Workers < 1 || c.TileSize < 1 || c.Stretch < 1 {
		return fmt.Errorf("workers %d, tile size %d, stretch %d: %w", c.Workers, c.TileSize, c.Stretch, ErrInvalidRender)
	}
	return nil
}
