// Package scenario assembles the content of a drive from configuration: the
// terrain, the player's tank and the obstacles around it.
package scenario

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/terradrive/internal/config"
	"github.com/Faultbox/terradrive/internal/engine/model"
	"github.com/Faultbox/terradrive/internal/kinematics"
	"github.com/Faultbox/terradrive/internal/logger"
	"github.com/Faultbox/terradrive/internal/terrain"
	"github.com/Faultbox/terradrive/internal/world"
	"github.com/Faultbox/terradrive/pkg/heightmap"
	"github.com/Faultbox/terradrive/pkg/math"
)

// ErrNoMesh is returned for terrain files saved without their render mesh.
var ErrNoMesh = errors.New("terrain file has no embedded mesh")

// Scene is everything a drive starts with.
type Scene struct {
	Grid   *terrain.Grid
	Mesh   *terrain.Mesh
	Ground *terrain.Engine
	World  *world.World

	// Player is the vehicle driven from the keyboard.
	Player *world.Vehicle

	Tank     *model.Model
	Monolith *model.Model
}

// LoadTerrain reads or builds the terrain named by cfg. A prebuilt file wins
// over a heightmap image, which wins over generated noise.
func LoadTerrain(cfg config.TerrainConfig) (*terrain.Grid, *terrain.Mesh, error) {
	log := logger.Named("terrain")

	if cfg.File != "" {
		grid, mesh, err := terrain.ReadFile(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		if mesh == nil {
			return nil, nil, fmt.Errorf("%w: %s", ErrNoMesh, cfg.File)
		}
		log.Info("terrain loaded",
			zap.String("file", cfg.File),
			zap.Int("width", grid.Width()),
			zap.Int("depth", grid.Depth()))
		return grid, mesh, nil
	}

	var src heightmap.Source
	if cfg.Heightmap != "" {
		log.Info("building terrain", zap.String("heightmap", cfg.Heightmap))
		img, err := heightmap.LoadImage(cfg.Heightmap)
		if err != nil {
			return nil, nil, err
		}
		src = img
	} else {
		src = heightmap.NewNoise(heightmap.NoiseConfig{
			Width:     cfg.Noise.Width,
			Depth:     cfg.Noise.Depth,
			Seed:      cfg.Noise.Seed,
			Frequency: cfg.Noise.Frequency,
			Octaves:   cfg.Noise.Octaves,
		})
	}

	mesh, grid, err := terrain.Build(src, cfg.Build)
	if err != nil {
		return nil, nil, err
	}
	return grid, mesh, nil
}

// New loads the terrain and populates it: the player's tank at the center, a
// parked tank beside it and a monolith in each quadrant.
func New(cfg *config.Config, opts ...world.Option) (*Scene, error) {
	grid, mesh, err := LoadTerrain(cfg.Terrain)
	if err != nil {
		return nil, fmt.Errorf("terrain: %w", err)
	}

	s := &Scene{
		Grid:     grid,
		Mesh:     mesh,
		Ground:   terrain.NewEngine(grid),
		Tank:     model.Tank(cfg.Vehicle.WheelRadius),
		Monolith: model.Monolith(),
	}
	s.World = world.New(s.Ground, opts...)

	rig, err := kinematics.BindWheels(s.Tank.BoneNames(), s.Tank.RestTransforms(), model.TankWheels)
	if err != nil {
		return nil, fmt.Errorf("tank rig: %w", err)
	}
	tankParts := s.Tank.Spheres()

	ex, ez := grid.Extent()

	s.Player, err = s.World.AddVehicle("player", math.Vec3{}, 0, cfg.Vehicle, tankParts)
	if err != nil {
		return nil, err
	}
	s.Player.Rig = rig

	parked, err := s.World.AddVehicle("parked", math.Vec3{X: ex / 4}, 0, cfg.Vehicle, tankParts)
	if err != nil {
		return nil, err
	}
	parked.Rig = rig
	parked.Enabled = false

	monolithParts := s.Monolith.Spheres()
	for _, q := range [][2]float32{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}} {
		pos := math.Vec3{X: q[0] * ex / 4, Z: q[1] * ez / 4}
		if _, err := s.World.AddProp("monolith", pos, monolithParts); err != nil {
			return nil, err
		}
	}
	return s, nil
}
