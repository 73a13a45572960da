// Package config handles simulation configuration loading and management.
package config

import (
	"github.com/Faultbox/terradrive/internal/kinematics"
	"github.com/Faultbox/terradrive/internal/terrain"
)

// Config holds all settings.
type Config struct {
	Window  WindowConfig      `yaml:"window"`
	Audio   AudioConfig       `yaml:"audio"`
	Terrain TerrainConfig     `yaml:"terrain"`
	Vehicle kinematics.Params `yaml:"vehicle"`
	Camera  CameraConfig      `yaml:"camera"`
	Logging LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowFPS    bool `yaml:"show_fps"`
}

// AudioConfig holds audio cue settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	Muted        bool    `yaml:"muted"`
	// CollisionCue and EngineCue are sound files; empty uses a generated tone.
	CollisionCue string `yaml:"collision_cue"`
	EngineCue    string `yaml:"engine_cue"`
}

// TerrainConfig selects where the terrain comes from and how it is built.
// A prebuilt File wins over Heightmap, which wins over generated noise.
type TerrainConfig struct {
	File      string          `yaml:"file"`
	Heightmap string          `yaml:"heightmap"`
	Build     terrain.Options `yaml:",inline"`
	Noise     NoiseConfig     `yaml:"noise"`
}

// NoiseConfig controls the procedural fallback terrain.
type NoiseConfig struct {
	Width     int     `yaml:"width"`
	Depth     int     `yaml:"depth"`
	Seed      int64   `yaml:"seed"`
	Frequency float64 `yaml:"frequency"`
	Octaves   int32   `yaml:"octaves"`
}

// CameraConfig holds chase camera settings.
type CameraConfig struct {
	Offset       [3]float32 `yaml:"offset"`
	TargetOffset [3]float32 `yaml:"target_offset"`
	FollowRate   float32    `yaml:"follow_rate"`
	FOV          float32    `yaml:"fov"`
	Near         float32    `yaml:"near"`
	Far          float32    `yaml:"far"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			Muted:        false,
		},
		Terrain: TerrainConfig{
			Build: terrain.DefaultOptions(),
			Noise: NoiseConfig{
				Width:     128,
				Depth:     128,
				Seed:      1,
				Frequency: 0.05,
				Octaves:   4,
			},
		},
		Vehicle: kinematics.DefaultParams(),
		Camera: CameraConfig{
			Offset:       [3]float32{0, 40, 150},
			TargetOffset: [3]float32{0, 30, 0},
			FollowRate:   0.05,
			FOV:          45,
			Near:         1,
			Far:          10000,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
