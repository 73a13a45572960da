// Package game runs the interactive drive: input, simulation, audio and
// rendering once per frame.
package game

import (
	"errors"
	"fmt"
	gomath "math"
	"time"

	"github.com/google/uuid"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terradrive/internal/audio"
	"github.com/Faultbox/terradrive/internal/config"
	"github.com/Faultbox/terradrive/internal/engine/camera"
	"github.com/Faultbox/terradrive/internal/engine/input"
	"github.com/Faultbox/terradrive/internal/engine/render"
	"github.com/Faultbox/terradrive/internal/engine/screenshot"
	"github.com/Faultbox/terradrive/internal/engine/window"
	"github.com/Faultbox/terradrive/internal/game/scenario"
	"github.com/Faultbox/terradrive/internal/kinematics"
	"github.com/Faultbox/terradrive/internal/logger"
	"github.com/Faultbox/terradrive/internal/world"
	"github.com/Faultbox/terradrive/pkg/math"
)

// StepInterval is the fixed simulation step.
const StepInterval = time.Second / 60

// maxStepsPerFrame bounds catch-up after a stall.
const maxStepsPerFrame = 5

// Game is the main game instance.
type Game struct {
	config  *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *render.Renderer
	input    *input.Input
	audio    *audio.Manager

	scene     *scenario.Scene
	tankModel *render.Model
	propModel *render.Model
	bones     []math.Mat4
	propBones []math.Mat4

	chase    *camera.Chase
	overview *camera.Overview
	orbiting bool

	screenshots *screenshot.Recorder
	capture     bool

	intents map[uuid.UUID]kinematics.Intent
}

// New creates the window, loads the scene and uploads it to the GPU.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config:  cfg,
		log:     logger.Named("game"),
		input:   input.New(input.DefaultBindings()),
		audio:   audio.New(),
		intents: make(map[uuid.UUID]kinematics.Intent, 1),

		screenshots: screenshot.NewRecorder("screenshots", "terradrive"),
	}

	g.log.Info("initializing game",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height))

	var err error
	g.scene, err = scenario.New(cfg, world.WithFeedback(g.onCollision))
	if err != nil {
		return nil, fmt.Errorf("failed to load scene: %w", err)
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      "TerraDrive",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context from the window
	g.renderer, err = render.New()
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	g.renderer.LoadTerrain(g.scene.Mesh)
	g.tankModel = g.renderer.LoadModel(g.scene.Tank)
	g.propModel = g.renderer.LoadModel(g.scene.Monolith)
	g.bones = make([]math.Mat4, len(g.scene.Tank.Parts))
	g.propBones = g.scene.Monolith.RestTransforms()

	g.setupAudio()
	g.setupCameras()

	g.log.Info("game initialized")
	return g, nil
}

func (g *Game) setupAudio() {
	cfg := g.config.Audio
	if err := g.audio.Init(); err != nil {
		// Driving without sound is fine.
		g.log.Warn("audio unavailable", zap.Error(err))
		return
	}
	g.audio.SetMasterVolume(float64(cfg.MasterVolume))
	g.audio.SetMuted(cfg.Muted)

	cues := []struct {
		cue  audio.Cue
		path string
	}{
		{audio.CueCollision, cfg.CollisionCue},
		{audio.CueEngine, cfg.EngineCue},
	}
	for _, c := range cues {
		if c.path == "" {
			continue
		}
		if err := g.audio.LoadCue(c.cue, c.path); err != nil {
			g.log.Warn("keeping generated cue", zap.Stringer("cue", c.cue), zap.Error(err))
		}
	}
}

func (g *Game) setupCameras() {
	cc := g.config.Camera
	g.chase = camera.NewChase()
	g.chase.Offset = vec3(cc.Offset)
	g.chase.TargetOffset = vec3(cc.TargetOffset)
	g.chase.FollowRate = cc.FollowRate
	g.chase.Snap(g.scene.Player.State.Facing)
	g.chase.Update(g.scene.Player.State.Position, g.scene.Player.State.Facing, g.scene.Ground)

	b := g.scene.Mesh.Bounds
	g.overview = camera.NewOverview(vec3(b.Min), vec3(b.Max))
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	var lag time.Duration
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		lag += now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		// 2. Fixed-step simulation
		steps := 0
		for lag >= StepInterval && steps < maxStepsPerFrame {
			g.step()
			lag -= StepInterval
			steps++
		}
		if steps == maxStepsPerFrame {
			lag = 0
		}

		// 3. Render and present
		g.render()
		if g.capture {
			g.capture = false
			g.saveScreenshot()
		}
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.config.Window.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("TerraDrive - %d fps", frameCount))
			}
			g.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		if event.Type != input.EventKeyDown {
			continue
		}
		switch event.Key {
		case sdl.SCANCODE_C:
			g.orbiting = !g.orbiting
			if !g.orbiting {
				g.chase.Snap(g.scene.Player.State.Facing)
			}
		case sdl.SCANCODE_F3:
			if logger.Level() == "debug" {
				logger.SetLevel(g.config.Logging.Level)
			} else {
				logger.SetLevel("debug")
			}
		case sdl.SCANCODE_F11:
			g.window.SetFullscreen(!g.window.Fullscreen())
		case sdl.SCANCODE_F12:
			g.capture = true
		case sdl.SCANCODE_M:
			g.config.Audio.Muted = !g.config.Audio.Muted
			g.audio.SetMuted(g.config.Audio.Muted)
		}
	}
}

// step advances the simulation, the engine cue and the cameras by one step.
func (g *Game) step() {
	player := g.scene.Player
	in := g.input.Controls().Intent()
	g.intents[player.ID] = in

	g.scene.World.Step(g.intents)

	speed := player.State.Throttle.Speed
	running := in.Throttle != 0 || speed != 0
	g.audio.SetEngine(running, gomath.Abs(float64(speed/player.Params.TopSpeed)))

	g.chase.Update(player.State.Position, player.State.Facing, g.scene.Ground)
	g.overview.Update()
}

func (g *Game) onCollision(ev world.Event) {
	if ev.Vehicle != g.scene.Player.ID {
		return
	}
	if err := g.audio.PlayCollision(); err != nil && !errors.Is(err, audio.ErrNotInitialized) {
		g.log.Warn("collision cue failed", zap.Error(err))
	}
}

func (g *Game) render() {
	cc := g.config.Camera
	width, height := g.window.Size()

	frame := render.Frame{
		Projection: math.Perspective(cc.FOV*gomath.Pi/180, g.window.Aspect(), cc.Near, cc.Far),
		Light:      render.DefaultLight(),
		Fog: render.Fog{
			Color: math.Vec3{X: 0.62, Y: 0.7, Z: 0.78},
			Near:  cc.Far * 0.3,
			Far:   cc.Far * 0.9,
		},
	}
	if g.orbiting {
		frame.View = g.overview.ViewMatrix()
		frame.Eye = g.overview.Position()
	} else {
		frame.View = g.chase.ViewMatrix()
		frame.Eye = g.chase.Position()
	}

	g.renderer.BeginFrame(frame, width, height)
	g.renderer.DrawTerrain()

	for _, v := range g.scene.World.Vehicles() {
		v.Rig.Transforms(v.State.WheelRoll, g.bones)
		g.renderer.DrawModel(g.tankModel, v.State.Matrix(), g.bones)
	}
	for _, p := range g.scene.World.Props() {
		g.renderer.DrawModel(g.propModel, math.Translate(p.Position), g.propBones)
	}
}

func (g *Game) saveScreenshot() {
	width, height := g.window.Size()
	img, err := screenshot.FromGL(g.renderer.ReadPixels(width, height), width, height)
	if err == nil {
		var path string
		if path, err = g.screenshots.Save(img); err == nil {
			g.log.Info("screenshot saved", zap.String("path", path))
			return
		}
	}
	g.log.Warn("screenshot failed", zap.Error(err))
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	g.audio.Close()
	if g.renderer != nil {
		g.renderer.Destroy()
	}
	if g.window != nil {
		g.window.Close()
	}
}
