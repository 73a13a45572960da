// Package audio plays the simulation's sound cues: a one-shot collision cue
// and a looping engine cue whose loudness follows the throttle.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/terradrive/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Cue identifies a sound.
type Cue int

const (
	CueCollision Cue = iota
	CueEngine
)

func (c Cue) String() string {
	switch c {
	case CueCollision:
		return "collision"
	case CueEngine:
		return "engine"
	default:
		return fmt.Sprintf("cue(%d)", int(c))
	}
}

// Manager handles cue playback.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	format      beep.Format
	log         *zap.Logger

	cues map[Cue]*beep.Buffer

	// Engine loop
	engineCtrl   *beep.Ctrl
	engineVolume *effects.Volume

	masterVolume float64
	muted        bool

	// sfxMixer plays overlapping one-shot cues.
	sfxMixer *beep.Mixer
}

// New creates a manager with generated default cues.
func New() *Manager {
	format := beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2}
	return &Manager{
		format:       format,
		log:          logger.Named("audio"),
		masterVolume: 1.0,
		sfxMixer:     &beep.Mixer{},
		cues: map[Cue]*beep.Buffer{
			CueCollision: generate(format, collisionTone(format.SampleRate)),
			CueEngine:    generate(format, engineTone(format.SampleRate)),
		},
	}
}

// Init opens the audio device and starts the engine loop paused.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.format.SampleRate, m.format.SampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	engine := m.cues[CueEngine]
	m.engineCtrl = &beep.Ctrl{
		Streamer: &loopStreamer{buf: engine, cur: engine.Streamer(0, engine.Len())},
		Paused:   true,
	}
	m.engineVolume = &effects.Volume{Streamer: m.engineCtrl, Base: 2}
	m.applyEngineVolume(0)

	speaker.Play(m.sfxMixer, m.engineVolume)

	m.initialized = true
	m.log.Info("audio initialized", zap.Int("sample_rate", int(m.format.SampleRate)))
	return nil
}

// Close shuts down playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.engineCtrl = nil
	m.engineVolume = nil
	m.initialized = false
}

// IsInitialized returns whether the audio device is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// SetMuted silences every cue.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// LoadCue replaces a generated cue with a WAV file.
func (m *Manager) LoadCue(cue Cue, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s cue: %w", cue, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s cue: %w", cue, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != m.format.SampleRate {
		s = beep.Resample(4, format.SampleRate, m.format.SampleRate, streamer)
	}
	buf := beep.NewBuffer(m.format)
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("read %s cue: %w", cue, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cue == CueEngine && m.initialized {
		speaker.Lock()
		m.engineCtrl.Streamer = &loopStreamer{buf: buf, cur: buf.Streamer(0, buf.Len())}
		speaker.Unlock()
	}
	m.cues[cue] = buf

	m.log.Debug("cue loaded",
		zap.Stringer("cue", cue),
		zap.String("path", path),
		zap.Duration("length", m.format.SampleRate.D(buf.Len())))
	return nil
}

// Duration returns the length of a cue.
func (m *Manager) Duration(cue Cue) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buf, ok := m.cues[cue]
	if !ok {
		return 0
	}
	return m.format.SampleRate.D(buf.Len())
}

// PlayCollision plays the collision cue once. Overlapping calls mix.
func (m *Manager) PlayCollision() error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.effectiveVolume()
	buf := m.cues[CueCollision]
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}

	speaker.Lock()
	m.sfxMixer.Add(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   volumeToDb(vol),
		Silent:   vol <= 0,
	})
	speaker.Unlock()
	return nil
}

// SetEngine runs or pauses the engine loop. load in [0,1] scales its volume.
func (m *Manager) SetEngine(running bool, load float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.engineCtrl.Paused = !running
	m.applyEngineVolume(load)
	speaker.Unlock()
}

func (m *Manager) applyEngineVolume(load float64) {
	// Idle engines stay audible.
	vol := m.effectiveVolume() * (0.4 + 0.6*clamp(load, 0, 1))
	m.engineVolume.Silent = vol <= 0
	m.engineVolume.Volume = volumeToDb(vol)
}

func (m *Manager) effectiveVolume() float64 {
	if m.muted {
		return 0
	}
	return m.masterVolume
}

// volumeToDb converts a 0-1 volume to decibel scale.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	// vol=1 -> 0dB, vol=0.5 -> -6dB, vol=0.25 -> -12dB
	return 20 * math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// loopStreamer replays a buffer forever.
type loopStreamer struct {
	buf *beep.Buffer
	cur beep.StreamSeeker
}

func (l *loopStreamer) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.cur.Stream(samples[filled:])
		filled += n
		if !ok || n == 0 {
			if l.buf.Len() == 0 {
				return filled, false
			}
			if err := l.cur.Seek(0); err != nil {
				return filled, false
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.cur.Err()
}
