// Package input turns SDL2 events and keyboard state into driving controls.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/terradrive/internal/kinematics"
)

// EventType classifies events the simulation reacts to.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Bindings maps each driving control to the keys that trigger it.
type Bindings struct {
	Left     []sdl.Scancode
	Right    []sdl.Scancode
	Forward  []sdl.Scancode
	Backward []sdl.Scancode
	Brake    []sdl.Scancode
}

// DefaultBindings drives with WASD or the arrow keys and brakes with space.
func DefaultBindings() Bindings {
	return Bindings{
		Left:     []sdl.Scancode{sdl.SCANCODE_A, sdl.SCANCODE_LEFT},
		Right:    []sdl.Scancode{sdl.SCANCODE_D, sdl.SCANCODE_RIGHT},
		Forward:  []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_UP},
		Backward: []sdl.Scancode{sdl.SCANCODE_S, sdl.SCANCODE_DOWN},
		Brake:    []sdl.Scancode{sdl.SCANCODE_SPACE},
	}
}

// Input handles all input processing.
type Input struct {
	bindings Bindings
	events   []Event
	keys     []uint8
}

// New creates an input handler with the given bindings.
func New(b Bindings) *Input {
	return &Input{
		bindings: b,
		events:   make([]Event, 0, 16),
	}
}

// Update polls SDL events and snapshots the keyboard.
// Returns true if the user asked to quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
				if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					quit = true
				}
			}
		}
	}

	i.keys = sdl.GetKeyboardState()
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Controls returns the driving controls held at the last Update.
func (i *Input) Controls() kinematics.Controls {
	return i.bindings.Controls(i.keys)
}

// Controls reads held controls from an SDL keyboard state array.
func (b Bindings) Controls(keys []uint8) kinematics.Controls {
	return kinematics.Controls{
		Left:     anyHeld(keys, b.Left),
		Right:    anyHeld(keys, b.Right),
		Forward:  anyHeld(keys, b.Forward),
		Backward: anyHeld(keys, b.Backward),
		Brake:    anyHeld(keys, b.Brake),
	}
}

func anyHeld(keys []uint8, codes []sdl.Scancode) bool {
	for _, c := range codes {
		if int(c) < len(keys) && keys[c] != 0 {
			return true
		}
	}
	return false
}
