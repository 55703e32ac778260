// Package input turns SDL2 events into the few gestures the harbor viewer
// understands: orbit drags, wheel zoom, resizes and keys.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventDrag
	EventScroll
	EventClick
)

// clickSlop is how far, in pixels, the pointer may travel between press
// and release for the release to count as a click.
const clickSlop = 3

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Width  int
	Height int
	// DX and DY are the drag distance in pixels.
	DX, DY float32
	// Wheel is positive when scrolling away from the user.
	Wheel float32
	// X and Y are the pointer position of a click.
	X, Y int
}

// Pointer tracks whether a drag is in progress. It is independent of SDL
// so the gesture rules can be tested.
type Pointer struct {
	held   uint8
	travel int32
}

// Press records a button going down.
func (p *Pointer) Press(button uint8) {
	if button == sdl.BUTTON_LEFT || button == sdl.BUTTON_RIGHT {
		if p.held == 0 {
			p.travel = 0
		}
		p.held |= 1 << button
	}
}

// Release records a button going up. Releasing the left button close to
// where it went down is a click.
func (p *Pointer) Release(button uint8, x, y int32) (Event, bool) {
	wasHeld := p.held&(1<<button) != 0
	p.held &^= 1 << button
	if !wasHeld || button != sdl.BUTTON_LEFT || p.travel > clickSlop {
		return Event{}, false
	}
	return Event{Type: EventClick, X: int(x), Y: int(y)}, true
}

// Dragging reports whether a drag button is held.
func (p *Pointer) Dragging() bool {
	return p.held != 0
}

// Move returns the drag produced by relative motion, if any.
func (p *Pointer) Move(xrel, yrel int32) (Event, bool) {
	if !p.Dragging() || (xrel == 0 && yrel == 0) {
		return Event{}, false
	}
	p.travel += abs(xrel) + abs(yrel)
	return Event{Type: EventDrag, DX: float32(xrel), DY: float32(yrel)}, true
}

// Scroll converts a wheel event into a zoom event. Flipped wheels are
// normalized so positive always means away from the user.
func Scroll(y float32, flipped bool) (Event, bool) {
	if flipped {
		y = -y
	}
	if y == 0 {
		return Event{}, false
	}
	return Event{Type: EventScroll, Wheel: y}, true
}

// Input handles all input processing.
type Input struct {
	events  []Event
	pointer Pointer
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			t := EventKeyUp
			if e.Type == sdl.KEYDOWN {
				t = EventKeyDown
			}
			i.events = append(i.events, Event{Type: t, Key: e.Keysym.Sym})

		case *sdl.MouseMotionEvent:
			if ev, ok := i.pointer.Move(e.XRel, e.YRel); ok {
				i.events = append(i.events, ev)
			}

		case *sdl.MouseButtonEvent:
			if e.State == sdl.PRESSED {
				i.pointer.Press(e.Button)
			} else if ev, ok := i.pointer.Release(e.Button, e.X, e.Y); ok {
				i.events = append(i.events, ev)
			}

		case *sdl.MouseWheelEvent:
			if ev, ok := Scroll(float32(e.Y), e.Direction == sdl.MOUSEWHEEL_FLIPPED); ok {
				i.events = append(i.events, ev)
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
