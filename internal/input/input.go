// Package input abstracts per-frame key/mouse state into a
// composite Action binding model: the host's
// event pump feeds raw key/mouse transitions in, Update() derives the
// {pressed, just_pressed, released} sets, and Action bindings are
// evaluated against that derived state so game/UI code never touches
// a raw key code directly.
package input

import (
	"time"

	"github.com/bloeys/tessera/internal/grid"
	"github.com/veandco/go-sdl2/sdl"
)

// Key is a physical key code. It is an alias for sdl.Keycode so the
// host's sdl.KeyboardEvent.Keysym.Sym can be fed in directly.
type Key = sdl.Keycode

const (
	KeyUp     = sdl.K_UP
	KeyDown   = sdl.K_DOWN
	KeyLeft   = sdl.K_LEFT
	KeyRight  = sdl.K_RIGHT
	KeyEscape = sdl.K_ESCAPE
	KeyEnter  = sdl.K_RETURN
)

// Modifier is one of the three modifier families; each evaluates true
// if either its left or right physical key is held.
type Modifier int

const (
	ModAlt Modifier = iota
	ModCtrl
	ModShift
)

var modifierKeys = map[Modifier][2]Key{
	ModAlt:   {sdl.K_LALT, sdl.K_RALT},
	ModCtrl:  {sdl.K_LCTRL, sdl.K_RCTRL},
	ModShift: {sdl.K_LSHIFT, sdl.K_RSHIFT},
}

// State is the frame-local derived input snapshot every Binding
// evaluates against.
type State struct {
	Pressed     map[Key]bool
	JustPressed map[Key]bool
	Released    map[Key]bool

	MousePressed bool
	MouseClicked bool
	MouseCoord   grid.Coord
}

func newState() State {
	return State{
		Pressed:     map[Key]bool{},
		JustPressed: map[Key]bool{},
		Released:    map[Key]bool{},
	}
}

// Binding is one clause of a composite Action. An Action is pressed
// iff every one of its Bindings evaluates true.
type Binding interface {
	Eval(s *State) bool
}

// SpecificKey requires Key to be currently held down.
type SpecificKey struct{ Key Key }

func (b SpecificKey) Eval(s *State) bool { return s.Pressed[b.Key] }

// ModifierKey requires either physical key of Mod to be held down.
type ModifierKey struct{ Mod Modifier }

func (b ModifierKey) Eval(s *State) bool {
	keys := modifierKeys[b.Mod]
	return s.Pressed[keys[0]] || s.Pressed[keys[1]]
}

// ExcludeSpecificKey requires Key to NOT be held down.
type ExcludeSpecificKey struct{ Key Key }

func (b ExcludeSpecificKey) Eval(s *State) bool { return !s.Pressed[b.Key] }

// ExcludeModifierKey requires neither physical key of Mod to be held.
type ExcludeModifierKey struct{ Mod Modifier }

func (b ExcludeModifierKey) Eval(s *State) bool {
	keys := modifierKeys[b.Mod]
	return !s.Pressed[keys[0]] && !s.Pressed[keys[1]]
}

// Action is a composite binding: pressed iff every clause evaluates
// true against the current State.
type Action []Binding

// NewKeyAction returns a single-clause Action bound to one key, the
// common case.
func NewKeyAction(k Key) Action { return Action{SpecificKey{Key: k}} }

var modifierNames = map[string]Modifier{"ctrl": ModCtrl, "alt": ModAlt, "shift": ModShift}

// ActionFromNames builds a composite Action from a persisted
// Keybindings entry: each name is either a modifier
// ("ctrl", "alt", "shift"), a physical key name as recognized by
// sdl.GetKeyFromName, or either prefixed with "!" to require its
// absence instead of its presence.
func ActionFromNames(names []string) Action {
	a := make(Action, 0, len(names))
	for _, n := range names {
		exclude := false
		if len(n) > 0 && n[0] == '!' {
			exclude = true
			n = n[1:]
		}

		if mod, ok := modifierNames[n]; ok {
			if exclude {
				a = append(a, ExcludeModifierKey{Mod: mod})
			} else {
				a = append(a, ModifierKey{Mod: mod})
			}
			continue
		}

		k := sdl.GetKeyFromName(n)
		if exclude {
			a = append(a, ExcludeSpecificKey{Key: k})
		} else {
			a = append(a, SpecificKey{Key: k})
		}
	}
	return a
}

// Pressed reports whether every clause of a evaluates true.
func (a Action) Pressed(s *State) bool {
	for _, b := range a {
		if !b.Eval(s) {
			return false
		}
	}
	return len(a) > 0
}

// Input owns the current and previous frame's State and derives
// transitions between them.
type Input struct {
	cur  State
	prev State
}

func New() *Input {
	return &Input{cur: newState(), prev: newState()}
}

// SetKey records a raw key transition from the host's event pump. Call
// this as sdl.KeyboardEvent events arrive, any time before Update.
func (in *Input) SetKey(k Key, down bool) {
	if down {
		in.cur.Pressed[k] = true
	} else {
		delete(in.cur.Pressed, k)
	}
}

// SetMouse records the current mouse button/position state.
func (in *Input) SetMouse(pressed bool, coord grid.Coord) {
	in.cur.MousePressed = pressed
	in.cur.MouseCoord = coord
}

// Update derives JustPressed/Released/MouseClicked from the delta
// between this frame's and the previous frame's Pressed sets, then
// rolls cur into prev. Call once per frame after the event pump and
// before reading any Action/State.
func (in *Input) Update() {
	in.cur.JustPressed = map[Key]bool{}
	in.cur.Released = map[Key]bool{}

	for k := range in.cur.Pressed {
		if !in.prev.Pressed[k] {
			in.cur.JustPressed[k] = true
		}
	}
	for k := range in.prev.Pressed {
		if !in.cur.Pressed[k] {
			in.cur.Released[k] = true
		}
	}

	in.cur.MouseClicked = in.prev.MousePressed && !in.cur.MousePressed

	in.prev = in.cur
	next := newState()
	for k := range in.cur.Pressed {
		next.Pressed[k] = true
	}
	next.MousePressed = in.cur.MousePressed
	next.MouseCoord = in.cur.MouseCoord
	in.cur = next
}

// State returns the current frame's derived state.
func (in *Input) State() *State { return &in.prev }

// ActionPressed reports whether a is pressed this frame.
func (in *Input) ActionPressed(a Action) bool { return a.Pressed(&in.prev) }

// RepeatState is one state of the auto-repeat FSM.
type RepeatState int

const (
	RepeatReleased RepeatState = iota
	RepeatPressed
	RepeatHeld
)

// Repeat drives keyboard auto-repeat: a key first firing immediately
// on press, then (after InitialStep) firing every HeldStep while held.
type Repeat struct {
	InitialStep time.Duration
	HeldStep    time.Duration

	state      RepeatState
	transition time.Time
	nextFire   time.Time
}

// NewRepeat returns a Repeat in the Released state.
func NewRepeat(initialStep, heldStep time.Duration) *Repeat {
	return &Repeat{InitialStep: initialStep, HeldStep: heldStep, state: RepeatReleased}
}

// Update advances the FSM for one tick at time now given whether the
// bound key/action is currently held, and reports whether it should
// fire this tick.
func (r *Repeat) Update(down bool, now time.Time) (fire bool) {
	if !down {
		r.state = RepeatReleased
		return false
	}

	switch r.state {
	case RepeatReleased:
		r.state = RepeatPressed
		r.transition = now
		r.nextFire = now.Add(r.InitialStep)
		return true

	case RepeatPressed:
		if !now.Before(r.nextFire) {
			r.state = RepeatHeld
			r.nextFire = now.Add(r.HeldStep)
			return true
		}
		return false

	default: // RepeatHeld
		if !now.Before(r.nextFire) {
			r.nextFire = now.Add(r.HeldStep)
			return true
		}
		return false
	}
}

// State reports the FSM's current state.
func (r *Repeat) State() RepeatState { return r.state }
