// Package widgets provides the coordinate-only UI pieces (Button,
// ButtonList, Frame, Scrollbar, ScrollLog) that render by mutating
// tiles in a Terminal-like surface and react to the per-frame input
// state. Widgets own no GL state; they compose entirely on top of the
// writer/terminal layers.
package widgets

import (
	"github.com/bloeys/tessera/internal/grid"
	"github.com/bloeys/tessera/internal/input"
	"github.com/bloeys/tessera/internal/tile"
	"github.com/bloeys/tessera/internal/writer"
)

// ButtonState is the interaction state machine's current node.
type ButtonState int

const (
	ButtonDefault ButtonState = iota
	ButtonFocused
	ButtonPressed
)

// ButtonAction is what one Update tick produced.
type ButtonAction int

const (
	ButtonNoop ButtonAction = iota
	ButtonTriggered
)

// Button is a one-row rectangle of text. Transitions: Default→Focused
// on hover, Focused→Pressed on mouse-down, Pressed→Focused (emitting
// Triggered) on mouse-up inside, and any state→Default on hover loss.
type Button struct {
	X, Y  int
	Text  string
	State ButtonState
}

func NewButton(x, y int, text string) *Button {
	return &Button{X: x, Y: y, Text: text}
}

// Bounds is the clickable rect: the text's footprint.
func (b *Button) Bounds() grid.Rect {
	return grid.NewRect(b.X, b.Y, len([]rune(b.Text)), 1)
}

// Update advances the state machine against the frame's input state.
func (b *Button) Update(s *input.State) ButtonAction {
	if !b.Bounds().Contains(s.MouseCoord) {
		b.State = ButtonDefault
		return ButtonNoop
	}

	switch b.State {
	case ButtonDefault:
		b.State = ButtonFocused

	case ButtonFocused:
		if s.MousePressed {
			b.State = ButtonPressed
		}

	case ButtonPressed:
		if s.MouseClicked {
			b.State = ButtonFocused
			return ButtonTriggered
		}
		if !s.MousePressed {
			b.State = ButtonFocused
		}
	}
	return ButtonNoop
}

var buttonStateColors = map[ButtonState]tile.PaletteColor{
	ButtonDefault: tile.BrightGrey,
	ButtonFocused: tile.White,
	ButtonPressed: tile.Gold,
}

// Draw writes the button's text into target, colored by state.
func (b *Button) Draw(target writer.Grid) {
	fg := buttonStateColors[b.State].RGBA()
	x := b.X
	for _, r := range b.Text {
		if x >= target.Width() || b.Y >= target.Height() {
			return
		}
		t := target.Tile(x, b.Y)
		t.Glyph = r
		t.ForegroundColor = fg
		target.SetTile(x, b.Y, t)
		x++
	}
}

// ListAction is the composite result of dispatching one frame of
// input to a ButtonList.
type ListAction struct {
	// Consumed reports whether the mouse interacted with any button
	// this tick.
	Consumed bool
	// Triggered is the index of the button that fired, or -1.
	Triggered int
}

// ButtonList stacks buttons vertically, with an optional blank line
// between entries, and dispatches input to each in order.
type ButtonList struct {
	X, Y    int
	Spacing bool
	Buttons []*Button
}

func NewButtonList(x, y int, spacing bool, labels ...string) *ButtonList {
	bl := &ButtonList{X: x, Y: y, Spacing: spacing}
	for _, l := range labels {
		bl.Buttons = append(bl.Buttons, NewButton(0, 0, l))
	}
	bl.layout()
	return bl
}

func (bl *ButtonList) layout() {
	step := 1
	if bl.Spacing {
		step = 2
	}
	for i, b := range bl.Buttons {
		b.X = bl.X
		b.Y = bl.Y + i*step
	}
}

// Update dispatches the frame's input state to every button.
func (bl *ButtonList) Update(s *input.State) ListAction {
	out := ListAction{Triggered: -1}
	for i, b := range bl.Buttons {
		action := b.Update(s)
		if b.State != ButtonDefault {
			out.Consumed = true
		}
		if action == ButtonTriggered {
			out.Triggered = i
		}
	}
	return out
}

func (bl *ButtonList) Draw(target writer.Grid) {
	for _, b := range bl.Buttons {
		b.Draw(target)
	}
}
