package widgets

import (
	"strings"
	"testing"

	"github.com/bloeys/tessera/internal/grid"
	"github.com/bloeys/tessera/internal/input"
	"github.com/bloeys/tessera/internal/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func state(mousePressed, mouseClicked bool, x, y int) *input.State {
	return &input.State{
		MousePressed: mousePressed,
		MouseClicked: mouseClicked,
		MouseCoord:   grid.C(x, y),
	}
}

func TestButtonClickLifecycle(t *testing.T) {
	b := NewButton(2, 3, "Go")

	// Hover inside the text rect focuses.
	assert.Equal(t, ButtonNoop, b.Update(state(false, false, 3, 3)))
	assert.Equal(t, ButtonFocused, b.State)

	// Mouse-down presses.
	assert.Equal(t, ButtonNoop, b.Update(state(true, false, 3, 3)))
	assert.Equal(t, ButtonPressed, b.State)

	// Mouse-up inside triggers and returns to Focused.
	assert.Equal(t, ButtonTriggered, b.Update(state(false, true, 3, 3)))
	assert.Equal(t, ButtonFocused, b.State)
}

func TestButtonReleaseOutside(t *testing.T) {
	b := NewButton(2, 3, "Go")
	b.Update(state(false, false, 3, 3))
	b.Update(state(true, false, 3, 3))
	require.Equal(t, ButtonPressed, b.State)

	// Mouse-up away from the button: no trigger, back to Default.
	assert.Equal(t, ButtonNoop, b.Update(state(false, true, 10, 10)))
	assert.Equal(t, ButtonDefault, b.State)
}

func TestButtonHoverLossResets(t *testing.T) {
	b := NewButton(0, 0, "Quit")
	b.Update(state(false, false, 1, 0))
	require.Equal(t, ButtonFocused, b.State)

	b.Update(state(false, false, 9, 9))
	assert.Equal(t, ButtonDefault, b.State)
}

func TestButtonListDispatch(t *testing.T) {
	bl := NewButtonList(1, 1, true, "New", "Load", "Quit")

	// Spacing puts one blank line between buttons.
	assert.Equal(t, 1, bl.Buttons[0].Y)
	assert.Equal(t, 3, bl.Buttons[1].Y)
	assert.Equal(t, 5, bl.Buttons[2].Y)

	// Click through on the second button.
	bl.Update(state(false, false, 2, 3))
	bl.Update(state(true, false, 2, 3))
	out := bl.Update(state(false, true, 2, 3))
	assert.True(t, out.Consumed)
	assert.Equal(t, 1, out.Triggered)

	// Idle frame away from everything.
	out = bl.Update(state(false, false, 20, 20))
	assert.False(t, out.Consumed)
	assert.Equal(t, -1, out.Triggered)
}

func TestFrameDraw(t *testing.T) {
	term := terminal.New(10, 6)
	f := NewFrame(FrameDouble)
	f.TopCaption = "Log"
	f.Draw(term, grid.NewRect(0, 0, 10, 6))

	assert.Equal(t, '╔', term.Tile(0, 0).Glyph)
	assert.Equal(t, '╗', term.Tile(9, 0).Glyph)
	assert.Equal(t, '╚', term.Tile(0, 5).Glyph)
	assert.Equal(t, '╝', term.Tile(9, 5).Glyph)
	assert.Equal(t, '║', term.Tile(0, 2).Glyph)
	assert.Equal(t, '═', term.Tile(5, 5).Glyph)

	// Caption overlays the top edge after the corner.
	assert.Equal(t, 'L', term.Tile(1, 0).Glyph)
	assert.Equal(t, 'o', term.Tile(2, 0).Glyph)
	assert.Equal(t, 'g', term.Tile(3, 0).Glyph)

	// Interior untouched.
	assert.Equal(t, ' ', term.Tile(4, 3).Glyph)
}

func TestScrollbarGripMath(t *testing.T) {
	s := &Scrollbar{X: 0, Y: 0, Height: 12, ContentHeight: 50}

	assert.Equal(t, 10, s.TrackHeight())
	// round(10*10/50) = 2
	assert.Equal(t, 2, s.GripLen())

	s.CurrentLine = 0
	assert.Equal(t, 0, s.GripOffset())

	// At the true end the grip sits flush against the bottom button.
	s.CurrentLine = 40
	assert.Equal(t, 8, s.GripOffset())

	// Just before the end it must not be flush.
	s.CurrentLine = 39
	assert.Less(t, s.GripOffset(), 8)
}

func TestScrollbarShortContent(t *testing.T) {
	s := &Scrollbar{Height: 10, ContentHeight: 4}
	assert.Equal(t, 8, s.GripLen())
	assert.Equal(t, 0, s.GripOffset())
}

func TestScrollbarArrowClicks(t *testing.T) {
	s := &Scrollbar{X: 5, Y: 2, Height: 10, ContentHeight: 50, CurrentLine: 10}

	assert.Equal(t, -1, s.Update(state(false, true, 5, 2)))
	assert.Equal(t, 1, s.Update(state(false, true, 5, 11)))

	// No click, no scroll.
	assert.Equal(t, 0, s.Update(state(true, false, 5, 2)))
	// Click off the bar.
	assert.Equal(t, 0, s.Update(state(false, true, 4, 2)))
}

func TestScrollLogAppendAndScroll(t *testing.T) {
	sl := NewScrollLog(grid.NewRect(0, 0, 12, 6), 50)

	for i := 0; i < 20; i++ {
		require.NoError(t, sl.Append("line\n"))
	}
	assert.True(t, sl.Overflowing())

	// Appending while pinned to the bottom keeps the newest lines
	// visible.
	assert.Contains(t, sl.wrap.VisibleText(), "line")
	assert.Equal(t, sl.wrap.TotalLines()-sl.wrap.Height, sl.wrap.CurrentLine)

	// Up-arrow click scrolls up.
	out := sl.Update(state(false, true, 10, 1))
	assert.Equal(t, ScrollLogScrollUp, out.Kind)
	assert.Equal(t, 1, out.Lines)

	// Hovering the text area focuses.
	out = sl.Update(state(false, false, 3, 3))
	assert.Equal(t, ScrollLogFocused, out.Kind)

	// Outside the log is a no-op.
	out = sl.Update(state(false, false, 30, 30))
	assert.Equal(t, ScrollLogNoop, out.Kind)
}

func TestScrollLogDraw(t *testing.T) {
	term := terminal.New(20, 8)
	sl := NewScrollLog(grid.NewRect(0, 0, 14, 8), 50)
	require.NoError(t, sl.Append("hello\n"))
	sl.Draw(term)

	assert.Equal(t, '┌', term.Tile(0, 0).Glyph)
	assert.Equal(t, 'h', term.Tile(1, 1).Glyph)

	var row strings.Builder
	for x := 1; x < 6; x++ {
		row.WriteRune(term.Tile(x, 1).Glyph)
	}
	assert.Equal(t, "hello", row.String())
}

func TestScrollLogHistory(t *testing.T) {
	sl := NewScrollLog(grid.NewRect(0, 0, 10, 5), 3)
	for _, s := range []string{"a", "b", "c", "d"} {
		sl.Append(s + "\n")
	}
	// Ring capacity 3: the oldest entry is overwritten.
	assert.Equal(t, []string{"b\n", "c\n", "d\n"}, sl.History())
}
