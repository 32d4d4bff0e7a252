package widgets

import (
	"github.com/bloeys/tessera/internal/grid"
	"github.com/bloeys/tessera/internal/input"
	"github.com/bloeys/tessera/internal/richtext"
	"github.com/bloeys/tessera/internal/ring"
	"github.com/bloeys/tessera/internal/tile"
	"github.com/bloeys/tessera/internal/writer"
)

// ScrollLogKind discriminates what one ScrollLog update produced.
type ScrollLogKind int

const (
	ScrollLogNoop ScrollLogKind = iota
	ScrollLogFocused
	ScrollLogInteractable
	ScrollLogScrollUp
	ScrollLogScrollDown
)

// ScrollLogAction is the update result: the kind plus the line count
// for the scroll kinds.
type ScrollLogAction struct {
	Kind  ScrollLogKind
	Lines int
}

// ScrollLog is a framed, word-wrapped, scrollable text log: a Frame
// around a Wrapper window, with a Scrollbar on the right edge that
// appears once the content overflows the visible height. Appended
// entries also land in a fixed-capacity ring so callers can replay
// recent history.
type ScrollLog struct {
	Rect grid.Rect

	Frame *Frame
	bar   Scrollbar
	wrap  *writer.Wrapper

	history *ring.Buffer[string]
}

// NewScrollLog builds a log filling r, buffering at most maxLines
// wrapped lines. The wrapped text area is r inset by the frame border
// with one column reserved for the scrollbar.
func NewScrollLog(r grid.Rect, maxLines int) *ScrollLog {
	inner := innerRect(r)
	return &ScrollLog{
		Rect:  r,
		Frame: NewFrame(FrameSingle),
		bar: Scrollbar{
			X:      r.Right() - 2,
			Y:      r.Y + 1,
			Height: inner.H,
		},
		wrap:    writer.NewWrapper(inner.W-1, inner.H, maxLines),
		history: ring.NewBuffer[string](uint64(maxLines)),
	}
}

func innerRect(r grid.Rect) grid.Rect {
	return grid.NewRect(r.X+1, r.Y+1, r.W-2, r.H-2)
}

// Append parses and word-wraps one rich-text entry into the log,
// keeping the view pinned to the newest line when it was already at
// the bottom. A parse error still keeps the longest valid prefix.
func (sl *ScrollLog) Append(text string) error {
	atBottom := sl.wrap.CurrentLine >= sl.wrap.TotalLines()-sl.wrap.Height

	sl.history.Append(text)
	err := sl.wrap.Append(text)

	if atBottom {
		sl.wrap.ScrollTo(sl.wrap.TotalLines())
	}
	sl.bar.ContentHeight = sl.wrap.TotalLines()
	sl.bar.CurrentLine = sl.wrap.CurrentLine
	return err
}

// History returns the most recent raw appended entries, oldest first.
func (sl *ScrollLog) History() []string {
	out := make([]string, 0, sl.history.Len)
	v1, v2 := sl.history.Views()
	out = append(out, v1...)
	out = append(out, v2...)
	return out
}

// Overflowing reports whether the content no longer fits the visible
// window, which is when the scrollbar is shown and mouse routing
// kicks in.
func (sl *ScrollLog) Overflowing() bool {
	return sl.wrap.TotalLines() > sl.wrap.Height
}

// Update routes the frame's mouse state: scrollbar interaction when
// the content overflows, otherwise just hover focus.
func (sl *ScrollLog) Update(in *input.State) ScrollLogAction {
	if !sl.Rect.Contains(in.MouseCoord) {
		return ScrollLogAction{Kind: ScrollLogNoop}
	}

	if !sl.Overflowing() {
		return ScrollLogAction{Kind: ScrollLogFocused}
	}

	if delta := sl.bar.Update(in); delta != 0 {
		sl.wrap.Scroll(delta)
		sl.bar.CurrentLine = sl.wrap.CurrentLine
		if delta < 0 {
			return ScrollLogAction{Kind: ScrollLogScrollUp, Lines: -delta}
		}
		return ScrollLogAction{Kind: ScrollLogScrollDown, Lines: delta}
	}

	if sl.bar.Bounds().Contains(in.MouseCoord) {
		return ScrollLogAction{Kind: ScrollLogInteractable}
	}
	return ScrollLogAction{Kind: ScrollLogFocused}
}

// Scroll moves the view by delta lines directly (e.g. from a key
// action rather than the scrollbar).
func (sl *ScrollLog) Scroll(delta int) {
	sl.wrap.Scroll(delta)
	sl.bar.CurrentLine = sl.wrap.CurrentLine
}

// Draw renders frame, visible text window, and (when overflowing) the
// scrollbar into target.
func (sl *ScrollLog) Draw(target writer.Grid) {
	sl.Frame.Draw(target, sl.Rect)

	inner := innerRect(sl.Rect)
	blank := tile.Default()
	for y := inner.Y; y < inner.Bottom(); y++ {
		for x := inner.X; x < inner.Right(); x++ {
			target.SetTile(x, y, blank)
		}
	}

	w := writer.NewWriter(&region{target: target, rect: inner}, 0, 0)
	values, _ := richtext.Parse(sl.wrap.VisibleText())
	w.Write(values)

	if sl.Overflowing() {
		sl.bar.ContentHeight = sl.wrap.TotalLines()
		sl.bar.Draw(target)
	}
}

// region adapts a sub-rect of a Grid into its own Grid so a Writer
// wraps at the region's edge instead of the full surface's.
type region struct {
	target writer.Grid
	rect   grid.Rect
}

func (r *region) Width() int  { return r.rect.W }
func (r *region) Height() int { return r.rect.H }

func (r *region) Tile(x, y int) tile.Tile {
	return r.target.Tile(r.rect.X+x, r.rect.Y+y)
}

func (r *region) SetTile(x, y int, t tile.Tile) {
	if x < 0 || y < 0 || x >= r.rect.W || y >= r.rect.H {
		return
	}
	r.target.SetTile(r.rect.X+x, r.rect.Y+y, t)
}
