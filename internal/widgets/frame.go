package widgets

import (
	"github.com/bloeys/tessera/internal/grid"
	"github.com/bloeys/tessera/internal/tile"
	"github.com/bloeys/tessera/internal/writer"
)

// FrameStyle selects which glyph set a Frame's border is drawn with.
type FrameStyle int

const (
	FrameFancy FrameStyle = iota
	FrameSingle
	FrameDouble
	FrameSimple
	FrameSystem
)

// frameGlyphs is one border glyph set: four corners plus the
// horizontal and vertical edge runes.
type frameGlyphs struct {
	tl, tr, bl, br rune
	h, v           rune
}

var frameSets = [...]frameGlyphs{
	FrameFancy:  {'╒', '╕', '╘', '╛', '═', '│'},
	FrameSingle: {'┌', '┐', '└', '┘', '─', '│'},
	FrameDouble: {'╔', '╗', '╚', '╝', '═', '║'},
	FrameSimple: {'+', '+', '+', '+', '-', '|'},
	FrameSystem: {'█', '█', '█', '█', '▀', '█'},
}

// Frame draws a border decoration around a rect, with optional
// caption strings overlaid on the top-left and bottom-right corners.
type Frame struct {
	Style         FrameStyle
	TopCaption    string
	BottomCaption string
	Color         tile.PaletteColor
}

func NewFrame(style FrameStyle) *Frame {
	return &Frame{Style: style, Color: tile.BrightGrey}
}

// Draw borders r in target. Rects smaller than 2x2 are left alone;
// there is no interior to frame.
func (f *Frame) Draw(target writer.Grid, r grid.Rect) {
	if r.W < 2 || r.H < 2 {
		return
	}

	set := frameSets[f.Style]
	fg := f.Color.RGBA()

	put := func(x, y int, g rune) {
		if x < 0 || y < 0 || x >= target.Width() || y >= target.Height() {
			return
		}
		t := target.Tile(x, y)
		t.Glyph = g
		t.ForegroundColor = fg
		target.SetTile(x, y, t)
	}

	for x := r.X + 1; x < r.Right()-1; x++ {
		put(x, r.Y, set.h)
		put(x, r.Bottom()-1, set.h)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		put(r.X, y, set.v)
		put(r.Right()-1, y, set.v)
	}
	put(r.X, r.Y, set.tl)
	put(r.Right()-1, r.Y, set.tr)
	put(r.X, r.Bottom()-1, set.bl)
	put(r.Right()-1, r.Bottom()-1, set.br)

	f.drawCaption(put, f.TopCaption, r.X+1, r.Y, r.W-2)
	bx := r.Right() - 1 - len([]rune(f.BottomCaption))
	if bx < r.X+1 {
		bx = r.X + 1
	}
	f.drawCaption(put, f.BottomCaption, bx, r.Bottom()-1, r.W-2)
}

func (f *Frame) drawCaption(put func(int, int, rune), caption string, x, y, maxLen int) {
	for i, g := range caption {
		if i >= maxLen {
			return
		}
		put(x+i, y, g)
	}
}
