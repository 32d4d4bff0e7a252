package widgets

import (
	"math"

	"github.com/bloeys/tessera/internal/grid"
	"github.com/bloeys/tessera/internal/input"
	"github.com/bloeys/tessera/internal/tile"
	"github.com/bloeys/tessera/internal/writer"
)

// Scrollbar is a vertical track of Height cells: an arrow button at
// each end and a proportional grip in the Height-2 cells between
// them.
type Scrollbar struct {
	X, Y   int
	Height int

	// ContentHeight is the total line count of the scrolled content.
	ContentHeight int
	// CurrentLine is the first visible content line.
	CurrentLine int
}

// TrackHeight is the grip's travel span: the bar minus its two arrow
// buttons.
func (s *Scrollbar) TrackHeight() int { return s.Height - 2 }

// GripLen is the grip's cell length, proportional to how much of the
// content one track-worth of lines covers, never shorter than 1.
func (s *Scrollbar) GripLen() int {
	track := s.TrackHeight()
	if s.ContentHeight <= 0 || track <= 0 {
		return 1
	}
	l := int(math.Round(float64(track*track) / float64(s.ContentHeight)))
	if l < 1 {
		return 1
	}
	if l > track {
		l = track
	}
	return l
}

// GripOffset is the grip's cell offset within the track, clamped so
// the grip only touches the track's last cell when CurrentLine is at
// the true end of the content.
func (s *Scrollbar) GripOffset() int {
	track := s.TrackHeight()
	if s.ContentHeight <= 0 || track <= 0 {
		return 0
	}

	maxLine := s.ContentHeight - track
	if maxLine < 0 {
		maxLine = 0
	}

	limit := track - s.GripLen()
	if s.CurrentLine >= maxLine {
		return limit
	}

	off := int(math.Round(float64(s.CurrentLine*track) / float64(s.ContentHeight)))
	// Only the true end of the content may push the grip flush
	// against the bottom button.
	if off >= limit && limit > 0 {
		off = limit - 1
	}
	if off < 0 {
		off = 0
	}
	return off
}

// Update reads the frame's mouse state and returns the scroll delta
// (in lines) the interaction asks for: -1/+1 for the arrow buttons, a
// page for a click on the open track.
func (s *Scrollbar) Update(in *input.State) int {
	if !in.MouseClicked {
		return 0
	}

	c := in.MouseCoord
	if c.X != s.X || c.Y < s.Y || c.Y >= s.Y+s.Height {
		return 0
	}

	switch c.Y {
	case s.Y:
		return -1
	case s.Y + s.Height - 1:
		return 1
	}

	gripTop := s.Y + 1 + s.GripOffset()
	gripBot := gripTop + s.GripLen()
	switch {
	case c.Y < gripTop:
		return -s.TrackHeight()
	case c.Y >= gripBot:
		return s.TrackHeight()
	}
	return 0
}

// Bounds is the bar's full footprint including both arrow buttons.
func (s *Scrollbar) Bounds() grid.Rect {
	return grid.NewRect(s.X, s.Y, 1, s.Height)
}

// Draw renders arrows, track, and grip into target.
func (s *Scrollbar) Draw(target writer.Grid) {
	put := func(y int, g rune, fg tile.PaletteColor) {
		if s.X < 0 || y < 0 || s.X >= target.Width() || y >= target.Height() {
			return
		}
		t := target.Tile(s.X, y)
		t.Glyph = g
		t.ForegroundColor = fg.RGBA()
		target.SetTile(s.X, y, t)
	}

	put(s.Y, '▲', tile.White)
	put(s.Y+s.Height-1, '▼', tile.White)

	gripTop := 1 + s.GripOffset()
	gripBot := gripTop + s.GripLen()
	for i := 1; i <= s.TrackHeight(); i++ {
		if i >= gripTop && i < gripBot {
			put(s.Y+i, '█', tile.BrightGrey)
		} else {
			put(s.Y+i, '░', tile.DarkGrey)
		}
	}
}
