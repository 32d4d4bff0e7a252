// Package writer drains a parsed rich-text value stream into a tile
// grid: Writer advances a cursor left-to-right with
// word-unaware wrap-on-overflow, and Wrapper is the append-only,
// word-wrapped scrollback buffer that widgets like ScrollLog read a
// visible window out of.
package writer

import (
	"github.com/bloeys/tessera/internal/richtext"
	"github.com/bloeys/tessera/internal/tile"
)

// Grid is the narrow surface Writer needs from its target: wide
// enough that terminal.Terminal satisfies it without writer importing
// terminal (which would cycle back through widgets).
type Grid interface {
	Width() int
	Height() int
	Tile(x, y int) tile.Tile
	SetTile(x, y int, t tile.Tile)
}

// Writer positions a cursor at Origin and drains rich-text values into
// Target, left to right, wrapping at Target's width and resetting to
// Origin.X on an explicit Newline value.
type Writer struct {
	Target  Grid
	OriginX int
	OriginY int
	CursorX int
	CursorY int
	Format  richtext.FormatState
}

// NewWriter returns a Writer whose cursor starts at (originX, originY).
func NewWriter(target Grid, originX, originY int) *Writer {
	return &Writer{Target: target, OriginX: originX, OriginY: originY, CursorX: originX, CursorY: originY}
}

// Write drains values into the target grid, returning false if the
// cursor ran off the bottom of the grid before all values were
// consumed.
func (w *Writer) Write(values []richtext.Value) bool {
	for _, v := range values {
		switch v.Kind {
		case richtext.KindHint:
			w.Format.ApplyHint(v)

		case richtext.KindNewline:
			if !w.advanceLine() {
				return false
			}

		case richtext.KindText:
			for _, r := range v.Text {
				if !w.writeRune(r) {
					return false
				}
			}
		}
	}
	return true
}

// writeRune writes one glyph at the cursor, advancing it (wrapping at
// Target's width), and reports whether the cursor is still in bounds.
func (w *Writer) writeRune(r rune) bool {
	if w.CursorX >= w.Target.Width() {
		if !w.advanceLine() {
			return false
		}
	}
	if w.CursorY >= w.Target.Height() {
		return false
	}

	t := w.Target.Tile(w.CursorX, w.CursorY)
	t.Glyph = r
	w.Format.Apply(&t)
	w.Target.SetTile(w.CursorX, w.CursorY, t)

	w.CursorX++
	return true
}

func (w *Writer) advanceLine() bool {
	w.CursorX = w.OriginX
	w.CursorY++
	return w.CursorY < w.Target.Height()
}

// WriteString is a convenience that parses s and writes it; a parse
// error still writes the longest valid prefix followed by a single
// visible error glyph.
func (w *Writer) WriteString(s string) error {
	values, err := richtext.Parse(s)
	w.Write(values)
	if err != nil {
		w.writeRune('?')
		return err
	}
	return nil
}
