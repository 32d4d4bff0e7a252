// Package terminal owns the fixed-size cell grid every widget and the
// renderer read and write through: a grid of Tile with
// dirty tracking so the renderer only re-uploads what changed, plus a
// global opacity and background transparency mode.
package terminal

import (
	"github.com/bloeys/tessera/internal/assert"
	"github.com/bloeys/tessera/internal/grid"
	"github.com/bloeys/tessera/internal/tile"
)

// BackgroundMode selects whether the terminal's own background quads
// are drawn at all, or left to whatever the host clears the frame to.
type BackgroundMode int

const (
	BackgroundOpaque BackgroundMode = iota
	BackgroundTransparent
)

// Terminal is the cell grid owner. Its dimensions are fixed at
// construction; Resize is not supported, matching the fixed-grid
// renderer this feeds.
type Terminal struct {
	tiles *grid.GridMap[tile.Tile]

	dirty      bool
	dirtyTiles *grid.GridMap[bool]

	Opacity float32
	Mode    BackgroundMode
}

// New returns a Terminal of w x h tiles, every cell initialized to
// tile.Default().
func New(w, h int) *Terminal {
	t := &Terminal{
		tiles:      grid.NewGridMap[tile.Tile](w, h),
		dirtyTiles: grid.NewGridMap[bool](w, h),
		Opacity:    1,
		Mode:       BackgroundOpaque,
	}
	t.tiles.Fill(tile.Default())
	return t
}

func (t *Terminal) Width() int  { return t.tiles.Width() }
func (t *Terminal) Height() int { return t.tiles.Height() }

// Tile returns the tile at (x,y).
func (t *Terminal) Tile(x, y int) tile.Tile {
	return t.tiles.GetXY(x, y)
}

// SetTile replaces the tile at (x,y) wholesale and marks it dirty.
// This satisfies writer.Grid so a Writer can target a Terminal
// directly.
func (t *Terminal) SetTile(x, y int, tl tile.Tile) {
	t.tiles.SetXY(x, y, tl)
	t.markDirty(x, y)
}

// UpdateTile is an alias for SetTile.
func (t *Terminal) UpdateTile(x, y int, tl tile.Tile) { t.SetTile(x, y, tl) }

// TileFields carries only the attributes an UpdateTileFields call
// should override; a nil field leaves the existing tile's value in
// place.
type TileFields struct {
	Glyph           *rune
	Layout          *tile.Layout
	Style           *tile.Style
	Size            *tile.Size
	Outlined        *bool
	BackgroundColor *tile.Color
	ForegroundColor *tile.Color
	OutlineColor    *tile.Color
}

// UpdateTileFields overlays only the set fields of f onto the tile at
// (x,y), leaving every other attribute untouched.
func (t *Terminal) UpdateTileFields(x, y int, f TileFields) {
	tl := t.tiles.GetXY(x, y)

	if f.Glyph != nil {
		tl.Glyph = *f.Glyph
	}
	if f.Layout != nil {
		tl.Layout = *f.Layout
	}
	if f.Style != nil {
		tl.Style = *f.Style
	}
	if f.Size != nil {
		tl.Size = *f.Size
	}
	if f.Outlined != nil {
		tl.Outlined = *f.Outlined
	}
	if f.BackgroundColor != nil {
		tl.BackgroundColor = *f.BackgroundColor
	}
	if f.ForegroundColor != nil {
		tl.ForegroundColor = *f.ForegroundColor
	}
	if f.OutlineColor != nil {
		tl.OutlineColor = *f.OutlineColor
	}

	t.tiles.SetXY(x, y, tl)
	t.markDirty(x, y)
}

func (t *Terminal) markDirty(x, y int) {
	t.dirty = true
	t.dirtyTiles.SetXY(x, y, true)
}

// Dirty reports whether any tile has changed since the last
// ClearDirty.
func (t *Terminal) Dirty() bool { return t.dirty }

// TileDirty reports whether the tile at (x,y) changed since the last
// ClearDirty.
func (t *Terminal) TileDirty(x, y int) bool { return t.dirtyTiles.GetXY(x, y) }

// ClearDirty resets the dirty bit and every per-tile dirty flag; the
// renderer calls this once it has consumed a frame's changes.
func (t *Terminal) ClearDirty() {
	t.dirty = false
	t.dirtyTiles.Fill(false)
}

// Coord pairs a grid coordinate with the tile found there, yielded by
// the iterators below.
type Coord struct {
	X, Y int
	Tile tile.Tile
}

// TilesIter calls fn for every cell in column-major order (x outer, y
// inner). Consumers may rely on this order being stable.
func (t *Terminal) TilesIter(fn func(Coord)) {
	w, h := t.Width(), t.Height()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			fn(Coord{X: x, Y: y, Tile: t.tiles.GetXY(x, y)})
		}
	}
}

// DirtyTilesIter calls fn for every dirty cell, in the same
// column-major order as TilesIter.
func (t *Terminal) DirtyTilesIter(fn func(Coord)) {
	w, h := t.Width(), t.Height()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if t.dirtyTiles.GetXY(x, y) {
				fn(Coord{X: x, Y: y, Tile: t.tiles.GetXY(x, y)})
			}
		}
	}
}

// Fill sets every tile to tl and marks the whole terminal dirty.
func (t *Terminal) Fill(tl tile.Tile) {
	assert.T(t.Width() > 0 && t.Height() > 0, "terminal has zero-sized grid")
	t.tiles.Fill(tl)
	t.dirtyTiles.Fill(true)
	t.dirty = true
}
