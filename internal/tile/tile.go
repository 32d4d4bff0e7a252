// Package tile defines the fundamental visual unit (Tile), its
// palette of named colors, and the Cell stacking model read by both
// the spatial engine (passability/transparency) and the renderer.
package tile

import "github.com/bloeys/gglm/gglm"

// Color is 8-bit RGBA, the storage form every Tile field uses.
type Color struct {
	R, G, B, A uint8
}

// Vec4 converts to the [0,1] float form the renderer's vertex buffer
// expects.
func (c Color) Vec4() gglm.Vec4 {
	return *gglm.NewVec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
}

// Transparent reports whether the color is fully transparent.
func (c Color) Transparent() bool { return c.A == 0 }

// PaletteColor is the fixed, named 22-color set rich text and configs
// reference by a single- or double-letter tag instead of raw RGBA.
type PaletteColor int

const (
	DarkRed PaletteColor = iota
	BrightRed
	DarkOrange
	BrightOrange
	Brown
	Yellow
	DarkGreen
	BrightGreen
	DarkBlue
	BrightBlue
	DarkPurple
	BrightPurple
	DarkCyan
	BrightCyan
	DarkMagenta
	BrightMagenta
	Gold
	Black
	DarkGrey
	BrightGrey
	White
	Transparent
)

var paletteRGBA = [...]Color{
	DarkRed:       {115, 24, 45, 255},
	BrightRed:     {223, 62, 35, 255},
	DarkOrange:    {250, 106, 10, 255},
	BrightOrange:  {249, 163, 27, 255},
	Brown:         {113, 65, 59, 255},
	Yellow:        {255, 252, 64, 255},
	DarkGreen:     {26, 122, 62, 255},
	BrightGreen:   {89, 193, 53, 255},
	DarkBlue:      {40, 92, 196, 255},
	BrightBlue:    {36, 159, 222, 255},
	DarkPurple:    {67, 28, 83, 255},
	BrightPurple:  {147, 112, 219, 255},
	DarkCyan:      {32, 214, 199, 255},
	BrightCyan:    {166, 252, 219, 255},
	DarkMagenta:   {121, 58, 128, 255},
	BrightMagenta: {188, 74, 155, 255},
	Gold:          {218, 165, 32, 255},
	Black:         {23, 19, 18, 255},
	DarkGrey:      {109, 117, 141, 255},
	BrightGrey:    {179, 185, 209, 255},
	White:         {255, 255, 255, 255},
	Transparent:   {0, 0, 0, 0},
}

var paletteTags = [...]string{
	DarkRed:       "r",
	BrightRed:     "R",
	DarkOrange:    "o",
	BrightOrange:  "O",
	Brown:         "w",
	Yellow:        "W",
	DarkGreen:     "g",
	BrightGreen:   "G",
	DarkBlue:      "b",
	BrightBlue:    "B",
	DarkPurple:    "p",
	BrightPurple:  "P",
	DarkCyan:      "c",
	BrightCyan:    "C",
	DarkMagenta:   "m",
	BrightMagenta: "M",
	Gold:          "$",
	Black:         "k",
	DarkGrey:      "K",
	BrightGrey:    "y",
	White:         "Y",
	Transparent:   "T",
}

var tagToPalette = func() map[string]PaletteColor {
	m := make(map[string]PaletteColor, len(paletteTags))
	for pc, tag := range paletteTags {
		m[tag] = PaletteColor(pc)
	}
	return m
}()

// RGBA returns the fixed 8-bit color for pc. Transparent always has
// a=0; every other entry is opaque.
func (pc PaletteColor) RGBA() Color { return paletteRGBA[pc] }

// Tag returns the single- or double-character format-hint string for
// pc.
func (pc PaletteColor) Tag() string { return paletteTags[pc] }

// PaletteColorFromTag is the inverse of Tag; ok is false for an
// unrecognized tag.
func PaletteColorFromTag(tag string) (PaletteColor, bool) {
	pc, ok := tagToPalette[tag]
	return pc, ok
}

// Layout positions a glyph within its tile's pixel rect.
type Layout int

const (
	LayoutCenter Layout = iota
	LayoutFloor
	LayoutText
	LayoutExact
)

// Style selects which of a font's four faces a glyph is drawn with.
type Style int

const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

// Size selects the glyph's footprint relative to one tile cell.
type Size int

const (
	Small Size = iota
	Normal
	Big
	Giant
)

// Tile is a POD visual unit: one glyph with style, size, layout,
// outline, and three independently-mutable colors.
type Tile struct {
	Glyph    rune
	Layout   Layout
	ExactX   int32
	ExactY   int32
	Style    Style
	Size     Size
	Outlined bool

	BackgroundColor Color
	ForegroundColor Color
	OutlineColor    Color

	ForegroundOpacity float32
	OutlineOpacity    float32
}

// Default returns a visually blank, opaque-black tile: a space glyph
// on an opaque black background with a transparent foreground.
func Default() Tile {
	return Tile{
		Glyph:             ' ',
		Layout:            LayoutCenter,
		Style:             Regular,
		Size:              Normal,
		BackgroundColor:   Black.RGBA(),
		ForegroundColor:   Transparent.RGBA(),
		OutlineColor:      Transparent.RGBA(),
		ForegroundOpacity: 1,
		OutlineOpacity:    1,
	}
}

// PathingProperties is the single source of truth every spatial query
// (Dijkstra, A*, FOV) reads passability/transparency through.
type PathingProperties struct {
	Passable    bool
	Transparent bool
}

// Opaque is the inverse of Transparent, matching this engine's rule
// that a cell is opaque iff it blocks movement.
func (p PathingProperties) Opaque() bool { return !p.Transparent }

// Thing is one stackable occupant of a Cell: it contributes a render
// tile and pathing properties.
type Thing struct {
	RenderTile Tile
	Pathing    PathingProperties
}

// Cell is an ordered stack of Things. Passability and transparency
// are the AND of every thing's properties; the top thing (last in the
// slice) determines the render tile when no actor occupies the cell.
type Cell struct {
	Things []Thing
}

// Pathing folds the stack's combined passability/transparency. An
// empty cell is passable and transparent.
func (c Cell) Pathing() PathingProperties {
	props := PathingProperties{Passable: true, Transparent: true}
	for _, t := range c.Things {
		props.Passable = props.Passable && t.Pathing.Passable
		props.Transparent = props.Transparent && t.Pathing.Transparent
	}
	return props
}

// RenderTile returns the top thing's tile, or a blank default tile if
// the cell is empty.
func (c Cell) RenderTile() Tile {
	if len(c.Things) == 0 {
		return Default()
	}
	return c.Things[len(c.Things)-1].RenderTile
}

// Push adds a thing to the top of the stack.
func (c *Cell) Push(t Thing) { c.Things = append(c.Things, t) }

// Remove deletes the thing at index i, preserving stack order.
func (c *Cell) Remove(i int) {
	c.Things = append(c.Things[:i], c.Things[i+1:]...)
}
