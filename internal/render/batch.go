// Package render turns a terminal's tile grid into two batched draw
// passes per frame (background quads, then textured glyph quads with
// an optional outline overlay), streamed through double-buffered VBOs
// so the CPU fills one buffer while the GPU consumes the other.
package render

import (
	"github.com/bloeys/tessera/internal/glyphs"
	"github.com/bloeys/tessera/internal/terminal"
	"github.com/bloeys/tessera/internal/tile"
)

const (
	// floatsPerVertex is the packed vertex layout both passes share:
	// position[2], color[4], tex_coords[2]. The background shader only
	// reads position and RGB; the stride stays uniform so one layout
	// serves both VAOs.
	floatsPerVertex = 8
	vertsPerQuad    = 4
	indicesPerQuad  = 6

	bytesPerVertex = floatsPerVertex * 4
	bytesPerQuad   = vertsPerQuad * bytesPerVertex
)

// sizeScale maps a tile.Size to the glyph's footprint relative to its
// Normal extent.
var sizeScale = [...]float32{
	tile.Small:  0.5,
	tile.Normal: 1,
	tile.Big:    1.5,
	tile.Giant:  2,
}

// Batch is the CPU side of one frame: the vertex streams for both
// passes, ready to be copied into a mapped VBO back to back.
type Batch struct {
	Background []float32
	Foreground []float32

	BackgroundQuads int
	ForegroundQuads int
}

// Reset empties the batch without releasing its backing storage.
func (b *Batch) Reset() {
	b.Background = b.Background[:0]
	b.Foreground = b.Foreground[:0]
	b.BackgroundQuads = 0
	b.ForegroundQuads = 0
}

// Quads returns the total quad count across both passes. For any
// terminal state this is at most 3*w*h (one background, one glyph,
// one outline per tile).
func (b *Batch) Quads() int { return b.BackgroundQuads + b.ForegroundQuads }

// Build walks term in its stable column-major order and appends the
// frame's vertices: a background quad for every tile whose background
// is visible against clearColor, then for every visible glyph a
// textured quad, then its outline quad when the tile asks for one.
func (b *Batch) Build(term *terminal.Terminal, atlas *glyphs.FontAtlas, tileW, tileH float32, clearColor tile.Color) {
	b.Reset()

	term.TilesIter(func(tc terminal.Coord) {
		t := tc.Tile
		x0 := float32(tc.X) * tileW
		y0 := float32(tc.Y) * tileH

		if term.Mode == terminal.BackgroundOpaque &&
			!t.BackgroundColor.Transparent() && t.BackgroundColor != clearColor {
			b.appendBackground(x0, y0, tileW, tileH, t.BackgroundColor, term.Opacity)
		}

		if t.Glyph == ' ' || t.ForegroundColor.Transparent() || t.ForegroundColor == t.BackgroundColor {
			return
		}

		m, ok := atlas.Glyph(t.Glyph, false)
		if !ok {
			return
		}
		b.appendGlyph(atlas, m, t, x0, y0, tileW, tileH, t.ForegroundColor, t.ForegroundOpacity*term.Opacity)

		if t.Outlined {
			om, ok := atlas.Glyph(t.Glyph, true)
			if ok {
				b.appendGlyph(atlas, om, t, x0, y0, tileW, tileH, t.OutlineColor, t.OutlineOpacity*term.Opacity)
			}
		}
	})
}

func (b *Batch) appendBackground(x0, y0, w, h float32, c tile.Color, opacity float32) {
	col := c.Vec4()
	b.Background = appendQuad(b.Background, x0, y0, x0+w, y0+h, 0, 0, 0, 0, col.R(), col.G(), col.B(), col.A()*opacity)
	b.BackgroundQuads++
}

func (b *Batch) appendGlyph(atlas *glyphs.FontAtlas, m glyphs.GlyphMetric, t tile.Tile, x0, y0, tileW, tileH float32, c tile.Color, opacity float32) {
	scale := sizeScale[t.Size]
	gw := float32(m.W) * scale
	gh := float32(m.H) * scale

	var dx, dy float32
	switch t.Layout {
	case tile.LayoutFloor:
		dx = (tileW - gw) / 2
		dy = tileH - gh
	case tile.LayoutText:
		dx = float32(m.XOffset) * scale
		dy = float32(m.YOffset) * scale
	case tile.LayoutExact:
		dx = float32(t.ExactX)
		dy = float32(t.ExactY)
	default: // LayoutCenter
		dx = (tileW - gw) / 2
		dy = (tileH - gh) / 2
	}

	u, v, sizeU, sizeV := atlas.UV(m)
	col := c.Vec4()
	b.Foreground = appendQuad(b.Foreground, x0+dx, y0+dy, x0+dx+gw, y0+dy+gh, u, v, u+sizeU, v+sizeV, col.R(), col.G(), col.B(), col.A()*opacity)
	b.ForegroundQuads++
}

// appendQuad emits 4 vertices covering [x0,x1]x[y0,y1], CCW starting
// top-left, matching the 0,1,2 0,2,3 index pattern.
func appendQuad(out []float32, x0, y0, x1, y1, u0, v0, u1, v1, r, g, bl, a float32) []float32 {
	return append(out,
		x0, y0, r, g, bl, a, u0, v0,
		x0, y1, r, g, bl, a, u0, v1,
		x1, y1, r, g, bl, a, u1, v1,
		x1, y0, r, g, bl, a, u1, v0,
	)
}

// quadIndices fills out with the fixed [0,1,2, 0,2,3] pattern per
// quad, offset by 4 vertices each, for the static index buffer.
func quadIndices(quads int) []uint32 {
	out := make([]uint32, 0, quads*indicesPerQuad)
	for q := 0; q < quads; q++ {
		base := uint32(q * vertsPerQuad)
		out = append(out, base, base+1, base+2, base, base+2, base+3)
	}
	return out
}
