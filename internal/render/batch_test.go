package render

import (
	"testing"

	"github.com/bloeys/tessera/internal/glyphs"
	"github.com/bloeys/tessera/internal/terminal"
	"github.com/bloeys/tessera/internal/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testAtlas builds a hand-filled atlas so batch tests don't need a
// font file or a GL context.
func testAtlas() *glyphs.FontAtlas {
	return &glyphs.FontAtlas{
		SizeX: 128,
		SizeY: 128,
		Metrics: glyphs.FontMetrics{
			Regular: []glyphs.GlyphMetric{
				{Codepoint: '@', X: 16, Y: 32, W: 8, H: 16, XOffset: 1, YOffset: 2},
			},
			Outline: []glyphs.GlyphMetric{
				{Codepoint: '@', X: 64, Y: 32, W: 8, H: 16},
			},
		},
	}
}

func TestBuildEmptyTerminal(t *testing.T) {
	term := terminal.New(4, 4)

	var b Batch
	b.Build(term, testAtlas(), 16, 16, tile.Black.RGBA())

	// Default tiles have a black background matching the clear color
	// and a space glyph, so nothing is emitted.
	assert.Equal(t, 0, b.BackgroundQuads)
	assert.Equal(t, 0, b.ForegroundQuads)
	assert.Empty(t, b.Background)
	assert.Empty(t, b.Foreground)
}

func TestBuildQuadBudget(t *testing.T) {
	const w, h = 5, 3
	term := fillTerm(w, h, func(tl *tile.Tile) {
		tl.Glyph = '@'
		tl.BackgroundColor = tile.DarkBlue.RGBA()
		tl.ForegroundColor = tile.White.RGBA()
		tl.OutlineColor = tile.Black.RGBA()
		tl.Outlined = true
	})

	var b Batch
	b.Build(term, testAtlas(), 16, 16, tile.Black.RGBA())

	assert.Equal(t, w*h, b.BackgroundQuads)
	assert.Equal(t, 2*w*h, b.ForegroundQuads)
	assert.LessOrEqual(t, b.Quads(), 3*w*h)

	assert.Len(t, b.Background, b.BackgroundQuads*vertsPerQuad*floatsPerVertex)
	assert.Len(t, b.Foreground, b.ForegroundQuads*vertsPerQuad*floatsPerVertex)
}

func TestBuildSkipRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*tile.Tile)
		bg, fg int
	}{
		{
			name: "space glyph skips foreground",
			mutate: func(tl *tile.Tile) {
				tl.Glyph = ' '
				tl.ForegroundColor = tile.White.RGBA()
			},
			bg: 0, fg: 0,
		},
		{
			name: "transparent foreground skips glyph",
			mutate: func(tl *tile.Tile) {
				tl.Glyph = '@'
				tl.ForegroundColor = tile.Transparent.RGBA()
			},
			bg: 0, fg: 0,
		},
		{
			name: "foreground equal to background skips glyph",
			mutate: func(tl *tile.Tile) {
				tl.Glyph = '@'
				tl.ForegroundColor = tile.DarkRed.RGBA()
				tl.BackgroundColor = tile.DarkRed.RGBA()
			},
			bg: 1, fg: 0,
		},
		{
			name: "background equal to clear color skips fill",
			mutate: func(tl *tile.Tile) {
				tl.Glyph = '@'
				tl.BackgroundColor = tile.Black.RGBA()
				tl.ForegroundColor = tile.White.RGBA()
			},
			bg: 0, fg: 1,
		},
		{
			name: "glyph missing from atlas skips foreground",
			mutate: func(tl *tile.Tile) {
				tl.Glyph = 'Z'
				tl.ForegroundColor = tile.White.RGBA()
			},
			bg: 0, fg: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tm := terminal.New(1, 1)
			tl := tile.Default()
			tc.mutate(&tl)
			tm.SetTile(0, 0, tl)

			var b Batch
			b.Build(tm, testAtlas(), 16, 16, tile.Black.RGBA())
			assert.Equal(t, tc.bg, b.BackgroundQuads)
			assert.Equal(t, tc.fg, b.ForegroundQuads)
		})
	}
}

func TestBuildTransparentBackgroundMode(t *testing.T) {
	tm := terminal.New(1, 1)
	tm.Mode = terminal.BackgroundTransparent
	tl := tile.Default()
	tl.BackgroundColor = tile.DarkBlue.RGBA()
	tm.SetTile(0, 0, tl)

	var b Batch
	b.Build(tm, testAtlas(), 16, 16, tile.Black.RGBA())
	assert.Equal(t, 0, b.BackgroundQuads)
}

func TestBuildGlyphUVAndOutlineOrder(t *testing.T) {
	tm := terminal.New(1, 1)
	tl := tile.Default()
	tl.Glyph = '@'
	tl.ForegroundColor = tile.White.RGBA()
	tl.OutlineColor = tile.Gold.RGBA()
	tl.Outlined = true
	tm.SetTile(0, 0, tl)

	atlas := testAtlas()
	var b Batch
	b.Build(tm, atlas, 16, 16, tile.Black.RGBA())
	require.Equal(t, 2, b.ForegroundQuads)

	// First vertex of the regular glyph quad: UV = metric origin
	// normalized by atlas size (16/128, 32/128).
	u0 := b.Foreground[6]
	v0 := b.Foreground[7]
	assert.InDelta(t, 16.0/128, u0, 1e-6)
	assert.InDelta(t, 32.0/128, v0, 1e-6)

	// The outline quad comes after the regular one and samples the
	// outline metric's sub-rect (x=64).
	outlineU := b.Foreground[vertsPerQuad*floatsPerVertex+6]
	assert.InDelta(t, 64.0/128, outlineU, 1e-6)
}

func TestBuildCenterLayoutOffsets(t *testing.T) {
	tm := terminal.New(1, 1)
	tl := tile.Default()
	tl.Glyph = '@'
	tl.ForegroundColor = tile.White.RGBA()
	tm.SetTile(0, 0, tl)

	var b Batch
	b.Build(tm, testAtlas(), 16, 32, tile.Black.RGBA())
	require.Equal(t, 1, b.ForegroundQuads)

	// Glyph is 8x16 in a 16x32 tile, centered: top-left at (4, 8).
	assert.InDelta(t, 4.0, b.Foreground[0], 1e-6)
	assert.InDelta(t, 8.0, b.Foreground[1], 1e-6)
}

func TestQuadIndicesPattern(t *testing.T) {
	idx := quadIndices(2)
	require.Len(t, idx, 12)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}, idx)
}

func fillTerm(w, h int, mutate func(*tile.Tile)) *terminal.Terminal {
	tm := terminal.New(w, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			tl := tile.Default()
			mutate(&tl)
			tm.SetTile(x, y, tl)
		}
	}
	return tm
}
