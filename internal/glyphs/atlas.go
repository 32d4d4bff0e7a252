// Package glyphs builds a font texture atlas covering the codepage
// 437 glyph inventory, in both a regular and an outlined face, and
// records per-glyph sub-rects as FontMetrics for the renderer.
package glyphs

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/bloeys/tessera/internal/assert"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// codepage437 is the minimum glyph inventory this engine covers: the
// printable ASCII range plus the IBM PC extended block.
var codepage437 = func() []rune {
	out := make([]rune, 0, 224)
	for r := rune(0x20); r <= 0x7e; r++ {
		out = append(out, r)
	}
	for r := rune(0xa0); r <= 0xff; r++ {
		out = append(out, r)
	}
	return out
}()

// Codepage437 returns the engine's minimum glyph inventory. The
// returned slice is a copy; callers may reorder it.
func Codepage437() []rune {
	out := make([]rune, len(codepage437))
	copy(out, codepage437)
	return out
}

// GlyphMetric is a per-codepoint atlas record: its pixel sub-rect and
// text-layout offsets.
type GlyphMetric struct {
	Codepoint        rune
	X, Y, W, H       uint32
	XOffset, YOffset int32
}

// FontMetrics pairs the regular and outlined glyph metric vectors for
// one built atlas.
type FontMetrics struct {
	Regular []GlyphMetric
	Outline []GlyphMetric
}

// FontAtlas is the built texture plus the metrics needed to address
// it.
type FontAtlas struct {
	Img     *image.RGBA
	Metrics FontMetrics

	Advance    int
	LineHeight int
	SizeX      int
	SizeY      int

	regularIdx map[rune]int
	outlineIdx map[rune]int
}

// Glyph looks up the sub-rect metrics for r, in the outline face if
// outline is set. Falls back to the replacement glyph when r isn't in
// the codepage437 inventory.
func (a *FontAtlas) Glyph(r rune, outline bool) (GlyphMetric, bool) {
	set, idx := a.Metrics.Regular, a.regularIdx
	if outline {
		set, idx = a.Metrics.Outline, a.outlineIdx
	}

	if idx == nil {
		idx = make(map[rune]int, len(set))
		for i, m := range set {
			idx[m.Codepoint] = i
		}
		if outline {
			a.outlineIdx = idx
		} else {
			a.regularIdx = idx
		}
	}

	i, ok := idx[r]
	if !ok {
		return GlyphMetric{}, false
	}
	return set[i], true
}

// UV returns m's sub-rect in normalized [0,1] texture coordinates.
func (a *FontAtlas) UV(m GlyphMetric) (u, v, sizeU, sizeV float32) {
	u = float32(m.X) / float32(a.SizeX)
	v = float32(m.Y) / float32(a.SizeY)
	sizeU = float32(m.W) / float32(a.SizeX)
	sizeV = float32(m.H) / float32(a.SizeY)
	return
}

const (
	charPaddingX     = 2
	charPaddingY     = 2
	outlineThickness = 1
	maxAtlasSize     = 8192
)

// Build reads fontFile and produces a FontAtlas containing every
// codepage437 glyph twice: once plain (for FontMetrics.Regular) and
// once with a stamped black outline (for FontMetrics.Outline), packed
// onto a shared atlas image using equally sized tiles so all glyphs
// occupy the same horizontal/vertical extent. Only monospaced fonts
// are supported.
func Build(fontFile string, pointSize float64) (*FontAtlas, error) {
	fBytes, err := os.ReadFile(fontFile)
	if err != nil {
		return nil, err
	}

	f, err := truetype.Parse(fBytes)
	if err != nil {
		return nil, err
	}

	face := truetype.NewFace(f, &truetype.Options{Size: pointSize})
	return buildFromFace(face)
}

func buildFromFace(face font.Face) (*FontAtlas, error) {
	assert.T(len(codepage437) > 0, "empty glyph inventory")

	charAdvFixed, _ := face.GlyphAdvance('L')
	charAdv := charAdvFixed.Ceil() + charPaddingX

	lineHeightFixed := fixed.Int26_6(0)
	for _, g := range codepage437 {
		gBounds, _, ok := face.GlyphBounds(g)
		if !ok {
			continue
		}
		ascent := absFixed(gBounds.Min.Y)
		descent := absFixed(gBounds.Max.Y)
		if h := ascent + descent; h > lineHeightFixed {
			lineHeightFixed = h
		}
	}
	lineHeightFixed = fixed.I(lineHeightFixed.Ceil())
	lineHeight := lineHeightFixed.Ceil()

	// Two passes (regular + outline) share the atlas, so reserve twice
	// the glyph count when sizing.
	totalTiles := len(codepage437) * 2

	atlasSizeX, atlasSizeY := 64, 64
	charsPerLine := atlasSizeX / charAdv
	maxLinesInAtlas := atlasSizeY/lineHeight - 2
	linesNeeded := int(math.Ceil(float64(totalTiles)/float64(charsPerLine))) + 1

	for linesNeeded > maxLinesInAtlas {
		atlasSizeX *= 2
		atlasSizeY *= 2
		charsPerLine = atlasSizeX / charAdv
		maxLinesInAtlas = atlasSizeY/lineHeight - 2
		linesNeeded = int(math.Ceil(float64(totalTiles)/float64(charsPerLine))) + 1
	}
	if atlasSizeX > maxAtlasSize {
		return nil, errors.New("glyphs: atlas size exceeds maximum of 8192x8192")
	}

	atlas := &FontAtlas{
		Img:        image.NewRGBA(image.Rect(0, 0, atlasSizeX, atlasSizeY)),
		Advance:    charAdv - charPaddingX,
		LineHeight: lineHeight,
		SizeX:      atlasSizeX,
		SizeY:      atlasSizeY,
	}

	draw.Draw(atlas.Img, atlas.Img.Bounds(), image.Black, image.Point{}, draw.Src)
	drawer := &font.Drawer{Dst: atlas.Img, Src: image.White, Face: face}

	charPaddingXFixed := fixed.I(charPaddingX)
	charPaddingYFixed := fixed.I(charPaddingY)
	charsOnLine := 0
	drawer.Dot = fixed.P(0, lineHeight)

	advance := func(g rune) GlyphMetric {
		gBounds, gAdvanceFixed, _ := face.GlyphBounds(g)
		bearingX := absFixed(gBounds.Min.X)

		m := GlyphMetric{
			Codepoint: g,
			X:         uint32(drawer.Dot.X.Floor()),
			Y:         uint32(drawer.Dot.Y.Ceil() - lineHeight),
			W:         uint32(atlas.Advance),
			H:         uint32(lineHeight),
			XOffset:   int32(bearingX.Ceil()),
		}

		imgRect, mask, maskp, _, _ := face.Glyph(drawer.Dot, g)
		if imgRect.Max.Y > drawer.Dot.Y.Ceil() {
			diff := imgRect.Max.Y - drawer.Dot.Y.Ceil()
			imgRect.Min.Y -= diff
			imgRect.Max.Y -= diff
		}
		draw.DrawMask(drawer.Dst, imgRect, drawer.Src, image.Point{}, mask, maskp, draw.Over)

		drawer.Dot.X += gAdvanceFixed + charPaddingXFixed
		charsOnLine++
		if charsOnLine == charsPerLine {
			charsOnLine = 0
			drawer.Dot.X = 0
			drawer.Dot.Y += lineHeightFixed + charPaddingYFixed
		}
		return m
	}

	// outlineAdvance stamps the glyph mask at the 8 neighboring pixel
	// offsets in black before drawing the glyph itself in white,
	// producing a crude but serviceable outline face without a second
	// font rasterizer.
	outlineAdvance := func(g rune) GlyphMetric {
		gBounds, gAdvanceFixed, _ := face.GlyphBounds(g)
		bearingX := absFixed(gBounds.Min.X)

		m := GlyphMetric{
			Codepoint: g,
			X:         uint32(drawer.Dot.X.Floor()),
			Y:         uint32(drawer.Dot.Y.Ceil() - lineHeight),
			W:         uint32(atlas.Advance),
			H:         uint32(lineHeight),
			XOffset:   int32(bearingX.Ceil()),
		}

		imgRect, mask, maskp, _, _ := face.Glyph(drawer.Dot, g)
		if imgRect.Max.Y > drawer.Dot.Y.Ceil() {
			diff := imgRect.Max.Y - drawer.Dot.Y.Ceil()
			imgRect.Min.Y -= diff
			imgRect.Max.Y -= diff
		}

		for oy := -outlineThickness; oy <= outlineThickness; oy++ {
			for ox := -outlineThickness; ox <= outlineThickness; ox++ {
				if ox == 0 && oy == 0 {
					continue
				}
				off := image.Pt(imgRect.Min.X+ox, imgRect.Min.Y+oy)
				draw.DrawMask(drawer.Dst, imgRect.Add(image.Pt(ox, oy)), image.Black, off, mask, maskp, draw.Over)
			}
		}
		draw.DrawMask(drawer.Dst, imgRect, drawer.Src, image.Point{}, mask, maskp, draw.Over)

		drawer.Dot.X += gAdvanceFixed + charPaddingXFixed
		charsOnLine++
		if charsOnLine == charsPerLine {
			charsOnLine = 0
			drawer.Dot.X = 0
			drawer.Dot.Y += lineHeightFixed + charPaddingYFixed
		}
		return m
	}

	atlas.Metrics.Regular = make([]GlyphMetric, 0, len(codepage437))
	for _, g := range codepage437 {
		atlas.Metrics.Regular = append(atlas.Metrics.Regular, advance(g))
	}

	atlas.Metrics.Outline = make([]GlyphMetric, 0, len(codepage437))
	for _, g := range codepage437 {
		atlas.Metrics.Outline = append(atlas.Metrics.Outline, outlineAdvance(g))
	}

	return atlas, nil
}

// SaveImgToPNG writes img to file as a PNG, used by cmd/atlasgen.
func SaveImgToPNG(img image.Image, file string) error {
	outFile, err := os.Create(file)
	if err != nil {
		return err
	}
	defer outFile.Close()

	if err := png.Encode(outFile, img); err != nil {
		return fmt.Errorf("glyphs: encode atlas png: %w", err)
	}
	return nil
}

func absFixed(x fixed.Int26_6) fixed.Int26_6 {
	if x < 0 {
		return -x
	}
	return x
}
