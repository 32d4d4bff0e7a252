package glyphs

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// fakeFace is a minimal monospaced font.Face stand-in so atlas
// construction can be exercised without shipping a real TTF.
type fakeFace struct{}

func (fakeFace) Close() error { return nil }

func (fakeFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	rect := image.Rect(dot.X.Floor(), dot.Y.Ceil()-10, dot.X.Floor()+8, dot.Y.Ceil()+2)
	mask := image.NewAlpha(rect)
	for i := range mask.Pix {
		mask.Pix[i] = 0xff
	}
	return rect, mask, image.Point{}, fixed.I(8), true
}

func (fakeFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: 0, Y: -fixed.I(10)},
		Max: fixed.Point26_6{X: fixed.I(8), Y: fixed.I(2)},
	}, fixed.I(8), true
}

func (fakeFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) { return fixed.I(8), true }
func (fakeFace) Kern(r0, r1 rune) fixed.Int26_6            { return 0 }
func (fakeFace) Metrics() font.Metrics                     { return font.Metrics{} }

func TestBuildFromFaceCoversCodepage437(t *testing.T) {
	atlas, err := buildFromFace(fakeFace{})
	require.NoError(t, err)

	assert.Len(t, atlas.Metrics.Regular, len(codepage437))
	assert.Len(t, atlas.Metrics.Outline, len(codepage437))
	assert.Greater(t, atlas.SizeX, 0)
	assert.Greater(t, atlas.SizeY, 0)
}

func TestBuildFromFaceMetricsStayInBounds(t *testing.T) {
	atlas, err := buildFromFace(fakeFace{})
	require.NoError(t, err)

	for _, m := range atlas.Metrics.Regular {
		assert.LessOrEqual(t, int(m.X+m.W), atlas.SizeX)
		assert.LessOrEqual(t, int(m.Y+m.H), atlas.SizeY)
	}
}

func TestSaveImgToPNGWritesFile(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	path := filepath.Join(t.TempDir(), "atlas.png")

	require.NoError(t, SaveImgToPNG(img, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
