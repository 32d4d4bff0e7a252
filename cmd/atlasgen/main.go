// atlasgen merges per-variant bitmap-font pairs (PNG image + BMFont
// XML) into the engine's font atlases: one packed PNG plus a TOML
// metrics document per variant, under
// ./resources/font_atlases/<name>/<variant>.{png,toml}.
//
//	atlas run   regenerate every planned atlas
//	atlas list  print the planned atlases without writing anything
package main

import (
	"encoding/xml"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bloeys/tessera/internal/engineerr"
	"github.com/bloeys/tessera/internal/glyphs"
)

const (
	outDir = "./resources/font_atlases"
	srcDir = "./resources/bmfonts"

	// Glyphs are packed with at least this much padding on every side
	// so linear filtering never bleeds neighbors.
	glyphPadding = 2

	atlasWidth = 1024
)

// variantPlan names the BMFont source pairs one output variant is
// merged from. Outline glyphs land in the metrics document's outline
// vector; missing codepage-437 codepoints in either are filled from
// the default font's pair.
type variantPlan struct {
	Variant string

	Regular string
	Outline string
}

type atlasPlan struct {
	Name     string
	Variants []variantPlan
}

// plans is the full set of atlases `run` regenerates. The default
// font doubles as the fill source for codepoints the styled fonts
// lack.
var plans = []atlasPlan{
	{
		Name: "default",
		Variants: []variantPlan{
			{Variant: "regular", Regular: "default", Outline: "default-outline"},
			{Variant: "bold", Regular: "default-bold", Outline: "default-bold-outline"},
			{Variant: "italic", Regular: "default-italic", Outline: "default-italic-outline"},
			{Variant: "bolditalic", Regular: "default-bolditalic", Outline: "default-bolditalic-outline"},
		},
	},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		if err := runAll(); err != nil {
			fmt.Println("atlasgen failed:", err)
			os.Exit(1)
		}
	case "list":
		list()
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage: atlas run | atlas list")
}

func list() {
	for _, p := range plans {
		for _, v := range p.Variants {
			fmt.Printf("%s/%s.png + %s/%s.toml  (regular=%s outline=%s)\n",
				p.Name, v.Variant, p.Name, v.Variant, v.Regular, v.Outline)
		}
	}
}

func runAll() error {
	for _, p := range plans {
		dir := filepath.Join(outDir, p.Name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		for _, v := range p.Variants {
			if err := buildVariant(dir, v); err != nil {
				return fmt.Errorf("%s/%s: %w", p.Name, v.Variant, err)
			}
			fmt.Printf("wrote %s/%s.{png,toml}\n", dir, v.Variant)
		}
	}
	return nil
}

// bmfont mirrors the <char> elements of a BMFont-style XML document;
// everything else in the file is ignored.
type bmfont struct {
	Chars []bmchar `xml:"chars>char"`
}

type bmchar struct {
	ID      rune `xml:"id,attr"`
	X       int  `xml:"x,attr"`
	Y       int  `xml:"y,attr"`
	Width   int  `xml:"width,attr"`
	Height  int  `xml:"height,attr"`
	XOffset int  `xml:"xoffset,attr"`
	YOffset int  `xml:"yoffset,attr"`
}

// fontSource is one loaded bitmap-font pair.
type fontSource struct {
	img   image.Image
	chars map[rune]bmchar
}

func loadSource(name string) (*fontSource, error) {
	imgFile, err := os.Open(filepath.Join(srcDir, name+".png"))
	if err != nil {
		return nil, engineerr.New(engineerr.KindAssetNotFound, err)
	}
	defer imgFile.Close()

	img, err := png.Decode(imgFile)
	if err != nil {
		return nil, engineerr.New(engineerr.KindAssetParseError, err)
	}

	xmlBytes, err := os.ReadFile(filepath.Join(srcDir, name+".xml"))
	if err != nil {
		return nil, engineerr.New(engineerr.KindAssetNotFound, err)
	}

	var f bmfont
	if err := xml.Unmarshal(xmlBytes, &f); err != nil {
		return nil, engineerr.New(engineerr.KindAssetParseError, err)
	}

	src := &fontSource{img: img, chars: make(map[rune]bmchar, len(f.Chars))}
	for _, c := range f.Chars {
		src.chars[c.ID] = c
	}
	return src, nil
}

// shelf is a first-fit row packer: glyphs fill the current row left
// to right and open a new row when the width runs out. Layouts are
// not canonical; the metrics document is the only source of truth.
type shelf struct {
	x, y, rowH int
}

func (s *shelf) place(w, h int) (x, y int) {
	pw, ph := w+glyphPadding*2, h+glyphPadding*2
	if s.x+pw > atlasWidth {
		s.x = 0
		s.y += s.rowH
		s.rowH = 0
	}
	if ph > s.rowH {
		s.rowH = ph
	}
	x, y = s.x+glyphPadding, s.y+glyphPadding
	s.x += pw
	return x, y
}

func (s *shelf) height() int { return s.y + s.rowH }

func buildVariant(dir string, v variantPlan) error {
	regular, err := loadSource(v.Regular)
	if err != nil {
		return err
	}
	outline, err := loadSource(v.Outline)
	if err != nil {
		return err
	}

	// The default pair fills whatever codepage-437 codepoints the
	// styled sources are missing.
	fillRegular, err := loadSource(plans[0].Variants[0].Regular)
	if err != nil {
		return err
	}
	fillOutline, err := loadSource(plans[0].Variants[0].Outline)
	if err != nil {
		return err
	}

	inventory := glyphs.Codepage437()

	// First pass sizes the atlas, second pass blits. A dry shelf run
	// is cheaper than growing the image mid-blit.
	dry := &shelf{}
	for _, src := range []*fontSource{regular, outline} {
		fill := fillRegular
		if src == outline {
			fill = fillOutline
		}
		for _, r := range inventory {
			c, ok := pick(src, fill, r)
			if !ok {
				continue
			}
			dry.place(c.Width, c.Height)
		}
	}

	atlasH := nextPow2(dry.height())
	dst := image.NewRGBA(image.Rect(0, 0, atlasWidth, atlasH))

	var metrics glyphs.FontMetrics
	pack := &shelf{}

	blit := func(src, fill *fontSource) []glyphs.GlyphMetric {
		out := make([]glyphs.GlyphMetric, 0, len(inventory))
		for _, r := range inventory {
			from := src
			c, ok := src.chars[r]
			if !ok {
				if c, ok = fill.chars[r]; !ok {
					continue
				}
				from = fill
			}

			x, y := pack.place(c.Width, c.Height)
			dstRect := image.Rect(x, y, x+c.Width, y+c.Height)
			draw.Draw(dst, dstRect, from.img, image.Pt(c.X, c.Y), draw.Src)

			out = append(out, glyphs.GlyphMetric{
				Codepoint: r,
				X:         uint32(x),
				Y:         uint32(y),
				W:         uint32(c.Width),
				H:         uint32(c.Height),
				XOffset:   int32(c.XOffset),
				YOffset:   int32(c.YOffset),
			})
		}
		return out
	}

	metrics.Regular = blit(regular, fillRegular)
	metrics.Outline = blit(outline, fillOutline)

	if err := glyphs.SaveImgToPNG(dst, filepath.Join(dir, v.Variant+".png")); err != nil {
		return err
	}

	tomlFile, err := os.Create(filepath.Join(dir, v.Variant+".toml"))
	if err != nil {
		return err
	}
	defer tomlFile.Close()

	if err := toml.NewEncoder(tomlFile).Encode(metrics); err != nil {
		return engineerr.New(engineerr.KindAssetParseError, err)
	}
	return nil
}

func pick(src, fill *fontSource, r rune) (bmchar, bool) {
	if c, ok := src.chars[r]; ok {
		return c, true
	}
	c, ok := fill.chars[r]
	return c, ok
}

func nextPow2(x int) int {
	p := 64
	for p < x {
		p *= 2
	}
	return p
}
