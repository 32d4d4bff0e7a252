// Package richtext implements the inline-tag text format every
// widget ultimately renders through: plain text interleaved with
// `<key:value>` format hints, parsed deterministically with a
// byte-offset error on the first unrecognized tag.
package richtext

import (
	"strings"

	"github.com/bloeys/tessera/internal/engineerr"
	"github.com/bloeys/tessera/internal/tile"
)

// Kind discriminates the three value shapes a parse produces.
type Kind int

const (
	KindText Kind = iota
	KindNewline
	KindHint
)

// Value is one element of a parsed document.
type Value struct {
	Kind Kind
	Text string // KindText
	Key  string // KindHint: one of l, st, si, o, fc, bc, oc
	Val  string // KindHint: the raw hint_val token
}

// validKeys is the closed set of recognized hint keys.
var validKeys = map[string]bool{
	"l": true, "st": true, "si": true, "o": true,
	"fc": true, "bc": true, "oc": true,
}

// validHintVals is the closed set of legal value tokens per key. Color
// keys (fc, bc, oc) accept any of the 22 palette tags and are checked
// separately via tile.PaletteColorFromTag.
var validHintVals = map[string]map[string]bool{
	"l":  {"c": true, "f": true, "t": true, "e": true},
	"st": {"r": true, "b": true, "i": true, "bi": true},
	"si": {"s": true, "n": true, "b": true, "g": true},
	"o":  {"t": true, "f": true},
}

// Parse scans input into a deterministic value sequence. On the first
// unrecognized byte (an unterminated or invalid tag), it returns the
// values collected so far and a parse error whose Offset is the
// position of the opening '<'.
func Parse(input string) ([]Value, error) {
	var out []Value
	var textBuf strings.Builder

	flushText := func() {
		if textBuf.Len() > 0 {
			out = append(out, Value{Kind: KindText, Text: textBuf.String()})
			textBuf.Reset()
		}
	}

	i := 0
	for i < len(input) {
		c := input[i]

		switch c {
		case '\n':
			flushText()
			out = append(out, Value{Kind: KindNewline})
			i++

		case '<':
			if i+1 < len(input) && input[i+1] == '<' {
				textBuf.WriteByte('<')
				i += 2
				continue
			}

			end := strings.IndexByte(input[i:], '>')
			if end == -1 {
				flushText()
				return out, engineerr.NewParseError(i)
			}
			tag := input[i+1 : i+end]
			key, val, ok := splitTag(tag)
			if !ok || !isValidHint(key, val) {
				flushText()
				return out, engineerr.NewParseError(i)
			}

			flushText()
			out = append(out, Value{Kind: KindHint, Key: key, Val: val})
			i += end + 1

		default:
			textBuf.WriteByte(c)
			i++
		}
	}

	flushText()
	return out, nil
}

func splitTag(tag string) (key, val string, ok bool) {
	colon := strings.IndexByte(tag, ':')
	if colon == -1 {
		return "", "", false
	}
	return tag[:colon], tag[colon+1:], true
}

func isValidHint(key, val string) bool {
	if !validKeys[key] {
		return false
	}
	if key == "fc" || key == "bc" || key == "oc" {
		_, ok := tile.PaletteColorFromTag(val)
		return ok
	}
	return validHintVals[key][val]
}

// Serialize renders values back to their inline-tag source form; it
// is the exact inverse of Parse for any value stream Parse produced.
func Serialize(values []Value) string {
	var b strings.Builder
	for _, v := range values {
		switch v.Kind {
		case KindText:
			b.WriteString(strings.ReplaceAll(v.Text, "<", "<<"))
		case KindNewline:
			b.WriteByte('\n')
		case KindHint:
			b.WriteByte('<')
			b.WriteString(v.Key)
			b.WriteByte(':')
			b.WriteString(v.Val)
			b.WriteByte('>')
		}
	}
	return b.String()
}

// FormatState is the active style accumulator a writer maintains
// while draining a value stream; each field is optional (nil/zero
// means "inherit"), and Apply only overrides attributes that are set.
type FormatState struct {
	Layout   *tile.Layout
	Style    *tile.Style
	Size     *tile.Size
	Outlined *bool
	FgColor  *tile.PaletteColor
	BgColor  *tile.PaletteColor
	OcColor  *tile.PaletteColor
}

// ApplyHint folds one KindHint value into the state, returning false
// if v is not a hint.
func (fs *FormatState) ApplyHint(v Value) bool {
	if v.Kind != KindHint {
		return false
	}
	switch v.Key {
	case "l":
		l := layoutFromHint(v.Val)
		fs.Layout = &l
	case "st":
		s := styleFromHint(v.Val)
		fs.Style = &s
	case "si":
		s := sizeFromHint(v.Val)
		fs.Size = &s
	case "o":
		b := v.Val == "t"
		fs.Outlined = &b
	case "fc":
		pc, _ := tile.PaletteColorFromTag(v.Val)
		fs.FgColor = &pc
	case "bc":
		pc, _ := tile.PaletteColorFromTag(v.Val)
		fs.BgColor = &pc
	case "oc":
		pc, _ := tile.PaletteColorFromTag(v.Val)
		fs.OcColor = &pc
	}
	return true
}

// Apply overlays every set attribute of fs onto t, leaving unset
// attributes untouched.
func (fs FormatState) Apply(t *tile.Tile) {
	if fs.Layout != nil {
		t.Layout = *fs.Layout
	}
	if fs.Style != nil {
		t.Style = *fs.Style
	}
	if fs.Size != nil {
		t.Size = *fs.Size
	}
	if fs.Outlined != nil {
		t.Outlined = *fs.Outlined
	}
	if fs.FgColor != nil {
		t.ForegroundColor = fs.FgColor.RGBA()
	}
	if fs.BgColor != nil {
		t.BackgroundColor = fs.BgColor.RGBA()
	}
	if fs.OcColor != nil {
		t.OutlineColor = fs.OcColor.RGBA()
	}
}

// Serialize re-emits every set attribute as inline hint Values, in a
// fixed key order, so re-appending the result at the start of a new
// wrapped line reproduces the same visible style.
func (fs FormatState) Serialize() []Value {
	var out []Value
	if fs.Layout != nil {
		out = append(out, Value{Kind: KindHint, Key: "l", Val: layoutToHint(*fs.Layout)})
	}
	if fs.Style != nil {
		out = append(out, Value{Kind: KindHint, Key: "st", Val: styleToHint(*fs.Style)})
	}
	if fs.Size != nil {
		out = append(out, Value{Kind: KindHint, Key: "si", Val: sizeToHint(*fs.Size)})
	}
	if fs.Outlined != nil {
		v := "f"
		if *fs.Outlined {
			v = "t"
		}
		out = append(out, Value{Kind: KindHint, Key: "o", Val: v})
	}
	if fs.FgColor != nil {
		out = append(out, Value{Kind: KindHint, Key: "fc", Val: fs.FgColor.Tag()})
	}
	if fs.BgColor != nil {
		out = append(out, Value{Kind: KindHint, Key: "bc", Val: fs.BgColor.Tag()})
	}
	if fs.OcColor != nil {
		out = append(out, Value{Kind: KindHint, Key: "oc", Val: fs.OcColor.Tag()})
	}
	return out
}

func layoutFromHint(v string) tile.Layout {
	switch v {
	case "f":
		return tile.LayoutFloor
	case "t":
		return tile.LayoutText
	case "e":
		return tile.LayoutExact
	default:
		return tile.LayoutCenter
	}
}

func layoutToHint(l tile.Layout) string {
	switch l {
	case tile.LayoutFloor:
		return "f"
	case tile.LayoutText:
		return "t"
	case tile.LayoutExact:
		return "e"
	default:
		return "c"
	}
}

func styleFromHint(v string) tile.Style {
	switch v {
	case "b":
		return tile.Bold
	case "i":
		return tile.Italic
	case "bi":
		return tile.BoldItalic
	default:
		return tile.Regular
	}
}

func styleToHint(s tile.Style) string {
	switch s {
	case tile.Bold:
		return "b"
	case tile.Italic:
		return "i"
	case tile.BoldItalic:
		return "bi"
	default:
		return "r"
	}
}

func sizeFromHint(v string) tile.Size {
	switch v {
	case "s":
		return tile.Small
	case "b":
		return tile.Big
	case "g":
		return tile.Giant
	default:
		return tile.Normal
	}
}

func sizeToHint(s tile.Size) string {
	switch s {
	case tile.Small:
		return "s"
	case tile.Big:
		return "b"
	case tile.Giant:
		return "g"
	default:
		return "n"
	}
}
