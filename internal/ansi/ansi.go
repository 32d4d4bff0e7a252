// Package ansi bridges legacy ANSI/SGR-colored text (e.g. a spawned
// subprocess's stdout) into the engine's own rich-text pipeline. The
// CSI scanner works on raw byte offsets (NextCode/InfoFromCode/
// ParseSGRArgs), but instead of mutating a glyph grid
// directly it emits richtext.Value, so a widget like ScrollLog can
// ingest ANSI output through the exact same Writer as any other
// rich-text source.
package ansi

import (
	"bytes"
	"fmt"

	"github.com/bloeys/tessera/internal/richtext"
	"github.com/bloeys/tessera/internal/tile"
)

// CSIType discriminates the CSI final-byte commands this bridge
// understands. Cursor-motion types (CUU..HVP) are recognized but not
// translated to richtext values: the rich-text grammar has no cursor-
// motion primitive, so they are reported via Type and otherwise
// dropped by ToRichText.
type CSIType int

const (
	CSITypeUnknown CSIType = iota
	CSITypeCUU
	CSITypeCUD
	CSITypeCUF
	CSITypeCUB
	CSITypeCNL
	CSITypeCPL
	CSITypeCHA
	CSITypeCUP
	CSITypeED
	CSITypeEL
	CSITypeSU
	CSITypeSD
	CSITypeHVP
	CSITypeSGR
)

// https://en.wikipedia.org/wiki/ANSI_escape_code#CSI_(Control_Sequence_Introducer)_sequences
const (
	csiParamBytesStart  = 0x30
	csiParamBytesEnd    = 0x3F
	csiIntermBytesStart = 0x20
	csiIntermBytesEnd   = 0x2F
	csiFinalBytesStart  = 0x40
	csiFinalBytesEnd    = 0x7E
)

const (
	fgBlack        = 30
	fgRed          = 31
	fgGreen        = 32
	fgYellow       = 33
	fgBlue         = 34
	fgMagenta      = 35
	fgCyan         = 36
	fgWhite        = 37
	fgGray         = 90
	fgBrightRed    = 91
	fgBrightGreen  = 92
	fgBrightYellow = 93
	fgBrightBlue   = 94
	fgBrightMgnta  = 95
	fgBrightCyan   = 96
	fgBrightWhite  = 97

	bgOffset = 10
)

var csiBytes = []byte{'\x1b', '['}

// PayloadType discriminates what an SGR argument sets.
type PayloadType int

const (
	PayloadUnknown PayloadType = iota
	PayloadColorFg
	PayloadColorBg
	PayloadReset
)

// CodeInfoPayload is one parsed SGR argument.
type CodeInfoPayload struct {
	Type  PayloadType
	Color tile.PaletteColor
}

// CodeInfo is the parsed form of one complete CSI sequence.
type CodeInfo struct {
	Type    CSIType
	Payload []CodeInfoPayload
}

// NextCode returns the byte offset and raw bytes (ESC through the
// final byte, inclusive) of the first well-formed CSI sequence in arr,
// or (-1, nil) if none is found. Malformed sequences are skipped
// over rather than surfaced as errors.
func NextCode(arr []byte) (index int, code []byte) {
	const paramBytesRegion = 0
	const intermBytesRegion = 1

	startOffset := 0
	for startOffset < len(arr)-1 {
		escIndex := bytes.Index(arr[startOffset:], csiBytes)
		if escIndex == -1 {
			return -1, nil
		}
		escIndex += startOffset
		startOffset = escIndex + len(csiBytes)

		finalByteIndex := -1
		region := paramBytesRegion
		for i := escIndex + len(csiBytes); i < len(arr); i++ {
			b := arr[i]

			if region == paramBytesRegion {
				if b >= csiParamBytesStart && b <= csiParamBytesEnd {
					continue
				}
				if b >= csiIntermBytesStart && b <= csiIntermBytesEnd {
					region = intermBytesRegion
					continue
				}
				if b >= csiFinalBytesStart && b <= csiFinalBytesEnd {
					finalByteIndex = i
				}
				break
			}

			if b >= csiIntermBytesStart && b <= csiIntermBytesEnd {
				continue
			}
			if b >= csiFinalBytesStart && b <= csiFinalBytesEnd {
				finalByteIndex = i
			}
			break
		}

		if finalByteIndex == -1 {
			continue
		}
		return escIndex, arr[escIndex : finalByteIndex+1]
	}

	return -1, nil
}

// InfoFromCode parses a single complete CSI sequence (as returned by
// NextCode) into a CodeInfo.
func InfoFromCode(code []byte) (info CodeInfo) {
	codeLen := len(code)
	if codeLen < len(csiBytes)+1 {
		return info
	}

	finalByte := code[codeLen-1]
	args := code[len(csiBytes) : codeLen-1]

	switch finalByte {
	case 'm':
		info.Type = CSITypeSGR
		info.Payload = ParseSGRArgs(args)
	case 'A':
		info.Type = CSITypeCUU
	case 'B':
		info.Type = CSITypeCUD
	case 'C':
		info.Type = CSITypeCUF
	case 'D':
		info.Type = CSITypeCUB
	case 'E':
		info.Type = CSITypeCNL
	case 'F':
		info.Type = CSITypeCPL
	case 'G':
		info.Type = CSITypeCHA
	case 'H':
		info.Type = CSITypeCUP
	case 'J':
		info.Type = CSITypeED
	case 'K':
		info.Type = CSITypeEL
	case 'S':
		info.Type = CSITypeSU
	case 'T':
		info.Type = CSITypeSD
	case 'f':
		info.Type = CSITypeHVP
	}

	return info
}

// ParseSGRArgs splits a semicolon-delimited SGR argument list and
// maps each recognized 3x/4x/9x/10x color code to the nearest palette
// color. Unsupported codes (256-color, truecolor, bold/underline) are
// silently skipped, matching the bridge's "best-effort" scope.
func ParseSGRArgs(args []byte) (payload []CodeInfoPayload) {
	payload = make([]CodeInfoPayload, 0, 1)

	for _, a := range bytes.Split(args, []byte{';'}) {
		if len(a) == 0 || a[0] == '0' {
			payload = append(payload, CodeInfoPayload{Type: PayloadReset})
			continue
		}

		code := intFromDigits(a)
		if isFgCode(code) {
			payload = append(payload, CodeInfoPayload{Type: PayloadColorFg, Color: paletteFromSGR(code)})
		} else if isBgCode(code) {
			payload = append(payload, CodeInfoPayload{Type: PayloadColorBg, Color: paletteFromSGR(code - bgOffset)})
		}
	}

	return payload
}

func isFgCode(code int) bool {
	return (code >= fgBlack && code <= fgWhite) || (code >= fgGray && code <= fgBrightWhite)
}

func isBgCode(code int) bool {
	return isFgCode(code - bgOffset)
}

func intFromDigits(bs []byte) int {
	n := 0
	for _, b := range bs {
		if b < '0' || b > '9' {
			break
		}
		n = n*10 + int(b-'0')
	}
	return n
}

// paletteFromSGR maps an already fg-normalized 3x/9x SGR code to its
// nearest palette color.
func paletteFromSGR(code int) tile.PaletteColor {
	switch code {
	case fgBlack:
		return tile.Black
	case fgRed:
		return tile.DarkRed
	case fgGreen:
		return tile.DarkGreen
	case fgYellow:
		return tile.Yellow
	case fgBlue:
		return tile.DarkBlue
	case fgMagenta:
		return tile.DarkMagenta
	case fgCyan:
		return tile.DarkCyan
	case fgWhite:
		return tile.White
	case fgGray:
		return tile.DarkGrey
	case fgBrightRed:
		return tile.BrightRed
	case fgBrightGreen:
		return tile.BrightGreen
	case fgBrightYellow:
		return tile.BrightGreen
	case fgBrightBlue:
		return tile.BrightBlue
	case fgBrightMgnta:
		return tile.BrightMagenta
	case fgBrightCyan:
		return tile.BrightCyan
	case fgBrightWhite:
		return tile.White
	default:
		return tile.White
	}
}

// ToRichText scans buf for ANSI CSI sequences and returns the
// equivalent richtext.Value stream: plain runs become richtext.Text,
// SGR color codes become richtext.FormatHint(fc/bc, ...), and
// unsupported CSI types (cursor motion, erase) are dropped since the
// rich-text grammar has no equivalent primitive for them.
func ToRichText(buf []byte) []richtext.Value {
	var out []richtext.Value

	for len(buf) > 0 {
		idx, code := NextCode(buf)
		if idx == -1 {
			out = appendTextRun(out, buf)
			break
		}

		if idx > 0 {
			out = appendTextRun(out, buf[:idx])
		}

		info := InfoFromCode(code)
		if info.Type == CSITypeSGR {
			for _, p := range info.Payload {
				switch p.Type {
				case PayloadColorFg:
					out = append(out, richtext.Value{Kind: richtext.KindHint, Key: "fc", Val: p.Color.Tag()})
				case PayloadColorBg:
					out = append(out, richtext.Value{Kind: richtext.KindHint, Key: "bc", Val: p.Color.Tag()})
				case PayloadReset:
					out = append(out, richtext.Value{Kind: richtext.KindHint, Key: "fc", Val: tile.White.Tag()})
				}
			}
		}

		buf = buf[idx+len(code):]
	}

	return out
}

func appendTextRun(out []richtext.Value, run []byte) []richtext.Value {
	text := bytes.ReplaceAll(run, []byte{'<'}, []byte("<<"))
	lines := bytes.Split(text, []byte{'\n'})
	for i, line := range lines {
		if len(line) > 0 {
			out = append(out, richtext.Value{Kind: richtext.KindText, Text: string(line)})
		}
		if i < len(lines)-1 {
			out = append(out, richtext.Value{Kind: richtext.KindNewline})
		}
	}
	return out
}

// String renders a CSIType for debug logging.
func (t CSIType) String() string {
	return fmt.Sprintf("CSIType(%d)", int(t))
}
