package writer

import (
	"strings"

	"github.com/bloeys/tessera/internal/richtext"
)

// Wrapper is an append-only, word-wrapped scroll window. It owns the
// canonical already-wrapped rich-text buffer and
// re-emits the active FormatState at the start of every wrapped line,
// so a visible slice renders identically no matter where it begins.
type Wrapper struct {
	Width    int
	Height   int
	MaxLines int

	WrappedText    string
	NewlineIndices []int

	Format      richtext.FormatState
	CurrentLine int

	lineLen int
}

// NewWrapper returns an empty Wrapper sized w x h, keeping at most
// maxLines logical lines.
func NewWrapper(w, h, maxLines int) *Wrapper {
	return &Wrapper{
		Width:          w,
		Height:         h,
		MaxLines:       maxLines,
		NewlineIndices: []int{0},
	}
}

// TotalLines returns the number of logical lines currently buffered.
func (wr *Wrapper) TotalLines() int { return len(wr.NewlineIndices) }

// Append parses input and folds it into the wrapped buffer: hints
// update the active FormatState (and are re-emitted inline), Newline
// trims a trailing space and starts a new logical line, and Text is
// split into whitespace-delimited words which wrap independently. A
// parse error still applies the longest valid prefix.
func (wr *Wrapper) Append(input string) error {
	values, err := richtext.Parse(input)
	for _, v := range values {
		switch v.Kind {
		case richtext.KindHint:
			wr.Format.ApplyHint(v)
			wr.WrappedText += richtext.Serialize([]richtext.Value{v})

		case richtext.KindNewline:
			wr.emitNewline()

		case richtext.KindText:
			wr.appendWords(v.Text)
		}
	}
	return err
}

func (wr *Wrapper) appendWords(text string) {
	for _, word := range strings.Fields(text) {
		wlen := len([]rune(word))
		if wr.lineLen > 0 && wr.lineLen+wlen > wr.Width {
			wr.emitNewline()
		}

		wr.WrappedText += richtext.Serialize([]richtext.Value{{Kind: richtext.KindText, Text: word}})
		wr.lineLen += wlen

		wr.WrappedText += " "
		wr.lineLen++
	}
}

// emitNewline trims the line's trailing space, closes the current
// logical line, and re-emits the active format so the next line
// renders correctly when a visible slice starts there.
func (wr *Wrapper) emitNewline() {
	wr.WrappedText = strings.TrimSuffix(wr.WrappedText, " ")
	wr.WrappedText += "\n"
	wr.NewlineIndices = append(wr.NewlineIndices, len(wr.WrappedText))
	wr.WrappedText += richtext.Serialize(wr.Format.Serialize())
	wr.lineLen = 0

	if len(wr.NewlineIndices) > wr.MaxLines {
		wr.truncateOldest()
	}
}

// truncateOldest drops the oldest logical line and rebases every
// offset/scroll position by its length.
func (wr *Wrapper) truncateOldest() {
	cut := wr.NewlineIndices[1]
	wr.WrappedText = wr.WrappedText[cut:]

	rebased := make([]int, 0, len(wr.NewlineIndices)-1)
	for _, idx := range wr.NewlineIndices[1:] {
		rebased = append(rebased, idx-cut)
	}
	wr.NewlineIndices = rebased

	if wr.CurrentLine > 0 {
		wr.CurrentLine--
	}
}

// maxCurrentLine returns the largest CurrentLine value that still
// leaves a full Height-line window inside the buffer.
func (wr *Wrapper) maxCurrentLine() int {
	m := wr.TotalLines() - wr.Height
	if m < 0 {
		return 0
	}
	return m
}

// ScrollTo sets CurrentLine, clamped to [0, max(0, total-height)].
func (wr *Wrapper) ScrollTo(line int) {
	max := wr.maxCurrentLine()
	switch {
	case line < 0:
		wr.CurrentLine = 0
	case line > max:
		wr.CurrentLine = max
	default:
		wr.CurrentLine = line
	}
}

// Scroll moves CurrentLine by delta lines (negative scrolls up).
func (wr *Wrapper) Scroll(delta int) { wr.ScrollTo(wr.CurrentLine + delta) }

// Visible returns the byte offsets [start,end) into WrappedText that
// span from the first character of CurrentLine through the last
// character of CurrentLine+Height-1.
func (wr *Wrapper) Visible() (start, end int) {
	wr.ScrollTo(wr.CurrentLine)

	total := wr.TotalLines()
	start = wr.NewlineIndices[wr.CurrentLine]

	lastLine := wr.CurrentLine + wr.Height - 1
	if lastLine >= total {
		lastLine = total - 1
	}

	if lastLine+1 < total {
		end = wr.NewlineIndices[lastLine+1]
	} else {
		end = len(wr.WrappedText)
	}

	return start, end
}

// VisibleText returns the WrappedText slice for the current scroll
// position.
func (wr *Wrapper) VisibleText() string {
	start, end := wr.Visible()
	return wr.WrappedText[start:end]
}
