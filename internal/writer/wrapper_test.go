package writer_test

import (
	"strings"
	"testing"

	"github.com/bloeys/tessera/internal/writer"
	"github.com/stretchr/testify/require"
)

func TestWrapperWordWrap(t *testing.T) {
	w := writer.NewWrapper(5, 2, 10)
	err := w.Append("hi there friend")
	require.NoError(t, err)

	lines := strings.Split(w.WrappedText, "\n")
	require.Equal(t, "hi", lines[0])
	require.Equal(t, "there", lines[1])
}

func TestWrapperExplicitNewlineAndTruncation(t *testing.T) {
	w := writer.NewWrapper(5, 2, 3)
	err := w.Append("<fc:Y>hi there friend\n!")
	require.NoError(t, err)

	require.Equal(t, 4, w.TotalLines())
	require.NotContains(t, w.WrappedText, "hi")
}

func TestWrapperVisibleWindow(t *testing.T) {
	w := writer.NewWrapper(5, 2, 10)
	require.NoError(t, w.Append("one two three four"))

	w.ScrollTo(0)
	start, end := w.Visible()
	require.True(t, end > start)
	require.True(t, end-start <= 5*2+10) // generous bound: width*height plus tag overhead
}

func TestWrapperScrollClampsToRange(t *testing.T) {
	w := writer.NewWrapper(5, 1, 10)
	require.NoError(t, w.Append("a\nb\nc\nd"))

	w.ScrollTo(1000)
	require.Equal(t, w.TotalLines()-w.Height, w.CurrentLine)

	w.ScrollTo(-5)
	require.Equal(t, 0, w.CurrentLine)
}
