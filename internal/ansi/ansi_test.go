package ansi_test

import (
	"testing"

	"github.com/bloeys/tessera/internal/ansi"
	"github.com/bloeys/tessera/internal/richtext"
	"github.com/stretchr/testify/require"
)

func TestNextCode(t *testing.T) {
	buf := []byte("hi\x1b[31mred\x1b[0m")
	idx, code := ansi.NextCode(buf)
	require.Equal(t, 2, idx)
	require.Equal(t, "\x1b[31m", string(code))
}

func TestNextCodeNone(t *testing.T) {
	idx, code := ansi.NextCode([]byte("plain text"))
	require.Equal(t, -1, idx)
	require.Nil(t, code)
}

func TestParseSGRArgsColors(t *testing.T) {
	payload := ansi.ParseSGRArgs([]byte("31"))
	require.Len(t, payload, 1)
	require.Equal(t, ansi.PayloadColorFg, payload[0].Type)
}

func TestToRichText(t *testing.T) {
	buf := []byte("hi\x1b[31mred\n")
	values := ansi.ToRichText(buf)

	require.Equal(t, richtext.Value{Kind: richtext.KindText, Text: "hi"}, values[0])
	require.Equal(t, richtext.KindHint, values[1].Kind)
	require.Equal(t, "fc", values[1].Key)

	last := values[len(values)-1]
	require.Equal(t, richtext.KindNewline, last.Kind)
}
