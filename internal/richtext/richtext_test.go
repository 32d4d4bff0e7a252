package richtext_test

import (
	"testing"

	"github.com/bloeys/tessera/internal/richtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapedLessThan(t *testing.T) {
	vals, err := richtext.Parse("<<")
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, richtext.KindText, vals[0].Kind)
	assert.Equal(t, "<", vals[0].Text)
}

func TestNewlineParsesToNewlineMarker(t *testing.T) {
	vals, err := richtext.Parse("\n")
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, richtext.KindNewline, vals[0].Kind)
}

func TestUnrecognizedTagReportsOffset(t *testing.T) {
	_, err := richtext.Parse("hi <x:y>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RichTextParseError")
}

func TestPlainTextAndHintMix(t *testing.T) {
	vals, err := richtext.Parse("<fc:$>gold<bc:k>text")
	require.NoError(t, err)
	require.Len(t, vals, 4)

	assert.Equal(t, richtext.KindHint, vals[0].Kind)
	assert.Equal(t, "fc", vals[0].Key)
	assert.Equal(t, "$", vals[0].Val)

	assert.Equal(t, richtext.KindText, vals[1].Kind)
	assert.Equal(t, "gold", vals[1].Text)

	assert.Equal(t, richtext.KindHint, vals[2].Kind)
	assert.Equal(t, "bc", vals[2].Key)

	assert.Equal(t, richtext.KindText, vals[3].Kind)
	assert.Equal(t, "text", vals[3].Text)
}

func TestParseSerializeRoundTrip(t *testing.T) {
	cases := []string{
		"plain text",
		"line one\nline two",
		"<<escaped",
		"<fc:r>red<st:b>bold",
	}
	for _, in := range cases {
		vals, err := richtext.Parse(in)
		require.NoError(t, err, in)
		out := richtext.Serialize(vals)

		vals2, err := richtext.Parse(out)
		require.NoError(t, err, out)
		assert.Equal(t, vals, vals2, "re-parsing the serialized form should be stable: %q", in)
	}
}

func TestFormatStateAppliesOnlySetFields(t *testing.T) {
	fs := richtext.FormatState{}

	vals, parseErr := richtext.Parse("<st:b>")
	require.NoError(t, parseErr)
	require.True(t, fs.ApplyHint(vals[0]))

	applied := fs.Serialize()
	require.Len(t, applied, 1)
	assert.Equal(t, "st", applied[0].Key)
	assert.Equal(t, "b", applied[0].Val)
}
