package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFASTAWriterWrapsAtSeventy(t *testing.T) {
	seq := strings.Repeat("acgt", 40) // 160 bases: 70 + 70 + 20

	var buf strings.Builder
	fw := NewFASTAWriter(&buf)
	require.NoError(t, fw.Write("lacZ b0344", seq))
	require.NoError(t, fw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, ">lacZ b0344", lines[0])
	assert.Len(t, lines[1], 70)
	assert.Len(t, lines[2], 70)
	assert.Len(t, lines[3], 20)
	assert.Equal(t, seq, strings.Join(lines[1:], ""))
}

func TestFASTAWriterExactMultiple(t *testing.T) {
	seq := strings.Repeat("a", 140)

	var buf strings.Builder
	fw := NewFASTAWriter(&buf)
	require.NoError(t, fw.Write("x", seq))
	require.NoError(t, fw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Len(t, lines[1], 70)
	assert.Len(t, lines[2], 70)
}

func TestFASTAWriterEmptySequence(t *testing.T) {
	var buf strings.Builder
	fw := NewFASTAWriter(&buf)
	require.NoError(t, fw.Write("empty", ""))
	require.NoError(t, fw.Flush())

	assert.Equal(t, ">empty\n", buf.String())
}

func TestFASTAWriterMultipleRecords(t *testing.T) {
	var buf strings.Builder
	fw := NewFASTAWriter(&buf)
	require.NoError(t, fw.Write("one", "atg"))
	require.NoError(t, fw.Write("two", "taa"))
	require.NoError(t, fw.Flush())

	assert.Equal(t, ">one\natg\n>two\ntaa\n", buf.String())
}
