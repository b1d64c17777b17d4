package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cathalgarvey/DNAmespace/internal/genbank"
	"github.com/cathalgarvey/DNAmespace/internal/genome"
)

func TestGeneTableWriter(t *testing.T) {
	lacZ := &genome.Gene{
		Key:      "lacZ",
		LocusTag: "b0344",
		Start:    6,
		End:      36,
		Strand:   1,
		Qualifiers: []genbank.Qualifier{
			{Key: "gene", Value: "lacZ"},
			{Key: "product", Value: "beta-galactosidase"},
		},
		Transcripts: []*genome.Transcript{{GeneKey: "lacZ"}},
	}
	orphan := &genome.Gene{
		Key:       "b9999",
		Start:     120,
		End:       150,
		Strand:    -1,
		Synthetic: true,
	}

	var buf strings.Builder
	gw := NewGeneTableWriter(&buf)
	require.NoError(t, gw.WriteHeader())
	require.NoError(t, gw.Write(lacZ))
	require.NoError(t, gw.Write(orphan))
	require.NoError(t, gw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t,
		"#Gene\tLocus_tag\tStart\tEnd\tStrand\tTranscripts\tSynthetic\tProduct",
		lines[0])
	// Coordinates come out 1-based inclusive.
	assert.Equal(t, "lacZ\tb0344\t7\t36\t+\t1\t-\tbeta-galactosidase", lines[1])
	assert.Equal(t, "b9999\t-\t121\t150\t-\t0\tYES\t-", lines[2])
}

func TestGeneTableWriteAll(t *testing.T) {
	genes := []*genome.Gene{
		{Key: "a", Start: 0, End: 10, Strand: 1},
		{Key: "b", Start: 20, End: 30, Strand: 1},
	}
	g := genome.New(nil, genes)

	var buf strings.Builder
	require.NoError(t, NewGeneTableWriter(&buf).WriteAll(g))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#Gene\t"))
	assert.True(t, strings.HasPrefix(lines[1], "a\t"))
	assert.True(t, strings.HasPrefix(lines[2], "b\t"))
}
