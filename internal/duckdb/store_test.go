package duckdb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cathalgarvey/DNAmespace/internal/genome"
)

const exportRecord = `LOCUS       EXPREG                   120 bp    DNA     linear   BCT 05-MAR-2003
DEFINITION  Export test region.
ACCESSION   EXP00001
SOURCE      Escherichia coli
  ORGANISM  Escherichia coli
FEATURES             Location/Qualifiers
     gene            7..36
                     /gene="araA"
                     /locus_tag="b0062"
     CDS             7..36
                     /gene="araA"
                     /locus_tag="b0062"
                     /product="L-arabinose isomerase"
     gene            complement(41..70)
                     /gene="araB"
                     /locus_tag="b0063"
     CDS             complement(41..70)
                     /gene="araB"
                     /locus_tag="b0063"
                     /product="ribulokinase"
ORIGIN
        1 gattacatga aagttttaat ttcagcagga gagtggtaat ttagtaatac agattttcaa
       61 ctgcgctcat acgtacgtac gtacgtacgt acgtacgtac gtacgtacgt acgtacgtac
//
`

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testGenome(t *testing.T) *genome.Genome {
	t.Helper()
	g, err := genome.Load(strings.NewReader(exportRecord), genome.DefaultOptions())
	require.NoError(t, err)
	return g
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "genomes.duckdb")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestSchemaVersionStamped(t *testing.T) {
	s := openInMemory(t)

	v, err := s.Meta("schema_version")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestWriteAndReadGenome(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteGenome(testGenome(t)))

	genomes, err := s.Genomes()
	require.NoError(t, err)
	require.Len(t, genomes, 1)
	row := genomes[0]
	assert.Equal(t, "EXP00001", row.Accession)
	assert.Equal(t, "EXPREG", row.Name)
	assert.Equal(t, int64(120), row.Length)
	assert.Equal(t, "DNA", row.Molecule)
	assert.Equal(t, "linear", row.Topology)
	assert.Equal(t, "Escherichia coli", row.Organism)
	assert.Equal(t, int64(2), row.GeneCount)

	genes, err := s.Genes("EXP00001")
	require.NoError(t, err)
	require.Len(t, genes, 2)

	araA := genes[0]
	assert.Equal(t, "araA", araA.Key)
	assert.Equal(t, "b0062", araA.LocusTag)
	assert.Equal(t, int64(6), araA.Start)
	assert.Equal(t, int64(36), araA.End)
	assert.Equal(t, int64(1), araA.Strand)
	assert.False(t, araA.Synthetic)
	assert.Equal(t, "L-arabinose isomerase", araA.Product)
	assert.Equal(t, int64(1), araA.TranscriptCount)

	araB := genes[1]
	assert.Equal(t, "araB", araB.Key)
	assert.Equal(t, int64(-1), araB.Strand)

	count, err := s.GeneCount("EXP00001")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	trs, err := s.Transcripts("EXP00001", "araA")
	require.NoError(t, err)
	require.Len(t, trs, 1)
	assert.Equal(t, "7..36", trs[0].Location)
	assert.Equal(t, "MKVLISAGEW", trs[0].Protein)

	trs, err = s.Transcripts("EXP00001", "araB")
	require.NoError(t, err)
	require.Len(t, trs, 1)
	assert.Equal(t, "complement(41..70)", trs[0].Location)
	assert.Equal(t, "MSAVENLYY", trs[0].Protein)
}

// Re-exporting the same genome replaces the previous rows instead of
// accumulating duplicates.
func TestWriteGenomeIdempotent(t *testing.T) {
	s := openInMemory(t)
	g := testGenome(t)

	require.NoError(t, s.WriteGenome(g))
	require.NoError(t, s.WriteGenome(g))

	genomes, err := s.Genomes()
	require.NoError(t, err)
	assert.Len(t, genomes, 1)

	count, err := s.GeneCount("EXP00001")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestDeleteGenome(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteGenome(testGenome(t)))
	require.NoError(t, s.DeleteGenome("EXP00001"))

	count, err := s.GeneCount("EXP00001")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	genomes, err := s.Genomes()
	require.NoError(t, err)
	assert.Empty(t, genomes)
}

func TestGeneCountUnknownAccession(t *testing.T) {
	s := openInMemory(t)

	count, err := s.GeneCount("NOPE")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMeta(t *testing.T) {
	s := openInMemory(t)

	v, err := s.Meta("missing")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, s.SetMeta("source", "lac.gb"))
	v, err = s.Meta("source")
	require.NoError(t, err)
	assert.Equal(t, "lac.gb", v)

	require.NoError(t, s.SetMeta("source", "ara.gb"))
	v, err = s.Meta("source")
	require.NoError(t, err)
	assert.Equal(t, "ara.gb", v)
}

func TestStampSource(t *testing.T) {
	s := openInMemory(t)

	path := filepath.Join(t.TempDir(), "rec.gb")
	require.NoError(t, os.WriteFile(path, []byte(exportRecord), 0o644))

	assert.False(t, s.SourceUnchanged(path))

	require.NoError(t, s.StampSource(path))
	assert.True(t, s.SourceUnchanged(path))

	require.NoError(t, os.WriteFile(path, []byte(exportRecord+"\n//\n"), 0o644))
	assert.False(t, s.SourceUnchanged(path))
}
