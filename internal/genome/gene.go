package genome

import (
	"github.com/cathalgarvey/DNAmespace/internal/codon"
	"github.com/cathalgarvey/DNAmespace/internal/genbank"
)

// Transcript represents one coding span of a gene, extracted from the
// genome sequence at aggregation time.
type Transcript struct {
	GeneKey    string              // owning gene key
	LocusTag   string              // /locus_tag qualifier, may be empty
	Product    string              // /product qualifier, may be empty
	Location   genbank.Location    // parsed coding location
	Start      int                 // extent start (0-based)
	End        int                 // extent end (0-based, exclusive)
	Strand     int8                // +1 (forward) or -1 (reverse)
	Sequence   string              // coding nucleotide sequence, lowercase
	Qualifiers []genbank.Qualifier // every CDS qualifier, in order

	table      codon.Table
	truncate   bool
	protein    string // translated on first access
	translated bool   // protein is valid; "" is a legitimate translation
}

// IsForwardStrand returns true if the transcript is on the forward strand.
func (t *Transcript) IsForwardStrand() bool {
	return t.Strand == 1
}

// IsReverseStrand returns true if the transcript is on the reverse strand.
func (t *Transcript) IsReverseStrand() bool {
	return t.Strand == -1
}

// Contains returns true if the given offset is within the transcript extent.
func (t *Transcript) Contains(pos int) bool {
	return pos >= t.Start && pos < t.End
}

// Protein returns the translation of the coding sequence under the genome's
// codon table, computed on first access and cached.
func (t *Transcript) Protein() string {
	if !t.translated {
		if t.Sequence != "" {
			t.protein = t.table.Translate(t.Sequence, t.truncate)
		}
		t.translated = true
	}
	return t.protein
}

// DeclaredTranslation returns the /translation qualifier carried by the
// record, or "" when absent. It is not necessarily equal to Protein.
func (t *Transcript) DeclaredTranslation() string {
	for _, q := range t.Qualifiers {
		if q.Key == "translation" {
			return q.Value
		}
	}
	return ""
}

// Gene is the aggregation of one gene feature and the coding features that
// belong to it.
type Gene struct {
	Key         string              // primary name (/gene, or locus tag, or positional)
	LocusTag    string              // /locus_tag qualifier, may be empty
	Start       int                 // extent start (0-based)
	End         int                 // extent end (0-based, exclusive)
	Strand      int8                // +1 (forward) or -1 (reverse)
	Qualifiers  []genbank.Qualifier // merged qualifiers of the seeding features
	Transcripts []*Transcript       // attached coding spans, in record order
	Synthetic   bool                // created for a coding feature with no gene feature
}

// IsForwardStrand returns true if the gene is on the forward strand.
func (g *Gene) IsForwardStrand() bool {
	return g.Strand == 1
}

// IsReverseStrand returns true if the gene is on the reverse strand.
func (g *Gene) IsReverseStrand() bool {
	return g.Strand == -1
}

// Contains returns true if the given offset is within the gene boundaries.
func (g *Gene) Contains(pos int) bool {
	return pos >= g.Start && pos < g.End
}

// Len returns the gene extent length in bases.
func (g *Gene) Len() int {
	return g.End - g.Start
}

// Transcript returns the first transcript, or nil when the gene has none.
func (g *Gene) Transcript() *Transcript {
	if len(g.Transcripts) == 0 {
		return nil
	}
	return g.Transcripts[0]
}

// ORFs returns the protein-coding transcripts. Every imported coding span
// is protein coding, so this is the whole transcript list.
func (g *Gene) ORFs() []*Transcript {
	return g.Transcripts
}

// ORF returns the first protein-coding transcript, or nil when the gene
// has none.
func (g *Gene) ORF() *Transcript {
	return g.Transcript()
}

// Amino returns the protein of the first transcript, or "" when the gene
// has no coding span.
func (g *Gene) Amino() string {
	t := g.Transcript()
	if t == nil {
		return ""
	}
	return t.Protein()
}

// Aminos returns the protein of every transcript in order, forcing any
// pending translations. Useful before sharing a Genome across goroutines,
// since lazy translation caching is unsynchronized.
func (g *Gene) Aminos() []string {
	out := make([]string, len(g.Transcripts))
	for i, t := range g.Transcripts {
		out[i] = t.Protein()
	}
	return out
}

// RNAs returns the non-coding transcripts. None are imported, so the list
// is always empty.
func (g *Gene) RNAs() []*Transcript {
	return nil
}

// RNA returns the first non-coding transcript, or nil. None are imported.
func (g *Gene) RNA() *Transcript {
	return nil
}

// Value returns the first merged qualifier value for the key and whether
// the qualifier is present.
func (g *Gene) Value(key string) (string, bool) {
	for _, q := range g.Qualifiers {
		if q.Key == key {
			return q.Value, true
		}
	}
	return "", false
}

// Product returns the gene's /product qualifier, falling back to the first
// transcript's product.
func (g *Gene) Product() string {
	if v, ok := g.Value("product"); ok {
		return v
	}
	if t := g.Transcript(); t != nil {
		return t.Product
	}
	return ""
}
