// Package genome aggregates parsed genome records into a gene-centric
// model: a Genome owns ordered Genes, a Gene owns the Transcripts extracted
// from its coding features.
package genome

import (
	"fmt"
	"io"

	"github.com/cathalgarvey/DNAmespace/internal/dna"
	"github.com/cathalgarvey/DNAmespace/internal/genbank"
)

// Genome is an aggregated record: the ordered genes, the raw nucleotide
// buffer, and a lookup registry over sanitized gene keys.
type Genome struct {
	rec   *genbank.Record
	genes []*Gene
	byRaw map[string]*Gene
	bySan map[string]*Gene
	keys  []string // sanitized keys, in gene order, first collision wins
	index *geneIndex
}

// New assembles a Genome from an aggregated gene list. Genes keep their
// given order; the key registry is built here.
func New(rec *genbank.Record, genes []*Gene) *Genome {
	g := &Genome{
		rec:   rec,
		genes: genes,
		byRaw: make(map[string]*Gene, len(genes)),
		bySan: make(map[string]*Gene, len(genes)),
	}

	for _, gene := range genes {
		if _, ok := g.byRaw[gene.Key]; !ok {
			g.byRaw[gene.Key] = gene
		}
		san := SanitizeKey(gene.Key)
		if _, ok := g.bySan[san]; !ok {
			g.bySan[san] = gene
			g.keys = append(g.keys, san)
		}
	}

	g.index = buildGeneIndex(genes)
	return g
}

// Load parses the first record from r and aggregates it.
func Load(r io.Reader, opts Options) (*Genome, error) {
	p, err := genbank.NewParserFromReader(r)
	if err != nil {
		return nil, err
	}

	rec, err := p.Next()
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("input holds no record")
	}
	return Aggregate(rec, opts)
}

// LoadFile parses the first record from the given path and aggregates it.
// Plain and gzipped files are both accepted; "-" reads standard input.
func LoadFile(path string, opts Options) (*Genome, error) {
	p, err := genbank.NewParser(path)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	rec, err := p.Next()
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%s holds no record", path)
	}
	return Aggregate(rec, opts)
}

// Record returns the parsed record the genome was built from.
func (g *Genome) Record() *genbank.Record {
	return g.rec
}

// Name returns the record's locus name.
func (g *Genome) Name() string {
	return g.rec.Name
}

// Sequence returns the full lowercase nucleotide buffer.
func (g *Genome) Sequence() string {
	return g.rec.Sequence
}

// Len returns the sequence length in bases.
func (g *Genome) Len() int {
	return len(g.rec.Sequence)
}

// Genes returns the aggregated genes in first-seeded order.
func (g *Genome) Genes() []*Gene {
	return g.genes
}

// GeneNamed returns the gene registered under the key, or nil. The raw key
// is tried first, then the sanitized form, so both the record's spelling
// and the registry spelling resolve.
func (g *Genome) GeneNamed(key string) *Gene {
	if gene, ok := g.byRaw[key]; ok {
		return gene
	}
	return g.bySan[SanitizeKey(key)]
}

// Keys returns the sanitized gene keys in gene order. Keys that collide
// after sanitization appear once, registered to the first gene.
func (g *Genome) Keys() []string {
	return g.keys
}

// GenesOverlapping returns the genes whose span contains the 0-based
// offset, ordered by start.
func (g *Genome) GenesOverlapping(pos int) []*Gene {
	return g.index.overlapping(pos)
}

// Region extracts sequence[start:end], reverse-complemented on request.
// Offsets are 0-based and half-open.
func (g *Genome) Region(start, end int, reverse bool) (string, error) {
	if start < 0 || end > len(g.rec.Sequence) || start > end {
		return "", fmt.Errorf("region %d..%d outside sequence of length %d", start, end, len(g.rec.Sequence))
	}
	s := g.rec.Sequence[start:end]
	if reverse {
		s = dna.ReverseComplement(s)
	}
	return s, nil
}

// SanitizeKey maps a gene name to its registry form: lowercased, with every
// byte outside [a-z0-9] replaced by an underscore.
func SanitizeKey(name string) string {
	b := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b[i] = c
		case c >= 'A' && c <= 'Z':
			b[i] = c + ('a' - 'A')
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
