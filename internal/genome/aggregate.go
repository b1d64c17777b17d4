package genome

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cathalgarvey/DNAmespace/internal/codon"
	"github.com/cathalgarvey/DNAmespace/internal/genbank"
)

// Options configure gene aggregation.
type Options struct {
	TableID        string      // codon table identifier (e.g. "11")
	TruncateAtStop bool        // stop translation at the first stop codon
	Logger         *zap.Logger // sink for recovery and sanity warnings
}

// DefaultOptions returns the standard bacterial configuration: table 11,
// translations truncated at the first stop.
func DefaultOptions() Options {
	return Options{
		TableID:        codon.DefaultTableID,
		TruncateAtStop: true,
	}
}

// Aggregate groups the record's gene and coding features into Genes and
// assembles the Genome. The codon table is validated before any feature
// work; an unknown identifier fails the whole aggregation.
func Aggregate(rec *genbank.Record, opts Options) (*Genome, error) {
	if opts.TableID == "" {
		opts.TableID = codon.DefaultTableID
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	table, err := codon.TableByID(opts.TableID)
	if err != nil {
		return nil, err
	}

	agg := &aggregator{
		rec:    rec,
		table:  table,
		opts:   opts,
		logger: logger,
		byKey:  make(map[string]*Gene),
	}

	for i := range rec.Features {
		f := &rec.Features[i]
		switch f.Kind {
		case genbank.KindGene:
			agg.seedGene(f)
		case genbank.KindCDS:
			if err := agg.attachCDS(f); err != nil {
				return nil, err
			}
		}
	}

	return New(rec, agg.genes), nil
}

type aggregator struct {
	rec    *genbank.Record
	table  codon.Table
	opts   Options
	logger *zap.Logger
	genes  []*Gene
	byKey  map[string]*Gene
}

// seedGene creates a Gene for a gene feature. The key is the /gene value,
// falling back to the locus tag, falling back to a positional name. The
// first seeding of a key wins its span; later duplicates only contribute
// qualifiers.
func (a *aggregator) seedGene(f *genbank.Feature) {
	key := f.GeneName()
	if key == "" {
		key = f.LocusTag()
	}
	if key == "" {
		key = fmt.Sprintf("gene_%d", len(a.genes)+1)
	}

	if g, ok := a.byKey[key]; ok {
		g.Qualifiers = append(g.Qualifiers, f.Qualifiers...)
		return
	}

	// Copied, not aliased: duplicate gene features append into this slice
	// and must never write through to the record's qualifier storage.
	ext := f.Location.Extent()
	g := &Gene{
		Key:        key,
		LocusTag:   f.LocusTag(),
		Start:      ext.Start.Offset,
		End:        ext.End.Offset,
		Strand:     strandOf(f.Location),
		Qualifiers: append([]genbank.Qualifier(nil), f.Qualifiers...),
	}
	a.genes = append(a.genes, g)
	a.byKey[key] = g
}

// attachCDS extracts the coding sequence and attaches it as a Transcript to
// the owning Gene. Every coding feature ends up somewhere: unmatched ones
// seed a synthetic Gene rather than being dropped.
func (a *aggregator) attachCDS(f *genbank.Feature) error {
	seq, err := f.Location.Resolve(a.rec.Sequence)
	if err != nil {
		return fmt.Errorf("resolve %s feature at line %d: %w", f.Key, f.Line, err)
	}

	ext := f.Location.Extent()
	g := a.matchGene(f, ext)
	if g == nil {
		g = a.seedForCDS(f, ext)
	}

	tr := &Transcript{
		GeneKey:    g.Key,
		LocusTag:   f.LocusTag(),
		Product:    f.Product(),
		Location:   f.Location,
		Start:      ext.Start.Offset,
		End:        ext.End.Offset,
		Strand:     strandOf(f.Location),
		Sequence:   seq,
		Qualifiers: f.Qualifiers,
		table:      a.table,
		truncate:   a.opts.TruncateAtStop,
	}
	g.Transcripts = append(g.Transcripts, tr)

	a.checkCodingSpan(f, tr)
	return nil
}

// matchGene finds the Gene a coding feature belongs to: by its /gene
// qualifier when it has one, otherwise the innermost seeded gene whose span
// contains the coding span. The most recently seeded gene wins ties.
// Returns nil when nothing matches.
func (a *aggregator) matchGene(f *genbank.Feature, ext genbank.Span) *Gene {
	if name := f.GeneName(); name != "" {
		return a.byKey[name]
	}

	var best *Gene
	for _, g := range a.genes {
		if g.Start <= ext.Start.Offset && ext.End.Offset <= g.End {
			if best == nil || g.Len() <= best.Len() {
				best = g
			}
		}
	}
	if best != nil {
		a.logger.Warn("coding feature attached by span containment",
			zap.String("gene", best.Key),
			zap.Int("line", f.Line))
	}
	return best
}

// seedForCDS recovers a coding feature that matched no gene by seeding a
// Gene for it, keyed by locus tag when present.
func (a *aggregator) seedForCDS(f *genbank.Feature, ext genbank.Span) *Gene {
	key := f.LocusTag()
	if key == "" {
		key = f.GeneName()
	}
	if key == "" {
		key = fmt.Sprintf("gene_%d", len(a.genes)+1)
	}

	if g, ok := a.byKey[key]; ok {
		return g
	}

	g := &Gene{
		Key:       key,
		LocusTag:  f.LocusTag(),
		Start:     ext.Start.Offset,
		End:       ext.End.Offset,
		Strand:    strandOf(f.Location),
		Synthetic: true,
	}
	a.genes = append(a.genes, g)
	a.byKey[key] = g

	a.logger.Warn("coding feature matched no gene, seeding one",
		zap.String("gene", key),
		zap.Int("line", f.Line))
	return g
}

// checkCodingSpan logs sanity warnings about a freshly attached transcript.
// None of these conditions are errors.
func (a *aggregator) checkCodingSpan(f *genbank.Feature, tr *Transcript) {
	if len(tr.Sequence)%3 != 0 {
		a.logger.Warn("coding span length not divisible by three",
			zap.String("gene", tr.GeneKey),
			zap.Int("length", len(tr.Sequence)),
			zap.Int("line", f.Line))
	}
	if len(tr.Sequence) >= 3 && !a.table.IsStartCodon(tr.Sequence[:3]) && !fuzzyFivePrime(f.Location) {
		a.logger.Warn("coding span does not begin with a start codon",
			zap.String("gene", tr.GeneKey),
			zap.String("codon", tr.Sequence[:3]),
			zap.Int("line", f.Line))
	}
}

// fuzzyFivePrime reports whether the 5' boundary of the location carries a
// fuzzy marker. On the reverse strand that is the high-offset end.
func fuzzyFivePrime(loc genbank.Location) bool {
	ext := loc.Extent()
	if loc.Reverse() {
		return ext.End.Fuzzy()
	}
	return ext.Start.Fuzzy()
}

func strandOf(loc genbank.Location) int8 {
	if loc.Reverse() {
		return -1
	}
	return 1
}
