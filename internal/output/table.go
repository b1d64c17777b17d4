// Package output provides genome output formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cathalgarvey/DNAmespace/internal/genome"
)

// GeneTableWriter writes aggregated genes in tab-delimited format.
type GeneTableWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewGeneTableWriter creates a new tab-delimited gene table writer.
func NewGeneTableWriter(w io.Writer) *GeneTableWriter {
	return &GeneTableWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Gene",
			"Locus_tag",
			"Start",
			"End",
			"Strand",
			"Transcripts",
			"Synthetic",
			"Product",
		},
	}
}

// WriteHeader writes the header line.
func (gw *GeneTableWriter) WriteHeader() error {
	_, err := gw.w.WriteString(strings.Join(gw.columns, "\t") + "\n")
	return err
}

// Write writes a single gene row. Coordinates are printed 1-based inclusive
// to match the record's own convention.
func (gw *GeneTableWriter) Write(g *genome.Gene) error {
	locusTag := g.LocusTag
	if locusTag == "" {
		locusTag = "-"
	}

	strand := "+"
	if g.IsReverseStrand() {
		strand = "-"
	}

	synthetic := "-"
	if g.Synthetic {
		synthetic = "YES"
	}

	product := g.Product()
	if product == "" {
		product = "-"
	}

	values := []string{
		g.Key,
		locusTag,
		fmt.Sprintf("%d", g.Start+1),
		fmt.Sprintf("%d", g.End),
		strand,
		fmt.Sprintf("%d", len(g.Transcripts)),
		synthetic,
		product,
	}

	_, err := gw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteAll writes the header followed by every gene of the genome.
func (gw *GeneTableWriter) WriteAll(g *genome.Genome) error {
	if err := gw.WriteHeader(); err != nil {
		return err
	}
	for _, gene := range g.Genes() {
		if err := gw.Write(gene); err != nil {
			return err
		}
	}
	return gw.Flush()
}

// Flush flushes any buffered data to the underlying writer.
func (gw *GeneTableWriter) Flush() error {
	return gw.w.Flush()
}
