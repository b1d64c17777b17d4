package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/cathalgarvey/DNAmespace/internal/genome"
)

// GeneRow is one exported gene as stored in the genes table.
type GeneRow struct {
	Accession       string
	Key             string
	LocusTag        string
	Start           int64
	End             int64
	Strand          int64
	Synthetic       bool
	Product         string
	TranscriptCount int64
}

// TranscriptRow is one exported coding span as stored in the transcripts
// table.
type TranscriptRow struct {
	Accession string
	GeneKey   string
	LocusTag  string
	Start     int64
	End       int64
	Strand    int64
	Location  string
	Product   string
	Protein   string
}

// GenomeRow is one exported genome header as stored in the genomes table.
type GenomeRow struct {
	Accession  string
	Name       string
	Length     int64
	Molecule   string
	Topology   string
	Division   string
	Updated    string
	Definition string
	Organism   string
	GeneCount  int64
}

// transcriptKey is the composite key for deduplicating transcript rows
// before writing.
type transcriptKey struct {
	geneKey    string
	start, end int64
	strand     int64
}

// WriteGenome replaces any previous export of the genome and bulk-inserts
// its gene and transcript rows using the Appender API.
func (s *Store) WriteGenome(g *genome.Genome) error {
	acc := accessionOf(g)
	rec := g.Record()

	if err := s.DeleteGenome(acc); err != nil {
		return err
	}

	if _, err := s.db.Exec(
		`INSERT INTO genomes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		acc, rec.Name, int64(g.Len()), rec.Molecule, rec.Topology,
		rec.Division, rec.Date, rec.Definition, rec.Organism,
		int64(len(g.Genes())),
	); err != nil {
		return fmt.Errorf("insert genome row: %w", err)
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	if err := s.appendGenes(conn, acc, g.Genes()); err != nil {
		return err
	}
	return s.appendTranscripts(conn, acc, g.Genes())
}

// DeleteGenome removes the genome and its gene and transcript rows.
func (s *Store) DeleteGenome(accession string) error {
	for _, table := range []string{"transcripts", "genes", "genomes"} {
		if _, err := s.db.Exec("DELETE FROM "+table+" WHERE accession=?", accession); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return nil
}

func (s *Store) appendGenes(conn *sql.Conn, acc string, genes []*genome.Gene) error {
	appender, err := newAppender(conn, "genes")
	if err != nil {
		return err
	}
	defer appender.Close()

	for _, g := range genes {
		if err := appender.AppendRow(
			acc, g.Key, g.LocusTag,
			int64(g.Start), int64(g.End), int64(g.Strand),
			g.Synthetic, g.Product(), int64(len(g.Transcripts)),
		); err != nil {
			return fmt.Errorf("append gene row: %w", err)
		}
	}

	return appender.Flush()
}

func (s *Store) appendTranscripts(conn *sql.Conn, acc string, genes []*genome.Gene) error {
	appender, err := newAppender(conn, "transcripts")
	if err != nil {
		return err
	}
	defer appender.Close()

	// Deduplicate by primary key (a record can carry the same span twice).
	seen := make(map[transcriptKey]bool)

	for _, g := range genes {
		for _, tr := range g.Transcripts {
			k := transcriptKey{tr.GeneKey, int64(tr.Start), int64(tr.End), int64(tr.Strand)}
			if seen[k] {
				continue
			}
			seen[k] = true

			if err := appender.AppendRow(
				acc, tr.GeneKey, tr.LocusTag,
				int64(tr.Start), int64(tr.End), int64(tr.Strand),
				tr.Location.String(), tr.Product, tr.Protein(),
			); err != nil {
				return fmt.Errorf("append transcript row: %w", err)
			}
		}
	}

	return appender.Flush()
}

// newAppender creates a DuckDB appender for the table on the given
// connection.
func newAppender(conn *sql.Conn, table string) (*goduckdb.Appender, error) {
	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		return nil, fmt.Errorf("create %s appender: %w", table, err)
	}
	return appender, nil
}

// Genomes returns every exported genome header, ordered by accession.
func (s *Store) Genomes() ([]GenomeRow, error) {
	rows, err := s.db.Query(`SELECT
		accession, name, length, molecule, topology, division,
		updated, definition, organism, gene_count
		FROM genomes ORDER BY accession`)
	if err != nil {
		return nil, fmt.Errorf("query genomes: %w", err)
	}
	defer rows.Close()

	var out []GenomeRow
	for rows.Next() {
		var r GenomeRow
		if err := rows.Scan(
			&r.Accession, &r.Name, &r.Length, &r.Molecule, &r.Topology,
			&r.Division, &r.Updated, &r.Definition, &r.Organism, &r.GeneCount,
		); err != nil {
			return nil, fmt.Errorf("scan genome row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genomes: %w", err)
	}
	return out, nil
}

// Genes returns the exported genes of a genome, ordered by start.
func (s *Store) Genes(accession string) ([]GeneRow, error) {
	rows, err := s.db.Query(`SELECT
		accession, key, locus_tag, start_pos, end_pos, strand,
		synthetic, product, transcript_count
		FROM genes WHERE accession=? ORDER BY start_pos`, accession)
	if err != nil {
		return nil, fmt.Errorf("query genes: %w", err)
	}
	defer rows.Close()

	var out []GeneRow
	for rows.Next() {
		var r GeneRow
		if err := rows.Scan(
			&r.Accession, &r.Key, &r.LocusTag, &r.Start, &r.End, &r.Strand,
			&r.Synthetic, &r.Product, &r.TranscriptCount,
		); err != nil {
			return nil, fmt.Errorf("scan gene row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genes: %w", err)
	}
	return out, nil
}

// GeneCount returns the number of exported genes for a genome.
func (s *Store) GeneCount(accession string) (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM genes WHERE accession=?", accession).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count genes: %w", err)
	}
	return n, nil
}

// Transcripts returns the exported coding spans of one gene, ordered by
// start.
func (s *Store) Transcripts(accession, geneKey string) ([]TranscriptRow, error) {
	rows, err := s.db.Query(`SELECT
		accession, gene_key, locus_tag, start_pos, end_pos, strand,
		location, product, protein
		FROM transcripts WHERE accession=? AND gene_key=? ORDER BY start_pos`,
		accession, geneKey)
	if err != nil {
		return nil, fmt.Errorf("query transcripts: %w", err)
	}
	defer rows.Close()

	var out []TranscriptRow
	for rows.Next() {
		var r TranscriptRow
		if err := rows.Scan(
			&r.Accession, &r.GeneKey, &r.LocusTag, &r.Start, &r.End, &r.Strand,
			&r.Location, &r.Product, &r.Protein,
		); err != nil {
			return nil, fmt.Errorf("scan transcript row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcripts: %w", err)
	}
	return out, nil
}

// accessionOf names a genome for storage: the record accession, falling
// back to the locus name.
func accessionOf(g *genome.Genome) string {
	if acc := g.Record().Accession; acc != "" {
		return acc
	}
	return g.Name()
}
