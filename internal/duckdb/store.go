// Package duckdb stores aggregated genomes in a DuckDB database:
// one row per genome plus queryable gene and transcript tables.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding exported genomes.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist and stamps the schema
// version.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS genomes (
			accession VARCHAR PRIMARY KEY,
			name VARCHAR,
			length BIGINT,
			molecule VARCHAR,
			topology VARCHAR,
			division VARCHAR,
			updated VARCHAR,
			definition VARCHAR,
			organism VARCHAR,
			gene_count BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS genes (
			accession VARCHAR,
			key VARCHAR,
			locus_tag VARCHAR,
			start_pos BIGINT,
			end_pos BIGINT,
			strand BIGINT,
			synthetic BOOLEAN,
			product VARCHAR,
			transcript_count BIGINT,
			PRIMARY KEY (accession, key)
		)`,
		`CREATE TABLE IF NOT EXISTS transcripts (
			accession VARCHAR,
			gene_key VARCHAR,
			locus_tag VARCHAR,
			start_pos BIGINT,
			end_pos BIGINT,
			strand BIGINT,
			location VARCHAR,
			product VARCHAR,
			protein VARCHAR,
			PRIMARY KEY (accession, gene_key, start_pos, end_pos, strand)
		)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key VARCHAR PRIMARY KEY,
			value VARCHAR
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}

	return s.initSchemaVersion()
}
