package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cathalgarvey/DNAmespace/internal/duckdb"
	"github.com/cathalgarvey/DNAmespace/internal/genome"
)

func runExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	var (
		dbPath  string
		workers int
	)
	fs.StringVar(&dbPath, "db", "", "Output DuckDB file path")
	fs.IntVar(&workers, "workers", 0, "Parallel parse workers (default: number of CPUs)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Parse genome records and store the aggregated genomes in DuckDB.

Multiple records are parsed in parallel, each by an independent pipeline,
and written to the database in argument order.

Usage:
  dnamespace export --db <file> [options] <record-file>...

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  dnamespace export --db genomes.duckdb NC_000913.gb
  dnamespace export --db genomes.duckdb --workers 4 one.gb two.gb.gz three.gb
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if dbPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --db is required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one record file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	if filepath.Ext(dbPath) != ".duckdb" && filepath.Ext(dbPath) != ".db" {
		dbPath = dbPath + ".duckdb"
	}

	logger := newLogger()
	defer logger.Sync()

	store, err := duckdb.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return ExitError
	}
	defer store.Close()

	opts := configuredOptions("", false, logger)

	items := make(chan genome.WorkItem, fs.NArg())
	for i, path := range fs.Args() {
		items <- genome.WorkItem{Seq: i, Path: path}
	}
	close(items)

	results := genome.ParallelLoad(items, workers, opts)

	exported := 0
	failed := 0
	err = genome.OrderedCollect(results, func(r genome.WorkResult) error {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", r.Path, r.Err)
			failed++
			return nil
		}

		if err := store.WriteGenome(r.Genome); err != nil {
			return fmt.Errorf("write %s: %w", r.Path, err)
		}
		if r.Path != "-" {
			if err := store.StampSource(r.Path); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not stamp source %s: %v\n", r.Path, err)
			}
		}

		exported++
		fmt.Fprintf(os.Stderr, "Exported %s: %d genes\n", r.Genome.Name(), len(r.Genome.Genes()))
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	fmt.Fprintf(os.Stderr, "\nExport complete: %d genome(s) written to %s\n", exported, dbPath)
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d input(s) failed\n", failed)
		return ExitError
	}
	return ExitSuccess
}
