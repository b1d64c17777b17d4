// Package main provides the dnamespace command-line tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cathalgarvey/DNAmespace/internal/genbank"
	"github.com/cathalgarvey/DNAmespace/internal/genome"
	"github.com/cathalgarvey/DNAmespace/internal/output"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Parse()

	if showVersion {
		fmt.Printf("dnamespace version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "info":
		return runInfo(args[1:])
	case "genes":
		return runGenes(args[1:])
	case "seq":
		return runSeq(args[1:])
	case "translate":
		return runTranslate(args[1:])
	case "export":
		return runExport(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `dnamespace - GenBank genome explorer

Usage:
  dnamespace [options] <command> [arguments]

Commands:
  info        Summarize a genome record (header fields, gene counts)
  genes       List the aggregated genes of a record as a table
  seq         Print a gene's coding sequence or a region of the genome
  translate   Print a gene's protein sequence
  export      Parse records and store the aggregated genomes in DuckDB
  config      Show, get, or set configuration values
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Summarize a record (gzipped files work too)
  dnamespace info NC_000913.gb.gz

  # List every gene as a tab-separated table
  dnamespace genes NC_000913.gb

  # Coding sequence and protein of lacZ
  dnamespace seq --gene lacZ NC_000913.gb
  dnamespace translate --gene lacZ NC_000913.gb

  # Store several genomes in one database, in parallel
  dnamespace export --db genomes.duckdb one.gb two.gb.gz

For more information on a command, use:
  dnamespace <command> --help
`)
}

// initConfig wires viper to ~/.dnamespace.yaml and the DNAMESPACE_*
// environment. Missing config files are fine; defaults apply.
func initConfig() {
	viper.SetConfigName(".dnamespace")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetEnvPrefix("dnamespace")
	viper.AutomaticEnv()

	viper.SetDefault("codon_table", "11")
	viper.SetDefault("truncate_at_stop", true)
	viper.SetDefault("log_level", "warn")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: could not read config: %v\n", err)
		}
	}
}

// newLogger builds a stderr logger honoring the configured log level.
func newLogger() *zap.Logger {
	level := zap.WarnLevel
	if err := level.Set(viper.GetString("log_level")); err != nil {
		level = zap.WarnLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// configuredOptions builds aggregation options from config plus explicit
// overrides from subcommand flags.
func configuredOptions(tableID string, full bool, logger *zap.Logger) genome.Options {
	opts := genome.DefaultOptions()
	opts.TableID = viper.GetString("codon_table")
	opts.TruncateAtStop = viper.GetBool("truncate_at_stop")
	opts.Logger = logger

	if tableID != "" {
		opts.TableID = tableID
	}
	if full {
		opts.TruncateAtStop = false
	}
	return opts
}

// loadGenome runs the pipeline on one record file, reporting unreadable
// files distinctly from invalid record syntax.
func loadGenome(path string, opts genome.Options) (*genome.Genome, int) {
	g, err := genome.LoadFile(path, opts)
	if err == nil {
		return g, ExitSuccess
	}
	fmt.Fprint(os.Stderr, describeLoadError(path, err))
	return nil, ExitError
}

// describeLoadError renders a load failure for stderr. Unreadable files and
// invalid record syntax get distinct messages; the errors arrive wrapped, so
// kinds are checked with errors.Is/As rather than the os predicates.
func describeLoadError(path string, err error) string {
	var parseErr *genbank.ParseError
	switch {
	case errors.As(err, &parseErr):
		return fmt.Sprintf("Error: %s is not a valid record: %v\n", path, err)
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return fmt.Sprintf("Error: cannot read %s: %v\nHint: Check that the file path is correct\n", path, err)
	default:
		return fmt.Sprintf("Error: %v\n", err)
	}
}

// openOutput opens the -o target, defaulting to stdout. The caller closes
// the returned file when it is not stdout.
func openOutput(path string) (*os.File, error) {
	if path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func runInfo(args []string) int {
	fs := flag.NewFlagSet("info", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Summarize a genome record.

Usage:
  dnamespace info <record-file>

Arguments:
  <record-file>  GenBank record, plain or gzipped (use '-' for stdin)

Examples:
  dnamespace info NC_000913.gb
  cat record.gb | dnamespace info -
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: record file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	logger := newLogger()
	defer logger.Sync()

	g, code := loadGenome(fs.Arg(0), configuredOptions("", false, logger))
	if g == nil {
		return code
	}

	rec := g.Record()
	fmt.Printf("Name:       %s\n", rec.Name)
	fmt.Printf("Definition: %s\n", rec.Definition)
	fmt.Printf("Accession:  %s\n", rec.Accession)
	fmt.Printf("Organism:   %s\n", rec.Organism)
	fmt.Printf("Length:     %d bp (%s, %s)\n", g.Len(), rec.Molecule, rec.Topology)

	transcripts := 0
	for _, gene := range g.Genes() {
		transcripts += len(gene.Transcripts)
	}
	fmt.Printf("Genes:      %d\n", len(g.Genes()))
	fmt.Printf("CDS:        %d\n", transcripts)

	return ExitSuccess
}

func runGenes(args []string) int {
	fs := flag.NewFlagSet("genes", flag.ExitOnError)

	var outputFile string
	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `List the aggregated genes of a record as a tab-separated table.

Usage:
  dnamespace genes [options] <record-file>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  dnamespace genes NC_000913.gb
  dnamespace genes -o genes.tsv NC_000913.gb.gz
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: record file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	logger := newLogger()
	defer logger.Sync()

	g, code := loadGenome(fs.Arg(0), configuredOptions("", false, logger))
	if g == nil {
		return code
	}

	out, err := openOutput(outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		return ExitError
	}
	if out != os.Stdout {
		defer out.Close()
	}

	if err := output.NewGeneTableWriter(out).WriteAll(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing gene table: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

func runSeq(args []string) int {
	fs := flag.NewFlagSet("seq", flag.ExitOnError)

	var (
		geneKey string
		region  string
		revcomp bool
		fasta   bool
	)
	fs.StringVar(&geneKey, "gene", "", "Gene key to extract the coding sequence of")
	fs.StringVar(&region, "region", "", "Genome region start..end (1-based, inclusive) instead of a gene")
	fs.BoolVar(&revcomp, "revcomp", false, "Reverse-complement a --region extraction")
	fs.BoolVar(&fasta, "fasta", false, "Wrap the output as a FASTA record")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Print a gene's coding sequence, or a region of the genome.

Usage:
  dnamespace seq (--gene KEY | --region START..END) [options] <record-file>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  dnamespace seq --gene lacZ NC_000913.gb
  dnamespace seq --region 100..250 --revcomp NC_000913.gb
  dnamespace seq --gene lacZ --fasta NC_000913.gb
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: record file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if (geneKey == "") == (region == "") {
		fmt.Fprintf(os.Stderr, "Error: exactly one of --gene or --region is required\n\n")
		fs.Usage()
		return ExitUsage
	}

	logger := newLogger()
	defer logger.Sync()

	g, code := loadGenome(fs.Arg(0), configuredOptions("", false, logger))
	if g == nil {
		return code
	}

	var header, seq string
	if geneKey != "" {
		gene := g.GeneNamed(geneKey)
		if gene == nil {
			fmt.Fprintf(os.Stderr, "Error: no gene named %q in %s\n", geneKey, g.Name())
			return ExitError
		}
		tr := gene.Transcript()
		if tr == nil {
			fmt.Fprintf(os.Stderr, "Error: gene %q has no coding sequence\n", gene.Key)
			return ExitError
		}
		header = fmt.Sprintf("%s %s %s", g.Name(), gene.Key, tr.Location)
		seq = tr.Sequence
	} else {
		start, end, err := parseRegion(region)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitUsage
		}
		seq, err = g.Region(start, end, revcomp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		header = fmt.Sprintf("%s %s", g.Name(), region)
		if revcomp {
			header += " (reverse complement)"
		}
	}

	return emitSequence(header, seq, fasta)
}

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ExitOnError)

	var (
		geneKey string
		tableID string
		full    bool
		fasta   bool
	)
	fs.StringVar(&geneKey, "gene", "", "Gene key to translate")
	fs.StringVar(&tableID, "table", "", "NCBI codon table identifier (default from config, \"11\")")
	fs.BoolVar(&full, "full", false, "Translate past the first stop codon")
	fs.BoolVar(&fasta, "fasta", false, "Wrap the output as a FASTA record")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Print the protein sequence of a gene's first coding span.

Usage:
  dnamespace translate --gene KEY [options] <record-file>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  dnamespace translate --gene lacZ NC_000913.gb
  dnamespace translate --gene lacZ --table 4 --full NC_000913.gb
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: record file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if geneKey == "" {
		fmt.Fprintf(os.Stderr, "Error: --gene is required\n\n")
		fs.Usage()
		return ExitUsage
	}

	logger := newLogger()
	defer logger.Sync()

	g, code := loadGenome(fs.Arg(0), configuredOptions(tableID, full, logger))
	if g == nil {
		return code
	}

	gene := g.GeneNamed(geneKey)
	if gene == nil {
		fmt.Fprintf(os.Stderr, "Error: no gene named %q in %s\n", geneKey, g.Name())
		return ExitError
	}
	tr := gene.Transcript()
	if tr == nil {
		fmt.Fprintf(os.Stderr, "Error: gene %q has no coding sequence\n", gene.Key)
		return ExitError
	}

	header := fmt.Sprintf("%s %s translation", g.Name(), gene.Key)
	return emitSequence(header, tr.Protein(), fasta)
}

// emitSequence prints a sequence bare or as a wrapped FASTA record.
func emitSequence(header, seq string, fasta bool) int {
	if !fasta {
		fmt.Println(seq)
		return ExitSuccess
	}

	fw := output.NewFASTAWriter(os.Stdout)
	if err := fw.Write(header, seq); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing FASTA: %v\n", err)
		return ExitError
	}
	if err := fw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing FASTA: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

// parseRegion parses a 1-based inclusive "start..end" flag value into
// 0-based half-open offsets.
func parseRegion(s string) (int, int, error) {
	var start, end int
	if _, err := fmt.Sscanf(s, "%d..%d", &start, &end); err != nil {
		return 0, 0, fmt.Errorf("region must look like 100..250, got %q", s)
	}
	if start < 1 || end < start {
		return 0, 0, fmt.Errorf("region %q is not an ascending 1-based range", s)
	}
	return start - 1, end, nil
}
