package genbank

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cathalgarvey/DNAmespace/internal/dna"
)

// Feature-table geometry: keys sit at column 5, location and qualifier text
// at column 21, continuations are indented all the way to 21.
const (
	featureKeyCol  = 5
	featureTextCol = 21
)

var featureContinuation = strings.Repeat(" ", featureTextCol)

// Qualifiers whose values continue across lines without a joining space.
// Everything else joins with a single space.
var bareJoinQualifiers = map[string]bool{
	"translation":   true,
	"transcription": true,
	"peptide":       true,
	"anticodon":     true,
}

// Parser reads flat-file genome records from a file or stream. Records a
// file holds in sequence are returned by successive Next calls.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
}

// NewParser creates a parser for the given file path. Plain and gzipped
// records are both accepted; "-" reads standard input.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record file: %w", err)
	}

	p, err := NewParserFromReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	p.file = file
	return p, nil
}

// NewParserFromReader creates a parser reading from r. Gzip input is
// detected by its magic bytes and decompressed transparently.
func NewParserFromReader(r io.Reader) (*Parser, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		return &Parser{reader: bufio.NewReader(gz), gzipReader: gz}, nil
	}

	return &Parser{reader: br}, nil
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and the underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// readLine returns the next input line without its terminator.
func (p *Parser) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if len(line) == 0 {
		if err != nil {
			return "", err
		}
		return "", io.EOF
	}
	p.lineNumber++
	return strings.TrimRight(line, "\r\n"), nil
}

// parse sections
const (
	sectionHeader = iota
	sectionFeatures
	sectionSequence
)

// rawFeatureBlock is one feature entry as lexed: the key plus the text of
// every line at the feature text column.
type rawFeatureBlock struct {
	key   string
	line  int
	texts []string
}

// Next reads the next record. Returns nil, nil when the input holds no
// further records.
func (p *Parser) Next() (*Record, error) {
	first := ""
	for {
		line, err := p.readLine()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		first = line
		break
	}
	return p.parseRecord(first)
}

// parseRecord consumes one record from the first content line through the
// // terminator.
func (p *Parser) parseRecord(first string) (*Record, error) {
	if !strings.HasPrefix(first, "LOCUS") {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("record must begin with LOCUS, found %q", firstWord(first)),
			Err:     ErrUnrecognizedSection,
		}
	}

	var (
		section    = sectionHeader
		blocks     []headerBlock
		raws       []rawFeatureBlock
		seq        strings.Builder
		terminated bool
	)

	line := first
	for {
		if strings.TrimSpace(line) == "//" {
			terminated = true
			break
		}

		switch section {
		case sectionHeader:
			switch {
			case strings.HasPrefix(line, "FEATURES"):
				section = sectionFeatures
			case strings.HasPrefix(line, "ORIGIN"):
				section = sectionSequence
			case strings.TrimSpace(line) == "":
			case line[0] != ' ':
				blocks = append(blocks, headerBlock{
					keyword: keywordField(line),
					lines:   bodyField(line),
					line:    p.lineNumber,
				})
			default:
				kw := keywordField(line)
				if kw != "" {
					blocks = append(blocks, headerBlock{
						keyword: kw,
						sub:     true,
						lines:   bodyField(line),
						line:    p.lineNumber,
					})
				} else if len(blocks) > 0 {
					if body := strings.TrimSpace(line); body != "" {
						last := &blocks[len(blocks)-1]
						last.lines = append(last.lines, body)
					}
				}
			}

		case sectionFeatures:
			switch {
			case strings.TrimSpace(line) == "":
			case line[0] != ' ':
				// Trailing header-style sections (BASE COUNT, CONTIG)
				// end the feature table.
				if strings.HasPrefix(line, "ORIGIN") {
					section = sectionSequence
					break
				}
				section = sectionHeader
				blocks = append(blocks, headerBlock{
					keyword: keywordField(line),
					lines:   bodyField(line),
					line:    p.lineNumber,
				})
			case strings.HasPrefix(line, featureContinuation) && len(strings.TrimSpace(line)) > 0:
				if len(raws) == 0 {
					return nil, &ParseError{
						Line:    p.lineNumber,
						Message: "qualifier or continuation line outside any feature",
						Err:     ErrMalformedFeature,
					}
				}
				last := &raws[len(raws)-1]
				last.texts = append(last.texts, line[featureTextCol:])
			case len(line) > featureKeyCol && line[featureKeyCol] != ' ' && strings.HasPrefix(line, "     "):
				key, text, err := splitFeatureLine(line)
				if err != nil {
					return nil, &ParseError{Line: p.lineNumber, Message: err.Error(), Err: ErrMalformedFeature}
				}
				raws = append(raws, rawFeatureBlock{key: key, line: p.lineNumber, texts: []string{text}})
			default:
				return nil, &ParseError{
					Line:    p.lineNumber,
					Message: fmt.Sprintf("mis-indented feature table line %q", strings.TrimSpace(line)),
					Err:     ErrMalformedFeature,
				}
			}

		case sectionSequence:
			if strings.TrimSpace(line) == "" {
				break
			}
			if line[0] != ' ' && !isDigit(line[0]) {
				return nil, &ParseError{
					Line:    p.lineNumber,
					Message: fmt.Sprintf("unexpected content in sequence block: %q", firstWord(line)),
					Err:     ErrUnrecognizedSection,
				}
			}
			if err := appendSequence(&seq, line, p.lineNumber); err != nil {
				return nil, err
			}
		}

		next, err := p.readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		line = next
	}

	if !terminated {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: "record terminator // not found",
			Err:     ErrTruncatedRecord,
		}
	}

	rec := buildRecord(blocks)
	for _, raw := range raws {
		feat, err := parseFeatureBlock(raw)
		if err != nil {
			return nil, err
		}
		rec.Features = append(rec.Features, feat)
	}
	rec.Sequence = seq.String()
	return rec, nil
}

// keywordField returns the keyword in the first twelve columns, if any.
func keywordField(line string) string {
	end := min(12, len(line))
	return strings.TrimSpace(line[:end])
}

// bodyField returns the body text after the keyword columns, or nothing
// for a bare keyword line.
func bodyField(line string) []string {
	if len(line) <= 12 {
		return nil
	}
	body := strings.TrimRight(line[12:], " ")
	if body == "" {
		return nil
	}
	return []string{body}
}

// splitFeatureLine splits a feature key line into the key and the text at
// the feature text column.
func splitFeatureLine(line string) (key, text string, err error) {
	if len(line) > featureTextCol {
		key = strings.TrimSpace(line[featureKeyCol:featureTextCol])
		text = line[featureTextCol:]
	} else {
		key = strings.TrimSpace(line[featureKeyCol:])
	}
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", fmt.Errorf("invalid feature key field %q", strings.TrimSpace(line))
	}
	return key, text, nil
}

// appendSequence strips the leading offset from a sequence line and appends
// its lowercased bases.
func appendSequence(seq *strings.Builder, line string, lineNumber int) error {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	for i < len(line) && isDigit(line[i]) {
		i++
	}
	for ; i < len(line); i++ {
		b := line[i]
		if b == ' ' || b == '\t' {
			continue
		}
		if isDigit(b) {
			return &ParseError{
				Line:    lineNumber,
				Message: "unexpected digit inside sequence data",
				Err:     ErrUnrecognizedSection,
			}
		}
		lb := lowerByte(b)
		if lb != '-' && !dna.IsNucleotide(lb) {
			return &ParseError{
				Line:    lineNumber,
				Message: fmt.Sprintf("unexpected %q in sequence data", string(b)),
				Err:     ErrUnrecognizedSection,
			}
		}
		seq.WriteByte(lb)
	}
	return nil
}

// parseFeatureBlock interprets one lexed feature entry: location text first,
// then /key=value qualifiers with their continuation rules.
func parseFeatureBlock(raw rawFeatureBlock) (Feature, error) {
	f := Feature{Key: raw.key, Kind: KindOf(raw.key), Line: raw.line}

	i := 0
	var loc strings.Builder
	for ; i < len(raw.texts); i++ {
		text := strings.TrimSpace(raw.texts[i])
		if strings.HasPrefix(text, "/") {
			break
		}
		loc.WriteString(text)
	}
	f.RawLocation = loc.String()
	if f.RawLocation == "" {
		return f, &ParseError{
			Line:    raw.line,
			Message: fmt.Sprintf("feature %q has no location", raw.key),
			Err:     ErrMalformedFeature,
		}
	}

	for i < len(raw.texts) {
		text := strings.TrimSpace(raw.texts[i])
		if !strings.HasPrefix(text, "/") {
			return f, &ParseError{
				Line:    raw.line,
				Message: fmt.Sprintf("expected a /qualifier in feature %q, found %q", raw.key, text),
				Err:     ErrMalformedFeature,
			}
		}
		i++

		q, consumed, err := parseQualifier(raw, text, raw.texts[i:])
		if err != nil {
			return f, err
		}
		i += consumed
		f.Qualifiers = append(f.Qualifiers, q)
	}

	if f.Kind == KindGene || f.Kind == KindCDS {
		parsed, err := ParseLocation(f.RawLocation)
		if err != nil {
			return f, &ParseError{Line: raw.line, Message: err.Error(), Err: err}
		}
		f.Location = parsed
	}

	return f, nil
}

// parseQualifier parses one /key=value entry starting at text, consuming
// continuation lines from rest while a quoted value stays open. Returns how
// many continuation lines were consumed.
func parseQualifier(raw rawFeatureBlock, text string, rest []string) (Qualifier, int, error) {
	body := text[1:]
	eq := strings.IndexByte(body, '=')

	if eq < 0 {
		if body == "" || strings.ContainsAny(body, " \t") {
			return Qualifier{}, 0, &ParseError{
				Line:    raw.line,
				Message: fmt.Sprintf("invalid qualifier %q in feature %q", text, raw.key),
				Err:     ErrMalformedFeature,
			}
		}
		return Qualifier{Key: body}, 0, nil
	}

	key := body[:eq]
	if key == "" || strings.ContainsAny(key, " \t") {
		return Qualifier{}, 0, &ParseError{
			Line:    raw.line,
			Message: fmt.Sprintf("invalid qualifier key in %q", text),
			Err:     ErrMalformedFeature,
		}
	}

	value := body[eq+1:]
	consumed := 0

	if strings.HasPrefix(value, `"`) {
		// A quoted value stays open while its quote count is odd; doubled
		// quotes inside the value keep it open.
		quotes := strings.Count(value, `"`)
		for quotes%2 == 1 && consumed < len(rest) {
			next := strings.TrimSpace(rest[consumed])
			consumed++
			if bareJoinQualifiers[key] {
				value += next
			} else {
				value += " " + next
			}
			quotes += strings.Count(next, `"`)
		}
		if quotes%2 == 1 {
			return Qualifier{}, 0, &ParseError{
				Line:    raw.line,
				Message: fmt.Sprintf("unterminated quoted value for /%s in feature %q", key, raw.key),
				Err:     ErrMalformedFeature,
			}
		}
		value = unquote(value)
	} else {
		// Unquoted values continue only while the next line is not a new
		// qualifier (split location operands, for example).
		for consumed < len(rest) && !strings.HasPrefix(strings.TrimSpace(rest[consumed]), "/") {
			value += strings.TrimSpace(rest[consumed])
			consumed++
		}
	}

	return Qualifier{Key: key, Value: value}, consumed, nil
}

// unquote strips the surrounding quotes and collapses doubled quotes.
func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.ReplaceAll(s, `""`, `"`)
}

func firstWord(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
