package genbank

import (
	"strconv"
	"strings"
)

// Record is a fully parsed flat-file genome record.
type Record struct {
	Name       string // LOCUS name
	Length     int    // declared sequence length in bases
	Molecule   string // molecule type (e.g., DNA, ss-DNA)
	Topology   string // linear or circular
	Division   string // three-letter division code (e.g., BCT)
	Date       string // last-update date, verbatim
	Definition string
	Accession  string
	Version    string
	Keywords   string
	Source     string
	Organism   string
	Taxonomy   string // lineage lines joined, verbatim
	Comment    string

	References []Reference
	Header     []HeaderEntry // every header entry in order, verbatim
	Features   []Feature     // feature table in file order
	Sequence   string        // lowercase nucleotide buffer
}

// HeaderEntry is one header keyword with its continuation-joined body,
// preserved for sections the model does not interpret further.
type HeaderEntry struct {
	Keyword string
	Body    string
}

// Reference is one REFERENCE block from the header.
type Reference struct {
	Number     int
	BasesText  string // e.g., "(bases 1 to 4639675)", verbatim
	Authors    string
	Consortium string
	Title      string
	Journal    string
	PubMed     string
	Remark     string
}

// headerBlock is one keyword entry as lexed from the header section.
type headerBlock struct {
	keyword string
	sub     bool // indented sub-keyword (e.g., ORGANISM under SOURCE)
	lines   []string
	line    int
}

// buildRecord interprets the lexed header blocks into Record fields. Every
// block is also retained verbatim in Header.
func buildRecord(blocks []headerBlock) *Record {
	rec := &Record{}

	parent := ""
	for _, b := range blocks {
		body := strings.Join(b.lines, " ")
		rec.Header = append(rec.Header, HeaderEntry{Keyword: b.keyword, Body: body})

		if !b.sub {
			parent = b.keyword
		}

		switch {
		case b.keyword == "LOCUS" && !b.sub:
			rec.parseLocus(body)
		case b.keyword == "DEFINITION" && !b.sub:
			rec.Definition = body
		case b.keyword == "ACCESSION" && !b.sub:
			rec.Accession = body
		case b.keyword == "VERSION" && !b.sub:
			rec.Version = body
		case b.keyword == "KEYWORDS" && !b.sub:
			rec.Keywords = body
		case b.keyword == "SOURCE" && !b.sub:
			rec.Source = body
		case b.keyword == "COMMENT" && !b.sub:
			rec.Comment = body
		case b.keyword == "ORGANISM" && b.sub && parent == "SOURCE":
			// First line names the organism, the rest is the lineage.
			if len(b.lines) > 0 {
				rec.Organism = b.lines[0]
				rec.Taxonomy = strings.Join(b.lines[1:], " ")
			}
		case b.keyword == "REFERENCE" && !b.sub:
			rec.References = append(rec.References, parseReferenceBody(body))
		case b.sub && parent == "REFERENCE" && len(rec.References) > 0:
			ref := &rec.References[len(rec.References)-1]
			switch b.keyword {
			case "AUTHORS":
				ref.Authors = body
			case "CONSRTM":
				ref.Consortium = body
			case "TITLE":
				ref.Title = body
			case "JOURNAL":
				ref.Journal = body
			case "PUBMED":
				ref.PubMed = body
			case "REMARK":
				ref.Remark = body
			}
		}
	}

	return rec
}

// parseLocus fills the LOCUS line fields. The line is positional in the
// format but widths drift between producers, so fields are classified by
// shape rather than by column.
func (r *Record) parseLocus(body string) {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return
	}
	r.Name = fields[0]

	for i := 1; i < len(fields); i++ {
		f := fields[i]
		switch {
		case f == "bp" || f == "aa":
			if n, err := strconv.Atoi(fields[i-1]); err == nil {
				r.Length = n
			}
		case f == "linear" || f == "circular":
			r.Topology = f
		case strings.Contains(f, "DNA") || strings.Contains(f, "RNA"):
			r.Molecule = f
		case isLocusDate(f):
			r.Date = f
		case len(f) == 3 && f == strings.ToUpper(f) && isAlpha(f[0]) && isAlpha(f[1]) && isAlpha(f[2]):
			r.Division = f
		}
	}
}

// isLocusDate matches the DD-MMM-YYYY form used on LOCUS lines.
func isLocusDate(s string) bool {
	if len(s) != 11 || s[2] != '-' || s[6] != '-' {
		return false
	}
	for _, i := range []int{0, 1, 7, 8, 9, 10} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseReferenceBody splits "1  (bases 1 to 5028)" into number and range.
func parseReferenceBody(body string) Reference {
	ref := Reference{}
	rest := strings.TrimSpace(body)
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i > 0 {
		ref.Number, _ = strconv.Atoi(rest[:i])
		rest = strings.TrimSpace(rest[i:])
	}
	ref.BasesText = rest
	return ref
}
