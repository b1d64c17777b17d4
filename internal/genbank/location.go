package genbank

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cathalgarvey/DNAmespace/internal/dna"
)

// Position is a single point on the record's sequence, 0-based. Mark keeps
// the '<' or '>' qualifier the record put on the boundary; the marker never
// changes what is extracted.
type Position struct {
	Offset int  // 0-based offset into the sequence
	Mark   byte // '<' or '>' as written, 0 when the boundary is exact
}

// Fuzzy reports whether the boundary carried a '<' or '>' marker.
func (p Position) Fuzzy() bool { return p.Mark != 0 }

// Span is a half-open interval [Start.Offset, End.Offset) in underlying
// coordinates. Start <= End always holds, whatever the strand.
type Span struct {
	Start Position
	End   Position
}

// Len returns the number of bases the span covers.
func (s Span) Len() int { return s.End.Offset - s.Start.Offset }

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.Start.Offset <= other.Start.Offset && other.End.Offset <= s.End.Offset
}

// Location is a parsed location expression. Implementations are immutable
// once parsed.
type Location interface {
	// Resolve extracts the nucleotides the location selects from seq.
	Resolve(seq string) (string, error)
	// Extent returns the outermost covered span in underlying coordinates.
	Extent() Span
	// Reverse reports whether extraction runs against the forward strand.
	Reverse() bool
	// String renders the location in record syntax (1-based, inclusive).
	String() string
}

// Range selects a contiguous run of bases. A Reversed range is extracted as
// the reverse complement of its slice.
type Range struct {
	Start    Position
	End      Position
	Reversed bool
}

func (r Range) Resolve(seq string) (string, error) {
	if r.Start.Offset < 0 || r.End.Offset > len(seq) {
		return "", fmt.Errorf("location %s outside the %d-base sequence: %w", r, len(seq), ErrMalformedLocation)
	}
	sub := seq[r.Start.Offset:r.End.Offset]
	if r.Reversed {
		return dna.ReverseComplement(sub), nil
	}
	return sub, nil
}

func (r Range) Extent() Span { return Span{Start: r.Start, End: r.End} }

func (r Range) Reverse() bool { return r.Reversed }

func (r Range) String() string {
	var b strings.Builder
	if r.Reversed {
		b.WriteString("complement(")
	}
	if r.Start.Mark != 0 {
		b.WriteByte(r.Start.Mark)
	}
	b.WriteString(strconv.Itoa(r.Start.Offset + 1))
	if r.End.Offset > r.Start.Offset+1 {
		b.WriteString("..")
		if r.End.Mark != 0 {
			b.WriteByte(r.End.Mark)
		}
		b.WriteString(strconv.Itoa(r.End.Offset))
	}
	if r.Reversed {
		b.WriteByte(')')
	}
	return b.String()
}

// Join concatenates the resolutions of its parts in listed order.
type Join struct {
	Parts []Location
}

func (j Join) Resolve(seq string) (string, error) {
	var out strings.Builder
	for _, part := range j.Parts {
		sub, err := part.Resolve(seq)
		if err != nil {
			return "", err
		}
		out.WriteString(sub)
	}
	return out.String(), nil
}

func (j Join) Extent() Span {
	if len(j.Parts) == 0 {
		return Span{}
	}
	ext := j.Parts[0].Extent()
	for _, part := range j.Parts[1:] {
		e := part.Extent()
		if e.Start.Offset < ext.Start.Offset {
			ext.Start = e.Start
		}
		if e.End.Offset > ext.End.Offset {
			ext.End = e.End
		}
	}
	return ext
}

func (j Join) Reverse() bool { return false }

func (j Join) String() string { return callString("join", j.Parts) }

// Complement reverse-complements the resolution of its inner expression.
type Complement struct {
	Inner Location
}

func (c Complement) Resolve(seq string) (string, error) {
	sub, err := c.Inner.Resolve(seq)
	if err != nil {
		return "", err
	}
	return dna.ReverseComplement(sub), nil
}

func (c Complement) Extent() Span { return c.Inner.Extent() }

func (c Complement) Reverse() bool { return !c.Inner.Reverse() }

func (c Complement) String() string { return "complement(" + c.Inner.String() + ")" }

// Order covers the single run from its first part's start to its last
// part's end.
type Order struct {
	Parts []Location
}

func (o Order) Resolve(seq string) (string, error) {
	ext := o.Extent()
	return Range{Start: ext.Start, End: ext.End}.Resolve(seq)
}

func (o Order) Extent() Span {
	if len(o.Parts) == 0 {
		return Span{}
	}
	first := o.Parts[0].Extent()
	last := o.Parts[len(o.Parts)-1].Extent()
	return Span{Start: first.Start, End: last.End}
}

func (o Order) Reverse() bool { return false }

func (o Order) String() string { return callString("order", o.Parts) }

func callString(op string, parts []Location) string {
	var b strings.Builder
	b.WriteString(op)
	b.WriteByte('(')
	for i, part := range parts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(part.String())
	}
	b.WriteByte(')')
	return b.String()
}

// ParseLocation parses a location expression such as
// "complement(join(<1..206,4285))" into its tree form. Coordinates on the
// wire are 1-based inclusive and come out 0-based half-open.
func ParseLocation(text string) (Location, error) {
	if strings.Contains(text, ":") {
		return nil, locErr(text, "remote sequence references are not supported")
	}
	p := &locParser{s: text}
	loc, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.s) {
		return nil, locErr(text, fmt.Sprintf("unexpected %q after expression", p.s[p.pos:]))
	}
	return loc, nil
}

func locErr(text, msg string) error {
	return fmt.Errorf("location %q: %s: %w", text, msg, ErrMalformedLocation)
}

// locParser is a recursive-descent parser over a location string.
type locParser struct {
	s   string
	pos int
}

func (p *locParser) skipSpaces() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *locParser) parseExpr() (Location, error) {
	p.skipSpaces()
	if p.pos >= len(p.s) {
		return nil, locErr(p.s, "empty expression")
	}
	if isAlpha(p.s[p.pos]) {
		return p.parseCall()
	}
	return p.parseRange()
}

// parseCall parses an operator application: join(...), complement(...) or
// order(...).
func (p *locParser) parseCall() (Location, error) {
	start := p.pos
	for p.pos < len(p.s) && isAlpha(p.s[p.pos]) {
		p.pos++
	}
	op := strings.ToLower(p.s[start:p.pos])
	switch op {
	case "join", "complement", "order":
	default:
		return nil, locErr(p.s, fmt.Sprintf("unknown operator %q", op))
	}

	p.skipSpaces()
	if p.pos >= len(p.s) || p.s[p.pos] != '(' {
		return nil, locErr(p.s, fmt.Sprintf("expected ( after %q", op))
	}
	p.pos++

	var parts []Location
	for {
		part, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)

		p.skipSpaces()
		if p.pos >= len(p.s) {
			return nil, locErr(p.s, "unbalanced parentheses")
		}
		if p.s[p.pos] == ',' {
			p.pos++
			continue
		}
		if p.s[p.pos] == ')' {
			p.pos++
			break
		}
		return nil, locErr(p.s, fmt.Sprintf("unexpected %q inside %s(...)", string(p.s[p.pos]), op))
	}

	switch op {
	case "join":
		return Join{Parts: parts}, nil
	case "complement":
		if len(parts) != 1 {
			return nil, locErr(p.s, "complement takes exactly one argument")
		}
		return Complement{Inner: parts[0]}, nil
	default: // order
		ext := Order{Parts: parts}.Extent()
		if ext.Start.Offset >= ext.End.Offset {
			return nil, locErr(p.s, "order spans an inverted range")
		}
		return Order{Parts: parts}, nil
	}
}

// parseRange parses "a..b", the site form "a^b", or a single point.
func (p *locParser) parseRange() (Location, error) {
	a, aMark, err := p.parsePosition()
	if err != nil {
		return nil, err
	}

	sep := ""
	if p.pos+1 < len(p.s) && p.s[p.pos] == '.' && p.s[p.pos+1] == '.' {
		sep = ".."
		p.pos += 2
	} else if p.pos < len(p.s) && p.s[p.pos] == '^' {
		// A site between two bases covers the same two-base range.
		sep = "^"
		p.pos++
	}

	if sep == "" {
		return Range{
			Start: Position{Offset: a - 1, Mark: aMark},
			End:   Position{Offset: a},
		}, nil
	}

	b, bMark, err := p.parsePosition()
	if err != nil {
		return nil, err
	}
	if a > b {
		return nil, locErr(p.s, fmt.Sprintf("inverted range %d%s%d", a, sep, b))
	}
	return Range{
		Start: Position{Offset: a - 1, Mark: aMark},
		End:   Position{Offset: b, Mark: bMark},
	}, nil
}

// parsePosition parses a 1-based coordinate with an optional fuzzy marker,
// returning the marker byte as written (0 when absent).
func (p *locParser) parsePosition() (int, byte, error) {
	p.skipSpaces()
	var mark byte
	if p.pos < len(p.s) && (p.s[p.pos] == '<' || p.s[p.pos] == '>') {
		mark = p.s[p.pos]
		p.pos++
	}
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, 0, locErr(p.s, "expected a position")
	}
	n, err := strconv.Atoi(p.s[start:p.pos])
	if err != nil || n < 1 {
		return 0, 0, locErr(p.s, fmt.Sprintf("invalid position %q", p.s[start:p.pos]))
	}
	return n, mark, nil
}

func isAlpha(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
