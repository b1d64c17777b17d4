// Package codon translates nucleotide sequences to amino acids under the
// NCBI genetic code tables.
package codon

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultTableID is the bacterial, archaeal and plant plastid code.
const DefaultTableID = "11"

// Unknown is the placeholder residue for codons that cannot be looked up
// (ambiguity codes, gaps).
const Unknown = 'X'

// ErrUnsupportedTable reports a codon table identifier with no known table.
var ErrUnsupportedTable = errors.New("unsupported codon table")

// Table is an immutable genetic code: 64 residues in TCAG codon order plus
// the start-codon companion string.
type Table struct {
	id     string
	name   string
	amino  string // residue per codon index
	starts string // 'M' where the codon can initiate translation
}

// TableByID returns the genetic code for an NCBI table identifier such as
// "1" or "11". Unknown identifiers fail with ErrUnsupportedTable.
func TableByID(id string) (Table, error) {
	aa, ok := aminoAcids[id]
	if !ok {
		return Table{}, fmt.Errorf("codon table %q: %w", id, ErrUnsupportedTable)
	}
	return Table{id: id, name: tableNames[id], amino: aa, starts: startCodons[id]}, nil
}

// TableIDs returns all known table identifiers in numeric order.
func TableIDs() []string {
	ids := make([]string, 0, len(aminoAcids))
	for id := range aminoAcids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.Atoi(ids[i])
		b, _ := strconv.Atoi(ids[j])
		return a < b
	})
	return ids
}

// ID returns the NCBI table identifier.
func (t Table) ID() string { return t.id }

// Name returns the NCBI table name.
func (t Table) Name() string { return t.name }

// baseIndex maps a nucleotide to its position in TCAG order, or -1 for
// anything outside the unambiguous alphabet.
func baseIndex(b byte) int {
	switch b {
	case 'T', 't', 'U', 'u':
		return 0
	case 'C', 'c':
		return 1
	case 'A', 'a':
		return 2
	case 'G', 'g':
		return 3
	}
	return -1
}

// codonIndex returns the TCAG-order index of a three-letter codon, or -1
// when any base is ambiguous.
func codonIndex(codon string) int {
	if len(codon) != 3 {
		return -1
	}
	i1 := baseIndex(codon[0])
	i2 := baseIndex(codon[1])
	i3 := baseIndex(codon[2])
	if i1 < 0 || i2 < 0 || i3 < 0 {
		return -1
	}
	return 16*i1 + 4*i2 + i3
}

// TranslateCodon translates a single codon, case-insensitively.
// Returns Unknown ('X') for codons that cannot be looked up and '*' for
// stop codons.
func (t Table) TranslateCodon(codon string) byte {
	i := codonIndex(codon)
	if i < 0 {
		return Unknown
	}
	return t.amino[i]
}

// IsStopCodon reports whether the codon is a stop codon in this table.
func (t Table) IsStopCodon(codon string) bool {
	return t.TranslateCodon(codon) == '*'
}

// IsStartCodon reports whether the codon can initiate translation in this
// table (ATG always, plus the table's alternative starts).
func (t Table) IsStartCodon(codon string) bool {
	i := codonIndex(codon)
	if i < 0 {
		return false
	}
	return t.starts[i] == 'M'
}

// Translate reads seq in non-overlapping triplets from offset 0 and returns
// the amino acid sequence. A trailing partial triplet is dropped. When
// truncateAtStop is set, translation ends before the first in-frame stop
// codon; otherwise stops appear as '*'.
func (t Table) Translate(seq string, truncateAtStop bool) string {
	n := (len(seq) / 3) * 3

	var out strings.Builder
	out.Grow(n / 3)

	for i := 0; i < n; i += 3 {
		aa := t.TranslateCodon(seq[i : i+3])
		if aa == '*' && truncateAtStop {
			break
		}
		out.WriteByte(aa)
	}

	return out.String()
}
