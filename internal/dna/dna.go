// Package dna provides low-level nucleotide sequence helpers: complementing,
// reverse complementing, and alphabet checks over the IUPAC codes.
package dna

// complement maps each IUPAC nucleotide code to its complement, both cases.
// Zero entries mean the byte is not a recognized nucleotide code.
var complement [256]byte

func init() {
	pairs := map[byte]byte{
		'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G',
		'U': 'A',
		'R': 'Y', 'Y': 'R',
		'S': 'S', 'W': 'W',
		'K': 'M', 'M': 'K',
		'B': 'V', 'V': 'B',
		'D': 'H', 'H': 'D',
		'N': 'N',
	}
	for b, c := range pairs {
		complement[b] = c
		complement[b+('a'-'A')] = c + ('a' - 'A')
	}
}

// Complement returns the complement of a single base, preserving case.
// Unrecognized bytes complement to 'N' (or 'n' for lowercase letters).
func Complement(base byte) byte {
	if c := complement[base]; c != 0 {
		return c
	}
	if base >= 'a' && base <= 'z' {
		return 'n'
	}
	return 'N'
}

// ReverseComplement returns the reverse complement of seq, preserving the
// case of each base.
func ReverseComplement(seq string) string {
	n := len(seq)
	if n == 0 {
		return ""
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = Complement(seq[n-1-i])
	}
	return string(out)
}

// IsNucleotide reports whether b is a recognized IUPAC nucleotide code in
// either case.
func IsNucleotide(b byte) bool {
	return complement[b] != 0
}
