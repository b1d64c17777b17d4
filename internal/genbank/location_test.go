package genbank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cathalgarvey/DNAmespace/internal/dna"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string // canonical String() form
	}{
		{"single point", "4285", "4285"},
		{"plain span", "10..40", "10..40"},
		{"fuzzy start", "<1..206", "<1..206"},
		{"fuzzy end", "4821..>5000", "4821..>5000"},
		{"after-marked start", ">10..20", ">10..20"},
		{"before-marked end", "10..<20", "10..<20"},
		{"fuzzy single point", "<5", "<5"},
		{"site becomes a span", "1^2", "1..2"},
		{"join", "join(10..20,30..40)", "join(10..20,30..40)"},
		{"complement", "complement(10..40)", "complement(10..40)"},
		{"complement of join", "complement(join(<1..206,300..400))", "complement(join(<1..206,300..400))"},
		{"join of complements", "join(complement(10..20),30..40)", "join(complement(10..20),30..40)"},
		{"order", "order(1..3,5..8)", "order(1..3,5..8)"},
		{"nested join", "join(join(1..4,7..10),13..16)", "join(join(1..4,7..10),13..16)"},
		{"spaces tolerated", "join(1..2, 4..5)", "join(1..2,4..5)"},
		{"case insensitive operator", "COMPLEMENT(3..9)", "complement(3..9)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseLocation(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc.String())
		})
	}
}

func TestParseLocationErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"unbalanced join", "join(1..10"},
		{"unbalanced nested", "join(complement(1..10)"},
		{"unknown operator", "foo(1..2)"},
		{"inverted span", "10..5"},
		{"inverted site", "9^2"},
		{"zero position", "0..5"},
		{"remote reference", "J00194:1..150"},
		{"trailing garbage", "10..40x"},
		{"stray closing paren", "join(1..2))"},
		{"complement arity", "complement(1..2,3..4)"},
		{"inverted order", "order(30..40,10..20)"},
		{"bare operator", "join"},
		{"missing position", "join(,)"},
		{"double dots alone", ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLocation(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedLocation)
		})
	}
}

func TestLocationCoordinates(t *testing.T) {
	loc, err := ParseLocation("10..40")
	require.NoError(t, err)

	r, ok := loc.(Range)
	require.True(t, ok)
	// Wire coordinates are 1-based inclusive; the model is 0-based
	// half-open.
	assert.Equal(t, 9, r.Start.Offset)
	assert.Equal(t, 40, r.End.Offset)
	assert.False(t, r.Start.Fuzzy())
	assert.False(t, r.Reversed)
	assert.Equal(t, 31, r.Extent().Len())

	point, err := ParseLocation("7")
	require.NoError(t, err)
	pr := point.(Range)
	assert.Equal(t, 6, pr.Start.Offset)
	assert.Equal(t, 7, pr.End.Offset)
	assert.Equal(t, 1, pr.Extent().Len())
}

// The marker byte is kept as written, in both directions on either
// boundary.
func TestLocationFuzzyMarkPreserved(t *testing.T) {
	loc, err := ParseLocation(">10..<20")
	require.NoError(t, err)

	r, ok := loc.(Range)
	require.True(t, ok)
	assert.Equal(t, byte('>'), r.Start.Mark)
	assert.Equal(t, byte('<'), r.End.Mark)
	assert.True(t, r.Start.Fuzzy())
	assert.True(t, r.End.Fuzzy())
	assert.Equal(t, ">10..<20", r.String())

	plain, err := ParseLocation("10..20")
	require.NoError(t, err)
	pr := plain.(Range)
	assert.Equal(t, byte(0), pr.Start.Mark)
	assert.False(t, pr.End.Fuzzy())
}

func TestLocationResolve(t *testing.T) {
	//          1234567890123456789012345
	const seq = "acgtaacctgagttaggcatcacgg"

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain span", "1..4", "acgt"},
		{"single point", "5", "a"},
		{"interior span", "6..10", "acctg"},
		{"complement", "complement(1..4)", "acgt"},
		{"complement interior", "complement(6..10)", "caggt"},
		{"join keeps listed order", "join(1..4,11..14)", "acgtagtt"},
		{"join reversed listing", "join(11..14,1..4)", "agttacgt"},
		{"complement of join", "complement(join(1..4,11..14))", "aactacgt"},
		{"fuzzy markers ignored", "<1..>4", "acgt"},
		{"site resolves both bases", "4^5", "ta"},
		{"order covers first to last", "order(1..4,11..14)", "acgtaacctgagtt"},
		{"whole sequence", "1..25", seq},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseLocation(tt.text)
			require.NoError(t, err)
			got, err := loc.Resolve(seq)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocationResolveOutOfBounds(t *testing.T) {
	const seq = "acgtacgtac" // 10 bases

	for _, text := range []string{"5..15", "11", "join(1..4,9..12)", "complement(2..11)"} {
		t.Run(text, func(t *testing.T) {
			loc, err := ParseLocation(text)
			require.NoError(t, err)
			_, err = loc.Resolve(seq)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedLocation)
		})
	}
}

// Forward extraction followed by two reverse complements returns the
// original slice.
func TestLocationResolveRoundTrip(t *testing.T) {
	const seq = "gattacagattacagattaca"

	loc, err := ParseLocation("3..17")
	require.NoError(t, err)
	fwd, err := loc.Resolve(seq)
	require.NoError(t, err)

	assert.Equal(t, fwd, dna.ReverseComplement(dna.ReverseComplement(fwd)))
	assert.Equal(t, seq[2:17], fwd)
}

func TestJoinAssociativity(t *testing.T) {
	const seq = "acgtaacctgagttaggcatcacgg"

	forms := []string{
		"join(join(1..4,7..10),13..16)",
		"join(1..4,join(7..10,13..16))",
		"join(1..4,7..10,13..16)",
	}

	var results []string
	for _, form := range forms {
		loc, err := ParseLocation(form)
		require.NoError(t, err)
		got, err := loc.Resolve(seq)
		require.NoError(t, err)
		results = append(results, got)
	}

	assert.Equal(t, results[0], results[1])
	assert.Equal(t, results[1], results[2])
}

func TestLocationReverse(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"10..40", false},
		{"complement(10..40)", true},
		{"complement(complement(10..40))", false},
		{"join(1..2,3..4)", false},
		{"complement(join(1..2,3..4))", true},
		{"order(1..2,5..8)", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			loc, err := ParseLocation(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc.Reverse())
		})
	}
}

func TestLocationExtent(t *testing.T) {
	tests := []struct {
		text       string
		start, end int
	}{
		{"10..40", 9, 40},
		{"join(10..20,30..40)", 9, 40},
		{"complement(join(10..20,30..40))", 9, 40},
		{"order(5..8,20..25)", 4, 25},
		{"join(30..40,10..20)", 9, 40},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			loc, err := ParseLocation(tt.text)
			require.NoError(t, err)
			ext := loc.Extent()
			assert.Equal(t, tt.start, ext.Start.Offset)
			assert.Equal(t, tt.end, ext.End.Offset)
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{Start: Position{Offset: 10}, End: Position{Offset: 50}}

	assert.True(t, outer.Contains(Span{Start: Position{Offset: 10}, End: Position{Offset: 50}}))
	assert.True(t, outer.Contains(Span{Start: Position{Offset: 20}, End: Position{Offset: 30}}))
	assert.False(t, outer.Contains(Span{Start: Position{Offset: 5}, End: Position{Offset: 30}}))
	assert.False(t, outer.Contains(Span{Start: Position{Offset: 20}, End: Position{Offset: 60}}))
}
