package codon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableByID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"1", false},
		{"11", false},
		{"4", false},
		{"33", false},
		{"0", true},
		{"7", true},
		{"99", true},
		{"", true},
		{"bacterial", true},
	}

	for _, tt := range tests {
		t.Run("table "+tt.id, func(t *testing.T) {
			tbl, err := TableByID(tt.id)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnsupportedTable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, tbl.ID())
			assert.NotEmpty(t, tbl.Name())
		})
	}
}

func TestTableIDs(t *testing.T) {
	ids := TableIDs()
	require.NotEmpty(t, ids)
	assert.Equal(t, "1", ids[0])
	assert.Contains(t, ids, DefaultTableID)
	// Numeric order, not lexicographic: "2" sorts before "10".
	var i2, i10 int
	for i, id := range ids {
		switch id {
		case "2":
			i2 = i
		case "10":
			i10 = i
		}
	}
	assert.Less(t, i2, i10)
}

func TestTranslateCodon(t *testing.T) {
	tbl, err := TableByID(DefaultTableID)
	require.NoError(t, err)

	tests := []struct {
		name  string
		codon string
		want  byte
	}{
		{"ATG -> Met", "ATG", 'M'},
		{"GGT -> Gly", "GGT", 'G'},
		{"TTT -> Phe", "TTT", 'F'},
		{"AAA -> Lys", "AAA", 'K'},
		{"TAA -> stop", "TAA", '*'},
		{"TAG -> stop", "TAG", '*'},
		{"TGA -> stop", "TGA", '*'},
		{"lowercase atg", "atg", 'M'},
		{"mixed case AtG", "AtG", 'M'},
		{"RNA uracil", "AUG", 'M'},
		{"ambiguity code", "ATN", 'X'},
		{"gap", "A-G", 'X'},
		{"too short", "AT", 'X'},
		{"too long", "ATGG", 'X'},
		{"empty", "", 'X'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tbl.TranslateCodon(tt.codon))
		})
	}
}

// Table 2 (vertebrate mitochondrial) reads TGA as Trp and AGA as stop,
// unlike the bacterial code.
func TestTranslateCodonAlternativeTables(t *testing.T) {
	mito, err := TableByID("2")
	require.NoError(t, err)
	bact, err := TableByID("11")
	require.NoError(t, err)

	assert.Equal(t, byte('W'), mito.TranslateCodon("TGA"))
	assert.Equal(t, byte('*'), bact.TranslateCodon("TGA"))
	assert.Equal(t, byte('*'), mito.TranslateCodon("AGA"))
	assert.Equal(t, byte('R'), bact.TranslateCodon("AGA"))
}

func TestIsStartCodon(t *testing.T) {
	tbl, err := TableByID("11")
	require.NoError(t, err)

	// Bacteria start at ATG plus the alternative initiators.
	assert.True(t, tbl.IsStartCodon("ATG"))
	assert.True(t, tbl.IsStartCodon("GTG"))
	assert.True(t, tbl.IsStartCodon("TTG"))
	assert.True(t, tbl.IsStartCodon("atg"))
	assert.False(t, tbl.IsStartCodon("GGT"))
	assert.False(t, tbl.IsStartCodon("NNN"))

	std, err := TableByID("1")
	require.NoError(t, err)
	assert.True(t, std.IsStartCodon("ATG"))
	assert.False(t, std.IsStartCodon("ATT"))
}

func TestIsStopCodon(t *testing.T) {
	tbl, err := TableByID("11")
	require.NoError(t, err)

	assert.True(t, tbl.IsStopCodon("TAA"))
	assert.True(t, tbl.IsStopCodon("taa"))
	assert.False(t, tbl.IsStopCodon("ATG"))
	assert.False(t, tbl.IsStopCodon("NNN"))
}

func TestTranslate(t *testing.T) {
	tbl, err := TableByID("11")
	require.NoError(t, err)

	tests := []struct {
		name     string
		seq      string
		truncate bool
		want     string
	}{
		{"simple protein", "atgggtcga", true, "MGR"},
		{"stop truncated", "atgggtcgataa", true, "MGR"},
		{"stop kept", "atgggtcgataa", false, "MGR*"},
		{"internal stop truncated", "atgtaaggt", true, "M"},
		{"internal stop kept", "atgtaaggt", false, "M*G"},
		{"partial triplet dropped", "atgggtcgat", true, "MGR"},
		{"ambiguous codon placeholder", "atgnnnggt", false, "MXG"},
		{"uppercase input", "ATGGGTCGA", true, "MGR"},
		{"empty", "", true, ""},
		{"shorter than a codon", "at", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tbl.Translate(tt.seq, tt.truncate))
		})
	}
}

// Without stop truncation, output length is always floor(n/3).
func TestTranslateLengthProperty(t *testing.T) {
	tbl, err := TableByID("11")
	require.NoError(t, err)

	base := "atgcnryswkmbdhv"
	for n := 0; n <= len(base); n++ {
		seq := base[:n]
		got := tbl.Translate(seq, false)
		assert.Len(t, got, n/3, "length %d", n)
	}

	long := strings.Repeat("gattaca", 100)
	assert.Len(t, tbl.Translate(long, false), len(long)/3)
}
