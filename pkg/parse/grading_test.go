package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgtrack/tcg-price-tracker/pkg/parse"
)

func TestExtractGrading(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)

	tests := []struct {
		name        string
		text        string
		wantOK      bool
		wantCompany string
		wantGrade   float64
		wantDiags   int
	}{
		{
			name:        "space separated",
			text:        "psa 10 one piece op01-121 monkey d luffy",
			wantOK:      true,
			wantCompany: "PSA",
			wantGrade:   10,
		},
		{
			name:        "concatenated",
			text:        "psa10 one piece card",
			wantOK:      true,
			wantCompany: "PSA",
			wantGrade:   10,
		},
		{
			name:        "grade before company",
			text:        "gem 10 psa slab",
			wantOK:      true,
			wantCompany: "PSA",
			wantGrade:   10,
		},
		{
			name:        "half point grade",
			text:        "bgs 9.5 shanks op01-120",
			wantOK:      true,
			wantCompany: "BGS",
			wantGrade:   9.5,
		},
		{
			name:        "secondary alias",
			text:        "beckett 9 graded card",
			wantOK:      true,
			wantCompany: "BGS",
			wantGrade:   9,
		},
		{
			name:      "company without grade",
			text:      "psa graded lot of cards",
			wantOK:    false,
			wantDiags: 1,
		},
		{
			name:        "multiple companies first wins",
			text:        "psa 10 crossover from bgs 9",
			wantOK:      true,
			wantCompany: "PSA",
			wantGrade:   10,
			wantDiags:   1,
		},
		{
			name:      "grade out of range ignored",
			text:      "psa 11 card",
			wantOK:    false,
			wantDiags: 1,
		},
		{
			name:      "quarter point grade rejected",
			text:      "psa 9.3 card",
			wantOK:    false,
			wantDiags: 1,
		},
		{
			name:   "alias embedded in word does not count",
			text:   "psagraded card lot",
			wantOK: false,
		},
		{
			name:   "no grading signal",
			text:   "op01-121 monkey d luffy",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, ok := parse.ExtractGrading(cat, tt.text)
			require.Equal(t, tt.wantOK, ok)
			assert.Len(t, m.Diagnostics, tt.wantDiags)
			if ok {
				assert.Equal(t, tt.wantCompany, m.Company)
				assert.InDelta(t, tt.wantGrade, m.Grade, 0.001)
			}
		})
	}
}

func TestExtractGrading_ConcatenatedAndSplitAgree(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)

	split, okSplit := parse.ExtractGrading(cat, "psa 10 one piece card")
	concat, okConcat := parse.ExtractGrading(cat, "psa10 one piece card")

	require.True(t, okSplit)
	require.True(t, okConcat)
	assert.Equal(t, split.Company, concat.Company)
	assert.InDelta(t, split.Grade, concat.Grade, 0.001)
}
