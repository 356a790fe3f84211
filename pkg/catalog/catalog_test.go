package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgtrack/tcg-price-tracker/pkg/catalog"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

func buildTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	sets := []domain.CatalogSet{
		{Code: "OP01", Name: "Romance Dawn"},
		{Code: "OP05", Name: "Awakening of the New Era"},
		{Code: "ST09", Name: "Yamato"},
	}
	cards := []domain.CatalogCard{
		{SetCode: "OP01", CardNumber: "OP01-121", Name: "Monkey D. Luffy", Rarity: "SEC"},
		{SetCode: "OP01", CardNumber: "OP01-120", Name: "Shanks", Rarity: "SEC"},
		{SetCode: "OP05", CardNumber: "OP05-119", Name: "Monkey D. Luffy Gear 5", Rarity: "SEC"},
	}
	companies := []domain.CatalogGradingCompany{
		{Code: "PSA", Aliases: []string{"psa"}, MinGrade: 1, MaxGrade: 10},
		{Code: "BGS", Aliases: []string{"bgs", "beckett"}, MinGrade: 1, MaxGrade: 10},
	}

	cat, err := catalog.Build(sets, cards, companies)
	require.NoError(t, err)
	return cat
}

func TestCanonicalSetCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"OP01", "OP01"},
		{"op-01", "OP01"},
		{"op_01", "OP01"},
		{"op.01", "OP01"},
		{"op 01", "OP01"},
		{"st09", "ST09"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, catalog.CanonicalSetCode(tt.in), "input %q", tt.in)
	}
}

func TestCanonicalCardNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"OP01-121", "OP01-121"},
		{"op01-121", "OP01-121"},
		{"op01 121", "OP01-121"},
		{"op01_121", "OP01-121"},
		{"  op01-121  ", "OP01-121"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, catalog.CanonicalCardNumber(tt.in), "input %q", tt.in)
	}
}

func TestCatalogLookups(t *testing.T) {
	t.Parallel()

	cat := buildTestCatalog(t)

	set, ok := cat.SetByCode("op-01")
	require.True(t, ok)
	assert.Equal(t, "Romance Dawn", set.Name)

	_, ok = cat.SetByCode("ZZ99")
	assert.False(t, ok)

	card, ok := cat.CardByNumber("op01", "op01-121")
	require.True(t, ok)
	assert.Equal(t, "Monkey D. Luffy", card.Name)

	_, ok = cat.CardByNumber("OP01", "OP01-999")
	assert.False(t, ok)

	assert.Len(t, cat.CardsInSet("OP01"), 2)
	assert.Empty(t, cat.CardsInSet("ST09"))

	assert.Equal(t, 3, cat.NumSets())
	assert.Equal(t, 3, cat.NumCards())
}

func TestCatalogSetsByNameLength(t *testing.T) {
	t.Parallel()

	cat := buildTestCatalog(t)

	ordered := cat.SetsByNameLength()
	require.Len(t, ordered, 3)
	assert.Equal(t, "OP05", ordered[0].Code) // longest name first
	assert.Equal(t, "OP01", ordered[1].Code)
	assert.Equal(t, "ST09", ordered[2].Code)
}

func TestCompanyByAlias(t *testing.T) {
	t.Parallel()

	cat := buildTestCatalog(t)

	gc, ok := cat.CompanyByAlias("PSA")
	require.True(t, ok)
	assert.Equal(t, "PSA", gc.Code)

	gc, ok = cat.CompanyByAlias("beckett")
	require.True(t, ok)
	assert.Equal(t, "BGS", gc.Code)

	_, ok = cat.CompanyByAlias("acme")
	assert.False(t, ok)
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	set := domain.CatalogSet{Code: "OP01", Name: "Romance Dawn"}

	tests := []struct {
		name      string
		sets      []domain.CatalogSet
		cards     []domain.CatalogCard
		companies []domain.CatalogGradingCompany
		wantErr   error
	}{
		{
			name:    "duplicate set code",
			sets:    []domain.CatalogSet{set, {Code: "op-01", Name: "Other"}},
			wantErr: catalog.ErrDuplicateSet,
		},
		{
			name: "duplicate card number",
			sets: []domain.CatalogSet{set},
			cards: []domain.CatalogCard{
				{SetCode: "OP01", CardNumber: "OP01-121", Name: "Monkey D. Luffy"},
				{SetCode: "OP01", CardNumber: "op01-121", Name: "Monkey D. Luffy"},
			},
			wantErr: catalog.ErrDuplicateCard,
		},
		{
			name:    "card references unknown set",
			sets:    []domain.CatalogSet{set},
			cards:   []domain.CatalogCard{{SetCode: "ZZ99", CardNumber: "ZZ99-001", Name: "Nobody"}},
			wantErr: catalog.ErrUnknownSetCode,
		},
		{
			name: "alias claimed twice",
			sets: []domain.CatalogSet{set},
			companies: []domain.CatalogGradingCompany{
				{Code: "PSA", Aliases: []string{"psa"}, MinGrade: 1, MaxGrade: 10},
				{Code: "BGS", Aliases: []string{"psa"}, MinGrade: 1, MaxGrade: 10},
			},
			wantErr: catalog.ErrDuplicateAlias,
		},
		{
			name: "invalid grade span",
			sets: []domain.CatalogSet{set},
			companies: []domain.CatalogGradingCompany{
				{Code: "PSA", Aliases: []string{"psa"}, MinGrade: 10, MaxGrade: 1},
			},
			wantErr: catalog.ErrInvalidGradeSpan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := catalog.Build(tt.sets, tt.cards, tt.companies)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidGrade(t *testing.T) {
	t.Parallel()

	gc := domain.CatalogGradingCompany{Code: "PSA", MinGrade: 1, MaxGrade: 10}

	assert.True(t, gc.ValidGrade(10))
	assert.True(t, gc.ValidGrade(9.5))
	assert.True(t, gc.ValidGrade(1))
	assert.False(t, gc.ValidGrade(0.5))
	assert.False(t, gc.ValidGrade(10.5))
	assert.False(t, gc.ValidGrade(9.3))
}

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err)

	assert.Greater(t, cat.NumSets(), 0)
	assert.Greater(t, cat.NumCards(), 0)
	assert.NotEmpty(t, cat.Companies())

	// The flagship secret rare must always be present.
	card, ok := cat.CardByNumber("OP01", "OP01-121")
	require.True(t, ok)
	assert.Equal(t, "Monkey D. Luffy", card.Name)
}
