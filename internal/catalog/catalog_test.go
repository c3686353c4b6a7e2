package catalog

import (
	"testing"

	"github.com/aristath/portfolio-analyzer/internal/database"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIsCaseInsensitive(t *testing.T) {
	cat := New(Defaults())

	upper, ok := cat.Lookup("AAPL")
	require.True(t, ok)

	lower, ok := cat.Lookup(" aapl ")
	require.True(t, ok)

	assert.Equal(t, upper, lower)
	assert.Equal(t, "Apple Inc.", upper.Name)
	assert.Equal(t, 1.2, upper.Beta)
}

func TestLookupUnknownSymbol(t *testing.T) {
	cat := New(Defaults())

	_, ok := cat.Lookup("ZZZZ")
	assert.False(t, ok)
}

func TestNewCopiesEntries(t *testing.T) {
	entries := []Entry{{Symbol: "aapl", Name: "Apple Inc.", Sector: "Technology", Risk: RiskMedium, Beta: 1.2, ExpectedReturn: 15, Volatility: 0.25}}
	cat := New(entries)

	// Mutating the source slice must not leak into the catalog.
	entries[0].Beta = 99

	e, ok := cat.Lookup("AAPL")
	require.True(t, ok)
	assert.Equal(t, 1.2, e.Beta)
}

func TestDefaultsAreComplete(t *testing.T) {
	for _, e := range Defaults() {
		assert.NotEmpty(t, e.Symbol)
		assert.NotEmpty(t, e.Name)
		assert.NotEmpty(t, e.Sector)
		assert.Contains(t, []string{RiskLow, RiskMedium, RiskHigh}, e.Risk)
		assert.Greater(t, e.Beta, 0.0)
		assert.Greater(t, e.ExpectedReturn, 0.0)
		assert.Greater(t, e.Volatility, 0.0)
	}
}

func TestLoadSeedsEmptyStore(t *testing.T) {
	db := openTestDB(t)

	cat, err := Load(db.Conn(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, len(Defaults()), cat.Len())

	e, ok := cat.Lookup("TSLA")
	require.True(t, ok)
	assert.Equal(t, 2.0, e.Beta)
	assert.Equal(t, RiskHigh, e.Risk)
}

func TestLoadPreservesExistingRows(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Conn().Exec(
		`INSERT INTO securities (symbol, name, sector, risk, beta, expected_return, volatility) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"ACME", "Acme Corp.", "Industrial", RiskHigh, 1.5, 9.0, 0.4,
	)
	require.NoError(t, err)

	cat, err := Load(db.Conn(), zerolog.Nop())
	require.NoError(t, err)

	// A non-empty store is never reseeded.
	assert.Equal(t, 1, cat.Len())
	_, ok := cat.Lookup("AAPL")
	assert.False(t, ok)
}

func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(database.Config{
		Path: "file:" + t.Name() + "?mode=memory&cache=shared",
		Name: "catalog",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.ExecSchema(Schema))
	return db
}
