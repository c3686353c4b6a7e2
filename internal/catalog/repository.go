package catalog

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// Schema is the catalog database schema.
const Schema = `
CREATE TABLE IF NOT EXISTS securities (
    symbol          TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    sector          TEXT NOT NULL,
    risk            TEXT NOT NULL,
    beta            REAL NOT NULL,
    expected_return REAL NOT NULL,
    volatility      REAL NOT NULL
);
`

// securitiesColumns is the column list for the securities table.
// Used instead of SELECT * so schema changes fail loudly.
const securitiesColumns = `symbol, name, sector, risk, beta, expected_return, volatility`

// Repository handles catalog database operations.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new catalog repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "catalog").Logger(),
	}
}

// EnsureSeeded inserts the built-in default entries when the securities table
// is empty. Existing rows are never touched, so operator edits survive
// restarts.
func (r *Repository) EnsureSeeded() error {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM securities").Scan(&count); err != nil {
		return fmt.Errorf("failed to count securities: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}

	stmt := `INSERT OR IGNORE INTO securities (` + securitiesColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, e := range Defaults() {
		if _, err := tx.Exec(stmt, e.Symbol, e.Name, e.Sector, e.Risk, e.Beta, e.ExpectedReturn, e.Volatility); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to seed security %s: %w", e.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	r.log.Info().Int("count", len(Defaults())).Msg("Seeded catalog with default securities")
	return nil
}

// GetAll returns all catalog entries from the securities table.
func (r *Repository) GetAll() ([]Entry, error) {
	rows, err := r.db.Query("SELECT " + securitiesColumns + " FROM securities ORDER BY symbol")
	if err != nil {
		return nil, fmt.Errorf("failed to query securities: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Symbol, &e.Name, &e.Sector, &e.Risk, &e.Beta, &e.ExpectedReturn, &e.Volatility); err != nil {
			return nil, fmt.Errorf("failed to scan security: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating securities: %w", err)
	}

	return entries, nil
}

// Load seeds the store when empty and builds the immutable in-memory catalog
// from it. This is the only place a Catalog is constructed in production.
func Load(db *sql.DB, log zerolog.Logger) (*Catalog, error) {
	repo := NewRepository(db, log)

	if err := repo.EnsureSeeded(); err != nil {
		return nil, err
	}

	entries, err := repo.GetAll()
	if err != nil {
		return nil, err
	}

	return New(entries), nil
}
