package store

import (
	"database/sql"
	"time"

	"github.com/ammcap/Ammlytics/types"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// BaselineStore persists position baselines in Postgres. A baseline is
// written once when a position is first seen and never updated, so a
// report's entry economics stay stable across restarts.
type BaselineStore struct {
	db *sql.DB
}

func Open(databaseURL string) (*BaselineStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, types.Fail(types.ConnectivityFailure, err)
	}

	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, types.Fail(types.ConnectivityFailure, err)
	}

	log.Info().Msg("Connected to baseline database")
	return &BaselineStore{db: db}, nil
}

// EnsureSchema creates the baseline table if missing. Amounts and prices
// are stored as text; they are arbitrary-precision decimals and must never
// round-trip through a float column.
func (s *BaselineStore) EnsureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS initial_positions (
			token_id TEXT PRIMARY KEY,
			creation_date TEXT NOT NULL,
			block_number TEXT NOT NULL,
			initial_amount0 TEXT NOT NULL,
			initial_amount1 TEXT NOT NULL,
			initial_price TEXT NOT NULL
		)`)
	if err != nil {
		return types.Fail(types.DataUnavailable, err)
	}
	return nil
}

func (s *BaselineStore) Close() error {
	return s.db.Close()
}
