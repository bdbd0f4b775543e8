package db

import "context"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS complaints (
		id              BIGSERIAL PRIMARY KEY,
		category        TEXT NOT NULL,
		severity        TEXT NOT NULL,
		description     TEXT NOT NULL,
		latitude        DOUBLE PRECISION,
		longitude       DOUBLE PRECISION,
		area_name       TEXT,
		submitted_at    TIMESTAMPTZ NOT NULL,
		status          TEXT NOT NULL DEFAULT 'unresolved',
		area_importance TEXT NOT NULL DEFAULT 'normal'
			CHECK (area_importance IN ('low', 'normal', 'high', 'critical')),
		CHECK ((latitude IS NULL) = (longitude IS NULL))
	)`,
	`CREATE TABLE IF NOT EXISTS officer_actions (
		id           BIGSERIAL PRIMARY KEY,
		officer_id   TEXT NOT NULL,
		complaint_id BIGINT NOT NULL REFERENCES complaints (id) ON DELETE CASCADE,
		action       TEXT NOT NULL CHECK (action IN ('resolved', 'unresolved')),
		notes        TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_complaints_category ON complaints (category)`,
	`CREATE INDEX IF NOT EXISTS idx_complaints_status ON complaints (status)`,
	`CREATE INDEX IF NOT EXISTS idx_complaints_submitted_at ON complaints (submitted_at)`,
	`CREATE INDEX IF NOT EXISTS idx_officer_actions_officer_id ON officer_actions (officer_id)`,
}

// Migrate creates the tables if they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
