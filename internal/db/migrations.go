package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS plans (
			trip_id          TEXT PRIMARY KEY,
			destination_slug TEXT NOT NULL,
			start_date       DATE NOT NULL,
			end_date         DATE NOT NULL,
			preferences      TEXT NOT NULL,
			generated_at     DATETIME,
			saved_at         DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS plan_events (
			id               TEXT NOT NULL,
			trip_id          TEXT NOT NULL REFERENCES plans(trip_id),
			day_id           TEXT,
			day_index        INTEGER NOT NULL DEFAULT 0,
			day_date         DATE,
			position         INTEGER NOT NULL DEFAULT 0,
			title            TEXT NOT NULL,
			description      TEXT,
			notes            TEXT,
			category         TEXT NOT NULL,
			starts_at        DATETIME,
			ends_at          DATETIME,
			duration_minutes INTEGER NOT NULL DEFAULT 0,
			attraction_id    TEXT,
			destination_slug TEXT,
			availability     TEXT,
			metadata         TEXT NOT NULL,
			PRIMARY KEY (trip_id, id)
		);

		CREATE INDEX IF NOT EXISTS idx_plan_events_trip ON plan_events(trip_id, day_index, position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating plan tables: %w", err)
	}

	return nil
}
