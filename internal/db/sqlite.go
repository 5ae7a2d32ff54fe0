// Package db provides SQLite storage for trip plans.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"tripgrid/internal/trip"
)

// SQLite stores plans as one row per plan plus one flattened row per
// event. Events carry their day assignment inline so the whole plan can
// be replaced and rebuilt without a separate days table.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite store and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// PlanSummary describes a stored plan without its events.
type PlanSummary struct {
	TripID          string
	DestinationSlug string
	StartDate       time.Time
	EndDate         time.Time
	EventCount      int
	SavedAt         time.Time
}

// SavePlan replaces the stored plan for p.TripID wholesale. The plan row
// and every event row are written in one transaction so a failed save
// never leaves a partial plan behind.
func (s *SQLite) SavePlan(ctx context.Context, p *trip.Plan) error {
	if p == nil {
		return fmt.Errorf("saving plan: nil plan")
	}

	prefs, err := json.Marshal(p.Preferences)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var generatedAt any
	if !p.GeneratedAt.IsZero() {
		generatedAt = p.GeneratedAt.Format(time.RFC3339)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO plans (trip_id, destination_slug, start_date, end_date, preferences, generated_at, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(trip_id) DO UPDATE SET
			destination_slug = excluded.destination_slug,
			start_date       = excluded.start_date,
			end_date         = excluded.end_date,
			preferences      = excluded.preferences,
			generated_at     = excluded.generated_at,
			saved_at         = excluded.saved_at
	`,
		p.TripID,
		p.DestinationSlug,
		p.StartDate.Format("2006-01-02"),
		p.EndDate.Format("2006-01-02"),
		string(prefs),
		generatedAt,
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting plan: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM plan_events WHERE trip_id = ?`, p.TripID); err != nil {
		return fmt.Errorf("clearing plan events: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO plan_events (
			id, trip_id, day_id, day_index, day_date, position,
			title, description, notes, category,
			starts_at, ends_at, duration_minutes,
			attraction_id, destination_slug, availability, metadata
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, day := range p.Days {
		for pos, e := range day.Events {
			if err := insertEvent(ctx, stmt, p, &e, day.ID, day.Index, day.Date.Format("2006-01-02"), pos); err != nil {
				return err
			}
		}
	}
	for pos, e := range p.Unplaced {
		if err := insertEvent(ctx, stmt, p, &e, "", 0, "", pos); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// LoadPlan retrieves a plan by trip ID. Returns (nil, nil) when no plan
// is stored for the trip.
func (s *SQLite) LoadPlan(ctx context.Context, tripID string) (*trip.Plan, error) {
	var (
		destinationSlug string
		startDate       string
		endDate         string
		prefsJSON       string
		generatedAt     sql.NullString
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT destination_slug, start_date, end_date, preferences, generated_at
		FROM plans
		WHERE trip_id = ?
	`, tripID).Scan(&destinationSlug, &startDate, &endDate, &prefsJSON, &generatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan: %w", err)
	}

	start, err := parseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start date: %w", err)
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("parsing end date: %w", err)
	}

	p := trip.Empty(tripID, destinationSlug, start, end)
	if err := json.Unmarshal([]byte(prefsJSON), &p.Preferences); err != nil {
		return nil, fmt.Errorf("decoding preferences: %w", err)
	}
	if generatedAt.Valid {
		if t, err := time.Parse(time.RFC3339, generatedAt.String); err == nil {
			p.GeneratedAt = t
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, day_index, title, description, notes,
		       starts_at, ends_at, duration_minutes, availability, metadata
		FROM plan_events
		WHERE trip_id = ?
		ORDER BY day_index, position
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("querying plan events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			e            trip.Event
			dayIndex     int
			description  sql.NullString
			notes        sql.NullString
			startsAt     sql.NullString
			endsAt       sql.NullString
			availability sql.NullString
			metadata     string
		)

		err := rows.Scan(
			&e.ID,
			&dayIndex,
			&e.Title,
			&description,
			&notes,
			&startsAt,
			&endsAt,
			&e.DurationMinutes,
			&availability,
			&metadata,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning plan event: %w", err)
		}

		e.Description = description.String
		e.Notes = notes.String

		if err := json.Unmarshal([]byte(metadata), &e.Metadata); err != nil {
			return nil, fmt.Errorf("decoding event metadata: %w", err)
		}
		if availability.Valid && availability.String != "" {
			var a trip.Availability
			if err := json.Unmarshal([]byte(availability.String), &a); err != nil {
				return nil, fmt.Errorf("decoding event availability: %w", err)
			}
			e.Availability = &a
		}
		if startsAt.Valid {
			if t, err := time.Parse(time.RFC3339, startsAt.String); err == nil {
				e.StartsAt = &t
			}
		}
		if endsAt.Valid {
			if t, err := time.Parse(time.RFC3339, endsAt.String); err == nil {
				e.EndsAt = &t
			}
		}

		if dayIndex >= 1 && dayIndex <= len(p.Days) {
			day := &p.Days[dayIndex-1]
			day.Events = append(day.Events, e)
		} else {
			p.Unplaced = append(p.Unplaced, e)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan events: %w", err)
	}

	return p, nil
}

// ListPlans returns summaries of all stored plans, most recently saved
// first.
func (s *SQLite) ListPlans(ctx context.Context) ([]PlanSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.trip_id, p.destination_slug, p.start_date, p.end_date, p.saved_at,
		       COUNT(e.id)
		FROM plans p
		LEFT JOIN plan_events e ON e.trip_id = p.trip_id
		GROUP BY p.trip_id
		ORDER BY p.saved_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []PlanSummary
	for rows.Next() {
		var (
			sum       PlanSummary
			startDate string
			endDate   string
			savedAt   sql.NullString
		)
		if err := rows.Scan(&sum.TripID, &sum.DestinationSlug, &startDate, &endDate, &savedAt, &sum.EventCount); err != nil {
			return nil, fmt.Errorf("scanning plan summary: %w", err)
		}

		if sum.StartDate, err = parseDate(startDate); err != nil {
			return nil, fmt.Errorf("parsing start date: %w", err)
		}
		if sum.EndDate, err = parseDate(endDate); err != nil {
			return nil, fmt.Errorf("parsing end date: %w", err)
		}
		if savedAt.Valid {
			if t, err := time.Parse(time.RFC3339, savedAt.String); err == nil {
				sum.SavedAt = t
			}
		}

		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}

	return summaries, nil
}

// DeletePlan removes a plan and its events. Deleting an unknown trip is
// not an error.
func (s *SQLite) DeletePlan(ctx context.Context, tripID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM plan_events WHERE trip_id = ?`, tripID); err != nil {
		return fmt.Errorf("deleting plan events: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM plans WHERE trip_id = ?`, tripID); err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func insertEvent(ctx context.Context, stmt *sql.Stmt, p *trip.Plan, e *trip.Event, dayID string, dayIndex int, dayDate string, position int) error {
	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return fmt.Errorf("encoding metadata for %q: %w", e.Title, err)
	}

	var availability any
	if e.Availability != nil {
		raw, err := json.Marshal(e.Availability)
		if err != nil {
			return fmt.Errorf("encoding availability for %q: %w", e.Title, err)
		}
		availability = string(raw)
	}

	var startsAt, endsAt any
	if e.StartsAt != nil {
		startsAt = e.StartsAt.Format(time.RFC3339)
	}
	if e.EndsAt != nil {
		endsAt = e.EndsAt.Format(time.RFC3339)
	}

	var attractionID any
	if e.Metadata.Attraction != nil && e.Metadata.Attraction.AttractionID != "" {
		attractionID = e.Metadata.Attraction.AttractionID
	}

	var dayIDArg, dayDateArg any
	if dayID != "" {
		dayIDArg = dayID
		dayDateArg = dayDate
	}

	_, err = stmt.ExecContext(ctx,
		e.ID,
		p.TripID,
		dayIDArg,
		dayIndex,
		dayDateArg,
		position,
		e.Title,
		e.Description,
		e.Notes,
		string(e.Metadata.Category),
		startsAt,
		endsAt,
		e.DurationMinutes,
		attractionID,
		p.DestinationSlug,
		availability,
		string(metadata),
	)
	if err != nil {
		return fmt.Errorf("inserting event %q: %w", e.Title, err)
	}

	return nil
}

// parseDate parses a date string in the formats SQLite might return.
// Date-only values are parsed in the local timezone so they compare
// cleanly with dates derived from time.Now().
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z"; treat the
	// date part as local midnight.
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := time.ParseInLocation("2006-01-02", s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
