package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tripgrid/internal/trip"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func samplePlan() *trip.Plan {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local)
	p := trip.Empty("trip-1", "kyoto-japan", start, start.AddDate(0, 0, 2))
	p.GeneratedAt = time.Date(2026, 5, 20, 12, 0, 0, 0, time.Local)

	shrineStart := p.Days[0].Date.Add(9 * time.Hour)
	shrineEnd := shrineStart.Add(2 * time.Hour)
	p.Days[0].Events = []trip.Event{{
		ID:              "e-shrine",
		Title:           "Fushimi Inari",
		Description:     "Torii gate hike",
		Notes:           "Go early to beat crowds",
		StartsAt:        &shrineStart,
		EndsAt:          &shrineEnd,
		DurationMinutes: 120,
		Metadata: trip.Metadata{
			Category:   trip.CategoryActivity,
			Attraction: &trip.AttractionMeta{AttractionID: "att-1", Tags: []string{"shrine", "hike"}},
			Location:   &trip.Location{Lat: 34.9671, Lng: 135.7727, Address: "68 Fukakusa Yabunouchicho"},
		},
		Availability: &trip.Availability{
			Confirmed: true,
			Source:    "catalog",
			CheckedAt: time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC),
		},
	}}

	lunchStart := p.Days[1].Date.Add(12*time.Hour + 30*time.Minute)
	p.Days[1].Events = []trip.Event{{
		ID:              "e-lunch",
		Title:           "Ramen lunch",
		StartsAt:        &lunchStart,
		DurationMinutes: 60,
		Metadata:        trip.Metadata{Category: trip.CategoryDining, Dining: &trip.DiningMeta{Cuisine: "ramen"}},
	}}

	p.Unplaced = []trip.Event{{
		ID:              "e-spare",
		Title:           "Nishiki market",
		DurationMinutes: 90,
		Metadata:        trip.Metadata{Category: trip.CategoryDining, Dining: &trip.DiningMeta{}},
	}}

	return p
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePlan(ctx, samplePlan()); err != nil {
		t.Fatalf("SavePlan() error: %v", err)
	}

	got, err := s.LoadPlan(ctx, "trip-1")
	if err != nil {
		t.Fatalf("LoadPlan() error: %v", err)
	}
	if got == nil {
		t.Fatal("LoadPlan() returned nil for a saved plan")
	}

	if got.TripID != "trip-1" || got.DestinationSlug != "kyoto-japan" {
		t.Errorf("plan identity = %s/%s", got.TripID, got.DestinationSlug)
	}
	if len(got.Days) != 3 {
		t.Fatalf("len(Days) = %d, want 3", len(got.Days))
	}
	if err := got.Validate(); err != nil {
		t.Errorf("loaded plan invalid: %v", err)
	}
	if got.Preferences.DayStart != "09:00" {
		t.Errorf("Preferences.DayStart = %q, want 09:00", got.Preferences.DayStart)
	}
	if got.GeneratedAt.IsZero() {
		t.Error("GeneratedAt lost in round trip")
	}

	if len(got.Days[0].Events) != 1 {
		t.Fatalf("day 1 has %d events, want 1", len(got.Days[0].Events))
	}
	e := got.Days[0].Events[0]
	if e.ID != "e-shrine" || e.Title != "Fushimi Inari" {
		t.Errorf("event = %s/%s", e.ID, e.Title)
	}
	if e.Description != "Torii gate hike" || e.Notes != "Go early to beat crowds" {
		t.Errorf("text fields lost: %q / %q", e.Description, e.Notes)
	}
	if e.StartsAt == nil || e.StartsAt.Format("2006-01-02 15:04") != "2026-06-01 09:00" {
		t.Errorf("StartsAt = %v", e.StartsAt)
	}
	if e.EndsAt == nil || e.EndsAt.Format("15:04") != "11:00" {
		t.Errorf("EndsAt = %v", e.EndsAt)
	}
	if e.Metadata.Attraction == nil || e.Metadata.Attraction.AttractionID != "att-1" {
		t.Errorf("attraction metadata lost: %+v", e.Metadata)
	}
	if e.Metadata.Location == nil || e.Metadata.Location.Lat != 34.9671 {
		t.Errorf("location metadata lost: %+v", e.Metadata.Location)
	}
	if len(e.Metadata.Attraction.Tags) != 2 {
		t.Errorf("attraction tags lost: %v", e.Metadata.Attraction.Tags)
	}
	if e.Availability == nil || !e.Availability.Confirmed || e.Availability.Source != "catalog" {
		t.Errorf("availability lost: %+v", e.Availability)
	}

	if len(got.Days[1].Events) != 1 || got.Days[1].Events[0].Metadata.Dining == nil {
		t.Error("day 2 dining event lost")
	}
	if len(got.Days[2].Events) != 0 {
		t.Errorf("empty day 3 has %d events", len(got.Days[2].Events))
	}

	if len(got.Unplaced) != 1 {
		t.Fatalf("len(Unplaced) = %d, want 1", len(got.Unplaced))
	}
	if got.Unplaced[0].StartsAt != nil {
		t.Error("pool event gained a start time")
	}
}

func TestSavePlan_ReplacesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePlan(ctx, samplePlan()); err != nil {
		t.Fatalf("first SavePlan() error: %v", err)
	}

	// Second save for the same trip drops an event and changes the slug.
	p := samplePlan()
	p.DestinationSlug = "kyoto-japan-v2"
	p.Days[1].Events = nil
	p.Unplaced = nil
	if err := s.SavePlan(ctx, p); err != nil {
		t.Fatalf("second SavePlan() error: %v", err)
	}

	got, err := s.LoadPlan(ctx, "trip-1")
	if err != nil {
		t.Fatalf("LoadPlan() error: %v", err)
	}
	if got.DestinationSlug != "kyoto-japan-v2" {
		t.Errorf("slug = %q, want kyoto-japan-v2", got.DestinationSlug)
	}
	total := len(got.Unplaced)
	for _, d := range got.Days {
		total += len(d.Events)
	}
	if total != 1 {
		t.Errorf("event count after replace = %d, want 1", total)
	}
}

func TestSavePlan_NilPlan(t *testing.T) {
	s := newTestStore(t)

	if err := s.SavePlan(context.Background(), nil); err == nil {
		t.Error("SavePlan(nil) did not fail")
	}
}

func TestLoadPlan_Missing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.LoadPlan(context.Background(), "no-such-trip")
	if err != nil {
		t.Fatalf("LoadPlan() error: %v", err)
	}
	if got != nil {
		t.Errorf("LoadPlan() = %+v, want nil for missing trip", got)
	}
}

func TestListPlans(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePlan(ctx, samplePlan()); err != nil {
		t.Fatalf("SavePlan() error: %v", err)
	}
	second := samplePlan()
	second.TripID = "trip-2"
	second.DestinationSlug = "lisbon-portugal"
	if err := s.SavePlan(ctx, second); err != nil {
		t.Fatalf("SavePlan() error: %v", err)
	}

	summaries, err := s.ListPlans(ctx)
	if err != nil {
		t.Fatalf("ListPlans() error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("len(summaries) = %d, want 2", len(summaries))
	}

	byTrip := make(map[string]PlanSummary, len(summaries))
	for _, sum := range summaries {
		byTrip[sum.TripID] = sum
	}
	sum, ok := byTrip["trip-1"]
	if !ok {
		t.Fatal("trip-1 missing from summaries")
	}
	if sum.DestinationSlug != "kyoto-japan" {
		t.Errorf("slug = %q", sum.DestinationSlug)
	}
	if sum.EventCount != 3 {
		t.Errorf("EventCount = %d, want 3", sum.EventCount)
	}
	if sum.StartDate.Format("2006-01-02") != "2026-06-01" {
		t.Errorf("StartDate = %s", sum.StartDate.Format("2006-01-02"))
	}
	if sum.SavedAt.IsZero() {
		t.Error("SavedAt not recorded")
	}
}

func TestListPlans_Empty(t *testing.T) {
	s := newTestStore(t)

	summaries, err := s.ListPlans(context.Background())
	if err != nil {
		t.Fatalf("ListPlans() error: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("len(summaries) = %d, want 0", len(summaries))
	}
}

func TestDeletePlan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SavePlan(ctx, samplePlan()); err != nil {
		t.Fatalf("SavePlan() error: %v", err)
	}
	if err := s.DeletePlan(ctx, "trip-1"); err != nil {
		t.Fatalf("DeletePlan() error: %v", err)
	}

	got, err := s.LoadPlan(ctx, "trip-1")
	if err != nil {
		t.Fatalf("LoadPlan() error: %v", err)
	}
	if got != nil {
		t.Error("plan still loadable after delete")
	}

	// Deleting again is fine.
	if err := s.DeletePlan(ctx, "trip-1"); err != nil {
		t.Errorf("DeletePlan() on missing trip: %v", err)
	}
}
