package integration

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"tripgrid/internal/board"
	"tripgrid/internal/db"
	"tripgrid/internal/dragdrop"
	"tripgrid/internal/grid"
	"tripgrid/internal/itinerary"
	"tripgrid/internal/llm"
	"tripgrid/internal/trip"
)

// fakeLLM is a canned LLM client so the full pipeline runs offline.
type fakeLLM struct {
	response string
}

func (f *fakeLLM) Chat(_ context.Context, _ []llm.Message) (string, error) {
	return f.response, nil
}

func (f *fakeLLM) ChatJSON(_ context.Context, _ []llm.Message, result any) error {
	return json.Unmarshal([]byte(f.response), result)
}

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newController(t *testing.T, repo *db.SQLite) *itinerary.Controller {
	t.Helper()

	gen := llm.NewGenerator(&fakeLLM{response: `{
		"days": [
			{
				"date": "2026-06-01",
				"events": [
					{"title": "Fushimi Inari", "category": "activity", "start": "09:00", "duration_minutes": 120, "attraction_id": "att-1"},
					{"title": "Ramen lunch", "category": "dining", "start": "12:30", "duration_minutes": 60}
				]
			},
			{
				"date": "2026-06-02",
				"events": [
					{"title": "Arashiyama", "category": "activity", "start": "10:00", "duration_minutes": 180}
				]
			},
			{
				"date": "2026-06-03",
				"events": []
			}
		],
		"unplaced": [
			{"title": "Nishiki market", "category": "dining", "duration_minutes": 90}
		]
	}`})

	spec := itinerary.TripSpec{
		TripID:          "trip-1",
		DestinationSlug: "kyoto-japan",
		StartDate:       time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local),
		EndDate:         time.Date(2026, 6, 3, 0, 0, 0, 0, time.Local),
		Preferences:     trip.DefaultPreferences(),
	}
	return itinerary.New(board.NewStore(), gen, repo, spec)
}

func TestGenerateSaveReloadEdit(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	// Generate onto a fresh board and persist.
	ctrl := newController(t, repo)
	if err := ctrl.Load(ctx); err != nil {
		t.Fatalf("initial load: %v", err)
	}
	if _, err := ctrl.Generate(ctx); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !ctrl.Store().Dirty() {
		t.Fatal("generated plan not marked unsaved")
	}
	if err := ctrl.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ctrl.Store().Dirty() {
		t.Fatal("save did not clear the dirty flag")
	}

	// A second controller sees the stored plan.
	ctrl2 := newController(t, repo)
	if err := ctrl2.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	store := ctrl2.Store()

	days := store.Days()
	if len(days) != 3 {
		t.Fatalf("reloaded plan has %d days, want 3", len(days))
	}
	if len(days[0].Events) != 2 || len(days[1].Events) != 1 || len(days[2].Events) != 0 {
		t.Fatalf("event layout = %d/%d/%d, want 2/1/0",
			len(days[0].Events), len(days[1].Events), len(days[2].Events))
	}
	if len(store.Unplaced()) != 1 {
		t.Fatalf("reloaded pool has %d events, want 1", len(store.Unplaced()))
	}

	// Drag the pool event onto day 3 at 14:00, then persist the edit.
	layout := grid.NewLayout(30)
	drag := dragdrop.NewController(store, layout)
	spareID := store.Unplaced()[0].ID
	s, ok := drag.Start(spareID)
	if !ok {
		t.Fatal("drag start failed")
	}
	if !drag.Drop(s, dragdrop.TimeSlot("day-3", 28)) {
		t.Fatal("drop failed")
	}
	if !store.Dirty() {
		t.Fatal("drop did not dirty the board")
	}
	if err := ctrl2.Save(ctx); err != nil {
		t.Fatalf("save after edit: %v", err)
	}

	// A third load sees the edit.
	got, err := repo.LoadPlan(ctx, "trip-1")
	if err != nil {
		t.Fatalf("final load: %v", err)
	}
	if len(got.Unplaced) != 0 {
		t.Errorf("pool still has %d events after placement", len(got.Unplaced))
	}
	if len(got.Days[2].Events) != 1 {
		t.Fatalf("day 3 has %d events, want 1", len(got.Days[2].Events))
	}
	moved := got.Days[2].Events[0]
	if moved.Title != "Nishiki market" {
		t.Errorf("moved event = %q", moved.Title)
	}
	if got := moved.StartsAt.Format("2006-01-02 15:04"); got != "2026-06-03 14:00" {
		t.Errorf("moved start = %q, want 2026-06-03 14:00", got)
	}
}

func TestTravelGapsSurviveStorage(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	ctrl := newController(t, repo)
	if _, err := ctrl.Generate(ctx); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := ctrl.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.LoadPlan(ctx, "trip-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Shrine 09:00-11:00 then lunch 12:30 leaves a 90-minute gap.
	layout := grid.NewLayout(30)
	connectors := layout.Connectors(got.Days[0].Events)
	if len(connectors) != 1 {
		t.Fatalf("len(connectors) = %d, want 1", len(connectors))
	}
	c := connectors[0]
	if c.GapMinutes != 90 {
		t.Errorf("GapMinutes = %d, want 90", c.GapMinutes)
	}
	if c.Tight {
		t.Error("90-minute gap flagged as tight")
	}
}

func TestDeleteRemovesEverything(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	ctrl := newController(t, repo)
	if _, err := ctrl.Generate(ctx); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := ctrl.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := repo.DeletePlan(ctx, "trip-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := repo.LoadPlan(ctx, "trip-1")
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if got != nil {
		t.Error("plan still loadable after delete")
	}

	summaries, err := repo.ListPlans(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("%d summaries remain after delete", len(summaries))
	}
}
