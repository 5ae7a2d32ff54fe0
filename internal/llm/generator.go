package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tripgrid/internal/dateutil"
	"tripgrid/internal/grid"
	"tripgrid/internal/trip"
)

const itineraryPrompt = `You are a travel-itinerary planner.

Trip:
- Destination: %s
- Dates: %s to %s (%d days)
- Party size: %d
- Pace: %s
- Day runs from %s to %s, with roughly %d-minute breaks between activities
- At most %d scheduled events per day

Rules:
1. Produce one entry per calendar date from %s to %s inclusive.
2. Use 24-hour "HH:MM" times and 15-minute increments.
3. Do not overlap events on the same day; respect the day hours.
4. Category must be one of: activity, dining, lodging, logistics, transit.
5. Include 2-4 extra candidate events in "unplaced" with no times, so the
   user has spares to drag onto the grid.
6. Give every event a short description; notes are optional.

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "days": [
    {
      "date": "YYYY-MM-DD",
      "events": [
        {
          "title": "string",
          "description": "string",
          "notes": "string",
          "category": "activity",
          "start": "HH:MM",
          "duration_minutes": 90,
          "attraction_id": "string"
        }
      ]
    }
  ],
  "unplaced": [
    {
      "title": "string",
      "description": "string",
      "category": "activity",
      "duration_minutes": 60,
      "attraction_id": "string"
    }
  ]
}`

// GenerateRequest is the input for one itinerary generation call.
type GenerateRequest struct {
	TripID          string
	DestinationSlug string
	StartDate       time.Time
	EndDate         time.Time
	Preferences     trip.Preferences
}

// itineraryResponse mirrors the JSON contract above.
type itineraryResponse struct {
	Days []struct {
		Date   string         `json:"date"`
		Events []plannedEvent `json:"events"`
	} `json:"days"`
	Unplaced []plannedEvent `json:"unplaced"`
}

type plannedEvent struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Notes           string `json:"notes"`
	Category        string `json:"category"`
	Start           string `json:"start"`
	DurationMinutes int    `json:"duration_minutes"`
	AttractionID    string `json:"attraction_id"`
}

// Generator turns a destination and date range into a full plan via an LLM.
type Generator struct {
	client Client
}

// NewGenerator creates a Generator with the given LLM client.
func NewGenerator(client Client) *Generator {
	return &Generator{client: client}
}

// Generate calls the LLM and converts its response into a plan. The
// returned plan always covers the requested date range; generated events
// whose dates fall outside it are discarded.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*trip.Plan, error) {
	prefs := req.Preferences
	if prefs.DayStart == "" {
		prefs = trip.DefaultPreferences()
	}
	start := dateutil.TruncateToDay(req.StartDate)
	end := dateutil.TruncateToDay(req.EndDate)
	days := dateutil.DaysBetween(start, end) + 1

	prompt := fmt.Sprintf(itineraryPrompt,
		req.DestinationSlug,
		start.Format("2006-01-02"), end.Format("2006-01-02"), days,
		prefs.PartySize,
		prefs.Pace,
		prefs.DayStart, prefs.DayEnd, prefs.BreakMinutes,
		prefs.MaxEventsPerDay,
		start.Format("2006-01-02"), end.Format("2006-01-02"),
	)

	var resp itineraryResponse
	err := g.client.ChatJSON(ctx, []Message{{Role: "system", Content: prompt}}, &resp)
	if err != nil {
		return nil, fmt.Errorf("generating itinerary: %w", err)
	}

	return g.toPlan(req, prefs, &resp), nil
}

// toPlan converts a parsed response into a plan value, anchoring every
// event onto its day's date and dropping events it cannot place.
func (g *Generator) toPlan(req GenerateRequest, prefs trip.Preferences, resp *itineraryResponse) *trip.Plan {
	p := trip.Empty(req.TripID, req.DestinationSlug, req.StartDate, req.EndDate)
	p.Preferences = prefs
	p.GeneratedAt = time.Now()

	byDate := make(map[string]*trip.Day, len(p.Days))
	for i := range p.Days {
		byDate[p.Days[i].Date.Format("2006-01-02")] = &p.Days[i]
	}

	for _, rd := range resp.Days {
		day, ok := byDate[rd.Date]
		if !ok {
			continue
		}
		for _, pe := range rd.Events {
			e := buildEvent(pe)
			if e == nil {
				continue
			}
			if pe.Start != "" {
				mins := grid.TimeToMinutes(pe.Start)
				startAt := day.Date.Add(time.Duration(mins) * time.Minute)
				e.StartsAt = &startAt
				e.AnchorTo(day.Date)
			}
			day.Events = append(day.Events, *e)
		}
		day.Sort()
	}

	for _, pe := range resp.Unplaced {
		e := buildEvent(pe)
		if e == nil {
			continue
		}
		p.Unplaced = append(p.Unplaced, *e)
	}

	return p
}

// buildEvent creates a domain event from a planned one, minting an ID and
// the category-appropriate metadata payload. Returns nil for events with no
// title.
func buildEvent(pe plannedEvent) *trip.Event {
	if strings.TrimSpace(pe.Title) == "" {
		return nil
	}

	cat := trip.Category(strings.ToLower(strings.TrimSpace(pe.Category)))
	if !cat.Valid() {
		cat = trip.CategoryActivity
	}

	meta := trip.Metadata{Category: cat}
	switch cat {
	case trip.CategoryActivity:
		meta.Attraction = &trip.AttractionMeta{AttractionID: pe.AttractionID}
	case trip.CategoryDining:
		meta.Dining = &trip.DiningMeta{}
	case trip.CategoryLodging:
		meta.Lodging = &trip.LodgingMeta{}
	case trip.CategoryLogistics:
		meta.Logistics = &trip.LogisticsMeta{}
	case trip.CategoryTransit:
		meta.Transit = &trip.TransitMeta{}
	}

	return &trip.Event{
		ID:              uuid.NewString(),
		Title:           pe.Title,
		Description:     pe.Description,
		Notes:           pe.Notes,
		DurationMinutes: pe.DurationMinutes,
		Metadata:        meta,
	}
}
