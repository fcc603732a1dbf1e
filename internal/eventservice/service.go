// Package eventservice coordinates the event store, the date engine and the
// search index behind one API shared by the HTTP and MCP surfaces.
package eventservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/eventstore"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/metrics"
	"github.com/starford/dagaz/internal/models"
)

// DefaultUpcoming is the sidebar length of the upcoming list.
const DefaultUpcoming = 5

// Service coordinates store, engine and index operations.
type Service struct {
	store  *eventstore.Store
	engine *calendar.Engine
	idx    index.EventIndex
}

// NewService creates a new event service. idx may be nil, in which case
// Search scans the store.
func NewService(store *eventstore.Store, engine *calendar.Engine, idx index.EventIndex) *Service {
	return &Service{store: store, engine: engine, idx: idx}
}

// Engine returns the date engine used for projections.
func (s *Service) Engine() *calendar.Engine {
	return s.engine
}

// ListEvents returns every event ordered by start time.
func (s *Service) ListEvents(_ context.Context) []models.Event {
	return calendar.SortByTime(s.store.List())
}

// EventsInRange returns events intersecting [from, to) ordered by start time.
func (s *Service) EventsInRange(_ context.Context, from, to time.Time) ([]models.Event, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end is before start", apperr.ErrValidation)
	}
	return calendar.InRange(s.store.List(), from, to), nil
}

// GetEvent returns one event.
func (s *Service) GetEvent(_ context.Context, id string) (models.Event, error) {
	return s.store.Get(id)
}

// CreateEvent validates f and adds it to the store.
func (s *Service) CreateEvent(_ context.Context, f models.Fields) (models.Event, error) {
	f, err := normalize(f)
	if err != nil {
		return models.Event{}, err
	}
	return s.store.Add(f), nil
}

// UpdateEvent validates f and replaces every editable field of the event.
func (s *Service) UpdateEvent(_ context.Context, id string, f models.Fields) (models.Event, error) {
	f, err := normalize(f)
	if err != nil {
		return models.Event{}, err
	}
	return s.store.Update(id, f)
}

// DeleteEvent removes an event.
func (s *Service) DeleteEvent(_ context.Context, id string) error {
	_, err := s.store.Delete(id)
	return err
}

// Draft returns prefilled fields for a new event at start: one hour long,
// primary category. Title is left empty for the user to fill in.
func (s *Service) Draft(start time.Time, allDay bool) models.Fields {
	f := models.Fields{
		Start:    start,
		End:      start.Add(time.Hour),
		AllDay:   allDay,
		Category: models.CategoryPrimary,
	}
	if allDay {
		f.Start = calendar.StartOfDay(start)
		f.End = f.Start
	}
	return f
}

// Upcoming returns up to limit events starting today or later.
func (s *Service) Upcoming(_ context.Context, limit int) []models.Event {
	if limit <= 0 {
		limit = DefaultUpcoming
	}
	return calendar.Upcoming(s.store.List(), s.engine.Now(), limit)
}

// DayPosition places the event with id in the column of day. ok is false
// for all-day events and events not on day.
func (s *Service) DayPosition(_ context.Context, id string, day time.Time) (pos calendar.Position, ok bool, err error) {
	ev, err := s.store.Get(id)
	if err != nil {
		return calendar.Position{}, false, err
	}
	pos, ok = calendar.DayPosition(ev, day)
	return pos, ok, nil
}

// Search returns events matching query, using the index when available.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]models.Event, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", apperr.ErrValidation)
	}
	if s.idx == nil {
		return scan(s.store.List(), query, limit), nil
	}

	start := time.Now()
	hits, err := s.idx.Search(query, limit)
	metrics.ObserveIndexLatency(ctx, "search", start)
	if err != nil {
		return nil, err
	}
	out := make([]models.Event, 0, len(hits))
	for _, h := range hits {
		ev, err := s.store.Get(h.ID)
		if err != nil {
			// Index lags the store; skip.
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

// CategoryCounts returns how many events carry each category.
func (s *Service) CategoryCounts(ctx context.Context) (map[models.Category]int, error) {
	if s.idx != nil {
		start := time.Now()
		counts, err := s.idx.CountByCategory()
		metrics.ObserveIndexLatency(ctx, "count_by_category", start)
		return counts, err
	}
	counts := make(map[models.Category]int)
	for _, ev := range s.store.List() {
		counts[ev.Category]++
	}
	return counts, nil
}

func scan(events []models.Event, query string, limit int) []models.Event {
	if limit <= 0 {
		limit = 20
	}
	q := strings.ToLower(query)
	var out []models.Event
	for _, ev := range calendar.SortByTime(events) {
		hay := strings.ToLower(ev.Title + "\n" + ev.Description + "\n" + ev.Location + "\n" + strings.Join(ev.Attendees, " "))
		if strings.Contains(hay, q) {
			out = append(out, ev)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// normalize trims the title, applies the default category and validates.
func normalize(f models.Fields) (models.Fields, error) {
	f = f.Clone()
	f.Title = strings.TrimSpace(f.Title)
	f.Location = strings.TrimSpace(f.Location)
	if f.Category == "" {
		f.Category = models.CategoryPrimary
	}
	if err := f.Validate(); err != nil {
		return models.Fields{}, fmt.Errorf("%w: %w", apperr.ErrValidation, err)
	}
	return f, nil
}
