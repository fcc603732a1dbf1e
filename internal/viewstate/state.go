// Package viewstate holds the selected view mode and reference date.
package viewstate

import (
	"fmt"
	"sync"
	"time"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/models"
)

// Snapshot is a consistent copy of the state.
type Snapshot struct {
	View  models.View `json:"view"`
	Date  time.Time   `json:"date"`
	Title string      `json:"title"`
	// From and To bound the rendered interval, To exclusive.
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// State is safe for concurrent use.
type State struct {
	mu     sync.Mutex
	engine *calendar.Engine
	view   models.View
	date   time.Time
}

// New starts in month view on the engine's current day.
func New(engine *calendar.Engine) *State {
	return &State{
		engine: engine,
		view:   models.ViewMonth,
		date:   engine.Today(),
	}
}

// Select switches the view mode. The reference date is kept.
func (s *State) Select(view string) (Snapshot, error) {
	v, err := models.ParseView(view)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", apperr.ErrValidation, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
	return s.snapshot(), nil
}

// SetDate moves the reference date.
func (s *State) SetDate(date time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.date = calendar.StartOfDay(date.In(s.engine.Location()))
	return s.snapshot()
}

// Next moves one unit of the current view forward.
func (s *State) Next() Snapshot { return s.shift(1) }

// Prev moves one unit of the current view back.
func (s *State) Prev() Snapshot { return s.shift(-1) }

// Today resets the reference date to the current day.
func (s *State) Today() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.date = s.engine.Today()
	return s.snapshot()
}

// Snapshot returns the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *State) shift(n int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.date = calendar.Shift(s.view, s.date, n)
	return s.snapshot()
}

func (s *State) snapshot() Snapshot {
	from, to := s.engine.VisibleRange(s.view, s.date)
	return Snapshot{
		View:  s.view,
		Date:  s.date,
		Title: s.engine.Title(s.view, s.date),
		From:  from,
		To:    to,
	}
}
