// Package eventstore holds the canonical in-memory collection of events.
package eventstore

import (
	"sync"

	"github.com/google/uuid"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/models"
)

// Op names a kind of change.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
	OpReset   Op = "reset"
)

// Change describes one mutation. For OpReset, Event is empty and Events holds
// the new collection.
type Change struct {
	Op     Op
	Event  models.Event
	Events []models.Event
}

// Listener is called synchronously after every mutation, outside the store
// lock, so it may read the store.
type Listener func(Change)

// Store is an ordered, identifier-keyed event collection. It does not
// validate fields; callers do.
type Store struct {
	mu        sync.RWMutex
	events    []models.Event
	listeners map[int]Listener
	nextSub   int
	newID     func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		listeners: make(map[int]Listener),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Add appends a new event built from f under a fresh identifier.
func (s *Store) Add(f models.Fields) models.Event {
	s.mu.Lock()
	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}
	ev := models.NewEvent(id, f)
	s.events = append(s.events, ev)
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, Change{Op: OpCreated, Event: ev.Clone()})
	return ev.Clone()
}

// Update replaces every editable field of the event with id. The identifier
// never changes. It returns apperr.ErrNotFound if no such event exists.
func (s *Store) Update(id string, f models.Fields) (models.Event, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Event{}, apperr.ErrNotFound
	}
	s.events[i] = models.NewEvent(id, f)
	ev := s.events[i].Clone()
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, Change{Op: OpUpdated, Event: ev.Clone()})
	return ev, nil
}

// Delete removes the event with id and returns it. It returns
// apperr.ErrNotFound if no such event exists.
func (s *Store) Delete(id string) (models.Event, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return models.Event{}, apperr.ErrNotFound
	}
	ev := s.events[i]
	s.events = append(s.events[:i], s.events[i+1:]...)
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, Change{Op: OpDeleted, Event: ev.Clone()})
	return ev, nil
}

// Get returns a copy of the event with id.
func (s *Store) Get(id string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Event{}, apperr.ErrNotFound
	}
	return s.events[i].Clone(), nil
}

// List returns copies of all events. Insertion order is kept but callers
// should sort for themselves.
func (s *Store) List() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Event, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Clone()
	}
	return out
}

// Len returns the number of events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Reset replaces the whole collection with fresh events built from seed.
func (s *Store) Reset(seed []models.Fields) []models.Event {
	s.mu.Lock()
	s.events = make([]models.Event, 0, len(seed))
	for _, f := range seed {
		s.events = append(s.events, models.NewEvent(s.newID(), f))
	}
	out := make([]models.Event, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Clone()
	}
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, Change{Op: OpReset, Events: out})
	return out
}

func (s *Store) indexOf(id string) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for i := 0; i < s.nextSub; i++ {
		if l, ok := s.listeners[i]; ok {
			out = append(out, l)
		}
	}
	return out
}

func notify(listeners []Listener, c Change) {
	for _, l := range listeners {
		l(c)
	}
}
