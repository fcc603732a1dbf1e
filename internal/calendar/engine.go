package calendar

import "time"

// Engine carries the two pieces of context the otherwise pure computations
// need: which weekday starts a week, and what time it is now.
type Engine struct {
	weekStart time.Weekday
	loc       *time.Location
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeekStart sets the first day of the week. Sunday is the default.
func WithWeekStart(d time.Weekday) Option {
	return func(e *Engine) {
		e.weekStart = d
	}
}

// WithLocation sets the zone used to interpret bare dates. time.Local is the
// default.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weekStart: time.Sunday,
		loc:       time.Local,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WeekStart returns the configured first day of the week.
func (e *Engine) WeekStart() time.Weekday {
	return e.weekStart
}

// Location returns the zone bare dates are interpreted in.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Now returns the current instant in the engine's location.
func (e *Engine) Now() time.Time {
	return e.now().In(e.loc)
}

// Today returns midnight of the current day.
func (e *Engine) Today() time.Time {
	return StartOfDay(e.Now())
}

// IsToday reports whether t falls on the current calendar day.
func (e *Engine) IsToday(t time.Time) bool {
	return SameDay(t, e.now())
}
