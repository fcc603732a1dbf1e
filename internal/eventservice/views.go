package eventservice

import (
	"context"
	"time"

	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/models"
)

// MonthView is the 6x7 grid for the month containing the reference date.
type MonthView struct {
	Title    string               `json:"title"`
	Weekdays []string             `json:"weekdays"`
	Days     []models.CalendarDay `json:"days"`
}

// WeekView holds seven timed columns starting at the week start.
type WeekView struct {
	Title   string               `json:"title"`
	Hours   []string             `json:"hours"`
	Columns []calendar.DayColumn `json:"columns"`
}

// SlotMinutes is the granularity of the day view's clickable slots.
const SlotMinutes = 30

// DayView is a single timed column.
type DayView struct {
	Title  string             `json:"title"`
	Hours  []string           `json:"hours"`
	Slots  []time.Time        `json:"slots"`
	Column calendar.DayColumn `json:"column"`
}

// YearView lists the twelve months of the reference year with event counts.
type YearView struct {
	Title  string                  `json:"title"`
	Months []calendar.MonthSummary `json:"months"`
}

// MonthGrid computes the month view for ref.
func (s *Service) MonthGrid(_ context.Context, ref time.Time) MonthView {
	return MonthView{
		Title:    calendar.Title(models.ViewMonth, ref),
		Weekdays: s.engine.WeekdayNames(true),
		Days:     s.engine.MonthGrid(ref, s.store.List()),
	}
}

// WeekView computes the week view for ref.
func (s *Service) WeekView(_ context.Context, ref time.Time) WeekView {
	return WeekView{
		Title:   s.engine.Title(models.ViewWeek, ref),
		Hours:   calendar.HourLabels(),
		Columns: s.engine.WeekColumns(ref, s.store.List()),
	}
}

// DayView computes the day view for ref.
func (s *Service) DayView(_ context.Context, ref time.Time) DayView {
	return DayView{
		Title:  calendar.Title(models.ViewDay, ref),
		Hours:  calendar.HourLabels(),
		Slots:  calendar.TimeSlots(ref, 0, 24, SlotMinutes),
		Column: s.engine.DayColumn(ref, s.store.List()),
	}
}

// YearView computes the year view for ref.
func (s *Service) YearView(_ context.Context, ref time.Time) YearView {
	return YearView{
		Title:  calendar.Title(models.ViewYear, ref),
		Months: s.engine.YearMonths(ref, s.store.List()),
	}
}

// View computes the projection for view at ref. The result is one of
// MonthView, WeekView, DayView or YearView.
func (s *Service) View(ctx context.Context, view models.View, ref time.Time) any {
	switch view {
	case models.ViewDay:
		return s.DayView(ctx, ref)
	case models.ViewWeek:
		return s.WeekView(ctx, ref)
	case models.ViewYear:
		return s.YearView(ctx, ref)
	default:
		return s.MonthGrid(ctx, ref)
	}
}
