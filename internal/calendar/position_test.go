package calendar

import (
	"testing"
	"time"

	"github.com/starford/dagaz/internal/models"
)

func timed(id string, start, end time.Time) models.Event {
	return models.Event{ID: id, Fields: models.Fields{Title: id, Start: start, End: end, Category: models.CategoryPrimary}}
}

func TestDayPosition_SameDay(t *testing.T) {
	ev := timed("a", at(2024, time.March, 10, 9, 0), at(2024, time.March, 10, 10, 30))
	pos, ok := DayPosition(ev, date(2024, time.March, 10))
	if !ok {
		t.Fatal("expected a position")
	}
	if pos.OffsetPercent != 37.5 {
		t.Errorf("offset = %v, want 37.5", pos.OffsetPercent)
	}
	if pos.HeightPercent != 6.25 {
		t.Errorf("height = %v, want 6.25", pos.HeightPercent)
	}
}

func TestDayPosition_TimeOfReferenceDayIgnored(t *testing.T) {
	ev := timed("a", at(2024, time.March, 10, 9, 0), at(2024, time.March, 10, 10, 30))
	pos, ok := DayPosition(ev, at(2024, time.March, 10, 23, 59))
	if !ok || pos.OffsetPercent != 37.5 {
		t.Errorf("pos = %+v ok=%v", pos, ok)
	}
}

func TestDayPosition_OtherDay(t *testing.T) {
	ev := timed("a", at(2024, time.March, 10, 9, 0), at(2024, time.March, 10, 10, 30))
	if _, ok := DayPosition(ev, date(2024, time.March, 11)); ok {
		t.Error("event should not be placed on the next day")
	}
	if _, ok := DayPosition(ev, date(2024, time.March, 9)); ok {
		t.Error("event should not be placed on the previous day")
	}
}

func TestDayPosition_AllDay(t *testing.T) {
	ev := timed("a", date(2024, time.March, 10), date(2024, time.March, 11))
	ev.AllDay = true
	if _, ok := DayPosition(ev, date(2024, time.March, 10)); ok {
		t.Error("all-day events are not placed in the column")
	}
}

func TestDayPosition_MultiDayIsClipped(t *testing.T) {
	ev := timed("a", at(2024, time.March, 10, 18, 0), at(2024, time.March, 12, 6, 0))

	first, ok := DayPosition(ev, date(2024, time.March, 10))
	if !ok || first.OffsetPercent != 75 || first.HeightPercent != 25 {
		t.Errorf("start day = %+v ok=%v, want 75/25", first, ok)
	}
	middle, ok := DayPosition(ev, date(2024, time.March, 11))
	if !ok || middle.OffsetPercent != 0 || middle.HeightPercent != 100 {
		t.Errorf("middle day = %+v ok=%v, want 0/100", middle, ok)
	}
	last, ok := DayPosition(ev, date(2024, time.March, 12))
	if !ok || last.OffsetPercent != 0 || last.HeightPercent != 25 {
		t.Errorf("end day = %+v ok=%v, want 0/25", last, ok)
	}
	if _, ok := DayPosition(ev, date(2024, time.March, 13)); ok {
		t.Error("event should not reach the 13th")
	}
}

func TestDayPosition_EndBeforeStart(t *testing.T) {
	ev := timed("a", at(2024, time.March, 10, 12, 0), at(2024, time.March, 10, 11, 0))
	pos, ok := DayPosition(ev, date(2024, time.March, 10))
	if !ok || pos.OffsetPercent != 50 || pos.HeightPercent != 0 {
		t.Errorf("pos = %+v ok=%v, want 50/0", pos, ok)
	}
}

func TestNowIndicator(t *testing.T) {
	e := fixedEngine(at(2024, time.March, 10, 6, 0))
	if got := e.NowIndicator(); got.OffsetPercent != 25 || got.HeightPercent != 0 {
		t.Errorf("now = %+v, want 25/0", got)
	}
}
