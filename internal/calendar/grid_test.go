package calendar

import (
	"testing"
	"time"

	"github.com/starford/dagaz/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func fixedEngine(now time.Time, opts ...Option) *Engine {
	opts = append([]Option{WithLocation(time.UTC), WithClock(func() time.Time { return now })}, opts...)
	return NewEngine(opts...)
}

func TestMonthGrid_February2024(t *testing.T) {
	e := fixedEngine(at(2024, time.February, 14, 12, 0))
	days := e.MonthGrid(date(2024, time.February, 20), nil)

	if len(days) != GridCells {
		t.Fatalf("len = %d, want %d", len(days), GridCells)
	}
	if got, want := DateKey(days[0].Date), "2024-01-28"; got != want {
		t.Errorf("first = %s, want %s", got, want)
	}
	if got, want := DateKey(days[41].Date), "2024-03-09"; got != want {
		t.Errorf("last = %s, want %s", got, want)
	}
	if days[0].Date.Weekday() != time.Sunday {
		t.Errorf("first weekday = %s, want Sunday", days[0].Date.Weekday())
	}
	if !days[17].IsToday || DateKey(days[17].Date) != "2024-02-14" {
		t.Errorf("cell 17 = %s today=%v, want 2024-02-14 today", DateKey(days[17].Date), days[17].IsToday)
	}
}

func TestMonthGrid_AllMonthsBothWeekStarts(t *testing.T) {
	for _, ws := range []time.Weekday{time.Sunday, time.Monday} {
		e := fixedEngine(at(2000, time.January, 1, 0, 0), WithWeekStart(ws))
		for _, year := range []int{2023, 2024} {
			for m := time.January; m <= time.December; m++ {
				ref := date(year, m, 15)
				days := e.MonthGrid(ref, nil)
				if len(days) != GridCells {
					t.Fatalf("%d-%02d ws=%s: len = %d", year, m, ws, len(days))
				}
				if days[0].Date.Weekday() != ws {
					t.Errorf("%d-%02d ws=%s: first weekday = %s", year, m, ws, days[0].Date.Weekday())
				}
				for i := 1; i < len(days); i++ {
					want := days[i-1].Date.AddDate(0, 0, 1)
					if !days[i].Date.Equal(want) {
						t.Fatalf("%d-%02d: cell %d = %s, want %s", year, m, i, DateKey(days[i].Date), DateKey(want))
					}
				}

				inMonth := map[int]bool{}
				for _, d := range days {
					same := d.Date.Month() == m && d.Date.Year() == year
					if d.IsCurrentMonth != same {
						t.Errorf("%s: IsCurrentMonth = %v, want %v", DateKey(d.Date), d.IsCurrentMonth, same)
					}
					if d.IsCurrentMonth {
						inMonth[d.Date.Day()] = true
					}
				}
				if len(inMonth) != DaysInMonth(ref) {
					t.Errorf("%d-%02d: %d current-month cells, want %d", year, m, len(inMonth), DaysInMonth(ref))
				}
			}
		}
	}
}

func TestMonthGrid_MonthStartingOnWeekStart(t *testing.T) {
	// September 2024 starts on a Sunday: the grid begins on the 1st and pads
	// two trailing weeks.
	e := fixedEngine(at(2000, time.January, 1, 0, 0))
	days := e.MonthGrid(date(2024, time.September, 1), nil)
	if got := DateKey(days[0].Date); got != "2024-09-01" {
		t.Errorf("first = %s, want 2024-09-01", got)
	}
	if got := DateKey(days[41].Date); got != "2024-10-12" {
		t.Errorf("last = %s, want 2024-10-12", got)
	}
}

func TestMonthGrid_AssignsEvents(t *testing.T) {
	e := fixedEngine(at(2000, time.January, 1, 0, 0))
	events := []models.Event{
		{ID: "a", Fields: models.Fields{Title: "Single", Start: at(2024, time.March, 10, 9, 0), End: at(2024, time.March, 10, 10, 0)}},
		{ID: "b", Fields: models.Fields{Title: "Span", Start: at(2024, time.March, 12, 22, 0), End: at(2024, time.March, 14, 8, 0)}},
		{ID: "c", Fields: models.Fields{Title: "Midnight", Start: at(2024, time.March, 20, 23, 0), End: at(2024, time.March, 21, 0, 0)}},
	}
	days := e.MonthGrid(date(2024, time.March, 1), events)

	byKey := map[string][]string{}
	for _, d := range days {
		for _, ev := range d.Events {
			byKey[DateKey(d.Date)] = append(byKey[DateKey(d.Date)], ev.ID)
		}
	}
	checks := map[string]int{
		"2024-03-10": 1,
		"2024-03-12": 1,
		"2024-03-13": 1,
		"2024-03-14": 1,
		"2024-03-15": 0,
		"2024-03-20": 1,
		"2024-03-21": 0,
	}
	for key, want := range checks {
		if got := len(byKey[key]); got != want {
			t.Errorf("%s: %d events %v, want %d", key, got, byKey[key], want)
		}
	}
}

func TestMonthGrid_CellsDoNotAliasEvents(t *testing.T) {
	e := fixedEngine(at(2000, time.January, 1, 0, 0))
	events := []models.Event{
		{ID: "a", Fields: models.Fields{Title: "One", Start: at(2024, time.March, 10, 9, 0), End: at(2024, time.March, 10, 10, 0), Attendees: []string{"x"}}},
	}
	days := e.MonthGrid(date(2024, time.March, 1), events)
	for _, d := range days {
		for i := range d.Events {
			d.Events[i].Title = "changed"
			d.Events[i].Attendees[0] = "y"
		}
	}
	if events[0].Title != "One" || events[0].Attendees[0] != "x" {
		t.Errorf("source mutated: %+v", events[0])
	}
}

func TestWeekdayNames(t *testing.T) {
	e := NewEngine(WithWeekStart(time.Monday))
	long := e.WeekdayNames(false)
	short := e.WeekdayNames(true)
	if long[0] != "Monday" || long[6] != "Sunday" {
		t.Errorf("long = %v", long)
	}
	if short[0] != "Mon" || short[6] != "Sun" {
		t.Errorf("short = %v", short)
	}
}

func TestYearMonths(t *testing.T) {
	e := fixedEngine(at(2024, time.May, 3, 8, 0))
	events := []models.Event{
		{ID: "a", Fields: models.Fields{Start: at(2024, time.May, 1, 9, 0), End: at(2024, time.May, 1, 10, 0)}},
		{ID: "b", Fields: models.Fields{Start: at(2024, time.May, 30, 9, 0), End: at(2024, time.May, 30, 10, 0)}},
		{ID: "c", Fields: models.Fields{Start: at(2023, time.May, 30, 9, 0), End: at(2023, time.May, 30, 10, 0)}},
	}
	months := e.YearMonths(date(2024, time.July, 4), events)
	if len(months) != 12 {
		t.Fatalf("len = %d, want 12", len(months))
	}
	may := months[4]
	if may.Name != "May" || may.EventCount != 2 || !may.IsCurrentMonth {
		t.Errorf("may = %+v", may)
	}
	if months[6].IsCurrentMonth {
		t.Error("july should not be current month")
	}
}

func TestHourLabelsAndTimeSlots(t *testing.T) {
	labels := HourLabels()
	if len(labels) != 24 || labels[0] != "12:00 AM" || labels[13] != "1:00 PM" {
		t.Errorf("labels = %v", labels)
	}

	slots := TimeSlots(date(2024, time.March, 10), 9, 11, 30)
	if len(slots) != 4 {
		t.Fatalf("len = %d, want 4", len(slots))
	}
	if got := slots[3].Format("15:04"); got != "10:30" {
		t.Errorf("last slot = %s, want 10:30", got)
	}
	if got := len(TimeSlots(date(2024, time.March, 10), 0, 0, 0)); got != 24 {
		t.Errorf("default slots = %d, want 24", got)
	}
}
