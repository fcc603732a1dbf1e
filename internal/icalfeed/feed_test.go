package icalfeed

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/models"
)

func intPtr(n int) *int { return &n }

func TestRRule(t *testing.T) {
	until := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		rec  *models.Recurrence
		want []string
	}{
		{"nil", nil, nil},
		{"weekly", &models.Recurrence{Type: models.RecurWeekly, Interval: 2}, []string{"FREQ=WEEKLY", "INTERVAL=2"}},
		{"count", &models.Recurrence{Type: models.RecurDaily, Interval: 1, Count: intPtr(5)}, []string{"FREQ=DAILY", "COUNT=5"}},
		{"until", &models.Recurrence{Type: models.RecurMonthly, Interval: 1, EndDate: &until}, []string{"FREQ=MONTHLY", "UNTIL=20240601T000000Z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RRule(tt.rec)
			if err != nil {
				t.Fatalf("RRule: %v", err)
			}
			if tt.want == nil && got != "" {
				t.Errorf("got = %q, want empty", got)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("got = %q, want it to contain %q", got, w)
				}
			}
		})
	}
}

func TestRRule_UnknownType(t *testing.T) {
	if _, err := RRule(&models.Recurrence{Type: "hourly", Interval: 1}); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestParseRRule(t *testing.T) {
	rec, err := ParseRRule("FREQ=YEARLY;INTERVAL=3;COUNT=4", time.UTC)
	if err != nil {
		t.Fatalf("ParseRRule: %v", err)
	}
	if rec.Type != models.RecurYearly || rec.Interval != 3 || rec.Count == nil || *rec.Count != 4 {
		t.Errorf("rec = %+v", rec)
	}

	rec, err = ParseRRule("FREQ=DAILY", time.UTC)
	if err != nil {
		t.Fatalf("ParseRRule: %v", err)
	}
	if rec.Interval != 1 {
		t.Errorf("default interval = %d, want 1", rec.Interval)
	}

	if _, err := ParseRRule("FREQ=HOURLY", time.UTC); err == nil {
		t.Error("expected error for hourly frequency")
	}
}

func TestParseRRule_UntilInLocation(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	rec, err := ParseRRule("FREQ=WEEKLY;UNTIL=20240601T000000Z", est)
	if err != nil {
		t.Fatalf("ParseRRule: %v", err)
	}
	if rec.EndDate == nil || rec.EndDate.Location() != est {
		t.Fatalf("until = %v, want it in EST", rec.EndDate)
	}
	if !rec.EndDate.Equal(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("until = %v", rec.EndDate)
	}
}

func sampleEvents() []models.Event {
	start := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	return []models.Event{
		{ID: "ev-1", Fields: models.Fields{
			Title:       "Team Meeting",
			Start:       start,
			End:         start.Add(90 * time.Minute),
			Location:    "Conference Room A",
			Description: "Weekly team sync",
			Category:    models.CategoryWarning,
			Attendees:   []string{"alice@example.com"},
			Recurrence:  &models.Recurrence{Type: models.RecurWeekly, Interval: 1},
		}},
		{ID: "ev-2", Fields: models.Fields{
			Title:    "Holiday",
			Start:    time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC),
			AllDay:   true,
			Category: models.CategorySuccess,
		}},
	}
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	stamp := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if err := Export(&buf, sampleEvents(), time.UTC, stamp); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"PRODID:" + ProductID,
		"UID:ev-1",
		"SUMMARY:Team Meeting",
		"DTSTART:20240310T090000Z",
		"DTEND:20240310T103000Z",
		"LOCATION:Conference Room A",
		"CATEGORIES:warning",
		"mailto:alice@example.com",
		"FREQ=WEEKLY",
		"SUMMARY:Holiday",
		"DTSTART;VALUE=DATE:20240312",
		"DTEND;VALUE=DATE:20240313",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q in:\n%s", want, out)
		}
	}
}

func TestExport_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, nil, time.UTC, time.Now()); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), "END:VCALENDAR") {
		t.Errorf("got = %q", buf.String())
	}
}

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:a\r\n" +
	"SUMMARY:Design Review\r\n" +
	"DTSTART:20240310T140000Z\r\n" +
	"DTEND:20240310T150000Z\r\n" +
	"LOCATION:Design Lab\r\n" +
	"CATEGORIES:SECONDARY\r\n" +
	"ATTENDEE:mailto:bob@example.com\r\n" +
	"RRULE:FREQ=WEEKLY;INTERVAL=2\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:b\r\n" +
	"SUMMARY:Offsite\r\n" +
	"DTSTART;VALUE=DATE:20240311\r\n" +
	"DTEND;VALUE=DATE:20240313\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:c\r\n" +
	"DTSTART:20240310T140000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImport(t *testing.T) {
	fields, skipped, err := Import(strings.NewReader(sampleICS), time.UTC)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(fields) != 2 {
		t.Fatalf("len = %d, want 2", len(fields))
	}

	review := fields[0]
	if review.Title != "Design Review" || review.Location != "Design Lab" {
		t.Errorf("review = %+v", review)
	}
	if !review.Start.Equal(time.Date(2024, time.March, 10, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", review.Start)
	}
	if review.End.Sub(review.Start) != time.Hour {
		t.Errorf("duration = %v, want 1h", review.End.Sub(review.Start))
	}
	if review.Category != models.CategorySecondary {
		t.Errorf("category = %q, want secondary", review.Category)
	}
	if len(review.Attendees) != 1 || review.Attendees[0] != "bob@example.com" {
		t.Errorf("attendees = %v", review.Attendees)
	}
	if review.Recurrence == nil || review.Recurrence.Type != models.RecurWeekly || review.Recurrence.Interval != 2 {
		t.Errorf("recurrence = %+v", review.Recurrence)
	}
	if err := review.Validate(); err != nil {
		t.Errorf("imported fields should validate: %v", err)
	}

	offsite := fields[1]
	if !offsite.AllDay {
		t.Error("offsite should be all day")
	}
	if offsite.Start.Day() != 11 || offsite.End.Day() != 12 {
		t.Errorf("offsite = %v .. %v, want the 11th through the 12th", offsite.Start, offsite.End)
	}
	if offsite.Category != models.CategoryPrimary {
		t.Errorf("default category = %q", offsite.Category)
	}
}

func TestImport_Malformed(t *testing.T) {
	if _, _, err := Import(strings.NewReader("not a calendar"), time.UTC); err == nil {
		t.Error("expected parse error")
	}
}

const zonedICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:h\r\n" +
	"SUMMARY:Holiday\r\n" +
	"DTSTART;VALUE=DATE:20240312\r\n" +
	"DTEND;VALUE=DATE:20240313\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:f\r\n" +
	"SUMMARY:Standup\r\n" +
	"DTSTART:20240311T090000\r\n" +
	"DTEND:20240311T091500\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:u\r\n" +
	"SUMMARY:Call\r\n" +
	"DTSTART:20240311T030000Z\r\n" +
	"DTEND:20240311T040000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImport_CalendarZone(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	fields, _, err := Import(strings.NewReader(zonedICS), est)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("len = %d, want 3", len(fields))
	}

	holiday := fields[0]
	if want := time.Date(2024, time.March, 12, 0, 0, 0, 0, est); !holiday.Start.Equal(want) {
		t.Errorf("holiday start = %v, want %v", holiday.Start, want)
	}
	if want := time.Date(2024, time.March, 12, 23, 59, 59, 0, est); !holiday.End.Equal(want) {
		t.Errorf("holiday end = %v, want %v", holiday.End, want)
	}
	events := []models.Event{{ID: "h", Fields: holiday}}
	for day, want := range map[int]int{11: 0, 12: 1, 13: 0} {
		got := calendar.EventsOn(events, time.Date(2024, time.March, day, 0, 0, 0, 0, est))
		if len(got) != want {
			t.Errorf("March %d: %d events, want %d", day, len(got), want)
		}
	}

	standup := fields[1]
	if want := time.Date(2024, time.March, 11, 9, 0, 0, 0, est); !standup.Start.Equal(want) {
		t.Errorf("floating start = %v, want %v", standup.Start, want)
	}

	call := fields[2]
	if call.Start.Location() != est || call.Start.Day() != 10 || call.Start.Hour() != 22 {
		t.Errorf("utc start = %v, want 22:00 on the 10th in EST", call.Start)
	}
}

func TestExport_AllDayRoundTrip(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	events := []models.Event{
		{ID: "one", Fields: models.Fields{
			Title:    "Holiday",
			Start:    time.Date(2024, time.March, 12, 0, 0, 0, 0, est),
			End:      time.Date(2024, time.March, 13, 0, 0, 0, 0, est),
			AllDay:   true,
			Category: models.CategoryPrimary,
		}},
		{ID: "two", Fields: models.Fields{
			Title:    "Offsite",
			Start:    time.Date(2024, time.March, 14, 0, 0, 0, 0, est),
			End:      time.Date(2024, time.March, 15, 23, 59, 59, 0, est),
			AllDay:   true,
			Category: models.CategoryPrimary,
		}},
	}

	var buf bytes.Buffer
	if err := Export(&buf, events, est, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"DTSTART;VALUE=DATE:20240312",
		"DTEND;VALUE=DATE:20240313",
		"DTSTART;VALUE=DATE:20240314",
		"DTEND;VALUE=DATE:20240316",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "DTEND;VALUE=DATE:20240314") {
		t.Errorf("midnight end exported as an extra day:\n%s", out)
	}

	fields, _, err := Import(strings.NewReader(out), est)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("len = %d, want 2", len(fields))
	}
	for i, f := range fields {
		for _, d := range []int{11, 12, 13, 14, 15, 16} {
			day := time.Date(2024, time.March, d, 0, 0, 0, 0, est)
			orig := len(calendar.EventsOn(events[i:i+1], day))
			back := len(calendar.EventsOn([]models.Event{{ID: events[i].ID, Fields: f}}, day))
			if orig != back {
				t.Errorf("%s on March %d: %d after round trip, want %d", f.Title, d, back, orig)
			}
		}
	}
}
