package icalfeed

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/starford/dagaz/internal/models"
)

var freqByType = map[models.RecurrenceType]rrule.Frequency{
	models.RecurDaily:   rrule.DAILY,
	models.RecurWeekly:  rrule.WEEKLY,
	models.RecurMonthly: rrule.MONTHLY,
	models.RecurYearly:  rrule.YEARLY,
}

// ROption converts a stored recurrence into an rrule option. The rule is
// only rendered; occurrences are never expanded.
func ROption(rec *models.Recurrence) (*rrule.ROption, error) {
	if rec == nil {
		return nil, nil
	}
	freq, ok := freqByType[rec.Type]
	if !ok {
		return nil, fmt.Errorf("icalfeed: unknown recurrence type %q", rec.Type)
	}
	opt := &rrule.ROption{Freq: freq, Interval: rec.Interval}
	if rec.Count != nil {
		opt.Count = *rec.Count
	}
	if rec.EndDate != nil {
		opt.Until = rec.EndDate.UTC()
	}
	return opt, nil
}

// RRule renders rec as an RRULE value such as "FREQ=WEEKLY;INTERVAL=2".
// It returns "" for a nil recurrence.
func RRule(rec *models.Recurrence) (string, error) {
	opt, err := ROption(rec)
	if err != nil || opt == nil {
		return "", err
	}
	return opt.RRuleString(), nil
}

// ParseRRule converts an RRULE value back into a recurrence with UNTIL
// expressed in loc (time.Local when nil). Frequencies other than daily,
// weekly, monthly and yearly are rejected.
func ParseRRule(s string, loc *time.Location) (*models.Recurrence, error) {
	if loc == nil {
		loc = time.Local
	}
	opt, err := rrule.StrToROption(s)
	if err != nil {
		return nil, fmt.Errorf("icalfeed: parse rrule: %w", err)
	}
	rec := &models.Recurrence{Interval: opt.Interval}
	for t, f := range freqByType {
		if f == opt.Freq {
			rec.Type = t
		}
	}
	if rec.Type == "" {
		return nil, fmt.Errorf("icalfeed: unsupported frequency %v", opt.Freq)
	}
	if rec.Interval <= 0 {
		rec.Interval = 1
	}
	if opt.Count > 0 {
		n := opt.Count
		rec.Count = &n
	}
	if !opt.Until.IsZero() {
		until := opt.Until.In(loc)
		rec.EndDate = &until
	}
	return rec, nil
}
