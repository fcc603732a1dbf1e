package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/models"
)

// PrintMonth writes the month grid containing ref (YYYY-MM-DD, empty for
// today) as a plain-text table. Days outside the month are bracketed, today
// is starred and each event-bearing day is followed by its event count.
func PrintMonth(ctx context.Context, ref string, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(app.config, io.Discard)

	c, err := newCore(app, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	day := c.engine.Today()
	if ref != "" {
		if day, err = calendar.ParseDate(ref, c.engine.Location()); err != nil {
			return fmt.Errorf("month: %w", err)
		}
	}
	view := c.svc.MonthGrid(ctx, day)
	if err := writeMonth(app.out, view.Title, view.Weekdays, view.Days); err != nil {
		return err
	}

	upcoming := c.svc.Upcoming(ctx, 0)
	if len(upcoming) == 0 {
		return nil
	}
	loc := c.engine.Location()
	fmt.Fprintln(app.out, "\nUpcoming:")
	groups := calendar.GroupByDate(upcoming, loc)
	for _, key := range calendar.SortedKeys(groups) {
		d, _ := calendar.ParseDate(key, loc)
		fmt.Fprintf(app.out, "  %s\n", d.Format("Mon Jan 2"))
		for _, ev := range groups[key] {
			fmt.Fprintf(app.out, "    %-8s %s\n", formatWhen(ev, loc), ev.Title)
		}
	}
	logger.Debug("month printed", slog.String("ref", calendar.DateKey(day)))
	return nil
}

func writeMonth(w io.Writer, title string, weekdays []string, days []models.CalendarDay) error {
	fmt.Fprintln(w, title)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(weekdays, "\t")+"\t")
	for row := 0; row < len(days)/7; row++ {
		cells := make([]string, 7)
		for i, d := range days[row*7 : row*7+7] {
			cells[i] = formatCell(d)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

func formatCell(d models.CalendarDay) string {
	cell := fmt.Sprintf("%d", d.Date.Day())
	if !d.IsCurrentMonth {
		cell = "(" + cell + ")"
	}
	if d.IsToday {
		cell += "*"
	}
	if n := len(d.Events); n > 0 {
		cell += fmt.Sprintf("+%d", n)
	}
	return cell
}

func formatWhen(ev models.Event, loc *time.Location) string {
	if ev.AllDay {
		return "all day"
	}
	return ev.Start.In(loc).Format(time.Kitchen)
}
