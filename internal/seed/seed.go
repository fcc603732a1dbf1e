// Package seed provides the initial event set loaded at process start.
package seed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/dagaz/internal/icalfeed"
	"github.com/starford/dagaz/internal/models"
)

// File is the YAML layout of a seed file.
type File struct {
	Events []models.Fields `yaml:"events"`
}

// Default returns the built-in sample events positioned relative to now.
func Default(now time.Time) []models.Fields {
	day := 24 * time.Hour
	return []models.Fields{
		{
			Title:       "Team Meeting",
			Start:       now,
			End:         now.Add(day),
			Category:    models.CategoryPrimary,
			Description: "Weekly team sync",
			Location:    "Conference Room A",
		},
		{
			Title:       "Product Launch",
			Start:       now.Add(2 * day),
			End:         now.Add(2 * day),
			Category:    models.CategorySuccess,
			Description: "New product line release",
			Location:    "Main Auditorium",
		},
		{
			Title:       "Client Presentation",
			Start:       now.Add(4 * day),
			End:         now.Add(4 * day),
			Category:    models.CategoryWarning,
			Description: "Quarterly results",
			Location:    "Client Office",
		},
		{
			Title:       "Design Review",
			Start:       now.Add(-day),
			End:         now.Add(-day),
			Category:    models.CategorySecondary,
			Description: "UI/UX updates",
			Location:    "Design Lab",
		},
		{
			Title:       "Code Sprint",
			Start:       now.Add(7 * day),
			End:         now.Add(8 * day),
			Category:    models.CategoryInfo,
			Description: "Feature development",
			Location:    "Engineering Wing",
		},
	}
}

// Load reads a seed file. Files ending in .ics are parsed as iCalendar with
// dates in loc; anything else as YAML. Every returned entry passes
// validation.
func Load(path string, loc *time.Location) ([]models.Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}

	var fields []models.Fields
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ics", ".ical":
		fields, _, err = icalfeed.Import(strings.NewReader(string(data)), loc)
		if err != nil {
			return nil, fmt.Errorf("seed: %s: %w", path, err)
		}
	default:
		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("seed: parse %s: %w", path, err)
		}
		fields = f.Events
	}

	var errs []error
	for i := range fields {
		fields[i].Title = strings.TrimSpace(fields[i].Title)
		if fields[i].Category == "" {
			fields[i].Category = models.CategoryPrimary
		}
		if err := fields[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("event %d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("seed: %s: %w", path, errors.Join(errs...))
	}
	return fields, nil
}
