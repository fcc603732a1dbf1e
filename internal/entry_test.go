package internal

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg := NewDefaultConfig()
	cfg.Calendar.Timezone = "UTC"
	cfg.Index.DSN = filepath.Join(t.TempDir(), "index.db")
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func fixedClock() time.Time {
	return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func TestPrintMonth_SeedFile(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.yaml")
	seed := `events:
  - title: Launch
    start: 2024-03-14T09:00:00Z
    end: 2024-03-14T10:00:00Z
`
	if err := os.WriteFile(seedPath, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(t)
	cfg.Calendar.SeedFile = seedPath

	var out strings.Builder
	err := PrintMonth(context.Background(), "", WithConfig(cfg), WithOutput(&out), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("PrintMonth: %v", err)
	}
	text := out.String()
	for _, want := range []string{"March 2024", "Sun", "10*", "14+1", "(25)", "Upcoming:", "Launch"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestPrintMonth_MondayStart(t *testing.T) {
	cfg := testConfig(t)
	cfg.Calendar.Seed = false
	cfg.Calendar.WeekStart = WeekStartMonday

	var out strings.Builder
	if err := PrintMonth(context.Background(), "2024-02-01", WithConfig(cfg), WithOutput(&out), WithClock(fixedClock)); err != nil {
		t.Fatalf("PrintMonth: %v", err)
	}
	lines := strings.Split(out.String(), "\n")
	if lines[0] != "February 2024" {
		t.Errorf("title = %q", lines[0])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "Mon") {
		t.Errorf("header = %q, want Monday first", lines[1])
	}
	if strings.Contains(out.String(), "Upcoming:") {
		t.Error("no events means no upcoming list")
	}
}

func TestPrintMonth_CalendarZone(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.yaml")
	seed := `events:
  - title: Late Call
    start: 2024-03-14T20:00:00Z
    end: 2024-03-14T21:00:00Z
`
	if err := os.WriteFile(seedPath, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(t)
	cfg.Calendar.Timezone = "Asia/Tokyo"
	cfg.Calendar.SeedFile = seedPath

	var out strings.Builder
	err := PrintMonth(context.Background(), "2024-03-01", WithConfig(cfg), WithOutput(&out), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("PrintMonth: %v", err)
	}
	text := out.String()
	for _, want := range []string{"15+1", "Fri Mar 15", "5:00AM", "Late Call"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Thu Mar 14") {
		t.Errorf("event grouped under its UTC day:\n%s", text)
	}
}

func TestPrintMonth_Errors(t *testing.T) {
	if err := PrintMonth(context.Background(), ""); err == nil {
		t.Error("missing config should fail")
	}

	cfg := testConfig(t)
	if err := PrintMonth(context.Background(), "not-a-date", WithConfig(cfg), WithOutput(&strings.Builder{})); err == nil {
		t.Error("bad reference date should fail")
	}

	cfg = testConfig(t)
	cfg.Calendar.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")
	if err := PrintMonth(context.Background(), "", WithConfig(cfg), WithOutput(&strings.Builder{})); err == nil {
		t.Error("missing seed file should fail")
	}
}

func TestNewCore_SeedsStoreAndIndex(t *testing.T) {
	cfg := testConfig(t)
	app, err := newApplication([]Option{WithConfig(cfg), WithClock(fixedClock)})
	if err != nil {
		t.Fatal(err)
	}
	c, err := newCore(app, newLogger(cfg, &strings.Builder{}))
	if err != nil {
		t.Fatalf("newCore: %v", err)
	}
	defer c.Close()

	if c.store.Len() != 5 {
		t.Errorf("store len = %d, want 5", c.store.Len())
	}
	sums, err := c.db.AllChecksums()
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 5 {
		t.Errorf("indexed = %d, want 5", len(sums))
	}
}
