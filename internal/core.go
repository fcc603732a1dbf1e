package internal

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/eventservice"
	"github.com/starford/dagaz/internal/eventstore"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/metrics"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/seed"
)

// core is the state shared by every entry point: the store, the date engine,
// the search index and the service over them.
type core struct {
	cfg    *Config
	logger *slog.Logger
	engine *calendar.Engine
	store  *eventstore.Store
	db     *index.DB
	svc    *eventservice.Service
}

func newApplication(opts []Option) (*application, error) {
	app := &application{out: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// newCore opens the index, subscribes it to the store and loads the seed set.
func newCore(app *application, logger *slog.Logger) (*core, error) {
	cfg := app.config

	loc, err := cfg.Calendar.Location()
	if err != nil {
		return nil, fmt.Errorf("calendar timezone: %w", err)
	}
	engineOpts := []calendar.Option{
		calendar.WithWeekStart(cfg.Calendar.Weekday()),
		calendar.WithLocation(loc),
	}
	if app.now != nil {
		engineOpts = append(engineOpts, calendar.WithClock(app.now))
	}
	engine := calendar.NewEngine(engineOpts...)

	db, err := index.Open(cfg.Index.DSN)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}

	store := eventstore.New()
	store.Subscribe(index.Listener(db, logger))
	store.Subscribe(metrics.StoreListener(store.Len))

	c := &core{
		cfg:    cfg,
		logger: logger,
		engine: engine,
		store:  store,
		db:     db,
		svc:    eventservice.NewService(store, engine, db),
	}

	fields, err := c.seedSet()
	if err != nil {
		db.Close()
		return nil, err
	}
	events := store.Reset(fields)
	logger.Info("seed loaded", slog.Int("events", len(events)), slog.String("seed_file", cfg.Calendar.SeedFile))
	return c, nil
}

func (c *core) seedSet() ([]models.Fields, error) {
	switch {
	case c.cfg.Calendar.SeedFile != "":
		return seed.Load(c.cfg.Calendar.SeedFile, c.engine.Location())
	case c.cfg.Calendar.Seed:
		return seed.Default(c.engine.Now()), nil
	default:
		return nil, nil
	}
}

func (c *core) Close() error {
	return c.db.Close()
}

func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
}
