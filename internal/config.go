package internal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/dagaz/internal/clock"
	"github.com/starford/dagaz/internal/index"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Week starts.
const (
	WeekStartSunday = "sunday"
	WeekStartMonday = "monday"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Calendar CalendarConfig    `yaml:"calendar"`
	Index    IndexConfig       `yaml:"index"`
	Auth     AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Calendar.Validate(); err != nil {
		return err
	}
	if err := c.Index.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// CalendarConfig controls the date engine, the seed set and the clock.
//
// Seed loads the built-in sample events at start unless SeedFile names a
// YAML or .ics file to load instead. With WatchSeed the file is reloaded
// whenever it changes.
type CalendarConfig struct {
	WeekStart string `yaml:"week_start"`
	Timezone  string `yaml:"timezone"`
	Seed      bool   `yaml:"seed"`
	SeedFile  string `yaml:"seed_file"`
	WatchSeed bool   `yaml:"watch_seed"`
	Tick      string `yaml:"tick"`
}

// Validate validates the calendar configuration.
func (c *CalendarConfig) Validate() error {
	c.WeekStart = strings.ToLower(c.WeekStart)
	if c.WeekStart == "" {
		c.WeekStart = WeekStartSunday
	}
	if c.Tick == "" {
		c.Tick = clock.DefaultSpec
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.WeekStart, validation.In(WeekStartSunday, WeekStartMonday)),
		validation.Field(&c.Timezone, validation.By(func(any) error {
			_, err := c.Location()
			return err
		})),
		validation.Field(&c.Tick, validation.By(func(any) error { return clock.Validate(c.Tick) })),
	); err != nil {
		return err
	}
	if c.WatchSeed && c.SeedFile == "" {
		return fmt.Errorf("calendar: watch_seed requires seed_file")
	}
	return nil
}

// Weekday returns the configured first day of the week.
func (c *CalendarConfig) Weekday() time.Weekday {
	if c.WeekStart == WeekStartMonday {
		return time.Monday
	}
	return time.Sunday
}

// Location resolves Timezone. An empty value means the host zone.
func (c *CalendarConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// IndexConfig holds the SQLite search index configuration.
type IndexConfig struct {
	DSN string `yaml:"dsn"`
}

// Validate validates the index configuration.
func (c *IndexConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DSN, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Calendar: CalendarConfig{
			WeekStart: WeekStartSunday,
			Seed:      true,
			Tick:      clock.DefaultSpec,
		},
		Index: IndexConfig{
			DSN: index.MemoryDSN,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
