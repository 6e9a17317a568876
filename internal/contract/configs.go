package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dailyq/dailyq/schema"
)

// DateFormat is the layout of dates in the log and of the --today flag.
const (
	DateFormat  = "2006/01/02"
	TodayFormat = "2006-01-02"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a report.
// This struct remains the "final, validated" config.
type Config struct {
	Source     string // Path to a log file (tolerant parsing)
	SourceText string // Literal log text (strict parsing)

	Today time.Time // Reference date, midnight UTC

	Days           int // Day-view window, >= 1
	Months         int // Month window as requested, 1..12
	LookbackMonths int // Months - 1, used for the retention cutoff

	ScoreRange schema.Range
	Scale      schema.Range

	QuestionPrefix string
	Multiplier     float64
	OnlyDecimals   bool
	Censor         bool

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SourcePath string
	// Set by commands that receive the source per request
	SourceOptional bool

	Text         string  `mapstructure:"text"`
	Today        string  `mapstructure:"today"`
	Days         int     `mapstructure:"days"`
	Months       int     `mapstructure:"months"`
	ScoreRange   string  `mapstructure:"score-range"`
	Scale        string  `mapstructure:"scale"`
	Prefix       string  `mapstructure:"prefix"`
	Multiplier   float64 `mapstructure:"multiplier"`
	OnlyDecimals bool    `mapstructure:"only-decimals"`
	Censor       bool    `mapstructure:"censor"`

	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := processSource(cfg, input); err != nil {
		return err
	}
	if err := processToday(cfg, input, time.Now()); err != nil {
		return err
	}
	if err := processWindows(cfg, input); err != nil {
		return err
	}
	if err := processScores(cfg, input); err != nil {
		return err
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	return validateHistoryBackend(cfg, input)
}

// processSource checks that exactly one log source was given.
func processSource(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = strings.TrimSpace(input.SourcePath)
	cfg.SourceText = input.Text
	switch {
	case cfg.Source == "" && cfg.SourceText == "" && !input.SourceOptional:
		return fmt.Errorf("a log file path or --text is required")
	case cfg.Source != "" && cfg.SourceText != "":
		return fmt.Errorf("cannot use both a log file path (%s) and --text", cfg.Source)
	}
	return nil
}

// processToday resolves the reference date, defaulting to the local date of now.
func processToday(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if input.Today == "" {
		cfg.Today = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	}
	t, err := time.Parse(TodayFormat, strings.TrimSpace(input.Today))
	if err != nil {
		return fmt.Errorf("invalid --today value '%s'. Expected YYYY-MM-DD: %w", input.Today, err)
	}
	cfg.Today = t
	return nil
}

// processWindows applies the defaulting and clamping rules of both lookback knobs.
func processWindows(cfg *Config, input *ConfigRawInput) error {
	cfg.Days = input.Days
	if cfg.Days <= 0 {
		cfg.Days = schema.DefaultDays
	}

	cfg.Months = min(max(input.Months, 1), schema.MaxMonths)
	cfg.LookbackMonths = cfg.Months - 1
	return nil
}

// processScores parses the score range, display scale and bar multiplier.
func processScores(cfg *Config, input *ConfigRawInput) error {
	scoreRange, err := ParseRange(input.ScoreRange, schema.Range{Min: schema.DefaultScoreMin, Max: schema.DefaultScoreMax})
	if err != nil {
		return fmt.Errorf("invalid --score-range: %w", err)
	}
	cfg.ScoreRange = scoreRange

	scale, err := ParseRange(input.Scale, schema.Range{Min: schema.DefaultScaleMin, Max: schema.DefaultScaleMax})
	if err != nil {
		return fmt.Errorf("invalid --scale: %w", err)
	}
	cfg.Scale = scale

	if input.Multiplier < 0 {
		return fmt.Errorf("multiplier cannot be negative (received %g)", input.Multiplier)
	}
	cfg.Multiplier = input.Multiplier
	return nil
}

// validateSimpleInputs transfers and validates presentation fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.QuestionPrefix = input.Prefix
	cfg.OnlyDecimals = input.OnlyDecimals
	cfg.Censor = input.Censor
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be html, text, json, csv", input.Output)
	}
	return nil
}

// validateHistoryBackend validates the optional report history configuration.
func validateHistoryBackend(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// ReportOverrides holds per-request settings that replace parts of a validated Config.
// Zero values keep the Config as it is.
type ReportOverrides struct {
	Source string
	Text   string
	Today  string
	Days   int
	Months int
}

// RevalidateReport applies overrides to cfg and re-runs the source and window rules.
func RevalidateReport(cfg *Config, o ReportOverrides) error {
	if o.Source != "" || o.Text != "" {
		if err := processSource(cfg, &ConfigRawInput{SourcePath: o.Source, Text: o.Text}); err != nil {
			return err
		}
	}
	if o.Today != "" {
		if err := processToday(cfg, &ConfigRawInput{Today: o.Today}, time.Now()); err != nil {
			return err
		}
	}
	if o.Days < 0 || o.Months < 0 {
		return fmt.Errorf("days and months cannot be negative (received %d, %d)", o.Days, o.Months)
	}
	if o.Days > 0 {
		cfg.Days = o.Days
	}
	if o.Months > 0 {
		cfg.Months = min(o.Months, schema.MaxMonths)
		cfg.LookbackMonths = cfg.Months - 1
	}
	if cfg.Source == "" && cfg.SourceText == "" {
		return fmt.Errorf("a log file path or text is required")
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseRange parses a string like "0,1" into a Range. An empty string yields def.
func ParseRange(s string, def schema.Range) (schema.Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return schema.Range{}, fmt.Errorf("invalid range format '%s', expected 'lo,hi'", s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return schema.Range{}, fmt.Errorf("invalid lower bound '%s': %w", parts[0], err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return schema.Range{}, fmt.Errorf("invalid upper bound '%s': %w", parts[1], err)
	}
	if lo >= hi {
		return schema.Range{}, fmt.Errorf("lower bound %g must be below upper bound %g", lo, hi)
	}
	return schema.Range{Min: lo, Max: hi}, nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
