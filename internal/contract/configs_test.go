package contract

import (
	"testing"
	"time"

	"github.com/dailyq/dailyq/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		SourcePath: "questions.txt",
		Today:      "2024-03-15",
		Days:       10,
		Months:     2,
		ScoreRange: "0,1",
		Scale:      "0,100",
		Prefix:     schema.DefaultQuestionPrefix,
		Multiplier: schema.DefaultMultiplier,
		Output:     "html",
		Color:      "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:        "valid minimal config",
			mutate:      func(*ConfigRawInput) {},
			expectError: false,
		},
		{
			name: "missing source",
			mutate: func(in *ConfigRawInput) {
				in.SourcePath = ""
			},
			expectError: true,
		},
		{
			name: "missing source allowed for per-request commands",
			mutate: func(in *ConfigRawInput) {
				in.SourcePath = ""
				in.SourceOptional = true
			},
			expectError: false,
		},
		{
			name: "both file and text",
			mutate: func(in *ConfigRawInput) {
				in.Text = "2024/01/01|q|1"
			},
			expectError: true,
		},
		{
			name: "text only",
			mutate: func(in *ConfigRawInput) {
				in.SourcePath = ""
				in.Text = "2024/01/01|q|1"
			},
			expectError: false,
		},
		{
			name: "invalid today",
			mutate: func(in *ConfigRawInput) {
				in.Today = "15/03/2024"
			},
			expectError: true,
		},
		{
			name: "inverted score range",
			mutate: func(in *ConfigRawInput) {
				in.ScoreRange = "1,0"
			},
			expectError: true,
		},
		{
			name: "malformed scale",
			mutate: func(in *ConfigRawInput) {
				in.Scale = "100"
			},
			expectError: true,
		},
		{
			name: "negative multiplier",
			mutate: func(in *ConfigRawInput) {
				in.Multiplier = -1
			},
			expectError: true,
		},
		{
			name: "invalid output",
			mutate: func(in *ConfigRawInput) {
				in.Output = "pdf"
			},
			expectError: true,
		},
		{
			name: "invalid color",
			mutate: func(in *ConfigRawInput) {
				in.Color = "maybe"
			},
			expectError: true,
		},
		{
			name: "invalid history backend",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "mongodb"
			},
			expectError: true,
		},
		{
			name: "mysql backend without connection string",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = string(schema.MySQLBackend)
			},
			expectError: true,
		},
		{
			name: "mysql backend with connection string",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = string(schema.MySQLBackend)
				in.HistoryDBConnect = "user:pass@tcp(localhost:3306)/dailyq"
			},
			expectError: false,
		},
		{
			name: "postgresql backend without dbname",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = string(schema.PostgreSQLBackend)
				in.HistoryDBConnect = "host=localhost"
			},
			expectError: true,
		},
		{
			name: "none backend",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = string(schema.NoneBackend)
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err, "ProcessAndValidate should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "ProcessAndValidate should not return an error for %s", tt.name)
			}
		})
	}
}

func TestProcessAndValidatePopulatesConfig(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, "questions.txt", cfg.Source)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), cfg.Today)
	assert.Equal(t, 10, cfg.Days)
	assert.Equal(t, 2, cfg.Months)
	assert.Equal(t, 1, cfg.LookbackMonths)
	assert.Equal(t, schema.Range{Min: 0, Max: 1}, cfg.ScoreRange)
	assert.Equal(t, schema.Range{Min: 0, Max: 100}, cfg.Scale)
	assert.Equal(t, schema.HTMLOut, cfg.Output)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.DatabaseBackend(""), cfg.HistoryBackend)
}

func TestProcessWindows(t *testing.T) {
	tests := []struct {
		name           string
		days, months   int
		expectDays     int
		expectMonths   int
		expectLookback int
	}{
		{"defaults kept", 10, 2, 10, 2, 1},
		{"zero days defaults to ten", 0, 2, 10, 2, 1},
		{"negative days defaults to ten", -4, 2, 10, 2, 1},
		{"months clamped low", 30, 0, 30, 1, 0},
		{"months clamped high", 30, 20, 30, 12, 11},
		{"months upper edge", 30, 12, 30, 12, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			require.NoError(t, processWindows(cfg, &ConfigRawInput{Days: tt.days, Months: tt.months}))
			assert.Equal(t, tt.expectDays, cfg.Days)
			assert.Equal(t, tt.expectMonths, cfg.Months)
			assert.Equal(t, tt.expectLookback, cfg.LookbackMonths)
		})
	}
}

func TestProcessTodayDefaultsToNow(t *testing.T) {
	cfg := &Config{}
	now := time.Date(2024, 6, 9, 18, 30, 0, 0, time.Local)
	require.NoError(t, processToday(cfg, &ConfigRawInput{}, now))
	assert.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), cfg.Today)
}

func TestParseRange(t *testing.T) {
	def := schema.Range{Min: 0, Max: 1}

	tests := []struct {
		name        string
		input       string
		expected    schema.Range
		expectError bool
	}{
		{"empty uses default", "", def, false},
		{"integers", "1,10", schema.Range{Min: 1, Max: 10}, false},
		{"spaces and decimals", " 0.5 , 4.5 ", schema.Range{Min: 0.5, Max: 4.5}, false},
		{"negative lower bound", "-5,5", schema.Range{Min: -5, Max: 5}, false},
		{"single value", "5", schema.Range{}, true},
		{"too many values", "1,2,3", schema.Range{}, true},
		{"not a number", "a,b", schema.Range{}, true},
		{"equal bounds", "3,3", schema.Range{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.input, def)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r)
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Days: 10, Scale: schema.Range{Min: 0, Max: 100}}
	clone := cfg.Clone()
	clone.Days = 30

	assert.Equal(t, 10, cfg.Days)
	assert.Equal(t, 30, clone.Days)
	assert.Equal(t, cfg.Scale, clone.Scale)
}

func TestRevalidateReport(t *testing.T) {
	base := func() *Config {
		return &Config{Source: "questions.txt", Days: 10, Months: 2, LookbackMonths: 1, Today: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}
	}

	tests := []struct {
		name        string
		overrides   ReportOverrides
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:      "no overrides",
			overrides: ReportOverrides{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "questions.txt", cfg.Source)
				assert.Equal(t, 10, cfg.Days)
			},
		},
		{
			name:      "text replaces file",
			overrides: ReportOverrides{Text: "2024/03/01|q|1"},
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.Source)
				assert.Equal(t, "2024/03/01|q|1", cfg.SourceText)
			},
		},
		{
			name:        "file and text together",
			overrides:   ReportOverrides{Source: "a.txt", Text: "x"},
			expectError: true,
		},
		{
			name:      "windows clamp months",
			overrides: ReportOverrides{Days: 30, Months: 20, Today: "2024-01-31"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 30, cfg.Days)
				assert.Equal(t, 12, cfg.Months)
				assert.Equal(t, 11, cfg.LookbackMonths)
				assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), cfg.Today)
			},
		},
		{
			name:        "bad today",
			overrides:   ReportOverrides{Today: "yesterday"},
			expectError: true,
		},
		{
			name:        "negative days",
			overrides:   ReportOverrides{Days: -1},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			err := RevalidateReport(cfg, tt.overrides)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
