package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for report history.
	DatabaseBackend string

	// ViewName identifies which report view produced a history run.
	ViewName string

	// Band represents the classification of a normalized score.
	Band string
)

// All output modes supported.
const (
	HTMLOut OutputMode = "html" // default
	TextOut OutputMode = "text"
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All report views.
const (
	DaysView   ViewName = "days"
	MonthsView ViewName = "months"
	StatsView  ViewName = "stats"
	TrendView  ViewName = "trend"
	ReportView ViewName = "report"
)

// Score bands.
const (
	BadBand     Band = "bad"
	NeutralBand Band = "neutral"
	GoodBand    Band = "good"
)

// Smileys shown per band.
const (
	BadSmiley     = ":("
	NeutralSmiley = ":|"
	GoodSmiley    = ":)"
)

// HTML colors used by the markup renderer.
const (
	WarningColor = "#ff9900"
	DefaultColor = "black"
	SuccessColor = "#00AF00"
)

// Default values for the report knobs.
const (
	DefaultDays           = 10
	DefaultMonths         = 2
	MaxMonths             = 12
	DefaultScoreMin       = 0.0
	DefaultScoreMax       = 1.0
	DefaultScaleMin       = 0.0
	DefaultScaleMax       = 100.0
	DefaultMultiplier     = 20.0
	DefaultQuestionPrefix = "Did I do my best to..."
	CensorMask            = '*'
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	HTMLOut: {},
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidViews lists all views that can be requested.
var ValidViews = map[ViewName]struct{}{
	DaysView:   {},
	MonthsView: {},
	StatsView:  {},
	TrendView:  {},
	ReportView: {},
}
