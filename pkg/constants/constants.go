// Package constants provides shared constants for the buhcalc application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of fractional digits kept for currency (kopecks)
	DecimalPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100

	// MaxAllowancePercent is the largest northern allowance a caller may request
	MaxAllowancePercent = 100

	// CurrencySymbol is appended to formatted amounts
	CurrencySymbol = "₽"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides (BUHCALC_LOGGING_LEVEL, ...)
	EnvPrefix = "BUHCALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the JSON API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// MetricsNamespace prefixes every Prometheus collector
	MetricsNamespace = "buhcalc"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 kopeck)
	CurrencyTolerance = "0.01"
)
