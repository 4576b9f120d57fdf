// Package constants provides shared constants for the loan-planner application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// BalanceEpsilon is the tolerance for treating a remaining loan balance
	// as fully repaid at the end of a schedule
	BalanceEpsilon = 1e-6

	// DebtToIncomeRatio is the fixed ceiling on monthly debt obligations
	// relative to net income used to bound borrowing capacity
	DebtToIncomeRatio = 0.33
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
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestBytes is the default maximum request body size for
	// JSON payloads (64 KB)
	DefaultMaxRequestBytes int64 = 64 * 1024

	// DefaultRateLimitRequests is the default number of requests allowed
	// per client per refill window
	DefaultRateLimitRequests = 60

	// DefaultCacheTTLSeconds is the default lifetime of memoized
	// amortization responses
	DefaultCacheTTLSeconds = 3600
)
