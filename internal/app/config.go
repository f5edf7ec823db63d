package app

import "time"

// Output formats for the score report.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config holds runtime configuration for the application.
type Config struct {
	// Output
	Format  string
	PDFPath string
	NoColor bool

	// Remote fetch
	UserAgent string
	Timeout   time.Duration
	Retries   int

	Verbose bool
}

// DefaultConfig returns the settings used when neither flags, environment
// nor a config file say otherwise.
func DefaultConfig() Config {
	return Config{
		Format:    FormatTable,
		UserAgent: defaultUserAgent(),
		Timeout:   30 * time.Second,
	}
}

func defaultUserAgent() string {
	return "gosentiment/" + BuildVersion + " (+https://github.com/hyperifyio/gosentiment)"
}
