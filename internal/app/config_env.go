package app

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// Environment variables read by ApplyEnvOverrides.
const (
    EnvFormat    = "GOSENTIMENT_FORMAT"
    EnvPDF       = "GOSENTIMENT_PDF"
    EnvUserAgent = "GOSENTIMENT_USER_AGENT"
    EnvTimeout   = "GOSENTIMENT_TIMEOUT"
    EnvRetries   = "GOSENTIMENT_RETRIES"
    EnvConfig    = "GOSENTIMENT_CONFIG"
    EnvVerbose   = "VERBOSE"
    EnvNoColor   = "NO_COLOR"
)

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when the corresponding env vars are set. This is used to let env take
// precedence over values coming from a config file while still allowing flags
// to remain highest precedence. Malformed numbers and durations are ignored.
func ApplyEnvOverrides(cfg *Config) {
    if cfg == nil { return }

    if v := strings.TrimSpace(os.Getenv(EnvFormat)); v != "" { cfg.Format = strings.ToLower(v) }
    if v := os.Getenv(EnvPDF); v != "" { cfg.PDFPath = v }
    if v := os.Getenv(EnvUserAgent); v != "" { cfg.UserAgent = v }

    if s := os.Getenv(EnvTimeout); s != "" {
        if d, err := time.ParseDuration(s); err == nil {
            cfg.Timeout = d
        }
    }
    if s := strings.TrimSpace(os.Getenv(EnvRetries)); s != "" {
        if n, err := strconv.Atoi(s); err == nil && n >= 0 {
            cfg.Retries = n
        }
    }

    // Booleans override when env present and truthy/falsey
    setBool := func(dst *bool, envKey string) {
        if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
            switch s {
            case "1", "true", "yes", "on":
                *dst = true
            case "0", "false", "no", "off":
                *dst = false
            }
        }
    }
    setBool(&cfg.Verbose, EnvVerbose)
    // NO_COLOR disables color whenever it is present, whatever its value.
    if os.Getenv(EnvNoColor) != "" { cfg.NoColor = true }
}
