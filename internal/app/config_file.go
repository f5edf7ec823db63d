package app

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"
    "time"

    yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
    Format  string `yaml:"format" json:"format"`
    PDF     string `yaml:"pdf" json:"pdf"`
    NoColor *bool  `yaml:"noColor" json:"noColor"`
    Verbose *bool  `yaml:"verbose" json:"verbose"`

    Fetch struct {
        UserAgent string `yaml:"userAgent" json:"userAgent"`
        // Timeout is a Go duration string such as "15s"; "0" disables it.
        Timeout string `yaml:"timeout" json:"timeout"`
        Retries *int   `yaml:"retries" json:"retries"`
    } `yaml:"fetch" json:"fetch"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := filepath.Ext(path); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays every value the file sets onto cfg. Callers apply
// environment overrides and explicit flags afterwards, so the file only
// replaces defaults.
func ApplyFileConfig(cfg *Config, fc FileConfig) error {
    if cfg == nil { return nil }

    if fc.Format != "" { cfg.Format = fc.Format }
    if fc.PDF != "" { cfg.PDFPath = fc.PDF }
    if fc.NoColor != nil { cfg.NoColor = *fc.NoColor }
    if fc.Verbose != nil { cfg.Verbose = *fc.Verbose }

    if fc.Fetch.UserAgent != "" { cfg.UserAgent = fc.Fetch.UserAgent }
    if s := strings.TrimSpace(fc.Fetch.Timeout); s != "" {
        d, err := time.ParseDuration(s)
        if err != nil {
            return fmt.Errorf("config: fetch.timeout: %w", err)
        }
        cfg.Timeout = d
    }
    if fc.Fetch.Retries != nil { cfg.Retries = *fc.Fetch.Retries }
    return nil
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
    switch cfg.Format {
    case FormatTable, FormatJSON:
    default:
        return fmt.Errorf("config: unknown format %q (want %s or %s)", cfg.Format, FormatTable, FormatJSON)
    }
    if cfg.Timeout < 0 {
        return errors.New("config: timeout must not be negative")
    }
    if cfg.Retries < 0 {
        return errors.New("config: retries must not be negative")
    }
    if strings.TrimSpace(cfg.UserAgent) == "" {
        return errors.New("config: user agent is required")
    }
    return nil
}
