package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var validSources = map[string]bool{
	"rest":       true,
	"postgres":   true,
	"postgresql": true,
	"sqlite":     true,
	"sqlite3":    true,
}

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	// Validate timeout (seconds or a duration string, must be positive)
	if viper.IsSet("timeout") {
		timeout, err := durationSetting("timeout")
		if err != nil {
			errors = append(errors, fmt.Sprintf("timeout is not a duration: %q", viper.GetString("timeout")))
		} else if timeout <= 0 {
			errors = append(errors, fmt.Sprintf("timeout must be positive, got: %v", timeout))
		}
	}

	// Validate source and its connection string
	source := strings.ToLower(viper.GetString("source"))
	if source != "" && !validSources[source] {
		errors = append(errors, fmt.Sprintf("source must be one of rest, postgres, sqlite, got: %s", source))
	}
	if source != "" && source != "rest" && validSources[source] && viper.GetString("database_url") == "" {
		errors = append(errors, fmt.Sprintf("database_url is required for source %s", source))
	}

	if viper.IsSet("table") && strings.TrimSpace(viper.GetString("table")) == "" {
		errors = append(errors, "table must not be empty")
	}

	// Validate listen address
	if viper.IsSet("addr") {
		if _, port, err := net.SplitHostPort(viper.GetString("addr")); err != nil || port == "" {
			errors = append(errors, fmt.Sprintf("addr must be host:port, got: %s", viper.GetString("addr")))
		}
	}

	// Validate timezone
	if tz := viper.GetString("timezone"); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			errors = append(errors, fmt.Sprintf("timezone is not a known location: %s", tz))
		}
	}

	// If there are any errors, return them
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}

	return nil
}
