package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"supaview/internal/display"
	"supaview/internal/supabase"
)

// Config is the resolved runtime configuration.
type Config struct {
	Supabase    supabase.Config
	Source      string
	Table       string
	DatabaseURL string
	Addr        string
	Timezone    string
	TimeFormat  string
	Verbose     bool
	LogFile     string
}

// Load initializes the configuration from .env, an optional config file and
// environment variables. It only prepares viper; Resolve reads the values.
func Load(cfgFile string) error {
	// A missing .env is normal; the variables may come from the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to parse .env file", "error", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("SUPAVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// The credentials keep the names the hosted dashboard hands out.
	_ = viper.BindEnv("supabase.url", supabase.EnvURL)
	_ = viper.BindEnv("supabase.anon_key", supabase.EnvAnonKey)

	// Set defaults
	viper.SetDefault("source", "rest")
	viper.SetDefault("table", "example_table")
	viper.SetDefault("timeout", 30)
	viper.SetDefault("addr", "127.0.0.1:3000")
	viper.SetDefault("time_format", display.DefaultTimeFormat)
	viper.SetDefault("persist_session", true)
	viper.SetDefault("verbose", false)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		return nil
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// Resolve validates the loaded settings and returns them. Missing Supabase
// credentials are not checked here; supabase.NewClient reports them.
func Resolve() (*Config, error) {
	if err := ValidateConfig(); err != nil {
		return nil, err
	}

	timeout, _ := durationSetting("timeout")
	cfg := &Config{
		Supabase: supabase.Config{
			URL:            strings.TrimSpace(viper.GetString("supabase.url")),
			AnonKey:        strings.TrimSpace(viper.GetString("supabase.anon_key")),
			PersistSession: viper.GetBool("persist_session"),
			Timeout:        timeout,
		},
		Source:      strings.ToLower(viper.GetString("source")),
		Table:       viper.GetString("table"),
		DatabaseURL: viper.GetString("database_url"),
		Addr:        viper.GetString("addr"),
		Timezone:    viper.GetString("timezone"),
		TimeFormat:  viper.GetString("time_format"),
		Verbose:     viper.GetBool("verbose"),
		LogFile:     viper.GetString("log_file"),
	}
	return cfg, nil
}

// Location returns the zone timestamps are shown in; empty means local time.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// durationSetting reads a key that holds either whole seconds or a Go duration string.
func durationSetting(key string) (time.Duration, error) {
	raw := strings.TrimSpace(viper.GetString(key))
	if raw == "" {
		return 0, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(raw)
}

// MaskSecret hides all but the last four characters of a key.
func MaskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
