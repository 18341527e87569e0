// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the application configuration: heuristic thresholds
// of the detection engine, HTTP server settings and the AI analysis client.
// All values have working defaults; a config file is optional.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"avg-scan/internal/paths"
)

// Thresholds are the tunable heuristic constants of the detection engine.
// They are configuration, not invariants: the context windows and the
// overlap ratio may be adjusted per deployment.
type Thresholds struct {
	// ContextWindow is the number of characters inspected before a match
	// for contextual accept/reject decisions.
	ContextWindow int `mapstructure:"context_window"`
	// AddressContextWindow is the preceding window checked for business
	// indicators before a street-address match.
	AddressContextWindow int `mapstructure:"address_context_window"`
	// PhoneKeywordWindow is the preceding window checked for phone or
	// lab/sample keywords before a phone-number match.
	PhoneKeywordWindow int `mapstructure:"phone_keyword_window"`
	// OverlapRatio is the fraction of the shorter span above which two
	// partially overlapping detections collapse into the longer one.
	OverlapRatio float64 `mapstructure:"overlap_ratio"`
	// MaxFieldLength caps extracted field-label values to reject
	// accidental whole-sentence captures.
	MaxFieldLength int `mapstructure:"max_field_length"`
	// MinTermLength is the minimum normalized length of a learned or
	// ignored feedback term.
	MinTermLength int `mapstructure:"min_term_length"`
}

// Server holds HTTP API settings.
type Server struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AI holds settings for the external AI analysis collaborator.
type AI struct {
	APIKey   string        `mapstructure:"api_key"`
	URL      string        `mapstructure:"url"`
	Model    string        `mapstructure:"model"`
	MaxChars int           `mapstructure:"max_chars"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Feedback holds feedback-store settings.
type Feedback struct {
	DBPath string `mapstructure:"db_path"`
}

// Config is the root application configuration.
type Config struct {
	Thresholds Thresholds `mapstructure:"thresholds"`
	Server     Server     `mapstructure:"server"`
	AI         AI         `mapstructure:"ai"`
	Feedback   Feedback   `mapstructure:"feedback"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Thresholds: Thresholds{
			ContextWindow:        50,
			AddressContextWindow: 60,
			PhoneKeywordWindow:   50,
			OverlapRatio:         0.8,
			MaxFieldLength:       60,
			MinTermLength:        2,
		},
		Server: Server{
			Addr: ":8080",
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5000",
				"http://127.0.0.1:5500",
			},
		},
		AI: AI{
			URL:      "https://api.mistral.ai/v1/chat/completions",
			Model:    "mistral-large-latest",
			MaxChars: 15000,
			Timeout:  30 * time.Second,
		},
		Feedback: Feedback{
			DBPath: paths.FeedbackDBFile(),
		},
	}
}

// LoadOrDefault reads the configuration file at the given path, or searches
// the working directory and the user config directory for avg-scan.yaml when
// the path is empty. A missing or unreadable file is not an error: the
// defaults are returned so the detection path never fails on configuration.
func LoadOrDefault(path string) *Config {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("AVGSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults mirror Default() so env-only overrides work without a file.
	v.SetDefault("thresholds.context_window", cfg.Thresholds.ContextWindow)
	v.SetDefault("thresholds.address_context_window", cfg.Thresholds.AddressContextWindow)
	v.SetDefault("thresholds.phone_keyword_window", cfg.Thresholds.PhoneKeywordWindow)
	v.SetDefault("thresholds.overlap_ratio", cfg.Thresholds.OverlapRatio)
	v.SetDefault("thresholds.max_field_length", cfg.Thresholds.MaxFieldLength)
	v.SetDefault("thresholds.min_term_length", cfg.Thresholds.MinTermLength)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.allowed_origins", cfg.Server.AllowedOrigins)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.url", cfg.AI.URL)
	v.SetDefault("ai.model", cfg.AI.Model)
	v.SetDefault("ai.max_chars", cfg.AI.MaxChars)
	v.SetDefault("ai.timeout", cfg.AI.Timeout)
	v.SetDefault("feedback.db_path", cfg.Feedback.DBPath)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("avg-scan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(paths.ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && path != "" {
			slog.Warn("failed to read config file, using defaults", "path", path, "error", err)
		}
	}

	loaded := Default()
	if err := v.Unmarshal(loaded); err != nil {
		slog.Warn("failed to unmarshal config, using defaults", "error", err)
		return cfg
	}

	// MISTRAL_API_KEY is the variable name the original deployment used;
	// honor it when the namespaced setting is absent.
	if loaded.AI.APIKey == "" {
		loaded.AI.APIKey = strings.TrimSpace(os.Getenv("MISTRAL_API_KEY"))
	}

	sanitize(loaded)
	return loaded
}

// sanitize clamps nonsensical values back to defaults.
func sanitize(cfg *Config) {
	def := Default()
	if cfg.Thresholds.ContextWindow <= 0 {
		cfg.Thresholds.ContextWindow = def.Thresholds.ContextWindow
	}
	if cfg.Thresholds.AddressContextWindow <= 0 {
		cfg.Thresholds.AddressContextWindow = def.Thresholds.AddressContextWindow
	}
	if cfg.Thresholds.PhoneKeywordWindow <= 0 {
		cfg.Thresholds.PhoneKeywordWindow = def.Thresholds.PhoneKeywordWindow
	}
	if cfg.Thresholds.OverlapRatio <= 0 || cfg.Thresholds.OverlapRatio > 1 {
		cfg.Thresholds.OverlapRatio = def.Thresholds.OverlapRatio
	}
	if cfg.Thresholds.MaxFieldLength <= 0 {
		cfg.Thresholds.MaxFieldLength = def.Thresholds.MaxFieldLength
	}
	if cfg.Thresholds.MinTermLength <= 0 {
		cfg.Thresholds.MinTermLength = def.Thresholds.MinTermLength
	}
	if cfg.AI.Timeout <= 0 {
		cfg.AI.Timeout = def.AI.Timeout
	}
	if cfg.AI.MaxChars <= 0 {
		cfg.AI.MaxChars = def.AI.MaxChars
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
}
