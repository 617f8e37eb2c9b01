/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user-editable YAML configuration with
// environment variable overrides. Environment variables are read-only
// overrides applied after the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"kinetype/internal/layout"
)

// Env var names used as overrides.
const (
	EnvGap          = "KT_GAP"
	EnvSeed         = "KT_SEED"
	EnvCanvasWidth  = "KT_CANVAS_WIDTH"
	EnvCanvasHeight = "KT_CANVAS_HEIGHT"
	EnvLogLevel     = "KT_LOG_LEVEL"
	EnvLogFormat    = "KT_LOG_FORMAT"
	EnvLogSource    = "KT_LOG_SOURCE"
	EnvLogFile      = "KT_LOG_FILE"
)

// CompileConfig holds the default compile parameters applied when the
// CLI flags and job file leave them unset.
type CompileConfig struct {
	// Gap is the seconds inserted between adjacent segments; negative
	// values overlap them.
	Gap float64 `yaml:"gap"`
	// Seed fixes the jitter source; 0 means a fresh seed per run.
	Seed int64 `yaml:"seed"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

func (c LoggingConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.In("", "debug", "info", "warn", "warning", "error")),
		validation.Field(&c.Format, validation.In("", "console", "json")),
	)
}

// AppConfig is the full application configuration.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Compile       CompileConfig `yaml:"compile"`
	Layout        layout.Config `yaml:"layout"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Compile:       CompileConfig{Gap: 0.5},
		Layout:        layout.DefaultConfig(),
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Validate checks the whole configuration.
func (c AppConfig) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}

// Load reads the config file at path (if non-empty), merging it over the
// defaults, then applies environment overrides and validates. A missing
// file at an explicitly given path is an error; path=="" skips the file.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvGap)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Compile.Gap = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvSeed)); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Compile.Seed = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasWidth)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Layout.Width = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasHeight)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Layout.Height = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}
