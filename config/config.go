// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the cadview viewer,
// which can be set from flags and from a TOML file.
package config

//go:generate core generate

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
)

// Config is the configuration for the cadview viewer.
type Config struct {

	// HighlightColor is the highlight color as a hex string.
	HighlightColor string `default:"#ffff00"`

	// HighlightAlpha is the highlight opacity in [0, 1].
	// Hovered objects use half of it.
	HighlightAlpha float32 `default:"1" min:"0" max:"1"`

	// Blink is whether selected objects blink instead of
	// being statically highlighted.
	Blink bool

	// BlinkPeriod is the duration of one blink cycle.
	BlinkPeriod time.Duration `default:"800ms"`

	// HoverEnabled is whether objects under the pointer are highlighted.
	HoverEnabled bool `default:"true"`

	// ClickEnabled is whether clicking selects objects.
	ClickEnabled bool `default:"true"`

	// Manifest is the scene manifest file to load.
	Manifest string `posarg:"0" required:"-"`

	// Trace is the pointer trace file for the replay command.
	Trace string `cmd:"replay" flag:"t,trace"`

	// Addr is the address the serve command listens on.
	Addr string `cmd:"serve" default:"localhost:8090"`

	// Settings is the TOML settings file, watched for changes.
	Settings string `flag:"s,settings"`

	// Log contains the logging options.
	Log Log `display:"add-fields"`
}

// Log contains the logging options.
type Log struct {

	// Level is the minimum level logged.
	Level slog.Level

	// File is an optional log file, rotated when it gets too big.
	File string

	// MaxSize is the size in megabytes at which the log file is rotated.
	MaxSize int `default:"10"`

	// MaxBackups is the number of rotated log files kept.
	MaxBackups int `default:"3"`
}

// Defaults returns a config with all the default values.
func Defaults() *Config {
	return &Config{
		HighlightColor: "#ffff00",
		HighlightAlpha: 1,
		BlinkPeriod:    800 * time.Millisecond,
		HoverEnabled:   true,
		ClickEnabled:   true,
		Addr:           "localhost:8090",
		Log: Log{
			Level:      slog.LevelInfo,
			MaxSize:    10,
			MaxBackups: 3,
		},
	}
}

// Copy returns a deep copy of the config.
func (cfg *Config) Copy() *Config {
	cp := &Config{}
	if err := copier.CopyWithOption(cp, cfg, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Errorf("config.Copy: %w", err))
	}
	return cp
}

// Open reads the style settings of the config from the given TOML file,
// leaving fields that the file does not set unchanged.
func (cfg *Config) Open(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("config.Open: %w", err)
	}
	return cfg.Read(b)
}

// Read reads the config from TOML data. Unknown keys are an error.
// BlinkPeriod may be a duration string such as "800ms" or an integer
// number of nanoseconds.
func (cfg *Config) Read(b []byte) error {
	var raw map[string]any
	if err := toml.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("config: decoding TOML: %w", err)
	}
	if s, ok := raw["BlinkPeriod"].(string); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("config: BlinkPeriod: %w", err)
		}
		raw["BlinkPeriod"] = int64(d)
		if b, err = toml.Marshal(raw); err != nil {
			return fmt.Errorf("config: decoding TOML: %w", err)
		}
	}
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("config: decoding TOML: %w", err)
	}
	return nil
}

// Save writes the config to the given TOML file, with BlinkPeriod as a
// duration string.
func (cfg *Config) Save(filename string) error {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	raw["BlinkPeriod"] = cfg.BlinkPeriod.String()
	if b, err = toml.Marshal(raw); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := os.WriteFile(filename, b, 0666); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}
