// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "settings.toml")
	cfg := Defaults()
	cfg.HighlightColor = "#ff0000"
	cfg.Blink = true
	cfg.BlinkPeriod = 1500 * time.Millisecond
	cfg.Log.Level = slog.LevelDebug
	require.NoError(t, cfg.Save(fn))

	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Contains(t, string(b), "1.5s")

	got := Defaults()
	require.NoError(t, got.Open(fn))
	assert.Equal(t, cfg, got)
}

func TestReadBlinkPeriod(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Read([]byte("BlinkPeriod = \"1.2s\"\nBlink = true\n")))
	assert.Equal(t, 1200*time.Millisecond, cfg.BlinkPeriod)
	assert.True(t, cfg.Blink)

	require.NoError(t, cfg.Read([]byte("BlinkPeriod = 500000000\n")))
	assert.Equal(t, 500*time.Millisecond, cfg.BlinkPeriod)

	assert.ErrorContains(t, cfg.Read([]byte("BlinkPeriod = \"soon\"\n")), "BlinkPeriod")
	assert.Error(t, cfg.Read([]byte("BlinkPeriod = \"1s\"\nColour = 1\n")))
}

func TestReadPartial(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Read([]byte("HighlightAlpha = 0.5\nHoverEnabled = false\n")))
	assert.Equal(t, float32(0.5), cfg.HighlightAlpha)
	assert.False(t, cfg.HoverEnabled)
	assert.Equal(t, "#ffff00", cfg.HighlightColor)
	assert.True(t, cfg.ClickEnabled)
}

func TestReadUnknownField(t *testing.T) {
	cfg := Defaults()
	assert.Error(t, cfg.Read([]byte("Colour = \"#000000\"\n")))
}

func TestOpenMissing(t *testing.T) {
	cfg := Defaults()
	assert.Error(t, cfg.Open(filepath.Join(t.TempDir(), "missing.toml")))
}

func TestCopy(t *testing.T) {
	cfg := Defaults()
	cp := cfg.Copy()
	assert.Equal(t, cfg, cp)
	cp.Log.File = "other.log"
	cp.Blink = true
	assert.Equal(t, "", cfg.Log.File)
	assert.False(t, cfg.Blink)
}

// startWatch watches fn and returns the channel of delivered configs, once
// the watcher has delivered a first reload of want.
func startWatch(t *testing.T, fn, want string) <-chan *Config {
	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan *Config, 64)
	errc := make(chan error, 1)
	go func() {
		err := Watch(ctx, fn, Defaults(), func(cfg *Config) { got <- cfg })
		close(got)
		errc <- err
	}()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-errc)
	})

	// keep writing, slower than the settle delay, until the watcher is set up
	var first *Config
	require.Eventually(t, func() bool {
		select {
		case first = <-got:
			return true
		default:
			os.WriteFile(fn, []byte(want), 0666)
			return false
		}
	}, 5*time.Second, 4*WatchDelay)
	rest := make(chan *Config, 64)
	rest <- first
	go func() {
		for cfg := range got {
			rest <- cfg
		}
	}()
	return rest
}

// delivered returns every config delivered within a few settle delays.
func delivered(ch <-chan *Config) []*Config {
	var cfgs []*Config
	timeout := time.After(5 * WatchDelay)
	for {
		select {
		case cfg := <-ch:
			cfgs = append(cfgs, cfg)
		case <-timeout:
			return cfgs
		}
	}
}

func TestWatch(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(fn, []byte("Blink = false\n"), 0666))
	content := "Blink = true\nHighlightAlpha = 0.25\n"
	ch := startWatch(t, fn, content)

	// repeated truncating writes must never deliver a defaulted config
	for range 5 {
		require.NoError(t, os.WriteFile(fn, []byte(content), 0666))
		time.Sleep(5 * time.Millisecond)
	}
	cfgs := delivered(ch)
	require.NotEmpty(t, cfgs)
	for _, cfg := range cfgs {
		assert.True(t, cfg.Blink)
		assert.Equal(t, float32(0.25), cfg.HighlightAlpha)
		assert.Equal(t, "#ffff00", cfg.HighlightColor)
	}
}

func TestWatchEmptyFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "settings.toml")
	ch := startWatch(t, fn, "Blink = true\n")
	delivered(ch)

	require.NoError(t, os.WriteFile(fn, nil, 0666))
	assert.Empty(t, delivered(ch))
}

func TestLogger(t *testing.T) {
	dir := t.TempDir()
	lc := &Log{Level: slog.LevelWarn, File: filepath.Join(dir, "cadview.log"), MaxSize: 1, MaxBackups: 1}
	var buf bytes.Buffer
	lg, closer := lc.Logger(&buf)
	lg.Info("hidden")
	lg.Warn("shown", "object", "Bolt")
	require.NoError(t, closer.Close())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "object=Bolt")
	b, err := os.ReadFile(lc.File)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(b))
}
