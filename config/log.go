// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"io"
	"log/slog"

	"cogentcore.org/core/base/logx"
	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Logger returns a text logger at the configured level that writes to w
// and, if File is set, to the rotated log file. Closing the returned
// closer closes the log file.
func (lc *Log) Logger(w io.Writer) (*slog.Logger, io.Closer) {
	var closer io.Closer = nopCloser{}
	if lc.File != "" {
		lj := &lumberjack.Logger{
			Filename:   lc.File,
			MaxSize:    lc.MaxSize,
			MaxBackups: lc.MaxBackups,
		}
		w = io.MultiWriter(w, lj)
		closer = lj
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lc.Level})
	return slog.New(h), closer
}

// Apply makes the logger of [Log.Logger] the default logger and sets
// the user level of printed messages.
func (lc *Log) Apply(w io.Writer) io.Closer {
	logx.UserLevel = lc.Level
	lg, closer := lc.Logger(w)
	slog.SetDefault(lg)
	return closer
}
