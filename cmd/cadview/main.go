// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cadview shows CAD model manifests in a 3D viewer with hover
// and click selection feedback, replays pointer traces headlessly, and
// serves the selection of a headless viewer over HTTP.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"time"

	"cogentcore.org/cadview/config"
	"cogentcore.org/cadview/manifest"
	"cogentcore.org/cadview/remote"
	"cogentcore.org/cadview/replay"
	"cogentcore.org/cadview/viewer"
	cerrors "cogentcore.org/core/base/errors"
	"cogentcore.org/core/cli"
)

func main() {
	opts := cli.DefaultOptions("cadview", "A CAD model viewer with hover and click selection feedback.")
	cli.Run(opts, config.Defaults(), View, Replay, Serve)
}

// setup applies the settings file and the logging options, and opens
// the manifest.
func setup(cfg *config.Config) (*manifest.Manifest, io.Closer, error) {
	if cfg.Settings != "" {
		if _, err := os.Stat(cfg.Settings); err == nil {
			cerrors.Log(cfg.Open(cfg.Settings))
		}
	}
	closer := cfg.Log.Apply(os.Stderr)
	if cfg.Manifest == "" {
		closer.Close()
		return nil, nil, errors.New("cadview: no manifest file given")
	}
	mf, err := manifest.Open(cfg.Manifest)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return mf, closer, nil
}

// watchSettings applies every change of the settings file to the viewer
// until the context is done.
func watchSettings(ctx context.Context, cfg *config.Config, vw *viewer.Viewer) {
	if cfg.Settings == "" {
		return
	}
	go func() {
		cerrors.Log(config.Watch(ctx, cfg.Settings, cfg, func(nc *config.Config) {
			vw.Loop.PostContext(ctx, func() { vw.ApplyConfig(nc) })
		}))
	}()
}

// Replay replays a pointer trace on the manifest without a window,
// printing the selection feedback.
func Replay(cfg *config.Config) error {
	mf, closer, err := setup(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	if cfg.Trace == "" {
		return errors.New("cadview replay: no trace file given")
	}
	tr, err := replay.OpenTrace(cfg.Trace)
	if err != nil {
		return err
	}
	return replay.NewPlayer(mf, cfg, os.Stdout).Run(tr)
}

// Serve runs a headless viewer of the manifest and serves its selection
// over HTTP until interrupted.
func Serve(cfg *config.Config) error {
	mf, closer, err := setup(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	pl := replay.NewPlayer(mf, cfg, io.Discard)
	vw := pl.Viewer
	sv := remote.NewServer(vw)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	watchSettings(ctx, cfg, vw)
	go func() {
		tk := time.NewTicker(pl.Frame)
		defer tk.Stop()
		for {
			select {
			case <-tk.C:
				// the loop stops running once ctx is done
				if vw.Loop.PostContext(ctx, func() { pl.Clock.Advance(pl.Frame) }) != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		cerrors.Log(sv.ListenAndServe(ctx, cfg.Addr))
		stop()
	}()
	err = vw.Loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
