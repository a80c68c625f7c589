// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"cogentcore.org/cadview/config"
	"cogentcore.org/cadview/selection"
	"cogentcore.org/cadview/xyzscene"
	"cogentcore.org/core/core"
	"cogentcore.org/core/events"
	"cogentcore.org/core/icons"
	"cogentcore.org/core/tree"
	"cogentcore.org/core/xyz/xyzcore"
)

// View opens the manifest in a window.
func View(cfg *config.Config) error { //cli:cmd -root
	mf, closer, err := setup(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	b := core.NewBody("cadview").SetTitle(mf.Name)
	se := xyzcore.NewSceneEditor(b)
	se.UpdateWidget()
	vw := xyzscene.NewView(se.SceneWidget(), cfg)
	vw.Load(mf)

	status := core.NewText(b).SetText(vw.Status())
	vw.Viewer.OnChange(func(sel []selection.Renderable) {
		status.SetText(vw.Status()).UpdateRender()
	})

	b.AddTopBar(func(bar *core.Frame) {
		core.NewToolbar(bar).Maker(func(p *tree.Plan) {
			tree.Add(p, func(w *core.Switch) {
				w.SetText("Blink").SetChecked(cfg.Blink)
				w.OnChange(func(e events.Event) {
					cfg.Blink = w.IsChecked()
					vw.Viewer.SetBlink(cfg.Blink, cfg.BlinkPeriod)
				})
			})
			tree.Add(p, func(w *core.Switch) {
				w.SetText("Hover").SetChecked(cfg.HoverEnabled)
				w.OnChange(func(e events.Event) {
					cfg.HoverEnabled = w.IsChecked()
					vw.Viewer.SetHoverEnabled(cfg.HoverEnabled)
				})
			})
			tree.Add(p, func(w *core.Button) {
				w.SetText("Clear").SetIcon(icons.Close).OnClick(func(e events.Event) {
					vw.Viewer.ClearHighlights()
				})
			})
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watchSettings(ctx, cfg, vw.Viewer)
	b.RunMainWindow()
	return nil
}
