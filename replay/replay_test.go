// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package replay

import (
	"bytes"
	"testing"
	"time"

	"cogentcore.org/cadview/config"
	"cogentcore.org/cadview/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayer(t *testing.T) (*Player, *bytes.Buffer) {
	mf, err := manifest.Open("testdata/bracket.yaml")
	require.NoError(t, err)
	var buf bytes.Buffer
	return NewPlayer(mf, config.Defaults(), &buf), &buf
}

func TestRunTrace(t *testing.T) {
	pl, buf := newTestPlayer(t)
	tr, err := OpenTrace("testdata/select.yaml")
	require.NoError(t, err)
	require.NoError(t, pl.Run(tr))

	out := buf.String()
	assert.Contains(t, out, "hover Base-0")
	assert.Contains(t, out, "click Bolt-head object=Bolt at (15, 15, 14) selected=1")
	assert.Contains(t, out, "selected=2")
	assert.Contains(t, out, "click on empty space: deselected all")
	assert.Contains(t, out, "blink true period 1s")

	// every part is back to its original appearance
	mf, err := manifest.Open("testdata/bracket.yaml")
	require.NoError(t, err)
	i := 0
	for _, ob := range mf.Objects {
		for j := range ob.Parts {
			pt := pl.Scene.Parts[i]
			assert.Equal(t, ob.Parts[j].Appearance(), pt.Appearance(), pt.Name)
			i++
		}
	}
}

func TestExpectationFailure(t *testing.T) {
	pl, buf := newTestPlayer(t)
	tr, err := ReadTrace([]byte(`
steps:
  - down: {x: 5, y: 5}
    expect: [Bolt]
`))
	require.NoError(t, err)
	err = pl.Run(tr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selected [Base], expected [Bolt]")
	assert.Contains(t, buf.String(), "expected [Bolt]")
}

func TestBlinkAdvance(t *testing.T) {
	pl, _ := newTestPlayer(t)
	tr, err := ReadTrace([]byte(`
steps:
  - blink: {on: true, period: 1s}
  - highlight: [Base]
  - advance: 480ms
`))
	require.NoError(t, err)
	require.NoError(t, pl.Run(tr))

	base := pl.Scene.PartByName("Base-0")
	hc := pl.Viewer.Registry.Controller(base)
	require.NotNil(t, hc)
	assert.True(t, hc.Blinking())
	assert.InDelta(t, 0.48, hc.Phase(), 1e-3)
	assert.Equal(t, 30, base.Writes)
	assert.Equal(t, 16*time.Millisecond, pl.Frame)
}

func TestDisabledObject(t *testing.T) {
	pl, _ := newTestPlayer(t)
	tr, err := ReadTrace([]byte(`
steps:
  - move: {x: 70, y: 20}
  - down: {x: 70, y: 20}
    expect: []
  - highlight: [Label]
    expect: [Label]
`))
	require.NoError(t, err)
	require.NoError(t, pl.Run(tr))
	assert.Nil(t, pl.Viewer.Registry.Hovered())
}
