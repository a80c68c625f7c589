// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifest

import (
	"image/color"
	"testing"

	"cogentcore.org/cadview/highlight"
	"cogentcore.org/cadview/pick"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	mf, err := Open("testdata/bracket.yaml")
	require.NoError(t, err)
	assert.Equal(t, "bracket assembly", mf.Name)
	require.Len(t, mf.Objects, 3)

	bolt := &mf.Objects[1]
	assert.Equal(t, "Bolt-head", bolt.PartName(0))
	assert.Equal(t, "Bolt-1", bolt.PartName(1))
	assert.Equal(t, float32(90), bolt.Parts[0].Appearance().Shiny)
	assert.Equal(t, color.RGBA{0xc0, 0xc0, 0xc0, 0xff}, bolt.Parts[1].Appearance().Color)

	label := &mf.Objects[2]
	lo := label.LogicalObject()
	assert.False(t, lo.HoverEnabled)
	assert.False(t, lo.ClickEnabled)
	ap := label.Parts[0].Appearance()
	assert.Equal(t, highlight.Textured, ap.Family)
	assert.Equal(t, "label", ap.TextureName)
	assert.Equal(t, "testdata/label.png", mf.TexturePath("label"))
}

func TestBuild(t *testing.T) {
	mf, err := Open("testdata/bracket.yaml")
	require.NoError(t, err)

	var names []string
	objs := map[string]*pick.Object{}
	mf.Build(func(name string, pt *Part, obj *pick.Object) {
		names = append(names, name)
		if prev, ok := objs[obj.Name]; ok {
			assert.Same(t, prev, obj)
		}
		objs[obj.Name] = obj
	})
	assert.Equal(t, []string{"Base-0", "Bolt-head", "Bolt-1", "Label-0"}, names)
	assert.Len(t, objs, 3)
	assert.True(t, objs["Base"].HoverEnabled)
}

func TestPartBox(t *testing.T) {
	pt := Part{Min: [3]float32{1, 2, 3}, Max: [3]float32{4, 5, 6}}
	assert.Equal(t, math32.Box3{Min: math32.Vec3(1, 2, 3), Max: math32.Vec3(4, 5, 6)}, pt.Box())
	assert.Equal(t, highlight.Defaults(), pt.Appearance())
}

func TestValidate(t *testing.T) {
	_, err := Read([]byte(`
objects:
  - name: A
    parts:
      - min: [5, 0, 0]
        max: [1, 1, 1]
  - name: A
  - parts:
      - color: "not a color"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min is greater than max")
	assert.Contains(t, err.Error(), "duplicate name")
	assert.Contains(t, err.Error(), "missing name")
}

func TestUnknownField(t *testing.T) {
	_, err := Read([]byte("objects:\n  - name: A\n    colour: red\n"))
	assert.Error(t, err)
}

func TestTextures(t *testing.T) {
	mf, err := Read([]byte(`
name: t
textures:
  label: label.png
objects:
  - name: A
    parts:
      - {min: [0, 0, 0], max: [1, 1, 1], family: Textured, texture: label}
`))
	require.NoError(t, err)
	assert.Equal(t, "label.png", mf.TexturePath("label"))
	assert.Equal(t, "", mf.TexturePath("wood"))
	mf.Dir = "models"
	assert.Equal(t, "models/label.png", mf.TexturePath("label"))

	_, err = Read([]byte(`
name: t
textures:
  label: label.png
objects:
  - name: A
    parts:
      - {min: [0, 0, 0], max: [1, 1, 1], texture: wood}
`))
	assert.ErrorContains(t, err, `unknown texture "wood"`)

	_, err = Read([]byte(`
name: t
objects:
  - name: A
    parts:
      - {min: [0, 0, 0], max: [1, 1, 1], family: Textured, texture: label}
`))
	assert.ErrorContains(t, err, `unknown texture "label"`)
}
