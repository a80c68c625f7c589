// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest reads YAML scene manifests, which describe the logical
// objects of an imported CAD model and the mesh parts that display them.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cogentcore.org/cadview/highlight"
	"cogentcore.org/cadview/pick"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"gopkg.in/yaml.v3"
)

// Manifest is a scene manifest.
type Manifest struct {

	// Name is the name of the model.
	Name string `yaml:"name"`

	// Textures maps texture names to image files, relative to the
	// directory of the manifest file.
	Textures map[string]string `yaml:"textures,omitempty"`

	// Objects are the logical objects of the model.
	Objects []Object `yaml:"objects"`

	// Dir is the directory of the manifest file, if opened from one.
	Dir string `yaml:"-"`
}

// Object is a logical object and its parts.
type Object struct {
	Name string `yaml:"name"`

	// Hover defaults to true.
	Hover *bool `yaml:"hover,omitempty"`

	// Click defaults to true.
	Click *bool `yaml:"click,omitempty"`

	Parts []Part `yaml:"parts"`
}

// Part is one mesh part, an axis-aligned box in world coordinates.
type Part struct {

	// Name is optional; it defaults to the object name and part index.
	Name string `yaml:"name,omitempty"`

	// Min is the minimum corner of the box.
	Min [3]float32 `yaml:"min,flow"`

	// Max is the maximum corner of the box.
	Max [3]float32 `yaml:"max,flow"`

	// Color is the hex color of the part; it defaults to gray.
	Color string `yaml:"color,omitempty"`

	// Family is the material family; it defaults to Phong.
	Family highlight.Families `yaml:"family,omitempty"`

	// Texture is an optional texture name.
	Texture string `yaml:"texture,omitempty"`

	// Shiny is the shininess; zero means the default.
	Shiny float32 `yaml:"shiny,omitempty"`
}

// Open reads a manifest from the given YAML file.
func Open(filename string) (*Manifest, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("manifest.Open: %w", err)
	}
	mf, err := Read(b)
	if err != nil {
		return nil, fmt.Errorf("manifest.Open %q: %w", filename, err)
	}
	mf.Dir = filepath.Dir(filename)
	return mf, nil
}

// Read reads and validates a manifest from YAML data.
func Read(b []byte) (*Manifest, error) {
	mf := &Manifest{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(mf); err != nil {
		return nil, err
	}
	if err := mf.Validate(); err != nil {
		return nil, err
	}
	return mf, nil
}

// Validate checks that object names are unique and non-empty, and that
// every part has a valid box and color, and that every part texture is
// one of the listed textures.
func (mf *Manifest) Validate() error {
	var errs []error
	names := map[string]bool{}
	for i, ob := range mf.Objects {
		if ob.Name == "" {
			errs = append(errs, fmt.Errorf("object %d: missing name", i))
		} else if names[ob.Name] {
			errs = append(errs, fmt.Errorf("object %q: duplicate name", ob.Name))
		}
		names[ob.Name] = true
		for j, pt := range ob.Parts {
			if pt.Min[0] > pt.Max[0] || pt.Min[1] > pt.Max[1] || pt.Min[2] > pt.Max[2] {
				errs = append(errs, fmt.Errorf("object %q part %d: min is greater than max", ob.Name, j))
			}
			if pt.Texture != "" {
				if _, ok := mf.Textures[pt.Texture]; !ok {
					errs = append(errs, fmt.Errorf("object %q part %d: unknown texture %q", ob.Name, j, pt.Texture))
				}
			}
			if pt.Color != "" {
				if _, err := colors.FromHex(pt.Color); err != nil {
					errs = append(errs, fmt.Errorf("object %q part %d: %w", ob.Name, j, err))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// TexturePath returns the file path of the named texture, or "".
func (mf *Manifest) TexturePath(name string) string {
	fn, ok := mf.Textures[name]
	if !ok {
		return ""
	}
	if filepath.IsAbs(fn) || mf.Dir == "" {
		return fn
	}
	return filepath.Join(mf.Dir, fn)
}

// LogicalObject returns the [pick.Object] for the object.
func (ob *Object) LogicalObject() *pick.Object {
	lo := pick.NewObject(ob.Name)
	if ob.Hover != nil {
		lo.HoverEnabled = *ob.Hover
	}
	if ob.Click != nil {
		lo.ClickEnabled = *ob.Click
	}
	lo.Data = ob
	return lo
}

// PartName returns the name of the part with the given index.
func (ob *Object) PartName(i int) string {
	if nm := ob.Parts[i].Name; nm != "" {
		return nm
	}
	return fmt.Sprintf("%s-%d", ob.Name, i)
}

// Box returns the world-space box of the part.
func (pt *Part) Box() math32.Box3 {
	return math32.Box3{
		Min: math32.Vec3(pt.Min[0], pt.Min[1], pt.Min[2]),
		Max: math32.Vec3(pt.Max[0], pt.Max[1], pt.Max[2]),
	}
}

// Appearance returns the original appearance of the part.
func (pt *Part) Appearance() highlight.Appearance {
	ap := highlight.Defaults()
	ap.Family = pt.Family
	if pt.Color != "" {
		if c, err := colors.FromHex(pt.Color); err == nil {
			ap.Color = c
		}
	}
	if pt.Shiny > 0 {
		ap.Shiny = pt.Shiny
	}
	ap.TextureName = pt.Texture
	return ap
}

// Build calls add for every part of every object, in order, with the
// logical object shared by all the parts of an object.
func (mf *Manifest) Build(add func(name string, pt *Part, obj *pick.Object)) {
	for i := range mf.Objects {
		ob := &mf.Objects[i]
		lo := ob.LogicalObject()
		for j := range ob.Parts {
			add(ob.PartName(j), &ob.Parts[j], lo)
		}
	}
}
