// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pick

import (
	"slices"

	"cogentcore.org/cadview/selection"
	"cogentcore.org/core/base/ordmap"
)

// Object is a logical object from the geometry domain, such as one part
// the user modeled in the CAD system. One object can be displayed by
// several renderables.
type Object struct {

	// Name is the name of the object in the geometry domain.
	Name string

	// HoverEnabled is whether hovering the object shows a hover highlight.
	HoverEnabled bool

	// ClickEnabled is whether clicking the object changes the selection.
	ClickEnabled bool

	// Data is an optional opaque payload from the geometry domain.
	Data any
}

// NewObject returns a new [Object] with hover and click enabled.
func NewObject(name string) *Object {
	return &Object{Name: name, HoverEnabled: true, ClickEnabled: true}
}

// SetHoverEnabled sets [Object.HoverEnabled].
func (ob *Object) SetHoverEnabled(v bool) *Object {
	ob.HoverEnabled = v
	return ob
}

// SetClickEnabled sets [Object.ClickEnabled].
func (ob *Object) SetClickEnabled(v bool) *Object {
	ob.ClickEnabled = v
	return ob
}

func (ob *Object) String() string {
	if ob == nil {
		return "<nil>"
	}
	return ob.Name
}

// ObjectMap maps each displayed renderable to its logical object,
// in the order the renderables were added.
type ObjectMap struct {
	om *ordmap.Map[selection.Renderable, *Object]
}

// NewObjectMap returns a new empty [ObjectMap].
func NewObjectMap() *ObjectMap {
	return &ObjectMap{om: ordmap.New[selection.Renderable, *Object]()}
}

// Add registers the logical object of a renderable. A renderable has
// exactly one object; adding it again replaces the previous one.
func (mp *ObjectMap) Add(r selection.Renderable, obj *Object) {
	if r == nil {
		panic("pick.ObjectMap.Add: renderable must not be nil")
	}
	mp.om.Add(r, obj)
}

// Delete removes the renderable, returning whether it was present.
func (mp *ObjectMap) Delete(r selection.Renderable) bool {
	return mp.om.DeleteKey(r)
}

// Object returns the logical object of the renderable, or nil if the
// renderable is not mapped.
func (mp *ObjectMap) Object(r selection.Renderable) *Object {
	obj, _ := mp.om.ValueByKeyTry(r)
	return obj
}

// Has returns whether the renderable is mapped.
func (mp *ObjectMap) Has(r selection.Renderable) bool {
	_, ok := mp.om.ValueByKeyTry(r)
	return ok
}

// Renderables returns all the renderables of the given object, in the
// order they were added.
func (mp *ObjectMap) Renderables(obj *Object) []selection.Renderable {
	var rs []selection.Renderable
	for _, kv := range mp.om.Order {
		if kv.Value == obj {
			rs = append(rs, kv.Key)
		}
	}
	return rs
}

// All returns all the renderables, in the order they were added.
func (mp *ObjectMap) All() []selection.Renderable {
	return mp.om.Keys()
}

// Objects returns the distinct logical objects of the given renderables,
// in order of first appearance. Unmapped renderables are skipped.
func (mp *ObjectMap) Objects(rs []selection.Renderable) []*Object {
	var objs []*Object
	for _, r := range rs {
		obj := mp.Object(r)
		if obj == nil || slices.Contains(objs, obj) {
			continue
		}
		objs = append(objs, obj)
	}
	return objs
}

// ObjectByName returns the first object with the given name, or nil.
func (mp *ObjectMap) ObjectByName(name string) *Object {
	for _, kv := range mp.om.Order {
		if kv.Value != nil && kv.Value.Name == name {
			return kv.Value
		}
	}
	return nil
}

// Len returns the number of mapped renderables.
func (mp *ObjectMap) Len() int {
	return mp.om.Len()
}

// Reset removes all renderables.
func (mp *ObjectMap) Reset() {
	mp.om.Reset()
	mp.om.Init()
}
