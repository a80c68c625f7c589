// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortNames sorts object names in place for display, ignoring case and
// ordering embedded numbers by value, so that "bolt2" sorts before "bolt10".
func SortNames(names []string) {
	collate.New(language.Und, collate.IgnoreCase, collate.Numeric).SortStrings(names)
}

// SelectedNames returns the names of the selected logical objects,
// sorted with [SortNames].
func (vw *Viewer) SelectedNames() []string {
	names := []string{}
	for _, obj := range vw.SelectedObjects() {
		names = append(names, obj.Name)
	}
	SortNames(names)
	return names
}
