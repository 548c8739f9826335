// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package resolver

import (
	"sort"

	"github.com/specialistvlad/profilegrid/internal/model"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// DefaultsFunc derives the state defaults of one resource type.
type DefaultsFunc func(state model.ProfileState) cty.Value

// DefaultsTable maps resource types to their state defaults.
type DefaultsTable struct {
	entries map[string]DefaultsFunc
}

// NewDefaultsTable returns an empty table.
func NewDefaultsTable() *DefaultsTable {
	return &DefaultsTable{entries: make(map[string]DefaultsFunc)}
}

// Set registers fn for resourceType, replacing any previous entry.
func (t *DefaultsTable) Set(resourceType string, fn DefaultsFunc) *DefaultsTable {
	t.entries[resourceType] = fn
	return t
}

// Has reports whether the table knows resourceType.
func (t *DefaultsTable) Has(resourceType string) bool {
	_, ok := t.entries[resourceType]
	return ok
}

// Types returns the known resource types in sorted order.
func (t *DefaultsTable) Types() []string {
	types := make([]string, 0, len(t.entries))
	for typ := range t.entries {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// Defaults returns the state defaults for resourceType. Unknown types yield
// an empty mapping and false.
func (t *DefaultsTable) Defaults(resourceType string, state model.ProfileState) (cty.Value, bool) {
	fn, ok := t.entries[resourceType]
	if !ok {
		return value.EmptyMapping(), false
	}
	v := fn(state)
	if v.IsNull() {
		v = value.EmptyMapping()
	}
	return v, true
}

// Clone returns a copy of the table that can be extended independently.
func (t *DefaultsTable) Clone() *DefaultsTable {
	out := NewDefaultsTable()
	for k, fn := range t.entries {
		out.entries[k] = fn
	}
	return out
}

// StateDefaults returns the table shared by every profile:
//
//	tp::conf  {ensure: file_ensure, optionsHash: OptionsAll, settingsHash: SettingsHash}
//	tp::dir   {ensure: dir_ensure}
//	file      {ensure: file_ensure}
//	exec      {path: ExecPath}
//
// A fresh table is returned on every call.
func StateDefaults() *DefaultsTable {
	return NewDefaultsTable().
		Set("tp::conf", func(s model.ProfileState) cty.Value {
			return cty.ObjectVal(map[string]cty.Value{
				"ensure":       cty.StringVal(s.Ensure.FileEnsure()),
				"optionsHash":  s.Options(),
				"settingsHash": s.Settings(),
			})
		}).
		Set("tp::dir", func(s model.ProfileState) cty.Value {
			return cty.ObjectVal(map[string]cty.Value{
				"ensure": cty.StringVal(s.Ensure.DirEnsure()),
			})
		}).
		Set("file", func(s model.ProfileState) cty.Value {
			return cty.ObjectVal(map[string]cty.Value{
				"ensure": cty.StringVal(s.Ensure.FileEnsure()),
			})
		}).
		Set("exec", func(s model.ProfileState) cty.Value {
			if s.ExecPath == "" {
				return value.EmptyMapping()
			}
			return cty.ObjectVal(map[string]cty.Value{
				"path": cty.StringVal(s.ExecPath),
			})
		})
}
