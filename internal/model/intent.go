// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"sort"

	"github.com/specialistvlad/profilegrid/internal/nodeid"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// ResourceIntent is one fully resolved declaration.
type ResourceIntent struct {
	Type   string
	Name   string
	Params cty.Value
}

// Address returns the intent's identity.
func (i ResourceIntent) Address() nodeid.Address {
	return nodeid.New(i.Type, i.Name)
}

// Canonical returns the canonical encoding of the params. Two intents for
// the same address are interchangeable exactly when these bytes are equal.
func (i ResourceIntent) Canonical() ([]byte, error) {
	return value.Marshal(i.Params)
}

// NativeParams returns the params as plain Go data.
func (i ResourceIntent) NativeParams() map[string]any {
	return value.NativeMapping(i.Params)
}

// SortIntents orders intents by address.
func SortIntents(intents []ResourceIntent) {
	sort.SliceStable(intents, func(a, b int) bool {
		return intents[a].Address().Less(intents[b].Address())
	})
}

// Declaration is what a sink receives for every resolved resource.
type Declaration struct {
	Component string
	Intent    ResourceIntent
	Mode      EnforcementMode
}
