// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// EnforcementMode tells a sink whether declarations are applied or only
// reported.
type EnforcementMode int

const (
	ModeEnforce EnforcementMode = iota
	ModeNoop
)

func (m EnforcementMode) String() string {
	if m == ModeNoop {
		return "noop"
	}
	return "enforce"
}

// EffectiveMode returns the mode a profile runs in. noNoop forces
// enforcement even when the run itself is a noop run.
func EffectiveMode(run EnforcementMode, noNoop bool) EnforcementMode {
	if noNoop {
		return ModeEnforce
	}
	return run
}

// ProfileState is the per-invocation state of one profile activation.
type ProfileState struct {
	Ensure      Ensure
	Manage      bool
	AutoConf    bool
	AutoPrereq  bool
	Enforcement EnforcementMode

	// OptionsAll and SettingsHash are forwarded into every tp::conf resource.
	OptionsAll   cty.Value
	SettingsHash cty.Value

	// ExecPath is the command search path applied to exec resources.
	ExecPath string
}

// DefaultProfileState returns the state of a managed, present component
// with no options.
func DefaultProfileState() ProfileState {
	return ProfileState{
		Ensure:       EnsurePresent,
		Manage:       true,
		OptionsAll:   value.EmptyMapping(),
		SettingsHash: value.EmptyMapping(),
	}
}

// Options returns OptionsAll, defaulting to an empty mapping.
func (s ProfileState) Options() cty.Value {
	return orEmpty(s.OptionsAll)
}

// Settings returns SettingsHash, defaulting to an empty mapping.
func (s ProfileState) Settings() cty.Value {
	return orEmpty(s.SettingsHash)
}

func orEmpty(v cty.Value) cty.Value {
	if v.IsNull() {
		return value.EmptyMapping()
	}
	return v
}
