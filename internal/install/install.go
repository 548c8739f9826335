// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package install defines the install step a profile runs once per
// activation, before any of its resources are declared.
//
// The step itself (packages, repositories, prerequisites) is owned by
// whoever implements Delegate. SinkDelegate, the implementation the CLI uses,
// records the step as a tp::install resource so that it shows up in the
// catalog next to the component's other resources.
package install

import (
	"context"
	"fmt"

	"github.com/specialistvlad/profilegrid/internal/ctxlog"
	"github.com/specialistvlad/profilegrid/internal/merge"
	"github.com/specialistvlad/profilegrid/internal/model"
	"github.com/specialistvlad/profilegrid/internal/sink"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Delegate installs a component.
type Delegate interface {
	InstallComponent(ctx context.Context, name string, params cty.Value) error
}

// Func adapts a plain function to the Delegate interface.
type Func func(ctx context.Context, name string, params cty.Value) error

// InstallComponent calls f.
func (f Func) InstallComponent(ctx context.Context, name string, params cty.Value) error {
	return f(ctx, name, params)
}

// Noop is a Delegate that does nothing.
var Noop Delegate = Func(func(context.Context, string, cty.Value) error { return nil })

// Params builds the install step's params from the profile state. installHash
// is merged over the computed values and wins on every key it sets.
func Params(state model.ProfileState, upstreamRepo, autoRepo bool, installHash cty.Value) cty.Value {
	base := value.Mapping(map[string]cty.Value{
		"ensure":       cty.StringVal(state.Ensure.String()),
		"optionsAll":   state.Options(),
		"settingsHash": state.Settings(),
		"autoRepo":     cty.BoolVal(autoRepo),
		"autoPrereq":   cty.BoolVal(state.AutoPrereq),
		"upstreamRepo": cty.BoolVal(upstreamRepo),
	})
	return merge.Overlay(installHash, base)
}

// SinkDelegate declares the install step as a tp::install resource.
type SinkDelegate struct {
	Sink sink.Sink
}

// NewSinkDelegate creates a SinkDelegate writing to s.
func NewSinkDelegate(s sink.Sink) *SinkDelegate {
	return &SinkDelegate{Sink: s}
}

// InstallComponent declares tp::install[name]. The enforcement mode is read
// from ctx.
func (d *SinkDelegate) InstallComponent(ctx context.Context, name string, params cty.Value) error {
	if !value.IsSet(params) {
		params = value.EmptyMapping()
	}
	if !value.IsMapping(params) {
		return fmt.Errorf("install params for %s must be a mapping, got a %s", name, value.KindOf(params))
	}

	decl := model.Declaration{
		Component: name,
		Intent:    model.ResourceIntent{Type: sink.InstallType, Name: name, Params: params},
		Mode:      model.ModeFromContext(ctx),
	}
	ctxlog.FromContext(ctx).Debug("Declaring install step", "component", name, "mode", decl.Mode)
	if err := d.Sink.Declare(ctx, decl); err != nil {
		return fmt.Errorf("declaring install step for %s: %w", name, err)
	}
	return nil
}
