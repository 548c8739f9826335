// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package profile

import (
	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/profilegrid/internal/install"
	"github.com/specialistvlad/profilegrid/internal/layer"
	"github.com/specialistvlad/profilegrid/internal/merge"
	"github.com/specialistvlad/profilegrid/internal/model"
	"github.com/specialistvlad/profilegrid/internal/orchestrator"
	"github.com/specialistvlad/profilegrid/internal/registry"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Layer priorities. Explicit resources always win over auto-configuration.
const (
	AutoConfPriority = 10
	ExplicitPriority = 20
)

// Environment is the per-run context a profile is activated in.
type Environment struct {
	Mode     model.EnforcementMode
	ExecPath string
}

// Build computes the activation for desc from opts. Option layers that are
// malformed are left out and reported in the returned error; the
// activation is usable either way.
func Build(desc *registry.Descriptor, opts Options, env Environment) (orchestrator.Activation, error) {
	var errs *multierror.Error
	mapping := func(name string, v any) cty.Value {
		m, err := optionMapping(name, v)
		if err != nil {
			errs = multierror.Append(errs, err)
			return cty.NullVal(cty.DynamicPseudoType)
		}
		return m
	}

	optionsHash := mapping("optionsHash", opts.OptionsHash)
	settingsHash := mapping("settingsHash", opts.SettingsHash)
	installHash := mapping("installHash", opts.InstallHash)
	typeDefaults := merge.Overlay(mapping("resourcesDefaults", opts.ResourcesDefaults), desc.ResourceDefaults)

	optionsAll := optionsHash
	if opts.AutoConf {
		autoOptions := merge.Overlay(mapping("optionsAutoConfHash", opts.OptionsAutoConfHash), desc.AutoConfOptions)
		optionsAll = merge.Overlay(optionsHash, autoOptions)
	}

	state := model.ProfileState{
		Ensure:       model.ParseEnsure(opts.Ensure),
		Manage:       opts.Manage,
		AutoConf:     opts.AutoConf,
		AutoPrereq:   opts.AutoPrereq,
		Enforcement:  model.EffectiveMode(env.Mode, opts.NoNoop),
		OptionsAll:   orEmpty(optionsAll),
		SettingsHash: orEmpty(settingsHash),
		ExecPath:     env.ExecPath,
	}

	act := orchestrator.Activation{
		Descriptor:   desc,
		State:        state,
		TypeDefaults: typeDefaults,
		Install:      install.Params(state, opts.UpstreamRepo, opts.AutoRepo, installHash),
	}

	autoRes := merge.Overlay(mapping("resourcesAutoConfHash", opts.ResourcesAutoConfHash), desc.AutoConfResources)
	if l, err := layer.New("autoconf", AutoConfPriority, autoRes); err != nil {
		errs = multierror.Append(errs, err)
	} else {
		act.AutoConf = l
	}

	explicit := merge.Overlay(mapping("resourcesHash", opts.ResourcesHash), mapping("resources", opts.Resources))
	if l, err := layer.New("explicit", ExplicitPriority, explicit); err != nil {
		errs = multierror.Append(errs, err)
	} else {
		act.Explicit = l
	}

	return act, errs.ErrorOrNil()
}

// optionMapping converts a hash option. Unset options are null; anything but
// a mapping is an InvalidLayerError naming the option.
func optionMapping(name string, v any) (cty.Value, error) {
	if v == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	converted, err := value.FromNative(v)
	if err != nil {
		return cty.NilVal, &layer.InvalidLayerError{Layer: name, Err: err}
	}
	l, err := layer.New(name, 0, converted)
	if err != nil {
		return cty.NilVal, err
	}
	return l.Data(), nil
}

func orEmpty(v cty.Value) cty.Value {
	if !value.IsSet(v) {
		return value.EmptyMapping()
	}
	return v
}
