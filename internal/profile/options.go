// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package profile

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/specialistvlad/profilegrid/internal/config"
	"github.com/specialistvlad/profilegrid/internal/ctxlog"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// LookupPrefix is prepended to the component name to form its lookup key.
const LookupPrefix = "profiles::"

// Options are the top-level options every profile recognizes.
type Options struct {
	Ensure       string `mapstructure:"ensure"`
	Manage       bool   `mapstructure:"manage"`
	UpstreamRepo bool   `mapstructure:"upstreamRepo"`
	AutoRepo     bool   `mapstructure:"autoRepo"`
	AutoConf     bool   `mapstructure:"autoConf"`
	AutoPrereq   bool   `mapstructure:"autoPrereq"`
	NoNoop       bool   `mapstructure:"noNoop"`

	// Hash options are validated when the layer they feed is built.
	InstallHash           any `mapstructure:"installHash"`
	OptionsHash           any `mapstructure:"optionsHash"`
	SettingsHash          any `mapstructure:"settingsHash"`
	ResourcesAutoConfHash any `mapstructure:"resourcesAutoConfHash"`
	OptionsAutoConfHash   any `mapstructure:"optionsAutoConfHash"`
	Resources             any `mapstructure:"resources"`
	ResourcesHash         any `mapstructure:"resourcesHash"`
	ResourcesDefaults     any `mapstructure:"resourcesDefaults"`
}

// DefaultOptions returns the options of a component nobody configured.
func DefaultOptions() Options {
	return Options{Ensure: "present", Manage: true}
}

// LookupKey returns the configuration key holding component's options.
func LookupKey(component string) string {
	return LookupPrefix + component
}

// LoadOptions reads and decodes component's options from src.
func LoadOptions(ctx context.Context, src config.Source, component string) (Options, error) {
	raw, err := src.Lookup(ctx, LookupKey(component), config.ShapeMapping, config.MergeDeep, value.EmptyMapping())
	if err != nil {
		return Options{}, fmt.Errorf("looking up options of %s: %w", component, err)
	}
	return DecodeOptions(ctx, raw)
}

// DecodeOptions decodes a mapping of options. Unknown keys are logged and
// ignored. Scalars are converted loosely ("true" is a valid bool).
func DecodeOptions(ctx context.Context, raw cty.Value) (Options, error) {
	opts := DefaultOptions()
	if !value.IsSet(raw) {
		return opts, nil
	}
	if !value.IsMapping(raw) {
		return Options{}, fmt.Errorf("profile options must be a mapping, got a %s", value.KindOf(raw))
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
		Metadata:         &md,
	})
	if err != nil {
		return Options{}, err
	}
	if err := dec.Decode(value.NativeMapping(raw)); err != nil {
		return Options{}, fmt.Errorf("decoding profile options: %w", err)
	}

	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		ctxlog.FromContext(ctx).Warn("Ignoring unknown profile options.", "keys", md.Unused)
	}
	return opts, nil
}
