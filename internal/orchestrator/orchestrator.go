// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package orchestrator

import (
	"bytes"
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/profilegrid/internal/ctxlog"
	"github.com/specialistvlad/profilegrid/internal/install"
	"github.com/specialistvlad/profilegrid/internal/layer"
	"github.com/specialistvlad/profilegrid/internal/model"
	"github.com/specialistvlad/profilegrid/internal/nodeid"
	"github.com/specialistvlad/profilegrid/internal/registry"
	"github.com/specialistvlad/profilegrid/internal/resolver"
	"github.com/specialistvlad/profilegrid/internal/sink"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// Phase is the lifecycle state of an activation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseResolved
)

func (p Phase) String() string {
	if p == PhaseResolved {
		return "resolved"
	}
	return "idle"
}

// Activation is everything needed to activate one profile.
type Activation struct {
	Descriptor *registry.Descriptor
	State      model.ProfileState

	// AutoConf holds the auto-configuration resources. It is only used when
	// State.AutoConf is set.
	AutoConf *layer.Layer
	// Explicit holds the resources the user asked for.
	Explicit *layer.Layer

	// TypeDefaults maps resource type to the defaults applied to every
	// resource of that type.
	TypeDefaults cty.Value
	// Install is the install delegate's params.
	Install cty.Value
}

// Result describes the outcome of one activation.
type Result struct {
	Component string
	Phase     Phase
	// Intents are the intents this activation declared, sorted.
	Intents []model.ResourceIntent
	// Coalesced are addresses already declared with identical params.
	Coalesced []nodeid.Address
	// Skipped are addresses of types the component does not support.
	Skipped []nodeid.Address
}

type ledgerEntry struct {
	intent    model.ResourceIntent
	canonical []byte
}

// Orchestrator activates profiles for one resolution pass.
type Orchestrator struct {
	resolver  *resolver.Resolver
	sink      sink.Sink
	installer install.Delegate

	ledger map[string]ledgerEntry
	order  []string
}

// New creates an Orchestrator for a single pass.
func New(res *resolver.Resolver, s sink.Sink, installer install.Delegate) *Orchestrator {
	if res == nil {
		res = resolver.New()
	}
	if installer == nil {
		installer = install.Noop
	}
	return &Orchestrator{
		resolver:  res,
		sink:      s,
		installer: installer,
		ledger:    make(map[string]ledgerEntry),
	}
}

// Activate runs one profile activation. The returned error aggregates every
// per-resource failure; the Result is populated either way.
func (o *Orchestrator) Activate(ctx context.Context, in Activation) (*Result, error) {
	if in.Descriptor == nil {
		return nil, fmt.Errorf("activation has no component descriptor")
	}
	component := in.Descriptor.Name
	logger := ctxlog.FromContext(ctx).With("component", component)
	res := &Result{Component: component, Phase: PhaseIdle}

	if !in.State.Manage {
		logger.Info("Component is not managed, nothing to declare.")
		return res, nil
	}
	res.Phase = PhaseResolved

	ctx = model.WithMode(ctx, in.State.Enforcement)
	logger.Debug("Running install step.", "ensure", in.State.Ensure, "mode", in.State.Enforcement)
	if err := o.installer.InstallComponent(ctx, component, in.Install); err != nil {
		return res, fmt.Errorf("install step for %s failed: %w", component, err)
	}

	var layers []*layer.Layer
	if in.State.AutoConf && in.AutoConf != nil {
		layers = append(layers, in.AutoConf)
	}
	if in.Explicit != nil {
		layers = append(layers, in.Explicit)
	}

	addrs, errs := collect(layers)
	for _, addr := range addrs {
		if !in.Descriptor.Supports(addr.Type) {
			logger.Warn("Skipping resource of a type the component does not support.", "address", addr.String())
			res.Skipped = append(res.Skipped, addr)
			continue
		}

		intent, err := o.resolver.Resolve(addr.Type, addr.Name, in.State, layers, typeDefaults(in.TypeDefaults, addr.Type), cty.NullVal(cty.DynamicPseudoType))
		if err != nil {
			errs = multierror.Append(errs, &ResourceError{Address: addr, Err: err})
			continue
		}

		declared, err := o.declare(ctx, component, in.State.Enforcement, intent)
		if err != nil {
			logger.Error("Failed to declare resource.", "address", addr.String(), "error", err)
			errs = multierror.Append(errs, &ResourceError{Address: addr, Err: err})
			continue
		}
		if declared {
			res.Intents = append(res.Intents, intent)
		} else {
			res.Coalesced = append(res.Coalesced, addr)
		}
	}

	model.SortIntents(res.Intents)
	logger.Info("Component resolved.", "declared", len(res.Intents), "coalesced", len(res.Coalesced), "skipped", len(res.Skipped))
	return res, errs.ErrorOrNil()
}

// declare records intent in the ledger and forwards it to the sink. It
// returns false when an identical intent was already declared this pass.
func (o *Orchestrator) declare(ctx context.Context, component string, mode model.EnforcementMode, intent model.ResourceIntent) (bool, error) {
	key := intent.Address().String()
	canonical, err := intent.Canonical()
	if err != nil {
		return false, err
	}

	if prev, ok := o.ledger[key]; ok {
		if bytes.Equal(prev.canonical, canonical) {
			ctxlog.FromContext(ctx).Debug("Coalescing identical declaration.", "address", key)
			return false, nil
		}
		return false, &ConflictingResourceError{Address: intent.Address(), Existing: prev.intent, Incoming: intent}
	}

	decl := model.Declaration{Component: component, Intent: intent, Mode: mode}
	if err := o.sink.Declare(ctx, decl); err != nil {
		return false, err
	}
	o.ledger[key] = ledgerEntry{intent: intent, canonical: canonical}
	o.order = append(o.order, key)
	return true, nil
}

// Intents returns every intent declared during the pass, sorted.
func (o *Orchestrator) Intents() []model.ResourceIntent {
	out := make([]model.ResourceIntent, 0, len(o.order))
	for _, key := range o.order {
		out = append(out, o.ledger[key].intent)
	}
	model.SortIntents(out)
	return out
}

// collect returns the sorted, de-duplicated addresses defined by layers.
// A type entry that is not a mapping is reported and contributes nothing.
func collect(layers []*layer.Layer) ([]nodeid.Address, *multierror.Error) {
	var errs *multierror.Error
	seen := make(map[nodeid.Address]struct{})
	var addrs []nodeid.Address

	for _, l := range layers {
		for _, typ := range l.Keys() {
			byName, _ := l.Get(typ)
			if !value.IsSet(byName) {
				continue
			}
			if !value.IsMapping(byName) {
				addr := nodeid.New(typ, "")
				errs = multierror.Append(errs, &ResourceError{
					Address: addr,
					Err:     &resolver.ShapeError{Address: addr, Layer: l.Name(), Got: value.KindOf(byName).String()},
				})
				continue
			}
			for _, name := range value.Keys(byName) {
				addr := nodeid.New(typ, name)
				if _, dup := seen[addr]; dup {
					continue
				}
				seen[addr] = struct{}{}
				addrs = append(addrs, addr)
			}
		}
	}

	nodeid.Sort(addrs)
	return addrs, errs
}

func typeDefaults(all cty.Value, resourceType string) cty.Value {
	if v, ok := value.Get(all, resourceType); ok {
		return v
	}
	return cty.NullVal(cty.DynamicPseudoType)
}
