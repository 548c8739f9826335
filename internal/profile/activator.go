// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package profile

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/profilegrid/internal/config"
	"github.com/specialistvlad/profilegrid/internal/ctxlog"
	"github.com/specialistvlad/profilegrid/internal/orchestrator"
	"github.com/specialistvlad/profilegrid/internal/registry"
)

// Activator activates registered components against one configuration
// source. It shares a single orchestrator, so every component activated
// through one Activator belongs to the same resolution pass.
type Activator struct {
	source   config.Source
	registry *registry.Registry
	orch     *orchestrator.Orchestrator
	env      Environment
}

// NewActivator creates an Activator.
func NewActivator(src config.Source, reg *registry.Registry, orch *orchestrator.Orchestrator, env Environment) *Activator {
	return &Activator{source: src, registry: reg, orch: orch, env: env}
}

// Activate resolves and declares component. The result is returned even
// when some of its resources or option layers failed.
func (a *Activator) Activate(ctx context.Context, component string) (*orchestrator.Result, error) {
	ctx, logger := ctxlog.With(ctx, "component", component)

	desc, ok := a.registry.Lookup(component)
	if !ok {
		return nil, fmt.Errorf("unknown component %q", component)
	}

	opts, err := LoadOptions(ctx, a.source, component)
	if err != nil {
		return nil, err
	}

	act, buildErr := Build(desc, opts, a.env)
	if buildErr != nil {
		logger.Warn("Some profile options were invalid and have been ignored.", "error", buildErr)
	}

	res, err := a.orch.Activate(ctx, act)
	var errs *multierror.Error
	if buildErr != nil {
		errs = multierror.Append(errs, buildErr)
	}
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	return res, errs.ErrorOrNil()
}

// ActivateAll activates components in order. Every component is attempted;
// failures are aggregated.
func (a *Activator) ActivateAll(ctx context.Context, components []string) ([]*orchestrator.Result, error) {
	var (
		results []*orchestrator.Result
		errs    *multierror.Error
	)
	for _, c := range components {
		res, err := a.Activate(ctx, c)
		if res != nil {
			results = append(results, res)
		}
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("component %s: %w", c, err))
		}
	}
	return results, errs.ErrorOrNil()
}
