package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/profilegrid/internal/ctxlog"
	"github.com/specialistvlad/profilegrid/internal/install"
	"github.com/specialistvlad/profilegrid/internal/model"
	"github.com/specialistvlad/profilegrid/internal/nodeid"
	"github.com/specialistvlad/profilegrid/internal/orchestrator"
	"github.com/specialistvlad/profilegrid/internal/profile"
	"github.com/specialistvlad/profilegrid/internal/resolver"
	"github.com/specialistvlad/profilegrid/internal/sink"
	"github.com/specialistvlad/profilegrid/internal/source"
)

// Run resolves the configured profiles and writes the resulting catalog.
// The catalog is written even when some resources failed, so partial
// results stay inspectable; the failures are returned afterwards.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	cfg := a.config

	format, err := sink.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	facts, err := a.facts()
	if err != nil {
		return err
	}
	a.logger.Debug("Facts collected.", "count", len(facts))

	src, err := source.Open(cfg.Hierarchy, facts)
	if err != nil {
		return fmt.Errorf("failed to open hierarchy: %w", err)
	}

	only, err := nodeid.ParseAll(cfg.Only)
	if err != nil {
		return fmt.Errorf("invalid --only filter: %w", err)
	}
	catalog := sink.NewCatalog(sink.WithOnly(only...))

	var target sink.Sink = catalog
	if cfg.AgentURL != "" {
		agent, err := sink.DialAgent(ctx, sink.AgentOptions{
			URL:                cfg.AgentURL,
			InsecureSkipVerify: cfg.AgentInsecure,
			Timeout:            cfg.AgentTimeout,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to agent: %w", err)
		}
		defer agent.Close()
		target = sink.Multi(catalog, agent)
	}

	env := profile.Environment{Mode: model.ModeEnforce, ExecPath: cfg.ExecPath}
	if cfg.Noop {
		env.Mode = model.ModeNoop
	}
	orch := orchestrator.New(
		resolver.New(resolver.WithStrict(cfg.Strict)),
		target,
		install.NewSinkDelegate(target),
	)
	activator := profile.NewActivator(src, a.registry, orch, env)

	components := cfg.Profiles
	if len(components) == 0 {
		components = a.registry.Names()
	}
	a.logger.Info("Resolving profiles.", "profiles", components, "mode", env.Mode)

	results, runErr := activator.ActivateAll(ctx, components)
	for _, res := range results {
		a.logger.Info("Profile resolved.",
			"component", res.Component,
			"resources", len(res.Intents),
			"coalesced", len(res.Coalesced),
			"skipped", len(res.Skipped),
		)
	}

	var errs *multierror.Error
	if runErr != nil {
		errs = multierror.Append(errs, runErr)
	}
	if err := a.writeCatalog(catalog, format); err != nil {
		errs = multierror.Append(errs, err)
	}

	a.logger.Debug("App.Run method finished.", "declared", catalog.Len())
	return errs.ErrorOrNil()
}

// facts layers FACTER_* variables, the env file, and --fact values, in
// increasing precedence.
func (a *App) facts() (source.Facts, error) {
	facts := source.FactsFromEnviron(os.Environ())
	if a.config.EnvFile != "" {
		fromFile, err := source.LoadEnvFile(a.config.EnvFile)
		if err != nil {
			return nil, err
		}
		facts = facts.Merge(fromFile)
	}
	explicit := source.Facts{}
	for _, kv := range a.config.Facts {
		k, v, err := source.ParseFact(kv)
		if err != nil {
			return nil, err
		}
		explicit[k] = v
	}
	return facts.Merge(explicit), nil
}

func (a *App) writeCatalog(catalog *sink.Catalog, format sink.Format) error {
	var w io.Writer = a.outW
	if a.config.Output != "" && a.config.Output != "-" {
		f, err := os.Create(a.config.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := catalog.Write(w, format); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}
