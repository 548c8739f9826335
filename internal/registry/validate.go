package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/profilegrid/internal/ctxlog"
	"github.com/specialistvlad/profilegrid/internal/nodeid"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/zclconf/go-cty/cty"
)

// ValidateRegistry checks every descriptor: resource type names must be
// well formed, and built-in auto-configuration must have the shape the
// resolver expects and only use supported types.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, d := range r.All() {
		for _, typ := range d.ResourceTypes {
			if !nodeid.ValidType(typ) {
				errs = append(errs, fmt.Sprintf("component '%s': invalid resource type name '%s'", d.Name, typ))
			}
		}

		for field, v := range map[string]cty.Value{
			"AutoConfOptions":  d.AutoConfOptions,
			"ResourceDefaults": d.ResourceDefaults,
		} {
			if value.IsSet(v) && !value.IsMapping(v) {
				errs = append(errs, fmt.Sprintf("component '%s': %s must be a mapping, got a %s", d.Name, field, value.KindOf(v)))
			}
		}

		if !value.IsSet(d.AutoConfResources) {
			continue
		}
		if !value.IsMapping(d.AutoConfResources) {
			errs = append(errs, fmt.Sprintf("component '%s': AutoConfResources must be a mapping, got a %s", d.Name, value.KindOf(d.AutoConfResources)))
			continue
		}
		for _, typ := range value.Keys(d.AutoConfResources) {
			if !d.Supports(typ) {
				errs = append(errs, fmt.Sprintf("component '%s': auto-configured resource type '%s' is not in ResourceTypes", d.Name, typ))
			}
			byName, _ := value.Get(d.AutoConfResources, typ)
			if !value.IsMapping(byName) {
				errs = append(errs, fmt.Sprintf("component '%s': auto-configured '%s' resources must be a mapping, got a %s", d.Name, typ, value.KindOf(byName)))
				continue
			}
			for _, name := range value.Keys(byName) {
				params, _ := value.Get(byName, name)
				if value.IsSet(params) && !value.IsMapping(params) {
					errs = append(errs, fmt.Sprintf("component '%s': auto-configured %s must be a mapping, got a %s", d.Name, nodeid.New(typ, name), value.KindOf(params)))
				}
			}
		}

		if len(d.ResourceTypes) == 0 {
			logger.Debug("Component accepts any resource type.", "component", d.Name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}
