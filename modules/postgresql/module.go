// Package postgresql describes the PostgreSQL database server profile.
package postgresql

import (
	"github.com/specialistvlad/profilegrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Name is the component name used in lookups ("profiles::postgresql").
const Name = "postgresql"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Descriptor returns the postgresql component descriptor.
func Descriptor() *registry.Descriptor {
	return &registry.Descriptor{
		Name:          Name,
		Description:   "PostgreSQL database server",
		ResourceTypes: []string{"tp::conf", "tp::dir", "file", "exec"},
		AutoConfResources: cty.ObjectVal(map[string]cty.Value{
			"tp::conf": cty.ObjectVal(map[string]cty.Value{
				"postgresql::postgresql.conf": cty.EmptyObjectVal,
				"postgresql::pg_hba.conf":     cty.EmptyObjectVal,
			}),
		}),
		AutoConfOptions: cty.ObjectVal(map[string]cty.Value{
			"listen_addresses": cty.StringVal("localhost"),
		}),
	}
}

// Register registers the descriptor with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterDescriptor(Descriptor())
}
