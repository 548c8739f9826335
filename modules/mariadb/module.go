// Package mariadb describes the MariaDB database server profile.
package mariadb

import (
	"github.com/specialistvlad/profilegrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Name is the component name used in lookups ("profiles::mariadb").
const Name = "mariadb"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Descriptor returns the mariadb component descriptor.
func Descriptor() *registry.Descriptor {
	return &registry.Descriptor{
		Name:          Name,
		Description:   "MariaDB database server",
		ResourceTypes: []string{"tp::conf", "tp::dir", "file", "exec"},
		AutoConfResources: cty.ObjectVal(map[string]cty.Value{
			"tp::conf": cty.ObjectVal(map[string]cty.Value{
				"mariadb::server.cnf": cty.ObjectVal(map[string]cty.Value{
					"path": cty.StringVal("/etc/mysql/mariadb.conf.d/50-server.cnf"),
				}),
			}),
		}),
		AutoConfOptions: cty.ObjectVal(map[string]cty.Value{
			"bind-address": cty.StringVal("127.0.0.1"),
		}),
		ResourceDefaults: cty.ObjectVal(map[string]cty.Value{
			"exec": cty.ObjectVal(map[string]cty.Value{
				"refreshonly": cty.True,
			}),
		}),
	}
}

// Register registers the descriptor with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterDescriptor(Descriptor())
}
