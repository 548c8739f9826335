// Package nginx describes the nginx web server profile.
package nginx

import (
	"github.com/specialistvlad/profilegrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Name is the component name used in lookups ("profiles::nginx").
const Name = "nginx"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Descriptor returns the nginx component descriptor.
func Descriptor() *registry.Descriptor {
	return &registry.Descriptor{
		Name:          Name,
		Description:   "nginx web server and reverse proxy",
		ResourceTypes: []string{"tp::conf", "tp::dir", "file", "exec"},
		AutoConfResources: cty.ObjectVal(map[string]cty.Value{
			"tp::conf": cty.ObjectVal(map[string]cty.Value{
				"nginx": cty.ObjectVal(map[string]cty.Value{
					"base_file": cty.StringVal("nginx.conf"),
				}),
			}),
			"tp::dir": cty.ObjectVal(map[string]cty.Value{
				"nginx::conf.d": cty.ObjectVal(map[string]cty.Value{
					"path": cty.StringVal("/etc/nginx/conf.d"),
				}),
			}),
		}),
		AutoConfOptions: cty.ObjectVal(map[string]cty.Value{
			"worker_processes": cty.StringVal("auto"),
		}),
	}
}

// Register registers the descriptor with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterDescriptor(Descriptor())
}
