// Package libvirt describes the libvirt virtualization daemon profile.
package libvirt

import (
	"github.com/specialistvlad/profilegrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Name is the component name used in lookups ("profiles::libvirt").
const Name = "libvirt"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Descriptor returns the libvirt component descriptor. libvirt ships no
// helper commands, so exec resources are not supported.
func Descriptor() *registry.Descriptor {
	return &registry.Descriptor{
		Name:          Name,
		Description:   "libvirt virtualization daemon",
		ResourceTypes: []string{"tp::conf", "tp::dir", "file"},
		AutoConfResources: cty.ObjectVal(map[string]cty.Value{
			"tp::conf": cty.ObjectVal(map[string]cty.Value{
				"libvirt::libvirtd.conf": cty.EmptyObjectVal,
			}),
			"tp::dir": cty.ObjectVal(map[string]cty.Value{
				"libvirt::images": cty.ObjectVal(map[string]cty.Value{
					"path": cty.StringVal("/var/lib/libvirt/images"),
				}),
			}),
		}),
	}
}

// Register registers the descriptor with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterDescriptor(Descriptor())
}
