package registry

import (
	"slices"

	"github.com/zclconf/go-cty/cty"
)

// Descriptor describes one component profile.
type Descriptor struct {
	Name        string
	Description string

	// ResourceTypes lists the resource types the profile may declare.
	// Empty means any type.
	ResourceTypes []string

	// AutoConfResources are the component's built-in auto-configuration
	// resources, keyed by type and then by name. User supplied
	// resourcesAutoConfHash is merged over them.
	AutoConfResources cty.Value

	// AutoConfOptions are the built-in auto-configuration options, merged
	// under optionsAutoConfHash.
	AutoConfOptions cty.Value

	// ResourceDefaults are per-type defaults, merged under
	// resourcesDefaults.
	ResourceDefaults cty.Value
}

// Supports reports whether the profile may declare resources of resourceType.
func (d *Descriptor) Supports(resourceType string) bool {
	if len(d.ResourceTypes) == 0 {
		return true
	}
	return slices.Contains(d.ResourceTypes, resourceType)
}
