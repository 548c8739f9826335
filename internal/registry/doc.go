// Package registry provides the central "glue" for the component profiles
// compiled into the binary.
//
// Each package under modules/ describes one component (what resource types
// its profile may declare, which auto-configuration it brings along) and
// registers that Descriptor here through the Module interface. The CLI and
// the profile activator only ever look components up by name.
//
// During application startup, the registry is populated and then validated,
// so that a malformed descriptor fails fast instead of surfacing as a
// confusing resolution error halfway through a run.
package registry
