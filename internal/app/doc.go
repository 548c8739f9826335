// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the resolution lifecycle, decoupled from
// any specific entrypoint like a CLI.
//
// Configuration is layered with koanf: built-in defaults, then
// PROFILEGRID_* environment variables, then explicit overrides from the
// entrypoint. The result is validated before an App is built.
package app
