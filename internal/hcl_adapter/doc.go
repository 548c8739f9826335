// Package hcl_adapter reads HCL configuration data levels.
//
// An HCL data file holds lookup keys in two forms that may be mixed:
//
//	motd = "managed by profilegrid"
//
//	key "profiles::nginx" {
//	  ensure      = "present"
//	  optionsHash = { worker_processes = 4 }
//	}
//
// Top-level attributes work for keys that are valid HCL identifiers; the
// key block form is for everything else, such as namespaced profile keys.
// Expressions may reference facts (facts.os) and a small set of string and
// collection functions.
package hcl_adapter
