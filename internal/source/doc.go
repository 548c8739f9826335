// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package source implements config.Source on top of data files laid out
// the way Hiera 5 lays them out.
//
// # Layout
//
// A hierarchy.yaml file lists levels from most to least specific:
//
//	version: 5
//	defaults:
//	  datadir: data
//	hierarchy:
//	  - name: "Per node"
//	    path: "nodes/%{hostname}.yaml"
//	  - name: "Roles"
//	    glob: "roles/*.hcl"
//	  - name: "Common"
//	    path: "common.yaml"
//
// Paths are relative to the level's datadir, which is relative to the
// directory holding hierarchy.yaml. %{name} placeholders are filled from
// facts; a level whose placeholders cannot all be filled is skipped, as is a
// path that does not exist. YAML, JSON and HCL data files are supported and
// may be mixed.
//
// A directory without a hierarchy.yaml is read as a flat hierarchy: every
// data file below it is a level, in lexical path order.
package source
