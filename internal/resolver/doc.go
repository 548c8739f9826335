// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package resolver computes the final parameter set of one resource.
//
// Parameters are combined in ascending precedence:
//
//  1. type defaults (the profile's resourcesDefaults entry for the type),
//  2. state defaults derived from the ProfileState through the shared
//     DefaultsTable,
//  3. the resource's own entries in the configuration layers, deep merged
//     by layer priority,
//  4. per-instance overrides supplied by the caller.
//
// Unknown resource types get empty state defaults unless the resolver runs
// in strict mode.
package resolver
