// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package profile turns a component's top-level options into an
// orchestrator activation.
//
// Options are read from the configuration source under
// "profiles::<component>" with a deep merge, decoded with mapstructure, and
// then split into the pieces the orchestrator works with: the ProfileState,
// the auto-configuration and explicit resource layers, per-type defaults and
// the install step's params.
//
// The hash-shaped options are decoded loosely and validated one by one. A
// malformed option only drops the layer it feeds; it is reported alongside
// whatever the rest of the profile resolved to.
package profile
