// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model defines the data exchanged between the resolution stages.
//
// # Core Concepts
//
//   - ProfileState: the per-invocation state of one profile activation. It
//     carries the `ensure` state and the `manage`/`autoConf`/`autoPrereq`
//     gates, the enforcement mode, and the option hashes that state-derived
//     defaults forward into resources.
//
//   - ResourceIntent: one fully resolved resource, ready to be handed to a
//     sink. Its params are always a mapping.
//
//   - Declaration: a ResourceIntent together with the component that
//     produced it and the enforcement mode the sink must apply.
//
// Nothing in this package holds state across invocations. Intents are built,
// handed over and discarded.
package model
