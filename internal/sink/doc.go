// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package sink defines where resolved resources go once a profile has been
// activated.
//
// # Implementations
//
//   - inmemorystore.Store keeps declarations in memory and is the reference
//     sink used by tests.
//   - Catalog wraps a memory store and renders what was declared as HCL, JSON
//     or YAML. This is what the CLI writes.
//   - Agent forwards every declaration to a remote agent over socket.io and
//     waits for it to acknowledge the declaration.
//
// A sink never merges or rewrites params; whatever it receives is final.
package sink
