// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
// Package inmemorystore provides an ephemeral, thread-safe, in-memory
// registry of resource declarations.
//
// # Purpose
//
// The store is the reference resource-declaration sink. It enforces the
// at-most-one registration rule per resource address: declaring an address a
// second time with byte-identical params is a no-op, declaring it with
// different params fails with a DuplicateError and leaves the first
// registration untouched.
//
// # Concurrency Model
//
// Declarations are kept in a sync.Map keyed by the address string. A host
// application may run several unrelated resolution passes against one store;
// LoadOrStore makes the first registration of an address win without a
// global lock. Registration order is tracked with an atomic sequence so that
// Declarations can replay them in the order they arrived.
package inmemorystore
