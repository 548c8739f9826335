// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package value defines the configuration value model shared by every other
// package: a ConfigValue is a cty.Value classified as a scalar, a sequence or
// a mapping.
//
// # Why cty?
//
// Profiles receive schemaless, hash-shaped configuration. cty already gives
// us an immutable tagged variant with deterministic attribute ordering, and it
// is the value model of the HCL toolchain used to read and write
// configuration. Shape is checked lazily, at the point of use, with the
// predicates in this package instead of a rigid upfront schema.
//
// Absence is never encoded as a value. Functions that may not find a key
// return an additional ok flag, so callers can tell "not configured" apart
// from "configured as empty".
package value
