// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package orchestrator drives one profile activation from a computed
// ProfileState to declared resources.
//
// # Lifecycle
//
// An activation starts Idle. A component that is not managed stays Idle and
// touches nothing. Otherwise the activation becomes Resolved: the install
// delegate runs exactly once, then every (type, name) pair found in the
// auto-configuration and explicit layers is resolved and handed to the sink.
//
// # Conflicts
//
// An Orchestrator owns the declaration ledger of one resolution pass. Two
// profiles activated in the same pass that produce the same address with
// identical params are coalesced into a single declaration; different params
// are reported as a ConflictingResourceError and the second one is dropped.
// Errors are collected per resource, so one bad resource never hides the
// others.
package orchestrator
