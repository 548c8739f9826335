// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package orchestrator

import (
	"fmt"

	"github.com/specialistvlad/profilegrid/internal/model"
	"github.com/specialistvlad/profilegrid/internal/nodeid"
	"github.com/specialistvlad/profilegrid/internal/value"
)

// ConflictingResourceError reports two different intents for one address
// within a single pass.
type ConflictingResourceError struct {
	Address  nodeid.Address
	Existing model.ResourceIntent
	Incoming model.ResourceIntent
}

func (e *ConflictingResourceError) Error() string {
	return fmt.Sprintf("conflicting declarations of %s: %s declared first, %s requested",
		e.Address, value.Describe(e.Existing.Params), value.Describe(e.Incoming.Params))
}

// ResourceError attributes a failure to the resource it happened on.
type ResourceError struct {
	Address nodeid.Address
	Err     error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Address, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
