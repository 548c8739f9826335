// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package resolver

import (
	"fmt"

	"github.com/specialistvlad/profilegrid/internal/nodeid"
)

// UnknownResourceTypeError is returned in strict mode for a resource type
// that has no entry in the defaults table.
type UnknownResourceTypeError struct {
	Type string
	Name string
}

func (e *UnknownResourceTypeError) Error() string {
	return fmt.Sprintf("unknown resource type %q for resource %s", e.Type, nodeid.New(e.Type, e.Name))
}

// ShapeError reports a resource entry that is not a mapping.
type ShapeError struct {
	Address nodeid.Address
	Layer   string
	Got     string
}

func (e *ShapeError) Error() string {
	if e.Address.Name == "" {
		return fmt.Sprintf("layer %q: expected a mapping of %s resources, got a %s", e.Layer, e.Address.Type, e.Got)
	}
	return fmt.Sprintf("layer %q: expected a mapping of parameters for %s, got a %s", e.Layer, e.Address, e.Got)
}
