// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package sink

import (
	"context"

	"github.com/specialistvlad/profilegrid/internal/inmemorystore"
	"github.com/specialistvlad/profilegrid/internal/model"
)

// Sink receives one declaration per resolved resource.
type Sink interface {
	Declare(ctx context.Context, d model.Declaration) error
}

// Func adapts a plain function to the Sink interface.
type Func func(ctx context.Context, d model.Declaration) error

// Declare calls f.
func (f Func) Declare(ctx context.Context, d model.Declaration) error {
	return f(ctx, d)
}

var _ Sink = (*inmemorystore.Store)(nil)
var _ Sink = (*Catalog)(nil)
var _ Sink = (*Agent)(nil)

// Multi declares to every sink in order and stops at the first failure.
func Multi(sinks ...Sink) Sink {
	return Func(func(ctx context.Context, d model.Declaration) error {
		for _, s := range sinks {
			if err := s.Declare(ctx, d); err != nil {
				return err
			}
		}
		return nil
	})
}
