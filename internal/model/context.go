// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "context"

type modeKey struct{}

// WithMode returns a context carrying the enforcement mode of the current
// activation, for collaborators whose signatures do not carry it.
func WithMode(ctx context.Context, mode EnforcementMode) context.Context {
	return context.WithValue(ctx, modeKey{}, mode)
}

// ModeFromContext returns the mode stored by WithMode, or ModeEnforce.
func ModeFromContext(ctx context.Context) EnforcementMode {
	if mode, ok := ctx.Value(modeKey{}).(EnforcementMode); ok {
		return mode
	}
	return ModeEnforce
}
