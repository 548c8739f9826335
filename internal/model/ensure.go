// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "strings"

// Ensure is the requested installation state of a component: present,
// absent, latest, or an explicit version string.
type Ensure string

const (
	EnsurePresent Ensure = "present"
	EnsureAbsent  Ensure = "absent"
	EnsureLatest  Ensure = "latest"
)

// ParseEnsure normalizes a raw ensure value. Empty input means present.
// Any other string is kept verbatim as a version.
func ParseEnsure(raw string) Ensure {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "", "present", "installed":
		return EnsurePresent
	case "absent", "purged":
		return EnsureAbsent
	case "latest":
		return EnsureLatest
	}
	return Ensure(trimmed)
}

// IsAbsent reports whether the component must be removed.
func (e Ensure) IsAbsent() bool {
	return e == EnsureAbsent
}

// IsVersion reports whether e pins an explicit version.
func (e Ensure) IsVersion() bool {
	switch e {
	case "", EnsurePresent, EnsureAbsent, EnsureLatest:
		return false
	}
	return true
}

// FileEnsure maps the component state onto file-like resources.
func (e Ensure) FileEnsure() string {
	if e.IsAbsent() {
		return "absent"
	}
	return "present"
}

// DirEnsure maps the component state onto directory resources.
func (e Ensure) DirEnsure() string {
	if e.IsAbsent() {
		return "absent"
	}
	return "directory"
}

func (e Ensure) String() string {
	if e == "" {
		return string(EnsurePresent)
	}
	return string(e)
}
