// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package inmemorystore

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/profilegrid/internal/model"
	"github.com/specialistvlad/profilegrid/internal/nodeid"
)

// DuplicateError means an address was declared twice with different params.
type DuplicateError struct {
	Address nodeid.Address
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("resource %s is already declared with different parameters", e.Address)
}

type entry struct {
	seq       uint64
	decl      model.Declaration
	canonical []byte
}

// Store keeps one declaration per resource address.
type Store struct {
	declarations sync.Map // Key: address string, Value: *entry
	seq          atomic.Uint64
}

// New creates a new, empty store.
func New() *Store {
	return &Store{}
}

// Declare registers d. Re-declaring an address with identical params is a
// no-op.
func (s *Store) Declare(ctx context.Context, d model.Declaration) error {
	addr := d.Intent.Address()
	canonical, err := d.Intent.Canonical()
	if err != nil {
		return fmt.Errorf("encoding params of %s: %w", addr, err)
	}

	e := &entry{seq: s.seq.Add(1), decl: d, canonical: canonical}
	prev, loaded := s.declarations.LoadOrStore(addr.String(), e)
	if !loaded {
		return nil
	}
	if bytes.Equal(prev.(*entry).canonical, canonical) {
		return nil
	}
	return &DuplicateError{Address: addr}
}

// Lookup returns the declaration registered for addr.
func (s *Store) Lookup(addr nodeid.Address) (model.Declaration, bool) {
	e, ok := s.declarations.Load(addr.String())
	if !ok {
		return model.Declaration{}, false
	}
	return e.(*entry).decl, true
}

// Declarations returns every registered declaration in registration order.
func (s *Store) Declarations() []model.Declaration {
	var entries []*entry
	s.declarations.Range(func(_, v any) bool {
		entries = append(entries, v.(*entry))
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]model.Declaration, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.decl)
	}
	return out
}

// Len returns the number of registered addresses.
func (s *Store) Len() int {
	n := 0
	s.declarations.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
