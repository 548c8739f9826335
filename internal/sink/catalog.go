// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package sink

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/specialistvlad/profilegrid/internal/inmemorystore"
	"github.com/specialistvlad/profilegrid/internal/model"
	"github.com/specialistvlad/profilegrid/internal/nodeid"
)

// InstallType is the resource type an install delegate declares for a
// component. Catalogs list it before the component's other resources.
const InstallType = "tp::install"

// Format selects a catalog rendering.
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists every supported catalog format.
var Formats = []Format{FormatHCL, FormatJSON, FormatYAML}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown catalog format %q (expected hcl, json or yaml)", s)
}

// Catalog records declarations and renders them.
type Catalog struct {
	store *inmemorystore.Store
	only  map[string]struct{}
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithOnly restricts rendering to the given addresses. Declarations of other
// addresses are still recorded and still checked for duplicates.
func WithOnly(addrs ...nodeid.Address) CatalogOption {
	return func(c *Catalog) {
		if len(addrs) == 0 {
			return
		}
		if c.only == nil {
			c.only = make(map[string]struct{}, len(addrs))
		}
		for _, a := range addrs {
			c.only[a.String()] = struct{}{}
		}
	}
}

// NewCatalog creates an empty catalog.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{store: inmemorystore.New()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Declare records d.
func (c *Catalog) Declare(ctx context.Context, d model.Declaration) error {
	return c.store.Declare(ctx, d)
}

// Len returns the number of recorded declarations, ignoring the filter.
func (c *Catalog) Len() int {
	return c.store.Len()
}

// Entries returns the declarations to render: filtered, grouped by
// component, install first, then by address.
func (c *Catalog) Entries() []model.Declaration {
	all := c.store.Declarations()
	out := make([]model.Declaration, 0, len(all))
	for _, d := range all {
		if c.only != nil {
			if _, ok := c.only[d.Intent.Address().String()]; !ok {
				continue
			}
		}
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Component != b.Component {
			return a.Component < b.Component
		}
		ai, bi := a.Intent.Type == InstallType, b.Intent.Type == InstallType
		if ai != bi {
			return ai
		}
		return a.Intent.Address().Less(b.Intent.Address())
	})
	return out
}

// Write renders the catalog in the given format.
func (c *Catalog) Write(w io.Writer, format Format) error {
	switch format {
	case FormatHCL:
		return c.WriteHCL(w)
	case FormatJSON:
		return c.WriteJSON(w)
	case FormatYAML:
		return c.WriteYAML(w)
	}
	return fmt.Errorf("unknown catalog format %q", format)
}
