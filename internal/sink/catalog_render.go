// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file renders catalog entries. HCL output is built with hclwrite as
// one resource "<type>" "<name>" block per entry. It is a report format and
// is not a data level. JSON and YAML are produced from one cty document so
// the two stay structurally identical.
package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/profilegrid/internal/model"
	ctyyaml "github.com/zclconf/go-cty-yaml"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// WriteHCL renders one resource block per entry:
//
//	resource "tp::conf" "nginx" {
//	  component = "nginx"
//	  mode      = "enforce"
//	  params    = { ... }
//	}
func (c *Catalog) WriteHCL(w io.Writer) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, d := range c.Entries() {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("resource", []string{d.Intent.Type, d.Intent.Name})
		b := block.Body()
		b.SetAttributeValue("component", cty.StringVal(d.Component))
		b.SetAttributeValue("mode", cty.StringVal(d.Mode.String()))
		b.SetAttributeValue("params", d.Intent.Params)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing hcl catalog: %w", err)
	}
	return nil
}

// WriteJSON renders the catalog as an indented JSON document.
func (c *Catalog) WriteJSON(w io.Writer) error {
	doc := c.document()
	raw, err := ctyjson.Marshal(doc, doc.Type())
	if err != nil {
		return fmt.Errorf("encoding json catalog: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("indenting json catalog: %w", err)
	}
	buf.WriteByte('\n')
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("writing json catalog: %w", err)
	}
	return nil
}

// WriteYAML renders the catalog as a YAML document.
func (c *Catalog) WriteYAML(w io.Writer) error {
	raw, err := ctyyaml.Marshal(c.document())
	if err != nil {
		return fmt.Errorf("encoding yaml catalog: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("writing yaml catalog: %w", err)
	}
	return nil
}

func (c *Catalog) document() cty.Value {
	entries := c.Entries()
	resources := make([]cty.Value, 0, len(entries))
	for _, d := range entries {
		resources = append(resources, entryValue(d))
	}
	list := cty.EmptyTupleVal
	if len(resources) > 0 {
		list = cty.TupleVal(resources)
	}
	return cty.ObjectVal(map[string]cty.Value{"resources": list})
}

func entryValue(d model.Declaration) cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"component": cty.StringVal(d.Component),
		"type":      cty.StringVal(d.Intent.Type),
		"name":      cty.StringVal(d.Intent.Name),
		"mode":      cty.StringVal(d.Mode.String()),
		"params":    d.Intent.Params,
	})
}
