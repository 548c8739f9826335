package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/specialistvlad/profilegrid/internal/model"
	"github.com/specialistvlad/profilegrid/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

func decl(component, typ, name string, params map[string]cty.Value, mode model.EnforcementMode) model.Declaration {
	p := cty.EmptyObjectVal
	if len(params) > 0 {
		p = cty.ObjectVal(params)
	}
	return model.Declaration{
		Component: component,
		Intent:    model.ResourceIntent{Type: typ, Name: name, Params: p},
		Mode:      mode,
	}
}

func fillCatalog(t *testing.T, c *Catalog) {
	t.Helper()
	ctx := context.Background()
	for _, d := range []model.Declaration{
		decl("nginx", "tp::conf", "nginx", map[string]cty.Value{"ensure": cty.StringVal("present")}, model.ModeEnforce),
		decl("mariadb", "tp::dir", "/var/lib/mysql", map[string]cty.Value{"ensure": cty.StringVal("directory")}, model.ModeNoop),
		decl("nginx", InstallType, "nginx", map[string]cty.Value{"ensure": cty.StringVal("present")}, model.ModeEnforce),
		decl("nginx", "file", "/etc/nginx/nginx.conf", nil, model.ModeEnforce),
	} {
		require.NoError(t, c.Declare(ctx, d))
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"hcl", "JSON", " yaml "} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("toml")
	assert.Error(t, err)
}

func TestCatalog_EntriesOrder(t *testing.T) {
	c := NewCatalog()
	fillCatalog(t, c)

	var got []string
	for _, d := range c.Entries() {
		got = append(got, d.Component+":"+d.Intent.Address().String())
	}
	assert.Equal(t, []string{
		"mariadb:tp::dir[/var/lib/mysql]",
		"nginx:tp::install[nginx]",
		"nginx:file[/etc/nginx/nginx.conf]",
		"nginx:tp::conf[nginx]",
	}, got)
}

func TestCatalog_WithOnly(t *testing.T) {
	c := NewCatalog(WithOnly(nodeid.New("tp::conf", "nginx")))
	fillCatalog(t, c)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "tp::conf", entries[0].Intent.Type)
	assert.Equal(t, 4, c.Len())
}

func TestCatalog_WriteJSON(t *testing.T) {
	c := NewCatalog()
	fillCatalog(t, c)

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, FormatJSON))

	var doc struct {
		Resources []struct {
			Component string         `json:"component"`
			Type      string         `json:"type"`
			Name      string         `json:"name"`
			Mode      string         `json:"mode"`
			Params    map[string]any `json:"params"`
		} `json:"resources"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Resources, 4)
	assert.Equal(t, "tp::dir", doc.Resources[0].Type)
	assert.Equal(t, "noop", doc.Resources[0].Mode)
	assert.Equal(t, "directory", doc.Resources[0].Params["ensure"])
	assert.Equal(t, InstallType, doc.Resources[1].Type)
}

func TestCatalog_WriteYAML(t *testing.T) {
	c := NewCatalog()
	fillCatalog(t, c)

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, FormatYAML))

	var doc map[string][]map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc["resources"], 4)
	assert.Equal(t, "mariadb", doc["resources"][0]["component"])
}

func TestCatalog_WriteHCL(t *testing.T) {
	c := NewCatalog()
	fillCatalog(t, c)

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, FormatHCL))

	out := buf.String()
	assert.Contains(t, out, `resource "tp::install" "nginx" {`)
	assert.Contains(t, out, `resource "tp::dir" "/var/lib/mysql" {`)
	assert.Contains(t, out, `mode      = "noop"`)
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(`"tp::install"`)), bytes.Index(buf.Bytes(), []byte(`"tp::conf"`)))
}

func TestCatalog_EmptyRenders(t *testing.T) {
	c := NewCatalog()
	var buf bytes.Buffer
	require.NoError(t, c.WriteJSON(&buf))
	assert.JSONEq(t, `{"resources": []}`, buf.String())
}
