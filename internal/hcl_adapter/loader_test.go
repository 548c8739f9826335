package hcl_adapter

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/profilegrid/internal/ctxlog"
	"github.com/specialistvlad/profilegrid/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
motd = "managed on ${facts.hostname}"

key "profiles::nginx" {
  ensure      = "present"
  autoConf    = true
  optionsHash = {
    worker_processes = 4
    server_name      = upper(facts.hostname)
  }
  resourcesHash = {
    "tp::conf" = {
      "nginx.conf" = { base_file = "default" }
    }
  }
}
`)

	got, err := NewLoader(map[string]string{"hostname": "web01"}).LoadFile(testCtx(), path)
	require.NoError(t, err)

	motd, ok := value.Get(got, "motd")
	require.True(t, ok)
	assert.Equal(t, "managed on web01", motd.AsString())

	name, ok := value.Dig(got, "profiles::nginx", "optionsHash", "server_name")
	require.True(t, ok)
	assert.Equal(t, "WEB01", name.AsString())

	base, ok := value.Dig(got, "profiles::nginx", "resourcesHash", "tp::conf", "nginx.conf", "base_file")
	require.True(t, ok)
	assert.Equal(t, "default", base.AsString())
}

func TestLoadFile_KeyBlocksOnly(t *testing.T) {
	path := writeFile(t, `
key "profiles::nginx" {
  ensure = "absent"
}

key "profiles::mariadb" {
  manage = false
}
`)

	got, err := NewLoader(nil).LoadFile(testCtx(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"profiles::mariadb", "profiles::nginx"}, value.Keys(got))
	ensure, ok := value.Dig(got, "profiles::nginx", "ensure")
	require.True(t, ok)
	assert.Equal(t, "absent", ensure.AsString())
	manage, ok := value.Dig(got, "profiles::mariadb", "manage")
	require.True(t, ok)
	assert.False(t, manage.True())
}

func TestLoadFile_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "syntax", content: `key "a" {`},
		{name: "duplicate key", content: "a = 1\nkey \"a\" {\n  b = 2\n}\n"},
		{name: "unknown block", content: "other \"a\" {\n}\n"},
		{name: "unlabeled key block", content: "key {\n  a = 1\n}\n"},
		{name: "duplicate key blocks", content: "key \"a\" {\n}\nkey \"a\" {\n}\n"},
		{name: "nested block in key", content: "key \"a\" {\n  inner {\n  }\n}\n"},
		{name: "unknown fact", content: `a = facts.missing`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader(nil).LoadFile(testCtx(), writeFile(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_Empty(t *testing.T) {
	got, err := NewLoader(nil).LoadFile(testCtx(), writeFile(t, ""))
	require.NoError(t, err)
	assert.True(t, value.IsMapping(got))
	assert.Empty(t, value.Keys(got))
}
