package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/mist/mist/internal/api"
	"github.com/mist/mist/internal/controller"
	"github.com/mist/mist/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackendURL(t *testing.T) string {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "mist.db"))
	require.NoError(t, err)
	t.Cleanup(s.Close)

	ctx := context.Background()
	require.NoError(t, s.UpsertTemplate(ctx, &api.ServiceTemplate{Name: "redis", Category: "cache", DockerImage: "redis", DockerImageVersion: "7", DefaultPort: 6379, IsActive: true}))
	require.NoError(t, s.UpsertTemplate(ctx, &api.ServiceTemplate{Name: "postgres", Category: "database", DockerImage: "postgres", DefaultPort: 5432, IsActive: true}))

	srv := httptest.NewServer(controller.NewRouter(controller.NewHandler(s, nil, nil), nil))
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTemplatesCommands(t *testing.T) {
	url := newBackendURL(t)

	out, err := run(t, "templates", "list", "--url", url, "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "redis:7")
	assert.Contains(t, out, "postgres")

	out, err = run(t, "templates", "list", "--page", "2", "--limit", "1", "--url", url, "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "redis:7")
	assert.NotContains(t, out, "postgres")
	assert.Contains(t, out, "Page 2 of 2 (2 templates)")

	out, err = run(t, "templates", "get", "redis", "--url", url, "-o", "table")
	require.NoError(t, err)
	var tmpl api.ServiceTemplate
	require.NoError(t, json.Unmarshal([]byte(out), &tmpl))
	assert.Equal(t, 6379, tmpl.DefaultPort)

	out, err = run(t, "templates", "categories", "--url", url, "-o", "table")
	require.NoError(t, err)
	assert.Equal(t, "cache\tCache\ndatabase\tDatabase\n", out)

	_, err = run(t, "templates", "get", "missing", "--url", url, "-o", "table")
	assert.ErrorContains(t, err, "404")
}

func TestSettingsCommands(t *testing.T) {
	url := newBackendURL(t)

	out, err := run(t, "settings", "set", "--wildcard-domain", "apps.example.com", "--app-name", "dash", "--yes", "--url", url, "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings updated successfully.")
	assert.Contains(t, out, "apps.example.com")

	out, err = run(t, "settings", "get", "--url", url, "-o", "json")
	require.NoError(t, err)
	var got api.SystemSettings
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.WildcardDomain)
	assert.Equal(t, "apps.example.com", *got.WildcardDomain)
	assert.Equal(t, "dash", got.MistAppName)

	out, err = run(t, "settings", "set", "--clear-domain", "--yes", "--url", url, "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Wildcard domain: (none)")
	assert.Contains(t, out, "Mist app name:   dash")
}

func TestVersionCommand(t *testing.T) {
	url := newBackendURL(t)

	out, err := run(t, "version", "--url", url, "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "mist-ctl")
	assert.Contains(t, out, "server ")
}
