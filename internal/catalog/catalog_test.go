package catalog

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/mist/mist/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalog(t *testing.T) {
	templates, err := Builtin()
	require.NoError(t, err)
	require.NotEmpty(t, templates)

	byName := make(map[string]api.ServiceTemplate)
	for _, tmpl := range templates {
		byName[tmpl.Name] = tmpl
	}

	pg, ok := byName["postgres"]
	require.True(t, ok)
	assert.Equal(t, "postgres", pg.DockerImage)
	assert.Equal(t, 5432, pg.DefaultPort)
	assert.Equal(t, "postgres", pg.DefaultEnvVars["POSTGRES_USER"])
	assert.Equal(t, []string{"/var/lib/postgresql/data"}, pg.DefaultVolumes)
	assert.True(t, pg.IsActive)
	assert.True(t, pg.IsFeatured)
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing name", doc: "templates:\n  - dockerImage: redis\n"},
		{name: "missing image", doc: "templates:\n  - name: redis\n"},
		{name: "duplicate", doc: "templates:\n  - name: redis\n    dockerImage: redis\n  - name: redis\n    dockerImage: redis\n"},
		{name: "malformed", doc: "templates: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

type recordingWriter struct {
	names []string
	err   error
}

func (w *recordingWriter) UpsertTemplate(_ context.Context, tmpl *api.ServiceTemplate) error {
	if w.err != nil {
		return w.err
	}
	w.names = append(w.names, tmpl.Name)
	return nil
}

func TestSeed(t *testing.T) {
	templates, err := Builtin()
	require.NoError(t, err)

	w := &recordingWriter{}
	require.NoError(t, Seed(context.Background(), w, nil))
	assert.Len(t, w.names, len(templates))

	w = &recordingWriter{err: errors.New("disk full")}
	assert.ErrorContains(t, Seed(context.Background(), w, nil), "disk full")
}

func TestCategoryOptions(t *testing.T) {
	options := CategoryOptions([]api.ServiceTemplate{
		{Name: "redis", Category: "cache"},
		{Name: "postgres", Category: "database"},
		{Name: "mysql", Category: "database"},
		{Name: "misc"},
	})

	assert.Equal(t, []api.SelectOption{
		{Label: "Cache", Value: "cache"},
		{Label: "Database", Value: "database"},
	}, options)
}

func TestCategoryOptionsMultibyteLabel(t *testing.T) {
	options := CategoryOptions([]api.ServiceTemplate{
		{Name: "queue", Category: "élan"},
		{Name: "kv", Category: "ßtore"},
	})

	require.Len(t, options, 2)
	labels := make(map[string]string)
	for _, opt := range options {
		assert.True(t, utf8.ValidString(opt.Label), opt.Value)
		labels[opt.Value] = opt.Label
	}
	assert.Equal(t, "Élan", labels["élan"])
	assert.Equal(t, "tore", labels["ßtore"][len(labels["ßtore"])-4:])
}
