// Package catalog holds the built-in service templates shipped with Mist.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
	"github.com/mist/mist/internal/api"
)

//go:embed templates.yaml
var builtinYAML []byte

type document struct {
	Templates []api.ServiceTemplate `yaml:"templates"`
}

// TemplateWriter persists templates.
type TemplateWriter interface {
	UpsertTemplate(ctx context.Context, tmpl *api.ServiceTemplate) error
}

// Builtin returns the embedded template catalog.
func Builtin() ([]api.ServiceTemplate, error) {
	return Parse(builtinYAML)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) ([]api.ServiceTemplate, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Templates))
	for i, tmpl := range doc.Templates {
		name := strings.TrimSpace(tmpl.Name)
		if name == "" {
			return nil, fmt.Errorf("template %d: name is required", i)
		}
		if strings.TrimSpace(tmpl.DockerImage) == "" {
			return nil, fmt.Errorf("template %s: dockerImage is required", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("template %s: duplicate name", name)
		}
		seen[name] = true
		doc.Templates[i].Name = name
	}
	return doc.Templates, nil
}

// Seed upserts the built-in templates.
func Seed(ctx context.Context, w TemplateWriter, logger *slog.Logger) error {
	templates, err := Builtin()
	if err != nil {
		return err
	}
	for i := range templates {
		if err := w.UpsertTemplate(ctx, &templates[i]); err != nil {
			return fmt.Errorf("failed to seed template %s: %w", templates[i].Name, err)
		}
	}
	if logger != nil {
		logger.Info("Seeded service templates", "count", len(templates))
	}
	return nil
}

// CategoryOptions returns one select option per distinct category, sorted by value.
func CategoryOptions(templates []api.ServiceTemplate) []api.SelectOption {
	seen := make(map[string]bool)
	var options []api.SelectOption
	for _, tmpl := range templates {
		category := strings.TrimSpace(tmpl.Category)
		if category == "" || seen[category] {
			continue
		}
		seen[category] = true
		options = append(options, api.SelectOption{
			Label: categoryLabel(category),
			Value: category,
		})
	}
	sort.Slice(options, func(i, j int) bool {
		return options[i].Value < options[j].Value
	})
	return options
}

func categoryLabel(category string) string {
	r, size := utf8.DecodeRuneInString(category)
	return string(unicode.ToUpper(r)) + category[size:]
}
