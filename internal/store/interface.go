package store

import (
	"context"
	"errors"

	"github.com/mist/mist/internal/api"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrSettingsNotFound = errors.New("system settings not found")
)

// DefaultAppName is used for the settings row when none has been stored yet.
const DefaultAppName = "mist"

// Store defines the interface for data persistence.
type Store interface {
	ListTemplates(ctx context.Context) ([]api.ServiceTemplate, error)
	GetTemplateByName(ctx context.Context, name string) (*api.ServiceTemplate, error)
	UpsertTemplate(ctx context.Context, tmpl *api.ServiceTemplate) error
	GetSystemSettings(ctx context.Context) (*api.SystemSettings, error)
	UpdateSystemSettings(ctx context.Context, settings api.SystemSettings) (*api.SystemSettings, error)
	Close()
}
