package client

import (
	"context"

	"github.com/mist/mist/internal/api"
)

// SettingsService reads and writes system settings.
type SettingsService struct {
	client *Client
}

// GetSystemSettings returns the stored system settings.
func (s *SettingsService) GetSystemSettings(ctx context.Context) (api.SystemSettings, error) {
	resp, err := Get[api.SystemSettings](ctx, s.client, "/settings/system")
	if err != nil {
		return api.SystemSettings{}, err
	}
	return resp.Data, nil
}

// UpdateSystemSettings overwrites both settings and returns the stored result.
// Validation is left to the server.
func (s *SettingsService) UpdateSystemSettings(ctx context.Context, wildcardDomain *string, mistAppName string) (api.SystemSettings, error) {
	body := api.UpdateSystemSettingsRequest{
		WildcardDomain: wildcardDomain,
		MistAppName:    mistAppName,
	}
	resp, err := Put[api.SystemSettings](ctx, s.client, "/settings/system", body)
	if err != nil {
		return api.SystemSettings{}, err
	}
	return resp.Data, nil
}
