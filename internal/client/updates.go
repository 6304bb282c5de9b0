package client

import (
	"context"

	"github.com/mist/mist/internal/api"
)

// UpdatesAPI reports the server version.
type UpdatesAPI struct {
	client *Client
}

// GetCurrentVersion returns the version the server is running.
func (a *UpdatesAPI) GetCurrentVersion(ctx context.Context) (api.VersionInfo, error) {
	resp, err := Get[api.VersionInfo](ctx, a.client, "/updates/version")
	if err != nil {
		return api.VersionInfo{}, err
	}
	return resp.Data, nil
}

// CheckForUpdates asks the server to compare its version with the latest release.
func (a *UpdatesAPI) CheckForUpdates(ctx context.Context) (api.UpdateCheck, error) {
	resp, err := Get[api.UpdateCheck](ctx, a.client, "/updates/check")
	if err != nil {
		return api.UpdateCheck{}, err
	}
	return resp.Data, nil
}
