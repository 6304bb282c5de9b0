package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mist/mist/internal/api"
)

// TemplatesAPI reads the service template catalog.
type TemplatesAPI struct {
	client *Client
}

// List returns all active templates.
func (a *TemplatesAPI) List(ctx context.Context) ([]api.ServiceTemplate, error) {
	resp, err := Get[[]api.ServiceTemplate](ctx, a.client, "/templates/list")
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetByName returns the template with the given name.
func (a *TemplatesAPI) GetByName(ctx context.Context, name string) (api.ServiceTemplate, error) {
	query := url.Values{"name": {name}}
	resp, err := Get[api.ServiceTemplate](ctx, a.client, "/templates/get?"+query.Encode())
	if err != nil {
		return api.ServiceTemplate{}, err
	}
	return resp.Data, nil
}

// ListPage returns one page of active templates.
func (a *TemplatesAPI) ListPage(ctx context.Context, page, limit int) (api.PaginatedResponse[api.ServiceTemplate], error) {
	query := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	resp, err := Get[api.PaginatedResponse[api.ServiceTemplate]](ctx, a.client, "/templates/list?"+query.Encode())
	if err != nil {
		return api.PaginatedResponse[api.ServiceTemplate]{}, err
	}
	return resp.Data, nil
}
