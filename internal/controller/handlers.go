package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mist/mist/internal/api"
	"github.com/mist/mist/internal/settings"
	"github.com/mist/mist/internal/store"
	"github.com/mist/mist/internal/updates"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// UpdateChecker reports whether a newer release exists.
type UpdateChecker interface {
	Check(ctx context.Context) (api.UpdateCheck, error)
}

// Handler handles HTTP requests for the API.
type Handler struct {
	Store        store.Store
	Updates      UpdateChecker
	CheckTimeout time.Duration
	Logger       *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, checker UpdateChecker, logger *slog.Logger) *Handler {
	return &Handler{
		Store:        s,
		Updates:      checker,
		CheckTimeout: 10 * time.Second,
		Logger:       logger,
	}
}

// ListTemplates handles GET /templates/list
// When page or limit is given the answer is a single PaginatedResponse page.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	paged := query.Has("page") || query.Has("limit")

	page, err := queryInt(query, "page", 1)
	if err != nil {
		writeAppError(w, http.StatusBadRequest, api.AppError{Code: api.CodeBadRequest, Message: err.Error()})
		return
	}
	limit, err := queryInt(query, "limit", defaultPageLimit)
	if err != nil {
		writeAppError(w, http.StatusBadRequest, api.AppError{Code: api.CodeBadRequest, Message: err.Error()})
		return
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	templates, err := h.Store.ListTemplates(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !paged {
		writeData(w, http.StatusOK, templates)
		return
	}
	writeData(w, http.StatusOK, api.Paginate(templates, page, limit))
}

// GetTemplate handles GET /templates/get?name=
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeAppError(w, http.StatusBadRequest, api.AppError{Code: api.CodeBadRequest, Message: "name is required"})
		return
	}

	tmpl, err := h.Store.GetTemplateByName(r.Context(), name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, tmpl)
}

// GetVersion handles GET /updates/version
func (h *Handler) GetVersion(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, updates.Current())
}

// CheckUpdates handles GET /updates/check
func (h *Handler) CheckUpdates(w http.ResponseWriter, r *http.Request) {
	if h.Updates == nil {
		writeAppError(w, http.StatusServiceUnavailable, api.AppError{Code: api.CodeUpstream, Message: "update checks are disabled"})
		return
	}

	ctx := r.Context()
	if h.CheckTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.CheckTimeout)
		defer cancel()
	}

	result, err := h.Updates.Check(ctx)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("Update check failed", "error", err)
		}
		writeAppError(w, http.StatusBadGateway, api.AppError{Code: api.CodeUpstream, Message: "failed to check for updates", Details: err.Error()})
		return
	}
	writeData(w, http.StatusOK, result)
}

// GetSystemSettings handles GET /settings/system
func (h *Handler) GetSystemSettings(w http.ResponseWriter, r *http.Request) {
	current, err := h.Store.GetSystemSettings(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, current)
}

// UpdateSystemSettings handles PUT /settings/system
func (h *Handler) UpdateSystemSettings(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateSystemSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAppError(w, http.StatusBadRequest, api.AppError{Code: api.CodeBadRequest, Message: "Invalid request body"})
		return
	}

	valid, err := settings.Validate(req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	updated, err := h.Store.UpdateSystemSettings(r.Context(), valid)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.Logger != nil {
		h.Logger.Info("System settings updated", "mist_app_name", updated.MistAppName, "wildcard_domain", updated.WildcardDomain != nil)
	}
	writeJSON(w, http.StatusOK, api.Response[*api.SystemSettings]{
		Success: true,
		Message: "Settings updated successfully",
		Data:    updated,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrTemplateNotFound), errors.Is(err, store.ErrSettingsNotFound):
		writeAppError(w, http.StatusNotFound, api.AppError{Code: api.CodeNotFound, Message: err.Error()})
	case errors.Is(err, settings.ErrInvalid):
		writeAppError(w, http.StatusBadRequest, api.AppError{Code: api.CodeBadRequest, Message: err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("Request failed", "error", err)
		}
		writeAppError(w, http.StatusInternalServerError, api.AppError{Code: api.CodeInternal, Message: "internal server error"})
	}
}

func queryInt(query url.Values, key string, fallback int) (int, error) {
	raw := query.Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

func writeData[T any](w http.ResponseWriter, status int, data T) {
	writeJSON(w, status, api.Response[T]{Success: true, Data: data})
}

func writeAppError(w http.ResponseWriter, status int, appErr api.AppError) {
	writeJSON(w, status, api.Response[any]{
		Success: false,
		Message: appErr.Message,
		Error:   &appErr,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
