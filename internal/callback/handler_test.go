package callback

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerRedirectsWithoutToast(t *testing.T) {
	h, err := NewHandler(nil)
	require.NoError(t, err)

	tests := []struct {
		target   string
		location string
	}{
		{target: "/callback", location: "/"},
		{target: "/callback?redirect=/settings", location: "/settings"},
		{target: "/callback?redirect=dashboard", location: "dashboard"},
		{target: "/callback?redirect=%3Ftab%3D2", location: "?tab=2"},
		{target: "/callback?redirect=javascript:alert(1)", location: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
}

func TestHandlerRendersToastPage(t *testing.T) {
	h, err := NewHandler(nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/callback?toast=%3Cb%3EWelcome%3C%2Fb%3E&redirect=/dashboard", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	html := string(body)

	assert.Contains(t, html, "&lt;b&gt;Welcome&lt;/b&gt;")
	assert.NotContains(t, html, "<b>Welcome</b>")
	assert.Contains(t, html, "1500")
	assert.Contains(t, html, "url=/dashboard")
	assert.Contains(t, html, "window.location.href")
}
