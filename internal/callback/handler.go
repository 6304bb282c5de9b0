package callback

import (
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

//go:embed page.html
var pageTemplate string

// Handler serves the callback page.
type Handler struct {
	Tmpl   *template.Template
	Logger *slog.Logger
}

// PageData is the data passed to the callback template.
type PageData struct {
	Title        string
	Toast        string
	Redirect     string
	DelayMillis  int64
	DelaySeconds string
}

// NewHandler creates a callback handler.
func NewHandler(logger *slog.Logger) (*Handler, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, err
	}
	return &Handler{Tmpl: tmpl, Logger: logger}, nil
}

// response records what a Flow asks for so it can be rendered as an HTTP response.
// The delay is handed to the browser instead of being waited out on the server.
type response struct {
	toast    string
	delay    time.Duration
	target   string
	notified bool
}

func (r *response) Notify(message string) {
	r.toast = message
	r.notified = true
}

func (r *response) Navigate(target string) {
	r.target = target
}

func (r *response) AfterFunc(d time.Duration, f func()) {
	r.delay = d
	f()
}

// ServeHTTP handles GET /callback?toast=...&redirect=...
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	out := &response{}
	flow := NewFlow(out, out, out)
	flow.Activate(r.URL.Query())

	if h.Logger != nil {
		h.Logger.Debug("Callback resolved", "redirect", out.target, "toast", out.notified)
	}

	if !out.notified {
		// Location is sent as given so relative targets resolve against the
		// callback URL in the browser.
		w.Header().Set("Location", out.target)
		w.WriteHeader(http.StatusFound)
		return
	}

	data := PageData{
		Title:        "Redirecting",
		Toast:        out.toast,
		Redirect:     out.target,
		DelayMillis:  out.delay.Milliseconds(),
		DelaySeconds: strconv.FormatFloat(out.delay.Seconds(), 'f', -1, 64),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.Tmpl.ExecuteTemplate(w, "callback", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
