package web

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/adminhub/pkg/access"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("web").Funcs(template.FuncMap{
	"join": strings.Join,
}).ParseFS(templatesFS, "templates/*.html"))

// pageView is the data every template receives.
type pageView struct {
	Title    string
	Identity *access.Identity
	Error    string
	Flash    string
	Data     any
}

// render executes the named template into a buffer first so a template
// error never leaves a half-written page.
func render(w http.ResponseWriter, r *http.Request, status int, name string, view pageView) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, view); err != nil {
		slogx.FromContext(r.Context()).Error("failed to render page",
			slog.String("template", name),
			slog.Any("error", err),
		)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
