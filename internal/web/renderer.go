package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/service"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
)

// Page is what every template receives.
type Page struct {
	Title    string
	Active   string
	Username string
	Role     string
	IsAdmin  bool
	Flash    *models.Flash
	// Error is a load failure shown inline instead of the page content.
	Error string
	Query url.Values
	Data  interface{}
}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages  map[string]*template.Template
	logger *zap.Logger
}

// NewRenderer parses every page under templates/pages together with the layout and partials.
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	return newRenderer(templateFiles, logger)
}

func newRenderer(fsys fs.FS, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	names, err := fs.Glob(fsys, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	partials, err := fs.Glob(fsys, "templates/partials/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		files := append([]string{"templates/layout.html"}, partials...)
		files = append(files, name)
		tmpl, err := template.New("layout.html").Funcs(Funcs()).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(path.Base(name), ".html")] = tmpl
	}
	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes page with status. Rendering happens into a buffer so a template failure
// never leaves a half-written page.
func (r *Renderer) Render(c *gin.Context, status int, name string, page Page) {
	tmpl, ok := r.pages[name]
	if !ok {
		r.logger.Error("unknown template", zap.String("template", name))
		c.String(http.StatusInternalServerError, "plantilla no encontrada")
		return
	}
	if page.Query == nil && c.Request != nil {
		page.Query = c.Request.URL.Query()
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		r.logger.Error("render failed", zap.String("template", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "Error al mostrar la página")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"asset":          func(name string) string { return "/static/" + Static.HashName(name) },
		"formatDate":     viewmodel.FormatDate,
		"formatDateTime": viewmodel.FormatDateTime,
		"dateInput":      viewmodel.DateInput,
		"nicheBadge":     viewmodel.NicheBadge,
		"nicheStyle":     viewmodel.NicheStyle,
		"nicheLabel":     viewmodel.NicheStateLabel,
		"roleLabel":      service.RoleLabel,
		"withPage":       withPage,
		"pager":          pager,
		"add":            func(a, b int) int { return a + b },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
}

// Pager drives the pagination partial.
type Pager struct {
	Page       int
	TotalPages int
	Total      int
	Prev       string
	Next       string
}

type paginated interface {
	Pagination() *models.Pagination
}

func pager(query url.Values, page paginated) Pager {
	meta := page.Pagination()
	p := Pager{Page: meta.Page, TotalPages: meta.TotalPages, Total: meta.TotalCount}
	if meta.Page > 1 {
		p.Prev = withPage(query, meta.Page-1)
	}
	if meta.Page < meta.TotalPages {
		p.Next = withPage(query, meta.Page+1)
	}
	return p
}

// withPage re-encodes the current query with page replaced.
func withPage(query url.Values, page int) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("page", strconv.Itoa(page))
	return "?" + q.Encode()
}
