package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/service"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
)

var pageNames = []string{
	"dashboard", "login", "unauthorized", "bodies", "body_form", "body_events", "map", "niche",
	"statistics", "statistics_occupancy", "statistics_documentation", "documents", "settings", "users",
}

func render(t *testing.T, r *Renderer, name string, page Page) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/x?q=ana&page=2", nil)
	r.Render(c, http.StatusOK, name, page)
	return rec
}

func TestRendererParsesEveryPage(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)
	for _, name := range pageNames {
		assert.True(t, r.Has(name), name)
	}
}

func TestRenderLoadErrorReplacesContent(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	for _, name := range pageNames {
		rec := render(t, r, name, Page{Title: "Prueba", Username: "operador", Error: "Error al cargar los datos"})
		require.Equal(t, http.StatusOK, rec.Code, name)
		assert.Contains(t, rec.Body.String(), "Error al cargar los datos", name)
	}
}

func TestRenderAnonymousDashboardHidesNav(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	body := render(t, r, "dashboard", Page{Title: "Inicio"}).Body.String()

	assert.Contains(t, body, `href="/login"`)
	assert.NotContains(t, body, "Cerrar sesión")
}

func TestRenderNicheDetail(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	detail := &service.NicheDetail{
		Niche:      models.Niche{Codigo: "N-1", Ubicacion: "Bloque A - Nicho 1", Estado: models.NicheOccupied},
		Occupant:   &models.Body{ID: "4", Nombre: "María", Apellido: "López", FechaDefuncion: "2024-03-05"},
		Badge:      viewmodel.NicheBadge(models.NicheOccupied),
		CanRelease: true,
	}
	body := render(t, r, "niche", Page{Title: "Detalle del nicho", Username: "op", Data: detail}).Body.String()

	assert.Contains(t, body, "María López")
	assert.Contains(t, body, "05/03/2024")
	assert.Contains(t, body, "bg-red-100 text-red-800")
	assert.Contains(t, body, "/map/niches/N-1/release")
	assert.NotContains(t, body, "/maintenance")
}

func TestRenderMapKeepsGridWhenAssignOptionsFail(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	view := struct {
		Grid         *service.NicheGrid
		Options      *service.AssignOptions
		OptionsError string
		States       []models.NicheState
	}{
		Grid: &service.NicheGrid{
			Cells: []viewmodel.NicheCell{{Codigo: "N-1", Number: "1", State: models.NicheAvailable}},
			Stats: viewmodel.OccupancyStats{Total: 1, Available: 1},
		},
		OptionsError: "No se pudieron cargar los nichos disponibles y los cuerpos sin nicho.",
		States:       []models.NicheState{models.NicheAvailable},
	}
	body := render(t, r, "map", Page{Title: "Mapa del cementerio", Username: "op", Data: view}).Body.String()

	assert.Contains(t, body, "/map/niches/N-1")
	assert.Contains(t, body, "No se pudieron cargar los nichos disponibles")
	assert.NotContains(t, body, `action="/map/assign"`)
}

func TestRenderFlash(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	body := render(t, r, "unauthorized", Page{
		Title: "x",
		Flash: &models.Flash{Kind: models.FlashSuccess, Title: "Éxito", Message: "Se ha asignado el nicho correctamente."},
	}).Body.String()

	assert.Contains(t, body, "Se ha asignado el nicho correctamente.")
	assert.Contains(t, body, "toast-success")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewRenderer(nil)
	require.NoError(t, err)

	rec := render(t, r, "missing", Page{})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPagerKeepsQuery(t *testing.T) {
	query := url.Values{"q": {"ana"}, "page": {"2"}}
	page := viewmodel.Paginate([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}, 2, 6)

	p := pager(query, page)

	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, "?page=1&q=ana", p.Prev)
	assert.Equal(t, "?page=3&q=ana", p.Next)
	assert.Equal(t, []string{"2"}, query["page"])
}

func TestAssetIsFingerprinted(t *testing.T) {
	name := Static.HashName("app.css")
	assert.True(t, strings.HasPrefix(name, "app-"), name)
	assert.True(t, strings.HasSuffix(name, ".css"), name)
}
