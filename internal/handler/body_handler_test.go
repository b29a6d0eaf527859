package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/service"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
)

type fakeBodyService struct {
	bodies    []models.Body
	created   []models.BodyInput
	createErr error
	deleted   []string
	digitized []models.Attachment
	filters   []models.BodyFilter
}

func (f *fakeBodyService) List(_ context.Context, filter models.BodyFilter) (viewmodel.Page[models.Body], error) {
	f.filters = append(f.filters, filter)
	return viewmodel.Paginate(f.bodies, filter.Page, 6), nil
}

func (f *fakeBodyService) Get(_ context.Context, id string) (*models.Body, error) {
	for _, b := range f.bodies {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, httpclient.Normalize(&httpclient.StatusError{Status: http.StatusNotFound}, "Error al obtener el cuerpo")
}

func (f *fakeBodyService) Create(_ context.Context, in models.BodyInput) (*models.Body, string, error) {
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, "", f.createErr
	}
	return &models.Body{ID: "9", Nombre: in.Nombre, Apellido: in.Apellido}, "Cuerpo " + in.Nombre + " " + in.Apellido + " creado correctamente", nil
}

func (f *fakeBodyService) Update(_ context.Context, id string, in models.BodyInput) (*models.Body, error) {
	return &models.Body{ID: id, Nombre: in.Nombre}, nil
}

func (f *fakeBodyService) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBodyService) Digitize(_ context.Context, file models.Attachment) (*models.Body, error) {
	f.digitized = append(f.digitized, file)
	return &models.Body{ID: "10", Nombre: "Rosa", Apellido: "Vera"}, nil
}

type fakeExportService struct {
	format service.ExportFormat
	filter models.BodyFilter
}

func (f *fakeExportService) Bodies(_ context.Context, filter models.BodyFilter, format service.ExportFormat) (*service.ExportResult, error) {
	f.filter = filter
	f.format = format
	return &service.ExportResult{Filename: "cuerpos_20240101_000000.csv", ContentType: "text/csv; charset=utf-8", Data: []byte("ID\n1\n")}, nil
}

func bodyForm(estado string) url.Values {
	return url.Values{
		"nombre":             {"Ana"},
		"apellido":           {"Pérez"},
		"documentoIdentidad": {"123"},
		"estado":             {estado},
	}
}

func TestBodyCreateSuccess(t *testing.T) {
	base, _, flashes := newTestBase()
	bodies := &fakeBodyService{}
	r := newTestRouter(models.RoleUser, Routes{Bodies: NewBodyHandler(base, bodies, &fakeExportService{})})

	resp := performRequest(r, postForm("/bodies", bodyForm(models.BodyStateInterred)))

	assert.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, "/bodies", resp.Header().Get("Location"))
	require.Len(t, bodies.created, 1)
	assert.Equal(t, "123", bodies.created[0].DocumentoIdentidad)
	assert.Equal(t, "Cuerpo Ana Pérez creado correctamente", flashes.last(t).Message)
}

func TestBodyCreateShowsBackendRejection(t *testing.T) {
	base, _, flashes := newTestBase()
	rejection := httpclient.Normalize(&httpclient.StatusError{
		Client:      "management",
		Method:      http.MethodPost,
		Path:        "/cadaver",
		Status:      http.StatusBadRequest,
		ContentType: "application/json",
		Body:        []byte(`{"message":"Estado inválido: NOSE"}`),
	}, "Error al crear el cuerpo")
	bodies := &fakeBodyService{createErr: rejection}
	r := newTestRouter(models.RoleUser, Routes{Bodies: NewBodyHandler(base, bodies, &fakeExportService{})})

	resp := performRequest(r, postForm("/bodies", bodyForm("NOSE")))

	assert.Equal(t, http.StatusSeeOther, resp.Code)
	flash := flashes.last(t)
	assert.Equal(t, models.FlashError, flash.Kind)
	assert.Equal(t, "Error al crear el registro", flash.Title)
	assert.Equal(t, "Estado inválido: NOSE", flash.Message)
}

func TestBodyListBindsFilter(t *testing.T) {
	base, renderer, _ := newTestBase()
	bodies := &fakeBodyService{bodies: []models.Body{{ID: "1"}, {ID: "2"}}}
	r := newTestRouter(models.RoleAdmin, Routes{Bodies: NewBodyHandler(base, bodies, &fakeExportService{})})

	resp := performRequest(r, httptest.NewRequest(http.MethodGet, "/bodies?q=ana&estado=INHUMADO&page=1", nil))

	assert.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, bodies.filters, 1)
	assert.Equal(t, models.BodyFilter{Query: "ana", Estado: "INHUMADO", Page: 1}, bodies.filters[0])
	view, ok := renderer.last(t).page.Data.(bodiesView)
	require.True(t, ok)
	assert.Equal(t, 2, view.Page.Total)
}

func TestBodyEditUnknownRecord(t *testing.T) {
	base, renderer, _ := newTestBase()
	r := newTestRouter(models.RoleAdmin, Routes{Bodies: NewBodyHandler(base, &fakeBodyService{}, &fakeExportService{})})

	resp := performRequest(r, httptest.NewRequest(http.MethodGet, "/bodies/77/edit", nil))

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "body_form", renderer.last(t).name)
}

func TestBodyDelete(t *testing.T) {
	base, _, flashes := newTestBase()
	bodies := &fakeBodyService{}
	r := newTestRouter(models.RoleUser, Routes{Bodies: NewBodyHandler(base, bodies, &fakeExportService{})})

	performRequest(r, postForm("/bodies/4/delete", nil))

	assert.Equal(t, []string{"4"}, bodies.deleted)
	assert.Equal(t, models.FlashSuccess, flashes.last(t).Kind)
}

func TestBodyDigitizeRequiresFile(t *testing.T) {
	base, _, flashes := newTestBase()
	bodies := &fakeBodyService{}
	r := newTestRouter(models.RoleUser, Routes{Bodies: NewBodyHandler(base, bodies, &fakeExportService{})})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "x"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/bodies/digitize", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	performRequest(r, req)

	assert.Empty(t, bodies.digitized)
	assert.Equal(t, "Debe seleccionar un archivo", flashes.last(t).Message)
}

func TestBodyDigitizeUploadsScan(t *testing.T) {
	base, _, flashes := newTestBase()
	bodies := &fakeBodyService{}
	r := newTestRouter(models.RoleUser, Routes{Bodies: NewBodyHandler(base, bodies, &fakeExportService{})})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "acta.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/bodies/digitize", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	performRequest(r, req)

	require.Len(t, bodies.digitized, 1)
	assert.Equal(t, "acta.png", bodies.digitized[0].Filename)
	assert.Equal(t, "Formulario digitalizado: Rosa Vera", flashes.last(t).Message)
}

func TestBodyExportAttachment(t *testing.T) {
	base, _, _ := newTestBase()
	exports := &fakeExportService{}
	r := newTestRouter(models.RoleUser, Routes{Bodies: NewBodyHandler(base, &fakeBodyService{}, exports)})

	resp := performRequest(r, httptest.NewRequest(http.MethodGet, "/bodies/export?estado=EXHUMADO", nil))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, service.ExportCSV, exports.format)
	assert.Equal(t, "EXHUMADO", exports.filter.Estado)
	assert.Equal(t, `attachment; filename="cuerpos_20240101_000000.csv"`, resp.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID\n1\n", resp.Body.String())
}
