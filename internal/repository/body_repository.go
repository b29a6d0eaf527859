package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
)

type recentQuery struct {
	Cantidad int `form:"cantidad"`
}

type searchQuery struct {
	Query string `form:"query"`
}

// BodyRepository wraps the management service body endpoints.
type BodyRepository struct {
	client *httpclient.Client
}

// NewBodyRepository constructs a BodyRepository.
func NewBodyRepository(client *httpclient.Client) *BodyRepository {
	return &BodyRepository{client: client}
}

// List returns every registered body.
func (r *BodyRepository) List(ctx context.Context) ([]models.Body, error) {
	var bodies []models.Body
	if err := r.client.JSON(ctx, http.MethodGet, "/cuerposinhumados", nil, nil, &bodies); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener los cuerpos")
	}
	return bodies, nil
}

// Get returns a body by id.
func (r *BodyRepository) Get(ctx context.Context, id string) (*models.Body, error) {
	var body models.Body
	if err := r.client.JSON(ctx, http.MethodGet, "/cuerposinhumados/"+url.PathEscape(id), nil, nil, &body); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener el cuerpo por ID")
	}
	return &body, nil
}

// Create registers a new body.
func (r *BodyRepository) Create(ctx context.Context, in models.BodyInput) (*models.Body, error) {
	var body models.Body
	if err := r.client.JSON(ctx, http.MethodPost, "/cuerposinhumados", nil, in, &body); err != nil {
		return nil, httpclient.Normalize(err, "Error al crear el cuerpo")
	}
	return &body, nil
}

// Update replaces a body record.
func (r *BodyRepository) Update(ctx context.Context, id string, in models.BodyInput) (*models.Body, error) {
	var body models.Body
	if err := r.client.JSON(ctx, http.MethodPut, "/cuerposinhumados/"+url.PathEscape(id), nil, in, &body); err != nil {
		return nil, httpclient.Normalize(err, "Error al actualizar el cuerpo")
	}
	return &body, nil
}

// Delete removes a body record.
func (r *BodyRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.JSON(ctx, http.MethodDelete, "/cuerposinhumados/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return httpclient.Normalize(err, "Error al eliminar el cuerpo")
	}
	return nil
}

// Unassigned returns bodies without a niche.
func (r *BodyRepository) Unassigned(ctx context.Context) ([]models.Body, error) {
	var bodies []models.Body
	if err := r.client.JSON(ctx, http.MethodGet, "/cuerposinhumados/no-asignados", nil, nil, &bodies); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener cuerpos no asignados")
	}
	return bodies, nil
}

// Recent returns the latest n intakes.
func (r *BodyRepository) Recent(ctx context.Context, n int) ([]models.Body, error) {
	var bodies []models.Body
	if err := r.client.JSON(ctx, http.MethodGet, "/cuerposinhumados/ultimos", recentQuery{Cantidad: n}, nil, &bodies); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener el último ingreso")
	}
	return bodies, nil
}

// Search runs the backend free-text search.
func (r *BodyRepository) Search(ctx context.Context, query string) ([]models.Body, error) {
	var bodies []models.Body
	if err := r.client.JSON(ctx, http.MethodGet, "/cuerposinhumados/search", searchQuery{Query: query}, nil, &bodies); err != nil {
		return nil, httpclient.Normalize(err, "Error al buscar cuerpos")
	}
	return bodies, nil
}

// Digitize uploads a scanned intake form; the OCR pipeline creates the body.
func (r *BodyRepository) Digitize(ctx context.Context, file models.Attachment) (*models.Body, error) {
	var body models.Body
	files := []httpclient.File{{Field: "file", Filename: file.Filename, Content: file.Content}}
	if err := r.client.Multipart(ctx, http.MethodPost, "/cuerposinhumados/from-form", nil, files, &body); err != nil {
		return nil, httpclient.Normalize(err, "Error al subir el documento")
	}
	return &body, nil
}
