package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
)

type reportQuery struct {
	UsuarioID string `form:"usuarioId"`
}

// DocumentRepository wraps the documents service.
type DocumentRepository struct {
	client *httpclient.Client
}

// NewDocumentRepository constructs a DocumentRepository.
func NewDocumentRepository(client *httpclient.Client) *DocumentRepository {
	return &DocumentRepository{client: client}
}

// List returns all registered documents.
func (r *DocumentRepository) List(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := r.client.JSON(ctx, http.MethodGet, "/reportes", nil, nil, &docs); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener los documentos")
	}
	return docs, nil
}

// Get returns one document.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := r.client.JSON(ctx, http.MethodGet, "/reportes/"+url.PathEscape(id), nil, nil, &doc); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener el documento")
	}
	return &doc, nil
}

// Create registers a document.
func (r *DocumentRepository) Create(ctx context.Context, in models.DocumentInput) (*models.Document, error) {
	var doc models.Document
	if err := r.client.JSON(ctx, http.MethodPost, "/reportes", nil, in, &doc); err != nil {
		return nil, httpclient.Normalize(err, "Error al crear el documento")
	}
	return &doc, nil
}

// Update replaces a document entry.
func (r *DocumentRepository) Update(ctx context.Context, id string, in models.DocumentInput) (*models.Document, error) {
	var doc models.Document
	if err := r.client.JSON(ctx, http.MethodPut, "/reportes/"+url.PathEscape(id), nil, in, &doc); err != nil {
		return nil, httpclient.Normalize(err, "Error al actualizar el documento")
	}
	return &doc, nil
}

// Delete removes a document entry.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.JSON(ctx, http.MethodDelete, "/reportes/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return httpclient.Normalize(err, "Error al eliminar el documento")
	}
	return nil
}

// DownloadReport asks the documents service to generate the operator's report PDF.
func (r *DocumentRepository) DownloadReport(ctx context.Context, usuarioID string) (*httpclient.Blob, error) {
	blob, err := r.client.Blob(ctx, "/reportes/descargar", reportQuery{UsuarioID: usuarioID})
	if err != nil {
		return nil, httpclient.Normalize(err, "Error al descargar el reporte")
	}
	if blob.Filename == "" {
		blob.Filename = models.ReportDownloadName
	}
	return blob, nil
}
