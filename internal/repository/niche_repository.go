package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
)

type stateQuery struct {
	Estado string `form:"estado"`
}

// NicheRepository wraps the management service niche endpoints.
type NicheRepository struct {
	client *httpclient.Client
}

// NewNicheRepository constructs a NicheRepository.
func NewNicheRepository(client *httpclient.Client) *NicheRepository {
	return &NicheRepository{client: client}
}

// List returns all niches.
func (r *NicheRepository) List(ctx context.Context) ([]models.Niche, error) {
	var niches []models.Niche
	if err := r.client.JSON(ctx, http.MethodGet, "/nichos", nil, nil, &niches); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener los nichos")
	}
	return niches, nil
}

// Get returns one niche by code.
func (r *NicheRepository) Get(ctx context.Context, codigo string) (*models.Niche, error) {
	var niche models.Niche
	if err := r.client.JSON(ctx, http.MethodGet, "/nichos/"+url.PathEscape(codigo), nil, nil, &niche); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener el nicho")
	}
	return &niche, nil
}

// Available returns niches that can receive a body.
func (r *NicheRepository) Available(ctx context.Context) ([]models.Niche, error) {
	var niches []models.Niche
	if err := r.client.JSON(ctx, http.MethodGet, "/nichos/disponibles", nil, nil, &niches); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener nichos disponibles")
	}
	return niches, nil
}

// UpdateState sets the stored state of a niche.
func (r *NicheRepository) UpdateState(ctx context.Context, codigo string, state models.NicheState) error {
	path := "/nichos/actualizar-estado/" + url.PathEscape(codigo)
	if err := r.client.JSON(ctx, http.MethodPut, path, stateQuery{Estado: string(state)}, struct{}{}, nil); err != nil {
		return httpclient.Normalize(err, "Error al actualizar el estado del nicho")
	}
	return nil
}
