package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
)

// AssignmentRepository wraps the niche-body assignment endpoints.
type AssignmentRepository struct {
	client *httpclient.Client
}

// NewAssignmentRepository constructs an AssignmentRepository.
func NewAssignmentRepository(client *httpclient.Client) *AssignmentRepository {
	return &AssignmentRepository{client: client}
}

// List returns all active assignments.
func (r *AssignmentRepository) List(ctx context.Context) ([]models.NicheAssignment, error) {
	var out []models.NicheAssignment
	if err := r.client.JSON(ctx, http.MethodGet, "/nichoscuerpos", nil, nil, &out); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener los nichos y cuerpos")
	}
	return out, nil
}

// Create occupies a niche with a body.
func (r *AssignmentRepository) Create(ctx context.Context, in models.NicheAssignmentInput) (*models.NicheAssignment, error) {
	var out models.NicheAssignment
	if err := r.client.JSON(ctx, http.MethodPost, "/nichoscuerpos", nil, in, &out); err != nil {
		return nil, httpclient.Normalize(err, "Error al asignar nicho")
	}
	return &out, nil
}

// OccupantByNiche returns the body resting in a niche.
func (r *AssignmentRepository) OccupantByNiche(ctx context.Context, codigo string) (*models.Body, error) {
	var body models.Body
	if err := r.client.JSON(ctx, http.MethodGet, "/nichoscuerpos/nicho/"+url.PathEscape(codigo), nil, nil, &body); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener el cuerpo inhumado por nicho")
	}
	return &body, nil
}

// ByNiche returns the assignment record of a niche.
func (r *AssignmentRepository) ByNiche(ctx context.Context, codigo string) (*models.NicheAssignment, error) {
	var out models.NicheAssignment
	if err := r.client.JSON(ctx, http.MethodGet, "/nichoscuerpos/nichoByID/"+url.PathEscape(codigo), nil, nil, &out); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener la asignación del nicho")
	}
	return &out, nil
}

// NicheByBody returns the niche holding a body, or nil when it has none.
func (r *AssignmentRepository) NicheByBody(ctx context.Context, idCadaver string) (*models.Niche, error) {
	var niche models.Niche
	if err := r.client.JSON(ctx, http.MethodGet, "/nichoscuerpos/cuerpo/"+url.PathEscape(idCadaver), nil, nil, &niche); err != nil {
		if httpclient.IsNotFound(err) {
			return nil, nil
		}
		return nil, httpclient.Normalize(err, "Error al obtener el nicho del cuerpo")
	}
	return &niche, nil
}

// Delete removes an assignment, releasing its niche.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.JSON(ctx, http.MethodDelete, "/nichoscuerpos/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return httpclient.Normalize(err, "Error al liberar el nicho")
	}
	return nil
}
