package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
)

// EventRepository wraps the body event endpoints.
type EventRepository struct {
	client *httpclient.Client
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(client *httpclient.Client) *EventRepository {
	return &EventRepository{client: client}
}

// ListByBody returns the events of one body.
func (r *EventRepository) ListByBody(ctx context.Context, idCadaver string) ([]models.Event, error) {
	var events []models.Event
	if err := r.client.JSON(ctx, http.MethodGet, "/eventoscuerpos/cuerpo/"+url.PathEscape(idCadaver), nil, nil, &events); err != nil {
		return nil, httpclient.Normalize(err, "Error al obtener los eventos del cuerpo")
	}
	return events, nil
}

// Create records a new event with its optional attachment.
func (r *EventRepository) Create(ctx context.Context, in models.EventInput) (*models.Event, error) {
	var event models.Event
	if err := r.client.Multipart(ctx, http.MethodPost, "/eventoscuerpos", in.Fields(), attachmentParts(in), &event); err != nil {
		return nil, httpclient.Normalize(err, "Error al crear el evento")
	}
	return &event, nil
}

// Update replaces an event. Without a new attachment the stored file is kept by the backend.
func (r *EventRepository) Update(ctx context.Context, id string, in models.EventInput) (*models.Event, error) {
	var event models.Event
	path := "/eventoscuerpos/" + url.PathEscape(id)
	if err := r.client.Multipart(ctx, http.MethodPut, path, in.Fields(), attachmentParts(in), &event); err != nil {
		return nil, httpclient.Normalize(err, "Error al actualizar el evento")
	}
	return &event, nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.JSON(ctx, http.MethodDelete, "/eventoscuerpos/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return httpclient.Normalize(err, "Error al eliminar el evento")
	}
	return nil
}

func attachmentParts(in models.EventInput) []httpclient.File {
	if in.Attachment == nil || len(in.Attachment.Content) == 0 {
		return nil
	}
	return []httpclient.File{{Field: "archivo", Filename: in.Attachment.Filename, Content: in.Attachment.Content}}
}
