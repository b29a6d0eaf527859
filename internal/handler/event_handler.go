package handler

import (
	"context"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/service"
)

type eventService interface {
	ForBody(ctx context.Context, idCadaver string, filter service.EventFilter) (*service.BodyEvents, error)
	Create(ctx context.Context, in models.EventInput) (*models.Event, error)
	Update(ctx context.Context, id string, in models.EventInput) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}

// EventHandler serves the event log of a body.
type EventHandler struct {
	PageBase
	events eventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(base PageBase, events eventService) *EventHandler {
	return &EventHandler{PageBase: base, events: events}
}

type eventsView struct {
	*service.BodyEvents
	Filter service.EventFilter
}

func eventsPath(bodyID string) string {
	return bodiesPath + "/" + url.PathEscape(bodyID) + "/events"
}

// List renders the body header and its events.
func (h *EventHandler) List(c *gin.Context) {
	p := h.page(c, "Eventos del cuerpo", "bodies")
	var filter service.EventFilter
	_ = c.ShouldBindQuery(&filter)

	result, err := h.events.ForBody(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		h.renderLoadError(c, "body_events", p, err)
		return
	}
	p.Data = eventsView{BodyEvents: result, Filter: filter}
	h.render(c, "body_events", p)
}

// Create records an event with an optional attachment.
func (h *EventHandler) Create(c *gin.Context) {
	bodyID := c.Param("id")
	in, err := h.bindEvent(c, bodyID)
	if err != nil {
		h.fail(c, eventsPath(bodyID), "Error al crear el evento", err)
		return
	}
	if _, err := h.events.Create(c.Request.Context(), in); err != nil {
		h.fail(c, eventsPath(bodyID), "Error al crear el evento", err)
		return
	}
	h.succeed(c, eventsPath(bodyID), "Evento registrado correctamente")
}

// Update replaces an event.
func (h *EventHandler) Update(c *gin.Context) {
	bodyID := c.Param("id")
	in, err := h.bindEvent(c, bodyID)
	if err != nil {
		h.fail(c, eventsPath(bodyID), "Error al actualizar el evento", err)
		return
	}
	if _, err := h.events.Update(c.Request.Context(), c.Param("eventId"), in); err != nil {
		h.fail(c, eventsPath(bodyID), "Error al actualizar el evento", err)
		return
	}
	h.succeed(c, eventsPath(bodyID), "Evento actualizado correctamente")
}

// Delete removes an event.
func (h *EventHandler) Delete(c *gin.Context) {
	bodyID := c.Param("id")
	if err := h.events.Delete(c.Request.Context(), c.Param("eventId")); err != nil {
		h.fail(c, eventsPath(bodyID), "Error al eliminar el evento", err)
		return
	}
	h.succeed(c, eventsPath(bodyID), "Evento eliminado correctamente")
}

func (h *EventHandler) bindEvent(c *gin.Context, bodyID string) (models.EventInput, error) {
	var in models.EventInput
	_ = c.ShouldBind(&in)
	in.IDCadaver = bodyID
	attachment, err := readUpload(c, "archivo")
	if err != nil {
		return in, err
	}
	in.Attachment = attachment
	return in, nil
}
