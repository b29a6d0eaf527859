package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cemetery-console/internal/models"
)

func TestEventRepositoryCreateSendsMultipart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/eventoscuerpos", func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "B-1", r.FormValue("idCadaver"))
		assert.Equal(t, "EXHUMACION", r.FormValue("tipoEvento"))
		_, header, err := r.FormFile("archivo")
		if assert.NoError(t, err) {
			assert.Equal(t, "orden.txt", header.Filename)
		}
		url := "https://files.example/orden.txt"
		writeJSON(w, http.StatusCreated, models.Event{ID: "E-1", IDCadaver: "B-1", Archivo: &url})
	})
	repo := NewEventRepository(newBackend(t, mux))

	event, err := repo.Create(context.Background(), models.EventInput{
		IDCadaver:   "B-1",
		FechaEvento: "2024-05-01T10:00",
		TipoEvento:  "EXHUMACION",
		Attachment:  &models.Attachment{Filename: "orden.txt", Content: []byte("orden judicial")},
	})
	require.NoError(t, err)
	assert.True(t, event.HasAttachment())
}

func TestEventRepositoryUpdateWithoutAttachment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/eventoscuerpos/E-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Empty(t, r.MultipartForm.File)
		writeJSON(w, http.StatusOK, models.Event{ID: "E-1", ResumenEvento: r.FormValue("resumenEvento")})
	})
	mux.HandleFunc("/eventoscuerpos/cuerpo/B-1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Event{{ID: "E-1"}, {ID: "E-2"}})
	})
	repo := NewEventRepository(newBackend(t, mux))

	event, err := repo.Update(context.Background(), "E-1", models.EventInput{ResumenEvento: "Traslado"})
	require.NoError(t, err)
	assert.Equal(t, "Traslado", event.ResumenEvento)

	events, err := repo.ListByBody(context.Background(), "B-1")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
