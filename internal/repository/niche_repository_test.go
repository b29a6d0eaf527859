package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cemetery-console/internal/models"
)

func TestNicheRepositoryUpdateState(t *testing.T) {
	var gotState, gotMethod string
	mux := http.NewServeMux()
	mux.HandleFunc("/nichos/actualizar-estado/N-01", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotState = r.URL.Query().Get("estado")
		w.WriteHeader(http.StatusOK)
	})
	repo := NewNicheRepository(newBackend(t, mux))

	require.NoError(t, repo.UpdateState(context.Background(), "N-01", models.NicheMaintenance))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "MANTENIMIENTO", gotState)
}

func TestNicheRepositoryGetAndAvailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/nichos/N-02", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Niche{Codigo: "N-02", Ubicacion: "Nicho 2", Estado: models.NicheOccupied})
	})
	mux.HandleFunc("/nichos/disponibles", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Niche{{Codigo: "N-03", Estado: models.NicheAvailable}})
	})
	repo := NewNicheRepository(newBackend(t, mux))

	niche, err := repo.Get(context.Background(), "N-02")
	require.NoError(t, err)
	assert.Equal(t, models.NicheOccupied, niche.Estado)

	available, err := repo.Available(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "N-03", available[0].Codigo)
}
