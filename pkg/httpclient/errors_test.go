package httpclient

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantMessage string
		wantStatus  int
		wantCode    string
	}{
		{
			name:        "message field",
			err:         &StatusError{Status: http.StatusBadRequest, Body: []byte(`{"message":"El estado debe ser INHUMADO o EXHUMADO"}`)},
			wantMessage: "El estado debe ser INHUMADO o EXHUMADO",
			wantStatus:  http.StatusBadRequest,
			wantCode:    appErrors.ErrValidation.Code,
		},
		{
			name:        "error field",
			err:         &StatusError{Status: http.StatusUnprocessableEntity, Body: []byte(`{"error":"Documento ilegible"}`)},
			wantMessage: "Documento ilegible",
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    appErrors.ErrValidation.Code,
		},
		{
			name:        "json string",
			err:         &StatusError{Status: http.StatusConflict, Body: []byte(`"Nicho ocupado"`)},
			wantMessage: "Nicho ocupado",
			wantStatus:  http.StatusConflict,
			wantCode:    appErrors.ErrConflict.Code,
		},
		{
			name:        "plain text",
			err:         &StatusError{Status: http.StatusNotFound, ContentType: "text/plain; charset=utf-8", Body: []byte("No encontrado")},
			wantMessage: "No encontrado",
			wantStatus:  http.StatusNotFound,
			wantCode:    appErrors.ErrNotFound.Code,
		},
		{
			name:        "no message field",
			err:         &StatusError{Status: http.StatusInternalServerError, Body: []byte(`{"timestamp":"2024-01-01"}`)},
			wantMessage: "Error al asignar nicho (status 500)",
			wantStatus:  http.StatusInternalServerError,
			wantCode:    appErrors.ErrUpstream.Code,
		},
		{
			name:        "html body",
			err:         &StatusError{Status: http.StatusBadGateway, ContentType: "text/html", Body: []byte("<html>bad gateway</html>")},
			wantMessage: "Error al asignar nicho (status 502)",
			wantStatus:  http.StatusBadGateway,
			wantCode:    appErrors.ErrUpstream.Code,
		},
		{
			name:        "transport",
			err:         &TransportError{Client: "management", Err: errors.New("connection refused")},
			wantMessage: "Error al asignar nicho (sin respuesta del servidor)",
			wantStatus:  http.StatusServiceUnavailable,
			wantCode:    appErrors.ErrUpstreamUnavailable.Code,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Normalize(tc.err, "Error al asignar nicho")

			var appErr *appErrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tc.wantMessage, appErr.Message)
			assert.Equal(t, tc.wantStatus, appErr.Status)
			assert.Equal(t, tc.wantCode, appErr.Code)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestNormalizeLeavesOtherErrors(t *testing.T) {
	assert.NoError(t, Normalize(nil, "x"))

	plain := errors.New("decode response: boom")
	assert.Same(t, plain, Normalize(plain, "x"))
}

func TestNormalizeCanceled(t *testing.T) {
	err := Normalize(&TransportError{Err: context.Canceled}, "Error al obtener los nichos")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Error al obtener los nichos (solicitud cancelada)", appErr.Message)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&StatusError{Status: http.StatusNotFound}))
	assert.False(t, IsNotFound(&StatusError{Status: http.StatusBadRequest}))
	assert.False(t, IsNotFound(errors.New("x")))
}
