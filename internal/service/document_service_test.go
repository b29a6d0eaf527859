package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cemetery-console/internal/models"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
	"github.com/noah-isme/cemetery-console/pkg/httpclient"
)

type fakeDocumentStore struct {
	docs       []models.Document
	created    []models.DocumentInput
	deleted    []string
	downloadID string
}

func (f *fakeDocumentStore) List(context.Context) ([]models.Document, error) { return f.docs, nil }

func (f *fakeDocumentStore) Create(_ context.Context, in models.DocumentInput) (*models.Document, error) {
	f.created = append(f.created, in)
	return &models.Document{ID: "d-new", Nombre: in.Nombre, Tipo: in.Tipo}, nil
}

func (f *fakeDocumentStore) Update(_ context.Context, id string, in models.DocumentInput) (*models.Document, error) {
	return &models.Document{ID: id, Nombre: in.Nombre, Tipo: in.Tipo}, nil
}

func (f *fakeDocumentStore) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeDocumentStore) DownloadReport(_ context.Context, usuarioID string) (*httpclient.Blob, error) {
	f.downloadID = usuarioID
	return &httpclient.Blob{Data: []byte("%PDF-1.4"), ContentType: "application/pdf", Filename: models.ReportDownloadName}, nil
}

func sampleDocuments() []models.Document {
	return []models.Document{
		{ID: "1", Nombre: "Reporte mensual", Tipo: models.DocumentReport, UsuarioID: "admin"},
		{ID: "2", Nombre: "Acta de inhumación", Tipo: models.DocumentDigitized},
		{ID: "3", Nombre: "Acta de exhumación", Tipo: models.DocumentDigitized},
	}
}

func TestDocumentServiceList(t *testing.T) {
	svc := NewDocumentService(&fakeDocumentStore{docs: sampleDocuments()}, nil, 0, nil)
	ctx := context.Background()

	page, err := svc.List(ctx, DocumentFilter{Query: "acta"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	page, err = svc.List(ctx, DocumentFilter{Tipo: "reporte"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "1", page.Items[0].ID)

	page, err = svc.Digitized(ctx, DocumentFilter{Query: "inhumacion"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "2", page.Items[0].ID)
}

func TestDocumentServiceCreateValidatesTipo(t *testing.T) {
	store := &fakeDocumentStore{}
	svc := NewDocumentService(store, nil, 0, nil)

	_, err := svc.Create(context.Background(), models.DocumentInput{Nombre: "Otro", Tipo: "FACTURA"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	doc, err := svc.Create(context.Background(), models.DocumentInput{Nombre: " Reporte ", Tipo: "reporte"})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentReport, doc.Tipo)
	assert.Equal(t, "Reporte", store.created[0].Nombre)
}

func TestDocumentServiceDeleteAndDownload(t *testing.T) {
	store := &fakeDocumentStore{}
	svc := NewDocumentService(store, nil, 0, nil)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "2"))
	assert.Equal(t, []string{"2"}, store.deleted)

	_, err := svc.DownloadReport(ctx, "")
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	blob, err := svc.DownloadReport(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", store.downloadID)
	assert.Equal(t, models.ReportDownloadName, blob.Filename)
}
