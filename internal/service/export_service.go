package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/cemetery-console/internal/models"
	"github.com/noah-isme/cemetery-console/internal/viewmodel"
	appErrors "github.com/noah-isme/cemetery-console/pkg/errors"
	"github.com/noah-isme/cemetery-console/pkg/export"
)

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

type filteredBodyLister interface {
	Filtered(ctx context.Context, filter models.BodyFilter) ([]models.Body, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is a rendered file ready to be sent to the browser.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the bodies register as CSV or PDF.
type ExportService struct {
	bodies filteredBodyLister
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	now    func() time.Time
}

var bodyExportHeaders = []string{
	"ID", "Nombre", "Apellido", "Documento", "Protocolo necropsia", "Causa de muerte",
	"Fecha defunción", "Fecha ingreso", "Fecha inhumación", "Estado",
}

// NewExportService constructs an ExportService.
func NewExportService(bodies filteredBodyLister, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{bodies: bodies, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// ParseExportFormat accepts "csv" or "pdf" in any case.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case ExportCSV:
		return ExportCSV, nil
	case ExportPDF:
		return ExportPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("Formato de exportación no soportado: %s", raw))
	}
}

// Bodies renders every body matching filter. Pagination is ignored.
func (s *ExportService) Bodies(ctx context.Context, filter models.BodyFilter, format ExportFormat) (*ExportResult, error) {
	bodies, err := s.bodies.Filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	dataset := bodyDataset(bodies)

	var (
		payload     []byte
		contentType string
	)
	switch format {
	case ExportCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv; charset=utf-8"
	case ExportPDF:
		payload, err = s.pdf.Render(dataset, "Registro de cuerpos inhumados")
		contentType = "application/pdf"
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		s.logger.Error("render export failed", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "No se pudo generar la exportación")
	}

	return &ExportResult{
		Filename:    s.buildFilename("cuerpos", filter.Estado, format),
		ContentType: contentType,
		Data:        payload,
	}, nil
}

func bodyDataset(bodies []models.Body) export.Dataset {
	rows := make([]map[string]string, 0, len(bodies))
	for _, b := range bodies {
		rows = append(rows, map[string]string{
			"ID":                  b.ID,
			"Nombre":              b.Nombre,
			"Apellido":            b.Apellido,
			"Documento":           b.DocumentoIdentidad,
			"Protocolo necropsia": b.NumeroProtocoloNecropsia,
			"Causa de muerte":     b.CausaMuerte,
			"Fecha defunción":     exportDate(b.FechaDefuncion),
			"Fecha ingreso":       exportDate(b.FechaIngreso),
			"Fecha inhumación":    exportDate(b.FechaInhumacion),
			"Estado":              b.Estado,
		})
	}
	return export.Dataset{Headers: bodyExportHeaders, Rows: rows}
}

func exportDate(raw string) string {
	if raw == "" {
		return ""
	}
	return viewmodel.FormatDate(raw)
}

func (s *ExportService) buildFilename(prefix, qualifier string, format ExportFormat) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	if qualifier == "" {
		return fmt.Sprintf("%s_%s.%s", prefix, timestamp, format)
	}
	return fmt.Sprintf("%s_%s_%s.%s", prefix, sanitizeFilename(strings.ToLower(qualifier)), timestamp, format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
