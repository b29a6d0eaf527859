package models

// Document kinds produced by the documents service.
const (
	DocumentReport     = "REPORTE"
	DocumentDigitized  = "DIGITALIZACION"
	DefaultReportKind  = DocumentReport
	ReportDownloadName = "reporte.pdf"
)

// Document is a generated report or a digitized scan registered by the documents service.
type Document struct {
	ID              string `json:"id"`
	Nombre          string `json:"nombre"`
	FechaGeneracion string `json:"fechaGeneracion"`
	Tipo            string `json:"tipo"`
	UsuarioID       string `json:"usuarioId"`
}

// DocumentInput creates or replaces a document entry.
type DocumentInput struct {
	Nombre          string `json:"nombre" form:"nombre" validate:"required"`
	FechaGeneracion string `json:"fechaGeneracion,omitempty" form:"fechaGeneracion"`
	Tipo            string `json:"tipo" form:"tipo" validate:"required,oneof=REPORTE DIGITALIZACION"`
	UsuarioID       string `json:"usuarioId,omitempty" form:"usuarioId"`
}
