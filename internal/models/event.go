package models

// Event is a dated log entry attached to a body (evento cuerpo).
// Archivo holds the stored file URL when an attachment exists.
type Event struct {
	ID            string  `json:"id"`
	IDCadaver     string  `json:"idCadaver"`
	FechaEvento   string  `json:"fechaEvento"`
	TipoEvento    string  `json:"tipoEvento"`
	ResumenEvento string  `json:"resumenEvento"`
	Archivo       *string `json:"archivo"`
}

// HasAttachment reports whether the event references a stored file.
func (e Event) HasAttachment() bool {
	return e.Archivo != nil && *e.Archivo != ""
}

// Attachment is a file uploaded through a console form.
type Attachment struct {
	Filename string
	Content  []byte
}

// EventInput is the multipart create/update payload.
type EventInput struct {
	IDCadaver     string      `form:"idCadaver"`
	FechaEvento   string      `form:"fechaEvento" validate:"required"`
	TipoEvento    string      `form:"tipoEvento" validate:"required"`
	ResumenEvento string      `form:"resumenEvento"`
	Attachment    *Attachment `form:"-"`
}

// Fields returns the non-file multipart fields.
func (in EventInput) Fields() map[string]string {
	return map[string]string{
		"idCadaver":     in.IDCadaver,
		"fechaEvento":   in.FechaEvento,
		"tipoEvento":    in.TipoEvento,
		"resumenEvento": in.ResumenEvento,
	}
}
