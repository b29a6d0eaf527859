package models

// Body states recognised by the management service. Other values are rejected there.
const (
	BodyStateInterred = "INHUMADO"
	BodyStateExhumed  = "EXHUMADO"
)

// Body is a deceased-person record (cuerpo inhumado) owned by the management service.
type Body struct {
	ID                       string `json:"idCadaver"`
	Nombre                   string `json:"nombre"`
	Apellido                 string `json:"apellido"`
	DocumentoIdentidad       string `json:"documentoIdentidad"`
	NumeroProtocoloNecropsia string `json:"numeroProtocoloNecropsia"`
	CausaMuerte              string `json:"causaMuerte"`
	FechaNacimiento          string `json:"fechaNacimiento"`
	FechaDefuncion           string `json:"fechaDefuncion"`
	FechaIngreso             string `json:"fechaIngreso"`
	FechaInhumacion          string `json:"fechaInhumacion"`
	FechaExhumacion          string `json:"fechaExhumacion"`
	FuncionarioReceptor      string `json:"funcionarioReceptor"`
	CargoFuncionario         string `json:"cargoFuncionario"`
	AutoridadRemitente       string `json:"autoridadRemitente"`
	CargoAutoridadRemitente  string `json:"cargoAutoridadRemitente"`
	AutoridadExhumacion      string `json:"autoridadExhumacion"`
	CargoAutoridadExhumacion string `json:"cargoAutoridadExhumacion"`
	Estado                   string `json:"estado"`
	Observaciones            string `json:"observaciones"`
}

// FullName joins name and surname for display.
func (b Body) FullName() string {
	switch {
	case b.Nombre == "":
		return b.Apellido
	case b.Apellido == "":
		return b.Nombre
	default:
		return b.Nombre + " " + b.Apellido
	}
}

// BodyInput is the create/update payload. Updates replace the whole record.
type BodyInput struct {
	Nombre                   string `json:"nombre" form:"nombre" validate:"required"`
	Apellido                 string `json:"apellido" form:"apellido" validate:"required"`
	DocumentoIdentidad       string `json:"documentoIdentidad" form:"documentoIdentidad" validate:"required"`
	NumeroProtocoloNecropsia string `json:"numeroProtocoloNecropsia" form:"numeroProtocoloNecropsia"`
	CausaMuerte              string `json:"causaMuerte" form:"causaMuerte"`
	FechaNacimiento          string `json:"fechaNacimiento" form:"fechaNacimiento"`
	FechaDefuncion           string `json:"fechaDefuncion" form:"fechaDefuncion"`
	FechaIngreso             string `json:"fechaIngreso" form:"fechaIngreso"`
	FechaInhumacion          string `json:"fechaInhumacion" form:"fechaInhumacion"`
	FechaExhumacion          string `json:"fechaExhumacion" form:"fechaExhumacion"`
	FuncionarioReceptor      string `json:"funcionarioReceptor" form:"funcionarioReceptor"`
	CargoFuncionario         string `json:"cargoFuncionario" form:"cargoFuncionario"`
	AutoridadRemitente       string `json:"autoridadRemitente" form:"autoridadRemitente"`
	CargoAutoridadRemitente  string `json:"cargoAutoridadRemitente" form:"cargoAutoridadRemitente"`
	AutoridadExhumacion      string `json:"autoridadExhumacion" form:"autoridadExhumacion"`
	CargoAutoridadExhumacion string `json:"cargoAutoridadExhumacion" form:"cargoAutoridadExhumacion"`
	Estado                   string `json:"estado" form:"estado" validate:"required"`
	Observaciones            string `json:"observaciones" form:"observaciones"`
}

// InputFromBody copies an existing record into an editable payload.
func InputFromBody(b Body) BodyInput {
	return BodyInput{
		Nombre:                   b.Nombre,
		Apellido:                 b.Apellido,
		DocumentoIdentidad:       b.DocumentoIdentidad,
		NumeroProtocoloNecropsia: b.NumeroProtocoloNecropsia,
		CausaMuerte:              b.CausaMuerte,
		FechaNacimiento:          b.FechaNacimiento,
		FechaDefuncion:           b.FechaDefuncion,
		FechaIngreso:             b.FechaIngreso,
		FechaInhumacion:          b.FechaInhumacion,
		FechaExhumacion:          b.FechaExhumacion,
		FuncionarioReceptor:      b.FuncionarioReceptor,
		CargoFuncionario:         b.CargoFuncionario,
		AutoridadRemitente:       b.AutoridadRemitente,
		CargoAutoridadRemitente:  b.CargoAutoridadRemitente,
		AutoridadExhumacion:      b.AutoridadExhumacion,
		CargoAutoridadExhumacion: b.CargoAutoridadExhumacion,
		Estado:                   b.Estado,
		Observaciones:            b.Observaciones,
	}
}

// BodyFilter narrows the bodies register.
type BodyFilter struct {
	Query    string `form:"q"`
	Estado   string `form:"estado"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}
