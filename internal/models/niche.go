package models

// NicheState is the tri-state status of a burial niche.
type NicheState string

const (
	NicheAvailable   NicheState = "DISPONIBLE"
	NicheOccupied    NicheState = "OCUPADO"
	NicheMaintenance NicheState = "MANTENIMIENTO"
)

// Valid reports whether s is one of the known states.
func (s NicheState) Valid() bool {
	switch s {
	case NicheAvailable, NicheOccupied, NicheMaintenance:
		return true
	}
	return false
}

// Niche is a physical burial slot (nicho).
type Niche struct {
	Codigo    string     `json:"codigo"`
	Ubicacion string     `json:"ubicacion"`
	Estado    NicheState `json:"estado"`
}

// NicheAssignment links one occupied niche to its occupant body (nicho-cuerpo).
type NicheAssignment struct {
	ID          string `json:"id"`
	CodigoNicho string `json:"codigoNicho"`
	IDCadaver   string `json:"idCadaver"`
}

// NicheAssignmentInput creates an assignment.
type NicheAssignmentInput struct {
	CodigoNicho string `json:"codigoNicho" form:"codigoNicho" validate:"required"`
	IDCadaver   string `json:"idCadaver" form:"idCadaver" validate:"required"`
}
