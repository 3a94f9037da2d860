package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearReclamoRequest struct {
	CuentaID    string  `json:"cuenta_id"    validate:"required,uuid"`
	DetalleID   string  `json:"detalle_id"   validate:"required,uuid"`
	Descripcion string  `json:"descripcion"  validate:"required,min=10"`
	PrioridadID *string `json:"prioridad_id" validate:"omitempty,uuid"`
	Canal       string  `json:"canal"        validate:"omitempty,oneof=WEB TELEFONO PRESENCIAL"`
}

// ReclamoFilter compares estado against the stored string exactly —
// no normalization is applied at read time.
type ReclamoFilter struct {
	Estado   string `form:"estado"`
	CuentaID string `form:"cuenta_id"`
	Tipo     string `form:"tipo"` // TECNICO | ADMINISTRATIVO
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReclamoResponse struct {
	ID           string `json:"id"`
	CuentaID     string `json:"cuenta_id"`
	NumeroCuenta string `json:"numero_cuenta,omitempty"`
	Tipo         string `json:"tipo,omitempty"`
	Detalle      string `json:"detalle,omitempty"`
	Prioridad    string `json:"prioridad,omitempty"`
	Descripcion  string `json:"descripcion"`
	Canal        string `json:"canal"`
	Estado       string `json:"estado"`
	OrdenID      string `json:"orden_id,omitempty"`
	OrdenEstado  string `json:"orden_estado,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type ReclamoListResponse struct {
	Data  []ReclamoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
