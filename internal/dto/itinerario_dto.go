package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AsignarCuadrillaRequest struct {
	OrdenTrabajoID  string `json:"ot_id"            validate:"required,uuid"`
	CuadrillaID     string `json:"cuadrilla_id"     validate:"required,uuid"`
	FechaProgramada string `json:"fecha_programada" validate:"required"` // YYYY-MM-DD
}

type FinalizarOrdenRequest struct {
	Observaciones string `json:"observaciones" validate:"required,min=5"`
}

// ItinerarioFilter is bound from GET /v1/itinerario/cuadrilla/:id.
type ItinerarioFilter struct {
	Fecha string `form:"fecha"` // YYYY-MM-DD; empty = full itinerary
}

// PendientesFilter defaults to technical complaints, matching dispatch usage.
type PendientesFilter struct {
	Tipo string `form:"tipo,default=TECNICO"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrdenTrabajoResponse struct {
	ID              string `json:"id"`
	ReclamoID       string `json:"reclamo_id"`
	Estado          string `json:"estado"`
	EmpleadoID      *string `json:"empleado_id,omitempty"`
	Descripcion     string `json:"descripcion,omitempty"`
	Tipo            string `json:"tipo,omitempty"`
	Detalle         string `json:"detalle,omitempty"`
	Prioridad       string `json:"prioridad,omitempty"`
	NumeroCuenta    string `json:"numero_cuenta,omitempty"`
	Direccion       string `json:"direccion,omitempty"`
	CuadrillaID     string `json:"cuadrilla_id,omitempty"`
	FechaProgramada string `json:"fecha_programada,omitempty"`
	CreatedAt       string `json:"created_at"`
}
