package model

// Closed status sets for work orders and complaints, plus the total mapping
// between them. A Reclamo's estado is never written independently: every
// OrdenTrabajo transition derives and writes the complaint status in the same
// transaction, through ReclamoEstadoDesdeOT.

// OrdenTrabajo estados.
const (
	OTPendiente  = "PENDIENTE"
	OTAsignada   = "ASIGNADA"
	OTEnProceso  = "EN_PROCESO"
	OTCompletada = "COMPLETADA"
	OTCancelada  = "CANCELADA"
)

// Reclamo estados.
const (
	ReclamoPendiente = "PENDIENTE"
	ReclamoEnProceso = "EN_PROCESO"
	ReclamoResuelto  = "RESUELTO"
	ReclamoCancelado = "CANCELADO"
)

var otReclamoMapping = map[string]string{
	OTPendiente:  ReclamoPendiente,
	OTAsignada:   ReclamoEnProceso,
	OTEnProceso:  ReclamoEnProceso,
	OTCompletada: ReclamoResuelto,
	OTCancelada:  ReclamoCancelado,
}

// ReclamoEstadoDesdeOT maps a work-order status to the customer-facing
// complaint status. ok=false means otEstado is not a known status.
func ReclamoEstadoDesdeOT(otEstado string) (string, bool) {
	e, ok := otReclamoMapping[otEstado]
	return e, ok
}

var otTransiciones = map[string][]string{
	OTPendiente:  {OTAsignada, OTEnProceso, OTCancelada},
	OTAsignada:   {OTEnProceso, OTPendiente, OTCancelada},
	OTEnProceso:  {OTCompletada, OTAsignada, OTCancelada},
	OTCompletada: {},
	OTCancelada:  {},
}

// TransicionOTValida reports whether desde → hacia is an allowed work-order
// transition. COMPLETADA and CANCELADA are terminal.
func TransicionOTValida(desde, hacia string) bool {
	for _, e := range otTransiciones[desde] {
		if e == hacia {
			return true
		}
	}
	return false
}
