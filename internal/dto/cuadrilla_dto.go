package dto

// ─── Cuadrillas ──────────────────────────────────────────────────────────────

type CrearCuadrillaRequest struct {
	Nombre string `json:"nombre" validate:"required"`
	Zona   string `json:"zona"   validate:"required"`
}

type ActualizarCuadrillaRequest struct {
	Nombre string `json:"nombre"`
	Zona   string `json:"zona"`
}

type AgregarMiembroRequest struct {
	EmpleadoID string `json:"empleado_id" validate:"required,uuid"`
}

type MiembroResponse struct {
	EmpleadoID      string `json:"empleado_id"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	RolInterno      string `json:"rol_interno"`
	FechaAsignacion string `json:"fecha_asignacion"`
}

type CuadrillaResponse struct {
	ID       string            `json:"id"`
	Nombre   string            `json:"nombre"`
	Zona     string            `json:"zona"`
	Activa   bool              `json:"activa"`
	Miembros []MiembroResponse `json:"miembros,omitempty"`
}

// ─── Empleados ───────────────────────────────────────────────────────────────

type CrearEmpleadoRequest struct {
	Nombre     string `json:"nombre"      validate:"required"`
	Apellido   string `json:"apellido"    validate:"required"`
	DNI        string `json:"dni"         validate:"required,min=7,max=10"`
	RolInterno string `json:"rol_interno" validate:"required"`
}

type EmpleadoResponse struct {
	ID         string `json:"id"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	DNI        string `json:"dni"`
	RolInterno string `json:"rol_interno"`
	Activo     bool   `json:"activo"`
}
