package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearSocioRequest struct {
	Nombre    string  `json:"nombre"    validate:"required"`
	Apellido  string  `json:"apellido"  validate:"required"`
	DNI       string  `json:"dni"       validate:"required,min=7,max=10"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

type ActualizarSocioRequest struct {
	Nombre    string  `json:"nombre"`
	Apellido  string  `json:"apellido"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

type SocioFilter struct {
	Busqueda string `form:"busqueda"` // matches nombre, apellido or dni
	Activo   string `form:"activo"`   // "false" | "all" | default activos
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SocioResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Apellido  string  `json:"apellido"`
	DNI       string  `json:"dni"`
	Email     *string `json:"email,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Activo    bool    `json:"activo"`
	Cuentas   int     `json:"cuentas"`
}

type SocioListResponse struct {
	Data  []SocioResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
