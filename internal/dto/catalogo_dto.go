package dto

type ServicioResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
}

type DetalleReclamoResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

type TipoReclamoResponse struct {
	ID       string                   `json:"id"`
	Nombre   string                   `json:"nombre"`
	Detalles []DetalleReclamoResponse `json:"detalles"`
}

type PrioridadResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Nivel  int    `json:"nivel"`
}
