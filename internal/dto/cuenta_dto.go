package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCuentaRequest struct {
	SocioID     string `json:"socio_id"     validate:"required,uuid"`
	Direccion   string `json:"direccion"    validate:"required"`
	ServicioID  string `json:"servicio_id"  validate:"required,uuid"`
	EsPrincipal bool   `json:"es_principal"`
}

type RegistrarLecturaRequest struct {
	MedidorID  string `json:"medidor_id" validate:"required,uuid"`
	Periodo    string `json:"periodo"    validate:"required,len=7"` // YYYY-MM
	ConsumoKWH int    `json:"consumo_kwh" validate:"required,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CuentaResponse struct {
	ID            string `json:"id"`
	SocioID       string `json:"socio_id"`
	NumeroCuenta  string `json:"numero_cuenta"`
	Direccion     string `json:"direccion"`
	Servicio      string `json:"servicio"`
	EsPrincipal   bool   `json:"es_principal"`
	Activa        bool   `json:"activa"`
	NumeroMedidor string `json:"numero_medidor,omitempty"`
}

// DeudaResponse is the public debt lookup payload (cached in Redis).
type DeudaResponse struct {
	NumeroCuenta      string          `json:"numero_cuenta"`
	FacturasImpagas   int             `json:"facturas_impagas"`
	DeudaTotal        decimal.Decimal `json:"deuda_total"`
	UltimoVencimiento string          `json:"ultimo_vencimiento,omitempty"`
}
