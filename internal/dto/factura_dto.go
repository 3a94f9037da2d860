package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ───────────────────────────────────────────────────────────

// FacturaFilter is bound from the query string of GET /v1/clientes/facturas.
type FacturaFilter struct {
	Estado   string `form:"estado"`    // PENDIENTE | PAGADA | VENCIDA | all
	CuentaID string `form:"cuenta_id"` // restrict to one account
	Periodo  string `form:"periodo"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type FacturaResponse struct {
	ID               string          `json:"id"`
	CuentaID         string          `json:"cuenta_id"`
	NumeroCuenta     string          `json:"numero_cuenta,omitempty"`
	Periodo          string          `json:"periodo"`
	ConsumoKWH       int             `json:"consumo_kwh"`
	Importe          decimal.Decimal `json:"importe"`
	FechaEmision     string          `json:"fecha_emision"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	Estado           string          `json:"estado"`
}

type FacturaListResponse struct {
	Data  []FacturaResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Pagos ───────────────────────────────────────────────────────────────────

type RegistrarPagoRequest struct {
	Monto       decimal.Decimal `json:"monto_pagado" validate:"required"`
	MetodoPago  string          `json:"metodo_pago"  validate:"required,oneof=efectivo debito credito transferencia"`
	Comprobante *string         `json:"comprobante"`
}

type PagoResponse struct {
	ID         string          `json:"id"`
	FacturaID  string          `json:"factura_id"`
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
	Estado     string          `json:"estado_factura"`
	CreatedAt  string          `json:"created_at"`
}

// ─── Emision ─────────────────────────────────────────────────────────────────

type EmitirPeriodoRequest struct {
	Periodo string `json:"periodo" validate:"required,len=7"` // YYYY-MM
}

type EmitirPeriodoResponse struct {
	Periodo  string `json:"periodo"`
	Emitidas int    `json:"emitidas"`
	Omitidas int    `json:"omitidas"` // cuentas already billed for the period
}
