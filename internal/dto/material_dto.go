package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearMaterialRequest struct {
	Nombre        string          `json:"nombre"         validate:"required"`
	Descripcion   *string         `json:"descripcion"`
	UnidadMedida  string          `json:"unidad_medida"  validate:"omitempty"`
	StockActual   int             `json:"stock_actual"   validate:"min=0"`
	StockMinimo   int             `json:"stock_minimo"   validate:"min=0"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"required"`
}

type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required"`
}

// UsoMaterialItem is one line of a usage batch. The batch is all-or-nothing:
// any item failing its stock check rolls back every item.
type UsoMaterialItem struct {
	MaterialID string `json:"material_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type RegistrarUsoRequest struct {
	Items []UsoMaterialItem `json:"items" validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MaterialResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Descripcion   *string         `json:"descripcion,omitempty"`
	UnidadMedida  string          `json:"unidad_medida"`
	StockActual   int             `json:"stock_actual"`
	StockMinimo   int             `json:"stock_minimo"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Activo        bool            `json:"activo"`
}

type UsoMaterialResponse struct {
	ID            string          `json:"id"`
	MaterialID    string          `json:"material_id"`
	Material      string          `json:"material,omitempty"`
	Cantidad      int             `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	CostoTotal    decimal.Decimal `json:"costo_total"`
}

type RegistrarUsoResponse struct {
	OrdenTrabajoID string                `json:"ot_id"`
	Usos           []UsoMaterialResponse `json:"usos"`
	CostoTotal     decimal.Decimal       `json:"costo_total"`
}

// AlertaStockResponse lists materials at or below their minimum stock.
type AlertaStockResponse struct {
	MaterialID  string `json:"material_id"`
	Nombre      string `json:"nombre"`
	StockActual int    `json:"stock_actual"`
	StockMinimo int    `json:"stock_minimo"`
}
