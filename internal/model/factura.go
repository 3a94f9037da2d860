package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Factura estados — stored as plain strings, compared case-insensitively only
// at payment time.
const (
	FacturaPendiente = "PENDIENTE"
	FacturaPagada    = "PAGADA"
	FacturaVencida   = "VENCIDA"
)

// Factura is a monthly invoice for a Cuenta. One per (cuenta, periodo); the
// only mutation after emission is payment registration (estado → PAGADA) and
// the overdue sweep (PENDIENTE → VENCIDA past the due date).
type Factura struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CuentaID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_factura_periodo,unique"`
	Periodo          string          `gorm:"type:varchar(7);not null;index:idx_factura_periodo,unique"`
	ConsumoKWH       int             `gorm:"not null;default:0;column:consumo_kwh"`
	Importe          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaEmision     time.Time       `gorm:"not null"`
	FechaVencimiento time.Time       `gorm:"not null"`
	Estado           string          `gorm:"type:varchar(20);not null;default:'PENDIENTE'"`
	// PDFPath points at the generated file; filled by the emission worker
	PDFPath   *string `gorm:"column:pdf_path"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cuenta *Cuenta `gorm:"foreignKey:CuentaID"`
	Pagos  []Pago  `gorm:"foreignKey:FacturaID"`
}

// Pago records a payment against a Factura. Created only inside the payment
// transaction that flips the invoice to PAGADA.
type Pago struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FacturaID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago  string          `gorm:"type:varchar(30);not null"`
	Comprobante *string
	CreatedAt   time.Time
}
