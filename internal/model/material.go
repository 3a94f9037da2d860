package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is an inventory item. StockActual is only mutated through usage
// registration (conditional decrement) and manual adjustment.
type Material struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string          `gorm:"uniqueIndex;not null"`
	Descripcion   *string
	UnidadMedida  string          `gorm:"not null;default:'unidad'"`
	StockActual   int             `gorm:"not null;default:0"`
	StockMinimo   int             `gorm:"not null;default:5"`
	CostoUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Material) TableName() string { return "materiales" }

// UsoMaterial records material consumed against a work order. CostoUnitario
// is a snapshot of the material's cost at usage time.
type UsoMaterial struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenTrabajoID uuid.UUID       `gorm:"type:uuid;not null;index;column:ot_id"`
	MaterialID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad       int             `gorm:"not null"`
	CostoUnitario  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Material *Material     `gorm:"foreignKey:MaterialID"`
	Orden    *OrdenTrabajo `gorm:"foreignKey:OrdenTrabajoID"`
}

func (UsoMaterial) TableName() string { return "usos_material" }
