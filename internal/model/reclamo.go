package model

import (
	"time"

	"github.com/google/uuid"
)

// Reclamo is a member-raised complaint against a Cuenta. Its OrdenTrabajo is
// created in the same transaction; estado is derived from the work order's
// status on every transition and never updated on its own.
type Reclamo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CuentaID    uuid.UUID `gorm:"type:uuid;not null;index"`
	DetalleID   uuid.UUID `gorm:"type:uuid;not null"`
	PrioridadID uuid.UUID `gorm:"type:uuid;not null"`
	Descripcion string    `gorm:"not null"`
	Canal       string    `gorm:"type:varchar(20);not null;default:'WEB'"`
	Estado      string    `gorm:"type:varchar(20);not null;default:'PENDIENTE';index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Cuenta    *Cuenta             `gorm:"foreignKey:CuentaID"`
	Detalle   *DetalleTipoReclamo `gorm:"foreignKey:DetalleID"`
	Prioridad *Prioridad          `gorm:"foreignKey:PrioridadID"`
	Orden     *OrdenTrabajo       `gorm:"foreignKey:ReclamoID"`
}
