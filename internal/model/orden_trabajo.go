package model

import (
	"time"

	"github.com/google/uuid"
)

// OrdenTrabajo is the operational counterpart of a Reclamo (1:1).
// EmpleadoID NULL means the order is either administrative/unassigned or
// technical and not yet claimed; the claim is an atomic conditional update,
// so two concurrent claims can never both win.
type OrdenTrabajo struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReclamoID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	EmpleadoID        *uuid.UUID `gorm:"type:uuid;index"`
	Estado            string     `gorm:"type:varchar(20);not null;default:'PENDIENTE';index"`
	Observaciones     *string
	FechaFinalizacion *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Reclamo  *Reclamo  `gorm:"foreignKey:ReclamoID"`
	Empleado *Empleado `gorm:"foreignKey:EmpleadoID"`
}

func (OrdenTrabajo) TableName() string { return "ordenes_trabajo" }

// Itinerario binds a work order to a crew for a scheduled date. The row's
// existence is what makes an order "crew-assigned"; the order itself carries
// no crew column.
type Itinerario struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenTrabajoID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:ot_id"`
	CuadrillaID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FechaProgramada time.Time `gorm:"not null"`
	CreatedAt       time.Time

	Orden     *OrdenTrabajo `gorm:"foreignKey:OrdenTrabajoID"`
	Cuadrilla *Cuadrilla    `gorm:"foreignKey:CuadrillaID"`
}

func (Itinerario) TableName() string { return "itinerarios" }
