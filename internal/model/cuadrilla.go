package model

import (
	"time"

	"github.com/google/uuid"
)

// Cuadrilla groups field employees by zone.
type Cuadrilla struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"uniqueIndex;not null"`
	Zona      string    `gorm:"not null"`
	Activa    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Miembros []EmpleadoCuadrilla `gorm:"foreignKey:CuadrillaID"`
}

// EmpleadoCuadrilla is a time-bounded crew membership. An employee has at
// most one active membership at a time; adding to a new crew closes the
// previous one.
type EmpleadoCuadrilla struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpleadoID         uuid.UUID `gorm:"type:uuid;not null;index"`
	CuadrillaID        uuid.UUID `gorm:"type:uuid;not null;index"`
	FechaAsignacion    time.Time `gorm:"not null"`
	FechaDesasignacion *time.Time
	Activa             bool `gorm:"not null;default:true"`

	Empleado  *Empleado  `gorm:"foreignKey:EmpleadoID"`
	Cuadrilla *Cuadrilla `gorm:"foreignKey:CuadrillaID"`
}

func (EmpleadoCuadrilla) TableName() string { return "empleados_cuadrilla" }
