package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Empleado is field or administrative staff. RolInterno is a free-form role
// string; anything containing "ADMINISTRADOR" is ineligible for crew work.
type Empleado struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre     string    `gorm:"not null"`
	Apellido   string    `gorm:"not null"`
	DNI        string    `gorm:"uniqueIndex;not null;column:dni"`
	RolInterno string    `gorm:"not null"`
	Activo     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ElegibleParaCuadrilla reports whether the employee can join a crew.
func (e *Empleado) ElegibleParaCuadrilla() bool {
	return e.Activo && !strings.Contains(strings.ToUpper(e.RolInterno), "ADMINISTRADOR")
}
