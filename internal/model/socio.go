package model

import (
	"time"

	"github.com/google/uuid"
)

// Socio is a cooperative member. A member owns zero or more Cuentas; deleting
// a Socio is a hard delete and is only allowed while no Cuenta references it.
type Socio struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Apellido  string    `gorm:"not null"`
	DNI       string    `gorm:"uniqueIndex;not null;column:dni"`
	Email     *string
	Telefono  *string
	Direccion *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cuentas []Cuenta `gorm:"foreignKey:SocioID"`
}
