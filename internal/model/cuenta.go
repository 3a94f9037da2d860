package model

import (
	"time"

	"github.com/google/uuid"
)

// Cuenta is a billable service account. NumeroCuenta is generated at creation
// time: previous numeric maximum plus one, left-padded to 6 digits.
type Cuenta struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SocioID      uuid.UUID `gorm:"type:uuid;not null;index"`
	NumeroCuenta string    `gorm:"uniqueIndex;not null"`
	Direccion    string    `gorm:"not null"`
	ServicioID   uuid.UUID `gorm:"type:uuid;not null"`
	EsPrincipal  bool      `gorm:"not null;default:false"`
	Activa       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Socio    *Socio    `gorm:"foreignKey:SocioID"`
	Servicio *Servicio `gorm:"foreignKey:ServicioID"`
	Medidor  *Medidor  `gorm:"foreignKey:CuentaID"`
}

// Medidor is the meter attached to a Cuenta, created in the same transaction
// as its account with a generated NumeroMedidor.
type Medidor struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CuentaID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	NumeroMedidor string    `gorm:"uniqueIndex;not null"`
	Activo        bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time
}

func (Medidor) TableName() string { return "medidores" }

// Lectura is a monthly meter reading. Periodo format: "YYYY-MM".
type Lectura struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MedidorID    uuid.UUID `gorm:"type:uuid;not null;index:idx_lectura_periodo,unique"`
	Periodo      string    `gorm:"type:varchar(7);not null;index:idx_lectura_periodo,unique"`
	ConsumoKWH   int       `gorm:"not null;column:consumo_kwh"`
	FechaLectura time.Time `gorm:"not null"`

	Medidor *Medidor `gorm:"foreignKey:MedidorID"`
}
