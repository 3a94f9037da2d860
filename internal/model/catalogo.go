package model

import (
	"time"

	"github.com/google/uuid"
)

// Servicio is the service type catalog (residential, commercial, rural...).
type Servicio struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
}

// TipoReclamo is the top-level complaint classification: TECNICO | ADMINISTRATIVO.
type TipoReclamo struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`

	Detalles []DetalleTipoReclamo `gorm:"foreignKey:TipoID"`
}

func (TipoReclamo) TableName() string { return "tipos_reclamo" }

// DetalleTipoReclamo is a concrete complaint subject under a TipoReclamo
// (e.g. "Corte de suministro", "Error de facturacion").
type DetalleTipoReclamo struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TipoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre string    `gorm:"not null"`

	Tipo *TipoReclamo `gorm:"foreignKey:TipoID"`
}

func (DetalleTipoReclamo) TableName() string { return "detalles_tipo_reclamo" }

// Prioridad orders complaints for dispatch. Lower Nivel = more urgent.
type Prioridad struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`
	Nivel  int       `gorm:"not null"`
}

func (Prioridad) TableName() string { return "prioridades" }
