package repository

import (
	"context"

	"coopelec/internal/model"

	"gorm.io/gorm"
)

// CatalogoRepository serves the read-only catalog tables.
type CatalogoRepository interface {
	ListServicios(ctx context.Context) ([]model.Servicio, error)
	ListTiposReclamo(ctx context.Context) ([]model.TipoReclamo, error)
	ListPrioridades(ctx context.Context) ([]model.Prioridad, error)
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) ListServicios(ctx context.Context) ([]model.Servicio, error) {
	var servicios []model.Servicio
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&servicios).Error
	return servicios, err
}

func (r *catalogoRepo) ListTiposReclamo(ctx context.Context) ([]model.TipoReclamo, error) {
	var tipos []model.TipoReclamo
	err := r.db.WithContext(ctx).Preload("Detalles").Order("nombre ASC").Find(&tipos).Error
	return tipos, err
}

func (r *catalogoRepo) ListPrioridades(ctx context.Context) ([]model.Prioridad, error) {
	var prioridades []model.Prioridad
	err := r.db.WithContext(ctx).Order("nivel ASC").Find(&prioridades).Error
	return prioridades, err
}
