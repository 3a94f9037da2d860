package repository

import (
	"context"

	"coopelec/internal/dto"
	"coopelec/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReclamoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reclamo, error)
	List(ctx context.Context, filter dto.ReclamoFilter, cuentaIDs []uuid.UUID) ([]model.Reclamo, int64, error)

	// Used inside the complaint-creation transaction
	CreateTx(tx *gorm.DB, rec *model.Reclamo) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error

	// Catalogs
	FindDetalle(ctx context.Context, id uuid.UUID) (*model.DetalleTipoReclamo, error)
	FindPrioridad(ctx context.Context, id uuid.UUID) (*model.Prioridad, error)
	PrioridadPorDefecto(ctx context.Context) (*model.Prioridad, error)

	DB() *gorm.DB
}

type reclamoRepo struct{ db *gorm.DB }

func NewReclamoRepository(db *gorm.DB) ReclamoRepository { return &reclamoRepo{db: db} }

func (r *reclamoRepo) DB() *gorm.DB { return r.db }

func (r *reclamoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reclamo, error) {
	var rec model.Reclamo
	err := r.db.WithContext(ctx).
		Preload("Cuenta").Preload("Detalle.Tipo").Preload("Prioridad").Preload("Orden").
		First(&rec, id).Error
	return &rec, err
}

// List filters estado by exact string match — stored values are never
// normalized at read time.
func (r *reclamoRepo) List(ctx context.Context, filter dto.ReclamoFilter, cuentaIDs []uuid.UUID) ([]model.Reclamo, int64, error) {
	var reclamos []model.Reclamo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Reclamo{})

	if cuentaIDs != nil {
		q = q.Where("cuenta_id IN ?", cuentaIDs)
	}
	if filter.CuentaID != "" {
		q = q.Where("cuenta_id = ?", filter.CuentaID)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Tipo != "" {
		q = q.Where(`detalle_id IN (SELECT d.id FROM detalles_tipo_reclamo d
			JOIN tipos_reclamo t ON t.id = d.tipo_id WHERE t.nombre = ?)`, filter.Tipo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cuenta").Preload("Detalle.Tipo").Preload("Prioridad").Preload("Orden").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&reclamos).Error
	return reclamos, total, err
}

func (r *reclamoRepo) CreateTx(tx *gorm.DB, rec *model.Reclamo) error {
	return tx.Create(rec).Error
}

func (r *reclamoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Reclamo{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *reclamoRepo) FindDetalle(ctx context.Context, id uuid.UUID) (*model.DetalleTipoReclamo, error) {
	var d model.DetalleTipoReclamo
	err := r.db.WithContext(ctx).Preload("Tipo").First(&d, id).Error
	return &d, err
}

func (r *reclamoRepo) FindPrioridad(ctx context.Context, id uuid.UUID) (*model.Prioridad, error) {
	var p model.Prioridad
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

// PrioridadPorDefecto is the least urgent priority (highest nivel).
func (r *reclamoRepo) PrioridadPorDefecto(ctx context.Context) (*model.Prioridad, error) {
	var p model.Prioridad
	err := r.db.WithContext(ctx).Order("nivel DESC").First(&p).Error
	return &p, err
}
