package repository

import (
	"context"

	"coopelec/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(ctx context.Context, m *model.Material) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Material, error)
	Update(ctx context.Context, m *model.Material) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListBajoStock(ctx context.Context) ([]model.Material, error)
	AjustarStock(ctx context.Context, id uuid.UUID, delta int) error

	// DescontarStockTx decrements stock only when enough remains, in a single
	// conditional UPDATE. Zero rows affected = insufficient stock (or unknown/
	// inactive material) — the caller rolls back the whole batch.
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int64, error)
	CreateUsoTx(tx *gorm.DB, u *model.UsoMaterial) error

	ListUsosByOrden(ctx context.Context, otID uuid.UUID) ([]model.UsoMaterial, error)

	DB() *gorm.DB
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) DB() *gorm.DB { return r.db }

func (r *materialRepo) Create(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *materialRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Material, error) {
	var materiales []model.Material
	q := r.db.WithContext(ctx)
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Order("nombre ASC").Find(&materiales).Error
	return materiales, err
}

func (r *materialRepo) Update(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materialRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Material{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *materialRepo) ListBajoStock(ctx context.Context) ([]model.Material, error) {
	var materiales []model.Material
	err := r.db.WithContext(ctx).
		Where("activo = true AND stock_actual <= stock_minimo").
		Order("stock_actual ASC").Find(&materiales).Error
	return materiales, err
}

func (r *materialRepo) AjustarStock(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&model.Material{}).
		Where("id = ? AND activo = true", id).
		Update("stock_actual", gorm.Expr("stock_actual + ?", delta)).Error
}

func (r *materialRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (int64, error) {
	res := tx.Model(&model.Material{}).
		Where("id = ? AND activo = true AND stock_actual >= ?", id, cantidad).
		Update("stock_actual", gorm.Expr("stock_actual - ?", cantidad))
	return res.RowsAffected, res.Error
}

func (r *materialRepo) CreateUsoTx(tx *gorm.DB, u *model.UsoMaterial) error {
	return tx.Create(u).Error
}

func (r *materialRepo) ListUsosByOrden(ctx context.Context, otID uuid.UUID) ([]model.UsoMaterial, error) {
	var usos []model.UsoMaterial
	err := r.db.WithContext(ctx).Preload("Material").
		Where("ot_id = ?", otID).Order("created_at ASC").Find(&usos).Error
	return usos, err
}
