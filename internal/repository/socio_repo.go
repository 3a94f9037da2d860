package repository

import (
	"context"

	"coopelec/internal/dto"
	"coopelec/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SocioRepository interface {
	Create(ctx context.Context, s *model.Socio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Socio, error)
	FindByDNI(ctx context.Context, dni string) (*model.Socio, error)
	List(ctx context.Context, filter dto.SocioFilter) ([]model.Socio, int64, error)
	Update(ctx context.Context, s *model.Socio) error
	CountCuentas(ctx context.Context, socioID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type socioRepo struct{ db *gorm.DB }

func NewSocioRepository(db *gorm.DB) SocioRepository { return &socioRepo{db: db} }

func (r *socioRepo) Create(ctx context.Context, s *model.Socio) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *socioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Socio, error) {
	var s model.Socio
	err := r.db.WithContext(ctx).Preload("Cuentas").First(&s, id).Error
	return &s, err
}

func (r *socioRepo) FindByDNI(ctx context.Context, dni string) (*model.Socio, error) {
	var s model.Socio
	err := r.db.WithContext(ctx).Where("dni = ?", dni).First(&s).Error
	return &s, err
}

func (r *socioRepo) List(ctx context.Context, filter dto.SocioFilter) ([]model.Socio, int64, error) {
	var socios []model.Socio
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Socio{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}

	if filter.Busqueda != "" {
		like := "%" + filter.Busqueda + "%"
		q = q.Where("nombre ILIKE ? OR apellido ILIKE ? OR dni LIKE ?", like, like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cuentas").Order("apellido ASC, nombre ASC").
		Limit(filter.Limit).Offset(offset).Find(&socios).Error
	return socios, total, err
}

func (r *socioRepo) Update(ctx context.Context, s *model.Socio) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *socioRepo) CountCuentas(ctx context.Context, socioID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cuenta{}).Where("socio_id = ?", socioID).Count(&n).Error
	return n, err
}

// Delete is a hard delete — the service layer guards it behind CountCuentas.
func (r *socioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Socio{}, id).Error
}
