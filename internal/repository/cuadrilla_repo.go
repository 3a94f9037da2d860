package repository

import (
	"context"
	"time"

	"coopelec/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CuadrillaRepository interface {
	Create(ctx context.Context, c *model.Cuadrilla) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cuadrilla, error)
	List(ctx context.Context, incluirInactivas bool) ([]model.Cuadrilla, error)
	Update(ctx context.Context, c *model.Cuadrilla) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	CountMiembrosActivos(ctx context.Context, cuadrillaID uuid.UUID) (int64, error)
	ListMiembrosActivos(ctx context.Context, cuadrillaID uuid.UUID) ([]model.EmpleadoCuadrilla, error)
	FindMembresiaActiva(ctx context.Context, empleadoID uuid.UUID) (*model.EmpleadoCuadrilla, error)

	// Membership changes run in a tx: closing the previous active membership
	// and opening the new one must be atomic.
	CerrarMembresiaTx(tx *gorm.DB, empleadoID uuid.UUID, fecha time.Time) error
	CreateMembresiaTx(tx *gorm.DB, m *model.EmpleadoCuadrilla) error

	DB() *gorm.DB
}

type cuadrillaRepo struct{ db *gorm.DB }

func NewCuadrillaRepository(db *gorm.DB) CuadrillaRepository { return &cuadrillaRepo{db: db} }

func (r *cuadrillaRepo) DB() *gorm.DB { return r.db }

func (r *cuadrillaRepo) Create(ctx context.Context, c *model.Cuadrilla) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cuadrillaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cuadrilla, error) {
	var c model.Cuadrilla
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *cuadrillaRepo) List(ctx context.Context, incluirInactivas bool) ([]model.Cuadrilla, error) {
	var cuadrillas []model.Cuadrilla
	q := r.db.WithContext(ctx)
	if !incluirInactivas {
		q = q.Where("activa = true")
	}
	err := q.Order("nombre ASC").Find(&cuadrillas).Error
	return cuadrillas, err
}

func (r *cuadrillaRepo) Update(ctx context.Context, c *model.Cuadrilla) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cuadrillaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cuadrilla{}).Where("id = ?", id).Update("activa", false).Error
}

func (r *cuadrillaRepo) CountMiembrosActivos(ctx context.Context, cuadrillaID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.EmpleadoCuadrilla{}).
		Where("cuadrilla_id = ? AND activa = true", cuadrillaID).Count(&n).Error
	return n, err
}

func (r *cuadrillaRepo) ListMiembrosActivos(ctx context.Context, cuadrillaID uuid.UUID) ([]model.EmpleadoCuadrilla, error) {
	var miembros []model.EmpleadoCuadrilla
	err := r.db.WithContext(ctx).Preload("Empleado").
		Where("cuadrilla_id = ? AND activa = true", cuadrillaID).Find(&miembros).Error
	return miembros, err
}

// FindMembresiaActiva returns the employee's single active crew membership.
func (r *cuadrillaRepo) FindMembresiaActiva(ctx context.Context, empleadoID uuid.UUID) (*model.EmpleadoCuadrilla, error) {
	var m model.EmpleadoCuadrilla
	err := r.db.WithContext(ctx).Preload("Cuadrilla").
		Where("empleado_id = ? AND activa = true", empleadoID).First(&m).Error
	return &m, err
}

func (r *cuadrillaRepo) CerrarMembresiaTx(tx *gorm.DB, empleadoID uuid.UUID, fecha time.Time) error {
	return tx.Model(&model.EmpleadoCuadrilla{}).
		Where("empleado_id = ? AND activa = true", empleadoID).
		Updates(map[string]interface{}{"activa": false, "fecha_desasignacion": fecha}).Error
}

func (r *cuadrillaRepo) CreateMembresiaTx(tx *gorm.DB, m *model.EmpleadoCuadrilla) error {
	return tx.Create(m).Error
}
