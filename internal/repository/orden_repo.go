package repository

import (
	"context"
	"time"

	"coopelec/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrdenRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenTrabajo, error)
	ListPendientesSinAsignar(ctx context.Context, tipo string) ([]model.OrdenTrabajo, error)
	ListByEmpleado(ctx context.Context, empleadoID uuid.UUID) ([]model.OrdenTrabajo, error)

	// Used inside transactions — callers must pass the tx instance
	CreateTx(tx *gorm.DB, ot *model.OrdenTrabajo) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	FinalizarTx(tx *gorm.DB, id uuid.UUID, observaciones string, fin time.Time) error
	ClearEmpleadoTx(tx *gorm.DB, id uuid.UUID) error

	// ClaimTx is the contended write of the dispatch flow: it sets empleado_id
	// only when the order is still unclaimed AND its itinerary row points at
	// the employee's crew, in a single conditional UPDATE. A zero rows-affected
	// result means the caller lost the race (or the order was never in that
	// crew's itinerary) — there is no separate read-then-write span to race on.
	ClaimTx(tx *gorm.DB, otID, empleadoID, cuadrillaID uuid.UUID) (int64, error)

	// Itinerario
	FindItinerarioByOT(ctx context.Context, otID uuid.UUID) (*model.Itinerario, error)
	ListItinerario(ctx context.Context, cuadrillaID uuid.UUID, fecha *time.Time) ([]model.Itinerario, error)
	UpsertItinerarioTx(tx *gorm.DB, it *model.Itinerario) error
	DeleteItinerarioTx(tx *gorm.DB, otID uuid.UUID) error

	DB() *gorm.DB
}

type ordenRepo struct{ db *gorm.DB }

func NewOrdenRepository(db *gorm.DB) OrdenRepository { return &ordenRepo{db: db} }

func (r *ordenRepo) DB() *gorm.DB { return r.db }

func (r *ordenRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrdenTrabajo, error) {
	var ot model.OrdenTrabajo
	err := r.db.WithContext(ctx).
		Preload("Reclamo.Cuenta").Preload("Reclamo.Detalle.Tipo").Preload("Reclamo.Prioridad").
		First(&ot, id).Error
	return &ot, err
}

// ListPendientesSinAsignar returns claimable work: PENDIENTE, no employee, not
// yet in any crew itinerary. tipo filters by the complaint's top-level type.
func (r *ordenRepo) ListPendientesSinAsignar(ctx context.Context, tipo string) ([]model.OrdenTrabajo, error) {
	var ordenes []model.OrdenTrabajo
	q := r.db.WithContext(ctx).
		Preload("Reclamo.Cuenta").Preload("Reclamo.Detalle.Tipo").Preload("Reclamo.Prioridad").
		Where("empleado_id IS NULL AND estado = ?", model.OTPendiente).
		Where("id NOT IN (SELECT ot_id FROM itinerarios)")
	if tipo != "" {
		q = q.Where(`reclamo_id IN (
			SELECT rec.id FROM reclamos rec
			JOIN detalles_tipo_reclamo d ON d.id = rec.detalle_id
			JOIN tipos_reclamo t ON t.id = d.tipo_id
			WHERE t.nombre = ?)`, tipo)
	}
	err := q.Order("created_at ASC").Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) ListByEmpleado(ctx context.Context, empleadoID uuid.UUID) ([]model.OrdenTrabajo, error) {
	var ordenes []model.OrdenTrabajo
	err := r.db.WithContext(ctx).
		Preload("Reclamo.Cuenta").Preload("Reclamo.Detalle.Tipo").Preload("Reclamo.Prioridad").
		Where("empleado_id = ?", empleadoID).
		Order("created_at DESC").Find(&ordenes).Error
	return ordenes, err
}

func (r *ordenRepo) CreateTx(tx *gorm.DB, ot *model.OrdenTrabajo) error {
	return tx.Create(ot).Error
}

func (r *ordenRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.OrdenTrabajo{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ordenRepo) FinalizarTx(tx *gorm.DB, id uuid.UUID, observaciones string, fin time.Time) error {
	return tx.Model(&model.OrdenTrabajo{}).Where("id = ?", id).Updates(map[string]interface{}{
		"observaciones":      observaciones,
		"fecha_finalizacion": fin,
	}).Error
}

func (r *ordenRepo) ClearEmpleadoTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.OrdenTrabajo{}).Where("id = ?", id).Update("empleado_id", nil).Error
}

func (r *ordenRepo) ClaimTx(tx *gorm.DB, otID, empleadoID, cuadrillaID uuid.UUID) (int64, error) {
	res := tx.Exec(`
		UPDATE ordenes_trabajo SET empleado_id = ?, updated_at = NOW()
		WHERE id = ? AND empleado_id IS NULL
		  AND EXISTS (SELECT 1 FROM itinerarios i WHERE i.ot_id = ordenes_trabajo.id AND i.cuadrilla_id = ?)`,
		empleadoID, otID, cuadrillaID)
	return res.RowsAffected, res.Error
}

func (r *ordenRepo) FindItinerarioByOT(ctx context.Context, otID uuid.UUID) (*model.Itinerario, error) {
	var it model.Itinerario
	err := r.db.WithContext(ctx).Where("ot_id = ?", otID).First(&it).Error
	return &it, err
}

func (r *ordenRepo) ListItinerario(ctx context.Context, cuadrillaID uuid.UUID, fecha *time.Time) ([]model.Itinerario, error) {
	var items []model.Itinerario
	q := r.db.WithContext(ctx).
		Preload("Orden.Reclamo.Cuenta").Preload("Orden.Reclamo.Detalle.Tipo").Preload("Orden.Reclamo.Prioridad").
		Where("cuadrilla_id = ?", cuadrillaID)
	if fecha != nil {
		q = q.Where("DATE(fecha_programada) = DATE(?)", *fecha)
	}
	err := q.Order("fecha_programada ASC").Find(&items).Error
	return items, err
}

func (r *ordenRepo) UpsertItinerarioTx(tx *gorm.DB, it *model.Itinerario) error {
	// One itinerary row per OT — re-assigning moves it to the new crew/date.
	if err := tx.Where("ot_id = ?", it.OrdenTrabajoID).Delete(&model.Itinerario{}).Error; err != nil {
		return err
	}
	return tx.Create(it).Error
}

func (r *ordenRepo) DeleteItinerarioTx(tx *gorm.DB, otID uuid.UUID) error {
	return tx.Where("ot_id = ?", otID).Delete(&model.Itinerario{}).Error
}
