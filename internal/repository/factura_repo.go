package repository

import (
	"context"
	"time"

	"coopelec/internal/dto"
	"coopelec/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FacturaRepository interface {
	Create(ctx context.Context, f *model.Factura) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error)
	List(ctx context.Context, filter dto.FacturaFilter, cuentaIDs []uuid.UUID) ([]model.Factura, int64, error)
	UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error

	// Used inside the payment transaction
	CreatePagoTx(tx *gorm.DB, p *model.Pago) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error

	// MarcarVencidas flips PENDIENTE invoices past their due date to VENCIDA.
	// Returns the number of rows updated.
	MarcarVencidas(ctx context.Context, ahora time.Time) (int64, error)

	SumDeuda(ctx context.Context, cuentaID uuid.UUID) ([]model.Factura, error)

	DB() *gorm.DB
}

type facturaRepo struct{ db *gorm.DB }

func NewFacturaRepository(db *gorm.DB) FacturaRepository { return &facturaRepo{db: db} }

func (r *facturaRepo) DB() *gorm.DB { return r.db }

func (r *facturaRepo) Create(ctx context.Context, f *model.Factura) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *facturaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).Preload("Cuenta.Socio").Preload("Pagos").First(&f, id).Error
	return &f, err
}

// List filters by estado with an exact string comparison. cuentaIDs restricts
// the result to the caller's accounts (socio endpoints); nil means no
// restriction (admin endpoints).
func (r *facturaRepo) List(ctx context.Context, filter dto.FacturaFilter, cuentaIDs []uuid.UUID) ([]model.Factura, int64, error) {
	var facturas []model.Factura
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Factura{})

	if cuentaIDs != nil {
		q = q.Where("cuenta_id IN ?", cuentaIDs)
	}
	if filter.CuentaID != "" {
		q = q.Where("cuenta_id = ?", filter.CuentaID)
	}
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Periodo != "" {
		q = q.Where("periodo = ?", filter.Periodo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cuenta").Order("periodo DESC, created_at DESC").
		Limit(filter.Limit).Offset(offset).Find(&facturas).Error
	return facturas, total, err
}

func (r *facturaRepo) UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Factura{}).Where("id = ?", id).
		Update("pdf_path", path).Error
}

func (r *facturaRepo) CreatePagoTx(tx *gorm.DB, p *model.Pago) error {
	return tx.Create(p).Error
}

func (r *facturaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Factura{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *facturaRepo) MarcarVencidas(ctx context.Context, ahora time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Factura{}).
		Where("estado = ? AND fecha_vencimiento < ?", model.FacturaPendiente, ahora).
		Update("estado", model.FacturaVencida)
	return res.RowsAffected, res.Error
}

// SumDeuda returns the unpaid invoices (PENDIENTE + VENCIDA) of an account.
func (r *facturaRepo) SumDeuda(ctx context.Context, cuentaID uuid.UUID) ([]model.Factura, error) {
	var facturas []model.Factura
	err := r.db.WithContext(ctx).
		Where("cuenta_id = ? AND estado IN ?", cuentaID, []string{model.FacturaPendiente, model.FacturaVencida}).
		Order("fecha_vencimiento ASC").Find(&facturas).Error
	return facturas, err
}
