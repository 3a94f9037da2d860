package repository

import (
	"context"
	"database/sql"
	"fmt"

	"coopelec/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CuentaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cuenta, error)
	FindByNumero(ctx context.Context, numero string) (*model.Cuenta, error)
	ListBySocio(ctx context.Context, socioID uuid.UUID) ([]model.Cuenta, error)
	ListActivasSinFactura(ctx context.Context, periodo string) ([]model.Cuenta, error)

	// Used inside the account-creation transaction — callers pass the tx
	CreateTx(tx *gorm.DB, c *model.Cuenta) error
	CreateMedidorTx(tx *gorm.DB, m *model.Medidor) error
	NextNumeroCuentaTx(tx *gorm.DB) (string, error)
	NextNumeroMedidorTx(tx *gorm.DB) (string, error)

	// Lecturas
	CreateLectura(ctx context.Context, l *model.Lectura) error
	FindLectura(ctx context.Context, medidorID uuid.UUID, periodo string) (*model.Lectura, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type cuentaRepo struct{ db *gorm.DB }

func NewCuentaRepository(db *gorm.DB) CuentaRepository { return &cuentaRepo{db: db} }

func (r *cuentaRepo) DB() *gorm.DB { return r.db }

func (r *cuentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cuenta, error) {
	var c model.Cuenta
	err := r.db.WithContext(ctx).Preload("Medidor").Preload("Servicio").First(&c, id).Error
	return &c, err
}

func (r *cuentaRepo) FindByNumero(ctx context.Context, numero string) (*model.Cuenta, error) {
	var c model.Cuenta
	err := r.db.WithContext(ctx).Where("numero_cuenta = ?", numero).First(&c).Error
	return &c, err
}

func (r *cuentaRepo) ListBySocio(ctx context.Context, socioID uuid.UUID) ([]model.Cuenta, error) {
	var cuentas []model.Cuenta
	err := r.db.WithContext(ctx).Preload("Medidor").Preload("Servicio").
		Where("socio_id = ?", socioID).Order("numero_cuenta ASC").Find(&cuentas).Error
	return cuentas, err
}

// ListActivasSinFactura returns active accounts that have no invoice for the
// given period — the emission worklist.
func (r *cuentaRepo) ListActivasSinFactura(ctx context.Context, periodo string) ([]model.Cuenta, error) {
	var cuentas []model.Cuenta
	err := r.db.WithContext(ctx).Preload("Medidor").Preload("Socio").
		Where("activa = true").
		Where("id NOT IN (SELECT cuenta_id FROM facturas WHERE periodo = ?)", periodo).
		Find(&cuentas).Error
	return cuentas, err
}

func (r *cuentaRepo) CreateTx(tx *gorm.DB, c *model.Cuenta) error {
	return tx.Create(c).Error
}

func (r *cuentaRepo) CreateMedidorTx(tx *gorm.DB, m *model.Medidor) error {
	return tx.Create(m).Error
}

// NextNumeroCuentaTx computes MAX(numeric value)+1 padded to 6 digits.
// Runs inside the creation transaction so concurrent creations serialize on
// the unique index rather than silently duplicating.
func (r *cuentaRepo) NextNumeroCuentaTx(tx *gorm.DB) (string, error) {
	return nextPaddedNumber(tx, "cuentas", "numero_cuenta")
}

func (r *cuentaRepo) NextNumeroMedidorTx(tx *gorm.DB) (string, error) {
	return nextPaddedNumber(tx, "medidores", "numero_medidor")
}

func nextPaddedNumber(tx *gorm.DB, table, column string) (string, error) {
	var max sql.NullInt64
	q := fmt.Sprintf("SELECT MAX(CAST(%s AS BIGINT)) FROM %s", column, table)
	if err := tx.Raw(q).Scan(&max).Error; err != nil {
		return "", err
	}
	return siguienteNumero(max), nil
}

// siguienteNumero derives the next correlative number from the current MAX.
// A NULL max (empty table) starts the sequence at "000001".
func siguienteNumero(max sql.NullInt64) string {
	return fmt.Sprintf("%06d", max.Int64+1)
}

func (r *cuentaRepo) CreateLectura(ctx context.Context, l *model.Lectura) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *cuentaRepo) FindLectura(ctx context.Context, medidorID uuid.UUID, periodo string) (*model.Lectura, error) {
	var l model.Lectura
	err := r.db.WithContext(ctx).
		Where("medidor_id = ? AND periodo = ?", medidorID, periodo).First(&l).Error
	return &l, err
}
