package infra

import (
	"fmt"

	"coopelec/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (partial indexes, CHECK constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the schema. gen_random_uuid() needs pgcrypto on
// PostgreSQL < 13, so the extension is created first.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Socio{},
		&model.Servicio{},
		&model.Cuenta{},
		&model.Medidor{},
		&model.Lectura{},
		&model.Factura{},
		&model.Pago{},
		&model.TipoReclamo{},
		&model.DetalleTipoReclamo{},
		&model.Prioridad{},
		&model.Reclamo{},
		&model.OrdenTrabajo{},
		&model.Empleado{},
		&model.Cuadrilla{},
		&model.EmpleadoCuadrilla{},
		&model.Itinerario{},
		&model.Material{},
		&model.UsoMaterial{},
		&model.Usuario{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded so re-running on a patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// The overdue sweep scans PENDIENTE invoices by due date; a partial
		// index keeps it cheap once most invoices are PAGADA.
		{"partial index for overdue sweep", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_facturas_pendientes_vencimiento') THEN
    CREATE INDEX idx_facturas_pendientes_vencimiento
        ON facturas (fecha_vencimiento)
        WHERE estado = 'PENDIENTE';
  END IF;
END $$`},
		// One active membership per employee, enforced at the DB level.
		{"partial unique index on active memberships", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_membresia_activa_unica') THEN
    CREATE UNIQUE INDEX idx_membresia_activa_unica
        ON empleados_cuadrilla (empleado_id)
        WHERE activa = true;
  END IF;
END $$`},
		// Stock can never go negative even if application checks are bypassed.
		{"non-negative stock check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_materiales_stock_no_negativo') THEN
    ALTER TABLE materiales ADD CONSTRAINT chk_materiales_stock_no_negativo CHECK (stock_actual >= 0);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
