package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coopelec/internal/dto"
	"coopelec/internal/model"
	"coopelec/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so runTx calls the closure
// directly, without a real transaction.

var (
	errNoEncontrado = errors.New("not found")
	errDuplicado    = errors.New("duplicate key")
)

// ── stubCuentaRepo ────────────────────────────────────────────────────────────

type stubCuentaRepo struct {
	cuentas  map[uuid.UUID]*model.Cuenta
	lecturas []model.Lectura
	// preset worklist for ListActivasSinFactura
	sinFactura []model.Cuenta
	cuentaSeq  int
	medidorSeq int
}

func newStubCuentaRepo() *stubCuentaRepo {
	return &stubCuentaRepo{cuentas: make(map[uuid.UUID]*model.Cuenta)}
}

func (r *stubCuentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cuenta, error) {
	c, ok := r.cuentas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCuentaRepo) FindByNumero(_ context.Context, numero string) (*model.Cuenta, error) {
	for _, c := range r.cuentas {
		if c.NumeroCuenta == numero {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubCuentaRepo) ListBySocio(_ context.Context, socioID uuid.UUID) ([]model.Cuenta, error) {
	var out []model.Cuenta
	for _, c := range r.cuentas {
		if c.SocioID == socioID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCuentaRepo) ListActivasSinFactura(_ context.Context, _ string) ([]model.Cuenta, error) {
	return r.sinFactura, nil
}

func (r *stubCuentaRepo) CreateTx(_ *gorm.DB, c *model.Cuenta) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cuentas[c.ID] = c
	return nil
}

func (r *stubCuentaRepo) CreateMedidorTx(_ *gorm.DB, m *model.Medidor) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (r *stubCuentaRepo) NextNumeroCuentaTx(_ *gorm.DB) (string, error) {
	r.cuentaSeq++
	return fmt.Sprintf("%06d", r.cuentaSeq), nil
}

func (r *stubCuentaRepo) NextNumeroMedidorTx(_ *gorm.DB) (string, error) {
	r.medidorSeq++
	return fmt.Sprintf("%06d", r.medidorSeq), nil
}

func (r *stubCuentaRepo) CreateLectura(_ context.Context, l *model.Lectura) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.lecturas = append(r.lecturas, *l)
	return nil
}

func (r *stubCuentaRepo) FindLectura(_ context.Context, medidorID uuid.UUID, periodo string) (*model.Lectura, error) {
	for i := range r.lecturas {
		if r.lecturas[i].MedidorID == medidorID && r.lecturas[i].Periodo == periodo {
			return &r.lecturas[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubCuentaRepo) DB() *gorm.DB { return nil }

var _ repository.CuentaRepository = (*stubCuentaRepo)(nil)

// ── stubFacturaRepo ───────────────────────────────────────────────────────────

type stubFacturaRepo struct {
	facturas map[uuid.UUID]*model.Factura
	pagos    []model.Pago
}

func newStubFacturaRepo() *stubFacturaRepo {
	return &stubFacturaRepo{facturas: make(map[uuid.UUID]*model.Factura)}
}

func (r *stubFacturaRepo) Create(_ context.Context, f *model.Factura) error {
	for _, existing := range r.facturas {
		if existing.CuentaID == f.CuentaID && existing.Periodo == f.Periodo {
			return errors.New("duplicate key")
		}
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.facturas[f.ID] = f
	return nil
}

func (r *stubFacturaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Factura, error) {
	f, ok := r.facturas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return f, nil
}

func (r *stubFacturaRepo) List(_ context.Context, filter dto.FacturaFilter, cuentaIDs []uuid.UUID) ([]model.Factura, int64, error) {
	var out []model.Factura
	for _, f := range r.facturas {
		if filter.Estado != "" && filter.Estado != "all" && f.Estado != filter.Estado {
			continue
		}
		if cuentaIDs != nil {
			found := false
			for _, id := range cuentaIDs {
				if f.CuentaID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, *f)
	}
	return out, int64(len(out)), nil
}

func (r *stubFacturaRepo) UpdatePDFPath(_ context.Context, id uuid.UUID, path string) error {
	f, ok := r.facturas[id]
	if !ok {
		return errors.New("not found")
	}
	f.PDFPath = &path
	return nil
}

func (r *stubFacturaRepo) CreatePagoTx(_ *gorm.DB, p *model.Pago) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pagos = append(r.pagos, *p)
	return nil
}

func (r *stubFacturaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	f, ok := r.facturas[id]
	if !ok {
		return errors.New("not found")
	}
	f.Estado = estado
	return nil
}

func (r *stubFacturaRepo) MarcarVencidas(_ context.Context, ahora time.Time) (int64, error) {
	var n int64
	for _, f := range r.facturas {
		if f.Estado == model.FacturaPendiente && f.FechaVencimiento.Before(ahora) {
			f.Estado = model.FacturaVencida
			n++
		}
	}
	return n, nil
}

func (r *stubFacturaRepo) SumDeuda(_ context.Context, cuentaID uuid.UUID) ([]model.Factura, error) {
	var out []model.Factura
	for _, f := range r.facturas {
		if f.CuentaID == cuentaID && (f.Estado == model.FacturaPendiente || f.Estado == model.FacturaVencida) {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *stubFacturaRepo) DB() *gorm.DB { return nil }

var _ repository.FacturaRepository = (*stubFacturaRepo)(nil)

// ── stubReclamoRepo ───────────────────────────────────────────────────────────

type stubReclamoRepo struct {
	reclamos    map[uuid.UUID]*model.Reclamo
	detalles    map[uuid.UUID]*model.DetalleTipoReclamo
	prioridades map[uuid.UUID]*model.Prioridad
	porDefecto  *model.Prioridad
}

func newStubReclamoRepo() *stubReclamoRepo {
	return &stubReclamoRepo{
		reclamos:    make(map[uuid.UUID]*model.Reclamo),
		detalles:    make(map[uuid.UUID]*model.DetalleTipoReclamo),
		prioridades: make(map[uuid.UUID]*model.Prioridad),
	}
}

func (r *stubReclamoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Reclamo, error) {
	rec, ok := r.reclamos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return rec, nil
}

func (r *stubReclamoRepo) List(_ context.Context, filter dto.ReclamoFilter, cuentaIDs []uuid.UUID) ([]model.Reclamo, int64, error) {
	var out []model.Reclamo
	for _, rec := range r.reclamos {
		if filter.Estado != "" && rec.Estado != filter.Estado {
			continue
		}
		if cuentaIDs != nil {
			found := false
			for _, id := range cuentaIDs {
				if rec.CuentaID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (r *stubReclamoRepo) CreateTx(_ *gorm.DB, rec *model.Reclamo) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.reclamos[rec.ID] = rec
	return nil
}

func (r *stubReclamoRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	rec, ok := r.reclamos[id]
	if !ok {
		return errors.New("not found")
	}
	rec.Estado = estado
	return nil
}

func (r *stubReclamoRepo) FindDetalle(_ context.Context, id uuid.UUID) (*model.DetalleTipoReclamo, error) {
	d, ok := r.detalles[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return d, nil
}

func (r *stubReclamoRepo) FindPrioridad(_ context.Context, id uuid.UUID) (*model.Prioridad, error) {
	p, ok := r.prioridades[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubReclamoRepo) PrioridadPorDefecto(_ context.Context) (*model.Prioridad, error) {
	if r.porDefecto == nil {
		return nil, errors.New("empty catalog")
	}
	return r.porDefecto, nil
}

func (r *stubReclamoRepo) DB() *gorm.DB { return nil }

var _ repository.ReclamoRepository = (*stubReclamoRepo)(nil)

// ── stubOrdenRepo ─────────────────────────────────────────────────────────────

type stubOrdenRepo struct {
	ordenes     map[uuid.UUID]*model.OrdenTrabajo
	itinerarios map[uuid.UUID]*model.Itinerario // keyed by OT id
}

func newStubOrdenRepo() *stubOrdenRepo {
	return &stubOrdenRepo{
		ordenes:     make(map[uuid.UUID]*model.OrdenTrabajo),
		itinerarios: make(map[uuid.UUID]*model.Itinerario),
	}
}

func (r *stubOrdenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.OrdenTrabajo, error) {
	ot, ok := r.ordenes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return ot, nil
}

func (r *stubOrdenRepo) ListPendientesSinAsignar(_ context.Context, _ string) ([]model.OrdenTrabajo, error) {
	var out []model.OrdenTrabajo
	for _, ot := range r.ordenes {
		if ot.Estado == model.OTPendiente && ot.EmpleadoID == nil {
			if _, enItinerario := r.itinerarios[ot.ID]; !enItinerario {
				out = append(out, *ot)
			}
		}
	}
	return out, nil
}

func (r *stubOrdenRepo) ListByEmpleado(_ context.Context, empleadoID uuid.UUID) ([]model.OrdenTrabajo, error) {
	var out []model.OrdenTrabajo
	for _, ot := range r.ordenes {
		if ot.EmpleadoID != nil && *ot.EmpleadoID == empleadoID {
			out = append(out, *ot)
		}
	}
	return out, nil
}

func (r *stubOrdenRepo) CreateTx(_ *gorm.DB, ot *model.OrdenTrabajo) error {
	if ot.ID == uuid.Nil {
		ot.ID = uuid.New()
	}
	r.ordenes[ot.ID] = ot
	return nil
}

func (r *stubOrdenRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	ot, ok := r.ordenes[id]
	if !ok {
		return errors.New("not found")
	}
	ot.Estado = estado
	return nil
}

func (r *stubOrdenRepo) FinalizarTx(_ *gorm.DB, id uuid.UUID, observaciones string, fin time.Time) error {
	ot, ok := r.ordenes[id]
	if !ok {
		return errors.New("not found")
	}
	ot.Observaciones = &observaciones
	ot.FechaFinalizacion = &fin
	return nil
}

func (r *stubOrdenRepo) ClearEmpleadoTx(_ *gorm.DB, id uuid.UUID) error {
	ot, ok := r.ordenes[id]
	if !ok {
		return errors.New("not found")
	}
	ot.EmpleadoID = nil
	return nil
}

// ClaimTx mirrors the conditional UPDATE: claim succeeds only when the order
// is unclaimed and its itinerary row points at the employee's crew.
func (r *stubOrdenRepo) ClaimTx(_ *gorm.DB, otID, empleadoID, cuadrillaID uuid.UUID) (int64, error) {
	ot, ok := r.ordenes[otID]
	if !ok || ot.EmpleadoID != nil {
		return 0, nil
	}
	it, ok := r.itinerarios[otID]
	if !ok || it.CuadrillaID != cuadrillaID {
		return 0, nil
	}
	ot.EmpleadoID = &empleadoID
	return 1, nil
}

func (r *stubOrdenRepo) FindItinerarioByOT(_ context.Context, otID uuid.UUID) (*model.Itinerario, error) {
	it, ok := r.itinerarios[otID]
	if !ok {
		return nil, errors.New("not found")
	}
	return it, nil
}

func (r *stubOrdenRepo) ListItinerario(_ context.Context, cuadrillaID uuid.UUID, _ *time.Time) ([]model.Itinerario, error) {
	var out []model.Itinerario
	for _, it := range r.itinerarios {
		if it.CuadrillaID == cuadrillaID {
			copia := *it
			if ot, ok := r.ordenes[it.OrdenTrabajoID]; ok {
				copia.Orden = ot
			}
			out = append(out, copia)
		}
	}
	return out, nil
}

func (r *stubOrdenRepo) UpsertItinerarioTx(_ *gorm.DB, it *model.Itinerario) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	r.itinerarios[it.OrdenTrabajoID] = it
	return nil
}

func (r *stubOrdenRepo) DeleteItinerarioTx(_ *gorm.DB, otID uuid.UUID) error {
	delete(r.itinerarios, otID)
	return nil
}

func (r *stubOrdenRepo) DB() *gorm.DB { return nil }

var _ repository.OrdenRepository = (*stubOrdenRepo)(nil)

// ── stubCuadrillaRepo ─────────────────────────────────────────────────────────

type stubCuadrillaRepo struct {
	cuadrillas map[uuid.UUID]*model.Cuadrilla
	membresias []*model.EmpleadoCuadrilla
}

func newStubCuadrillaRepo() *stubCuadrillaRepo {
	return &stubCuadrillaRepo{cuadrillas: make(map[uuid.UUID]*model.Cuadrilla)}
}

func (r *stubCuadrillaRepo) Create(_ context.Context, c *model.Cuadrilla) error {
	for _, existing := range r.cuadrillas {
		if existing.Nombre == c.Nombre {
			return errors.New("duplicate key")
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cuadrillas[c.ID] = c
	return nil
}

func (r *stubCuadrillaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cuadrilla, error) {
	c, ok := r.cuadrillas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCuadrillaRepo) List(_ context.Context, incluirInactivas bool) ([]model.Cuadrilla, error) {
	var out []model.Cuadrilla
	for _, c := range r.cuadrillas {
		if !incluirInactivas && !c.Activa {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCuadrillaRepo) Update(_ context.Context, c *model.Cuadrilla) error {
	r.cuadrillas[c.ID] = c
	return nil
}

func (r *stubCuadrillaRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.cuadrillas[id]
	if !ok {
		return errors.New("not found")
	}
	c.Activa = false
	return nil
}

func (r *stubCuadrillaRepo) CountMiembrosActivos(_ context.Context, cuadrillaID uuid.UUID) (int64, error) {
	var n int64
	for _, m := range r.membresias {
		if m.CuadrillaID == cuadrillaID && m.Activa {
			n++
		}
	}
	return n, nil
}

func (r *stubCuadrillaRepo) ListMiembrosActivos(_ context.Context, cuadrillaID uuid.UUID) ([]model.EmpleadoCuadrilla, error) {
	var out []model.EmpleadoCuadrilla
	for _, m := range r.membresias {
		if m.CuadrillaID == cuadrillaID && m.Activa {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubCuadrillaRepo) FindMembresiaActiva(_ context.Context, empleadoID uuid.UUID) (*model.EmpleadoCuadrilla, error) {
	for _, m := range r.membresias {
		if m.EmpleadoID == empleadoID && m.Activa {
			return m, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubCuadrillaRepo) CerrarMembresiaTx(_ *gorm.DB, empleadoID uuid.UUID, fecha time.Time) error {
	for _, m := range r.membresias {
		if m.EmpleadoID == empleadoID && m.Activa {
			m.Activa = false
			m.FechaDesasignacion = &fecha
		}
	}
	return nil
}

func (r *stubCuadrillaRepo) CreateMembresiaTx(_ *gorm.DB, m *model.EmpleadoCuadrilla) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.membresias = append(r.membresias, m)
	return nil
}

func (r *stubCuadrillaRepo) DB() *gorm.DB { return nil }

var _ repository.CuadrillaRepository = (*stubCuadrillaRepo)(nil)

// ── stubMaterialRepo ──────────────────────────────────────────────────────────

type stubMaterialRepo struct {
	materiales map[uuid.UUID]*model.Material
	usos       []model.UsoMaterial
}

func newStubMaterialRepo() *stubMaterialRepo {
	return &stubMaterialRepo{materiales: make(map[uuid.UUID]*model.Material)}
}

func (r *stubMaterialRepo) Create(_ context.Context, m *model.Material) error {
	for _, existing := range r.materiales {
		if existing.Nombre == m.Nombre {
			return errors.New("duplicate key")
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.materiales[m.ID] = m
	return nil
}

func (r *stubMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Material, error) {
	m, ok := r.materiales[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}

func (r *stubMaterialRepo) List(_ context.Context, incluirInactivos bool) ([]model.Material, error) {
	var out []model.Material
	for _, m := range r.materiales {
		if !incluirInactivos && !m.Activo {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubMaterialRepo) Update(_ context.Context, m *model.Material) error {
	r.materiales[m.ID] = m
	return nil
}

func (r *stubMaterialRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	m, ok := r.materiales[id]
	if !ok {
		return errors.New("not found")
	}
	m.Activo = false
	return nil
}

func (r *stubMaterialRepo) ListBajoStock(_ context.Context) ([]model.Material, error) {
	var out []model.Material
	for _, m := range r.materiales {
		if m.Activo && m.StockActual <= m.StockMinimo {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMaterialRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) error {
	m, ok := r.materiales[id]
	if !ok {
		return errors.New("not found")
	}
	m.StockActual += delta
	return nil
}

// DescontarStockTx mirrors the conditional decrement: zero rows when stock is
// insufficient or the material is inactive.
func (r *stubMaterialRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (int64, error) {
	m, ok := r.materiales[id]
	if !ok || !m.Activo || m.StockActual < cantidad {
		return 0, nil
	}
	m.StockActual -= cantidad
	return 1, nil
}

func (r *stubMaterialRepo) CreateUsoTx(_ *gorm.DB, u *model.UsoMaterial) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usos = append(r.usos, *u)
	return nil
}

func (r *stubMaterialRepo) ListUsosByOrden(_ context.Context, otID uuid.UUID) ([]model.UsoMaterial, error) {
	var out []model.UsoMaterial
	for _, u := range r.usos {
		if u.OrdenTrabajoID == otID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubMaterialRepo) DB() *gorm.DB { return nil }

var _ repository.MaterialRepository = (*stubMaterialRepo)(nil)

// ── stubEmpleadoRepo ──────────────────────────────────────────────────────────

type stubEmpleadoRepo struct {
	empleados map[uuid.UUID]*model.Empleado
}

func newStubEmpleadoRepo() *stubEmpleadoRepo {
	return &stubEmpleadoRepo{empleados: make(map[uuid.UUID]*model.Empleado)}
}

func (r *stubEmpleadoRepo) Create(_ context.Context, e *model.Empleado) error {
	for _, existing := range r.empleados {
		if existing.DNI == e.DNI {
			return errors.New("duplicate key")
		}
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.empleados[e.ID] = e
	return nil
}

func (r *stubEmpleadoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Empleado, error) {
	e, ok := r.empleados[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return e, nil
}

func (r *stubEmpleadoRepo) List(_ context.Context, incluirInactivos bool) ([]model.Empleado, error) {
	var out []model.Empleado
	for _, e := range r.empleados {
		if !incluirInactivos && !e.Activo {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEmpleadoRepo) Update(_ context.Context, e *model.Empleado) error {
	r.empleados[e.ID] = e
	return nil
}

func (r *stubEmpleadoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	e, ok := r.empleados[id]
	if !ok {
		return errors.New("not found")
	}
	e.Activo = false
	return nil
}

var _ repository.EmpleadoRepository = (*stubEmpleadoRepo)(nil)

// ── stubUsuarioRepo ───────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, existing := range r.usuarios {
		if existing.Username == u.Username {
			return errors.New("duplicate key")
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errors.New("not found")
	}
	u.Activo = false
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errors.New("not found")
	}
	u.Activo = true
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)
