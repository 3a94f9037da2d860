package service

import (
	"context"
	"testing"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reclamoFixture struct {
	svc        ReclamoService
	repo       *stubReclamoRepo
	ordenRepo  *stubOrdenRepo
	cuentaRepo *stubCuentaRepo
}

func newReclamoFixture() *reclamoFixture {
	repo := newStubReclamoRepo()
	ordenRepo := newStubOrdenRepo()
	cuentaRepo := newStubCuentaRepo()
	return &reclamoFixture{
		svc:        NewReclamoService(repo, ordenRepo, cuentaRepo),
		repo:       repo,
		ordenRepo:  ordenRepo,
		cuentaRepo: cuentaRepo,
	}
}

func (f *reclamoFixture) seedCatalogo() *model.DetalleTipoReclamo {
	tipo := &model.TipoReclamo{ID: uuid.New(), Nombre: "TECNICO"}
	detalle := &model.DetalleTipoReclamo{ID: uuid.New(), TipoID: tipo.ID, Nombre: "Corte de suministro", Tipo: tipo}
	f.repo.detalles[detalle.ID] = detalle

	alta := &model.Prioridad{ID: uuid.New(), Nombre: "ALTA", Nivel: 1}
	baja := &model.Prioridad{ID: uuid.New(), Nombre: "BAJA", Nivel: 3}
	f.repo.prioridades[alta.ID] = alta
	f.repo.prioridades[baja.ID] = baja
	f.repo.porDefecto = baja
	return detalle
}

func (f *reclamoFixture) seedCuenta(socioID uuid.UUID) *model.Cuenta {
	c := &model.Cuenta{ID: uuid.New(), SocioID: socioID, NumeroCuenta: "000042", Activa: true}
	f.cuentaRepo.cuentas[c.ID] = c
	return c
}

func TestCrearReclamo_CreaOrdenPendiente(t *testing.T) {
	f := newReclamoFixture()
	detalle := f.seedCatalogo()
	socioID := uuid.New()
	cuenta := f.seedCuenta(socioID)

	resp, err := f.svc.Crear(context.Background(), &socioID, dto.CrearReclamoRequest{
		CuentaID:    cuenta.ID.String(),
		DetalleID:   detalle.ID.String(),
		Descripcion: "sin luz desde anoche en toda la cuadra",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReclamoPendiente, resp.Estado)
	assert.Equal(t, model.OTPendiente, resp.OrdenEstado)
	assert.NotEmpty(t, resp.OrdenID)
	assert.Equal(t, "WEB", resp.Canal)

	// Both rows exist: the work order points back at the complaint.
	require.Len(t, f.repo.reclamos, 1)
	require.Len(t, f.ordenRepo.ordenes, 1)
	for _, ot := range f.ordenRepo.ordenes {
		_, ok := f.repo.reclamos[ot.ReclamoID]
		assert.True(t, ok)
	}
}

func TestCrearReclamo_PrioridadPorDefecto(t *testing.T) {
	f := newReclamoFixture()
	detalle := f.seedCatalogo()
	socioID := uuid.New()
	cuenta := f.seedCuenta(socioID)

	resp, err := f.svc.Crear(context.Background(), &socioID, dto.CrearReclamoRequest{
		CuentaID:    cuenta.ID.String(),
		DetalleID:   detalle.ID.String(),
		Descripcion: "facturacion duplicada del periodo pasado",
	})
	require.NoError(t, err)
	assert.Equal(t, "BAJA", resp.Prioridad)
}

func TestCrearReclamo_PrioridadExplicita(t *testing.T) {
	f := newReclamoFixture()
	detalle := f.seedCatalogo()
	socioID := uuid.New()
	cuenta := f.seedCuenta(socioID)

	var altaID string
	for id, p := range f.repo.prioridades {
		if p.Nombre == "ALTA" {
			altaID = id.String()
		}
	}

	resp, err := f.svc.Crear(context.Background(), &socioID, dto.CrearReclamoRequest{
		CuentaID:    cuenta.ID.String(),
		DetalleID:   detalle.ID.String(),
		Descripcion: "poste caido sobre la calzada",
		PrioridadID: &altaID,
	})
	require.NoError(t, err)
	assert.Equal(t, "ALTA", resp.Prioridad)
}

func TestCrearReclamo_CuentaDeOtroSocio(t *testing.T) {
	f := newReclamoFixture()
	detalle := f.seedCatalogo()
	cuenta := f.seedCuenta(uuid.New())

	otroSocio := uuid.New()
	_, err := f.svc.Crear(context.Background(), &otroSocio, dto.CrearReclamoRequest{
		CuentaID:    cuenta.ID.String(),
		DetalleID:   detalle.ID.String(),
		Descripcion: "descripcion suficientemente larga",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindForbidden, apierror.KindOf(err))
	assert.Empty(t, f.repo.reclamos)
	assert.Empty(t, f.ordenRepo.ordenes)
}

func TestCrearReclamo_PresencialSinRestriccion(t *testing.T) {
	f := newReclamoFixture()
	detalle := f.seedCatalogo()
	cuenta := f.seedCuenta(uuid.New())

	// Staff path: socioID nil means no ownership check and the channel comes
	// from the request.
	resp, err := f.svc.Crear(context.Background(), nil, dto.CrearReclamoRequest{
		CuentaID:    cuenta.ID.String(),
		DetalleID:   detalle.ID.String(),
		Descripcion: "reclamo tomado en mostrador",
		Canal:       "PRESENCIAL",
	})
	require.NoError(t, err)
	assert.Equal(t, "PRESENCIAL", resp.Canal)
}

func TestListarReclamos_FiltroEstadoExacto(t *testing.T) {
	f := newReclamoFixture()

	pendiente := &model.Reclamo{ID: uuid.New(), CuentaID: uuid.New(), Estado: model.ReclamoPendiente}
	f.repo.reclamos[pendiente.ID] = pendiente
	// Stored with legacy lowercase estado: an exact-match filter must not
	// return it.
	legacy := &model.Reclamo{ID: uuid.New(), CuentaID: uuid.New(), Estado: "pendiente"}
	f.repo.reclamos[legacy.ID] = legacy

	resp, err := f.svc.Listar(context.Background(), dto.ReclamoFilter{Estado: "PENDIENTE"}, nil)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, model.ReclamoPendiente, resp.Data[0].Estado)
}

func TestObtenerReclamo_OwnershipDelSocio(t *testing.T) {
	f := newReclamoFixture()
	socioID := uuid.New()
	cuenta := f.seedCuenta(socioID)

	rec := &model.Reclamo{ID: uuid.New(), CuentaID: cuenta.ID, Cuenta: cuenta, Estado: model.ReclamoPendiente}
	f.repo.reclamos[rec.ID] = rec

	_, err := f.svc.ObtenerPorID(context.Background(), rec.ID, &socioID)
	require.NoError(t, err)

	otro := uuid.New()
	_, err = f.svc.ObtenerPorID(context.Background(), rec.ID, &otro)
	require.Error(t, err)
	assert.Equal(t, apierror.KindForbidden, apierror.KindOf(err))
}
