package service

import (
	"context"
	"testing"
	"time"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ordenFixture struct {
	svc           OrdenService
	ordenRepo     *stubOrdenRepo
	reclamoRepo   *stubReclamoRepo
	cuadrillaRepo *stubCuadrillaRepo
}

func newOrdenFixture() *ordenFixture {
	ordenRepo := newStubOrdenRepo()
	reclamoRepo := newStubReclamoRepo()
	cuadrillaRepo := newStubCuadrillaRepo()
	return &ordenFixture{
		svc:           NewOrdenService(ordenRepo, reclamoRepo, cuadrillaRepo, nil),
		ordenRepo:     ordenRepo,
		reclamoRepo:   reclamoRepo,
		cuadrillaRepo: cuadrillaRepo,
	}
}

// seedOrden creates a complaint with its work order in the given estado.
func (f *ordenFixture) seedOrden(estado string) *model.OrdenTrabajo {
	reclamo := &model.Reclamo{ID: uuid.New(), CuentaID: uuid.New(), Estado: model.ReclamoPendiente}
	f.reclamoRepo.reclamos[reclamo.ID] = reclamo
	ot := &model.OrdenTrabajo{ID: uuid.New(), ReclamoID: reclamo.ID, Estado: estado, Reclamo: reclamo}
	f.ordenRepo.ordenes[ot.ID] = ot
	return ot
}

// seedCuadrilla creates an active crew with one active member.
func (f *ordenFixture) seedCuadrilla() (*model.Cuadrilla, uuid.UUID) {
	c := &model.Cuadrilla{ID: uuid.New(), Nombre: "Cuadrilla Norte", Zona: "NORTE", Activa: true}
	f.cuadrillaRepo.cuadrillas[c.ID] = c
	empleadoID := uuid.New()
	f.cuadrillaRepo.membresias = append(f.cuadrillaRepo.membresias, &model.EmpleadoCuadrilla{
		ID: uuid.New(), EmpleadoID: empleadoID, CuadrillaID: c.ID,
		FechaAsignacion: time.Now(), Activa: true,
	})
	return c, empleadoID
}

func TestAsignarCuadrilla_TransicionaYDerivaReclamo(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTPendiente)
	cuadrilla, _ := f.seedCuadrilla()

	resp, err := f.svc.AsignarCuadrilla(context.Background(), dto.AsignarCuadrillaRequest{
		OrdenTrabajoID:  ot.ID.String(),
		CuadrillaID:     cuadrilla.ID.String(),
		FechaProgramada: "2026-09-01",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OTAsignada, resp.Estado)
	assert.Equal(t, cuadrilla.ID.String(), resp.CuadrillaID)

	// The complaint follows the work order in the same transaction.
	assert.Equal(t, model.ReclamoEnProceso, f.reclamoRepo.reclamos[ot.ReclamoID].Estado)

	it, err := f.ordenRepo.FindItinerarioByOT(context.Background(), ot.ID)
	require.NoError(t, err)
	assert.Equal(t, cuadrilla.ID, it.CuadrillaID)
}

func TestAsignarCuadrilla_ReasignarMueveItinerario(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTPendiente)
	cuadrillaA, _ := f.seedCuadrilla()

	cuadrillaB := &model.Cuadrilla{ID: uuid.New(), Nombre: "Cuadrilla Sur", Zona: "SUR", Activa: true}
	f.cuadrillaRepo.cuadrillas[cuadrillaB.ID] = cuadrillaB
	f.cuadrillaRepo.membresias = append(f.cuadrillaRepo.membresias, &model.EmpleadoCuadrilla{
		ID: uuid.New(), EmpleadoID: uuid.New(), CuadrillaID: cuadrillaB.ID,
		FechaAsignacion: time.Now(), Activa: true,
	})

	_, err := f.svc.AsignarCuadrilla(context.Background(), dto.AsignarCuadrillaRequest{
		OrdenTrabajoID: ot.ID.String(), CuadrillaID: cuadrillaA.ID.String(), FechaProgramada: "2026-09-01",
	})
	require.NoError(t, err)
	_, err = f.svc.AsignarCuadrilla(context.Background(), dto.AsignarCuadrillaRequest{
		OrdenTrabajoID: ot.ID.String(), CuadrillaID: cuadrillaB.ID.String(), FechaProgramada: "2026-09-02",
	})
	require.NoError(t, err)

	it, err := f.ordenRepo.FindItinerarioByOT(context.Background(), ot.ID)
	require.NoError(t, err)
	assert.Equal(t, cuadrillaB.ID, it.CuadrillaID)
	assert.Equal(t, model.OTAsignada, f.ordenRepo.ordenes[ot.ID].Estado)
}

func TestAsignarCuadrilla_CuadrillaSinMiembros(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTPendiente)
	c := &model.Cuadrilla{ID: uuid.New(), Nombre: "Vacia", Zona: "ESTE", Activa: true}
	f.cuadrillaRepo.cuadrillas[c.ID] = c

	_, err := f.svc.AsignarCuadrilla(context.Background(), dto.AsignarCuadrillaRequest{
		OrdenTrabajoID: ot.ID.String(), CuadrillaID: c.ID.String(), FechaProgramada: "2026-09-01",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
}

func TestAsignarCuadrilla_OrdenInexistente(t *testing.T) {
	f := newOrdenFixture()
	cuadrilla, _ := f.seedCuadrilla()

	_, err := f.svc.AsignarCuadrilla(context.Background(), dto.AsignarCuadrillaRequest{
		OrdenTrabajoID: uuid.NewString(), CuadrillaID: cuadrilla.ID.String(), FechaProgramada: "2026-09-01",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestTomar_GanadorYPerdedor(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTPendiente)
	cuadrilla, empleadoA := f.seedCuadrilla()

	empleadoB := uuid.New()
	f.cuadrillaRepo.membresias = append(f.cuadrillaRepo.membresias, &model.EmpleadoCuadrilla{
		ID: uuid.New(), EmpleadoID: empleadoB, CuadrillaID: cuadrilla.ID,
		FechaAsignacion: time.Now(), Activa: true,
	})

	_, err := f.svc.AsignarCuadrilla(context.Background(), dto.AsignarCuadrillaRequest{
		OrdenTrabajoID: ot.ID.String(), CuadrillaID: cuadrilla.ID.String(), FechaProgramada: "2026-09-01",
	})
	require.NoError(t, err)

	resp, err := f.svc.Tomar(context.Background(), ot.ID, empleadoA)
	require.NoError(t, err)
	assert.Equal(t, model.OTEnProceso, resp.Estado)
	assert.Equal(t, model.ReclamoEnProceso, f.reclamoRepo.reclamos[ot.ReclamoID].Estado)

	// Second claim loses: the conditional update touches zero rows.
	_, err = f.svc.Tomar(context.Background(), ot.ID, empleadoB)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	assert.Equal(t, empleadoA, *f.ordenRepo.ordenes[ot.ID].EmpleadoID)
}

func TestTomar_SinMembresiaActiva(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTAsignada)

	_, err := f.svc.Tomar(context.Background(), ot.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
}

func TestTomar_OrdenDeOtraCuadrilla(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTPendiente)
	cuadrillaA, _ := f.seedCuadrilla()
	_, empleadoB := f.seedCuadrillaConNombre("Cuadrilla Oeste")

	_, err := f.svc.AsignarCuadrilla(context.Background(), dto.AsignarCuadrillaRequest{
		OrdenTrabajoID: ot.ID.String(), CuadrillaID: cuadrillaA.ID.String(), FechaProgramada: "2026-09-01",
	})
	require.NoError(t, err)

	// empleadoB's crew never got this order in its itinerary.
	_, err = f.svc.Tomar(context.Background(), ot.ID, empleadoB)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func (f *ordenFixture) seedCuadrillaConNombre(nombre string) (*model.Cuadrilla, uuid.UUID) {
	c := &model.Cuadrilla{ID: uuid.New(), Nombre: nombre, Zona: "OESTE", Activa: true}
	f.cuadrillaRepo.cuadrillas[c.ID] = c
	empleadoID := uuid.New()
	f.cuadrillaRepo.membresias = append(f.cuadrillaRepo.membresias, &model.EmpleadoCuadrilla{
		ID: uuid.New(), EmpleadoID: empleadoID, CuadrillaID: c.ID,
		FechaAsignacion: time.Now(), Activa: true,
	})
	return c, empleadoID
}

func TestFinalizar_OK(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTEnProceso)
	empleadoID := uuid.New()
	ot.EmpleadoID = &empleadoID

	resp, err := f.svc.Finalizar(context.Background(), ot.ID, &empleadoID, dto.FinalizarOrdenRequest{
		Observaciones: "se reemplazo el fusible del transformador",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OTCompletada, resp.Estado)
	assert.Equal(t, model.ReclamoResuelto, f.reclamoRepo.reclamos[ot.ReclamoID].Estado)
	require.NotNil(t, f.ordenRepo.ordenes[ot.ID].FechaFinalizacion)
}

func TestFinalizar_OrdenDeOtroEmpleado(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTEnProceso)
	duenio := uuid.New()
	ot.EmpleadoID = &duenio

	otro := uuid.New()
	_, err := f.svc.Finalizar(context.Background(), ot.ID, &otro, dto.FinalizarOrdenRequest{
		Observaciones: "observaciones de prueba",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindForbidden, apierror.KindOf(err))
	assert.Equal(t, model.OTEnProceso, f.ordenRepo.ordenes[ot.ID].Estado)
}

func TestFinalizar_DesdePendienteEsInvalido(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTPendiente)

	_, err := f.svc.Finalizar(context.Background(), ot.ID, nil, dto.FinalizarOrdenRequest{
		Observaciones: "observaciones de prueba",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
}

func TestDesasignar_VuelveAPendiente(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTPendiente)
	cuadrilla, _ := f.seedCuadrilla()

	_, err := f.svc.AsignarCuadrilla(context.Background(), dto.AsignarCuadrillaRequest{
		OrdenTrabajoID: ot.ID.String(), CuadrillaID: cuadrilla.ID.String(), FechaProgramada: "2026-09-01",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Desasignar(context.Background(), ot.ID))
	assert.Equal(t, model.OTPendiente, f.ordenRepo.ordenes[ot.ID].Estado)
	assert.Equal(t, model.ReclamoPendiente, f.reclamoRepo.reclamos[ot.ReclamoID].Estado)
	_, err = f.ordenRepo.FindItinerarioByOT(context.Background(), ot.ID)
	assert.Error(t, err)
}

func TestDesasignar_OrdenTomadaQuedaSinDuenio(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTPendiente)
	cuadrilla, empleadoID := f.seedCuadrilla()

	_, err := f.svc.AsignarCuadrilla(context.Background(), dto.AsignarCuadrillaRequest{
		OrdenTrabajoID: ot.ID.String(), CuadrillaID: cuadrilla.ID.String(), FechaProgramada: "2026-09-01",
	})
	require.NoError(t, err)
	_, err = f.svc.Tomar(context.Background(), ot.ID, empleadoID)
	require.NoError(t, err)
	require.Equal(t, model.OTEnProceso, f.ordenRepo.ordenes[ot.ID].Estado)

	// Releasing a claimed order drops the owner and the itinerary entry.
	require.NoError(t, f.svc.Desasignar(context.Background(), ot.ID))
	assert.Equal(t, model.OTPendiente, f.ordenRepo.ordenes[ot.ID].Estado)
	assert.Nil(t, f.ordenRepo.ordenes[ot.ID].EmpleadoID)
	assert.Equal(t, model.ReclamoPendiente, f.reclamoRepo.reclamos[ot.ReclamoID].Estado)
	_, err = f.ordenRepo.FindItinerarioByOT(context.Background(), ot.ID)
	assert.Error(t, err)
}

func TestDesasignar_SinAsignacionFalla(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTPendiente)

	err := f.svc.Desasignar(context.Background(), ot.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
}

func TestDesasignar_DesdeTerminalFalla(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTCompletada)

	err := f.svc.Desasignar(context.Background(), ot.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
	assert.Equal(t, model.OTCompletada, f.ordenRepo.ordenes[ot.ID].Estado)
}

func TestCancelar_DesdeTerminalFalla(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTCompletada)

	err := f.svc.Cancelar(context.Background(), ot.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
	assert.Equal(t, model.OTCompletada, f.ordenRepo.ordenes[ot.ID].Estado)
}

func TestCancelar_DerivaReclamoCancelado(t *testing.T) {
	f := newOrdenFixture()
	ot := f.seedOrden(model.OTPendiente)

	require.NoError(t, f.svc.Cancelar(context.Background(), ot.ID))
	assert.Equal(t, model.OTCancelada, f.ordenRepo.ordenes[ot.ID].Estado)
	assert.Equal(t, model.ReclamoCancelado, f.reclamoRepo.reclamos[ot.ReclamoID].Estado)
}
