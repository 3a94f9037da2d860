package service

import (
	"context"
	"time"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/model"
	"coopelec/internal/repository"
	"coopelec/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrdenService interface {
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.OrdenTrabajoResponse, error)
	ListarPendientes(ctx context.Context, filter dto.PendientesFilter) ([]dto.OrdenTrabajoResponse, error)
	ListarPorEmpleado(ctx context.Context, empleadoID uuid.UUID) ([]dto.OrdenTrabajoResponse, error)
	ListarItinerario(ctx context.Context, cuadrillaID uuid.UUID, filter dto.ItinerarioFilter) ([]dto.OrdenTrabajoResponse, error)

	AsignarCuadrilla(ctx context.Context, req dto.AsignarCuadrillaRequest) (*dto.OrdenTrabajoResponse, error)
	Desasignar(ctx context.Context, otID uuid.UUID) error
	// Tomar is the self-claim of the dispatch flow: the employee takes an order
	// from their crew's itinerary. Losing the race is a conflict, not an error
	// in the caller's request.
	Tomar(ctx context.Context, otID, empleadoID uuid.UUID) (*dto.OrdenTrabajoResponse, error)
	Finalizar(ctx context.Context, otID uuid.UUID, empleadoID *uuid.UUID, req dto.FinalizarOrdenRequest) (*dto.OrdenTrabajoResponse, error)
	Cancelar(ctx context.Context, otID uuid.UUID) error
}

type ordenService struct {
	repo          repository.OrdenRepository
	reclamoRepo   repository.ReclamoRepository
	cuadrillaRepo repository.CuadrillaRepository
	dispatcher    *worker.Dispatcher
}

func NewOrdenService(
	repo repository.OrdenRepository,
	reclamoRepo repository.ReclamoRepository,
	cuadrillaRepo repository.CuadrillaRepository,
	dispatcher *worker.Dispatcher,
) OrdenService {
	return &ordenService{repo: repo, reclamoRepo: reclamoRepo, cuadrillaRepo: cuadrillaRepo, dispatcher: dispatcher}
}

// transitionTx moves the order to hacia and writes the derived complaint
// status in the same transaction. The complaint row is never updated outside
// this function.
func (s *ordenService) transitionTx(tx *gorm.DB, ot *model.OrdenTrabajo, hacia string) error {
	if !model.TransicionOTValida(ot.Estado, hacia) {
		return apierror.Invalid("transicion de estado invalida: " + ot.Estado + " -> " + hacia)
	}
	if err := s.repo.UpdateEstadoTx(tx, ot.ID, hacia); err != nil {
		return err
	}
	reclamoEstado, ok := model.ReclamoEstadoDesdeOT(hacia)
	if !ok {
		return apierror.Invalid("estado de orden desconocido: " + hacia)
	}
	if err := s.reclamoRepo.UpdateEstadoTx(tx, ot.ReclamoID, reclamoEstado); err != nil {
		return err
	}
	ot.Estado = hacia
	return nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *ordenService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.OrdenTrabajoResponse, error) {
	ot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("orden de trabajo no encontrada")
	}
	resp := s.ordenToResponse(ctx, ot)
	return &resp, nil
}

func (s *ordenService) ListarPendientes(ctx context.Context, filter dto.PendientesFilter) ([]dto.OrdenTrabajoResponse, error) {
	ordenes, err := s.repo.ListPendientesSinAsignar(ctx, filter.Tipo)
	if err != nil {
		return nil, err
	}
	return s.ordenesToResponse(ctx, ordenes), nil
}

func (s *ordenService) ListarPorEmpleado(ctx context.Context, empleadoID uuid.UUID) ([]dto.OrdenTrabajoResponse, error) {
	ordenes, err := s.repo.ListByEmpleado(ctx, empleadoID)
	if err != nil {
		return nil, err
	}
	return s.ordenesToResponse(ctx, ordenes), nil
}

func (s *ordenService) ListarItinerario(ctx context.Context, cuadrillaID uuid.UUID, filter dto.ItinerarioFilter) ([]dto.OrdenTrabajoResponse, error) {
	var fecha *time.Time
	if filter.Fecha != "" {
		f, err := time.Parse("2006-01-02", filter.Fecha)
		if err != nil {
			return nil, apierror.Invalid("fecha invalida, formato esperado YYYY-MM-DD")
		}
		fecha = &f
	}
	items, err := s.repo.ListItinerario(ctx, cuadrillaID, fecha)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.OrdenTrabajoResponse, 0, len(items))
	for i := range items {
		it := &items[i]
		if it.Orden == nil {
			continue
		}
		r := ordenBase(it.Orden)
		r.CuadrillaID = it.CuadrillaID.String()
		r.FechaProgramada = it.FechaProgramada.Format("2006-01-02")
		resp = append(resp, r)
	}
	return resp, nil
}

// ── AsignarCuadrilla ──────────────────────────────────────────────────────────

func (s *ordenService) AsignarCuadrilla(ctx context.Context, req dto.AsignarCuadrillaRequest) (*dto.OrdenTrabajoResponse, error) {
	otID, err := uuid.Parse(req.OrdenTrabajoID)
	if err != nil {
		return nil, apierror.Invalid("ot_id invalido")
	}
	cuadrillaID, err := uuid.Parse(req.CuadrillaID)
	if err != nil {
		return nil, apierror.Invalid("cuadrilla_id invalido")
	}
	fecha, err := time.Parse("2006-01-02", req.FechaProgramada)
	if err != nil {
		return nil, apierror.Invalid("fecha_programada invalida, formato esperado YYYY-MM-DD")
	}

	ot, err := s.repo.FindByID(ctx, otID)
	if err != nil {
		return nil, apierror.NotFound("orden de trabajo no encontrada")
	}
	cuadrilla, err := s.cuadrillaRepo.FindByID(ctx, cuadrillaID)
	if err != nil {
		return nil, apierror.NotFound("cuadrilla no encontrada")
	}
	if !cuadrilla.Activa {
		return nil, apierror.Invalid("la cuadrilla esta inactiva")
	}
	miembros, err := s.cuadrillaRepo.CountMiembrosActivos(ctx, cuadrillaID)
	if err != nil {
		return nil, err
	}
	if miembros == 0 {
		return nil, apierror.Invalid("la cuadrilla no tiene miembros activos")
	}
	if ot.EmpleadoID != nil {
		return nil, apierror.Invalid("la orden ya fue tomada por un empleado")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		it := model.Itinerario{OrdenTrabajoID: ot.ID, CuadrillaID: cuadrillaID, FechaProgramada: fecha}
		if err := s.repo.UpsertItinerarioTx(tx, &it); err != nil {
			return err
		}
		// Re-assigning an already ASIGNADA order just moves the itinerary row.
		if ot.Estado == model.OTAsignada {
			return nil
		}
		return s.transitionTx(tx, ot, model.OTAsignada)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := ordenBase(ot)
	resp.CuadrillaID = cuadrillaID.String()
	resp.FechaProgramada = fecha.Format("2006-01-02")
	return &resp, nil
}

// Desasignar releases an order back to the dispatch queue: itinerary row and
// empleado_id are cleared and the order returns to PENDIENTE with no owner.
// A claimed order (EN_PROCESO) is released too, stepping through ASIGNADA so
// every estado write stays within the allowed transitions.
func (s *ordenService) Desasignar(ctx context.Context, otID uuid.UUID) error {
	ot, err := s.repo.FindByID(ctx, otID)
	if err != nil {
		return apierror.NotFound("orden de trabajo no encontrada")
	}
	if ot.Estado != model.OTAsignada && ot.Estado != model.OTEnProceso {
		return apierror.Invalid("solo se puede desasignar una orden ASIGNADA o EN_PROCESO")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteItinerarioTx(tx, ot.ID); err != nil {
			return err
		}
		if err := s.repo.ClearEmpleadoTx(tx, ot.ID); err != nil {
			return err
		}
		if ot.Estado == model.OTEnProceso {
			if err := s.transitionTx(tx, ot, model.OTAsignada); err != nil {
				return err
			}
		}
		return s.transitionTx(tx, ot, model.OTPendiente)
	})
}

// ── Tomar ─────────────────────────────────────────────────────────────────────
// The claim itself is one conditional UPDATE: empleado_id is set only if the
// order is still unclaimed and belongs to the employee's crew itinerary.
// Zero rows affected means another member won or the order was never theirs.

func (s *ordenService) Tomar(ctx context.Context, otID, empleadoID uuid.UUID) (*dto.OrdenTrabajoResponse, error) {
	membresia, err := s.cuadrillaRepo.FindMembresiaActiva(ctx, empleadoID)
	if err != nil {
		return nil, apierror.Invalid("el empleado no pertenece a ninguna cuadrilla activa")
	}

	ot, err := s.repo.FindByID(ctx, otID)
	if err != nil {
		return nil, apierror.NotFound("orden de trabajo no encontrada")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		rows, err := s.repo.ClaimTx(tx, otID, empleadoID, membresia.CuadrillaID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apierror.Conflict("la orden ya fue tomada o no pertenece al itinerario de la cuadrilla")
		}
		return s.transitionTx(tx, ot, model.OTEnProceso)
	})
	if txErr != nil {
		return nil, txErr
	}

	ot.EmpleadoID = &empleadoID
	resp := s.ordenToResponse(ctx, ot)
	return &resp, nil
}

// ── Finalizar ─────────────────────────────────────────────────────────────────

func (s *ordenService) Finalizar(ctx context.Context, otID uuid.UUID, empleadoID *uuid.UUID, req dto.FinalizarOrdenRequest) (*dto.OrdenTrabajoResponse, error) {
	ot, err := s.repo.FindByID(ctx, otID)
	if err != nil {
		return nil, apierror.NotFound("orden de trabajo no encontrada")
	}
	if empleadoID != nil {
		if ot.EmpleadoID == nil || *ot.EmpleadoID != *empleadoID {
			return nil, apierror.Forbidden("la orden no esta asignada a este empleado")
		}
	}

	fin := time.Now()
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.FinalizarTx(tx, ot.ID, req.Observaciones, fin); err != nil {
			return err
		}
		return s.transitionTx(tx, ot, model.OTCompletada)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueNotificacion(ctx, map[string]interface{}{
			"reclamo_id": ot.ReclamoID.String(),
			"evento":     "RECLAMO_RESUELTO",
		})
	}

	ot.Observaciones = &req.Observaciones
	ot.FechaFinalizacion = &fin
	resp := s.ordenToResponse(ctx, ot)
	return &resp, nil
}

func (s *ordenService) Cancelar(ctx context.Context, otID uuid.UUID) error {
	ot, err := s.repo.FindByID(ctx, otID)
	if err != nil {
		return apierror.NotFound("orden de trabajo no encontrada")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.DeleteItinerarioTx(tx, ot.ID); err != nil {
			return err
		}
		return s.transitionTx(tx, ot, model.OTCancelada)
	})
}

// ── mapeo ─────────────────────────────────────────────────────────────────────

func ordenBase(ot *model.OrdenTrabajo) dto.OrdenTrabajoResponse {
	resp := dto.OrdenTrabajoResponse{
		ID:        ot.ID.String(),
		ReclamoID: ot.ReclamoID.String(),
		Estado:    ot.Estado,
		CreatedAt: ot.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if ot.EmpleadoID != nil {
		eid := ot.EmpleadoID.String()
		resp.EmpleadoID = &eid
	}
	if ot.Reclamo != nil {
		resp.Descripcion = ot.Reclamo.Descripcion
		if ot.Reclamo.Cuenta != nil {
			resp.NumeroCuenta = ot.Reclamo.Cuenta.NumeroCuenta
			resp.Direccion = ot.Reclamo.Cuenta.Direccion
		}
		if ot.Reclamo.Detalle != nil {
			resp.Detalle = ot.Reclamo.Detalle.Nombre
			if ot.Reclamo.Detalle.Tipo != nil {
				resp.Tipo = ot.Reclamo.Detalle.Tipo.Nombre
			}
		}
		if ot.Reclamo.Prioridad != nil {
			resp.Prioridad = ot.Reclamo.Prioridad.Nombre
		}
	}
	return resp
}

func (s *ordenService) ordenToResponse(ctx context.Context, ot *model.OrdenTrabajo) dto.OrdenTrabajoResponse {
	resp := ordenBase(ot)
	if it, err := s.repo.FindItinerarioByOT(ctx, ot.ID); err == nil {
		resp.CuadrillaID = it.CuadrillaID.String()
		resp.FechaProgramada = it.FechaProgramada.Format("2006-01-02")
	}
	return resp
}

func (s *ordenService) ordenesToResponse(ctx context.Context, ordenes []model.OrdenTrabajo) []dto.OrdenTrabajoResponse {
	resp := make([]dto.OrdenTrabajoResponse, len(ordenes))
	for i := range ordenes {
		resp[i] = s.ordenToResponse(ctx, &ordenes[i])
	}
	return resp
}
