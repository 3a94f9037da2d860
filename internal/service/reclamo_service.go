package service

import (
	"context"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/model"
	"coopelec/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReclamoService interface {
	// Crear registers the complaint and its work order in one transaction.
	// socioID non-nil enforces account ownership (member endpoints).
	Crear(ctx context.Context, socioID *uuid.UUID, req dto.CrearReclamoRequest) (*dto.ReclamoResponse, error)
	Listar(ctx context.Context, filter dto.ReclamoFilter, socioID *uuid.UUID) (*dto.ReclamoListResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID, socioID *uuid.UUID) (*dto.ReclamoResponse, error)
}

type reclamoService struct {
	repo       repository.ReclamoRepository
	ordenRepo  repository.OrdenRepository
	cuentaRepo repository.CuentaRepository
}

func NewReclamoService(
	repo repository.ReclamoRepository,
	ordenRepo repository.OrdenRepository,
	cuentaRepo repository.CuentaRepository,
) ReclamoService {
	return &reclamoService{repo: repo, ordenRepo: ordenRepo, cuentaRepo: cuentaRepo}
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// Every complaint gets a PENDIENTE work order immediately, in the same
// transaction. If no priority is given the least urgent one applies.

func (s *reclamoService) Crear(ctx context.Context, socioID *uuid.UUID, req dto.CrearReclamoRequest) (*dto.ReclamoResponse, error) {
	cuentaID, err := uuid.Parse(req.CuentaID)
	if err != nil {
		return nil, apierror.Invalid("cuenta_id invalido")
	}
	detalleID, err := uuid.Parse(req.DetalleID)
	if err != nil {
		return nil, apierror.Invalid("detalle_id invalido")
	}

	cuenta, err := s.cuentaRepo.FindByID(ctx, cuentaID)
	if err != nil {
		return nil, apierror.NotFound("cuenta no encontrada")
	}
	if socioID != nil && cuenta.SocioID != *socioID {
		return nil, apierror.Forbidden("la cuenta no pertenece al socio")
	}
	detalle, err := s.repo.FindDetalle(ctx, detalleID)
	if err != nil {
		return nil, apierror.NotFound("detalle de reclamo no encontrado")
	}

	var prioridad *model.Prioridad
	if req.PrioridadID != nil {
		pid, err := uuid.Parse(*req.PrioridadID)
		if err != nil {
			return nil, apierror.Invalid("prioridad_id invalida")
		}
		if prioridad, err = s.repo.FindPrioridad(ctx, pid); err != nil {
			return nil, apierror.NotFound("prioridad no encontrada")
		}
	} else {
		if prioridad, err = s.repo.PrioridadPorDefecto(ctx); err != nil {
			return nil, apierror.Invalid("no hay prioridades cargadas")
		}
	}

	canal := req.Canal
	if canal == "" {
		canal = "WEB"
	}

	reclamo := model.Reclamo{
		CuentaID:    cuentaID,
		DetalleID:   detalleID,
		PrioridadID: prioridad.ID,
		Descripcion: req.Descripcion,
		Canal:       canal,
		Estado:      model.ReclamoPendiente,
	}
	var orden model.OrdenTrabajo
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &reclamo); err != nil {
			return err
		}
		orden = model.OrdenTrabajo{ReclamoID: reclamo.ID, Estado: model.OTPendiente}
		return s.ordenRepo.CreateTx(tx, &orden)
	})
	if txErr != nil {
		return nil, txErr
	}

	reclamo.Cuenta = cuenta
	reclamo.Detalle = detalle
	reclamo.Prioridad = prioridad
	reclamo.Orden = &orden
	resp := reclamoToResponse(&reclamo)
	return &resp, nil
}

func (s *reclamoService) Listar(ctx context.Context, filter dto.ReclamoFilter, socioID *uuid.UUID) (*dto.ReclamoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	var cuentaIDs []uuid.UUID
	if socioID != nil {
		cuentas, err := s.cuentaRepo.ListBySocio(ctx, *socioID)
		if err != nil {
			return nil, err
		}
		cuentaIDs = make([]uuid.UUID, 0, len(cuentas))
		for _, c := range cuentas {
			cuentaIDs = append(cuentaIDs, c.ID)
		}
	}

	reclamos, total, err := s.repo.List(ctx, filter, cuentaIDs)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReclamoResponse, len(reclamos))
	for i := range reclamos {
		items[i] = reclamoToResponse(&reclamos[i])
	}
	return &dto.ReclamoListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *reclamoService) ObtenerPorID(ctx context.Context, id uuid.UUID, socioID *uuid.UUID) (*dto.ReclamoResponse, error) {
	reclamo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("reclamo no encontrado")
	}
	if socioID != nil {
		if reclamo.Cuenta == nil || reclamo.Cuenta.SocioID != *socioID {
			return nil, apierror.Forbidden("el reclamo no pertenece al socio")
		}
	}
	resp := reclamoToResponse(reclamo)
	return &resp, nil
}

func reclamoToResponse(r *model.Reclamo) dto.ReclamoResponse {
	resp := dto.ReclamoResponse{
		ID:          r.ID.String(),
		CuentaID:    r.CuentaID.String(),
		Descripcion: r.Descripcion,
		Canal:       r.Canal,
		Estado:      r.Estado,
		CreatedAt:   r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if r.Cuenta != nil {
		resp.NumeroCuenta = r.Cuenta.NumeroCuenta
	}
	if r.Detalle != nil {
		resp.Detalle = r.Detalle.Nombre
		if r.Detalle.Tipo != nil {
			resp.Tipo = r.Detalle.Tipo.Nombre
		}
	}
	if r.Prioridad != nil {
		resp.Prioridad = r.Prioridad.Nombre
	}
	if r.Orden != nil {
		resp.OrdenID = r.Orden.ID.String()
		resp.OrdenEstado = r.Orden.Estado
	}
	return resp
}
