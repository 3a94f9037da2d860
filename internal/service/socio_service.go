package service

import (
	"context"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/model"
	"coopelec/internal/repository"

	"github.com/google/uuid"
)

type SocioService interface {
	Crear(ctx context.Context, req dto.CrearSocioRequest) (*dto.SocioResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SocioResponse, error)
	Listar(ctx context.Context, filter dto.SocioFilter) (*dto.SocioListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSocioRequest) (*dto.SocioResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type socioService struct {
	repo repository.SocioRepository
}

func NewSocioService(repo repository.SocioRepository) SocioService {
	return &socioService{repo: repo}
}

func (s *socioService) Crear(ctx context.Context, req dto.CrearSocioRequest) (*dto.SocioResponse, error) {
	if _, err := s.repo.FindByDNI(ctx, req.DNI); err == nil {
		return nil, apierror.Conflict("ya existe un socio con ese DNI")
	}
	socio := &model.Socio{
		Nombre:    req.Nombre,
		Apellido:  req.Apellido,
		DNI:       req.DNI,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, socio); err != nil {
		return nil, err
	}
	resp := socioToResponse(socio)
	return &resp, nil
}

func (s *socioService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SocioResponse, error) {
	socio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("socio no encontrado")
	}
	resp := socioToResponse(socio)
	return &resp, nil
}

func (s *socioService) Listar(ctx context.Context, filter dto.SocioFilter) (*dto.SocioListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	socios, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SocioResponse, len(socios))
	for i := range socios {
		items[i] = socioToResponse(&socios[i])
	}
	return &dto.SocioListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *socioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSocioRequest) (*dto.SocioResponse, error) {
	socio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("socio no encontrado")
	}
	if req.Nombre != "" {
		socio.Nombre = req.Nombre
	}
	if req.Apellido != "" {
		socio.Apellido = req.Apellido
	}
	if req.Email != nil {
		socio.Email = req.Email
	}
	if req.Telefono != nil {
		socio.Telefono = req.Telefono
	}
	if req.Direccion != nil {
		socio.Direccion = req.Direccion
	}
	if err := s.repo.Update(ctx, socio); err != nil {
		return nil, err
	}
	resp := socioToResponse(socio)
	return &resp, nil
}

// Eliminar is a hard delete, allowed only while the member owns no accounts.
func (s *socioService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("socio no encontrado")
	}
	n, err := s.repo.CountCuentas(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.Invalid("el socio tiene cuentas asociadas y no puede eliminarse")
	}
	return s.repo.Delete(ctx, id)
}

func socioToResponse(s *model.Socio) dto.SocioResponse {
	return dto.SocioResponse{
		ID:        s.ID.String(),
		Nombre:    s.Nombre,
		Apellido:  s.Apellido,
		DNI:       s.DNI,
		Email:     s.Email,
		Telefono:  s.Telefono,
		Direccion: s.Direccion,
		Activo:    s.Activo,
		Cuentas:   len(s.Cuentas),
	}
}
