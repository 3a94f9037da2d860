package service

import (
	"context"

	"coopelec/internal/dto"
	"coopelec/internal/repository"
)

type CatalogoService interface {
	Servicios(ctx context.Context) ([]dto.ServicioResponse, error)
	TiposReclamo(ctx context.Context) ([]dto.TipoReclamoResponse, error)
	Prioridades(ctx context.Context) ([]dto.PrioridadResponse, error)
}

type catalogoService struct {
	repo repository.CatalogoRepository
}

func NewCatalogoService(repo repository.CatalogoRepository) CatalogoService {
	return &catalogoService{repo: repo}
}

func (s *catalogoService) Servicios(ctx context.Context) ([]dto.ServicioResponse, error) {
	servicios, err := s.repo.ListServicios(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ServicioResponse, len(servicios))
	for i, sv := range servicios {
		resp[i] = dto.ServicioResponse{ID: sv.ID.String(), Nombre: sv.Nombre, Descripcion: sv.Descripcion}
	}
	return resp, nil
}

func (s *catalogoService) TiposReclamo(ctx context.Context) ([]dto.TipoReclamoResponse, error) {
	tipos, err := s.repo.ListTiposReclamo(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TipoReclamoResponse, len(tipos))
	for i := range tipos {
		t := &tipos[i]
		tr := dto.TipoReclamoResponse{ID: t.ID.String(), Nombre: t.Nombre}
		for _, d := range t.Detalles {
			tr.Detalles = append(tr.Detalles, dto.DetalleReclamoResponse{ID: d.ID.String(), Nombre: d.Nombre})
		}
		resp[i] = tr
	}
	return resp, nil
}

func (s *catalogoService) Prioridades(ctx context.Context) ([]dto.PrioridadResponse, error) {
	prioridades, err := s.repo.ListPrioridades(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PrioridadResponse, len(prioridades))
	for i, p := range prioridades {
		resp[i] = dto.PrioridadResponse{ID: p.ID.String(), Nombre: p.Nombre, Nivel: p.Nivel}
	}
	return resp, nil
}
