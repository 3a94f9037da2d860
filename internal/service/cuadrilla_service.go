package service

import (
	"context"
	"time"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/model"
	"coopelec/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CuadrillaService interface {
	Crear(ctx context.Context, req dto.CrearCuadrillaRequest) (*dto.CuadrillaResponse, error)
	Listar(ctx context.Context, incluirInactivas bool) ([]dto.CuadrillaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CuadrillaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCuadrillaRequest) (*dto.CuadrillaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error

	AgregarMiembro(ctx context.Context, cuadrillaID uuid.UUID, req dto.AgregarMiembroRequest) error
	QuitarMiembro(ctx context.Context, cuadrillaID, empleadoID uuid.UUID) error

	CrearEmpleado(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error)
	ListarEmpleados(ctx context.Context, incluirInactivos bool) ([]dto.EmpleadoResponse, error)
	DesactivarEmpleado(ctx context.Context, id uuid.UUID) error
}

type cuadrillaService struct {
	repo         repository.CuadrillaRepository
	empleadoRepo repository.EmpleadoRepository
}

func NewCuadrillaService(repo repository.CuadrillaRepository, empleadoRepo repository.EmpleadoRepository) CuadrillaService {
	return &cuadrillaService{repo: repo, empleadoRepo: empleadoRepo}
}

func (s *cuadrillaService) Crear(ctx context.Context, req dto.CrearCuadrillaRequest) (*dto.CuadrillaResponse, error) {
	c := &model.Cuadrilla{Nombre: req.Nombre, Zona: req.Zona, Activa: true}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apierror.Conflict("ya existe una cuadrilla con ese nombre")
	}
	resp := cuadrillaToResponse(c, nil)
	return &resp, nil
}

func (s *cuadrillaService) Listar(ctx context.Context, incluirInactivas bool) ([]dto.CuadrillaResponse, error) {
	cuadrillas, err := s.repo.List(ctx, incluirInactivas)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CuadrillaResponse, len(cuadrillas))
	for i := range cuadrillas {
		resp[i] = cuadrillaToResponse(&cuadrillas[i], nil)
	}
	return resp, nil
}

func (s *cuadrillaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CuadrillaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("cuadrilla no encontrada")
	}
	miembros, err := s.repo.ListMiembrosActivos(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := cuadrillaToResponse(c, miembros)
	return &resp, nil
}

func (s *cuadrillaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCuadrillaRequest) (*dto.CuadrillaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("cuadrilla no encontrada")
	}
	if req.Nombre != "" {
		c.Nombre = req.Nombre
	}
	if req.Zona != "" {
		c.Zona = req.Zona
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := cuadrillaToResponse(c, nil)
	return &resp, nil
}

func (s *cuadrillaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("cuadrilla no encontrada")
	}
	return s.repo.SoftDelete(ctx, id)
}

// ── Membresias ────────────────────────────────────────────────────────────────
// One active membership per employee: joining a crew closes any previous
// membership in the same transaction.

func (s *cuadrillaService) AgregarMiembro(ctx context.Context, cuadrillaID uuid.UUID, req dto.AgregarMiembroRequest) error {
	empleadoID, err := uuid.Parse(req.EmpleadoID)
	if err != nil {
		return apierror.Invalid("empleado_id invalido")
	}
	cuadrilla, err := s.repo.FindByID(ctx, cuadrillaID)
	if err != nil {
		return apierror.NotFound("cuadrilla no encontrada")
	}
	if !cuadrilla.Activa {
		return apierror.Invalid("la cuadrilla esta inactiva")
	}
	empleado, err := s.empleadoRepo.FindByID(ctx, empleadoID)
	if err != nil {
		return apierror.NotFound("empleado no encontrado")
	}
	if !empleado.ElegibleParaCuadrilla() {
		return apierror.Invalid("el empleado no es elegible para cuadrillas")
	}
	if m, err := s.repo.FindMembresiaActiva(ctx, empleadoID); err == nil && m.CuadrillaID == cuadrillaID {
		return apierror.Conflict("el empleado ya pertenece a esta cuadrilla")
	}

	ahora := time.Now()
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CerrarMembresiaTx(tx, empleadoID, ahora); err != nil {
			return err
		}
		return s.repo.CreateMembresiaTx(tx, &model.EmpleadoCuadrilla{
			EmpleadoID:      empleadoID,
			CuadrillaID:     cuadrillaID,
			FechaAsignacion: ahora,
			Activa:          true,
		})
	})
}

func (s *cuadrillaService) QuitarMiembro(ctx context.Context, cuadrillaID, empleadoID uuid.UUID) error {
	m, err := s.repo.FindMembresiaActiva(ctx, empleadoID)
	if err != nil || m.CuadrillaID != cuadrillaID {
		return apierror.NotFound("el empleado no pertenece a esta cuadrilla")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CerrarMembresiaTx(tx, empleadoID, time.Now())
	})
}

// ── Empleados ─────────────────────────────────────────────────────────────────

func (s *cuadrillaService) CrearEmpleado(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	e := &model.Empleado{
		Nombre:     req.Nombre,
		Apellido:   req.Apellido,
		DNI:        req.DNI,
		RolInterno: req.RolInterno,
		Activo:     true,
	}
	if err := s.empleadoRepo.Create(ctx, e); err != nil {
		return nil, apierror.Conflict("ya existe un empleado con ese DNI")
	}
	resp := empleadoToResponse(e)
	return &resp, nil
}

func (s *cuadrillaService) ListarEmpleados(ctx context.Context, incluirInactivos bool) ([]dto.EmpleadoResponse, error) {
	empleados, err := s.empleadoRepo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EmpleadoResponse, len(empleados))
	for i := range empleados {
		resp[i] = empleadoToResponse(&empleados[i])
	}
	return resp, nil
}

func (s *cuadrillaService) DesactivarEmpleado(ctx context.Context, id uuid.UUID) error {
	if _, err := s.empleadoRepo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("empleado no encontrado")
	}
	return s.empleadoRepo.SoftDelete(ctx, id)
}

func cuadrillaToResponse(c *model.Cuadrilla, miembros []model.EmpleadoCuadrilla) dto.CuadrillaResponse {
	resp := dto.CuadrillaResponse{
		ID:     c.ID.String(),
		Nombre: c.Nombre,
		Zona:   c.Zona,
		Activa: c.Activa,
	}
	for i := range miembros {
		m := &miembros[i]
		mr := dto.MiembroResponse{
			EmpleadoID:      m.EmpleadoID.String(),
			FechaAsignacion: m.FechaAsignacion.Format("2006-01-02"),
		}
		if m.Empleado != nil {
			mr.Nombre = m.Empleado.Nombre
			mr.Apellido = m.Empleado.Apellido
			mr.RolInterno = m.Empleado.RolInterno
		}
		resp.Miembros = append(resp.Miembros, mr)
	}
	return resp
}

func empleadoToResponse(e *model.Empleado) dto.EmpleadoResponse {
	return dto.EmpleadoResponse{
		ID:         e.ID.String(),
		Nombre:     e.Nombre,
		Apellido:   e.Apellido,
		DNI:        e.DNI,
		RolInterno: e.RolInterno,
		Activo:     e.Activo,
	}
}
