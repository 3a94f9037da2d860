package service

import (
	"context"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/model"
	"coopelec/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MaterialService interface {
	Crear(ctx context.Context, req dto.CrearMaterialRequest) (*dto.MaterialResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.MaterialResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error)
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.MaterialResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	AlertasStock(ctx context.Context) ([]dto.AlertaStockResponse, error)

	// RegistrarUso consumes a batch of materials against a work order. The
	// batch is atomic: one item short on stock rolls everything back.
	RegistrarUso(ctx context.Context, otID uuid.UUID, empleadoID *uuid.UUID, req dto.RegistrarUsoRequest) (*dto.RegistrarUsoResponse, error)
	ListarUsos(ctx context.Context, otID uuid.UUID) ([]dto.UsoMaterialResponse, error)
}

type materialService struct {
	repo      repository.MaterialRepository
	ordenRepo repository.OrdenRepository
}

func NewMaterialService(repo repository.MaterialRepository, ordenRepo repository.OrdenRepository) MaterialService {
	return &materialService{repo: repo, ordenRepo: ordenRepo}
}

func (s *materialService) Crear(ctx context.Context, req dto.CrearMaterialRequest) (*dto.MaterialResponse, error) {
	m := &model.Material{
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		UnidadMedida:  req.UnidadMedida,
		StockActual:   req.StockActual,
		StockMinimo:   req.StockMinimo,
		CostoUnitario: req.CostoUnitario,
		Activo:        true,
	}
	if m.UnidadMedida == "" {
		m.UnidadMedida = "unidad"
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, apierror.Conflict("ya existe un material con ese nombre")
	}
	resp := materialToResponse(m)
	return &resp, nil
}

func (s *materialService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.MaterialResponse, error) {
	materiales, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MaterialResponse, len(materiales))
	for i := range materiales {
		resp[i] = materialToResponse(&materiales[i])
	}
	return resp, nil
}

func (s *materialService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("material no encontrado")
	}
	resp := materialToResponse(m)
	return &resp, nil
}

func (s *materialService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("material no encontrado")
	}
	if m.StockActual+req.Delta < 0 {
		return nil, apierror.Invalid("el ajuste dejaria el stock en negativo")
	}
	if err := s.repo.AjustarStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}
	m.StockActual += req.Delta
	resp := materialToResponse(m)
	return &resp, nil
}

func (s *materialService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("material no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *materialService) AlertasStock(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	materiales, err := s.repo.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaStockResponse, len(materiales))
	for i, m := range materiales {
		alertas[i] = dto.AlertaStockResponse{
			MaterialID:  m.ID.String(),
			Nombre:      m.Nombre,
			StockActual: m.StockActual,
			StockMinimo: m.StockMinimo,
		}
	}
	return alertas, nil
}

// ── RegistrarUso ──────────────────────────────────────────────────────────────
// Each item decrements stock with a conditional UPDATE inside the batch tx:
// zero rows affected means insufficient stock and aborts the whole batch, so
// stock can never go negative under concurrent registrations.

func (s *materialService) RegistrarUso(ctx context.Context, otID uuid.UUID, empleadoID *uuid.UUID, req dto.RegistrarUsoRequest) (*dto.RegistrarUsoResponse, error) {
	ot, err := s.ordenRepo.FindByID(ctx, otID)
	if err != nil {
		return nil, apierror.NotFound("orden de trabajo no encontrada")
	}
	if ot.Estado != model.OTEnProceso {
		return nil, apierror.Invalid("solo se registra uso de materiales sobre una orden EN_PROCESO")
	}
	if empleadoID != nil {
		if ot.EmpleadoID == nil || *ot.EmpleadoID != *empleadoID {
			return nil, apierror.Forbidden("la orden no esta asignada a este empleado")
		}
	}

	// Cost snapshots are read up front; the decrement revalidates stock.
	type lineaUso struct {
		materialID uuid.UUID
		nombre     string
		cantidad   int
		costo      decimal.Decimal
	}
	lineas := make([]lineaUso, 0, len(req.Items))
	for _, item := range req.Items {
		mid, err := uuid.Parse(item.MaterialID)
		if err != nil {
			return nil, apierror.Invalid("material_id invalido: " + item.MaterialID)
		}
		m, err := s.repo.FindByID(ctx, mid)
		if err != nil {
			return nil, apierror.NotFound("material no encontrado: " + item.MaterialID)
		}
		lineas = append(lineas, lineaUso{materialID: mid, nombre: m.Nombre, cantidad: item.Cantidad, costo: m.CostoUnitario})
	}

	usos := make([]dto.UsoMaterialResponse, 0, len(lineas))
	total := decimal.Zero
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, l := range lineas {
			rows, err := s.repo.DescontarStockTx(tx, l.materialID, l.cantidad)
			if err != nil {
				return err
			}
			if rows == 0 {
				return apierror.Invalid("stock insuficiente para " + l.nombre)
			}
			uso := model.UsoMaterial{
				OrdenTrabajoID: otID,
				MaterialID:     l.materialID,
				Cantidad:       l.cantidad,
				CostoUnitario:  l.costo,
			}
			if err := s.repo.CreateUsoTx(tx, &uso); err != nil {
				return err
			}
			costoTotal := l.costo.Mul(decimal.NewFromInt(int64(l.cantidad)))
			total = total.Add(costoTotal)
			usos = append(usos, dto.UsoMaterialResponse{
				ID:            uso.ID.String(),
				MaterialID:    l.materialID.String(),
				Material:      l.nombre,
				Cantidad:      l.cantidad,
				CostoUnitario: l.costo,
				CostoTotal:    costoTotal,
			})
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.RegistrarUsoResponse{
		OrdenTrabajoID: otID.String(),
		Usos:           usos,
		CostoTotal:     total,
	}, nil
}

func (s *materialService) ListarUsos(ctx context.Context, otID uuid.UUID) ([]dto.UsoMaterialResponse, error) {
	usos, err := s.repo.ListUsosByOrden(ctx, otID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsoMaterialResponse, len(usos))
	for i := range usos {
		u := &usos[i]
		resp[i] = dto.UsoMaterialResponse{
			ID:            u.ID.String(),
			MaterialID:    u.MaterialID.String(),
			Cantidad:      u.Cantidad,
			CostoUnitario: u.CostoUnitario,
			CostoTotal:    u.CostoUnitario.Mul(decimal.NewFromInt(int64(u.Cantidad))),
		}
		if u.Material != nil {
			resp[i].Material = u.Material.Nombre
		}
	}
	return resp, nil
}

func materialToResponse(m *model.Material) dto.MaterialResponse {
	return dto.MaterialResponse{
		ID:            m.ID.String(),
		Nombre:        m.Nombre,
		Descripcion:   m.Descripcion,
		UnidadMedida:  m.UnidadMedida,
		StockActual:   m.StockActual,
		StockMinimo:   m.StockMinimo,
		CostoUnitario: m.CostoUnitario,
		Activo:        m.Activo,
	}
}
