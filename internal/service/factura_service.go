package service

import (
	"context"
	"strings"
	"time"

	"coopelec/internal/apierror"
	"coopelec/internal/config"
	"coopelec/internal/dto"
	"coopelec/internal/model"
	"coopelec/internal/repository"
	"coopelec/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FacturaService interface {
	// RegistrarPago runs the payment transaction. socioID non-nil enforces
	// account ownership (member endpoints); nil skips the check (staff).
	RegistrarPago(ctx context.Context, facturaID uuid.UUID, socioID *uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error)
	Listar(ctx context.Context, filter dto.FacturaFilter, socioID *uuid.UUID) (*dto.FacturaListResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID, socioID *uuid.UUID) (*model.Factura, error)
	EmitirPeriodo(ctx context.Context, periodo string) (*dto.EmitirPeriodoResponse, error)
}

type facturaService struct {
	repo       repository.FacturaRepository
	cuentaRepo repository.CuentaRepository
	dispatcher *worker.Dispatcher
	rdb        *redis.Client
	cfg        *config.Config
}

func NewFacturaService(
	repo repository.FacturaRepository,
	cuentaRepo repository.CuentaRepository,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
	cfg *config.Config,
) FacturaService {
	return &facturaService{repo: repo, cuentaRepo: cuentaRepo, dispatcher: dispatcher, rdb: rdb, cfg: cfg}
}

// ── RegistrarPago ─────────────────────────────────────────────────────────────
// One ACID transaction: insert the Pago row and flip the invoice to PAGADA.
// The already-paid guard compares case-insensitively; a second payment attempt
// fails before touching the database.

func (s *facturaService) RegistrarPago(ctx context.Context, facturaID uuid.UUID, socioID *uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error) {
	if req.Monto.LessThanOrEqual(decimal.Zero) {
		return nil, apierror.Invalid("el monto debe ser mayor a cero")
	}

	factura, err := s.repo.FindByID(ctx, facturaID)
	if err != nil {
		return nil, apierror.NotFound("factura no encontrada")
	}
	if socioID != nil {
		if factura.Cuenta == nil || factura.Cuenta.SocioID != *socioID {
			return nil, apierror.Forbidden("la factura no pertenece a una cuenta del socio")
		}
	}
	if strings.EqualFold(factura.Estado, model.FacturaPagada) {
		return nil, apierror.Invalid("la factura ya esta pagada")
	}

	pago := model.Pago{
		FacturaID:   factura.ID,
		Monto:       req.Monto,
		MetodoPago:  req.MetodoPago,
		Comprobante: req.Comprobante,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreatePagoTx(tx, &pago); err != nil {
			return err
		}
		return s.repo.UpdateEstadoTx(tx, factura.ID, model.FacturaPagada)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Debt cache is now stale for this account — best effort invalidation.
	if s.rdb != nil && factura.Cuenta != nil {
		_ = s.rdb.Del(context.Background(), "deuda:"+factura.Cuenta.NumeroCuenta).Err()
	}

	return &dto.PagoResponse{
		ID:         pago.ID.String(),
		FacturaID:  factura.ID.String(),
		Monto:      pago.Monto,
		MetodoPago: pago.MetodoPago,
		Estado:     model.FacturaPagada,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}, nil
}

func (s *facturaService) Listar(ctx context.Context, filter dto.FacturaFilter, socioID *uuid.UUID) (*dto.FacturaListResponse, error) {
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

	facturas, total, err := s.repo.List(ctx, filter, cuentaIDs)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FacturaResponse, len(facturas))
	for i := range facturas {
		items[i] = facturaToResponse(&facturas[i])
	}
	return &dto.FacturaListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *facturaService) ObtenerPorID(ctx context.Context, id uuid.UUID, socioID *uuid.UUID) (*model.Factura, error) {
	factura, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("factura no encontrada")
	}
	if socioID != nil {
		if factura.Cuenta == nil || factura.Cuenta.SocioID != *socioID {
			return nil, apierror.Forbidden("la factura no pertenece a una cuenta del socio")
		}
	}
	return factura, nil
}

// ── EmitirPeriodo ─────────────────────────────────────────────────────────────
// Creates one PENDIENTE invoice per active account that has none for the
// period. Re-running the same period only picks up accounts added since the
// previous run. importe = consumo × tarifa + cargo fijo; a missing reading
// bills the fixed charge only.

func (s *facturaService) EmitirPeriodo(ctx context.Context, periodo string) (*dto.EmitirPeriodoResponse, error) {
	tarifa, err := decimal.NewFromString(s.cfg.TarifaKWH)
	if err != nil {
		return nil, apierror.Invalid("TARIFA_KWH mal configurada")
	}
	cargoFijo, err := decimal.NewFromString(s.cfg.CargoFijo)
	if err != nil {
		return nil, apierror.Invalid("CARGO_FIJO mal configurado")
	}

	cuentas, err := s.cuentaRepo.ListActivasSinFactura(ctx, periodo)
	if err != nil {
		return nil, err
	}

	ahora := time.Now()
	vencimiento := ahora.AddDate(0, 0, s.cfg.DiasVencimiento)
	emitidas := 0

	for i := range cuentas {
		cuenta := &cuentas[i]
		consumo := 0
		if cuenta.Medidor != nil {
			if lectura, err := s.cuentaRepo.FindLectura(ctx, cuenta.Medidor.ID, periodo); err == nil {
				consumo = lectura.ConsumoKWH
			}
		}
		importe := tarifa.Mul(decimal.NewFromInt(int64(consumo))).Add(cargoFijo)

		factura := model.Factura{
			CuentaID:         cuenta.ID,
			Periodo:          periodo,
			ConsumoKWH:       consumo,
			Importe:          importe,
			FechaEmision:     ahora,
			FechaVencimiento: vencimiento,
			Estado:           model.FacturaPendiente,
		}
		if err := s.repo.Create(ctx, &factura); err != nil {
			// Unique (cuenta, periodo) lost to a concurrent emission — skip.
			continue
		}
		emitidas++

		if s.dispatcher != nil {
			_ = s.dispatcher.EnqueueEmision(ctx, map[string]interface{}{
				"factura_id": factura.ID.String(),
			})
		}
	}

	return &dto.EmitirPeriodoResponse{Periodo: periodo, Emitidas: emitidas, Omitidas: len(cuentas) - emitidas}, nil
}

func facturaToResponse(f *model.Factura) dto.FacturaResponse {
	resp := dto.FacturaResponse{
		ID:               f.ID.String(),
		CuentaID:         f.CuentaID.String(),
		Periodo:          f.Periodo,
		ConsumoKWH:       f.ConsumoKWH,
		Importe:          f.Importe,
		FechaEmision:     f.FechaEmision.Format("2006-01-02"),
		FechaVencimiento: f.FechaVencimiento.Format("2006-01-02"),
		Estado:           f.Estado,
	}
	if f.Cuenta != nil {
		resp.NumeroCuenta = f.Cuenta.NumeroCuenta
	}
	return resp
}
