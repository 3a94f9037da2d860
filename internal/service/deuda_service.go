package service

import (
	"context"
	"encoding/json"
	"time"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const deudaCacheTTL = 5 * time.Minute

// DeudaService answers the public debt lookup by account number. Results are
// cached in Redis; payments invalidate the entry so a fresh payment is
// reflected on the next query.
type DeudaService interface {
	ConsultarPorNumero(ctx context.Context, numeroCuenta string) (*dto.DeudaResponse, error)
}

type deudaService struct {
	cuentaRepo  repository.CuentaRepository
	facturaRepo repository.FacturaRepository
	rdb         *redis.Client
}

func NewDeudaService(cuentaRepo repository.CuentaRepository, facturaRepo repository.FacturaRepository, rdb *redis.Client) DeudaService {
	return &deudaService{cuentaRepo: cuentaRepo, facturaRepo: facturaRepo, rdb: rdb}
}

func (s *deudaService) ConsultarPorNumero(ctx context.Context, numeroCuenta string) (*dto.DeudaResponse, error) {
	cacheKey := "deuda:" + numeroCuenta

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.DeudaResponse
			if err := json.Unmarshal([]byte(raw), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	cuenta, err := s.cuentaRepo.FindByNumero(ctx, numeroCuenta)
	if err != nil {
		return nil, apierror.NotFound("cuenta no encontrada")
	}

	facturas, err := s.facturaRepo.SumDeuda(ctx, cuenta.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.DeudaResponse{
		NumeroCuenta:    numeroCuenta,
		FacturasImpagas: len(facturas),
		DeudaTotal:      decimal.Zero,
	}
	for i := range facturas {
		resp.DeudaTotal = resp.DeudaTotal.Add(facturas[i].Importe)
	}
	if n := len(facturas); n > 0 {
		resp.UltimoVencimiento = facturas[n-1].FechaVencimiento.Format("2006-01-02")
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, raw, deudaCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("cuenta", numeroCuenta).Msg("no se pudo cachear la deuda")
			}
		}
	}

	return &resp, nil
}
