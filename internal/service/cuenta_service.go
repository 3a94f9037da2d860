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

type CuentaService interface {
	Crear(ctx context.Context, req dto.CrearCuentaRequest) (*dto.CuentaResponse, error)
	ListarPorSocio(ctx context.Context, socioID uuid.UUID) ([]dto.CuentaResponse, error)
	RegistrarLectura(ctx context.Context, req dto.RegistrarLecturaRequest) error
}

type cuentaService struct {
	repo      repository.CuentaRepository
	socioRepo repository.SocioRepository
}

func NewCuentaService(repo repository.CuentaRepository, socioRepo repository.SocioRepository) CuentaService {
	return &cuentaService{repo: repo, socioRepo: socioRepo}
}

// Crear creates the account and its meter in one transaction. Both numbers
// are generated inside the tx: previous numeric max plus one, padded to 6
// digits ("000001" on an empty table).
func (s *cuentaService) Crear(ctx context.Context, req dto.CrearCuentaRequest) (*dto.CuentaResponse, error) {
	socioID, err := uuid.Parse(req.SocioID)
	if err != nil {
		return nil, apierror.Invalid("socio_id invalido")
	}
	servicioID, err := uuid.Parse(req.ServicioID)
	if err != nil {
		return nil, apierror.Invalid("servicio_id invalido")
	}
	if _, err := s.socioRepo.FindByID(ctx, socioID); err != nil {
		return nil, apierror.NotFound("socio no encontrado")
	}

	var cuenta model.Cuenta
	var medidor model.Medidor
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numCuenta, err := s.repo.NextNumeroCuentaTx(tx)
		if err != nil {
			return err
		}
		cuenta = model.Cuenta{
			SocioID:      socioID,
			NumeroCuenta: numCuenta,
			Direccion:    req.Direccion,
			ServicioID:   servicioID,
			EsPrincipal:  req.EsPrincipal,
			Activa:       true,
		}
		if err := s.repo.CreateTx(tx, &cuenta); err != nil {
			return err
		}

		numMedidor, err := s.repo.NextNumeroMedidorTx(tx)
		if err != nil {
			return err
		}
		medidor = model.Medidor{
			CuentaID:      cuenta.ID,
			NumeroMedidor: numMedidor,
			Activo:        true,
		}
		return s.repo.CreateMedidorTx(tx, &medidor)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.CuentaResponse{
		ID:            cuenta.ID.String(),
		SocioID:       cuenta.SocioID.String(),
		NumeroCuenta:  cuenta.NumeroCuenta,
		Direccion:     cuenta.Direccion,
		EsPrincipal:   cuenta.EsPrincipal,
		Activa:        cuenta.Activa,
		NumeroMedidor: medidor.NumeroMedidor,
	}, nil
}

func (s *cuentaService) ListarPorSocio(ctx context.Context, socioID uuid.UUID) ([]dto.CuentaResponse, error) {
	cuentas, err := s.repo.ListBySocio(ctx, socioID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CuentaResponse, len(cuentas))
	for i := range cuentas {
		resp[i] = cuentaToResponse(&cuentas[i])
	}
	return resp, nil
}

func (s *cuentaService) RegistrarLectura(ctx context.Context, req dto.RegistrarLecturaRequest) error {
	medidorID, err := uuid.Parse(req.MedidorID)
	if err != nil {
		return apierror.Invalid("medidor_id invalido")
	}
	if _, err := s.repo.FindLectura(ctx, medidorID, req.Periodo); err == nil {
		return apierror.Conflict("ya existe una lectura para ese medidor y periodo")
	}
	return s.repo.CreateLectura(ctx, &model.Lectura{
		MedidorID:    medidorID,
		Periodo:      req.Periodo,
		ConsumoKWH:   req.ConsumoKWH,
		FechaLectura: time.Now(),
	})
}

func cuentaToResponse(c *model.Cuenta) dto.CuentaResponse {
	resp := dto.CuentaResponse{
		ID:           c.ID.String(),
		SocioID:      c.SocioID.String(),
		NumeroCuenta: c.NumeroCuenta,
		Direccion:    c.Direccion,
		EsPrincipal:  c.EsPrincipal,
		Activa:       c.Activa,
	}
	if c.Servicio != nil {
		resp.Servicio = c.Servicio.Nombre
	}
	if c.Medidor != nil {
		resp.NumeroMedidor = c.Medidor.NumeroMedidor
	}
	return resp
}
