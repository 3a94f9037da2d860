package service

import (
	"context"
	"testing"

	"coopelec/internal/apierror"
	"coopelec/internal/dto"
	"coopelec/internal/model"
	"coopelec/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSocioRepo is the minimal SocioRepository for account tests.
type stubSocioRepo struct {
	socios map[uuid.UUID]*model.Socio
}

func newStubSocioRepo() *stubSocioRepo {
	return &stubSocioRepo{socios: make(map[uuid.UUID]*model.Socio)}
}

func (r *stubSocioRepo) Create(_ context.Context, s *model.Socio) error {
	for _, existing := range r.socios {
		if existing.DNI == s.DNI {
			return errDuplicado
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.socios[s.ID] = s
	return nil
}

func (r *stubSocioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Socio, error) {
	s, ok := r.socios[id]
	if !ok {
		return nil, errNoEncontrado
	}
	return s, nil
}

func (r *stubSocioRepo) FindByDNI(_ context.Context, dni string) (*model.Socio, error) {
	for _, s := range r.socios {
		if s.DNI == dni {
			return s, nil
		}
	}
	return nil, errNoEncontrado
}

func (r *stubSocioRepo) List(_ context.Context, _ dto.SocioFilter) ([]model.Socio, int64, error) {
	var out []model.Socio
	for _, s := range r.socios {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSocioRepo) Update(_ context.Context, s *model.Socio) error {
	r.socios[s.ID] = s
	return nil
}

func (r *stubSocioRepo) CountCuentas(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil }

func (r *stubSocioRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.socios, id)
	return nil
}

var _ repository.SocioRepository = (*stubSocioRepo)(nil)

func TestCrearCuenta_GeneraNumerosCorrelativos(t *testing.T) {
	repo := newStubCuentaRepo()
	socioRepo := newStubSocioRepo()
	svc := NewCuentaService(repo, socioRepo)

	socio := &model.Socio{ID: uuid.New(), Nombre: "Ana", Apellido: "Gomez", DNI: "30111222", Activo: true}
	socioRepo.socios[socio.ID] = socio
	servicioID := uuid.New()

	primera, err := svc.Crear(context.Background(), dto.CrearCuentaRequest{
		SocioID: socio.ID.String(), Direccion: "Av. San Martin 100", ServicioID: servicioID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "000001", primera.NumeroCuenta)
	assert.Equal(t, "000001", primera.NumeroMedidor)
	assert.True(t, primera.Activa)

	segunda, err := svc.Crear(context.Background(), dto.CrearCuentaRequest{
		SocioID: socio.ID.String(), Direccion: "Av. San Martin 200", ServicioID: servicioID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "000002", segunda.NumeroCuenta)
}

func TestCrearCuenta_SocioInexistente(t *testing.T) {
	svc := NewCuentaService(newStubCuentaRepo(), newStubSocioRepo())

	_, err := svc.Crear(context.Background(), dto.CrearCuentaRequest{
		SocioID: uuid.NewString(), Direccion: "Calle Falsa 123", ServicioID: uuid.NewString(),
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestRegistrarLectura_DuplicadaPorPeriodo(t *testing.T) {
	repo := newStubCuentaRepo()
	svc := NewCuentaService(repo, newStubSocioRepo())

	medidorID := uuid.New()
	req := dto.RegistrarLecturaRequest{MedidorID: medidorID.String(), Periodo: "2026-08", ConsumoKWH: 150}

	require.NoError(t, svc.RegistrarLectura(context.Background(), req))

	err := svc.RegistrarLectura(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
	assert.Len(t, repo.lecturas, 1)
}

func TestRegistrarLectura_MismoMedidorOtroPeriodo(t *testing.T) {
	repo := newStubCuentaRepo()
	svc := NewCuentaService(repo, newStubSocioRepo())

	medidorID := uuid.New()
	require.NoError(t, svc.RegistrarLectura(context.Background(), dto.RegistrarLecturaRequest{
		MedidorID: medidorID.String(), Periodo: "2026-07", ConsumoKWH: 100,
	}))
	require.NoError(t, svc.RegistrarLectura(context.Background(), dto.RegistrarLecturaRequest{
		MedidorID: medidorID.String(), Periodo: "2026-08", ConsumoKWH: 130,
	}))
	assert.Len(t, repo.lecturas, 2)
}
