package service

import (
	"context"
	"testing"

	"coopelec/internal/apierror"
	"coopelec/internal/config"
	"coopelec/internal/dto"
	"coopelec/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authTestConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1, JWTRefreshHours: 24}
}

func seedUsuario(repo *stubUsuarioRepo, username, password, rol string, activo bool) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.Usuario{
		ID: uuid.New(), Username: username, Nombre: "Test",
		PasswordHash: string(hash), Rol: rol, Activo: activo,
	}
	repo.usuarios[u.ID] = u
	return u
}

func TestLogin_OK(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, authTestConfig())
	socioID := uuid.New()
	u := seedUsuario(repo, "ana@coop", "secreta123", "socio", true)
	u.SocioID = &socioID

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ana@coop", Password: "secreta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "socio", resp.User.Rol)
	require.NotNil(t, resp.User.SocioID)
	assert.Equal(t, socioID.String(), *resp.User.SocioID)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, authTestConfig())
	seedUsuario(repo, "ana@coop", "secreta123", "socio", true)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ana@coop", Password: "otra"})
	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	svc := NewAuthService(newStubUsuarioRepo(), authTestConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, authTestConfig())
	seedUsuario(repo, "baja@coop", "secreta123", "operario", false)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "baja@coop", Password: "secreta123"})
	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
}

func TestRefresh_RoundTrip(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, authTestConfig())
	seedUsuario(repo, "ana@coop", "secreta123", "supervisor", true)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ana@coop", Password: "secreta123"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, "supervisor", renovado.User.Rol)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	svc := NewAuthService(newStubUsuarioRepo(), authTestConfig())

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
}

func TestRefresh_UsuarioDesactivadoDespuesDelLogin(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, authTestConfig())
	u := seedUsuario(repo, "ana@coop", "secreta123", "socio", true)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ana@coop", Password: "secreta123"})
	require.NoError(t, err)

	u.Activo = false
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
}

func TestCrearUsuario_UsernameDuplicado(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, authTestConfig())

	req := dto.CrearUsuarioRequest{Username: "ana@coop", Nombre: "Ana", Password: "secreta123", Rol: "socio"}
	_, err := svc.CrearUsuario(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CrearUsuario(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}
