package service

import (
	"context"
	"strings"
	"testing"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/apierror"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/config"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Crear(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cloned := *u
	r.usuarios[u.ID] = &cloned
	return nil
}

func (r *stubUsuarioRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errNotFound
	}
	cloned := *u
	return &cloned, nil
}

func (r *stubUsuarioRepo) ObtenerPorUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if strings.EqualFold(u.Username, username) {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, errNotFound
}

func (r *stubUsuarioRepo) Listar(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if !incluirInactivos && !u.Activo {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Actualizar(_ context.Context, u *model.Usuario) error {
	cloned := *u
	r.usuarios[u.ID] = &cloned
	return nil
}

func (r *stubUsuarioRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
		return nil
	}
	return errNotFound
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = true
		return nil
	}
	return errNotFound
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func newAuthFixture(t *testing.T) (AuthService, *stubUsuarioRepo) {
	t.Helper()
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "secreto-de-pruebas",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func crearMesero(t *testing.T, svc AuthService) *dto.UsuarioResponse {
	t.Helper()
	user, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "mesero1",
		Nombre:   "Juan Pérez",
		Password: "pollo123",
		Rol:      "mesero",
	})
	require.NoError(t, err)
	return user
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	crearMesero(t, svc)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mesero1", Password: "pollo123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "mesero", resp.User.Rol)
}

func TestLoginRechazos(t *testing.T) {
	svc, repo := newAuthFixture(t)
	user := crearMesero(t, svc)
	require.NoError(t, repo.Desactivar(context.Background(), uuid.MustParse(user.ID)))

	cases := []struct {
		nombre string
		req    dto.LoginRequest
	}{
		{"usuario inexistente", dto.LoginRequest{Username: "fantasma", Password: "x"}},
		{"password incorrecto", dto.LoginRequest{Username: "mesero1", Password: "otra"}},
		// Un usuario desactivado recibe el mismo mensaje genérico: el login
		// no revela si la cuenta existe o en qué estado está.
		{"usuario inactivo", dto.LoginRequest{Username: "mesero1", Password: "pollo123"}},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.req)
			require.Error(t, err)
			assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
			assert.EqualError(t, err, "credenciales inválidas")
		})
	}
}

func TestRefreshToken(t *testing.T) {
	svc, repo := newAuthFixture(t)
	crearMesero(t, svc)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mesero1", Password: "pollo123"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, login.User.ID, renovado.User.ID)

	// Un token de otra firma no pasa.
	_, err = svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))

	// Desactivar al usuario invalida sus refresh aunque la firma sea buena.
	require.NoError(t, repo.Desactivar(context.Background(), uuid.MustParse(login.User.ID)))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestCrearUsuarioDuplicado(t *testing.T) {
	svc, _ := newAuthFixture(t)
	crearMesero(t, svc)

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "mesero1",
		Nombre:   "Otro",
		Password: "1234",
		Rol:      "cocina",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}

func TestActualizarUsuarioCambiaPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	user := crearMesero(t, svc)
	ctx := context.Background()

	nueva := "nueva-clave"
	_, err := svc.ActualizarUsuario(ctx, uuid.MustParse(user.ID), dto.ActualizarUsuarioRequest{Password: &nueva})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "mesero1", Password: "pollo123"})
	require.Error(t, err)
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "mesero1", Password: nueva})
	require.NoError(t, err)
}
