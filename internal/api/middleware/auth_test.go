package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transparencia-salud-server/internal/auth"
	"transparencia-salud-server/internal/models"
	"transparencia-salud-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	usuarios map[string]models.Usuario
}

func (f *fakeStore) CreateUser(ctx context.Context, u models.Usuario) (models.Usuario, error) {
	return u, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (models.Usuario, error) {
	u, ok := f.usuarios[email]
	if !ok {
		return models.Usuario{}, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]models.Usuario, error) { return nil, nil }

func (f *fakeStore) CreateHospital(ctx context.Context, h models.Hospital) (models.Hospital, error) {
	return h, nil
}

func (f *fakeStore) UpdateHospital(ctx context.Context, id string, h models.Hospital) (models.Hospital, error) {
	return models.Hospital{}, store.ErrNotFound
}

func (f *fakeStore) DeleteHospital(ctx context.Context, id string) error { return store.ErrNotFound }

func (f *fakeStore) ListHospitals(ctx context.Context) ([]models.Hospital, error) { return nil, nil }

func newTestRouter(st store.Store, tokens *auth.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	resolver := &SessionResolver{Store: st, Tokens: tokens}

	router := gin.New()
	router.GET("/protegido", resolver.Authenticate(), RequireActive(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": CurrentUser(c).Email})
	})
	router.GET("/admin", resolver.Authenticate(), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func testStore() *fakeStore {
	return &fakeStore{usuarios: map[string]models.Usuario{
		"ana@example.com":    {ID: "u1", Email: "ana@example.com", Nombre: "Ana", EsActivo: true},
		"beto@example.com":   {ID: "u2", Email: "beto@example.com", Nombre: "Beto", EsActivo: false},
		"carla@example.com":  {ID: "u3", Email: "carla@example.com", Nombre: "Carla", EsActivo: true, EsAdmin: true},
	}}
}

func TestAuthenticateMissingToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("secreto", time.Minute)
	router := newTestRouter(testStore(), tokens)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "Bearer", resp.Header().Get("WWW-Authenticate"))
}

func TestAuthenticateBearerHeader(t *testing.T) {
	tokens := auth.NewTokenIssuer("secreto", time.Minute)
	router := newTestRouter(testStore(), tokens)

	token, err := tokens.Generate("ana@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "ana@example.com")
}

func TestAuthenticateHeaderWithoutScheme(t *testing.T) {
	tokens := auth.NewTokenIssuer("secreto", time.Minute)
	router := newTestRouter(testStore(), tokens)

	token, err := tokens.Generate("ana@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthenticateCookie(t *testing.T) {
	tokens := auth.NewTokenIssuer("secreto", time.Minute)
	router := newTestRouter(testStore(), tokens)

	token, err := tokens.Generate("ana@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "Bearer " + token})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("secreto", time.Minute)
	router := newTestRouter(testStore(), tokens)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer basura")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	tokens := auth.NewTokenIssuer("secreto", time.Minute)
	router := newTestRouter(testStore(), tokens)

	token, err := tokens.GenerateWithTTL("ana@example.com", -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	tokens := auth.NewTokenIssuer("secreto", time.Minute)
	router := newTestRouter(testStore(), tokens)

	token, err := tokens.Generate("nadie@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestRequireActiveInactiveUser(t *testing.T) {
	tokens := auth.NewTokenIssuer("secreto", time.Minute)
	router := newTestRouter(testStore(), tokens)

	token, err := tokens.Generate("beto@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Usuario inactivo")
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokenIssuer("secreto", time.Minute)
	router := newTestRouter(testStore(), tokens)

	adminToken, err := tokens.Generate("carla@example.com")
	require.NoError(t, err)
	userToken, err := tokens.Generate("ana@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}
