package handlers

import (
	"context"
	"time"

	"transparencia-salud-server/internal/api/middleware"
	"transparencia-salud-server/internal/auth"
	"transparencia-salud-server/internal/models"
	"transparencia-salud-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fakeStore is an in-memory store.Store used by the handler tests.
type fakeStore struct {
	usuarios   map[string]models.Usuario
	hospitales map[string]models.Hospital

	createUserErr error
	listErr       error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		usuarios:   make(map[string]models.Usuario),
		hospitales: make(map[string]models.Hospital),
	}
}

func (f *fakeStore) CreateUser(ctx context.Context, u models.Usuario) (models.Usuario, error) {
	if f.createUserErr != nil {
		return models.Usuario{}, f.createUserErr
	}
	if _, ok := f.usuarios[u.Email]; ok {
		return models.Usuario{}, store.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	f.usuarios[u.Email] = u
	return u, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (models.Usuario, error) {
	u, ok := f.usuarios[email]
	if !ok {
		return models.Usuario{}, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]models.Usuario, error) {
	var out []models.Usuario
	for _, u := range f.usuarios {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeStore) CreateHospital(ctx context.Context, h models.Hospital) (models.Hospital, error) {
	h.ID = uuid.NewString()
	h.CreatedAt = time.Now()
	h.UpdatedAt = h.CreatedAt
	f.hospitales[h.ID] = h
	return h, nil
}

func (f *fakeStore) UpdateHospital(ctx context.Context, id string, h models.Hospital) (models.Hospital, error) {
	existing, ok := f.hospitales[id]
	if !ok {
		return models.Hospital{}, store.ErrNotFound
	}
	h.ID = id
	h.CreatedAt = existing.CreatedAt
	h.UpdatedAt = time.Now()
	f.hospitales[id] = h
	return h, nil
}

func (f *fakeStore) DeleteHospital(ctx context.Context, id string) error {
	if _, ok := f.hospitales[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.hospitales, id)
	return nil
}

func (f *fakeStore) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Hospital
	for _, h := range f.hospitales {
		out = append(out, h)
	}
	return out, nil
}

// newTestRouter wires the same routes as routes.SetupRouter against the fake
// store, with templates loaded from the repository tree.
func newTestRouter(st store.Store, tokens *auth.TokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.LoadHTMLGlob("../../../web/templates/*.html")

	sessions := &middleware.SessionResolver{Store: st, Tokens: tokens}
	userHandler := &UserHandler{Store: st, Tokens: tokens, CookieMaxAge: 1800}
	panelHandler := &PanelHandler{Store: st, Sessions: sessions}
	hospitalHandler := &HospitalHandler{Store: st}

	router.GET("/", panelHandler.Index)
	router.GET("/login", userHandler.LoginPage)
	router.POST("/login", userHandler.Login)
	router.GET("/registro", userHandler.RegistroPage)
	router.POST("/registro", userHandler.Registro)
	router.GET("/logout", userHandler.Logout)
	router.GET("/panel", panelHandler.Panel)

	protected := router.Group("/")
	protected.Use(sessions.Authenticate())
	protected.Use(middleware.RequireActive())
	{
		protected.POST("/agregar_hospital", hospitalHandler.Agregar)
		protected.PUT("/actualizar_hospital/:id", hospitalHandler.Actualizar)
		protected.DELETE("/eliminar_hospital/:id", hospitalHandler.Eliminar)
	}

	router.GET("/api/v1/hospitales", hospitalHandler.Listar)
	router.GET("/api/v1/resumen", hospitalHandler.Resumen)

	admin := router.Group("/api/v1/admin")
	admin.Use(sessions.Authenticate())
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/usuarios", userHandler.ListarUsuarios)
	}

	return router
}
