package database

import (
	"context"
	"testing"

	"transparencia-salud-server/config"
	"transparencia-salud-server/internal/auth"
	"transparencia-salud-server/internal/models"
	"transparencia-salud-server/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	usuarios   map[string]models.Usuario
	hospitales []models.Hospital
}

func newFakeStore() *fakeStore {
	return &fakeStore{usuarios: make(map[string]models.Usuario)}
}

func (f *fakeStore) CreateUser(ctx context.Context, u models.Usuario) (models.Usuario, error) {
	if _, ok := f.usuarios[u.Email]; ok {
		return models.Usuario{}, store.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
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

func (f *fakeStore) ListUsers(ctx context.Context) ([]models.Usuario, error) { return nil, nil }

func (f *fakeStore) CreateHospital(ctx context.Context, h models.Hospital) (models.Hospital, error) {
	h.ID = uuid.NewString()
	f.hospitales = append(f.hospitales, h)
	return h, nil
}

func (f *fakeStore) UpdateHospital(ctx context.Context, id string, h models.Hospital) (models.Hospital, error) {
	return models.Hospital{}, store.ErrNotFound
}

func (f *fakeStore) DeleteHospital(ctx context.Context, id string) error { return store.ErrNotFound }

func (f *fakeStore) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	return f.hospitales, nil
}

func TestSeedHospitalsFillsEmptyLedger(t *testing.T) {
	st := newFakeStore()

	require.NoError(t, SeedHospitals(context.Background(), st))
	assert.Len(t, st.hospitales, 4)

	// a second run does not duplicate records
	require.NoError(t, SeedHospitals(context.Background(), st))
	assert.Len(t, st.hospitales, 4)
}

func TestSeedAdmin(t *testing.T) {
	st := newFakeStore()
	cfg := config.SeedConfig{AdminEmail: "admin@example.com", AdminPassword: "clave-inicial"}

	require.NoError(t, SeedAdmin(context.Background(), st, cfg))

	admin, ok := st.usuarios["admin@example.com"]
	require.True(t, ok)
	assert.True(t, admin.EsAdmin)
	assert.True(t, admin.EsActivo)
	assert.True(t, auth.CheckPasswordHash("clave-inicial", admin.PasswordHash))

	// idempotent on restart
	require.NoError(t, SeedAdmin(context.Background(), st, cfg))
	assert.Len(t, st.usuarios, 1)
}

func TestSeedAdminUnconfigured(t *testing.T) {
	st := newFakeStore()
	require.NoError(t, SeedAdmin(context.Background(), st, config.SeedConfig{}))
	assert.Empty(t, st.usuarios)
}
