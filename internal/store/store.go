package store

import (
	"context"

	"transparencia-salud-server/internal/models"
)

// Store is the persistence boundary of the application: the credential store
// and the hospital ledger. The postgres implementation lives in
// store/postgres; handlers only see this interface.
type Store interface {
	// Users. CreateUser returns ErrDuplicateEmail when the email is taken;
	// uniqueness is enforced by the database, not by a pre-check.
	CreateUser(ctx context.Context, u models.Usuario) (models.Usuario, error)
	GetUserByEmail(ctx context.Context, email string) (models.Usuario, error)
	ListUsers(ctx context.Context) ([]models.Usuario, error)

	// Hospital ledger. Update overwrites every mutable field and returns
	// ErrNotFound for an unknown id; List carries no ordering contract.
	CreateHospital(ctx context.Context, h models.Hospital) (models.Hospital, error)
	UpdateHospital(ctx context.Context, id string, h models.Hospital) (models.Hospital, error)
	DeleteHospital(ctx context.Context, id string) error
	ListHospitals(ctx context.Context) ([]models.Hospital, error)
}
