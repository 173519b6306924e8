package postgres

import (
	"context"
	"errors"
	"time"

	"transparencia-salud-server/internal/models"
	"transparencia-salud-server/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) CreateUser(ctx context.Context, u models.Usuario) (models.Usuario, error) {
	u.ID = uuid.NewString()
	row := s.pool.QueryRow(ctx, `
		INSERT INTO usuarios (id, email, nombre, password_hash, es_activo, es_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, u.ID, u.Email, u.Nombre, u.PasswordHash, u.EsActivo, u.EsAdmin)
	if err := row.Scan(&u.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.Usuario{}, store.ErrDuplicateEmail
		}
		return models.Usuario{}, err
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.Usuario, error) {
	var u models.Usuario
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, nombre, password_hash, es_activo, es_admin, created_at
		FROM usuarios
		WHERE email = $1
	`, email)
	if err := row.Scan(&u.ID, &u.Email, &u.Nombre, &u.PasswordHash, &u.EsActivo, &u.EsAdmin, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Usuario{}, store.ErrNotFound
		}
		return models.Usuario{}, err
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.Usuario, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, email, nombre, password_hash, es_activo, es_admin, created_at
		FROM usuarios
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usuarios []models.Usuario
	for rows.Next() {
		var u models.Usuario
		if err := rows.Scan(&u.ID, &u.Email, &u.Nombre, &u.PasswordHash, &u.EsActivo, &u.EsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

func (s *Store) CreateHospital(ctx context.Context, h models.Hospital) (models.Hospital, error) {
	h.ID = uuid.NewString()
	row := s.pool.QueryRow(ctx, `
		INSERT INTO hospitales (id, nombre, ciudad, recursos_asignados, recursos_usados)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, h.ID, h.Nombre, h.Ciudad, h.RecursosAsignados, h.RecursosUsados)
	if err := row.Scan(&h.CreatedAt, &h.UpdatedAt); err != nil {
		return models.Hospital{}, err
	}
	return h, nil
}

// UpdateHospital overwrites every mutable field of the record. The write runs
// in its own transaction so a failed scan never leaves a partial row behind.
func (s *Store) UpdateHospital(ctx context.Context, id string, h models.Hospital) (models.Hospital, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Hospital{}, err
	}
	defer tx.Rollback(ctx)

	h.ID = id
	row := tx.QueryRow(ctx, `
		UPDATE hospitales
		SET nombre = $2, ciudad = $3, recursos_asignados = $4, recursos_usados = $5, updated_at = $6
		WHERE id = $1
		RETURNING created_at, updated_at
	`, id, h.Nombre, h.Ciudad, h.RecursosAsignados, h.RecursosUsados, time.Now().UTC())
	if err := row.Scan(&h.CreatedAt, &h.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Hospital{}, store.ErrNotFound
		}
		return models.Hospital{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Hospital{}, err
	}
	return h, nil
}

func (s *Store) DeleteHospital(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM hospitales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, nombre, ciudad, recursos_asignados, recursos_usados, created_at, updated_at
		FROM hospitales
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hospitales []models.Hospital
	for rows.Next() {
		var h models.Hospital
		if err := rows.Scan(&h.ID, &h.Nombre, &h.Ciudad, &h.RecursosAsignados, &h.RecursosUsados, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		hospitales = append(hospitales, h)
	}
	return hospitales, rows.Err()
}
