package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-historico-api/internal/domain"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository persiste usuarios en PostgreSQL.
type UserRepository struct {
	db Querier
}

// NewUserRepository construye el repositorio con el pool o una tx.
func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserta un usuario nuevo.
func (r *UserRepository) Create(user *entity.User) error {
	ctx := context.Background()

	query := `
		INSERT INTO users (id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name,
		user.Role, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("crear usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por su ID.
func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	ctx := context.Background()

	query := `
		SELECT id, email, password_hash, name, role, status, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u entity.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	return &u, nil
}

// FindByEmail busca un usuario por email.
func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	ctx := context.Background()

	query := `
		SELECT id, email, password_hash, name, role, status, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u entity.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("buscar usuario por email: %w", err)
	}
	return &u, nil
}
