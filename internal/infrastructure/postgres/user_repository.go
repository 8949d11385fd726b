package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelfmind/shelfmind-api/internal/domain"
	"github.com/shelfmind/shelfmind-api/internal/domain/entity"
	"github.com/shelfmind/shelfmind-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = "id, email, name, password_hash, role, store_id, store_name, is_active, created_at, updated_at"

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario. La unicidad de email la garantiza el
// índice único; dos registros concurrentes con el mismo email resultan en un
// éxito y un ErrEmailAlreadyExists, nunca dos éxitos.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.Role,
		user.StoreID, user.StoreName, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		switch uniqueViolation(err) {
		case "users_email_key":
			return domain.ErrEmailAlreadyExists
		case "users_pkey":
			return domain.ErrIDConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail obtiene un usuario por email. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	u, err := r.scanOne(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetByID obtiene un usuario por id. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := r.scanOne(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// Update aplica una actualización parcial; updated_at se refresca siempre.
// COALESCE deja intactos los campos no enviados.
func (r *UserRepo) Update(ctx context.Context, id string, p repository.UpdateUserParams) (bool, error) {
	query := `
		UPDATE users SET
			name          = COALESCE($2, name),
			store_id      = COALESCE($3, store_id),
			store_name    = COALESCE($4, store_name),
			is_active     = COALESCE($5, is_active),
			password_hash = COALESCE($6, password_hash),
			updated_at    = $7
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		id, p.Name, p.StoreID, p.StoreName, p.IsActive, p.PasswordHash, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete elimina un usuario por id. Devuelve false si no existía.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByStore lista los usuarios de una tienda. El orden no es contractual.
func (r *UserRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE store_id = $1`
	rows, err := r.pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
			&u.StoreID, &u.StoreName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.StoreID, &u.StoreName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
