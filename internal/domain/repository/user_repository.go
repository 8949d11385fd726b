package repository

import (
	"context"

	"github.com/shelfmind/shelfmind-api/internal/domain/entity"
)

// UpdateUserParams campos modificables de un usuario. Los punteros a nil se
// dejan intactos; email, id y role son inmutables y no aparecen aquí.
type UpdateUserParams struct {
	Name         *string
	StoreID      *string
	StoreName    *string
	IsActive     *bool
	PasswordHash *string
}

// UserRepository puerto de persistencia de usuarios. Todas las operaciones
// aceptan context y son seguras para uso concurrente.
//
// Convención de ausencia: GetByEmail/GetByID devuelven (nil, nil) cuando el
// usuario no existe; el caller decide cómo traducir la ausencia a error de
// dominio.
type UserRepository interface {
	// Create persiste un usuario nuevo. Devuelve domain.ErrEmailAlreadyExists
	// si el índice único de email lo rechaza, domain.ErrIDConflict si choca
	// la primary key.
	Create(ctx context.Context, user *entity.User) error

	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// Update aplica una actualización parcial y refresca updated_at.
	// Devuelve false si no existía fila con ese id.
	Update(ctx context.Context, id string, params UpdateUserParams) (bool, error)

	// Delete elimina el usuario. Devuelve false si no existía.
	Delete(ctx context.Context, id string) (bool, error)

	// ListByStore lista los usuarios de una tienda. El orden no es parte del
	// contrato.
	ListByStore(ctx context.Context, storeID string) ([]*entity.User, error)
}
