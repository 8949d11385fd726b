package usecase

import (
	"context"

	"github.com/shelfmind/shelfmind-api/internal/application/auth"
	"github.com/shelfmind/shelfmind-api/internal/application/dto"
	"github.com/shelfmind/shelfmind-api/internal/domain"
	"github.com/shelfmind/shelfmind-api/internal/domain/repository"
	"github.com/shelfmind/shelfmind-api/pkg/logger"
)

// UserUseCase operaciones administrativas sobre usuarios. Son mutaciones
// explícitas y auditadas (actor + objetivo en el log), no scripts contra el
// storage. Los handlers las restringen al rol manager.
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log}
}

// GetByID obtiene la vista pública de un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// ListByStore lista las vistas públicas de los usuarios de una tienda.
func (uc *UserUseCase) ListByStore(ctx context.Context, storeID string) ([]*dto.UserResponse, error) {
	users, err := uc.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, auth.ToUserResponse(u))
	}
	return out, nil
}

// Update aplica una actualización parcial y devuelve la vista resultante.
// Email, id y rol son inmutables: el DTO no los admite.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	params := repository.UpdateUserParams{
		Name:      in.Name,
		StoreID:   in.StoreID,
		StoreName: in.StoreName,
		IsActive:  in.IsActive,
	}
	modified, err := uc.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	if !modified {
		return nil, domain.ErrUserNotFound
	}
	uc.log.Info().
		Str("actor_id", actorID).
		Str("user_id", id).
		Msg("usuario actualizado por administración")
	return uc.GetByID(ctx, id)
}

// Deactivate apaga la cuenta: bloquea login y autorización sin borrar datos.
func (uc *UserUseCase) Deactivate(ctx context.Context, actorID, id string) (*dto.UserResponse, error) {
	inactive := false
	modified, err := uc.repo.Update(ctx, id, repository.UpdateUserParams{IsActive: &inactive})
	if err != nil {
		return nil, err
	}
	if !modified {
		return nil, domain.ErrUserNotFound
	}
	uc.log.Info().
		Str("actor_id", actorID).
		Str("user_id", id).
		Msg("cuenta desactivada por administración")
	return uc.GetByID(ctx, id)
}

// Delete elimina el usuario. En operación normal las cuentas se desactivan;
// el borrado existe para limpieza administrativa.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	removed, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrUserNotFound
	}
	uc.log.Warn().
		Str("actor_id", actorID).
		Str("user_id", id).
		Msg("usuario eliminado por administración")
	return nil
}
