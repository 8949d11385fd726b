package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shelfmind/shelfmind-api/internal/application/dto"
	"github.com/shelfmind/shelfmind-api/internal/domain"
	"github.com/shelfmind/shelfmind-api/internal/domain/entity"
	"github.com/shelfmind/shelfmind-api/internal/domain/repository"
	pkgjwt "github.com/shelfmind/shelfmind-api/pkg/jwt"
	"github.com/shelfmind/shelfmind-api/pkg/password"
)

// AuthUseCase casos de uso de autenticación: registro, login y resolución del
// usuario de un token ya verificado.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher *password.Hasher
	codec  *pkgjwt.Codec
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, hasher *password.Hasher, codec *pkgjwt.Codec) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, codec: codec}
}

// Register crea un usuario nuevo y emite su token de acceso.
//
// La comprobación previa de email da el mensaje amable; la garantía real de
// unicidad la da el índice único en el insert, que cierra la ventana de
// carrera entre registros concurrentes. El id generado choca con probabilidad
// despreciable; aun así un ErrIDConflict se reintenta una vez.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashear password: %w", err)
	}

	var user *entity.User
	for attempt := 0; ; attempt++ {
		now := time.Now().UTC()
		user = &entity.User{
			ID:           newUserID(in.Role),
			Email:        in.Email,
			Name:         in.Name,
			PasswordHash: hash,
			Role:         in.Role,
			StoreID:      in.StoreID,
			StoreName:    in.StoreName,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		err = uc.users.Create(ctx, user)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrIDConflict) && attempt == 0 {
			continue // regenerar el sufijo una única vez
		}
		if errors.Is(err, domain.ErrIDConflict) {
			return nil, domain.ErrIDGeneration
		}
		return nil, err
	}

	token, err := uc.codec.Issue(user.Email, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		Message:     fmt.Sprintf("User account created successfully for %s", user.Role),
		User:        *ToUserResponse(user),
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// Login valida la tripleta email/password/rol y emite un token.
//
// Usuario inexistente, password incorrecto y rol equivocado colapsan en
// ErrInvalidCredentials para no filtrar qué cuentas existen. El rol es parte
// de la credencial de login, no un check posterior de autorización.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !uc.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Role != in.Role {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	token, err := uc.codec.Issue(user.Email, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *ToUserResponse(user),
	}, nil
}

// newUserID genera un id "{role}-{sufijo}" con 8 caracteres aleatorios del
// uuid. El id se asigna una vez y nunca se muta ni reutiliza.
func newUserID(role string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return role + "-" + suffix
}

// ToUserResponse proyecta la vista pública de un usuario. Es la única
// proyección usada por registro, login y validación, y nunca incluye el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		StoreID:   u.StoreID,
		StoreName: u.StoreName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
