package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/shelfmind/shelfmind-api/internal/application/auth"
	"github.com/shelfmind/shelfmind-api/internal/application/dto"
	"github.com/shelfmind/shelfmind-api/internal/domain"
	"github.com/shelfmind/shelfmind-api/internal/domain/entity"
	"github.com/shelfmind/shelfmind-api/pkg/logger"
)

// AuthHandler maneja registro, login, validación de token y catálogo de roles.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Register godoc
// @Summary      Registrar usuario (asociado o gerente de tienda)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name, role, store_id, store_name"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.Normalize()
	if err := dto.Validate(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "entrada inválida",
			Details: dto.FieldErrors(err),
		})
	}

	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "EMAIL_EXISTS",
				Message: "Email already registered",
			})
		}
		h.log.Error().Err(err).Str("email", in.Email).Msg("registro fallido")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTERNAL",
			Message: "no se pudo crear la cuenta",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Autenticar usuario y emitir token de acceso
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password, role"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "entrada inválida",
			Details: dto.FieldErrors(err),
		})
	}

	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			// Mensaje genérico: no distingue usuario inexistente, password
			// incorrecto ni rol equivocado.
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "INVALID_CREDENTIALS",
				Message: "Incorrect email, password, or role",
			})
		case errors.Is(err, domain.ErrInactiveAccount):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "INACTIVE_ACCOUNT",
				Message: "la cuenta está desactivada",
			})
		}
		h.log.Error().Err(err).Str("email", in.Email).Msg("login fallido por error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTERNAL",
			Message: "no se pudo iniciar sesión",
		})
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar el token actual y devolver el usuario
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/validate [get]
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	// AuthMiddleware ya verificó token, existencia y estado de la cuenta.
	user := CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "autenticación requerida",
		})
	}
	return c.JSON(auth.ToUserResponse(user))
}

// Roles godoc
// @Summary      Catálogo público de roles disponibles
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.RolesResponse
// @Router       /api/auth/roles [get]
func (h *AuthHandler) Roles(c *fiber.Ctx) error {
	return c.JSON(dto.RolesResponse{
		Roles: []dto.RoleInfo{
			{
				Value:       entity.RoleAssociate,
				Label:       "Store Associate",
				Description: "Handles day-to-day shelf monitoring and restocking tasks",
			},
			{
				Value:       entity.RoleManager,
				Label:       "Store Manager",
				Description: "Oversees store operations and manages associates",
			},
		},
	})
}
