package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/shelfmind/shelfmind-api/internal/application/dto"
	"github.com/shelfmind/shelfmind-api/internal/application/usecase"
	"github.com/shelfmind/shelfmind-api/internal/domain"
	"github.com/shelfmind/shelfmind-api/pkg/logger"
)

// UserHandler endpoints administrativos de usuarios (solo rol manager).
type UserHandler struct {
	uc  *usecase.UserUseCase
	log *logger.Logger
}

// NewUserHandler construye el handler administrativo.
func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar usuarios de una tienda
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        store_id  query  string  true  "identificador de la tienda"
// @Success      200  {array}   dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	storeID := c.Query("store_id")
	if storeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "store_id es requerido"})
	}
	users, err := h.uc.ListByStore(c.Context(), storeID)
	if err != nil {
		return h.internal(c, err)
	}
	return c.JSON(users)
}

// GetByID godoc
// @Summary      Obtener un usuario por id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return h.notFound(c)
		}
		return h.internal(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualización parcial de un usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                 true  "id del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "campos a modificar"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
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
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return h.notFound(c)
		}
		return h.internal(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar la cuenta de un usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	out, err := h.uc.Deactivate(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return h.notFound(c)
		}
		return h.internal(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id del usuario"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return h.notFound(c)
		}
		return h.internal(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
}

func (h *UserHandler) internal(c *fiber.Ctx, err error) error {
	// El detalle del error de storage va al log, nunca al cliente.
	h.log.Error().Err(err).Str("path", c.Path()).Msg("operación administrativa fallida")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
