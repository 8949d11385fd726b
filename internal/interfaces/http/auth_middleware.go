package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/shelfmind/shelfmind-api/internal/application/dto"
	"github.com/shelfmind/shelfmind-api/internal/domain/entity"
	"github.com/shelfmind/shelfmind-api/internal/domain/repository"
	pkgjwt "github.com/shelfmind/shelfmind-api/pkg/jwt"
	"github.com/shelfmind/shelfmind-api/pkg/logger"
)

// Local key para el usuario autenticado en Fiber.
const localUser = "current_user"

// AuthMiddleware valida el Bearer Token, resuelve el usuario en el storage y
// lo deja en c.Locals para el handler protegido.
//
// Todas las fallas de token o de resolución colapsan en un único 401 externo;
// la causa concreta (expirado, firma, usuario borrado) solo va al log. Una
// cuenta desactivada responde 401 con código propio: no es vector de
// enumeración y el cliente puede mostrar un mensaje útil.
func AuthMiddleware(codec *pkgjwt.Codec, users repository.UserRepository, log *logger.Logger) fiber.Handler {
	unauthorized := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "autenticación requerida",
		})
	}

	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c.Get("Authorization"))
		if !ok {
			return unauthorized(c)
		}

		claims, err := codec.Verify(tokenString)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("token rechazado")
			return unauthorized(c)
		}

		user, err := users.GetByID(c.Context(), claims.UserID)
		if err != nil {
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("resolver usuario del token")
			return unauthorized(c)
		}
		if user == nil {
			// Token válido de un usuario eliminado.
			log.Debug().Str("user_id", claims.UserID).Msg("token de usuario inexistente")
			return unauthorized(c)
		}
		if !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "ACCOUNT_DISABLED",
				Message: "la cuenta está desactivada",
			})
		}

		c.Locals(localUser, user)
		return c.Next()
	}
}

// RequireRole autoriza el acceso solo a los roles indicados. Debe usarse
// DESPUÉS de AuthMiddleware (necesita el usuario en locals).
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "autenticación requerida",
			})
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "rol insuficiente para esta operación",
		})
	}
}

// CurrentUser devuelve el usuario autenticado del contexto, o nil si la ruta
// no pasó por AuthMiddleware.
func CurrentUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(localUser).(*entity.User)
	return u
}

// GetUserID devuelve el id del usuario autenticado, o "".
func GetUserID(c *fiber.Ctx) string {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}
	return ""
}

// GetRole devuelve el rol del usuario autenticado, o "".
func GetRole(c *fiber.Ctx) string {
	if u := CurrentUser(c); u != nil {
		return u.Role
	}
	return ""
}

// bearerToken extrae el token del header Authorization ("Bearer <token>").
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
