package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrIDConflict         = errors.New("el id de usuario ya existe")
	ErrIDGeneration       = errors.New("no se pudo generar un id único")
	ErrInvalidCredentials = errors.New("email, password o rol incorrectos")
	ErrInactiveAccount    = errors.New("la cuenta está desactivada")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
