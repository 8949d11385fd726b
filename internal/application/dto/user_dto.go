package dto

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// RegisterRequest entrada para registro. Password en texto plano, se hashea en
// el servicio de auth.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,userpassword"`
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Role      string `json:"role" validate:"required,oneof=associate manager"`
	StoreID   string `json:"store_id" validate:"required"`
	StoreName string `json:"store_name" validate:"required,min=2"`
}

// Normalize recorta espacios y normaliza a NFC los campos de texto libre.
// Debe llamarse antes de Validate: las reglas de longitud aplican sobre el
// valor ya recortado.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = norm.NFC.String(strings.TrimSpace(r.Name))
	r.StoreID = strings.TrimSpace(r.StoreID)
	r.StoreName = norm.NFC.String(strings.TrimSpace(r.StoreName))
}

// LoginRequest entrada para login. El rol es parte de la credencial: un
// password correcto con rol equivocado no autentica.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=associate manager"`
}

// UserResponse vista pública de un usuario (sin hash de credencial).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	StoreID   string    `json:"store_id"`
	StoreName string    `json:"store_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterResponse salida de registro: usuario creado más token de acceso.
type RegisterResponse struct {
	Message     string       `json:"message"`
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"` // siempre "bearer"
}

// LoginResponse salida de login.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"` // siempre "bearer"
	User        UserResponse `json:"user"`
}

// UpdateUserRequest entrada para la actualización administrativa parcial.
// Los campos a nil no se tocan; email, id y rol son inmutables.
type UpdateUserRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=100"`
	StoreID   *string `json:"store_id" validate:"omitempty,min=1"`
	StoreName *string `json:"store_name" validate:"omitempty,min=2"`
	IsActive  *bool   `json:"is_active"`
}

// RoleInfo descripción de un rol para el catálogo público.
type RoleInfo struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// RolesResponse catálogo estático de roles.
type RolesResponse struct {
	Roles []RoleInfo `json:"roles"`
}
