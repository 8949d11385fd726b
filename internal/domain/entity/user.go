package entity

import "time"

// Roles válidos para User.
const (
	RoleAssociate = "associate"
	RoleManager   = "manager"
)

// ValidRole indica si el rol es uno de los soportados por el sistema.
func ValidRole(role string) bool {
	return role == RoleAssociate || role == RoleManager
}

// User representa un usuario del sistema (asociado o gerente de tienda).
type User struct {
	ID           string // formato "{role}-{sufijo aleatorio}", inmutable
	Email        string // único a nivel de storage, inmutable
	Name         string
	PasswordHash string // hash de credencial, nunca sale del dominio tras persistir
	Role         string // associate | manager, inmutable
	StoreID      string
	StoreName    string
	IsActive     bool // bloquea login y autorización cuando es false
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
