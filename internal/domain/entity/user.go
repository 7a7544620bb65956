package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleCajero  = "cajero"
	RoleCocina  = "cocina"
	RoleCompras = "compras"
)

// ValidRole indica si el rol pertenece al catálogo.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCajero, RoleCocina, RoleCompras:
		return true
	}
	return false
}

// User representa un usuario del sistema (pertenece a un Restaurant).
type User struct {
	ID           string
	RestaurantID string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string // admin, cajero, cocina, compras
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
