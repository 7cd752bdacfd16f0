package entity

import "time"

// Roles de acceso de la aplicación (claim del JWT).
const (
	RoleAdmin   = "admin"
	RoleFinance = "finance"
	RoleViewer  = "viewer"
)

// User perfil de login. Se liga a un Employee por email para resolver
// asignaciones de plan (UserTarget) durante la carga masiva.
type User struct {
	ID           string
	EmployeeID   *string // uuid del Employee vinculado, nil si aún no existe
	Email        string
	PasswordHash string
	FullName     string
	Role         string // RoleAdmin | RoleFinance | RoleViewer
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
