package entity

import "time"

// RoleDefinition rol configurable de la aplicación. Name es un slug de máquina
// inmutable después de la creación; los roles de sistema no pueden eliminarse.
type RoleDefinition struct {
	ID          string
	Name        string // slug, inmutable
	Label       string
	Description string
	ColorTag    string
	IsSystem    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserRole asignación de un rol a un usuario. Se elimina en cascada al borrar el rol.
type UserRole struct {
	ID       string
	UserID   string
	RoleName string
}
