package dto

import "time"

// CreateRoleRequest alta de un rol. Name es un slug de máquina inmutable.
type CreateRoleRequest struct {
	Name        string `json:"name" validate:"required"`
	Label       string `json:"label" validate:"required"`
	Description string `json:"description"`
	ColorTag    string `json:"color_tag"`
}

// UpdateRoleRequest edición de un rol (Name no es editable).
type UpdateRoleRequest struct {
	Label       *string `json:"label"`
	Description *string `json:"description"`
	ColorTag    *string `json:"color_tag"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	ColorTag    string    `json:"color_tag"`
	IsSystem    bool      `json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
}
