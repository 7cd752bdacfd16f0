package repository

import "github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"

// RoleRepository puerto de persistencia para definiciones de rol.
type RoleRepository interface {
	Create(r *entity.RoleDefinition) error
	GetByID(id string) (*entity.RoleDefinition, error)
	GetByName(name string) (*entity.RoleDefinition, error)
	List() ([]*entity.RoleDefinition, error)
	Update(r *entity.RoleDefinition) error
	// Delete elimina el rol y cascada sus asignaciones (user_roles) y permisos.
	Delete(id string) error
}
