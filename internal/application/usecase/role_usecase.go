package usecase

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// slug de máquina: minúsculas, dígitos y guiones bajos.
var roleSlugRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// RoleUseCase casos de uso para definiciones de rol. Name es inmutable tras la
// creación; los roles de sistema no se eliminan; el borrado cascada las
// asignaciones y permisos.
type RoleUseCase struct {
	repo repository.RoleRepository
	bus  ports.CacheBus
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository, bus ports.CacheBus) *RoleUseCase {
	return &RoleUseCase{repo: repo, bus: bus}
}

// Create crea un rol no-sistema.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if !roleSlugRe.MatchString(in.Name) || in.Label == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetByName(in.Name); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	r := &entity.RoleDefinition{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Label:       in.Label,
		Description: in.Description,
		ColorTag:    in.ColorTag,
		IsSystem:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(r); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityRoles, r.ID)
	return toRoleResponse(r), nil
}

// Update edita label/description/color. El slug no cambia nunca.
func (uc *RoleUseCase) Update(ctx context.Context, id string, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	r, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	if in.Label != nil {
		r.Label = *in.Label
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.ColorTag != nil {
		r.ColorTag = *in.ColorTag
	}
	r.UpdatedAt = time.Now()
	if err := uc.repo.Update(r); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityRoles, r.ID)
	return toRoleResponse(r), nil
}

// Delete elimina un rol no-sistema; el repositorio cascada user_roles y permisos.
func (uc *RoleUseCase) Delete(ctx context.Context, id string) error {
	r, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if r.IsSystem {
		return domain.ErrSystemRole
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.bus.PublishChange(ctx, ports.EntityRoles, id)
	return nil
}

// List lista todos los roles.
func (uc *RoleUseCase) List() ([]dto.RoleResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRoleResponse(r))
	}
	return items, nil
}

func toRoleResponse(r *entity.RoleDefinition) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Label:       r.Label,
		Description: r.Description,
		ColorTag:    r.ColorTag,
		IsSystem:    r.IsSystem,
		CreatedAt:   r.CreatedAt,
	}
}
