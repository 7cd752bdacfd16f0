package repository

import "github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"

// DealRepository puerto de persistencia para deals y asignaciones de SPIFF de equipo.
type DealRepository interface {
	CreateDeal(d *entity.Deal) error
	GetDealByID(id string) (*entity.Deal, error)
	ListDeals(limit, offset int) ([]*entity.Deal, error)
	UpdateDealStatus(id, status string) error

	// ReplaceAllocations reemplaza la lista completa de asignaciones del deal.
	ReplaceAllocations(dealID string, allocs []entity.DealTeamSpiffAllocation) error
	ListAllocationsByDeal(dealID string) ([]entity.DealTeamSpiffAllocation, error)
	// UpdateAllocationsStatus cambia el estado de todas las asignaciones del deal.
	UpdateAllocationsStatus(dealID, status string) error
}
