package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// DealSpiffUseCase reparto del pool de SPIFF de un deal entre su equipo.
type DealSpiffUseCase struct {
	repo    repository.DealRepository
	empRepo repository.EmployeeRepository
	bus     ports.CacheBus
}

// NewDealSpiffUseCase construye el caso de uso.
func NewDealSpiffUseCase(repo repository.DealRepository, empRepo repository.EmployeeRepository, bus ports.CacheBus) *DealSpiffUseCase {
	return &DealSpiffUseCase{repo: repo, empRepo: empRepo, bus: bus}
}

// CreateDeal registra un deal con su pool de SPIFF en pending_allocation.
func (uc *DealSpiffUseCase) CreateDeal(ctx context.Context, in dto.CreateDealRequest) (*dto.DealResponse, error) {
	if in.DealName == "" || !in.SpiffPoolUSD.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	closeDate := time.Time{}
	if in.CloseDate != "" {
		t, err := time.Parse("2006-01-02", in.CloseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: close_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		closeDate = t
	}
	now := time.Now()
	d := &entity.Deal{
		ID:           uuid.New().String(),
		DealName:     in.DealName,
		CustomerName: in.CustomerName,
		DealValueUSD: in.DealValueUSD,
		SpiffPoolUSD: in.SpiffPoolUSD,
		CloseDate:    closeDate,
		Status:       entity.DealPendingAllocation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.CreateDeal(d); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityDeals, d.ID)
	return uc.toDealResponse(d, nil), nil
}

// GetDeal obtiene un deal con el total ya asignado.
func (uc *DealSpiffUseCase) GetDeal(dealID string) (*dto.DealResponse, error) {
	d, err := uc.repo.GetDealByID(dealID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	allocs, err := uc.repo.ListAllocationsByDeal(dealID)
	if err != nil {
		return nil, err
	}
	return uc.toDealResponse(d, allocs), nil
}

// ListDeals lista deals paginados.
func (uc *DealSpiffUseCase) ListDeals(page dto.PageRequest) ([]dto.DealResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListDeals(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DealResponse, 0, len(list))
	for _, d := range list {
		allocs, err := uc.repo.ListAllocationsByDeal(d.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *uc.toDealResponse(d, allocs))
	}
	return items, nil
}

// SaveAllocations reemplaza el reparto completo del deal. Exige al menos un
// miembro, empleados existentes sin repetir y que la suma iguale el pool
// dentro de la tolerancia. Un deal aprobado queda de solo lectura.
func (uc *DealSpiffUseCase) SaveAllocations(ctx context.Context, dealID string, in dto.SaveAllocationsRequest) ([]dto.AllocationResponse, error) {
	d, err := uc.repo.GetDealByID(dealID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if d.Status == entity.DealApproved {
		return nil, domain.ErrAllocationLocked
	}
	if len(in.Allocations) == 0 {
		return nil, fmt.Errorf("%w: el reparto necesita al menos un miembro", domain.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(in.Allocations))
	total := decimal.Zero
	for _, a := range in.Allocations {
		if a.EmployeeID == "" || a.MemberRole == "" {
			return nil, domain.ErrInvalidInput
		}
		if a.AmountUSD.IsNegative() {
			return nil, fmt.Errorf("%w: los montos asignados no pueden ser negativos", domain.ErrInvalidInput)
		}
		if seen[a.EmployeeID] {
			return nil, fmt.Errorf("%w: empleado repetido en el reparto", domain.ErrDuplicate)
		}
		seen[a.EmployeeID] = true
		emp, err := uc.empRepo.GetByID(a.EmployeeID)
		if err != nil {
			return nil, err
		}
		if emp == nil {
			return nil, fmt.Errorf("%w: empleado %s", domain.ErrNotFound, a.EmployeeID)
		}
		total = total.Add(a.AmountUSD)
	}
	if total.Sub(d.SpiffPoolUSD).Abs().GreaterThan(entity.AllocationTolerance) {
		return nil, fmt.Errorf("%w: el total asignado (%s) no iguala el pool (%s)",
			domain.ErrInvalidInput, total.StringFixed(2), d.SpiffPoolUSD.StringFixed(2))
	}

	now := time.Now()
	allocs := make([]entity.DealTeamSpiffAllocation, 0, len(in.Allocations))
	for _, a := range in.Allocations {
		allocs = append(allocs, entity.DealTeamSpiffAllocation{
			ID:         uuid.New().String(),
			DealID:     dealID,
			EmployeeID: a.EmployeeID,
			MemberRole: a.MemberRole,
			AmountUSD:  a.AmountUSD,
			Status:     "pending",
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	if err := uc.repo.ReplaceAllocations(dealID, allocs); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateDealStatus(dealID, entity.DealFullyAllocated); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityDeals, dealID)

	items := make([]dto.AllocationResponse, 0, len(allocs))
	for _, a := range allocs {
		items = append(items, toAllocationResponse(a))
	}
	return items, nil
}

// ListAllocations lista el reparto vigente de un deal.
func (uc *DealSpiffUseCase) ListAllocations(dealID string) ([]dto.AllocationResponse, error) {
	allocs, err := uc.repo.ListAllocationsByDeal(dealID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AllocationResponse, 0, len(allocs))
	for _, a := range allocs {
		items = append(items, toAllocationResponse(a))
	}
	return items, nil
}

// ApproveDeal aprueba el reparto. Solo con el deal completamente asignado;
// tras la aprobación el reparto queda congelado.
func (uc *DealSpiffUseCase) ApproveDeal(ctx context.Context, dealID string) error {
	return uc.resolveDeal(ctx, dealID, entity.DealApproved, "approved")
}

// RejectDeal rechaza el reparto y lo devuelve a edición.
func (uc *DealSpiffUseCase) RejectDeal(ctx context.Context, dealID string) error {
	return uc.resolveDeal(ctx, dealID, entity.DealRejected, "rejected")
}

func (uc *DealSpiffUseCase) resolveDeal(ctx context.Context, dealID, dealStatus, allocStatus string) error {
	d, err := uc.repo.GetDealByID(dealID)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	if d.Status != entity.DealFullyAllocated {
		return fmt.Errorf("%w: el deal debe estar fully_allocated, está %s", domain.ErrConflict, d.Status)
	}
	if err := uc.repo.UpdateDealStatus(dealID, dealStatus); err != nil {
		return err
	}
	if err := uc.repo.UpdateAllocationsStatus(dealID, allocStatus); err != nil {
		return err
	}
	uc.bus.PublishChange(ctx, ports.EntityDeals, dealID)
	return nil
}

func (uc *DealSpiffUseCase) toDealResponse(d *entity.Deal, allocs []entity.DealTeamSpiffAllocation) *dto.DealResponse {
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(a.AmountUSD)
	}
	return &dto.DealResponse{
		ID:                d.ID,
		DealName:          d.DealName,
		CustomerName:      d.CustomerName,
		DealValueUSD:      d.DealValueUSD,
		SpiffPoolUSD:      d.SpiffPoolUSD,
		AllocatedTotalUSD: total,
		CloseDate:         d.CloseDate,
		Status:            d.Status,
	}
}

func toAllocationResponse(a entity.DealTeamSpiffAllocation) dto.AllocationResponse {
	return dto.AllocationResponse{
		ID:         a.ID,
		DealID:     a.DealID,
		EmployeeID: a.EmployeeID,
		MemberRole: a.MemberRole,
		AmountUSD:  a.AmountUSD,
		Status:     a.Status,
	}
}
