package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/usecase"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.DealRepository = (*fakeDealRepo)(nil)

type fakeDealRepo struct {
	deals  map[string]*entity.Deal
	allocs map[string][]entity.DealTeamSpiffAllocation
}

func newFakeDealRepo() *fakeDealRepo {
	return &fakeDealRepo{
		deals:  map[string]*entity.Deal{},
		allocs: map[string][]entity.DealTeamSpiffAllocation{},
	}
}

func (f *fakeDealRepo) CreateDeal(d *entity.Deal) error {
	cp := *d
	f.deals[d.ID] = &cp
	return nil
}

func (f *fakeDealRepo) GetDealByID(id string) (*entity.Deal, error) {
	d, ok := f.deals[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDealRepo) ListDeals(limit, offset int) ([]*entity.Deal, error) {
	var out []*entity.Deal
	for _, d := range f.deals {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeDealRepo) UpdateDealStatus(id, status string) error {
	d, ok := f.deals[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	return nil
}

func (f *fakeDealRepo) ReplaceAllocations(dealID string, allocs []entity.DealTeamSpiffAllocation) error {
	f.allocs[dealID] = append([]entity.DealTeamSpiffAllocation{}, allocs...)
	return nil
}

func (f *fakeDealRepo) ListAllocationsByDeal(dealID string) ([]entity.DealTeamSpiffAllocation, error) {
	return append([]entity.DealTeamSpiffAllocation{}, f.allocs[dealID]...), nil
}

func (f *fakeDealRepo) UpdateAllocationsStatus(dealID, status string) error {
	list := f.allocs[dealID]
	for i := range list {
		list[i].Status = status
	}
	f.allocs[dealID] = list
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func buildDealUC(repo *fakeDealRepo, employees ...*entity.Employee) *usecase.DealSpiffUseCase {
	return usecase.NewDealSpiffUseCase(repo, newFakeEmployeeRepo(employees...), ports.NoopBus{})
}

func seedDeal(t *testing.T, uc *usecase.DealSpiffUseCase, pool int64) string {
	t.Helper()
	out, err := uc.CreateDeal(context.Background(), dto.CreateDealRequest{
		DealName:     "Acme Renewal FY26",
		CustomerName: "Acme Corp",
		DealValueUSD: decimal.NewFromInt(500000),
		SpiffPoolUSD: decimal.NewFromInt(pool),
		CloseDate:    "2026-03-31",
	})
	require.NoError(t, err)
	require.Equal(t, entity.DealPendingAllocation, out.Status)
	return out.ID
}

func alloc(employeeID, role string, amount float64) dto.AllocationPayload {
	return dto.AllocationPayload{
		EmployeeID: employeeID,
		MemberRole: role,
		AmountUSD:  decimal.NewFromFloat(amount),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDeal_PoolDebeSerPositivo(t *testing.T) {
	uc := buildDealUC(newFakeDealRepo())

	_, err := uc.CreateDeal(context.Background(), dto.CreateDealRequest{
		DealName:     "Deal sin pool",
		SpiffPoolUSD: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveAllocations_SumaExactaQuedaFullyAllocated(t *testing.T) {
	repo := newFakeDealRepo()
	uc := buildDealUC(repo, testEmployee("emp-1"), testEmployee("emp-2"))
	dealID := seedDeal(t, uc, 10000)

	out, err := uc.SaveAllocations(context.Background(), dealID, dto.SaveAllocationsRequest{
		Allocations: []dto.AllocationPayload{
			alloc("emp-1", "SE", 6000),
			alloc("emp-2", "Solution Architect", 4000),
		},
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	deal, err := uc.GetDeal(dealID)
	require.NoError(t, err)
	assert.Equal(t, entity.DealFullyAllocated, deal.Status)
	assert.True(t, deal.AllocatedTotalUSD.Equal(decimal.NewFromInt(10000)))
}

func TestSaveAllocations_DentroDeToleranciaAceptada(t *testing.T) {
	repo := newFakeDealRepo()
	uc := buildDealUC(repo, testEmployee("emp-1"), testEmployee("emp-2"))
	dealID := seedDeal(t, uc, 10000)

	// 9999.995 difiere del pool en 0.005, dentro de la tolerancia de 0.01
	_, err := uc.SaveAllocations(context.Background(), dealID, dto.SaveAllocationsRequest{
		Allocations: []dto.AllocationPayload{
			alloc("emp-1", "SE", 5000),
			alloc("emp-2", "SE Head", 4999.995),
		},
	})
	assert.NoError(t, err)
}

func TestSaveAllocations_SumaDescuadradaRechazada(t *testing.T) {
	repo := newFakeDealRepo()
	uc := buildDealUC(repo, testEmployee("emp-1"), testEmployee("emp-2"))
	dealID := seedDeal(t, uc, 10000)

	_, err := uc.SaveAllocations(context.Background(), dealID, dto.SaveAllocationsRequest{
		Allocations: []dto.AllocationPayload{
			alloc("emp-1", "SE", 6000),
			alloc("emp-2", "SE Head", 3000),
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la suma debe igualar el pool")
}

func TestSaveAllocations_Validaciones(t *testing.T) {
	repo := newFakeDealRepo()
	uc := buildDealUC(repo, testEmployee("emp-1"))
	dealID := seedDeal(t, uc, 10000)

	// Sin miembros
	_, err := uc.SaveAllocations(context.Background(), dealID, dto.SaveAllocationsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Monto negativo
	_, err = uc.SaveAllocations(context.Background(), dealID, dto.SaveAllocationsRequest{
		Allocations: []dto.AllocationPayload{alloc("emp-1", "SE", -5)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Empleado repetido
	_, err = uc.SaveAllocations(context.Background(), dealID, dto.SaveAllocationsRequest{
		Allocations: []dto.AllocationPayload{
			alloc("emp-1", "SE", 5000),
			alloc("emp-1", "SE Head", 5000),
		},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Empleado inexistente
	_, err = uc.SaveAllocations(context.Background(), dealID, dto.SaveAllocationsRequest{
		Allocations: []dto.AllocationPayload{alloc("ghost", "SE", 10000)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApproveDeal_CongelaElReparto(t *testing.T) {
	repo := newFakeDealRepo()
	uc := buildDealUC(repo, testEmployee("emp-1"))
	dealID := seedDeal(t, uc, 10000)

	// Aprobar antes de asignar se rechaza
	err := uc.ApproveDeal(context.Background(), dealID)
	assert.ErrorIs(t, err, domain.ErrConflict, "requiere fully_allocated")

	_, err = uc.SaveAllocations(context.Background(), dealID, dto.SaveAllocationsRequest{
		Allocations: []dto.AllocationPayload{alloc("emp-1", "SE", 10000)},
	})
	require.NoError(t, err)

	require.NoError(t, uc.ApproveDeal(context.Background(), dealID))

	allocs, err := uc.ListAllocations(dealID)
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, "approved", allocs[0].Status)

	// Deal aprobado queda de solo lectura
	_, err = uc.SaveAllocations(context.Background(), dealID, dto.SaveAllocationsRequest{
		Allocations: []dto.AllocationPayload{alloc("emp-1", "SE", 10000)},
	})
	assert.ErrorIs(t, err, domain.ErrAllocationLocked)
}

func TestRejectDeal_DevuelveAEdicion(t *testing.T) {
	repo := newFakeDealRepo()
	uc := buildDealUC(repo, testEmployee("emp-1"))
	dealID := seedDeal(t, uc, 10000)

	_, err := uc.SaveAllocations(context.Background(), dealID, dto.SaveAllocationsRequest{
		Allocations: []dto.AllocationPayload{alloc("emp-1", "SE", 10000)},
	})
	require.NoError(t, err)

	require.NoError(t, uc.RejectDeal(context.Background(), dealID))

	deal, err := uc.GetDeal(dealID)
	require.NoError(t, err)
	assert.Equal(t, entity.DealRejected, deal.Status)

	// Rechazado no está aprobado: el reparto puede reeditarse
	_, err = uc.SaveAllocations(context.Background(), dealID, dto.SaveAllocationsRequest{
		Allocations: []dto.AllocationPayload{alloc("emp-1", "SE", 10000)},
	})
	assert.NoError(t, err)
}
