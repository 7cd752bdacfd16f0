package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

var _ repository.DealRepository = (*DealRepo)(nil)

const dealColumns = `id, deal_name, customer_name, deal_value_usd, spiff_pool_usd, close_date, status, created_at, updated_at`

const allocationColumns = `id, deal_id, employee_id, member_role, amount_usd, status, created_at, updated_at`

// DealRepo implementación del puerto DealRepository sobre PostgreSQL.
type DealRepo struct {
	q Querier
}

func NewDealRepository(q Querier) *DealRepo {
	return &DealRepo{q: q}
}

// CreateDeal persiste un deal.
func (r *DealRepo) CreateDeal(d *entity.Deal) error {
	query := `
		INSERT INTO deals (` + dealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.DealName, d.CustomerName, d.DealValueUSD, d.SpiffPoolUSD,
		d.CloseDate, d.Status, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

// GetDealByID obtiene un deal por ID.
func (r *DealRepo) GetDealByID(id string) (*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`
	var d entity.Deal
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.DealName, &d.CustomerName, &d.DealValueUSD, &d.SpiffPoolUSD,
		&d.CloseDate, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deal: %w", err)
	}
	return &d, nil
}

// ListDeals lista los deals más recientes primero.
func (r *DealRepo) ListDeals(limit, offset int) ([]*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals ORDER BY close_date DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()

	var out []*entity.Deal
	for rows.Next() {
		var d entity.Deal
		if err := rows.Scan(&d.ID, &d.DealName, &d.CustomerName, &d.DealValueUSD, &d.SpiffPoolUSD,
			&d.CloseDate, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// UpdateDealStatus cambia el estado del deal.
func (r *DealRepo) UpdateDealStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE deals SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update deal status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceAllocations reemplaza todas las asignaciones del deal. El caso de uso
// garantiza que la suma cuadra con el pool antes de llamar aquí.
func (r *DealRepo) ReplaceAllocations(dealID string, allocs []entity.DealTeamSpiffAllocation) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`DELETE FROM deal_team_spiff_allocations WHERE deal_id = $1`, dealID); err != nil {
		return fmt.Errorf("delete allocations: %w", err)
	}
	query := `
		INSERT INTO deal_team_spiff_allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, a := range allocs {
		if _, err := r.q.Exec(ctx, query,
			a.ID, a.DealID, a.EmployeeID, a.MemberRole, a.AmountUSD,
			a.Status, a.CreatedAt, a.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert allocation: %w", err)
		}
	}
	return nil
}

// ListAllocationsByDeal lista las asignaciones de un deal.
func (r *DealRepo) ListAllocationsByDeal(dealID string) ([]entity.DealTeamSpiffAllocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM deal_team_spiff_allocations WHERE deal_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, dealID)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()

	var out []entity.DealTeamSpiffAllocation
	for rows.Next() {
		var a entity.DealTeamSpiffAllocation
		if err := rows.Scan(&a.ID, &a.DealID, &a.EmployeeID, &a.MemberRole, &a.AmountUSD,
			&a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateAllocationsStatus cambia el estado de todas las asignaciones del deal.
func (r *DealRepo) UpdateAllocationsStatus(dealID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE deal_team_spiff_allocations SET status = $2, updated_at = NOW() WHERE deal_id = $1`,
		dealID, status)
	if err != nil {
		return fmt.Errorf("update allocations status: %w", err)
	}
	return nil
}
