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

var _ repository.TargetRepository = (*TargetRepo)(nil)

// TargetRepo implementación del puerto TargetRepository sobre PostgreSQL. Los
// upserts son nativos (INSERT ... ON CONFLICT sobre la clave lógica): la
// constraint de unicidad es la fuente de verdad, no un select previo.
type TargetRepo struct {
	q Querier
}

// NewTargetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTargetRepository(q Querier) *TargetRepo {
	return &TargetRepo{q: q}
}

const userTargetColumns = `id, user_id, plan_id, effective_start_date, effective_end_date,
	target_value_annual, currency, target_bonus_pct, tfp_local, ote_local,
	tfp_usd, target_bonus_usd, ote_usd, created_at, updated_at`

// UpsertUserTarget inserta o actualiza por (user_id, plan_id, effective_start_date).
func (r *TargetRepo) UpsertUserTarget(t *entity.UserTarget) error {
	query := `
		INSERT INTO user_targets (` + userTargetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id, plan_id, effective_start_date) DO UPDATE SET
			effective_end_date = EXCLUDED.effective_end_date,
			target_value_annual = EXCLUDED.target_value_annual,
			currency = EXCLUDED.currency,
			target_bonus_pct = EXCLUDED.target_bonus_pct,
			tfp_local = EXCLUDED.tfp_local,
			ote_local = EXCLUDED.ote_local,
			tfp_usd = EXCLUDED.tfp_usd,
			target_bonus_usd = EXCLUDED.target_bonus_usd,
			ote_usd = EXCLUDED.ote_usd,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.UserID, t.PlanID, t.EffectiveStartDate, t.EffectiveEndDate,
		t.TargetValueAnnual, t.Currency, t.TargetBonusPct, t.TFPLocal, t.OTELocal,
		t.TFPUSD, t.TargetBonusUSD, t.OTEUSD, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user target: %w", err)
	}
	return nil
}

// ListUserTargetsByUser lista las asignaciones de plan de un usuario.
func (r *TargetRepo) ListUserTargetsByUser(userID string) ([]*entity.UserTarget, error) {
	return r.listUserTargets("user_id = $1", userID)
}

// ListUserTargetsByPlan lista las asignaciones de un plan.
func (r *TargetRepo) ListUserTargetsByPlan(planID string) ([]*entity.UserTarget, error) {
	return r.listUserTargets("plan_id = $1", planID)
}

func (r *TargetRepo) listUserTargets(where string, arg any) ([]*entity.UserTarget, error) {
	query := `SELECT ` + userTargetColumns + ` FROM user_targets WHERE ` + where +
		` ORDER BY effective_start_date DESC`
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list user targets: %w", err)
	}
	defer rows.Close()

	var out []*entity.UserTarget
	for rows.Next() {
		var t entity.UserTarget
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.PlanID, &t.EffectiveStartDate, &t.EffectiveEndDate,
			&t.TargetValueAnnual, &t.Currency, &t.TargetBonusPct, &t.TFPLocal, &t.OTELocal,
			&t.TFPUSD, &t.TargetBonusUSD, &t.OTEUSD, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user target: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// DeleteUserTarget elimina una asignación.
func (r *TargetRepo) DeleteUserTarget(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM user_targets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user target: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpsertPerformanceTarget inserta o actualiza por (employee_id, metric_type).
func (r *TargetRepo) UpsertPerformanceTarget(t *entity.PerformanceTarget) error {
	query := `
		INSERT INTO performance_targets (id, employee_id, metric_type, q1_target_usd, q2_target_usd, q3_target_usd, q4_target_usd, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, metric_type) DO UPDATE SET
			q1_target_usd = EXCLUDED.q1_target_usd,
			q2_target_usd = EXCLUDED.q2_target_usd,
			q3_target_usd = EXCLUDED.q3_target_usd,
			q4_target_usd = EXCLUDED.q4_target_usd,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.EmployeeID, t.MetricType, t.Q1TargetUSD, t.Q2TargetUSD, t.Q3TargetUSD, t.Q4TargetUSD,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert performance target: %w", err)
	}
	return nil
}

// GetPerformanceTarget obtiene el objetivo de un empleado para un tipo de métrica.
func (r *TargetRepo) GetPerformanceTarget(employeeID, metricType string) (*entity.PerformanceTarget, error) {
	query := `
		SELECT id, employee_id, metric_type, q1_target_usd, q2_target_usd, q3_target_usd, q4_target_usd, created_at, updated_at
		FROM performance_targets WHERE employee_id = $1 AND metric_type = $2`
	var t entity.PerformanceTarget
	err := r.q.QueryRow(context.Background(), query, employeeID, metricType).Scan(
		&t.ID, &t.EmployeeID, &t.MetricType, &t.Q1TargetUSD, &t.Q2TargetUSD, &t.Q3TargetUSD,
		&t.Q4TargetUSD, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get performance target: %w", err)
	}
	return &t, nil
}

// ListPerformanceTargetsByEmployee lista los objetivos de un empleado.
func (r *TargetRepo) ListPerformanceTargetsByEmployee(employeeID string) ([]*entity.PerformanceTarget, error) {
	query := `
		SELECT id, employee_id, metric_type, q1_target_usd, q2_target_usd, q3_target_usd, q4_target_usd, created_at, updated_at
		FROM performance_targets WHERE employee_id = $1 ORDER BY metric_type`
	rows, err := r.q.Query(context.Background(), query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list performance targets: %w", err)
	}
	defer rows.Close()

	var out []*entity.PerformanceTarget
	for rows.Next() {
		var t entity.PerformanceTarget
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.MetricType, &t.Q1TargetUSD, &t.Q2TargetUSD,
			&t.Q3TargetUSD, &t.Q4TargetUSD, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan performance target: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// DeletePerformanceTarget elimina un objetivo.
func (r *TargetRepo) DeletePerformanceTarget(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM performance_targets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete performance target: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
