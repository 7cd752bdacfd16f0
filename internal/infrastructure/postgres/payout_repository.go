package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/payout"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

var _ repository.PayoutRepository = (*PayoutRepo)(nil)

// PayoutRepo implementación del puerto PayoutRepository sobre PostgreSQL.
// Los detalles (payout_details) los escribe el proceso de cálculo aguas
// arriba; aquí solo se leen.
type PayoutRepo struct {
	q Querier
}

// NewPayoutRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPayoutRepository(q Querier) *PayoutRepo {
	return &PayoutRepo{q: q}
}

// ── Corridas ─────────────────────────────────────────────────────────────────

// CreateRun persiste una corrida.
func (r *PayoutRepo) CreateRun(run *entity.PayoutRun) error {
	query := `
		INSERT INTO payout_runs (id, month_year, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		run.ID, run.MonthYear, run.Status, run.Notes, run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payout run: %w", err)
	}
	return nil
}

// GetRunByID obtiene una corrida por ID.
func (r *PayoutRepo) GetRunByID(id string) (*entity.PayoutRun, error) {
	return r.getRunBy("id = $1", id)
}

// GetRunByMonth obtiene la corrida de un mes ("2025-07").
func (r *PayoutRepo) GetRunByMonth(monthYear string) (*entity.PayoutRun, error) {
	return r.getRunBy("month_year = $1", monthYear)
}

func (r *PayoutRepo) getRunBy(where string, arg any) (*entity.PayoutRun, error) {
	query := `SELECT id, month_year, status, notes, created_at, updated_at FROM payout_runs WHERE ` + where
	var run entity.PayoutRun
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&run.ID, &run.MonthYear, &run.Status, &run.Notes, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payout run: %w", err)
	}
	return &run, nil
}

// ListRuns lista corridas paginadas, más reciente primero.
func (r *PayoutRepo) ListRuns(limit, offset int) ([]*entity.PayoutRun, error) {
	query := `
		SELECT id, month_year, status, notes, created_at, updated_at
		FROM payout_runs ORDER BY month_year DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payout runs: %w", err)
	}
	defer rows.Close()

	var out []*entity.PayoutRun
	for rows.Next() {
		var run entity.PayoutRun
		if err := rows.Scan(&run.ID, &run.MonthYear, &run.Status, &run.Notes, &run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan payout run: %w", err)
		}
		out = append(out, &run)
	}
	return out, rows.Err()
}

// UpdateRunStatus cambia el estado de la corrida.
func (r *PayoutRepo) UpdateRunStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE payout_runs SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Detalles ─────────────────────────────────────────────────────────────────

// ListDetailsByRun lee las filas de detalle precalculadas de la corrida.
func (r *PayoutRepo) ListDetailsByRun(runID string) ([]entity.PayoutDetail, error) {
	query := `
		SELECT id, run_id, employee_id, component_type, metric_name,
			target_usd, actuals_usd, achievement_pct, allocated_ote_usd, multiplier,
			commission_rate_pct, ytd_eligible_usd, eligible_till_last_month_usd,
			incremental_eligible_usd, booking_usd, collection_usd, year_end_usd
		FROM payout_details WHERE run_id = $1`
	rows, err := r.q.Query(context.Background(), query, runID)
	if err != nil {
		return nil, fmt.Errorf("list payout details: %w", err)
	}
	defer rows.Close()

	var out []entity.PayoutDetail
	for rows.Next() {
		var d entity.PayoutDetail
		if err := rows.Scan(
			&d.ID, &d.RunID, &d.EmployeeID, &d.ComponentType, &d.MetricName,
			&d.TargetUSD, &d.ActualsUSD, &d.AchievementPct, &d.AllocatedOTEUSD, &d.Multiplier,
			&d.CommissionRatePct, &d.YTDEligibleUSD, &d.EligibleTillLastMonthUSD,
			&d.IncrementalEligibleUSD, &d.BookingUSD, &d.CollectionUSD, &d.YearEndUSD,
		); err != nil {
			return nil, fmt.Errorf("scan payout detail: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListEmployeeInfoByRun arma la info por empleado para el pivot: código,
// moneda local y bono objetivo USD vigente (la fila de user_targets más
// reciente del usuario ligado por email).
func (r *PayoutRepo) ListEmployeeInfoByRun(runID string) ([]payout.EmployeeInfo, error) {
	query := `
		SELECT e.id, e.employee_id, e.full_name, e.local_currency,
			COALESCE((
				SELECT ut.target_bonus_usd
				FROM user_targets ut
				JOIN users u ON u.id = ut.user_id
				WHERE u.employee_id = e.id
				ORDER BY ut.effective_start_date DESC LIMIT 1
			), 0)
		FROM employees e
		WHERE e.is_active = true
		ORDER BY e.employee_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list employee info: %w", err)
	}
	defer rows.Close()

	var out []payout.EmployeeInfo
	for rows.Next() {
		var info payout.EmployeeInfo
		if err := rows.Scan(&info.EmployeeID, &info.EmployeeCode, &info.FullName,
			&info.LocalCurrency, &info.TargetBonusUSD); err != nil {
			return nil, fmt.Errorf("scan employee info: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// ── Resúmenes ────────────────────────────────────────────────────────────────

// ReplaceSummaries reemplaza los resúmenes por empleado de la corrida.
func (r *PayoutRepo) ReplaceSummaries(runID string, ss []entity.EmployeePayoutSummary) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM employee_payout_summaries WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("delete summaries: %w", err)
	}
	for _, s := range ss {
		_, err := r.q.Exec(ctx, `
			INSERT INTO employee_payout_summaries
				(id, run_id, employee_id, total_payout_usd, current_month_payable_usd,
				 collection_held_usd, year_end_held_usd, local_currency, total_payout_local)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			s.ID, s.RunID, s.EmployeeID, s.TotalPayoutUSD, s.CurrentMonthPayableUSD,
			s.CollectionHeldUSD, s.YearEndHeldUSD, s.LocalCurrency, s.TotalPayoutLocal,
		)
		if err != nil {
			return fmt.Errorf("insert summary: %w", err)
		}
	}
	return nil
}

// ListSummariesByRun lista los resúmenes por empleado de la corrida.
func (r *PayoutRepo) ListSummariesByRun(runID string) ([]entity.EmployeePayoutSummary, error) {
	query := `
		SELECT id, run_id, employee_id, total_payout_usd, current_month_payable_usd,
			collection_held_usd, year_end_held_usd, local_currency, total_payout_local
		FROM employee_payout_summaries WHERE run_id = $1`
	rows, err := r.q.Query(context.Background(), query, runID)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var out []entity.EmployeePayoutSummary
	for rows.Next() {
		var s entity.EmployeePayoutSummary
		if err := rows.Scan(&s.ID, &s.RunID, &s.EmployeeID, &s.TotalPayoutUSD, &s.CurrentMonthPayableUSD,
			&s.CollectionHeldUSD, &s.YearEndHeldUSD, &s.LocalCurrency, &s.TotalPayoutLocal); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ── Ajustes ──────────────────────────────────────────────────────────────────

const adjustmentColumns = `id, run_id, employee_id, type, original_amount_usd, adjustment_amount_usd,
	original_amount_local, adjustment_amount_local, reason, status, created_at, updated_at`

// CreateAdjustment persiste un ajuste.
func (r *PayoutRepo) CreateAdjustment(a *entity.PayoutAdjustment) error {
	query := `
		INSERT INTO payout_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.RunID, a.EmployeeID, a.Type, a.OriginalAmountUSD, a.AdjustmentAmountUSD,
		a.OriginalAmountLocal, a.AdjustmentAmountLocal, a.Reason, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// GetAdjustmentByID obtiene un ajuste por ID.
func (r *PayoutRepo) GetAdjustmentByID(id string) (*entity.PayoutAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM payout_adjustments WHERE id = $1`
	var a entity.PayoutAdjustment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.RunID, &a.EmployeeID, &a.Type, &a.OriginalAmountUSD, &a.AdjustmentAmountUSD,
		&a.OriginalAmountLocal, &a.AdjustmentAmountLocal, &a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return &a, nil
}

// ListAdjustmentsByRun lista los ajustes de una corrida.
func (r *PayoutRepo) ListAdjustmentsByRun(runID string) ([]*entity.PayoutAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM payout_adjustments WHERE run_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, runID)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var out []*entity.PayoutAdjustment
	for rows.Next() {
		var a entity.PayoutAdjustment
		if err := rows.Scan(&a.ID, &a.RunID, &a.EmployeeID, &a.Type, &a.OriginalAmountUSD,
			&a.AdjustmentAmountUSD, &a.OriginalAmountLocal, &a.AdjustmentAmountLocal,
			&a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// UpdateAdjustmentStatus cambia el estado del ajuste.
func (r *PayoutRepo) UpdateAdjustmentStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE payout_adjustments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update adjustment status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAdjustment elimina un ajuste.
func (r *PayoutRepo) DeleteAdjustment(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM payout_adjustments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete adjustment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
