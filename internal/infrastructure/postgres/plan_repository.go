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

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implementación del puerto PlanRepository sobre PostgreSQL (usable
// con pool o tx; la cascada de copiado lo usa atado a una transacción).
type PlanRepo struct {
	q Querier
}

// NewPlanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// ── Planes ────────────────────────────────────────────────────────────────────

// CreatePlan persiste un plan.
func (r *PlanRepo) CreatePlan(p *entity.CompPlan) error {
	query := `
		INSERT INTO comp_plans (id, name, description, is_active, effective_year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Description, p.IsActive, p.EffectiveYear, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetPlanByID obtiene un plan por ID.
func (r *PlanRepo) GetPlanByID(id string) (*entity.CompPlan, error) {
	query := `
		SELECT id, name, description, is_active, effective_year, created_at, updated_at
		FROM comp_plans WHERE id = $1`
	var p entity.CompPlan
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.IsActive, &p.EffectiveYear, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// GetPlanByNameAndYear obtiene un plan por nombre y año efectivo. Si el copiado
// generó más de uno, devuelve el más reciente.
func (r *PlanRepo) GetPlanByNameAndYear(name string, year int) (*entity.CompPlan, error) {
	query := `
		SELECT id, name, description, is_active, effective_year, created_at, updated_at
		FROM comp_plans WHERE name = $1 AND effective_year = $2
		ORDER BY created_at DESC LIMIT 1`
	var p entity.CompPlan
	err := r.q.QueryRow(context.Background(), query, name, year).Scan(
		&p.ID, &p.Name, &p.Description, &p.IsActive, &p.EffectiveYear, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan by name/year: %w", err)
	}
	return &p, nil
}

// ListPlans lista planes, filtrando por año si year != 0.
func (r *PlanRepo) ListPlans(year int) ([]*entity.CompPlan, error) {
	query := `
		SELECT id, name, description, is_active, effective_year, created_at, updated_at
		FROM comp_plans`
	args := []any{}
	if year != 0 {
		query += ` WHERE effective_year = $1`
		args = append(args, year)
	}
	query += ` ORDER BY effective_year DESC, name`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var out []*entity.CompPlan
	for rows.Next() {
		var p entity.CompPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.IsActive, &p.EffectiveYear, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// ListPlanYears lista los años efectivos con al menos un plan, descendente.
func (r *PlanRepo) ListPlanYears() ([]int, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT effective_year FROM comp_plans ORDER BY effective_year DESC`)
	if err != nil {
		return nil, fmt.Errorf("list plan years: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan plan year: %w", err)
		}
		out = append(out, y)
	}
	return out, rows.Err()
}

// UpdatePlan actualiza un plan.
func (r *PlanRepo) UpdatePlan(p *entity.CompPlan) error {
	query := `
		UPDATE comp_plans SET name = $2, description = $3, is_active = $4, effective_year = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Description, p.IsActive, p.EffectiveYear, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Métricas ─────────────────────────────────────────────────────────────────

// CreateMetric persiste una métrica.
func (r *PlanRepo) CreateMetric(m *entity.PlanMetric) error {
	query := `
		INSERT INTO plan_metrics (id, plan_id, metric_name, weightage_pct, logic_type, gate_threshold_pct, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.PlanID, m.MetricName, m.WeightagePct, m.LogicType, m.GateThresholdPct,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert metric: %w", err)
	}
	return nil
}

// GetMetricByID obtiene una métrica por ID.
func (r *PlanRepo) GetMetricByID(id string) (*entity.PlanMetric, error) {
	query := `
		SELECT id, plan_id, metric_name, weightage_pct, logic_type, gate_threshold_pct, created_at, updated_at
		FROM plan_metrics WHERE id = $1`
	var m entity.PlanMetric
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.PlanID, &m.MetricName, &m.WeightagePct, &m.LogicType, &m.GateThresholdPct,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get metric: %w", err)
	}
	return &m, nil
}

// ListMetricsByPlan lista las métricas de un plan.
func (r *PlanRepo) ListMetricsByPlan(planID string) ([]*entity.PlanMetric, error) {
	query := `
		SELECT id, plan_id, metric_name, weightage_pct, logic_type, gate_threshold_pct, created_at, updated_at
		FROM plan_metrics WHERE plan_id = $1 ORDER BY metric_name`
	rows, err := r.q.Query(context.Background(), query, planID)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	defer rows.Close()

	var out []*entity.PlanMetric
	for rows.Next() {
		var m entity.PlanMetric
		if err := rows.Scan(&m.ID, &m.PlanID, &m.MetricName, &m.WeightagePct, &m.LogicType,
			&m.GateThresholdPct, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan metric: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// UpdateMetric actualiza una métrica.
func (r *PlanRepo) UpdateMetric(m *entity.PlanMetric) error {
	query := `
		UPDATE plan_metrics SET metric_name = $2, weightage_pct = $3, logic_type = $4,
			gate_threshold_pct = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		m.ID, m.MetricName, m.WeightagePct, m.LogicType, m.GateThresholdPct, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update metric: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteMetric elimina la métrica; su grilla cae por FK ON DELETE CASCADE.
func (r *PlanRepo) DeleteMetric(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM plan_metrics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete metric: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Grillas ──────────────────────────────────────────────────────────────────

// ReplaceTiers reemplaza la grilla completa de la métrica (delete + insert).
func (r *PlanRepo) ReplaceTiers(metricID string, tiers []entity.MultiplierTier) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM multiplier_tiers WHERE metric_id = $1`, metricID); err != nil {
		return fmt.Errorf("delete tiers: %w", err)
	}
	for _, t := range tiers {
		_, err := r.q.Exec(ctx, `
			INSERT INTO multiplier_tiers (id, metric_id, min_pct, max_pct, multiplier_value)
			VALUES ($1, $2, $3, $4, $5)`,
			t.ID, t.MetricID, t.MinPct, t.MaxPct, t.MultiplierValue,
		)
		if err != nil {
			return fmt.Errorf("insert tier: %w", err)
		}
	}
	return nil
}

// ListTiersByMetric lista la grilla de una métrica ordenada por min_pct.
func (r *PlanRepo) ListTiersByMetric(metricID string) ([]entity.MultiplierTier, error) {
	query := `
		SELECT id, metric_id, min_pct, max_pct, multiplier_value
		FROM multiplier_tiers WHERE metric_id = $1 ORDER BY min_pct`
	rows, err := r.q.Query(context.Background(), query, metricID)
	if err != nil {
		return nil, fmt.Errorf("list tiers: %w", err)
	}
	defer rows.Close()

	var out []entity.MultiplierTier
	for rows.Next() {
		var t entity.MultiplierTier
		if err := rows.Scan(&t.ID, &t.MetricID, &t.MinPct, &t.MaxPct, &t.MultiplierValue); err != nil {
			return nil, fmt.Errorf("scan tier: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ── Comisiones ───────────────────────────────────────────────────────────────

const commissionColumns = `id, plan_id, commission_type, rate_pct, min_threshold_usd,
	payout_on_booking_pct, payout_on_collection_pct, is_active, created_at, updated_at`

// CreateCommission persiste una comisión del plan.
func (r *PlanRepo) CreateCommission(c *entity.PlanCommission) error {
	query := `
		INSERT INTO plan_commissions (` + commissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.PlanID, c.CommissionType, c.RatePct, c.MinThresholdUSD,
		c.PayoutOnBookingPct, c.PayoutOnCollectionPct, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert commission: %w", err)
	}
	return nil
}

// GetCommissionByID obtiene una comisión por ID.
func (r *PlanRepo) GetCommissionByID(id string) (*entity.PlanCommission, error) {
	return r.getCommissionBy("id = $1", id)
}

// GetCommissionByType obtiene la comisión de un plan por tipo.
func (r *PlanRepo) GetCommissionByType(planID, commissionType string) (*entity.PlanCommission, error) {
	query := `SELECT ` + commissionColumns + ` FROM plan_commissions WHERE plan_id = $1 AND commission_type = $2`
	var c entity.PlanCommission
	err := r.q.QueryRow(context.Background(), query, planID, commissionType).Scan(
		&c.ID, &c.PlanID, &c.CommissionType, &c.RatePct, &c.MinThresholdUSD,
		&c.PayoutOnBookingPct, &c.PayoutOnCollectionPct, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission by type: %w", err)
	}
	return &c, nil
}

func (r *PlanRepo) getCommissionBy(where string, arg any) (*entity.PlanCommission, error) {
	query := `SELECT ` + commissionColumns + ` FROM plan_commissions WHERE ` + where
	var c entity.PlanCommission
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.PlanID, &c.CommissionType, &c.RatePct, &c.MinThresholdUSD,
		&c.PayoutOnBookingPct, &c.PayoutOnCollectionPct, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission: %w", err)
	}
	return &c, nil
}

// ListCommissionsByPlan lista las comisiones de un plan.
func (r *PlanRepo) ListCommissionsByPlan(planID string) ([]*entity.PlanCommission, error) {
	query := `SELECT ` + commissionColumns + ` FROM plan_commissions WHERE plan_id = $1 ORDER BY commission_type`
	rows, err := r.q.Query(context.Background(), query, planID)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	defer rows.Close()

	var out []*entity.PlanCommission
	for rows.Next() {
		var c entity.PlanCommission
		if err := rows.Scan(&c.ID, &c.PlanID, &c.CommissionType, &c.RatePct, &c.MinThresholdUSD,
			&c.PayoutOnBookingPct, &c.PayoutOnCollectionPct, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan commission: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// UpdateCommission actualiza una comisión.
func (r *PlanRepo) UpdateCommission(c *entity.PlanCommission) error {
	query := `
		UPDATE plan_commissions SET commission_type = $2, rate_pct = $3, min_threshold_usd = $4,
			payout_on_booking_pct = $5, payout_on_collection_pct = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		c.ID, c.CommissionType, c.RatePct, c.MinThresholdUSD,
		c.PayoutOnBookingPct, c.PayoutOnCollectionPct, c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update commission: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteCommission elimina una comisión.
func (r *PlanRepo) DeleteCommission(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM plan_commissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete commission: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// BulkInsertCommissions inserta varias comisiones en un solo viaje (copiado de planes).
func (r *PlanRepo) BulkInsertCommissions(cs []*entity.PlanCommission) error {
	ctx := context.Background()
	for _, c := range cs {
		query := `
			INSERT INTO plan_commissions (` + commissionColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		if _, err := r.q.Exec(ctx, query,
			c.ID, c.PlanID, c.CommissionType, c.RatePct, c.MinThresholdUSD,
			c.PayoutOnBookingPct, c.PayoutOnCollectionPct, c.IsActive, c.CreatedAt, c.UpdatedAt,
		); err != nil {
			return fmt.Errorf("bulk insert commission: %w", err)
		}
	}
	return nil
}

// ── SPIFFs ───────────────────────────────────────────────────────────────────

const spiffColumns = `id, plan_id, spiff_name, linked_metric_name, rate_pct, min_deal_value_usd, is_active, created_at, updated_at`

// CreateSpiff persiste un SPIFF.
func (r *PlanRepo) CreateSpiff(s *entity.PlanSpiff) error {
	query := `
		INSERT INTO plan_spiffs (` + spiffColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.PlanID, s.SpiffName, s.LinkedMetricName, s.RatePct, s.MinDealValueUSD,
		s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert spiff: %w", err)
	}
	return nil
}

// GetSpiffByID obtiene un SPIFF por ID.
func (r *PlanRepo) GetSpiffByID(id string) (*entity.PlanSpiff, error) {
	query := `SELECT ` + spiffColumns + ` FROM plan_spiffs WHERE id = $1`
	var s entity.PlanSpiff
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.PlanID, &s.SpiffName, &s.LinkedMetricName, &s.RatePct, &s.MinDealValueUSD,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get spiff: %w", err)
	}
	return &s, nil
}

// ListSpiffsByPlan lista los SPIFFs de un plan.
func (r *PlanRepo) ListSpiffsByPlan(planID string) ([]*entity.PlanSpiff, error) {
	query := `SELECT ` + spiffColumns + ` FROM plan_spiffs WHERE plan_id = $1 ORDER BY spiff_name`
	rows, err := r.q.Query(context.Background(), query, planID)
	if err != nil {
		return nil, fmt.Errorf("list spiffs: %w", err)
	}
	defer rows.Close()

	var out []*entity.PlanSpiff
	for rows.Next() {
		var s entity.PlanSpiff
		if err := rows.Scan(&s.ID, &s.PlanID, &s.SpiffName, &s.LinkedMetricName, &s.RatePct,
			&s.MinDealValueUSD, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan spiff: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// UpdateSpiff actualiza un SPIFF.
func (r *PlanRepo) UpdateSpiff(s *entity.PlanSpiff) error {
	query := `
		UPDATE plan_spiffs SET spiff_name = $2, linked_metric_name = $3, rate_pct = $4,
			min_deal_value_usd = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		s.ID, s.SpiffName, s.LinkedMetricName, s.RatePct, s.MinDealValueUSD, s.IsActive, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update spiff: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteSpiff elimina un SPIFF.
func (r *PlanRepo) DeleteSpiff(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM plan_spiffs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete spiff: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
