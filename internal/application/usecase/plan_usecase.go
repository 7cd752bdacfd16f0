package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	domplan "github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/plan"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// hundred cota superior de las tasas porcentuales.
var hundred = decimal.NewFromInt(100)

// PlanUseCase casos de uso del agregado de planes: plan, métricas con su
// grilla de multiplicadores, comisiones y SPIFFs.
type PlanUseCase struct {
	repo repository.PlanRepository
	bus  ports.CacheBus
}

// NewPlanUseCase construye el caso de uso.
func NewPlanUseCase(repo repository.PlanRepository, bus ports.CacheBus) *PlanUseCase {
	return &PlanUseCase{repo: repo, bus: bus}
}

// ── Planes ────────────────────────────────────────────────────────────────────

// CreatePlan crea un plan. Nombre único por año efectivo.
func (uc *PlanUseCase) CreatePlan(ctx context.Context, in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if in.Name == "" || in.EffectiveYear == 0 {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetPlanByNameAndYear(in.Name, in.EffectiveYear); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	active := false
	if in.IsActive != nil {
		active = *in.IsActive
	}
	p := &entity.CompPlan{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		IsActive:      active,
		EffectiveYear: in.EffectiveYear,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.CreatePlan(p); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityPlans, p.ID)
	return toPlanResponse(p), nil
}

// GetPlanByID obtiene un plan.
func (uc *PlanUseCase) GetPlanByID(id string) (*dto.PlanResponse, error) {
	p, err := uc.repo.GetPlanByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toPlanResponse(p), nil
}

// ListPlans lista planes, opcionalmente por año (0 = todos).
func (uc *PlanUseCase) ListPlans(year int) ([]dto.PlanResponse, error) {
	list, err := uc.repo.ListPlans(year)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPlanResponse(p))
	}
	return items, nil
}

// ListPlanYears lista los años efectivos existentes.
func (uc *PlanUseCase) ListPlanYears() ([]int, error) {
	return uc.repo.ListPlanYears()
}

// UpdatePlan actualiza un plan.
func (uc *PlanUseCase) UpdatePlan(ctx context.Context, id string, in dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	p, err := uc.repo.GetPlanByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.EffectiveYear != nil {
		p.EffectiveYear = *in.EffectiveYear
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.UpdatePlan(p); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityPlans, p.ID)
	return toPlanResponse(p), nil
}

// ── Métricas y grillas ───────────────────────────────────────────────────────

// CreateMetric crea una métrica con su grilla. Si no llegan bandas, se siembra
// la grilla por defecto del tipo de lógica. La grilla se valida siempre antes
// de tocar la persistencia.
func (uc *PlanUseCase) CreateMetric(ctx context.Context, planID string, in dto.SaveMetricRequest) (*dto.MetricResponse, error) {
	p, err := uc.repo.GetPlanByID(planID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.LogicType != entity.LogicSteppedAccelerator && in.LogicType != entity.LogicGatedThreshold {
		return nil, domain.ErrInvalidInput
	}

	tiers := tiersFromPayload(in.Tiers)
	if len(tiers) == 0 {
		tiers = domplan.DefaultGrid(in.LogicType)
	}
	if err := domplan.ValidateGrid(tiers); err != nil {
		return nil, err
	}

	now := time.Now()
	m := &entity.PlanMetric{
		ID:               uuid.New().String(),
		PlanID:           planID,
		MetricName:       in.MetricName,
		WeightagePct:     in.WeightagePct,
		LogicType:        in.LogicType,
		GateThresholdPct: in.GateThresholdPct,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.CreateMetric(m); err != nil {
		return nil, err
	}
	for i := range tiers {
		tiers[i].ID = uuid.New().String()
		tiers[i].MetricID = m.ID
	}
	if err := uc.repo.ReplaceTiers(m.ID, tiers); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityPlans, planID)
	return toMetricResponse(m, tiers), nil
}

// UpdateMetric actualiza la métrica y reemplaza su grilla completa. La grilla
// candidata se valida antes del guardado.
func (uc *PlanUseCase) UpdateMetric(ctx context.Context, metricID string, in dto.SaveMetricRequest) (*dto.MetricResponse, error) {
	m, err := uc.repo.GetMetricByID(metricID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	tiers := tiersFromPayload(in.Tiers)
	if err := domplan.ValidateGrid(tiers); err != nil {
		return nil, err
	}
	if in.MetricName != "" {
		m.MetricName = in.MetricName
	}
	if in.LogicType != "" {
		if in.LogicType != entity.LogicSteppedAccelerator && in.LogicType != entity.LogicGatedThreshold {
			return nil, domain.ErrInvalidInput
		}
		m.LogicType = in.LogicType
	}
	m.WeightagePct = in.WeightagePct
	m.GateThresholdPct = in.GateThresholdPct
	m.UpdatedAt = time.Now()
	if err := uc.repo.UpdateMetric(m); err != nil {
		return nil, err
	}
	for i := range tiers {
		tiers[i].ID = uuid.New().String()
		tiers[i].MetricID = m.ID
	}
	if err := uc.repo.ReplaceTiers(m.ID, tiers); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityPlans, m.PlanID)
	return toMetricResponse(m, tiers), nil
}

// ListMetrics lista las métricas de un plan con sus grillas.
func (uc *PlanUseCase) ListMetrics(planID string) ([]dto.MetricResponse, error) {
	metrics, err := uc.repo.ListMetricsByPlan(planID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MetricResponse, 0, len(metrics))
	for _, m := range metrics {
		tiers, err := uc.repo.ListTiersByMetric(m.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toMetricResponse(m, tiers))
	}
	return items, nil
}

// DeleteMetric elimina una métrica (y su grilla, por cascada en persistencia).
func (uc *PlanUseCase) DeleteMetric(ctx context.Context, metricID string) error {
	m, err := uc.repo.GetMetricByID(metricID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.DeleteMetric(metricID); err != nil {
		return err
	}
	uc.bus.PublishChange(ctx, ports.EntityPlans, m.PlanID)
	return nil
}

// ── Comisiones ───────────────────────────────────────────────────────────────

// CreateCommission crea una comisión del plan. commission_type único dentro
// del plan y tasa en [0,100]; ambos se verifican antes de cualquier insert.
func (uc *PlanUseCase) CreateCommission(ctx context.Context, planID string, in dto.CommissionRequest) (*dto.CommissionResponse, error) {
	if in.CommissionType == "" || in.RatePct.IsNegative() || in.RatePct.GreaterThan(hundred) {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.repo.GetPlanByID(planID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if existing, _ := uc.repo.GetCommissionByType(planID, in.CommissionType); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	c := &entity.PlanCommission{
		ID:                    uuid.New().String(),
		PlanID:                planID,
		CommissionType:        in.CommissionType,
		RatePct:               in.RatePct,
		MinThresholdUSD:       in.MinThresholdUSD,
		PayoutOnBookingPct:    in.PayoutOnBookingPct,
		PayoutOnCollectionPct: in.PayoutOnCollectionPct,
		IsActive:              active,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.repo.CreateCommission(c); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityPlans, planID)
	return toCommissionResponse(c), nil
}

// UpdateCommission actualiza una comisión. Cambiar el tipo a uno ya usado por
// otra comisión del mismo plan se rechaza antes de guardar.
func (uc *PlanUseCase) UpdateCommission(ctx context.Context, id string, in dto.CommissionRequest) (*dto.CommissionResponse, error) {
	c, err := uc.repo.GetCommissionByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	if in.RatePct.IsNegative() || in.RatePct.GreaterThan(hundred) {
		return nil, domain.ErrInvalidInput
	}
	if in.CommissionType != "" && in.CommissionType != c.CommissionType {
		if existing, _ := uc.repo.GetCommissionByType(c.PlanID, in.CommissionType); existing != nil {
			return nil, domain.ErrDuplicate
		}
		c.CommissionType = in.CommissionType
	}
	c.RatePct = in.RatePct
	c.MinThresholdUSD = in.MinThresholdUSD
	c.PayoutOnBookingPct = in.PayoutOnBookingPct
	c.PayoutOnCollectionPct = in.PayoutOnCollectionPct
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.UpdateCommission(c); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityPlans, c.PlanID)
	return toCommissionResponse(c), nil
}

// ListCommissions lista las comisiones de un plan.
func (uc *PlanUseCase) ListCommissions(planID string) ([]dto.CommissionResponse, error) {
	list, err := uc.repo.ListCommissionsByPlan(planID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CommissionResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCommissionResponse(c))
	}
	return items, nil
}

// DeleteCommission elimina una comisión del plan.
func (uc *PlanUseCase) DeleteCommission(ctx context.Context, planID, id string) error {
	if err := uc.repo.DeleteCommission(id); err != nil {
		return err
	}
	uc.bus.PublishChange(ctx, ports.EntityPlans, planID)
	return nil
}

// ── SPIFFs ───────────────────────────────────────────────────────────────────

// CreateSpiff crea un SPIFF. LinkedMetricName debe referir una métrica
// existente del plan.
func (uc *PlanUseCase) CreateSpiff(ctx context.Context, planID string, in dto.SpiffRequest) (*dto.SpiffResponse, error) {
	if in.SpiffName == "" || in.LinkedMetricName == "" {
		return nil, domain.ErrInvalidInput
	}
	metrics, err := uc.repo.ListMetricsByPlan(planID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, m := range metrics {
		if m.MetricName == in.LinkedMetricName {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	s := &entity.PlanSpiff{
		ID:               uuid.New().String(),
		PlanID:           planID,
		SpiffName:        in.SpiffName,
		LinkedMetricName: in.LinkedMetricName,
		RatePct:          in.RatePct,
		MinDealValueUSD:  in.MinDealValueUSD,
		IsActive:         active,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.CreateSpiff(s); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityPlans, planID)
	return toSpiffResponse(s), nil
}

// ListSpiffs lista los SPIFFs de un plan.
func (uc *PlanUseCase) ListSpiffs(planID string) ([]dto.SpiffResponse, error) {
	list, err := uc.repo.ListSpiffsByPlan(planID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SpiffResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSpiffResponse(s))
	}
	return items, nil
}

// DeleteSpiff elimina un SPIFF del plan.
func (uc *PlanUseCase) DeleteSpiff(ctx context.Context, planID, id string) error {
	if err := uc.repo.DeleteSpiff(id); err != nil {
		return err
	}
	uc.bus.PublishChange(ctx, ports.EntityPlans, planID)
	return nil
}

// ── Mapeos ───────────────────────────────────────────────────────────────────

func toPlanResponse(p *entity.CompPlan) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		IsActive:      p.IsActive,
		EffectiveYear: p.EffectiveYear,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toMetricResponse(m *entity.PlanMetric, tiers []entity.MultiplierTier) *dto.MetricResponse {
	payload := make([]dto.TierPayload, 0, len(tiers))
	for _, t := range tiers {
		payload = append(payload, dto.TierPayload{
			MinPct:          t.MinPct,
			MaxPct:          t.MaxPct,
			MultiplierValue: t.MultiplierValue,
		})
	}
	return &dto.MetricResponse{
		ID:               m.ID,
		PlanID:           m.PlanID,
		MetricName:       m.MetricName,
		WeightagePct:     m.WeightagePct,
		LogicType:        m.LogicType,
		GateThresholdPct: m.GateThresholdPct,
		Tiers:            payload,
	}
}

func toCommissionResponse(c *entity.PlanCommission) *dto.CommissionResponse {
	return &dto.CommissionResponse{
		ID:                    c.ID,
		PlanID:                c.PlanID,
		CommissionType:        c.CommissionType,
		RatePct:               c.RatePct,
		MinThresholdUSD:       c.MinThresholdUSD,
		PayoutOnBookingPct:    c.PayoutOnBookingPct,
		PayoutOnCollectionPct: c.PayoutOnCollectionPct,
		IsActive:              c.IsActive,
	}
}

func toSpiffResponse(s *entity.PlanSpiff) *dto.SpiffResponse {
	return &dto.SpiffResponse{
		ID:               s.ID,
		PlanID:           s.PlanID,
		SpiffName:        s.SpiffName,
		LinkedMetricName: s.LinkedMetricName,
		RatePct:          s.RatePct,
		MinDealValueUSD:  s.MinDealValueUSD,
		IsActive:         s.IsActive,
	}
}

func tiersFromPayload(in []dto.TierPayload) []entity.MultiplierTier {
	tiers := make([]entity.MultiplierTier, 0, len(in))
	for _, t := range in {
		tiers = append(tiers, entity.MultiplierTier{
			MinPct:          t.MinPct,
			MaxPct:          t.MaxPct,
			MultiplierValue: t.MultiplierValue,
		})
	}
	return tiers
}
