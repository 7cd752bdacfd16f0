package plans_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/plans"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// fakePlanRepo repositorio de planes en memoria para los tests de copiado.
type fakePlanRepo struct {
	plans       map[string]*entity.CompPlan
	metrics     map[string]*entity.PlanMetric
	tiers       map[string][]entity.MultiplierTier // metricID → grilla
	commissions map[string]*entity.PlanCommission
	spiffs      map[string]*entity.PlanSpiff

	failOnSpiff bool // fuerza un error a mitad de cascada
}

var _ repository.PlanRepository = (*fakePlanRepo)(nil)

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{
		plans:       make(map[string]*entity.CompPlan),
		metrics:     make(map[string]*entity.PlanMetric),
		tiers:       make(map[string][]entity.MultiplierTier),
		commissions: make(map[string]*entity.PlanCommission),
		spiffs:      make(map[string]*entity.PlanSpiff),
	}
}

func (f *fakePlanRepo) CreatePlan(p *entity.CompPlan) error { f.plans[p.ID] = p; return nil }
func (f *fakePlanRepo) GetPlanByID(id string) (*entity.CompPlan, error) {
	return f.plans[id], nil
}
func (f *fakePlanRepo) GetPlanByNameAndYear(name string, year int) (*entity.CompPlan, error) {
	for _, p := range f.plans {
		if p.Name == name && p.EffectiveYear == year {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakePlanRepo) ListPlans(year int) ([]*entity.CompPlan, error) {
	var out []*entity.CompPlan
	for _, p := range f.plans {
		if year == 0 || p.EffectiveYear == year {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakePlanRepo) ListPlanYears() ([]int, error)        { return nil, nil }
func (f *fakePlanRepo) UpdatePlan(p *entity.CompPlan) error  { f.plans[p.ID] = p; return nil }
func (f *fakePlanRepo) CreateMetric(m *entity.PlanMetric) error {
	f.metrics[m.ID] = m
	return nil
}
func (f *fakePlanRepo) GetMetricByID(id string) (*entity.PlanMetric, error) {
	return f.metrics[id], nil
}
func (f *fakePlanRepo) ListMetricsByPlan(planID string) ([]*entity.PlanMetric, error) {
	var out []*entity.PlanMetric
	for _, m := range f.metrics {
		if m.PlanID == planID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (f *fakePlanRepo) UpdateMetric(m *entity.PlanMetric) error { f.metrics[m.ID] = m; return nil }
func (f *fakePlanRepo) DeleteMetric(id string) error            { delete(f.metrics, id); return nil }
func (f *fakePlanRepo) ReplaceTiers(metricID string, tiers []entity.MultiplierTier) error {
	f.tiers[metricID] = tiers
	return nil
}
func (f *fakePlanRepo) ListTiersByMetric(metricID string) ([]entity.MultiplierTier, error) {
	return f.tiers[metricID], nil
}
func (f *fakePlanRepo) CreateCommission(c *entity.PlanCommission) error {
	f.commissions[c.ID] = c
	return nil
}
func (f *fakePlanRepo) GetCommissionByID(id string) (*entity.PlanCommission, error) {
	return f.commissions[id], nil
}
func (f *fakePlanRepo) GetCommissionByType(planID, commissionType string) (*entity.PlanCommission, error) {
	for _, c := range f.commissions {
		if c.PlanID == planID && c.CommissionType == commissionType {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakePlanRepo) ListCommissionsByPlan(planID string) ([]*entity.PlanCommission, error) {
	var out []*entity.PlanCommission
	for _, c := range f.commissions {
		if c.PlanID == planID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakePlanRepo) UpdateCommission(c *entity.PlanCommission) error {
	f.commissions[c.ID] = c
	return nil
}
func (f *fakePlanRepo) DeleteCommission(id string) error { delete(f.commissions, id); return nil }
func (f *fakePlanRepo) BulkInsertCommissions(cs []*entity.PlanCommission) error {
	for _, c := range cs {
		f.commissions[c.ID] = c
	}
	return nil
}
func (f *fakePlanRepo) CreateSpiff(s *entity.PlanSpiff) error {
	if f.failOnSpiff {
		return errors.New("insert spiff: conexión perdida")
	}
	f.spiffs[s.ID] = s
	return nil
}
func (f *fakePlanRepo) GetSpiffByID(id string) (*entity.PlanSpiff, error) { return f.spiffs[id], nil }
func (f *fakePlanRepo) ListSpiffsByPlan(planID string) ([]*entity.PlanSpiff, error) {
	var out []*entity.PlanSpiff
	for _, s := range f.spiffs {
		if s.PlanID == planID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakePlanRepo) UpdateSpiff(s *entity.PlanSpiff) error { f.spiffs[s.ID] = s; return nil }
func (f *fakePlanRepo) DeleteSpiff(id string) error           { delete(f.spiffs, id); return nil }

// fakeTxRunner simula la semántica transaccional: toma una instantánea del
// estado y la restaura si fn devuelve error.
type fakeTxRunner struct {
	repo *fakePlanRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.PlanRepository) error) error {
	snapPlans := cloneMap(r.repo.plans)
	snapMetrics := cloneMap(r.repo.metrics)
	snapCommissions := cloneMap(r.repo.commissions)
	snapSpiffs := cloneMap(r.repo.spiffs)
	snapTiers := make(map[string][]entity.MultiplierTier, len(r.repo.tiers))
	for k, v := range r.repo.tiers {
		snapTiers[k] = append([]entity.MultiplierTier(nil), v...)
	}
	if err := fn(r.repo); err != nil {
		r.repo.plans = snapPlans
		r.repo.metrics = snapMetrics
		r.repo.commissions = snapCommissions
		r.repo.spiffs = snapSpiffs
		r.repo.tiers = snapTiers
		return err
	}
	return nil
}

func cloneMap[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// seedSourcePlan arma un plan 2025 completo: 2 métricas con grilla, 1 comisión
// y 1 SPIFF.
func seedSourcePlan(repo *fakePlanRepo) *entity.CompPlan {
	src := &entity.CompPlan{ID: "plan-2025", Name: "Enterprise AE", EffectiveYear: 2025, IsActive: true}
	repo.plans[src.ID] = src
	repo.metrics["m1"] = &entity.PlanMetric{ID: "m1", PlanID: src.ID, MetricName: "New Software Booking", LogicType: entity.LogicSteppedAccelerator, WeightagePct: decimal.NewFromInt(60)}
	repo.metrics["m2"] = &entity.PlanMetric{ID: "m2", PlanID: src.ID, MetricName: "Services Revenue", LogicType: entity.LogicGatedThreshold, WeightagePct: decimal.NewFromInt(40)}
	repo.tiers["m1"] = []entity.MultiplierTier{
		{ID: "t1", MetricID: "m1", MinPct: decimal.Zero, MaxPct: decimal.NewFromInt(100), MultiplierValue: decimal.NewFromInt(1)},
		{ID: "t2", MetricID: "m1", MinPct: decimal.NewFromInt(100), MaxPct: decimal.NewFromInt(200), MultiplierValue: decimal.NewFromFloat(1.5)},
	}
	repo.tiers["m2"] = []entity.MultiplierTier{
		{ID: "t3", MetricID: "m2", MinPct: decimal.Zero, MaxPct: decimal.NewFromInt(200), MultiplierValue: decimal.NewFromInt(1)},
	}
	repo.commissions["c1"] = &entity.PlanCommission{ID: "c1", PlanID: src.ID, CommissionType: "managed_services", RatePct: decimal.NewFromInt(2)}
	repo.spiffs["s1"] = &entity.PlanSpiff{ID: "s1", PlanID: src.ID, SpiffName: "Q4 Push", LinkedMetricName: "New Software Booking", RatePct: decimal.NewFromInt(1)}
	return src
}

func TestCopyPlans_CascadaCompleta(t *testing.T) {
	repo := newFakePlanRepo()
	src := seedSourcePlan(repo)
	uc := plans.NewCopyPlanUseCase(&fakeTxRunner{repo: repo}, ports.NoopBus{})

	out, err := uc.CopyPlans(context.Background(), dto.CopyPlansRequest{
		SourcePlanIDs: []string{src.ID},
		TargetYear:    2026,
	})
	require.NoError(t, err)
	require.Len(t, out.Plans, 1)

	got := out.Plans[0]
	assert.NotEqual(t, src.ID, got.ID, "la copia debe recibir id nuevo")
	assert.Equal(t, 2026, got.EffectiveYear)
	assert.False(t, got.IsActive, "la copia debe nacer inactiva")
	assert.Equal(t, src.Name, got.Name)

	metrics, _ := repo.ListMetricsByPlan(got.ID)
	require.Len(t, metrics, 2, "deben copiarse ambas métricas")
	for _, m := range metrics {
		tiers, _ := repo.ListTiersByMetric(m.ID)
		assert.NotEmpty(t, tiers, "cada métrica copiada conserva su grilla")
		for _, tier := range tiers {
			assert.Equal(t, m.ID, tier.MetricID, "las bandas apuntan a la métrica nueva")
		}
	}
	commissions, _ := repo.ListCommissionsByPlan(got.ID)
	require.Len(t, commissions, 1)
	assert.Equal(t, "managed_services", commissions[0].CommissionType)

	spiffs, _ := repo.ListSpiffsByPlan(got.ID)
	require.Len(t, spiffs, 1)
	assert.Equal(t, "Q4 Push", spiffs[0].SpiffName)
}

func TestCopyPlans_NoEsIdempotente(t *testing.T) {
	repo := newFakePlanRepo()
	src := seedSourcePlan(repo)
	uc := plans.NewCopyPlanUseCase(&fakeTxRunner{repo: repo}, ports.NoopBus{})

	req := dto.CopyPlansRequest{SourcePlanIDs: []string{src.ID}, TargetYear: 2026}
	_, err := uc.CopyPlans(context.Background(), req)
	require.NoError(t, err)
	_, err = uc.CopyPlans(context.Background(), req)
	require.NoError(t, err)

	copias, _ := repo.ListPlans(2026)
	assert.Len(t, copias, 2, "copiar dos veces produce dos planes independientes")
}

func TestCopyPlans_FallaRevierteTodo(t *testing.T) {
	repo := newFakePlanRepo()
	src := seedSourcePlan(repo)
	repo.failOnSpiff = true
	uc := plans.NewCopyPlanUseCase(&fakeTxRunner{repo: repo}, ports.NoopBus{})

	_, err := uc.CopyPlans(context.Background(), dto.CopyPlansRequest{
		SourcePlanIDs: []string{src.ID},
		TargetYear:    2026,
	})
	require.Error(t, err)

	copias, _ := repo.ListPlans(2026)
	assert.Empty(t, copias, "un error a mitad de cascada no debe dejar plan copiado")
	assert.Len(t, repo.plans, 1, "el plan origen queda intacto")
}

func TestCopyPlans_OrigenInexistente(t *testing.T) {
	repo := newFakePlanRepo()
	seedSourcePlan(repo)
	uc := plans.NewCopyPlanUseCase(&fakeTxRunner{repo: repo}, ports.NoopBus{})

	_, err := uc.CopyPlans(context.Background(), dto.CopyPlansRequest{
		SourcePlanIDs: []string{"plan-2025", "no-existe"},
		TargetYear:    2026,
	})
	require.Error(t, err)

	copias, _ := repo.ListPlans(2026)
	assert.Empty(t, copias, "si un origen no existe no se copia ninguno del lote")
}
