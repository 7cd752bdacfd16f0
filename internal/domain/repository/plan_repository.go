package repository

import "github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"

// PlanRepository puerto de persistencia del agregado CompPlan: plan, métricas,
// bandas de multiplicadores, comisiones y SPIFFs. Los Get* devuelven (nil, nil)
// si no existe.
type PlanRepository interface {
	CreatePlan(p *entity.CompPlan) error
	GetPlanByID(id string) (*entity.CompPlan, error)
	GetPlanByNameAndYear(name string, year int) (*entity.CompPlan, error)
	ListPlans(year int) ([]*entity.CompPlan, error) // year=0 lista todos
	ListPlanYears() ([]int, error)
	UpdatePlan(p *entity.CompPlan) error

	CreateMetric(m *entity.PlanMetric) error
	GetMetricByID(id string) (*entity.PlanMetric, error)
	ListMetricsByPlan(planID string) ([]*entity.PlanMetric, error)
	UpdateMetric(m *entity.PlanMetric) error
	DeleteMetric(id string) error

	// ReplaceTiers reemplaza la grilla completa de la métrica (delete + insert).
	ReplaceTiers(metricID string, tiers []entity.MultiplierTier) error
	ListTiersByMetric(metricID string) ([]entity.MultiplierTier, error)

	CreateCommission(c *entity.PlanCommission) error
	GetCommissionByID(id string) (*entity.PlanCommission, error)
	GetCommissionByType(planID, commissionType string) (*entity.PlanCommission, error)
	ListCommissionsByPlan(planID string) ([]*entity.PlanCommission, error)
	UpdateCommission(c *entity.PlanCommission) error
	DeleteCommission(id string) error
	BulkInsertCommissions(cs []*entity.PlanCommission) error

	CreateSpiff(s *entity.PlanSpiff) error
	GetSpiffByID(id string) (*entity.PlanSpiff, error)
	ListSpiffsByPlan(planID string) ([]*entity.PlanSpiff, error)
	UpdateSpiff(s *entity.PlanSpiff) error
	DeleteSpiff(id string) error
}
