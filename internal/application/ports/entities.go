package ports

// Nombres lógicos de entidad para PublishChange y claves de caché.
const (
	EntityEmployees          = "employees"
	EntityUsers              = "users"
	EntityPlans              = "comp_plans"
	EntityUserTargets        = "user_targets"
	EntityPerformanceTargets = "performance_targets"
	EntityCurrencies         = "currencies"
	EntityExchangeRates      = "exchange_rates"
	EntityRoles              = "role_definitions"
	EntityPayoutRuns         = "payout_runs"
	EntityAdjustments        = "payout_adjustments"
	EntityDeals              = "deals"
)
