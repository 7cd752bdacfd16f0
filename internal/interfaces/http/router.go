package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/auth"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/importer"
	apppayout "github.com/mohan98521/gtm-variable-pay-sub001/internal/application/payout"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/plans"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/usecase"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	EmployeeUC       *usecase.EmployeeUseCase
	EmployeeImporter *importer.EmployeeImporter
	EmployeeRepo     repository.EmployeeRepository
	EmployeeCSV      EmployeeCSVEncoder
	PlanUC           *usecase.PlanUseCase
	CopyPlanUC       *plans.CopyPlanUseCase
	TargetUC         *usecase.TargetUseCase
	TargetImporter   *importer.TargetImporter
	PayoutUC         *usecase.PayoutUseCase
	WorkingsUC       *apppayout.WorkingsUseCase
	ExportUC         *apppayout.ExportUseCase
	CurrencyUC       *usecase.CurrencyUseCase
	RoleUC           *usecase.RoleUseCase
	DealUC           *usecase.DealSpiffUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público solo el login)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuarios de login (solo admin)
	protected.Post("/users", RequireAdmin(), authHandler.CreateUser)

	// Empleados: lectura para todos los roles, escritura admin/finance
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, deps.EmployeeImporter, deps.EmployeeRepo, deps.EmployeeCSV)
	edit := RequireRole(entity.RoleAdmin, entity.RoleFinance)
	employees.Get("/", employeeHandler.List)
	employees.Get("/export", employeeHandler.ExportCSV)
	employees.Post("/import", edit, employeeHandler.Import)
	employees.Post("/", edit, employeeHandler.Create)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", edit, employeeHandler.Update)
	employees.Delete("/:id", edit, employeeHandler.Deactivate)

	// Planes de compensación, métricas, comisiones y SPIFFs
	planHandler := NewPlanHandler(deps.PlanUC, deps.CopyPlanUC)
	plansGroup := protected.Group("/plans")
	plansGroup.Get("/", planHandler.List)
	plansGroup.Get("/years", planHandler.ListYears)
	plansGroup.Post("/", edit, planHandler.Create)
	plansGroup.Post("/copy", edit, planHandler.Copy)
	plansGroup.Put("/metrics/:metricId", edit, planHandler.UpdateMetric)
	plansGroup.Delete("/metrics/:metricId", edit, planHandler.DeleteMetric)
	plansGroup.Put("/commissions/:commissionId", edit, planHandler.UpdateCommission)
	plansGroup.Get("/:id", planHandler.GetByID)
	plansGroup.Put("/:id", edit, planHandler.Update)
	plansGroup.Get("/:id/metrics", planHandler.ListMetrics)
	plansGroup.Post("/:id/metrics", edit, planHandler.CreateMetric)
	plansGroup.Get("/:id/commissions", planHandler.ListCommissions)
	plansGroup.Post("/:id/commissions", edit, planHandler.CreateCommission)
	plansGroup.Delete("/:id/commissions/:commissionId", edit, planHandler.DeleteCommission)
	plansGroup.Get("/:id/spiffs", planHandler.ListSpiffs)
	plansGroup.Post("/:id/spiffs", edit, planHandler.CreateSpiff)
	plansGroup.Delete("/:id/spiffs/:spiffId", edit, planHandler.DeleteSpiff)

	// Objetivos: asignaciones de plan y metas trimestrales
	targetHandler := NewTargetHandler(deps.TargetUC, deps.TargetImporter)
	targets := protected.Group("/targets")
	targets.Put("/users", edit, targetHandler.UpsertUserTarget)
	targets.Get("/users/:userId", targetHandler.ListUserTargets)
	targets.Delete("/users/:id", edit, targetHandler.DeleteUserTarget)
	targets.Put("/performance", edit, targetHandler.UpsertPerformanceTarget)
	targets.Get("/performance/:employeeId", targetHandler.ListPerformanceTargets)
	targets.Post("/import", edit, targetHandler.Import)

	// Corridas mensuales, workings y descargas
	payoutHandler := NewPayoutHandler(deps.PayoutUC, deps.WorkingsUC, deps.ExportUC)
	runs := protected.Group("/payout-runs")
	runs.Get("/", payoutHandler.ListRuns)
	runs.Post("/", edit, payoutHandler.CreateRun)
	runs.Get("/:id", payoutHandler.GetRun)
	runs.Put("/:id/status", edit, payoutHandler.ChangeStatus)
	runs.Get("/:id/workings", payoutHandler.Workings)
	runs.Post("/:id/summaries/refresh", edit, payoutHandler.RefreshSummaries)
	runs.Get("/:id/export/csv", payoutHandler.ExportCSV)
	runs.Get("/:id/export/xlsx", payoutHandler.ExportXLSX)
	runs.Get("/:id/statements/:employeeId", payoutHandler.ExportStatement)
	runs.Get("/:id/adjustments", payoutHandler.ListAdjustments)
	runs.Post("/:id/adjustments", edit, payoutHandler.CreateAdjustment)

	adjustments := protected.Group("/adjustments")
	adjustments.Post("/:adjustmentId/approve", edit, payoutHandler.ApproveAdjustment)
	adjustments.Post("/:adjustmentId/reject", edit, payoutHandler.RejectAdjustment)
	adjustments.Delete("/:adjustmentId", edit, payoutHandler.DeleteAdjustment)

	// Monedas y tasas
	currencyHandler := NewCurrencyHandler(deps.CurrencyUC)
	currencies := protected.Group("/currencies")
	currencies.Get("/", currencyHandler.List)
	currencies.Get("/rates", currencyHandler.ListRates)
	currencies.Put("/rates", edit, currencyHandler.UpsertRate)
	currencies.Post("/", edit, currencyHandler.Create)
	currencies.Put("/:code", edit, currencyHandler.Update)
	currencies.Delete("/:code", edit, currencyHandler.Delete)

	// Roles (solo admin)
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles := protected.Group("/roles", RequireAdmin())
	roles.Get("/", roleHandler.List)
	roles.Post("/", roleHandler.Create)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.Delete)

	// Deals y SPIFF de equipo
	dealHandler := NewDealHandler(deps.DealUC)
	deals := protected.Group("/deals")
	deals.Get("/", dealHandler.List)
	deals.Post("/", edit, dealHandler.Create)
	deals.Get("/:id", dealHandler.GetByID)
	deals.Get("/:id/allocations", dealHandler.ListAllocations)
	deals.Put("/:id/allocations", edit, dealHandler.SaveAllocations)
	deals.Post("/:id/approve", edit, dealHandler.Approve)
	deals.Post("/:id/reject", edit, dealHandler.Reject)
}
