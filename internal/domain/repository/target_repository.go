package repository

import "github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"

// TargetRepository puerto de persistencia para UserTarget y PerformanceTarget.
// Los upserts son nativos (INSERT ... ON CONFLICT) sobre la clave lógica, no
// select-then-insert.
type TargetRepository interface {
	// UpsertUserTarget inserta o actualiza por (user_id, plan_id, effective_start_date).
	UpsertUserTarget(t *entity.UserTarget) error
	ListUserTargetsByUser(userID string) ([]*entity.UserTarget, error)
	ListUserTargetsByPlan(planID string) ([]*entity.UserTarget, error)
	DeleteUserTarget(id string) error

	// UpsertPerformanceTarget inserta o actualiza por (employee_id, metric_type).
	UpsertPerformanceTarget(t *entity.PerformanceTarget) error
	GetPerformanceTarget(employeeID, metricType string) (*entity.PerformanceTarget, error)
	ListPerformanceTargetsByEmployee(employeeID string) ([]*entity.PerformanceTarget, error)
	DeletePerformanceTarget(id string) error
}
