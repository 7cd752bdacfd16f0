package repository

import (
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/payout"
)

// PayoutRepository puerto de persistencia del ciclo mensual de pagos: corridas,
// detalles (calculados aguas arriba), resúmenes y ajustes.
type PayoutRepository interface {
	CreateRun(r *entity.PayoutRun) error
	GetRunByID(id string) (*entity.PayoutRun, error)
	GetRunByMonth(monthYear string) (*entity.PayoutRun, error)
	ListRuns(limit, offset int) ([]*entity.PayoutRun, error)
	UpdateRunStatus(id, status string) error

	ListDetailsByRun(runID string) ([]entity.PayoutDetail, error)
	// ListEmployeeInfoByRun devuelve los empleados activos con código, moneda
	// local y bono objetivo USD vigente, para las filas del pivot.
	ListEmployeeInfoByRun(runID string) ([]payout.EmployeeInfo, error)

	ReplaceSummaries(runID string, ss []entity.EmployeePayoutSummary) error
	ListSummariesByRun(runID string) ([]entity.EmployeePayoutSummary, error)

	CreateAdjustment(a *entity.PayoutAdjustment) error
	GetAdjustmentByID(id string) (*entity.PayoutAdjustment, error)
	ListAdjustmentsByRun(runID string) ([]*entity.PayoutAdjustment, error)
	UpdateAdjustmentStatus(id, status string) error
	DeleteAdjustment(id string) error
}
