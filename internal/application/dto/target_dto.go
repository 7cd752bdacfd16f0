package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertUserTargetRequest asignación de plan a usuario (upsert por
// user/plan/effective_start_date).
type UpsertUserTargetRequest struct {
	UserID             string           `json:"user_id" validate:"required"`
	PlanID             string           `json:"plan_id" validate:"required"`
	EffectiveStartDate string           `json:"effective_start_date" validate:"required"` // YYYY-MM-DD
	EffectiveEndDate   *string          `json:"effective_end_date"`
	TargetValueAnnual  decimal.Decimal  `json:"target_value_annual"`
	Currency           string           `json:"currency"`
	TargetBonusPct     decimal.Decimal  `json:"target_bonus_percent"`
	TFPLocal           decimal.Decimal  `json:"tfp_local_currency"`
	OTELocal           decimal.Decimal  `json:"ote_local_currency"`
	TFPUSD             decimal.Decimal  `json:"tfp_usd"`
	TargetBonusUSD     decimal.Decimal  `json:"target_bonus_usd"`
	OTEUSD             decimal.Decimal  `json:"ote_usd"`
}

// UserTargetResponse salida de una asignación.
type UserTargetResponse struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"user_id"`
	PlanID             string          `json:"plan_id"`
	EffectiveStartDate time.Time       `json:"effective_start_date"`
	EffectiveEndDate   *time.Time      `json:"effective_end_date,omitempty"`
	TargetValueAnnual  decimal.Decimal `json:"target_value_annual"`
	Currency           string          `json:"currency"`
	TargetBonusPct     decimal.Decimal `json:"target_bonus_percent"`
	TFPLocal           decimal.Decimal `json:"tfp_local_currency"`
	OTELocal           decimal.Decimal `json:"ote_local_currency"`
	TFPUSD             decimal.Decimal `json:"tfp_usd"`
	TargetBonusUSD     decimal.Decimal `json:"target_bonus_usd"`
	OTEUSD             decimal.Decimal `json:"ote_usd"`
}

// UpsertPerformanceTargetRequest objetivos trimestrales de un empleado.
type UpsertPerformanceTargetRequest struct {
	EmployeeID  string          `json:"employee_id" validate:"required"`
	MetricType  string          `json:"metric_type" validate:"required"`
	Q1TargetUSD decimal.Decimal `json:"q1_target_usd"`
	Q2TargetUSD decimal.Decimal `json:"q2_target_usd"`
	Q3TargetUSD decimal.Decimal `json:"q3_target_usd"`
	Q4TargetUSD decimal.Decimal `json:"q4_target_usd"`
}

// PerformanceTargetResponse salida con el anual derivado (q1+q2+q3+q4).
type PerformanceTargetResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	MetricType      string          `json:"metric_type"`
	Q1TargetUSD     decimal.Decimal `json:"q1_target_usd"`
	Q2TargetUSD     decimal.Decimal `json:"q2_target_usd"`
	Q3TargetUSD     decimal.Decimal `json:"q3_target_usd"`
	Q4TargetUSD     decimal.Decimal `json:"q4_target_usd"`
	AnnualTargetUSD decimal.Decimal `json:"annual_target_usd"`
}
