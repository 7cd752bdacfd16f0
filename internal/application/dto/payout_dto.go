package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRunRequest alta de una corrida mensual.
type CreateRunRequest struct {
	MonthYear string `json:"month_year" validate:"required"` // "2025-07"
	Notes     string `json:"notes"`
}

// RunStatusRequest transición de estado de la corrida.
type RunStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RunResponse salida de una corrida.
type RunResponse struct {
	ID        string    `json:"id"`
	MonthYear string    `json:"month_year"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAdjustmentRequest alta de un ajuste sobre una corrida en review.
type CreateAdjustmentRequest struct {
	EmployeeID            string          `json:"employee_id" validate:"required"`
	Type                  string          `json:"type" validate:"required"` // correction | clawback_reversal | manual_override
	OriginalAmountUSD     decimal.Decimal `json:"original_amount_usd"`
	AdjustmentAmountUSD   decimal.Decimal `json:"adjustment_amount_usd"`
	OriginalAmountLocal   decimal.Decimal `json:"original_amount_local"`
	AdjustmentAmountLocal decimal.Decimal `json:"adjustment_amount_local"`
	Reason                string          `json:"reason" validate:"required"`
}

// AdjustmentResponse salida de un ajuste.
type AdjustmentResponse struct {
	ID                    string          `json:"id"`
	RunID                 string          `json:"run_id"`
	EmployeeID            string          `json:"employee_id"`
	Type                  string          `json:"type"`
	OriginalAmountUSD     decimal.Decimal `json:"original_amount_usd"`
	AdjustmentAmountUSD   decimal.Decimal `json:"adjustment_amount_usd"`
	OriginalAmountLocal   decimal.Decimal `json:"original_amount_local"`
	AdjustmentAmountLocal decimal.Decimal `json:"adjustment_amount_local"`
	Reason                string          `json:"reason"`
	Status                string          `json:"status"`
	CreatedAt             time.Time       `json:"created_at"`
}

// WorkingsColumn columna del pivot en la respuesta JSON.
type WorkingsColumn struct {
	ComponentType string   `json:"component_type"`
	MetricName    string   `json:"metric_name"`
	Fields        []string `json:"fields"`
}

// WorkingsRow fila del pivot. Cells es paralelo a Columns y a sus Fields;
// una celda nil se renderiza como guion.
type WorkingsRow struct {
	EmployeeID             string               `json:"employee_id"`
	EmployeeCode           string               `json:"employee_code"`
	FullName               string               `json:"full_name"`
	LocalCurrency          string               `json:"local_currency"`
	Cells                  [][]*decimal.Decimal `json:"cells"`
	TotalThisMonthUSD      decimal.Decimal      `json:"total_this_month_usd"`
	CurrentMonthPayableUSD decimal.Decimal      `json:"current_month_payable_usd"`
	CollectionHeldUSD      decimal.Decimal      `json:"collection_held_usd"`
	YearEndHeldUSD         decimal.Decimal      `json:"year_end_held_usd"`
}

// WorkingsResponse pivot completo de una corrida.
type WorkingsResponse struct {
	RunID     string           `json:"run_id"`
	MonthYear string           `json:"month_year"`
	Columns   []WorkingsColumn `json:"columns"`
	Rows      []WorkingsRow    `json:"rows"`
}
