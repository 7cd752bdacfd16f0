package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDealRequest alta de un deal con pool de SPIFF.
type CreateDealRequest struct {
	DealName     string          `json:"deal_name" validate:"required"`
	CustomerName string          `json:"customer_name"`
	DealValueUSD decimal.Decimal `json:"deal_value_usd"`
	SpiffPoolUSD decimal.Decimal `json:"spiff_pool_usd" validate:"required"`
	CloseDate    string          `json:"close_date"` // YYYY-MM-DD
}

// AllocationPayload asignación de un miembro del equipo.
type AllocationPayload struct {
	EmployeeID string          `json:"employee_id" validate:"required"`
	MemberRole string          `json:"member_role" validate:"required"`
	AmountUSD  decimal.Decimal `json:"amount_usd"`
}

// SaveAllocationsRequest reemplaza la lista de asignaciones del deal.
type SaveAllocationsRequest struct {
	Allocations []AllocationPayload `json:"allocations" validate:"required,min=1"`
}

// AllocationResponse salida de una asignación.
type AllocationResponse struct {
	ID         string          `json:"id"`
	DealID     string          `json:"deal_id"`
	EmployeeID string          `json:"employee_id"`
	MemberRole string          `json:"member_role"`
	AmountUSD  decimal.Decimal `json:"amount_usd"`
	Status     string          `json:"status"`
}

// DealResponse salida de un deal con el total asignado.
type DealResponse struct {
	ID                string          `json:"id"`
	DealName          string          `json:"deal_name"`
	CustomerName      string          `json:"customer_name"`
	DealValueUSD      decimal.Decimal `json:"deal_value_usd"`
	SpiffPoolUSD      decimal.Decimal `json:"spiff_pool_usd"`
	AllocatedTotalUSD decimal.Decimal `json:"allocated_total_usd"`
	CloseDate         time.Time       `json:"close_date"`
	Status            string          `json:"status"`
}
