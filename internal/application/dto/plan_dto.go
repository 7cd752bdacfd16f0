package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePlanRequest entrada para crear un plan de compensación.
type CreatePlanRequest struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	EffectiveYear int    `json:"effective_year" validate:"required"`
	IsActive      *bool  `json:"is_active"`
}

// UpdatePlanRequest entrada para actualizar un plan.
type UpdatePlanRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	EffectiveYear *int    `json:"effective_year"`
	IsActive      *bool   `json:"is_active"`
}

// PlanResponse salida de un plan.
type PlanResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"is_active"`
	EffectiveYear int       `json:"effective_year"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CopyPlansRequest entrada del copiado de planes a un año destino.
type CopyPlansRequest struct {
	SourcePlanIDs []string `json:"source_plan_ids" validate:"required,min=1"`
	TargetYear    int      `json:"target_year" validate:"required"`
}

// CopyPlansResponse planes creados por el copiado.
type CopyPlansResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// TierPayload banda de multiplicador en requests y responses.
type TierPayload struct {
	MinPct          decimal.Decimal `json:"min_pct"`
	MaxPct          decimal.Decimal `json:"max_pct"`
	MultiplierValue decimal.Decimal `json:"multiplier_value"`
}

// SaveMetricRequest entrada para crear/actualizar una métrica con su grilla.
// Si Tiers viene vacío en la creación se siembra la grilla por defecto del
// tipo de lógica.
type SaveMetricRequest struct {
	MetricName       string          `json:"metric_name" validate:"required"`
	WeightagePct     decimal.Decimal `json:"weightage_pct"`
	LogicType        string          `json:"logic_type" validate:"required"`
	GateThresholdPct decimal.Decimal `json:"gate_threshold_pct"`
	Tiers            []TierPayload   `json:"tiers"`
}

// MetricResponse salida de una métrica con su grilla.
type MetricResponse struct {
	ID               string          `json:"id"`
	PlanID           string          `json:"plan_id"`
	MetricName       string          `json:"metric_name"`
	WeightagePct     decimal.Decimal `json:"weightage_pct"`
	LogicType        string          `json:"logic_type"`
	GateThresholdPct decimal.Decimal `json:"gate_threshold_pct"`
	Tiers            []TierPayload   `json:"tiers"`
}

// CommissionRequest entrada para crear/actualizar una comisión del plan.
type CommissionRequest struct {
	CommissionType        string           `json:"commission_type" validate:"required"`
	RatePct               decimal.Decimal  `json:"rate_pct"`
	MinThresholdUSD       *decimal.Decimal `json:"min_threshold_usd"`
	PayoutOnBookingPct    decimal.Decimal  `json:"payout_on_booking_pct"`
	PayoutOnCollectionPct decimal.Decimal  `json:"payout_on_collection_pct"`
	IsActive              *bool            `json:"is_active"`
}

// CommissionResponse salida de una comisión.
type CommissionResponse struct {
	ID                    string           `json:"id"`
	PlanID                string           `json:"plan_id"`
	CommissionType        string           `json:"commission_type"`
	RatePct               decimal.Decimal  `json:"rate_pct"`
	MinThresholdUSD       *decimal.Decimal `json:"min_threshold_usd,omitempty"`
	PayoutOnBookingPct    decimal.Decimal  `json:"payout_on_booking_pct"`
	PayoutOnCollectionPct decimal.Decimal  `json:"payout_on_collection_pct"`
	IsActive              bool             `json:"is_active"`
}

// SpiffRequest entrada para crear/actualizar un SPIFF del plan.
type SpiffRequest struct {
	SpiffName        string           `json:"spiff_name" validate:"required"`
	LinkedMetricName string           `json:"linked_metric_name" validate:"required"`
	RatePct          decimal.Decimal  `json:"rate_pct"`
	MinDealValueUSD  *decimal.Decimal `json:"min_deal_value_usd"`
	IsActive         *bool            `json:"is_active"`
}

// SpiffResponse salida de un SPIFF.
type SpiffResponse struct {
	ID               string           `json:"id"`
	PlanID           string           `json:"plan_id"`
	SpiffName        string           `json:"spiff_name"`
	LinkedMetricName string           `json:"linked_metric_name"`
	RatePct          decimal.Decimal  `json:"rate_pct"`
	MinDealValueUSD  *decimal.Decimal `json:"min_deal_value_usd,omitempty"`
	IsActive         bool             `json:"is_active"`
}
