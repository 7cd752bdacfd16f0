package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo mensual de pagos. Las transiciones válidas son
// estrictamente secuenciales: draft → review → approved → finalized → paid.
const (
	RunStatusDraft     = "draft"
	RunStatusReview    = "review"
	RunStatusApproved  = "approved"
	RunStatusFinalized = "finalized"
	RunStatusPaid      = "paid"
)

// runStatusOrder posición de cada estado en el ciclo.
var runStatusOrder = map[string]int{
	RunStatusDraft:     0,
	RunStatusReview:    1,
	RunStatusApproved:  2,
	RunStatusFinalized: 3,
	RunStatusPaid:      4,
}

// Tipos de componente de un PayoutDetail, en el orden de precedencia con el
// que se pivotea el reporte de workings.
const (
	ComponentVariablePay       = "variable_pay"
	ComponentCommission        = "commission"
	ComponentNRR               = "nrr"
	ComponentSpiff             = "spiff"
	ComponentDealTeamSpiff     = "deal_team_spiff"
	ComponentCollectionRelease = "collection_release"
	ComponentYearEndRelease    = "year_end_release"
	ComponentClawback          = "clawback"
)

// Estados y tipos de un PayoutAdjustment. "applied" lo escribe el proceso
// externo de finalización; esta API nunca lo asigna.
const (
	AdjustmentPending  = "pending"
	AdjustmentApproved = "approved"
	AdjustmentRejected = "rejected"
	AdjustmentApplied  = "applied"

	AdjustmentTypeCorrection       = "correction"
	AdjustmentTypeClawbackReversal = "clawback_reversal"
	AdjustmentTypeManualOverride   = "manual_override"
)

// PayoutRun corrida mensual de pagos. Única por MonthYear ("2025-07").
type PayoutRun struct {
	ID        string
	MonthYear string
	Status    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransitionTo valida que next sea exactamente el estado siguiente del ciclo.
func (r PayoutRun) CanTransitionTo(next string) bool {
	cur, okCur := runStatusOrder[r.Status]
	nxt, okNxt := runStatusOrder[next]
	return okCur && okNxt && nxt == cur+1
}

// PayoutDetail fila de detalle por (empleado, componente, métrica) calculada
// aguas arriba. Este repo solo la pivotea y agrega; no la recalcula.
type PayoutDetail struct {
	ID                       string
	RunID                    string
	EmployeeID               string // uuid del Employee
	ComponentType            string
	MetricName               string
	TargetUSD                decimal.Decimal
	ActualsUSD               decimal.Decimal
	AchievementPct           decimal.Decimal
	AllocatedOTEUSD          decimal.Decimal
	Multiplier               decimal.Decimal
	CommissionRatePct        decimal.Decimal
	YTDEligibleUSD           decimal.Decimal
	EligibleTillLastMonthUSD decimal.Decimal
	IncrementalEligibleUSD   decimal.Decimal // "this month"
	BookingUSD               decimal.Decimal
	CollectionUSD            decimal.Decimal // retenido a cobranza
	YearEndUSD               decimal.Decimal // retenido a cierre de año
}

// PayoutAdjustment ajuste manual sobre una corrida.
// Ciclo: pending → approved | rejected (→ applied, externo).
type PayoutAdjustment struct {
	ID                    string
	RunID                 string
	EmployeeID            string
	Type                  string // correction | clawback_reversal | manual_override
	OriginalAmountUSD     decimal.Decimal
	AdjustmentAmountUSD   decimal.Decimal // signo libre: positivo suma, negativo descuenta
	OriginalAmountLocal   decimal.Decimal
	AdjustmentAmountLocal decimal.Decimal
	Reason                string // obligatorio
	Status                string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// EmployeePayoutSummary total por empleado de una corrida (derivado del pivot).
type EmployeePayoutSummary struct {
	ID                     string
	RunID                  string
	EmployeeID             string
	TotalPayoutUSD         decimal.Decimal
	CurrentMonthPayableUSD decimal.Decimal
	CollectionHeldUSD      decimal.Decimal
	YearEndHeldUSD         decimal.Decimal
	LocalCurrency          string
	TotalPayoutLocal       decimal.Decimal
}
