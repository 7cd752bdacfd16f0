package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de lógica de pago de una métrica.
const (
	LogicSteppedAccelerator = "stepped_accelerator"
	LogicGatedThreshold     = "gated_threshold"
)

// CommissionTypes catálogo predefinido de tipos de comisión. Un plan puede además
// definir tipos custom, siempre que el nombre sea único dentro del plan.
var CommissionTypes = []string{
	"new_business",
	"renewal",
	"expansion",
	"services",
	"partner_sourced",
}

// CompPlan plan de compensación variable. Agrupa métricas (con sus grillas de
// multiplicadores), comisiones y SPIFFs para un año efectivo.
type CompPlan struct {
	ID            string
	Name          string
	Description   string
	IsActive      bool
	EffectiveYear int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PlanMetric métrica de un plan (ej. "ARR", "NRR"). Pesa WeightagePct sobre el
// OTE del empleado y paga según su grilla de multiplicadores.
type PlanMetric struct {
	ID               string
	PlanID           string
	MetricName       string
	WeightagePct     decimal.Decimal // % del bono objetivo asignado a esta métrica
	LogicType        string          // LogicSteppedAccelerator | LogicGatedThreshold
	GateThresholdPct decimal.Decimal // bajo este % de logro no hay pago (solo gated)
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// MultiplierTier banda de la grilla de multiplicadores de una métrica.
// Invariante: MinPct < MaxPct; las bandas de una métrica no se solapan.
type MultiplierTier struct {
	ID              string
	MetricID        string
	MinPct          decimal.Decimal
	MaxPct          decimal.Decimal
	MultiplierValue decimal.Decimal
}

// PlanCommission estructura de comisión de un plan. CommissionType es único
// dentro del plan; RatePct está en [0,100].
type PlanCommission struct {
	ID                    string
	PlanID                string
	CommissionType        string
	RatePct               decimal.Decimal
	MinThresholdUSD       *decimal.Decimal // nil = sin umbral
	PayoutOnBookingPct    decimal.Decimal  // % pagado al booking
	PayoutOnCollectionPct decimal.Decimal  // % retenido hasta la cobranza
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// PlanSpiff SPIFF ligado a una métrica existente del plan (por nombre).
type PlanSpiff struct {
	ID               string
	PlanID           string
	SpiffName        string
	LinkedMetricName string
	RatePct          decimal.Decimal
	MinDealValueUSD  *decimal.Decimal
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
