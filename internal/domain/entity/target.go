package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserTarget asignación de un plan a un usuario para un rango de fechas,
// con objetivo anual y cifras TFP/OTE en moneda local y USD.
// Invariante: única por (UserID, PlanID, EffectiveStartDate); la persistencia
// usa upsert nativo sobre esa clave.
type UserTarget struct {
	ID                 string
	UserID             string
	PlanID             string
	EffectiveStartDate time.Time
	EffectiveEndDate   *time.Time
	TargetValueAnnual  decimal.Decimal
	Currency           string
	TargetBonusPct     decimal.Decimal
	TFPLocal           decimal.Decimal
	OTELocal           decimal.Decimal
	TFPUSD             decimal.Decimal
	TargetBonusUSD     decimal.Decimal
	OTEUSD             decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PerformanceTarget objetivos trimestrales de un empleado para un tipo de métrica.
// El objetivo anual es siempre derivado (suma de trimestres), nunca se almacena aparte.
type PerformanceTarget struct {
	ID          string
	EmployeeID  string // uuid del Employee
	MetricType  string
	Q1TargetUSD decimal.Decimal
	Q2TargetUSD decimal.Decimal
	Q3TargetUSD decimal.Decimal
	Q4TargetUSD decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AnnualTarget devuelve q1+q2+q3+q4.
func (t PerformanceTarget) AnnualTarget() decimal.Decimal {
	return t.Q1TargetUSD.Add(t.Q2TargetUSD).Add(t.Q3TargetUSD).Add(t.Q4TargetUSD)
}

// HasNonZeroQuarter indica si al menos un trimestre es distinto de cero.
func (t PerformanceTarget) HasNonZeroQuarter() bool {
	return !t.Q1TargetUSD.IsZero() || !t.Q2TargetUSD.IsZero() ||
		!t.Q3TargetUSD.IsZero() || !t.Q4TargetUSD.IsZero()
}
