package payout_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/payout"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func emp(id, name string, bonus float64) payout.EmployeeInfo {
	return payout.EmployeeInfo{
		EmployeeID:     id,
		EmployeeCode:   "E-" + id,
		FullName:       name,
		LocalCurrency:  "USD",
		TargetBonusUSD: dec(bonus),
	}
}

func TestFieldsFor_TamanosDePlantilla(t *testing.T) {
	assert.Len(t, payout.FieldsFor(entity.ComponentVariablePay), 12)
	assert.Len(t, payout.FieldsFor(entity.ComponentNRR), 12)
	assert.Len(t, payout.FieldsFor(entity.ComponentCollectionRelease), 12)
	assert.Len(t, payout.FieldsFor(entity.ComponentYearEndRelease), 12)
	assert.Len(t, payout.FieldsFor(entity.ComponentClawback), 12)
	assert.Len(t, payout.FieldsFor(entity.ComponentCommission), 8)
	assert.Len(t, payout.FieldsFor(entity.ComponentSpiff), 9)
	assert.Len(t, payout.FieldsFor(entity.ComponentDealTeamSpiff), 9)
}

// Escenario de la especificación de columnas: E tiene métricas {A: variable_pay,
// B: commission}, F solo {A}. El pivot debe rendir ambas columnas para ambos
// empleados, con las celdas de B en F como nil (guion), nunca omitidas.
func TestPivot_ColumnasCompletasParaTodosLosEmpleados(t *testing.T) {
	details := []entity.PayoutDetail{
		{EmployeeID: "e1", ComponentType: entity.ComponentVariablePay, MetricName: "A",
			TargetUSD: dec(1000), ActualsUSD: dec(900), IncrementalEligibleUSD: dec(90)},
		{EmployeeID: "e1", ComponentType: entity.ComponentCommission, MetricName: "B",
			ActualsUSD: dec(500), CommissionRatePct: dec(2), IncrementalEligibleUSD: dec(10)},
		{EmployeeID: "e2", ComponentType: entity.ComponentVariablePay, MetricName: "A",
			TargetUSD: dec(2000), ActualsUSD: dec(2000), IncrementalEligibleUSD: dec(200)},
	}
	w := payout.Pivot(details, []payout.EmployeeInfo{emp("e1", "Elena", 10000), emp("e2", "Franco", 8000)})

	require.Len(t, w.Columns, 2)
	// variable_pay precede a commission.
	assert.Equal(t, entity.ComponentVariablePay, w.Columns[0].ComponentType)
	assert.Equal(t, "A", w.Columns[0].MetricName)
	assert.Len(t, w.Columns[0].Fields, 12)
	assert.Equal(t, entity.ComponentCommission, w.Columns[1].ComponentType)
	assert.Equal(t, "B", w.Columns[1].MetricName)
	assert.Len(t, w.Columns[1].Fields, 8)

	require.Len(t, w.Rows, 2)
	// Franco no tiene B: celdas presentes pero nil.
	franco := w.Rows[1]
	require.Len(t, franco.Cells, 2)
	require.Len(t, franco.Cells[1], 8)
	for _, c := range franco.Cells[1] {
		assert.Nil(t, c)
	}
	// Y sí tiene A.
	require.NotNil(t, franco.Cells[0][0])
	assert.True(t, franco.Cells[0][0].Equal(dec(2000)))
}

func TestPivot_OrdenDeColumnas(t *testing.T) {
	details := []entity.PayoutDetail{
		{EmployeeID: "e1", ComponentType: entity.ComponentClawback, MetricName: "ARR"},
		{EmployeeID: "e1", ComponentType: entity.ComponentVariablePay, MetricName: "NRR"},
		{EmployeeID: "e1", ComponentType: entity.ComponentVariablePay, MetricName: "ARR"},
		{EmployeeID: "e1", ComponentType: entity.ComponentSpiff, MetricName: "ARR"},
	}
	w := payout.Pivot(details, []payout.EmployeeInfo{emp("e1", "Elena", 0)})
	require.Len(t, w.Columns, 4)
	// Precedencia por componente, alfabético por métrica dentro del tipo.
	assert.Equal(t, entity.ComponentVariablePay, w.Columns[0].ComponentType)
	assert.Equal(t, "ARR", w.Columns[0].MetricName)
	assert.Equal(t, entity.ComponentVariablePay, w.Columns[1].ComponentType)
	assert.Equal(t, "NRR", w.Columns[1].MetricName)
	assert.Equal(t, entity.ComponentSpiff, w.Columns[2].ComponentType)
	assert.Equal(t, entity.ComponentClawback, w.Columns[3].ComponentType)
}

func TestPivot_TotalesPorEmpleado(t *testing.T) {
	details := []entity.PayoutDetail{
		{EmployeeID: "e1", ComponentType: entity.ComponentVariablePay, MetricName: "ARR",
			IncrementalEligibleUSD: dec(100), BookingUSD: dec(70), CollectionUSD: dec(20), YearEndUSD: dec(10)},
		{EmployeeID: "e1", ComponentType: entity.ComponentCollectionRelease, MetricName: "ARR",
			IncrementalEligibleUSD: dec(15)},
		{EmployeeID: "e1", ComponentType: entity.ComponentYearEndRelease, MetricName: "ARR",
			IncrementalEligibleUSD: dec(5)},
		{EmployeeID: "e1", ComponentType: entity.ComponentClawback, MetricName: "ARR",
			IncrementalEligibleUSD: dec(-8)},
	}
	w := payout.Pivot(details, []payout.EmployeeInfo{emp("e1", "Elena", 10000)})
	require.Len(t, w.Rows, 1)
	tot := w.Rows[0].Totals

	// total del mes = 100 + 15 + 5 + (−8) = 112
	assert.True(t, tot.TotalThisMonthUSD.Equal(dec(112)), tot.TotalThisMonthUSD.String())
	// pagable = Σbooking(70) + release cobranza(15) + release cierre(5) − |clawback|(8) = 82
	assert.True(t, tot.CurrentMonthPayableUSD.Equal(dec(82)), tot.CurrentMonthPayableUSD.String())
	assert.True(t, tot.CollectionHeldUSD.Equal(dec(20)))
	assert.True(t, tot.YearEndHeldUSD.Equal(dec(10)))
}

func TestPivot_OTEPctDerivado(t *testing.T) {
	details := []entity.PayoutDetail{
		{EmployeeID: "e1", ComponentType: entity.ComponentVariablePay, MetricName: "ARR",
			AllocatedOTEUSD: dec(2500)},
		{EmployeeID: "e2", ComponentType: entity.ComponentVariablePay, MetricName: "ARR",
			AllocatedOTEUSD: dec(2500)},
	}
	// e1 con bono objetivo 10000; e2 sin bono (OTE% indefinido → nil).
	w := payout.Pivot(details, []payout.EmployeeInfo{emp("e1", "Elena", 10000), emp("e2", "Franco", 0)})

	fields := w.Columns[0].Fields
	oteIdx := -1
	for i, f := range fields {
		if f == payout.FieldOTEPct {
			oteIdx = i
		}
	}
	require.NotEqual(t, -1, oteIdx)

	require.NotNil(t, w.Rows[0].Cells[0][oteIdx])
	assert.True(t, w.Rows[0].Cells[0][oteIdx].Equal(dec(25)), w.Rows[0].Cells[0][oteIdx].String())
	assert.Nil(t, w.Rows[1].Cells[0][oteIdx])
}

// Un empleado presente en los detalles pero no en la lista del caller no se
// pierde: se agrega una fila mínima al final.
func TestPivot_EmpleadoHuerfano(t *testing.T) {
	details := []entity.PayoutDetail{
		{EmployeeID: "zz", ComponentType: entity.ComponentVariablePay, MetricName: "ARR",
			IncrementalEligibleUSD: dec(50), BookingUSD: dec(50)},
	}
	w := payout.Pivot(details, []payout.EmployeeInfo{emp("e1", "Elena", 0)})
	require.Len(t, w.Rows, 2)
	assert.Equal(t, "zz", w.Rows[1].Employee.EmployeeID)
	assert.True(t, w.Rows[1].Totals.CurrentMonthPayableUSD.Equal(dec(50)))
}

func TestPivot_SinDetalles(t *testing.T) {
	w := payout.Pivot(nil, []payout.EmployeeInfo{emp("e1", "Elena", 0)})
	assert.Empty(t, w.Columns)
	require.Len(t, w.Rows, 1)
	assert.True(t, w.Rows[0].Totals.TotalThisMonthUSD.IsZero())
}
