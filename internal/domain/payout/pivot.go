// Package payout implementa el pivot de "workings" de una corrida de pagos:
// transforma las filas planas de detalle (empleado × componente × métrica) en
// una tabla ancha con subcolumnas por tipo de componente y totales por
// empleado. La misma implementación alimenta la vista JSON y todos los
// exports; descubrimiento de columnas, orden y totales son idénticos en ambos
// caminos.
package payout

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
)

// Identificadores de subcolumna.
const (
	FieldTarget                = "target"
	FieldActuals               = "actuals"
	FieldAchievementPct        = "achievement_pct"
	FieldOTEPct                = "ote_pct"
	FieldAllocatedOTE          = "allocated_ote"
	FieldMultiplier            = "multiplier"
	FieldCommissionRate        = "commission_rate"
	FieldYTDEligible           = "ytd_eligible"
	FieldEligibleTillLastMonth = "eligible_till_last_month"
	FieldIncrementalEligible   = "incremental_eligible"
	FieldBooking               = "booking"
	FieldCollection            = "collection"
	FieldYearEnd               = "year_end"
)

// Plantillas de subcolumnas por tipo de componente.
var (
	// 12 columnas: variable_pay, nrr, collection_release, year_end_release, clawback.
	templateStandard = []string{
		FieldTarget, FieldActuals, FieldAchievementPct, FieldOTEPct,
		FieldAllocatedOTE, FieldMultiplier, FieldYTDEligible,
		FieldEligibleTillLastMonth, FieldIncrementalEligible,
		FieldBooking, FieldCollection, FieldYearEnd,
	}
	// 8 columnas: commission sustituye target/achievement/OTE/multiplier por la tasa.
	templateCommission = []string{
		FieldActuals, FieldCommissionRate, FieldYTDEligible,
		FieldEligibleTillLastMonth, FieldIncrementalEligible,
		FieldBooking, FieldCollection, FieldYearEnd,
	}
	// 9 columnas: spiff/deal_team_spiff conservan OTE%/OTE asignado/actuals.
	templateSpiff = []string{
		FieldActuals, FieldOTEPct, FieldAllocatedOTE, FieldYTDEligible,
		FieldEligibleTillLastMonth, FieldIncrementalEligible,
		FieldBooking, FieldCollection, FieldYearEnd,
	}
)

// componentRank precedencia fija de tipos de componente en el pivot.
var componentRank = map[string]int{
	entity.ComponentVariablePay:       0,
	entity.ComponentCommission:        1,
	entity.ComponentNRR:               2,
	entity.ComponentSpiff:             3,
	entity.ComponentDealTeamSpiff:     4,
	entity.ComponentCollectionRelease: 5,
	entity.ComponentYearEndRelease:    6,
	entity.ComponentClawback:          7,
}

// FieldsFor devuelve la plantilla de subcolumnas del tipo de componente.
func FieldsFor(componentType string) []string {
	switch componentType {
	case entity.ComponentCommission:
		return templateCommission
	case entity.ComponentSpiff, entity.ComponentDealTeamSpiff:
		return templateSpiff
	default:
		return templateStandard
	}
}

// MetricColumn columna del pivot: un par (componente, métrica) con su plantilla.
type MetricColumn struct {
	ComponentType string
	MetricName    string
	Fields        []string
}

// EmployeeInfo datos del empleado necesarios para la fila del pivot.
// TargetBonusUSD es el bono objetivo total, denominador del OTE%.
type EmployeeInfo struct {
	EmployeeID     string // uuid
	EmployeeCode   string
	FullName       string
	LocalCurrency  string
	TargetBonusUSD decimal.Decimal
}

// Cell valor de una subcolumna; nil se renderiza como guion.
type Cell = *decimal.Decimal

// GrandTotals totales derivados por empleado. Nunca se almacenan: son función
// pura del conjunto de detalles vigente.
type GrandTotals struct {
	TotalThisMonthUSD      decimal.Decimal
	CurrentMonthPayableUSD decimal.Decimal
	CollectionHeldUSD      decimal.Decimal
	YearEndHeldUSD         decimal.Decimal
}

// Row fila del pivot. Cells es paralelo a Workings.Columns y, dentro de cada
// columna, paralelo a sus Fields.
type Row struct {
	Employee EmployeeInfo
	Cells    [][]Cell
	Totals   GrandTotals
}

// Workings resultado del pivot.
type Workings struct {
	Columns []MetricColumn
	Rows    []Row
}

type colKey struct {
	component string
	metric    string
}

// Pivot construye la tabla ancha. Las columnas se descubren sobre el conjunto
// completo de detalles (no por empleado) y se ordenan por precedencia de
// componente y luego alfabéticamente por métrica. Cada empleado de employees
// produce una fila aunque no tenga detalles: las combinaciones ausentes se
// rellenan con celdas nil.
func Pivot(details []entity.PayoutDetail, employees []EmployeeInfo) Workings {
	// 1. Descubrir columnas.
	seen := map[colKey]bool{}
	var keys []colKey
	for _, d := range details {
		k := colKey{d.ComponentType, d.MetricName}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ri, rj := componentRank[keys[i].component], componentRank[keys[j].component]
		if ri != rj {
			return ri < rj
		}
		return keys[i].metric < keys[j].metric
	})
	columns := make([]MetricColumn, 0, len(keys))
	for _, k := range keys {
		columns = append(columns, MetricColumn{
			ComponentType: k.component,
			MetricName:    k.metric,
			Fields:        FieldsFor(k.component),
		})
	}

	// 2. Indexar detalles por (empleado, columna). Si llegan duplicados gana el último.
	byEmp := map[string]map[colKey]entity.PayoutDetail{}
	for _, d := range details {
		m, ok := byEmp[d.EmployeeID]
		if !ok {
			m = map[colKey]entity.PayoutDetail{}
			byEmp[d.EmployeeID] = m
		}
		m[colKey{d.ComponentType, d.MetricName}] = d
	}

	// Empleados presentes en detalles pero no informados por el caller: fila
	// mínima al final, ordenada por id, para no perder montos.
	known := map[string]bool{}
	for _, e := range employees {
		known[e.EmployeeID] = true
	}
	var orphans []string
	for id := range byEmp {
		if !known[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	all := make([]EmployeeInfo, 0, len(employees)+len(orphans))
	all = append(all, employees...)
	for _, id := range orphans {
		all = append(all, EmployeeInfo{EmployeeID: id})
	}

	// 3. Construir filas y totales.
	rows := make([]Row, 0, len(all))
	for _, emp := range all {
		empDetails := byEmp[emp.EmployeeID]
		cells := make([][]Cell, len(columns))
		for ci, col := range columns {
			d, ok := empDetails[colKey{col.ComponentType, col.MetricName}]
			fieldCells := make([]Cell, len(col.Fields))
			if ok {
				for fi, f := range col.Fields {
					fieldCells[fi] = cellValue(d, f, emp.TargetBonusUSD)
				}
			}
			cells[ci] = fieldCells
		}
		rows = append(rows, Row{
			Employee: emp,
			Cells:    cells,
			Totals:   grandTotals(empDetails),
		})
	}

	return Workings{Columns: columns, Rows: rows}
}

// cellValue extrae el valor de una subcolumna de un detalle. OTE% se deriva
// siempre: allocated_ote / target_bonus_usd; guion si algún operando es cero.
func cellValue(d entity.PayoutDetail, field string, targetBonusUSD decimal.Decimal) Cell {
	switch field {
	case FieldTarget:
		return ptr(d.TargetUSD)
	case FieldActuals:
		return ptr(d.ActualsUSD)
	case FieldAchievementPct:
		return ptr(d.AchievementPct)
	case FieldOTEPct:
		if d.AllocatedOTEUSD.IsZero() || targetBonusUSD.IsZero() {
			return nil
		}
		v := d.AllocatedOTEUSD.Div(targetBonusUSD).Mul(decimal.NewFromInt(100))
		return &v
	case FieldAllocatedOTE:
		return ptr(d.AllocatedOTEUSD)
	case FieldMultiplier:
		return ptr(d.Multiplier)
	case FieldCommissionRate:
		return ptr(d.CommissionRatePct)
	case FieldYTDEligible:
		return ptr(d.YTDEligibleUSD)
	case FieldEligibleTillLastMonth:
		return ptr(d.EligibleTillLastMonthUSD)
	case FieldIncrementalEligible:
		return ptr(d.IncrementalEligibleUSD)
	case FieldBooking:
		return ptr(d.BookingUSD)
	case FieldCollection:
		return ptr(d.CollectionUSD)
	case FieldYearEnd:
		return ptr(d.YearEndUSD)
	default:
		return nil
	}
}

// grandTotals agrega los cuatro totales del empleado:
//
//	total del mes      = Σ incremental_eligible (todos los componentes)
//	pagable del mes    = Σ booking + Σ incremental(collection_release)
//	                   + Σ incremental(year_end_release) − Σ |incremental(clawback)|
//	retenido cobranza  = Σ collection
//	retenido cierre    = Σ year_end
func grandTotals(details map[colKey]entity.PayoutDetail) GrandTotals {
	var t GrandTotals
	for k, d := range details {
		t.TotalThisMonthUSD = t.TotalThisMonthUSD.Add(d.IncrementalEligibleUSD)
		t.CollectionHeldUSD = t.CollectionHeldUSD.Add(d.CollectionUSD)
		t.YearEndHeldUSD = t.YearEndHeldUSD.Add(d.YearEndUSD)

		t.CurrentMonthPayableUSD = t.CurrentMonthPayableUSD.Add(d.BookingUSD)
		switch k.component {
		case entity.ComponentCollectionRelease, entity.ComponentYearEndRelease:
			t.CurrentMonthPayableUSD = t.CurrentMonthPayableUSD.Add(d.IncrementalEligibleUSD)
		case entity.ComponentClawback:
			t.CurrentMonthPayableUSD = t.CurrentMonthPayableUSD.Sub(d.IncrementalEligibleUSD.Abs())
		}
	}
	return t
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }
