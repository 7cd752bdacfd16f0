// Package pdf implementa la generación del comprobante de pago mensual de un
// empleado usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Payout Statement │ Mes + Estado de la corrida       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPLEADO: Código / Nombre / Moneda local                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total USD / Pagadero / Retenciones / Total local   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  AJUSTES APROBADOS: tipo | motivo | monto                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	payoutuc "github.com/mohan98521/gtm-variable-pay-sub001/internal/application/payout"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ payoutuc.StatementRenderer = (*MarotoStatementRenderer)(nil)

// MarotoStatementRenderer implementa payout.StatementRenderer usando Maroto v2.
type MarotoStatementRenderer struct{}

// NewMarotoStatementRenderer construye el renderer.
func NewMarotoStatementRenderer() *MarotoStatementRenderer { return &MarotoStatementRenderer{} }

// RenderStatement genera el comprobante y devuelve sus bytes.
func (g *MarotoStatementRenderer) RenderStatement(
	run *entity.PayoutRun,
	employee *entity.Employee,
	summary *entity.EmployeePayoutSummary,
	adjustments []*entity.PayoutAdjustment,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Payout Statement "+run.MonthYear, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(run))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(employee))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(summary)...)

	if len(adjustments) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(adjustmentRows(adjustments)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y mes + estado de la corrida (der).
func headerRow(run *entity.PayoutRun) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("PAYOUT STATEMENT", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Compensación variable y comisiones", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(run.MonthYear, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Estado: "+run.Status, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// employeeRow: datos del empleado.
func employeeRow(employee *entity.Employee) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EMPLEADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(employee.FullName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("ID: %s   |   Email: %s   |   Moneda local: %s",
				employee.EmployeeID, employee.Email, employee.LocalCurrency,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// totalsRows: bloque de totales del resumen.
func totalsRows(summary *entity.EmployeePayoutSummary) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return []core.Row{
		row.New(36).Add(
			col.New(2),
			col.New(5).Add(
				label("Total del mes (USD):"),
				label("Pagadero este mes (USD):"),
				label("Retenido a cobranza (USD):"),
				label("Retenido a cierre de año (USD):"),
				grandLabel(fmt.Sprintf("TOTAL EN %s:", summary.LocalCurrency)),
			),
			col.New(3).Add(
				value(summary.TotalPayoutUSD.StringFixed(2)),
				value(summary.CurrentMonthPayableUSD.StringFixed(2)),
				value(summary.CollectionHeldUSD.StringFixed(2)),
				value(summary.YearEndHeldUSD.StringFixed(2)),
				grandValue(summary.TotalPayoutLocal.StringFixed(2)),
			),
			col.New(2),
		),
	}
}

// adjustmentRows: tabla de ajustes aprobados aplicados al empleado.
func adjustmentRows(adjustments []*entity.PayoutAdjustment) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("AJUSTES APROBADOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(7).Add(
			col.New(3).Add(text.New("Tipo", props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			})),
			col.New(6).Add(text.New("Motivo", props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			})),
			col.New(3).Add(text.New("Monto (USD)", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		),
	}
	for _, a := range adjustments {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(a.Type, props.Text{Size: 8, Top: 1})),
			col.New(6).Add(text.New(a.Reason, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(a.AdjustmentAmountUSD.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return rows
}
