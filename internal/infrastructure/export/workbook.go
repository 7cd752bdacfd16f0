package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	payoutuc "github.com/mohan98521/gtm-variable-pay-sub001/internal/application/payout"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
)

var _ payoutuc.WorkingsWorkbookEncoder = (*Workbook)(nil)

// Workbook arma el libro XLSX de una corrida: hoja de resumen, directorio de
// empleados, una hoja por moneda local y el detalle completo del pivot.
type Workbook struct{}

func NewWorkbook() *Workbook {
	return &Workbook{}
}

// EncodeWorkbook genera el libro completo.
func (e *Workbook) EncodeWorkbook(res *dto.WorkingsResponse, summaries []entity.EmployeePayoutSummary, employees []*entity.Employee) ([]byte, error) {
	f := excelize.NewFile()

	byID := make(map[string]*entity.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	if err := e.writeSummary(f, res, summaries, byID); err != nil {
		return nil, err
	}
	if err := e.writeEmployees(f, employees); err != nil {
		return nil, err
	}
	if err := e.writeCurrencySheets(f, summaries, byID); err != nil {
		return nil, err
	}
	if err := e.writeWorkings(f, res); err != nil {
		return nil, err
	}
	if err := e.writeDealWorkings(f, res); err != nil {
		return nil, err
	}

	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex("Summary"); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	return style
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for c, v := range values {
		cell, err := excelize.CoordinatesToCellName(c+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Workbook) writeSummary(f *excelize.File, res *dto.WorkingsResponse, summaries []entity.EmployeePayoutSummary, byID map[string]*entity.Employee) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []any{
		"Employee ID", "Full Name", "Local Currency",
		"Total Payout (USD)", "Current Month Payable (USD)",
		"Collection Held (USD)", "Year-End Held (USD)", "Total Payout (Local)",
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, s := range summaries {
		code, name := "", ""
		if emp := byID[s.EmployeeID]; emp != nil {
			code, name = emp.EmployeeID, emp.FullName
		}
		values := []any{
			code, name, s.LocalCurrency,
			s.TotalPayoutUSD.InexactFloat64(),
			s.CurrentMonthPayableUSD.InexactFloat64(),
			s.CollectionHeldUSD.InexactFloat64(),
			s.YearEndHeldUSD.InexactFloat64(),
			s.TotalPayoutLocal.InexactFloat64(),
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "A", "B", 24)
	_ = f.SetColWidth(sheet, "C", "H", 18)
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	_ = f.SetCellStyle(sheet, "A1", last, headerStyle(f))
	return nil
}

func (e *Workbook) writeEmployees(f *excelize.File, employees []*entity.Employee) error {
	const sheet = "All Employees"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []any{
		"Employee ID", "Full Name", "Email", "Designation", "Department",
		"Country", "Region", "Local Currency", "Active",
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, emp := range employees {
		values := []any{
			emp.EmployeeID, emp.FullName, emp.Email,
			deref(emp.Designation), deref(emp.Department),
			deref(emp.Country), deref(emp.Region),
			emp.LocalCurrency, emp.IsActive,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "A", "C", 26)
	_ = f.SetColWidth(sheet, "D", "I", 18)
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	_ = f.SetCellStyle(sheet, "A1", last, headerStyle(f))
	return nil
}

// writeCurrencySheets crea una hoja por moneda local con los resúmenes de esa
// moneda, para que cada equipo de nómina reciba su corte.
func (e *Workbook) writeCurrencySheets(f *excelize.File, summaries []entity.EmployeePayoutSummary, byID map[string]*entity.Employee) error {
	byCurrency := make(map[string][]entity.EmployeePayoutSummary)
	for _, s := range summaries {
		byCurrency[s.LocalCurrency] = append(byCurrency[s.LocalCurrency], s)
	}
	currencies := make([]string, 0, len(byCurrency))
	for c := range byCurrency {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	for _, currency := range currencies {
		sheet := "Payout " + currency
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		header := []any{"Employee ID", "Full Name", "Total Payout (USD)", fmt.Sprintf("Total Payout (%s)", currency)}
		if err := writeRow(f, sheet, 1, header); err != nil {
			return err
		}
		for i, s := range byCurrency[currency] {
			code, name := "", ""
			if emp := byID[s.EmployeeID]; emp != nil {
				code, name = emp.EmployeeID, emp.FullName
			}
			values := []any{code, name, s.TotalPayoutUSD.InexactFloat64(), s.TotalPayoutLocal.InexactFloat64()}
			if err := writeRow(f, sheet, i+2, values); err != nil {
				return err
			}
		}
		_ = f.SetColWidth(sheet, "A", "B", 24)
		_ = f.SetColWidth(sheet, "C", "D", 20)
		_ = f.SetCellStyle(sheet, "A1", "D1", headerStyle(f))
	}
	return nil
}

func (e *Workbook) writeWorkings(f *excelize.File, res *dto.WorkingsResponse) error {
	const sheet = "Detailed Workings"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	// Dos filas de encabezado: grupo componente/métrica y subcampos.
	group := []any{"", "", ""}
	sub := []any{"Employee ID", "Full Name", "Local Currency"}
	for _, col := range res.Columns {
		label := col.ComponentType
		if col.MetricName != "" {
			label += " / " + col.MetricName
		}
		for i, field := range col.Fields {
			if i == 0 {
				group = append(group, label)
			} else {
				group = append(group, "")
			}
			sub = append(sub, field)
		}
	}
	for _, h := range totalHeaders {
		group = append(group, "")
		sub = append(sub, h)
	}
	if err := writeRow(f, sheet, 1, group); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 2, sub); err != nil {
		return err
	}

	for i, row := range res.Rows {
		values := []any{row.EmployeeCode, row.FullName, row.LocalCurrency}
		for _, cells := range row.Cells {
			for _, cell := range cells {
				if cell == nil {
					values = append(values, "-")
				} else {
					values = append(values, cell.InexactFloat64())
				}
			}
		}
		values = append(values,
			row.TotalThisMonthUSD.InexactFloat64(),
			row.CurrentMonthPayableUSD.InexactFloat64(),
			row.CollectionHeldUSD.InexactFloat64(),
			row.YearEndHeldUSD.InexactFloat64(),
		)
		if err := writeRow(f, sheet, i+3, values); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(sheet, "A", "B", 24)
	last, _ := excelize.CoordinatesToCellName(len(sub), 2)
	_ = f.SetCellStyle(sheet, "A1", last, headerStyle(f))
	return nil
}

// writeDealWorkings recorta el pivot a los componentes de SPIFF de equipo de
// negocio. Solo se listan los empleados con al menos una celda con valor. La
// hoja existe siempre, aunque la corrida no tenga ese componente, para que la
// forma del libro sea estable.
func (e *Workbook) writeDealWorkings(f *excelize.File, res *dto.WorkingsResponse) error {
	var colIdx []int
	for i, col := range res.Columns {
		if col.ComponentType == entity.ComponentDealTeamSpiff {
			colIdx = append(colIdx, i)
		}
	}

	const sheet = "Deal Workings"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	group := []any{"", "", ""}
	sub := []any{"Employee ID", "Full Name", "Local Currency"}
	for _, i := range colIdx {
		col := res.Columns[i]
		label := col.ComponentType
		if col.MetricName != "" {
			label += " / " + col.MetricName
		}
		for j, field := range col.Fields {
			if j == 0 {
				group = append(group, label)
			} else {
				group = append(group, "")
			}
			sub = append(sub, field)
		}
	}
	if err := writeRow(f, sheet, 1, group); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 2, sub); err != nil {
		return err
	}

	out := 3
	for _, row := range res.Rows {
		values := []any{row.EmployeeCode, row.FullName, row.LocalCurrency}
		hasValue := false
		for _, i := range colIdx {
			for _, cell := range row.Cells[i] {
				if cell == nil {
					values = append(values, "-")
				} else {
					hasValue = true
					values = append(values, cell.InexactFloat64())
				}
			}
		}
		if !hasValue {
			continue
		}
		if err := writeRow(f, sheet, out, values); err != nil {
			return err
		}
		out++
	}

	_ = f.SetColWidth(sheet, "A", "B", 24)
	last, _ := excelize.CoordinatesToCellName(len(sub), 2)
	_ = f.SetCellStyle(sheet, "A1", last, headerStyle(f))
	return nil
}
