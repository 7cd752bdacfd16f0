// Package export contiene los encoders de descarga: CSV, libro XLSX y el
// comprobante PDF. Solo dan formato; el contenido viene de los casos de uso.
package export

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	payoutuc "github.com/mohan98521/gtm-variable-pay-sub001/internal/application/payout"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
)

var _ payoutuc.WorkingsCSVEncoder = (*WorkingsCSV)(nil)

// WorkingsCSV serializa el pivot de una corrida como CSV de dos filas de
// encabezado: la primera agrupa por componente/métrica y la segunda enumera
// los subcampos. Las celdas sin valor se escriben como guion.
type WorkingsCSV struct{}

func NewWorkingsCSV() *WorkingsCSV {
	return &WorkingsCSV{}
}

var fixedHeaders = []string{"Employee ID", "Full Name", "Local Currency"}

var totalHeaders = []string{
	"Total This Month (USD)",
	"Current Month Payable (USD)",
	"Collection Held (USD)",
	"Year-End Held (USD)",
}

// EncodeWorkings escribe el pivot completo.
func (e *WorkingsCSV) EncodeWorkings(w io.Writer, res *dto.WorkingsResponse) error {
	cw := csv.NewWriter(w)

	// Primera fila: el nombre del grupo en la primera celda de cada bloque.
	group := make([]string, 0, len(fixedHeaders))
	for range fixedHeaders {
		group = append(group, "")
	}
	for _, col := range res.Columns {
		label := col.ComponentType
		if col.MetricName != "" {
			label += " / " + col.MetricName
		}
		for i := range col.Fields {
			if i == 0 {
				group = append(group, label)
			} else {
				group = append(group, "")
			}
		}
	}
	for range totalHeaders {
		group = append(group, "")
	}
	if err := cw.Write(group); err != nil {
		return err
	}

	// Segunda fila: subcampos.
	sub := append([]string{}, fixedHeaders...)
	for _, col := range res.Columns {
		sub = append(sub, col.Fields...)
	}
	sub = append(sub, totalHeaders...)
	if err := cw.Write(sub); err != nil {
		return err
	}

	for _, row := range res.Rows {
		rec := []string{row.EmployeeCode, row.FullName, row.LocalCurrency}
		for _, cells := range row.Cells {
			for _, cell := range cells {
				rec = append(rec, cellString(cell))
			}
		}
		rec = append(rec,
			row.TotalThisMonthUSD.StringFixed(2),
			row.CurrentMonthPayableUSD.StringFixed(2),
			row.CollectionHeldUSD.StringFixed(2),
			row.YearEndHeldUSD.StringFixed(2),
		)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func cellString(c *decimal.Decimal) string {
	if c == nil {
		return "-"
	}
	return c.StringFixed(2)
}

// EmployeeCSV serializa el directorio de empleados con las mismas columnas que
// acepta la importación, para que el archivo exportado sirva de plantilla.
type EmployeeCSV struct{}

func NewEmployeeCSV() *EmployeeCSV {
	return &EmployeeCSV{}
}

var employeeHeaders = []string{
	"employee_id", "full_name", "email", "designation", "department",
	"country", "city", "region", "group_name", "business_unit",
	"function_area", "sales_function", "manager_employee_id",
	"date_of_hire", "departure_date", "local_currency", "is_active",
}

// EncodeEmployees escribe la lista de empleados como CSV.
func (e *EmployeeCSV) EncodeEmployees(w io.Writer, employees []*entity.Employee) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(employeeHeaders); err != nil {
		return err
	}
	for _, emp := range employees {
		rec := []string{
			emp.EmployeeID,
			emp.FullName,
			emp.Email,
			deref(emp.Designation),
			deref(emp.Department),
			deref(emp.Country),
			deref(emp.City),
			deref(emp.Region),
			deref(emp.GroupName),
			deref(emp.BusinessUnit),
			deref(emp.FunctionArea),
			deref(emp.SalesFunction),
			deref(emp.ManagerEmployeeID),
			dateString(emp.DateOfHire),
			dateString(emp.DepartureDate),
			emp.LocalCurrency,
			boolString(emp.IsActive),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
