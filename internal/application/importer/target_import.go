package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// TargetImporter upsert masivo de objetivos trimestrales desde CSV. Columnas:
// employee_id o email (resuelve al empleado, email manda), metric_type y
// q1..q4 en USD.
type TargetImporter struct {
	targetRepo repository.TargetRepository
	empRepo    repository.EmployeeRepository
	bus        ports.CacheBus
}

// NewTargetImporter construye el importador.
func NewTargetImporter(targetRepo repository.TargetRepository, empRepo repository.EmployeeRepository, bus ports.CacheBus) *TargetImporter {
	return &TargetImporter{targetRepo: targetRepo, empRepo: empRepo, bus: bus}
}

// Import procesa el archivo completo fila a fila.
func (imp *TargetImporter) Import(ctx context.Context, src io.Reader) (*dto.ImportResult, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{Errors: []string{}}
	rowNum := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Fila %d: %v", rowNum, err))
			continue
		}
		if err := imp.importRow(h, row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Fila %d: %v", rowNum, err))
		}
	}
	if result.Created > 0 || result.Updated > 0 {
		imp.bus.PublishChange(ctx, ports.EntityPerformanceTargets, "")
	}
	return result, nil
}

func (imp *TargetImporter) importRow(h header, row []string, result *dto.ImportResult) error {
	metricType := h.get(row, "metric_type")
	if metricType == "" {
		return fmt.Errorf("metric_type faltante")
	}

	emp, err := imp.resolveEmployee(h.get(row, "email"), h.get(row, "employee_id"))
	if err != nil {
		return err
	}

	q1, err := parseAmountCell(h.get(row, "q1_target_usd"))
	if err != nil {
		return fmt.Errorf("q1_target_usd inválido: %v", err)
	}
	q2, err := parseAmountCell(h.get(row, "q2_target_usd"))
	if err != nil {
		return fmt.Errorf("q2_target_usd inválido: %v", err)
	}
	q3, err := parseAmountCell(h.get(row, "q3_target_usd"))
	if err != nil {
		return fmt.Errorf("q3_target_usd inválido: %v", err)
	}
	q4, err := parseAmountCell(h.get(row, "q4_target_usd"))
	if err != nil {
		return fmt.Errorf("q4_target_usd inválido: %v", err)
	}

	now := time.Now()
	t := &entity.PerformanceTarget{
		ID:          uuid.New().String(),
		EmployeeID:  emp.ID,
		MetricType:  metricType,
		Q1TargetUSD: q1,
		Q2TargetUSD: q2,
		Q3TargetUSD: q3,
		Q4TargetUSD: q4,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !t.HasNonZeroQuarter() {
		return fmt.Errorf("al menos un trimestre debe ser distinto de cero")
	}

	existing, err := imp.targetRepo.GetPerformanceTarget(emp.ID, metricType)
	if err != nil {
		return err
	}
	if err := imp.targetRepo.UpsertPerformanceTarget(t); err != nil {
		return err
	}
	if existing == nil {
		result.Created++
	} else {
		result.Updated++
	}
	return nil
}

// resolveEmployee resuelve al empleado con la misma precedencia que el
// importador de empleados: email primero, employee_id como respaldo.
func (imp *TargetImporter) resolveEmployee(email, employeeID string) (*entity.Employee, error) {
	if email == "" && employeeID == "" {
		return nil, fmt.Errorf("employee_id faltante o inválido")
	}
	if email != "" {
		emp, err := imp.empRepo.GetByEmail(email)
		if err != nil {
			return nil, err
		}
		if emp != nil {
			return emp, nil
		}
	}
	if employeeID != "" {
		emp, err := imp.empRepo.GetByEmployeeID(employeeID)
		if err != nil {
			return nil, err
		}
		if emp != nil {
			return emp, nil
		}
	}
	return nil, fmt.Errorf("empleado no encontrado")
}

func parseAmountCell(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
