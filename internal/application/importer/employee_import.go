// Package importer carga masiva desde CSV: empleados y objetivos trimestrales.
// Cada fila se valida y aplica de forma independiente; una fila mala se
// reporta como "Fila <n>: <mensaje>" y nunca aborta el resto del archivo.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// EmployeeImporter upsert masivo de empleados desde CSV. Las filas pueden
// traer además las columnas de asignación de plan (plan_name en adelante); en
// ese caso se resuelve el plan y el perfil de login y se upserta el UserTarget
// de la fila.
type EmployeeImporter struct {
	repo       repository.EmployeeRepository
	planRepo   repository.PlanRepository
	userRepo   repository.UserRepository
	targetRepo repository.TargetRepository
	bus        ports.CacheBus
}

// NewEmployeeImporter construye el importador.
func NewEmployeeImporter(
	repo repository.EmployeeRepository,
	planRepo repository.PlanRepository,
	userRepo repository.UserRepository,
	targetRepo repository.TargetRepository,
	bus ports.CacheBus,
) *EmployeeImporter {
	return &EmployeeImporter{repo: repo, planRepo: planRepo, userRepo: userRepo, targetRepo: targetRepo, bus: bus}
}

// header mapea nombres de columna (minúsculas, sin espacios laterales) a su
// índice. Columnas desconocidas se ignoran.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	h := make(header, len(row))
	for i, name := range row {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h, nil
}

// get devuelve la celda de la columna o "" si la columna no viene en el archivo.
func (h header) get(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Import procesa el archivo completo. La resolución de empleado existente es
// determinista: primero por email; si no hay match, por employee_id.
func (imp *EmployeeImporter) Import(ctx context.Context, src io.Reader) (*dto.ImportResult, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1 // filas cortas se toleran, celda ausente = ""

	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{Errors: []string{}}
	rowNum, targets := 0, 0
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
		targetSaved, err := imp.importRow(h, row, result)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Fila %d: %v", rowNum, err))
		}
		if targetSaved {
			targets++
		}
	}
	if result.Created > 0 || result.Updated > 0 {
		imp.bus.PublishChange(ctx, ports.EntityEmployees, "")
	}
	if targets > 0 {
		imp.bus.PublishChange(ctx, ports.EntityUserTargets, "")
	}
	return result, nil
}

func (imp *EmployeeImporter) importRow(h header, row []string, result *dto.ImportResult) (bool, error) {
	employeeID := h.get(row, "employee_id")
	fullName := h.get(row, "full_name")
	email := h.get(row, "email")

	if employeeID == "" {
		return false, fmt.Errorf("employee_id faltante o inválido")
	}
	if email == "" {
		return false, fmt.Errorf("email faltante o inválido")
	}

	// El email manda; employee_id solo resuelve si el email no matchea.
	existing, err := imp.repo.GetByEmail(email)
	if err != nil {
		return false, err
	}
	if existing == nil {
		existing, err = imp.repo.GetByEmployeeID(employeeID)
		if err != nil {
			return false, err
		}
	}

	hire, err := parseDateCell(h.get(row, "date_of_hire"))
	if err != nil {
		return false, fmt.Errorf("date_of_hire inválida: %v", err)
	}
	departure, err := parseDateCell(h.get(row, "departure_date"))
	if err != nil {
		return false, fmt.Errorf("departure_date inválida: %v", err)
	}

	now := time.Now()
	if existing == nil {
		if fullName == "" {
			return false, fmt.Errorf("full_name faltante")
		}
		currency := h.get(row, "local_currency")
		if currency == "" {
			currency = entity.BaseCurrency
		}
		e := &entity.Employee{
			ID:                uuid.New().String(),
			EmployeeID:        employeeID,
			FullName:          fullName,
			Email:             email,
			Designation:       optCell(h, row, "designation"),
			Country:           optCell(h, row, "country"),
			City:              optCell(h, row, "city"),
			DateOfHire:        hire,
			DepartureDate:     departure,
			Department:        optCell(h, row, "department"),
			Region:            optCell(h, row, "region"),
			GroupName:         optCell(h, row, "group_name"),
			BusinessUnit:      optCell(h, row, "business_unit"),
			FunctionArea:      optCell(h, row, "function_area"),
			SalesFunction:     optCell(h, row, "sales_function"),
			LocalCurrency:     strings.ToUpper(currency),
			ManagerEmployeeID: optCell(h, row, "manager_employee_id"),
			IsActive:          parseActiveCell(h.get(row, "is_active")),
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := imp.repo.Create(e); err != nil {
			return false, err
		}
		result.Created++
		return imp.importTarget(h, row, email)
	}

	// Update: solo pisa lo que la fila trae.
	existing.EmployeeID = employeeID
	existing.Email = email
	if fullName != "" {
		existing.FullName = fullName
	}
	applyOpt(h, row, "designation", &existing.Designation)
	applyOpt(h, row, "country", &existing.Country)
	applyOpt(h, row, "city", &existing.City)
	if hire != nil {
		existing.DateOfHire = hire
	}
	if departure != nil {
		existing.DepartureDate = departure
	}
	applyOpt(h, row, "department", &existing.Department)
	applyOpt(h, row, "region", &existing.Region)
	applyOpt(h, row, "group_name", &existing.GroupName)
	applyOpt(h, row, "business_unit", &existing.BusinessUnit)
	applyOpt(h, row, "function_area", &existing.FunctionArea)
	applyOpt(h, row, "sales_function", &existing.SalesFunction)
	if c := h.get(row, "local_currency"); c != "" {
		existing.LocalCurrency = strings.ToUpper(c)
	}
	applyOpt(h, row, "manager_employee_id", &existing.ManagerEmployeeID)
	if raw := h.get(row, "is_active"); raw != "" {
		existing.IsActive = parseActiveCell(raw)
	}
	existing.UpdatedAt = now
	if err := imp.repo.Update(existing); err != nil {
		return false, err
	}
	result.Updated++
	return imp.importTarget(h, row, email)
}

// importTarget aplica las columnas opcionales de asignación de plan. La fila
// participa solo si trae plan_name. El plan se resuelve por nombre y el año de
// effective_start_date; el perfil de login, por el email de la fila. Si alguno
// no resuelve, la fila queda como error (el empleado ya fue aplicado).
func (imp *EmployeeImporter) importTarget(h header, row []string, email string) (bool, error) {
	planName := h.get(row, "plan_name")
	if planName == "" {
		return false, nil
	}

	start, err := time.Parse("2006-01-02", h.get(row, "effective_start_date"))
	if err != nil {
		return false, fmt.Errorf("effective_start_date inválida: %v", err)
	}
	plan, err := imp.planRepo.GetPlanByNameAndYear(planName, start.Year())
	if err != nil {
		return false, err
	}
	if plan == nil {
		return false, fmt.Errorf("plan %q no existe para el año %d", planName, start.Year())
	}
	user, err := imp.userRepo.FindByEmail(email)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, fmt.Errorf("sin perfil de login para %s", email)
	}

	end, err := parseDateCell(h.get(row, "effective_end_date"))
	if err != nil {
		return false, fmt.Errorf("effective_end_date inválida: %v", err)
	}
	cells := map[string]decimal.Decimal{}
	for _, col := range []string{
		"target_value_annual", "target_bonus_percent",
		"tfp_local_currency", "ote_local_currency",
		"tfp_usd", "target_bonus_usd", "ote_usd",
	} {
		cells[col], err = parseAmountCell(h.get(row, col))
		if err != nil {
			return false, fmt.Errorf("%s inválida: %v", col, err)
		}
	}

	now := time.Now()
	t := &entity.UserTarget{
		ID:                 uuid.New().String(),
		UserID:             user.ID,
		PlanID:             plan.ID,
		EffectiveStartDate: start,
		EffectiveEndDate:   end,
		TargetValueAnnual:  cells["target_value_annual"],
		Currency:           strings.ToUpper(h.get(row, "currency")),
		TargetBonusPct:     cells["target_bonus_percent"],
		TFPLocal:           cells["tfp_local_currency"],
		OTELocal:           cells["ote_local_currency"],
		TFPUSD:             cells["tfp_usd"],
		TargetBonusUSD:     cells["target_bonus_usd"],
		OTEUSD:             cells["ote_usd"],
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := imp.targetRepo.UpsertUserTarget(t); err != nil {
		return false, err
	}
	return true, nil
}

// parseActiveCell interpreta is_active: solo el literal "false" (sin importar
// mayúsculas) desactiva; cualquier otro valor, incluido vacío, es activo.
func parseActiveCell(raw string) bool {
	return !strings.EqualFold(raw, "false")
}

func parseDateCell(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optCell(h header, row []string, col string) *string {
	v := h.get(row, col)
	if v == "" {
		return nil
	}
	return &v
}

func applyOpt(h header, row []string, col string, dst **string) {
	if v := h.get(row, col); v != "" {
		*dst = &v
	}
}
