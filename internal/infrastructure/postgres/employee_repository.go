package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, employee_id, full_name, email, designation, country, city,
	date_of_hire, departure_date, department, region, group_name, business_unit,
	function_area, sales_function, local_currency, manager_employee_id, is_active,
	created_at, updated_at`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un empleado nuevo.
func (r *EmployeeRepo) Create(e *entity.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.EmployeeID, e.FullName, e.Email, e.Designation, e.Country, e.City,
		e.DateOfHire, e.DepartureDate, e.Department, e.Region, e.GroupName, e.BusinessUnit,
		e.FunctionArea, e.SalesFunction, e.LocalCurrency, e.ManagerEmployeeID, e.IsActive,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por uuid.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	return r.getBy("id = $1", id)
}

// GetByEmail obtiene un empleado por email.
func (r *EmployeeRepo) GetByEmail(email string) (*entity.Employee, error) {
	return r.getBy("email = $1", email)
}

// GetByEmployeeID obtiene un empleado por código de nómina.
func (r *EmployeeRepo) GetByEmployeeID(employeeID string) (*entity.Employee, error) {
	return r.getBy("employee_id = $1", employeeID)
}

func (r *EmployeeRepo) getBy(where string, arg any) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + where
	var e entity.Employee
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&e.ID, &e.EmployeeID, &e.FullName, &e.Email, &e.Designation, &e.Country, &e.City,
		&e.DateOfHire, &e.DepartureDate, &e.Department, &e.Region, &e.GroupName, &e.BusinessUnit,
		&e.FunctionArea, &e.SalesFunction, &e.LocalCurrency, &e.ManagerEmployeeID, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// Update actualiza todos los campos editables del empleado.
func (r *EmployeeRepo) Update(e *entity.Employee) error {
	query := `
		UPDATE employees SET employee_id = $2, full_name = $3, email = $4, designation = $5,
			country = $6, city = $7, date_of_hire = $8, departure_date = $9, department = $10,
			region = $11, group_name = $12, business_unit = $13, function_area = $14,
			sales_function = $15, local_currency = $16, manager_employee_id = $17,
			is_active = $18, updated_at = $19
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		e.ID, e.EmployeeID, e.FullName, e.Email, e.Designation, e.Country, e.City,
		e.DateOfHire, e.DepartureDate, e.Department, e.Region, e.GroupName, e.BusinessUnit,
		e.FunctionArea, e.SalesFunction, e.LocalCurrency, e.ManagerEmployeeID, e.IsActive,
		e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista empleados con paginación, ordenados por código de nómina.
func (r *EmployeeRepo) List(activeOnly bool, limit, offset int) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY employee_id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// ListAll lista todos los empleados sin paginar (para exports).
func (r *EmployeeRepo) ListAll() ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY employee_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all employees: %w", err)
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// CountByLocalCurrency cuenta los empleados que usan la moneda.
func (r *EmployeeRepo) CountByLocalCurrency(code string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM employees WHERE local_currency = $1`, code).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count employees by currency: %w", err)
	}
	return n, nil
}

func scanEmployees(rows pgx.Rows) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.FullName, &e.Email, &e.Designation, &e.Country, &e.City,
			&e.DateOfHire, &e.DepartureDate, &e.Department, &e.Region, &e.GroupName, &e.BusinessUnit,
			&e.FunctionArea, &e.SalesFunction, &e.LocalCurrency, &e.ManagerEmployeeID, &e.IsActive,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
