package repository

import "github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
// Los Get* devuelven (nil, nil) si no existe.
type EmployeeRepository interface {
	Create(e *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	GetByEmail(email string) (*entity.Employee, error)
	GetByEmployeeID(employeeID string) (*entity.Employee, error)
	Update(e *entity.Employee) error
	List(activeOnly bool, limit, offset int) ([]*entity.Employee, error)
	ListAll() ([]*entity.Employee, error)
	CountByLocalCurrency(code string) (int, error)
}
