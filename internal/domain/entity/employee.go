package entity

import "time"

// Employee empleado del equipo GTM. EmployeeID es el código de nómina (único,
// distinto del uuid ID). La baja es lógica vía IsActive; la fila nunca se
// borra para no romper el histórico de pagos.
type Employee struct {
	ID                string
	EmployeeID        string
	FullName          string
	Email             string
	Designation       *string
	Country           *string
	City              *string
	DateOfHire        *time.Time
	DepartureDate     *time.Time
	Department        *string
	Region            *string
	GroupName         *string
	BusinessUnit      *string
	FunctionArea      *string
	SalesFunction     *string
	LocalCurrency     string
	ManagerEmployeeID *string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
