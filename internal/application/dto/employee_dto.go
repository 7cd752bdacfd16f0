package dto

import "time"

// CreateEmployeeRequest entrada para crear un empleado.
type CreateEmployeeRequest struct {
	EmployeeID        string  `json:"employee_id" validate:"required"`
	FullName          string  `json:"full_name" validate:"required"`
	Email             string  `json:"email" validate:"required,email"`
	Designation       *string `json:"designation"`
	Country           *string `json:"country"`
	City              *string `json:"city"`
	DateOfHire        *string `json:"date_of_hire"`    // YYYY-MM-DD
	DepartureDate     *string `json:"departure_date"`  // YYYY-MM-DD
	Department        *string `json:"department"`
	Region            *string `json:"region"`
	GroupName         *string `json:"group_name"`
	BusinessUnit      *string `json:"business_unit"`
	FunctionArea      *string `json:"function_area"`
	SalesFunction     *string `json:"sales_function"`
	LocalCurrency     string  `json:"local_currency"`
	ManagerEmployeeID *string `json:"manager_employee_id"`
	IsActive          *bool   `json:"is_active"` // nil = true
}

// UpdateEmployeeRequest entrada para actualizar (campos opcionales).
type UpdateEmployeeRequest struct {
	FullName          *string `json:"full_name"`
	Email             *string `json:"email"`
	Designation       *string `json:"designation"`
	Country           *string `json:"country"`
	City              *string `json:"city"`
	DateOfHire        *string `json:"date_of_hire"`
	DepartureDate     *string `json:"departure_date"`
	Department        *string `json:"department"`
	Region            *string `json:"region"`
	GroupName         *string `json:"group_name"`
	BusinessUnit      *string `json:"business_unit"`
	FunctionArea      *string `json:"function_area"`
	SalesFunction     *string `json:"sales_function"`
	LocalCurrency     *string `json:"local_currency"`
	ManagerEmployeeID *string `json:"manager_employee_id"`
	IsActive          *bool   `json:"is_active"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID                string     `json:"id"`
	EmployeeID        string     `json:"employee_id"`
	FullName          string     `json:"full_name"`
	Email             string     `json:"email"`
	Designation       *string    `json:"designation,omitempty"`
	Country           *string    `json:"country,omitempty"`
	City              *string    `json:"city,omitempty"`
	DateOfHire        *time.Time `json:"date_of_hire,omitempty"`
	DepartureDate     *time.Time `json:"departure_date,omitempty"`
	Department        *string    `json:"department,omitempty"`
	Region            *string    `json:"region,omitempty"`
	GroupName         *string    `json:"group_name,omitempty"`
	BusinessUnit      *string    `json:"business_unit,omitempty"`
	FunctionArea      *string    `json:"function_area,omitempty"`
	SalesFunction     *string    `json:"sales_function,omitempty"`
	LocalCurrency     string     `json:"local_currency"`
	ManagerEmployeeID *string    `json:"manager_employee_id,omitempty"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// EmployeeListResponse lista paginada de empleados.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
