package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// EmployeeUseCase casos de uso CRUD para empleados. La baja es lógica
// (IsActive=false); nunca se borra la fila.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
	bus  ports.CacheBus
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, bus ports.CacheBus) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, bus: bus}
}

// Create crea un empleado. Rechaza email o employee_id ya registrados.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.EmployeeID == "" || in.FullName == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetByEmail(in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if existing, _ := uc.repo.GetByEmployeeID(in.EmployeeID); existing != nil {
		return nil, domain.ErrDuplicate
	}

	hire, err := parseDatePtr(in.DateOfHire)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	departure, err := parseDatePtr(in.DepartureDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	currency := in.LocalCurrency
	if currency == "" {
		currency = entity.BaseCurrency
	}
	e := &entity.Employee{
		ID:                uuid.New().String(),
		EmployeeID:        in.EmployeeID,
		FullName:          in.FullName,
		Email:             in.Email,
		Designation:       in.Designation,
		Country:           in.Country,
		City:              in.City,
		DateOfHire:        hire,
		DepartureDate:     departure,
		Department:        in.Department,
		Region:            in.Region,
		GroupName:         in.GroupName,
		BusinessUnit:      in.BusinessUnit,
		FunctionArea:      in.FunctionArea,
		SalesFunction:     in.SalesFunction,
		LocalCurrency:     currency,
		ManagerEmployeeID: in.ManagerEmployeeID,
		IsActive:          active,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(e); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityEmployees, e.ID)
	return toEmployeeResponse(e), nil
}

// GetByID obtiene un empleado por ID.
func (uc *EmployeeUseCase) GetByID(id string) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return toEmployeeResponse(e), nil
}

// Update actualiza los campos presentes del empleado.
func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	if in.FullName != nil {
		e.FullName = *in.FullName
	}
	if in.Email != nil {
		e.Email = *in.Email
	}
	if in.Designation != nil {
		e.Designation = in.Designation
	}
	if in.Country != nil {
		e.Country = in.Country
	}
	if in.City != nil {
		e.City = in.City
	}
	if in.DateOfHire != nil {
		d, err := parseDatePtr(in.DateOfHire)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		e.DateOfHire = d
	}
	if in.DepartureDate != nil {
		d, err := parseDatePtr(in.DepartureDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		e.DepartureDate = d
	}
	if in.Department != nil {
		e.Department = in.Department
	}
	if in.Region != nil {
		e.Region = in.Region
	}
	if in.GroupName != nil {
		e.GroupName = in.GroupName
	}
	if in.BusinessUnit != nil {
		e.BusinessUnit = in.BusinessUnit
	}
	if in.FunctionArea != nil {
		e.FunctionArea = in.FunctionArea
	}
	if in.SalesFunction != nil {
		e.SalesFunction = in.SalesFunction
	}
	if in.LocalCurrency != nil {
		e.LocalCurrency = *in.LocalCurrency
	}
	if in.ManagerEmployeeID != nil {
		e.ManagerEmployeeID = in.ManagerEmployeeID
	}
	if in.IsActive != nil {
		e.IsActive = *in.IsActive
	}
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(e); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityEmployees, e.ID)
	return toEmployeeResponse(e), nil
}

// Deactivate marca el empleado como inactivo (no hay borrado físico).
func (uc *EmployeeUseCase) Deactivate(ctx context.Context, id string) error {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	e.IsActive = false
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(e); err != nil {
		return err
	}
	uc.bus.PublishChange(ctx, ports.EntityEmployees, e.ID)
	return nil
}

// List lista empleados con paginación.
func (uc *EmployeeUseCase) List(activeOnly bool, limit, offset int) (*dto.EmployeeListResponse, error) {
	list, err := uc.repo.List(activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return &dto.EmployeeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:                e.ID,
		EmployeeID:        e.EmployeeID,
		FullName:          e.FullName,
		Email:             e.Email,
		Designation:       e.Designation,
		Country:           e.Country,
		City:              e.City,
		DateOfHire:        e.DateOfHire,
		DepartureDate:     e.DepartureDate,
		Department:        e.Department,
		Region:            e.Region,
		GroupName:         e.GroupName,
		BusinessUnit:      e.BusinessUnit,
		FunctionArea:      e.FunctionArea,
		SalesFunction:     e.SalesFunction,
		LocalCurrency:     e.LocalCurrency,
		ManagerEmployeeID: e.ManagerEmployeeID,
		IsActive:          e.IsActive,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// parseDatePtr convierte "YYYY-MM-DD" a *time.Time; cadena vacía o nil → nil.
func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
