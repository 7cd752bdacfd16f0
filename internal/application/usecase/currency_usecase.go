package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
	"github.com/google/uuid"
)

// CurrencyUseCase casos de uso para monedas y tasas de cambio. USD es la base
// protegida: no se edita (más allá del estado) ni se elimina.
type CurrencyUseCase struct {
	repo    repository.CurrencyRepository
	empRepo repository.EmployeeRepository
	bus     ports.CacheBus
}

// NewCurrencyUseCase construye el caso de uso.
func NewCurrencyUseCase(repo repository.CurrencyRepository, empRepo repository.EmployeeRepository, bus ports.CacheBus) *CurrencyUseCase {
	return &CurrencyUseCase{repo: repo, empRepo: empRepo, bus: bus}
}

// Create crea una moneda. Code se normaliza a mayúsculas, 2–5 caracteres.
func (uc *CurrencyUseCase) Create(ctx context.Context, in dto.CurrencyRequest) (*dto.CurrencyResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if len(code) < 2 || len(code) > 5 || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetByCode(code); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	c := &entity.Currency{
		Code:      code,
		Name:      in.Name,
		Symbol:    in.Symbol,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityCurrencies, c.Code)
	return toCurrencyResponse(c), nil
}

// Update actualiza una moneda. Para USD solo se admite el cambio de estado.
func (uc *CurrencyUseCase) Update(ctx context.Context, code string, in dto.CurrencyRequest) (*dto.CurrencyResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	c, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	if code == entity.BaseCurrency {
		// Solo el flag de estado es editable en la moneda base.
		if in.Name != "" && in.Name != c.Name || in.Symbol != "" && in.Symbol != c.Symbol {
			return nil, domain.ErrProtectedCurrency
		}
	} else {
		if in.Name != "" {
			c.Name = in.Name
		}
		if in.Symbol != "" {
			c.Symbol = in.Symbol
		}
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityCurrencies, c.Code)
	return toCurrencyResponse(c), nil
}

// Delete elimina una moneda. USD está protegida. Se bloquea si algún empleado
// la usa como moneda local o si hay tasas de cambio que la referencian; el
// mensaje reporta ambos conteos exactos.
func (uc *CurrencyUseCase) Delete(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == entity.BaseCurrency {
		return domain.ErrProtectedCurrency
	}
	c, err := uc.repo.GetByCode(code)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	employees, err := uc.empRepo.CountByLocalCurrency(code)
	if err != nil {
		return err
	}
	rates, err := uc.repo.CountExchangeRates(code)
	if err != nil {
		return err
	}
	if employees > 0 || rates > 0 {
		return fmt.Errorf("%w: %d empleado(s) y %d tasa(s) de cambio referencian %s",
			domain.ErrCurrencyInUse, employees, rates, code)
	}
	if err := uc.repo.Delete(code); err != nil {
		return err
	}
	uc.bus.PublishChange(ctx, ports.EntityCurrencies, code)
	return nil
}

// List lista monedas.
func (uc *CurrencyUseCase) List(activeOnly bool) ([]dto.CurrencyResponse, error) {
	list, err := uc.repo.List(activeOnly)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CurrencyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCurrencyResponse(c))
	}
	return items, nil
}

// UpsertRate inserta o actualiza la tasa mensual de una moneda a USD.
func (uc *CurrencyUseCase) UpsertRate(ctx context.Context, in dto.UpsertRateRequest) (*dto.RateResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.CurrencyCode))
	if code == "" || in.MonthYear == "" || !in.RateToUSD.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	r := &entity.ExchangeRate{
		ID:           uuid.New().String(),
		CurrencyCode: code,
		MonthYear:    in.MonthYear,
		RateToUSD:    in.RateToUSD,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.UpsertRate(r); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityExchangeRates, r.ID)
	return &dto.RateResponse{
		ID:           r.ID,
		CurrencyCode: r.CurrencyCode,
		MonthYear:    r.MonthYear,
		RateToUSD:    r.RateToUSD,
	}, nil
}

// ListRates lista las tasas de un mes.
func (uc *CurrencyUseCase) ListRates(monthYear string) ([]dto.RateResponse, error) {
	list, err := uc.repo.ListRates(monthYear)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RateResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.RateResponse{
			ID:           r.ID,
			CurrencyCode: r.CurrencyCode,
			MonthYear:    r.MonthYear,
			RateToUSD:    r.RateToUSD,
		})
	}
	return items, nil
}

func toCurrencyResponse(c *entity.Currency) *dto.CurrencyResponse {
	return &dto.CurrencyResponse{
		Code:      c.Code,
		Name:      c.Name,
		Symbol:    c.Symbol,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}
