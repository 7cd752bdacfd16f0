package repository

import "github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"

// CurrencyRepository puerto de persistencia para monedas y tasas de cambio.
type CurrencyRepository interface {
	Create(c *entity.Currency) error
	GetByCode(code string) (*entity.Currency, error)
	List(activeOnly bool) ([]*entity.Currency, error)
	Update(c *entity.Currency) error
	Delete(code string) error
	// CountExchangeRates cuenta las filas de exchange_rates que referencian la moneda.
	CountExchangeRates(code string) (int, error)

	// UpsertRate inserta o actualiza por (currency_code, month_year).
	UpsertRate(r *entity.ExchangeRate) error
	ListRates(monthYear string) ([]*entity.ExchangeRate, error)
}
