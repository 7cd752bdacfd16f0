package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrency moneda base del sistema. Protegida: no se edita (más allá del
// estado) ni se elimina.
const BaseCurrency = "USD"

// Currency moneda operativa. Code es único, de 2 a 5 caracteres.
type Currency struct {
	Code      string
	Name      string
	Symbol    string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExchangeRate tasa mensual de conversión a USD para una moneda.
type ExchangeRate struct {
	ID           string
	CurrencyCode string
	MonthYear    string // "2025-07"
	RateToUSD    decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
