package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRequest alta/edición de una moneda.
type CurrencyRequest struct {
	Code     string `json:"code" validate:"required,min=2,max=5"`
	Name     string `json:"name" validate:"required"`
	Symbol   string `json:"symbol"`
	IsActive *bool  `json:"is_active"`
}

// CurrencyResponse salida de una moneda.
type CurrencyResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertRateRequest tasa mensual de conversión a USD.
type UpsertRateRequest struct {
	CurrencyCode string          `json:"currency_code" validate:"required"`
	MonthYear    string          `json:"month_year" validate:"required"`
	RateToUSD    decimal.Decimal `json:"rate_to_usd" validate:"required"`
}

// RateResponse salida de una tasa.
type RateResponse struct {
	ID           string          `json:"id"`
	CurrencyCode string          `json:"currency_code"`
	MonthYear    string          `json:"month_year"`
	RateToUSD    decimal.Decimal `json:"rate_to_usd"`
}
