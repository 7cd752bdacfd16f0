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

var _ repository.CurrencyRepository = (*CurrencyRepo)(nil)

// CurrencyRepo implementación del puerto CurrencyRepository sobre PostgreSQL.
type CurrencyRepo struct {
	q Querier
}

// NewCurrencyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCurrencyRepository(q Querier) *CurrencyRepo {
	return &CurrencyRepo{q: q}
}

// Create persiste una moneda.
func (r *CurrencyRepo) Create(c *entity.Currency) error {
	query := `
		INSERT INTO currencies (code, name, symbol, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		c.Code, c.Name, c.Symbol, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert currency: %w", err)
	}
	return nil
}

// GetByCode obtiene una moneda por código.
func (r *CurrencyRepo) GetByCode(code string) (*entity.Currency, error) {
	query := `SELECT code, name, symbol, is_active, created_at, updated_at FROM currencies WHERE code = $1`
	var c entity.Currency
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&c.Code, &c.Name, &c.Symbol, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get currency: %w", err)
	}
	return &c, nil
}

// List lista monedas, opcionalmente solo activas.
func (r *CurrencyRepo) List(activeOnly bool) ([]*entity.Currency, error) {
	query := `SELECT code, name, symbol, is_active, created_at, updated_at FROM currencies`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()

	var out []*entity.Currency
	for rows.Next() {
		var c entity.Currency
		if err := rows.Scan(&c.Code, &c.Name, &c.Symbol, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update actualiza una moneda.
func (r *CurrencyRepo) Update(c *entity.Currency) error {
	query := `UPDATE currencies SET name = $2, symbol = $3, is_active = $4, updated_at = $5 WHERE code = $1`
	cmd, err := r.q.Exec(context.Background(), query, c.Code, c.Name, c.Symbol, c.IsActive, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update currency: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una moneda. Las guardas de referencia las aplica el caso de uso.
func (r *CurrencyRepo) Delete(code string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM currencies WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete currency: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountExchangeRates cuenta las filas de exchange_rates que referencian la moneda.
func (r *CurrencyRepo) CountExchangeRates(code string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM exchange_rates WHERE currency_code = $1`, code).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count exchange rates: %w", err)
	}
	return n, nil
}

// UpsertRate inserta o actualiza por (currency_code, month_year).
func (r *CurrencyRepo) UpsertRate(rate *entity.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (id, currency_code, month_year, rate_to_usd, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (currency_code, month_year) DO UPDATE SET
			rate_to_usd = EXCLUDED.rate_to_usd,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		rate.ID, rate.CurrencyCode, rate.MonthYear, rate.RateToUSD, rate.CreatedAt, rate.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert exchange rate: %w", err)
	}
	return nil
}

// ListRates lista las tasas de un mes.
func (r *CurrencyRepo) ListRates(monthYear string) ([]*entity.ExchangeRate, error) {
	query := `
		SELECT id, currency_code, month_year, rate_to_usd, created_at, updated_at
		FROM exchange_rates WHERE month_year = $1 ORDER BY currency_code`
	rows, err := r.q.Query(context.Background(), query, monthYear)
	if err != nil {
		return nil, fmt.Errorf("list exchange rates: %w", err)
	}
	defer rows.Close()

	var out []*entity.ExchangeRate
	for rows.Next() {
		var rate entity.ExchangeRate
		if err := rows.Scan(&rate.ID, &rate.CurrencyCode, &rate.MonthYear, &rate.RateToUSD,
			&rate.CreatedAt, &rate.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan exchange rate: %w", err)
		}
		out = append(out, &rate)
	}
	return out, rows.Err()
}
