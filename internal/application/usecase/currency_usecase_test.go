package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/usecase"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

var _ repository.CurrencyRepository = (*fakeCurrencyRepo)(nil)

type fakeCurrencyRepo struct {
	byCode map[string]*entity.Currency
	rates  map[string]*entity.ExchangeRate // clave: code|month
}

func newFakeCurrencyRepo(currencies ...*entity.Currency) *fakeCurrencyRepo {
	f := &fakeCurrencyRepo{
		byCode: map[string]*entity.Currency{},
		rates:  map[string]*entity.ExchangeRate{},
	}
	for _, c := range currencies {
		f.byCode[c.Code] = c
	}
	return f
}

func (f *fakeCurrencyRepo) Create(c *entity.Currency) error {
	cp := *c
	f.byCode[c.Code] = &cp
	return nil
}

func (f *fakeCurrencyRepo) GetByCode(code string) (*entity.Currency, error) {
	c, ok := f.byCode[code]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCurrencyRepo) List(activeOnly bool) ([]*entity.Currency, error) {
	var out []*entity.Currency
	for _, c := range f.byCode {
		if activeOnly && !c.IsActive {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCurrencyRepo) Update(c *entity.Currency) error {
	cp := *c
	f.byCode[c.Code] = &cp
	return nil
}

func (f *fakeCurrencyRepo) Delete(code string) error {
	delete(f.byCode, code)
	return nil
}

func (f *fakeCurrencyRepo) CountExchangeRates(code string) (int, error) {
	n := 0
	for _, r := range f.rates {
		if r.CurrencyCode == code {
			n++
		}
	}
	return n, nil
}

func (f *fakeCurrencyRepo) UpsertRate(r *entity.ExchangeRate) error {
	key := r.CurrencyCode + "|" + r.MonthYear
	if prev, ok := f.rates[key]; ok {
		prev.RateToUSD = r.RateToUSD
		prev.UpdatedAt = r.UpdatedAt
		return nil
	}
	cp := *r
	f.rates[key] = &cp
	return nil
}

func (f *fakeCurrencyRepo) ListRates(monthYear string) ([]*entity.ExchangeRate, error) {
	var out []*entity.ExchangeRate
	for _, r := range f.rates {
		if r.MonthYear == monthYear {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func testCurrency(code string) *entity.Currency {
	return &entity.Currency{Code: code, Name: "Moneda " + code, IsActive: true}
}

func buildCurrencyUC(repo *fakeCurrencyRepo, employees ...*entity.Employee) *usecase.CurrencyUseCase {
	return usecase.NewCurrencyUseCase(repo, newFakeEmployeeRepo(employees...), ports.NoopBus{})
}

// ──────────────────────────────────────────────────────────────────────────────
// Monedas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateCurrency_NormalizaYRechazaDuplicados(t *testing.T) {
	repo := newFakeCurrencyRepo()
	uc := buildCurrencyUC(repo)

	out, err := uc.Create(context.Background(), dto.CurrencyRequest{Code: " inr ", Name: "Rupia india", Symbol: "₹"})
	require.NoError(t, err)
	assert.Equal(t, "INR", out.Code, "el código debe normalizarse a mayúsculas")
	assert.True(t, out.IsActive, "activa por defecto")

	_, err = uc.Create(context.Background(), dto.CurrencyRequest{Code: "INR", Name: "Rupia"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateCurrency_Validaciones(t *testing.T) {
	uc := buildCurrencyUC(newFakeCurrencyRepo())

	// Código demasiado corto
	_, err := uc.Create(context.Background(), dto.CurrencyRequest{Code: "X", Name: "Equis"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Código demasiado largo
	_, err = uc.Create(context.Background(), dto.CurrencyRequest{Code: "ABCDEF", Name: "Larga"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nombre obligatorio
	_, err = uc.Create(context.Background(), dto.CurrencyRequest{Code: "EUR"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateCurrency_USDSoloAdmiteCambioDeEstado(t *testing.T) {
	repo := newFakeCurrencyRepo(testCurrency("USD"), testCurrency("EUR"))
	uc := buildCurrencyUC(repo)

	// Renombrar USD se rechaza
	_, err := uc.Update(context.Background(), "USD", dto.CurrencyRequest{Name: "Dólar renombrado"})
	assert.ErrorIs(t, err, domain.ErrProtectedCurrency)

	// Desactivar USD sí está permitido
	inactive := false
	out, err := uc.Update(context.Background(), "usd", dto.CurrencyRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, out.IsActive)

	// El resto de monedas se edita con normalidad
	out, err = uc.Update(context.Background(), "EUR", dto.CurrencyRequest{Name: "Euro", Symbol: "€"})
	require.NoError(t, err)
	assert.Equal(t, "Euro", out.Name)
	assert.Equal(t, "€", out.Symbol)
}

func TestDeleteCurrency_USDProtegida(t *testing.T) {
	repo := newFakeCurrencyRepo(testCurrency("USD"))
	uc := buildCurrencyUC(repo)

	err := uc.Delete(context.Background(), "usd")
	assert.ErrorIs(t, err, domain.ErrProtectedCurrency)

	got, _ := repo.GetByCode("USD")
	assert.NotNil(t, got, "USD nunca debe eliminarse")
}

func TestDeleteCurrency_BloqueadaSiEstaEnUso(t *testing.T) {
	repo := newFakeCurrencyRepo(testCurrency("INR"))
	emp := testEmployee("emp-1")
	emp.LocalCurrency = "INR"
	uc := buildCurrencyUC(repo, emp)

	_, err := uc.UpsertRate(context.Background(), dto.UpsertRateRequest{
		CurrencyCode: "INR",
		MonthYear:    "2025-07",
		RateToUSD:    decimal.RequireFromString("0.0117"),
	})
	require.NoError(t, err)

	err = uc.Delete(context.Background(), "INR")
	require.ErrorIs(t, err, domain.ErrCurrencyInUse)
	// El mensaje reporta los conteos exactos de ambas referencias.
	assert.Contains(t, err.Error(), "1 empleado(s)")
	assert.Contains(t, err.Error(), "1 tasa(s)")
}

func TestDeleteCurrency_SinReferenciasSeElimina(t *testing.T) {
	repo := newFakeCurrencyRepo(testCurrency("GBP"))
	uc := buildCurrencyUC(repo)

	require.NoError(t, uc.Delete(context.Background(), "GBP"))

	got, _ := repo.GetByCode("GBP")
	assert.Nil(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tasas de cambio
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsertRate_CreaYActualizaPorMes(t *testing.T) {
	repo := newFakeCurrencyRepo(testCurrency("EUR"))
	uc := buildCurrencyUC(repo)

	_, err := uc.UpsertRate(context.Background(), dto.UpsertRateRequest{
		CurrencyCode: "EUR",
		MonthYear:    "2025-07",
		RateToUSD:    decimal.RequireFromString("1.08"),
	})
	require.NoError(t, err)

	// Segundo upsert del mismo mes reemplaza la tasa sin duplicar fila.
	_, err = uc.UpsertRate(context.Background(), dto.UpsertRateRequest{
		CurrencyCode: "eur",
		MonthYear:    "2025-07",
		RateToUSD:    decimal.RequireFromString("1.10"),
	})
	require.NoError(t, err)

	rates, err := uc.ListRates("2025-07")
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.True(t, rates[0].RateToUSD.Equal(decimal.RequireFromString("1.10")))
}

func TestUpsertRate_Validaciones(t *testing.T) {
	repo := newFakeCurrencyRepo(testCurrency("EUR"))
	uc := buildCurrencyUC(repo)

	// Tasa cero o negativa
	_, err := uc.UpsertRate(context.Background(), dto.UpsertRateRequest{
		CurrencyCode: "EUR", MonthYear: "2025-07", RateToUSD: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Moneda inexistente
	_, err = uc.UpsertRate(context.Background(), dto.UpsertRateRequest{
		CurrencyCode: "XXX", MonthYear: "2025-07", RateToUSD: decimal.RequireFromString("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
