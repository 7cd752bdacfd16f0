// Package payout orquesta la vista de "workings" de una corrida: carga los
// detalles precalculados, los pivotea con el motor de dominio y sirve el
// resultado cacheado. El mismo pivot alimenta la respuesta JSON, los exports y
// los resúmenes persistidos por empleado.
package payout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	dompayout "github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/payout"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// workingsTTL vigencia del snapshot cacheado del pivot.
const workingsTTL = 10 * time.Minute

// WorkingsUseCase construye y cachea el pivot de una corrida.
type WorkingsUseCase struct {
	payoutRepo   repository.PayoutRepository
	currencyRepo repository.CurrencyRepository
	bus          ports.CacheBus
}

// NewWorkingsUseCase construye el caso de uso.
func NewWorkingsUseCase(payoutRepo repository.PayoutRepository, currencyRepo repository.CurrencyRepository, bus ports.CacheBus) *WorkingsUseCase {
	return &WorkingsUseCase{payoutRepo: payoutRepo, currencyRepo: currencyRepo, bus: bus}
}

// BuildWorkings devuelve el pivot de la corrida, desde caché si hay snapshot
// vigente. PublishChange sobre payout_runs invalida el snapshot.
func (uc *WorkingsUseCase) BuildWorkings(ctx context.Context, runID string) (*dto.WorkingsResponse, error) {
	cacheKey := "workings:" + runID
	if raw, err := uc.bus.Get(ctx, ports.EntityPayoutRuns, cacheKey); err == nil && raw != nil {
		var cached dto.WorkingsResponse
		if json.Unmarshal(raw, &cached) == nil {
			return &cached, nil
		}
	}

	run, err := uc.payoutRepo.GetRunByID(runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.ErrNotFound
	}
	workings, err := uc.pivot(runID)
	if err != nil {
		return nil, err
	}
	resp := toWorkingsResponse(run, workings)

	if raw, err := json.Marshal(resp); err == nil {
		_ = uc.bus.Set(ctx, ports.EntityPayoutRuns, cacheKey, raw, workingsTTL)
	}
	return resp, nil
}

// RefreshSummaries recalcula los totales por empleado desde el pivot y los
// persiste. RateToUSD es la tasa hacia USD, así que el total local es
// USD ÷ tasa; sin tasa del mes (o tasa cero) el total queda en USD.
func (uc *WorkingsUseCase) RefreshSummaries(ctx context.Context, runID string) error {
	run, err := uc.payoutRepo.GetRunByID(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return domain.ErrNotFound
	}
	workings, err := uc.pivot(runID)
	if err != nil {
		return err
	}

	rates, err := uc.currencyRepo.ListRates(run.MonthYear)
	if err != nil {
		return err
	}
	rateByCode := make(map[string]*entity.ExchangeRate, len(rates))
	for _, r := range rates {
		rateByCode[r.CurrencyCode] = r
	}

	summaries := make([]entity.EmployeePayoutSummary, 0, len(workings.Rows))
	for _, row := range workings.Rows {
		s := entity.EmployeePayoutSummary{
			ID:                     uuid.New().String(),
			RunID:                  runID,
			EmployeeID:             row.Employee.EmployeeID,
			TotalPayoutUSD:         row.Totals.TotalThisMonthUSD,
			CurrentMonthPayableUSD: row.Totals.CurrentMonthPayableUSD,
			CollectionHeldUSD:      row.Totals.CollectionHeldUSD,
			YearEndHeldUSD:         row.Totals.YearEndHeldUSD,
			LocalCurrency:          row.Employee.LocalCurrency,
			TotalPayoutLocal:       row.Totals.TotalThisMonthUSD,
		}
		if rate, ok := rateByCode[row.Employee.LocalCurrency]; ok && rate.RateToUSD.IsPositive() {
			s.TotalPayoutLocal = row.Totals.TotalThisMonthUSD.Div(rate.RateToUSD)
		}
		summaries = append(summaries, s)
	}
	if err := uc.payoutRepo.ReplaceSummaries(runID, summaries); err != nil {
		return err
	}
	uc.bus.PublishChange(ctx, ports.EntityPayoutRuns, runID)
	return nil
}

func (uc *WorkingsUseCase) pivot(runID string) (*dompayout.Workings, error) {
	details, err := uc.payoutRepo.ListDetailsByRun(runID)
	if err != nil {
		return nil, err
	}
	employees, err := uc.payoutRepo.ListEmployeeInfoByRun(runID)
	if err != nil {
		return nil, err
	}
	w := dompayout.Pivot(details, employees)
	return &w, nil
}

func toWorkingsResponse(run *entity.PayoutRun, w *dompayout.Workings) *dto.WorkingsResponse {
	columns := make([]dto.WorkingsColumn, 0, len(w.Columns))
	for _, c := range w.Columns {
		columns = append(columns, dto.WorkingsColumn{
			ComponentType: c.ComponentType,
			MetricName:    c.MetricName,
			Fields:        c.Fields,
		})
	}
	rows := make([]dto.WorkingsRow, 0, len(w.Rows))
	for _, r := range w.Rows {
		rows = append(rows, dto.WorkingsRow{
			EmployeeID:             r.Employee.EmployeeID,
			EmployeeCode:           r.Employee.EmployeeCode,
			FullName:               r.Employee.FullName,
			LocalCurrency:          r.Employee.LocalCurrency,
			Cells:                  r.Cells,
			TotalThisMonthUSD:      r.Totals.TotalThisMonthUSD,
			CurrentMonthPayableUSD: r.Totals.CurrentMonthPayableUSD,
			CollectionHeldUSD:      r.Totals.CollectionHeldUSD,
			YearEndHeldUSD:         r.Totals.YearEndHeldUSD,
		})
	}
	return &dto.WorkingsResponse{
		RunID:     run.ID,
		MonthYear: run.MonthYear,
		Columns:   columns,
		Rows:      rows,
	}
}
