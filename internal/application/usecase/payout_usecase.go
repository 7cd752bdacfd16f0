package usecase

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// monthYearRe formato "YYYY-MM" de la corrida mensual.
var monthYearRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// PayoutUseCase ciclo de vida de las corridas mensuales y sus ajustes.
type PayoutUseCase struct {
	repo    repository.PayoutRepository
	empRepo repository.EmployeeRepository
	bus     ports.CacheBus
}

// NewPayoutUseCase construye el caso de uso.
func NewPayoutUseCase(repo repository.PayoutRepository, empRepo repository.EmployeeRepository, bus ports.CacheBus) *PayoutUseCase {
	return &PayoutUseCase{repo: repo, empRepo: empRepo, bus: bus}
}

// ── Corridas ─────────────────────────────────────────────────────────────────

// CreateRun crea la corrida del mes en estado draft. Una sola por MonthYear.
func (uc *PayoutUseCase) CreateRun(ctx context.Context, in dto.CreateRunRequest) (*dto.RunResponse, error) {
	if !monthYearRe.MatchString(in.MonthYear) {
		return nil, fmt.Errorf("%w: month_year debe ser YYYY-MM", domain.ErrInvalidInput)
	}
	if existing, _ := uc.repo.GetRunByMonth(in.MonthYear); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	r := &entity.PayoutRun{
		ID:        uuid.New().String(),
		MonthYear: in.MonthYear,
		Status:    entity.RunStatusDraft,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreateRun(r); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityPayoutRuns, r.ID)
	return toRunResponse(r), nil
}

// GetRunByID obtiene una corrida.
func (uc *PayoutUseCase) GetRunByID(id string) (*dto.RunResponse, error) {
	r, err := uc.repo.GetRunByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return toRunResponse(r), nil
}

// ListRuns lista corridas paginadas, más reciente primero.
func (uc *PayoutUseCase) ListRuns(page dto.PageRequest) ([]dto.RunResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListRuns(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RunResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRunResponse(r))
	}
	return items, nil
}

// ChangeRunStatus avanza la corrida al estado siguiente del ciclo. Saltos y
// retrocesos se rechazan con ErrRunStatus.
func (uc *PayoutUseCase) ChangeRunStatus(ctx context.Context, id string, in dto.RunStatusRequest) (*dto.RunResponse, error) {
	r, err := uc.repo.GetRunByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	if !r.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrRunStatus, r.Status, in.Status)
	}
	if err := uc.repo.UpdateRunStatus(id, in.Status); err != nil {
		return nil, err
	}
	r.Status = in.Status
	r.UpdatedAt = time.Now()
	uc.bus.PublishChange(ctx, ports.EntityPayoutRuns, id)
	return toRunResponse(r), nil
}

// ── Ajustes ──────────────────────────────────────────────────────────────────

// CreateAdjustment registra un ajuste manual. Solo sobre corridas en review,
// con tipo conocido y razón obligatoria.
func (uc *PayoutUseCase) CreateAdjustment(ctx context.Context, runID string, in dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	r, err := uc.repo.GetRunByID(runID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if r.Status != entity.RunStatusReview {
		return nil, fmt.Errorf("%w: los ajustes solo se crean con la corrida en review", domain.ErrRunStatus)
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: la razón del ajuste es obligatoria", domain.ErrInvalidInput)
	}
	switch in.Type {
	case entity.AdjustmentTypeCorrection, entity.AdjustmentTypeClawbackReversal, entity.AdjustmentTypeManualOverride:
	default:
		return nil, fmt.Errorf("%w: tipo de ajuste desconocido %q", domain.ErrInvalidInput, in.Type)
	}
	emp, err := uc.empRepo.GetByID(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	a := &entity.PayoutAdjustment{
		ID:                    uuid.New().String(),
		RunID:                 runID,
		EmployeeID:            in.EmployeeID,
		Type:                  in.Type,
		OriginalAmountUSD:     in.OriginalAmountUSD,
		AdjustmentAmountUSD:   in.AdjustmentAmountUSD,
		OriginalAmountLocal:   in.OriginalAmountLocal,
		AdjustmentAmountLocal: in.AdjustmentAmountLocal,
		Reason:                in.Reason,
		Status:                entity.AdjustmentPending,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.repo.CreateAdjustment(a); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityAdjustments, runID)
	return toAdjustmentResponse(a), nil
}

// ListAdjustments lista los ajustes de una corrida.
func (uc *PayoutUseCase) ListAdjustments(runID string) ([]dto.AdjustmentResponse, error) {
	list, err := uc.repo.ListAdjustmentsByRun(runID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAdjustmentResponse(a))
	}
	return items, nil
}

// ApproveAdjustment aprueba un ajuste pendiente. La corrida debe seguir en
// review o approved.
func (uc *PayoutUseCase) ApproveAdjustment(ctx context.Context, id string) (*dto.AdjustmentResponse, error) {
	return uc.resolveAdjustment(ctx, id, entity.AdjustmentApproved)
}

// RejectAdjustment rechaza un ajuste pendiente.
func (uc *PayoutUseCase) RejectAdjustment(ctx context.Context, id string) (*dto.AdjustmentResponse, error) {
	return uc.resolveAdjustment(ctx, id, entity.AdjustmentRejected)
}

func (uc *PayoutUseCase) resolveAdjustment(ctx context.Context, id, status string) (*dto.AdjustmentResponse, error) {
	a, err := uc.repo.GetAdjustmentByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	if a.Status != entity.AdjustmentPending {
		return nil, fmt.Errorf("%w: el ajuste ya fue resuelto (%s)", domain.ErrConflict, a.Status)
	}
	r, err := uc.repo.GetRunByID(a.RunID)
	if err != nil {
		return nil, err
	}
	if r == nil || (r.Status != entity.RunStatusReview && r.Status != entity.RunStatusApproved) {
		return nil, fmt.Errorf("%w: los ajustes se resuelven con la corrida en review o approved", domain.ErrRunStatus)
	}
	if err := uc.repo.UpdateAdjustmentStatus(id, status); err != nil {
		return nil, err
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	uc.bus.PublishChange(ctx, ports.EntityAdjustments, a.RunID)
	return toAdjustmentResponse(a), nil
}

// DeleteAdjustment elimina un ajuste. Solo mientras sigue pendiente.
func (uc *PayoutUseCase) DeleteAdjustment(ctx context.Context, id string) error {
	a, err := uc.repo.GetAdjustmentByID(id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	if a.Status != entity.AdjustmentPending {
		return fmt.Errorf("%w: solo se eliminan ajustes pendientes", domain.ErrConflict)
	}
	if err := uc.repo.DeleteAdjustment(id); err != nil {
		return err
	}
	uc.bus.PublishChange(ctx, ports.EntityAdjustments, a.RunID)
	return nil
}

// ── Mapeos ───────────────────────────────────────────────────────────────────

func toRunResponse(r *entity.PayoutRun) *dto.RunResponse {
	return &dto.RunResponse{
		ID:        r.ID,
		MonthYear: r.MonthYear,
		Status:    r.Status,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toAdjustmentResponse(a *entity.PayoutAdjustment) *dto.AdjustmentResponse {
	return &dto.AdjustmentResponse{
		ID:                    a.ID,
		RunID:                 a.RunID,
		EmployeeID:            a.EmployeeID,
		Type:                  a.Type,
		OriginalAmountUSD:     a.OriginalAmountUSD,
		AdjustmentAmountUSD:   a.AdjustmentAmountUSD,
		OriginalAmountLocal:   a.OriginalAmountLocal,
		AdjustmentAmountLocal: a.AdjustmentAmountLocal,
		Reason:                a.Reason,
		Status:                a.Status,
		CreatedAt:             a.CreatedAt,
	}
}
