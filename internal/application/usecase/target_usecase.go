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

// TargetUseCase casos de uso para asignaciones de plan (UserTarget) y
// objetivos trimestrales (PerformanceTarget).
type TargetUseCase struct {
	repo     repository.TargetRepository
	planRepo repository.PlanRepository
	userRepo repository.UserRepository
	empRepo  repository.EmployeeRepository
	bus      ports.CacheBus
}

// NewTargetUseCase construye el caso de uso.
func NewTargetUseCase(
	repo repository.TargetRepository,
	planRepo repository.PlanRepository,
	userRepo repository.UserRepository,
	empRepo repository.EmployeeRepository,
	bus ports.CacheBus,
) *TargetUseCase {
	return &TargetUseCase{repo: repo, planRepo: planRepo, userRepo: userRepo, empRepo: empRepo, bus: bus}
}

// UpsertUserTarget inserta o actualiza la asignación por
// (user, plan, effective_start_date). El upsert es nativo en el repositorio.
func (uc *TargetUseCase) UpsertUserTarget(ctx context.Context, in dto.UpsertUserTargetRequest) (*dto.UserTargetResponse, error) {
	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	plan, err := uc.planRepo.GetPlanByID(in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	start, err := time.Parse("2006-01-02", in.EffectiveStartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var end *time.Time
	if in.EffectiveEndDate != nil && *in.EffectiveEndDate != "" {
		e, err := time.Parse("2006-01-02", *in.EffectiveEndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		end = &e
	}
	now := time.Now()
	t := &entity.UserTarget{
		ID:                 uuid.New().String(),
		UserID:             in.UserID,
		PlanID:             in.PlanID,
		EffectiveStartDate: start,
		EffectiveEndDate:   end,
		TargetValueAnnual:  in.TargetValueAnnual,
		Currency:           in.Currency,
		TargetBonusPct:     in.TargetBonusPct,
		TFPLocal:           in.TFPLocal,
		OTELocal:           in.OTELocal,
		TFPUSD:             in.TFPUSD,
		TargetBonusUSD:     in.TargetBonusUSD,
		OTEUSD:             in.OTEUSD,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.UpsertUserTarget(t); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityUserTargets, t.ID)
	return toUserTargetResponse(t), nil
}

// ListUserTargetsByUser lista las asignaciones de un usuario.
func (uc *TargetUseCase) ListUserTargetsByUser(userID string) ([]dto.UserTargetResponse, error) {
	list, err := uc.repo.ListUserTargetsByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserTargetResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toUserTargetResponse(t))
	}
	return items, nil
}

// DeleteUserTarget elimina una asignación.
func (uc *TargetUseCase) DeleteUserTarget(ctx context.Context, id string) error {
	if err := uc.repo.DeleteUserTarget(id); err != nil {
		return err
	}
	uc.bus.PublishChange(ctx, ports.EntityUserTargets, id)
	return nil
}

// UpsertPerformanceTarget inserta o actualiza los objetivos trimestrales de un
// empleado para un tipo de métrica. Invariante: al menos un trimestre ≠ 0. El
// anual nunca se recibe ni se guarda: siempre es q1+q2+q3+q4.
func (uc *TargetUseCase) UpsertPerformanceTarget(ctx context.Context, in dto.UpsertPerformanceTargetRequest) (*dto.PerformanceTargetResponse, error) {
	if in.MetricType == "" {
		return nil, domain.ErrInvalidInput
	}
	emp, err := uc.empRepo.GetByID(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	t := &entity.PerformanceTarget{
		ID:          uuid.New().String(),
		EmployeeID:  in.EmployeeID,
		MetricType:  in.MetricType,
		Q1TargetUSD: in.Q1TargetUSD,
		Q2TargetUSD: in.Q2TargetUSD,
		Q3TargetUSD: in.Q3TargetUSD,
		Q4TargetUSD: in.Q4TargetUSD,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !t.HasNonZeroQuarter() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.UpsertPerformanceTarget(t); err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityPerformanceTargets, t.ID)
	return toPerformanceTargetResponse(t), nil
}

// ListPerformanceTargets lista los objetivos de un empleado.
func (uc *TargetUseCase) ListPerformanceTargets(employeeID string) ([]dto.PerformanceTargetResponse, error) {
	list, err := uc.repo.ListPerformanceTargetsByEmployee(employeeID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PerformanceTargetResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toPerformanceTargetResponse(t))
	}
	return items, nil
}

func toUserTargetResponse(t *entity.UserTarget) *dto.UserTargetResponse {
	return &dto.UserTargetResponse{
		ID:                 t.ID,
		UserID:             t.UserID,
		PlanID:             t.PlanID,
		EffectiveStartDate: t.EffectiveStartDate,
		EffectiveEndDate:   t.EffectiveEndDate,
		TargetValueAnnual:  t.TargetValueAnnual,
		Currency:           t.Currency,
		TargetBonusPct:     t.TargetBonusPct,
		TFPLocal:           t.TFPLocal,
		OTELocal:           t.OTELocal,
		TFPUSD:             t.TFPUSD,
		TargetBonusUSD:     t.TargetBonusUSD,
		OTEUSD:             t.OTEUSD,
	}
}

func toPerformanceTargetResponse(t *entity.PerformanceTarget) *dto.PerformanceTargetResponse {
	return &dto.PerformanceTargetResponse{
		ID:              t.ID,
		EmployeeID:      t.EmployeeID,
		MetricType:      t.MetricType,
		Q1TargetUSD:     t.Q1TargetUSD,
		Q2TargetUSD:     t.Q2TargetUSD,
		Q3TargetUSD:     t.Q3TargetUSD,
		Q4TargetUSD:     t.Q4TargetUSD,
		AnnualTargetUSD: t.AnnualTarget(),
	}
}
