package plans

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/dto"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/ports"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// CopyPlanUseCase copia planes completos (métricas, grillas, comisiones y
// SPIFFs) a un año destino, dentro de una sola transacción. Cada copia
// produce un plan nuevo e independiente, inactivo, con identificadores
// nuevos; copiar dos veces el mismo origen produce dos planes.
type CopyPlanUseCase struct {
	txRunner TxRunner
	bus      ports.CacheBus
}

// NewCopyPlanUseCase construye el caso de uso.
func NewCopyPlanUseCase(txRunner TxRunner, bus ports.CacheBus) *CopyPlanUseCase {
	return &CopyPlanUseCase{txRunner: txRunner, bus: bus}
}

// CopyPlans ejecuta la cascada. Si cualquier paso falla, la transacción
// revierte todo lo copiado hasta ese punto.
func (uc *CopyPlanUseCase) CopyPlans(ctx context.Context, in dto.CopyPlansRequest) (*dto.CopyPlansResponse, error) {
	if len(in.SourcePlanIDs) == 0 || in.TargetYear == 0 {
		return nil, domain.ErrInvalidInput
	}

	created := make([]dto.PlanResponse, 0, len(in.SourcePlanIDs))
	err := uc.txRunner.Run(ctx, func(planRepo repository.PlanRepository) error {
		for _, sourceID := range in.SourcePlanIDs {
			p, err := uc.copyOne(planRepo, sourceID, in.TargetYear)
			if err != nil {
				return fmt.Errorf("copiar plan %s: %w", sourceID, err)
			}
			created = append(created, dto.PlanResponse{
				ID:            p.ID,
				Name:          p.Name,
				Description:   p.Description,
				IsActive:      p.IsActive,
				EffectiveYear: p.EffectiveYear,
				CreatedAt:     p.CreatedAt,
				UpdatedAt:     p.UpdatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.bus.PublishChange(ctx, ports.EntityPlans, "")
	return &dto.CopyPlansResponse{Plans: created}, nil
}

func (uc *CopyPlanUseCase) copyOne(planRepo repository.PlanRepository, sourceID string, targetYear int) (*entity.CompPlan, error) {
	source, err := planRepo.GetPlanByID(sourceID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	copied := &entity.CompPlan{
		ID:            uuid.New().String(),
		Name:          source.Name,
		Description:   source.Description,
		IsActive:      false, // las copias nacen inactivas
		EffectiveYear: targetYear,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := planRepo.CreatePlan(copied); err != nil {
		return nil, err
	}

	metrics, err := planRepo.ListMetricsByPlan(sourceID)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics {
		newMetric := &entity.PlanMetric{
			ID:               uuid.New().String(),
			PlanID:           copied.ID,
			MetricName:       m.MetricName,
			WeightagePct:     m.WeightagePct,
			LogicType:        m.LogicType,
			GateThresholdPct: m.GateThresholdPct,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := planRepo.CreateMetric(newMetric); err != nil {
			return nil, err
		}
		tiers, err := planRepo.ListTiersByMetric(m.ID)
		if err != nil {
			return nil, err
		}
		copies := make([]entity.MultiplierTier, 0, len(tiers))
		for _, t := range tiers {
			copies = append(copies, entity.MultiplierTier{
				ID:              uuid.New().String(),
				MetricID:        newMetric.ID,
				MinPct:          t.MinPct,
				MaxPct:          t.MaxPct,
				MultiplierValue: t.MultiplierValue,
			})
		}
		if err := planRepo.ReplaceTiers(newMetric.ID, copies); err != nil {
			return nil, err
		}
	}

	commissions, err := planRepo.ListCommissionsByPlan(sourceID)
	if err != nil {
		return nil, err
	}
	if len(commissions) > 0 {
		copies := make([]*entity.PlanCommission, 0, len(commissions))
		for _, c := range commissions {
			copies = append(copies, &entity.PlanCommission{
				ID:                    uuid.New().String(),
				PlanID:                copied.ID,
				CommissionType:        c.CommissionType,
				RatePct:               c.RatePct,
				MinThresholdUSD:       c.MinThresholdUSD,
				PayoutOnBookingPct:    c.PayoutOnBookingPct,
				PayoutOnCollectionPct: c.PayoutOnCollectionPct,
				IsActive:              c.IsActive,
				CreatedAt:             now,
				UpdatedAt:             now,
			})
		}
		if err := planRepo.BulkInsertCommissions(copies); err != nil {
			return nil, err
		}
	}

	spiffs, err := planRepo.ListSpiffsByPlan(sourceID)
	if err != nil {
		return nil, err
	}
	for _, s := range spiffs {
		clone := &entity.PlanSpiff{
			ID:               uuid.New().String(),
			PlanID:           copied.ID,
			SpiffName:        s.SpiffName,
			LinkedMetricName: s.LinkedMetricName,
			RatePct:          s.RatePct,
			MinDealValueUSD:  s.MinDealValueUSD,
			IsActive:         s.IsActive,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := planRepo.CreateSpiff(clone); err != nil {
			return nil, err
		}
	}

	return copied, nil
}
