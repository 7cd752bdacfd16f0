// Package plan contiene la lógica pura de planes de compensación: validación
// de grillas de multiplicadores y grillas semilla por tipo de lógica.
package plan

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
)

// ValidateGrid valida una grilla candidata de multiplicadores:
//
//	(a) al menos una banda,
//	(b) min_pct < max_pct en cada banda,
//	(c) ordenadas por min_pct, la siguiente banda no puede empezar antes de que
//	    termine la anterior (se permite que se toquen exactamente).
//
// No se exige cobertura sin huecos. El primer incumplimiento se devuelve como
// mensaje legible que identifica la fila (1-based, en orden por min_pct).
func ValidateGrid(tiers []entity.MultiplierTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("la grilla debe tener al menos una banda")
	}

	sorted := make([]entity.MultiplierTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinPct.LessThan(sorted[j].MinPct)
	})

	for i, t := range sorted {
		if !t.MinPct.LessThan(t.MaxPct) {
			return fmt.Errorf("banda %d: min_pct (%s) debe ser menor que max_pct (%s)",
				i+1, t.MinPct.String(), t.MaxPct.String())
		}
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].MinPct.LessThan(sorted[i-1].MaxPct) {
			return fmt.Errorf("banda %d: se solapa con la banda %d", i+1, i)
		}
	}
	return nil
}

// DefaultGrid devuelve la grilla semilla para un tipo de lógica:
//
//	stepped_accelerator: 3 bandas ancladas en 100%% y 120%%.
//	gated_threshold:     4 bandas ancladas en 85%%, 95%% y 100%%.
//
// Tipo desconocido devuelve nil (el caller decide si es error).
func DefaultGrid(logicType string) []entity.MultiplierTier {
	switch logicType {
	case entity.LogicSteppedAccelerator:
		return []entity.MultiplierTier{
			tier(0, 100, 1.0),
			tier(100, 120, 1.25),
			tier(120, 200, 1.5),
		}
	case entity.LogicGatedThreshold:
		return []entity.MultiplierTier{
			tier(0, 85, 0),
			tier(85, 95, 0.5),
			tier(95, 100, 0.8),
			tier(100, 200, 1.0),
		}
	default:
		return nil
	}
}

func tier(min, max, mult float64) entity.MultiplierTier {
	return entity.MultiplierTier{
		MinPct:          decimal.NewFromFloat(min),
		MaxPct:          decimal.NewFromFloat(max),
		MultiplierValue: decimal.NewFromFloat(mult),
	}
}
