package plan_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/entity"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/plan"
)

func band(min, max, mult float64) entity.MultiplierTier {
	return entity.MultiplierTier{
		MinPct:          decimal.NewFromFloat(min),
		MaxPct:          decimal.NewFromFloat(max),
		MultiplierValue: decimal.NewFromFloat(mult),
	}
}

func TestValidateGrid_Valida(t *testing.T) {
	grid := []entity.MultiplierTier{
		band(0, 80, 0),
		band(80, 100, 0.8),
		band(100, 150, 1.2),
	}
	assert.NoError(t, plan.ValidateGrid(grid))
}

func TestValidateGrid_Vacia(t *testing.T) {
	err := plan.ValidateGrid(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "al menos una banda")
}

func TestValidateGrid_MinMayorQueMax(t *testing.T) {
	grid := []entity.MultiplierTier{
		band(0, 80, 0),
		band(100, 90, 1.0), // min > max
	}
	err := plan.ValidateGrid(grid)
	require.Error(t, err)
	// La fila se reporta en orden por min_pct: la banda inválida es la 2.
	assert.Contains(t, err.Error(), "banda 2")
}

func TestValidateGrid_MinIgualMax(t *testing.T) {
	err := plan.ValidateGrid([]entity.MultiplierTier{band(100, 100, 1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "banda 1")
}

func TestValidateGrid_Solape(t *testing.T) {
	grid := []entity.MultiplierTier{
		band(0, 90, 0),
		band(80, 120, 1.0), // empieza antes de que termine la anterior
	}
	err := plan.ValidateGrid(grid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "se solapa")
}

// Bandas que se tocan exactamente (max de una == min de la siguiente) son válidas.
func TestValidateGrid_TocarseEsValido(t *testing.T) {
	grid := []entity.MultiplierTier{
		band(0, 100, 1.0),
		band(100, 120, 1.25),
	}
	assert.NoError(t, plan.ValidateGrid(grid))
}

// Huecos entre bandas son válidos: no se exige cobertura continua.
func TestValidateGrid_HuecosPermitidos(t *testing.T) {
	grid := []entity.MultiplierTier{
		band(0, 50, 0),
		band(90, 120, 1.0),
	}
	assert.NoError(t, plan.ValidateGrid(grid))
}

// El validador ordena por min_pct antes de revisar solapes: el mismo conjunto
// desordenado produce el mismo veredicto.
func TestValidateGrid_OrdenaAntesDeValidar(t *testing.T) {
	grid := []entity.MultiplierTier{
		band(100, 120, 1.25),
		band(0, 100, 1.0),
		band(120, 200, 1.5),
	}
	assert.NoError(t, plan.ValidateGrid(grid))
}

func TestDefaultGrid_SteppedAccelerator(t *testing.T) {
	grid := plan.DefaultGrid(entity.LogicSteppedAccelerator)
	require.Len(t, grid, 3)
	assert.NoError(t, plan.ValidateGrid(grid))
	// Anclada en 100/120.
	assert.True(t, grid[1].MinPct.Equal(decimal.NewFromInt(100)))
	assert.True(t, grid[2].MinPct.Equal(decimal.NewFromInt(120)))
}

func TestDefaultGrid_GatedThreshold(t *testing.T) {
	grid := plan.DefaultGrid(entity.LogicGatedThreshold)
	require.Len(t, grid, 4)
	assert.NoError(t, plan.ValidateGrid(grid))
	// Anclada en 85/95/100.
	assert.True(t, grid[1].MinPct.Equal(decimal.NewFromInt(85)))
	assert.True(t, grid[2].MinPct.Equal(decimal.NewFromInt(95)))
	assert.True(t, grid[3].MinPct.Equal(decimal.NewFromInt(100)))
}

func TestDefaultGrid_TipoDesconocido(t *testing.T) {
	assert.Nil(t, plan.DefaultGrid("otro"))
}
