package plans

import (
	"context"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de planes atado a esa tx. Garantiza atomicidad de la cascada de
// copia: o se copian plan, métricas, grillas, comisiones y SPIFFs completos, o
// no queda nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(planRepo repository.PlanRepository) error) error
}
