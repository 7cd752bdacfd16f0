package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mohan98521/gtm-variable-pay-sub001/internal/application/plans"
	"github.com/mohan98521/gtm-variable-pay-sub001/internal/domain/repository"
)

// Ensure TxRunner implements plans.TxRunner.
var _ plans.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con un repo de planes atado a la tx y
// hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(planRepo repository.PlanRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	planRepo := NewPlanRepository(tx)

	if err := fn(planRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
