package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-historico-api/internal/application/report"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/repository"
)

var _ report.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// El reemplazo completo del reporte (DeleteAll + CreateMany) viaja aquí para
// que una regeneración fallida nunca deje el reporte vacío.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con un repo atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(reportRepo repository.ReportRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	reportRepo := NewReportRepository(tx)

	if err := fn(reportRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
