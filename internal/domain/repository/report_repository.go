package repository

import (
	"time"

	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
)

// ReportRepository define el puerto de persistencia para las filas del
// reporte de valorización (DIP). El reporte es siempre reemplazo completo:
// DeleteAll + CreateMany se ejecutan dentro de una misma transacción (TxRunner).
type ReportRepository interface {
	// DeleteAll borra todas las filas de corridas anteriores.
	DeleteAll() error
	// CreateMany persiste las filas de una corrida, preservando Seq.
	CreateMany(rows []*entity.ValuationRow) error
	// ListLatestRun devuelve las filas de la última corrida confirmada, en
	// orden Seq. Sin corridas devuelve lista vacía, no error.
	ListLatestRun(limit, offset int) ([]*entity.ValuationRow, error)
	// Summary agrega totales sobre la última corrida; overdueBefore marca como
	// vencidas las filas con último movimiento anterior a esa fecha.
	Summary(overdueBefore time.Time) (*entity.ReportSummary, error)
}
