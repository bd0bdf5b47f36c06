package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/repository"
)

var _ repository.StockMoveRepository = (*StockMoveRepository)(nil)

// StockMoveRepository lee el ledger de movimientos con nombres resueltos.
// El pre-filtrado en SQL (estado, fecha, ubicaciones) es solo una optimización
// de volumen: el agregador vuelve a aplicar los filtros en memoria.
type StockMoveRepository struct {
	db Querier
}

// NewStockMoveRepository construye el repositorio con el pool o una tx.
func NewStockMoveRepository(db Querier) *StockMoveRepository {
	return &StockMoveRepository{db: db}
}

// ListDoneUntil devuelve los movimientos completados hasta la fecha de corte
// cuyo origen o destino está en locationIDs, con lotes agregados en orden de línea.
func (r *StockMoveRepository) ListDoneUntil(until time.Time, locationIDs []string) ([]*entity.StockMove, error) {
	ctx := context.Background()

	query := `
		SELECT m.id,
		       m.product_id,
		       COALESCE(p.name, ''),
		       m.location_src_id,
		       COALESCE(ls.name, ''),
		       m.location_dest_id,
		       COALESCE(ld.name, ''),
		       m.date,
		       m.state,
		       m.quantity,
		       m.picking_type_code,
		       COALESCE(
		           (SELECT array_agg(l.lot_name ORDER BY l.line_no)
		            FROM stock_move_lines l
		            WHERE l.move_id = m.id AND l.lot_name IS NOT NULL),
		           '{}'
		       ) AS lot_names
		FROM stock_moves m
		LEFT JOIN products p  ON p.id  = m.product_id
		LEFT JOIN locations ls ON ls.id = m.location_src_id
		LEFT JOIN locations ld ON ld.id = m.location_dest_id
		WHERE m.state = 'done'
		  AND m.date <= $1
		  AND (m.location_src_id = ANY($2) OR m.location_dest_id = ANY($2))
		ORDER BY m.date, m.id
	`

	rows, err := r.db.Query(ctx, query, until, locationIDs)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	defer rows.Close()

	var moves []*entity.StockMove
	for rows.Next() {
		var m entity.StockMove
		var productID *string
		if err := rows.Scan(
			&m.ID,
			&productID,
			&m.ProductName,
			&m.LocationSrcID,
			&m.LocationSrcName,
			&m.LocationDestID,
			&m.LocationDestName,
			&m.Date,
			&m.State,
			&m.Quantity,
			&m.PickingTypeCode,
			&m.LotNames,
		); err != nil {
			return nil, fmt.Errorf("escanear movimiento: %w", err)
		}
		if productID != nil {
			m.ProductID = *productID
		}
		moves = append(moves, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar movimientos: %w", err)
	}
	return moves, nil
}
