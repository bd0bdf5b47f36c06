package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-historico-api/internal/domain"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepository)(nil)

// ReportRepository persiste las filas del reporte de valorización.
// La tabla no tiene columna total_value: el Valorizado se deriva siempre
// (quantity * unit_value) tanto en Go como en los agregados SQL.
type ReportRepository struct {
	db Querier
}

// NewReportRepository construye el repositorio con el pool o una tx.
func NewReportRepository(db Querier) *ReportRepository {
	return &ReportRepository{db: db}
}

// DeleteAll borra todas las filas de corridas anteriores.
func (r *ReportRepository) DeleteAll() error {
	ctx := context.Background()

	if _, err := r.db.Exec(ctx, `DELETE FROM valuation_report_rows`); err != nil {
		return fmt.Errorf("borrar filas del reporte: %w", err)
	}
	return nil
}

// CreateMany persiste las filas de una corrida, preservando Seq.
func (r *ReportRepository) CreateMany(rows []*entity.ValuationRow) error {
	ctx := context.Background()

	query := `
		INSERT INTO valuation_report_rows (
			id, run_id, seq, product_id, product_name,
			location_src_id, location_src_name, location_dest_id, location_dest_name,
			lot_names, last_move_date, move_type, quantity, unit_value, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	for _, row := range rows {
		_, err := r.db.Exec(ctx, query,
			row.ID, row.RunID, row.Seq, row.ProductID, row.ProductName,
			row.LocationSrcID, row.LocationSrcName, row.LocationDestID, row.LocationDestName,
			row.LotNames, row.LastMoveDate, row.MoveType, row.Quantity, row.UnitValue, row.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insertar fila %d del reporte: %w", row.Seq, err)
		}
	}
	return nil
}

// ListLatestRun devuelve las filas de la última corrida en orden Seq.
func (r *ReportRepository) ListLatestRun(limit, offset int) ([]*entity.ValuationRow, error) {
	ctx := context.Background()

	query := `
		SELECT id, run_id, seq, product_id, product_name,
		       location_src_id, location_src_name, location_dest_id, location_dest_name,
		       lot_names, last_move_date, move_type, quantity, unit_value, created_at
		FROM valuation_report_rows
		WHERE run_id = (
			SELECT run_id FROM valuation_report_rows
			ORDER BY created_at DESC, run_id LIMIT 1
		)
		ORDER BY seq
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar filas del reporte: %w", err)
	}
	defer rows.Close()

	var result []*entity.ValuationRow
	for rows.Next() {
		var row entity.ValuationRow
		if err := rows.Scan(
			&row.ID, &row.RunID, &row.Seq, &row.ProductID, &row.ProductName,
			&row.LocationSrcID, &row.LocationSrcName, &row.LocationDestID, &row.LocationDestName,
			&row.LotNames, &row.LastMoveDate, &row.MoveType, &row.Quantity, &row.UnitValue, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("escanear fila del reporte: %w", err)
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar filas del reporte: %w", err)
	}
	return result, nil
}

// Summary agrega los totales de la última corrida.
// Sin ninguna corrida persistida devuelve domain.ErrNoReportRun.
func (r *ReportRepository) Summary(overdueBefore time.Time) (*entity.ReportSummary, error) {
	ctx := context.Background()

	query := `
		SELECT COUNT(*),
		       COUNT(DISTINCT product_id),
		       COALESCE(SUM(quantity), 0),
		       COALESCE(SUM(quantity * unit_value), 0),
		       COUNT(*) FILTER (WHERE last_move_date < $1)
		FROM valuation_report_rows
		WHERE run_id = (
			SELECT run_id FROM valuation_report_rows
			ORDER BY created_at DESC, run_id LIMIT 1
		)
	`

	var totalRows int64
	var s entity.ReportSummary
	err := r.db.QueryRow(ctx, query, overdueBefore).Scan(
		&totalRows, &s.TotalProducts, &s.TotalQuantity, &s.TotalValue, &s.OverdueProducts,
	)
	if err != nil {
		return nil, fmt.Errorf("resumen del reporte: %w", err)
	}
	if totalRows == 0 {
		return nil, domain.ErrNoReportRun
	}
	return &s, nil
}
