package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
)

// ValuationRowDTO una línea del reporte de inventario valorizado.
type ValuationRowDTO struct {
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	LocationSrcID    string          `json:"location_src_id"`
	LocationSrcName  string          `json:"location_src_name"`
	LocationDestID   string          `json:"location_dest_id"`
	LocationDestName string          `json:"location_dest_name"`
	LotNames         string          `json:"lot_names"`
	LastMoveDate     time.Time       `json:"last_move_date"`
	MoveType         string          `json:"move_type"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitValue        decimal.Decimal `json:"unit_value"`
	TotalValue       decimal.Decimal `json:"total_value"` // siempre quantity * unit_value
}

// FromValuationRow convierte la entidad a DTO derivando el valorizado.
func FromValuationRow(r *entity.ValuationRow) ValuationRowDTO {
	return ValuationRowDTO{
		ProductID:        r.ProductID,
		ProductName:      r.ProductName,
		LocationSrcID:    r.LocationSrcID,
		LocationSrcName:  r.LocationSrcName,
		LocationDestID:   r.LocationDestID,
		LocationDestName: r.LocationDestName,
		LotNames:         r.LotNames,
		LastMoveDate:     r.LastMoveDate,
		MoveType:         r.MoveType,
		Quantity:         r.Quantity,
		UnitValue:        r.UnitValue,
		TotalValue:       r.TotalValue(),
	}
}

// GenerateReportResponse resultado de POST generate.
type GenerateReportResponse struct {
	RunID        string    `json:"run_id"`
	AsOfDate     time.Time `json:"as_of_date"`
	Rows         int       `json:"rows"`
	SkippedMoves int       `json:"skipped_moves,omitempty"`
}

// ReportViewResponse descriptor de la vista tabular del reporte persistido.
type ReportViewResponse struct {
	RunID    string            `json:"run_id"`
	AsOfDate time.Time         `json:"as_of_date"`
	Columns  []string          `json:"columns"`
	Rows     []ValuationRowDTO `json:"rows"`
	Total    int               `json:"total"`
}

// ExportResponse referencia descargable del artefacto exportado.
type ExportResponse struct {
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url"`
	AsOfDate    time.Time `json:"as_of_date"`
	Rows        int       `json:"rows"`
}

// SummaryResponse totales agregados de la última corrida persistida.
type SummaryResponse struct {
	TotalProducts   int64           `json:"total_products"`
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	OverdueProducts int64           `json:"overdue_products"`
}
