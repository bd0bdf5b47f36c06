// Package pdf implementa la representación PDF del reporte de inventario
// valorizado a una fecha.
//
// Layout de la página A4 apaisada:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Fecha de corte                             │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Ubic. Origen | Ubic. Destino | Lote/Serie │
//	│         | Fecha Últ. Mov. | Tipo | Cant | V.Unit | Valorizado│
//	│  ──────────────────────────────────────────────────────────  │
//	│  TOTALES: Cantidad total / Valorizado total                  │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-historico-api/internal/application/report"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
)

var _ report.PDFRenderer = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.PDFRenderer usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Render genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) Render(asOf time.Time, rows []entity.ValuationRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de Inventario Valorizado", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(asOf, len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDataRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de corte + conteo de filas (der).
func headerRow(asOf time.Time, total int) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE INVENTARIO VALORIZADO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Fecha de corte: "+asOf.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New(fmt.Sprintf("%d líneas", total), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla, una columna por encabezado del reporte.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 2, align.Left),
		h("Ubicación Origen", 2, align.Left),
		h("Ubicación Destino", 2, align.Left),
		h("Lote/Serie", 1, align.Left),
		h("Fecha Últ. Mov.", 1, align.Center),
		h("Tipo Movimiento", 1, align.Center),
		h("Cantidad", 1, align.Right),
		h("Valor Unitario", 1, align.Right),
		h("Valorizado", 1, align.Right),
	)
}

// tableDataRows: una fila por línea del reporte.
func tableDataRows(rows []entity.ValuationRow) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 7, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(6).Add(
			cell(r.ProductName, 2, align.Left),
			cell(r.LocationSrcName, 2, align.Left),
			cell(r.LocationDestName, 2, align.Left),
			cell(r.LotNames, 1, align.Left),
			cell(r.LastMoveDate.Format("02/01/2006"), 1, align.Center),
			cell(r.MoveType, 1, align.Center),
			cell(r.Quantity.StringFixed(2), 1, align.Right),
			cell(r.UnitValue.StringFixed(2), 1, align.Right),
			cell(r.TotalValue().StringFixed(2), 1, align.Right),
		))
	}
	return result
}

// totalsRow: cantidad total y valorizado total, alineados a la derecha.
func totalsRow(rows []entity.ValuationRow) core.Row {
	totalQty := decimal.Zero
	totalValue := decimal.Zero
	for _, r := range rows {
		totalQty = totalQty.Add(r.Quantity)
		totalValue = totalValue.Add(r.TotalValue())
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 7,
		})
	}

	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Cantidad total:"),
			text.New("TOTAL VALORIZADO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 7,
			}),
		),
		col.New(3).Add(
			text.New(totalQty.StringFixed(2), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			grandValue(totalValue.StringFixed(2)),
		),
	)
}
