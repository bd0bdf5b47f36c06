package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Inventario-historico-api/internal/application/report"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
)

var _ report.XLSXRenderer = (*Exporter)(nil)

// SheetName es el nombre de la única hoja del libro exportado.
const SheetName = "Inventario"

const dateLayout = "2006-01-02 15:04:05"

// Exporter serializa las filas del reporte a un libro XLSX con la hoja
// "Inventario": encabezados en la fila 1 y una fila por dato debajo.
type Exporter struct{}

// NewExporter construye el exportador XLSX.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Render genera el libro en memoria. Con cero filas igual produce un libro
// válido con solo los encabezados.
func (e *Exporter) Render(rows []entity.ValuationRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// excelize arranca con "Sheet1"; la renombramos en vez de crear y borrar.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return nil, fmt.Errorf("crear estilo de encabezado: %w", err)
	}

	for i, title := range report.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("celda de encabezado %d: %w", i, err)
		}
		if err := f.SetCellValue(SheetName, cell, title); err != nil {
			return nil, fmt.Errorf("escribir encabezado %q: %w", title, err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(report.Columns), 1)
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("aplicar estilo de encabezado: %w", err)
	}

	for i, row := range rows {
		values := []any{
			row.ProductName,
			row.LocationSrcName,
			row.LocationDestName,
			row.LotNames,
			row.LastMoveDate.Format(dateLayout),
			row.MoveType,
			row.Quantity.InexactFloat64(),
			row.UnitValue.InexactFloat64(),
			row.TotalValue().InexactFloat64(),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("celda de dato (%d,%d): %w", i, j, err)
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, fmt.Errorf("escribir fila %d: %w", i, err)
			}
		}
	}

	// Anchos razonables para lectura directa del archivo.
	if err := f.SetColWidth(SheetName, "A", "F", 24); err != nil {
		return nil, fmt.Errorf("ajustar anchos: %w", err)
	}
	if err := f.SetColWidth(SheetName, "G", "I", 14); err != nil {
		return nil, fmt.Errorf("ajustar anchos: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
