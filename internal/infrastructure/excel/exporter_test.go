package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Inventario-historico-api/internal/application/report"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
)

func abrirLibro(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestRender_HojaYEncabezados(t *testing.T) {
	data, err := NewExporter().Render(nil)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f := abrirLibro(t, data)
	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	filas, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, filas, 1, "sin datos el libro lleva solo encabezados")
	assert.Equal(t, report.Columns, filas[0])
}

func TestRender_FilasDeDatos(t *testing.T) {
	fecha := time.Date(2025, 5, 10, 16, 30, 0, 0, time.UTC)
	rows := []entity.ValuationRow{
		{
			ProductName:      "Tornillo 3mm",
			LocationSrcName:  "Proveedores",
			LocationDestName: "Bodega Central",
			LotNames:         "LOTE-001, LOTE-002",
			LastMoveDate:     fecha,
			MoveType:         entity.MoveTypeCompra,
			Quantity:         decimal.NewFromInt(10),
			UnitValue:        decimal.RequireFromString("5.5"),
		},
		{
			ProductName:      "Tuerca 3mm",
			LocationSrcName:  "Bodega Central",
			LocationDestName: "Tránsito",
			LotNames:         entity.LotNamesNone,
			LastMoveDate:     fecha,
			MoveType:         entity.MoveTypeTransferencia,
			Quantity:         decimal.NewFromInt(4),
			UnitValue:        decimal.NewFromInt(2),
		},
	}

	data, err := NewExporter().Render(rows)
	require.NoError(t, err)

	f := abrirLibro(t, data)
	filas, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, filas, 3)

	assert.Equal(t, "Tornillo 3mm", filas[1][0])
	assert.Equal(t, "LOTE-001, LOTE-002", filas[1][3])
	assert.Equal(t, "2025-05-10 16:30:00", filas[1][4])
	assert.Equal(t, entity.MoveTypeCompra, filas[1][5])
	assert.Equal(t, "10", filas[1][6])
	assert.Equal(t, "5.5", filas[1][7])
	assert.Equal(t, "55", filas[1][8], "Valorizado = Cantidad × Valor Unitario")

	assert.Equal(t, entity.LotNamesNone, filas[2][3])
	assert.Equal(t, entity.MoveTypeTransferencia, filas[2][5])
}

func TestRender_ValorizadoDerivado(t *testing.T) {
	rows := []entity.ValuationRow{
		{
			ProductName:  "Perno",
			LotNames:     entity.LotNamesNone,
			LastMoveDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			MoveType:     entity.MoveTypeCompra,
			Quantity:     decimal.RequireFromString("2.5"),
			UnitValue:    decimal.RequireFromString("4"),
		},
	}

	data, err := NewExporter().Render(rows)
	require.NoError(t, err)

	f := abrirLibro(t, data)
	valorizado, err := f.GetCellValue(SheetName, "I2")
	require.NoError(t, err)
	assert.Equal(t, "10", valorizado)
}
