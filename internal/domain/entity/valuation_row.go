package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del reporte, derivados del código de operación origen.
const (
	MoveTypeCompra        = "Compra"
	MoveTypeTransferencia = "Transferencia Interna"
)

// LotNamesNone es el centinela cuando el movimiento no tiene lotes/series.
const LotNamesNone = "N/A"

// ValuationRow es una línea del reporte de inventario valorizado a una fecha.
// TotalValue nunca se almacena: se deriva de Quantity y UnitValue para que no
// pueda quedar inconsistente ante un cambio posterior de cualquiera de los dos.
type ValuationRow struct {
	ID               string
	RunID            string // corrida de generación a la que pertenece la fila
	Seq              int    // posición estable dentro de la corrida
	ProductID        string
	ProductName      string
	LocationSrcID    string
	LocationSrcName  string
	LocationDestID   string
	LocationDestName string
	LotNames         string // nombres de lotes unidos por coma, o "N/A"
	LastMoveDate     time.Time
	MoveType         string // Compra | Transferencia Interna
	Quantity         decimal.Decimal
	UnitValue        decimal.Decimal
	CreatedAt        time.Time
}

// TotalValue devuelve Cantidad × Valor Unitario (Valorizado).
func (r *ValuationRow) TotalValue() decimal.Decimal {
	return r.Quantity.Mul(r.UnitValue)
}

// ReportSummary agrega los totales del reporte persistido (última corrida).
type ReportSummary struct {
	TotalProducts   int64
	TotalQuantity   decimal.Decimal
	TotalValue      decimal.Decimal
	OverdueProducts int64 // filas cuyo último movimiento es anterior al corte de antigüedad
}
