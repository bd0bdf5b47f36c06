package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un movimiento en el ledger. Solo "done" es elegible para el reporte.
const (
	MoveStateDraft  = "draft"
	MoveStateDone   = "done"
	MoveStateCancel = "cancel"
)

// Códigos del tipo de operación que originó el movimiento.
const (
	PickingTypeIncoming = "incoming"
	PickingTypeOutgoing = "outgoing"
	PickingTypeInternal = "internal"
)

// StockMove representa un movimiento del ledger histórico de stock
// (colaborador externo, solo lectura). Los nombres de producto y ubicaciones
// vienen resueltos por el feed para no re-consultar catálogos por fila.
type StockMove struct {
	ID               string
	ProductID        string
	ProductName      string
	LocationSrcID    string
	LocationSrcName  string
	LocationDestID   string
	LocationDestName string
	Date             time.Time
	State            string // draft, done, cancel
	Quantity         decimal.Decimal
	PickingTypeCode  string   // incoming, outgoing, internal
	LotNames         []string // nombres de lotes/series en orden de línea
}
