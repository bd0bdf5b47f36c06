package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo externo.
// StandardCost es el costo estándar vigente: el reporte lo usa como foto de
// valorización al momento de generar, no como costo histórico del movimiento.
type Product struct {
	ID           string
	SKU          string
	Name         string
	StandardCost decimal.Decimal
	UnitMeasure  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
