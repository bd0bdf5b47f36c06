package valuation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
)

// Mode define la variante de salida del agregador.
type Mode int

const (
	// ModeFlat emite una fila por movimiento elegible, en el orden de entrada.
	ModeFlat Mode = iota
	// ModeGrouped fusiona los movimientos por (producto, ubicación destino)
	// en una fila resumen, en orden de primera aparición de cada clave.
	ModeGrouped
)

// CostFunc resuelve el costo estándar vigente de un producto. Se invoca a lo
// sumo una vez por producto distinto dentro de una corrida: el costo es una
// foto al momento de generar, no un costo histórico.
type CostFunc func(productID string) (decimal.Decimal, error)

// Result es la salida de una corrida de agregación.
type Result struct {
	Rows []entity.ValuationRow
	// SkippedNoProduct cuenta movimientos sin referencia de producto. No deben
	// existir si el ledger tiene integridad referencial, pero no abortan la corrida.
	SkippedNoProduct int
}

type groupKey struct {
	productID  string
	locationID string
}

// grupo en construcción: la fila más el conjunto de lotes vistos para poder
// anexar sin duplicar dentro del grupo.
type group struct {
	row  entity.ValuationRow
	lots []string
	seen map[string]struct{}
}

// Aggregate reconstruye las filas de valorización a la fecha de corte.
//
// El agregador es dueño de los tres filtros de elegibilidad (estado done,
// fecha ≤ corte, ubicación origen o destino válida) aunque el feed ya venga
// pre-filtrado: así la función queda verificable contra fixtures crudos.
// Entrada vacía produce salida vacía, nunca error.
func Aggregate(asOf time.Time, moves []*entity.StockMove, locations []*entity.Location, costOf CostFunc, mode Mode) (Result, error) {
	valid := make(map[string]struct{}, len(locations))
	for _, loc := range locations {
		if loc.IsValid() {
			valid[loc.ID] = struct{}{}
		}
	}

	costs := make(map[string]decimal.Decimal)
	unitValue := func(productID string) (decimal.Decimal, error) {
		if c, ok := costs[productID]; ok {
			return c, nil
		}
		c, err := costOf(productID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("costo de producto %s: %w", productID, err)
		}
		costs[productID] = c
		return c, nil
	}

	var res Result
	groups := make(map[groupKey]*group)
	var order []groupKey

	for _, mv := range moves {
		if mv.State != entity.MoveStateDone || mv.Date.After(asOf) {
			continue
		}
		_, srcOK := valid[mv.LocationSrcID]
		_, destOK := valid[mv.LocationDestID]
		if !srcOK && !destOK {
			continue
		}
		if mv.ProductID == "" {
			res.SkippedNoProduct++
			continue
		}

		cost, err := unitValue(mv.ProductID)
		if err != nil {
			return Result{}, err
		}

		moveType := entity.MoveTypeTransferencia
		if mv.PickingTypeCode == entity.PickingTypeIncoming {
			moveType = entity.MoveTypeCompra
		}

		if mode == ModeFlat {
			res.Rows = append(res.Rows, entity.ValuationRow{
				ProductID:        mv.ProductID,
				ProductName:      mv.ProductName,
				LocationSrcID:    mv.LocationSrcID,
				LocationSrcName:  mv.LocationSrcName,
				LocationDestID:   mv.LocationDestID,
				LocationDestName: mv.LocationDestName,
				LotNames:         joinLots(mv.LotNames),
				LastMoveDate:     mv.Date,
				MoveType:         moveType,
				Quantity:         mv.Quantity,
				UnitValue:        cost,
			})
			continue
		}

		key := groupKey{productID: mv.ProductID, locationID: mv.LocationDestID}
		g, ok := groups[key]
		if !ok {
			g = &group{
				row: entity.ValuationRow{
					ProductID:        mv.ProductID,
					ProductName:      mv.ProductName,
					LocationSrcID:    mv.LocationSrcID,
					LocationSrcName:  mv.LocationSrcName,
					LocationDestID:   mv.LocationDestID,
					LocationDestName: mv.LocationDestName,
					LastMoveDate:     mv.Date,
					MoveType:         moveType,
					Quantity:         mv.Quantity,
					UnitValue:        cost,
				},
				seen: make(map[string]struct{}),
			}
			groups[key] = g
			order = append(order, key)
		} else {
			g.row.Quantity = g.row.Quantity.Add(mv.Quantity)
			if mv.Date.After(g.row.LastMoveDate) {
				g.row.LastMoveDate = mv.Date
			}
			// move_type se conserva del primer movimiento del grupo
		}
		for _, lot := range mv.LotNames {
			if _, dup := g.seen[lot]; dup {
				continue
			}
			g.seen[lot] = struct{}{}
			g.lots = append(g.lots, lot)
		}
	}

	for _, key := range order {
		g := groups[key]
		g.row.LotNames = joinLots(g.lots)
		res.Rows = append(res.Rows, g.row)
	}
	return res, nil
}

// joinLots une los nombres de lote en orden de aparición; "N/A" si no hay.
func joinLots(lots []string) string {
	if len(lots) == 0 {
		return entity.LotNamesNone
	}
	return strings.Join(lots, ", ")
}
