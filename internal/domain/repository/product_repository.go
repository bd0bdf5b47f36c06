package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
)

// ProductRepository define el puerto de lectura sobre el catálogo de productos (DIP).
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	// StandardCost devuelve el costo estándar vigente del producto.
	// Retorna domain.ErrNotFound si el producto no existe.
	StandardCost(productID string) (decimal.Decimal, error)
}
