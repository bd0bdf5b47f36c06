package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-historico-api/internal/domain"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository lee el catálogo de productos.
type ProductRepository struct {
	db Querier
}

// NewProductRepository construye el repositorio con el pool o una tx.
func NewProductRepository(db Querier) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByID obtiene un producto por su ID.
func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	ctx := context.Background()

	query := `
		SELECT id, sku, name, standard_cost, unit_measure, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p entity.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.StandardCost, &p.UnitMeasure, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	return &p, nil
}

// StandardCost devuelve el costo estándar vigente del producto.
func (r *ProductRepository) StandardCost(productID string) (decimal.Decimal, error) {
	ctx := context.Background()

	var cost decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT standard_cost FROM products WHERE id = $1`, productID).Scan(&cost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("obtener costo estándar: %w", err)
	}
	return cost, nil
}
