package store

import (
	"context"
	"errors"
	"fmt"

	verrors "github.com/Juan-Ayme/ventas/internal/errors"
	"github.com/Juan-Ayme/ventas/internal/store/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// foreignKeyViolation is the PostgreSQL error code raised when a delete or
// write would break the Ventas -> Productos reference.
const foreignKeyViolation = "23503"

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgProductStore) FindByID(ctx context.Context, id int64) (*db.Producto, error) {
	producto, err := p.q.FindProductoByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, verrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &producto, nil
}

// FindAll retrieves all products ordered by ID.
func (p *PgProductStore) FindAll(ctx context.Context) ([]db.Producto, error) {
	productos, err := p.q.FindAllProductos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	return productos, nil
}

// FindLowStock retrieves the products whose stock is at or below the threshold.
func (p *PgProductStore) FindLowStock(ctx context.Context, threshold int32) ([]db.Producto, error) {
	productos, err := p.q.FindLowStockProductos(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to find low stock products: %w", err)
	}
	return productos, nil
}

// Create adds a new product to the system.
func (p *PgProductStore) Create(ctx context.Context, nombre string, precio float64, stock int32) (*db.Producto, error) {
	producto, err := p.q.CreateProducto(ctx, db.CreateProductoParams{
		Nombre:        nombre,
		Precio:        precio,
		CantidadStock: stock,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &producto, nil
}

// Update replaces an existing product's details.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgProductStore) Update(ctx context.Context, id int64, nombre string, precio float64, stock int32) (*db.Producto, error) {
	producto, err := p.q.UpdateProducto(ctx, db.UpdateProductoParams{
		ID:            id,
		Nombre:        nombre,
		Precio:        precio,
		CantidadStock: stock,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, verrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &producto, nil
}

// DeleteByID removes a product by its unique identifier. The foreign key from
// Ventas is RESTRICT, so a delete racing a concurrent sale still fails cleanly.
func (p *PgProductStore) DeleteByID(ctx context.Context, id int64) error {
	count, err := p.q.DeleteProducto(ctx, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return verrors.ErrProductHasSales
		}
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if count == 0 {
		return verrors.ErrProductNotFound
	}
	return nil
}

// SalesCount returns the number of sales referencing the product.
func (p *PgProductStore) SalesCount(ctx context.Context, productID int64) (int64, error) {
	count, err := p.q.CountVentasByProducto(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to count sales for product: %w", err)
	}
	return count, nil
}
