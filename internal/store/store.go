// Package store provides interfaces for product and sale storage operations.
package store

import (
	"context"
	"time"

	"github.com/Juan-Ayme/ventas/internal/store/db"
)

// SaleWithProduct is a sale joined with the product it references.
type SaleWithProduct struct {
	Venta    db.Venta
	Producto db.Producto
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations.
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*db.Producto, error)

	// FindAll returns all products.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]db.Producto, error)

	// FindLowStock returns the products whose stock is at or below the threshold.
	FindLowStock(ctx context.Context, threshold int32) ([]db.Producto, error)

	// Create adds a new product.
	Create(ctx context.Context, nombre string, precio float64, stock int32) (*db.Producto, error)

	// Update replaces an existing product's details.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, nombre string, precio float64, stock int32) (*db.Producto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID and
	// ErrProductHasSales if sales still reference it.
	DeleteByID(ctx context.Context, id int64) error

	// SalesCount returns the number of sales referencing the product.
	SalesCount(ctx context.Context, productID int64) (int64, error)
}

// SaleStore is an interface for sale storage operations. Stock adjustments and
// the sale row they belong to are applied in a single transaction.
type SaleStore interface {
	// FindByID retrieves a single sale by its unique identifier.
	// Returns ErrSaleNotFound if no sale exists with the given ID.
	FindByID(ctx context.Context, id int64) (*db.Venta, error)

	// FindDetailedByID retrieves a sale joined with its product.
	FindDetailedByID(ctx context.Context, id int64) (*SaleWithProduct, error)

	// FindAllDetailed returns all sales joined with their products.
	FindAllDetailed(ctx context.Context) ([]SaleWithProduct, error)

	// FindLatestDetailed returns the most recent sales by fecha_venta descending.
	FindLatestDetailed(ctx context.Context, limit int32) ([]SaleWithProduct, error)

	// Create locks the product row, verifies the requested quantity against the
	// available stock, decrements the stock and inserts the sale, all in one
	// transaction. Returns the created sale and the product as updated.
	// Returns ErrProductNotFound for an unknown product and a ValidationError
	// citing the available quantity when stock is insufficient.
	Create(ctx context.Context, productID int64, quantity int32, soldAt time.Time) (*db.Venta, *db.Producto, error)

	// Update replaces a sale's fields without reconciling product stock.
	// Returns ErrSaleNotFound if no sale exists with the given ID.
	Update(ctx context.Context, params db.UpdateVentaParams) (*db.Venta, error)

	// DeleteByID restores the product stock by the sale's quantity and removes
	// the sale, in one transaction.
	// Returns ErrSaleNotFound if no sale exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error

	// DailyTotals returns the sale count and the revenue for sales whose
	// fecha_venta falls in [from, to).
	DailyTotals(ctx context.Context, from, to time.Time) (*db.DailyVentaTotalsRow, error)

	// DailyTopProducts returns products ranked by quantity sold in [from, to).
	DailyTopProducts(ctx context.Context, from, to time.Time, limit int32) ([]db.DailyTopProductosRow, error)
}
