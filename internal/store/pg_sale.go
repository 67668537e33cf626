package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	verrors "github.com/Juan-Ayme/ventas/internal/errors"
	"github.com/Juan-Ayme/ventas/internal/store/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// FindByID retrieves a sale by its unique identifier.
// Returns ErrSaleNotFound if no sale exists with the given ID.
func (p *PgSaleStore) FindByID(ctx context.Context, id int64) (*db.Venta, error) {
	venta, err := p.q.FindVentaByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, verrors.ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID: %w", err)
	}
	return &venta, nil
}

// FindDetailedByID retrieves a sale joined with its product.
func (p *PgSaleStore) FindDetailedByID(ctx context.Context, id int64) (*SaleWithProduct, error) {
	row, err := p.q.FindVentaWithProducto(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, verrors.ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID: %w", err)
	}
	return &SaleWithProduct{Venta: row.Venta, Producto: row.Producto}, nil
}

// FindAllDetailed retrieves all sales joined with their products.
func (p *PgSaleStore) FindAllDetailed(ctx context.Context) ([]SaleWithProduct, error) {
	rows, err := p.q.FindAllVentasWithProducto(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find all sales: %w", err)
	}
	sales := make([]SaleWithProduct, len(rows))
	for i, row := range rows {
		sales[i] = SaleWithProduct{Venta: row.Venta, Producto: row.Producto}
	}
	return sales, nil
}

// FindLatestDetailed retrieves the most recent sales by fecha_venta descending.
func (p *PgSaleStore) FindLatestDetailed(ctx context.Context, limit int32) ([]SaleWithProduct, error) {
	rows, err := p.q.FindLatestVentasWithProducto(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest sales: %w", err)
	}
	sales := make([]SaleWithProduct, len(rows))
	for i, row := range rows {
		sales[i] = SaleWithProduct{Venta: row.Venta, Producto: row.Producto}
	}
	return sales, nil
}

// Create inserts a sale and decrements the product stock in one transaction.
// The product row is locked first, so concurrent sales against the same
// product serialize and cannot oversubscribe stock.
func (p *PgSaleStore) Create(ctx context.Context, productID int64, quantity int32, soldAt time.Time) (*db.Venta, *db.Producto, error) {
	var createdVenta *db.Venta
	var updatedProducto *db.Producto

	txErr := p.withTransaction(ctx, func(qtx *db.Queries) error {
		producto, err := qtx.FindProductoByIDForUpdate(ctx, productID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return verrors.ErrProductNotFound
			}
			return fmt.Errorf("failed to lock product row: %w", err)
		}
		if quantity > producto.CantidadStock {
			return verrors.NewInsufficientStock(producto.CantidadStock)
		}

		adjusted, err := qtx.AdjustProductoStock(ctx, db.AdjustProductoStockParams{
			ID:            productID,
			CantidadStock: -quantity,
		})
		if err != nil {
			return fmt.Errorf("failed to decrement product stock: %w", err)
		}

		venta, err := qtx.CreateVenta(ctx, db.CreateVentaParams{
			IDProducto:      productID,
			CantidadVendida: quantity,
			FechaVenta:      soldAt,
		})
		if err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		createdVenta = &venta
		updatedProducto = &adjusted
		return nil
	})

	if txErr != nil {
		return nil, nil, txErr
	}

	return createdVenta, updatedProducto, nil
}

// Update replaces a sale's fields. Product stock is deliberately left alone:
// editing a sale's quantity does not reconcile the stock it originally moved.
func (p *PgSaleStore) Update(ctx context.Context, params db.UpdateVentaParams) (*db.Venta, error) {
	venta, err := p.q.UpdateVenta(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, verrors.ErrSaleNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, verrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}
	return &venta, nil
}

// DeleteByID restores the product stock by the sale's quantity and removes the
// sale, in one transaction.
func (p *PgSaleStore) DeleteByID(ctx context.Context, id int64) error {
	return p.withTransaction(ctx, func(qtx *db.Queries) error {
		venta, err := qtx.FindVentaByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return verrors.ErrSaleNotFound
			}
			return fmt.Errorf("failed to find sale by ID: %w", err)
		}

		if _, err := qtx.AdjustProductoStock(ctx, db.AdjustProductoStockParams{
			ID:            venta.IDProducto,
			CantidadStock: venta.CantidadVendida,
		}); err != nil {
			return fmt.Errorf("failed to restore product stock: %w", err)
		}

		count, err := qtx.DeleteVenta(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}
		if count == 0 {
			return verrors.ErrSaleNotFound
		}
		return nil
	})
}

// DailyTotals returns the sale count and revenue for fecha_venta in [from, to).
func (p *PgSaleStore) DailyTotals(ctx context.Context, from, to time.Time) (*db.DailyVentaTotalsRow, error) {
	totals, err := p.q.DailyVentaTotals(ctx, db.DailyVentaTotalsParams{
		FechaVenta:   from,
		FechaVenta_2: to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute daily totals: %w", err)
	}
	return &totals, nil
}

// DailyTopProducts returns products ranked by quantity sold in [from, to).
func (p *PgSaleStore) DailyTopProducts(ctx context.Context, from, to time.Time, limit int32) ([]db.DailyTopProductosRow, error) {
	rows, err := p.q.DailyTopProductos(ctx, db.DailyTopProductosParams{
		FechaVenta:   from,
		FechaVenta_2: to,
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute daily top products: %w", err)
	}
	return rows, nil
}
