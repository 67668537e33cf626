package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	verrors "github.com/Juan-Ayme/ventas/internal/errors"
	"github.com/Juan-Ayme/ventas/internal/store"
	"github.com/Juan-Ayme/ventas/internal/store/db"
	"github.com/Juan-Ayme/ventas/pkg/messaging"
	"github.com/Juan-Ayme/ventas/pkg/messaging/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// latestSalesLimit caps the /ultimas_ventas listing.
const latestSalesLimit = 10

// topProductsLimit caps the daily report's best-seller ranking.
const topProductsLimit = 5

// SaleService defines the methods for managing sales.
// It abstracts the underlying business logic and data access.
type SaleService interface {
	// FindByID retrieves a single sale in the detailed shape.
	// Returns ErrSaleNotFound if no sale exists with the given ID.
	FindByID(ctx context.Context, id int64) (*SaleDetailDto, error)

	// FindAll returns all sales in the detailed shape.
	FindAll(ctx context.Context) ([]SaleDetailDto, error)

	// FindLatest returns the most recent sales in the detailed shape.
	FindLatest(ctx context.Context) ([]SaleDetailDto, error)

	// Create validates the requested quantity against the product stock,
	// decrements the stock and records the sale.
	Create(ctx context.Context, sale SaleCreateDto) (*SaleCreatedDto, error)

	// Update replaces a sale's fields without reconciling product stock.
	Update(ctx context.Context, id int64, sale SaleUpdateDto) (*SaleDto, error)

	// Patch merges the provided fields over an existing sale, without
	// reconciling product stock.
	Patch(ctx context.Context, id int64, sale SalePatchDto) (*SaleDto, error)

	// DeleteByID restores the product stock by the sale's quantity and removes the sale.
	DeleteByID(ctx context.Context, id int64) error

	// DailyReport aggregates the current day's sales.
	DailyReport(ctx context.Context) (*DailyReportDto, error)
}

// SaleDto is the basic wire format of a sale: the product by reference only.
type SaleDto struct {
	ID              int64  `json:"id"`
	Producto        int64  `json:"producto"`
	CantidadVendida int32  `json:"cantidad_vendida"`
	FechaVenta      string `json:"fecha_venta"`
}

// SaleDetailDto embeds the full product representation.
type SaleDetailDto struct {
	ID              int64      `json:"id"`
	Producto        ProductDto `json:"producto"`
	CantidadVendida int32      `json:"cantidad_vendida"`
	FechaVenta      string     `json:"fecha_venta"`
}

// SaleCreateDto carries the validating create input: product reference and
// quantity only. Quantity bounds are checked in the service for exact
// client-facing messages.
type SaleCreateDto struct {
	Producto        int64 `json:"producto" validate:"required,gt=0"`
	CantidadVendida int32 `json:"cantidad_vendida"`
}

// SaleCreatedDto mirrors the create input; creation responds with exactly the
// fields the validating shape accepts.
type SaleCreatedDto struct {
	Producto        int64 `json:"producto"`
	CantidadVendida int32 `json:"cantidad_vendida"`
}

// SaleUpdateDto carries a full replacement of a sale's fields. FechaVenta is
// RFC 3339; empty keeps the stored timestamp.
type SaleUpdateDto struct {
	Producto        int64  `json:"producto" validate:"required,gt=0"`
	CantidadVendida int32  `json:"cantidad_vendida" validate:"required"`
	FechaVenta      string `json:"fecha_venta" validate:"omitempty"`
}

// SalePatchDto carries a partial update; nil fields keep their stored value.
type SalePatchDto struct {
	Producto        *int64  `json:"producto" validate:"omitempty,gt=0"`
	CantidadVendida *int32  `json:"cantidad_vendida"`
	FechaVenta      *string `json:"fecha_venta"`
}

// TopProductDto is one row of the daily best-seller ranking.
type TopProductDto struct {
	ProductoNombre string `json:"producto_nombre"`
	TotalVendido   int64  `json:"total_vendido"`
}

// DailyReportDto aggregates the current day's sales.
type DailyReportDto struct {
	Fecha                string          `json:"fecha"`
	TotalVentas          int64           `json:"total_ventas"`
	IngresosTotales      float64         `json:"ingresos_totales"`
	ProductosMasVendidos []TopProductDto `json:"productos_mas_vendidos"`
}

// SaleServiceImpl implements SaleService and provides methods to manage sales.
type SaleServiceImpl struct {
	saleStore    store.SaleStore
	publisher    messaging.Publisher
	now          func() time.Time
	salesCounter metric.Int64Counter
}

// NewSaleService creates a new instance of SaleService. The clock is injected
// so sale timestamps and report day bounds are testable.
func NewSaleService(saleStore store.SaleStore, publisher messaging.Publisher, now func() time.Time) *SaleServiceImpl {
	meter := otel.Meter("ventas-service")
	salesCounter, err := meter.Int64Counter("ventas_creadas", metric.WithDescription("Total number of created sales"))
	if err != nil {
		panic(fmt.Sprintf("failed to create ventas_creadas counter: %v", err))
	}
	return &SaleServiceImpl{
		saleStore:    saleStore,
		publisher:    publisher,
		now:          now,
		salesCounter: salesCounter,
	}
}

// FindByID retrieves a sale by its ID in the detailed shape.
func (s *SaleServiceImpl) FindByID(ctx context.Context, id int64) (*SaleDetailDto, error) {
	sale, err := s.saleStore.FindDetailedByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return shapeSale(SaleOpRetrieve, &sale.Venta, &sale.Producto).(*SaleDetailDto), nil
}

// FindAll retrieves all sales in the detailed shape.
func (s *SaleServiceImpl) FindAll(ctx context.Context) ([]SaleDetailDto, error) {
	sales, err := s.saleStore.FindAllDetailed(ctx)
	if err != nil {
		return nil, err
	}
	return toDetailDtos(SaleOpList, sales), nil
}

// FindLatest retrieves the most recent sales in the detailed shape.
func (s *SaleServiceImpl) FindLatest(ctx context.Context) ([]SaleDetailDto, error) {
	sales, err := s.saleStore.FindLatestDetailed(ctx, latestSalesLimit)
	if err != nil {
		return nil, err
	}
	return toDetailDtos(SaleOpLatest, sales), nil
}

// Create validates the quantity, then lets the store decrement the stock and
// insert the sale in one transaction. A sale-created event is published best
// effort afterwards.
func (s *SaleServiceImpl) Create(ctx context.Context, sale SaleCreateDto) (*SaleCreatedDto, error) {
	if sale.CantidadVendida <= 0 {
		return nil, verrors.NewValidation(verrors.ErrInvalidQuantity, verrors.MsgQuantityNotPositive)
	}

	venta, producto, err := s.saleStore.Create(ctx, sale.Producto, sale.CantidadVendida, s.now())
	if err != nil {
		return nil, err
	}

	event := events.SaleCreatedEvent{
		SaleID:     venta.ID,
		ProductID:  producto.ID,
		Quantity:   venta.CantidadVendida,
		TotalPrice: producto.Precio * float64(venta.CantidadVendida),
		SoldAt:     venta.FechaVenta,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish SaleCreatedEvent", "error", err)
	}
	s.salesCounter.Add(ctx, 1)

	return shapeSale(SaleOpCreate, venta, producto).(*SaleCreatedDto), nil
}

// Update replaces a sale's fields. Product stock is left untouched: the
// external contract defines no stock reconciliation for sale edits.
func (s *SaleServiceImpl) Update(ctx context.Context, id int64, sale SaleUpdateDto) (*SaleDto, error) {
	current, err := s.saleStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fechaVenta := current.FechaVenta
	if sale.FechaVenta != "" {
		fechaVenta, err = time.Parse(time.RFC3339, sale.FechaVenta)
		if err != nil {
			return nil, verrors.NewValidation(err, fmt.Sprintf("Fecha inválida: %s", sale.FechaVenta))
		}
	}

	updated, err := s.saleStore.Update(ctx, db.UpdateVentaParams{
		ID:              id,
		IDProducto:      sale.Producto,
		CantidadVendida: sale.CantidadVendida,
		FechaVenta:      fechaVenta,
	})
	if err != nil {
		return nil, err
	}
	return shapeSale(SaleOpUpdate, updated, nil).(*SaleDto), nil
}

// Patch merges the provided fields over the stored sale and persists the result.
func (s *SaleServiceImpl) Patch(ctx context.Context, id int64, patch SalePatchDto) (*SaleDto, error) {
	current, err := s.saleStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	productID := current.IDProducto
	quantity := current.CantidadVendida
	fechaVenta := current.FechaVenta
	if patch.Producto != nil {
		productID = *patch.Producto
	}
	if patch.CantidadVendida != nil {
		quantity = *patch.CantidadVendida
	}
	if patch.FechaVenta != nil {
		fechaVenta, err = time.Parse(time.RFC3339, *patch.FechaVenta)
		if err != nil {
			return nil, verrors.NewValidation(err, fmt.Sprintf("Fecha inválida: %s", *patch.FechaVenta))
		}
	}

	updated, err := s.saleStore.Update(ctx, db.UpdateVentaParams{
		ID:              id,
		IDProducto:      productID,
		CantidadVendida: quantity,
		FechaVenta:      fechaVenta,
	})
	if err != nil {
		return nil, err
	}
	return shapeSale(SaleOpUpdate, updated, nil).(*SaleDto), nil
}

// DeleteByID restores the product stock and removes the sale.
func (s *SaleServiceImpl) DeleteByID(ctx context.Context, id int64) error {
	return s.saleStore.DeleteByID(ctx, id)
}

// DailyReport aggregates the sales of the current calendar day, using the
// injected clock's local date.
func (s *SaleServiceImpl) DailyReport(ctx context.Context) (*DailyReportDto, error) {
	now := s.now()
	year, month, day := now.Date()
	from := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	to := from.Add(24 * time.Hour)

	totals, err := s.saleStore.DailyTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	top, err := s.saleStore.DailyTopProducts(ctx, from, to, topProductsLimit)
	if err != nil {
		return nil, err
	}

	topDtos := make([]TopProductDto, len(top))
	for i, row := range top {
		topDtos[i] = TopProductDto{ProductoNombre: row.ProductoNombre, TotalVendido: row.TotalVendido}
	}

	return &DailyReportDto{
		Fecha:                from.Format("2006-01-02"),
		TotalVentas:          totals.TotalVentas,
		IngresosTotales:      totals.IngresosTotales,
		ProductosMasVendidos: topDtos,
	}, nil
}

func toDetailDtos(op SaleOp, sales []store.SaleWithProduct) []SaleDetailDto {
	dtos := make([]SaleDetailDto, len(sales))
	for i := range sales {
		dtos[i] = *shapeSale(op, &sales[i].Venta, &sales[i].Producto).(*SaleDetailDto)
	}
	return dtos
}
