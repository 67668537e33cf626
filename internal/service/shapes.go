package service

import (
	"time"

	"github.com/Juan-Ayme/ventas/internal/store/db"
)

// SaleOp enumerates the sale operations. Each operation is bound to exactly
// one of the three fixed response shapes through the saleShapeFor table, so
// the shape choice is explicit rather than inspected at runtime.
type SaleOp int

const (
	SaleOpCreate SaleOp = iota
	SaleOpList
	SaleOpRetrieve
	SaleOpLatest
	SaleOpUpdate
	SaleOpDelete
)

// saleShapeFunc builds one wire representation of a sale. The product is only
// consulted by shapes that embed it.
type saleShapeFunc func(venta *db.Venta, producto *db.Producto) any

var saleShapeFor = map[SaleOp]saleShapeFunc{
	SaleOpCreate:   shapeCreated,
	SaleOpList:     shapeDetailed,
	SaleOpRetrieve: shapeDetailed,
	SaleOpLatest:   shapeDetailed,
	SaleOpUpdate:   shapeBasic,
	SaleOpDelete:   shapeBasic,
}

// shapeSale builds the response representation of a sale for the given operation.
func shapeSale(op SaleOp, venta *db.Venta, producto *db.Producto) any {
	return saleShapeFor[op](venta, producto)
}

func shapeBasic(venta *db.Venta, _ *db.Producto) any {
	return &SaleDto{
		ID:              venta.ID,
		Producto:        venta.IDProducto,
		CantidadVendida: venta.CantidadVendida,
		FechaVenta:      venta.FechaVenta.Format(time.RFC3339),
	}
}

func shapeDetailed(venta *db.Venta, producto *db.Producto) any {
	return &SaleDetailDto{
		ID:              venta.ID,
		Producto:        *toProductDto(producto),
		CantidadVendida: venta.CantidadVendida,
		FechaVenta:      venta.FechaVenta.Format(time.RFC3339),
	}
}

func shapeCreated(venta *db.Venta, _ *db.Producto) any {
	return &SaleCreatedDto{
		Producto:        venta.IDProducto,
		CantidadVendida: venta.CantidadVendida,
	}
}
