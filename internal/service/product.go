// Package service provides the implementation of product and sale business logic.
package service

import (
	"context"

	verrors "github.com/Juan-Ayme/ventas/internal/errors"
	"github.com/Juan-Ayme/ventas/internal/store"
	"github.com/Juan-Ayme/ventas/internal/store/db"
)

// lowStockThreshold marks products considered "agotados" (running out).
const lowStockThreshold = 5

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// FindAll returns all products.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// FindLowStock returns the products with stock at or below the low-stock threshold.
	FindLowStock(ctx context.Context) ([]ProductDto, error)

	// Create adds a new product to the catalog.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update replaces an existing product's details.
	Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error)

	// Patch merges the provided fields over an existing product.
	Patch(ctx context.Context, id int64, product ProductPatchDto) (*ProductDto, error)

	// DeleteByID removes a product. Returns ErrProductHasSales while any sale
	// still references it.
	DeleteByID(ctx context.Context, id int64) error
}

// ProductDto represents the wire format of a product.
type ProductDto struct {
	ID            int64   `json:"id"`
	Nombre        string  `json:"nombre"`
	Precio        float64 `json:"precio"`
	CantidadStock int32   `json:"cantidad_stock"`
}

// ProductCreateDto carries the caller-settable product fields. The external
// contract allows empty names and negative stock, so only shape constraints
// are enforced here.
type ProductCreateDto struct {
	Nombre        string  `json:"nombre" validate:"max=100"`
	Precio        float64 `json:"precio" validate:"gte=0"`
	CantidadStock int32   `json:"cantidad_stock"`
}

// ProductUpdateDto carries a full replacement of the caller-settable fields.
type ProductUpdateDto struct {
	Nombre        string  `json:"nombre" validate:"max=100"`
	Precio        float64 `json:"precio" validate:"gte=0"`
	CantidadStock int32   `json:"cantidad_stock"`
}

// ProductPatchDto carries a partial update; nil fields keep their stored value.
type ProductPatchDto struct {
	Nombre        *string  `json:"nombre" validate:"omitempty,max=100"`
	Precio        *float64 `json:"precio" validate:"omitempty,gte=0"`
	CantidadStock *int32   `json:"cantidad_stock"`
}

// ProductServiceImpl implements ProductService and provides methods to manage products.
type ProductServiceImpl struct {
	productStore store.ProductStore
}

// NewProductService creates a new instance of ProductService with the provided store.
func NewProductService(productStore store.ProductStore) *ProductServiceImpl {
	return &ProductServiceImpl{productStore: productStore}
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *ProductServiceImpl) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	producto, err := s.productStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductDto(producto), nil
}

// FindAll retrieves all products as ProductDtos.
func (s *ProductServiceImpl) FindAll(ctx context.Context) ([]ProductDto, error) {
	productos, err := s.productStore.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toProductDtos(productos), nil
}

// FindLowStock retrieves the products at or below the low-stock threshold.
func (s *ProductServiceImpl) FindLowStock(ctx context.Context) ([]ProductDto, error) {
	productos, err := s.productStore.FindLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	return toProductDtos(productos), nil
}

// Create adds a new product and returns it as a ProductDto.
func (s *ProductServiceImpl) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	producto, err := s.productStore.Create(ctx, product.Nombre, product.Precio, product.CantidadStock)
	if err != nil {
		return nil, err
	}
	return toProductDto(producto), nil
}

// Update replaces an existing product's details and returns the updated product.
func (s *ProductServiceImpl) Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error) {
	producto, err := s.productStore.Update(ctx, id, product.Nombre, product.Precio, product.CantidadStock)
	if err != nil {
		return nil, err
	}
	return toProductDto(producto), nil
}

// Patch merges the provided fields over the stored product and persists the result.
func (s *ProductServiceImpl) Patch(ctx context.Context, id int64, patch ProductPatchDto) (*ProductDto, error) {
	current, err := s.productStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	nombre := current.Nombre
	precio := current.Precio
	stock := current.CantidadStock
	if patch.Nombre != nil {
		nombre = *patch.Nombre
	}
	if patch.Precio != nil {
		precio = *patch.Precio
	}
	if patch.CantidadStock != nil {
		stock = *patch.CantidadStock
	}

	producto, err := s.productStore.Update(ctx, id, nombre, precio, stock)
	if err != nil {
		return nil, err
	}
	return toProductDto(producto), nil
}

// DeleteByID removes a product unless sales still reference it. The dependent
// sales check is the sole deletion rule; the foreign key backs it at the
// storage layer.
func (s *ProductServiceImpl) DeleteByID(ctx context.Context, id int64) error {
	count, err := s.productStore.SalesCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return verrors.ErrProductHasSales
	}
	return s.productStore.DeleteByID(ctx, id)
}

// toProductDto converts a db.Producto to a ProductDto.
func toProductDto(producto *db.Producto) *ProductDto {
	if producto == nil {
		return nil
	}
	return &ProductDto{
		ID:            producto.ID,
		Nombre:        producto.Nombre,
		Precio:        producto.Precio,
		CantidadStock: producto.CantidadStock,
	}
}

func toProductDtos(productos []db.Producto) []ProductDto {
	dtos := make([]ProductDto, len(productos))
	for i := range productos {
		dtos[i] = *toProductDto(&productos[i])
	}
	return dtos
}
