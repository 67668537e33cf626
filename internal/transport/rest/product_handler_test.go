package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	verrors "github.com/Juan-Ayme/ventas/internal/errors"
	"github.com/Juan-Ayme/ventas/internal/service"
	"github.com/stretchr/testify/assert"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	product  *service.ProductDto
	products []service.ProductDto
	error    error
}

func (m *mockProductService) FindByID(_ context.Context, _ int64) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) FindAll(_ context.Context) ([]service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

func (m *mockProductService) FindLowStock(_ context.Context) ([]service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductCreateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Update(_ context.Context, _ int64, _ service.ProductUpdateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Patch(_ context.Context, _ int64, _ service.ProductPatchDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) DeleteByID(_ context.Context, _ int64) error {
	return m.error
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func Test_ProductAPI_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product found",
			mockService: mockProductService{
				product: &service.ProductDto{ID: 1, Nombre: "Laptop", Precio: 999.99, CantidadStock: 10},
			},
			productID:    "1",
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, service.ProductDto{ID: 1, Nombre: "Laptop", Precio: 999.99, CantidadStock: 10}),
		},
		{
			name:         "Error - invalid id",
			mockService:  mockProductService{},
			productID:    "abc",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid ID: abc"}),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: verrors.ErrProductNotFound},
			productID:    "42",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Producto con ID 42 no encontrado"}),
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("service unavailable")},
			productID:    "1",
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to retrieve product with ID 1"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewProductHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/productos/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()
			// when
			api.FindByID(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_FindAll(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - products found",
			mockService: mockProductService{
				products: []service.ProductDto{
					{ID: 1, Nombre: "Laptop", Precio: 999.99, CantidadStock: 10},
					{ID: 2, Nombre: "Mouse", Precio: 19.99, CantidadStock: 3},
				},
			},
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, []service.ProductDto{
				{ID: 1, Nombre: "Laptop", Precio: 999.99, CantidadStock: 10},
				{ID: 2, Nombre: "Mouse", Precio: 19.99, CantidadStock: 3},
			}),
		},
		{
			name:         "Success - empty list",
			mockService:  mockProductService{products: []service.ProductDto{}},
			expectedCode: http.StatusOK,
			expectedBody: "[]",
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("service unavailable")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to fetch products"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewProductHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/productos/", nil)
			rr := httptest.NewRecorder()
			// when
			api.FindAll(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_FindLowStock(t *testing.T) {
	// given
	api := NewProductHandler(&mockProductService{
		products: []service.ProductDto{
			{ID: 2, Nombre: "Mouse", Precio: 19.99, CantidadStock: 3},
		},
	}, testLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/productos/agotados/", nil)
	rr := httptest.NewRecorder()
	// when
	api.FindLowStock(rr, req)
	// then
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, toJSON(t, []service.ProductDto{
		{ID: 2, Nombre: "Mouse", Precio: 19.99, CantidadStock: 3},
	}), rr.Body.String())
}

func Test_ProductAPI_Create(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product created",
			mockService: mockProductService{
				product: &service.ProductDto{ID: 1, Nombre: "Teclado", Precio: 45, CantidadStock: 20},
			},
			body:         `{"nombre": "Teclado", "precio": 45, "cantidad_stock": 20}`,
			expectedCode: http.StatusCreated,
			expectedBody: toJSON(t, service.ProductDto{ID: 1, Nombre: "Teclado", Precio: 45, CantidadStock: 20}),
		},
		{
			name:         "Error - malformed body",
			mockService:  mockProductService{},
			body:         `{"nombre": `,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid request body"}),
		},
		{
			name:         "Error - name over 100 characters",
			mockService:  mockProductService{},
			body:         `{"nombre": "` + strings.Repeat("x", 101) + `", "precio": 45}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"validation_errors": {"Nombre": "failed on rule: max"}}`,
		},
		{
			name:         "Error - service error",
			mockService:  mockProductService{error: errors.New("service unavailable")},
			body:         `{"nombre": "Teclado", "precio": 45}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to create product"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewProductHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodPost, "/api/v1/productos/", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			// when
			api.Create(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_Update(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - product updated",
			mockService: mockProductService{
				product: &service.ProductDto{ID: 1, Nombre: "Laptop Pro", Precio: 1299.99, CantidadStock: 5},
			},
			productID:    "1",
			body:         `{"nombre": "Laptop Pro", "precio": 1299.99, "cantidad_stock": 5}`,
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, service.ProductDto{ID: 1, Nombre: "Laptop Pro", Precio: 1299.99, CantidadStock: 5}),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: verrors.ErrProductNotFound},
			productID:    "42",
			body:         `{"nombre": "Laptop Pro", "precio": 1299.99, "cantidad_stock": 5}`,
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Producto con ID 42 no encontrado"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewProductHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodPut, "/api/v1/productos/"+tc.productID+"/", strings.NewReader(tc.body))
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()
			// when
			api.Update(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
		})
	}
}

func Test_ProductAPI_DeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product deleted",
			mockService:  mockProductService{},
			productID:    "1",
			expectedCode: http.StatusNoContent,
			expectedBody: "",
		},
		{
			name:         "Error - product has sales",
			mockService:  mockProductService{error: verrors.ErrProductHasSales},
			productID:    "1",
			expectedCode: http.StatusConflict,
			expectedBody: toJSON(t, ErrorResponse{Error: "No se puede eliminar este producto porque tiene ventas asociadas."}),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: verrors.ErrProductNotFound},
			productID:    "42",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Producto con ID 42 no encontrado"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := NewProductHandler(&tc.mockService, testLogger())
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/productos/"+tc.productID+"/", nil)
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()
			// when
			api.DeleteByID(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code, "status code should match")
			if tc.expectedBody == "" {
				assert.Empty(t, rr.Body.String())
			} else {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "response body should match")
			}
		})
	}
}
