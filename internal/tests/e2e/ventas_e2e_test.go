// Package e2e provides end-to-end tests for the ventas application.
// The suite leverages `testcontainers-go` to spin up a real PostgreSQL instance in a Docker container,
// ensuring tests run against a production-like environment. It uses `testify/suite` for better structure
// and lifecycle management (`SetupSuite`, `TearDownSuite`, `SetupTest`).
//
// Key features of the test suite:
//   - A PostgreSQL container is started and database migrations are applied before tests run.
//   - The actual application handler is run in an `httptest.Server`.
//   - Each test case is fully isolated by truncating the database tables before it runs.
//   - Test coverage includes the full sale lifecycle: stock decrement on creation,
//     rejection messages for invalid quantity and insufficient stock, stock restoration
//     on deletion, the delete guard for referenced products, and the reporting endpoints.
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/Juan-Ayme/ventas/internal/app"
	"github.com/Juan-Ayme/ventas/internal/service"
	"github.com/Juan-Ayme/ventas/pkg/messaging"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// skipE2ETests is the environment variable that can be set to skip E2E tests.
const skipE2ETests = "VENTAS_SKIP_E2E_TESTS"

const productosURL = "/api/v1/productos/"
const ventasURL = "/api/v1/ventas/"

// VentasE2ESuite is a test suite for end-to-end tests of the ventas application.
type VentasE2ESuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	server      *httptest.Server
	httpClient  *http.Client
	logger      *slog.Logger
	ctx         context.Context
}

// SetupSuite initializes the test suite by setting up the PostgreSQL container,
// database connection and the application handler.
func (s *VentasE2ESuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dbName := "ventas"
	dbUser := "user"
	dbPassword := "password"

	// 1. Start a PostgreSQL container with the specified configuration. Wait for the container to be ready.
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		// Wait for a specific log message indicating the database service is ready.
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		// Ensure the container is ready to accept connections on the default PostgreSQL port.
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	// 2. Get the connection string from the container
	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	// 3. create a new pgxpool instance using the connection string
	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgx pool")

	// 3.1 Ping the database to ensure the connection is established
	for i := range 10 {
		s.logger.Info("Pinging E2E PostgreSQL database", "attempt", i+1)
		err = s.dbPool.Ping(s.ctx)
		if err == nil {
			break
		}
		time.Sleep(time.Second * 2)
	}
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL after retries")

	// 4. Database migration
	wd, _ := os.Getwd()
	migrationsPath := filepath.Join(wd, "..", "..", "..", "migrations")
	sourceURL := "file://" + migrationsPath
	m, err := migrate.New(sourceURL, connStr)
	require.NoError(s.T(), err, "Failed to create migrate instance")
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		_, _ = m.Close()
		require.NoError(s.T(), err, "Failed to apply migrations")
	}
	s.logger.Info("Migrations applied for E2E tests")

	// 5. Set up the application handler
	deps := app.SetupDependencies(s.dbPool, messaging.NopPublisher{}, s.logger)
	appHandler := app.SetupHttpHandler(deps)

	s.server = httptest.NewServer(appHandler)
	s.httpClient = s.server.Client()
	s.logger.Info("E2E test server started", "url", s.server.URL)
}

// TearDownSuite cleans up resources after all tests in the suite have run.
func (s *VentasE2ESuite) TearDownSuite() {
	s.logger.Info("Tearing down E2E suite...")
	if s.server != nil {
		s.server.Close()
		s.logger.Info("E2E test server closed.")
	}
	if s.dbPool != nil {
		s.dbPool.Close()
		s.logger.Info("E2E DB pool closed.")
	}
	if s.pgContainer != nil {
		s.logger.Info("Terminating E2E PostgreSQL container...")
		err := s.pgContainer.Terminate(s.ctx)
		if err != nil {
			s.logger.Warn("Failed to terminate E2E PostgreSQL container", "error", err)
		} else {
			s.logger.Info("E2E PostgreSQL container terminated.")
		}
	}
}

// SetupTest prepares the database for each test by truncating both tables.
func (s *VentasE2ESuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, `TRUNCATE TABLE "Ventas", "Productos" RESTART IDENTITY CASCADE`)
	require.NoError(s.T(), err, "Failed to truncate tables")
}

// TestVentasE2E runs the end-to-end test suite.
func TestVentasE2E(t *testing.T) {
	// Skip E2E tests if the environment variable is set
	if os.Getenv(skipE2ETests) == "1" {
		t.Skip("Skipping E2E tests based on " + skipE2ETests + " env var")
	}
	// Run the test suite
	suite.Run(t, new(VentasE2ESuite))
}

// --------------------------------------------------------------------------
// ---------- Payload structures and Helper methods for E2E tests -----------
// --------------------------------------------------------------------------

type createProductPayload struct {
	Nombre        string  `json:"nombre"`
	Precio        float64 `json:"precio"`
	CantidadStock int32   `json:"cantidad_stock"`
}

type createSalePayload struct {
	Producto        int64 `json:"producto"`
	CantidadVendida int32 `json:"cantidad_vendida"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// do executes an HTTP request against the test server and returns the
// response status and raw body.
func (s *VentasE2ESuite) do(method, path string, payload any) (int, []byte) {
	s.T().Helper()
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(s.T(), err, "Failed to marshal request payload")
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(s.ctx, method, s.server.URL+path, body)
	require.NoError(s.T(), err, "Failed to build request")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err, "Request failed")
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err, "Failed to read response body")
	return resp.StatusCode, raw
}

// createProduct creates a product through the API and decodes the response.
func (s *VentasE2ESuite) createProduct(payload createProductPayload) service.ProductDto {
	s.T().Helper()
	code, raw := s.do(http.MethodPost, productosURL, payload)
	require.Equal(s.T(), http.StatusCreated, code, "product creation should return 201")
	var dto service.ProductDto
	require.NoError(s.T(), json.Unmarshal(raw, &dto))
	return dto
}

// fetchProduct fetches a product by ID through the API.
func (s *VentasE2ESuite) fetchProduct(id int64) service.ProductDto {
	s.T().Helper()
	code, raw := s.do(http.MethodGet, productosURL+formatID(id)+"/", nil)
	require.Equal(s.T(), http.StatusOK, code)
	var dto service.ProductDto
	require.NoError(s.T(), json.Unmarshal(raw, &dto))
	return dto
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// --------------------------------------------------------------------------
// ------------------------------- Test cases -------------------------------
// --------------------------------------------------------------------------

func (s *VentasE2ESuite) TestProductLifecycle() {
	// create
	created := s.createProduct(createProductPayload{Nombre: "Laptop", Precio: 999.99, CantidadStock: 10})
	assert.Equal(s.T(), "Laptop", created.Nombre)

	// list
	code, raw := s.do(http.MethodGet, productosURL, nil)
	require.Equal(s.T(), http.StatusOK, code)
	var list []service.ProductDto
	require.NoError(s.T(), json.Unmarshal(raw, &list))
	require.Len(s.T(), list, 1)

	// update
	code, raw = s.do(http.MethodPut, productosURL+formatID(created.ID)+"/", createProductPayload{
		Nombre: "Laptop Pro", Precio: 1299.99, CantidadStock: 5,
	})
	require.Equal(s.T(), http.StatusOK, code)
	var updated service.ProductDto
	require.NoError(s.T(), json.Unmarshal(raw, &updated))
	assert.Equal(s.T(), "Laptop Pro", updated.Nombre)

	// delete
	code, _ = s.do(http.MethodDelete, productosURL+formatID(created.ID)+"/", nil)
	assert.Equal(s.T(), http.StatusNoContent, code)

	code, _ = s.do(http.MethodGet, productosURL+formatID(created.ID)+"/", nil)
	assert.Equal(s.T(), http.StatusNotFound, code)
}

func (s *VentasE2ESuite) TestLowStockListing() {
	s.createProduct(createProductPayload{Nombre: "Laptop", Precio: 999.99, CantidadStock: 10})
	mouse := s.createProduct(createProductPayload{Nombre: "Mouse", Precio: 19.99, CantidadStock: 5})
	cable := s.createProduct(createProductPayload{Nombre: "Cable", Precio: 4.50, CantidadStock: 0})

	code, raw := s.do(http.MethodGet, productosURL+"agotados/", nil)
	require.Equal(s.T(), http.StatusOK, code)
	var list []service.ProductDto
	require.NoError(s.T(), json.Unmarshal(raw, &list))
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), mouse.ID, list[0].ID)
	assert.Equal(s.T(), cable.ID, list[1].ID)
}

func (s *VentasE2ESuite) TestSaleCreationDecrementsStock() {
	producto := s.createProduct(createProductPayload{Nombre: "Laptop", Precio: 999.99, CantidadStock: 10})

	code, raw := s.do(http.MethodPost, ventasURL, createSalePayload{Producto: producto.ID, CantidadVendida: 3})
	require.Equal(s.T(), http.StatusCreated, code)
	assert.JSONEq(s.T(), `{"producto": `+formatID(producto.ID)+`, "cantidad_vendida": 3}`, string(raw))

	assert.Equal(s.T(), int32(7), s.fetchProduct(producto.ID).CantidadStock)
}

func (s *VentasE2ESuite) TestSaleCreationRejectsNonPositiveQuantity() {
	producto := s.createProduct(createProductPayload{Nombre: "Laptop", Precio: 999.99, CantidadStock: 10})

	code, raw := s.do(http.MethodPost, ventasURL, createSalePayload{Producto: producto.ID, CantidadVendida: 0})
	require.Equal(s.T(), http.StatusBadRequest, code)
	var resp errorResponse
	require.NoError(s.T(), json.Unmarshal(raw, &resp))
	assert.Equal(s.T(), "La cantidad vendida debe ser mayor que cero.", resp.Error)

	// stock is untouched
	assert.Equal(s.T(), int32(10), s.fetchProduct(producto.ID).CantidadStock)
}

func (s *VentasE2ESuite) TestSaleCreationRejectsInsufficientStock() {
	producto := s.createProduct(createProductPayload{Nombre: "Laptop", Precio: 999.99, CantidadStock: 7})

	code, raw := s.do(http.MethodPost, ventasURL, createSalePayload{Producto: producto.ID, CantidadVendida: 8})
	require.Equal(s.T(), http.StatusBadRequest, code)
	var resp errorResponse
	require.NoError(s.T(), json.Unmarshal(raw, &resp))
	assert.Equal(s.T(), "Stock insuficiente. Solo hay 7 unidades disponibles.", resp.Error)

	assert.Equal(s.T(), int32(7), s.fetchProduct(producto.ID).CantidadStock)
}

func (s *VentasE2ESuite) TestSaleCreationRejectsUnknownProduct() {
	code, raw := s.do(http.MethodPost, ventasURL, createSalePayload{Producto: 9999, CantidadVendida: 1})
	require.Equal(s.T(), http.StatusBadRequest, code)
	var resp errorResponse
	require.NoError(s.T(), json.Unmarshal(raw, &resp))
	assert.Equal(s.T(), "Producto no encontrado.", resp.Error)
}

func (s *VentasE2ESuite) TestSaleDeletionRestoresStock() {
	producto := s.createProduct(createProductPayload{Nombre: "Laptop", Precio: 999.99, CantidadStock: 10})

	code, _ := s.do(http.MethodPost, ventasURL, createSalePayload{Producto: producto.ID, CantidadVendida: 4})
	require.Equal(s.T(), http.StatusCreated, code)
	assert.Equal(s.T(), int32(6), s.fetchProduct(producto.ID).CantidadStock)

	// find the recorded sale
	code, raw := s.do(http.MethodGet, ventasURL, nil)
	require.Equal(s.T(), http.StatusOK, code)
	var sales []service.SaleDetailDto
	require.NoError(s.T(), json.Unmarshal(raw, &sales))
	require.Len(s.T(), sales, 1)

	// delete it
	code, _ = s.do(http.MethodDelete, ventasURL+formatID(sales[0].ID)+"/", nil)
	require.Equal(s.T(), http.StatusNoContent, code)
	assert.Equal(s.T(), int32(10), s.fetchProduct(producto.ID).CantidadStock)
}

func (s *VentasE2ESuite) TestProductDeleteBlockedBySales() {
	producto := s.createProduct(createProductPayload{Nombre: "Laptop", Precio: 999.99, CantidadStock: 10})
	code, _ := s.do(http.MethodPost, ventasURL, createSalePayload{Producto: producto.ID, CantidadVendida: 1})
	require.Equal(s.T(), http.StatusCreated, code)

	code, raw := s.do(http.MethodDelete, productosURL+formatID(producto.ID)+"/", nil)
	require.Equal(s.T(), http.StatusConflict, code)
	var resp errorResponse
	require.NoError(s.T(), json.Unmarshal(raw, &resp))
	assert.Equal(s.T(), "No se puede eliminar este producto porque tiene ventas asociadas.", resp.Error)

	// product is still there
	assert.Equal(s.T(), producto.ID, s.fetchProduct(producto.ID).ID)
}

func (s *VentasE2ESuite) TestSaleRetrieveEmbedsProduct() {
	producto := s.createProduct(createProductPayload{Nombre: "Laptop", Precio: 999.99, CantidadStock: 10})
	code, _ := s.do(http.MethodPost, ventasURL, createSalePayload{Producto: producto.ID, CantidadVendida: 2})
	require.Equal(s.T(), http.StatusCreated, code)

	code, raw := s.do(http.MethodGet, ventasURL, nil)
	require.Equal(s.T(), http.StatusOK, code)
	var sales []service.SaleDetailDto
	require.NoError(s.T(), json.Unmarshal(raw, &sales))
	require.Len(s.T(), sales, 1)

	code, raw = s.do(http.MethodGet, ventasURL+formatID(sales[0].ID)+"/", nil)
	require.Equal(s.T(), http.StatusOK, code)
	var detail service.SaleDetailDto
	require.NoError(s.T(), json.Unmarshal(raw, &detail))
	assert.Equal(s.T(), "Laptop", detail.Producto.Nombre)
	assert.Equal(s.T(), int32(8), detail.Producto.CantidadStock)
	assert.Equal(s.T(), int32(2), detail.CantidadVendida)
}

func (s *VentasE2ESuite) TestLatestSalesCappedAtTen() {
	producto := s.createProduct(createProductPayload{Nombre: "Laptop", Precio: 999.99, CantidadStock: 100})
	for range 12 {
		code, _ := s.do(http.MethodPost, ventasURL, createSalePayload{Producto: producto.ID, CantidadVendida: 1})
		require.Equal(s.T(), http.StatusCreated, code)
	}

	code, raw := s.do(http.MethodGet, ventasURL+"ultimas_ventas/", nil)
	require.Equal(s.T(), http.StatusOK, code)
	var sales []service.SaleDetailDto
	require.NoError(s.T(), json.Unmarshal(raw, &sales))
	assert.Len(s.T(), sales, 10)
}

func (s *VentasE2ESuite) TestDailyReport() {
	laptop := s.createProduct(createProductPayload{Nombre: "Laptop", Precio: 10, CantidadStock: 100})
	mouse := s.createProduct(createProductPayload{Nombre: "Mouse", Precio: 5, CantidadStock: 100})

	code, _ := s.do(http.MethodPost, ventasURL, createSalePayload{Producto: laptop.ID, CantidadVendida: 2})
	require.Equal(s.T(), http.StatusCreated, code)
	code, _ = s.do(http.MethodPost, ventasURL, createSalePayload{Producto: mouse.ID, CantidadVendida: 3})
	require.Equal(s.T(), http.StatusCreated, code)

	code, raw := s.do(http.MethodGet, ventasURL+"reporte_diario/", nil)
	require.Equal(s.T(), http.StatusOK, code)
	var report service.DailyReportDto
	require.NoError(s.T(), json.Unmarshal(raw, &report))
	assert.Equal(s.T(), int64(2), report.TotalVentas)
	assert.InDelta(s.T(), 35, report.IngresosTotales, 0.001)
	require.Len(s.T(), report.ProductosMasVendidos, 2)
	assert.Equal(s.T(), "Mouse", report.ProductosMasVendidos[0].ProductoNombre)
	assert.Equal(s.T(), int64(3), report.ProductosMasVendidos[0].TotalVendido)
}
