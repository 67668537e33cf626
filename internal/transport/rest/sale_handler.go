package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	verrors "github.com/Juan-Ayme/ventas/internal/errors"
	"github.com/Juan-Ayme/ventas/internal/service"
	"github.com/Juan-Ayme/ventas/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type SaleHandler struct {
	service  service.SaleService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewSaleHandler creates a new instance of SaleHandler with the provided service.
func NewSaleHandler(service service.SaleService, logger *slog.Logger) *SaleHandler {
	return &SaleHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for sale operations.
func (h *SaleHandler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/ventas", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/reporte_diario", func(r chi.Router) {
			r.Get("/", h.DailyReport)
		})
		r.Route("/ultimas_ventas", func(r chi.Router) {
			r.Get("/", h.FindLatest)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Patch("/", h.Patch)
			r.Delete("/", h.DeleteByID)
		})
	})
}

// FindByID retrieves a sale by its ID in the detailed shape.
func (h *SaleHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find sale by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, verrors.ErrSaleNotFound) {
			mLogger.WarnContext(r.Context(), "Sale not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Venta con ID %d no encontrada", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving sale", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve sale with ID %d", id))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved sale", "ID", found.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindAll retrieves all sales in the detailed shape.
func (h *SaleHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find all sales")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving sale list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch sales")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved sale list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindLatest retrieves the 10 most recent sales in the detailed shape.
func (h *SaleHandler) FindLatest(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find latest sales")
	list, err := h.service.FindLatest(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving latest sales", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch latest sales")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved latest sales", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// DailyReport aggregates the current day's sales.
func (h *SaleHandler) DailyReport(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request for daily sales report")
	report, err := h.service.DailyReport(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error building daily report", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to build daily report")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully built daily report", "total_ventas", report.TotalVentas)
	web.RespondJSON(w, mLogger, http.StatusOK, report)
}

// Create handles the creation of a new sale with stock validation.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var saleCreateDto service.SaleCreateDto
	if err := json.NewDecoder(r.Body).Decode(&saleCreateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create sale", "sale", saleCreateDto)
	if !h.validateStruct(w, r, mLogger, saleCreateDto) {
		return
	}

	newSale, err := h.service.Create(r.Context(), saleCreateDto)
	if err != nil {
		var validationErr *verrors.ValidationError
		if errors.As(err, &validationErr) {
			mLogger.WarnContext(r.Context(), "Sale rejected", "reason", validationErr.Message)
			web.RespondError(w, mLogger, http.StatusBadRequest, validationErr.Message)
			return
		}
		if errors.Is(err, verrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Sale references unknown product", "producto", saleCreateDto.Producto)
			web.RespondError(w, mLogger, http.StatusBadRequest, verrors.MsgSaleProductNotFound)
			return
		}
		mLogger.ErrorContext(r.Context(), "Error creating sale", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create sale")
		return
	}
	mLogger.InfoContext(r.Context(), "Sale created successfully", "producto", newSale.Producto, "cantidad", newSale.CantidadVendida)
	web.RespondJSON(w, mLogger, http.StatusCreated, newSale)
}

// Update handles a full replacement of a sale's fields. Stock is not reconciled.
func (h *SaleHandler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var saleUpdateDto service.SaleUpdateDto
	if err := json.NewDecoder(r.Body).Decode(&saleUpdateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update sale", "ID", id)
	if !h.validateStruct(w, r, mLogger, saleUpdateDto) {
		return
	}

	updated, err := h.service.Update(r.Context(), id, saleUpdateDto)
	if err != nil {
		h.respondSaleWriteError(w, r, mLogger, id, err, "update")
		return
	}
	mLogger.InfoContext(r.Context(), "Sale updated successfully", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// Patch handles a partial update of a sale's fields. Stock is not reconciled.
func (h *SaleHandler) Patch(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var salePatchDto service.SalePatchDto
	if err := json.NewDecoder(r.Body).Decode(&salePatchDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to patch sale", "ID", id)
	if !h.validateStruct(w, r, mLogger, salePatchDto) {
		return
	}

	updated, err := h.service.Patch(r.Context(), id, salePatchDto)
	if err != nil {
		h.respondSaleWriteError(w, r, mLogger, id, err, "patch")
		return
	}
	mLogger.InfoContext(r.Context(), "Sale patched successfully", "ID", updated.ID)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID restores the product stock and removes the sale.
func (h *SaleHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete sale", "ID", id)
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, verrors.ErrSaleNotFound) {
			mLogger.WarnContext(r.Context(), "Sale not found for delete", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Venta con ID %d no encontrada", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting sale", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete sale with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Sale deleted successfully", "ID", id)
	web.RespondJSON(w, mLogger, http.StatusNoContent, nil)
}

// respondSaleWriteError maps sale update/patch failures onto HTTP statuses.
func (h *SaleHandler) respondSaleWriteError(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, id int64, err error, op string) {
	var validationErr *verrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		mLogger.WarnContext(r.Context(), "Sale "+op+" rejected", "ID", id, "reason", validationErr.Message)
		web.RespondError(w, mLogger, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, verrors.ErrSaleNotFound):
		mLogger.WarnContext(r.Context(), "Sale not found for "+op, "ID", id)
		web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Venta con ID %d no encontrada", id))
	case errors.Is(err, verrors.ErrProductNotFound):
		mLogger.WarnContext(r.Context(), "Sale references unknown product", "ID", id)
		web.RespondError(w, mLogger, http.StatusBadRequest, verrors.MsgSaleProductNotFound)
	default:
		mLogger.ErrorContext(r.Context(), "Error writing sale", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update sale with ID %d", id))
	}
}

// validateStruct validates a DTO and responds with field-level errors on failure.
// Returns false if the request has been answered.
func (h *SaleHandler) validateStruct(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, dto any) bool {
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *SaleHandler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
