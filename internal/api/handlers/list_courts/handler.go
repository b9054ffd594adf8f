package list_courts

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/courts"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/courts/models"
)

const (
	msgInvalidStatus = "некорректный статус, допустимы: active, inactive"
)

type Handler struct {
	service CourtService
	logger  Logger
}

func NewHandler(service CourtService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts
// Query params: sport (optional), status (optional: active | inactive)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListCourtsRequest{}
	if sport := query.Get("sport"); sport != "" {
		req.Sport = &sport
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, courts.ErrInvalidInput):
			h.logger.Warn("GET /courts - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /courts - Failed to list courts: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courts - Retrieved %d courts", len(result.Courts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
