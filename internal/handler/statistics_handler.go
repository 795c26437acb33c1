package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// StatisticsHandler handles account statistics requests.
type StatisticsHandler struct {
	service service.StatisticsService
	logger  zerolog.Logger
}

// NewStatisticsHandler creates a new statistics handler.
func NewStatisticsHandler(service service.StatisticsService, logger zerolog.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		service: service,
		logger:  logger.With().Str("handler", "statistics").Logger(),
	}
}

// Main handles GET /api/statistics/main requests, returning the caller's
// account summary.
func (h *StatisticsHandler) Main(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorised", h.logger)
		return
	}

	stats, err := h.service.ForUser(r.Context(), principal.UserID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
