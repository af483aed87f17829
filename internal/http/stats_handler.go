package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jhulio435m/iot-management-system/internal/service"
)

// StatsHandler serves the global totals and dashboard metrics.
type StatsHandler struct {
	stats  *service.StatsService
	logger *zap.Logger
}

func NewStatsHandler(stats *service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, logger: logger}
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/stats":
		h.Overview(w, r)
	case "/api/v1/dashboard/metrics":
		h.Dashboard(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	out, err := h.stats.Overview(r.Context())
	if err != nil {
		h.logger.Error("stats overview failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	out, err := h.stats.DashboardMetrics(r.Context())
	if err != nil {
		h.logger.Error("dashboard metrics failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
