package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jhulio435m/iot-management-system/internal/repository"
	"github.com/jhulio435m/iot-management-system/internal/service"
)

// FirmwareHandler serves /api/v1/firmware and the per-version device
// roster.
type FirmwareHandler struct {
	repo   repository.FirmwareRepository
	stats  *service.StatsService
	logger *zap.Logger
}

func NewFirmwareHandler(repo repository.FirmwareRepository, stats *service.StatsService, logger *zap.Logger) *FirmwareHandler {
	return &FirmwareHandler{repo: repo, stats: stats, logger: logger}
}

func (h *FirmwareHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/firmware":
		h.List(w, r)
	case "/api/v1/firmware/devices":
		h.Devices(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *FirmwareHandler) List(w http.ResponseWriter, r *http.Request) {
	versions, err := h.repo.ListFirmwareVersions(r.Context())
	if err != nil {
		h.logger.Error("list firmware versions failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsJSON(versions))
}

func (h *FirmwareHandler) Devices(w http.ResponseWriter, r *http.Request) {
	rows, err := h.stats.FirmwareDevices(r.Context())
	if err != nil {
		h.logger.Error("firmware devices failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
