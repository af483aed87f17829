package httpapi

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/jhulio435m/iot-management-system/internal/domain"
	"github.com/jhulio435m/iot-management-system/internal/repository"
	"github.com/jhulio435m/iot-management-system/internal/service"
)

// MaintenanceHandler serves /api/v1/maintenance and the technician
// performance view.
type MaintenanceHandler struct {
	repo   repository.MaintenanceRepository
	stats  *service.StatsService
	logger *zap.Logger
}

func NewMaintenanceHandler(repo repository.MaintenanceRepository, stats *service.StatsService, logger *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{repo: repo, stats: stats, logger: logger}
}

func (h *MaintenanceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/maintenance" && r.Method == http.MethodGet:
		h.List(w, r)
	case r.URL.Path == "/api/v1/maintenance" && r.Method == http.MethodPost:
		h.Create(w, r)
	case r.URL.Path == "/api/v1/technicians/performance" && r.Method == http.MethodGet:
		h.TechnicianPerformance(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.repo.ListLogs(r.Context())
	if err != nil {
		h.logger.Error("list maintenance logs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsJSON(logs))
}

type maintenancePayload struct {
	DeviceID        string   `json:"device_id"`
	TechnicianID    string   `json:"technician_id"`
	MaintenanceType string   `json:"maintenance_type"`
	Description     *string  `json:"description"`
	Status          string   `json:"status"`
	ScheduledDate   *string  `json:"scheduled_date"`
	CompletedDate   *string  `json:"completed_date"`
	Cost            *float64 `json:"cost"`
}

func (p *maintenancePayload) Validate() error {
	if p.DeviceID == "" {
		return fmt.Errorf("device_id is required")
	}
	if p.TechnicianID == "" {
		return fmt.Errorf("technician_id is required")
	}
	switch p.MaintenanceType {
	case domain.MaintenanceTypePreventive, domain.MaintenanceTypeCorrective,
		domain.MaintenanceTypeEmergency, domain.MaintenanceTypeUpgrade:
	case "":
		return fmt.Errorf("maintenance_type is required")
	default:
		return fmt.Errorf("invalid maintenance_type: %s", p.MaintenanceType)
	}
	if p.Status != "" {
		switch p.Status {
		case domain.MaintenanceStatusScheduled, domain.MaintenanceStatusInProgress,
			domain.MaintenanceStatusCompleted, domain.MaintenanceStatusCancelled:
		default:
			return fmt.Errorf("invalid status: %s", p.Status)
		}
	}
	return nil
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload maintenancePayload
	if err := readBodyJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	l := &domain.MaintenanceLog{
		DeviceID:        payload.DeviceID,
		TechnicianID:    payload.TechnicianID,
		MaintenanceType: payload.MaintenanceType,
		Description:     toNullString(payload.Description),
		Status:          payload.Status,
		Cost:            toNullFloat(payload.Cost),
	}
	if l.Status == "" {
		l.Status = domain.MaintenanceStatusScheduled
	}
	var err error
	if l.ScheduledDate, err = toNullTime(payload.ScheduledDate); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid scheduled_date: %w", err))
		return
	}
	if l.CompletedDate, err = toNullTime(payload.CompletedDate); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid completed_date: %w", err))
		return
	}

	created, err := h.repo.CreateLog(r.Context(), l)
	if err != nil {
		h.logger.Error("create maintenance log failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, created.ToJSON())
}

func (h *MaintenanceHandler) TechnicianPerformance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.stats.TechnicianPerformance(r.Context())
	if err != nil {
		h.logger.Error("technician performance failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
