package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jhulio435m/iot-management-system/internal/domain"
	"github.com/jhulio435m/iot-management-system/internal/repository"
)

// DeviceHandler serves /api/v1/devices and the xlsx inventory export.
type DeviceHandler struct {
	repo   repository.DevicesRepository
	logger *zap.Logger
}

func NewDeviceHandler(repo repository.DevicesRepository, logger *zap.Logger) *DeviceHandler {
	return &DeviceHandler{repo: repo, logger: logger}
}

func (h *DeviceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/devices" && r.Method == http.MethodGet:
		h.List(w, r)
	case r.URL.Path == "/api/v1/devices" && r.Method == http.MethodPost:
		h.Create(w, r)
	case r.URL.Path == "/api/v1/devices/export" && r.Method == http.MethodGet:
		h.Export(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	devices, err := h.repo.ListDevices(r.Context())
	if err != nil {
		h.logger.Error("list devices failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsJSON(devices))
}

type devicePayload struct {
	ProjectID       string  `json:"project_id"`
	DeviceTypeID    string  `json:"device_type_id"`
	LocationID      *string `json:"location_id"`
	Name            string  `json:"name"`
	MACAddress      string  `json:"mac_address"`
	IPAddress       *string `json:"ip_address"`
	Status          string  `json:"status"`
	FirmwareVersion *string `json:"firmware_version"`
	LastSeen        *string `json:"last_seen"`
}

func (p *devicePayload) Validate() error {
	if p.ProjectID == "" {
		return fmt.Errorf("project_id is required")
	}
	if p.DeviceTypeID == "" {
		return fmt.Errorf("device_type_id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.MACAddress) == "" {
		return fmt.Errorf("mac_address is required")
	}
	if p.Status != "" {
		switch p.Status {
		case domain.DeviceStatusOnline, domain.DeviceStatusOffline,
			domain.DeviceStatusMaintenance, domain.DeviceStatusError:
		default:
			return fmt.Errorf("invalid status: %s", p.Status)
		}
	}
	return nil
}

func (h *DeviceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload devicePayload
	if err := readBodyJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	d := &domain.Device{
		ProjectID:       payload.ProjectID,
		DeviceTypeID:    payload.DeviceTypeID,
		LocationID:      toNullString(payload.LocationID),
		Name:            strings.TrimSpace(payload.Name),
		MACAddress:      strings.TrimSpace(payload.MACAddress),
		IPAddress:       toNullString(payload.IPAddress),
		Status:          payload.Status,
		FirmwareVersion: toNullString(payload.FirmwareVersion),
	}
	if d.Status == "" {
		d.Status = domain.DeviceStatusOffline
	}
	var err error
	if d.LastSeen, err = toNullTime(payload.LastSeen); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid last_seen: %w", err))
		return
	}

	created, err := h.repo.CreateDevice(r.Context(), d)
	if err != nil {
		h.logger.Error("create device failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, created.ToJSON())
}

// Export streams the device inventory as an xlsx workbook.
func (h *DeviceHandler) Export(w http.ResponseWriter, r *http.Request) {
	devices, err := h.repo.ListDevices(r.Context())
	if err != nil {
		h.logger.Error("device export fetch failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	data, err := GenerateDeviceExport(devices)
	if err != nil {
		h.logger.Error("device export generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	name := fmt.Sprintf("devices-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
