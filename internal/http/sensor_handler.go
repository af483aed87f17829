package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jhulio435m/iot-management-system/internal/domain"
	"github.com/jhulio435m/iot-management-system/internal/repository"
	"github.com/jhulio435m/iot-management-system/internal/service"
)

// SensorHandler serves /api/v1/sensors and the analytics view.
type SensorHandler struct {
	repo   repository.SensorsRepository
	stats  *service.StatsService
	logger *zap.Logger
}

func NewSensorHandler(repo repository.SensorsRepository, stats *service.StatsService, logger *zap.Logger) *SensorHandler {
	return &SensorHandler{repo: repo, stats: stats, logger: logger}
}

func (h *SensorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/sensors" && r.Method == http.MethodGet:
		h.List(w, r)
	case r.URL.Path == "/api/v1/sensors" && r.Method == http.MethodPost:
		h.Create(w, r)
	case r.URL.Path == "/api/v1/sensors/analytics" && r.Method == http.MethodGet:
		h.Analytics(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *SensorHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := repository.SensorFilters{
		DeviceID: r.URL.Query().Get("device_id"),
	}
	sensors, err := h.repo.ListSensors(r.Context(), filters)
	if err != nil {
		h.logger.Error("list sensors failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsJSON(sensors))
}

type sensorPayload struct {
	DeviceID        string   `json:"device_id"`
	Name            string   `json:"name"`
	SensorType      string   `json:"sensor_type"`
	Unit            string   `json:"unit"`
	MinValue        *float64 `json:"min_value"`
	MaxValue        *float64 `json:"max_value"`
	CalibrationDate *string  `json:"calibration_date"`
	IsActive        *bool    `json:"is_active"`
}

func (p *sensorPayload) Validate() error {
	if p.DeviceID == "" {
		return fmt.Errorf("device_id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.SensorType == "" {
		return fmt.Errorf("sensor_type is required")
	}
	return nil
}

func (h *SensorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload sensorPayload
	if err := readBodyJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s := &domain.Sensor{
		DeviceID:   payload.DeviceID,
		Name:       strings.TrimSpace(payload.Name),
		SensorType: payload.SensorType,
		Unit:       payload.Unit,
		MinValue:   toNullFloat(payload.MinValue),
		MaxValue:   toNullFloat(payload.MaxValue),
		IsActive:   true,
	}
	if payload.IsActive != nil {
		s.IsActive = *payload.IsActive
	}
	var err error
	if s.CalibrationDate, err = toNullTime(payload.CalibrationDate); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid calibration_date: %w", err))
		return
	}

	created, err := h.repo.CreateSensor(r.Context(), s)
	if err != nil {
		h.logger.Error("create sensor failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, created.ToJSON())
}

func (h *SensorHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	rows, err := h.stats.SensorAnalytics(r.Context())
	if err != nil {
		h.logger.Error("sensor analytics failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
