package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jhulio435m/iot-management-system/internal/domain"
	"github.com/jhulio435m/iot-management-system/internal/repository"
)

// ReadingHandler serves /api/v1/readings.
type ReadingHandler struct {
	repo   repository.ReadingsRepository
	logger *zap.Logger
}

func NewReadingHandler(repo repository.ReadingsRepository, logger *zap.Logger) *ReadingHandler {
	return &ReadingHandler{repo: repo, logger: logger}
}

func (h *ReadingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/readings" && r.Method == http.MethodGet:
		h.List(w, r)
	case r.URL.Path == "/api/v1/readings" && r.Method == http.MethodPost:
		h.Create(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ReadingHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := repository.ReadingFilters{
		SensorID: r.URL.Query().Get("sensor_id"),
		Limit:    parseInt(r.URL.Query().Get("limit"), repository.DefaultReadingLimit),
	}
	readings, err := h.repo.ListReadings(r.Context(), filters)
	if err != nil {
		h.logger.Error("list readings failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsJSON(readings))
}

type readingPayload struct {
	SensorID     string   `json:"sensor_id"`
	Value        *float64 `json:"value"`
	QualityScore *float64 `json:"quality_score"`
	Timestamp    *string  `json:"timestamp"`
}

func (p *readingPayload) Validate() error {
	if p.SensorID == "" {
		return fmt.Errorf("sensor_id is required")
	}
	if p.Value == nil {
		return fmt.Errorf("value is required")
	}
	return nil
}

func (h *ReadingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload readingPayload
	if err := readBodyJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rd := &domain.Reading{
		SensorID:     payload.SensorID,
		Value:        *payload.Value,
		QualityScore: 1.0,
		Timestamp:    time.Now(),
	}
	if payload.QualityScore != nil {
		rd.QualityScore = *payload.QualityScore
	}
	if payload.Timestamp != nil && *payload.Timestamp != "" {
		t, err := parseTimestamp(*payload.Timestamp)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid timestamp: %w", err))
			return
		}
		rd.Timestamp = t
	}

	created, err := h.repo.CreateReading(r.Context(), rd)
	if err != nil {
		h.logger.Error("create reading failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, created.ToJSON())
}
