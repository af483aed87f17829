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

// LocationHandler serves /api/v1/locations and the per-location stats
// view.
type LocationHandler struct {
	repo   repository.LocationsRepository
	stats  *service.StatsService
	logger *zap.Logger
}

func NewLocationHandler(repo repository.LocationsRepository, stats *service.StatsService, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{repo: repo, stats: stats, logger: logger}
}

func (h *LocationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/locations" && r.Method == http.MethodGet:
		h.List(w, r)
	case r.URL.Path == "/api/v1/locations" && r.Method == http.MethodPost:
		h.Create(w, r)
	case r.URL.Path == "/api/v1/locations/stats" && r.Method == http.MethodGet:
		h.Stats(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.repo.ListLocations(r.Context())
	if err != nil {
		h.logger.Error("list locations failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsJSON(locations))
}

type locationPayload struct {
	Name      string   `json:"name"`
	Address   *string  `json:"address"`
	City      *string  `json:"city"`
	Country   *string  `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (p *locationPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload locationPayload
	if err := readBodyJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	l := &domain.Location{
		Name:      strings.TrimSpace(payload.Name),
		Address:   toNullString(payload.Address),
		City:      toNullString(payload.City),
		Country:   toNullString(payload.Country),
		Latitude:  toNullFloat(payload.Latitude),
		Longitude: toNullFloat(payload.Longitude),
	}
	created, err := h.repo.CreateLocation(r.Context(), l)
	if err != nil {
		h.logger.Error("create location failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, created.ToJSON())
}

func (h *LocationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	rows, err := h.stats.LocationStats(r.Context())
	if err != nil {
		h.logger.Error("location stats failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
