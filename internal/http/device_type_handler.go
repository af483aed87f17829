package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jhulio435m/iot-management-system/internal/domain"
	"github.com/jhulio435m/iot-management-system/internal/repository"
)

// DeviceTypeHandler serves /api/v1/device-types.
type DeviceTypeHandler struct {
	repo   repository.DeviceTypesRepository
	logger *zap.Logger
}

func NewDeviceTypeHandler(repo repository.DeviceTypesRepository, logger *zap.Logger) *DeviceTypeHandler {
	return &DeviceTypeHandler{repo: repo, logger: logger}
}

func (h *DeviceTypeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/device-types" && r.Method == http.MethodGet:
		h.List(w, r)
	case r.URL.Path == "/api/v1/device-types" && r.Method == http.MethodPost:
		h.Create(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *DeviceTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.repo.ListDeviceTypes(r.Context())
	if err != nil {
		h.logger.Error("list device types failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsJSON(types))
}

type deviceTypePayload struct {
	Name           string          `json:"name"`
	Description    *string         `json:"description"`
	Manufacturer   *string         `json:"manufacturer"`
	Specifications json.RawMessage `json:"specifications"`
}

func (p *deviceTypePayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func (h *DeviceTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload deviceTypePayload
	if err := readBodyJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	t := &domain.DeviceType{
		Name:         strings.TrimSpace(payload.Name),
		Description:  toNullString(payload.Description),
		Manufacturer: toNullString(payload.Manufacturer),
	}
	if len(payload.Specifications) > 0 && string(payload.Specifications) != "null" {
		t.Specifications.String = string(payload.Specifications)
		t.Specifications.Valid = true
	}

	created, err := h.repo.CreateDeviceType(r.Context(), t)
	if err != nil {
		h.logger.Error("create device type failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, created.ToJSON())
}
