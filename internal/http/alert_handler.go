package httpapi

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jhulio435m/iot-management-system/internal/domain"
	"github.com/jhulio435m/iot-management-system/internal/repository"
)

// AlertHandler serves /api/v1/alerts, the detailed view and the status
// update route. Alerts are the only mutable entity.
type AlertHandler struct {
	repo   repository.AlertsRepository
	logger *zap.Logger
}

func NewAlertHandler(repo repository.AlertsRepository, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{repo: repo, logger: logger}
}

func (h *AlertHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/alerts" && r.Method == http.MethodGet:
		h.List(w, r)
	case r.URL.Path == "/api/v1/alerts" && r.Method == http.MethodPost:
		h.Create(w, r)
	case r.URL.Path == "/api/v1/alerts/detailed" && r.Method == http.MethodGet:
		h.ListDetailed(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/alerts/") && r.Method == http.MethodPut:
		id := strings.TrimPrefix(r.URL.Path, "/api/v1/alerts/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.Update(w, r, id)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.repo.ListAlerts(r.Context())
	if err != nil {
		h.logger.Error("list alerts failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsJSON(alerts))
}

// ListDetailed returns alerts of one status with full joined context,
// defaulting to the active ones.
func (h *AlertHandler) ListDetailed(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = domain.AlertStatusActive
	}
	alerts, err := h.repo.ListDetailedAlerts(r.Context(), status)
	if err != nil {
		h.logger.Error("list detailed alerts failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]map[string]any, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a.ToDetailedJSON())
	}
	writeJSON(w, http.StatusOK, out)
}

type alertPayload struct {
	DeviceID  string `json:"device_id"`
	AlertType string `json:"alert_type"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Status    string `json:"status"`
}

func (p *alertPayload) Validate() error {
	if p.DeviceID == "" {
		return fmt.Errorf("device_id is required")
	}
	if p.AlertType == "" {
		return fmt.Errorf("alert_type is required")
	}
	if strings.TrimSpace(p.Message) == "" {
		return fmt.Errorf("message is required")
	}
	if p.Severity != "" {
		switch p.Severity {
		case domain.AlertSeverityLow, domain.AlertSeverityMedium,
			domain.AlertSeverityHigh, domain.AlertSeverityCritical:
		default:
			return fmt.Errorf("invalid severity: %s", p.Severity)
		}
	}
	return nil
}

func (h *AlertHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload alertPayload
	if err := readBodyJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	a := &domain.Alert{
		DeviceID:  payload.DeviceID,
		AlertType: payload.AlertType,
		Severity:  payload.Severity,
		Message:   strings.TrimSpace(payload.Message),
		Status:    payload.Status,
	}
	if a.Severity == "" {
		a.Severity = domain.AlertSeverityMedium
	}
	if a.Status == "" {
		a.Status = domain.AlertStatusActive
	}

	created, err := h.repo.CreateAlert(r.Context(), a)
	if err != nil {
		h.logger.Error("create alert failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, created.ToJSON())
}

type alertUpdatePayload struct {
	Status     *string `json:"status"`
	ResolvedBy *string `json:"resolved_by"`
}

func (p *alertUpdatePayload) Validate() error {
	if p.Status == nil && p.ResolvedBy == nil {
		return fmt.Errorf("nothing to update")
	}
	if p.Status != nil {
		switch *p.Status {
		case domain.AlertStatusActive, domain.AlertStatusAcknowledged,
			domain.AlertStatusResolved, domain.AlertStatusDismissed:
		default:
			return fmt.Errorf("invalid status: %s", *p.Status)
		}
	}
	return nil
}

// Update writes the whitelisted alert fields and returns the updated
// row. Any transition between statuses is accepted.
func (h *AlertHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var payload alertUpdatePayload
	if err := readBodyJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	upd := repository.AlertUpdate{
		Status:     payload.Status,
		ResolvedBy: payload.ResolvedBy,
	}
	updated, err := h.repo.UpdateAlert(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, fmt.Errorf("alert not found"))
			return
		}
		h.logger.Error("update alert failed", zap.String("alert_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, updated.ToJSON())
}
