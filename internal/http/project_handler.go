package httpapi

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jhulio435m/iot-management-system/internal/domain"
	"github.com/jhulio435m/iot-management-system/internal/repository"
	"github.com/jhulio435m/iot-management-system/internal/service"
)

// ProjectHandler serves /api/v1/projects and the summary view.
type ProjectHandler struct {
	repo   repository.ProjectsRepository
	stats  *service.StatsService
	logger *zap.Logger
}

func NewProjectHandler(repo repository.ProjectsRepository, stats *service.StatsService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{repo: repo, stats: stats, logger: logger}
}

func (h *ProjectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/projects" && r.Method == http.MethodGet:
		h.List(w, r)
	case r.URL.Path == "/api/v1/projects" && r.Method == http.MethodPost:
		h.Create(w, r)
	case r.URL.Path == "/api/v1/projects/summary" && r.Method == http.MethodGet:
		h.Summary(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.repo.ListProjects(r.Context())
	if err != nil {
		h.logger.Error("list projects failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsJSON(projects))
}

// projectPayload is the insert body for POST /projects.
type projectPayload struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Status      string   `json:"status"`
	Budget      *float64 `json:"budget"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
}

func (p *projectPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.Status != "" {
		switch p.Status {
		case domain.ProjectStatusActive, domain.ProjectStatusInactive,
			domain.ProjectStatusCompleted, domain.ProjectStatusSuspended:
		default:
			return fmt.Errorf("invalid status: %s", p.Status)
		}
	}
	return nil
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload projectPayload
	if err := readBodyJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p := &domain.Project{
		Name:        strings.TrimSpace(payload.Name),
		Status:      payload.Status,
		Description: toNullString(payload.Description),
		Budget:      toNullFloat(payload.Budget),
	}
	if p.Status == "" {
		p.Status = domain.ProjectStatusActive
	}
	var err error
	if p.StartDate, err = toNullTime(payload.StartDate); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid start_date: %w", err))
		return
	}
	if p.EndDate, err = toNullTime(payload.EndDate); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid end_date: %w", err))
		return
	}

	created, err := h.repo.CreateProject(r.Context(), p)
	if err != nil {
		h.logger.Error("create project failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, created.ToJSON())
}

func (h *ProjectHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.stats.ProjectSummaries(r.Context())
	if err != nil {
		h.logger.Error("project summaries failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func toNullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func toNullTime(s *string) (sql.NullTime, error) {
	if s == nil || *s == "" {
		return sql.NullTime{}, nil
	}
	t, err := parseTimestamp(*s)
	if err != nil {
		return sql.NullTime{}, err
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}
