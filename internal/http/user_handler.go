package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jhulio435m/iot-management-system/internal/domain"
	"github.com/jhulio435m/iot-management-system/internal/repository"
)

// UserHandler serves /api/v1/users.
type UserHandler struct {
	repo   repository.UsersRepository
	logger *zap.Logger
}

func NewUserHandler(repo repository.UsersRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{repo: repo, logger: logger}
}

func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/users" && r.Method == http.MethodGet:
		h.List(w, r)
	case r.URL.Path == "/api/v1/users" && r.Method == http.MethodPost:
		h.Create(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsJSON(users))
}

type userPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (p *userPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	email := strings.TrimSpace(p.Email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email: %s", p.Email)
	}
	if p.Role != "" {
		switch p.Role {
		case domain.RoleAdmin, domain.RoleEngineer, domain.RoleTechnician, domain.RoleOperator:
		default:
			return fmt.Errorf("invalid role: %s", p.Role)
		}
	}
	return nil
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := readBodyJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	u := &domain.User{
		Name:  strings.TrimSpace(payload.Name),
		Email: strings.TrimSpace(payload.Email),
		Role:  payload.Role,
	}
	if u.Role == "" {
		u.Role = domain.RoleOperator
	}

	created, err := h.repo.CreateUser(r.Context(), u)
	if err != nil {
		h.logger.Error("create user failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, created.ToJSON())
}
