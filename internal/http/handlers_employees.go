package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/zentra-pos/zentra/internal/errors"

	"github.com/zentra-pos/zentra/internal/domain/model"
	"github.com/zentra-pos/zentra/internal/service"
)

// EmployeeServiceInterface defines the employee operations used by EmployeeHandlers.
type EmployeeServiceInterface interface {
	Add(ctx context.Context, organizationID string, input service.AddEmployeeInput) (*model.UserProfile, error)
	List(ctx context.Context, organizationID, ownerID string) ([]*model.UserProfile, error)
	GetByID(ctx context.Context, organizationID, id string) (*model.UserProfile, error)
	Update(ctx context.Context, organizationID, id string, req model.UpdateUserRequest) (*model.UserProfile, error)
	Remove(ctx context.Context, organizationID, id string) (bool, error)
}

// EmployeeHandlers serves the /api/employees endpoints. Every operation is
// scoped to the caller's organization.
type EmployeeHandlers struct {
	employees EmployeeServiceInterface
	logger    *slog.Logger
}

// NewEmployeeHandlers constructs EmployeeHandlers.
func NewEmployeeHandlers(employees EmployeeServiceInterface, logger *slog.Logger) *EmployeeHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeHandlers{employees: employees, logger: logger}
}

// requireOrganization pulls the caller's organization from the session.
// Admin-gated routes always carry a session; a missing organization means the
// profile store was unavailable at login.
func requireOrganization(w http.ResponseWriter, r *http.Request) (orgID, userID string, ok bool) {
	session := GetSessionFromContext(r.Context())
	if session == nil || session.OrganizationID == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "no_organization",
			Err:     errors.New("no organization is associated with this account"),
		})
		return "", "", false
	}
	return session.OrganizationID, session.UserID, true
}

// HandleList handles GET /api/employees.
func (h *EmployeeHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	orgID, userID, ok := requireOrganization(w, r)
	if !ok {
		return
	}

	employees, err := h.employees.List(r.Context(), orgID, userID)
	if err != nil {
		h.logger.Error("list employees failed", slog.Any("error", err))
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, employees)
}

// HandleCreate handles POST /api/employees.
func (h *EmployeeHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID, _, ok := requireOrganization(w, r)
	if !ok {
		return
	}

	var input service.AddEmployeeInput
	if !DecodeJSON(w, r, &input) {
		return
	}

	employee, err := h.employees.Add(r.Context(), orgID, input)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeInternal {
			h.logger.Error("add employee failed", slog.Any("error", err))
		}
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, employee)
}

// HandleGet handles GET /api/employees/{id}.
func (h *EmployeeHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	orgID, _, ok := requireOrganization(w, r)
	if !ok {
		return
	}

	employee, err := h.employees.GetByID(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, employee)
}

// HandleUpdate handles PUT /api/employees/{id}.
func (h *EmployeeHandlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	orgID, _, ok := requireOrganization(w, r)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	employee, err := h.employees.Update(r.Context(), orgID, r.PathValue("id"), req)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeInternal {
			h.logger.Error("update employee failed", slog.Any("error", err))
		}
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, employee)
}

// HandleDelete handles DELETE /api/employees/{id}.
func (h *EmployeeHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgID, _, ok := requireOrganization(w, r)
	if !ok {
		return
	}

	deleted, err := h.employees.Remove(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("employee not found"),
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
