package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/zentra-pos/zentra/internal/errors"

	"github.com/zentra-pos/zentra/internal/domain/model"
)

// BranchServiceInterface defines the branch operations used by BranchHandlers.
type BranchServiceInterface interface {
	Create(ctx context.Context, organizationID string, req *model.CreateBranchRequest) (*model.Branch, error)
	List(ctx context.Context, organizationID string) ([]*model.Branch, error)
	GetByID(ctx context.Context, organizationID, id string) (*model.Branch, error)
	Update(ctx context.Context, organizationID, id string, req model.UpdateBranchRequest) (*model.Branch, error)
	Delete(ctx context.Context, organizationID, id string) (bool, error)
}

// BranchHandlers serves the /api/branches endpoints, scoped to the caller's
// organization.
type BranchHandlers struct {
	branches BranchServiceInterface
	logger   *slog.Logger
}

// NewBranchHandlers constructs BranchHandlers.
func NewBranchHandlers(branches BranchServiceInterface, logger *slog.Logger) *BranchHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &BranchHandlers{branches: branches, logger: logger}
}

// HandleList handles GET /api/branches.
func (h *BranchHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	orgID, _, ok := requireOrganization(w, r)
	if !ok {
		return
	}

	branches, err := h.branches.List(r.Context(), orgID)
	if err != nil {
		h.logger.Error("list branches failed", slog.Any("error", err))
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, branches)
}

// HandleCreate handles POST /api/branches.
func (h *BranchHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID, _, ok := requireOrganization(w, r)
	if !ok {
		return
	}

	var req model.CreateBranchRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	branch, err := h.branches.Create(r.Context(), orgID, &req)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeInternal {
			h.logger.Error("create branch failed", slog.Any("error", err))
		}
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, branch)
}

// HandleGet handles GET /api/branches/{id}.
func (h *BranchHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	orgID, _, ok := requireOrganization(w, r)
	if !ok {
		return
	}

	branch, err := h.branches.GetByID(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, branch)
}

// HandleUpdate handles PUT /api/branches/{id}.
func (h *BranchHandlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	orgID, _, ok := requireOrganization(w, r)
	if !ok {
		return
	}

	var req model.UpdateBranchRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	branch, err := h.branches.Update(r.Context(), orgID, r.PathValue("id"), req)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeInternal {
			h.logger.Error("update branch failed", slog.Any("error", err))
		}
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, branch)
}

// HandleDelete handles DELETE /api/branches/{id}.
func (h *BranchHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgID, _, ok := requireOrganization(w, r)
	if !ok {
		return
	}

	deleted, err := h.branches.Delete(r.Context(), orgID, r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("branch not found"),
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
