package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/zentra-pos/zentra/internal/data"
	domainauth "github.com/zentra-pos/zentra/internal/domain/auth"
	"github.com/zentra-pos/zentra/internal/domain/model"
	apperrors "github.com/zentra-pos/zentra/internal/errors"
	"github.com/zentra-pos/zentra/internal/http/validation"
	"github.com/zentra-pos/zentra/internal/service"
)

// HandleEmployeesPage renders the employee roster with the add-employee form.
func (h *UIHandlers) HandleEmployeesPage(w http.ResponseWriter, r *http.Request) {
	h.renderEmployeesPage(w, r, nil, nil, "")
}

var employeeFormRules = map[string][]validation.Validator{
	"name":  {validation.RequiredRange("name", 1, 100)},
	"email": {validation.Email("email")},
	"role":  {validation.OneOf("role", string(domainauth.RoleManager), string(domainauth.RoleStaff))},
}

// HandleEmployeeCreate handles the add-employee form post.
func (h *UIHandlers) HandleEmployeeCreate(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil || session == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	values := map[string]string{
		"name":  r.PostFormValue("name"),
		"email": r.PostFormValue("email"),
		"role":  r.PostFormValue("role"),
	}
	if errs := validation.Apply(values, employeeFormRules); len(errs) > 0 {
		h.renderEmployeesPage(w, r, values, errs, "")
		return
	}

	_, err := h.employees.Add(r.Context(), session.OrganizationID, service.AddEmployeeInput{
		Email: values["email"],
		Name:  values["name"],
		Role:  domainauth.Role(values["role"]),
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			h.renderEmployeesPage(w, r, values, map[string]string{
				"email": "an employee with this email already exists",
			}, "")
			return
		}
		h.logger().Error("add employee failed", slog.Any("error", err))
		h.renderEmployeesPage(w, r, values, nil, "Could not add the employee. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/employees", http.StatusSeeOther)
}

// HandleEmployeeDelete handles the remove-employee form post.
func (h *UIHandlers) HandleEmployeeDelete(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, err := h.employees.Remove(r.Context(), session.OrganizationID, r.PathValue("id")); err != nil {
		if apperrors.IsForbidden(err) {
			h.renderEmployeesPage(w, r, nil, nil, "The organization owner cannot be removed.")
			return
		}
		h.logger().Error("remove employee failed", slog.Any("error", err))
	}

	http.Redirect(w, r, "/admin/employees", http.StatusSeeOther)
}

func (h *UIHandlers) renderEmployeesPage(w http.ResponseWriter, r *http.Request, values, fieldErrs map[string]string, formErr string) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}

	var employees []*model.UserProfile
	if session.OrganizationID != "" {
		list, err := h.employees.List(r.Context(), session.OrganizationID, session.UserID)
		if err != nil {
			h.logger().Error("list employees failed", slog.Any("error", err))
		} else {
			employees = list
		}
	}

	data := NewTemplateData(r, PageEmployees, PageMeta{Title: "Employees — Zentra"})
	data.Data = employees
	if values != nil {
		data.FormValues = values
	}
	if fieldErrs != nil {
		data.FormErrors = fieldErrs
	}
	data.FormError = formErr
	h.renderer.Render(w, http.StatusOK, data)
}

// HandleBranchesPage renders the branch list with the add-branch form.
func (h *UIHandlers) HandleBranchesPage(w http.ResponseWriter, r *http.Request) {
	h.renderBranchesPage(w, r, nil, nil, "")
}

var branchFormRules = map[string][]validation.Validator{
	"name":    {validation.RequiredRange("name", 1, 100)},
	"address": {validation.Optional(validation.RequiredRange("address", 1, 200))},
}

// HandleBranchCreate handles the add-branch form post.
func (h *UIHandlers) HandleBranchCreate(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil || session == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	values := map[string]string{
		"name":    r.PostFormValue("name"),
		"address": r.PostFormValue("address"),
	}
	if errs := validation.Apply(values, branchFormRules); len(errs) > 0 {
		h.renderBranchesPage(w, r, values, errs, "")
		return
	}

	req := &model.CreateBranchRequest{Name: values["name"]}
	if values["address"] != "" {
		addr := values["address"]
		req.Address = &addr
	}
	if _, err := h.branches.Create(r.Context(), session.OrganizationID, req); err != nil {
		h.logger().Error("create branch failed", slog.Any("error", err))
		h.renderBranchesPage(w, r, values, nil, "Could not create the branch. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/branches", http.StatusSeeOther)
}

// HandleBranchDelete handles the remove-branch form post.
func (h *UIHandlers) HandleBranchDelete(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, err := h.branches.Delete(r.Context(), session.OrganizationID, r.PathValue("id")); err != nil {
		h.logger().Error("delete branch failed", slog.Any("error", err))
	}

	http.Redirect(w, r, "/admin/branches", http.StatusSeeOther)
}

func (h *UIHandlers) renderBranchesPage(w http.ResponseWriter, r *http.Request, values, fieldErrs map[string]string, formErr string) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}

	var branches []*model.Branch
	if session.OrganizationID != "" {
		list, err := h.branches.List(r.Context(), session.OrganizationID)
		if err != nil {
			h.logger().Error("list branches failed", slog.Any("error", err))
		} else {
			branches = list
		}
	}

	data := NewTemplateData(r, PageBranches, PageMeta{Title: "Branches — Zentra"})
	data.Data = branches
	if values != nil {
		data.FormValues = values
	}
	if fieldErrs != nil {
		data.FormErrors = fieldErrs
	}
	data.FormError = formErr
	h.renderer.Render(w, http.StatusOK, data)
}

// SettingsData carries the organization credentials shown on the settings page.
type SettingsData struct {
	Organization *model.Organization
}

// HandleSettingsPage renders the organization settings, including the POS
// terminal credentials (org code and passkey).
func (h *UIHandlers) HandleSettingsPage(w http.ResponseWriter, r *http.Request) {
	h.renderSettingsPage(w, r, "")
}

// HandleRotateCredentials replaces the organization's org code and passkey.
func (h *UIHandlers) HandleRotateCredentials(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}

	org, err := h.organizations.GetForOwner(r.Context(), session.UserID)
	if err != nil {
		h.logger().Error("load organization failed", slog.Any("error", err))
		h.renderSettingsPage(w, r, "Could not rotate credentials. Please try again.")
		return
	}
	if _, err := h.organizations.RotateCredentials(r.Context(), org.ID); err != nil {
		h.logger().Error("rotate credentials failed", slog.Any("error", err))
		h.renderSettingsPage(w, r, "Could not rotate credentials. Please try again.")
		return
	}

	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

func (h *UIHandlers) renderSettingsPage(w http.ResponseWriter, r *http.Request, formErr string) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}

	settings := SettingsData{}
	org, err := h.organizations.GetForOwner(r.Context(), session.UserID)
	switch {
	case err == nil:
		settings.Organization = org
	case !errors.Is(err, data.ErrOrganizationNotFound):
		h.logger().Error("load organization failed", slog.Any("error", err))
	}

	data := NewTemplateData(r, PageSettings, PageMeta{Title: "Settings — Zentra"})
	data.Data = settings
	data.FormError = formErr
	h.renderer.Render(w, http.StatusOK, data)
}
