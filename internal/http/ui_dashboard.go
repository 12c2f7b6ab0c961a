package httpx

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/zentra-pos/zentra/internal/domain/model"
)

// DashboardData carries the stats shown on the owner dashboard.
type DashboardData struct {
	Organization  *model.Organization
	EmployeeCount int
	BranchCount   int
}

// HandleDashboard renders the owner dashboard. The organization lookup and
// the two counts run concurrently.
func (h *UIHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}

	stats := DashboardData{}
	if session.OrganizationID != "" {
		g, ctx := errgroup.WithContext(r.Context())

		if session.IsOwner() {
			g.Go(func() error {
				org, err := h.organizations.GetForOwner(ctx, session.UserID)
				if err == nil {
					stats.Organization = org
				}
				return err
			})
		}
		g.Go(func() error {
			n, err := h.employees.Count(ctx, session.OrganizationID, session.UserID)
			if err == nil {
				stats.EmployeeCount = n
			}
			return err
		})
		g.Go(func() error {
			n, err := h.branches.Count(ctx, session.OrganizationID)
			if err == nil {
				stats.BranchCount = n
			}
			return err
		})

		if err := g.Wait(); err != nil {
			h.logger().Error("dashboard stats failed", slog.Any("error", err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	data := NewTemplateData(r, PageDashboard, PageMeta{Title: "Dashboard — Zentra"})
	data.Data = stats
	h.renderer.Render(w, http.StatusOK, data)
}
