package router

// This file registers admin-only routes: the account approval workflow and
// the aggregated dashboard.  They are separate from the staff routes because
// managers never see them.

import (
	"github.com/labstack/echo/v4"

	"github.com/nsbizsole/green-arcadian-system-new/internal/handler"
	"github.com/nsbizsole/green-arcadian-system-new/internal/middleware"
	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
)

// RegisterAdmin mounts user management and the dashboard under /api/admin.
// All routes require a valid JWT, an active account and the admin role.
func RegisterAdmin(e *echo.Echo, u *handler.AdminUserHandler, d *handler.DashboardHandler, guard echo.MiddlewareFunc) {
	g := e.Group(
		"/api/admin",
		guard,
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Users ----
	g.GET("/users", u.List)
	g.GET("/users/pending", u.Pending)
	g.PUT("/users/:id/approve", u.Approve)
	g.PUT("/users/:id/reject", u.Reject)
	g.PUT("/users/:id/suspend", u.Suspend)

	// ---- Dashboard ----
	g.GET("/dashboard", d.Stats)
}
