package router // staff-scoped route registration

import (
	"github.com/labstack/echo/v4"

	"github.com/nsbizsole/green-arcadian-system-new/internal/handler"
	"github.com/nsbizsole/green-arcadian-system-new/internal/middleware"
	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
)

// StaffHandlers bundles the handlers mounted on the staff group so the
// registration signature stays readable.
type StaffHandlers struct {
	Inventory *handler.InventoryHandler
	Orders    *handler.OrderHandler
	Customers *handler.CustomerHandler
	Projects  *handler.ProjectHandler
	Contracts *handler.AMCHandler
	Partners  *handler.PartnerHandler
	Inquiries *handler.InquiryHandler
	Exports   *handler.ExportHandler
}

// RegisterStaff registers the back-office endpoints under /api.  All routes
// require a valid JWT, an active account and the admin or manager role.
func RegisterStaff(e *echo.Echo, h StaffHandlers, guard echo.MiddlewareFunc) {
	g := e.Group(
		"/api",
		guard,
		middleware.RequireRole(model.RoleAdmin, model.RoleManager),
	)

	// ---- Inventory ----
	g.GET("/inventory", h.Inventory.List)
	g.POST("/inventory", h.Inventory.Create)
	g.GET("/inventory/categories", h.Inventory.Categories)
	g.GET("/inventory/:id", h.Inventory.Get)
	g.PUT("/inventory/:id", h.Inventory.Update)
	g.DELETE("/inventory/:id", h.Inventory.Delete)
	g.POST("/inventory/:id/reserve", h.Inventory.Reserve)
	g.GET("/inventory/:id/reservations", h.Inventory.ListReservations)
	g.DELETE("/inventory/reservations/:reservation_id", h.Inventory.CancelReservation)
	g.POST("/inventory/:id/adjust", h.Inventory.AdjustStock)
	g.GET("/inventory/:id/movements", h.Inventory.Movements)

	// ---- Orders ----
	g.GET("/orders", h.Orders.List)
	g.GET("/orders/:id", h.Orders.Get)
	g.PUT("/orders/:id/status", h.Orders.UpdateStatus)

	// ---- Customers ----
	g.GET("/customers", h.Customers.List)
	g.POST("/customers", h.Customers.Create)
	g.GET("/customers/:id", h.Customers.Get)
	g.PUT("/customers/:id", h.Customers.Update)
	g.DELETE("/customers/:id", h.Customers.Delete)

	// ---- Projects ----
	g.GET("/projects", h.Projects.List)
	g.POST("/projects", h.Projects.Create)
	g.GET("/projects/:id", h.Projects.Get)
	g.PUT("/projects/:id", h.Projects.Update)
	g.DELETE("/projects/:id", h.Projects.Delete)
	g.PUT("/projects/:id/status", h.Projects.UpdateStatus)

	// ---- AMC contracts ----
	g.GET("/amc", h.Contracts.List)
	g.POST("/amc", h.Contracts.Create)
	g.GET("/amc/:id", h.Contracts.Get)
	g.POST("/amc/:id/advance-billing", h.Contracts.AdvanceBilling)
	g.PUT("/amc/:id/status", h.Contracts.UpdateStatus)

	// ---- Partners & deals ----
	g.GET("/partners", h.Partners.List)
	g.POST("/partners", h.Partners.Create)
	g.GET("/partners/:id", h.Partners.Get)
	g.PUT("/partners/:id", h.Partners.Update)
	g.PUT("/partners/:id/rate", h.Partners.UpdateRate)
	g.GET("/partners/:id/summary", h.Partners.Summary)
	g.POST("/partners/:id/deals", h.Partners.RecordDeal)
	g.GET("/partners/:id/deals", h.Partners.ListDeals)
	g.POST("/partners/deals/:deal_id/complete", h.Partners.CompleteDeal)

	// ---- Inquiries ----
	g.GET("/inquiries", h.Inquiries.List)
	g.PUT("/inquiries/:id/status", h.Inquiries.UpdateStatus)

	// ---- Export documentation ----
	g.GET("/exports", h.Exports.List)
	g.POST("/exports", h.Exports.Create)
	g.GET("/exports/:id", h.Exports.Get)
	g.PUT("/exports/:id/status", h.Exports.UpdateStatus)
}
