package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nsbizsole/green-arcadian-system-new/internal/repository"
)

// DashboardHandler aggregates headline numbers for the admin landing page.
type DashboardHandler struct {
	Users     *repository.UserRepo
	Plants    *repository.PlantRepo
	Orders    *repository.OrderRepo
	Customers *repository.CustomerRepo
	Projects  *repository.ProjectRepo
	Contracts *repository.AMCRepo
	Partners  *repository.PartnerRepo
	Inquiries *repository.InquiryRepo
}

func NewDashboardHandler(
	users *repository.UserRepo,
	plants *repository.PlantRepo,
	orders *repository.OrderRepo,
	customers *repository.CustomerRepo,
	projects *repository.ProjectRepo,
	contracts *repository.AMCRepo,
	partners *repository.PartnerRepo,
	inquiries *repository.InquiryRepo,
) *DashboardHandler {
	return &DashboardHandler{
		Users:     users,
		Plants:    plants,
		Orders:    orders,
		Customers: customers,
		Projects:  projects,
		Contracts: contracts,
		Partners:  partners,
		Inquiries: inquiries,
	}
}

// Stats runs the counting queries sequentially on the request context.  The
// queries are all indexed counts, cheap enough that fan-out is not worth the
// bookkeeping.
func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	byStatus, err := h.Users.CountByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	byRole, err := h.Users.CountByRole(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	totalPlants, lowStock, err := h.Plants.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	totalOrders, pendingOrders, revenueCents, err := h.Orders.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	customers, err := h.Customers.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	projects, err := h.Projects.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	amcTotal, amcActive, err := h.Contracts.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	partnerCount, pendingCommission, paidCommission, err := h.Partners.Totals(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	newInquiries, err := h.Inquiries.CountNew(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	recent, err := h.Orders.List(ctx, "", 5)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users": echo.Map{
			"by_status": byStatus,
			"by_role":   byRole,
		},
		"inventory": echo.Map{
			"total_plants": totalPlants,
			"low_stock":    lowStock,
		},
		"orders": echo.Map{
			"total":         totalOrders,
			"pending":       pendingOrders,
			"revenue_cents": revenueCents,
			"recent":        recent,
		},
		"customers": customers,
		"projects":  projects,
		"amc": echo.Map{
			"total":  amcTotal,
			"active": amcActive,
		},
		"partners": echo.Map{
			"count":                    partnerCount,
			"pending_commission_cents": pendingCommission,
			"paid_commission_cents":    paidCommission,
		},
		"inquiries": echo.Map{
			"new": newInquiries,
		},
	})
}
