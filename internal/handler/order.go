package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
	"github.com/nsbizsole/green-arcadian-system-new/internal/repository"
)

// OrderHandler covers the staff-facing order workflow.  Orders enter via
// the public storefront endpoint (see PublicHandler) or via staff entry for
// wholesale, and get advanced through statuses here.
type OrderHandler struct {
	Orders *repository.OrderRepo
}

func NewOrderHandler(o *repository.OrderRepo) *OrderHandler {
	return &OrderHandler{Orders: o}
}

type statusReq struct {
	Status string `json:"status"`
}

func validOrderStatus(s string) bool {
	switch s {
	case model.OrderPending, model.OrderConfirmed, model.OrderShipped,
		model.OrderCompleted, model.OrderCancelled:
		return true
	}
	return false
}

// List returns orders newest first, filtered by ?status= and capped by
// ?limit=.
func (h *OrderHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	orders, err := h.Orders.List(ctx, c.QueryParam("status"), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders, "count": len(orders)})
}

// Get returns one order with its line items.
func (h *OrderHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	o, err := h.Orders.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, o)
}

// UpdateStatus advances an order.  Completing an order also rolls the sale
// into the matching CRM customer's running totals.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if !validOrderStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	var o model.Order
	var err error
	if req.Status == model.OrderCompleted {
		o, err = h.Orders.Complete(ctx, c.Param("id"))
	} else {
		o, err = h.Orders.UpdateStatus(ctx, c.Param("id"), req.Status)
	}
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, o)
}
