package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
	"github.com/nsbizsole/green-arcadian-system-new/internal/repository"
)

// CustomerHandler is the CRM surface.
type CustomerHandler struct {
	Customers *repository.CustomerRepo
}

func NewCustomerHandler(cu *repository.CustomerRepo) *CustomerHandler {
	return &CustomerHandler{Customers: cu}
}

type customerReq struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Company      string `json:"company"`
	Address      string `json:"address"`
	CustomerType string `json:"customer_type"`
	Notes        string `json:"notes"`
}

// Create adds a CRM record with zeroed order aggregates.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.CustomerType == "" {
		req.CustomerType = "retail"
	}

	cu := model.Customer{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		Company:      req.Company,
		Address:      req.Address,
		CustomerType: req.CustomerType,
		Notes:        req.Notes,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Customers.Create(ctx, &cu); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create customer failed"})
	}
	created, err := h.Customers.GetByID(ctx, cu.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusCreated, created)
}

// List returns customers, optionally filtered by ?type=.
func (h *CustomerHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	customers, err := h.Customers.List(ctx, c.QueryParam("type"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"customers": customers, "count": len(customers)})
}

// Get returns one customer.
func (h *CustomerHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cu, err := h.Customers.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, cu)
}

// Update patches contact fields.  The order aggregates are excluded; they
// only move when orders complete.
func (h *CustomerHandler) Update(c echo.Context) error {
	var patch map[string]interface{}
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	allowed := map[string]bool{
		"name": true, "email": true, "phone": true, "company": true,
		"address": true, "customer_type": true, "notes": true,
	}
	for k := range patch {
		if !allowed[k] {
			delete(patch, k)
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cu, err := h.Customers.Update(ctx, c.Param("id"), patch)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, cu)
}

// Delete removes a customer record.
func (h *CustomerHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Customers.Delete(ctx, c.Param("id")); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
