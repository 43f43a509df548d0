package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
	"github.com/nsbizsole/green-arcadian-system-new/internal/repository"
	"github.com/nsbizsole/green-arcadian-system-new/internal/utils"
)

// AMCHandler manages annual maintenance contracts.
type AMCHandler struct {
	Contracts *repository.AMCRepo
}

func NewAMCHandler(a *repository.AMCRepo) *AMCHandler {
	return &AMCHandler{Contracts: a}
}

type contractReq struct {
	ClientName       string   `json:"client_name"`
	ClientEmail      string   `json:"client_email"`
	ClientPhone      string   `json:"client_phone"`
	ServiceType      string   `json:"service_type"`
	Frequency        string   `json:"frequency"`
	AmountCents      int64    `json:"amount_cents"`
	StartDate        string   `json:"start_date"`
	PropertyAddress  string   `json:"property_address"`
	ServicesIncluded []string `json:"services_included"`
	Notes            string   `json:"notes"`
}

func validContractStatus(s string) bool {
	switch s {
	case "active", "paused", "cancelled":
		return true
	}
	return false
}

// Create opens an active contract.  The first billing date is derived from
// the start date and frequency.
func (h *AMCHandler) Create(c echo.Context) error {
	var req contractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.ClientName = strings.TrimSpace(req.ClientName)
	if req.ClientName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "client_name required"})
	}
	if !model.ValidFrequency(req.Frequency) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown frequency"})
	}
	if req.AmountCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents must be positive"})
	}
	if _, err := time.Parse("2006-01-02", req.StartDate); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}

	ct := model.Contract{
		ContractNumber:   utils.DocNumber("AMC"),
		ClientName:       req.ClientName,
		ClientEmail:      strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		ClientPhone:      req.ClientPhone,
		ServiceType:      req.ServiceType,
		Frequency:        req.Frequency,
		AmountCents:      req.AmountCents,
		StartDate:        req.StartDate,
		PropertyAddress:  req.PropertyAddress,
		ServicesIncluded: req.ServicesIncluded,
		Notes:            req.Notes,
		CreatedBy:        currentUserID(c),
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Contracts.Create(ctx, &ct); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create contract failed"})
	}
	created, err := h.Contracts.GetByID(ctx, ct.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusCreated, created)
}

// List returns contracts, optionally filtered by ?status=.
func (h *AMCHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	contracts, err := h.Contracts.List(ctx, c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"contracts": contracts, "count": len(contracts)})
}

// Get returns one contract.
func (h *AMCHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	ct, err := h.Contracts.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, ct)
}

// AdvanceBilling records a completed service visit: the visit counter goes
// up and the next billing date rolls forward one period.  Only active
// contracts advance; paused and cancelled ones report 409.
func (h *AMCHandler) AdvanceBilling(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	ct, err := h.Contracts.AdvanceBilling(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
		}
		if err == repository.ErrInvalidState {
			return c.JSON(http.StatusConflict, echo.Map{"error": "contract is not active"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "advance failed"})
	}
	return c.JSON(http.StatusOK, ct)
}

// UpdateStatus pauses, resumes or cancels a contract.
func (h *AMCHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if !validContractStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ct, err := h.Contracts.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "contract not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, ct)
}
