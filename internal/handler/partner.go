package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
	"github.com/nsbizsole/green-arcadian-system-new/internal/queue"
	"github.com/nsbizsole/green-arcadian-system-new/internal/repository"
	queue_publisher "github.com/nsbizsole/green-arcadian-system-new/internal/service"
)

// PartnerHandler covers referral partners and their commission ledger.
type PartnerHandler struct {
	Partners *repository.PartnerRepo
	Deals    *repository.DealRepo
}

func NewPartnerHandler(p *repository.PartnerRepo, d *repository.DealRepo) *PartnerHandler {
	return &PartnerHandler{Partners: p, Deals: d}
}

// ----- DTOs -----

type partnerReq struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Company        string   `json:"company"`
	CommissionRate *float64 `json:"commission_rate"`
}

type dealReq struct {
	Title      string `json:"title"`
	ClientName string `json:"client_name"`
	ValueCents int64  `json:"value_cents"`
}

type rateReq struct {
	CommissionRate float64 `json:"commission_rate"`
}

// Create registers a referral partner.  An absent commission rate falls back
// to the default; an explicit rate must be within (0, 100].
func (h *PartnerHandler) Create(c echo.Context) error {
	var req partnerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email required"})
	}
	rate := model.DefaultCommissionRate
	if req.CommissionRate != nil {
		rate = *req.CommissionRate
		if rate <= 0 || rate > 100 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "commission_rate must be in (0, 100]"})
		}
	}

	p := model.Partner{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Company:        req.Company,
		CommissionRate: rate,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Partners.Create(ctx, &p); err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create partner failed"})
	}
	created, err := h.Partners.GetByID(ctx, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusCreated, created)
}

// List returns all partners with their cached balances.
func (h *PartnerHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	partners, err := h.Partners.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"partners": partners, "count": len(partners)})
}

// Get returns one partner.
func (h *PartnerHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Partners.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "partner not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Update patches partner contact details.  Rate changes go through
// UpdateRate and balances are never writable from the API.
func (h *PartnerHandler) Update(c echo.Context) error {
	var patch map[string]interface{}
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	allowed := map[string]bool{
		"name": true, "email": true, "phone": true, "company": true,
	}
	for k := range patch {
		if !allowed[k] {
			delete(patch, k)
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Partners.Update(ctx, c.Param("id"), patch)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "partner not found"})
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, p)
}

// UpdateRate changes the rate applied to FUTURE deals.  Existing deals keep
// the rate captured when they were recorded.
func (h *PartnerHandler) UpdateRate(c echo.Context) error {
	var req rateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CommissionRate <= 0 || req.CommissionRate > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "commission_rate must be in (0, 100]"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Partners.UpdateRate(ctx, c.Param("id"), req.CommissionRate); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "partner not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	p, err := h.Partners.GetByID(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// RecordDeal books a referred sale under a partner.  The partner's current
// rate is captured into the deal and the pending commission balance grows in
// the same transaction.
func (h *PartnerHandler) RecordDeal(c echo.Context) error {
	var req dealReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	if req.ValueCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "value_cents must be positive"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	deal, err := h.Deals.Record(ctx, c.Param("id"), req.Title, req.ClientName, req.ValueCents)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "partner not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "record deal failed"})
	}
	return c.JSON(http.StatusCreated, deal)
}

// ListDeals returns a partner's deals, optionally filtered by ?status=.
func (h *PartnerHandler) ListDeals(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	deals, err := h.Deals.ListByPartner(ctx, c.Param("id"), c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deals": deals, "count": len(deals)})
}

// CompleteDeal moves a deal to completed exactly once and transfers its
// commission from the pending balance to the paid total.  Completing an
// already completed deal reports 409; a missing deal 404.  On success a
// deal.completed event goes to the broker; publish failures are logged by
// the publisher and never fail the request.
func (h *PartnerHandler) CompleteDeal(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	deal, err := h.Deals.Complete(ctx, c.Param("deal_id"), currentUserID(c))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "deal not found"})
		}
		if err == repository.ErrInvalidState {
			return c.JSON(http.StatusConflict, echo.Map{"error": "deal already completed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "complete deal failed"})
	}

	partnerName := ""
	if p, err := h.Partners.GetByID(ctx, deal.PartnerID); err == nil {
		partnerName = p.Name
	}
	ev := queue.DealCompletedEvent{
		DealID:          deal.ID,
		PartnerID:       deal.PartnerID,
		PartnerName:     partnerName,
		Title:           deal.Title,
		ClientName:      deal.ClientName,
		ValueCents:      deal.ValueCents,
		CommissionRate:  deal.CommissionRate,
		CommissionCents: deal.CommissionCents,
		CompletedBy:     currentUserID(c),
	}
	if deal.CompletedAt != nil {
		ev.CompletedAt = deal.CompletedAt.UTC().Format(time.RFC3339)
	}
	go func() {
		pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pcancel()
		_ = queue_publisher.PublishDealCompleted(pctx, ev)
	}()

	return c.JSON(http.StatusOK, deal)
}

// Summary reconciles a partner's cached balances against the deal rows.  The
// two must agree; the endpoint exposes both so drift is visible.
func (h *PartnerHandler) Summary(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	id := c.Param("id")
	p, err := h.Partners.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "partner not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	pendingSum, err := h.Deals.SumByStatus(ctx, id, model.DealPending)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	paidSum, err := h.Deals.SumByStatus(ctx, id, model.DealCompleted)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"partner": p,
		"ledger": echo.Map{
			"pending_commission_cents": pendingSum,
			"paid_commission_cents":    paidSum,
		},
		"consistent": p.PendingCommissionCents == pendingSum && p.TotalCommissionCents == paidSum,
	})
}
