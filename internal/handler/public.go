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
	"github.com/nsbizsole/green-arcadian-system-new/internal/utils"
)

// PublicHandler serves the unauthenticated storefront: catalog browsing,
// contact inquiries and order placement.  These routes sit behind the
// response cache and the rate limiter rather than the auth middleware.
type PublicHandler struct {
	Plants    *repository.PlantRepo
	Orders    *repository.OrderRepo
	Inquiries *repository.InquiryRepo
}

func NewPublicHandler(p *repository.PlantRepo, o *repository.OrderRepo, i *repository.InquiryRepo) *PublicHandler {
	return &PublicHandler{Plants: p, Orders: o, Inquiries: i}
}

// ----- DTOs -----

type inquiryReq struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	InquiryType string `json:"inquiry_type"`
	Message     string `json:"message"`
}

type publicOrderItem struct {
	PlantID  string `json:"plant_id"`
	Quantity int64  `json:"quantity"`
}

type publicOrderReq struct {
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerAddress string            `json:"customer_address"`
	Items           []publicOrderItem `json:"items"`
	ShippingCents   int64             `json:"shipping_cents"`
	Notes           string            `json:"notes"`
	OrderType       string            `json:"order_type"`
}

// publicPlant hides cost and stock internals from the storefront.
type publicPlant struct {
	ID             string `json:"id"`
	SKU            string `json:"sku"`
	Name           string `json:"name"`
	ScientificName string `json:"scientific_name"`
	Category       string `json:"category"`
	GrowthStage    string `json:"growth_stage"`
	Description    string `json:"description"`
	PriceCents     int64  `json:"price_cents"`
	Available      int64  `json:"available"`
	Unit           string `json:"unit"`
	IsFeatured     bool   `json:"is_featured"`
}

func toPublic(p model.Plant) publicPlant {
	return publicPlant{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		ScientificName: p.ScientificName,
		Category:       p.Category,
		GrowthStage:    p.GrowthStage,
		Description:    p.Description,
		PriceCents:     p.PriceCents,
		Available:      p.Available(),
		Unit:           p.Unit,
		IsFeatured:     p.IsFeatured,
	}
}

// Products lists the available catalog, filtered by ?category= and
// ?featured=true.
func (h *PublicHandler) Products(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	plants, err := h.Plants.ListPublic(ctx, c.QueryParam("category"), c.QueryParam("featured") == "true")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]publicPlant, 0, len(plants))
	for _, p := range plants {
		out = append(out, toPublic(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"products": out, "count": len(out)})
}

// Product returns one available catalog item.
func (h *PublicHandler) Product(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Plants.GetPublicByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toPublic(p))
}

// Categories lists the catalog categories.
func (h *PublicHandler) Categories(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cats, err := h.Plants.Categories(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}

// CreateInquiry accepts a contact-form submission.
func (h *PublicHandler) CreateInquiry(c echo.Context) error {
	var req inquiryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/message required"})
	}

	q := model.Inquiry{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		InquiryType: req.InquiryType,
		Message:     req.Message,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Inquiries.Create(ctx, &q); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create inquiry failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": q.ID, "message": "inquiry received"})
}

// PlaceOrder accepts a storefront order.  Prices come from the catalog, not
// from the client, so a tampered payload cannot change what is charged.  The
// order lands pending for staff to confirm; stock is not held here, staff
// reserve during confirmation.
func (h *PublicHandler) PlaceOrder(c echo.Context) error {
	var req publicOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	if req.CustomerName == "" || req.CustomerEmail == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_name/customer_email required"})
	}
	if len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one item required"})
	}
	if req.ShippingCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "shipping_cents must not be negative"})
	}
	orderType := req.OrderType
	if orderType != "wholesale" {
		orderType = "retail"
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	var subtotal int64
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "item quantity must be positive"})
		}
		p, err := h.Plants.GetPublicByID(ctx, it.PlantID)
		if err != nil {
			if err == repository.ErrNotFound {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown product: " + it.PlantID})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		items = append(items, model.OrderItem{
			PlantID:    p.ID,
			Name:       p.Name,
			Quantity:   it.Quantity,
			PriceCents: p.PriceCents,
		})
		subtotal += p.PriceCents * it.Quantity
	}

	o := model.Order{
		OrderNumber:     utils.DocNumber("GA"),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Items:           items,
		SubtotalCents:   subtotal,
		ShippingCents:   req.ShippingCents,
		TotalCents:      subtotal + req.ShippingCents,
		Notes:           req.Notes,
		OrderType:       orderType,
	}
	if err := h.Orders.Create(ctx, &o); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
	}

	ev := queue.OrderPlacedEvent{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		ItemCount:     len(o.Items),
		TotalCents:    o.TotalCents,
		OrderType:     o.OrderType,
		PlacedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pcancel()
		_ = queue_publisher.PublishOrderPlaced(pctx, ev)
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"order_id":     o.ID,
		"order_number": o.OrderNumber,
		"total_cents":  o.TotalCents,
		"status":       o.Status,
	})
}
