package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
	"github.com/nsbizsole/green-arcadian-system-new/internal/repository"
)

// InventoryHandler covers the staff-facing inventory surface: plant CRUD,
// reservations against available stock, and audited stock adjustments.
type InventoryHandler struct {
	Plants       *repository.PlantRepo
	Reservations *repository.ReservationRepo
}

func NewInventoryHandler(p *repository.PlantRepo, r *repository.ReservationRepo) *InventoryHandler {
	return &InventoryHandler{Plants: p, Reservations: r}
}

// ----- DTOs -----

type plantReq struct {
	Name           string `json:"name"`
	ScientificName string `json:"scientific_name"`
	Category       string `json:"category"`
	GrowthStage    string `json:"growth_stage"`
	Description    string `json:"description"`
	PriceCents     int64  `json:"price_cents"`
	CostCents      int64  `json:"cost_cents"`
	Quantity       int64  `json:"quantity"`
	MinStock       int64  `json:"min_stock"`
	Location       string `json:"location"`
	Unit           string `json:"unit"`
	IsFeatured     bool   `json:"is_featured"`
	IsAvailable    bool   `json:"is_available"`
}

type reserveReq struct {
	Quantity  int64  `json:"quantity"`
	Reference string `json:"reference"`
}

type adjustReq struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
}

// newSKU derives a stock keeping unit from the category plus a random tail,
// e.g. "GA-IND-4F2A9C".
func newSKU(category string) string {
	cat := strings.ToUpper(strings.ReplaceAll(category, " ", ""))
	if len(cat) > 3 {
		cat = cat[:3]
	}
	if cat == "" {
		cat = "GEN"
	}
	tail := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return "GA-" + cat + "-" + tail
}

// List returns plants filtered by ?category= and ?search=.
func (h *InventoryHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	plants, err := h.Plants.List(ctx, c.QueryParam("category"), c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"plants": plants, "count": len(plants)})
}

// Get returns a single plant with its counters.
func (h *InventoryHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Plants.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Create adds a plant to the catalog with a generated SKU.
func (h *InventoryHandler) Create(c echo.Context) error {
	var req plantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Quantity < 0 || req.PriceCents < 0 || req.CostCents < 0 || req.MinStock < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "negative values not allowed"})
	}

	p := model.Plant{
		SKU:            newSKU(req.Category),
		Name:           req.Name,
		ScientificName: req.ScientificName,
		Category:       req.Category,
		GrowthStage:    req.GrowthStage,
		Description:    req.Description,
		PriceCents:     req.PriceCents,
		CostCents:      req.CostCents,
		Quantity:       req.Quantity,
		MinStock:       req.MinStock,
		Location:       req.Location,
		Unit:           req.Unit,
		IsFeatured:     req.IsFeatured,
		IsAvailable:    req.IsAvailable,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Plants.Create(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create plant failed"})
	}
	created, err := h.Plants.GetByID(ctx, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusCreated, created)
}

// Update patches descriptive fields.  The counters (quantity, reserved) are
// excluded here; they only move through the reservation and adjustment
// endpoints so every change stays audited.
func (h *InventoryHandler) Update(c echo.Context) error {
	var patch map[string]interface{}
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	allowed := map[string]bool{
		"name": true, "scientific_name": true, "category": true, "growth_stage": true,
		"description": true, "price_cents": true, "cost_cents": true, "min_stock": true,
		"location": true, "unit": true, "is_featured": true, "is_available": true,
	}
	for k := range patch {
		if !allowed[k] {
			delete(patch, k)
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Plants.Update(ctx, c.Param("id"), patch)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Delete removes a plant from the catalog.
func (h *InventoryHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Plants.Delete(ctx, c.Param("id")); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Categories lists the distinct categories in use.
func (h *InventoryHandler) Categories(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cats, err := h.Plants.Categories(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}

// Reserve holds units of a plant.  The hold is conditional on the bookable
// amount; a failed condition reports 409 with the amount actually available
// so callers can retry with a smaller quantity.
func (h *InventoryHandler) Reserve(c echo.Context) error {
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.Reservations.Reserve(ctx, c.Param("id"), req.Quantity, req.Reference, currentUserID(c))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plant not found"})
		}
		if available, ok := repository.IsInsufficientStock(err); ok {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":     "insufficient stock",
				"available": available,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reserve failed"})
	}
	return c.JSON(http.StatusCreated, res)
}

// CancelReservation releases a hold.  Cancelling twice reports 404 since the
// active row is already gone.
func (h *InventoryHandler) CancelReservation(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Reservations.Cancel(ctx, c.Param("reservation_id")); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "active reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}

// Reservations lists the holds recorded against a plant.
func (h *InventoryHandler) ListReservations(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Reservations.ListByPlant(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list, "count": len(list)})
}

// AdjustStock applies a signed delta to on-hand quantity with an audit
// reason.  Deltas that would strand reservations or drive stock negative
// come back as 409.
func (h *InventoryHandler) AdjustStock(c echo.Context) error {
	var req adjustReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Delta == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "delta must be non-zero"})
	}
	if strings.TrimSpace(req.Reason) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reason required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	mv, err := h.Plants.AdjustStock(ctx, c.Param("id"), req.Delta, req.Reason, currentUserID(c))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plant not found"})
		}
		if available, ok := repository.IsInsufficientStock(err); ok {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":     "adjustment would overdraw stock",
				"available": available,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "adjust failed"})
	}
	return c.JSON(http.StatusCreated, mv)
}

// Movements returns the adjustment audit trail for a plant.
func (h *InventoryHandler) Movements(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Plants.Movements(ctx, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movements": list, "count": len(list)})
}
