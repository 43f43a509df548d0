package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
	"github.com/nsbizsole/green-arcadian-system-new/internal/repository"
	"github.com/nsbizsole/green-arcadian-system-new/internal/utils"
)

// ExportHandler manages export shipment documentation.
type ExportHandler struct {
	Exports *repository.ExportRepo
}

func NewExportHandler(e *repository.ExportRepo) *ExportHandler {
	return &ExportHandler{Exports: e}
}

type exportReq struct {
	OrderID            string             `json:"order_id"`
	DocType            string             `json:"doc_type"`
	CustomerName       string             `json:"customer_name"`
	DestinationCountry string             `json:"destination_country"`
	Items              []model.ExportItem `json:"items"`
	TotalWeight        float64            `json:"total_weight"`
	TotalBoxes         int64              `json:"total_boxes"`
	ShippingMethod     string             `json:"shipping_method"`
	Notes              string             `json:"notes"`
}

// Create drafts a new export document with an EXP document number.
func (h *ExportHandler) Create(c echo.Context) error {
	var req exportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.DocType = strings.TrimSpace(req.DocType)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.DestinationCountry = strings.TrimSpace(req.DestinationCountry)
	if req.DocType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "doc_type required"})
	}
	if req.CustomerName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_name required"})
	}
	if req.DestinationCountry == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "destination_country required"})
	}
	if req.TotalWeight < 0 || req.TotalBoxes < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "weight and boxes must not be negative"})
	}

	doc := model.ExportDoc{
		DocNumber:          utils.DocNumber("EXP"),
		OrderID:            req.OrderID,
		DocType:            req.DocType,
		CustomerName:       req.CustomerName,
		DestinationCountry: req.DestinationCountry,
		Items:              req.Items,
		TotalWeight:        req.TotalWeight,
		TotalBoxes:         req.TotalBoxes,
		ShippingMethod:     req.ShippingMethod,
		Notes:              req.Notes,
		CreatedBy:          currentUserID(c),
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Exports.Create(ctx, &doc); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create export document failed"})
	}
	created, err := h.Exports.GetByID(ctx, doc.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusCreated, created)
}

// List returns export documents, optionally filtered by ?status=.
func (h *ExportHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	docs, err := h.Exports.List(ctx, c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, docs)
}

// Get returns one export document with its manifest.
func (h *ExportHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	doc, err := h.Exports.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "export document not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, doc)
}

// UpdateStatus moves a document through draft/pending/approved/shipped.
func (h *ExportHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if !model.ValidExportStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	doc, err := h.Exports.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "export document not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, doc)
}
