package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nsbizsole/green-arcadian-system-new/internal/repository"
)

// InquiryHandler is the staff view of contact-form submissions.
type InquiryHandler struct {
	Inquiries *repository.InquiryRepo
}

func NewInquiryHandler(i *repository.InquiryRepo) *InquiryHandler {
	return &InquiryHandler{Inquiries: i}
}

// List returns inquiries, optionally filtered by ?status=.
func (h *InquiryHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	inquiries, err := h.Inquiries.List(ctx, c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"inquiries": inquiries, "count": len(inquiries)})
}

// UpdateStatus moves an inquiry through new/contacted/closed.
func (h *InquiryHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	switch req.Status {
	case "new", "contacted", "closed":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	q, err := h.Inquiries.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inquiry not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, q)
}
