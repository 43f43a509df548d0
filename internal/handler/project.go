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

// ProjectHandler manages landscaping engagements.
type ProjectHandler struct {
	Projects *repository.ProjectRepo
}

func NewProjectHandler(p *repository.ProjectRepo) *ProjectHandler {
	return &ProjectHandler{Projects: p}
}

type projectReq struct {
	Name        string `json:"name"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	ClientPhone string `json:"client_phone"`
	ProjectType string `json:"project_type"`
	Description string `json:"description"`
	SiteAddress string `json:"site_address"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	BudgetCents int64  `json:"budget_cents"`
}

func validProjectStatus(s string) bool {
	switch s {
	case model.ProjectPlanning, model.ProjectInProgress, model.ProjectOnHold, model.ProjectCompleted:
		return true
	}
	return false
}

func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Create opens a project in planning with a generated PRJ number.
func (h *ProjectHandler) Create(c echo.Context) error {
	var req projectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if !validDate(req.StartDate) || !validDate(req.EndDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dates must be YYYY-MM-DD"})
	}
	if req.BudgetCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "budget_cents must not be negative"})
	}

	p := model.Project{
		ProjectNumber: utils.DocNumber("PRJ"),
		Name:          req.Name,
		ClientName:    req.ClientName,
		ClientEmail:   strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		ClientPhone:   req.ClientPhone,
		ProjectType:   req.ProjectType,
		Description:   req.Description,
		SiteAddress:   req.SiteAddress,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		BudgetCents:   req.BudgetCents,
		CreatedBy:     currentUserID(c),
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Projects.Create(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create project failed"})
	}
	created, err := h.Projects.GetByID(ctx, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusCreated, created)
}

// List returns projects, optionally filtered by ?status=.
func (h *ProjectHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	projects, err := h.Projects.List(ctx, c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"projects": projects, "count": len(projects)})
}

// Get returns one project.
func (h *ProjectHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Projects.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Update patches project details.  Status changes are rejected here so all
// stage transitions flow through UpdateStatus.
func (h *ProjectHandler) Update(c echo.Context) error {
	var patch map[string]interface{}
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	allowed := map[string]bool{
		"name": true, "client_name": true, "client_email": true,
		"client_phone": true, "project_type": true, "description": true,
		"site_address": true, "start_date": true, "end_date": true,
		"budget_cents": true,
	}
	for k := range patch {
		if !allowed[k] {
			delete(patch, k)
		}
	}
	for _, k := range []string{"start_date", "end_date"} {
		if raw, ok := patch[k].(string); ok && raw != "" && !validDate(raw) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": k + " must be YYYY-MM-DD"})
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Projects.Update(ctx, c.Param("id"), patch)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Delete removes a project record.
func (h *ProjectHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Projects.Delete(ctx, c.Param("id")); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "project deleted"})
}

// UpdateStatus moves a project between workflow stages.
func (h *ProjectHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if !validProjectStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Projects.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, p)
}
