package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
	"github.com/nsbizsole/green-arcadian-system-new/internal/repository"
)

// AdminUserHandler exposes the account approval workflow.  All routes are
// admin-only.
type AdminUserHandler struct {
	Users *repository.UserRepo
}

func NewAdminUserHandler(u *repository.UserRepo) *AdminUserHandler {
	return &AdminUserHandler{Users: u}
}

// List returns accounts, optionally filtered by ?status= and ?role=.
func (h *AdminUserHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx, c.QueryParam("status"), c.QueryParam("role"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users, "count": len(users)})
}

// Pending is a convenience view of the approval queue.
func (h *AdminUserHandler) Pending(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx, model.StatusPending, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users, "count": len(users)})
}

// Approve activates a pending account and records which admin approved it.
// The update only matches rows still in pending, so approving an already
// approved, rejected or suspended account reports 404 rather than silently
// reactivating it.
func (h *AdminUserHandler) Approve(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Approve(ctx, c.Param("id"), currentUserID(c)); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no pending user with that id"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "approve failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user approved"})
}

// Reject marks an account rejected.  Works from any state and is repeatable.
func (h *AdminUserHandler) Reject(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Reject(ctx, c.Param("id")); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reject failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user rejected"})
}

// Suspend locks an active account out.  The auth middleware rechecks status
// per request, so the lockout is immediate even for tokens already issued.
func (h *AdminUserHandler) Suspend(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.Suspend(ctx, c.Param("id")); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "suspend failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user suspended"})
}
