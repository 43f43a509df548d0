package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// reqCtx wraps the request context with the standard per-query timeout used
// across all handlers.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// currentUserID returns the authenticated account id set by the auth
// middleware, or "" on public routes.
func currentUserID(c echo.Context) string {
	s, _ := c.Get("user_id").(string)
	return s
}
