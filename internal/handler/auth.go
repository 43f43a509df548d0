package handler

import (
	"database/sql"         // for sql.ErrNoRows on credential lookups
	"net/http"             // HTTP status codes and primitives
	"strings"              // string manipulation utilities
	"time"                 // token expiry in responses

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/nsbizsole/green-arcadian-system-new/internal/config"     // app configuration
	"github.com/nsbizsole/green-arcadian-system-new/internal/middleware"  // identity extraction
	"github.com/nsbizsole/green-arcadian-system-new/internal/model"       // roles and statuses
	"github.com/nsbizsole/green-arcadian-system-new/internal/repository"  // DB repositories
	"github.com/nsbizsole/green-arcadian-system-new/internal/utils"       // hashing, token issuing
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"` // admin | manager | crew | partner | vendor | customer
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Register: create an account.  Every registration lands in pending until an
// admin approves it, with one exception: the first admin registered into an
// empty system is activated immediately so approvals can happen at all.
// Pending accounts get no token; they cannot call anything until approved.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = model.RoleCustomer
	}
	if !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	status := model.StatusPending
	if role == model.RoleAdmin {
		n, err := h.Users.CountActiveAdmins(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if n == 0 {
			// Bootstrap: first admin is live immediately.
			status = model.StatusActive
		}
	}

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.FullName, role, status, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	if status != model.StatusActive {
		return c.JSON(http.StatusCreated, echo.Map{
			"user": echo.Map{"id": uid, "email": req.Email, "role": role, "status": status},
			"message": "registration received, awaiting approval",
		})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, role, h.Cfg.TokenTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"user":   echo.Map{"id": uid, "email": req.Email, "role": role, "status": status},
		"access": tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Login: verify credentials, check the account lifecycle state and return a
// fresh access token.  Wrong password and unknown email produce the same
// 401 so the endpoint does not leak which emails exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	switch u.Status {
	case model.StatusActive:
		// proceed
	case model.StatusPending:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account pending approval"})
	case model.StatusSuspended:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account suspended"})
	default:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account rejected"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.TokenTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	u.PasswordHash = ""
	return c.JSON(http.StatusOK, echo.Map{
		"user":   u,
		"access": tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Me returns the identity loaded by the auth middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.Identity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, u)
}
