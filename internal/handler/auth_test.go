package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/nsbizsole/green-arcadian-system-new/internal/config"
	"github.com/nsbizsole/green-arcadian-system-new/internal/repository"
	"github.com/nsbizsole/green-arcadian-system-new/internal/utils"
)

func testCfg() config.Config {
	return config.Config{JWTSecret: "test-secret", TokenTTLHours: 24, BcryptCost: 4}
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "full_name", "role", "status", "approved_by", "created_at", "updated_at",
	})
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterBootstrapAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Empty system: zero active admins, so the first admin activates itself
	// and gets a token immediately.
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("admin", "active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "root@nursery.test", sqlmock.AnyArg(), "Root", "admin", "active").
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := NewAuthHandler(testCfg(), repository.NewUserRepo(db))
	e := echo.New()
	e.POST("/api/auth/register", h.Register)

	rec := postJSON(e, "/api/auth/register",
		`{"email":"root@nursery.test","password":"secret123","full_name":"Root","role":"admin"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		User struct {
			Status string `json:"status"`
		} `json:"user"`
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.Status != "active" {
		t.Fatalf("expected active bootstrap admin, got %s", resp.User.Status)
	}
	if resp.Access.Token == "" {
		t.Fatal("expected access token for bootstrap admin")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterSecondAdminPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("admin", "active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "second@nursery.test", sqlmock.AnyArg(), "Second", "admin", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := NewAuthHandler(testCfg(), repository.NewUserRepo(db))
	e := echo.New()
	e.POST("/api/auth/register", h.Register)

	rec := postJSON(e, "/api/auth/register",
		`{"email":"second@nursery.test","password":"secret123","full_name":"Second","role":"admin"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `"access"`) {
		t.Fatalf("pending registration must not receive a token: %s", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginPendingAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, err := utils.HashPassword("secret123", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	now := time.Now().UTC()
	mock.ExpectQuery("FROM users WHERE email=").
		WithArgs("waiting@nursery.test").
		WillReturnRows(userRows().AddRow("user-1", "waiting@nursery.test", hash, "Waiting", "crew", "pending", nil, now, now))

	h := NewAuthHandler(testCfg(), repository.NewUserRepo(db))
	e := echo.New()
	e.POST("/api/auth/login", h.Login)

	rec := postJSON(e, "/api/auth/login", `{"email":"waiting@nursery.test","password":"secret123"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "pending approval") {
		t.Fatalf("expected pending approval message, got %s", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, err := utils.HashPassword("correct-horse", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	now := time.Now().UTC()
	mock.ExpectQuery("FROM users WHERE email=").
		WithArgs("user@nursery.test").
		WillReturnRows(userRows().AddRow("user-1", "user@nursery.test", hash, "User", "manager", "active", nil, now, now))

	h := NewAuthHandler(testCfg(), repository.NewUserRepo(db))
	e := echo.New()
	e.POST("/api/auth/login", h.Login)

	rec := postJSON(e, "/api/auth/login", `{"email":"user@nursery.test","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginActiveAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, err := utils.HashPassword("secret123", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	now := time.Now().UTC()
	mock.ExpectQuery("FROM users WHERE email=").
		WithArgs("user@nursery.test").
		WillReturnRows(userRows().AddRow("user-1", "user@nursery.test", hash, "User", "manager", "active", nil, now, now))

	h := NewAuthHandler(testCfg(), repository.NewUserRepo(db))
	e := echo.New()
	e.POST("/api/auth/login", h.Login)

	rec := postJSON(e, "/api/auth/login", `{"email":"user@nursery.test","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	claims, err := utils.VerifyAccessToken("test-secret", resp.Access.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "manager" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
