package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Load .env files in development
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/nsbizsole/green-arcadian-system-new/internal/config"   // Internal config loader
	"github.com/nsbizsole/green-arcadian-system-new/internal/database" // MySQL pool
	"github.com/nsbizsole/green-arcadian-system-new/internal/handler"
	"github.com/nsbizsole/green-arcadian-system-new/internal/middleware"
	"github.com/nsbizsole/green-arcadian-system-new/internal/queue"
	"github.com/nsbizsole/green-arcadian-system-new/internal/repository"
	"github.com/nsbizsole/green-arcadian-system-new/internal/router" // Internal router setup
)

func main() {
	// Load .env if present; in production the variables come from the
	// environment and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the public response cache and the rate limiter.  Both
	// middlewares degrade to pass-through when the client is nil or the
	// server is unreachable.
	rdb := config.NewRedisClient()

	// Repositories
	users := repository.NewUserRepo(db)
	plants := repository.NewPlantRepo(db)
	reservations := repository.NewReservationRepo(db)
	partners := repository.NewPartnerRepo(db)
	deals := repository.NewDealRepo(db)
	orders := repository.NewOrderRepo(db)
	customers := repository.NewCustomerRepo(db)
	projects := repository.NewProjectRepo(db)
	contracts := repository.NewAMCRepo(db)
	inquiries := repository.NewInquiryRepo(db)
	exports := repository.NewExportRepo(db)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users)
	adminUsersH := handler.NewAdminUserHandler(users)
	dashboardH := handler.NewDashboardHandler(users, plants, orders, customers, projects, contracts, partners, inquiries)
	publicH := handler.NewPublicHandler(plants, orders, inquiries)
	staff := router.StaffHandlers{
		Inventory: handler.NewInventoryHandler(plants, reservations),
		Orders:    handler.NewOrderHandler(orders),
		Customers: handler.NewCustomerHandler(customers),
		Projects:  handler.NewProjectHandler(projects),
		Contracts: handler.NewAMCHandler(contracts),
		Partners:  handler.NewPartnerHandler(partners, deals),
		Inquiries: handler.NewInquiryHandler(inquiries),
		Exports:   handler.NewExportHandler(exports),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))

	// The guard verifies the bearer token and reloads the account on every
	// request so suspensions take effect immediately.
	guard := middleware.JWTAuth(cfg.JWTSecret, users)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, guard)
	router.RegisterPublic(e, publicH, rdb)
	router.RegisterAdmin(e, adminUsersH, dashboardH, guard)
	router.RegisterStaff(e, staff, guard)

	// Background consumers log broker events to files under logs/.  They
	// reconnect forever; a missing broker only costs the event log.
	go func() {
		if err := queue.StartDealConsumer(); err != nil {
			log.Printf("deal consumer stopped: %v", err)
		}
	}()
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
