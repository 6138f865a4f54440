package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"glowdesk/config"
	"glowdesk/cron"
	"glowdesk/database"
	availabilityRepoPkg "glowdesk/database/repository/availability"
	bookingRepoPkg "glowdesk/database/repository/booking"
	catalogRepoPkg "glowdesk/database/repository/catalog"
	staffRepoPkg "glowdesk/database/repository/staff"
	"glowdesk/handlers"
	"glowdesk/middleware"
	"glowdesk/routes"
	availabilitySvc "glowdesk/services/availability"
	bookingSvc "glowdesk/services/booking"
	catalogSvc "glowdesk/services/catalog"
	staffSvc "glowdesk/services/staff"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	cache := utils.GetCacheClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	availRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	bkRepo := bookingRepoPkg.NewMongoBookingRepo()
	svcRepo := catalogRepoPkg.NewMongoServiceRepo()
	usrRepo := staffRepoPkg.NewMongoUserRepo()

	// services.
	engine := bookingSvc.NewDefaultBookingEngine(bkRepo, availRepo, svcRepo, usrRepo, cache)
	handlers.BookingService = engine

	handlers.AvailabilityService = &availabilitySvc.DefaultAvailabilityService{
		Repo:        availRepo,
		CatalogRepo: svcRepo,
		StaffRepo:   usrRepo,
		Admission:   engine,
		Cache:       cache,
	}
	handlers.CatalogService = &catalogSvc.DefaultCatalogService{
		Repo:  svcRepo,
		Cache: cache,
	}
	handlers.StaffService = &staffSvc.DefaultStaffService{
		Repo: usrRepo,
	}

	routes.RegisterRoutes(router)

	utils.StartHealthMonitor(cache, database.MongoClient)
	cron.InitHousekeepingWorker(cron.HousekeepingDeps{
		Bookings:     bkRepo,
		Availability: availRepo,
		Catalog:      svcRepo,
		Staff:        usrRepo,
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
