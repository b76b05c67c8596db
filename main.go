package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkbook/config"
	"inkbook/database"
	appointmentRepo "inkbook/database/repository/appointment"
	catalogRepo "inkbook/database/repository/catalog"
	sessionRepo "inkbook/database/repository/session"
	"inkbook/handlers"
	"inkbook/routes"
	"inkbook/services/appointment"
	"inkbook/services/backup"
	"inkbook/services/bot"
	"inkbook/services/catalog"
	"inkbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer utils.Sync()

	if err := config.AppConfig.Validate(); err != nil {
		logger.Sugar().Fatalf("main: invalid configuration: %v", err)
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.InitDB(); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	logger.Info("main: connected to MongoDB", zap.String("database", config.AppConfig.DatabaseName))

	if err := utils.InitRedis(); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// repositories.
	db := database.Database()
	sessions, err := sessionRepo.NewMongoSessionRepo(db)
	if err != nil {
		logger.Sugar().Fatalf("main: session repository: %v", err)
	}
	appointments, err := appointmentRepo.NewMongoAppointmentRepo(db)
	if err != nil {
		logger.Sugar().Fatalf("main: appointment repository: %v", err)
	}
	catalogStore, err := catalogRepo.NewMongoCatalogRepo(db)
	if err != nil {
		logger.Sugar().Fatalf("main: catalog repository: %v", err)
	}

	// services.
	var locker bot.KeyedLocker
	if config.AppConfig.LockBackend == config.LockBackendRedis {
		ttl := time.Duration(config.AppConfig.LockTTLSeconds) * time.Second
		locker = bot.NewRedisLocker(utils.LockClient, ttl)
	} else {
		locker = bot.NewMemoryLocker()
	}
	botService := bot.NewBotService(sessions, appointments, locker, logger)
	botService.Timeout = time.Duration(config.AppConfig.BotTimeoutSeconds) * time.Second

	var listingCache catalog.ListingCache
	if utils.CacheClient != nil {
		ttl := time.Duration(config.AppConfig.CatalogCacheTTLSeconds) * time.Second
		listingCache = catalog.NewRedisListingCache(utils.CacheClient, ttl)
	}
	catalogService := catalog.NewCatalogService(catalogStore, listingCache, logger)
	appointmentService := &appointment.DefaultAppointmentService{Repo: appointments}
	exporter := &backup.Exporter{Catalog: catalogStore, Appointments: appointments, Sessions: sessions}

	// handlers.
	botHandler := handlers.NewBotHandler(botService, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, logger)
	adminHandler := handlers.NewAdminHandler(exporter, logger)
	healthHandler := &handlers.HealthHandler{
		MongoClient:  database.MongoClient,
		RedisClients: utils.RedisClients(),
	}

	handlerBundle := &handlers.HandlerBundle{
		AdminSecret:       config.AppConfig.AdminPassword,
		MaxRequestsPerMin: config.AppConfig.MaxRequestsPerMin,
		CORSAllowOrigins:  config.AppConfig.CORSAllowOrigins,

		Root:   healthHandler.Root,
		Health: healthHandler.Health,

		ListServices:  catalogHandler.ListServices,
		ListPortfolio: catalogHandler.ListPortfolio,

		CreateAppointment: appointmentHandler.CreateAppointment,
		BotUpdate:         botHandler.HandleUpdate,

		ListAppointments: appointmentHandler.ListAppointments,
		AddService:       catalogHandler.AddService,
		AddPortfolioItem: catalogHandler.AddPortfolioItem,
		ExportBackup:     adminHandler.ExportBackup,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
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
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	utils.CloseRedis()
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
