package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourhub/config"
	"tourhub/database"
	"tourhub/database/repository"
	"tourhub/handlers"
	"tourhub/middleware"
	"tourhub/routes"
	"tourhub/services/authz"
	"tourhub/services/booking"
	"tourhub/services/cascade"
	"tourhub/services/media"
	"tourhub/services/payment"
	"tourhub/services/session"
	"tourhub/services/stats"
	"tourhub/services/story"
	"tourhub/services/tourpackage"
	"tourhub/services/user"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	mongoClient, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.DatabaseName)
	logger.Info("Connected to MongoDB", zap.String("database", cfg.DatabaseName))

	redisClient, err := utils.NewAuthCacheClient(cfg)
	if err != nil {
		logger.Fatal("main: failed to connect to Redis", zap.Error(err))
	}

	// repositories.
	repos, err := repository.NewMongoRepositories(db)
	if err != nil {
		logger.Fatal("main: failed to initialize repositories", zap.Error(err))
	}

	// services.
	var revocations session.RevocationStore
	if redisClient != nil {
		revocations = session.NewRedisRevocationStore(redisClient)
		logger.Info("Session revocation enabled")
	}
	sessionService := session.NewSessionService(utils.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL), revocations, logger)
	resolver := authz.NewStoreRoleResolver(repos.Users)

	mode := cascade.ParseMode(cfg.CascadeMode)
	coordinator := cascade.NewCoordinator(repos.Users, repos.Bookings, repos.Stories, database.NewMongoTransactor(mongoClient), mode, logger)

	svc := handlers.Services{
		Sessions: sessionService,
		Resolver: resolver,
		Users:    user.NewUserService(repos.Users, logger),
		Cascade:  coordinator,
		Stats:    stats.NewAggregator(repos),
		Packages: tourpackage.NewPackageService(repos.Packages, logger),
		Bookings: booking.NewBookingService(repos.Bookings, repos.Users, logger),
		Gateway:  payment.NewStripeGateway(cfg.StripeKey, logger),
		Stories:  story.NewStoryService(repos.Stories, repos.Users, logger),
		Health: func(ctx context.Context) utils.HealthStatus {
			return utils.CheckHealth(ctx, mongoClient, redisClient)
		},
	}
	if cfg.CloudinaryEnabled() {
		mediaService, err := media.NewCloudinaryMediaService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, logger)
		if err != nil {
			logger.Fatal("main: failed to initialize cloudinary media service", zap.Error(err))
		}
		svc.Media = mediaService
	}

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(svc)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, cfg.AllowedOrigins())

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s (cascade mode %s)...", srv.Addr, mode)
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
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
