package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/session"
	"storefront/internal/usecase"
	"storefront/pkg/db"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	logger.Info("Starting storefront service...")

	var (
		userRepo     domain.UserRepository
		categoryRepo domain.CategoryRepository
		productRepo  domain.ProductRepository
		orderRepo    domain.OrderRepository
	)

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()
		logger.Info("Database connection established.")

		userRepo = repository.NewPostgresUserRepository(database, logger)
		categoryRepo = repository.NewPostgresCategoryRepository(database, logger)
		productRepo = repository.NewPostgresProductRepository(database, logger)
		orderRepo = repository.NewPostgresOrderRepository(database, logger)
	} else {
		userRepo = repository.NewMemoryUserRepository(logger)
		categoryRepo = repository.NewMemoryCategoryRepository(logger)
		productRepo = repository.NewMemoryProductRepository(logger)
		orderRepo = repository.NewMemoryOrderRepository(logger)

		if cfg.SeedData {
			if err := repository.Seed(userRepo, categoryRepo, productRepo); err != nil {
				logger.Fatalf("Failed to seed demo data: %v", err)
			}
			logger.Info("Demo data seeded.")
		}
	}
	logger.Info("Repositories initialized.")

	catalogUseCase := usecase.NewCatalogUseCase(productRepo, categoryRepo, logger)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo, logger)
	userUseCase := usecase.NewUserUseCase(userRepo, logger)
	logger.Info("Use cases initialized.")

	sessions := session.NewStore(cfg.SessionTTL)
	requireAuth := middleware.RequireAuth(sessions, userRepo, logger)
	requireAdmin := middleware.RequireAdmin(logger)

	authHandler := delivery.NewAuthHandler(userUseCase, sessions, int(cfg.SessionTTL.Seconds()), logger)
	productHandler := delivery.NewProductHandler(catalogUseCase, logger)
	categoryHandler := delivery.NewCategoryHandler(catalogUseCase, logger)
	orderHandler := delivery.NewOrderHandler(orderUseCase, logger)
	logger.Info("Handlers initialized.")

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	api := router.Group("/api")
	authHandler.RegisterRoutes(api, requireAuth)
	productHandler.RegisterRoutes(api, requireAuth, requireAdmin)
	categoryHandler.RegisterRoutes(api, requireAuth, requireAdmin)
	orderHandler.RegisterRoutes(api, requireAuth, requireAdmin)
	logger.Info("API routes registered.")

	logger.Infof("Starting server on %s", cfg.HTTPPort)
	if err := router.Run(cfg.HTTPPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
