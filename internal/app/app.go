package app

import (
	"fmt"
	"time"

	"jobboard_backend/internal/config"
	"jobboard_backend/internal/email"
	"jobboard_backend/internal/handlers"
	"jobboard_backend/internal/logger"
	"jobboard_backend/internal/middleware"
	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/routes"
	"jobboard_backend/internal/services"
	"jobboard_backend/internal/storage"
	"jobboard_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	case "mysql":
		return gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PendingUser{},
		&models.Token{},
		&models.JobAdvert{},
		&models.JobApplication{},
		&models.Restaurant{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, storageInstance)
	appHandlers := initializeHandlers(serviceContainer, storageInstance)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage) *services.ServiceContainer {
	emailService := initializeEmailProvider(cfg)

	userRepo := repositories.NewUserRepository()
	tokenRepo := repositories.NewTokenRepository()
	advertRepo := repositories.NewAdvertRepository()
	applicationRepo := repositories.NewApplicationRepository()
	restaurantRepo := repositories.NewRestaurantRepository()

	authService := services.NewAuthService(userRepo, tokenRepo, emailService)
	advertService := services.NewAdvertService(advertRepo)
	applicationService := services.NewApplicationService(applicationRepo, advertRepo, storageInstance, emailService)
	restaurantService := services.NewRestaurantService(restaurantRepo)

	return &services.ServiceContainer{
		AuthService:        authService,
		AdvertService:      advertService,
		ApplicationService: applicationService,
		RestaurantService:  restaurantService,
		EmailService:       emailService,
		Storage:            storageInstance,
	}
}

func initializeEmailProvider(cfg *config.Config) email.Provider {
	renderer := email.NewTemplateManager()
	if err := renderer.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
		logger.Fatal("Failed to load email templates", "error", err, "dir", cfg.Email.TemplatesDir)
	}
	logger.Info("Email templates loaded", "templates", renderer.TemplateNames())

	provider := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		Timeout:   30 * time.Second,
	}, renderer)

	if err := provider.Validate(); err != nil {
		logger.Fatal("Invalid email configuration", "error", err)
	}

	return provider
}

func initializeHandlers(serviceContainer *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	applicationRepo := repositories.NewApplicationRepository()

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, serviceContainer.AuthService),
		AdvertHandler:      handlers.NewAdvertHandler(baseHandler, serviceContainer.AdvertService, serviceContainer.ApplicationService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, serviceContainer.ApplicationService),
		RestaurantHandler:  handlers.NewRestaurantHandler(baseHandler, serviceContainer.RestaurantService),
		FileHandler:        handlers.NewFileHandler(baseHandler, storageInstance, applicationRepo),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
