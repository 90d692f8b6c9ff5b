package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/homerender/internal/config"
	"github.com/templui/homerender/internal/db"
	"github.com/templui/homerender/internal/generation"
	"github.com/templui/homerender/internal/repository"
	"github.com/templui/homerender/internal/service"
	"github.com/templui/homerender/internal/session"
	"github.com/templui/homerender/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	Storage          storage.Storage
	Sessions         *session.Manager
	AuthService      *service.AuthService
	UserService      *service.UserService
	ImageService     *service.ImageService
	RenderingService *service.RenderingService
	GalleryService   *service.GalleryService
}

// New builds every shared component once. Generation settings are checked
// on each request, so a missing key does not stop the server from starting.
func New(cfg *config.Config) (*App, error) {
	database, err := db.Open(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	fileStorage, err := storage.New(cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	generator, err := generation.New(cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}

	return Wire(cfg, database, fileStorage, generator), nil
}

// Wire assembles repositories and services on top of already opened
// infrastructure.
func Wire(cfg *config.Config, database *sqlx.DB, fileStorage storage.Storage, generator generation.Generator) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	renderingRepository := repository.NewRenderingRepository(database)

	// Services
	imageService := service.NewImageService(fileStorage)
	authService := service.NewAuthService(userRepository, cfg.SecretKey, cfg.CookieSecure, cfg.JWTExpiry)

	return &App{
		Cfg:              cfg,
		DB:               database,
		Storage:          fileStorage,
		Sessions:         session.NewManager(cfg.SecretKey, cfg.SessionExpiry, cfg.CookieSecure),
		AuthService:      authService,
		UserService:      service.NewUserService(userRepository, authService),
		ImageService:     imageService,
		RenderingService: service.NewRenderingService(renderingRepository, imageService, generator),
		GalleryService:   service.NewGalleryService(renderingRepository, imageService),
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
