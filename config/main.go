package config

import (
	"context"
	"time"

	"github.com/akeren/consent-intake/config/router"
	"github.com/akeren/consent-intake/domain/submission"
	"github.com/akeren/consent-intake/internal/log"
	"github.com/akeren/consent-intake/internal/models"
	"github.com/akeren/consent-intake/pkg/constants"
	"github.com/akeren/consent-intake/pkg/utils"
	"gorm.io/gorm"
)

type ApplicationConfig struct {
	// DB is only set when STORAGE_DRIVER=postgres.
	DB              *gorm.DB
	Store           submission.SubmissionRepository
	RouterService   *router.RouterService
	Logger          *log.Logger
	Config          *AppConfig
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RequestTimeout time.Duration
	Store          *StoreConfig
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		RequestTimeout: utils.GetEnvDuration("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		Store:          NewStoreConfig(),
	}
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	ac.Logger.Info("Application cleanup completed")
}

// LoadApplicationConfiguration reads the environment eagerly. A missing store
// URL or access key fails here, before the HTTP server is started.
func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	LoadEnvFiles(logger)

	appConfig := NewAppConfig()

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	if err := appConfig.Store.Validate(); err != nil {
		logger.Error("Store configuration invalid", "error", err)
		return nil, err
	}

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	store, db, err := appConfig.Store.NewStore(logger, nil)
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if db == nil {
			logger.Warn("--auto-migrate ignored; the supabase store is migrated out of band")
		} else if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
			return nil, err
		}
	}

	routerService := router.CreateRouterService(logger, &router.RouterConfig{
		RequestTimeout: appConfig.RequestTimeout,
	})

	logger.Info("Application configuration loaded successfully", "storage_driver", appConfig.Store.Driver)

	return &ApplicationConfig{
		DB:              db,
		Store:           store,
		RouterService:   routerService,
		Logger:          logger,
		Config:          appConfig,
		TracingShutdown: tracingShutdown,
	}, nil
}
