package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yansassi/hecho-adm-sub001/app/controller"
	"github.com/yansassi/hecho-adm-sub001/app/router"
	"github.com/yansassi/hecho-adm-sub001/config"
	"github.com/yansassi/hecho-adm-sub001/db"
	"github.com/yansassi/hecho-adm-sub001/pdf"
	"github.com/yansassi/hecho-adm-sub001/repository"
	"github.com/yansassi/hecho-adm-sub001/service"
)

const (
	generationTimeout = 5 * time.Minute
	coverTimeout      = 45 * time.Second
)

// App holds the wired HTTP handler and the resources to release on shutdown
type App struct {
	Handler http.Handler
	closers []func() error
}

// Close releases the database connection and the cache client
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{}
	sugar := log.Sugar()

	// Initialize database connection
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	if err := db.InitDB(ctx, dsn, log); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	a.closers = append(a.closers, db.CloseDB)

	// Initialize Drive service when credentials are configured
	var drive service.DriveServiceInterface
	if cfg.GoogleCredentialsPath != "" {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath)
		if err != nil {
			sugar.Warnf("⚠️  Drive disabled, Drive links will be fetched over HTTP: %v", err)
		} else {
			drive = driveService
		}
	}

	cache, err := newImageCache(ctx, cfg, a)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	sugar.Infof("📦 Image cache: %s", cfg.ImageCache)

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db.DB, log)
	promotionRepo := repository.NewPromotionRepository(db.DB, log)
	bestSellerRepo := repository.NewBestSellerRepository(db.DB, log)

	// Initialize services
	proxyService := service.NewImageProxyService(cache, drive, &http.Client{Timeout: cfg.ImageFetchTimeout}, log)
	resolver := service.NewImageResolver(cfg.ImageProxyURL, cfg.ImageFetchTimeout, &http.Client{}, log)
	cover := service.NewCoverRenderer(cfg.ChromePath, coverTimeout, log)
	generator := pdf.NewGenerator(pdf.Config{
		LogoURL:      cfg.LogoURL,
		LogoWidthPx:  cfg.LogoWidthPx,
		LogoHeightPx: cfg.LogoHeightPx,
		SiteLabel:    cfg.SiteLabel,
		Author:       cfg.Author,
		Location:     cfg.Location(),
	}, resolver, cover, log)
	catalogService := service.NewCatalogService(catalogRepo, promotionRepo, bestSellerRepo, generator, log)

	// Create controllers
	controllers := &router.Controllers{
		Catalog:    controller.NewCatalogController(catalogService, generationTimeout, log),
		ImageProxy: controller.NewImageProxyController(proxyService, log),
	}

	a.Handler = router.SetupRoutes(controllers)
	return a, nil
}

func newImageCache(ctx context.Context, cfg *config.Config, a *App) (service.ImageCache, error) {
	switch cfg.ImageCache {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		a.closers = append(a.closers, client.Close)
		return service.NewRedisCache(client, cfg.ImageCacheTTL), nil
	case "none":
		return service.NoopCache{}, nil
	default:
		return service.NewDiskCache(cfg.ImageCacheDir)
	}
}
