package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sellerbridge/backend/internal/application/channelsync"
	"github.com/sellerbridge/backend/internal/domain/channel"
	"github.com/sellerbridge/backend/internal/infrastructure/commerce"
	"github.com/sellerbridge/backend/internal/infrastructure/config"
	"github.com/sellerbridge/backend/internal/infrastructure/logger"
	"github.com/sellerbridge/backend/internal/infrastructure/mapping"
	"github.com/sellerbridge/backend/internal/infrastructure/scraper"
	"github.com/sellerbridge/backend/internal/interfaces/http/handler"
	"github.com/sellerbridge/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting SellerBridge Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// SKU mappings
	store := mapping.NewInMemoryStore(nil)
	if cfg.Mappings.File != "" {
		mappings, err := mapping.LoadFile(cfg.Mappings.File)
		if err != nil {
			log.Fatal("Failed to load SKU mappings", zap.Error(err))
		}
		store.Replace(mappings)
		log.Info("SKU mappings loaded",
			zap.String("file", cfg.Mappings.File),
			zap.Int("count", store.Len()))
	}

	// Channel adapter factory over the sealed credential blobs
	cipher, err := commerce.NewSecretCipher(cfg.Channels.SecretKey)
	if err != nil {
		log.Fatal("Failed to initialize secret cipher", zap.Error(err))
	}
	factory := commerce.NewFactory(cipher, log.Named("commerce"))
	factory.SetBaseURLOverride(channel.PlatformCodeAbly, cfg.Channels.AblyBaseURL)
	factory.SetBaseURLOverride(channel.PlatformCodeZigzag, cfg.Channels.ZigzagBaseURL)
	syncService := channelsync.NewSyncService(factory, store, log.Named("channelsync"))

	// Browser-automation scrape service for the channel without an API
	var scrapeService *scraper.Service
	var browserPool *scraper.BrowserPool
	if cfg.Scraper.Enabled {
		browserPool = scraper.NewBrowserPool(&scraper.BrowserConfig{
			Headless:  !cfg.Scraper.Headed,
			NoSandbox: cfg.Scraper.NoSandbox,
			Logger:    log.Named("browser"),
		})
		defer func() {
			if err := browserPool.Close(); err != nil {
				log.Error("Error closing browser pool", zap.Error(err))
			}
		}()

		scrapeService, err = scraper.NewService(browserPool, &scraper.MakeshopConfig{
			EntryURL:          cfg.Scraper.EntryURL,
			LoginEndpoint:     cfg.Scraper.LoginEndpoint,
			ShopDomain:        cfg.Scraper.ShopDomain,
			UserID:            cfg.Scraper.UserID,
			Password:          cfg.Scraper.Password,
			NavigationTimeout: cfg.Scraper.NavigationTimeout,
			SettleDelay:       cfg.Scraper.SettleDelay,
			MaxPages:          cfg.Scraper.MaxPages,
		}, log.Named("scraper"))
		if err != nil {
			log.Fatal("Failed to initialize scrape service", zap.Error(err))
		}
	} else {
		log.Info("Scraper disabled by configuration")
	}

	// HTTP wiring
	engine, err := router.New(router.Config{
		Env:            cfg.App.Env,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		Logger:         log.Named("http"),
	},
		handler.NewSystemHandler(cfg.App.Name),
		handler.NewSyncHandler(syncService, cfg.Channels.Secrets),
		handler.NewWebhookHandler(syncService, cfg.Channels.Secrets, log.Named("webhook")),
		handler.NewScrapeHandler(scrapeService),
	)
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
