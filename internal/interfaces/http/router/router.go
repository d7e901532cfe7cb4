package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sellerbridge/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config holds router construction options
type Config struct {
	// Env selects gin's mode; "production" switches to release mode
	Env string
	// MaxBodySize bounds request bodies, in bytes
	MaxBodySize int64
	// TrustedProxies is passed through to gin
	TrustedProxies []string
	// Logger is used by the request logging and recovery middleware
	Logger *zap.Logger
}

// New builds the gin engine with the standard middleware chain and registers
// every handler under the versioned API group.
func New(cfg Config, registrars ...RouteRegistrar) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
	)
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	api := engine.Group("/api/v1")
	for _, registrar := range registrars {
		registrar.RegisterRoutes(api)
	}

	return engine, nil
}
