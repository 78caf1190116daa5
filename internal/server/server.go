package server

import (
	"context"
	"fmt"
	"net"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/updateos/binmgr/internal/api/http"
	"github.com/updateos/binmgr/internal/api/middleware"
	"github.com/updateos/binmgr/internal/binmgr"
	"github.com/updateos/binmgr/internal/infrastructure/config"
	"github.com/updateos/binmgr/internal/infrastructure/logging"
	"github.com/updateos/binmgr/internal/infrastructure/monitoring"
	"github.com/updateos/binmgr/internal/mq"
	"github.com/updateos/binmgr/internal/registry"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router   *gin.Engine
	manager  *binmgr.Manager
	registry registry.Registry
	broker   *mq.Broker
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	httpSrv  *nethttp.Server
}

// New creates a server instance from configuration.
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("initializing binary manager",
		zap.String("port", cfg.Server.Port),
		zap.String("storage_dir", cfg.Storage.Dir),
	)

	metrics, promRegistry := monitoring.NewMetrics()

	kernelInfo, err := cfg.Kernel.Info()
	if err != nil {
		return nil, fmt.Errorf("invalid kernel configuration: %w", err)
	}
	var reg *registry.InMemory
	if len(kernelInfo.Partitions) > 0 {
		reg = registry.NewInMemory(&kernelInfo)
		logger.Info("kernel partition set configured",
			zap.Int("partitions", len(kernelInfo.Partitions)),
			zap.Int("in_use", kernelInfo.InUse),
		)
	} else {
		reg = registry.NewInMemory(nil)
		logger.Info("no kernel partition set configured, kernel updates answer NOT_FOUND")
	}

	broker := mq.NewBroker(cfg.Queue.Capacity, logger)

	manager := binmgr.New(binmgr.Config{
		StorageDir: cfg.Storage.Dir,
		DevnameFmt: cfg.Kernel.DevnameFmt,
	}, reg, broker).WithLogger(logger).WithMetrics(metrics)

	handlers := http.NewHandlers(manager, reg, broker, logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	{
		v1.POST("/scan", handlers.Scan)
		v1.POST("/binaries", handlers.CreateEntry)
		v1.POST("/binaries/:name/activate", handlers.Activate)
		v1.GET("/responses/:requester_id", handlers.DrainResponse)
		v1.GET("/slots", handlers.ListSlots)
	}

	return &Server{
		router:   router,
		manager:  manager,
		registry: reg,
		broker:   broker,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Manager returns the lifecycle manager, for boot-time scanning.
func (s *Server) Manager() *binmgr.Manager {
	return s.manager
}

// Run starts serving and blocks until the listener fails or Close is called.
func (s *Server) Run() error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	s.httpSrv = &nethttp.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("binary manager listening", zap.String("addr", addr))
	err := s.httpSrv.ListenAndServe()
	if err == nethttp.ErrServerClosed {
		return nil
	}
	return err
}

// Close shuts the server down gracefully.
func (s *Server) Close() error {
	s.logger.Info("shutting down")
	defer s.logger.Sync() //nolint:errcheck

	if s.httpSrv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}
