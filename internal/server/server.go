package server

import (
	"context"
	"net/http"
	"time"

	"github.com/GriffinCanCode/BrowserKernel/internal/api/middleware"
	"github.com/GriffinCanCode/BrowserKernel/internal/domain/history"
	"github.com/GriffinCanCode/BrowserKernel/internal/domain/kernel"
	"github.com/GriffinCanCode/BrowserKernel/internal/domain/loader"
	"github.com/GriffinCanCode/BrowserKernel/internal/domain/store"
	kernelhttp "github.com/GriffinCanCode/BrowserKernel/internal/http"
	"github.com/GriffinCanCode/BrowserKernel/internal/infrastructure/config"
	"github.com/GriffinCanCode/BrowserKernel/internal/infrastructure/logging"
	"github.com/GriffinCanCode/BrowserKernel/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BrowserKernel/internal/ws"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	store   *store.Store
	history *history.Manager
	loader  *loader.Loader
	log     *logging.Logger
	httpSrv *http.Server
}

// New creates a server instance from configuration
func New(cfg *config.Config) (*Server, error) {
	logCfg := logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	}
	log, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	metrics := monitoring.NewMetrics()
	reporter := logging.NewReporter(log, metrics)

	st := store.New(kernel.New(reporter)).WithMetrics(metrics)
	hist := history.NewManager(cfg.Storage.Path).WithMetrics(metrics)
	ldr := loader.New(loader.Config{
		Timeout:  time.Duration(cfg.Loader.TimeoutSeconds) * time.Second,
		RetryMax: cfg.Loader.RetryMax,
	}, st, hist, log).WithMetrics(metrics)

	// Shell properties come from configuration, before any client connects.
	if cfg.Shell.Enabled {
		st.Dispatch(kernel.SetShellProperties(true, cfg.Shell.ManifestURL))
		if cfg.Shell.InitialURL != "" {
			st.Dispatch(kernel.SetInitialShellURL(cfg.Shell.InitialURL))
		}
	}

	// Hydrate the history log from the persisted copy.
	if items, err := hist.Load(context.Background()); err != nil {
		log.Warn("failed to load persisted history", zap.Error(err))
	} else {
		st.Dispatch(kernel.LoadHistoryThen(items))
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := kernelhttp.NewHandlers(st, ldr, hist, log)
	wsHandler := ws.NewHandler(st, ldr, log).WithMetrics(metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Kernel state
	router.GET("/state", handlers.GetState)
	router.GET("/history", handlers.GetHistory)
	router.POST("/navigate", handlers.Navigate)
	router.POST("/foreground", handlers.Foreground)
	router.POST("/home", handlers.ForegroundHome)
	router.POST("/loading", handlers.SetLoading)
	router.POST("/errors/show", handlers.ShowError)
	router.POST("/tasks/clear", handlers.ClearTask)
	router.POST("/history/clear", handlers.ClearHistory)
	router.POST("/actions", handlers.DispatchAction)

	// WebSocket
	router.GET("/stream", wsHandler.HandleConnection)

	return &Server{
		router:  router,
		store:   st,
		history: hist,
		loader:  ldr,
		log:     log,
	}, nil
}

// Store exposes the dispatcher, mainly for startup wiring and tests.
func (s *Server) Store() *store.Store {
	return s.store
}

// Run starts the server on addr
func (s *Server) Run(addr string) error {
	s.log.Info("Starting browser kernel service", zap.String("addr", addr))
	s.httpSrv = &http.Server{Addr: addr, Handler: s.router}
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts the server down gracefully
func (s *Server) Close() error {
	if s.httpSrv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}
