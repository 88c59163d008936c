package app

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"feedbackpulse/internal/config"
	apierrors "feedbackpulse/internal/errors"
	"feedbackpulse/internal/infrastructure"
	customMiddleware "feedbackpulse/internal/middleware"
	"feedbackpulse/internal/services"
	handlers "feedbackpulse/internal/transport/http"
	"feedbackpulse/internal/validation"
)

var (
	// Version is overridden at link time with -X
	Version = config.AppVersion
	// BuildTime is set at link time with -X
	BuildTime = ""
)

// Application represents the main application container
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	Logger          *slog.Logger
	OTelProviders   *infrastructure.OTelProviders
	Metrics         *infrastructure.FeedbackMetrics
	SystemMetrics   *infrastructure.SystemMetricsCollector
	ErrorHandler    *apierrors.ErrorHandler
	AnalysisService *services.AnalysisService
	HealthService   *services.HealthService
	Templates       *template.Template

	logFile *infrastructure.Logger
}

// NewApplication loads configuration and logging, then builds the application
func NewApplication(templates fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app, err := New(cfg, logger.Logger, templates)
	if err != nil {
		logger.Close()
		return nil, err
	}
	app.logFile = logger
	return app, nil
}

// New wires every component from an already loaded configuration
func New(cfg *config.Config, logger *slog.Logger, templates fs.FS) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", Version))

	otelProviders, err := infrastructure.InitializeOTel(
		infrastructure.NewOTelConfig(cfg.Telemetry, Version), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateFeedbackMetrics(otelProviders.Meter)
	if err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	systemMetrics, err := infrastructure.NewSystemMetricsCollector(
		otelProviders.Meter, cfg.Telemetry.SystemMetricsInterval)
	if err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to create system metrics: %w", err)
	}

	tmpl, err := handlers.ParseTemplates(templates)
	if err != nil {
		_ = otelProviders.Shutdown(context.Background())
		return nil, err
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		SystemMetrics: systemMetrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
		Templates:     tmpl,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	a.AnalysisService = services.NewAnalysisService(a.OTelProviders.Tracer, a.Metrics, a.Logger)

	a.HealthService = services.NewHealthService(Version, BuildTime, a.Logger)
	a.HealthService.RegisterCheck("templates", func(context.Context) error {
		if a.Templates.Lookup("results.html") == nil {
			return errors.New("results template missing")
		}
		return nil
	})
}

// setupRouter builds the chi router and middleware chain.
// Order: RequestID → RealIP → OTel → Logger → Recoverer → Timeout
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(apierrors.RecoveryMiddleware(a.ErrorHandler))
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(chimw.Compress(5, "text/html", "text/csv", "application/json"))

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
				a.ErrorHandler,
			).Handler)
		}

		r.NotFound(a.ErrorHandler.NotFound)
		r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

		a.setupRoutes(r)
	})

	// Prometheus scrape endpoint stays outside the middleware group
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupRoutes registers the page and API routes
func (a *Application) setupRoutes(r chi.Router) {
	uploadValidator := validation.NewUploadValidator(a.Config.Server.MaxUploadBytes, a.Logger)
	uploads := handlers.NewUploadReader(a.Config.Server.MaxUploadBytes, uploadValidator, a.Logger)

	feedbackHandler := handlers.NewFeedbackHandler(a.Templates, a.AnalysisService, uploads,
		config.AppName, a.Logger, a.ErrorHandler)
	apiHandler := handlers.NewAPIHandler(a.AnalysisService, uploads, a.Logger, a.ErrorHandler)
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

	pages := feedbackHandler.Routes()
	api := apiHandler.Routes()
	health := healthHandler.Routes()
	for _, sub := range []chi.Router{pages, api, health} {
		sub.NotFound(a.ErrorHandler.NotFound)
		sub.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)
	}

	r.Mount("/api/health", health)
	r.Get("/api/version", healthHandler.Version)
	r.Mount("/api", api)
	r.Mount("/", pages)
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:           a.Router,
		ReadTimeout:       a.Config.Server.ReadTimeout,
		ReadHeaderTimeout: a.Config.Server.ReadTimeout,
		WriteTimeout:      a.Config.Server.WriteTimeout,
		IdleTimeout:       a.Config.Server.IdleTimeout,
		MaxHeaderBytes:    a.Config.Server.MaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(a.Logger.Handler(), slog.LevelWarn),
	}
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "HTTP server listening",
			slog.String("address", ln.Addr().String()))
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.SystemMetrics.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close log file: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Run listens on the configured port until SIGINT or SIGTERM
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.Server.Addr, err)
	}

	start := time.Now()
	err = a.Serve(ctx, ln)
	a.Logger.Info("Application stopped", slog.Duration("uptime", time.Since(start)))
	return err
}
