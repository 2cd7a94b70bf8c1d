package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/msquare-lighting/msquare-api/config"
	"github.com/msquare-lighting/msquare-api/internal/cache"
	"github.com/msquare-lighting/msquare-api/internal/catalogue"
	"github.com/msquare-lighting/msquare-api/internal/middleware"
	"github.com/msquare-lighting/msquare-api/internal/notify"
	"github.com/msquare-lighting/msquare-api/internal/ratelimit"
	"github.com/msquare-lighting/msquare-api/internal/server"
	"github.com/msquare-lighting/msquare-api/internal/services"
	"github.com/msquare-lighting/msquare-api/pkg/logger"
	"github.com/msquare-lighting/msquare-api/pkg/mailer"
	"github.com/msquare-lighting/msquare-api/pkg/profiling"
	"github.com/msquare-lighting/msquare-api/pkg/tracing"
)

// API-wide throttle in front of every route: 10 req/sec, burst of 20
const (
	apiRate  = rate.Limit(10)
	apiBurst = 20
)

// newLimiter picks the contact form's fixed-window store
func newLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, func(), error) {
	policy := ratelimit.Policy{Limit: cfg.RateLimit.ContactMax, Window: cfg.RateLimit.ContactWindow}

	if cfg.RateLimit.Backend != "redis" {
		logger.Info("Contact rate limiter using in-memory store",
			zap.Int("limit", policy.Limit),
			zap.Duration("window", policy.Window))
		return ratelimit.NewMemoryStore(policy), func() {}, nil
	}

	client, err := ratelimit.DialRedis(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Contact rate limiter using Redis store",
		zap.Int("limit", policy.Limit),
		zap.Duration("window", policy.Window))

	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Error("Failed to close Redis client", zap.Error(err))
		}
	}
	return ratelimit.NewRedisStore(client, policy, ratelimit.WithKeyPrefix(cfg.Redis.KeyPrefix)), closeFn, nil
}

// newNotifier mails submissions when SMTP credentials are set and logs them
// otherwise.
func newNotifier(cfg *config.Config) (notify.Notifier, error) {
	if !cfg.MailConfigured() {
		logger.Info("Email credentials not configured, contact submissions will be logged")
		return notify.NewLogNotifier(logger.Log), nil
	}

	m, err := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.User,
		Password: cfg.Email.Password,
		Timeout:  cfg.Email.Timeout,
	})
	if err != nil {
		return nil, err
	}

	return notify.NewMailNotifier(m, notify.MailConfig{
		From:          cfg.SenderAddress(),
		OperatorEmail: cfg.Email.OperatorEmail,
		SiteURL:       cfg.Server.ClientURL,
	}), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// GIN_MODE=debug also gets the console encoder
	logEnv := cfg.Server.AppEnv
	if cfg.IsDevelopment() {
		logEnv = "development"
	}
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: logEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting M-Square Lighting API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.AppEnv,
		Endpoint:          cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.InitProfiler(profiling.Config{
		Enabled:        cfg.Profiling.Enabled,
		Endpoint:       cfg.Profiling.Endpoint,
		AppName:        cfg.Profiling.AppName,
		SampleTypes:    cfg.Profiling.SampleTypes,
		UploadInterval: time.Duration(cfg.Profiling.UploadIntervalSeconds) * time.Second,
		ServiceName:    cfg.Observability.ServiceName,
		Namespace:      cfg.Observability.ServiceNamespace,
		Version:        cfg.Observability.ServiceVersion,
		InstanceID:     cfg.Observability.ServiceInstanceID,
		Environment:    cfg.Server.AppEnv,
	})
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter, closeLimiter, err := newLimiter(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize contact rate limiter", zap.Error(err))
	}
	defer closeLimiter()

	notifier, err := newNotifier(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize notifier", zap.Error(err))
	}

	var catalogueService services.CatalogueServiceInterface
	if cfg.Catalogue.Path != "" {
		catalogueCache := cache.NewCatalogueCache(catalogue.FileSource{Path: cfg.Catalogue.Path}, cfg.Catalogue.TTL)
		// The endpoint answers 503 until a reload succeeds
		if err := catalogueCache.Initialize(ctx); err != nil {
			logger.Warn("Catalogue unavailable at startup", zap.Error(err))
		}
		catalogueService = services.NewCatalogueService(catalogueCache)
	}

	gin.SetMode(cfg.Server.GinMode)
	router := server.NewRouter(server.Dependencies{
		Config:            cfg,
		ContactService:    services.NewContactService(limiter, notifier),
		NewsletterService: services.NewNewsletterService(),
		CatalogueService:  catalogueService,
		APIRateLimiter:    middleware.NewRateLimiter(ctx, apiRate, apiBurst),
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Covers two SMTP dispatches at EMAIL_TIMEOUT each
		WriteTimeout:   2*cfg.Email.Timeout + 10*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
