// Package server wires handlers, middleware and routes into a gin engine.
package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/msquare-lighting/msquare-api/config"
	"github.com/msquare-lighting/msquare-api/internal/handlers"
	"github.com/msquare-lighting/msquare-api/internal/middleware"
	"github.com/msquare-lighting/msquare-api/internal/services"
	"github.com/msquare-lighting/msquare-api/pkg/metrics"
)

// Dependencies are the services the router exposes. CatalogueService may be
// nil, in which case /catalogue is not mounted.
type Dependencies struct {
	Config            *config.Config
	ContactService    services.ContactServiceInterface
	NewsletterService services.NewsletterServiceInterface
	CatalogueService  services.CatalogueServiceInterface
	APIRateLimiter    *middleware.RateLimiter
	MaxBodySize       int64
}

// routeCORS maps each mounted path to its CORS middleware. gin answers a
// known path with an unserved verb through NoMethod, which runs outside the
// route's group, so the headers are applied from here.
type routeCORS map[string]gin.HandlerFunc

func (r routeCORS) handle(c *gin.Context) {
	if cors, ok := r[strings.TrimSuffix(c.Request.URL.Path, "/")]; ok {
		cors(c)
	}
}

// NewRouter builds the HTTP handler for the API
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	maxBody := deps.MaxBodySize
	if maxBody <= 0 {
		maxBody = middleware.DefaultMaxBodySize
	}

	corsByPath := routeCORS{}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(handlers.NotFound)
	router.NoMethod(corsByPath.handle, handlers.MethodNotAllowed)

	// Global middleware
	router.Use(gin.CustomRecovery(handlers.Recovery))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	corsCfg := middleware.CORSConfig{AllowedOrigins: cfg.Server.AllowedOrigins}
	var throttle gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.APIRateLimiter != nil {
		throttle = deps.APIRateLimiter.Middleware()
	}
	bodyLimit := middleware.BodySizeLimitMiddleware(maxBody)

	api := router.Group(apiPrefix(cfg.Server.APIPrefix))

	// mount opens a route group answering method and OPTIONS. Any other
	// verb gets a 405 from NoMethod with the same CORS headers.
	mount := func(path, method string) *gin.RouterGroup {
		cors := middleware.CORS(corsCfg, method, http.MethodOptions)
		group := api.Group(path, cors, throttle)
		corsByPath[group.BasePath()] = cors
		group.OPTIONS("", handlers.Preflight)
		return group
	}

	contactHandler := handlers.NewContactHandler(deps.ContactService)
	mount("/contact", http.MethodPost).POST("", bodyLimit, contactHandler.Submit)

	subscribeHandler := handlers.NewSubscribeHandler(deps.NewsletterService)
	mount("/subscribe", http.MethodPost).POST("", bodyLimit, subscribeHandler.Subscribe)

	healthHandler := handlers.NewHealthHandler(cfg.Server.AppEnv)
	mount("/health", http.MethodGet).GET("", healthHandler.Healthcheck)

	if deps.CatalogueService != nil {
		catalogueHandler := handlers.NewCatalogueHandler(deps.CatalogueService)
		mount("/catalogue", http.MethodGet).GET("", catalogueHandler.List)
	}

	return router
}

func apiPrefix(p string) string {
	p = "/" + strings.Trim(p, "/")
	if p == "/" {
		return ""
	}
	return p
}
