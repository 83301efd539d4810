package api

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/coperex/case-analysis/docs"
	"github.com/coperex/case-analysis/internal/api/handler"
	"github.com/coperex/case-analysis/internal/api/middleware"
	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/ports"
	"github.com/coperex/case-analysis/internal/core/validation"
)

// BasePath prefixes every API route.
const BasePath = "/CoperexCaseAnalysis/v1"

const contentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; " +
	"connect-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'"

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Log               zerolog.Logger
	Validator         *validation.Validator
	AuthService       ports.AuthService
	EnterpriseService ports.EnterpriseService
	Limiter           middleware.Limiter
	HealthChecks      []handler.DependencyCheck
	CORSOrigins       []string
	TrustedProxies    []*net.IPNet
	ReportDir         string
	ReportBaseURL     string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator(d.Validator)
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.IPExtractor = clientIPExtractor(d.TrustedProxies)

	// HTTP metrics live in their own registry so several routers can coexist
	// in one process; /metrics also exposes the default registry.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "0",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		ContentSecurityPolicy: contentSecurityPolicy,
		ReferrerPolicy:        "no-referrer",
	}))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "enterprise_registry",
		Registerer: reg,
	}))

	limited := middleware.RateLimit(d.Limiter, d.Log)

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.Validator)
	enterpriseHandler := handler.NewEnterpriseHandler(d.EnterpriseService, d.Validator, d.Log)
	guard := []echo.MiddlewareFunc{middleware.Auth(d.AuthService), middleware.RBAC(domain.RoleAdmin)}

	v1 := e.Group(BasePath, limited)

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Enterprise routes (admin only) ---
	enterprise := v1.Group("/enterprise", guard...)
	enterprise.POST("/registerEnterprise", enterpriseHandler.Register)
	enterprise.GET("/list", enterpriseHandler.List)
	enterprise.PUT("/updateEnterprise/:uid", enterpriseHandler.Update)
	enterprise.GET("/generateReport", enterpriseHandler.GenerateReport)

	// --- Generated reports ---
	e.Group(routePath(d.ReportBaseURL), limited).Static("/", d.ReportDir)

	// --- Docs & metrics ---
	e.GET("/api-docs/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.HealthChecks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}

// routePath extracts the path of a possibly absolute base URL.
func routePath(base string) string {
	if u, err := url.Parse(base); err == nil && u.Path != "" {
		base = u.Path
	}
	return "/" + strings.Trim(base, "/")
}

// clientIPExtractor keys clients by socket address unless the request comes
// through one of the trusted proxies, in which case X-Forwarded-For is walked
// back to the first untrusted hop.
func clientIPExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, r := range trusted {
		opts = append(opts, echo.TrustIPRange(r))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
