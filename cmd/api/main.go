// @title        Coperex Case Analysis API
// @version      1.0
// @description  Administration API for registering trade-fair enterprises and exporting reports.
// @BasePath     /CoperexCaseAnalysis/v1
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/coperex/case-analysis/internal/api"
	"github.com/coperex/case-analysis/internal/api/handler"
	"github.com/coperex/case-analysis/internal/core/service"
	"github.com/coperex/case-analysis/internal/core/validation"
	mongodb "github.com/coperex/case-analysis/internal/infrastructure/db/mongo"
	redisdb "github.com/coperex/case-analysis/internal/infrastructure/db/redis"
	"github.com/coperex/case-analysis/internal/infrastructure/report"
	"github.com/coperex/case-analysis/internal/pkg/config"
	"github.com/coperex/case-analysis/pkg/logger"
)

const serviceName = "coperex-case-analysis"

func main() {
	// best-effort: a missing .env leaves the real environment untouched
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: serviceName})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Service: serviceName,
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("goodbye")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		OpTimeout:    cfg.Redis.OpTimeout,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	if err := os.MkdirAll(cfg.Report.Dir, 0o755); err != nil {
		return err
	}

	trusted, err := cfg.TrustedProxyRanges()
	if err != nil {
		return err
	}

	// --- Core ---
	now := time.Now
	schema := validation.New(now)

	adminRepo := mongodb.NewAdminRepository(db, schema)
	enterpriseRepo := mongodb.NewEnterpriseRepository(db, schema)
	if err := adminRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := enterpriseRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	authService := service.NewAuthService(
		adminRepo,
		service.NewArgon2Hasher(),
		service.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL),
		log,
	)
	if err := authService.EnsureDefaultAdmin(ctx, service.DefaultAdmin{
		Name:     cfg.DefaultAdmin.Name,
		Email:    cfg.DefaultAdmin.Email,
		Password: cfg.DefaultAdmin.Password,
		Phone:    cfg.DefaultAdmin.Phone,
	}); err != nil {
		return err
	}

	reports := report.NewXLSXGenerator(cfg.Report.Dir, cfg.Report.BaseURL, log)
	enterpriseService := service.NewEnterpriseService(enterpriseRepo, reports, log, now)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Log:               log,
		Validator:         schema,
		AuthService:       authService,
		EnterpriseService: enterpriseService,
		Limiter:           redisdb.NewRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window),
		HealthChecks: []handler.DependencyCheck{
			{Name: "mongodb", Ping: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: trusted,
		ReportDir:      cfg.Report.Dir,
		ReportBaseURL:  cfg.Report.BaseURL,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("base_path", api.BasePath).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
