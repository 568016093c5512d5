package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/zenithfinancial/portal/modules/auth"
	"github.com/zenithfinancial/portal/modules/portal"
	"github.com/zenithfinancial/portal/pkg/clientip"
	"github.com/zenithfinancial/portal/pkg/config"
	"github.com/zenithfinancial/portal/pkg/cookie"
	"github.com/zenithfinancial/portal/pkg/environment"
	"github.com/zenithfinancial/portal/pkg/httpserver"
	"github.com/zenithfinancial/portal/pkg/logger"
	"github.com/zenithfinancial/portal/pkg/pg"
	"github.com/zenithfinancial/portal/pkg/ratelimiter"
	"github.com/zenithfinancial/portal/pkg/rbac"
	"github.com/zenithfinancial/portal/pkg/requestid"
	"github.com/zenithfinancial/portal/pkg/session"
	"github.com/zenithfinancial/portal/pkg/telemetry"
	"github.com/zenithfinancial/portal/svc/identity"
	"github.com/zenithfinancial/portal/svc/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "portal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	ctx = environment.WithContext(ctx, cfg.Env)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	slog.SetDefault(log)

	shutdownTracing := telemetry.Setup(ctx, cfg.Telemetry, cfg.Name, cfg.Env.String(), log)
	defer func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.ErrorContext(ctx, "flush traces", logger.Error(err))
		}
	}()

	policy, err := loadPolicy(ctx, cfg.PolicyFile)
	if err != nil {
		return err
	}

	if cfg.enforceEnvironment() {
		log.WarnContext(ctx, "forcing Secure session and state cookies in production")
	}

	if !cfg.Env.IsProduction() && cfg.DB.SlowQueryThreshold == 0 {
		cfg.DB.SlowQueryThreshold = 100 * time.Millisecond
	}
	pool, err := pg.Connect(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, users.Migrations, users.MigrationsDir, cfg.DB, log); err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}
	sessions := session.NewFromConfig(cfg.Session, cookies, session.WithLogger(log))

	idp, err := identity.New(cfg.Identity, identity.WithLogger(log))
	if err != nil {
		return err
	}

	authOpts := []auth.Option{auth.WithLogger(log)}
	if cfg.RateLimit.Enabled() {
		store := ratelimiter.NewMemoryStore()
		defer store.Close()
		bucket, err := ratelimiter.NewBucket(store, cfg.RateLimit)
		if err != nil {
			return err
		}
		authOpts = append(authOpts, auth.WithThrottle(ratelimiter.Middleware(bucket, ratelimiter.ByClientIP, log)))
	}
	authSvc := auth.NewService(cfg.Auth, users.NewPostgresStore(pool), idp, sessions, cookies, authOpts...)

	router := portal.Router(portal.RouterOptions{
		Middleware: []func(http.Handler) http.Handler{
			requestid.Middleware,
			clientip.Middleware,
			environment.Middleware(cfg.Env),
		},
		Gate:     rbac.Gate(policy, sessions, log),
		Auth:     authSvc,
		Pages:    portal.NewPages(sessions, log),
		Liveness: httpserver.Liveness(),
		Readiness: httpserver.Readiness(log, 2*time.Second,
			httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
		),
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, otelhttp.NewHandler(router, cfg.Name))
}

// loadPolicy reads the route policy from path, or uses the built-in one when
// no path is configured. A configured but missing file is an error.
func loadPolicy(ctx context.Context, path string) (rbac.Policy, error) {
	src := rbac.NewStaticSource(rbac.DefaultPolicy())
	if path != "" {
		src = rbac.NewFileSource(path)
	}
	return rbac.LoadPolicy(ctx, src)
}
