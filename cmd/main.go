package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"github.com/puimuri/trainer/internal/adapters/http/api"
	"github.com/puimuri/trainer/internal/adapters/http/site"
	"github.com/puimuri/trainer/internal/adapters/http/swagger"
	service "github.com/puimuri/trainer/internal/app"
	"github.com/puimuri/trainer/internal/config"
	"github.com/puimuri/trainer/pkg/logger"
	"github.com/puimuri/trainer/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.InitWith(os.Stdout, cfg.LogFormat); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Named("main")
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(cfg)
	if err != nil {
		log.Error(ctx, "failed to build service", logger.Error(err))
		return
	}

	srv := newServer(cfg, newHandler(ctx, cfg, svc))

	go metrics.Default().RunSystemCollector(ctx)

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(ctx, "HTTP server failed", logger.Error(err))
		}
	}()

	// Blocks until SIGINT/SIGTERM, then runs every operation within the timeout.
	wait := gfshutdown.GracefulShutdown(ctx, shutdownTimeout, map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			log.Info(ctx, "shutting down server...")
			return srv.Shutdown(ctx)
		},
		"system-metrics": func(context.Context) error {
			cancel()
			return nil
		},
	})

	code := <-wait
	log.Info(context.Background(), "server stopped", logger.Int("exit_code", code))
	_ = logger.Sync()
	os.Exit(code)
}

// newService wires the trainer service from the loaded configuration.
func newService(cfg *config.Config) (*service.Service, error) {
	builderCfg, err := cfg.BuilderConfig()
	if err != nil {
		return nil, err
	}

	opts := []service.Option{
		service.WithLogger(logger.Named("trainer")),
		service.WithBuilderConfig(builderCfg),
		service.WithGradeTolerance(cfg.GradeTolerance),
	}
	// A zero seed means "seed from the clock".
	if cfg.Seed != 0 {
		opts = append(opts, service.WithSeed(cfg.Seed))
	}
	return service.New(opts...), nil
}

// newHandler registers every route and wraps the mux in the request ID and
// access log middleware.
func newHandler(ctx context.Context, cfg *config.Config, svc *service.Service) http.Handler {
	mux := http.NewServeMux()

	api.NewServer(svc, svc).Register(ctx, mux)
	swagger.Register(ctx, mux)
	site.Register(ctx, mux, cfg.FrontendDir)

	return api.RequestID(api.AccessLog(logger.Named("http"), mux))
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
