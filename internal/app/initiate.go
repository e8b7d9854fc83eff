package app

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgconfig"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkglog"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgmetric"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkgrouter"
	"github.com/SparrowtheDon/email-checker/internal/pkg/pkguid"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func (a *App) initConfig() {
	// Variables already in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path,
		pkgconfig.WithEnv("upstream.api_key", "API_KEY"),
		pkgconfig.WithEnv("server.port", "PORT"),
		pkgconfig.WithEnv("log.level", "LOG_LEVEL"),
		pkgconfig.WithDefault("tz", "UTC"),
		pkgconfig.WithDefault("server.address.http", ":8080"),
		pkgconfig.WithDefault("upstream.timeout", "10s"),
		pkgconfig.WithDefault("modules.verifier.enabled", true),
		pkgconfig.WithDefault("modules.verifier.bulk.concurrency", 1),
		pkgconfig.WithDefault("modules.verifier.upload.max_bytes", 10<<20),
		pkgconfig.WithDefault("cors.allowed_origins", "*"),
		pkgconfig.WithDefault("snowflake.node_id", -1),
	)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	pkglog.SetLevel(cfg.GetString("log.level"))

	if cfg.GetString("upstream.api_key") == "" {
		slog.Warn("upstream api key is empty, verification calls will be rejected")
	}

	a.config = cfg
}

func (a *App) initLibraries() {
	a.uuid = pkguid.NewUUID()

	var (
		snowflake *pkguid.Snowflake
		err       error
	)
	if node := a.config.GetInt("snowflake.node_id"); node >= 0 {
		snowflake, err = pkguid.NewSnowflakeNode(node)
	} else {
		snowflake, err = pkguid.NewSnowflake()
	}
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.snowflake = snowflake

	a.metrics = pkgmetric.New()
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)
	a.router.Use(pkgrouter.MiddlewareMetrics(a.metrics))
	a.router.Handle(http.MethodGet, "/metrics", a.metrics.Handler())

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("cors.allowed_origins"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})

	a.httpServer = &http.Server{
		Addr:              httpAddress(a.config),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// httpAddress prefers server.port (PORT) over server.address.http.
func httpAddress(cfg pkgconfig.Config) string {
	if port := cfg.GetString("server.port"); port != "" {
		return ":" + port
	}
	return cfg.GetString("server.address.http")
}

//nolint:unparam // is always nil
func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn["HTTP Server"] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
