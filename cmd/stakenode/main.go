// Command stakenode runs the stake-accounting engine as an HTTP/websocket
// service: it owns the account ledger, the shared stake history, and the
// optional analytics and archive side tables, and exposes them over the
// routes in package rpc.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stakeengine/config"
	"stakeengine/historydb"
	"stakeengine/observability/logging"
	"stakeengine/observability/otel"
	"stakeengine/rpc"
	"stakeengine/storage"
)

func main() {
	configFile := flag.String("config", "./config.toml", "path to the stake engine configuration file")
	listenAddr := flag.String("listen", ":8080", "HTTP listen address")
	dataDir := flag.String("data-dir", "./data/stakedb", "LevelDB directory for persisted stake accounts")
	historyDBPath := flag.String("historydb", "./data/history.sqlite", "sqlite path for the analytics read-model (':memory:' for ephemeral)")
	memOnly := flag.Bool("mem-only", false, "use an in-memory store instead of LevelDB (for local testing)")
	rateLimitPerSec := flag.Float64("rate-limit-per-second", 20, "per-caller rate limit for mutating endpoints, 0 disables")
	rateLimitBurst := flag.Int("rate-limit-burst", 40, "per-caller burst allowance for mutating endpoints")
	otlpEndpoint := flag.String("otlp-endpoint", "", "OTLP HTTP endpoint for traces/metrics; empty disables tracing")
	env := flag.String("env", "", "deployment environment tag for logs and traces")
	logFile := flag.String("log-file", "", "optional path to tee rotated JSON logs to, in addition to stdout")
	logMaxSizeMB := flag.Int("log-max-size-mb", 100, "rotate the log file once it reaches this size")
	logMaxBackups := flag.Int("log-max-backups", 5, "number of rotated log files to retain")
	logMaxAgeDays := flag.Int("log-max-age-days", 28, "days to retain rotated log files")
	historyDBDriver := flag.String("historydb-driver", "sqlite", "analytics read-model driver: sqlite or postgres")
	historyDBDSN := flag.String("historydb-dsn", "", "postgres DSN for the analytics read-model (required when -historydb-driver=postgres)")
	authEnabled := flag.Bool("auth-enabled", false, "require a bearer JWT on mutating routes")
	authHMACSecret := flag.String("auth-hmac-secret", "", "HMAC secret validating bearer JWTs, required when -auth-enabled")
	authIssuer := flag.String("auth-issuer", "", "required issuer (iss) claim, empty skips the check")
	authAudience := flag.String("auth-audience", "", "required audience (aud) claim, empty skips the check")
	flag.Parse()

	logger := logging.SetupWithFile("stakenode", *env, logging.FileConfig{
		Path:       *logFile,
		MaxSizeMB:  *logMaxSizeMB,
		MaxBackups: *logMaxBackups,
		MaxAgeDays: *logMaxAgeDays,
	})

	if *otlpEndpoint != "" {
		shutdown, err := otel.Init(context.Background(), otel.Config{
			ServiceName: "stakenode",
			Environment: *env,
			Endpoint:    *otlpEndpoint,
			Insecure:    true,
			Metrics:     true,
			Traces:      true,
		})
		if err != nil {
			logger.Error("failed to initialize telemetry", slog.Any("error", err))
			os.Exit(1)
		}
		defer shutdown(context.Background())
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Warn("failed to load config, using defaults", slog.Any("error", err))
		cfg = config.Default()
	}

	var db storage.Database
	if *memOnly {
		db = storage.NewMemDB()
	} else {
		levelDB, err := storage.NewLevelDB(*dataDir)
		if err != nil {
			logger.Error("failed to open leveldb", slog.Any("error", err))
			os.Exit(1)
		}
		db = levelDB
	}
	defer db.Close()
	stakeStore := storage.NewStakeStore(db)

	var historyStore *historydb.Store
	switch *historyDBDriver {
	case "postgres":
		if *historyDBDSN == "" {
			logger.Error("historydb-driver=postgres requires -historydb-dsn")
			os.Exit(1)
		}
		historyStore, err = historydb.OpenPostgres(*historyDBDSN)
	case "sqlite", "":
		if *historyDBPath != "" {
			historyStore, err = historydb.Open(*historyDBPath)
		}
	default:
		logger.Error("unknown historydb driver", slog.String("driver", *historyDBDriver))
		os.Exit(1)
	}
	if err != nil {
		logger.Error("failed to open historydb", slog.Any("error", err))
		os.Exit(1)
	}
	if historyStore != nil {
		defer historyStore.Close()
	}

	svc := rpc.NewService(cfg, stakeStore, historyStore)
	router := rpc.NewRouter(svc, rpc.RouterConfig{
		RateLimitPerSecond: *rateLimitPerSec,
		RateLimitBurst:     *rateLimitBurst,
		Auth: rpc.AuthConfig{
			Enabled:    *authEnabled,
			HMACSecret: *authHMACSecret,
			Issuer:     *authIssuer,
			Audience:   *authAudience,
		},
	})

	server := &http.Server{
		Addr:         *listenAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("stakenode listening", slog.String("addr", *listenAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
	}
}
