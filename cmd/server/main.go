package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"fomezero/cleansing"
	"fomezero/config"
	"fomezero/database"
	"fomezero/dataset"
	"fomezero/directory"
	"fomezero/handlers"
	"fomezero/query"
	"fomezero/source"
)

// main loads configuration, wires the dataset loader and serves the views.
func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	dir := directory.Default()
	if cfg.DirectoryFile != "" {
		if dir, err = directory.Load(cfg.DirectoryFile); err != nil {
			logger.Fatal("Failed to load directory", zap.Error(err))
		}
	}

	ctx := context.Background()
	src, db, err := newSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to set up data source", zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	deps := &handlers.Deps{
		Loader: &dataset.Loader{
			Source:   src,
			Pipeline: cleansing.NewPipeline(dir, logger.Named("cleansing")),
			Logger:   logger.Named("dataset"),
		},
		Service: query.New(dir, cfg.MatchPolicy),
		Views:   cfg.Views,
		Logger:  logger.Named("handlers"),
	}

	// Fail fast on a dataset that cannot be cleansed.
	if _, report, err := deps.Loader.Load(ctx); err != nil {
		logger.Fatal("Dataset check failed", zap.String("source", src.Describe()), zap.Error(err))
	} else {
		logger.Info("Dataset ready",
			zap.String("source", src.Describe()),
			zap.Int("rows", report.RowsKept),
			zap.Int("duplicates_removed", report.DuplicatesRemoved),
		)
	}

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", handlers.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", handlers.RequestIDHeader},
		AllowCredentials: true,
	})
	handler := handlers.RequestLogger(logger.Named("http"))(c.Handler(mux))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newSource returns the configured source and, for SQL sources, the pool
// behind it.
func newSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (source.Source, *sql.DB, error) {
	switch cfg.Data.Source {
	case config.SourcePostgres, config.SourceSQLite:
		driver := database.DriverPostgres
		if cfg.Data.Source == config.SourceSQLite {
			driver = database.DriverSQLite
		}
		db, err := database.Connect(ctx, driver, cfg.Data.DSN(), logger.Named("database"))
		if err != nil {
			return nil, nil, err
		}
		return source.SQL{DB: db, Table: cfg.Data.Table}, db, nil
	default:
		return source.CSV{Path: cfg.Data.Path}, nil, nil
	}
}
