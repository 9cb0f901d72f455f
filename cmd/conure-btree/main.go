package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/conure-db/conure-btree/db"
	"github.com/conure-db/conure-btree/pkg/api"
	"github.com/conure-db/conure-btree/pkg/logging"
)

func main() {
	cfg, err := LoadEffectiveConfig(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.Open(db.Options{
		Degree:          cfg.Degree,
		CheckInvariants: cfg.CheckInvariants,
		Logger:          logger,
	})
	if err != nil {
		logger.Fatal("open db", zap.Error(err))
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			logger.Warn("failed to close database", zap.Error(closeErr))
		}
	}()

	if cfg.Seed > 0 {
		added, err := seedDB(database, cfg.Seed)
		if err != nil {
			logger.Fatal("seed", zap.Error(err))
		}
		logger.Info("seeded database", zap.Int("requested", cfg.Seed), zap.Int("added", added))
	}

	if cfg.HTTPAddr != "" {
		go serveHTTP(cfg.HTTPAddr, database, logger)
	}

	fmt.Println("Conure B-tree - in-memory ordered key-value store")
	fmt.Printf("Minimum degree %d. Type 'help' for available commands\n", cfg.Degree)

	repl := NewREPL(database, os.Stdout, cfg.Color)
	if err := runREPL(repl, cfg.Prompt, cfg.HistoryFile); err != nil {
		logger.Error("repl", zap.Error(err))
	}
}

// readHeaderTimeout bounds how long a client may take to send request headers
const readHeaderTimeout = 5 * time.Second

func newHTTPServer(addr string, database *db.DB, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	api.New(database, logger).Register(mux)
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          zap.NewStdLog(logger),
	}
}

func serveHTTP(addr string, database *db.DB, logger *zap.Logger) {
	srv := newHTTPServer(addr, database, logger)
	logger.Info("http api listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("http", zap.Error(err))
	}
}
