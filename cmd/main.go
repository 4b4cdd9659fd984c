package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"coke_oee/internal/config"
	"coke_oee/internal/handlers"
	"coke_oee/internal/logger"
	"coke_oee/internal/repository"
	"coke_oee/internal/repository/db"
	"coke_oee/internal/server"
	"coke_oee/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := pflag.String("config", "", "path to config file (default configs/config.yml)")
	hashPassword := pflag.String("hash-password", "", "print the bcrypt hash of a password for auth.password_hash and exit")
	pflag.Parse()

	if *hashPassword != "" {
		hash, err := service.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Init(cfg.Log.Level, cfg.Log.Format)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalw("invalid plant timezone", "err", err)
	}

	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	secret := cfg.Auth.Secret
	if secret == "" {
		log.Warnw("auth.secret not set; using a random secret, tokens will not survive a restart")
		secret = uuid.NewString()
	}

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Options{
		Location:   loc,
		Targets:    cfg.OEETargets(),
		AuthSecret: secret,
		TokenTTL:   cfg.Auth.TokenTTL,
		Log:        log,
	})
	ensureOperator(cfg, services, log)
	apiHandler := handlers.NewHandler(services, log, cfg.Server.MaxUploadBytes)

	srv := &server.Server{WriteTimeout: cfg.Server.WriteTimeout}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	path := cfg.DB.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "oee.db")
		path = "oee.db"
	}
	return db.InitDB(path)
}

// ensureOperator registers the configured operator account, if any.
func ensureOperator(cfg *config.Config, services *service.Service, log *logger.Logger) {
	if cfg.Auth.Username == "" || cfg.Auth.PasswordHash == "" {
		log.Warnw("no operator configured; sign-in is disabled", "hint", "set auth.username and auth.password_hash")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	id, err := services.EnsureOperator(ctx, cfg.Auth.Username, cfg.Auth.PasswordHash)
	if err != nil {
		log.Fatalw("failed to register operator", "username", cfg.Auth.Username, "err", err)
	}
	log.Infow("operator_ready", "username", cfg.Auth.Username, "operator_id", id)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http_listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
