package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fuel_pump_registry/internal/config"
	"fuel_pump_registry/internal/handlers"
	"fuel_pump_registry/internal/logger"
	"fuel_pump_registry/internal/metrics"
	"fuel_pump_registry/internal/repository"
	"fuel_pump_registry/internal/server"
	"fuel_pump_registry/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title                       Fuel Pump Registry API
// @version                     1.0
// @description                 Pump inventory, dispensing and status control.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := Run(os.Args[1:], NewCliConfig()); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("command failed", "err", err)
	}
}

// setup loads the config and builds the logger every command uses.
func setup(configPath string) (config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Format), nil
}

func serve(configPath string) error {
	cfg, log, err := setup(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	repos, err := repository.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := repos.Close(); cerr != nil {
			log.Errorw("failed to close store", "err", cerr)
		}
	}()

	metrics.Register()

	// wire dependencies
	services := service.NewService(repos, authConfig(cfg.Auth, log), log)
	apiHandler := handlers.NewHandler(services, log, handlers.StreamConfig{
		DefaultInterval: cfg.WS.DefaultInterval,
		MaxInterval:     cfg.WS.MaxInterval,
	})

	// warm the pump gauge
	if _, err := services.Registry.ListAll(context.Background()); err != nil {
		log.Warnw("initial pump count failed", "err", err)
	}

	srv := server.New(cfg.HTTP)
	errCh := runHTTPServer(srv, cfg.Port, apiHandler, log)

	return waitForShutdown(srv, errCh, log)
}

func migrate(configPath string) error {
	cfg, log, err := setup(configPath)
	if err != nil {
		return err
	}
	repos, err := repository.Open(cfg.DB)
	if err != nil {
		return err
	}
	log.Infow("schema ready", "driver", cfg.DB.Driver, "path", cfg.DB.Path)
	return repos.Close()
}

// authConfig turns the config section into service settings. An empty key
// gets a random one, which invalidates tokens on every restart.
func authConfig(c config.AuthConfig, log *logger.Logger) service.AuthConfig {
	key := []byte(c.SigningKey)
	if len(key) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalw("generate signing key", "err", err)
		}
		key = []byte(hex.EncodeToString(buf))
		log.Warnw("auth.signing_key not set; using a random key for this process")
	}
	return service.AuthConfig{SigningKey: key, TokenTTL: c.TokenTTL}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// waitForShutdown blocks until a termination signal or a server failure,
// then drains in-flight requests.
func waitForShutdown(srv *server.Server, errCh <-chan error, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-quit:
	}

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(ctx)
}
