package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"

	"nthudata.org/api/internal/app"
	"nthudata.org/api/internal/appconf"
	"nthudata.org/api/internal/buses"
	"nthudata.org/api/internal/logging"
	"nthudata.org/api/internal/nthudata"
	"nthudata.org/api/internal/restapi"
	"nthudata.org/api/internal/webui"
)

func main() {
	appconf.LoadDotEnv(".env", ".env.local")

	cfg, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

func newLogger(cfg appconf.Config) *slog.Logger {
	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.Env == appconf.Development {
		return logging.NewDevelopmentLogger(os.Stdout, level)
	}
	return logging.NewStructuredLogger(os.Stdout, level)
}

// buildApplication wires the data client and bus manager for cfg.
func buildApplication(cfg appconf.Config, logger *slog.Logger) *app.Application {
	dataConfig := nthudata.DefaultConfig()
	dataConfig.BaseURL = cfg.DataBaseURL
	dataConfig.DetailsTTL = cfg.FileDetailsTTL
	dataConfig.RequestTimeout = cfg.DataRequestTimeout

	client := nthudata.NewClient(dataConfig, logger)

	return &app.Application{
		Config:     cfg,
		Logger:     logger,
		BusManager: buses.NewManager(client, logger),
	}
}

// newHandler builds the router and wraps it in the middleware chain.
func newHandler(application *app.Application) http.Handler {
	api := restapi.NewRestAPI(application)
	router := httprouter.New()
	api.SetRoutes(router)
	if application.Config.EnableDebugUI {
		ui := &webui.WebUI{Application: application}
		ui.SetWebUIRoutes(router)
	}
	return api.Handler(router)
}

func run(ctx context.Context, cfg appconf.Config, logger *slog.Logger) error {
	application := buildApplication(cfg, logger)

	warmCtx, cancel := context.WithTimeout(ctx, cfg.DataRequestTimeout)
	application.BusManager.UpdateData(warmCtx)
	cancel()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      newHandler(application),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second + cfg.DataRequestTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.String("addr", srv.Addr),
			slog.String("env", cfg.Env.String()),
			slog.String("data_url", cfg.DataBaseURL),
			slog.String("commit", application.BusManager.LastCommitHash()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
