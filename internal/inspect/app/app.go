package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anthanhphan/gosdk/logger"

	"github.com/anthanhphan/go-sharded-kv-client/internal/client"
	"github.com/anthanhphan/go-sharded-kv-client/internal/client/config"
	"github.com/anthanhphan/go-sharded-kv-client/internal/inspect"
)

type App struct {
	cfg    *config.Config
	kv     *client.Client
	server *inspect.Server
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Sharded client (connections dial lazily, so startup does not
	// require the backends to be up)
	kv, err := client.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build client: %w", err)
	}

	// 4. Inspect server
	server := inspect.NewServer(cfg, kv)

	return &App{
		cfg:    cfg,
		kv:     kv,
		server: server,
	}, nil
}

func (a *App) Run() error {
	logger.Infow("Inspect server starting", "addr", a.cfg.Inspect.Addr, "shards", len(a.cfg.Shards))
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("Inspect server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down inspect server")
	if err := a.server.Stop(context.Background()); err != nil {
		logger.Errorw("Inspect shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}
	a.kv.Close()

	return runErr
}
