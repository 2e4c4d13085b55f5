package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"printpredict/config"
	"printpredict/form"
	qhttp "printpredict/http"
	"printpredict/inference"
	"printpredict/logging"
	"printpredict/ml"
	"printpredict/resource"
)

func main() {
	// 1. Load config
	cfg, err := config.Load(config.Locate("config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 2. Load resources; a missing model is fatal before anything is served
	loader := resource.NewLoader(logger)
	defer loader.Close()

	model, err := loader.LoadModel(cfg.Model.Path)
	if errors.Is(err, resource.ErrModelNotFound) {
		logger.Fatal("model artifact not found", zap.String("path", cfg.Model.Path))
	}
	if err != nil {
		logger.Fatal("failed to load model", zap.Error(err))
	}
	ds, err := loader.LoadReferenceDataset(cfg.Dataset.Path)
	if err != nil {
		logger.Warn("reference dataset unreadable, using default options", zap.Error(err))
		ds = nil
	}
	options := form.ResolveOptions(ds)
	if described, ok := model.(ml.Described); ok {
		if unseen := form.UnseenOptions(described.Schema(), options); len(unseen) > 0 {
			logger.Warn("reference dataset offers choices the model was not trained on",
				zap.Strings("options", unseen))
		}
	}

	// 3. Start HTTP server
	sessions, err := qhttp.NewSessionStore(cfg.Session.MaxSessions, options)
	if err != nil {
		logger.Fatal("failed to create session store", zap.Error(err))
	}
	app := qhttp.NewApp(inference.NewInvoker(model, logger), sessions, language.Make(cfg.Locale), logger)
	server := qhttp.NewServer(qhttp.ServerConfig{
		Port:           cfg.Http.Port,
		Timeout:        cfg.Http.Timeout,
		MaxRequestSize: cfg.Http.MaxRequestSize,
	}, app, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Watch {
		go func() {
			if err := loader.Watch(ctx); err != nil {
				logger.Warn("resource watcher stopped", zap.Error(err))
			}
		}()
	}

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 4. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}
