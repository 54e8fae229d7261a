package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Nydaym/mineru-extractor/internal/api"
	"github.com/Nydaym/mineru-extractor/internal/config"
	"github.com/Nydaym/mineru-extractor/internal/ocr"
	"github.com/Nydaym/mineru-extractor/internal/registry"
)

var (
	configPath = flag.String("config", "", "Path to config file")
	debug      = flag.Bool("debug", false, "Enable debug logging")
	version    = "dev"
)

func main() {
	flag.Parse()

	if len(flag.Args()) > 0 && (flag.Arg(0) == "version" || flag.Arg(0) == "--version") {
		fmt.Printf("extractord version %s\n", version)
		return
	}

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := config.LoadEnvFiles(); err != nil {
		logger.Warn("Failed to load .env files", zap.Error(err))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Starting extractord",
		zap.String("version", version),
		zap.String("ocr_base_url", cfg.OCR.BaseURL),
		zap.String("llm_model", cfg.LLM.Model),
		zap.Bool("heuristic_only", cfg.HeuristicOnly()),
	)

	reg := registry.Setup(cfg, logger)
	source := ocr.NewClient(cfg.OCR, logger)
	server := api.New(cfg, reg, source, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
		if err := server.Shutdown(); err != nil {
			logger.Error("Shutdown failed", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
