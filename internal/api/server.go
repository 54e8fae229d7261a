// Package api exposes the extraction service over HTTP
package api

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nydaym/mineru-extractor/internal/config"
	"github.com/Nydaym/mineru-extractor/internal/metrics"
	"github.com/Nydaym/mineru-extractor/internal/model"
	"github.com/Nydaym/mineru-extractor/internal/ocr"
	"github.com/Nydaym/mineru-extractor/internal/registry"
)

// Server handles the HTTP API
type Server struct {
	app      *fiber.App
	config   *config.Config
	registry *registry.Registry
	source   ocr.TextSource
	logger   *zap.Logger
}

// New creates a new API server
func New(cfg *config.Config, reg *registry.Registry, source ocr.TextSource, logger *zap.Logger) *Server {
	readTimeout := cfg.Server.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 30
	}
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 30
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    32 * 1024 * 1024,
	})

	s := &Server{
		app:      app,
		config:   cfg,
		registry: reg,
		source:   source,
		logger:   logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Middleware
	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	s.app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	s.app.Use(s.requestMetrics())

	s.app.Get("/health", s.handleHealth)
	s.app.Get("/metrics", s.handleMetrics)
	s.app.Get("/metrics/json", s.handleMetricsJSON)
	s.app.Get("/extraction_types", s.handleExtractionTypes)

	s.app.Post("/extract", s.handleExtract)
	// Kept for clients of the original person-only endpoint
	s.app.Post("/extract_person", s.handleExtractPerson)
}

// Start starts the server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Address, s.config.Server.Port)
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// requestMetrics records per-request counters and latency.
func (s *Server) requestMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		metrics.RecordRequest(err == nil && c.Response().StatusCode() < 500)
		metrics.RecordResponseTime(time.Since(start))
		return err
	}
}

// ==================== Handlers ====================

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"version":   "0.1.0",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleMetrics(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	return c.SendString(metrics.Prometheus())
}

func (s *Server) handleMetricsJSON(c *fiber.Ctx) error {
	return c.JSON(metrics.Default().Snapshot())
}

func (s *Server) handleExtractionTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"supported_types": s.registry.SupportedTypes(),
	})
}

func (s *Server) handleExtract(c *fiber.Ctx) error {
	extractionType := c.FormValue("extraction_type", model.TypePerson)
	return s.extract(c, extractionType)
}

func (s *Server) handleExtractPerson(c *fiber.Ctx) error {
	return s.extract(c, model.TypePerson)
}

// extract runs the full pipeline for one uploaded image: validate, OCR,
// dispatch to the registered extractor. Upstream OCR failures come back as a
// success=false body with status 200, matching the fail-soft contract of the
// extractors themselves; only malformed requests get a 4xx.
func (s *Server) extract(c *fiber.Ctx, extractionType string) error {
	if _, ok := s.registry.ModelFor(extractionType); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("unsupported extraction type %q, supported: %s",
				extractionType, strings.Join(s.registry.TypeNames(), ", ")),
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no file provided",
		})
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file must be an image",
		})
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("extract_%s_%s", uuid.New().String(), filepath.Base(file.Filename)))
	if err := c.SaveFile(file, path); err != nil {
		s.logger.Error("failed to save upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save upload",
		})
	}
	defer os.Remove(path)

	text, err := s.source.ExtractText(c.Context(), path)
	if err != nil {
		s.logger.Warn("ocr failed",
			zap.String("extraction_type", extractionType),
			zap.Error(err),
		)
		return c.JSON(model.Response{
			Success:        false,
			Data:           []model.Record{},
			ExtractionType: extractionType,
			ErrorMessage:   err.Error(),
		})
	}

	records, err := s.registry.Extract(c.Context(), text, extractionType)
	if err != nil {
		// the type was validated above, so this is a wiring problem
		s.logger.Error("extraction dispatch failed",
			zap.String("extraction_type", extractionType),
			zap.Error(err),
		)
		return c.JSON(model.Response{
			Success:        false,
			Data:           []model.Record{},
			ExtractionType: extractionType,
			ErrorMessage:   err.Error(),
		})
	}
	if records == nil {
		records = []model.Record{}
	}

	return c.JSON(model.Response{
		Success:        true,
		Data:           records,
		ExtractionType: extractionType,
		OCRText:        text,
	})
}
