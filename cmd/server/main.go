package main

import (
	"fmt"
	"log"

	"invotab/internal/config"
	"invotab/internal/dataset"
	"invotab/internal/handler"
	"invotab/internal/parser"
	"invotab/internal/parser/gemini"
	"invotab/internal/parser/openai"
	"invotab/internal/port"
	"invotab/internal/router"
	"invotab/internal/service"
	localstorage "invotab/internal/storage/local"
	s3storage "invotab/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize upload storage
	storage, err := newStorage(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize extraction provider
	parser.RegisterProvider("gemini", func(c *config.ParserConfig) (port.DocumentParser, error) {
		return gemini.NewParser(c), nil
	})
	parser.RegisterProvider("openai", func(c *config.ParserConfig) (port.DocumentParser, error) {
		return openai.NewParser(c), nil
	})
	docParser, err := parser.NewParser(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to initialize parser: %w", err)
	}

	// Initialize services
	store := dataset.NewStore()
	fileSvc := service.NewFileService(storage, &cfg.Upload)
	extractSvc := service.NewExtractService(docParser, storage, store)

	// Initialize handlers
	fileH := handler.NewFileHandler(fileSvc)
	extractH := handler.NewExtractHandler(extractSvc, fileSvc)
	healthH := handler.NewHealthHandler(storage)

	// Setup router
	r := router.Setup(fileH, extractH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func newStorage(cfg *config.StorageConfig) (port.ObjectStorage, error) {
	switch cfg.Backend {
	case "s3":
		return s3storage.NewS3Client(&cfg.S3)
	case "local", "":
		return localstorage.NewStorage(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
